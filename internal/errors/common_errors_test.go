package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewSchemaError("no glucose column found"),
			want: "[SCHEMA] no glucose column found",
		},
		{
			name: "with cause",
			err:  NewParseError("failed to decode CSV", fmt.Errorf("invalid byte")),
			want: "[PARSE] failed to decode CSV: invalid byte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := NewSourceNotFoundError("export.xml", cause)

	require.ErrorIs(t, err, cause)
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("load glucose: %w", NewFormatError("unsupported format: parquet"))

	assert.True(t, IsType(err, ErrTypeFormat))
	assert.False(t, IsType(err, ErrTypeParse))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrTypeFormat))
}

func TestAppError_WithContext(t *testing.T) {
	err := NewPreconditionError("both datasets must be loaded before alignment").
		WithContext("health_records", 0)

	require.NotNil(t, err.Context)
	assert.Equal(t, 0, err.Context["health_records"])
}

func TestHelperConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{"source not found", NewSourceNotFoundError("a.csv", nil), ErrTypeSourceNotFound},
		{"parse", NewParseError("bad xml", nil), ErrTypeParse},
		{"schema", NewSchemaError("missing timestamp"), ErrTypeSchema},
		{"precondition", NewPreconditionError("empty input"), ErrTypePrecondition},
		{"format", NewFormatError("unsupported"), ErrTypeFormat},
		{"config", NewConfigError("bad tolerance", nil), ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
		})
	}
}
