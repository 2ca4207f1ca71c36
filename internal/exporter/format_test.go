package exporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/georgekenefati/Apple-Health-DS/internal/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "csv", input: "csv", want: FormatCSV},
		{name: "xlsx", input: "xlsx", want: FormatXLSX},
		{name: "json", input: "json", want: FormatJSON},
		{name: "msgpack", input: "msgpack", want: FormatMsgpack},
		{name: "case insensitive", input: "CSV", want: FormatCSV},
		{name: "surrounding whitespace", input: "  json  ", want: FormatJSON},
		{name: "parquet unsupported", input: "parquet", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "protobuf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatExtension(t *testing.T) {
	assert.Equal(t, "csv", FormatCSV.Extension())
	assert.Equal(t, "xlsx", FormatXLSX.Extension())
	assert.Equal(t, "json", FormatJSON.Extension())
	assert.Equal(t, "msgpack", FormatMsgpack.Extension())
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	assert.Len(t, formats, 4)
	assert.Contains(t, formats, FormatCSV)
	assert.Contains(t, formats, FormatMsgpack)
}
