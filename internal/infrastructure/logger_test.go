package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestRunHandler_InjectsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(&runHandler{Handler: slog.NewJSONHandler(&buf, nil)})

	ctx := WithRunID(context.Background(), "run-123")
	logger.InfoContext(ctx, "aligned records", slog.Int("count", 42))

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "run-123", record["run_id"])
	assert.Equal(t, float64(42), record["count"])
}

func TestNewRunContext(t *testing.T) {
	ctx := NewRunContext(context.Background())
	assert.NotEmpty(t, GetRunID(ctx))

	other := NewRunContext(context.Background())
	assert.NotEqual(t, GetRunID(ctx), GetRunID(other))
}

func TestGetRunID_Missing(t *testing.T) {
	assert.Empty(t, GetRunID(context.Background()))
}
