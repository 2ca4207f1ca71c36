package glucose

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/georgekenefati/Apple-Health-DS/internal/errors"
)

func writeTempCSV(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "libre_export.csv")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestLoadCSV_SkipsMetadataBanner(t *testing.T) {
	content := []byte("Glucose Data,Generated by LibreView,03-15-2024\n" +
		"Device Timestamp,Record Type,Historic Glucose mg/dL\n" +
		"2024-03-01 08:00,0,112\n")

	table, err := LoadCSV(writeTempCSV(t, content), slog.Default())
	require.NoError(t, err)

	assert.Equal(t, []string{"Device Timestamp", "Record Type", "Historic Glucose mg/dL"}, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "112", table.Rows[0][2])
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), slog.Default())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSourceNotFound))
}

func TestLoadCSV_Latin1Fallback(t *testing.T) {
	// 0xE9 is "é" in ISO-8859-1 and invalid as a standalone UTF-8 byte.
	raw := []byte("Export")
	raw = append(raw, 0xE9, '\n')
	raw = append(raw, []byte("Device Timestamp,Historic Glucose mg/dL\n2024-03-01 08:00,112\n")...)

	table, err := LoadCSV(writeTempCSV(t, raw), slog.Default())
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "112", table.Rows[0][1])
}

func TestLoadCSV_EmptyFile(t *testing.T) {
	_, err := LoadCSV(writeTempCSV(t, []byte("metadata only\n")), slog.Default())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParse))
}

func TestLoadCSV_VariableFieldCounts(t *testing.T) {
	content := []byte("banner\n" +
		"Device Timestamp,Record Type,Historic Glucose mg/dL,Notes\n" +
		"2024-03-01 08:00,0,112\n" +
		"2024-03-01 08:15,0,118,after breakfast\n")

	table, err := LoadCSV(writeTempCSV(t, content), slog.Default())
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestDecodeWithFallback_UTF8(t *testing.T) {
	text, name, err := decodeWithFallback([]byte("plain ascii"))
	require.NoError(t, err)
	assert.Equal(t, "utf-8", name)
	assert.Equal(t, []byte("plain ascii"), text)
}
