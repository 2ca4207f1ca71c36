package glucose

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	apperrors "github.com/georgekenefati/Apple-Health-DS/internal/errors"
)

// RawTable is the unprocessed tabular content of a Libre CSV export.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// LoadCSV reads a Libre CSV export. Libre files are not reliably UTF-8;
// legacy exports ship as ISO-8859-1 or Windows-1252, so decoding falls
// back through those before failing. The first line of the file is a
// metadata banner and is skipped.
func LoadCSV(path string, logger *slog.Logger) (*RawTable, error) {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewSourceNotFoundError(path, err)
		}
		return nil, apperrors.NewParseError("failed to read glucose CSV", err)
	}

	text, encodingName, err := decodeWithFallback(data)
	if err != nil {
		return nil, apperrors.NewParseError("could not decode CSV file with any supported encoding", err)
	}
	logger.Info("loaded glucose CSV",
		slog.String("path", path),
		slog.String("encoding", encodingName),
		slog.Int("bytes", len(data)))

	reader := bufio.NewReader(bytes.NewReader(text))

	// Skip the metadata banner line.
	if _, err := reader.ReadString('\n'); err != nil && err != io.EOF {
		return nil, apperrors.NewParseError("failed to skip metadata header", err)
	}

	cr := csv.NewReader(reader)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.NewParseError("malformed glucose CSV", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParseError("glucose CSV contains no header row", nil)
	}

	return &RawTable{Header: records[0], Rows: records[1:]}, nil
}

// decodeWithFallback returns UTF-8 text, trying UTF-8 first and then
// the legacy single-byte encodings Libre exports have been seen in.
func decodeWithFallback(data []byte) ([]byte, string, error) {
	if utf8.Valid(data) {
		return data, "utf-8", nil
	}

	fallbacks := []struct {
		name string
		enc  encoding.Encoding
	}{
		{"iso-8859-1", charmap.ISO8859_1},
		{"cp1252", charmap.Windows1252},
	}
	for _, fb := range fallbacks {
		decoded, err := fb.enc.NewDecoder().Bytes(data)
		if err == nil {
			return decoded, fb.name, nil
		}
	}
	return nil, "", apperrors.NewParseError("no supported encoding matched", nil)
}
