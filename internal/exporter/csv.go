package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteCSV writes a table as a comma-delimited file with a header row.
// A UTF-8 BOM is prefixed so spreadsheet applications pick up the
// encoding.
func WriteCSV(path string, table *Table, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(table.Headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	logger.Info("wrote CSV export",
		slog.String("path", path),
		slog.Int("rows", len(table.Rows)))
	return nil
}
