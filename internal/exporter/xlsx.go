package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Data"

// WriteXLSX writes a table as a single-sheet spreadsheet.
func WriteXLSX(path string, table *Table, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	writeRow := func(rowIdx int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		return f.SetSheetRow(sheetName, cell, &row)
	}

	if err := writeRow(1, table.Headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, row := range table.Rows {
		if err := writeRow(i+2, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet: %w", err)
	}

	logger.Info("wrote XLSX export",
		slog.String("path", path),
		slog.Int("rows", len(table.Rows)))
	return nil
}
