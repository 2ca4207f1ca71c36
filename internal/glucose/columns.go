package glucose

import (
	"strings"

	apperrors "github.com/georgekenefati/Apple-Health-DS/internal/errors"
)

// column is a canonical field of a Libre export after header mapping.
type column string

const (
	colTimestamp    column = "timestamp"
	colDate         column = "date"
	colHistoricMgDl column = "glucose_mg_dl"
	colHistoricMmol column = "glucose_mmol_l"
	colScanMgDl     column = "scan_glucose_mg_dl"
	colScanMmol     column = "scan_glucose_mmol_l"
	colStripMgDl    column = "strip_glucose_mg_dl"
	colStripMmol    column = "strip_glucose_mmol_l"
	colRecordType   column = "record_type"
	colNotes        column = "notes"
	colSerialNumber column = "serial_number"
	colDevice       column = "device"
	colKetone       column = "ketone_mmol_l"
	colRapidInsulin column = "rapid_acting_insulin_units"
	colCarbs        column = "carbohydrates_grams"
	colLongInsulin  column = "long_acting_insulin_units"
)

// columnMappings is the fixed table of known Libre column-name variants.
// Exports differ by region and app version; every known spelling maps to
// one canonical column.
var columnMappings = map[string]column{
	// Timestamp columns
	"Device Timestamp":                  colTimestamp,
	"Timestamp (YYYY-MM-DD HH:MM:SS)":   colTimestamp,
	"Time":                              colTimestamp,
	"Date":                              colDate,
	// Historic (sensor-logged) glucose
	"Historic Glucose mg/dL":   colHistoricMgDl,
	"Historic Glucose (mg/dL)": colHistoricMgDl,
	"Historic Glucose mmol/L":  colHistoricMmol,
	"Glucose Value (mg/dL)":    colHistoricMgDl,
	"Glucose Value (mmol/L)":   colHistoricMmol,
	// Scan (real-time) glucose
	"Scan Glucose mg/dL":   colScanMgDl,
	"Scan Glucose (mg/dL)": colScanMgDl,
	"Scan Glucose mmol/L":  colScanMmol,
	// Strip (fingerstick) glucose
	"Strip Glucose mg/dL":   colStripMgDl,
	"Strip Glucose (mg/dL)": colStripMgDl,
	"Strip Glucose mmol/L":  colStripMmol,
	// Additional fields
	"Record Type":                  colRecordType,
	"Notes":                        colNotes,
	"Serial Number":                colSerialNumber,
	"Device":                       colDevice,
	"Ketone mmol/L":                colKetone,
	"Rapid-Acting Insulin (units)": colRapidInsulin,
	"Carbohydrates (grams)":        colCarbs,
	"Long-Acting Insulin (units)":  colLongInsulin,
}

// columnIndex maps canonical columns to their position in the header
// row. Resolved once at normalization entry.
type columnIndex map[column]int

// resolveColumns maps a raw header row to canonical column positions.
// Unknown headers are ignored. It fails with a schema error when no
// timestamp column or no glucose column of any reading type is present
// after mapping.
func resolveColumns(header []string) (columnIndex, error) {
	idx := make(columnIndex)
	for i, name := range header {
		if col, ok := columnMappings[strings.TrimSpace(name)]; ok {
			// First occurrence wins when an export repeats a header.
			if _, seen := idx[col]; !seen {
				idx[col] = i
			}
		}
	}

	if _, ok := idx[colTimestamp]; !ok {
		return nil, apperrors.NewSchemaError("no timestamp column found after header mapping")
	}

	glucoseCols := []column{
		colHistoricMgDl, colHistoricMmol,
		colScanMgDl, colScanMmol,
		colStripMgDl, colStripMmol,
	}
	for _, col := range glucoseCols {
		if _, ok := idx[col]; ok {
			return idx, nil
		}
	}
	return nil, apperrors.NewSchemaError("no historic, scan or fingerstick glucose column found after header mapping")
}

// get returns the trimmed cell for col, or "" when the column is absent
// or the row is short.
func (c columnIndex) get(row []string, col column) string {
	i, ok := c[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
