package exporter

import (
	"fmt"
	"log/slog"

	apperrors "github.com/georgekenefati/Apple-Health-DS/internal/errors"
	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

// WriteAligned writes the aligned dataset to path in the given format.
// Row-oriented formats get the flattened table with time features; the
// structured formats serialize the records directly.
func WriteAligned(path string, format Format, records []domain.AlignedRecord, logger *slog.Logger) error {
	switch format {
	case FormatCSV:
		return WriteCSV(path, AlignedTable(records), logger)
	case FormatXLSX:
		return WriteXLSX(path, AlignedTable(records), logger)
	case FormatJSON:
		return WriteJSON(path, records, logger)
	case FormatMsgpack:
		return WriteMsgpack(path, records, logger)
	default:
		return apperrors.NewFormatError(fmt.Sprintf("unsupported export format: %q", format))
	}
}

// WriteWindowed writes the windowed aggregate dataset to path in the
// given format.
func WriteWindowed(path string, format Format, windows []domain.WindowedAggregate, logger *slog.Logger) error {
	switch format {
	case FormatCSV:
		return WriteCSV(path, WindowedTable(windows), logger)
	case FormatXLSX:
		return WriteXLSX(path, WindowedTable(windows), logger)
	case FormatJSON:
		return WriteJSON(path, windows, logger)
	case FormatMsgpack:
		return WriteMsgpack(path, windows, logger)
	default:
		return apperrors.NewFormatError(fmt.Sprintf("unsupported export format: %q", format))
	}
}
