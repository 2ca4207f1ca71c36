package glucose

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/georgekenefati/Apple-Health-DS/internal/errors"
	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

// timestampLayouts are the timestamp spellings seen across Libre export
// variants, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01-02-2006 03:04 PM",
	"01-02-2006 3:04 PM",
	"02-01-2006 15:04",
	"01/02/2006 03:04 PM",
	"02/01/2006 15:04",
}

// Normalize converts raw Libre CSV rows into an ordered, de-duplicated
// glucose series with derived rate-of-change, trend and range fields.
//
// Per row, the effective value is the first present reading in priority
// order historic, scan, fingerstick; mmol/L cells are converted to
// mg/dL only when the mg/dL cell of the same reading type is absent.
// Rows with unparseable timestamps or values outside the physiological
// band are discarded. When several rows share a timestamp, the first in
// file order is kept.
func Normalize(table *RawTable, logger *slog.Logger) ([]domain.GlucoseReading, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if table == nil {
		return nil, apperrors.NewPreconditionError("glucose table must be loaded before normalization")
	}

	idx, err := resolveColumns(table.Header)
	if err != nil {
		return nil, err
	}

	type rawReading struct {
		ts     time.Time
		value  float64
		source domain.GlucoseSource
	}

	var (
		raw     []rawReading
		skipped int
		invalid int
	)
	for _, row := range table.Rows {
		ts, ok := parseTimestamp(idx.get(row, colTimestamp))
		if !ok {
			skipped++
			continue
		}

		value, source, ok := consolidateValue(idx, row)
		if !ok {
			skipped++
			continue
		}
		if value < domain.MinValidGlucose || value > domain.MaxValidGlucose {
			invalid++
			continue
		}

		raw = append(raw, rawReading{ts: ts, value: value, source: source})
	}
	if skipped > 0 || invalid > 0 {
		logger.Warn("discarded glucose rows",
			slog.Int("unparseable", skipped),
			slog.Int("out_of_range", invalid))
	}

	// De-duplicate identical timestamps, keeping the first in file order.
	seen := make(map[int64]struct{}, len(raw))
	deduped := raw[:0]
	for _, r := range raw {
		key := r.ts.UnixNano()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, r)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].ts.Before(deduped[j].ts)
	})

	readings := make([]domain.GlucoseReading, 0, len(deduped))
	for i, r := range deduped {
		var rate *float64
		if i > 0 {
			prev := deduped[i-1]
			minutes := r.ts.Sub(prev.ts).Minutes()
			v := (r.value - prev.value) / minutes
			rate = &v
		}

		readings = append(readings, domain.GlucoseReading{
			Timestamp:    r.ts,
			ValueMgDl:    r.value,
			Source:       r.source,
			RateOfChange: rate,
			Trend:        domain.ClassifyTrend(rate),
			Range:        domain.ClassifyRange(r.value),
		})
	}

	logger.Info("normalized glucose series",
		slog.Int("raw_rows", len(table.Rows)),
		slog.Int("readings", len(readings)))

	return readings, nil
}

// consolidateValue resolves the effective mg/dL value of a row and the
// reading type that supplied it.
func consolidateValue(idx columnIndex, row []string) (float64, domain.GlucoseSource, bool) {
	families := []struct {
		mgdl   column
		mmol   column
		source domain.GlucoseSource
	}{
		{colHistoricMgDl, colHistoricMmol, domain.SourceHistoric},
		{colScanMgDl, colScanMmol, domain.SourceScan},
		{colStripMgDl, colStripMmol, domain.SourceFingerstick},
	}

	for _, f := range families {
		if v, ok := parseFloat(idx.get(row, f.mgdl)); ok {
			return v, f.source, true
		}
		if v, ok := parseFloat(idx.get(row, f.mmol)); ok {
			return v * domain.MmolToMgDl, f.source, true
		}
	}
	return 0, "", false
}

func parseTimestamp(cell string) (time.Time, bool) {
	if cell == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func parseFloat(cell string) (float64, bool) {
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
