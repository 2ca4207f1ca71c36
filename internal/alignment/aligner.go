// Package alignment contains the timestamp-alignment and
// windowed-aggregation engine: a nearest-neighbor tolerance join of two
// irregularly sampled series, and fixed-window aggregation with mixed
// per-field rules.
package alignment

import (
	"log/slog"
	"math"
	"sort"

	apperrors "github.com/georgekenefati/Apple-Health-DS/internal/errors"
	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

// Align matches each health record to the glucose reading nearest to
// its start time. A health record whose nearest reading is further away
// than toleranceMinutes is dropped; it is never emitted half-joined.
// One glucose reading may serve several health records, but each health
// record matches at most once. Equidistant candidates resolve to the
// earlier reading.
func Align(health []domain.HealthRecord, glucose []domain.GlucoseReading, toleranceMinutes float64, logger *slog.Logger) ([]domain.AlignedRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(health) == 0 || len(glucose) == 0 {
		return nil, apperrors.NewPreconditionError("both health and glucose series must be non-empty before alignment").
			WithContext("health_records", len(health)).
			WithContext("glucose_readings", len(glucose))
	}

	// Work on sorted copies; the inputs stay untouched.
	h := make([]domain.HealthRecord, len(health))
	copy(h, health)
	sort.SliceStable(h, func(i, j int) bool {
		return h[i].StartDate.Before(h[j].StartDate)
	})

	g := make([]domain.GlucoseReading, len(glucose))
	copy(g, glucose)
	sort.SliceStable(g, func(i, j int) bool {
		return g[i].Timestamp.Before(g[j].Timestamp)
	})

	// Both series ascend, so the index of the nearest glucose reading
	// is monotonic in the health record's timestamp: a single forward
	// sweep suffices. Advancing only on a strictly smaller distance
	// keeps ties on the earlier reading.
	aligned := make([]domain.AlignedRecord, 0, len(h))
	dropped := 0
	j := 0
	for _, record := range h {
		for j+1 < len(g) && distanceMinutes(record, g[j+1]) < distanceMinutes(record, g[j]) {
			j++
		}

		diff := record.StartDate.Sub(g[j].Timestamp).Minutes()
		if math.Abs(diff) > toleranceMinutes {
			dropped++
			continue
		}

		aligned = append(aligned, domain.AlignedRecord{
			HealthTimestamp:  record.StartDate,
			GlucoseTimestamp: g[j].Timestamp,
			TimeDiffMinutes:  diff,
			Health:           record,
			Glucose:          g[j],
		})
	}

	logger.Info("aligned series",
		slog.Int("health_records", len(h)),
		slog.Int("glucose_readings", len(g)),
		slog.Int("aligned", len(aligned)),
		slog.Int("dropped_outside_tolerance", dropped),
		slog.Float64("tolerance_minutes", toleranceMinutes))

	return aligned, nil
}

func distanceMinutes(h domain.HealthRecord, g domain.GlucoseReading) float64 {
	return math.Abs(h.StartDate.Sub(g.Timestamp).Minutes())
}
