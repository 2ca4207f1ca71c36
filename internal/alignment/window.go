package alignment

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	apperrors "github.com/georgekenefati/Apple-Health-DS/internal/errors"
	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

// Aggregate buckets aligned records into fixed, non-overlapping windows
// of windowMinutes, anchored at epoch-aligned boundaries and keyed by
// the glucose timestamp. Numeric fields aggregate as mean / sample
// standard deviation / count / sum; categorical fields take the modal
// value with ties resolved to the first value seen in window order.
// Only windows holding at least one glucose observation are emitted.
func Aggregate(aligned []domain.AlignedRecord, windowMinutes int, logger *slog.Logger) ([]domain.WindowedAggregate, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if windowMinutes <= 0 {
		return nil, apperrors.NewPreconditionError("window size must be positive minutes").
			WithContext("window_minutes", windowMinutes)
	}
	if len(aligned) == 0 {
		return nil, apperrors.NewPreconditionError("records must be aligned before windowing")
	}

	window := time.Duration(windowMinutes) * time.Minute

	grouped := make(map[time.Time][]domain.AlignedRecord)
	for _, rec := range aligned {
		key := rec.GlucoseTimestamp.Truncate(window)
		grouped[key] = append(grouped[key], rec)
	}

	starts := make([]time.Time, 0, len(grouped))
	for start := range grouped {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	out := make([]domain.WindowedAggregate, 0, len(starts))
	for _, start := range starts {
		records := grouped[start]

		var (
			glucoseValues []float64
			healthValues  []float64
			timeDiffs     []float64
		)
		typeMode := newModeCounter()
		rangeMode := newModeCounter()
		trendMode := newModeCounter()
		sourceMode := newModeCounter()

		for _, rec := range records {
			glucoseValues = append(glucoseValues, rec.Glucose.ValueMgDl)
			if rec.Health.Value != nil {
				healthValues = append(healthValues, *rec.Health.Value)
			}
			timeDiffs = append(timeDiffs, rec.TimeDiffMinutes)

			typeMode.add(rec.Health.Type)
			rangeMode.add(string(rec.Glucose.Range))
			trendMode.add(string(rec.Glucose.Trend))
			sourceMode.add(rec.Health.SourceName)
		}

		// Every aligned record carries a glucose observation, so a
		// materialized window cannot be glucose-empty; the check keeps
		// the exclusion rule explicit.
		if len(glucoseValues) == 0 {
			continue
		}

		agg := domain.WindowedAggregate{
			WindowStart:  start,
			GlucoseMean:  stat.Mean(glucoseValues, nil),
			GlucoseCount: len(glucoseValues),
			TimeDiffMean: stat.Mean(timeDiffs, nil),

			TypeMode:       typeMode.mode(),
			RangeMode:      rangeMode.mode(),
			TrendMode:      trendMode.mode(),
			SourceNameMode: sourceMode.mode(),
		}

		if len(glucoseValues) > 1 {
			std := stat.StdDev(glucoseValues, nil)
			agg.GlucoseStd = &std
		}
		if len(healthValues) > 0 {
			mean := stat.Mean(healthValues, nil)
			agg.HealthValueMean = &mean
			for _, v := range healthValues {
				agg.HealthValueSum += v
			}
		}

		out = append(out, agg)
	}

	logger.Info("windowed aligned records",
		slog.Int("aligned", len(aligned)),
		slog.Int("windows", len(out)),
		slog.Int("window_minutes", windowMinutes))

	return out, nil
}

// modeCounter tracks the most frequent value with deterministic
// first-encountered tie-breaking.
type modeCounter struct {
	counts map[string]int
	order  []string
}

func newModeCounter() *modeCounter {
	return &modeCounter{counts: make(map[string]int)}
}

func (m *modeCounter) add(value string) {
	if value == "" {
		return
	}
	if _, seen := m.counts[value]; !seen {
		m.order = append(m.order, value)
	}
	m.counts[value]++
}

// mode returns the most frequent value, or nil when nothing was added.
// On a tie the value first encountered wins.
func (m *modeCounter) mode() *string {
	var (
		best      string
		bestCount int
	)
	for _, value := range m.order {
		if m.counts[value] > bestCount {
			best = value
			bestCount = m.counts[value]
		}
	}
	if bestCount == 0 {
		return nil
	}
	return &best
}
