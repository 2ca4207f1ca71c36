package glucose

import (
	"gonum.org/v1/gonum/stat"

	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

// TimeInRange computes time-in-range percentages and descriptive
// statistics over a normalized glucose series. An empty series yields
// zero-valued stats.
func TimeInRange(readings []domain.GlucoseReading) domain.TimeInRangeStats {
	total := len(readings)
	if total == 0 {
		return domain.TimeInRangeStats{}
	}

	counts := make(map[domain.GlucoseRange]int, 5)
	values := make([]float64, 0, total)
	for _, r := range readings {
		counts[r.Range]++
		values = append(values, r.ValueMgDl)
	}

	pct := func(rng domain.GlucoseRange) float64 {
		return float64(counts[rng]) / float64(total) * 100
	}

	mean := stat.Mean(values, nil)
	std := stat.StdDev(values, nil)

	cv := 0.0
	if mean != 0 {
		cv = std / mean * 100
	}

	return domain.TimeInRangeStats{
		TimeVeryLowPercent:   pct(domain.RangeVeryLow),
		TimeLowPercent:       pct(domain.RangeLow),
		TimeInRangePercent:   pct(domain.RangeNormal),
		TimeHighPercent:      pct(domain.RangeHigh),
		TimeVeryHighPercent:  pct(domain.RangeVeryHigh),
		AverageGlucose:       mean,
		GlucoseStd:           std,
		CoefficientVariation: cv,
		TotalReadings:        total,
	}
}
