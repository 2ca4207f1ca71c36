package glucose

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

// forwardFillLimit caps how many consecutive empty buckets inherit the
// last observed mean during resampling.
const forwardFillLimit = 2

// ResampledPoint is one fixed-frequency bucket of a glucose series.
// ValueMean and RateMean are nil when the bucket holds no observations
// and no recent value was available to carry forward.
type ResampledPoint struct {
	Bucket    time.Time `json:"bucket"`
	ValueMean *float64  `json:"value_mean,omitempty"`
	RateMean  *float64  `json:"rate_mean,omitempty"`
	Filled    bool      `json:"filled,omitempty"`
}

// Resample buckets a normalized glucose series into fixed-frequency
// intervals, averaging value and rate of change per bucket. Gaps are
// forward-filled from the previous bucket for at most forwardFillLimit
// consecutive intervals. The input must be sorted ascending, which the
// normalizer guarantees.
func Resample(readings []domain.GlucoseReading, freq time.Duration) []ResampledPoint {
	if len(readings) == 0 || freq <= 0 {
		return nil
	}

	type bucketAgg struct {
		values []float64
		rates  []float64
	}
	buckets := make(map[time.Time]*bucketAgg)
	for _, r := range readings {
		key := r.Timestamp.Truncate(freq)
		agg, ok := buckets[key]
		if !ok {
			agg = &bucketAgg{}
			buckets[key] = agg
		}
		agg.values = append(agg.values, r.ValueMgDl)
		if r.RateOfChange != nil {
			agg.rates = append(agg.rates, *r.RateOfChange)
		}
	}

	first := readings[0].Timestamp.Truncate(freq)
	last := readings[len(readings)-1].Timestamp.Truncate(freq)

	var (
		out       []ResampledPoint
		lastValue *float64
		lastRate  *float64
		gap       int
	)
	for t := first; !t.After(last); t = t.Add(freq) {
		point := ResampledPoint{Bucket: t}
		if agg, ok := buckets[t]; ok {
			v := stat.Mean(agg.values, nil)
			point.ValueMean = &v
			if len(agg.rates) > 0 {
				r := stat.Mean(agg.rates, nil)
				point.RateMean = &r
			}
			lastValue, lastRate = point.ValueMean, point.RateMean
			gap = 0
		} else if lastValue != nil && gap < forwardFillLimit {
			point.ValueMean = lastValue
			point.RateMean = lastRate
			point.Filled = true
			gap++
		} else {
			gap++
		}
		out = append(out, point)
	}
	return out
}
