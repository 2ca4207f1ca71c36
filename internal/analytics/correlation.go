// Package analytics computes descriptive statistics and correlations
// over the aligned dataset.
package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/georgekenefati/Apple-Health-DS/internal/alignment"
	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

// minPairedObservations is the smallest sample that yields a reported
// correlation. Columns with fewer paired values are omitted.
const minPairedObservations = 10

// Correlation pairs a column name with its Pearson coefficient against
// the glucose value.
type Correlation struct {
	Column      string  `json:"column"`
	Coefficient float64 `json:"coefficient"`
}

// numericColumns enumerates the numeric fields of an aligned record
// that can be correlated against the glucose value. An extractor
// returns nil when the record holds no value for the column.
var numericColumns = []struct {
	name    string
	extract func(domain.AlignedRecord) *float64
}{
	{"value", func(r domain.AlignedRecord) *float64 { return r.Health.Value }},
	{"time_diff_minutes", func(r domain.AlignedRecord) *float64 { v := r.TimeDiffMinutes; return &v }},
	{"glucose_rate_change", func(r domain.AlignedRecord) *float64 { return r.Glucose.RateOfChange }},
	{"hour", func(r domain.AlignedRecord) *float64 {
		v := float64(alignment.ContextOf(r.GlucoseTimestamp).Hour)
		return &v
	}},
	{"day_of_week", func(r domain.AlignedRecord) *float64 {
		v := float64(alignment.ContextOf(r.GlucoseTimestamp).DayOfWeek)
		return &v
	}},
}

// Correlations computes the Pearson correlation of the glucose value
// against every other numeric column with more than
// minPairedObservations non-null paired observations, ordered by
// descending absolute coefficient. Undefined correlations (constant
// columns) are excluded.
func Correlations(aligned []domain.AlignedRecord) []Correlation {
	var out []Correlation
	for _, col := range numericColumns {
		var xs, ys []float64
		for _, rec := range aligned {
			v := col.extract(rec)
			if v == nil {
				continue
			}
			xs = append(xs, rec.Glucose.ValueMgDl)
			ys = append(ys, *v)
		}
		if len(xs) <= minPairedObservations {
			continue
		}

		r := stat.Correlation(xs, ys, nil)
		if math.IsNaN(r) {
			continue
		}
		out = append(out, Correlation{Column: col.name, Coefficient: r})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Coefficient) > math.Abs(out[j].Coefficient)
	})
	return out
}
