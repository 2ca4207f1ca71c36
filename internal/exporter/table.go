package exporter

import (
	"strconv"
	"time"

	"github.com/georgekenefati/Apple-Health-DS/internal/alignment"
	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

// Table is the flattened, stringly-typed form of a dataset shared by
// the row-oriented writers. Timestamps are ISO-8601; absent values are
// empty cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// AlignedTable flattens aligned records, including the contextual time
// features derived from the glucose timestamp.
func AlignedTable(records []domain.AlignedRecord) *Table {
	table := &Table{
		Headers: []string{
			"health_timestamp", "glucose_timestamp", "time_diff_minutes",
			"type", "source_name", "unit", "value",
			"glucose_value", "glucose_source", "glucose_rate_change",
			"glucose_trend", "glucose_range",
			"hour", "day_of_week", "is_weekend", "is_night",
			"is_morning", "is_afternoon", "is_evening", "likely_meal_time",
		},
	}

	for _, rec := range records {
		ctx := alignment.ContextOf(rec.GlucoseTimestamp)
		table.Rows = append(table.Rows, []string{
			formatTime(rec.HealthTimestamp),
			formatTime(rec.GlucoseTimestamp),
			formatFloat(rec.TimeDiffMinutes),
			rec.Health.Type,
			rec.Health.SourceName,
			rec.Health.Unit,
			formatFloatPtr(rec.Health.Value),
			formatFloat(rec.Glucose.ValueMgDl),
			string(rec.Glucose.Source),
			formatFloatPtr(rec.Glucose.RateOfChange),
			string(rec.Glucose.Trend),
			string(rec.Glucose.Range),
			strconv.Itoa(ctx.Hour),
			strconv.Itoa(ctx.DayOfWeek),
			formatBool(ctx.IsWeekend),
			formatBool(ctx.IsNight),
			formatBool(ctx.IsMorning),
			formatBool(ctx.IsAfternoon),
			formatBool(ctx.IsEvening),
			formatBool(ctx.LikelyMealTime),
		})
	}
	return table
}

// WindowedTable flattens windowed aggregates.
func WindowedTable(windows []domain.WindowedAggregate) *Table {
	table := &Table{
		Headers: []string{
			"window_start",
			"glucose_value_mean", "glucose_value_std", "glucose_value_count",
			"value_mean", "value_sum", "time_diff_minutes_mean",
			"type_mode", "glucose_range_mode", "glucose_trend_mode", "source_name_mode",
		},
	}

	for _, w := range windows {
		table.Rows = append(table.Rows, []string{
			formatTime(w.WindowStart),
			formatFloat(w.GlucoseMean),
			formatFloatPtr(w.GlucoseStd),
			strconv.Itoa(w.GlucoseCount),
			formatFloatPtr(w.HealthValueMean),
			formatFloat(w.HealthValueSum),
			formatFloat(w.TimeDiffMean),
			formatStringPtr(w.TypeMode),
			formatStringPtr(w.RangeMode),
			formatStringPtr(w.TrendMode),
			formatStringPtr(w.SourceNameMode),
		})
	}
	return table
}

func formatTime(ts time.Time) string {
	return ts.Format(time.RFC3339)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatStringPtr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatBool(v bool) string {
	return strconv.FormatBool(v)
}
