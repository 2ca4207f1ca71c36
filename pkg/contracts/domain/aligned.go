package domain

import (
	"time"
)

// AlignedRecord pairs a health record with its nearest-in-time glucose
// reading. TimeDiffMinutes is signed (health minus glucose) and always
// within the tolerance the aligner was invoked with; a health record
// with no glucose reading inside tolerance is dropped, never emitted
// with an empty match.
type AlignedRecord struct {
	HealthTimestamp  time.Time `json:"health_timestamp" csv:"HealthTimestamp"`
	GlucoseTimestamp time.Time `json:"glucose_timestamp" csv:"GlucoseTimestamp"`
	TimeDiffMinutes  float64   `json:"time_diff_minutes" csv:"TimeDiffMinutes"`

	Health  HealthRecord   `json:"health"`
	Glucose GlucoseReading `json:"glucose"`
}

// WindowedAggregate is one fixed-duration bucket of aligned records,
// keyed by the glucose timestamp. A window is only ever emitted when it
// holds at least one glucose observation.
type WindowedAggregate struct {
	WindowStart time.Time `json:"window_start" csv:"WindowStart"`

	GlucoseMean  float64  `json:"glucose_value_mean" csv:"GlucoseValueMean"`
	GlucoseStd   *float64 `json:"glucose_value_std,omitempty" csv:"GlucoseValueStd"`
	GlucoseCount int      `json:"glucose_value_count" csv:"GlucoseValueCount"`

	HealthValueMean *float64 `json:"health_value_mean,omitempty" csv:"HealthValueMean"`
	HealthValueSum  float64  `json:"health_value_sum" csv:"HealthValueSum"`

	TimeDiffMean float64 `json:"time_diff_minutes_mean" csv:"TimeDiffMinutesMean"`

	// Modal categorical fields. Nil when the window held no value for
	// that field; ties resolve to the first value encountered in
	// window order.
	TypeMode       *string `json:"type_mode,omitempty" csv:"TypeMode"`
	RangeMode      *string `json:"glucose_range_mode,omitempty" csv:"GlucoseRangeMode"`
	TrendMode      *string `json:"glucose_trend_mode,omitempty" csv:"GlucoseTrendMode"`
	SourceNameMode *string `json:"source_name_mode,omitempty" csv:"SourceNameMode"`
}

// TimeContext carries the contextual features derived from a timestamp.
type TimeContext struct {
	Hour           int  `json:"hour"`
	DayOfWeek      int  `json:"day_of_week"`
	IsWeekend      bool `json:"is_weekend"`
	IsNight        bool `json:"is_night"`
	IsMorning      bool `json:"is_morning"`
	IsAfternoon    bool `json:"is_afternoon"`
	IsEvening      bool `json:"is_evening"`
	LikelyMealTime bool `json:"likely_meal_time"`
}
