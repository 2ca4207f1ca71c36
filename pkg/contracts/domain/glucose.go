package domain

import (
	"time"
)

// GlucoseSource identifies which sensor channel supplied a reading.
type GlucoseSource string

const (
	SourceHistoric    GlucoseSource = "historic"
	SourceScan        GlucoseSource = "scan"
	SourceFingerstick GlucoseSource = "fingerstick"
)

// GlucoseTrend categorizes the rate of change of consecutive readings,
// in mg/dL per minute.
type GlucoseTrend string

const (
	TrendRisingFast  GlucoseTrend = "rising_fast"
	TrendRising      GlucoseTrend = "rising"
	TrendStable      GlucoseTrend = "stable"
	TrendFalling     GlucoseTrend = "falling"
	TrendFallingFast GlucoseTrend = "falling_fast"
)

// GlucoseRange categorizes a reading against clinical glucose bands.
type GlucoseRange string

const (
	RangeVeryLow  GlucoseRange = "very_low"
	RangeLow      GlucoseRange = "low"
	RangeNormal   GlucoseRange = "normal"
	RangeHigh     GlucoseRange = "high"
	RangeVeryHigh GlucoseRange = "very_high"
)

// MmolToMgDl is the conversion factor from mmol/L to mg/dL.
const MmolToMgDl = 18.0182

// Physiologically plausible glucose bounds in mg/dL. Readings outside
// this band are treated as sensor errors and discarded.
const (
	MinValidGlucose = 20.0
	MaxValidGlucose = 600.0
)

// GlucoseReading is one normalized CGM observation. Instances are
// created by the normalizer and immutable afterwards.
type GlucoseReading struct {
	Timestamp time.Time     `json:"timestamp" csv:"Timestamp"`
	ValueMgDl float64       `json:"value_mg_dl" csv:"ValueMgDl"`
	Source    GlucoseSource `json:"source" csv:"Source"`

	// RateOfChange is mg/dL per minute relative to the previous
	// reading. Nil for the first reading of a series.
	RateOfChange *float64 `json:"rate_of_change,omitempty" csv:"RateOfChange"`

	Trend GlucoseTrend `json:"trend" csv:"Trend"`
	Range GlucoseRange `json:"range" csv:"Range"`
}

// ClassifyTrend maps a rate of change to a trend category. A nil rate
// (first reading) is stable. Rates of exactly +-1 and +-2 classify as
// rising/falling rather than stable.
func ClassifyTrend(rate *float64) GlucoseTrend {
	if rate == nil {
		return TrendStable
	}
	r := *rate
	switch {
	case r > 2:
		return TrendRisingFast
	case r >= 1:
		return TrendRising
	case r < -2:
		return TrendFallingFast
	case r <= -1:
		return TrendFalling
	default:
		return TrendStable
	}
}

// ClassifyRange maps a glucose value in mg/dL to a clinical range band.
func ClassifyRange(valueMgDl float64) GlucoseRange {
	switch {
	case valueMgDl < 54:
		return RangeVeryLow
	case valueMgDl < 70:
		return RangeLow
	case valueMgDl <= 180:
		return RangeNormal
	case valueMgDl <= 250:
		return RangeHigh
	default:
		return RangeVeryHigh
	}
}

// TimeInRangeStats summarizes a normalized glucose series as named
// percentages and descriptive statistics.
type TimeInRangeStats struct {
	TimeVeryLowPercent   float64 `json:"time_very_low_percent"`
	TimeLowPercent       float64 `json:"time_low_percent"`
	TimeInRangePercent   float64 `json:"time_in_range_percent"`
	TimeHighPercent      float64 `json:"time_high_percent"`
	TimeVeryHighPercent  float64 `json:"time_very_high_percent"`
	AverageGlucose       float64 `json:"average_glucose"`
	GlucoseStd           float64 `json:"glucose_std"`
	CoefficientVariation float64 `json:"coefficient_variation"`
	TotalReadings        int     `json:"total_readings"`
}
