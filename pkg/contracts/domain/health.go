package domain

import (
	"time"
)

// HealthRecord is one physiological observation from an Apple Health
// export. Records are supplied fully formed by the health adapter and
// treated as read-only input to alignment. StartDate is the alignment
// anchor.
type HealthRecord struct {
	Type         string    `json:"type" csv:"Type"`
	SourceName   string    `json:"source_name" csv:"SourceName"`
	Unit         string    `json:"unit,omitempty" csv:"Unit"`
	Value        *float64  `json:"value,omitempty" csv:"Value"`
	CreationDate time.Time `json:"creation_date" csv:"CreationDate"`
	StartDate    time.Time `json:"start_date" csv:"StartDate"`
	EndDate      time.Time `json:"end_date" csv:"EndDate"`
}

// Workout is one workout session from an Apple Health export.
type Workout struct {
	ActivityType          string    `json:"activity_type" csv:"ActivityType"`
	Duration              *float64  `json:"duration,omitempty" csv:"Duration"`
	DurationUnit          string    `json:"duration_unit,omitempty" csv:"DurationUnit"`
	TotalDistance         *float64  `json:"total_distance,omitempty" csv:"TotalDistance"`
	TotalDistanceUnit     string    `json:"total_distance_unit,omitempty" csv:"TotalDistanceUnit"`
	TotalEnergyBurned     *float64  `json:"total_energy_burned,omitempty" csv:"TotalEnergyBurned"`
	TotalEnergyBurnedUnit string    `json:"total_energy_burned_unit,omitempty" csv:"TotalEnergyBurnedUnit"`
	SourceName            string    `json:"source_name" csv:"SourceName"`
	CreationDate          time.Time `json:"creation_date" csv:"CreationDate"`
	StartDate             time.Time `json:"start_date" csv:"StartDate"`
	EndDate               time.Time `json:"end_date" csv:"EndDate"`
}

// Well-known HealthKit record type identifiers used by the convenience
// selectors on the health adapter.
const (
	TypeBloodGlucose           = "HKQuantityTypeIdentifierBloodGlucose"
	TypeInsulinDelivery        = "HKCategoryTypeIdentifierInsulinDelivery"
	TypeStepCount              = "HKQuantityTypeIdentifierStepCount"
	TypeDistanceWalkingRunning = "HKQuantityTypeIdentifierDistanceWalkingRunning"
	TypeActiveEnergyBurned     = "HKQuantityTypeIdentifierActiveEnergyBurned"
	TypeBasalEnergyBurned      = "HKQuantityTypeIdentifierBasalEnergyBurned"
	TypeFlightsClimbed         = "HKQuantityTypeIdentifierFlightsClimbed"
	TypeSleepAnalysis          = "HKCategoryTypeIdentifierSleepAnalysis"
)

// GlucoseRecordTypes covers glucose-related HealthKit identifiers.
func GlucoseRecordTypes() []string {
	return []string{TypeBloodGlucose, TypeInsulinDelivery}
}

// ActivityRecordTypes covers movement and energy HealthKit identifiers.
func ActivityRecordTypes() []string {
	return []string{
		TypeStepCount,
		TypeDistanceWalkingRunning,
		TypeActiveEnergyBurned,
		TypeBasalEnergyBurned,
		TypeFlightsClimbed,
	}
}

// SleepRecordTypes covers sleep HealthKit identifiers.
func SleepRecordTypes() []string {
	return []string{TypeSleepAnalysis}
}
