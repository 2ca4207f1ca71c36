package analytics

import (
	"time"

	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

// DatasetSummary describes the shape of an aligned dataset for
// reporting.
type DatasetSummary struct {
	AlignedRecords int            `json:"aligned_records"`
	FirstTimestamp time.Time      `json:"first_timestamp"`
	LastTimestamp  time.Time      `json:"last_timestamp"`
	RecordsByType  map[string]int `json:"records_by_type"`
}

// Summarize reports record counts and the covered time span of an
// aligned dataset.
func Summarize(aligned []domain.AlignedRecord) DatasetSummary {
	summary := DatasetSummary{
		AlignedRecords: len(aligned),
		RecordsByType:  make(map[string]int),
	}
	for _, rec := range aligned {
		summary.RecordsByType[rec.Health.Type]++
		ts := rec.GlucoseTimestamp
		if summary.FirstTimestamp.IsZero() || ts.Before(summary.FirstTimestamp) {
			summary.FirstTimestamp = ts
		}
		if ts.After(summary.LastTimestamp) {
			summary.LastTimestamp = ts
		}
	}
	return summary
}
