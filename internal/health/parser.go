// Package health adapts Apple Health XML exports into the record model
// the alignment stage consumes. It is a format adapter: parsing and
// attribute coercion only, no analysis.
package health

import (
	"encoding/xml"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	apperrors "github.com/georgekenefati/Apple-Health-DS/internal/errors"
	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

// appleDateLayout is the timestamp format used throughout Apple Health
// exports.
const appleDateLayout = "2006-01-02 15:04:05 -0700"

// Export holds the parsed contents of an Apple Health export.xml.
type Export struct {
	records  []domain.HealthRecord
	workouts []domain.Workout
}

// ParseExport streams an Apple Health export.xml and collects its
// Record and Workout elements. The export can be hundreds of megabytes,
// so elements are decoded one at a time instead of loading the
// document tree.
func ParseExport(path string, logger *slog.Logger) (*Export, error) {
	if logger == nil {
		logger = slog.Default()
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewSourceNotFoundError(path, err)
		}
		return nil, apperrors.NewParseError("failed to open health export", err)
	}
	defer file.Close()

	export := &Export{}
	decoder := xml.NewDecoder(file)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParseError("malformed health export XML", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "Record":
			export.records = append(export.records, recordFromAttrs(start.Attr))
			decoder.Skip()
		case "Workout":
			export.workouts = append(export.workouts, workoutFromAttrs(start.Attr))
			decoder.Skip()
		}
	}

	logger.Info("parsed health export",
		slog.String("path", path),
		slog.Int("records", len(export.records)),
		slog.Int("workouts", len(export.workouts)))

	return export, nil
}

// Records returns the health records, optionally filtered by type
// identifiers. With no filter, all records are returned. The returned
// slice is a fresh copy; callers cannot alias the export's state.
func (e *Export) Records(types ...string) []domain.HealthRecord {
	if len(types) == 0 {
		out := make([]domain.HealthRecord, len(e.records))
		copy(out, e.records)
		return out
	}

	wanted := make(map[string]struct{}, len(types))
	for _, t := range types {
		wanted[t] = struct{}{}
	}

	var out []domain.HealthRecord
	for _, r := range e.records {
		if _, ok := wanted[r.Type]; ok {
			out = append(out, r)
		}
	}
	return out
}

// GlucoseRecords returns glucose-related records.
func (e *Export) GlucoseRecords() []domain.HealthRecord {
	return e.Records(domain.GlucoseRecordTypes()...)
}

// ActivityRecords returns movement and energy records.
func (e *Export) ActivityRecords() []domain.HealthRecord {
	return e.Records(domain.ActivityRecordTypes()...)
}

// SleepRecords returns sleep analysis records.
func (e *Export) SleepRecords() []domain.HealthRecord {
	return e.Records(domain.SleepRecordTypes()...)
}

// Workouts returns the workout sessions of the export.
func (e *Export) Workouts() []domain.Workout {
	out := make([]domain.Workout, len(e.workouts))
	copy(out, e.workouts)
	return out
}

func recordFromAttrs(attrs []xml.Attr) domain.HealthRecord {
	var record domain.HealthRecord
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "type":
			record.Type = attr.Value
		case "sourceName":
			record.SourceName = attr.Value
		case "unit":
			record.Unit = attr.Value
		case "value":
			record.Value = parseNumeric(attr.Value)
		case "creationDate":
			record.CreationDate = parseAppleDate(attr.Value)
		case "startDate":
			record.StartDate = parseAppleDate(attr.Value)
		case "endDate":
			record.EndDate = parseAppleDate(attr.Value)
		}
	}
	return record
}

func workoutFromAttrs(attrs []xml.Attr) domain.Workout {
	var w domain.Workout
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "workoutActivityType":
			w.ActivityType = attr.Value
		case "duration":
			w.Duration = parseNumeric(attr.Value)
		case "durationUnit":
			w.DurationUnit = attr.Value
		case "totalDistance":
			w.TotalDistance = parseNumeric(attr.Value)
		case "totalDistanceUnit":
			w.TotalDistanceUnit = attr.Value
		case "totalEnergyBurned":
			w.TotalEnergyBurned = parseNumeric(attr.Value)
		case "totalEnergyBurnedUnit":
			w.TotalEnergyBurnedUnit = attr.Value
		case "sourceName":
			w.SourceName = attr.Value
		case "creationDate":
			w.CreationDate = parseAppleDate(attr.Value)
		case "startDate":
			w.StartDate = parseAppleDate(attr.Value)
		case "endDate":
			w.EndDate = parseAppleDate(attr.Value)
		}
	}
	return w
}

// parseNumeric coerces a value attribute to a float. Categorical values
// (sleep stages and similar) are non-numeric and yield nil.
func parseNumeric(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseAppleDate parses Apple's export timestamp format; unparseable
// dates yield the zero time rather than failing the whole export.
func parseAppleDate(s string) time.Time {
	ts, err := time.Parse(appleDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return ts
}
