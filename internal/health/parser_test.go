package health

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/georgekenefati/Apple-Health-DS/internal/errors"
	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8"?>
<HealthData locale="en_US">
 <ExportDate value="2024-03-15 10:00:00 -0500"/>
 <Record type="HKQuantityTypeIdentifierStepCount" sourceName="iPhone" unit="count"
   value="523" creationDate="2024-03-01 08:10:00 -0500"
   startDate="2024-03-01 08:00:00 -0500" endDate="2024-03-01 08:10:00 -0500"/>
 <Record type="HKQuantityTypeIdentifierBloodGlucose" sourceName="Libre" unit="mg/dL"
   value="112" creationDate="2024-03-01 08:05:00 -0500"
   startDate="2024-03-01 08:05:00 -0500" endDate="2024-03-01 08:05:00 -0500"/>
 <Record type="HKCategoryTypeIdentifierSleepAnalysis" sourceName="Watch" unit=""
   value="HKCategoryValueSleepAnalysisAsleepCore" creationDate="2024-03-01 07:00:00 -0500"
   startDate="2024-03-01 01:00:00 -0500" endDate="2024-03-01 06:30:00 -0500"/>
 <Workout workoutActivityType="HKWorkoutActivityTypeRunning" duration="31.5"
   durationUnit="min" totalDistance="5.2" totalDistanceUnit="km"
   totalEnergyBurned="342" totalEnergyBurnedUnit="kcal" sourceName="Watch"
   creationDate="2024-03-01 18:35:00 -0500" startDate="2024-03-01 18:00:00 -0500"
   endDate="2024-03-01 18:31:30 -0500"/>
</HealthData>
`

func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseExport(t *testing.T) {
	export, err := ParseExport(writeExport(t, sampleExport), slog.Default())
	require.NoError(t, err)

	records := export.Records()
	require.Len(t, records, 3)

	steps := records[0]
	assert.Equal(t, domain.TypeStepCount, steps.Type)
	assert.Equal(t, "iPhone", steps.SourceName)
	assert.Equal(t, "count", steps.Unit)
	require.NotNil(t, steps.Value)
	assert.InDelta(t, 523.0, *steps.Value, 1e-9)
	assert.Equal(t, 2024, steps.StartDate.Year())
	assert.Equal(t, 8, steps.StartDate.Hour())
}

func TestParseExport_NonNumericValueIsNil(t *testing.T) {
	export, err := ParseExport(writeExport(t, sampleExport), slog.Default())
	require.NoError(t, err)

	sleep := export.SleepRecords()
	require.Len(t, sleep, 1)
	assert.Nil(t, sleep[0].Value)
}

func TestExport_RecordsFilter(t *testing.T) {
	export, err := ParseExport(writeExport(t, sampleExport), slog.Default())
	require.NoError(t, err)

	tests := []struct {
		name  string
		got   []domain.HealthRecord
		types []string
	}{
		{"glucose", export.GlucoseRecords(), []string{domain.TypeBloodGlucose}},
		{"activity", export.ActivityRecords(), []string{domain.TypeStepCount}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Len(t, tt.got, 1)
			assert.Contains(t, tt.types, tt.got[0].Type)
		})
	}

	assert.Empty(t, export.Records("HKQuantityTypeIdentifierHeartRate"))
}

func TestExport_Workouts(t *testing.T) {
	export, err := ParseExport(writeExport(t, sampleExport), slog.Default())
	require.NoError(t, err)

	workouts := export.Workouts()
	require.Len(t, workouts, 1)
	assert.Equal(t, "HKWorkoutActivityTypeRunning", workouts[0].ActivityType)
	require.NotNil(t, workouts[0].TotalEnergyBurned)
	assert.InDelta(t, 342.0, *workouts[0].TotalEnergyBurned, 1e-9)
}

func TestParseExport_MissingFile(t *testing.T) {
	_, err := ParseExport(filepath.Join(t.TempDir(), "missing.xml"), slog.Default())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSourceNotFound))
}

func TestParseExport_MalformedXML(t *testing.T) {
	_, err := ParseExport(writeExport(t, "<HealthData><Record type="), slog.Default())
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParse))
}

func TestExport_RecordsReturnsCopy(t *testing.T) {
	export, err := ParseExport(writeExport(t, sampleExport), slog.Default())
	require.NoError(t, err)

	first := export.Records()
	first[0].SourceName = "mutated"

	assert.Equal(t, "iPhone", export.Records()[0].SourceName)
}
