package glucose

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

func reading(ts time.Time, value float64) domain.GlucoseReading {
	return domain.GlucoseReading{
		Timestamp: ts,
		ValueMgDl: value,
		Source:    domain.SourceHistoric,
		Trend:     domain.TrendStable,
		Range:     domain.ClassifyRange(value),
	}
}

func TestTimeInRange_Percentages(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	readings := []domain.GlucoseReading{
		reading(base, 50),                    // very_low
		reading(base.Add(5*time.Minute), 60), // low
		reading(base.Add(10*time.Minute), 100),
		reading(base.Add(15*time.Minute), 150),
		reading(base.Add(20*time.Minute), 200), // high
		reading(base.Add(25*time.Minute), 300), // very_high
	}

	stats := TimeInRange(readings)

	assert.InDelta(t, 100.0/6, stats.TimeVeryLowPercent, 1e-9)
	assert.InDelta(t, 100.0/6, stats.TimeLowPercent, 1e-9)
	assert.InDelta(t, 200.0/6, stats.TimeInRangePercent, 1e-9)
	assert.InDelta(t, 100.0/6, stats.TimeHighPercent, 1e-9)
	assert.InDelta(t, 100.0/6, stats.TimeVeryHighPercent, 1e-9)
	assert.Equal(t, 6, stats.TotalReadings)
}

func TestTimeInRange_MeanStdCV(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	readings := []domain.GlucoseReading{
		reading(base, 90),
		reading(base.Add(5*time.Minute), 110),
	}

	stats := TimeInRange(readings)

	assert.InDelta(t, 100.0, stats.AverageGlucose, 1e-9)
	// Sample standard deviation of {90, 110}.
	assert.InDelta(t, 14.142135623, stats.GlucoseStd, 1e-6)
	assert.InDelta(t, stats.GlucoseStd/100*100, stats.CoefficientVariation, 1e-9)
}

func TestTimeInRange_Empty(t *testing.T) {
	stats := TimeInRange(nil)
	assert.Zero(t, stats.TotalReadings)
	assert.Zero(t, stats.AverageGlucose)
}

func TestResample_MeansAndForwardFill(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	readings := []domain.GlucoseReading{
		reading(base, 100),
		reading(base.Add(5*time.Minute), 110),
		// Gap of three empty 15-minute buckets, then one more reading.
		reading(base.Add(60*time.Minute), 130),
	}

	points := Resample(readings, 15*time.Minute)
	require.Len(t, points, 5)

	require.NotNil(t, points[0].ValueMean)
	assert.InDelta(t, 105.0, *points[0].ValueMean, 1e-9)

	// Two buckets forward-filled, then the limit cuts off.
	assert.True(t, points[1].Filled)
	assert.True(t, points[2].Filled)
	require.NotNil(t, points[1].ValueMean)
	assert.InDelta(t, 105.0, *points[1].ValueMean, 1e-9)
	assert.Nil(t, points[3].ValueMean)

	require.NotNil(t, points[4].ValueMean)
	assert.InDelta(t, 130.0, *points[4].ValueMean, 1e-9)
}

func TestResample_Empty(t *testing.T) {
	assert.Nil(t, Resample(nil, 15*time.Minute))
}
