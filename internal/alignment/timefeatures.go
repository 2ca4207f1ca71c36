package alignment

import (
	"time"

	"github.com/georgekenefati/Apple-Health-DS/pkg/contracts/domain"
)

// ContextOf derives the contextual time features for a timestamp.
// Day-of-week is Monday=0..Sunday=6. The night band spans midnight
// (22:00 through 06:59), so it cannot be a plain between check.
func ContextOf(ts time.Time) domain.TimeContext {
	hour := ts.Hour()
	day := (int(ts.Weekday()) + 6) % 7 // Monday=0

	return domain.TimeContext{
		Hour:        hour,
		DayOfWeek:   day,
		IsWeekend:   day == 5 || day == 6,
		IsNight:     hour >= 22 || hour <= 6,
		IsMorning:   hour >= 6 && hour < 12,
		IsAfternoon: hour >= 12 && hour < 18,
		IsEvening:   hour >= 18 && hour < 22,
		LikelyMealTime: (hour >= 7 && hour <= 9) ||
			(hour >= 12 && hour <= 14) ||
			(hour >= 18 && hour <= 20),
	}
}
