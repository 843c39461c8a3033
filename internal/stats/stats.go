package stats

import (
	"time"

	"github.com/bloom-app/bloom/internal/engine"
	"github.com/bloom-app/bloom/internal/models"
)

// DayCount is one day's check-in total, oldest first in Summary.LastWeek.
type DayCount struct {
	Date  string
	Count int
}

// Summary aggregates the check-in log for the statistics views.
type Summary struct {
	Total      int
	ByCategory map[models.Category]int
	LastWeek   []DayCount

	// Average hour of wake and sleep check-ins; -1 when there are none.
	AvgWakeHour  float64
	AvgSleepHour float64
}

// Summarize computes a Summary over the log anchored at now.
func Summarize(log []models.CheckinRecord, now time.Time) Summary {
	s := Summary{
		ByCategory:   make(map[models.Category]int),
		AvgWakeHour:  -1,
		AvgSleepHour: -1,
	}

	byDate := make(map[string]int)
	wakeHours, sleepHours := 0, 0
	wakeCount, sleepCount := 0, 0

	for _, rec := range log {
		s.Total++
		s.ByCategory[rec.Category]++
		byDate[rec.Date]++

		switch rec.Task {
		case models.WakeTaskName:
			wakeHours += engine.HourOfDay(rec.Timestamp)
			wakeCount++
		case models.SleepTaskName:
			sleepHours += engine.HourOfDay(rec.Timestamp)
			sleepCount++
		}
	}

	for i := 6; i >= 0; i-- {
		date := engine.CalendarDay(now.AddDate(0, 0, -i))
		s.LastWeek = append(s.LastWeek, DayCount{Date: date, Count: byDate[date]})
	}

	if wakeCount > 0 {
		s.AvgWakeHour = float64(wakeHours) / float64(wakeCount)
	}
	if sleepCount > 0 {
		s.AvgSleepHour = float64(sleepHours) / float64(sleepCount)
	}

	return s
}
