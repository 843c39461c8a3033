package engine

import (
	"time"

	"github.com/bloom-app/bloom/internal/config"
	"github.com/bloom-app/bloom/internal/models"
)

// Evaluate returns the achievement keys that newly qualify given the
// check-in log and the current time. It never returns already-unlocked
// keys and never mutates anything; unlocking is the engine's job.
func Evaluate(log []models.CheckinRecord, now time.Time, unlocked models.AchievementState) []string {
	var newKeys []string
	for _, def := range config.Achievements {
		if unlocked.Has(def.Key) {
			continue
		}
		if qualifies(def, log, now) {
			newKeys = append(newKeys, def.Key)
		}
	}
	return newKeys
}

func qualifies(def config.AchievementDefinition, log []models.CheckinRecord, now time.Time) bool {
	switch def.Kind {
	case config.KindMorningWake:
		return countWakesBetween(log, config.MorningWakeStartHour, config.MorningWakeEndHour) >= def.Threshold
	case config.KindEarlyWake:
		return countWakesBetween(log, config.MorningWakeStartHour, config.EarlyWakeEndHour) >= def.Threshold
	case config.KindCategoryCount:
		return countCategory(log, models.Category(def.Category)) >= def.Threshold
	case config.KindHealthyStreak:
		return consecutiveHealthyDays(log, now) >= def.Threshold
	}
	return false
}

// countWakesBetween counts wake check-ins whose hour falls in
// [startHour, endHour], both bounds inclusive. This is a cumulative count
// over the whole log, not a streak.
func countWakesBetween(log []models.CheckinRecord, startHour, endHour int) int {
	count := 0
	for _, rec := range log {
		if rec.Task != models.WakeTaskName {
			continue
		}
		hour := HourOfDay(rec.Timestamp)
		if hour >= startHour && hour <= endHour {
			count++
		}
	}
	return count
}

func countCategory(log []models.CheckinRecord, category models.Category) int {
	count := 0
	for _, rec := range log {
		if rec.Category == category {
			count++
		}
	}
	return count
}

// consecutiveHealthyDays walks backward from today's calendar day and
// counts consecutive days with a morning wake and a healthy bedtime,
// stopping at the first day that misses either. A day with a wake outside
// [6,9] or a sleep outside the 22:00–02:59 window is not healthy.
func consecutiveHealthyDays(log []models.CheckinRecord, now time.Time) int {
	streak := 0
	for i := 0; i < config.HealthyStreakDays; i++ {
		day := CalendarDay(now.AddDate(0, 0, -i))
		if !isHealthyDay(log, day) {
			break
		}
		streak++
	}
	return streak
}

func isHealthyDay(log []models.CheckinRecord, day string) bool {
	wakeOK, sleepOK := false, false
	for _, rec := range log {
		if rec.Date != day {
			continue
		}
		hour := HourOfDay(rec.Timestamp)
		switch rec.Task {
		case models.WakeTaskName:
			if hour >= config.MorningWakeStartHour && hour <= config.MorningWakeEndHour {
				wakeOK = true
			}
		case models.SleepTaskName:
			if hour >= config.HealthySleepStartHour || hour <= config.HealthySleepEndHour {
				sleepOK = true
			}
		}
	}
	return wakeOK && sleepOK
}
