package engine

import (
	"testing"
	"time"

	"github.com/bloom-app/bloom/internal/models"
)

func day(offset int) time.Time {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	return base.AddDate(0, 0, offset)
}

// rec builds a check-in on base day + offset at the given hour.
func rec(task string, category models.Category, offset, hour int) models.CheckinRecord {
	ts := time.Date(2026, 3, 10, hour, 0, 0, 0, time.Local).AddDate(0, 0, offset)
	return models.CheckinRecord{
		Task:      task,
		Category:  category,
		Timestamp: ts,
		Date:      CalendarDay(ts),
	}
}

func wake(offset, hour int) models.CheckinRecord {
	return rec(models.WakeTaskName, models.CategoryWake, offset, hour)
}

func sleep(offset, hour int) models.CheckinRecord {
	return rec(models.SleepTaskName, models.CategorySleep, offset, hour)
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func TestEvaluate_MorningBird(t *testing.T) {
	var log []models.CheckinRecord
	for i := 0; i < 6; i++ {
		log = append(log, wake(-i, 8))
	}

	got := Evaluate(log, day(0), models.AchievementState{})
	if contains(got, "morningBird") {
		t.Fatal("morningBird unlocked with only 6 morning wakes")
	}

	log = append(log, wake(-6, 8))
	got = Evaluate(log, day(0), models.AchievementState{})
	if !contains(got, "morningBird") {
		t.Errorf("morningBird not unlocked with 7 morning wakes: %v", got)
	}
}

func TestEvaluate_MorningWindowBoundsInclusive(t *testing.T) {
	// Hour 9 is still morning; hour 10 is not.
	log := []models.CheckinRecord{
		wake(0, 6), wake(-1, 9), wake(-2, 9), wake(-3, 9),
		wake(-4, 9), wake(-5, 9), wake(-6, 10),
	}
	got := Evaluate(log, day(0), models.AchievementState{})
	if contains(got, "morningBird") {
		t.Fatal("wake at hour 10 counted toward morningBird")
	}

	log[6] = wake(-6, 9)
	got = Evaluate(log, day(0), models.AchievementState{})
	if !contains(got, "morningBird") {
		t.Errorf("wakes at hours 6-9 did not unlock morningBird: %v", got)
	}
}

func TestEvaluate_EarlyBird(t *testing.T) {
	// Five wakes at 07:00 qualify; 08:00 is morning but not early.
	var log []models.CheckinRecord
	for i := 0; i < 5; i++ {
		log = append(log, wake(-i, 7))
	}
	got := Evaluate(log, day(0), models.AchievementState{})
	if !contains(got, "earlyBird") {
		t.Errorf("earlyBird not unlocked with 5 early wakes: %v", got)
	}

	var lateLog []models.CheckinRecord
	for i := 0; i < 5; i++ {
		lateLog = append(lateLog, wake(-i, 8))
	}
	got = Evaluate(lateLog, day(0), models.AchievementState{})
	if contains(got, "earlyBird") {
		t.Error("earlyBird unlocked with wakes at 08:00")
	}
}

func TestEvaluate_MorningCountIsCumulative(t *testing.T) {
	// Seven qualifying wakes with gaps between them still count.
	log := []models.CheckinRecord{
		wake(0, 8), wake(-2, 8), wake(-4, 8), wake(-7, 8),
		wake(-10, 8), wake(-20, 8), wake(-30, 8),
	}
	got := Evaluate(log, day(0), models.AchievementState{})
	if !contains(got, "morningBird") {
		t.Errorf("non-consecutive morning wakes did not unlock morningBird: %v", got)
	}
}

func TestEvaluate_CategoryCounts(t *testing.T) {
	cases := []struct {
		key       string
		category  models.Category
		threshold int
	}{
		{"studyMaster", models.CategoryStudy, 10},
		{"workHero", models.CategoryWork, 15},
		{"lifeExpert", models.CategoryLife, 20},
	}

	for _, tc := range cases {
		var log []models.CheckinRecord
		for i := 0; i < tc.threshold-1; i++ {
			log = append(log, rec("task", tc.category, 0, 12))
		}
		got := Evaluate(log, day(0), models.AchievementState{})
		if contains(got, tc.key) {
			t.Errorf("%s unlocked below threshold", tc.key)
		}

		log = append(log, rec("task", tc.category, 0, 12))
		got = Evaluate(log, day(0), models.AchievementState{})
		if !contains(got, tc.key) {
			t.Errorf("%s not unlocked at threshold %d: %v", tc.key, tc.threshold, got)
		}
	}
}

func TestEvaluate_HealthyStreak(t *testing.T) {
	// Six healthy days are not enough.
	var log []models.CheckinRecord
	for i := 0; i < 6; i++ {
		log = append(log, wake(-i, 7), sleep(-i, 22))
	}
	got := Evaluate(log, day(0), models.AchievementState{})
	if contains(got, "healthyLife") {
		t.Fatal("healthyLife unlocked with 6-day streak")
	}

	// The seventh day completes the streak.
	log = append(log, wake(-6, 7), sleep(-6, 23))
	got = Evaluate(log, day(0), models.AchievementState{})
	if !contains(got, "healthyLife") {
		t.Errorf("healthyLife not unlocked with 7-day streak: %v", got)
	}
}

func TestEvaluate_HealthyStreakBrokenByBadDay(t *testing.T) {
	var log []models.CheckinRecord
	for i := 0; i < 7; i++ {
		if i == 3 {
			// Late wake breaks the streak in the middle.
			log = append(log, wake(-i, 11), sleep(-i, 22))
			continue
		}
		log = append(log, wake(-i, 7), sleep(-i, 22))
	}
	got := Evaluate(log, day(0), models.AchievementState{})
	if contains(got, "healthyLife") {
		t.Error("healthyLife unlocked across a broken streak")
	}
}

func TestEvaluate_HealthySleepWindow(t *testing.T) {
	cases := []struct {
		hour    int
		healthy bool
	}{
		{21, false},
		{22, true},
		{23, true},
		{0, true},
		{2, true},
		{3, false},
	}

	for _, tc := range cases {
		var log []models.CheckinRecord
		for i := 0; i < 7; i++ {
			log = append(log, wake(-i, 7), sleep(-i, tc.hour))
		}
		got := Evaluate(log, day(0), models.AchievementState{})
		if contains(got, "healthyLife") != tc.healthy {
			t.Errorf("sleep at hour %d: healthy=%v, want %v", tc.hour, !tc.healthy, tc.healthy)
		}
	}
}

func TestEvaluate_SkipsUnlocked(t *testing.T) {
	var log []models.CheckinRecord
	for i := 0; i < 10; i++ {
		log = append(log, rec("study", models.CategoryStudy, 0, 12))
	}

	unlocked := models.AchievementState{Unlocked: []string{"studyMaster"}}
	got := Evaluate(log, day(0), unlocked)
	if contains(got, "studyMaster") {
		t.Error("Evaluate returned an already-unlocked key")
	}
}

func TestEvaluate_EmptyLog(t *testing.T) {
	got := Evaluate(nil, day(0), models.AchievementState{})
	if len(got) != 0 {
		t.Errorf("empty log unlocked %v", got)
	}
}
