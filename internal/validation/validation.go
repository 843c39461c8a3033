package validation

import (
	"fmt"
	"time"

	"github.com/bloom-app/bloom/internal/config"
	"github.com/bloom-app/bloom/internal/models"
)

// CheckResult is one document invariant check.
type CheckResult struct {
	Name    string
	OK      bool
	Message string
}

// ValidateDocument runs every invariant check against a document snapshot.
// Results come back in a stable order for the doctor output.
func ValidateDocument(doc models.Document) []CheckResult {
	return []CheckResult{
		checkVersion(doc),
		checkFlower(doc),
		checkAchievementPoints(doc),
		checkAchievementKeys(doc),
		checkCheckinIDs(doc),
		checkCheckinDates(doc),
		checkTodayStatus(doc),
	}
}

// Healthy reports whether every check passed.
func Healthy(results []CheckResult) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}

func checkVersion(doc models.Document) CheckResult {
	r := CheckResult{Name: "document version", OK: true}
	if doc.Version < 1 {
		r.OK = false
		r.Message = fmt.Sprintf("version %d is invalid", doc.Version)
	}
	return r
}

// checkFlower verifies the level is reachable from the sunlight total under
// the forward-only scan: the current threshold must be met, and the level
// may lag the total (levels never skip on replay) but never exceed it.
func checkFlower(doc models.Document) CheckResult {
	r := CheckResult{Name: "flower state", OK: true}
	level := doc.Flower.Level
	if level < 0 || level >= len(config.FlowerThresholds) {
		r.OK = false
		r.Message = fmt.Sprintf("level %d out of range", level)
		return r
	}
	if doc.Flower.Sunlight < config.FlowerThresholds[level] {
		r.OK = false
		r.Message = fmt.Sprintf("sunlight %d below threshold %d for level %d",
			doc.Flower.Sunlight, config.FlowerThresholds[level], level)
	}
	return r
}

func checkAchievementPoints(doc models.Document) CheckResult {
	r := CheckResult{Name: "achievement points", OK: true}
	want := config.AchievementBonusPoints * len(doc.Achievements.Unlocked)
	if doc.Achievements.Points != want {
		r.OK = false
		r.Message = fmt.Sprintf("points %d, expected %d for %d unlocked",
			doc.Achievements.Points, want, len(doc.Achievements.Unlocked))
	}
	return r
}

func checkAchievementKeys(doc models.Document) CheckResult {
	r := CheckResult{Name: "achievement keys", OK: true}
	seen := make(map[string]bool)
	for _, key := range doc.Achievements.Unlocked {
		if config.AchievementByKey(key) == nil {
			r.OK = false
			r.Message = fmt.Sprintf("unknown achievement %q", key)
			return r
		}
		if seen[key] {
			r.OK = false
			r.Message = fmt.Sprintf("achievement %q unlocked twice", key)
			return r
		}
		seen[key] = true
	}
	return r
}

func checkCheckinIDs(doc models.Document) CheckResult {
	r := CheckResult{Name: "check-in IDs", OK: true}
	var last int64
	for i, rec := range doc.Checkins {
		if rec.ID <= last {
			r.OK = false
			r.Message = fmt.Sprintf("record %d has non-increasing ID %d", i, rec.ID)
			return r
		}
		last = rec.ID
	}
	return r
}

func checkCheckinDates(doc models.Document) CheckResult {
	r := CheckResult{Name: "check-in dates", OK: true}
	for i, rec := range doc.Checkins {
		if _, err := time.Parse("2006-01-02", rec.Date); err != nil {
			r.OK = false
			r.Message = fmt.Sprintf("record %d has malformed date %q", i, rec.Date)
			return r
		}
		if rec.Task == "" {
			r.OK = false
			r.Message = fmt.Sprintf("record %d has an empty task", i)
			return r
		}
	}
	return r
}

func checkTodayStatus(doc models.Document) CheckResult {
	r := CheckResult{Name: "today status", OK: true}
	if doc.TodayStatus.Date == "" {
		return r
	}
	if _, err := time.Parse("2006-01-02", doc.TodayStatus.Date); err != nil {
		r.OK = false
		r.Message = fmt.Sprintf("malformed date %q", doc.TodayStatus.Date)
	}
	return r
}
