package models

import "time"

// Category classifies a check-in. The five known values drive achievement
// counting; anything else is a custom, free-text category that is preserved
// for display and statistics but never feeds achievement math.
type Category string

const (
	CategoryLife  Category = "life"
	CategoryStudy Category = "study"
	CategoryWork  Category = "work"
	CategoryWake  Category = "wake"
	CategorySleep Category = "sleep"
)

// Known reports whether c is one of the fixed enum values.
func (c Category) Known() bool {
	switch c {
	case CategoryLife, CategoryStudy, CategoryWork, CategoryWake, CategorySleep:
		return true
	}
	return false
}

// Well-known task names for the two quick check-in buttons.
const (
	WakeTaskName  = "I'm awake"
	SleepTaskName = "Off to sleep"
)

// CheckinRecord is a single timestamped check-in. Records are immutable
// once created; the log is append-only and owned by the engine.
type CheckinRecord struct {
	ID        int64     `json:"id"` // unix milliseconds at creation, monotonic
	Task      string    `json:"task"`
	Category  Category  `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	Date      string    `json:"date"` // local calendar day, YYYY-MM-DD
}
