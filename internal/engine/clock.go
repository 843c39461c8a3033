package engine

import "time"

// Clock supplies the current time. Injected so tests can drive the
// calendar-day and hour-of-day logic deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// CalendarDay returns the local calendar day of t in YYYY-MM-DD form.
func CalendarDay(t time.Time) string {
	return t.Format("2006-01-02")
}

// HourOfDay returns the local hour of t in [0, 23].
func HourOfDay(t time.Time) int {
	return t.Hour()
}
