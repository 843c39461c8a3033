package engine

import "github.com/google/uuid"

// EventType identifies the structured notifications the engine emits.
type EventType string

const (
	// EventLevelUp fires once per flower level actually crossed.
	EventLevelUp EventType = "level_up"
	// EventAchievementUnlocked fires once per newly unlocked achievement.
	EventAchievementUnlocked EventType = "achievement_unlocked"
	// EventStoreDegraded fires at most once when persistence starts
	// failing and the engine falls back to in-memory state.
	EventStoreDegraded EventType = "store_degraded"
)

// Event is a structured notification for the UI layer. The engine never
// renders anything itself.
type Event struct {
	ID      string
	Type    EventType
	Payload map[string]string
}

func newEvent(t EventType, payload map[string]string) Event {
	return Event{ID: uuid.New().String(), Type: t, Payload: payload}
}

// Sink receives engine events. Implementations must not call back into the
// engine.
type Sink interface {
	Notify(Event)
}

// NullSink discards all events. Used for batch operations such as data
// import, which must not replay notifications.
type NullSink struct{}

func (NullSink) Notify(Event) {}

// MultiSink fans an event out to several sinks in order.
type MultiSink []Sink

func (m MultiSink) Notify(e Event) {
	for _, s := range m {
		s.Notify(e)
	}
}

// CollectorSink records events in order; intended for tests.
type CollectorSink struct {
	Events []Event
}

func (c *CollectorSink) Notify(e Event) {
	c.Events = append(c.Events, e)
}
