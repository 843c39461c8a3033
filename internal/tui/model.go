package tui

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/bloom-app/bloom/internal/engine"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateGarden
	StateAchievements
	StateStats
	StateCheckinForm
)

const tabCount = 4

// EventSink buffers engine events so they can be shown as toasts.
type EventSink struct {
	mu   sync.Mutex
	msgs []string
}

func NewEventSink() *EventSink {
	return &EventSink{}
}

func (s *EventSink) Notify(ev engine.Event) {
	var text string
	switch ev.Type {
	case engine.EventLevelUp:
		text = fmt.Sprintf("🌱 Your flower grew to %s!", ev.Payload["name"])
	case engine.EventAchievementUnlocked:
		text = fmt.Sprintf("%s Achievement unlocked: %s", ev.Payload["icon"], ev.Payload["name"])
	case engine.EventStoreDegraded:
		text = "⚠ Storage unavailable, changes may not survive a restart"
	default:
		return
	}
	s.mu.Lock()
	s.msgs = append(s.msgs, text)
	s.mu.Unlock()
}

// Drain returns and clears the buffered messages.
func (s *EventSink) Drain() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.msgs
	s.msgs = nil
	return msgs
}

type CheckinFormModel struct {
	Task     string
	Category string
	Confirm  bool
}

type Model struct {
	engine        *engine.Engine
	sink          *EventSink
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	form          *huh.Form
	checkinForm   *CheckinFormModel
	toast         string
	quitting      bool
	width         int
	height        int
}

func NewModel(eng *engine.Engine) Model {
	sink := NewEventSink()
	eng.SetSink(sink)

	return Model{
		engine: eng,
		sink:   sink,
		state:  StateToday,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// drainToast pulls any buffered engine events into the toast line.
func (m *Model) drainToast() {
	if msgs := m.sink.Drain(); len(msgs) > 0 {
		m.toast = msgs[len(msgs)-1]
	}
}
