package engine

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bloom-app/bloom/internal/config"
	"github.com/bloom-app/bloom/internal/models"
	"github.com/bloom-app/bloom/internal/storage"
)

// QuickKind selects one of the two gated quick check-in buttons.
type QuickKind string

const (
	QuickWake  QuickKind = "wake"
	QuickSleep QuickKind = "sleep"
)

// Engine owns the application document: the check-in log, flower state,
// achievement state and daily gating flags. All mutation goes through its
// methods; the UI layer never writes fields directly.
type Engine struct {
	mu       sync.Mutex
	store    storage.Provider
	clock    Clock
	sink     Sink
	doc      models.Document
	degraded bool
	lastID   int64
}

// New loads the document from store. The sink receives level-up and
// achievement events; pass NullSink to suppress them.
func New(store storage.Provider, clock Clock, sink Sink) (*Engine, error) {
	doc, err := store.GetDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	e := &Engine{
		store: store,
		clock: clock,
		sink:  sink,
		doc:   doc,
	}
	for _, rec := range doc.Checkins {
		if rec.ID > e.lastID {
			e.lastID = rec.ID
		}
	}
	return e, nil
}

// SetSink swaps the event sink, returning the previous one. Used by batch
// import to suppress notifications.
func (e *Engine) SetSink(sink Sink) Sink {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.sink
	e.sink = sink
	return prev
}

// persist writes the document through the store. A failure degrades the
// engine to in-memory mode with a one-time warning event instead of
// surfacing an error to the caller.
func (e *Engine) persist() {
	if err := e.store.SaveDocument(e.doc); err != nil {
		if !e.degraded {
			e.degraded = true
			e.sink.Notify(newEvent(EventStoreDegraded, map[string]string{
				"error": err.Error(),
			}))
		}
		fmt.Fprintf(os.Stderr, "Warning: failed to persist state, changes may not survive a restart: %v\n", err)
		return
	}
	e.degraded = false
}

// Degraded reports whether the last persist attempt failed.
func (e *Engine) Degraded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.degraded
}

// RecordCheckin appends a check-in, grows the flower, evaluates
// achievements and persists. Any task string is accepted; rejecting empty
// input is the caller's concern. Unknown categories are stored as-is.
func (e *Engine) RecordCheckin(task string, category models.Category) (models.CheckinRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.recordCheckinLocked(task, category)
}

func (e *Engine) recordCheckinLocked(task string, category models.Category) (models.CheckinRecord, error) {
	now := e.clock.Now()

	id := now.UnixMilli()
	// Two check-ins inside one millisecond still get unique, monotonic IDs.
	if id <= e.lastID {
		id = e.lastID + 1
	}
	e.lastID = id

	rec := models.CheckinRecord{
		ID:        id,
		Task:      task,
		Category:  category,
		Timestamp: now,
		Date:      CalendarDay(now),
	}
	e.doc.Checkins = append(e.doc.Checkins, rec)

	points := config.GeneralPoints
	if category == models.CategorySleep {
		points = config.SleepPoints
	}
	e.addSunlightLocked(points)

	newKeys := Evaluate(e.doc.Checkins, now, e.doc.Achievements)
	for _, key := range newKeys {
		e.unlockLocked(key)
	}

	e.persist()
	return rec, nil
}

// AddSunlight grants sunlight and advances the flower level. Exposed for
// testing; check-ins are the only production caller.
func (e *Engine) AddSunlight(points int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.addSunlightLocked(points)
	e.persist()
}

// addSunlightLocked scans thresholds forward from the current level only,
// so the level can never decrease. One level-up event fires per level
// actually crossed; a single large grant may cross several.
func (e *Engine) addSunlightLocked(points int) {
	if points < 0 {
		return
	}
	e.doc.Flower.Sunlight += points

	thresholds := config.FlowerThresholds
	for i := e.doc.Flower.Level + 1; i < len(thresholds); i++ {
		if e.doc.Flower.Sunlight < thresholds[i] {
			break
		}
		e.doc.Flower.Level = i
		e.sink.Notify(newEvent(EventLevelUp, map[string]string{
			"level": fmt.Sprintf("%d", i),
			"name":  config.FlowerLevelNames[i],
		}))
	}
}

func (e *Engine) unlockLocked(key string) {
	if e.doc.Achievements.Has(key) {
		return
	}
	e.doc.Achievements.Unlocked = append(e.doc.Achievements.Unlocked, key)
	e.doc.Achievements.Points += config.AchievementBonusPoints

	payload := map[string]string{"key": key}
	if def := config.AchievementByKey(key); def != nil {
		payload["name"] = def.Name
		payload["icon"] = def.Icon
	}
	e.sink.Notify(newEvent(EventAchievementUnlocked, payload))
}

// TodayStatus returns the quick check-in flags for the current calendar
// day, lazily resetting them on day rollover.
func (e *Engine) TodayStatus() models.TodayStatus {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.todayStatusLocked()
}

func (e *Engine) todayStatusLocked() models.TodayStatus {
	today := CalendarDay(e.clock.Now())
	if e.doc.TodayStatus.Date != today {
		e.doc.TodayStatus = models.TodayStatus{Date: today}
		e.persist()
	}
	return e.doc.TodayStatus
}

// MarkQuickCheckin records a wake or sleep check-in, at most once per
// calendar day each. Custom check-ins are not gated.
func (e *Engine) MarkQuickCheckin(kind QuickKind) (models.CheckinRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	status := e.todayStatusLocked()

	var task string
	var category models.Category
	switch kind {
	case QuickWake:
		if status.WakeUp {
			return models.CheckinRecord{}, ErrAlreadyCheckedIn
		}
		task = models.WakeTaskName
		category = models.CategoryWake
	case QuickSleep:
		if status.Sleep {
			return models.CheckinRecord{}, ErrAlreadyCheckedIn
		}
		task = models.SleepTaskName
		category = models.CategorySleep
	default:
		return models.CheckinRecord{}, fmt.Errorf("unknown quick check-in kind: %s", kind)
	}

	rec, err := e.recordCheckinLocked(task, category)
	if err != nil {
		return models.CheckinRecord{}, err
	}

	if kind == QuickWake {
		e.doc.TodayStatus.WakeUp = true
	} else {
		e.doc.TodayStatus.Sleep = true
	}
	e.persist()
	return rec, nil
}

// ResetAll discards the document and reinitializes defaults. Irreversible;
// confirmation belongs to the UI layer.
func (e *Engine) ResetAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear storage: %w", err)
	}
	e.doc = models.DefaultDocument()
	e.lastID = 0
	e.degraded = false
	return nil
}

// Save flushes the in-memory document. Idempotent; safe to call from exit
// hooks and timers.
func (e *Engine) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.SaveDocument(e.doc); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	e.degraded = false
	return nil
}

// AutoSave flushes the document every interval until ctx is cancelled.
// Missed or overlapping firings cause at most a redundant save.
func (e *Engine) AutoSave(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.mu.Lock()
			e.persist()
			e.mu.Unlock()
		}
	}
}

// FlowerState returns a copy of the current flower state.
func (e *Engine) FlowerState() models.FlowerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Flower
}

// AchievementState returns a copy of the unlock state.
func (e *Engine) AchievementState() models.AchievementState {
	e.mu.Lock()
	defer e.mu.Unlock()
	state := e.doc.Achievements
	state.Unlocked = append([]string(nil), state.Unlocked...)
	return state
}

// CheckinLog returns a copy of the append-only check-in log.
func (e *Engine) CheckinLog() []models.CheckinRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.CheckinRecord(nil), e.doc.Checkins...)
}

// HasCheckinToday reports whether an identical task was already checked in
// on the current calendar day. The UI uses this to ask for confirmation
// before a repeat custom check-in; repeats are allowed, not blocked.
func (e *Engine) HasCheckinToday(task string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	today := CalendarDay(e.clock.Now())
	for _, rec := range e.doc.Checkins {
		if rec.Date == today && rec.Task == task {
			return true
		}
	}
	return false
}

// Settings returns the persisted user settings.
func (e *Engine) Settings() models.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Settings
}

// SetSettings replaces the user settings and persists.
func (e *Engine) SetSettings(settings models.Settings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.Settings = settings
	e.persist()
}

// Countdown returns the configured countdown, or nil.
func (e *Engine) Countdown() *models.Countdown {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc.Countdown == nil {
		return nil
	}
	cd := *e.doc.Countdown
	return &cd
}

// SetCountdown replaces the countdown; nil clears it.
func (e *Engine) SetCountdown(cd *models.Countdown) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.Countdown = cd
	e.persist()
}

// Alarm returns the configured alarm, or nil.
func (e *Engine) Alarm() *models.Alarm {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc.Alarm == nil {
		return nil
	}
	al := *e.doc.Alarm
	return &al
}

// SetAlarm replaces the alarm; nil clears it.
func (e *Engine) SetAlarm(al *models.Alarm) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.Alarm = al
	e.persist()
}

// Pet returns the companion state.
func (e *Engine) Pet() models.PetState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc.Pet
}

// SetPetAccessory changes the companion's accessory and persists.
func (e *Engine) SetPetAccessory(accessory string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.doc.Pet.CurrentAccessory = accessory
	e.persist()
}

// Document returns a snapshot of the whole document, for export.
func (e *Engine) Document() models.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	doc := e.doc
	doc.Checkins = append([]models.CheckinRecord(nil), doc.Checkins...)
	doc.Achievements.Unlocked = append([]string(nil), doc.Achievements.Unlocked...)
	return doc
}

// Import replaces the document with a snapshot, suppressing notifications,
// and persists. Flower level and achievement points are recomputed from the
// imported data so a tampered snapshot cannot break the invariants.
func (e *Engine) Import(doc models.Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if doc.Checkins == nil {
		doc.Checkins = []models.CheckinRecord{}
	}
	if doc.Achievements.Unlocked == nil {
		doc.Achievements.Unlocked = []string{}
	}
	doc.Achievements.Points = config.AchievementBonusPoints * len(doc.Achievements.Unlocked)

	if doc.Flower.Sunlight < 0 {
		doc.Flower.Sunlight = 0
	}
	doc.Flower.Level = 0
	for i := 1; i < len(config.FlowerThresholds); i++ {
		if doc.Flower.Sunlight < config.FlowerThresholds[i] {
			break
		}
		doc.Flower.Level = i
	}

	e.doc = doc
	e.lastID = 0
	for _, rec := range doc.Checkins {
		if rec.ID > e.lastID {
			e.lastID = rec.ID
		}
	}

	if err := e.store.SaveDocument(e.doc); err != nil {
		return fmt.Errorf("failed to persist imported document: %w", err)
	}
	return nil
}
