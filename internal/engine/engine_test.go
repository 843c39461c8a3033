package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/bloom-app/bloom/internal/config"
	"github.com/bloom-app/bloom/internal/models"
)

// memStore is an in-memory Provider for engine tests.
type memStore struct {
	doc     models.Document
	saves   int
	failing bool
}

func newMemStore() *memStore {
	return &memStore{doc: models.DefaultDocument()}
}

func (s *memStore) Init() error  { return nil }
func (s *memStore) Load() error  { return nil }
func (s *memStore) Close() error { return nil }

func (s *memStore) GetDocument() (models.Document, error) { return s.doc, nil }

func (s *memStore) SaveDocument(doc models.Document) error {
	if s.failing {
		return fmt.Errorf("disk full")
	}
	s.doc = doc
	s.saves++
	return nil
}

func (s *memStore) Clear() error {
	s.doc = models.DefaultDocument()
	return nil
}

func (s *memStore) GetConfigPath() string { return "/tmp/test.json" }

// fakeClock returns a fixed instant that tests can advance.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEngine(t *testing.T) (*Engine, *memStore, *fakeClock, *CollectorSink) {
	t.Helper()
	store := newMemStore()
	clock := &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)}
	sink := &CollectorSink{}
	eng, err := New(store, clock, sink)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return eng, store, clock, sink
}

func TestAddSunlight_LevelThresholds(t *testing.T) {
	cases := []struct {
		sunlight  int
		wantLevel int
	}{
		{0, 0},
		{49, 0},
		{50, 1},
		{149, 1},
		{150, 2},
		{299, 2},
		{300, 3},
		{499, 3},
		{500, 4},
		{10000, 4},
	}

	for _, tc := range cases {
		eng, _, _, _ := newTestEngine(t)
		eng.AddSunlight(tc.sunlight)
		if got := eng.FlowerState().Level; got != tc.wantLevel {
			t.Errorf("sunlight %d: got level %d, want %d", tc.sunlight, got, tc.wantLevel)
		}
	}
}

func TestAddSunlight_LevelNeverDecreases(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	eng.AddSunlight(500)
	if got := eng.FlowerState().Level; got != 4 {
		t.Fatalf("expected level 4, got %d", got)
	}

	// Further grants, including zero, must never lower the level.
	eng.AddSunlight(0)
	eng.AddSunlight(5)
	if got := eng.FlowerState().Level; got != 4 {
		t.Errorf("level decreased to %d", got)
	}
}

func TestAddSunlight_MultiLevelJumpEmitsEventPerLevel(t *testing.T) {
	eng, _, _, sink := newTestEngine(t)

	eng.AddSunlight(320)

	var levels []string
	for _, ev := range sink.Events {
		if ev.Type == EventLevelUp {
			levels = append(levels, ev.Payload["level"])
		}
	}
	want := []string{"1", "2", "3"}
	if len(levels) != len(want) {
		t.Fatalf("got %d level-up events, want %d: %v", len(levels), len(want), levels)
	}
	for i := range want {
		if levels[i] != want[i] {
			t.Errorf("event %d: got level %s, want %s", i, levels[i], want[i])
		}
	}
}

func TestAddSunlight_NegativeIgnored(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)
	eng.AddSunlight(60)
	eng.AddSunlight(-100)
	if got := eng.FlowerState().Sunlight; got != 60 {
		t.Errorf("negative grant changed sunlight to %d", got)
	}
}

func TestRecordCheckin_Points(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	if _, err := eng.RecordCheckin("Read a book", models.CategoryLife); err != nil {
		t.Fatalf("RecordCheckin failed: %v", err)
	}
	if got := eng.FlowerState().Sunlight; got != config.GeneralPoints {
		t.Errorf("life check-in granted %d sunlight, want %d", got, config.GeneralPoints)
	}

	if _, err := eng.RecordCheckin(models.SleepTaskName, models.CategorySleep); err != nil {
		t.Fatalf("RecordCheckin failed: %v", err)
	}
	want := config.GeneralPoints + config.SleepPoints
	if got := eng.FlowerState().Sunlight; got != want {
		t.Errorf("sleep check-in: total sunlight %d, want %d", got, want)
	}
}

func TestRecordCheckin_IDsMonotonic(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	// The clock never advances, so every record lands in the same
	// millisecond and IDs must still strictly increase.
	var last int64
	for i := 0; i < 5; i++ {
		rec, err := eng.RecordCheckin("task", models.CategoryLife)
		if err != nil {
			t.Fatalf("RecordCheckin failed: %v", err)
		}
		if rec.ID <= last {
			t.Fatalf("record %d: ID %d not greater than previous %d", i, rec.ID, last)
		}
		last = rec.ID
	}
}

func TestRecordCheckin_UnknownCategoryStored(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	rec, err := eng.RecordCheckin("something", models.Category("hobby"))
	if err != nil {
		t.Fatalf("RecordCheckin failed: %v", err)
	}
	if rec.Category != "hobby" {
		t.Errorf("category rewritten to %q", rec.Category)
	}
	if got := eng.FlowerState().Sunlight; got != config.GeneralPoints {
		t.Errorf("unknown category granted %d sunlight, want %d", got, config.GeneralPoints)
	}
}

func TestMarkQuickCheckin_GatesPerDay(t *testing.T) {
	eng, _, clock, _ := newTestEngine(t)

	if _, err := eng.MarkQuickCheckin(QuickWake); err != nil {
		t.Fatalf("first wake failed: %v", err)
	}
	if _, err := eng.MarkQuickCheckin(QuickWake); err != ErrAlreadyCheckedIn {
		t.Fatalf("second wake: got %v, want ErrAlreadyCheckedIn", err)
	}

	// Sleep is gated independently.
	if _, err := eng.MarkQuickCheckin(QuickSleep); err != nil {
		t.Fatalf("sleep failed: %v", err)
	}
	if _, err := eng.MarkQuickCheckin(QuickSleep); err != ErrAlreadyCheckedIn {
		t.Fatalf("second sleep: got %v, want ErrAlreadyCheckedIn", err)
	}

	// Day rollover resets both gates.
	clock.advance(24 * time.Hour)
	if _, err := eng.MarkQuickCheckin(QuickWake); err != nil {
		t.Errorf("wake after rollover failed: %v", err)
	}
	if _, err := eng.MarkQuickCheckin(QuickSleep); err != nil {
		t.Errorf("sleep after rollover failed: %v", err)
	}
}

func TestTodayStatus_RollsOver(t *testing.T) {
	eng, _, clock, _ := newTestEngine(t)

	if _, err := eng.MarkQuickCheckin(QuickWake); err != nil {
		t.Fatalf("wake failed: %v", err)
	}
	status := eng.TodayStatus()
	if !status.WakeUp {
		t.Fatal("wake flag not set")
	}

	clock.advance(24 * time.Hour)
	status = eng.TodayStatus()
	if status.WakeUp || status.Sleep {
		t.Errorf("flags survived rollover: %+v", status)
	}
	if status.Date != CalendarDay(clock.Now()) {
		t.Errorf("status date %s, want %s", status.Date, CalendarDay(clock.Now()))
	}
}

func TestAchievementPoints_Invariant(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	// Ten study check-ins unlock the study achievement.
	for i := 0; i < 10; i++ {
		if _, err := eng.RecordCheckin("Study Go", models.CategoryStudy); err != nil {
			t.Fatalf("RecordCheckin failed: %v", err)
		}
	}

	state := eng.AchievementState()
	if !state.Has("studyMaster") {
		t.Fatalf("studyMaster not unlocked after 10 study check-ins: %v", state.Unlocked)
	}
	want := config.AchievementBonusPoints * len(state.Unlocked)
	if state.Points != want {
		t.Errorf("points %d, want %d", state.Points, want)
	}
}

func TestAchievementUnlock_Idempotent(t *testing.T) {
	eng, _, _, sink := newTestEngine(t)

	for i := 0; i < 12; i++ {
		if _, err := eng.RecordCheckin("Study Go", models.CategoryStudy); err != nil {
			t.Fatalf("RecordCheckin failed: %v", err)
		}
	}

	unlocks := 0
	for _, ev := range sink.Events {
		if ev.Type == EventAchievementUnlocked && ev.Payload["key"] == "studyMaster" {
			unlocks++
		}
	}
	if unlocks != 1 {
		t.Errorf("studyMaster unlocked %d times, want once", unlocks)
	}

	state := eng.AchievementState()
	seen := make(map[string]bool)
	for _, key := range state.Unlocked {
		if seen[key] {
			t.Errorf("achievement %q appears twice in unlock list", key)
		}
		seen[key] = true
	}
}

func TestPersistFailure_DegradesOnce(t *testing.T) {
	eng, store, _, sink := newTestEngine(t)
	store.failing = true

	for i := 0; i < 3; i++ {
		if _, err := eng.RecordCheckin("task", models.CategoryLife); err != nil {
			t.Fatalf("RecordCheckin surfaced store error: %v", err)
		}
	}

	if !eng.Degraded() {
		t.Error("engine not marked degraded")
	}

	degradedEvents := 0
	for _, ev := range sink.Events {
		if ev.Type == EventStoreDegraded {
			degradedEvents++
		}
	}
	if degradedEvents != 1 {
		t.Errorf("got %d store-degraded events, want exactly 1", degradedEvents)
	}

	// In-memory state keeps advancing while degraded.
	if got := len(eng.CheckinLog()); got != 3 {
		t.Errorf("log has %d records, want 3", got)
	}

	// Recovery clears the flag.
	store.failing = false
	if _, err := eng.RecordCheckin("task", models.CategoryLife); err != nil {
		t.Fatalf("RecordCheckin failed: %v", err)
	}
	if eng.Degraded() {
		t.Error("engine still degraded after successful persist")
	}
}

func TestResetAll(t *testing.T) {
	eng, _, _, _ := newTestEngine(t)

	for i := 0; i < 10; i++ {
		if _, err := eng.RecordCheckin("Study Go", models.CategoryStudy); err != nil {
			t.Fatalf("RecordCheckin failed: %v", err)
		}
	}

	if err := eng.ResetAll(); err != nil {
		t.Fatalf("ResetAll failed: %v", err)
	}

	if got := len(eng.CheckinLog()); got != 0 {
		t.Errorf("log has %d records after reset", got)
	}
	if got := eng.FlowerState(); got.Level != 0 || got.Sunlight != 0 {
		t.Errorf("flower not reset: %+v", got)
	}
	if got := eng.AchievementState(); len(got.Unlocked) != 0 || got.Points != 0 {
		t.Errorf("achievements not reset: %+v", got)
	}
}

func TestImport_RecomputesPoints(t *testing.T) {
	eng, _, _, sink := newTestEngine(t)

	snapshot := models.DefaultDocument()
	snapshot.Achievements.Unlocked = []string{"studyMaster", "morningBird"}
	snapshot.Achievements.Points = 9999 // tampered
	snapshot.Checkins = []models.CheckinRecord{
		{ID: 100, Task: "old", Category: models.CategoryLife, Date: "2026-01-01"},
	}

	if err := eng.Import(snapshot); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	state := eng.AchievementState()
	want := config.AchievementBonusPoints * 2
	if state.Points != want {
		t.Errorf("imported points %d, want recomputed %d", state.Points, want)
	}

	// Import must not replay notifications.
	if len(sink.Events) != 0 {
		t.Errorf("import emitted %d events", len(sink.Events))
	}

	// New record IDs continue past the imported maximum.
	rec, err := eng.RecordCheckin("new", models.CategoryLife)
	if err != nil {
		t.Fatalf("RecordCheckin failed: %v", err)
	}
	if rec.ID <= 100 {
		t.Errorf("new ID %d not past imported max 100", rec.ID)
	}
}

func TestImport_RecomputesFlowerLevel(t *testing.T) {
	cases := []struct {
		name      string
		flower    models.FlowerState
		wantLevel int
		wantSun   int
	}{
		{"inflated level", models.FlowerState{Level: 4, Sunlight: 0}, 0, 0},
		{"lagging level", models.FlowerState{Level: 0, Sunlight: 320}, 3, 320},
		{"negative sunlight", models.FlowerState{Level: 2, Sunlight: -50}, 0, 0},
		{"consistent", models.FlowerState{Level: 1, Sunlight: 60}, 1, 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng, _, _, _ := newTestEngine(t)

			snapshot := models.DefaultDocument()
			snapshot.Flower = tc.flower

			if err := eng.Import(snapshot); err != nil {
				t.Fatalf("Import failed: %v", err)
			}

			flower := eng.FlowerState()
			if flower.Level != tc.wantLevel {
				t.Errorf("imported level %d, want recomputed %d", flower.Level, tc.wantLevel)
			}
			if flower.Sunlight != tc.wantSun {
				t.Errorf("imported sunlight %d, want %d", flower.Sunlight, tc.wantSun)
			}
			if flower.Sunlight < config.FlowerThresholds[flower.Level] {
				t.Errorf("level %d unreachable with %d sunlight", flower.Level, flower.Sunlight)
			}
		})
	}
}

func TestHasCheckinToday(t *testing.T) {
	eng, _, clock, _ := newTestEngine(t)

	if _, err := eng.RecordCheckin("Run 5k", models.CategoryLife); err != nil {
		t.Fatalf("RecordCheckin failed: %v", err)
	}

	if !eng.HasCheckinToday("Run 5k") {
		t.Error("expected HasCheckinToday to be true for same task")
	}
	if eng.HasCheckinToday("Swim") {
		t.Error("expected HasCheckinToday to be false for other task")
	}

	clock.advance(24 * time.Hour)
	if eng.HasCheckinToday("Run 5k") {
		t.Error("yesterday's check-in counted for today")
	}
}
