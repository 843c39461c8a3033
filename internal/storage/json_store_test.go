package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bloom-app/bloom/internal/models"
)

func TestJSONStore_InitAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bloom.json")
	store := NewJSONStore(path)

	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Init twice must fail.
	if err := store.Init(); err == nil {
		t.Fatal("expected error on double init")
	}

	fresh := NewJSONStore(path)
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	doc, err := fresh.GetDocument()
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if doc.Settings.PetName != "Buddy" {
		t.Errorf("default pet name %q", doc.Settings.PetName)
	}
	if doc.Checkins == nil {
		t.Error("checkins slice is nil")
	}
}

func TestJSONStore_LoadWithoutInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Fatal("expected error loading uninitialized storage")
	}
}

func TestJSONStore_DocumentRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bloom.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	doc := models.DefaultDocument()
	doc.Flower = models.FlowerState{Level: 2, Sunlight: 180}
	doc.Achievements = models.AchievementState{Unlocked: []string{"studyMaster"}, Points: 10}
	doc.Checkins = []models.CheckinRecord{
		{ID: 42, Task: "Read", Category: models.CategoryLife, Date: "2026-03-10"},
	}
	doc.Countdown = &models.Countdown{Name: "Trip", Date: "2026-06-01"}

	if err := store.SaveDocument(doc); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	fresh := NewJSONStore(path)
	if err := fresh.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, err := fresh.GetDocument()
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}

	if got.Flower != doc.Flower {
		t.Errorf("flower %+v, want %+v", got.Flower, doc.Flower)
	}
	if len(got.Checkins) != 1 || got.Checkins[0].ID != 42 {
		t.Errorf("checkins %+v", got.Checkins)
	}
	if got.Countdown == nil || got.Countdown.Name != "Trip" {
		t.Errorf("countdown %+v", got.Countdown)
	}
	if !got.Achievements.Has("studyMaster") {
		t.Error("achievement lost in roundtrip")
	}
}

func TestJSONStore_RepairsNullSlices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bloom.json")
	data := []byte(`{"version":1,"checkins":null,"achievements":{"unlocked":null,"points":0}}`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	doc, err := store.GetDocument()
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if doc.Checkins == nil {
		t.Error("checkins still nil after load")
	}
	if doc.Achievements.Unlocked == nil {
		t.Error("unlocked still nil after load")
	}
}

func TestJSONStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bloom.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	doc := models.DefaultDocument()
	doc.Flower.Sunlight = 500
	if err := store.SaveDocument(doc); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	got, err := store.GetDocument()
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if got.Flower.Sunlight != 0 {
		t.Errorf("sunlight survived clear: %d", got.Flower.Sunlight)
	}
}
