package migration

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var testMigrations = []Migration{
	{Version: 1, Name: "create things", SQL: "CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)"},
	{Version: 2, Name: "add color", SQL: "ALTER TABLE things ADD COLUMN color TEXT"},
}

func TestRunner_FreshDatabaseIsVersionZero(t *testing.T) {
	runner := NewRunner(openTestDB(t), testMigrations)

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("fresh database version %d, want 0", version)
	}
}

func TestRunner_ApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testMigrations)

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied %d migrations, want 2", applied)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version %d after migrations, want 2", version)
	}

	// The migrated schema is usable.
	if _, err := db.Exec("INSERT INTO things (name, color) VALUES ('rose', 'red')"); err != nil {
		t.Errorf("migrated schema rejected insert: %v", err)
	}

	// Re-running is a no-op.
	applied, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("re-run applied %d migrations, want 0", applied)
	}
}

func TestRunner_AppliesOnlyPending(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testMigrations[:1])
	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}

	// A newer binary picks up only version 2.
	runner = NewRunner(db, testMigrations)
	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied %d migrations, want 1", applied)
	}
}

func TestRunner_FailedMigrationRollsBack(t *testing.T) {
	db := openTestDB(t)
	bad := []Migration{
		{Version: 1, Name: "create things", SQL: "CREATE TABLE things (id INTEGER PRIMARY KEY)"},
		{Version: 2, Name: "broken", SQL: "THIS IS NOT SQL"},
	}
	runner := NewRunner(db, bad)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("applied %d before failure, want 1", applied)
	}

	version, verr := runner.GetCurrentVersion()
	if verr != nil {
		t.Fatalf("GetCurrentVersion failed: %v", verr)
	}
	if version != 1 {
		t.Errorf("version %d after failed migration, want 1", version)
	}
}

func TestRunner_ValidateVersion(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testMigrations)

	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected pending-migrations error on fresh database")
	}

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion failed on up-to-date schema: %v", err)
	}

	// A schema from the future is rejected.
	if err := runner.SetVersion(99); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected error for newer-than-supported schema")
	}
}

func TestRunner_SortsMigrations(t *testing.T) {
	db := openTestDB(t)
	reversed := []Migration{testMigrations[1], testMigrations[0]}
	runner := NewRunner(db, reversed)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatalf("ApplyMigrations failed with unsorted input: %v", err)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version %d, want 2", version)
	}
}
