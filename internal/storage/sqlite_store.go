package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bloom-app/bloom/internal/migration"
	"github.com/bloom-app/bloom/internal/models"
)

var migrations = []migration.Migration{
	{
		Version: 1,
		Name:    "initial schema",
		SQL: `
			CREATE TABLE IF NOT EXISTS settings (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);
			CREATE TABLE IF NOT EXISTS checkins (
				id        INTEGER PRIMARY KEY,
				task      TEXT NOT NULL,
				category  TEXT NOT NULL,
				timestamp TEXT NOT NULL,
				date      TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_checkins_date ON checkins(date);
			CREATE TABLE IF NOT EXISTS flower (
				id       INTEGER PRIMARY KEY CHECK (id = 1),
				level    INTEGER NOT NULL,
				sunlight INTEGER NOT NULL
			);
			CREATE TABLE IF NOT EXISTS achievements (
				key      TEXT PRIMARY KEY,
				position INTEGER NOT NULL
			);
			CREATE TABLE IF NOT EXISTS today_status (
				id      INTEGER PRIMARY KEY CHECK (id = 1),
				date    TEXT NOT NULL,
				wake_up INTEGER NOT NULL,
				sleep   INTEGER NOT NULL
			);
			CREATE TABLE IF NOT EXISTS meta (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);
		`,
	},
}

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrations)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed defaults if the document has never been written
	if _, err := s.GetDocument(); err != nil {
		if err := s.SaveDocument(models.DefaultDocument()); err != nil {
			return fmt.Errorf("failed to save default document: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'bloom init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrations)
	if err := runner.ValidateVersion(); err != nil {
		// Pending migrations are applied transparently; only a
		// newer-than-supported schema is fatal.
		current, verr := runner.GetCurrentVersion()
		if verr != nil {
			return verr
		}
		latest, verr := runner.GetLatestVersion()
		if verr != nil {
			return verr
		}
		if current > latest {
			return err
		}
		if _, err := runner.ApplyMigrations(nil); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetDocument() (models.Document, error) {
	if s.db == nil {
		return models.Document{}, fmt.Errorf("storage not loaded")
	}

	doc := models.DefaultDocument()

	// The settings row count doubles as the "was a document ever saved"
	// marker.
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Document{}, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Document{}, err
		}
		switch key {
		case "theme":
			doc.Settings.Theme = value
		case "language":
			doc.Settings.Language = value
		case "pet_name":
			doc.Settings.PetName = value
		case "weather_preference":
			doc.Settings.WeatherPreference = value
		case "sound_effects":
			doc.Settings.SoundEffects = value == "1"
		case "notification_time":
			doc.Settings.NotificationTime = value
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Document{}, err
	}
	if count == 0 {
		return models.Document{}, fmt.Errorf("document not found")
	}

	checkins, err := s.loadCheckins()
	if err != nil {
		return models.Document{}, err
	}
	doc.Checkins = checkins

	if err := s.db.QueryRow("SELECT level, sunlight FROM flower WHERE id = 1").
		Scan(&doc.Flower.Level, &doc.Flower.Sunlight); err != nil && err != sql.ErrNoRows {
		return models.Document{}, err
	}

	unlocked, err := s.loadAchievements()
	if err != nil {
		return models.Document{}, err
	}
	doc.Achievements.Unlocked = unlocked

	var wakeUp, sleep int
	err = s.db.QueryRow("SELECT date, wake_up, sleep FROM today_status WHERE id = 1").
		Scan(&doc.TodayStatus.Date, &wakeUp, &sleep)
	if err != nil && err != sql.ErrNoRows {
		return models.Document{}, err
	}
	doc.TodayStatus.WakeUp = wakeUp == 1
	doc.TodayStatus.Sleep = sleep == 1

	if err := s.loadMeta(&doc); err != nil {
		return models.Document{}, err
	}

	return doc, nil
}

func (s *SQLiteStore) loadCheckins() ([]models.CheckinRecord, error) {
	rows, err := s.db.Query("SELECT id, task, category, timestamp, date FROM checkins ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkins := []models.CheckinRecord{}
	for rows.Next() {
		var rec models.CheckinRecord
		var category, timestamp string
		if err := rows.Scan(&rec.ID, &rec.Task, &category, &timestamp, &rec.Date); err != nil {
			return nil, err
		}
		rec.Category = models.Category(category)
		ts, err := time.Parse(time.RFC3339Nano, timestamp)
		if err != nil {
			return nil, fmt.Errorf("failed to parse check-in timestamp %q: %w", timestamp, err)
		}
		rec.Timestamp = ts
		checkins = append(checkins, rec)
	}
	return checkins, rows.Err()
}

func (s *SQLiteStore) loadAchievements() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM achievements ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	unlocked := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		unlocked = append(unlocked, key)
	}
	return unlocked, rows.Err()
}

func (s *SQLiteStore) loadMeta(doc *models.Document) error {
	rows, err := s.db.Query("SELECT key, value FROM meta")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		switch key {
		case "version":
			if _, err := fmt.Sscanf(value, "%d", &doc.Version); err != nil {
				return fmt.Errorf("parsing document version: %w", err)
			}
		case "points":
			if _, err := fmt.Sscanf(value, "%d", &doc.Achievements.Points); err != nil {
				return fmt.Errorf("parsing achievement points: %w", err)
			}
		case "countdown":
			var cd models.Countdown
			if err := json.Unmarshal([]byte(value), &cd); err != nil {
				return fmt.Errorf("parsing countdown: %w", err)
			}
			doc.Countdown = &cd
		case "alarm":
			var al models.Alarm
			if err := json.Unmarshal([]byte(value), &al); err != nil {
				return fmt.Errorf("parsing alarm: %w", err)
			}
			doc.Alarm = &al
		case "pet_accessory":
			doc.Pet.CurrentAccessory = value
		}
	}
	return rows.Err()
}

// SaveDocument replaces the entire stored document in one transaction. The
// document is always written whole; there is no partial update path.
func (s *SQLiteStore) SaveDocument(doc models.Document) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"settings", "checkins", "flower", "achievements", "today_status", "meta"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	soundEffects := "0"
	if doc.Settings.SoundEffects {
		soundEffects = "1"
	}
	settingsStmt, err := tx.Prepare("INSERT INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer settingsStmt.Close()
	for _, kv := range [][2]string{
		{"theme", doc.Settings.Theme},
		{"language", doc.Settings.Language},
		{"pet_name", doc.Settings.PetName},
		{"weather_preference", doc.Settings.WeatherPreference},
		{"sound_effects", soundEffects},
		{"notification_time", doc.Settings.NotificationTime},
	} {
		if _, err := settingsStmt.Exec(kv[0], kv[1]); err != nil {
			return err
		}
	}

	checkinStmt, err := tx.Prepare("INSERT INTO checkins (id, task, category, timestamp, date) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer checkinStmt.Close()
	for _, rec := range doc.Checkins {
		_, err := checkinStmt.Exec(rec.ID, rec.Task, string(rec.Category),
			rec.Timestamp.Format(time.RFC3339Nano), rec.Date)
		if err != nil {
			return err
		}
	}

	if _, err := tx.Exec("INSERT INTO flower (id, level, sunlight) VALUES (1, ?, ?)",
		doc.Flower.Level, doc.Flower.Sunlight); err != nil {
		return err
	}

	achStmt, err := tx.Prepare("INSERT INTO achievements (key, position) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer achStmt.Close()
	for i, key := range doc.Achievements.Unlocked {
		if _, err := achStmt.Exec(key, i); err != nil {
			return err
		}
	}

	wakeUp, sleep := 0, 0
	if doc.TodayStatus.WakeUp {
		wakeUp = 1
	}
	if doc.TodayStatus.Sleep {
		sleep = 1
	}
	if _, err := tx.Exec("INSERT INTO today_status (id, date, wake_up, sleep) VALUES (1, ?, ?, ?)",
		doc.TodayStatus.Date, wakeUp, sleep); err != nil {
		return err
	}

	metaStmt, err := tx.Prepare("INSERT INTO meta (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer metaStmt.Close()
	if _, err := metaStmt.Exec("version", fmt.Sprintf("%d", doc.Version)); err != nil {
		return err
	}
	if _, err := metaStmt.Exec("points", fmt.Sprintf("%d", doc.Achievements.Points)); err != nil {
		return err
	}
	if _, err := metaStmt.Exec("pet_accessory", doc.Pet.CurrentAccessory); err != nil {
		return err
	}
	if doc.Countdown != nil {
		data, err := json.Marshal(doc.Countdown)
		if err != nil {
			return fmt.Errorf("failed to marshal countdown: %w", err)
		}
		if _, err := metaStmt.Exec("countdown", string(data)); err != nil {
			return err
		}
	}
	if doc.Alarm != nil {
		data, err := json.Marshal(doc.Alarm)
		if err != nil {
			return fmt.Errorf("failed to marshal alarm: %w", err)
		}
		if _, err := metaStmt.Exec("alarm", string(data)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Clear() error {
	return s.SaveDocument(models.DefaultDocument())
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

// MigrationRunner exposes the schema migration runner for diagnostics.
func (s *SQLiteStore) MigrationRunner() *migration.Runner {
	return migration.NewRunner(s.db, migrations)
}
