package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bloom-app/bloom/internal/models"
)

type JSONStore struct {
	path string
	doc  *models.Document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	doc := models.DefaultDocument()
	s.doc = &doc
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'bloom init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := models.DefaultDocument()
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure slices survive older files that stored null
	if doc.Checkins == nil {
		doc.Checkins = []models.CheckinRecord{}
	}
	if doc.Achievements.Unlocked == nil {
		doc.Achievements.Unlocked = []string{}
	}

	s.doc = &doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetDocument() (models.Document, error) {
	if s.doc == nil {
		return models.Document{}, fmt.Errorf("storage not loaded")
	}
	return *s.doc, nil
}

func (s *JSONStore) SaveDocument(doc models.Document) error {
	s.doc = &doc
	return s.save()
}

func (s *JSONStore) Clear() error {
	doc := models.DefaultDocument()
	s.doc = &doc
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
