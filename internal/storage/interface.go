package storage

import "github.com/bloom-app/bloom/internal/models"

// Provider persists the single application document. Implementations are
// not safe for concurrent use by multiple goroutines without external
// synchronization, and sharing one storage path between processes is not
// supported.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Document
	GetDocument() (models.Document, error)
	SaveDocument(models.Document) error
	Clear() error

	// Utils
	GetConfigPath() string
}
