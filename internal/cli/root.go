package cli

import (
	"fmt"
	"os"

	"github.com/bloom-app/bloom/internal/backup"
	"github.com/bloom-app/bloom/internal/engine"
	"github.com/bloom-app/bloom/internal/notify"
	"github.com/bloom-app/bloom/internal/storage"
	"github.com/bloom-app/bloom/internal/weather"
)

type Context struct {
	Store   storage.Provider
	Weather *weather.Client
}

// OpenEngine loads storage and builds the engine with the standard sinks:
// console output plus best-effort tray notifications.
func (c *Context) OpenEngine() (*engine.Engine, error) {
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	sink := engine.MultiSink{
		&consoleSink{},
		notify.NewSink(notify.New()),
	}
	return engine.New(c.Store, engine.SystemClock(), sink)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		fmt.Fprintf(os.Stderr, "Warning: automatic backup failed: %v\n", err)
	}
}

// consoleSink prints progression events as they happen.
type consoleSink struct{}

func (s *consoleSink) Notify(ev engine.Event) {
	switch ev.Type {
	case engine.EventLevelUp:
		fmt.Printf("🌱 Your flower grew to level %s: %s!\n", ev.Payload["level"], ev.Payload["name"])
	case engine.EventAchievementUnlocked:
		fmt.Printf("%s Achievement unlocked: %s (+10 points)\n", ev.Payload["icon"], ev.Payload["name"])
	case engine.EventStoreDegraded:
		fmt.Fprintf(os.Stderr, "⚠ Storage unavailable, running in memory: %s\n", ev.Payload["error"])
	}
}
