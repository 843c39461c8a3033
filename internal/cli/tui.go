package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bloom-app/bloom/internal/config"
	"github.com/bloom-app/bloom/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	// Periodic flush while the session is open.
	saveCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go eng.AutoSave(saveCtx, config.AutoSaveIntervalSec*time.Second)

	p := tea.NewProgram(tui.NewModel(eng), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}

	return eng.Save()
}
