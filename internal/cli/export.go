package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bloom-app/bloom/internal/engine"
	"github.com/bloom-app/bloom/internal/models"
)

type ExportCmd struct {
	Output string `help:"Output file, defaults to stdout." short:"o" type:"path"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(eng.Document(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if c.Output == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(c.Output, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("✓ Exported to %s\n", c.Output)
	return nil
}

type ImportCmd struct {
	Input string `arg:"" help:"Snapshot file to import." type:"path"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("snapshot is not a valid document: %w", err)
	}

	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	// Imports must not replay level-up and achievement notifications.
	prev := eng.SetSink(engine.NullSink{})
	defer eng.SetSink(prev)

	if err := eng.Import(doc); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("✓ Imported %d check-ins from %s\n", len(doc.Checkins), c.Input)
	return nil
}
