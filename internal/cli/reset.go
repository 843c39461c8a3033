package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

type ResetCmd struct {
	Yes bool `help:"Skip confirmation." short:"y"`
}

func (c *ResetCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	if !c.Yes {
		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("This will erase ALL your data: check-ins, flower progress and achievements.").
				Description("A backup is created first. This cannot be undone from within the app.").
				Affirmative("Erase everything").
				Negative("Cancel").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := eng.ResetAll(); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	fmt.Println("✓ All data erased. A fresh seed has been planted.")
	return nil
}
