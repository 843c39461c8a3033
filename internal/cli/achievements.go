package cli

import (
	"fmt"

	"github.com/bloom-app/bloom/internal/config"
)

type AchievementsCmd struct{}

func (c *AchievementsCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	state := eng.AchievementState()

	fmt.Printf("Achievements (%d/%d unlocked, %d points)\n\n",
		len(state.Unlocked), len(config.Achievements), state.Points)

	for _, def := range config.Achievements {
		mark := " "
		if state.Has(def.Key) {
			mark = "✓"
		}
		fmt.Printf("  [%s] %s %s\n", mark, def.Icon, def.Name)
	}
	return nil
}
