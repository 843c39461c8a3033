package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/bloom-app/bloom/internal/config"
	"github.com/bloom-app/bloom/internal/engine"
	"github.com/bloom-app/bloom/internal/models"
)

type WakeCmd struct{}

func (c *WakeCmd) Run(ctx *Context) error {
	return runQuickCheckin(ctx, engine.QuickWake)
}

type SleepCmd struct{}

func (c *SleepCmd) Run(ctx *Context) error {
	return runQuickCheckin(ctx, engine.QuickSleep)
}

func runQuickCheckin(ctx *Context, kind engine.QuickKind) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	rec, err := eng.MarkQuickCheckin(kind)
	if errors.Is(err, engine.ErrAlreadyCheckedIn) {
		fmt.Println("Already checked in today. See you tomorrow!")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(quickGreeting(kind, engine.HourOfDay(rec.Timestamp)))
	return nil
}

// quickGreeting picks the confirmation line by time of day, like the
// original app's greeting buckets.
func quickGreeting(kind engine.QuickKind, hour int) string {
	if kind == engine.QuickSleep {
		return "Good night! Sleep recorded (+15 sunlight)."
	}
	switch {
	case hour < config.EarlyWakeEndHour:
		return "Up with the birds! Wake-up recorded."
	case hour < config.MorningWakeEndHour:
		return "Good morning! Wake-up recorded."
	default:
		return "Better late than never! Wake-up recorded."
	}
}

type CheckinCmd struct {
	Task     string `arg:"" help:"What you did."`
	Category string `help:"Category: life, study, or work." short:"c" default:"life"`
	Yes      bool   `help:"Skip the repeat confirmation." short:"y"`
}

func (c *CheckinCmd) Run(ctx *Context) error {
	if c.Task == "" {
		return fmt.Errorf("task cannot be empty")
	}

	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	// A repeat of the same task today is allowed, but only on purpose.
	if !c.Yes && eng.HasCheckinToday(c.Task) {
		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("You already checked in %q today. Record it again?", c.Task)).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Check-in cancelled.")
			return nil
		}
	}

	category := models.Category(c.Category)
	if !category.Known() {
		fmt.Printf("Note: %q is a custom category; it won't count toward achievements.\n", category)
	}

	rec, err := eng.RecordCheckin(c.Task, category)
	if err != nil {
		return err
	}

	points := config.GeneralPoints
	if rec.Category == models.CategorySleep {
		points = config.SleepPoints
	}
	fmt.Printf("✓ Checked in: %s [%s] (+%d sunlight)\n", rec.Task, rec.Category, points)
	return nil
}
