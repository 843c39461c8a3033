package cli

import (
	"fmt"
	"time"

	"github.com/bloom-app/bloom/internal/models"
)

type CountdownSetCmd struct {
	Name string `arg:"" help:"What you are counting down to."`
	Date string `arg:"" help:"Target date (YYYY-MM-DD)."`
}

func (c *CountdownSetCmd) Run(ctx *Context) error {
	if _, err := time.Parse("2006-01-02", c.Date); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", c.Date)
	}

	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	eng.SetCountdown(&models.Countdown{Name: c.Name, Date: c.Date})
	fmt.Printf("Countdown set: %s on %s\n", c.Name, c.Date)
	return nil
}

type CountdownClearCmd struct{}

func (c *CountdownClearCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	if eng.Countdown() == nil {
		fmt.Println("No countdown set.")
		return nil
	}
	eng.SetCountdown(nil)
	fmt.Println("Countdown cleared.")
	return nil
}

// daysUntil returns whole days from today to the target date, both given as
// calendar days.
func daysUntil(target, today string) (int, error) {
	t, err := time.Parse("2006-01-02", target)
	if err != nil {
		return 0, err
	}
	n, err := time.Parse("2006-01-02", today)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(n).Hours() / 24), nil
}
