package cli

import (
	"fmt"
	"time"

	"github.com/bloom-app/bloom/internal/models"
)

type AlarmSetCmd struct {
	Time string `arg:"" help:"Daily alarm time (HH:MM)."`
}

func (c *AlarmSetCmd) Run(ctx *Context) error {
	if _, err := time.Parse("15:04", c.Time); err != nil {
		return fmt.Errorf("invalid time %q, expected HH:MM", c.Time)
	}

	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	eng.SetAlarm(&models.Alarm{Time: c.Time, Timestamp: time.Now().UnixMilli()})
	fmt.Printf("Alarm set for %s daily.\n", c.Time)
	return nil
}

type AlarmClearCmd struct{}

func (c *AlarmClearCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	if eng.Alarm() == nil {
		fmt.Println("No alarm set.")
		return nil
	}
	eng.SetAlarm(nil)
	fmt.Println("Alarm cleared.")
	return nil
}
