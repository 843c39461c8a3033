package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/bloom-app/bloom/internal/models"
	"github.com/bloom-app/bloom/internal/stats"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	summary := stats.Summarize(eng.CheckinLog(), time.Now())

	fmt.Printf("Total check-ins: %d\n\n", summary.Total)

	fmt.Println("By category:")
	for _, cat := range []models.Category{
		models.CategoryLife, models.CategoryStudy, models.CategoryWork,
		models.CategoryWake, models.CategorySleep,
	} {
		if n := summary.ByCategory[cat]; n > 0 {
			fmt.Printf("  %-6s %d\n", cat, n)
		}
	}

	fmt.Println("\nLast 7 days:")
	for _, day := range summary.LastWeek {
		fmt.Printf("  %s  %s %d\n", day.Date, strings.Repeat("▪", day.Count), day.Count)
	}

	if summary.AvgWakeHour >= 0 {
		fmt.Printf("\nAverage wake hour:  %.1f\n", summary.AvgWakeHour)
	}
	if summary.AvgSleepHour >= 0 {
		fmt.Printf("Average sleep hour: %.1f\n", summary.AvgSleepHour)
	}
	return nil
}
