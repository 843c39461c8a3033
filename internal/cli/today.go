package cli

import (
	"fmt"

	"github.com/bloom-app/bloom/internal/config"
	"github.com/bloom-app/bloom/internal/engine"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	status := eng.TodayStatus()
	flower := eng.FlowerState()
	achievements := eng.AchievementState()

	fmt.Printf("Today (%s)\n\n", status.Date)
	fmt.Printf("  Wake up:  %s\n", checkMark(status.WakeUp))
	fmt.Printf("  Sleep:    %s\n", checkMark(status.Sleep))

	count := 0
	for _, rec := range eng.CheckinLog() {
		if rec.Date == status.Date {
			count++
		}
	}
	fmt.Printf("  Check-ins today: %d\n\n", count)

	fmt.Printf("  Flower: %s (level %d, %d sunlight)\n",
		config.FlowerLevelNames[flower.Level], flower.Level, flower.Sunlight)
	if flower.Level+1 < len(config.FlowerThresholds) {
		remaining := config.FlowerThresholds[flower.Level+1] - flower.Sunlight
		fmt.Printf("  Next level in %d sunlight\n", remaining)
	} else {
		fmt.Println("  Your flower is in full bloom!")
	}
	fmt.Printf("  Achievements: %d/%d unlocked, %d points\n",
		len(achievements.Unlocked), len(config.Achievements), achievements.Points)

	if eng.Degraded() {
		fmt.Println("\n⚠ Storage unavailable, changes will not survive a restart.")
	}

	countdownSummary(eng)
	return nil
}

func checkMark(done bool) string {
	if done {
		return "✓ done"
	}
	return "not yet"
}

func countdownSummary(eng *engine.Engine) {
	cd := eng.Countdown()
	if cd == nil {
		return
	}
	days, err := daysUntil(cd.Date, eng.TodayStatus().Date)
	if err != nil {
		return
	}
	switch {
	case days > 0:
		fmt.Printf("\n  ⏳ %d days until %s\n", days, cd.Name)
	case days == 0:
		fmt.Printf("\n  🎉 %s is today!\n", cd.Name)
	default:
		fmt.Printf("\n  %s was %d days ago\n", cd.Name, -days)
	}
}
