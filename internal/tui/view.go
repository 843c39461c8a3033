package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bloom-app/bloom/internal/config"
	"github.com/bloom-app/bloom/internal/stats"
)

// flowerArt holds one ASCII picture per growth level.
var flowerArt = []string{
	"  .  \n _|_ ",
	"  |  \n _|_ ",
	" \\|/ \n _|_ ",
	" (@) \n \\|/ \n _|_ ",
	"\\(@)/\n \\|/ \n _|_ ",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StateGarden:
		content = m.viewGarden()
	case StateAchievements:
		content = m.viewAchievements()
	case StateStats:
		content = m.viewStats()
	case StateCheckinForm:
		content = m.form.View()
	}

	sections := []string{m.viewTabs(), content}
	if m.toast != "" {
		sections = append(sections, toastStyle.Render(m.toast))
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Garden", "Achievements", "Stats"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	status := m.engine.TodayStatus()
	flower := m.engine.FlowerState()

	var b strings.Builder
	fmt.Fprintf(&b, "Today: %s\n\n", status.Date)
	fmt.Fprintf(&b, "  %s Wake up\n", stateMark(status.WakeUp))
	fmt.Fprintf(&b, "  %s Sleep\n\n", stateMark(status.Sleep))

	count := 0
	for _, rec := range m.engine.CheckinLog() {
		if rec.Date == status.Date {
			count++
		}
	}
	fmt.Fprintf(&b, "  Check-ins today: %d\n", count)
	fmt.Fprintf(&b, "  Flower: %s (%d sunlight)\n",
		config.FlowerLevelNames[flower.Level], flower.Sunlight)

	if cd := m.engine.Countdown(); cd != nil {
		fmt.Fprintf(&b, "\n  ⏳ Counting down to %s (%s)\n", cd.Name, cd.Date)
	}

	return docStyle.Render(b.String())
}

func (m Model) viewGarden() string {
	flower := m.engine.FlowerState()
	pet := m.engine.Pet()

	var b strings.Builder
	b.WriteString(flowerArt[flower.Level])
	fmt.Fprintf(&b, "\n\n%s (level %d)\n", config.FlowerLevelNames[flower.Level], flower.Level)
	fmt.Fprintf(&b, "%d sunlight collected\n", flower.Sunlight)
	b.WriteString(m.viewProgress(flower.Sunlight, flower.Level))
	fmt.Fprintf(&b, "\n\nCompanion accessory: %s\n", pet.CurrentAccessory)

	return docStyle.Render(b.String())
}

func (m Model) viewProgress(sunlight, level int) string {
	const width = 20
	if level+1 >= len(config.FlowerThresholds) {
		return barFillStyle.Render(strings.Repeat("█", width)) + " max level"
	}

	lo := config.FlowerThresholds[level]
	hi := config.FlowerThresholds[level+1]
	filled := (sunlight - lo) * width / (hi - lo)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return barFillStyle.Render(strings.Repeat("█", filled)) +
		barRestStyle.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %d/%d", sunlight, hi)
}

func (m Model) viewAchievements() string {
	state := m.engine.AchievementState()

	var b strings.Builder
	fmt.Fprintf(&b, "Achievements: %d/%d unlocked, %d points\n\n",
		len(state.Unlocked), len(config.Achievements), state.Points)

	for _, def := range config.Achievements {
		line := fmt.Sprintf("%s %s", def.Icon, def.Name)
		if state.Has(def.Key) {
			b.WriteString("  " + doneStyle.Render("✓ "+line) + "\n")
		} else {
			b.WriteString("  " + pendingStyle.Render("  "+line) + "\n")
		}
	}

	return docStyle.Render(b.String())
}

func (m Model) viewStats() string {
	summary := stats.Summarize(m.engine.CheckinLog(), time.Now())

	var b strings.Builder
	fmt.Fprintf(&b, "Total check-ins: %d\n\n", summary.Total)
	b.WriteString("Last 7 days:\n")
	for _, day := range summary.LastWeek {
		fmt.Fprintf(&b, "  %s  %s %d\n", day.Date, strings.Repeat("▪", day.Count), day.Count)
	}
	if summary.AvgWakeHour >= 0 {
		fmt.Fprintf(&b, "\nAverage wake hour:  %.1f\n", summary.AvgWakeHour)
	}
	if summary.AvgSleepHour >= 0 {
		fmt.Fprintf(&b, "Average sleep hour: %.1f\n", summary.AvgSleepHour)
	}

	return docStyle.Render(b.String())
}

func stateMark(done bool) string {
	if done {
		return doneStyle.Render("✓")
	}
	return pendingStyle.Render("·")
}
