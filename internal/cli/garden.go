package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bloom-app/bloom/internal/config"
)

var (
	gardenTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	gardenBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("114")).
			Padding(1, 3)

	progressDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	progressRestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// flowerArt holds one ASCII picture per growth level.
var flowerArt = []string{
	"  .  \n _|_ ",
	"  |  \n _|_ ",
	" \\|/ \n _|_ ",
	" (@) \n \\|/ \n _|_ ",
	"\\(@)/\n \\|/ \n _|_ ",
}

type GardenCmd struct{}

func (c *GardenCmd) Run(ctx *Context) error {
	eng, err := ctx.OpenEngine()
	if err != nil {
		return err
	}

	flower := eng.FlowerState()
	pet := eng.Pet()
	settings := eng.Settings()

	title := gardenTitleStyle.Render(fmt.Sprintf("%s's garden", settings.PetName))

	body := fmt.Sprintf("%s\n\n%s (level %d)\n%d sunlight collected\n%s",
		flowerArt[flower.Level],
		config.FlowerLevelNames[flower.Level],
		flower.Level,
		flower.Sunlight,
		progressBar(flower.Sunlight, flower.Level),
	)

	fmt.Println(title)
	fmt.Println(gardenBoxStyle.Render(body))
	fmt.Printf("Companion accessory: %s\n", pet.CurrentAccessory)
	return nil
}

// progressBar renders sunlight progress toward the next level.
func progressBar(sunlight, level int) string {
	const width = 20
	if level+1 >= len(config.FlowerThresholds) {
		return progressDoneStyle.Render(strings.Repeat("█", width)) + " max level"
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

	bar := progressDoneStyle.Render(strings.Repeat("█", filled)) +
		progressRestStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %d/%d", bar, sunlight, hi)
}
