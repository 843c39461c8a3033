package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/bloom-app/bloom/internal/cli"
	"github.com/bloom-app/bloom/internal/storage"
	"github.com/bloom-app/bloom/internal/weather"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path." type:"path" default:"~/.config/bloom/bloom.db"`

	Init         cli.InitCmd         `cmd:"" help:"Initialize bloom storage."`
	Tui          cli.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Wake         cli.WakeCmd         `cmd:"" help:"Record today's wake-up."`
	Sleep        cli.SleepCmd        `cmd:"" help:"Record today's bedtime."`
	Checkin      cli.CheckinCmd      `cmd:"" help:"Record a custom check-in."`
	Today        cli.TodayCmd        `cmd:"" help:"Show today's status."`
	Garden       cli.GardenCmd       `cmd:"" help:"Show your flower."`
	Achievements cli.AchievementsCmd `cmd:"" help:"Show achievements."`
	Stats        cli.StatsCmd        `cmd:"" help:"Show check-in statistics."`
	Weather      cli.WeatherCmd      `cmd:"" help:"Show current weather."`
	Pet          cli.PetCmd          `cmd:"" help:"Show or dress your companion."`
	Countdown    struct {
		Set   cli.CountdownSetCmd   `cmd:"" help:"Set the countdown."`
		Clear cli.CountdownClearCmd `cmd:"" help:"Clear the countdown."`
	} `cmd:"" help:"Manage the countdown."`
	Alarm struct {
		Set   cli.AlarmSetCmd   `cmd:"" help:"Set the daily alarm."`
		Clear cli.AlarmClearCmd `cmd:"" help:"Clear the daily alarm."`
	} `cmd:"" help:"Manage the daily alarm."`
	Settings struct {
		Show cli.SettingsShowCmd `cmd:"" help:"Show settings." default:"1"`
		Set  cli.SettingsSetCmd  `cmd:"" help:"Change settings."`
	} `cmd:"" help:"Manage settings."`
	Export cli.ExportCmd `cmd:"" help:"Export all data as JSON."`
	Import cli.ImportCmd `cmd:"" help:"Import a data snapshot."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage backups."`
	Serve  cli.ServeCmd  `cmd:"" help:"Serve the web app offline-first."`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health diagnostics."`
	Reset  cli.ResetCmd  `cmd:"" help:"Erase all data and start over."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("bloom"),
		kong.Description("Habit companion: check in, grow your flower, unlock achievements"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Determine storage type based on extension
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:   store,
		Weather: weather.NewClient(os.Getenv("BLOOM_WEATHER_KEY"), ""),
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
