package config

// Flower growth configuration. The thresholds sequence is strictly
// increasing; the level-up scan in the engine relies on that.
var (
	// FlowerThresholds holds the cumulative sunlight required for each
	// growth level. Index 0 is the seed stage.
	FlowerThresholds = []int{0, 50, 150, 300, 500}

	// FlowerLevelNames are the display names for each growth level.
	FlowerLevelNames = []string{"Seed", "Sprout", "Seedling", "Bud", "Bloom"}
)

const (
	// SleepPoints is the sunlight granted for a sleep check-in.
	SleepPoints = 15
	// GeneralPoints is the sunlight granted for any other check-in.
	GeneralPoints = 5

	// AchievementBonusPoints is granted once per unlocked achievement.
	AchievementBonusPoints = 10
)

const (
	// MorningWakeStartHour and MorningWakeEndHour bound the "morning" wake
	// window. The end bound is inclusive.
	MorningWakeStartHour = 6
	MorningWakeEndHour   = 9

	// EarlyWakeEndHour is the inclusive end bound of the stricter
	// early-riser window (start shared with MorningWakeStartHour).
	EarlyWakeEndHour = 7

	// HealthySleepStartHour and HealthySleepEndHour bound a healthy
	// bedtime: at or after 22:00, or at or before 02:59.
	HealthySleepStartHour = 22
	HealthySleepEndHour   = 2

	// HealthyStreakDays is the number of consecutive healthy days required
	// for the healthy-schedule achievement.
	HealthyStreakDays = 7
)

const (
	// AutoSaveIntervalSec is how often the engine flushes in-memory state.
	AutoSaveIntervalSec = 30

	// WeatherFreshnessSec is how long a cached weather response may be
	// served after a failed live fetch.
	WeatherFreshnessSec = 10 * 60

	// WeatherTimeoutSec bounds the live weather fetch.
	WeatherTimeoutSec = 10
)

// Default location used when no position is available (Beijing).
const (
	DefaultLatitude  = 39.9042
	DefaultLongitude = 116.4074
)

// Desktop tray integration. The tray app writes a lockfile with its webhook
// port, PID and shared secret; the CLI validates the PID before posting.
const (
	TrayAppIdentifier      = "bloom-tray"
	NotifierLockfileName   = "bloom-tray.lock"
	NotificationDurationMs = 5000
)

func init() {
	if len(FlowerThresholds) != len(FlowerLevelNames) {
		panic("FlowerThresholds and FlowerLevelNames must have the same length")
	}
	for i := 1; i < len(FlowerThresholds); i++ {
		if FlowerThresholds[i] <= FlowerThresholds[i-1] {
			panic("FlowerThresholds must be strictly increasing")
		}
	}
}
