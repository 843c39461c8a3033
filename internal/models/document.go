package models

// FlowerState tracks growth. Level is derived from cumulative sunlight via
// the configured thresholds and never decreases.
type FlowerState struct {
	Level    int `json:"level"`
	Sunlight int `json:"sunlight"`
}

// AchievementState records permanently unlocked achievements in unlock
// order. Points is always the per-achievement bonus times len(Unlocked).
type AchievementState struct {
	Unlocked []string `json:"unlocked"`
	Points   int      `json:"points"`
}

// Has reports whether key has been unlocked.
func (a AchievementState) Has(key string) bool {
	for _, k := range a.Unlocked {
		if k == key {
			return true
		}
	}
	return false
}

// TodayStatus gates the two quick check-in buttons. Both flags reset when
// the stored date differs from the current calendar day.
type TodayStatus struct {
	Date   string `json:"date"`
	WakeUp bool   `json:"wake_up"`
	Sleep  bool   `json:"sleep"`
}

// Settings are the user preferences persisted with the document.
type Settings struct {
	Theme             string `json:"theme"`
	Language          string `json:"language"`
	PetName           string `json:"pet_name"`
	WeatherPreference string `json:"weather_preference"`
	SoundEffects      bool   `json:"sound_effects"`
	NotificationTime  string `json:"notification_time"` // HH:MM
}

// Countdown is an optional named target date (YYYY-MM-DD).
type Countdown struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// Alarm is an optional daily alarm time plus the instant it was set.
type Alarm struct {
	Time      string `json:"time"` // HH:MM
	Timestamp int64  `json:"timestamp"`
}

// PetState tracks the companion's current accessory.
type PetState struct {
	CurrentAccessory string `json:"current_accessory"`
}

// Document is the single root object persisted per app instance. It is
// always read and written as a whole unit.
type Document struct {
	Version      int              `json:"version"`
	Settings     Settings         `json:"settings"`
	Checkins     []CheckinRecord  `json:"checkins"`
	Flower       FlowerState      `json:"flower"`
	Pet          PetState         `json:"pet"`
	Achievements AchievementState `json:"achievements"`
	Countdown    *Countdown       `json:"countdown,omitempty"`
	TodayStatus  TodayStatus      `json:"today_status"`
	Alarm        *Alarm           `json:"alarm,omitempty"`
}

// DefaultDocument returns a fresh document with default settings.
func DefaultDocument() Document {
	return Document{
		Version: 1,
		Settings: Settings{
			Theme:             "auto",
			Language:          "en",
			PetName:           "Buddy",
			WeatherPreference: "all",
			SoundEffects:      true,
			NotificationTime:  "21:00",
		},
		Checkins:     []CheckinRecord{},
		Pet:          PetState{CurrentAccessory: "spring"},
		Achievements: AchievementState{Unlocked: []string{}},
	}
}
