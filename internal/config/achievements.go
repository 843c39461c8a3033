package config

// AchievementKind selects which evaluation rule applies to a definition.
type AchievementKind string

const (
	// KindMorningWake counts wake check-ins inside the morning window.
	KindMorningWake AchievementKind = "morning_wake"
	// KindEarlyWake counts wake check-ins inside the stricter early window.
	KindEarlyWake AchievementKind = "early_wake"
	// KindCategoryCount counts check-ins whose category matches Category.
	KindCategoryCount AchievementKind = "category_count"
	// KindHealthyStreak requires consecutive healthy days anchored at today.
	KindHealthyStreak AchievementKind = "healthy_streak"
)

// AchievementDefinition is static configuration, not user data.
type AchievementDefinition struct {
	Key       string
	Name      string
	Icon      string
	Kind      AchievementKind
	Threshold int
	Category  string // only set for KindCategoryCount
}

// Achievements are the six definitions that ship by default. The
// morningBird and earlyBird rules count total qualifying check-ins, not a
// consecutive streak, despite the names.
var Achievements = []AchievementDefinition{
	{Key: "morningBird", Name: "Early to Rise", Icon: "🌅", Kind: KindMorningWake, Threshold: 7},
	{Key: "earlyBird", Name: "Early Bird", Icon: "🐦", Kind: KindEarlyWake, Threshold: 5},
	{Key: "healthyLife", Name: "Healthy Rhythm", Icon: "💪", Kind: KindHealthyStreak, Threshold: HealthyStreakDays},
	{Key: "studyMaster", Name: "Study Master", Icon: "📚", Kind: KindCategoryCount, Threshold: 10, Category: "study"},
	{Key: "workHero", Name: "Work Hero", Icon: "💼", Kind: KindCategoryCount, Threshold: 15, Category: "work"},
	{Key: "lifeExpert", Name: "Life Expert", Icon: "🏠", Kind: KindCategoryCount, Threshold: 20, Category: "life"},
}

// AchievementByKey returns the definition for key, or nil if unknown.
func AchievementByKey(key string) *AchievementDefinition {
	for i := range Achievements {
		if Achievements[i].Key == key {
			return &Achievements[i]
		}
	}
	return nil
}

func init() {
	seen := make(map[string]bool, len(Achievements))
	for _, def := range Achievements {
		if def.Threshold <= 0 {
			panic("achievement threshold must be positive: " + def.Key)
		}
		if seen[def.Key] {
			panic("duplicate achievement key: " + def.Key)
		}
		seen[def.Key] = true
	}
}
