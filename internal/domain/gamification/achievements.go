package gamification

// Rarity buckets achievements for display.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Category groups achievements by the behavior they reward.
type Category string

const (
	CategoryTasks        Category = "tasks"
	CategoryHabits       Category = "habits"
	CategoryStreaks      Category = "streaks"
	CategoryConsistency  Category = "consistency"
	CategoryProductivity Category = "productivity"
)

// Achievement is an immutable catalog entry. Condition evaluates the
// unlock predicate against a stats bundle; it must be pure.
type Achievement struct {
	ID          string                    `json:"id"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Icon        string                    `json:"icon"`
	Category    Category                  `json:"category"`
	Points      int                       `json:"points"`
	Rarity      Rarity                    `json:"rarity"`
	Condition   func(stats UserStats) bool `json:"-"`
}

// DefaultAchievements returns the catalog, in declaration order. The
// catalog is fixed at deploy time and not user-editable.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{
			ID:          "first-task",
			Title:       "Getting Started",
			Description: "Complete your first task",
			Icon:        "✅",
			Category:    CategoryTasks,
			Points:      10,
			Rarity:      RarityCommon,
			Condition:   func(s UserStats) bool { return s.CompletedTasks >= 1 },
		},
		{
			ID:          "task-master",
			Title:       "Task Master",
			Description: "Complete 100 tasks",
			Icon:        "🎯",
			Category:    CategoryTasks,
			Points:      100,
			Rarity:      RarityEpic,
			Condition:   func(s UserStats) bool { return s.CompletedTasks >= 100 },
		},
		{
			ID:          "habit-starter",
			Title:       "Habit Builder",
			Description: "Create your first habit",
			Icon:        "🌱",
			Category:    CategoryHabits,
			Points:      15,
			Rarity:      RarityCommon,
			Condition:   func(s UserStats) bool { return s.TotalHabits >= 1 },
		},
		{
			ID:          "streak-warrior",
			Title:       "Streak Warrior",
			Description: "Maintain a 30-day streak",
			Icon:        "🔥",
			Category:    CategoryStreaks,
			Points:      150,
			Rarity:      RarityRare,
			Condition:   func(s UserStats) bool { return s.MaxStreak >= 30 },
		},
		{
			ID:          "consistency-king",
			Title:       "Consistency King",
			Description: "Complete all habits for 7 days straight",
			Icon:        "👑",
			Category:    CategoryConsistency,
			Points:      200,
			Rarity:      RarityEpic,
			Condition:   func(s UserStats) bool { return s.PerfectDays >= 7 },
		},
		{
			ID:          "productivity-guru",
			Title:       "Productivity Guru",
			Description: "Achieve 90% task completion rate",
			Icon:        "⚡",
			Category:    CategoryProductivity,
			Points:      75,
			Rarity:      RarityRare,
			Condition:   func(s UserStats) bool { return s.CompletionRate >= 90 },
		},
		{
			ID:          "legendary-achiever",
			Title:       "Legendary Achiever",
			Description: "Reach 1000 total points",
			Icon:        "🌟",
			Category:    CategoryProductivity,
			Points:      300,
			Rarity:      RarityLegendary,
			Condition:   func(s UserStats) bool { return s.TotalPoints >= 1000 },
		},
	}
}

// EvaluateAchievements returns, in catalog order, the achievements whose
// condition holds for stats and whose id is not already unlocked. It is
// a pure filter: callers own persisting the unlock and crediting points,
// exactly once per id.
func EvaluateAchievements(catalog []Achievement, stats UserStats, unlocked map[string]bool) []Achievement {
	var newly []Achievement
	for _, a := range catalog {
		if unlocked[a.ID] {
			continue
		}
		if a.Condition != nil && a.Condition(stats) {
			newly = append(newly, a)
		}
	}
	return newly
}
