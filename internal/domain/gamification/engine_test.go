package gamification

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/habits"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierForStreak(t *testing.T) {
	tests := []struct {
		name          string
		streak        int
		expectedName  string
		expectedIndex int
		nextThreshold *int
	}{
		{"Negative streak clamps to starting", -5, "Starting", 0, intPtr(3)},
		{"Zero streak is starting", 0, "Starting", 0, intPtr(3)},
		{"Just below building boundary", 2, "Starting", 0, intPtr(3)},
		{"Building boundary", 3, "Building", 1, intPtr(7)},
		{"Consistent boundary", 7, "Consistent", 2, intPtr(14)},
		{"Just below advanced", 13, "Consistent", 2, intPtr(14)},
		{"Advanced boundary", 14, "Advanced", 3, intPtr(30)},
		{"Expert boundary", 30, "Expert", 4, intPtr(50)},
		{"Master boundary", 50, "Master", 5, intPtr(100)},
		{"Just below legendary", 99, "Master", 5, intPtr(100)},
		{"Legendary boundary", 100, "Legendary", 6, nil},
		{"Far beyond legendary", 5000, "Legendary", 6, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier := TierForStreak(tt.streak)
			assert.Equal(t, tt.expectedName, tier.Name)
			assert.Equal(t, tt.expectedIndex, tier.Index)
			assert.Equal(t, tt.nextThreshold, tier.NextThreshold)
			assert.NotEmpty(t, tier.Color)
			assert.NotEmpty(t, tier.Emoji)
		})
	}
}

func TestTierForStreakMonotonic(t *testing.T) {
	prev := TierForStreak(0)
	for streak := 1; streak <= 200; streak++ {
		tier := TierForStreak(streak)
		assert.GreaterOrEqual(t, tier.Index, prev.Index, "tier index dropped at streak %d", streak)
		prev = tier
	}
}

func TestProductivityScore(t *testing.T) {
	tests := []struct {
		name     string
		tasks    []task.Task
		habits   []habits.Habit
		expected int
	}{
		{
			name:     "No tasks or habits scores zero",
			expected: 0,
		},
		{
			name: "All done with deep streaks saturates at 100",
			tasks: []task.Task{
				{Completed: true}, {Completed: true},
			},
			habits: []habits.Habit{
				{CompletedToday: true, Streak: 150},
				{CompletedToday: true, Streak: 150},
			},
			expected: 100,
		},
		{
			name: "Mixed progress",
			tasks: []task.Task{
				{Completed: true}, {Completed: true}, {Completed: true},
				{}, {}, {}, {}, {}, {}, {},
			},
			habits: []habits.Habit{
				{CompletedToday: true, Streak: 8},
				{CompletedToday: true, Streak: 4},
				{Streak: 0},
			},
			// 3/10*50 + 2/3*30 + 12/10 = 15 + 20 + 1.2, rounds to 36
			expected: 36,
		},
		{
			name: "Streak bonus is capped at 20",
			habits: []habits.Habit{
				{Streak: 500},
			},
			expected: 20,
		},
		{
			name: "Half tasks no habits",
			tasks: []task.Task{
				{Completed: true}, {},
			},
			expected: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ProductivityScore(tt.tasks, tt.habits))
		})
	}
}

func TestProductivityScoreBounded(t *testing.T) {
	for total := 0; total <= 12; total++ {
		for completed := 0; completed <= total; completed++ {
			tasks := make([]task.Task, total)
			for i := 0; i < completed; i++ {
				tasks[i].Completed = true
			}
			habitList := []habits.Habit{
				{CompletedToday: completed%2 == 0, Streak: completed * 37},
			}
			score := ProductivityScore(tasks, habitList)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestBuildUserStats(t *testing.T) {
	tasks := []task.Task{
		{Completed: true}, {Completed: true}, {}, {},
	}
	habitList := []habits.Habit{
		{CompletedToday: true, Streak: 12},
		{CompletedToday: true, Streak: 3},
	}

	stats := BuildUserStats(tasks, habitList, 420, 2)

	assert.Equal(t, 2, stats.CompletedTasks)
	assert.Equal(t, 4, stats.TotalTasks)
	assert.InDelta(t, 50.0, stats.CompletionRate, 0.001)
	assert.Equal(t, 12, stats.MaxStreak)
	assert.Equal(t, 2, stats.TotalHabits)
	assert.Equal(t, 2, stats.HabitsCompletedToday)
	assert.True(t, stats.AllHabitsCompleted)
	assert.Equal(t, 420, stats.TotalPoints)
	assert.Equal(t, 2, stats.PerfectDays)
}

func TestBuildUserStatsNoHabitsIsNotPerfect(t *testing.T) {
	stats := BuildUserStats(nil, nil, 0, 0)
	assert.False(t, stats.AllHabitsCompleted)
	assert.Equal(t, float64(0), stats.CompletionRate)
}

func TestUserStatsJSONRoundTrip(t *testing.T) {
	original := UserStats{
		CompletedTasks:       7,
		TotalTasks:           9,
		CompletionRate:       77.78,
		MaxStreak:            21,
		TotalHabits:          3,
		HabitsCompletedToday: 2,
		AllHabitsCompleted:   false,
		PerfectDays:          4,
		TotalPoints:          615,
	}

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded UserStats
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, original, decoded)
}

func TestLevelForPoints(t *testing.T) {
	levels := DefaultLevels()

	tests := []struct {
		name     string
		points   int
		expected string
	}{
		{"Negative points clamp to beginner", -10, "Beginner"},
		{"Zero points", 0, "Beginner"},
		{"Just below motivated", 99, "Beginner"},
		{"Motivated threshold", 100, "Motivated"},
		{"Between focused and dedicated", 450, "Focused"},
		{"Champion threshold", 1000, "Champion"},
		{"Legend threshold", 2500, "Legend"},
		{"Beyond the table", 99999, "Legend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevelForPoints(levels, tt.points).Title)
		})
	}
}

func TestProgressForPoints(t *testing.T) {
	levels := DefaultLevels()

	t.Run("Mid level progress", func(t *testing.T) {
		progress := ProgressForPoints(levels, 250)
		assert.Equal(t, "Motivated", progress.Current.Title)
		require.NotNil(t, progress.Next)
		assert.Equal(t, "Focused", progress.Next.Title)
		assert.Equal(t, 150, progress.PointsIntoLevel)
		assert.Equal(t, 50, progress.PointsToNextLevel)
		assert.Equal(t, 75, progress.ProgressPercentage)
	})

	t.Run("Max level pins to 100", func(t *testing.T) {
		progress := ProgressForPoints(levels, 3000)
		assert.Equal(t, "Legend", progress.Current.Title)
		assert.Nil(t, progress.Next)
		assert.Equal(t, 0, progress.PointsToNextLevel)
		assert.Equal(t, 100, progress.ProgressPercentage)
	})

	t.Run("Exactly on a threshold starts at 0 percent", func(t *testing.T) {
		progress := ProgressForPoints(levels, 300)
		assert.Equal(t, "Focused", progress.Current.Title)
		assert.Equal(t, 0, progress.PointsIntoLevel)
		assert.Equal(t, 0, progress.ProgressPercentage)
	})
}

func TestProgressForPointsMonotonic(t *testing.T) {
	levels := DefaultLevels()
	prevLevel := 0
	for points := 0; points <= 3000; points += 25 {
		progress := ProgressForPoints(levels, points)
		assert.GreaterOrEqual(t, progress.Current.Level, prevLevel, "level dropped at %d points", points)
		assert.GreaterOrEqual(t, progress.ProgressPercentage, 0)
		assert.LessOrEqual(t, progress.ProgressPercentage, 100)
		prevLevel = progress.Current.Level
	}
}

func TestEvaluateAchievements(t *testing.T) {
	catalog := DefaultAchievements()

	t.Run("Empty stats unlock nothing", func(t *testing.T) {
		newly := EvaluateAchievements(catalog, UserStats{}, nil)
		assert.Empty(t, newly)
	})

	t.Run("First completed task unlocks getting started", func(t *testing.T) {
		stats := UserStats{CompletedTasks: 1, TotalTasks: 2, CompletionRate: 50}
		newly := EvaluateAchievements(catalog, stats, nil)
		require.Len(t, newly, 1)
		assert.Equal(t, "first-task", newly[0].ID)
	})

	t.Run("Already unlocked ids are skipped", func(t *testing.T) {
		stats := UserStats{CompletedTasks: 1, TotalTasks: 1, CompletionRate: 100, TotalHabits: 1}
		unlocked := map[string]bool{"first-task": true, "habit-starter": true}
		newly := EvaluateAchievements(catalog, stats, unlocked)
		require.Len(t, newly, 1)
		assert.Equal(t, "productivity-guru", newly[0].ID)
	})

	t.Run("Catalog order is preserved", func(t *testing.T) {
		stats := UserStats{
			CompletedTasks: 150,
			TotalTasks:     150,
			CompletionRate: 100,
			MaxStreak:      45,
			TotalHabits:    4,
			PerfectDays:    10,
			TotalPoints:    2000,
		}
		newly := EvaluateAchievements(catalog, stats, nil)
		require.Len(t, newly, len(catalog))
		for i, a := range newly {
			assert.Equal(t, catalog[i].ID, a.ID)
		}
	})

	t.Run("No duplicate ids in one pass", func(t *testing.T) {
		stats := UserStats{CompletedTasks: 200, TotalHabits: 5, MaxStreak: 40}
		seen := map[string]bool{}
		for _, a := range EvaluateAchievements(catalog, stats, nil) {
			assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
			seen[a.ID] = true
		}
	})
}

func TestGenerateDailyChallenges(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)
	batch := GenerateDailyChallenges(now)

	require.Len(t, batch, 3)
	expectedExpiry := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	ids := map[string]bool{}
	for _, c := range batch {
		assert.Equal(t, expectedExpiry, c.ExpiresAt)
		assert.Equal(t, 0, c.Progress)
		assert.False(t, c.Completed)
		assert.Positive(t, c.Points)
		ids[c.ID] = true
	}
	assert.True(t, ids["daily-tasks"])
	assert.True(t, ids["habit-streak"])
	assert.True(t, ids["productivity-boost"])
}

func TestBatchExpired(t *testing.T) {
	now := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	batch := GenerateDailyChallenges(now)

	assert.True(t, BatchExpired(nil, now))
	assert.False(t, BatchExpired(batch, now))
	assert.False(t, BatchExpired(batch, batch[0].ExpiresAt.Add(-time.Second)))
	assert.True(t, BatchExpired(batch, batch[0].ExpiresAt))
	assert.True(t, BatchExpired(batch, batch[0].ExpiresAt.Add(time.Hour)))
}

func TestRefreshChallenges(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	batch := GenerateDailyChallenges(now)
	batch[1].Completed = true

	stats := UserStats{
		CompletedTasks:     9,
		TotalTasks:         10,
		CompletionRate:     90,
		AllHabitsCompleted: true,
		TotalHabits:        2,
	}

	refreshed := RefreshChallenges(batch, stats)
	require.Len(t, refreshed, 3)

	byID := map[string]Challenge{}
	for _, c := range refreshed {
		byID[c.ID] = c
	}

	// Progress clamps at the target even when stats overshoot.
	assert.Equal(t, 5, byID["daily-tasks"].Progress)
	assert.True(t, byID["daily-tasks"].Satisfied())
	assert.Equal(t, 1, byID["habit-streak"].Progress)
	assert.Equal(t, 80, byID["productivity-boost"].Progress)

	// The claim latch survives a refresh, and the input batch is untouched.
	assert.True(t, byID["habit-streak"].Completed)
	assert.Equal(t, 0, batch[0].Progress)
}

func TestRefreshChallengesNoHabits(t *testing.T) {
	batch := GenerateDailyChallenges(time.Now())
	refreshed := RefreshChallenges(batch, UserStats{})
	for _, c := range refreshed {
		assert.Equal(t, 0, c.Progress)
		assert.False(t, c.Satisfied())
	}
}

func TestPointsForAction(t *testing.T) {
	assert.Equal(t, 5, PointsForAction(ActionTaskCompleted))
	assert.Equal(t, 10, PointsForAction(ActionHabitCompleted))
	assert.Equal(t, 40, PointsForAction(ActionPerfectDay))
	assert.Equal(t, 25, PointsForAction(ActionChallengeCompleted))
	assert.Equal(t, 0, PointsForAction("unknown_action"))
}

func TestEngineConfigValidate(t *testing.T) {
	t.Run("Defaults are valid", func(t *testing.T) {
		assert.NoError(t, NewEngineConfig().Validate())
	})

	t.Run("Empty catalog rejected", func(t *testing.T) {
		cfg := NewEngineConfig()
		cfg.Achievements = nil
		assert.ErrorIs(t, cfg.Validate(), ErrEmptyCatalog)
	})

	t.Run("Non increasing level table rejected", func(t *testing.T) {
		cfg := NewEngineConfig()
		cfg.Levels = []Level{
			{1, "A", 0, "", ""},
			{2, "B", 100, "", ""},
			{3, "C", 100, "", ""},
		}
		assert.ErrorIs(t, cfg.Validate(), ErrBadLevelTable)
	})
}

func intPtr(v int) *int {
	return &v
}
