package analytics

import (
	"testing"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/habits"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayScore(t *testing.T) {
	tests := []struct {
		name     string
		tasks    int
		habits   int
		expected int
	}{
		{"Nothing done", 0, 0, 0},
		{"Tasks only", 3, 0, 45},
		{"Habits only", 0, 2, 40},
		{"Mixed", 2, 2, 70},
		{"Capped at 100", 10, 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DayScore(tt.tasks, tt.habits))
		})
	}
}

func TestSummarizeDailySeries(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	tasks := []task.Task{
		{Completed: true, Priority: task.PriorityHigh, CreatedAt: now},
		{Completed: true, Priority: task.PriorityLow, CreatedAt: now},
		{Completed: true, Priority: task.PriorityMedium, CreatedAt: yesterday},
		{Completed: false, Priority: task.PriorityMedium, CreatedAt: now},
	}
	habitList := []habits.Habit{
		{CompletedToday: true, Streak: 3, LastCompleted: &now},
		{CompletedToday: false, Streak: 1, LastCompleted: &yesterday},
	}

	report := Summarize(tasks, habitList, 7, now)

	require.Len(t, report.DailyStats, 7)
	assert.Equal(t, "2025-06-04", report.DailyStats[0].Date)

	today := report.DailyStats[6]
	assert.Equal(t, "2025-06-10", today.Date)
	assert.Equal(t, 2, today.TasksCompleted)
	assert.Equal(t, 1, today.HabitsCompleted)
	assert.Equal(t, 50, today.ProductivityScore)

	// Habit not completed today does not count toward yesterday either.
	prior := report.DailyStats[5]
	assert.Equal(t, 1, prior.TasksCompleted)
	assert.Equal(t, 0, prior.HabitsCompleted)

	require.Len(t, report.CompletionTrends, 14)
	assert.Equal(t, 2, report.CompletionTrends[13].Tasks)
}

func TestSummarizeWeeklyTrend(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	var tasks []task.Task
	for i := 0; i < 7; i++ {
		tasks = append(tasks, task.Task{
			Completed: true,
			Priority:  task.PriorityMedium,
			CreatedAt: now.AddDate(0, 0, -i),
		})
	}

	report := Summarize(tasks, nil, 7, now)
	require.Len(t, report.WeeklyTrends, 1)

	trend := report.WeeklyTrends[0]
	assert.Equal(t, "This Week", trend.Week)
	assert.InDelta(t, 1.0, trend.AvgTasksPerDay, 0.001)
	assert.InDelta(t, 0.0, trend.AvgHabitsPerDay, 0.001)
	assert.Equal(t, 15, trend.CompletionRate)
}

func TestSummarizeInsights(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("Long streak and low completion", func(t *testing.T) {
		tasks := []task.Task{
			{Completed: true, Priority: task.PriorityLow, CreatedAt: now},
			{Priority: task.PriorityLow, CreatedAt: now},
			{Priority: task.PriorityLow, CreatedAt: now},
		}
		habitList := []habits.Habit{{Streak: 12}}

		report := Summarize(tasks, habitList, 7, now)

		ids := map[string]Insight{}
		for _, in := range report.Insights {
			ids[in.ID] = in
		}

		streak, ok := ids["streak-master"]
		require.True(t, ok)
		assert.Equal(t, InsightPositive, streak.Type)
		require.NotNil(t, streak.Value)
		assert.Equal(t, float64(12), *streak.Value)

		low, ok := ids["low-completion"]
		require.True(t, ok)
		assert.Equal(t, InsightWarning, low.Type)

		_, ok = ids["add-habits"]
		assert.True(t, ok, "fewer than three habits should suggest more")
	})

	t.Run("No tasks does not warn about completion", func(t *testing.T) {
		report := Summarize(nil, nil, 7, now)
		for _, in := range report.Insights {
			assert.NotEqual(t, "low-completion", in.ID)
		}
	})

	t.Run("Three habits silences the suggestion", func(t *testing.T) {
		habitList := []habits.Habit{{}, {}, {}}
		report := Summarize(nil, habitList, 7, now)
		for _, in := range report.Insights {
			assert.NotEqual(t, "add-habits", in.ID)
		}
	})
}

func TestSummarizeTimeDistribution(t *testing.T) {
	now := time.Now()
	tasks := []task.Task{
		{Priority: task.PriorityHigh, CreatedAt: now},
		{Priority: task.PriorityHigh, CreatedAt: now},
		{Priority: task.PriorityMedium, CreatedAt: now},
		{Priority: task.PriorityLow, CreatedAt: now},
	}

	report := Summarize(tasks, nil, 7, now)
	require.Len(t, report.TimeDistribution, 3)

	assert.Equal(t, "High Priority", report.TimeDistribution[0].Category)
	assert.InDelta(t, 50.0, report.TimeDistribution[0].Value, 0.001)
	assert.InDelta(t, 25.0, report.TimeDistribution[1].Value, 0.001)
	assert.InDelta(t, 25.0, report.TimeDistribution[2].Value, 0.001)
}

func TestSummarizeEmptyWindowDefaults(t *testing.T) {
	report := Summarize(nil, nil, 0, time.Now())
	assert.Len(t, report.DailyStats, 7)
	assert.Equal(t, 0, report.ProductivityScore)
}
