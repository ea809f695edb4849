package gamification

import (
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/habits"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/task"
)

// UserStats is the derived aggregate view of a user's current tasks and
// habits, recomputed from live snapshots on every evaluation pass. It is
// the sole input to achievement conditions and challenge progress.
type UserStats struct {
	CompletedTasks       int     `json:"completed_tasks"`
	TotalTasks           int     `json:"total_tasks"`
	CompletionRate       float64 `json:"completion_rate"`
	MaxStreak            int     `json:"max_streak"`
	TotalHabits          int     `json:"total_habits"`
	HabitsCompletedToday int     `json:"habits_completed_today"`
	AllHabitsCompleted   bool    `json:"all_habits_completed"`
	PerfectDays          int     `json:"perfect_days"`
	TotalPoints          int     `json:"total_points"`
}

// BuildUserStats aggregates task and habit snapshots into a stats bundle.
// totalPoints and perfectDays come from persisted gamification state.
func BuildUserStats(tasks []task.Task, habitList []habits.Habit, totalPoints, perfectDays int) UserStats {
	stats := UserStats{
		TotalTasks:  len(tasks),
		TotalHabits: len(habitList),
		TotalPoints: totalPoints,
		PerfectDays: perfectDays,
	}

	for _, t := range tasks {
		if t.Completed {
			stats.CompletedTasks++
		}
	}
	if stats.TotalTasks > 0 {
		stats.CompletionRate = float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
	}

	for _, h := range habitList {
		if h.Streak > stats.MaxStreak {
			stats.MaxStreak = h.Streak
		}
		if h.CompletedToday {
			stats.HabitsCompletedToday++
		}
	}
	stats.AllHabitsCompleted = stats.TotalHabits > 0 && stats.HabitsCompletedToday == stats.TotalHabits

	return stats
}

// ProductivityScore computes the bounded composite score in [0, 100]:
// task completion is weighted 50, habit completion today 30, and the
// summed streak investment is a bonus capped at 20 so one long-lived
// habit cannot saturate the score.
func ProductivityScore(tasks []task.Task, habitList []habits.Habit) int {
	completedTasks := 0
	for _, t := range tasks {
		if t.Completed {
			completedTasks++
		}
	}
	totalTasks := len(tasks)
	if totalTasks < 1 {
		totalTasks = 1
	}

	completedHabits := 0
	streakSum := 0
	for _, h := range habitList {
		if h.CompletedToday {
			completedHabits++
		}
		if h.Streak > 0 {
			streakSum += h.Streak
		}
	}
	totalHabits := len(habitList)
	if totalHabits < 1 {
		totalHabits = 1
	}

	taskComponent := float64(completedTasks) / float64(totalTasks) * 50
	habitComponent := float64(completedHabits) / float64(totalHabits) * 30
	streakBonus := float64(streakSum) / 10
	if streakBonus > 20 {
		streakBonus = 20
	}

	score := int(taskComponent + habitComponent + streakBonus + 0.5)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
