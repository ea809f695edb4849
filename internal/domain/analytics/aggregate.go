package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/gamification"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/habits"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/task"
)

const dateLayout = "2006-01-02"

// DailyStat is one day of the rolling completion series.
type DailyStat struct {
	Date              string `json:"date"`
	TasksCompleted    int    `json:"tasks_completed"`
	HabitsCompleted   int    `json:"habits_completed"`
	ProductivityScore int    `json:"productivity_score"`
}

// WeeklyTrend is a rollup of the most recent window of daily stats.
type WeeklyTrend struct {
	Week            string  `json:"week"`
	AvgTasksPerDay  float64 `json:"avg_tasks_per_day"`
	AvgHabitsPerDay float64 `json:"avg_habits_per_day"`
	CompletionRate  int     `json:"completion_rate"`
}

// InsightType classifies an insight for display.
type InsightType string

const (
	InsightPositive   InsightType = "positive"
	InsightWarning    InsightType = "warning"
	InsightSuggestion InsightType = "suggestion"
)

// Insight is a rule-derived observation about recent behavior.
type Insight struct {
	ID          string      `json:"id"`
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Value       *float64    `json:"value,omitempty"`
}

// TimeDistribution is the share of tasks per priority bucket.
type TimeDistribution struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Color    string  `json:"color"`
}

// CompletionTrend is a raw per-day completion count pair over the
// longer trend window.
type CompletionTrend struct {
	Date   string `json:"date"`
	Tasks  int    `json:"tasks"`
	Habits int    `json:"habits"`
}

// Report is the full analytics view derived from current task and habit
// snapshots.
type Report struct {
	DailyStats        []DailyStat        `json:"daily_stats"`
	WeeklyTrends      []WeeklyTrend      `json:"weekly_trends"`
	ProductivityScore int                `json:"productivity_score"`
	Insights          []Insight          `json:"insights"`
	TimeDistribution  []TimeDistribution `json:"time_distribution"`
	CompletionTrends  []CompletionTrend  `json:"completion_trends"`
}

// Summarize builds the analytics report for the trailing windowDays
// ending at now. The completion trend series covers twice the window.
func Summarize(tasks []task.Task, habitList []habits.Habit, windowDays int, now time.Time) Report {
	if windowDays < 1 {
		windowDays = 7
	}

	daily := dailySeries(tasks, habitList, windowDays, now)
	return Report{
		DailyStats:        daily,
		WeeklyTrends:      weeklyTrends(daily),
		ProductivityScore: gamification.ProductivityScore(tasks, habitList),
		Insights:          buildInsights(tasks, habitList, daily),
		TimeDistribution:  timeDistribution(tasks),
		CompletionTrends:  completionTrends(tasks, habitList, windowDays*2, now),
	}
}

// DayScore converts a day's completion counts into a bounded score.
// Each task is worth 15 and each habit 20, capped at 100.
func DayScore(tasksCompleted, habitsCompleted int) int {
	score := tasksCompleted*15 + habitsCompleted*20
	if score > 100 {
		score = 100
	}
	return score
}

func dailySeries(tasks []task.Task, habitList []habits.Habit, days int, now time.Time) []DailyStat {
	taskCounts, habitCounts := countsByDay(tasks, habitList)

	series := make([]DailyStat, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(dateLayout)
		t := taskCounts[date]
		h := habitCounts[date]
		series = append(series, DailyStat{
			Date:              date,
			TasksCompleted:    t,
			HabitsCompleted:   h,
			ProductivityScore: DayScore(t, h),
		})
	}
	return series
}

func completionTrends(tasks []task.Task, habitList []habits.Habit, days int, now time.Time) []CompletionTrend {
	taskCounts, habitCounts := countsByDay(tasks, habitList)

	trends := make([]CompletionTrend, 0, days)
	for i := days - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(dateLayout)
		trends = append(trends, CompletionTrend{
			Date:   date,
			Tasks:  taskCounts[date],
			Habits: habitCounts[date],
		})
	}
	return trends
}

// countsByDay attributes completed tasks to their creation day and
// completed habits to their last completion day.
func countsByDay(tasks []task.Task, habitList []habits.Habit) (map[string]int, map[string]int) {
	taskCounts := make(map[string]int)
	for _, t := range tasks {
		if t.Completed {
			taskCounts[t.CreatedAt.Format(dateLayout)]++
		}
	}

	habitCounts := make(map[string]int)
	for _, h := range habitList {
		if h.CompletedToday && h.LastCompleted != nil {
			habitCounts[h.LastCompleted.Format(dateLayout)]++
		}
	}
	return taskCounts, habitCounts
}

func weeklyTrends(daily []DailyStat) []WeeklyTrend {
	if len(daily) == 0 {
		return nil
	}

	window := daily
	if len(window) > 7 {
		window = window[len(window)-7:]
	}

	taskSum, habitSum, scoreSum := 0, 0, 0
	for _, day := range window {
		taskSum += day.TasksCompleted
		habitSum += day.HabitsCompleted
		scoreSum += day.ProductivityScore
	}

	n := float64(len(window))
	return []WeeklyTrend{
		{
			Week:            "This Week",
			AvgTasksPerDay:  math.Round(float64(taskSum)/n*10) / 10,
			AvgHabitsPerDay: math.Round(float64(habitSum)/n*10) / 10,
			CompletionRate:  int(math.Round(float64(scoreSum) / n)),
		},
	}
}

func buildInsights(tasks []task.Task, habitList []habits.Habit, daily []DailyStat) []Insight {
	var insights []Insight

	if len(daily) > 0 {
		scoreSum := 0
		for _, day := range daily {
			scoreSum += day.ProductivityScore
		}
		avgScore := float64(scoreSum) / float64(len(daily))
		if avgScore > 80 {
			value := avgScore
			insights = append(insights, Insight{
				ID:          "high-productivity",
				Type:        InsightPositive,
				Title:       "Exceptional Performance! 🚀",
				Description: fmt.Sprintf("Your average productivity score is %d%%. You're crushing your goals!", int(math.Round(avgScore))),
				Icon:        "🏆",
				Value:       &value,
			})
		}
	}

	longestStreak := 0
	for _, h := range habitList {
		if h.Streak > longestStreak {
			longestStreak = h.Streak
		}
	}
	if longestStreak >= 7 {
		value := float64(longestStreak)
		insights = append(insights, Insight{
			ID:          "streak-master",
			Type:        InsightPositive,
			Title:       "Streak Master! 🔥",
			Description: fmt.Sprintf("Your longest habit streak is %d days. Consistency is key to success!", longestStreak),
			Icon:        "🔥",
			Value:       &value,
		})
	}

	if len(tasks) > 0 {
		completed := 0
		for _, t := range tasks {
			if t.Completed {
				completed++
			}
		}
		rate := float64(completed) / float64(len(tasks)) * 100
		if rate < 50 {
			insights = append(insights, Insight{
				ID:          "low-completion",
				Type:        InsightWarning,
				Title:       "Focus Opportunity 💡",
				Description: fmt.Sprintf("Your task completion rate is %d%%. Try breaking down larger tasks into smaller ones.", int(math.Round(rate))),
				Icon:        "💡",
			})
		}
	}

	if len(habitList) < 3 {
		insights = append(insights, Insight{
			ID:          "add-habits",
			Type:        InsightSuggestion,
			Title:       "Build More Habits 🌱",
			Description: "Consider adding 2-3 key habits that align with your goals for compound growth.",
			Icon:        "🌱",
		})
	}

	return insights
}

func timeDistribution(tasks []task.Task) []TimeDistribution {
	counts := map[task.Priority]int{}
	for _, t := range tasks {
		counts[t.Priority]++
	}

	total := len(tasks)
	if total < 1 {
		total = 1
	}
	share := func(p task.Priority) float64 {
		return float64(counts[p]) / float64(total) * 100
	}

	return []TimeDistribution{
		{Category: "High Priority", Value: share(task.PriorityHigh), Color: "#ef4444"},
		{Category: "Medium Priority", Value: share(task.PriorityMedium), Color: "#f59e0b"},
		{Category: "Low Priority", Value: share(task.PriorityLow), Color: "#10b981"},
	}
}
