package gamification

import "time"

// ChallengeType selects which statistic drives a challenge's progress.
type ChallengeType string

const (
	ChallengeTasks        ChallengeType = "tasks"
	ChallengeHabits       ChallengeType = "habits"
	ChallengeProductivity ChallengeType = "productivity"
)

// Challenge is a short-lived daily target with a point reward. Progress
// is recomputed from stats on every refresh. Completed is set exactly
// once, when the satisfied challenge is claimed and its reward credited;
// it never reverts within the same batch.
type Challenge struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Type        ChallengeType `json:"type"`
	Target      int           `json:"target"`
	Progress    int           `json:"progress"`
	Points      int           `json:"points"`
	ExpiresAt   time.Time     `json:"expires_at"`
	Completed   bool          `json:"completed"`
}

// Satisfied reports whether progress has reached the target.
func (c Challenge) Satisfied() bool {
	return c.Progress >= c.Target
}

// GenerateDailyChallenges produces a fresh batch of three challenges
// expiring at the next midnight after now.
func GenerateDailyChallenges(now time.Time) []Challenge {
	expiry := nextMidnight(now)

	return []Challenge{
		{
			ID:          "daily-tasks",
			Title:       "Daily Achiever",
			Description: "Complete 5 tasks today",
			Type:        ChallengeTasks,
			Target:      5,
			Points:      25,
			ExpiresAt:   expiry,
		},
		{
			ID:          "habit-streak",
			Title:       "Habit Hero",
			Description: "Complete all your habits today",
			Type:        ChallengeHabits,
			Target:      1,
			Points:      30,
			ExpiresAt:   expiry,
		},
		{
			ID:          "productivity-boost",
			Title:       "Productivity Boost",
			Description: "Maintain 80% completion rate",
			Type:        ChallengeProductivity,
			Target:      80,
			Points:      35,
			ExpiresAt:   expiry,
		},
	}
}

// BatchExpired reports whether the stored batch must be replaced: it is
// empty, or now has reached the batch's expiry.
func BatchExpired(batch []Challenge, now time.Time) bool {
	if len(batch) == 0 {
		return true
	}
	return !now.Before(batch[0].ExpiresAt)
}

// RefreshChallenges recomputes progress for every challenge in the batch
// against current stats. The completed flag belongs to the claim step
// and is never touched here. A new slice is returned; the input is not
// mutated.
func RefreshChallenges(batch []Challenge, stats UserStats) []Challenge {
	out := make([]Challenge, len(batch))
	for i, c := range batch {
		switch c.Type {
		case ChallengeTasks:
			c.Progress = minInt(stats.CompletedTasks, c.Target)
		case ChallengeHabits:
			if stats.AllHabitsCompleted {
				c.Progress = 1
			} else {
				c.Progress = 0
			}
		case ChallengeProductivity:
			c.Progress = minInt(int(stats.CompletionRate), c.Target)
		}
		out[i] = c
	}
	return out
}

func nextMidnight(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
