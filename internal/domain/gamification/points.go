package gamification

// Action point rewards credited outside the achievement catalog.
const (
	ActionTaskCompleted      = "task_completed"
	ActionHabitCompleted     = "habit_completed"
	ActionStreakMilestone7   = "streak_milestone_7"
	ActionStreakMilestone14  = "streak_milestone_14"
	ActionStreakMilestone30  = "streak_milestone_30"
	ActionPerfectDay         = "perfect_day"
	ActionChallengeCompleted = "challenge_completed"
)

var actionPoints = map[string]int{
	ActionTaskCompleted:      5,
	ActionHabitCompleted:     10,
	ActionStreakMilestone7:   25,
	ActionStreakMilestone14:  50,
	ActionStreakMilestone30:  100,
	ActionPerfectDay:         40,
	ActionChallengeCompleted: 25,
}

// PointsForAction returns the reward for an action, 0 for unknown actions.
func PointsForAction(action string) int {
	return actionPoints[action]
}
