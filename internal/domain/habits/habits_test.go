package habits

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMarkCompleted(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	threeDaysAgo := now.AddDate(0, 0, -3)

	tests := []struct {
		name           string
		habit          Habit
		expectedOK     bool
		expectedStreak int
	}{
		{
			name:           "First ever completion starts a streak",
			habit:          Habit{},
			expectedOK:     true,
			expectedStreak: 1,
		},
		{
			name: "Completion the day after extends the streak",
			habit: Habit{
				Streak:        4,
				LastCompleted: &yesterday,
			},
			expectedOK:     true,
			expectedStreak: 5,
		},
		{
			name: "Gap restarts the streak at one",
			habit: Habit{
				Streak:        9,
				LastCompleted: &threeDaysAgo,
			},
			expectedOK:     true,
			expectedStreak: 1,
		},
		{
			name: "Already completed today is a no-op",
			habit: Habit{
				Streak:         3,
				CompletedToday: true,
				LastCompleted:  &now,
			},
			expectedOK:     false,
			expectedStreak: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := tt.habit
			ok := h.MarkCompleted(now)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedStreak, h.Streak)
			if ok {
				assert.True(t, h.CompletedToday)
				assert.Equal(t, now, *h.LastCompleted)
			}
		})
	}
}

func TestUnmarkCompleted(t *testing.T) {
	now := time.Now()

	t.Run("Reverts today's completion and streak step", func(t *testing.T) {
		h := Habit{Streak: 5, CompletedToday: true, LastCompleted: &now}
		assert.True(t, h.UnmarkCompleted())
		assert.False(t, h.CompletedToday)
		assert.Equal(t, 4, h.Streak)
	})

	t.Run("No-op when not completed today", func(t *testing.T) {
		h := Habit{Streak: 5}
		assert.False(t, h.UnmarkCompleted())
		assert.Equal(t, 5, h.Streak)
	})

	t.Run("Streak never goes negative", func(t *testing.T) {
		h := Habit{Streak: 0, CompletedToday: true}
		assert.True(t, h.UnmarkCompleted())
		assert.Equal(t, 0, h.Streak)
	})
}

func TestMarkCompletedSameDayTwice(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	later := now.Add(10 * time.Hour)

	h := Habit{}
	assert.True(t, h.MarkCompleted(now))
	assert.False(t, h.MarkCompleted(later))
	assert.Equal(t, 1, h.Streak)
}

func TestHabitValidate(t *testing.T) {
	h := Habit{UserID: uuid.New(), Name: "Morning run", TargetFrequency: FrequencyDaily}
	assert.NoError(t, h.Validate())

	h.Name = ""
	assert.Error(t, h.Validate())

	h.Name = "Morning run"
	h.TargetFrequency = "hourly"
	assert.Error(t, h.Validate())

	h.TargetFrequency = FrequencyWeekly
	h.UserID = uuid.Nil
	assert.Error(t, h.Validate())
}
