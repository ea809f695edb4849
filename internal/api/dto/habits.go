package dto

import (
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/gamification"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/habits"
	"github.com/google/uuid"
)

// CreateHabitRequest represents the request body for creating a habit
type CreateHabitRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	TargetFrequency string `json:"target_frequency" binding:"omitempty,oneof=daily weekly"`
	Category        string `json:"category" binding:"omitempty,max=100"`
}

// UpdateHabitRequest represents the request body for updating a habit;
// omitted fields are left untouched.
type UpdateHabitRequest struct {
	Name            *string `json:"name,omitempty" binding:"omitempty,max=200"`
	TargetFrequency *string `json:"target_frequency,omitempty" binding:"omitempty,oneof=daily weekly"`
	Category        *string `json:"category,omitempty" binding:"omitempty,max=100"`
}

// HabitResponse is the public view of a habit, including its current
// streak tier.
type HabitResponse struct {
	ID              uuid.UUID               `json:"id"`
	Name            string                  `json:"name"`
	Streak          int                     `json:"streak"`
	CompletedToday  bool                    `json:"completed_today"`
	TargetFrequency string                  `json:"target_frequency"`
	Category        string                  `json:"category,omitempty"`
	LastCompleted   *time.Time              `json:"last_completed,omitempty"`
	Tier            gamification.StreakTier `json:"tier"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

// HabitListResponse is a paginated habit listing.
type HabitListResponse struct {
	Habits   []HabitResponse `json:"habits"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

func ToHabitResponse(h *habits.Habit) HabitResponse {
	return HabitResponse{
		ID:              h.ID,
		Name:            h.Name,
		Streak:          h.Streak,
		CompletedToday:  h.CompletedToday,
		TargetFrequency: string(h.TargetFrequency),
		Category:        h.Category,
		LastCompleted:   h.LastCompleted,
		Tier:            gamification.TierForStreak(h.Streak),
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

func ToHabitListResponse(list []habits.Habit, total int64, page, pageSize int) HabitListResponse {
	items := make([]HabitResponse, 0, len(list))
	for i := range list {
		items = append(items, ToHabitResponse(&list[i]))
	}
	return HabitListResponse{Habits: items, Total: total, Page: page, PageSize: pageSize}
}
