package dto

import (
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/activity"
	"github.com/google/uuid"
)

// RecordActivityRequest represents the request body for recording a
// feed entry
type RecordActivityRequest struct {
	Type    string `json:"type" binding:"required,max=50"`
	Message string `json:"message" binding:"required,max=500"`
	Icon    string `json:"icon" binding:"omitempty,max=16"`
}

// ActivityResponse is the public view of a feed entry.
type ActivityResponse struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

func ToActivityResponse(a *activity.Activity) ActivityResponse {
	return ActivityResponse{
		ID:        a.ID,
		Type:      a.Type,
		Message:   a.Message,
		Icon:      a.Icon,
		CreatedAt: a.CreatedAt,
	}
}

func ToActivityListResponse(list []activity.Activity) []ActivityResponse {
	items := make([]ActivityResponse, 0, len(list))
	for i := range list {
		items = append(items, ToActivityResponse(&list[i]))
	}
	return items
}
