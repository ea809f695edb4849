package activity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid input")

// Activity is a single entry in a user's activity feed.
type Activity struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index:idx_activity_user"`
	Type      string    `json:"type" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	Icon      string    `json:"icon" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:current_timestamp;index:idx_activity_created"`
}

// TableName specifies the table name for the Activity model
func (Activity) TableName() string {
	return "user_activity_feed"
}

// BeforeCreate is called before creating a new activity record
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now()
	if a.UserID == uuid.Nil || a.Type == "" || a.Message == "" {
		return ErrInvalidInput
	}
	return nil
}
