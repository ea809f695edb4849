package habits

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly:
		return true
	}
	return false
}

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrInvalidInput  = errors.New("invalid input")
)

// Habit represents a recurring behavior tracked with a consecutive-day streak.
type Habit struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID          uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index:idx_habit_user"`
	Name            string     `json:"name" gorm:"not null"`
	Streak          int        `json:"streak" gorm:"not null;default:0"`
	CompletedToday  bool       `json:"completed_today" gorm:"not null;default:false"`
	TargetFrequency Frequency  `json:"target_frequency" gorm:"not null;default:'daily'"`
	Category        string     `json:"category,omitempty"`
	LastCompleted   *time.Time `json:"last_completed,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the Habit model
func (Habit) TableName() string {
	return "habits"
}

// Validate checks if the habit data is valid
func (h *Habit) Validate() error {
	if h.Name == "" {
		return ErrInvalidInput
	}
	if h.UserID == uuid.Nil {
		return ErrInvalidInput
	}
	if !h.TargetFrequency.IsValid() {
		return ErrInvalidInput
	}
	if h.Streak < 0 {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before creating a new habit record
func (h *Habit) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.TargetFrequency == "" {
		h.TargetFrequency = FrequencyDaily
	}
	h.CreatedAt = time.Now()
	h.UpdatedAt = time.Now()
	return h.Validate()
}

// BeforeUpdate is called before updating a habit record
func (h *Habit) BeforeUpdate(tx *gorm.DB) error {
	h.UpdatedAt = time.Now()
	return h.Validate()
}

// MarkCompleted applies a completion at the given time. The streak extends
// by one only when the previous completion was yesterday or earlier today;
// a longer gap restarts the streak at 1. Marking an already-completed habit
// is a no-op.
func (h *Habit) MarkCompleted(now time.Time) bool {
	if h.CompletedToday {
		return false
	}

	if h.LastCompleted != nil && continuesStreak(*h.LastCompleted, now) {
		h.Streak++
	} else {
		h.Streak = 1
	}
	h.CompletedToday = true
	h.LastCompleted = &now
	return true
}

// UnmarkCompleted undoes today's completion, decrementing the streak by
// one floored at zero. Unmarking a habit not completed today is a no-op.
func (h *Habit) UnmarkCompleted() bool {
	if !h.CompletedToday {
		return false
	}

	h.CompletedToday = false
	if h.Streak > 0 {
		h.Streak--
	}
	return true
}

// continuesStreak reports whether a completion at now extends a streak
// whose previous completion happened at last. Same-day and previous-day
// completions continue the streak.
func continuesStreak(last, now time.Time) bool {
	lastDay := truncateToDay(last)
	nowDay := truncateToDay(now)
	diff := nowDay.Sub(lastDay)
	return diff >= 0 && diff <= 24*time.Hour
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CreateHabitInput represents the input for creating a new habit
type CreateHabitInput struct {
	UserID          uuid.UUID
	Name            string
	TargetFrequency Frequency
	Category        string
}

// UpdateHabitInput represents the input for updating a habit;
// nil fields are left untouched.
type UpdateHabitInput struct {
	Name            *string
	TargetFrequency *Frequency
	Category        *string
}
