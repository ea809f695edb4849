package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Task represents a unit of work owned by a single user.
type Task struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index:idx_task_user"`
	Text      string     `json:"text" gorm:"not null"`
	Completed bool       `json:"completed" gorm:"not null;default:false;index:idx_task_completed"`
	Priority  Priority   `json:"priority" gorm:"not null;default:'medium'"`
	Category  string     `json:"category,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// Validate checks if the task data is valid
func (t *Task) Validate() error {
	if t.Text == "" {
		return ErrInvalidInput
	}
	if t.UserID == uuid.Nil {
		return ErrInvalidInput
	}
	if !t.Priority.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is called before creating a new task record
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// BeforeUpdate is called before updating a task record
func (t *Task) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// CreateTaskInput represents the input for creating a task
type CreateTaskInput struct {
	UserID   uuid.UUID
	Text     string
	Priority Priority
	Category string
	DueDate  *time.Time
}

// UpdateTaskInput represents the input for updating a task;
// nil fields are left untouched.
type UpdateTaskInput struct {
	Text      *string
	Completed *bool
	Priority  *Priority
	Category  *string
	DueDate   *time.Time
}
