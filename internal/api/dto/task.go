package dto

import (
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/task"
	"github.com/google/uuid"
)

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Text     string     `json:"text" binding:"required,max=500"`
	Priority string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category string     `json:"category" binding:"omitempty,max=100"`
	DueDate  *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task;
// omitted fields are left untouched.
type UpdateTaskRequest struct {
	Text      *string    `json:"text,omitempty" binding:"omitempty,max=500"`
	Completed *bool      `json:"completed,omitempty"`
	Priority  *string    `json:"priority,omitempty" binding:"omitempty,oneof=low medium high"`
	Category  *string    `json:"category,omitempty" binding:"omitempty,max=100"`
	DueDate   *time.Time `json:"due_date,omitempty"`
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID        uuid.UUID  `json:"id"`
	Text      string     `json:"text"`
	Completed bool       `json:"completed"`
	Priority  string     `json:"priority"`
	Category  string     `json:"category,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TaskListResponse is a paginated task listing.
type TaskListResponse struct {
	Tasks    []TaskResponse `json:"tasks"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

func ToTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
		Priority:  string(t.Priority),
		Category:  t.Category,
		DueDate:   t.DueDate,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func ToTaskListResponse(tasks []task.Task, total int64, page, pageSize int) TaskListResponse {
	items := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, ToTaskResponse(&tasks[i]))
	}
	return TaskListResponse{Tasks: items, Total: total, Page: page, PageSize: pageSize}
}
