package task

import (
	"context"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/events"
	"github.com/MurtazaJ53/allure-web-grace/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error)
	UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Task, error)
}

type service struct {
	repo   Repository
	redis  *cache.RedisClient
	logger *zap.Logger
}

func NewService(repo Repository, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		redis:  redis,
		logger: logger,
	}
}

func (s *service) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	task := &Task{
		ID:       uuid.New(),
		UserID:   input.UserID,
		Text:     input.Text,
		Priority: input.Priority,
		Category: input.Category,
		DueDate:  input.DueDate,
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publishDashboardEvent(ctx, task, "task_created")
	return task, nil
}

func (s *service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	tasks, _, err := s.repo.FindAll(ctx, TaskFilter{UserID: &userID})
	return tasks, err
}

func (s *service) UpdateTask(ctx context.Context, id uuid.UUID, input UpdateTaskInput) (*Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Text != nil && task.Text != *input.Text {
		task.Text = *input.Text
		changed = true
	}
	if input.Completed != nil && task.Completed != *input.Completed {
		task.Completed = *input.Completed
		changed = true
	}
	if input.Priority != nil && task.Priority != *input.Priority {
		if !input.Priority.IsValid() {
			return nil, ErrInvalidInput
		}
		task.Priority = *input.Priority
		changed = true
	}
	if input.Category != nil && task.Category != *input.Category {
		task.Category = *input.Category
		changed = true
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
		changed = true
	}

	if !changed {
		return task, nil
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	action := "task_updated"
	if input.Completed != nil && *input.Completed {
		action = "task_completed"
	}
	s.publishDashboardEvent(ctx, task, action)

	return task, nil
}

func (s *service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishDashboardEvent(ctx, task, "task_deleted")
	return nil
}

func (s *service) publishDashboardEvent(ctx context.Context, task *Task, action string) {
	event := &events.DashboardEvent{
		EventType: events.DashboardEventCacheInvalidate,
		UserID:    task.UserID,
		EntityID:  task.ID,
		Timestamp: time.Now().UTC(),
		Details: map[string]interface{}{
			"action":  action,
			"task_id": task.ID,
		},
	}
	if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish dashboard event", zap.Error(err))
	}
}
