package habits

import (
	"context"
	"fmt"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/events"
	"github.com/MurtazaJ53/allure-web-grace/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Streak counts that trigger a milestone log entry.
var milestoneStreaks = map[int]bool{7: true, 14: true, 30: true, 100: true, 365: true}

type Service interface {
	CreateHabit(ctx context.Context, input CreateHabitInput) (*Habit, error)
	GetHabit(ctx context.Context, id uuid.UUID) (*Habit, error)
	ListHabits(ctx context.Context, filter HabitFilter) ([]Habit, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Habit, error)
	UpdateHabit(ctx context.Context, id uuid.UUID, input UpdateHabitInput) (*Habit, error)
	DeleteHabit(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Habit, error)
	UnmarkCompleted(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Habit, error)
	ResetDailyCompletions(ctx context.Context) (int64, error)
	CheckAndResetBrokenStreaks(ctx context.Context) (int64, error)
	GetTopStreaks(ctx context.Context, userID uuid.UUID, limit int) ([]Habit, error)
}

type service struct {
	repo   Repository
	redis  *cache.RedisClient
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		redis:  redis,
		logger: logger,
		now:    time.Now,
	}
}

func (s *service) CreateHabit(ctx context.Context, input CreateHabitInput) (*Habit, error) {
	habit := &Habit{
		ID:              uuid.New(),
		UserID:          input.UserID,
		Name:            input.Name,
		TargetFrequency: input.TargetFrequency,
		Category:        input.Category,
	}
	if habit.TargetFrequency == "" {
		habit.TargetFrequency = FrequencyDaily
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	s.publishDashboardEvent(ctx, habit, "habit_created")
	return habit, nil
}

func (s *service) GetHabit(ctx context.Context, id uuid.UUID) (*Habit, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListHabits(ctx context.Context, filter HabitFilter) ([]Habit, int64, error) {
	return s.repo.FindAll(ctx, filter)
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]Habit, error) {
	habits, _, err := s.repo.FindAll(ctx, HabitFilter{UserID: &userID})
	return habits, err
}

func (s *service) UpdateHabit(ctx context.Context, id uuid.UUID, input UpdateHabitInput) (*Habit, error) {
	habit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if input.Name != nil && habit.Name != *input.Name {
		habit.Name = *input.Name
		changed = true
	}
	if input.TargetFrequency != nil && habit.TargetFrequency != *input.TargetFrequency {
		if !input.TargetFrequency.IsValid() {
			return nil, ErrInvalidInput
		}
		habit.TargetFrequency = *input.TargetFrequency
		changed = true
	}
	if input.Category != nil && habit.Category != *input.Category {
		habit.Category = *input.Category
		changed = true
	}

	if !changed {
		return habit, nil
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}
	s.publishDashboardEvent(ctx, habit, "habit_updated")
	return habit, nil
}

func (s *service) DeleteHabit(ctx context.Context, id uuid.UUID) error {
	habit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishDashboardEvent(ctx, habit, "habit_deleted")
	return nil
}

func (s *service) MarkCompleted(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Habit, error) {
	habit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, ErrHabitNotFound
	}

	if !habit.MarkCompleted(s.now()) {
		return habit, nil
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	if milestoneStreaks[habit.Streak] {
		s.logger.Info("Habit streak milestone reached",
			zap.String("habit_id", habit.ID.String()),
			zap.String("user_id", userID.String()),
			zap.String("milestone", fmt.Sprintf("%d-day streak", habit.Streak)),
		)
	}

	s.publishDashboardEvent(ctx, habit, "habit_completed")
	return habit, nil
}

func (s *service) UnmarkCompleted(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*Habit, error) {
	habit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, ErrHabitNotFound
	}

	if !habit.UnmarkCompleted() {
		return habit, nil
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.publishDashboardEvent(ctx, habit, "habit_uncompleted")
	return habit, nil
}

// ResetDailyCompletions clears completed_today on habits last completed
// before the start of the current day. Run by the scheduler at midnight.
func (s *service) ResetDailyCompletions(ctx context.Context) (int64, error) {
	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	affected, err := s.repo.ResetDailyCompletions(ctx, startOfDay)
	if err != nil {
		return 0, fmt.Errorf("failed to reset daily completions: %w", err)
	}
	return affected, nil
}

// CheckAndResetBrokenStreaks zeroes streaks whose last completion is older
// than the start of yesterday, i.e. the habit missed a full day.
func (s *service) CheckAndResetBrokenStreaks(ctx context.Context) (int64, error) {
	now := s.now()
	startOfYesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, now.Location())

	affected, err := s.repo.ResetBrokenStreaks(ctx, startOfYesterday)
	if err != nil {
		return 0, fmt.Errorf("failed to reset broken streaks: %w", err)
	}
	return affected, nil
}

func (s *service) GetTopStreaks(ctx context.Context, userID uuid.UUID, limit int) ([]Habit, error) {
	if limit <= 0 {
		limit = 5
	}
	habits, err := s.repo.TopStreaks(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top streaks: %w", err)
	}
	return habits, nil
}

func (s *service) publishDashboardEvent(ctx context.Context, habit *Habit, action string) {
	event := &events.DashboardEvent{
		EventType: events.DashboardEventCacheInvalidate,
		UserID:    habit.UserID,
		EntityID:  habit.ID,
		Timestamp: time.Now().UTC(),
		Details: map[string]interface{}{
			"action":   action,
			"habit_id": habit.ID,
			"streak":   habit.Streak,
		},
	}
	if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish dashboard event", zap.Error(err))
	}
}
