package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/gamification"
	"github.com/MurtazaJ53/allure-web-grace/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultWindowDays = 7
	maxWindowDays     = 90
	summaryCacheTTL   = 5 * time.Minute
)

// Service produces analytics reports over a user's tasks and habits.
type Service interface {
	Summarize(ctx context.Context, userID uuid.UUID, windowDays int) (*Report, error)
}

type service struct {
	tasks  gamification.TaskSource
	habits gamification.HabitSource
	redis  *cache.RedisClient
	logger *zap.Logger
	now    func() time.Time
}

func NewService(tasks gamification.TaskSource, habits gamification.HabitSource, redis *cache.RedisClient, logger *zap.Logger) Service {
	return &service{
		tasks:  tasks,
		habits: habits,
		redis:  redis,
		logger: logger,
		now:    time.Now,
	}
}

func (s *service) Summarize(ctx context.Context, userID uuid.UUID, windowDays int) (*Report, error) {
	if windowDays < 1 {
		windowDays = defaultWindowDays
	}
	if windowDays > maxWindowDays {
		windowDays = maxWindowDays
	}

	cacheKey := fmt.Sprintf("analytics:%s:%d", userID, windowDays)
	if s.redis != nil {
		var cached Report
		err := s.redis.GetJSON(ctx, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, cache.ErrCacheNotFound) {
			s.logger.Warn("Analytics cache read failed", zap.Error(err))
		}
	}

	taskList, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	habitList, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}

	report := Summarize(taskList, habitList, windowDays, s.now())

	if s.redis != nil {
		if err := s.redis.SetJSON(ctx, cacheKey, report, summaryCacheTTL); err != nil {
			s.logger.Warn("Analytics cache write failed", zap.Error(err))
		}
	}

	return &report, nil
}
