package scheduler

import (
	"context"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/habits"
	"github.com/MurtazaJ53/allure-web-grace/pkg/logger"
	"go.uber.org/zap"
)

// Scheduler drives the midnight rollover: clearing completed_today
// flags and breaking streaks that missed a day.
type Scheduler struct {
	habitService habits.Service
	logger       *logger.Logger
	stop         chan struct{}
}

func NewScheduler(habitService habits.Service, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		habitService: habitService,
		logger:       logger,
		stop:         make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	// Run immediately at startup to catch up after downtime.
	s.runResetTasks()

	now := time.Now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	timeUntilMidnight := nextMidnight.Sub(now)

	s.logger.Info("Habit scheduler initialized",
		zap.Time("current_time", now),
		zap.Time("next_run", nextMidnight),
		zap.Duration("time_until_next_run", timeUntilMidnight),
	)

	go func() {
		timer := time.NewTimer(timeUntilMidnight)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-s.stop:
			return
		}
		s.runResetTasks()

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runResetTasks()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the midnight loop. Safe to call once.
func (s *Scheduler) Stop() {
	close(s.stop)
}

func (s *Scheduler) runResetTasks() {
	ctx := context.Background()
	startTime := time.Now()

	s.logger.Info("Starting daily habit reset tasks", zap.Time("start_time", startTime))

	resetCount, err := s.habitService.ResetDailyCompletions(ctx)
	if err != nil {
		s.logger.Error("Failed to reset daily completions", zap.Error(err))
	} else {
		s.logger.Info("Successfully reset daily completions",
			zap.Int64("reset_count", resetCount),
		)
	}

	streakResetCount, err := s.habitService.CheckAndResetBrokenStreaks(ctx)
	if err != nil {
		s.logger.Error("Failed to reset broken streaks", zap.Error(err))
	} else {
		s.logger.Info("Successfully processed broken streaks",
			zap.Int64("streak_reset_count", streakResetCount),
		)
	}

	s.logger.Info("Completed daily habit reset tasks",
		zap.Duration("duration", time.Since(startTime)),
	)
}
