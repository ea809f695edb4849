package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/events"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/habits"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/task"
	"github.com/MurtazaJ53/allure-web-grace/internal/infrastructure/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrChallengeNotFound     = errors.New("challenge not found")
	ErrChallengeNotSatisfied = errors.New("challenge target not reached")
)

// TaskSource supplies a user's current task snapshot.
type TaskSource interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]task.Task, error)
}

// HabitSource supplies a user's current habit snapshot.
type HabitSource interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]habits.Habit, error)
}

// AchievementStatus pairs a catalog entry with its unlock state.
type AchievementStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// EvaluationResult is what one evaluation pass produced.
type EvaluationResult struct {
	Stats             UserStats     `json:"stats"`
	ProductivityScore int           `json:"productivity_score"`
	Level             LevelProgress `json:"level"`
	NewlyUnlocked     []Achievement `json:"newly_unlocked"`
	PointsAwarded     int           `json:"points_awarded"`
	Challenges        []Challenge   `json:"challenges"`
}

// Summary is the full gamification view for a user.
type Summary struct {
	Stats             UserStats           `json:"stats"`
	ProductivityScore int                 `json:"productivity_score"`
	Level             LevelProgress       `json:"level"`
	Achievements      []AchievementStatus `json:"achievements"`
	Challenges        []Challenge         `json:"challenges"`
	TopStreakTier     StreakTier          `json:"top_streak_tier"`
}

type Service interface {
	Summary(ctx context.Context, userID uuid.UUID) (*Summary, error)
	Evaluate(ctx context.Context, userID uuid.UUID) (*EvaluationResult, error)
	ClaimChallenge(ctx context.Context, userID uuid.UUID, challengeID string) (*Challenge, int, error)
	TierForHabitStreak(streak int) StreakTier
}

type service struct {
	cfg    EngineConfig
	repo   Repository
	tasks  TaskSource
	habits HabitSource
	redis  *cache.RedisClient
	logger *zap.Logger
}

func NewService(cfg EngineConfig, repo Repository, tasks TaskSource, habitSource HabitSource, redis *cache.RedisClient, logger *zap.Logger) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &service{
		cfg:    cfg,
		repo:   repo,
		tasks:  tasks,
		habits: habitSource,
		redis:  redis,
		logger: logger,
	}, nil
}

func (s *service) TierForHabitStreak(streak int) StreakTier {
	return TierForStreak(streak)
}

// snapshot loads everything one pass needs: state, unlock set, and the
// current task/habit lists.
func (s *service) snapshot(ctx context.Context, userID uuid.UUID) (*GamificationState, map[string]bool, []UnlockedAchievement, []task.Task, []habits.Habit, error) {
	state, err := s.repo.GetOrCreateState(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to load gamification state: %w", err)
	}

	unlocks, err := s.repo.ListUnlocked(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to load unlocked achievements: %w", err)
	}
	unlocked := make(map[string]bool, len(unlocks))
	for _, u := range unlocks {
		unlocked[u.AchievementID] = true
	}

	taskList, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to load tasks: %w", err)
	}
	habitList, err := s.habits.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("failed to load habits: %w", err)
	}

	return state, unlocked, unlocks, taskList, habitList, nil
}

func (s *service) Summary(ctx context.Context, userID uuid.UUID) (*Summary, error) {
	state, unlocked, unlocks, taskList, habitList, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := BuildUserStats(taskList, habitList, state.TotalPoints, state.PerfectDays)

	challenges, regenerated, err := s.currentChallenges(state, stats)
	if err != nil {
		return nil, err
	}
	if regenerated {
		if err := s.storeChallenges(ctx, state, challenges); err != nil {
			return nil, err
		}
	}

	unlockedAt := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	statuses := make([]AchievementStatus, 0, len(s.cfg.Achievements))
	for _, a := range s.cfg.Achievements {
		status := AchievementStatus{Achievement: a, Unlocked: unlocked[a.ID]}
		if ts, ok := unlockedAt[a.ID]; ok {
			status.UnlockedAt = &ts
		}
		statuses = append(statuses, status)
	}

	return &Summary{
		Stats:             stats,
		ProductivityScore: ProductivityScore(taskList, habitList),
		Level:             ProgressForPoints(s.cfg.Levels, state.TotalPoints),
		Achievements:      statuses,
		Challenges:        challenges,
		TopStreakTier:     TierForStreak(stats.MaxStreak),
	}, nil
}

// Evaluate runs one full pass: rebuild stats, unlock newly satisfied
// achievements (crediting their points exactly once), advance the
// perfect-day counter, and refresh the daily challenge batch.
func (s *service) Evaluate(ctx context.Context, userID uuid.UUID) (*EvaluationResult, error) {
	state, unlocked, _, taskList, habitList, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := BuildUserStats(taskList, habitList, state.TotalPoints, state.PerfectDays)

	awarded := 0

	// Perfect day: count at most once per calendar day, when every
	// habit is completed.
	now := s.cfg.now()
	if stats.AllHabitsCompleted && !sameDay(state.LastPerfectDay, now) {
		state.PerfectDays++
		state.LastPerfectDay = &now
		stats.PerfectDays = state.PerfectDays
		awarded += PointsForAction(ActionPerfectDay)
	}

	newly := EvaluateAchievements(s.cfg.Achievements, stats, unlocked)
	credited := make([]Achievement, 0, len(newly))
	for _, a := range newly {
		inserted, err := s.repo.InsertUnlock(ctx, &UnlockedAchievement{
			UserID:        userID,
			AchievementID: a.ID,
			UnlockedAt:    now,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record achievement unlock: %w", err)
		}
		// A concurrent pass may have inserted first; only the winner
		// credits the points.
		if inserted {
			credited = append(credited, a)
			awarded += a.Points
		}
	}

	challenges, _, err := s.currentChallenges(state, stats)
	if err != nil {
		return nil, err
	}

	if awarded > 0 {
		if err := s.repo.AddPoints(ctx, userID, awarded); err != nil {
			return nil, fmt.Errorf("failed to credit points: %w", err)
		}
		state.TotalPoints += awarded
		stats.TotalPoints = state.TotalPoints
	}

	if err := s.storeChallenges(ctx, state, challenges); err != nil {
		return nil, err
	}

	if len(credited) > 0 || awarded > 0 {
		s.publishDashboardEvent(ctx, userID, map[string]interface{}{
			"action":         "gamification_evaluated",
			"points_awarded": awarded,
			"unlocked_count": len(credited),
		})
	}

	return &EvaluationResult{
		Stats:             stats,
		ProductivityScore: ProductivityScore(taskList, habitList),
		Level:             ProgressForPoints(s.cfg.Levels, state.TotalPoints),
		NewlyUnlocked:     credited,
		PointsAwarded:     awarded,
		Challenges:        challenges,
	}, nil
}

// ClaimChallenge credits a satisfied challenge's reward. Claiming an
// already-completed challenge is a no-op, never a double credit.
func (s *service) ClaimChallenge(ctx context.Context, userID uuid.UUID, challengeID string) (*Challenge, int, error) {
	state, _, _, taskList, habitList, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	stats := BuildUserStats(taskList, habitList, state.TotalPoints, state.PerfectDays)
	challenges, _, err := s.currentChallenges(state, stats)
	if err != nil {
		return nil, 0, err
	}

	idx := -1
	for i := range challenges {
		if challenges[i].ID == challengeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, 0, ErrChallengeNotFound
	}

	challenge := &challenges[idx]
	if challenge.Completed {
		return challenge, 0, nil
	}
	if !challenge.Satisfied() {
		return nil, 0, ErrChallengeNotSatisfied
	}

	challenge.Completed = true
	if err := s.repo.AddPoints(ctx, userID, challenge.Points); err != nil {
		return nil, 0, fmt.Errorf("failed to credit challenge reward: %w", err)
	}
	state.TotalPoints += challenge.Points

	if err := s.storeChallenges(ctx, state, challenges); err != nil {
		return nil, 0, err
	}

	s.publishDashboardEvent(ctx, userID, map[string]interface{}{
		"action":       "challenge_claimed",
		"challenge_id": challenge.ID,
		"points":       challenge.Points,
	})

	return challenge, challenge.Points, nil
}

// currentChallenges decodes the stored batch, regenerates it when empty
// or expired, and refreshes progress against stats.
func (s *service) currentChallenges(state *GamificationState, stats UserStats) ([]Challenge, bool, error) {
	var batch []Challenge
	if len(state.Challenges) > 0 {
		if err := json.Unmarshal(state.Challenges, &batch); err != nil {
			// A corrupt batch is replaced rather than surfaced; the
			// challenge set is regenerable state.
			s.logger.Warn("Discarding unreadable challenge batch", zap.Error(err))
			batch = nil
		}
	}

	now := s.cfg.now()
	regenerated := false
	if BatchExpired(batch, now) {
		batch = GenerateDailyChallenges(now)
		regenerated = true
	}

	return RefreshChallenges(batch, stats), regenerated, nil
}

func (s *service) storeChallenges(ctx context.Context, state *GamificationState, challenges []Challenge) error {
	encoded, err := json.Marshal(challenges)
	if err != nil {
		return fmt.Errorf("failed to encode challenge batch: %w", err)
	}
	state.Challenges = encoded

	if err := s.repo.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to persist gamification state: %w", err)
	}
	return nil
}

func (s *service) publishDashboardEvent(ctx context.Context, userID uuid.UUID, details map[string]interface{}) {
	if s.redis == nil {
		return
	}
	event := &events.DashboardEvent{
		EventType: events.DashboardEventCacheInvalidate,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Details:   details,
	}
	if err := s.redis.PublishDashboardEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish dashboard event", zap.Error(err))
	}
}

func sameDay(a *time.Time, b time.Time) bool {
	if a == nil {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
