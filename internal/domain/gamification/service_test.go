package gamification

import (
	"context"
	"testing"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/domain/habits"
	"github.com/MurtazaJ53/allure-web-grace/internal/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepository struct {
	states  map[uuid.UUID]*GamificationState
	unlocks map[uuid.UUID][]UnlockedAchievement
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		states:  make(map[uuid.UUID]*GamificationState),
		unlocks: make(map[uuid.UUID][]UnlockedAchievement),
	}
}

func (f *fakeRepository) GetOrCreateState(_ context.Context, userID uuid.UUID) (*GamificationState, error) {
	if state, ok := f.states[userID]; ok {
		copied := *state
		return &copied, nil
	}
	state := &GamificationState{UserID: userID}
	f.states[userID] = state
	copied := *state
	return &copied, nil
}

func (f *fakeRepository) SaveState(_ context.Context, state *GamificationState) error {
	copied := *state
	f.states[state.UserID] = &copied
	return nil
}

func (f *fakeRepository) AddPoints(_ context.Context, userID uuid.UUID, delta int) error {
	state, ok := f.states[userID]
	if !ok {
		return ErrStateNotFound
	}
	state.TotalPoints += delta
	return nil
}

func (f *fakeRepository) ListUnlocked(_ context.Context, userID uuid.UUID) ([]UnlockedAchievement, error) {
	return f.unlocks[userID], nil
}

func (f *fakeRepository) InsertUnlock(_ context.Context, unlock *UnlockedAchievement) (bool, error) {
	for _, existing := range f.unlocks[unlock.UserID] {
		if existing.AchievementID == unlock.AchievementID {
			return false, nil
		}
	}
	f.unlocks[unlock.UserID] = append(f.unlocks[unlock.UserID], *unlock)
	return true, nil
}

type fakeTaskSource struct {
	tasks []task.Task
}

func (f *fakeTaskSource) ListByUser(_ context.Context, _ uuid.UUID) ([]task.Task, error) {
	return f.tasks, nil
}

type fakeHabitSource struct {
	habits []habits.Habit
}

func (f *fakeHabitSource) ListByUser(_ context.Context, _ uuid.UUID) ([]habits.Habit, error) {
	return f.habits, nil
}

type serviceFixture struct {
	svc    Service
	repo   *fakeRepository
	tasks  *fakeTaskSource
	habits *fakeHabitSource
	now    *time.Time
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	fixture := &serviceFixture{
		repo:   newFakeRepository(),
		tasks:  &fakeTaskSource{},
		habits: &fakeHabitSource{},
		now:    &now,
	}

	cfg := NewEngineConfig()
	cfg.Now = func() time.Time { return *fixture.now }

	svc, err := NewService(cfg, fixture.repo, fixture.tasks, fixture.habits, nil, zap.NewNop())
	require.NoError(t, err)
	fixture.svc = svc
	return fixture
}

func TestEvaluateCreditsUnlocksExactlyOnce(t *testing.T) {
	fixture := newServiceFixture(t)
	userID := uuid.New()
	fixture.tasks.tasks = []task.Task{{Completed: true}}
	fixture.habits.habits = []habits.Habit{{CompletedToday: true, Streak: 1}}

	result, err := fixture.svc.Evaluate(context.Background(), userID)
	require.NoError(t, err)

	// first-task (10) + habit-starter (15) + a perfect day (40).
	require.Len(t, result.NewlyUnlocked, 2)
	assert.Equal(t, "first-task", result.NewlyUnlocked[0].ID)
	assert.Equal(t, "habit-starter", result.NewlyUnlocked[1].ID)
	assert.Equal(t, 65, result.PointsAwarded)
	assert.Equal(t, 65, fixture.repo.states[userID].TotalPoints)
	assert.Equal(t, 1, fixture.repo.states[userID].PerfectDays)

	again, err := fixture.svc.Evaluate(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, again.NewlyUnlocked)
	assert.Equal(t, 0, again.PointsAwarded)
	assert.Equal(t, 65, fixture.repo.states[userID].TotalPoints)
}

func TestEvaluatePerfectDayOncePerCalendarDay(t *testing.T) {
	fixture := newServiceFixture(t)
	userID := uuid.New()
	fixture.habits.habits = []habits.Habit{{CompletedToday: true, Streak: 2}}

	_, err := fixture.svc.Evaluate(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, fixture.repo.states[userID].PerfectDays)

	// Later the same day, nothing changes.
	*fixture.now = fixture.now.Add(6 * time.Hour)
	_, err = fixture.svc.Evaluate(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, fixture.repo.states[userID].PerfectDays)

	// The next day counts again.
	*fixture.now = fixture.now.Add(24 * time.Hour)
	result, err := fixture.svc.Evaluate(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, fixture.repo.states[userID].PerfectDays)
	assert.Equal(t, PointsForAction(ActionPerfectDay), result.PointsAwarded)
}

func TestEvaluateRegeneratesExpiredBatch(t *testing.T) {
	fixture := newServiceFixture(t)
	userID := uuid.New()

	first, err := fixture.svc.Evaluate(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, first.Challenges, 3)
	firstExpiry := first.Challenges[0].ExpiresAt

	*fixture.now = firstExpiry.Add(time.Minute)
	second, err := fixture.svc.Evaluate(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, second.Challenges, 3)
	assert.True(t, second.Challenges[0].ExpiresAt.After(firstExpiry))
	for _, c := range second.Challenges {
		assert.False(t, c.Completed)
	}
}

func TestClaimChallenge(t *testing.T) {
	fixture := newServiceFixture(t)
	userID := uuid.New()
	fixture.tasks.tasks = []task.Task{{Completed: true}}
	fixture.habits.habits = []habits.Habit{{CompletedToday: true, Streak: 1}}

	_, err := fixture.svc.Evaluate(context.Background(), userID)
	require.NoError(t, err)
	pointsBefore := fixture.repo.states[userID].TotalPoints

	t.Run("Unknown id", func(t *testing.T) {
		_, _, err := fixture.svc.ClaimChallenge(context.Background(), userID, "no-such-challenge")
		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})

	t.Run("Target not reached", func(t *testing.T) {
		_, _, err := fixture.svc.ClaimChallenge(context.Background(), userID, "daily-tasks")
		assert.ErrorIs(t, err, ErrChallengeNotSatisfied)
	})

	t.Run("Satisfied challenge pays once", func(t *testing.T) {
		claimed, points, err := fixture.svc.ClaimChallenge(context.Background(), userID, "habit-streak")
		require.NoError(t, err)
		assert.Equal(t, 30, points)
		assert.True(t, claimed.Completed)
		assert.Equal(t, pointsBefore+30, fixture.repo.states[userID].TotalPoints)

		claimed, points, err = fixture.svc.ClaimChallenge(context.Background(), userID, "habit-streak")
		require.NoError(t, err)
		assert.Equal(t, 0, points)
		assert.True(t, claimed.Completed)
		assert.Equal(t, pointsBefore+30, fixture.repo.states[userID].TotalPoints)
	})
}

func TestSummary(t *testing.T) {
	fixture := newServiceFixture(t)
	userID := uuid.New()
	fixture.tasks.tasks = []task.Task{{Completed: true}, {}}
	fixture.habits.habits = []habits.Habit{{CompletedToday: false, Streak: 16}}

	_, err := fixture.svc.Evaluate(context.Background(), userID)
	require.NoError(t, err)

	summary, err := fixture.svc.Summary(context.Background(), userID)
	require.NoError(t, err)

	assert.Len(t, summary.Achievements, len(DefaultAchievements()))
	unlocked := map[string]bool{}
	for _, status := range summary.Achievements {
		if status.Unlocked {
			unlocked[status.ID] = true
			assert.NotNil(t, status.UnlockedAt)
		} else {
			assert.Nil(t, status.UnlockedAt)
		}
	}
	assert.True(t, unlocked["first-task"])
	assert.True(t, unlocked["habit-starter"])

	assert.Len(t, summary.Challenges, 3)
	assert.Equal(t, "Advanced", summary.TopStreakTier.Name)
	assert.Equal(t, summary.Stats.TotalPoints, summary.Level.TotalPoints)
}
