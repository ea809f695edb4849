package gamification

import (
	"context"
	"errors"

	"github.com/MurtazaJ53/allure-web-grace/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrStateNotFound = errors.New("gamification state not found")

// Repository defines the interface for gamification state persistence.
type Repository interface {
	GetOrCreateState(ctx context.Context, userID uuid.UUID) (*GamificationState, error)
	SaveState(ctx context.Context, state *GamificationState) error
	AddPoints(ctx context.Context, userID uuid.UUID, delta int) error
	ListUnlocked(ctx context.Context, userID uuid.UUID) ([]UnlockedAchievement, error)
	InsertUnlock(ctx context.Context, unlock *UnlockedAchievement) (bool, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreateState(ctx context.Context, userID uuid.UUID) (*GamificationState, error) {
	var state GamificationState
	err := r.db.WithContext(ctx).
		Where(GamificationState{UserID: userID}).
		FirstOrCreate(&state).Error
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *repository) SaveState(ctx context.Context, state *GamificationState) error {
	result := r.db.WithContext(ctx).Save(state)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStateNotFound
	}
	return nil
}

// AddPoints increments total_points atomically in the database so
// concurrent crediting never loses an update.
func (r *repository) AddPoints(ctx context.Context, userID uuid.UUID, delta int) error {
	if delta == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&GamificationState{}).
		Where("user_id = ?", userID).
		Update("total_points", gorm.Expr("total_points + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStateNotFound
	}
	return nil
}

func (r *repository) ListUnlocked(ctx context.Context, userID uuid.UUID) ([]UnlockedAchievement, error) {
	var unlocks []UnlockedAchievement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at ASC").
		Find(&unlocks).Error
	return unlocks, err
}

// InsertUnlock records an unlock with insert-or-ignore semantics on the
// (user_id, achievement_id) unique index. Returns true only when the
// row was actually inserted, so the caller credits points exactly once
// even if two evaluation passes race.
func (r *repository) InsertUnlock(ctx context.Context, unlock *UnlockedAchievement) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
			DoNothing: true,
		}).
		Create(unlock)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
