package activity

import (
	"context"

	"github.com/MurtazaJ53/allure-web-grace/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
)

// Repository defines the interface for activity feed persistence
type Repository interface {
	Create(ctx context.Context, activity *Activity) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Activity, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, activity *Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Activity, error) {
	var activities []Activity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}
