package habits

import (
	"context"
	"errors"
	"time"

	"github.com/MurtazaJ53/allure-web-grace/internal/infrastructure/persistence/postgres/connection"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HabitFilter defines the filtering options for habits
type HabitFilter struct {
	UserID   *uuid.UUID
	Name     *string
	Page     int
	PageSize int
}

// Repository defines the interface for habit persistence operations
type Repository interface {
	Create(ctx context.Context, habit *Habit) error
	FindByID(ctx context.Context, id uuid.UUID) (*Habit, error)
	FindAll(ctx context.Context, filter HabitFilter) ([]Habit, int64, error)
	Update(ctx context.Context, habit *Habit) error
	Delete(ctx context.Context, id uuid.UUID) error
	ResetDailyCompletions(ctx context.Context, before time.Time) (int64, error)
	ResetBrokenStreaks(ctx context.Context, lastCompletedBefore time.Time) (int64, error)
	TopStreaks(ctx context.Context, userID uuid.UUID, limit int) ([]Habit, error)
}

type repository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, habit *Habit) error {
	return r.db.WithContext(ctx).Create(habit).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Habit, error) {
	var habit Habit
	result := r.db.WithContext(ctx).First(&habit, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, result.Error
	}
	return &habit, nil
}

func (r *repository) FindAll(ctx context.Context, filter HabitFilter) ([]Habit, int64, error) {
	var habits []Habit
	var total int64
	query := r.db.WithContext(ctx).Model(&Habit{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Name != nil {
		query = query.Where("name LIKE ?", "%"+*filter.Name+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 10000
	}

	err := query.Order("streak DESC, created_at ASC").
		Offset(filter.Page * filter.PageSize).
		Limit(filter.PageSize).
		Find(&habits).Error
	if err != nil {
		return nil, 0, err
	}

	return habits, total, nil
}

func (r *repository) Update(ctx context.Context, habit *Habit) error {
	result := r.db.WithContext(ctx).Save(habit)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Habit{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

// ResetDailyCompletions clears the completed_today flag on habits whose
// last completion happened before the given day boundary.
func (r *repository) ResetDailyCompletions(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Habit{}).
		Where("completed_today = ? AND (last_completed IS NULL OR last_completed < ?)", true, before).
		Update("completed_today", false)
	return result.RowsAffected, result.Error
}

// ResetBrokenStreaks zeroes streaks for habits whose last completion is
// older than the given cutoff (typically the start of yesterday).
func (r *repository) ResetBrokenStreaks(ctx context.Context, lastCompletedBefore time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Habit{}).
		Where("streak > 0 AND (last_completed IS NULL OR last_completed < ?)", lastCompletedBefore).
		Update("streak", 0)
	return result.RowsAffected, result.Error
}

func (r *repository) TopStreaks(ctx context.Context, userID uuid.UUID, limit int) ([]Habit, error) {
	var habits []Habit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("streak DESC").
		Limit(limit).
		Find(&habits).Error
	return habits, err
}
