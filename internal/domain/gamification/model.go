package gamification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GamificationState is the per-user persisted gamification record:
// cumulative points, the perfect-day counter, and the active daily
// challenge batch stored as a JSON document so the batch is replaced
// atomically on regeneration.
type GamificationState struct {
	UserID         uuid.UUID      `json:"user_id" gorm:"type:uuid;primary_key"`
	TotalPoints    int            `json:"total_points" gorm:"not null;default:0"`
	PerfectDays    int            `json:"perfect_days" gorm:"not null;default:0"`
	LastPerfectDay *time.Time     `json:"last_perfect_day,omitempty"`
	Challenges     datatypes.JSON `json:"challenges" gorm:"type:jsonb"`
	CreatedAt      time.Time      `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"not null;default:current_timestamp;autoUpdateTime"`
}

// TableName specifies the table name for the GamificationState model
func (GamificationState) TableName() string {
	return "gamification_states"
}

// BeforeUpdate is called before updating a state record
func (g *GamificationState) BeforeUpdate(tx *gorm.DB) error {
	g.UpdatedAt = time.Now()
	return nil
}

// UnlockedAchievement records that a user has been credited for an
// achievement. The unique (user_id, achievement_id) index is what makes
// crediting exactly-once under concurrent evaluation passes.
type UnlockedAchievement struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID        uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement"`
	AchievementID string    `json:"achievement_id" gorm:"not null;uniqueIndex:idx_user_achievement"`
	UnlockedAt    time.Time `json:"unlocked_at" gorm:"not null;default:current_timestamp"`
}

// TableName specifies the table name for the UnlockedAchievement model
func (UnlockedAchievement) TableName() string {
	return "unlocked_achievements"
}

// BeforeCreate is called before creating a new unlock record
func (u *UnlockedAchievement) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.UnlockedAt.IsZero() {
		u.UnlockedAt = time.Now()
	}
	return nil
}
