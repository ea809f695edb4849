package gamification

import (
	"errors"
	"time"
)

var (
	ErrBadLevelTable = errors.New("level table must have at least two strictly increasing entries")
	ErrEmptyCatalog  = errors.New("achievement catalog must not be empty")
)

// EngineConfig carries the fixed rule tables the engine evaluates
// against, plus an injectable clock. Constructed once at startup; no
// package-level mutable state.
type EngineConfig struct {
	Achievements []Achievement
	Levels       []Level
	Now          func() time.Time
}

// NewEngineConfig builds a config with the default catalog and level
// table and the wall clock.
func NewEngineConfig() EngineConfig {
	return EngineConfig{
		Achievements: DefaultAchievements(),
		Levels:       DefaultLevels(),
		Now:          time.Now,
	}
}

// Validate checks the invariants the rest of the engine relies on.
func (c EngineConfig) Validate() error {
	if len(c.Achievements) == 0 {
		return ErrEmptyCatalog
	}
	if len(c.Levels) < 2 {
		return ErrBadLevelTable
	}
	for i := 1; i < len(c.Levels); i++ {
		if c.Levels[i].PointsRequired <= c.Levels[i-1].PointsRequired {
			return ErrBadLevelTable
		}
	}
	return nil
}

func (c EngineConfig) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
