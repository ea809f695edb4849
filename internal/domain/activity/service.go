package activity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultFeedLimit = 20

type Service interface {
	Record(ctx context.Context, userID uuid.UUID, activityType, message, icon string) (*Activity, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Activity, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Record(ctx context.Context, userID uuid.UUID, activityType, message, icon string) (*Activity, error) {
	entry := &Activity{
		ID:      uuid.New(),
		UserID:  userID,
		Type:    activityType,
		Message: message,
		Icon:    icon,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultFeedLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}
