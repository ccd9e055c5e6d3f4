package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/normalization"
	"github.com/ruanfdev/cleanbreak-backend/internal/repos"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

type TriggerService interface {
	Log(ctx context.Context, userID uuid.UUID, triggerType string, intensity int, notes string) (*types.Trigger, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Trigger, error)
}

type triggerService struct {
	db          *gorm.DB
	log         *logger.Logger
	triggerRepo repos.TriggerRepo
}

func NewTriggerService(db *gorm.DB, log *logger.Logger, triggerRepo repos.TriggerRepo) TriggerService {
	serviceLog := log.With("service", "TriggerService")
	return &triggerService{db: db, log: serviceLog, triggerRepo: triggerRepo}
}

func (ts *triggerService) Log(ctx context.Context, userID uuid.UUID, triggerType string, intensity int, notes string) (*types.Trigger, error) {
	triggerType = normalization.ParseInputString(triggerType)
	if triggerType == "" {
		return nil, fmt.Errorf("a trigger type is required")
	}
	if intensity < 1 || intensity > 10 {
		return nil, fmt.Errorf("intensity must be between 1 and 10")
	}

	trigger := &types.Trigger{
		ID:          uuid.New(),
		UserID:      userID,
		TriggerType: triggerType,
		Intensity:   intensity,
		Notes:       normalization.TrimInput(notes),
	}
	if _, err := ts.triggerRepo.Create(ctx, nil, []*types.Trigger{trigger}); err != nil {
		return nil, fmt.Errorf("failed to log trigger: %w", err)
	}
	return trigger, nil
}

func (ts *triggerService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Trigger, error) {
	return ts.triggerRepo.GetRecentByUserID(ctx, nil, userID, limit)
}
