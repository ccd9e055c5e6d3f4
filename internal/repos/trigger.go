package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

type TriggerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, triggers []*types.Trigger) ([]*types.Trigger, error)
	GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Trigger, error)
}

type triggerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTriggerRepo(db *gorm.DB, baseLog *logger.Logger) TriggerRepo {
	repoLog := baseLog.With("repo", "TriggerRepo")
	return &triggerRepo{db: db, log: repoLog}
}

func (tr *triggerRepo) Create(ctx context.Context, tx *gorm.DB, triggers []*types.Trigger) ([]*types.Trigger, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(triggers) == 0 {
		return []*types.Trigger{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&triggers).Error; err != nil {
		return nil, err
	}

	return triggers, nil
}

func (tr *triggerRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Trigger, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Trigger

	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
