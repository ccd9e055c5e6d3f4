package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

type RelapseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, relapses []*types.Relapse) ([]*types.Relapse, error)
	GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Relapse, error)
	CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type relapseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelapseRepo(db *gorm.DB, baseLog *logger.Logger) RelapseRepo {
	repoLog := baseLog.With("repo", "RelapseRepo")
	return &relapseRepo{db: db, log: repoLog}
}

func (rr *relapseRepo) Create(ctx context.Context, tx *gorm.DB, relapses []*types.Relapse) ([]*types.Relapse, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(relapses) == 0 {
		return []*types.Relapse{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&relapses).Error; err != nil {
		return nil, err
	}

	return relapses, nil
}

func (rr *relapseRepo) GetRecentByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.Relapse, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.Relapse

	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("relapse_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (rr *relapseRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var count int64

	if err := transaction.WithContext(ctx).
		Model(&types.Relapse{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
