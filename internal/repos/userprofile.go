package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

type UserProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profiles []*types.UserProfile) ([]*types.UserProfile, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserProfile, error)
	ExistsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error)
}

type userProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProfileRepo(db *gorm.DB, baseLog *logger.Logger) UserProfileRepo {
	repoLog := baseLog.With("repo", "UserProfileRepo")
	return &userProfileRepo{db: db, log: repoLog}
}

func (upr *userProfileRepo) Create(ctx context.Context, tx *gorm.DB, profiles []*types.UserProfile) ([]*types.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = upr.db
	}

	if len(profiles) == 0 {
		return []*types.UserProfile{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&profiles).Error; err != nil {
		return nil, err
	}

	return profiles, nil
}

func (upr *userProfileRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.UserProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = upr.db
	}

	var results []*types.UserProfile

	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// ExistsForUser is the onboarding-complete check. Callers must not cache the
// answer across requests; completion can change between two navigations.
func (upr *userProfileRepo) ExistsForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = upr.db
	}

	var count int64

	if err := transaction.WithContext(ctx).
		Model(&types.UserProfile{}).
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
