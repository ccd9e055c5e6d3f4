package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

type StreakRepo interface {
	Create(ctx context.Context, tx *gorm.DB, streaks []*types.Streak) ([]*types.Streak, error)
	GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Streak, error)
	GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Streak, error)
	CloseStreak(ctx context.Context, tx *gorm.DB, streakID uuid.UUID, endDate time.Time, daysCount int) (int64, error)
}

type streakRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStreakRepo(db *gorm.DB, baseLog *logger.Logger) StreakRepo {
	repoLog := baseLog.With("repo", "StreakRepo")
	return &streakRepo{db: db, log: repoLog}
}

func (sr *streakRepo) Create(ctx context.Context, tx *gorm.DB, streaks []*types.Streak) ([]*types.Streak, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(streaks) == 0 {
		return []*types.Streak{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&streaks).Error; err != nil {
		return nil, err
	}

	return streaks, nil
}

func (sr *streakRepo) GetByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.Streak, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Streak

	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("start_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// GetActiveByUserID returns the newest active streak, or nil when the user
// has none.
func (sr *streakRepo) GetActiveByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Streak, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.Streak

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("start_date DESC").
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// CloseStreak deactivates a streak with an is_active guard and reports the
// number of rows touched. Zero rows means someone else already closed it,
// which lets callers abort instead of opening a second active streak.
func (sr *streakRepo) CloseStreak(ctx context.Context, tx *gorm.DB, streakID uuid.UUID, endDate time.Time, daysCount int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.Streak{}).
		Where("id = ? AND is_active = ?", streakID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"end_date":   endDate,
			"days_count": daysCount,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
