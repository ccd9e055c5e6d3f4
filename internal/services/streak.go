package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/repos"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

// DaysClean is the whole-day count between a streak's start and now.
// Truncation, not rounding: 5 days and 23 hours is still 5 days clean.
func DaysClean(start, now time.Time) int {
	elapsed := now.Sub(start)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed.Hours() / 24)
}

type StreakService interface {
	ActiveStreak(ctx context.Context, userID uuid.UUID) (*types.Streak, error)
	History(ctx context.Context, userID uuid.UUID) ([]*types.Streak, error)
}

type streakService struct {
	db         *gorm.DB
	log        *logger.Logger
	streakRepo repos.StreakRepo
}

func NewStreakService(db *gorm.DB, log *logger.Logger, streakRepo repos.StreakRepo) StreakService {
	serviceLog := log.With("service", "StreakService")
	return &streakService{db: db, log: serviceLog, streakRepo: streakRepo}
}

func (ss *streakService) ActiveStreak(ctx context.Context, userID uuid.UUID) (*types.Streak, error) {
	return ss.streakRepo.GetActiveByUserID(ctx, nil, userID)
}

func (ss *streakService) History(ctx context.Context, userID uuid.UUID) ([]*types.Streak, error) {
	return ss.streakRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
}
