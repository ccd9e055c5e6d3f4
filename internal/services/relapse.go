package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/normalization"
	"github.com/ruanfdev/cleanbreak-backend/internal/repos"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

// ErrNoActiveStreak is returned when a relapse is registered without a
// current active streak; the operation has nothing to rotate.
var ErrNoActiveStreak = errors.New("no active streak")

type RelapseService interface {
	Register(ctx context.Context, userID uuid.UUID, trigger, notes string) (*types.Relapse, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Relapse, error)
}

type relapseService struct {
	db          *gorm.DB
	log         *logger.Logger
	streakRepo  repos.StreakRepo
	relapseRepo repos.RelapseRepo
}

func NewRelapseService(
	db *gorm.DB,
	log *logger.Logger,
	streakRepo repos.StreakRepo,
	relapseRepo repos.RelapseRepo,
) RelapseService {
	serviceLog := log.With("service", "RelapseService")
	return &relapseService{
		db:          db,
		log:         serviceLog,
		streakRepo:  streakRepo,
		relapseRepo: relapseRepo,
	}
}

// Register records a relapse and rotates the active streak: insert the
// relapse row, close the active streak with its day count, open a fresh
// day-zero streak. The whole sequence runs in one transaction, and the
// guarded close aborts if another submission already rotated the streak, so
// a user can never end up with two active streaks.
func (rs *relapseService) Register(ctx context.Context, userID uuid.UUID, trigger, notes string) (*types.Relapse, error) {
	trigger = normalization.TrimInput(trigger)
	notes = normalization.TrimInput(notes)

	var relapse *types.Relapse
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active, aErr := rs.streakRepo.GetActiveByUserID(ctx, tx, userID)
		if aErr != nil {
			return fmt.Errorf("failed to load active streak: %w", aErr)
		}
		if active == nil {
			return ErrNoActiveStreak
		}

		now := time.Now()
		days := DaysClean(active.StartDate, now)

		relapse = &types.Relapse{
			ID:          uuid.New(),
			UserID:      userID,
			RelapseDate: now,
			Trigger:     trigger,
			Notes:       notes,
		}
		if _, rErr := rs.relapseRepo.Create(ctx, tx, []*types.Relapse{relapse}); rErr != nil {
			return fmt.Errorf("failed to record relapse: %w", rErr)
		}

		affected, cErr := rs.streakRepo.CloseStreak(ctx, tx, active.ID, now, days)
		if cErr != nil {
			return fmt.Errorf("failed to close active streak: %w", cErr)
		}
		if affected == 0 {
			return fmt.Errorf("active streak was already closed")
		}

		replacement := &types.Streak{
			ID:        uuid.New(),
			UserID:    userID,
			StartDate: now,
			DaysCount: 0,
			IsActive:  true,
		}
		if _, sErr := rs.streakRepo.Create(ctx, tx, []*types.Streak{replacement}); sErr != nil {
			return fmt.Errorf("failed to open replacement streak: %w", sErr)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNoActiveStreak) {
			rs.log.Warn("Relapse write sequence failed", "user_id", userID, "error", err)
		}
		return nil, err
	}
	return relapse, nil
}

func (rs *relapseService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]*types.Relapse, error) {
	return rs.relapseRepo.GetRecentByUserID(ctx, nil, userID, limit)
}
