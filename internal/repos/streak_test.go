package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ruanfdev/cleanbreak-backend/internal/repos/testutil"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

func TestStreakRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewStreakRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "streakrepo@example.com")

	start := time.Now().AddDate(0, 0, -5)
	active := testutil.SeedActiveStreak(t, ctx, tx, u.ID, start)

	got, err := repo.GetActiveByUserID(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("GetActiveByUserID: %v", err)
	}
	if got == nil || got.ID != active.ID {
		t.Fatalf("GetActiveByUserID: wrong streak %+v", got)
	}

	if rows, err := repo.GetByUserIDs(ctx, tx, []uuid.UUID{u.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByUserIDs: err=%v len=%d", err, len(rows))
	}

	end := time.Now()
	affected, err := repo.CloseStreak(ctx, tx, active.ID, end, 5)
	if err != nil {
		t.Fatalf("CloseStreak: %v", err)
	}
	if affected != 1 {
		t.Fatalf("CloseStreak affected = %d, want 1", affected)
	}

	// Closing again must be a no-op; the is_active guard is what prevents a
	// double submission from rotating the streak twice.
	affected, err = repo.CloseStreak(ctx, tx, active.ID, end, 5)
	if err != nil {
		t.Fatalf("CloseStreak again: %v", err)
	}
	if affected != 0 {
		t.Fatalf("CloseStreak again affected = %d, want 0", affected)
	}

	if got, err := repo.GetActiveByUserID(ctx, tx, u.ID); err != nil || got != nil {
		t.Fatalf("after close GetActiveByUserID: err=%v got=%+v", err, got)
	}

	var closed types.Streak
	if err := tx.WithContext(ctx).Where("id = ?", active.ID).First(&closed).Error; err != nil {
		t.Fatalf("reload closed streak: %v", err)
	}
	if closed.IsActive || closed.DaysCount != 5 || closed.EndDate == nil {
		t.Fatalf("closed streak not updated: %+v", closed)
	}

	replacement := &types.Streak{
		ID:        uuid.New(),
		UserID:    u.ID,
		StartDate: time.Now(),
		DaysCount: 0,
		IsActive:  true,
	}
	if _, err := repo.Create(ctx, tx, []*types.Streak{replacement}); err != nil {
		t.Fatalf("Create replacement: %v", err)
	}
	got, err = repo.GetActiveByUserID(ctx, tx, u.ID)
	if err != nil || got == nil || got.ID != replacement.ID {
		t.Fatalf("GetActiveByUserID after rotation: err=%v got=%+v", err, got)
	}
}
