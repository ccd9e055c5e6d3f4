package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ruanfdev/cleanbreak-backend/internal/repos"
	"github.com/ruanfdev/cleanbreak-backend/internal/repos/testutil"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

func TestRelapseRegisterRotatesStreak(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	log := testutil.Logger(t)
	streakRepo := repos.NewStreakRepo(tx, log)
	relapseRepo := repos.NewRelapseRepo(tx, log)
	svc := NewRelapseService(tx, log, streakRepo, relapseRepo)

	u := testutil.SeedUser(t, ctx, tx, "relapse@example.com")
	start := time.Now().AddDate(0, 0, -3)
	old := testutil.SeedActiveStreak(t, ctx, tx, u.ID, start)

	relapse, err := svc.Register(ctx, u.ID, "stress", "rough week")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if relapse.Trigger != "stress" || relapse.Notes != "rough week" {
		t.Fatalf("relapse fields: %+v", relapse)
	}

	var closed types.Streak
	if err := tx.Where("id = ?", old.ID).First(&closed).Error; err != nil {
		t.Fatalf("reload old streak: %v", err)
	}
	if closed.IsActive {
		t.Fatal("old streak still active")
	}
	if closed.DaysCount != 3 {
		t.Fatalf("closed days_count = %d, want 3", closed.DaysCount)
	}
	if closed.EndDate == nil {
		t.Fatal("closed streak has no end date")
	}

	// Exactly one active streak after rotation, and it starts fresh.
	var activeCount int64
	if err := tx.Model(&types.Streak{}).Where("user_id = ? AND is_active = ?", u.ID, true).Count(&activeCount).Error; err != nil {
		t.Fatalf("count active: %v", err)
	}
	if activeCount != 1 {
		t.Fatalf("active streak count = %d, want 1", activeCount)
	}
	fresh, err := streakRepo.GetActiveByUserID(ctx, nil, u.ID)
	if err != nil || fresh == nil {
		t.Fatalf("GetActiveByUserID: err=%v streak=%+v", err, fresh)
	}
	if fresh.ID == old.ID || fresh.DaysCount != 0 {
		t.Fatalf("replacement streak: %+v", fresh)
	}

	recent, err := svc.Recent(ctx, u.ID, 10)
	if err != nil || len(recent) != 1 {
		t.Fatalf("Recent: err=%v len=%d", err, len(recent))
	}
}

func TestRelapseRegisterWithoutActiveStreak(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	log := testutil.Logger(t)
	streakRepo := repos.NewStreakRepo(tx, log)
	relapseRepo := repos.NewRelapseRepo(tx, log)
	svc := NewRelapseService(tx, log, streakRepo, relapseRepo)

	u := testutil.SeedUser(t, ctx, tx, "relapse-nostreak@example.com")

	if _, err := svc.Register(ctx, u.ID, "", ""); !errors.Is(err, ErrNoActiveStreak) {
		t.Fatalf("Register err = %v, want ErrNoActiveStreak", err)
	}

	var relapseCount int64
	tx.Model(&types.Relapse{}).Where("user_id = ?", u.ID).Count(&relapseCount)
	if relapseCount != 0 {
		t.Fatalf("relapse rows after no-op = %d", relapseCount)
	}
}
