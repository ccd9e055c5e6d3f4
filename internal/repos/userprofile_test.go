package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/ruanfdev/cleanbreak-backend/internal/repos/testutil"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

func TestUserProfileRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewUserProfileRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "profilerepo@example.com")

	exists, err := repo.ExistsForUser(ctx, tx, u.ID)
	if err != nil {
		t.Fatalf("ExistsForUser: %v", err)
	}
	if exists {
		t.Fatal("ExistsForUser before create = true, want false")
	}

	p := &types.UserProfile{
		ID:                u.ID,
		AddictionType:     "alcohol",
		AddictionDuration: "1-3",
		MainTrigger:       "stress",
		MainGoal:          "stop",
	}
	if _, err := repo.Create(ctx, tx, []*types.UserProfile{p}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	exists, err = repo.ExistsForUser(ctx, tx, u.ID)
	if err != nil || !exists {
		t.Fatalf("ExistsForUser after create: err=%v exists=%v", err, exists)
	}

	rows, err := repo.GetByUserIDs(ctx, tx, []uuid.UUID{u.ID})
	if err != nil || len(rows) != 1 {
		t.Fatalf("GetByUserIDs: err=%v len=%d", err, len(rows))
	}
	if rows[0].AddictionType != "alcohol" || rows[0].MainGoal != "stop" {
		t.Fatalf("GetByUserIDs wrong row: %+v", rows[0])
	}
}
