package db

import (
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

func (s *PostgresService) AutoMigrateAll() error {
	return s.db.AutoMigrate(

		// Identity + sessions
		&types.User{},
		&types.UserToken{},

		// Onboarding
		&types.UserProfile{},

		// Tracking
		&types.Streak{},
		&types.Relapse{},
		&types.Trigger{},
	)
}
