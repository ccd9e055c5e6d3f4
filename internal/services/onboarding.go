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

// ErrOnboardingComplete is returned when a user who already has a profile
// tries to submit the quiz again. There is exactly one profile per user.
var ErrOnboardingComplete = errors.New("onboarding already complete")

type OnboardingService interface {
	Complete(ctx context.Context, userID uuid.UUID, answers map[string]string) (*types.UserProfile, error)
	HasProfile(ctx context.Context, userID uuid.UUID) (bool, error)
}

type onboardingService struct {
	db          *gorm.DB
	log         *logger.Logger
	catalog     *QuizCatalog
	profileRepo repos.UserProfileRepo
	streakRepo  repos.StreakRepo
}

func NewOnboardingService(
	db *gorm.DB,
	log *logger.Logger,
	catalog *QuizCatalog,
	profileRepo repos.UserProfileRepo,
	streakRepo repos.StreakRepo,
) OnboardingService {
	serviceLog := log.With("service", "OnboardingService")
	return &onboardingService{
		db:          db,
		log:         serviceLog,
		catalog:     catalog,
		profileRepo: profileRepo,
		streakRepo:  streakRepo,
	}
}

func (obs *onboardingService) HasProfile(ctx context.Context, userID uuid.UUID) (bool, error) {
	return obs.profileRepo.ExistsForUser(ctx, nil, userID)
}

// Complete validates the four collected answers and performs the initial
// write sequence: one profile row plus one day-zero active streak, in a
// single transaction so a partial onboarding can never be observed.
func (obs *onboardingService) Complete(ctx context.Context, userID uuid.UUID, answers map[string]string) (*types.UserProfile, error) {
	if vErr := obs.catalog.ValidateAnswers(answers); vErr != nil {
		return nil, vErr
	}

	profile := &types.UserProfile{
		ID:                userID,
		AddictionType:     normalization.ParseInputString(answers["addiction_type"]),
		AddictionDuration: normalization.ParseInputString(answers["addiction_duration"]),
		MainTrigger:       normalization.ParseInputString(answers["main_trigger"]),
		MainGoal:          normalization.ParseInputString(answers["main_goal"]),
	}

	err := obs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, eErr := obs.profileRepo.ExistsForUser(ctx, tx, userID)
		if eErr != nil {
			return fmt.Errorf("failed to check existing profile: %w", eErr)
		}
		if exists {
			return ErrOnboardingComplete
		}
		if _, pErr := obs.profileRepo.Create(ctx, tx, []*types.UserProfile{profile}); pErr != nil {
			return fmt.Errorf("failed to create profile: %w", pErr)
		}
		initial := &types.Streak{
			ID:        uuid.New(),
			UserID:    userID,
			StartDate: time.Now(),
			DaysCount: 0,
			IsActive:  true,
		}
		if _, sErr := obs.streakRepo.Create(ctx, tx, []*types.Streak{initial}); sErr != nil {
			return fmt.Errorf("failed to create initial streak: %w", sErr)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrOnboardingComplete) {
			obs.log.Warn("Onboarding write sequence failed", "user_id", userID, "error", err)
		}
		return nil, err
	}
	return profile, nil
}
