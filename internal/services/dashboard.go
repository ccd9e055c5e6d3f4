package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/repos"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

// ErrOnboardingRequired is returned when the dashboard is loaded for a user
// with no profile; the caller should route them to the quiz.
var ErrOnboardingRequired = errors.New("onboarding required")

const recentRelapseLimit = 10

type DashboardData struct {
	Profile      *types.UserProfile `json:"profile"`
	ActiveStreak *types.Streak      `json:"active_streak"`
	DaysClean    int                `json:"days_clean"`
	Relapses     []*types.Relapse   `json:"relapses"`
	RelapseCount int64              `json:"relapse_count"`
	Achievements []Achievement      `json:"achievements"`
}

type DashboardService interface {
	Load(ctx context.Context, userID uuid.UUID) (*DashboardData, error)
}

type dashboardService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.UserProfileRepo
	streakRepo  repos.StreakRepo
	relapseRepo repos.RelapseRepo
}

func NewDashboardService(
	db *gorm.DB,
	log *logger.Logger,
	profileRepo repos.UserProfileRepo,
	streakRepo repos.StreakRepo,
	relapseRepo repos.RelapseRepo,
) DashboardService {
	serviceLog := log.With("service", "DashboardService")
	return &dashboardService{
		db:          db,
		log:         serviceLog,
		profileRepo: profileRepo,
		streakRepo:  streakRepo,
		relapseRepo: relapseRepo,
	}
}

// Load re-reads everything from the repositories on every call; days clean
// and achievements are recomputed, never cached. Streak and relapse read
// failures degrade to an empty section instead of failing the whole page.
func (ds *dashboardService) Load(ctx context.Context, userID uuid.UUID) (*DashboardData, error) {
	profiles, pErr := ds.profileRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
	if pErr != nil {
		return nil, pErr
	}
	if len(profiles) == 0 {
		return nil, ErrOnboardingRequired
	}

	data := &DashboardData{
		Profile:  profiles[0],
		Relapses: []*types.Relapse{},
	}

	active, sErr := ds.streakRepo.GetActiveByUserID(ctx, nil, userID)
	if sErr != nil {
		ds.log.Warn("Failed to load active streak", "user_id", userID, "error", sErr)
	} else if active != nil {
		data.ActiveStreak = active
		data.DaysClean = DaysClean(active.StartDate, time.Now())
	}

	relapses, rErr := ds.relapseRepo.GetRecentByUserID(ctx, nil, userID, recentRelapseLimit)
	if rErr != nil {
		ds.log.Warn("Failed to load recent relapses", "user_id", userID, "error", rErr)
	} else {
		data.Relapses = relapses
	}

	count, cErr := ds.relapseRepo.CountByUserID(ctx, nil, userID)
	if cErr != nil {
		ds.log.Warn("Failed to count relapses", "user_id", userID, "error", cErr)
	} else {
		data.RelapseCount = count
	}

	data.Achievements = Achievements(data.DaysClean)
	return data, nil
}
