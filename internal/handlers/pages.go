package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ruanfdev/cleanbreak-backend/internal/logger"
	"github.com/ruanfdev/cleanbreak-backend/internal/requestdata"
	"github.com/ruanfdev/cleanbreak-backend/internal/services"
	"github.com/ruanfdev/cleanbreak-backend/internal/types"
)

// PageHandler serves the page-data endpoints behind the access gate. The
// gate has already decided whether the request may land here; these handlers
// only assemble what the page shows.
type PageHandler struct {
	log        *logger.Logger
	catalog    *services.QuizCatalog
	onboarding services.OnboardingService
	dashboard  services.DashboardService
}

func NewPageHandler(
	log *logger.Logger,
	catalog *services.QuizCatalog,
	onboarding services.OnboardingService,
	dashboard services.DashboardService,
) *PageHandler {
	handlerLog := log.With("handler", "PageHandler")
	return &PageHandler{
		log:        handlerLog,
		catalog:    catalog,
		onboarding: onboarding,
		dashboard:  dashboard,
	}
}

func (ph *PageHandler) Login(c *gin.Context) {
	payload := gin.H{"page": "login"}
	if errIndicator := c.Query("error"); errIndicator != "" {
		payload["error"] = errIndicator
	}
	RespondOK(c, payload)
}

func (ph *PageHandler) Quiz(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd != nil && rd.UserID != uuid.Nil {
		// Already onboarded users skip the flow entirely.
		hasProfile, err := ph.onboarding.HasProfile(c.Request.Context(), rd.UserID)
		if err != nil {
			ph.log.Warn("Profile lookup failed on quiz page", "user_id", rd.UserID, "error", err)
		} else if hasProfile {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
	}
	RespondOK(c, gin.H{
		"page":      "quiz",
		"questions": ph.catalog.Questions,
	})
}

func (ph *PageHandler) Dashboard(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	data, err := ph.dashboard.Load(c.Request.Context(), rd.UserID)
	if err != nil {
		if errors.Is(err, services.ErrOnboardingRequired) {
			c.Redirect(http.StatusFound, "/quiz")
			return
		}
		// Read failure: log and render the empty default state rather than
		// failing the page.
		ph.log.Warn("Dashboard load failed", "user_id", rd.UserID, "error", err)
		data = &services.DashboardData{
			Relapses:     []*types.Relapse{},
			Achievements: services.Achievements(0),
		}
	}
	RespondOK(c, gin.H{
		"page":      "dashboard",
		"dashboard": data,
	})
}
