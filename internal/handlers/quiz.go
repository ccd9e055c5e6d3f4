package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ruanfdev/cleanbreak-backend/internal/requestdata"
	"github.com/ruanfdev/cleanbreak-backend/internal/services"
)

type QuizHandler struct {
	catalog    *services.QuizCatalog
	onboarding services.OnboardingService
}

func NewQuizHandler(catalog *services.QuizCatalog, onboarding services.OnboardingService) *QuizHandler {
	return &QuizHandler{catalog: catalog, onboarding: onboarding}
}

func (qh *QuizHandler) Questions(c *gin.Context) {
	RespondOK(c, gin.H{"questions": qh.catalog.Questions})
}

func (qh *QuizHandler) Submit(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no authenticated user"))
		return
	}

	var req struct {
		Answers map[string]string `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	profile, err := qh.onboarding.Complete(c.Request.Context(), rd.UserID, req.Answers)
	if err != nil {
		if errors.Is(err, services.ErrOnboardingComplete) {
			c.JSON(http.StatusConflict, gin.H{
				"error":    "onboarding already complete",
				"redirect": "/dashboard",
			})
			return
		}
		RespondError(c, http.StatusBadRequest, "onboarding_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":  profile,
		"redirect": "/dashboard",
	})
}
