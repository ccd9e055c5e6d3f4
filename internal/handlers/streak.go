package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ruanfdev/cleanbreak-backend/internal/requestdata"
	"github.com/ruanfdev/cleanbreak-backend/internal/services"
)

type StreakHandler struct {
	streakService services.StreakService
}

func NewStreakHandler(streakService services.StreakService) *StreakHandler {
	return &StreakHandler{streakService: streakService}
}

func (sh *StreakHandler) Active(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no authenticated user"))
		return
	}

	streak, err := sh.streakService.ActiveStreak(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "streak_failed", err)
		return
	}
	daysClean := 0
	if streak != nil {
		daysClean = services.DaysClean(streak.StartDate, time.Now())
	}
	RespondOK(c, gin.H{
		"streak":     streak,
		"days_clean": daysClean,
	})
}

func (sh *StreakHandler) History(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no authenticated user"))
		return
	}

	streaks, err := sh.streakService.History(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "streak_failed", err)
		return
	}
	RespondOK(c, gin.H{"streaks": streaks})
}
