package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ruanfdev/cleanbreak-backend/internal/requestdata"
	"github.com/ruanfdev/cleanbreak-backend/internal/services"
)

type RelapseHandler struct {
	relapseService services.RelapseService
}

func NewRelapseHandler(relapseService services.RelapseService) *RelapseHandler {
	return &RelapseHandler{relapseService: relapseService}
}

func (rh *RelapseHandler) Register(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no authenticated user"))
		return
	}

	var req struct {
		Trigger string `json:"trigger"`
		Notes   string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	relapse, err := rh.relapseService.Register(c.Request.Context(), rd.UserID, req.Trigger, req.Notes)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveStreak) {
			RespondError(c, http.StatusConflict, "no_active_streak", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "relapse_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"relapse": relapse})
}
