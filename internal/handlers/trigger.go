package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ruanfdev/cleanbreak-backend/internal/requestdata"
	"github.com/ruanfdev/cleanbreak-backend/internal/services"
)

type TriggerHandler struct {
	triggerService services.TriggerService
}

func NewTriggerHandler(triggerService services.TriggerService) *TriggerHandler {
	return &TriggerHandler{triggerService: triggerService}
}

func (th *TriggerHandler) Log(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no authenticated user"))
		return
	}

	var req struct {
		TriggerType string `json:"trigger_type"`
		Intensity   int    `json:"intensity"`
		Notes       string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	trigger, err := th.triggerService.Log(c.Request.Context(), rd.UserID, req.TriggerType, req.Intensity, req.Notes)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "trigger_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trigger": trigger})
}

func (th *TriggerHandler) Recent(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("no authenticated user"))
		return
	}

	triggers, err := th.triggerService.Recent(c.Request.Context(), rd.UserID, 20)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "trigger_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"triggers": triggers})
}
