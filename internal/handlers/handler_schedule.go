package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/aqsaty/installment_app/internal/core/ports/services"
	"github.com/aqsaty/installment_app/internal/dto"
	"github.com/aqsaty/installment_app/internal/middleware"
)

// scheduleHandler handles HTTP requests for installment schedules.
type scheduleHandler struct {
	scheduleSvc portssvc.ScheduleSvcFacade
}

func newScheduleHandler(scheduleSvc portssvc.ScheduleSvcFacade) *scheduleHandler {
	return &scheduleHandler{scheduleSvc: scheduleSvc}
}

// getSchedule returns the contract's installments in ascending month order.
func (h *scheduleHandler) getSchedule(c *gin.Context) {
	contractID := c.Param("contractID")

	installments, err := h.scheduleSvc.GetSchedule(c.Request.Context(), contractID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"installments": dto.ToInstallmentResponses(installments)})
}

// updateSchedule applies a bulk schedule edit. Each change runs
// redistribution against the draft schedule; clamped amounts come back as
// warnings on the response, not errors.
func (h *scheduleHandler) updateSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")

	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateSchedule", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	installments, results, err := h.scheduleSvc.UpdateSchedule(c.Request.Context(), contractID, req, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateScheduleResponse{
		Installments: dto.ToInstallmentResponses(installments),
		Warnings:     dto.ToRedistributionWarnings(results),
	})
}
