package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aqsaty/installment_app/internal/core/domain"
	portssvc "github.com/aqsaty/installment_app/internal/core/ports/services"
	"github.com/aqsaty/installment_app/internal/dto"
	"github.com/aqsaty/installment_app/internal/middleware"
)

// adminHandler handles privileged correction requests.
type adminHandler struct {
	adminSvc portssvc.AdminSvcFacade
}

func newAdminHandler(adminSvc portssvc.AdminSvcFacade) *adminHandler {
	return &adminHandler{adminSvc: adminSvc}
}

// adminAction edits or resets an installment's paid amount.
func (h *adminHandler) adminAction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")

	var req dto.AdminActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for adminAction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID := actorID(c)

	var inst *domain.Installment
	var err error
	switch req.Action {
	case dto.AdminActionEdit:
		if req.AmountPaid == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amountPaid is required for action edit"})
			return
		}
		inst, err = h.adminSvc.EditPaidAmount(c.Request.Context(), contractID, req.InstallmentID, domain.NewMoney(*req.AmountPaid), userID)
	case dto.AdminActionReset:
		inst, err = h.adminSvc.ResetPayment(c.Request.Context(), contractID, req.InstallmentID, userID)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown admin action"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToInstallmentResponse(inst))
}

// updateTransaction corrects the paid date on a past transaction.
func (h *adminHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")
	transactionID := c.Param("transactionID")

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	txn, err := h.adminSvc.UpdateTransactionDate(c.Request.Context(), contractID, transactionID, req.PaidDate, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
