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

// paymentHandler handles HTTP requests for payments.
type paymentHandler struct {
	paymentSvc portssvc.PaymentSvcFacade
}

func newPaymentHandler(paymentSvc portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentSvc: paymentSvc}
}

// createPayment records one payment. With an installmentID the payment
// targets that installment; without one it is applied to the oldest unpaid
// installments first.
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contractID := c.Param("contractID")

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	amount := domain.NewMoney(req.Amount)
	userID := actorID(c)

	var txn *domain.Transaction
	var err error
	if req.InstallmentID != nil {
		txn, err = h.paymentSvc.PayInstallment(c.Request.Context(), contractID, *req.InstallmentID, amount, req.Note, userID)
	} else {
		txn, err = h.paymentSvc.PayCustom(c.Request.Context(), contractID, amount, req.Note, userID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
