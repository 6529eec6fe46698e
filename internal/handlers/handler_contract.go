package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/aqsaty/installment_app/internal/core/ports/services"
	"github.com/aqsaty/installment_app/internal/dto"
	"github.com/aqsaty/installment_app/internal/middleware"
)

// contractHandler handles HTTP requests for contracts.
type contractHandler struct {
	contractSvc portssvc.ContractSvcFacade
}

func newContractHandler(contractSvc portssvc.ContractSvcFacade) *contractHandler {
	return &contractHandler{contractSvc: contractSvc}
}

// createContract creates a contract together with its initial installment schedule.
func (h *contractHandler) createContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createContract", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	contract, installments, err := h.contractSvc.CreateContract(c.Request.Context(), req, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"contract":     dto.ToContractResponse(contract),
		"installments": dto.ToInstallmentResponses(installments),
	})
}

// getContract returns a contract with its derived aggregate fields.
func (h *contractHandler) getContract(c *gin.Context) {
	contractID := c.Param("contractID")

	contract, err := h.contractSvc.GetContract(c.Request.Context(), contractID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToContractResponse(contract))
}

// listTransactions returns a contract's payment transactions, newest first.
func (h *contractHandler) listTransactions(c *gin.Context) {
	contractID := c.Param("contractID")

	txns, err := h.contractSvc.ListTransactions(c.Request.Context(), contractID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": dto.ToTransactionResponses(txns)})
}
