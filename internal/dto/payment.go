package dto

import (
	"time"

	"github.com/aqsaty/installment_app/internal/core/domain"
)

// CreatePaymentRequest defines the payload for recording a payment. When
// InstallmentID is set, the payment targets that installment; otherwise it is
// an ad-hoc payment applied to the oldest unpaid installments first.
type CreatePaymentRequest struct {
	Amount        int64   `json:"amount" binding:"required,money"`
	InstallmentID *string `json:"installmentID"`
	Note          string  `json:"note"`
}

// TransactionResponse defines the data returned for a payment transaction.
type TransactionResponse struct {
	TransactionID string    `json:"transactionID"`
	ContractID    string    `json:"contractID"`
	Amount        int64     `json:"amount"`
	PaidDate      time.Time `json:"paidDate"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		ContractID:    txn.ContractID,
		Amount:        txn.Amount.Units(),
		PaidDate:      txn.PaidDate,
		Note:          txn.Note,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of transactions to response DTOs.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
