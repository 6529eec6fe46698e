package dto

import "time"

// Admin action names accepted by the admin-actions endpoint.
const (
	AdminActionEdit  = "edit"
	AdminActionReset = "reset"
)

// AdminActionRequest defines the payload for a privileged correction of an
// installment's paid amount. Action "edit" requires AmountPaid; "reset" clears
// the paid amount entirely.
type AdminActionRequest struct {
	InstallmentID string `json:"installmentID" binding:"required"`
	Action        string `json:"action" binding:"required,oneof=edit reset"`
	AmountPaid    *int64 `json:"amountPaid" binding:"omitempty,money"`
}

// UpdateTransactionRequest defines the payload for correcting the paid date
// of a past transaction.
type UpdateTransactionRequest struct {
	PaidDate time.Time `json:"paidDate" binding:"required"`
}
