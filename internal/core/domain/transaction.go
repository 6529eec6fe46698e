package domain

import "time"

// Transaction records one payment event against a contract. A single
// transaction may fund several installments (ad-hoc payments fill the oldest
// unpaid installments first); the split is bookkeeping on the installments
// themselves, not separate payment events.
type Transaction struct {
	TransactionID string    `json:"transactionID"` // Primary key (UUID)
	ContractID    string    `json:"contractID"`    // FK -> contracts
	Amount        Money     `json:"amount"`        // Always positive
	PaidDate      time.Time `json:"paidDate"`      // Admin-correctable timestamp
	Note          string    `json:"note"`
	AuditFields
}
