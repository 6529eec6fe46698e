package domain

import "time"

// LedgerEntry is one append-only history record on an installment. Corrections
// append compensating negative deltas; past entries are never rewritten.
type LedgerEntry struct {
	Delta Money     `json:"delta"` // Signed change to amountPaid
	At    time.Time `json:"at"`
	Note  string    `json:"note"`
}

// Installment is one scheduled partial payment within a contract. MonthNumber 0
// is the down payment; 1..N are the monthly installments.
type Installment struct {
	InstallmentID string        `json:"installmentID"` // Primary key (UUID)
	ContractID    string        `json:"contractID"`    // Back-reference, not ownership
	MonthNumber   int           `json:"monthNumber"`   // Unique per contract, totally ordered
	Amount        Money         `json:"amount"`        // Scheduled target for this installment
	AmountPaid    Money         `json:"amountPaid"`    // Cumulative paid amount
	DueDate       time.Time     `json:"dueDate"`
	History       []LedgerEntry `json:"history"`
	AuditFields
}

// Remaining returns the unpaid part of the scheduled amount.
func (i Installment) Remaining() Money {
	return i.Amount.Sub(i.AmountPaid)
}

// IsProtected reports whether the installment has recorded payments. A
// protected installment's scheduled amount must never shrink below what was
// already paid, and redistribution leaves it untouched.
func (i Installment) IsProtected() bool {
	return i.AmountPaid.IsPositive()
}

// AppendHistory records a signed paid-amount delta on the installment ledger.
func (i *Installment) AppendHistory(delta Money, at time.Time, note string) {
	i.History = append(i.History, LedgerEntry{Delta: delta, At: at, Note: note})
}
