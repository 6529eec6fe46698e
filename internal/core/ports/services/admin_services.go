package services

import (
	"context"
	"time"

	"github.com/aqsaty/installment_app/internal/core/domain"
)

// AdminSvcFacade defines privileged corrections of payment history. These
// operations rewrite the paid side of an installment through compensating
// ledger entries; the scheduled amounts are never touched here.
type AdminSvcFacade interface {
	// EditPaidAmount sets an installment's paid amount to min(newPaid, amount)
	// and appends the compensating history delta.
	EditPaidAmount(ctx context.Context, contractID string, installmentID string, newPaid domain.Money, userID string) (*domain.Installment, error)

	// ResetPayment clears an installment's paid amount, appending a negative
	// history delta. The installment stops being protected afterwards.
	ResetPayment(ctx context.Context, contractID string, installmentID string, userID string) (*domain.Installment, error)

	// UpdateTransactionDate corrects only the paid date of a past transaction.
	UpdateTransactionDate(ctx context.Context, contractID string, transactionID string, paidDate time.Time, userID string) (*domain.Transaction, error)
}
