package services

import (
	"context"

	"github.com/aqsaty/installment_app/internal/core/domain"
)

// PaymentSvcFacade defines the payment application entry points. Both record
// exactly one Transaction per call.
type PaymentSvcFacade interface {
	// PayInstallment applies a payment to one specific installment. Fails
	// with an overpayment error when the amount exceeds that installment's
	// remaining balance.
	PayInstallment(ctx context.Context, contractID string, installmentID string, amount domain.Money, note string, userID string) (*domain.Transaction, error)

	// PayCustom applies an ad-hoc payment across the oldest unpaid
	// installments in month order, down payment included, until the amount is
	// consumed. Fails with an overpayment error when the amount exceeds the
	// contract's remaining balance.
	PayCustom(ctx context.Context, contractID string, amount domain.Money, note string, userID string) (*domain.Transaction, error)
}
