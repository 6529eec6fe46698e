package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aqsaty/installment_app/internal/apperrors"
	"github.com/aqsaty/installment_app/internal/core/domain"
	portsrepo "github.com/aqsaty/installment_app/internal/core/ports/repositories"
	portssvc "github.com/aqsaty/installment_app/internal/core/ports/services"
	"github.com/aqsaty/installment_app/internal/middleware"
)

// adminService performs privileged corrections of payment history. It only
// ever rewrites the paid side of an installment; scheduled amounts are owned
// by the schedule service.
type adminService struct {
	repo  portsrepo.ContractRepositoryFacade
	locks *contractLocks
}

// NewAdminService creates a new AdminService.
func NewAdminService(repo portsrepo.ContractRepositoryFacade, locks *contractLocks) portssvc.AdminSvcFacade {
	return &adminService{repo: repo, locks: locks}
}

var _ portssvc.AdminSvcFacade = (*adminService)(nil)

// EditPaidAmount sets an installment's paid amount to min(newPaid, amount) and
// appends the compensating ledger delta. The scheduled amount is not touched.
func (s *adminService) EditPaidAmount(ctx context.Context, contractID string, installmentID string, newPaid domain.Money, userID string) (*domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if newPaid.IsNegative() {
		return nil, fmt.Errorf("paid amount must not be negative: %w", apperrors.ErrInvalidAmount)
	}

	release, err := s.locks.acquire(ctx, contractID)
	if err != nil {
		return nil, err
	}
	defer release()

	contract, schedule, inst, err := s.loadInstallment(ctx, contractID, installmentID)
	if err != nil {
		return nil, err
	}

	// Paid can never exceed the scheduled amount, even under admin override.
	applied := newPaid.Min(inst.Amount)
	delta := applied.Sub(inst.AmountPaid)
	if delta.IsZero() {
		return &inst, nil
	}

	now := time.Now().UTC()
	inst.AmountPaid = applied
	inst.AppendHistory(delta, now, "admin edit of paid amount")
	inst.LastUpdatedAt = now
	inst.LastUpdatedBy = userID
	if err := schedule.Replace(inst); err != nil {
		return nil, err
	}
	newEntries := map[string][]domain.LedgerEntry{
		inst.InstallmentID: {inst.History[len(inst.History)-1]},
	}

	domain.ProjectAggregate(contract, schedule)
	contract.LastUpdatedAt = now
	contract.LastUpdatedBy = userID

	if err := s.repo.SaveScheduleMutation(ctx, *contract, []domain.Installment{inst}, newEntries, nil); err != nil {
		logger.Error("Failed to persist paid-amount edit", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to save correction for contract %s: %w", contractID, err)
	}

	logger.Info("Paid amount corrected",
		slog.String("contract_id", contractID),
		slog.Int("month_number", inst.MonthNumber),
		slog.Int64("delta", delta.Units()))
	return &inst, nil
}

// ResetPayment clears an installment's paid amount, appending the negative
// compensating delta. Afterwards the installment is no longer protected and
// future redistribution may change its scheduled amount again.
func (s *adminService) ResetPayment(ctx context.Context, contractID string, installmentID string, userID string) (*domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	release, err := s.locks.acquire(ctx, contractID)
	if err != nil {
		return nil, err
	}
	defer release()

	contract, schedule, inst, err := s.loadInstallment(ctx, contractID, installmentID)
	if err != nil {
		return nil, err
	}
	if inst.AmountPaid.IsZero() {
		return &inst, nil
	}

	now := time.Now().UTC()
	oldPaid := inst.AmountPaid
	inst.AmountPaid = domain.NewMoney(0)
	inst.AppendHistory(oldPaid.Neg(), now, "admin reset of paid amount")
	inst.LastUpdatedAt = now
	inst.LastUpdatedBy = userID
	if err := schedule.Replace(inst); err != nil {
		return nil, err
	}
	newEntries := map[string][]domain.LedgerEntry{
		inst.InstallmentID: {inst.History[len(inst.History)-1]},
	}

	domain.ProjectAggregate(contract, schedule)
	contract.LastUpdatedAt = now
	contract.LastUpdatedBy = userID

	if err := s.repo.SaveScheduleMutation(ctx, *contract, []domain.Installment{inst}, newEntries, nil); err != nil {
		logger.Error("Failed to persist payment reset", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to save correction for contract %s: %w", contractID, err)
	}

	logger.Info("Payment reset",
		slog.String("contract_id", contractID),
		slog.Int("month_number", inst.MonthNumber),
		slog.Int64("old_paid", oldPaid.Units()))
	return &inst, nil
}

// UpdateTransactionDate corrects only the paid date of a past transaction.
// Installment amounts and contract aggregates are unaffected.
func (s *adminService) UpdateTransactionDate(ctx context.Context, contractID string, transactionID string, paidDate time.Time, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	release, err := s.locks.acquire(ctx, contractID)
	if err != nil {
		return nil, err
	}
	defer release()

	txn, err := s.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.ContractID != contractID {
		// Obscure existence of transactions on other contracts.
		return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateTransactionPaidDate(ctx, transactionID, paidDate, userID, now); err != nil {
		logger.Error("Failed to persist transaction date correction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	txn.PaidDate = paidDate
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	logger.Info("Transaction date corrected",
		slog.String("contract_id", contractID),
		slog.String("transaction_id", transactionID))
	return txn, nil
}

// loadInstallment loads the contract, its schedule and one installment by ID.
func (s *adminService) loadInstallment(ctx context.Context, contractID, installmentID string) (*domain.Contract, *domain.Schedule, domain.Installment, error) {
	contract, err := s.repo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, nil, domain.Installment{}, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}
	schedule, err := s.repo.FindScheduleByContractID(ctx, contractID)
	if err != nil {
		return nil, nil, domain.Installment{}, fmt.Errorf("failed to load schedule for contract %s: %w", contractID, err)
	}
	inst, err := schedule.ByID(installmentID)
	if err != nil {
		return nil, nil, domain.Installment{}, err
	}
	return contract, schedule, inst, nil
}
