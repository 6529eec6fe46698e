package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aqsaty/installment_app/internal/apperrors"
	"github.com/aqsaty/installment_app/internal/core/domain"
	portsrepo "github.com/aqsaty/installment_app/internal/core/ports/repositories"
	portssvc "github.com/aqsaty/installment_app/internal/core/ports/services"
	"github.com/aqsaty/installment_app/internal/middleware"
)

// paymentService applies incoming payments to a contract's schedule.
type paymentService struct {
	repo  portsrepo.ContractRepositoryFacade
	locks *contractLocks
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(repo portsrepo.ContractRepositoryFacade, locks *contractLocks) portssvc.PaymentSvcFacade {
	return &paymentService{repo: repo, locks: locks}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// PayInstallment applies a payment to one specific installment.
func (s *paymentService) PayInstallment(ctx context.Context, contractID string, installmentID string, amount domain.Money, note string, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrInvalidAmount)
	}

	release, err := s.locks.acquire(ctx, contractID)
	if err != nil {
		return nil, err
	}
	defer release()

	contract, schedule, err := s.loadPayableContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	inst, err := schedule.ByID(installmentID)
	if err != nil {
		return nil, err
	}
	if amount.Cmp(inst.Remaining()) > 0 {
		return nil, fmt.Errorf("amount %d exceeds remaining %d of installment month %d: %w",
			amount.Units(), inst.Remaining().Units(), inst.MonthNumber, apperrors.ErrOverpayment)
	}

	now := time.Now().UTC()
	inst.AmountPaid = inst.AmountPaid.Add(amount)
	inst.AppendHistory(amount, now, "payment")
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

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		ContractID:    contractID,
		Amount:        amount,
		PaidDate:      now,
		Note:          note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.repo.SaveScheduleMutation(ctx, *contract, []domain.Installment{inst}, newEntries, &txn); err != nil {
		logger.Error("Failed to persist installment payment", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to save payment for contract %s: %w", contractID, err)
	}

	logger.Info("Installment payment applied",
		slog.String("contract_id", contractID),
		slog.Int("month_number", inst.MonthNumber),
		slog.Int64("amount", amount.Units()))
	return &txn, nil
}

// PayCustom applies an ad-hoc payment across the oldest unpaid installments
// in ascending month order, down payment included. Exactly one Transaction is
// recorded for the whole payment; the split across installments is
// bookkeeping, not multiple payment events.
func (s *paymentService) PayCustom(ctx context.Context, contractID string, amount domain.Money, note string, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive: %w", apperrors.ErrInvalidAmount)
	}

	release, err := s.locks.acquire(ctx, contractID)
	if err != nil {
		return nil, err
	}
	defer release()

	contract, schedule, err := s.loadPayableContract(ctx, contractID)
	if err != nil {
		return nil, err
	}

	remaining := contract.TotalPrice.Sub(schedule.TotalPaid())
	if amount.Cmp(remaining) > 0 {
		return nil, fmt.Errorf("amount %d exceeds contract remaining balance %d: %w",
			amount.Units(), remaining.Units(), apperrors.ErrOverpayment)
	}

	now := time.Now().UTC()
	newEntries := make(map[string][]domain.LedgerEntry)
	var touched []domain.Installment

	left := amount
	for _, inst := range schedule.Installments() {
		if left.IsZero() {
			break
		}
		open := inst.Remaining()
		if !open.IsPositive() {
			continue
		}
		portion := open.Min(left)
		inst.AmountPaid = inst.AmountPaid.Add(portion)
		inst.AppendHistory(portion, now, "ad-hoc payment")
		inst.LastUpdatedAt = now
		inst.LastUpdatedBy = userID
		if err := schedule.Replace(inst); err != nil {
			return nil, err
		}
		newEntries[inst.InstallmentID] = append(newEntries[inst.InstallmentID], inst.History[len(inst.History)-1])
		touched = append(touched, inst)
		left = left.Sub(portion)
	}
	if !left.IsZero() {
		return nil, fmt.Errorf("amount %d could not be fully applied: %w", amount.Units(), apperrors.ErrOverpayment)
	}

	domain.ProjectAggregate(contract, schedule)
	contract.LastUpdatedAt = now
	contract.LastUpdatedBy = userID

	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		ContractID:    contractID,
		Amount:        amount,
		PaidDate:      now,
		Note:          note,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.repo.SaveScheduleMutation(ctx, *contract, touched, newEntries, &txn); err != nil {
		logger.Error("Failed to persist ad-hoc payment", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to save payment for contract %s: %w", contractID, err)
	}

	logger.Info("Ad-hoc payment applied",
		slog.String("contract_id", contractID),
		slog.Int("installments_touched", len(touched)),
		slog.Int64("amount", amount.Units()))
	return &txn, nil
}

// loadPayableContract loads the contract and its schedule and enforces the
// status guard on payment acceptance.
func (s *paymentService) loadPayableContract(ctx context.Context, contractID string) (*domain.Contract, *domain.Schedule, error) {
	contract, err := s.repo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}
	if contract.Status != domain.ContractActive {
		return nil, nil, fmt.Errorf("contract %s is %s and does not accept payments: %w",
			contractID, contract.Status, apperrors.ErrConflict)
	}
	schedule, err := s.repo.FindScheduleByContractID(ctx, contractID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load schedule for contract %s: %w", contractID, err)
	}
	return contract, schedule, nil
}
