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
	"github.com/aqsaty/installment_app/internal/dto"
	"github.com/aqsaty/installment_app/internal/middleware"
)

// contractService creates contracts with their initial schedules and serves
// contract-level reads.
type contractService struct {
	repo portsrepo.ContractRepositoryFacade
}

// NewContractService creates a new ContractService.
func NewContractService(repo portsrepo.ContractRepositoryFacade) portssvc.ContractSvcFacade {
	return &contractService{repo: repo}
}

var _ portssvc.ContractSvcFacade = (*contractService)(nil)

// CreateContract builds a contract and its installment set: month 0 carries
// the down payment, the rest of the price is split near-equally across N
// monthly installments with earlier months absorbing the extra units.
func (s *contractService) CreateContract(ctx context.Context, req dto.CreateContractRequest, creatorUserID string) (*domain.Contract, []domain.Installment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	totalPrice := domain.NewMoney(req.TotalPrice)
	downPayment := domain.NewMoney(req.DownPayment)
	if downPayment.Cmp(totalPrice) > 0 {
		return nil, nil, fmt.Errorf("%w: down payment %d exceeds total price %d",
			apperrors.ErrValidation, downPayment.Units(), totalPrice.Units())
	}

	now := time.Now().UTC()
	contractID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	installments := make([]domain.Installment, 0, req.Months+1)
	installments = append(installments, domain.Installment{
		InstallmentID: uuid.NewString(),
		ContractID:    contractID,
		MonthNumber:   0,
		Amount:        downPayment,
		DueDate:       now,
		AuditFields:   audit,
	})
	shares := domain.EqualSplit(totalPrice.Sub(downPayment), req.Months)
	for i, share := range shares {
		installments = append(installments, domain.Installment{
			InstallmentID: uuid.NewString(),
			ContractID:    contractID,
			MonthNumber:   i + 1,
			Amount:        share,
			DueDate:       req.FirstDueDate.AddDate(0, i, 0),
			AuditFields:   audit,
		})
	}

	contract := domain.Contract{
		ContractID:  contractID,
		ClientID:    req.ClientID,
		HomeID:      req.HomeID,
		TotalPrice:  totalPrice,
		PaymentDay:  req.PaymentDay,
		Status:      domain.ContractActive,
		AuditFields: audit,
	}

	schedule, err := domain.NewSchedule(installments)
	if err != nil {
		return nil, nil, err
	}
	domain.ProjectAggregate(&contract, schedule)

	if err := s.repo.SaveContract(ctx, contract, installments); err != nil {
		logger.Error("Failed to persist contract", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, nil, fmt.Errorf("failed to save contract: %w", err)
	}

	logger.Info("Contract created",
		slog.String("contract_id", contractID),
		slog.Int64("total_price", totalPrice.Units()),
		slog.Int("months", req.Months))
	return &contract, installments, nil
}

// GetContract retrieves a contract by ID.
func (s *contractService) GetContract(ctx context.Context, contractID string) (*domain.Contract, error) {
	contract, err := s.repo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}
	return contract, nil
}

// ListTransactions retrieves a contract's payment transactions, newest first.
func (s *contractService) ListTransactions(ctx context.Context, contractID string) ([]domain.Transaction, error) {
	if _, err := s.repo.FindContractByID(ctx, contractID); err != nil {
		return nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}
	txns, err := s.repo.ListTransactionsByContractID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for contract %s: %w", contractID, err)
	}
	return txns, nil
}
