package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aqsaty/installment_app/internal/apperrors"
	"github.com/aqsaty/installment_app/internal/core/domain"
	portsrepo "github.com/aqsaty/installment_app/internal/core/ports/repositories"
	portssvc "github.com/aqsaty/installment_app/internal/core/ports/services"
	"github.com/aqsaty/installment_app/internal/dto"
	"github.com/aqsaty/installment_app/internal/middleware"
)

var (
	// ErrScheduleUnbalanced rejects a bulk edit whose monthly sum does not
	// exactly equal totalPrice minus the down payment after redistribution.
	ErrScheduleUnbalanced = errors.New("schedule does not sum to the contract target")
)

// scheduleService owns schedule reads and bulk schedule edits.
type scheduleService struct {
	repo  portsrepo.ContractRepositoryFacade
	locks *contractLocks
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(repo portsrepo.ContractRepositoryFacade, locks *contractLocks) portssvc.ScheduleSvcFacade {
	return &scheduleService{repo: repo, locks: locks}
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

// GetSchedule retrieves a contract's installments in ascending month order.
func (s *scheduleService) GetSchedule(ctx context.Context, contractID string) ([]domain.Installment, error) {
	schedule, err := s.repo.FindScheduleByContractID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule for contract %s: %w", contractID, err)
	}
	return schedule.Installments(), nil
}

// UpdateSchedule applies a bulk schedule edit against a copy-on-write draft.
// Changes run redistribution in ascending month order so earlier edits are
// visible to later ones; the draft is committed only when the monthly sum
// converges exactly to the contract target.
func (s *scheduleService) UpdateSchedule(ctx context.Context, contractID string, req dto.UpdateScheduleRequest, userID string) ([]domain.Installment, []domain.RedistributionResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Input validation happens before the lock; validation failures never
	// partially mutate state.
	seen := make(map[string]struct{}, len(req.Changes))
	for _, change := range req.Changes {
		if change.Amount < 0 {
			return nil, nil, fmt.Errorf("installment %s: %w", change.InstallmentID, apperrors.ErrInvalidAmount)
		}
		if _, dup := seen[change.InstallmentID]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate change for installment %s", apperrors.ErrValidation, change.InstallmentID)
		}
		seen[change.InstallmentID] = struct{}{}
	}

	release, err := s.locks.acquire(ctx, contractID)
	if err != nil {
		return nil, nil, err
	}
	defer release()

	contract, err := s.repo.FindContractByID(ctx, contractID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}
	committed, err := s.repo.FindScheduleByContractID(ctx, contractID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load schedule for contract %s: %w", contractID, err)
	}

	// Resolve installment IDs to month numbers, then order changes so the
	// smallest month is applied first.
	type resolvedChange struct {
		month   int
		amount  domain.Money
		dueDate *time.Time
	}
	resolved := make([]resolvedChange, 0, len(req.Changes))
	for _, change := range req.Changes {
		inst, err := committed.ByID(change.InstallmentID)
		if err != nil {
			return nil, nil, err
		}
		resolved = append(resolved, resolvedChange{
			month:   inst.MonthNumber,
			amount:  domain.NewMoney(change.Amount),
			dueDate: change.DueDate,
		})
	}
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].month < resolved[j].month })

	draft := committed.Clone()
	results := make([]domain.RedistributionResult, 0, len(resolved))
	for _, change := range resolved {
		result, err := draft.Redistribute(contract.TotalPrice, change.month, change.amount, change.dueDate)
		if err != nil {
			return nil, nil, err
		}
		if result.Clamped {
			logger.Warn("Schedule edit clamped to allowable range",
				slog.String("contract_id", contractID),
				slog.Int("month_number", result.MonthNumber),
				slog.Int64("requested", result.RequestedAmount.Units()),
				slog.Int64("applied", result.AppliedAmount.Units()))
		}
		results = append(results, result)
	}

	// The draft must converge to a zero difference before anything persists.
	target := contract.TotalPrice.Sub(draft.DownPayment())
	if draft.MonthlyTotal().Cmp(target) != 0 {
		return nil, nil, fmt.Errorf("%w: monthly sum %d, target %d",
			ErrScheduleUnbalanced, draft.MonthlyTotal().Units(), target.Units())
	}

	// Stamp audit fields on the rows the draft actually changed.
	now := time.Now().UTC()
	for _, inst := range draft.Installments() {
		before, err := committed.Get(inst.MonthNumber)
		if err != nil {
			return nil, nil, err
		}
		if before.Amount.Cmp(inst.Amount) == 0 && before.DueDate.Equal(inst.DueDate) {
			continue
		}
		inst.LastUpdatedAt = now
		inst.LastUpdatedBy = userID
		if err := draft.Replace(inst); err != nil {
			return nil, nil, err
		}
	}

	domain.ProjectAggregate(contract, draft)
	contract.LastUpdatedAt = now
	contract.LastUpdatedBy = userID

	if err := s.repo.SaveScheduleMutation(ctx, *contract, draft.Installments(), nil, nil); err != nil {
		logger.Error("Failed to persist schedule edit", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, nil, fmt.Errorf("failed to save schedule for contract %s: %w", contractID, err)
	}

	logger.Info("Schedule updated",
		slog.String("contract_id", contractID),
		slog.Int("changes", len(resolved)))
	return draft.Installments(), results, nil
}
