package services

import (
	"context"

	"github.com/aqsaty/installment_app/internal/core/domain"
	"github.com/aqsaty/installment_app/internal/dto"
)

// ScheduleReaderSvc defines read operations for installment schedules.
type ScheduleReaderSvc interface {
	// GetSchedule retrieves a contract's installments in ascending month order.
	GetSchedule(ctx context.Context, contractID string) ([]domain.Installment, error)
}

// ScheduleWriterSvc defines write operations for installment schedules.
type ScheduleWriterSvc interface {
	// UpdateSchedule applies a bulk schedule edit. Each change runs
	// redistribution against a working draft in ascending month order; the
	// draft is committed only when the monthly sum exactly matches the
	// contract target. Clamped edits are reported in the results, not as
	// errors.
	UpdateSchedule(ctx context.Context, contractID string, req dto.UpdateScheduleRequest, userID string) ([]domain.Installment, []domain.RedistributionResult, error)
}

// ScheduleSvcFacade combines all schedule-related service interfaces.
type ScheduleSvcFacade interface {
	ScheduleReaderSvc
	ScheduleWriterSvc
}
