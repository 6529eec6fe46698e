package dto

import (
	"time"

	"github.com/aqsaty/installment_app/internal/core/domain"
)

// ScheduleChange is one edit within a bulk schedule update. Changes are
// applied in ascending month order regardless of their order in the request.
type ScheduleChange struct {
	InstallmentID string     `json:"installmentID" binding:"required"`
	Amount        int64      `json:"amount" binding:"money"`
	DueDate       *time.Time `json:"dueDate"`
}

// UpdateScheduleRequest defines the payload for a bulk schedule edit.
type UpdateScheduleRequest struct {
	Changes []ScheduleChange `json:"changes" binding:"required,min=1,dive"`
}

// LedgerEntryResponse is one history record on an installment.
type LedgerEntryResponse struct {
	Delta int64     `json:"delta"`
	At    time.Time `json:"at"`
	Note  string    `json:"note"`
}

// InstallmentResponse defines the data returned for one installment.
type InstallmentResponse struct {
	InstallmentID string                `json:"installmentID"`
	ContractID    string                `json:"contractID"`
	MonthNumber   int                   `json:"monthNumber"`
	Amount        int64                 `json:"amount"`
	AmountPaid    int64                 `json:"amountPaid"`
	Remaining     int64                 `json:"remaining"`
	DueDate       time.Time             `json:"dueDate"`
	Protected     bool                  `json:"protected"`
	History       []LedgerEntryResponse `json:"history,omitempty"`
}

// RedistributionWarning reports a schedule edit that was clamped to the
// allowable range instead of being applied verbatim.
type RedistributionWarning struct {
	MonthNumber     int   `json:"monthNumber"`
	RequestedAmount int64 `json:"requestedAmount"`
	AppliedAmount   int64 `json:"appliedAmount"`
}

// UpdateScheduleResponse returns the committed schedule plus any clamp
// warnings produced while applying the changes.
type UpdateScheduleResponse struct {
	Installments []InstallmentResponse   `json:"installments"`
	Warnings     []RedistributionWarning `json:"warnings,omitempty"`
}

// ToInstallmentResponse converts a domain.Installment to its response DTO.
func ToInstallmentResponse(inst *domain.Installment) InstallmentResponse {
	resp := InstallmentResponse{
		InstallmentID: inst.InstallmentID,
		ContractID:    inst.ContractID,
		MonthNumber:   inst.MonthNumber,
		Amount:        inst.Amount.Units(),
		AmountPaid:    inst.AmountPaid.Units(),
		Remaining:     inst.Remaining().Units(),
		DueDate:       inst.DueDate,
		Protected:     inst.IsProtected(),
	}
	for _, entry := range inst.History {
		resp.History = append(resp.History, LedgerEntryResponse{
			Delta: entry.Delta.Units(),
			At:    entry.At,
			Note:  entry.Note,
		})
	}
	return resp
}

// ToInstallmentResponses converts a slice of installments to response DTOs.
func ToInstallmentResponses(installments []domain.Installment) []InstallmentResponse {
	responses := make([]InstallmentResponse, len(installments))
	for i := range installments {
		responses[i] = ToInstallmentResponse(&installments[i])
	}
	return responses
}

// ToRedistributionWarnings converts clamped redistribution results to warning DTOs.
func ToRedistributionWarnings(results []domain.RedistributionResult) []RedistributionWarning {
	var warnings []RedistributionWarning
	for _, r := range results {
		if !r.Clamped {
			continue
		}
		warnings = append(warnings, RedistributionWarning{
			MonthNumber:     r.MonthNumber,
			RequestedAmount: r.RequestedAmount.Units(),
			AppliedAmount:   r.AppliedAmount.Units(),
		})
	}
	return warnings
}
