package domain

import (
	"fmt"
	"time"

	"github.com/aqsaty/installment_app/internal/apperrors"
)

// RedistributionResult reports what Redistribute actually applied. A clamped
// edit is not an error: the schedule stays consistent, and the caller can
// surface the adjustment as a warning.
type RedistributionResult struct {
	MonthNumber     int   `json:"monthNumber"`
	RequestedAmount Money `json:"requestedAmount"`
	AppliedAmount   Money `json:"appliedAmount"`
	Clamped         bool  `json:"clamped"`
}

// Redistribute edits the scheduled amount (and optionally the due date) of one
// unpaid installment, then recomputes every later unpaid installment so the
// whole schedule still sums to the contract's total price.
//
// Installments before the edited month and later installments with recorded
// payments are frozen; the remainder after subtracting all frozen amounts and
// the edited amount is divided evenly across the later unpaid installments,
// with the division remainder absorbed by the last of them so the sum is exact
// to the unit. The function is a pure transformation of schedule state plus
// one edited value: applying the same edit twice gives the same schedule as
// applying it once.
func (s *Schedule) Redistribute(totalPrice Money, monthNumber int, newAmount Money, dueDate *time.Time) (RedistributionResult, error) {
	edited, err := s.Get(monthNumber)
	if err != nil {
		return RedistributionResult{}, err
	}
	if edited.IsProtected() {
		return RedistributionResult{}, fmt.Errorf("installment month %d has recorded payments: %w",
			monthNumber, apperrors.ErrProtectedInstallment)
	}

	result := RedistributionResult{MonthNumber: monthNumber, RequestedAmount: newAmount}

	// Frozen prefix: everything scheduled before the edited month.
	var sumBefore Money
	for _, inst := range s.installments {
		if inst.MonthNumber < monthNumber {
			sumBefore = sumBefore.Add(inst.Amount)
		}
	}

	maxAllowed := totalPrice.Sub(sumBefore).ClampZero()
	applied := newAmount.ClampZero().Min(maxAllowed)
	result.AppliedAmount = applied
	result.Clamped = applied.Cmp(newAmount) != 0

	edited.Amount = applied
	if dueDate != nil {
		edited.DueDate = *dueDate
	}
	if err := s.Replace(edited); err != nil {
		return RedistributionResult{}, err
	}

	// Later installments with payments keep their amounts; only unpaid ones
	// absorb the difference.
	var paidSubsequentSum Money
	var unpaidSubsequent []Installment
	for _, inst := range s.installments {
		if inst.MonthNumber <= monthNumber {
			continue
		}
		if inst.IsProtected() {
			paidSubsequentSum = paidSubsequentSum.Add(inst.Amount)
		} else {
			unpaidSubsequent = append(unpaidSubsequent, inst)
		}
	}

	if len(unpaidSubsequent) == 0 {
		return result, nil
	}

	remaining := totalPrice.Sub(sumBefore).Sub(applied).Sub(paidSubsequentSum).ClampZero()

	count := int64(len(unpaidSubsequent))
	share := remaining.Div(count)
	for i, inst := range unpaidSubsequent {
		if i == len(unpaidSubsequent)-1 {
			// The last unpaid installment absorbs all rounding remainder.
			inst.Amount = remaining.Sub(NewMoney(share.Units() * (count - 1)))
		} else {
			inst.Amount = share
		}
		if err := s.Replace(inst); err != nil {
			return RedistributionResult{}, err
		}
	}

	return result, nil
}
