package domain

import (
	"fmt"
	"sort"

	"github.com/aqsaty/installment_app/internal/apperrors"
)

// Schedule is the full installment set of one contract, ordered by month
// number. It is the single owner of the installment invariants: amountPaid
// never exceeds amount, and a protected installment's amount never shrinks
// below what was already paid.
//
// A Schedule is a plain in-memory value. Callers that need draft/committed
// separation take a Clone, mutate the clone, and persist it only after
// validation, so draft state never aliases committed state.
type Schedule struct {
	installments []Installment // sorted by MonthNumber ascending
}

// NewSchedule builds a Schedule from a set of installments. Month numbers must
// be unique; the input order does not matter.
func NewSchedule(installments []Installment) (*Schedule, error) {
	s := &Schedule{installments: make([]Installment, len(installments))}
	copy(s.installments, installments)
	sort.Slice(s.installments, func(i, j int) bool {
		return s.installments[i].MonthNumber < s.installments[j].MonthNumber
	})
	for i := 1; i < len(s.installments); i++ {
		if s.installments[i].MonthNumber == s.installments[i-1].MonthNumber {
			return nil, fmt.Errorf("%w: duplicate month number %d", apperrors.ErrValidation, s.installments[i].MonthNumber)
		}
	}
	return s, nil
}

// Get returns the installment for the given month number.
func (s *Schedule) Get(monthNumber int) (Installment, error) {
	for _, inst := range s.installments {
		if inst.MonthNumber == monthNumber {
			return inst, nil
		}
	}
	return Installment{}, fmt.Errorf("installment for month %d: %w", monthNumber, apperrors.ErrNotFound)
}

// ByID returns the installment with the given identifier.
func (s *Schedule) ByID(installmentID string) (Installment, error) {
	for _, inst := range s.installments {
		if inst.InstallmentID == installmentID {
			return inst, nil
		}
	}
	return Installment{}, fmt.Errorf("installment %s: %w", installmentID, apperrors.ErrNotFound)
}

// Installments returns the installments in ascending month order. The returned
// slice is a copy; mutations must go through Replace.
func (s *Schedule) Installments() []Installment {
	out := make([]Installment, len(s.installments))
	copy(out, s.installments)
	return out
}

// Len returns the number of installments in the schedule.
func (s *Schedule) Len() int {
	return len(s.installments)
}

// Replace commits a changed installment back into the schedule after
// validating the paid-amount invariants. The month number identifies the slot;
// it cannot be used to move an installment.
func (s *Schedule) Replace(inst Installment) error {
	if inst.Amount.IsNegative() || inst.AmountPaid.IsNegative() {
		return fmt.Errorf("installment month %d: %w", inst.MonthNumber, apperrors.ErrInvalidAmount)
	}
	if inst.AmountPaid.Cmp(inst.Amount) > 0 {
		return fmt.Errorf("installment month %d: paid %d exceeds amount %d: %w",
			inst.MonthNumber, inst.AmountPaid.Units(), inst.Amount.Units(), apperrors.ErrValidation)
	}
	for i, existing := range s.installments {
		if existing.MonthNumber != inst.MonthNumber {
			continue
		}
		if existing.IsProtected() && inst.Amount.Cmp(existing.AmountPaid) < 0 {
			return fmt.Errorf("installment month %d: %w", inst.MonthNumber, apperrors.ErrProtectedInstallment)
		}
		s.installments[i] = inst
		return nil
	}
	return fmt.Errorf("installment for month %d: %w", inst.MonthNumber, apperrors.ErrNotFound)
}

// Clone returns a deep copy of the schedule, including per-installment
// history, suitable for copy-on-write draft edits.
func (s *Schedule) Clone() *Schedule {
	out := &Schedule{installments: make([]Installment, len(s.installments))}
	for i, inst := range s.installments {
		cp := inst
		if inst.History != nil {
			cp.History = make([]LedgerEntry, len(inst.History))
			copy(cp.History, inst.History)
		}
		out.installments[i] = cp
	}
	return out
}

// TotalPaid sums amountPaid over every installment, down payment included.
func (s *Schedule) TotalPaid() Money {
	var total Money
	for _, inst := range s.installments {
		total = total.Add(inst.AmountPaid)
	}
	return total
}

// MonthlyTotal sums the scheduled amount of every monthly installment
// (month number > 0), excluding the down payment.
func (s *Schedule) MonthlyTotal() Money {
	var total Money
	for _, inst := range s.installments {
		if inst.MonthNumber > 0 {
			total = total.Add(inst.Amount)
		}
	}
	return total
}

// DownPayment returns the scheduled amount of month 0, or zero when the
// schedule has no down payment row.
func (s *Schedule) DownPayment() Money {
	for _, inst := range s.installments {
		if inst.MonthNumber == 0 {
			return inst.Amount
		}
	}
	return 0
}

// EqualSplit divides total into parts near-equal integer shares: every share
// gets the floor of total/parts and the first total%parts shares get one extra
// unit, so the shares sum to total exactly.
func EqualSplit(total Money, parts int) []Money {
	if parts <= 0 {
		return nil
	}
	share := total.Units() / int64(parts)
	extra := total.Units() % int64(parts)
	out := make([]Money, parts)
	for i := range out {
		out[i] = NewMoney(share)
		if int64(i) < extra {
			out[i] = out[i].Add(1)
		}
	}
	return out
}
