package domain

import (
	"github.com/shopspring/decimal"
)

// Money is an exact amount of currency expressed as an integer count of the
// smallest currency unit. All arithmetic is integer arithmetic; there is no
// floating point anywhere in the payment path.
type Money int64

// NewMoney builds a Money value from a count of smallest currency units.
func NewMoney(units int64) Money {
	return Money(units)
}

// Units returns the raw count of smallest currency units.
func (m Money) Units() int64 {
	return int64(m)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns m - other. The result may be negative; the caller decides
// whether a negative amount is legal in its context.
func (m Money) Sub(other Money) Money {
	return m - other
}

// Neg returns -m.
func (m Money) Neg() Money {
	return -m
}

// MulFrac scales m by the rational factor num/den with deterministic
// round-half-down: an exact half never rounds up, so scaled amounts never
// overshoot the value they were derived from.
func (m Money) MulFrac(num, den int64) Money {
	if den == 0 {
		panic("domain: MulFrac with zero denominator")
	}
	product := decimal.NewFromInt(int64(m)).Mul(decimal.NewFromInt(num))
	quotient, remainder := product.QuoRem(decimal.NewFromInt(den), 0)

	// Round half down: bump away from zero only when the discarded fraction
	// is strictly greater than one half.
	twice := remainder.Abs().Mul(decimal.NewFromInt(2))
	if twice.GreaterThan(decimal.NewFromInt(den).Abs()) {
		if product.Sign()*decimal.NewFromInt(den).Sign() >= 0 {
			quotient = quotient.Add(decimal.NewFromInt(1))
		} else {
			quotient = quotient.Sub(decimal.NewFromInt(1))
		}
	}
	return Money(quotient.IntPart())
}

// Div divides m evenly by count using floor division.
func (m Money) Div(count int64) Money {
	if count == 0 {
		panic("domain: Div by zero")
	}
	q := int64(m) / count
	// Floor semantics for negative operands.
	if (int64(m)%count != 0) && ((int64(m) < 0) != (count < 0)) {
		q--
	}
	return Money(q)
}

// Min returns the smaller of m and other.
func (m Money) Min(other Money) Money {
	if other < m {
		return other
	}
	return m
}

// Max returns the larger of m and other.
func (m Money) Max(other Money) Money {
	if other > m {
		return other
	}
	return m
}

// ClampZero returns m, or zero when m is negative.
func (m Money) ClampZero() Money {
	if m < 0 {
		return 0
	}
	return m
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m == 0
}

// IsNegative reports whether m is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// IsPositive reports whether m is above zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// Cmp compares m to other: -1 when smaller, 0 when equal, +1 when larger.
func (m Money) Cmp(other Money) int {
	switch {
	case m < other:
		return -1
	case m > other:
		return 1
	default:
		return 0
	}
}

// Decimal returns the amount as a decimal count of smallest units, for
// formatting and reporting.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m))
}

// Format renders m as a major-unit string with the given precision, e.g.
// 1250 with precision 2 -> "12.50".
func (m Money) Format(precision int) string {
	return m.Decimal().Shift(int32(-precision)).StringFixed(int32(precision))
}
