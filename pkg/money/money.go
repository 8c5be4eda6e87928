// Package money provides the fixed-precision currency type used across the
// billing domain. Amounts are backed by shopspring/decimal: intermediate
// arithmetic (quantity × rate, percentage application) carries full precision
// and is only rounded where a caller explicitly asks for it (RoundToWhole on
// an invoice grand total). Raw floats never enter the domain.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount marks a monetary input that is negative where the field
// requires a non-negative value, or that could not be parsed as a number.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// Money is an exact decimal currency amount. The zero value is ₹0.
type Money struct {
	d decimal.Decimal
}

// Zero returns ₹0.
func Zero() Money { return Money{} }

// New wraps a decimal as Money.
func New(d decimal.Decimal) Money { return Money{d: d} }

// FromInt builds Money from whole currency units.
func FromInt(n int64) Money { return Money{d: decimal.NewFromInt(n)} }

// FromString parses a decimal string ("2950.00"). Returns ErrInvalidAmount
// on anything that is not a finite number.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return Money{d: d}, nil
}

// MustParse is FromString for constants in tests and seeds; panics on error.
func MustParse(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal exposes the underlying decimal for persistence and formatting.
func (m Money) Decimal() decimal.Decimal { return m.d }

// Add returns m + n.
func (m Money) Add(n Money) Money { return Money{d: m.d.Add(n.d)} }

// Sub returns m − n.
func (m Money) Sub(n Money) Money { return Money{d: m.d.Sub(n.d)} }

// Neg returns −m.
func (m Money) Neg() Money { return Money{d: m.d.Neg()} }

// Abs returns |m|.
func (m Money) Abs() Money { return Money{d: m.d.Abs()} }

// Mul multiplies the amount by a decimal quantity, keeping full precision.
func (m Money) Mul(qty decimal.Decimal) Money { return Money{d: m.d.Mul(qty)} }

// PercentOf returns m × rate⁄100, unrounded. Used for GST amounts.
func (m Money) PercentOf(rate decimal.Decimal) Money {
	return Money{d: m.d.Mul(rate).Div(decimal.NewFromInt(100))}
}

// RoundToWhole rounds half away from zero to the nearest currency unit.
// This is the single rounding point of an invoice: the grand total.
func (m Money) RoundToWhole() Money { return Money{d: m.d.Round(0)} }

// Cmp returns -1, 0 or 1 comparing m against n.
func (m Money) Cmp(n Money) int { return m.d.Cmp(n.d) }

// Equal reports exact equality of the amounts.
func (m Money) Equal(n Money) bool { return m.d.Equal(n.d) }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.d.IsZero() }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.d.IsNegative() }

// IsPositive reports whether the amount is above zero.
func (m Money) IsPositive() bool { return m.d.IsPositive() }

// String renders the amount with two decimal places, no grouping.
func (m Money) String() string { return m.d.StringFixed(2) }

// MarshalJSON delegates to the decimal representation.
func (m Money) MarshalJSON() ([]byte, error) { return m.d.MarshalJSON() }

// UnmarshalJSON accepts both quoted and bare decimal literals.
func (m *Money) UnmarshalJSON(b []byte) error {
	if err := m.d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, b)
	}
	return nil
}

// RequireNonNegative validates fields like rate, discount or paid amount.
func RequireNonNegative(field string, m Money) error {
	if m.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative, got %s", ErrInvalidAmount, field, m)
	}
	return nil
}

// RequirePositive validates fields like a payment amount.
func RequirePositive(field string, m Money) error {
	if !m.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero, got %s", ErrInvalidAmount, field, m)
	}
	return nil
}
