// Package money provides the fixed-point monetary type shared by the
// allocator and the reporting engine. Amounts are integer minor units
// (cents, scale 2); floating point never touches a monetary value.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units (cents).
type Money int64

var ErrInvalidAmount = errors.New("invalid amount")

// ParseDecimal parses a decimal string into minor units.
// It accepts plain ("1234.56") and European ("1.234,56") formats.
// Fractional digits beyond the cent are rounded half away from zero.
func ParseDecimal(s string) (Money, error) {
	d, err := decimal.NewFromString(normalizeSeparators(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return Money(d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()), nil
}

// normalizeSeparators rewrites European formatting ("1.234,56") to the
// plain form decimal.NewFromString expects. A string without a comma is
// returned unchanged, so "1234.56" still parses as-is.
func normalizeSeparators(s string) string {
	hasComma := false

	for _, r := range s {
		if r == ',' {
			hasComma = true
			break
		}
	}

	if !hasComma {
		return s
	}

	out := make([]rune, 0, len(s))

	for _, r := range s {
		switch r {
		case '.':
			// thousands separator
		case ',':
			out = append(out, '.')
		default:
			out = append(out, r)
		}
	}

	return string(out)
}

// String formats the amount as a plain decimal, e.g. -1234 -> "-12.34".
func (m Money) String() string {
	sign := ""

	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}

	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	if m < 0 {
		return -m
	}

	return m
}

// Validate rejects negative amounts.
func (m Money) Validate() error {
	if m < 0 {
		return ErrInvalidAmount
	}

	return nil
}

// RoundHalfAwayFromZero returns round(num/den) with ties going away from
// zero. den must be positive; num may be negative.
func RoundHalfAwayFromZero(num, den int64) int64 {
	if num >= 0 {
		return (num + den/2) / den
	}

	return -((-num + den/2) / den)
}
