// Package budget manages per-category spending limits. A window is a
// budgeted amount for one category over a half-open [StartDate, EndDate)
// interval; how much of it is used is always recomputed at read time by the
// reporting engine, never stored.
package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/money"
)

var (
	ErrNotFound      = errors.New("budget window not found")
	ErrInvalidWindow = errors.New("invalid budget window")
)

// Window is a user-defined spending limit.
type Window struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Amount     money.Money
	StartDate  time.Time
	EndDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Contains reports whether a leg dated t is attributed to this window.
// The end date is exclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.StartDate) && t.Before(w.EndDate)
}

// Validate checks the interval and the budgeted amount. A zero amount is
// allowed; it classifies as within limit no matter the spend.
func (w Window) Validate() error {
	if w.Amount < 0 {
		return money.ErrInvalidAmount
	}

	if w.StartDate.IsZero() || w.EndDate.IsZero() {
		return ErrInvalidWindow
	}

	if !w.StartDate.Before(w.EndDate) {
		return ErrInvalidWindow
	}

	return nil
}
