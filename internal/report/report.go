// Package report aggregates ledger legs into summaries, category
// breakdowns, monthly trends and budget classifications. Every function is
// pure: the caller supplies the legs (already scoped to the requesting user
// and free of soft-deleted transactions) and gets a freshly computed result.
// Nothing here is cached or persisted.
package report

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/budget"
	"github.com/dsilveira/tally/internal/ledger"
	"github.com/dsilveira/tally/internal/money"
)

var ErrInvalidWindow = errors.New("invalid reporting window")

// Window is an optional inclusive date range. A nil bound means unbounded
// on that side; the zero Window covers all time.
type Window struct {
	From *time.Time
	To   *time.Time
}

func (w Window) Validate() error {
	if w.From != nil && w.To != nil && w.From.After(*w.To) {
		return fmt.Errorf("%w: from %s is after to %s",
			ErrInvalidWindow, w.From.Format(time.DateOnly), w.To.Format(time.DateOnly))
	}

	return nil
}

func (w Window) contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}

	if w.To != nil && t.After(*w.To) {
		return false
	}

	return true
}

// Summary totals a leg collection by direction.
type Summary struct {
	TotalIncome  money.Money
	TotalExpense money.Money
	NetSavings   money.Money
	SavingsRate  float64
}

// Summarize computes income/expense totals, net savings and the savings
// rate over the window. The savings rate is zero when there is no income.
func Summarize(legs []ledger.Leg, window Window) (Summary, error) {
	if err := window.Validate(); err != nil {
		return Summary{}, err
	}

	if err := validateLegs(legs); err != nil {
		return Summary{}, err
	}

	var s Summary

	for _, leg := range legs {
		if !window.contains(leg.Date) {
			continue
		}

		switch leg.Direction {
		case ledger.DirectionIncome:
			s.TotalIncome += leg.Amount
		case ledger.DirectionExpense:
			s.TotalExpense += leg.Amount
		}
	}

	s.NetSavings = s.TotalIncome - s.TotalExpense

	if s.TotalIncome > 0 {
		s.SavingsRate = float64(s.NetSavings) / float64(s.TotalIncome) * 100
	}

	return s, nil
}

// CategoryTotal is one category's summed expense over a window and its
// share of the window's total expense.
type CategoryTotal struct {
	CategoryID uuid.UUID
	Amount     money.Money
	Percent    float64
}

// BreakdownByCategory groups expense legs by category. Results are sorted
// by amount descending, ties broken by category id so the order is stable.
// An empty categoryFilter includes every category.
func BreakdownByCategory(legs []ledger.Leg, window Window, categoryFilter []uuid.UUID) ([]CategoryTotal, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	if err := validateLegs(legs); err != nil {
		return nil, err
	}

	wanted := filterSet(categoryFilter)
	sums := make(map[uuid.UUID]money.Money)

	var total money.Money

	for _, leg := range legs {
		if leg.Direction != ledger.DirectionExpense || !window.contains(leg.Date) {
			continue
		}

		if wanted != nil {
			if _, ok := wanted[leg.CategoryID]; !ok {
				continue
			}
		}

		sums[leg.CategoryID] += leg.Amount
		total += leg.Amount
	}

	out := make([]CategoryTotal, 0, len(sums))

	for id, amount := range sums {
		ct := CategoryTotal{CategoryID: id, Amount: amount}
		if total > 0 {
			ct.Percent = float64(amount) / float64(total) * 100
		}

		out = append(out, ct)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}

		return out[i].CategoryID.String() < out[j].CategoryID.String()
	})

	return out, nil
}

// MonthBucket is one calendar month's expense total with per-category sums
// keyed by the stable category id. Labels and colors are a presentation
// concern and live outside this package.
type MonthBucket struct {
	Year       int
	Month      time.Month
	Total      money.Money
	ByCategory map[uuid.UUID]money.Money
}

// MonthlyTrend buckets expense legs by the calendar month of the leg's
// date. Months with no matching legs are omitted rather than zero-filled;
// buckets come back in chronological order.
func MonthlyTrend(legs []ledger.Leg, window Window, categoryFilter []uuid.UUID) ([]MonthBucket, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	if err := validateLegs(legs); err != nil {
		return nil, err
	}

	wanted := filterSet(categoryFilter)

	type monthKey struct {
		year  int
		month time.Month
	}

	buckets := make(map[monthKey]*MonthBucket)

	for _, leg := range legs {
		if leg.Direction != ledger.DirectionExpense || !window.contains(leg.Date) {
			continue
		}

		if wanted != nil {
			if _, ok := wanted[leg.CategoryID]; !ok {
				continue
			}
		}

		key := monthKey{year: leg.Date.Year(), month: leg.Date.Month()}

		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{
				Year:       key.year,
				Month:      key.month,
				ByCategory: make(map[uuid.UUID]money.Money),
			}
			buckets[key] = b
		}

		b.Total += leg.Amount
		b.ByCategory[leg.CategoryID] += leg.Amount
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}

		return out[i].Month < out[j].Month
	})

	return out, nil
}

// Classification buckets a budget window's usage.
type Classification string

const (
	WithinLimit Classification = "within_limit"
	NearLimit   Classification = "near_limit"
	OverLimit   Classification = "over_limit"
)

// Status is the derived state of one budget window. It is recomputed on
// every read and never stored.
type Status struct {
	BudgetID       uuid.UUID
	CategoryID     uuid.UUID
	Budgeted       money.Money
	Spent          money.Money
	PercentUsed    float64
	Classification Classification
}

// BudgetStatus classifies each budget window against the expense legs
// attributed to it (matching category, date within [StartDate, EndDate)).
// A zero budgeted amount always classifies as within limit; the guard is
// against division by zero, not a statement that the window is overrun.
func BudgetStatus(windows []budget.Window, legs []ledger.Leg) ([]Status, error) {
	if err := validateLegs(legs); err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(windows))

	for _, w := range windows {
		var spent money.Money

		for _, leg := range legs {
			if leg.Direction != ledger.DirectionExpense {
				continue
			}

			if leg.CategoryID != w.CategoryID || !w.Contains(leg.Date) {
				continue
			}

			spent += leg.Amount
		}

		st := Status{
			BudgetID:       w.ID,
			CategoryID:     w.CategoryID,
			Budgeted:       w.Amount,
			Spent:          spent,
			Classification: classify(spent, w.Amount),
		}

		if w.Amount > 0 {
			st.PercentUsed = float64(spent) / float64(w.Amount) * 100
		}

		out = append(out, st)
	}

	return out, nil
}

// classify compares in integer space so the 80% and 100% boundaries are
// exact regardless of the amounts involved.
func classify(spent, budgeted money.Money) Classification {
	if budgeted <= 0 {
		return WithinLimit
	}

	switch {
	case spent > budgeted:
		return OverLimit
	case 5*spent >= 4*budgeted: // spent/budgeted >= 80%
		return NearLimit
	default:
		return WithinLimit
	}
}

func filterSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	if len(ids) == 0 {
		return nil
	}

	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}

func validateLegs(legs []ledger.Leg) error {
	for _, leg := range legs {
		if leg.Amount < 0 {
			return fmt.Errorf("%w: leg %s has negative amount", money.ErrInvalidAmount, leg.ID)
		}
	}

	return nil
}
