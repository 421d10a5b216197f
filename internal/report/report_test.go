package report_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsilveira/tally/internal/budget"
	"github.com/dsilveira/tally/internal/ledger"
	"github.com/dsilveira/tally/internal/money"
	"github.com/dsilveira/tally/internal/report"
)

var (
	catFood   = uuid.MustParse("cccccccc-0000-0000-0000-000000000001")
	catRent   = uuid.MustParse("cccccccc-0000-0000-0000-000000000002")
	catTravel = uuid.MustParse("cccccccc-0000-0000-0000-000000000003")
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func expense(amount int64, cat uuid.UUID, date time.Time) ledger.Leg {
	return ledger.Leg{
		ID:          uuid.New(),
		Participant: uuid.New(),
		Amount:      money.Money(amount),
		Direction:   ledger.DirectionExpense,
		CategoryID:  cat,
		Date:        date,
	}
}

func income(amount int64, date time.Time) ledger.Leg {
	leg := expense(amount, catFood, date)
	leg.Direction = ledger.DirectionIncome

	return leg
}

func TestSummarize(t *testing.T) {
	legs := []ledger.Leg{
		income(500000, day(2025, 1, 5)),
		expense(120000, catRent, day(2025, 1, 6)),
		expense(30000, catFood, day(2025, 1, 20)),
	}

	s, err := report.Summarize(legs, report.Window{})
	require.NoError(t, err)

	assert.Equal(t, money.Money(500000), s.TotalIncome)
	assert.Equal(t, money.Money(150000), s.TotalExpense)
	assert.Equal(t, money.Money(350000), s.NetSavings)
	assert.InDelta(t, 70.0, s.SavingsRate, 0.0001)
}

func TestSummarize_EmptyLegs(t *testing.T) {
	s, err := report.Summarize(nil, report.Window{})
	require.NoError(t, err)
	assert.Equal(t, report.Summary{}, s)
}

func TestSummarize_NoIncome(t *testing.T) {
	legs := []ledger.Leg{expense(100, catFood, day(2025, 1, 1))}

	s, err := report.Summarize(legs, report.Window{})
	require.NoError(t, err)
	// Savings rate is guarded, not -Inf.
	assert.Equal(t, float64(0), s.SavingsRate)
	assert.Equal(t, money.Money(-100), s.NetSavings)
}

func TestSummarize_WindowBounds(t *testing.T) {
	legs := []ledger.Leg{
		expense(100, catFood, day(2025, 1, 31)),
		expense(200, catFood, day(2025, 2, 1)),
		expense(400, catFood, day(2025, 2, 28)),
		expense(800, catFood, day(2025, 3, 1)),
	}

	from := day(2025, 2, 1)
	to := day(2025, 2, 28)

	s, err := report.Summarize(legs, report.Window{From: &from, To: &to})
	require.NoError(t, err)
	// Both window bounds are inclusive.
	assert.Equal(t, money.Money(600), s.TotalExpense)
}

func TestSummarize_InvalidWindow(t *testing.T) {
	from := day(2025, 3, 1)
	to := day(2025, 1, 1)

	_, err := report.Summarize(nil, report.Window{From: &from, To: &to})
	assert.ErrorIs(t, err, report.ErrInvalidWindow)
}

func TestSummarize_NegativeLeg(t *testing.T) {
	legs := []ledger.Leg{expense(-1, catFood, day(2025, 1, 1))}

	_, err := report.Summarize(legs, report.Window{})
	assert.ErrorIs(t, err, money.ErrInvalidAmount)
}

func TestBreakdownByCategory(t *testing.T) {
	legs := []ledger.Leg{
		expense(7500, catFood, day(2025, 1, 2)),
		expense(2500, catTravel, day(2025, 1, 3)),
		income(99999, day(2025, 1, 4)), // income never shows up in the breakdown
	}

	got, err := report.BreakdownByCategory(legs, report.Window{}, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, catFood, got[0].CategoryID)
	assert.Equal(t, money.Money(7500), got[0].Amount)
	assert.InDelta(t, 75.0, got[0].Percent, 0.0001)

	assert.Equal(t, catTravel, got[1].CategoryID)
	assert.InDelta(t, 25.0, got[1].Percent, 0.0001)
}

func TestBreakdownByCategory_PercentagesCloseTo100(t *testing.T) {
	legs := []ledger.Leg{
		expense(3333, catFood, day(2025, 1, 1)),
		expense(3333, catRent, day(2025, 1, 1)),
		expense(3334, catTravel, day(2025, 1, 1)),
	}

	got, err := report.BreakdownByCategory(legs, report.Window{}, nil)
	require.NoError(t, err)

	var sum float64
	for _, ct := range got {
		sum += ct.Percent
	}

	assert.InDelta(t, 100.0, sum, 0.1)
}

func TestBreakdownByCategory_TieBrokenByCategoryID(t *testing.T) {
	legs := []ledger.Leg{
		expense(1000, catRent, day(2025, 1, 1)),
		expense(1000, catFood, day(2025, 1, 1)),
	}

	got, err := report.BreakdownByCategory(legs, report.Window{}, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Equal amounts: the lower category id comes first.
	assert.Equal(t, catFood, got[0].CategoryID)
	assert.Equal(t, catRent, got[1].CategoryID)
}

func TestBreakdownByCategory_Filter(t *testing.T) {
	legs := []ledger.Leg{
		expense(1000, catFood, day(2025, 1, 1)),
		expense(9000, catRent, day(2025, 1, 1)),
	}

	got, err := report.BreakdownByCategory(legs, report.Window{}, []uuid.UUID{catFood})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, catFood, got[0].CategoryID)
	// The percentage base is the filtered expense total.
	assert.InDelta(t, 100.0, got[0].Percent, 0.0001)
}

func TestBreakdownByCategory_Empty(t *testing.T) {
	got, err := report.BreakdownByCategory(nil, report.Window{}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMonthlyTrend(t *testing.T) {
	legs := []ledger.Leg{
		expense(1000, catFood, day(2025, 1, 10)),
		expense(500, catRent, day(2025, 1, 25)),
		expense(2000, catFood, day(2025, 3, 2)),
	}

	got, err := report.MonthlyTrend(legs, report.Window{}, nil)
	require.NoError(t, err)
	require.Len(t, got, 2) // February has no legs and is omitted

	assert.Equal(t, 2025, got[0].Year)
	assert.Equal(t, time.January, got[0].Month)
	assert.Equal(t, money.Money(1500), got[0].Total)
	assert.Equal(t, money.Money(1000), got[0].ByCategory[catFood])
	assert.Equal(t, money.Money(500), got[0].ByCategory[catRent])

	assert.Equal(t, time.March, got[1].Month)
	assert.Equal(t, money.Money(2000), got[1].Total)
}

func TestMonthlyTrend_UsesLegDate(t *testing.T) {
	// A December expense recorded in January still lands in December.
	legs := []ledger.Leg{expense(100, catFood, day(2024, 12, 31))}

	got, err := report.MonthlyTrend(legs, report.Window{}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2024, got[0].Year)
	assert.Equal(t, time.December, got[0].Month)
}

func TestMonthlyTrend_CategoryFilter(t *testing.T) {
	legs := []ledger.Leg{
		expense(100, catFood, day(2025, 1, 1)),
		expense(900, catRent, day(2025, 1, 1)),
	}

	got, err := report.MonthlyTrend(legs, report.Window{}, []uuid.UUID{catRent})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, money.Money(900), got[0].Total)
	assert.NotContains(t, got[0].ByCategory, catFood)
}

func budgetWindow(id int, cat uuid.UUID, amount int64, start, end time.Time) budget.Window {
	w := budget.Window{
		ID:         uuid.New(),
		CategoryID: cat,
		Amount:     money.Money(amount),
		StartDate:  start,
		EndDate:    end,
	}
	w.ID[0] = byte(id)

	return w
}

func TestBudgetStatus(t *testing.T) {
	start := day(2025, 5, 1)
	end := day(2025, 6, 1)

	type testCase struct {
		name     string
		budgeted int64
		spent    int64
		wantPct  float64
		want     report.Classification
	}

	tests := []testCase{
		{name: "WellUnder", budgeted: 20000, spent: 5000, wantPct: 25, want: report.WithinLimit},
		{name: "JustUnderNear", budgeted: 20000, spent: 15999, wantPct: 79.995, want: report.WithinLimit},
		{name: "ExactlyEighty", budgeted: 20000, spent: 16000, wantPct: 80, want: report.NearLimit},
		{name: "NearLimit", budgeted: 20000, spent: 19000, wantPct: 95, want: report.NearLimit},
		{name: "ExactlyFull", budgeted: 20000, spent: 20000, wantPct: 100, want: report.NearLimit},
		{name: "Over", budgeted: 20000, spent: 20001, wantPct: 100.005, want: report.OverLimit},
		{name: "ZeroBudgetGuarded", budgeted: 0, spent: 5000, wantPct: 0, want: report.WithinLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			windows := []budget.Window{budgetWindow(1, catFood, tt.budgeted, start, end)}
			legs := []ledger.Leg{expense(tt.spent, catFood, day(2025, 5, 15))}

			got, err := report.BudgetStatus(windows, legs)
			require.NoError(t, err)
			require.Len(t, got, 1)

			assert.Equal(t, money.Money(tt.budgeted), got[0].Budgeted)
			assert.Equal(t, money.Money(tt.spent), got[0].Spent)
			assert.InDelta(t, tt.wantPct, got[0].PercentUsed, 0.0001)
			assert.Equal(t, tt.want, got[0].Classification)
		})
	}
}

func TestBudgetStatus_WindowAttribution(t *testing.T) {
	may := budgetWindow(1, catFood, 10000, day(2025, 5, 1), day(2025, 6, 1))
	june := budgetWindow(2, catFood, 10000, day(2025, 6, 1), day(2025, 7, 1))

	legs := []ledger.Leg{
		expense(3000, catFood, day(2025, 5, 31)),
		expense(4000, catFood, day(2025, 6, 1)), // end date is exclusive: June's
		expense(5000, catRent, day(2025, 5, 10)), // other category
	}

	got, err := report.BudgetStatus([]budget.Window{may, june}, legs)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, money.Money(3000), got[0].Spent)
	assert.Equal(t, money.Money(4000), got[1].Spent)
}

func TestBudgetStatus_Empty(t *testing.T) {
	got, err := report.BudgetStatus(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	windows := []budget.Window{budgetWindow(1, catFood, 10000, day(2025, 5, 1), day(2025, 6, 1))}

	got, err = report.BudgetStatus(windows, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, money.Money(0), got[0].Spent)
	assert.Equal(t, report.WithinLimit, got[0].Classification)
}
