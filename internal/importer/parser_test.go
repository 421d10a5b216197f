package importer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsilveira/tally/internal/importer"
	"github.com/dsilveira/tally/internal/ledger"
	"github.com/dsilveira/tally/internal/money"
	"github.com/dsilveira/tally/internal/split"
)

var payer = uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000001")

func TestParse_Statement(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2025-05-02,Grocery Store,-42.50",
		"2025-05-03,Salary,2500.00",
		"",
	}, "\n")

	drafts, err := importer.NewParser().Parse(strings.NewReader(input), payer)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	groceries := drafts[0]
	assert.Equal(t, money.Money(4250), groceries.Total)
	assert.Equal(t, ledger.DirectionExpense, groceries.Direction)
	assert.Equal(t, "Grocery Store", groceries.Description)
	assert.Equal(t, payer, groceries.Payer)
	assert.Equal(t, split.PolicyEqual, groceries.Policy)
	assert.Empty(t, groceries.Participants)
	assert.Equal(t, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), groceries.Date)

	salary := drafts[1]
	assert.Equal(t, money.Money(250000), salary.Total)
	assert.Equal(t, ledger.DirectionIncome, salary.Direction)
}

func TestParse_CardDebitCredit(t *testing.T) {
	input := strings.Join([]string{
		"Date;Description;Debit;Credit",
		"02/05/2025;Restaurant;18,90;",
		"05/05/2025;Refund;;7,00",
	}, "\n")

	drafts, err := importer.NewParser().Parse(strings.NewReader(input), payer)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, money.Money(1890), drafts[0].Total)
	assert.Equal(t, ledger.DirectionExpense, drafts[0].Direction)

	assert.Equal(t, money.Money(700), drafts[1].Total)
	assert.Equal(t, ledger.DirectionIncome, drafts[1].Direction)
}

func TestParse_EuropeanStatement(t *testing.T) {
	input := strings.Join([]string{
		"Conta: 0000 1111 2222;;",
		"Data mov.;Descrição;Montante",
		"02-05-2025;Café;-1.234,56",
		"Saldo;;",
	}, "\n")

	drafts, err := importer.NewParser().Parse(strings.NewReader(input), payer)
	require.NoError(t, err)
	require.Len(t, drafts, 1)

	assert.Equal(t, money.Money(123456), drafts[0].Total)
	assert.Equal(t, ledger.DirectionExpense, drafts[0].Direction)
	assert.Equal(t, "Café", drafts[0].Description)
}

func TestParse_SkipsHeaderPreambleAndFooter(t *testing.T) {
	input := strings.Join([]string{
		"Exported 2025-06-01,,",
		"Account 12345,,",
		"Date,Description,Amount",
		"2025-05-02,Coffee,-3.00",
		"Total,,-3.00",
	}, "\n")

	drafts, err := importer.NewParser().Parse(strings.NewReader(input), payer)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Coffee", drafts[0].Description)
}

func TestParse_SkipsZeroAmountRows(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2025-05-02,Pending hold,0.00",
		"2025-05-03,Coffee,-3.00",
	}, "\n")

	drafts, err := importer.NewParser().Parse(strings.NewReader(input), payer)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Coffee", drafts[0].Description)
}

func TestParse_MissingDescription(t *testing.T) {
	input := strings.Join([]string{
		"Date,Description,Amount",
		"2025-05-02,,-3.00",
	}, "\n")

	_, err := importer.NewParser().Parse(strings.NewReader(input), payer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing description")
}

func TestParse_UnknownLayout(t *testing.T) {
	input := "Foo,Bar\n1,2\n"

	_, err := importer.NewParser().Parse(strings.NewReader(input), payer)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no known statement layout")
}

func TestParse_Windows1252Input(t *testing.T) {
	// "Café" with é as Windows-1252 0xE9 inside a European layout.
	raw := []byte("Data mov.;Descri\xE7\xE3o;Montante\n02-05-2025;Caf\xE9;-3,00\n")

	drafts, err := importer.NewParser().Parse(strings.NewReader(string(raw)), payer)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "Café", drafts[0].Description)
}
