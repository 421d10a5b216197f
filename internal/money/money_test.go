package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsilveira/tally/internal/money"
)

func TestParseDecimal(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    money.Money
		wantErr bool
	}

	tests := []testCase{
		{name: "Plain", input: "1234.56", want: 123456},
		{name: "NoFraction", input: "42", want: 4200},
		{name: "SingleFractionDigit", input: "7.5", want: 750},
		{name: "European", input: "1.234,56", want: 123456},
		{name: "EuropeanNoThousands", input: "12,34", want: 1234},
		{name: "Negative", input: "-0.01", want: -1},
		{name: "RoundsHalfUp", input: "0.005", want: 1},
		{name: "RoundsHalfAwayFromZeroNegative", input: "-0.005", want: -1},
		{name: "TruncatesSubCentBelow", input: "1.004", want: 100},
		{name: "Zero", input: "0", want: 0},
		{name: "Empty", input: "", wantErr: true},
		{name: "Garbage", input: "abc", wantErr: true},
		{name: "TwoDecimalPoints", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseDecimal(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, money.ErrInvalidAmount)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "12.34", money.Money(1234).String())
	assert.Equal(t, "-12.34", money.Money(-1234).String())
	assert.Equal(t, "0.05", money.Money(5).String())
	assert.Equal(t, "0.00", money.Money(0).String())
	assert.Equal(t, "100.00", money.Money(10000).String())
}

func TestMoney_Validate(t *testing.T) {
	assert.NoError(t, money.Money(0).Validate())
	assert.NoError(t, money.Money(1).Validate())
	assert.ErrorIs(t, money.Money(-1).Validate(), money.ErrInvalidAmount)
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	type testCase struct {
		num, den, want int64
	}

	tests := []testCase{
		{num: 10, den: 4, want: 3},   // 2.5 rounds up
		{num: -10, den: 4, want: -3}, // -2.5 rounds away from zero
		{num: 9, den: 4, want: 2},    // 2.25 rounds down
		{num: 11, den: 4, want: 3},   // 2.75 rounds up
		{num: 0, den: 7, want: 0},
		{num: 6000, den: 10000, want: 1}, // 0.6 rounds up
		{num: 4999, den: 10000, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, money.RoundHalfAwayFromZero(tt.num, tt.den),
			"round(%d/%d)", tt.num, tt.den)
	}
}
