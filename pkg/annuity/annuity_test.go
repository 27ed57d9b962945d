package annuity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name            string
		amount          decimal.Decimal
		termMonths      int
		rate            decimal.Decimal
		expectedMonthly string
		expectedTotal   string
		expectedOver    string
	}{
		{
			name:            "zero interest splits evenly",
			amount:          decimal.NewFromInt(12000),
			termMonths:      12,
			rate:            decimal.Zero,
			expectedMonthly: "1000",
			expectedTotal:   "12000",
			expectedOver:    "0",
		},
		{
			name:            "standard annuity at 12 percent",
			amount:          decimal.NewFromInt(100000),
			termMonths:      12,
			rate:            decimal.NewFromFloat(12.0),
			expectedMonthly: "8884.88", // monthly rate 0.01
			expectedTotal:   "106618.56",
			expectedOver:    "6618.56",
		},
		{
			name:            "single month term",
			amount:          decimal.NewFromInt(50000),
			termMonths:      1,
			rate:            decimal.NewFromFloat(12.0),
			expectedMonthly: "50500",
			expectedTotal:   "50500",
			expectedOver:    "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := Compute(tt.amount, tt.termMonths, tt.rate)
			require.NoError(t, err)

			assert.True(t, schedule.MonthlyPayment.Equal(decimal.RequireFromString(tt.expectedMonthly)),
				"monthly payment: expected %s, got %s", tt.expectedMonthly, schedule.MonthlyPayment)
			assert.True(t, schedule.TotalPayment.Equal(decimal.RequireFromString(tt.expectedTotal)),
				"total payment: expected %s, got %s", tt.expectedTotal, schedule.TotalPayment)
			assert.True(t, schedule.Overpayment.Equal(decimal.RequireFromString(tt.expectedOver)),
				"overpayment: expected %s, got %s", tt.expectedOver, schedule.Overpayment)
		})
	}
}

func TestCompute_OutputsAreConsistent(t *testing.T) {
	vectors := []struct {
		amount string
		term   int
		rate   string
	}{
		{"250000", 36, "9.5"},
		{"1500000", 60, "18"},
		{"9999.99", 7, "0.1"},
		{"12000", 12, "0"},
	}

	for _, v := range vectors {
		amount := decimal.RequireFromString(v.amount)
		schedule, err := Compute(amount, v.term, decimal.RequireFromString(v.rate))
		require.NoError(t, err)

		product := schedule.MonthlyPayment.Mul(decimal.NewFromInt(int64(v.term))).Round(2)
		assert.True(t, schedule.TotalPayment.Equal(product),
			"total %s should equal monthly*term %s", schedule.TotalPayment, product)
		assert.True(t, schedule.Overpayment.Equal(schedule.TotalPayment.Sub(amount)),
			"overpayment should be total minus principal")
	}
}

func TestCompute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		term   int
		rate   decimal.Decimal
	}{
		{"zero amount", decimal.Zero, 12, decimal.NewFromInt(12)},
		{"negative amount", decimal.NewFromInt(-100), 12, decimal.NewFromInt(12)},
		{"zero term", decimal.NewFromInt(10000), 0, decimal.NewFromInt(12)},
		{"negative term", decimal.NewFromInt(10000), -3, decimal.NewFromInt(12)},
		{"negative rate", decimal.NewFromInt(10000), 12, decimal.NewFromInt(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schedule, err := Compute(tt.amount, tt.term, tt.rate)
			assert.Error(t, err)
			assert.Nil(t, schedule)
		})
	}
}
