package annuity

import (
	"fmt"

	"github.com/shopspring/decimal"

	customError "github.com/segyhp/loan-intake/pkg/errors"
)

var (
	hundred      = decimal.NewFromInt(100)
	monthsInYear = decimal.NewFromInt(12)
)

// Schedule summarizes a fixed-payment amortization schedule.
type Schedule struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	Overpayment    decimal.Decimal `json:"overpayment"`
}

// Compute calculates the monthly payment, total payment and overpayment for a
// fixed-rate loan using the standard annuity formula:
//
//	payment = amount * i * (1+i)^n / ((1+i)^n - 1)
//
// where i is the monthly rate (annualRatePercent / 100 / 12) and n is the term
// in months. A zero rate falls back to an even split of the principal.
// All outputs are rounded to 2 decimal places.
func Compute(amount decimal.Decimal, termMonths int, annualRatePercent decimal.Decimal) (*Schedule, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, customError.WrapInvalidLoanInput(fmt.Sprintf("loan amount must be positive, got %s", amount))
	}
	if termMonths <= 0 {
		return nil, customError.WrapInvalidLoanInput(fmt.Sprintf("loan term must be positive, got %d", termMonths))
	}
	if annualRatePercent.IsNegative() {
		return nil, customError.WrapInvalidLoanInput(fmt.Sprintf("interest rate must not be negative, got %s", annualRatePercent))
	}

	term := decimal.NewFromInt(int64(termMonths))
	monthlyRate := annualRatePercent.Div(hundred).Div(monthsInYear)

	var monthlyPayment decimal.Decimal
	if monthlyRate.IsZero() {
		monthlyPayment = amount.Div(term)
	} else {
		// (1 + i)^n
		growth := decimal.NewFromInt(1).Add(monthlyRate).Pow(term)
		monthlyPayment = amount.Mul(monthlyRate).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1)))
	}

	monthlyPayment = monthlyPayment.Round(2)
	totalPayment := monthlyPayment.Mul(term).Round(2)
	overpayment := totalPayment.Sub(amount).Round(2)

	return &Schedule{
		MonthlyPayment: monthlyPayment,
		TotalPayment:   totalPayment,
		Overpayment:    overpayment,
	}, nil
}
