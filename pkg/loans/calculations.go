// Package loans provides the fixed-rate amortization formulas.
package loans

import (
	"math"

	"github.com/iwvelando/mortgage-calc/pkg/finance"
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
	"github.com/iwvelando/mortgage-calc/pkg/validation"
)

// Loan holds the parameters of a fixed-rate, fully amortizing loan.
type Loan struct {
	Principal          float64 `json:"principal" yaml:"principal"`
	AnnualInterestRate float64 `json:"annualInterestRate" yaml:"annualInterestRate"` // decimal, 0.06 for 6%
	Years              int     `json:"years" yaml:"years"`
}

// Summary holds the point-in-time totals for a loan.
type Summary struct {
	Loan           Loan    `json:"loan" yaml:"loan"`
	Months         int     `json:"months" yaml:"months"`
	MonthlyPayment float64 `json:"monthlyPayment" yaml:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment" yaml:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest" yaml:"totalInterest"`
}

// Validate checks the loan attributes before calculation.
func (l Loan) Validate() error {
	if err := validation.Positive(l.Principal, "loan principal must be greater than zero"); err != nil {
		return err
	}
	return validateTerms(l.AnnualInterestRate, l.Years)
}

func validateTerms(annualInterestRate float64, years int) error {
	if err := validation.NonNegative(annualInterestRate, "interest rate cannot be negative"); err != nil {
		return err
	}
	return validation.PositiveInt(years, "loan term must be greater than zero")
}

// monthlyTerms returns the periodic rate and number of payments.
func monthlyTerms(annualInterestRate float64, years int) (float64, int, error) {
	rate, err := finance.MonthlyRate(annualInterestRate)
	if err != nil {
		return 0, 0, err
	}
	months, err := finance.MonthsFromYears(years)
	if err != nil {
		return 0, 0, err
	}
	return rate, months, nil
}

// AnnuityFactor returns r(1+r)^n / ((1+r)^n - 1), the multiplier converting
// principal to payment for periodic rate r over n payments. A rate so small
// that (1+r)^n rounds to 1 yields ErrDivisionByZero.
func AnnuityFactor(rate float64, months int) (float64, error) {
	power := math.Pow(1+rate, float64(months))
	return mathutil.Divide(mathutil.Multiply(rate, power), power-1)
}

// MonthlyPayment calculates the fixed monthly payment for a loan using the
// standard amortization formula, rounded to cents.
func MonthlyPayment(loan Loan) (float64, error) {
	if err := loan.Validate(); err != nil {
		return 0, err
	}

	rate, months, err := monthlyTerms(loan.AnnualInterestRate, loan.Years)
	if err != nil {
		return 0, err
	}

	var payment float64
	if rate == 0 {
		payment, err = mathutil.Divide(loan.Principal, float64(months))
		if err != nil {
			return 0, err
		}
	} else {
		factor, err := AnnuityFactor(rate, months)
		if err != nil {
			return 0, err
		}
		payment = mathutil.Multiply(loan.Principal, factor)
	}

	return finite(payment)
}

// LoanAmount calculates the principal implied by a monthly payment. It is the
// inverse of MonthlyPayment; only the final amount is rounded.
func LoanAmount(monthlyPayment, annualInterestRate float64, years int) (float64, error) {
	if err := validation.Positive(monthlyPayment, "monthly payment must be greater than zero"); err != nil {
		return 0, err
	}

	rate, months, err := monthlyTerms(annualInterestRate, years)
	if err != nil {
		return 0, err
	}

	if rate == 0 {
		return finite(mathutil.Multiply(monthlyPayment, float64(months)))
	}

	factor, err := AnnuityFactor(rate, months)
	if err != nil {
		return 0, err
	}
	principal, err := mathutil.Divide(monthlyPayment, factor)
	if err != nil {
		return 0, err
	}
	return finite(principal)
}

// Summarize computes the monthly payment and lifetime totals for a loan.
func Summarize(loan Loan) (Summary, error) {
	payment, err := MonthlyPayment(loan)
	if err != nil {
		return Summary{}, err
	}
	months, err := finance.MonthsFromYears(loan.Years)
	if err != nil {
		return Summary{}, err
	}

	total := mathutil.Round(mathutil.Multiply(payment, float64(months)))
	return Summary{
		Loan:           loan,
		Months:         months,
		MonthlyPayment: payment,
		TotalPayment:   total,
		TotalInterest:  mathutil.Round(total - loan.Principal),
	}, nil
}

// finite rounds val to cents, rejecting results that overflowed.
func finite(val float64) (float64, error) {
	if !mathutil.IsFinite(val) {
		return 0, validation.Invalid("loan terms are out of range")
	}
	return mathutil.Round(val), nil
}
