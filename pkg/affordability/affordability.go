// Package affordability derives the largest housing payment and loan a
// borrower can carry under a debt-to-income (DTI) limit.
package affordability

import (
	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/loans"
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
	"github.com/iwvelando/mortgage-calc/pkg/validation"
)

// DefaultMaxDTI is the conventional 36% back-end DTI limit.
const DefaultMaxDTI = constants.DefaultMaxDTI

// Borrower holds the monthly income and existing debt obligations of a loan applicant.
type Borrower struct {
	MonthlyIncome float64 `json:"monthlyIncome" yaml:"monthlyIncome"`
	MonthlyDebt   float64 `json:"monthlyDebt" yaml:"monthlyDebt"`
}

// Assessment combines the affordability results for one borrower and loan term.
type Assessment struct {
	Borrower           Borrower `json:"borrower" yaml:"borrower"`
	AnnualInterestRate float64  `json:"annualInterestRate" yaml:"annualInterestRate"`
	Years              int      `json:"years" yaml:"years"`
	MaxDTI             float64  `json:"maxDti" yaml:"maxDti"`
	CurrentDTI         float64  `json:"currentDti" yaml:"currentDti"`
	MaxMonthlyPayment  float64  `json:"maxMonthlyPayment" yaml:"maxMonthlyPayment"`
	MaxLoanAmount      float64  `json:"maxLoanAmount" yaml:"maxLoanAmount"`
}

// Validate checks the borrower inputs.
func (b Borrower) Validate() error {
	if err := validation.Positive(b.MonthlyIncome, "monthly income must be greater than zero"); err != nil {
		return err
	}
	return validation.NonNegative(b.MonthlyDebt, "monthly debt cannot be negative")
}

// MaxMonthlyHousingPayment returns (income * maxDTI) - debt rounded to cents.
// maxDTI must lie in (0, 1]; pass DefaultMaxDTI for the conventional limit.
// The check runs after rounding, so a capacity under half a cent (including
// float residue such as 1000*0.36 - 360) is ErrUnaffordable rather than 0.00.
func MaxMonthlyHousingPayment(borrower Borrower, maxDTI float64) (float64, error) {
	if err := borrower.Validate(); err != nil {
		return 0, err
	}
	if err := validation.Ratio(maxDTI, "DTI must be between 0 and 1"); err != nil {
		return 0, err
	}

	maxTotalDebt := mathutil.Multiply(borrower.MonthlyIncome, maxDTI)
	// A remainder below half a cent is no payment at all.
	payment := mathutil.Round(maxTotalDebt - borrower.MonthlyDebt)
	if payment <= 0 {
		return 0, validation.Unaffordable("borrower cannot afford additional housing payment")
	}
	return payment, nil
}

// MaxLoanAmount converts the borrower's maximum housing payment into a loan
// principal. Errors from either step are returned unchanged.
func MaxLoanAmount(borrower Borrower, annualInterestRate float64, years int, maxDTI float64) (float64, error) {
	payment, err := MaxMonthlyHousingPayment(borrower, maxDTI)
	if err != nil {
		return 0, err
	}
	return loans.LoanAmount(payment, annualInterestRate, years)
}

// Assess runs both affordability calculations and reports the borrower's
// current DTI alongside them.
func Assess(borrower Borrower, annualInterestRate float64, years int, maxDTI float64) (Assessment, error) {
	payment, err := MaxMonthlyHousingPayment(borrower, maxDTI)
	if err != nil {
		return Assessment{}, err
	}
	principal, err := loans.LoanAmount(payment, annualInterestRate, years)
	if err != nil {
		return Assessment{}, err
	}
	currentDTI, err := mathutil.Divide(borrower.MonthlyDebt, borrower.MonthlyIncome)
	if err != nil {
		return Assessment{}, err
	}

	return Assessment{
		Borrower:           borrower,
		AnnualInterestRate: annualInterestRate,
		Years:              years,
		MaxDTI:             maxDTI,
		CurrentDTI:         currentDTI,
		MaxMonthlyPayment:  payment,
		MaxLoanAmount:      principal,
	}, nil
}
