package affordability

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/mortgage-calc/pkg/loans"
	"github.com/iwvelando/mortgage-calc/pkg/testutil"
	"github.com/iwvelando/mortgage-calc/pkg/validation"
)

func TestMaxMonthlyHousingPayment(t *testing.T) {
	tests := []struct {
		name     string
		borrower Borrower
		maxDTI   float64
		expected float64
	}{
		{"Standard", Borrower{MonthlyIncome: 6000, MonthlyDebt: 500}, DefaultMaxDTI, 1660.00},
		{"Custom DTI", Borrower{MonthlyIncome: 8000, MonthlyDebt: 1000}, 0.40, 2200.00},
		{"No existing debt", Borrower{MonthlyIncome: 5000, MonthlyDebt: 0}, DefaultMaxDTI, 1800.00},
		{"Full income allowed", Borrower{MonthlyIncome: 4000, MonthlyDebt: 1000}, 1, 3000.00},
		{"Cents in inputs", Borrower{MonthlyIncome: 5000, MonthlyDebt: 1234.56}, 0.43, 915.44},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MaxMonthlyHousingPayment(tt.borrower, tt.maxDTI)
			if err != nil {
				t.Fatalf("MaxMonthlyHousingPayment() unexpected error: %v", err)
			}
			testutil.AssertCents(t, "MaxMonthlyHousingPayment()", result, tt.expected)
		})
	}
}

func TestMaxMonthlyHousingPaymentInvalid(t *testing.T) {
	tests := []struct {
		name     string
		borrower Borrower
		maxDTI   float64
		msg      string
	}{
		{"Zero income", Borrower{MonthlyIncome: 0, MonthlyDebt: 500}, DefaultMaxDTI, "monthly income must be greater than zero"},
		{"Negative income", Borrower{MonthlyIncome: -6000, MonthlyDebt: 500}, DefaultMaxDTI, "monthly income must be greater than zero"},
		{"Negative debt", Borrower{MonthlyIncome: 6000, MonthlyDebt: -1}, DefaultMaxDTI, "monthly debt cannot be negative"},
		{"Zero DTI", Borrower{MonthlyIncome: 6000, MonthlyDebt: 500}, 0, "DTI must be between 0 and 1"},
		{"DTI above one", Borrower{MonthlyIncome: 6000, MonthlyDebt: 500}, 1.5, "DTI must be between 0 and 1"},
		{"NaN DTI", Borrower{MonthlyIncome: 6000, MonthlyDebt: 500}, math.NaN(), "DTI must be between 0 and 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MaxMonthlyHousingPayment(tt.borrower, tt.maxDTI)
			if !errors.Is(err, validation.ErrInvalidInput) {
				t.Fatalf("MaxMonthlyHousingPayment() error = %v, expected ErrInvalidInput", err)
			}
			if err.Error() != "invalid input: "+tt.msg {
				t.Errorf("MaxMonthlyHousingPayment() error = %q, expected message %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestMaxMonthlyHousingPaymentUnaffordable(t *testing.T) {
	tests := []struct {
		name     string
		borrower Borrower
		maxDTI   float64
	}{
		{"Debt exceeds DTI budget", Borrower{MonthlyIncome: 1000, MonthlyDebt: 400}, DefaultMaxDTI},
		{"Debt exactly at DTI budget", Borrower{MonthlyIncome: 1000, MonthlyDebt: 360}, DefaultMaxDTI},
		{"Remainder under half a cent", Borrower{MonthlyIncome: 1000, MonthlyDebt: 999.999}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MaxMonthlyHousingPayment(tt.borrower, tt.maxDTI)
			if !errors.Is(err, validation.ErrUnaffordable) {
				t.Fatalf("MaxMonthlyHousingPayment() error = %v, expected ErrUnaffordable", err)
			}
			if result != 0 {
				t.Errorf("MaxMonthlyHousingPayment() = %v, expected 0 on error", result)
			}
		})
	}
}

func TestMaxLoanAmount(t *testing.T) {
	borrower := Borrower{MonthlyIncome: 6000, MonthlyDebt: 500}

	result, err := MaxLoanAmount(borrower, 0.06, 30, DefaultMaxDTI)
	if err != nil {
		t.Fatalf("MaxLoanAmount() unexpected error: %v", err)
	}
	testutil.AssertCents(t, "MaxLoanAmount()", result, 276874.08)

	zeroRate, err := MaxLoanAmount(borrower, 0, 10, DefaultMaxDTI)
	if err != nil {
		t.Fatalf("MaxLoanAmount() zero rate unexpected error: %v", err)
	}
	testutil.AssertCents(t, "MaxLoanAmount() zero rate", zeroRate, 199200.00)
}

func TestMaxLoanAmountComposition(t *testing.T) {
	borrowers := []Borrower{
		{MonthlyIncome: 6000, MonthlyDebt: 500},
		{MonthlyIncome: 8000, MonthlyDebt: 1000},
		{MonthlyIncome: 12345.67, MonthlyDebt: 2345.67},
		{MonthlyIncome: 3000, MonthlyDebt: 0},
	}
	rates := []float64{0, 0.03, 0.06, 0.0875}
	terms := []int{10, 15, 30}
	dtis := []float64{0.28, DefaultMaxDTI, 0.43}

	for _, borrower := range borrowers {
		for _, rate := range rates {
			for _, years := range terms {
				for _, dti := range dtis {
					composed, err := MaxLoanAmount(borrower, rate, years, dti)
					if err != nil {
						t.Fatalf("MaxLoanAmount(%+v, %v, %d, %v) unexpected error: %v", borrower, rate, years, dti, err)
					}

					payment, err := MaxMonthlyHousingPayment(borrower, dti)
					if err != nil {
						t.Fatalf("MaxMonthlyHousingPayment(%+v, %v) unexpected error: %v", borrower, dti, err)
					}
					manual, err := loans.LoanAmount(payment, rate, years)
					if err != nil {
						t.Fatalf("LoanAmount(%v, %v, %d) unexpected error: %v", payment, rate, years, err)
					}

					if composed != manual {
						t.Errorf("MaxLoanAmount(%+v, %v, %d, %v) = %v, manual composition = %v",
							borrower, rate, years, dti, composed, manual)
					}
				}
			}
		}
	}
}

func TestMaxLoanAmountPropagatesErrors(t *testing.T) {
	tests := []struct {
		name     string
		borrower Borrower
		rate     float64
		years    int
		maxDTI   float64
		target   error
	}{
		{"Invalid interest rate", Borrower{MonthlyIncome: 6000, MonthlyDebt: 500}, -0.01, 30, DefaultMaxDTI, validation.ErrInvalidInput},
		{"Invalid years", Borrower{MonthlyIncome: 6000, MonthlyDebt: 500}, 0.06, 0, DefaultMaxDTI, validation.ErrInvalidInput},
		{"Term too long for a month count", Borrower{MonthlyIncome: 6000, MonthlyDebt: 500}, 0, math.MaxInt/12 + 1, DefaultMaxDTI, validation.ErrInvalidInput},
		{"Invalid income", Borrower{MonthlyIncome: 0, MonthlyDebt: 500}, 0.06, 30, DefaultMaxDTI, validation.ErrInvalidInput},
		{"Unaffordable", Borrower{MonthlyIncome: 1000, MonthlyDebt: 400}, 0.06, 30, DefaultMaxDTI, validation.ErrUnaffordable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MaxLoanAmount(tt.borrower, tt.rate, tt.years, tt.maxDTI)
			if !errors.Is(err, tt.target) {
				t.Errorf("MaxLoanAmount() error = %v, expected %v", err, tt.target)
			}
		})
	}
}

func TestMaxLoanAmountErrorUnchanged(t *testing.T) {
	borrower := Borrower{MonthlyIncome: 6000, MonthlyDebt: 500}

	_, composed := MaxLoanAmount(borrower, 0.06, 0, DefaultMaxDTI)
	_, direct := loans.LoanAmount(1660, 0.06, 0)
	if composed == nil || direct == nil {
		t.Fatalf("expected both calls to fail, got %v and %v", composed, direct)
	}
	if composed.Error() != direct.Error() {
		t.Errorf("MaxLoanAmount() error = %q, expected unchanged %q", composed.Error(), direct.Error())
	}
}

func TestAssess(t *testing.T) {
	borrower := Borrower{MonthlyIncome: 6000, MonthlyDebt: 500}

	assessment, err := Assess(borrower, 0.06, 30, DefaultMaxDTI)
	if err != nil {
		t.Fatalf("Assess() unexpected error: %v", err)
	}

	if assessment.Borrower != borrower {
		t.Errorf("Assess().Borrower = %+v, expected %+v", assessment.Borrower, borrower)
	}
	if assessment.Years != 30 || assessment.AnnualInterestRate != 0.06 || assessment.MaxDTI != DefaultMaxDTI {
		t.Errorf("Assess() did not echo inputs: %+v", assessment)
	}
	testutil.AssertCents(t, "Assess().MaxMonthlyPayment", assessment.MaxMonthlyPayment, 1660.00)
	testutil.AssertCents(t, "Assess().MaxLoanAmount", assessment.MaxLoanAmount, 276874.08)
	if math.Abs(assessment.CurrentDTI-500.0/6000.0) > 1e-12 {
		t.Errorf("Assess().CurrentDTI = %v, expected %v", assessment.CurrentDTI, 500.0/6000.0)
	}
}

func TestAssessUnaffordable(t *testing.T) {
	assessment, err := Assess(Borrower{MonthlyIncome: 1000, MonthlyDebt: 400}, 0.06, 30, DefaultMaxDTI)
	if !errors.Is(err, validation.ErrUnaffordable) {
		t.Fatalf("Assess() error = %v, expected ErrUnaffordable", err)
	}
	if assessment != (Assessment{}) {
		t.Errorf("Assess() = %+v, expected zero value on error", assessment)
	}
}
