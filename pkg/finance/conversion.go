// Package finance converts annual financial terms into monthly units.
package finance

import (
	"math"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
	"github.com/iwvelando/mortgage-calc/pkg/validation"
)

// MonthlyRate converts an annual interest rate expressed as a decimal
// (0.06 for 6%) into the equivalent monthly rate.
func MonthlyRate(annualRate float64) (float64, error) {
	if err := validation.NonNegative(annualRate, "interest rate cannot be negative"); err != nil {
		return 0, err
	}
	return mathutil.Divide(annualRate, constants.MonthsPerYear)
}

// MonthsFromYears converts a loan term in years to months. Terms whose month
// count does not fit in an int are rejected.
func MonthsFromYears(years int) (int, error) {
	if err := validation.PositiveInt(years, "loan term must be greater than zero"); err != nil {
		return 0, err
	}
	if years > math.MaxInt/constants.MonthsPerYear {
		return 0, validation.Invalid("loan term is out of range")
	}
	return years * constants.MonthsPerYear, nil
}
