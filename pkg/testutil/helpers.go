// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/mortgage-calc/pkg/constants"
	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
)

// AssertCents fails the test unless got and want agree to the cent.
func AssertCents(t testing.TB, what string, got, want float64) {
	t.Helper()
	if !mathutil.WithinTolerance(got, want, constants.CurrencyTolerance/2) {
		t.Errorf("%s = %.2f, expected %.2f", what, got, want)
	}
}

// RoundTripTolerance bounds the drift of principal -> payment -> principal.
// Rounding the payment moves it by at most half a cent, which the inverse
// formula scales by at most the number of payments; the final rounding adds
// up to one more cent.
func RoundTripTolerance(months int) float64 {
	return constants.CurrencyTolerance/2*float64(months) + constants.CurrencyTolerance
}
