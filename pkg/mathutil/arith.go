package mathutil

import (
	"errors"
	"fmt"
)

// ErrDivisionByZero is returned when a division has a zero denominator.
var ErrDivisionByZero = errors.New("division by zero")

// Multiply returns the product of x and y.
func Multiply(x, y float64) float64 {
	return x * y
}

// Divide returns x / y, or an error wrapping ErrDivisionByZero when y is zero.
func Divide(x, y float64) (float64, error) {
	if y == 0 {
		return 0, fmt.Errorf("%w: cannot divide %v by zero", ErrDivisionByZero, x)
	}
	return x / y, nil
}
