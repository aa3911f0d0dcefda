package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
)

var (
	// ErrInvalidInput marks a value outside its required domain.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnaffordable marks a borrower whose debt leaves no room for a housing payment.
	ErrUnaffordable = errors.New("unaffordable")
)

// Error kinds reported by Kind.
const (
	KindInvalidInput   = "invalid_input"
	KindUnaffordable   = "unaffordable"
	KindDivisionByZero = "division_by_zero"
	KindInternal       = "internal"
)

// Invalid returns an error wrapping ErrInvalidInput with the given message.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}

// Unaffordable returns an error wrapping ErrUnaffordable with the given message.
func Unaffordable(msg string) error {
	return fmt.Errorf("%w: %s", ErrUnaffordable, msg)
}

// Kind classifies err for transport layers. Nil errors have no kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrUnaffordable):
		return KindUnaffordable
	case errors.Is(err, mathutil.ErrDivisionByZero):
		return KindDivisionByZero
	default:
		return KindInternal
	}
}

// Positive fails with msg unless val is a finite number greater than zero.
func Positive(val float64, msg string) error {
	if !mathutil.IsFinite(val) || val <= 0 {
		return Invalid(msg)
	}
	return nil
}

// NonNegative fails with msg unless val is a finite number of at least zero.
func NonNegative(val float64, msg string) error {
	if !mathutil.IsFinite(val) || val < 0 {
		return Invalid(msg)
	}
	return nil
}

// PositiveInt fails with msg unless val is greater than zero.
func PositiveInt(val int, msg string) error {
	if val <= 0 {
		return Invalid(msg)
	}
	return nil
}

// Ratio fails with msg unless val lies in (0, 1].
func Ratio(val float64, msg string) error {
	if !(val > 0 && val <= 1) {
		return Invalid(msg)
	}
	return nil
}
