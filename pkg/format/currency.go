// Package format renders amounts and ratios for display.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/mortgage-calc/pkg/mathutil"
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	amount = mathutil.Round(amount)
	formatted := groupThousands(math.Abs(amount))
	if amount < 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// Percent renders a decimal ratio as a percentage, 0.36 becoming "36.00%".
func Percent(ratio float64) string {
	return fmt.Sprintf("%.2f%%", mathutil.CalculatePercentage(ratio, 1))
}

// Rate renders an annual rate with enough precision for quarter and eighth
// points, 0.0725 becoming "7.250%".
func Rate(ratio float64) string {
	return fmt.Sprintf("%.3f%%", mathutil.CalculatePercentage(ratio, 1))
}

func groupThousands(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	intPart, decPart, found := strings.Cut(formatted, ".")
	if !found {
		decPart = "00"
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
