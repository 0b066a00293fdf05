package output

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as dollars with thousands separators
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole, frac, _ := strings.Cut(amount.StringFixed(2), ".")

	var sb strings.Builder
	for i, ch := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(ch)
	}
	return sign + "$" + sb.String() + "." + frac
}

// FormatPercentage formats a value that is already a percentage
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fraction (0.12) as a percentage (12.00%)
func FormatRate(rate decimal.Decimal) string {
	return FormatPercentage(rate.Mul(hundred))
}

// FormatOptional renders an undefined value as "n/a"
func FormatOptional(v *decimal.Decimal, format func(decimal.Decimal) string) string {
	if v == nil {
		return "n/a"
	}
	return format(*v)
}

// FormatYears formats a payback period
func FormatYears(v decimal.Decimal) string {
	return v.StringFixed(2) + " years"
}
