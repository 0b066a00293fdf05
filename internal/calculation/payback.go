package calculation

import (
	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// Payback returns the fractional year at which the running total first
// reaches zero, interpolating linearly inside the crossing year. It returns
// nil when the horizon never turns cash-positive.
func Payback(cf domain.CashFlowSeries) *decimal.Decimal {
	cumulative := decimal.Zero
	for t, v := range cf {
		prev := cumulative
		cumulative = cumulative.Add(v)
		if cumulative.IsNegative() {
			continue
		}

		var years decimal.Decimal
		switch {
		case t == 0:
			years = decimal.Zero
		case v.IsZero():
			years = decimal.NewFromInt(int64(t))
		default:
			years = decimal.NewFromInt(int64(t - 1)).Add(prev.Neg().Div(v))
		}
		return &years
	}
	return nil
}
