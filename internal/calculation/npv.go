package calculation

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrRateOutOfDomain is returned for discount rates at or below -100%
var ErrRateOutOfDomain = errors.New("discount rate must be greater than -1")

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// RateFromPct converts a percentage such as 10 into the fraction 0.10
func RateFromPct(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// NPV discounts the series at rate r, given as a fraction:
// sum of cf[t] / (1+r)^t with t = 0 undiscounted.
func NPV(rate decimal.Decimal, cf domain.CashFlowSeries) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(one.Neg()) {
		return decimal.Zero, fmt.Errorf("%w: got %s", ErrRateOutOfDomain, rate.String())
	}
	return npv(rate, cf), nil
}

// npv assumes rate > -1
func npv(rate decimal.Decimal, cf domain.CashFlowSeries) decimal.Decimal {
	base := one.Add(rate)
	factor := one
	total := decimal.Zero
	for t, v := range cf {
		if t > 0 {
			factor = factor.Mul(base)
		}
		total = total.Add(v.Div(factor))
	}
	return total
}
