package calculation

import (
	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// BuildCashFlows returns [-projectCost, net, net, ...] with years annual entries,
// where net = annualTotalBenefit - annualRunCost. Values are not rounded.
func BuildCashFlows(projectCost, annualRunCost, annualTotalBenefit decimal.Decimal, years int) domain.CashFlowSeries {
	if years < 0 {
		years = 0
	}
	net := annualTotalBenefit.Sub(annualRunCost)
	cf := make(domain.CashFlowSeries, years+1)
	cf[0] = projectCost.Neg()
	for t := 1; t <= years; t++ {
		cf[t] = net
	}
	return cf
}

// SumCosts splits the cost breakdown into its one-time and annual totals
func SumCosts(costs []domain.CostItem) (oneTime, annual decimal.Decimal) {
	oneTime, annual = decimal.Zero, decimal.Zero
	for _, c := range costs {
		switch c.Timing {
		case domain.TimingOneTime:
			oneTime = oneTime.Add(c.Amount)
		case domain.TimingAnnual:
			annual = annual.Add(c.Amount)
		}
	}
	return oneTime, annual
}

// SumBenefits totals the annual value of the additional benefit items
func SumBenefits(benefits []domain.BenefitItem) decimal.Decimal {
	total := decimal.Zero
	for _, b := range benefits {
		total = total.Add(b.AnnualValue)
	}
	return total
}
