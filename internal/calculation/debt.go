package calculation

import (
	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeDebt scales a debt cost by the non-automated share of the workload and
// applies any remediation residual. A nil config yields an empty breakdown.
func ComputeDebt(cfg *domain.DebtConfig, coveragePct decimal.Decimal) domain.DebtBreakdown {
	if cfg == nil {
		return domain.DebtBreakdown{ResidualPct: hundred}
	}

	impact := one.Sub(coveragePct.Div(hundred))
	if impact.IsNegative() {
		impact = decimal.Zero
	}
	atImpact := cfg.BaseAnnualCost.Mul(impact)

	residual := hundred
	oneTime := decimal.Zero
	if cfg.RemediationEnabled {
		residual = cfg.ResidualPct
		oneTime = cfg.RemediationOneTimeCost
	}

	return domain.DebtBreakdown{
		Included:               true,
		BaseAnnual:             cfg.BaseAnnualCost,
		ImpactPct:              impact,
		AnnualAtImpact:         atImpact,
		ResidualPct:            residual,
		AnnualAfterRemediation: atImpact.Mul(residual).Div(hundred),
		RemediationOneTime:     oneTime,
	}
}
