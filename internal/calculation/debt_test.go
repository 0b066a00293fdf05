package calculation

import (
	"testing"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeDebt_NoRemediation(t *testing.T) {
	b := ComputeDebt(&domain.DebtConfig{BaseAnnualCost: dec("20000")}, dec("80"))

	assert.True(t, b.Included)
	assertDecimal(t, "0.2", b.ImpactPct)
	assertDecimal(t, "4000", b.AnnualAtImpact)
	assertDecimal(t, "4000", b.AnnualAfterRemediation)
	assertDecimal(t, "100", b.ResidualPct)
	assert.True(t, b.RemediationOneTime.IsZero())
}

func TestComputeDebt_Remediation(t *testing.T) {
	cfg := &domain.DebtConfig{
		BaseAnnualCost:         dec("20000"),
		RemediationEnabled:     true,
		RemediationOneTimeCost: dec("5000"),
		ResidualPct:            dec("25"),
	}

	b := ComputeDebt(cfg, dec("50"))
	assertDecimal(t, "10000", b.AnnualAtImpact)
	assertDecimal(t, "2500", b.AnnualAfterRemediation)
	assertDecimal(t, "5000", b.RemediationOneTime)

	cfg.RemediationEnabled = false
	b = ComputeDebt(cfg, dec("50"))
	assertDecimal(t, "10000", b.AnnualAfterRemediation, "residual is ignored without remediation")
	assert.True(t, b.RemediationOneTime.IsZero())
}

func TestComputeDebt_FullCoverageZeroesDebt(t *testing.T) {
	for _, base := range []string{"0", "1", "20000", "987654.32"} {
		for _, residual := range []string{"0", "40", "100"} {
			b := ComputeDebt(&domain.DebtConfig{
				BaseAnnualCost:     dec(base),
				RemediationEnabled: true,
				ResidualPct:        dec(residual),
			}, dec("100"))
			assert.True(t, b.ImpactPct.IsZero())
			assert.True(t, b.AnnualAfterRemediation.IsZero(), "base %s residual %s", base, residual)
		}
	}
}

func TestComputeDebt_Nil(t *testing.T) {
	b := ComputeDebt(nil, dec("30"))
	assert.False(t, b.Included)
	assert.True(t, b.AnnualAfterRemediation.IsZero())
	assert.True(t, b.RemediationOneTime.IsZero())
}
