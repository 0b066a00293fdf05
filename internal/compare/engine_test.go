package compare

import (
	"testing"
	"time"

	"github.com/rgehrsitz/bizcase/internal/calculation"
	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInputs() domain.ScenarioInputs {
	return domain.ScenarioInputs{
		Title:                 "Access port automation",
		AutomationCoveragePct: dec("80"),
		HourlyRate:            dec("100"),
		DiscountRatePct:       dec("10"),
		Years:                 5,
		AcquisitionStrategy:   domain.StrategyBuy,
		Costs: []domain.CostItem{
			{Name: "License", Timing: domain.TimingOneTime, Amount: dec("25000")},
			{Name: "Support", Timing: domain.TimingAnnual, Amount: dec("5000")},
		},
		TechDebt: &domain.DebtConfig{BaseAnnualCost: dec("20000")},
		CSATDebt: &domain.DebtConfig{
			BaseAnnualCost:         dec("10000"),
			RemediationEnabled:     true,
			RemediationOneTimeCost: dec("3000"),
			ResidualPct:            dec("50"),
		},
		Benefits: []domain.BenefitItem{
			{Category: "Risk", Name: "Fewer outages", AnnualValue: dec("10000")},
		},
		ManualMinutes:    domain.StepMinutes{ObtainDetails: dec("10"), DevelopPayload: dec("20"), Execute: dec("30")},
		AutomatedMinutes: domain.StepMinutes{ObtainDetails: dec("5"), Execute: dec("10")},
		TasksPerMonth:    dec("50"),
	}
}

func newTestEngine() *CompareEngine {
	ce := NewCompareEngine(calculation.NewEngine())
	ce.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return ce
}

func TestNewCompareEngine(t *testing.T) {
	ce := NewCompareEngine(calculation.NewEngine())

	assert.NotNil(t, ce.CalcEngine)
	assert.NotNil(t, ce.Comparator)
	assert.NotNil(t, ce.TemplateRegistry)
	assert.NotNil(t, ce.TransformRegistry)
}

func TestCompareEngine_CompareTemplates(t *testing.T) {
	ce := newTestEngine()

	compSet, err := ce.Compare(createTestInputs(), CompareOptions{
		Templates: []string{"full_automation", "hurdle_15"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Access port automation", compSet.BaseScenarioName)
	require.Len(t, compSet.Alternatives, 2)
	assert.Equal(t, "Access port automation_full_automation", compSet.Alternatives[0].ScenarioName)
	assert.NotEmpty(t, compSet.Alternatives[0].Description)

	// base NPV is 108468.32 at 10%
	npv, ok := compSet.Alternatives[1].Row("npv")
	require.True(t, ok)
	require.True(t, npv.Available)
	assert.Equal(t, "108468.32", npv.A.StringFixed(2))
	assert.True(t, npv.Delta.IsNegative(), "a higher hurdle rate lowers NPV")

	// full automation removes the debt impact and raises time savings
	net, _ := compSet.Alternatives[0].Row("annual_net_benefit")
	assert.True(t, net.Delta.IsPositive())
	project, _ := compSet.Alternatives[0].Row("project_cost")
	assert.True(t, project.Delta.IsZero())

	require.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "Access port automation_full_automation")
}

func TestCompareEngine_CompareTransforms(t *testing.T) {
	ce := newTestEngine()

	compSet, err := ce.Compare(createTestInputs(), CompareOptions{
		BaseScenarioName: "buy",
		Transforms:       []string{"set_strategy:strategy=build", "scale_costs:factor=2,timing=one-time"},
	})
	require.NoError(t, err)
	require.Len(t, compSet.Alternatives, 1)

	alt := compSet.Alternatives[0]
	assert.Equal(t, "buy_custom", alt.ScenarioName)
	assert.Contains(t, alt.Description, ";")

	strategy, _ := alt.Row("acquisition_strategy")
	assert.Equal(t, "Buy", strategy.TextA)
	assert.Equal(t, "Build", strategy.TextB)

	project, _ := alt.Row("project_cost")
	assert.Equal(t, "28000", project.A.String())
	assert.Equal(t, "53000", project.B.String())
	assert.Equal(t, "25000", project.Delta.String())
}

func TestCompareEngine_CompareErrors(t *testing.T) {
	ce := newTestEngine()
	base := createTestInputs()

	_, err := ce.Compare(base, CompareOptions{})
	assert.Error(t, err, "nothing to compare")

	_, err = ce.Compare(base, CompareOptions{Templates: []string{"no_such_template"}})
	assert.Error(t, err)

	_, err = ce.Compare(base, CompareOptions{Transforms: []string{"set_horizon:years=0"}})
	assert.Error(t, err)

	_, err = ce.Compare(base, CompareOptions{Transforms: []string{"bogus"}})
	assert.Error(t, err)

	bad := createTestInputs()
	bad.Title = ""
	_, err = ce.Compare(bad, CompareOptions{Templates: []string{"full_automation"}})
	assert.Error(t, err)
}

func TestCompareEngine_CompareInputs(t *testing.T) {
	ce := newTestEngine()

	a := createTestInputs()
	b := createTestInputs()
	b.AcquisitionStrategy = domain.StrategyBuild
	b.Years = 3

	compSet, err := ce.CompareInputs(a, b, "buy", "build")
	require.NoError(t, err)
	assert.Equal(t, "buy", compSet.BaseScenarioName)
	require.Len(t, compSet.Alternatives, 1)
	assert.Equal(t, "build", compSet.Alternatives[0].ScenarioName)

	// a three-year horizon clamps checkpoint 5 to the full sum
	cum5, ok := compSet.Alternatives[0].Row("cum_5")
	require.True(t, ok)
	assert.Equal(t, "152000", cum5.A.String())
	assert.Equal(t, "80000", cum5.B.String())

	bad := createTestInputs()
	bad.Years = 0
	_, err = ce.CompareInputs(a, bad, "buy", "broken")
	assert.Error(t, err)
}

func TestCompareEngine_CompareDocumentsAsStored(t *testing.T) {
	ce := newTestEngine()
	compSet := ce.CompareDocuments(buyDocument(), buildDocument(), "buy", "build")

	require.Len(t, compSet.Alternatives, 1)
	irr, _ := compSet.Alternatives[0].Row("irr")
	assert.False(t, irr.Available)
}
