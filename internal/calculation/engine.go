package calculation

import (
	"fmt"

	"github.com/rgehrsitz/bizcase/internal/config"
	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine orchestrates the business-case calculation. It holds configuration
// only, so one Engine can serve concurrent Run calls.
type Engine struct {
	IRR         IRRSolver
	Checkpoints []int
	Logger      Logger
}

// NewEngine creates an engine with the default IRR bracket and checkpoints 1, 3, 5
func NewEngine() *Engine {
	return &Engine{
		IRR:         DefaultIRRSolver(),
		Checkpoints: []int{1, 3, 5},
		Logger:      NopLogger{},
	}
}

// NewEngineWithSettings creates an engine from loaded settings
func NewEngineWithSettings(s domain.EngineSettings) (*Engine, error) {
	if err := config.ValidateSettings(s); err != nil {
		return nil, fmt.Errorf("invalid engine settings: %w", err)
	}
	return &Engine{
		IRR: IRRSolver{
			Low:           decimal.NewFromFloat(s.IRRLow),
			High:          decimal.NewFromFloat(s.IRRHigh),
			Tolerance:     decimal.NewFromFloat(s.IRRTolerance),
			MaxIterations: s.IRRMaxIterations,
		},
		Checkpoints: append([]int(nil), s.Checkpoints...),
		Logger:      NopLogger{},
	}, nil
}

// SetLogger sets a logger; nil resets to a no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// Run normalizes raw inputs and computes the complete scenario result
func (e *Engine) Run(raw domain.ScenarioInputs) (*domain.ScenarioResult, error) {
	log := e.logger()

	in, warnings, err := config.Normalize(raw)
	if err != nil {
		log.Errorf("scenario %q rejected: %v", raw.Title, err)
		return nil, fmt.Errorf("failed to normalize scenario: %w", err)
	}

	res := &domain.ScenarioResult{}
	res.TimeSavings = ComputeTimeSavings(in)

	// the modeled CSAT cost may stand in for the entered debt base; res.Inputs
	// keeps the entered value so the persisted document stays lossless
	csatDebt := in.CSATDebt
	if in.CSAT != nil {
		metrics, w := ScoreCSAT(*in.CSAT)
		warnings = append(warnings, w...)
		res.CSAT = &metrics
		if in.CSAT.FeedsDebtBase && in.CSATDebt != nil {
			log.Debugf("CSAT debt base %s replaced by modeled annual CSAT cost %s",
				in.CSATDebt.BaseAnnualCost.StringFixed(2), metrics.AnnualCost.StringFixed(2))
			effective := *in.CSATDebt
			effective.BaseAnnualCost = metrics.AnnualCost
			csatDebt = &effective
		}
	}

	res.TechDebt = ComputeDebt(in.TechDebt, in.AutomationCoveragePct)
	res.CSATDebt = ComputeDebt(csatDebt, in.AutomationCoveragePct)

	oneTime, annual := SumCosts(in.Costs)
	res.BaseProjectCost = oneTime
	res.ProjectCost = oneTime.Add(res.TechDebt.RemediationOneTime).Add(res.CSATDebt.RemediationOneTime)
	res.BaseAnnualRunCost = annual
	res.AnnualRunCost = annual.Add(res.TechDebt.AnnualAfterRemediation).Add(res.CSATDebt.AnnualAfterRemediation)

	ApplyWaitingTimeEstimates(in.Benefits)
	res.AdditionalBenefits = SumBenefits(in.Benefits)
	res.AnnualTotalBenefit = res.TimeSavings.AnnualCostSavings.Add(res.AdditionalBenefits)
	res.AnnualNetBenefit = res.AnnualTotalBenefit.Sub(res.AnnualRunCost)
	res.FirstYearTotalCost = FirstYearTotalCost(res.ProjectCost, res.AnnualRunCost)

	res.CashFlows = BuildCashFlows(res.ProjectCost, res.AnnualRunCost, res.AnnualTotalBenefit, in.Years)

	metrics, err := e.Evaluate(res.CashFlows, in.DiscountRatePct)
	if err != nil {
		return nil, err
	}
	res.Metrics = metrics
	if n := SignChanges(res.CashFlows); n > 1 {
		warnings = append(warnings, domain.ConsistencyWarning{
			Code:    domain.WarnMultipleIRR,
			Field:   "cash_flows",
			Message: fmt.Sprintf("cash flows change sign %d times; more than one IRR may exist", n),
		})
	}

	res.Sanity = ComputeSanity(in, res.TimeSavings, res.AnnualTotalBenefit)
	res.Inputs = in
	res.Warnings = warnings

	for _, w := range warnings {
		log.Warnf("%s", w.String())
	}
	log.Debugf("scenario %q: project cost %s, net benefit %s/yr, NPV %s",
		in.Title, res.ProjectCost.StringFixed(2), res.AnnualNetBenefit.StringFixed(2), metrics.NPV.StringFixed(2))

	return res, nil
}

// Evaluate derives NPV, IRR, payback and cumulative checkpoints from a series.
// The discount rate is a percentage.
func (e *Engine) Evaluate(cf domain.CashFlowSeries, discountRatePct decimal.Decimal) (domain.Metrics, error) {
	value, err := NPV(RateFromPct(discountRatePct), cf)
	if err != nil {
		return domain.Metrics{}, fmt.Errorf("failed to compute NPV: %w", err)
	}

	m := domain.Metrics{
		NPV:     value,
		IRR:     e.IRR.Solve(cf),
		Payback: Payback(cf),
	}
	for _, year := range e.Checkpoints {
		m.Cumulative = append(m.Cumulative, domain.Checkpoint{Year: year, Value: cf.Cumulative(year)})
	}
	return m, nil
}
