package transform

import (
	"fmt"

	"github.com/rgehrsitz/bizcase/internal/calculation"
	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// DebtKind selects which debt model a transform edits
type DebtKind string

const (
	TechDebt DebtKind = "tech"
	CSATDebt DebtKind = "csat"
)

func (k DebtKind) target(in *domain.ScenarioInputs) *domain.DebtConfig {
	switch k {
	case TechDebt:
		return in.TechDebt
	case CSATDebt:
		return in.CSATDebt
	}
	return nil
}

// RemediateDebt enables remediation on a configured debt. The one-time cost is
// OneTimeCost when set, otherwise BaseMultiple years of the base annual cost,
// otherwise whatever cost the scenario already carries.
type RemediateDebt struct {
	Debt         DebtKind
	ResidualPct  decimal.Decimal
	OneTimeCost  decimal.Decimal
	BaseMultiple decimal.Decimal
}

func (rd *RemediateDebt) Name() string {
	return "remediate_debt"
}

func (rd *RemediateDebt) Description() string {
	return fmt.Sprintf("Remediate %s debt down to %s%% residual", rd.Debt, rd.ResidualPct.StringFixed(0))
}

func (rd *RemediateDebt) Validate(base *domain.ScenarioInputs) error {
	if rd.Debt != TechDebt && rd.Debt != CSATDebt {
		return NewTransformError(rd.Name(), "validate", fmt.Sprintf("unknown debt kind %q (use tech or csat)", rd.Debt), nil)
	}
	if err := checkPct(rd.Name(), "residual", rd.ResidualPct); err != nil {
		return err
	}
	if rd.OneTimeCost.IsNegative() || rd.BaseMultiple.IsNegative() {
		return NewTransformError(rd.Name(), "validate", "remediation cost must be non-negative", nil)
	}
	if err := checkBase(rd.Name(), base); err != nil {
		return err
	}
	if rd.Debt.target(base) == nil {
		return NewTransformError(rd.Name(), "validate", fmt.Sprintf("scenario has no %s debt configured", rd.Debt), nil)
	}
	return nil
}

func (rd *RemediateDebt) Apply(base *domain.ScenarioInputs) (*domain.ScenarioInputs, error) {
	modified := base.Clone()
	cfg := rd.Debt.target(&modified)
	if cfg == nil {
		return nil, NewTransformError(rd.Name(), "apply", fmt.Sprintf("scenario has no %s debt configured", rd.Debt), nil)
	}

	cfg.RemediationEnabled = true
	cfg.ResidualPct = rd.ResidualPct
	switch {
	case !rd.OneTimeCost.IsZero():
		cfg.RemediationOneTimeCost = rd.OneTimeCost
	case !rd.BaseMultiple.IsZero():
		cfg.RemediationOneTimeCost = cfg.BaseAnnualCost.Mul(rd.BaseMultiple)
	}
	return &modified, nil
}

// SnapSentiment replaces manual CSAT counts with a preset split of the
// expected total. This is the only operation that rewrites entered counts.
type SnapSentiment struct {
	Preset domain.SentimentPreset
}

func (ss *SnapSentiment) Name() string {
	return "snap_sentiment"
}

func (ss *SnapSentiment) Description() string {
	return fmt.Sprintf("Snap CSAT counts to the %s distribution", ss.Preset)
}

func (ss *SnapSentiment) Validate(base *domain.ScenarioInputs) error {
	if _, ok := calculation.PresetDistribution(ss.Preset); !ok {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("%q is not a preset", ss.Preset), nil)
	}
	if err := checkBase(ss.Name(), base); err != nil {
		return err
	}
	if base.CSAT == nil {
		return NewTransformError(ss.Name(), "validate", "scenario has no CSAT inputs", nil)
	}
	return nil
}

func (ss *SnapSentiment) Apply(base *domain.ScenarioInputs) (*domain.ScenarioInputs, error) {
	modified := base.Clone()
	if modified.CSAT == nil {
		return nil, NewTransformError(ss.Name(), "apply", "scenario has no CSAT inputs", nil)
	}
	snapped, err := calculation.SnapToPreset(*modified.CSAT, ss.Preset)
	if err != nil {
		return nil, NewTransformError(ss.Name(), "apply", "snap failed", err)
	}
	modified.CSAT = &snapped
	return &modified, nil
}
