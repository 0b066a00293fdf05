package transform

import (
	"fmt"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// ScaleCosts multiplies cost items by a factor, optionally only those with a
// given timing. A factor above 1 models an overrun.
type ScaleCosts struct {
	Factor decimal.Decimal
	Timing domain.CostTiming // empty scales every item
}

func (sc *ScaleCosts) Name() string {
	return "scale_costs"
}

func (sc *ScaleCosts) Description() string {
	scope := "all"
	if sc.Timing != "" {
		scope = string(sc.Timing)
	}
	return fmt.Sprintf("Scale %s costs by %sx", scope, sc.Factor.String())
}

func (sc *ScaleCosts) Validate(base *domain.ScenarioInputs) error {
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor.String()), nil)
	}
	if sc.Timing != "" {
		if _, ok := domain.ParseCostTiming(string(sc.Timing)); !ok {
			return NewTransformError(sc.Name(), "validate", fmt.Sprintf("unknown cost timing %q", sc.Timing), nil)
		}
	}
	return checkBase(sc.Name(), base)
}

func (sc *ScaleCosts) Apply(base *domain.ScenarioInputs) (*domain.ScenarioInputs, error) {
	modified := base.Clone()
	want, _ := domain.ParseCostTiming(string(sc.Timing))
	for i := range modified.Costs {
		c := &modified.Costs[i]
		if sc.Timing != "" {
			if got, _ := domain.ParseCostTiming(string(c.Timing)); got != want {
				continue
			}
		}
		c.Amount = c.Amount.Mul(sc.Factor)
	}
	return &modified, nil
}

// ScaleBenefits multiplies every additional benefit item by a factor,
// including the per-site-day value behind waiting-time estimates.
// Engineer time savings are not affected.
type ScaleBenefits struct {
	Factor decimal.Decimal
}

func (sb *ScaleBenefits) Name() string {
	return "scale_benefits"
}

func (sb *ScaleBenefits) Description() string {
	return fmt.Sprintf("Scale additional benefits by %sx", sb.Factor.String())
}

func (sb *ScaleBenefits) Validate(base *domain.ScenarioInputs) error {
	if sb.Factor.IsNegative() {
		return NewTransformError(sb.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sb.Factor.String()), nil)
	}
	return checkBase(sb.Name(), base)
}

func (sb *ScaleBenefits) Apply(base *domain.ScenarioInputs) (*domain.ScenarioInputs, error) {
	modified := base.Clone()
	for i := range modified.Benefits {
		b := &modified.Benefits[i]
		b.AnnualValue = b.AnnualValue.Mul(sb.Factor)
		if b.WaitingTime != nil {
			b.WaitingTime.ValuePerSiteDay = b.WaitingTime.ValuePerSiteDay.Mul(sb.Factor)
		}
	}
	return &modified, nil
}

// SetStrategy records a different acquisition strategy. An empty strategy
// flips Buy and Build.
type SetStrategy struct {
	Strategy domain.AcquisitionStrategy
}

func (ss *SetStrategy) Name() string {
	return "set_strategy"
}

func (ss *SetStrategy) Description() string {
	if ss.Strategy == "" {
		return "Switch between Buy and Build"
	}
	return fmt.Sprintf("Set acquisition strategy to %s", ss.Strategy)
}

func (ss *SetStrategy) Validate(base *domain.ScenarioInputs) error {
	if ss.Strategy != "" {
		if _, ok := domain.ParseAcquisitionStrategy(string(ss.Strategy)); !ok {
			return NewTransformError(ss.Name(), "validate", fmt.Sprintf("unknown strategy %q", ss.Strategy), nil)
		}
	}
	return checkBase(ss.Name(), base)
}

func (ss *SetStrategy) Apply(base *domain.ScenarioInputs) (*domain.ScenarioInputs, error) {
	modified := base.Clone()
	if ss.Strategy != "" {
		modified.AcquisitionStrategy, _ = domain.ParseAcquisitionStrategy(string(ss.Strategy))
		return &modified, nil
	}
	current, _ := domain.ParseAcquisitionStrategy(string(base.AcquisitionStrategy))
	if current == domain.StrategyBuild {
		modified.AcquisitionStrategy = domain.StrategyBuy
	} else {
		modified.AcquisitionStrategy = domain.StrategyBuild
	}
	return &modified, nil
}
