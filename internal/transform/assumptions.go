package transform

import (
	"fmt"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func checkPct(name, field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return NewTransformError(name, "validate", fmt.Sprintf("%s must be between 0 and 100, got %s", field, v.String()), nil)
	}
	return nil
}

func checkBase(name string, base *domain.ScenarioInputs) error {
	if base == nil {
		return NewTransformError(name, "validate", "base scenario cannot be nil", nil)
	}
	return nil
}

// SetCoverage changes the share of changes handled by automation.
// Debt impact scales with the uncovered share, so this moves both benefit and run cost.
type SetCoverage struct {
	Pct decimal.Decimal
}

func (sc *SetCoverage) Name() string {
	return "set_coverage"
}

func (sc *SetCoverage) Description() string {
	return fmt.Sprintf("Set automation coverage to %s%%", sc.Pct.StringFixed(0))
}

func (sc *SetCoverage) Validate(base *domain.ScenarioInputs) error {
	if err := checkPct(sc.Name(), "coverage", sc.Pct); err != nil {
		return err
	}
	return checkBase(sc.Name(), base)
}

func (sc *SetCoverage) Apply(base *domain.ScenarioInputs) (*domain.ScenarioInputs, error) {
	modified := base.Clone()
	modified.AutomationCoveragePct = sc.Pct
	return &modified, nil
}

// SetDiscountRate changes the hurdle rate used for NPV
type SetDiscountRate struct {
	Pct decimal.Decimal
}

func (sd *SetDiscountRate) Name() string {
	return "set_discount_rate"
}

func (sd *SetDiscountRate) Description() string {
	return fmt.Sprintf("Discount cash flows at %s%%", sd.Pct.StringFixed(1))
}

func (sd *SetDiscountRate) Validate(base *domain.ScenarioInputs) error {
	if err := checkPct(sd.Name(), "discount rate", sd.Pct); err != nil {
		return err
	}
	return checkBase(sd.Name(), base)
}

func (sd *SetDiscountRate) Apply(base *domain.ScenarioInputs) (*domain.ScenarioInputs, error) {
	modified := base.Clone()
	modified.DiscountRatePct = sd.Pct
	return &modified, nil
}

// SetHorizon changes the number of years modeled after Year 0
type SetHorizon struct {
	Years int
}

func (sh *SetHorizon) Name() string {
	return "set_horizon"
}

func (sh *SetHorizon) Description() string {
	return fmt.Sprintf("Model a %d-year horizon", sh.Years)
}

func (sh *SetHorizon) Validate(base *domain.ScenarioInputs) error {
	if sh.Years < 1 {
		return NewTransformError(sh.Name(), "validate", fmt.Sprintf("years must be at least 1, got %d", sh.Years), nil)
	}
	return checkBase(sh.Name(), base)
}

func (sh *SetHorizon) Apply(base *domain.ScenarioInputs) (*domain.ScenarioInputs, error) {
	modified := base.Clone()
	modified.Years = sh.Years
	return &modified, nil
}

// SetHourlyRate changes the loaded engineer cost used to value saved time
type SetHourlyRate struct {
	Rate decimal.Decimal
}

func (sr *SetHourlyRate) Name() string {
	return "set_hourly_rate"
}

func (sr *SetHourlyRate) Description() string {
	return fmt.Sprintf("Value engineer time at $%s/hour", sr.Rate.StringFixed(2))
}

func (sr *SetHourlyRate) Validate(base *domain.ScenarioInputs) error {
	if sr.Rate.IsNegative() {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("rate must be non-negative, got %s", sr.Rate.String()), nil)
	}
	return checkBase(sr.Name(), base)
}

func (sr *SetHourlyRate) Apply(base *domain.ScenarioInputs) (*domain.ScenarioInputs, error) {
	modified := base.Clone()
	modified.HourlyRate = sr.Rate
	return &modified, nil
}

// SetTaskVolume changes the number of changes performed per month
type SetTaskVolume struct {
	TasksPerMonth decimal.Decimal
}

func (sv *SetTaskVolume) Name() string {
	return "set_task_volume"
}

func (sv *SetTaskVolume) Description() string {
	return fmt.Sprintf("Perform %s changes per month", sv.TasksPerMonth.String())
}

func (sv *SetTaskVolume) Validate(base *domain.ScenarioInputs) error {
	if sv.TasksPerMonth.IsNegative() {
		return NewTransformError(sv.Name(), "validate", "tasks per month must be non-negative", nil)
	}
	return checkBase(sv.Name(), base)
}

func (sv *SetTaskVolume) Apply(base *domain.ScenarioInputs) (*domain.ScenarioInputs, error) {
	modified := base.Clone()
	modified.TasksPerMonth = sv.TasksPerMonth
	return &modified, nil
}
