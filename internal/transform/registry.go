package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_coverage", createSetCoverage)
	registry.Register("set_discount_rate", createSetDiscountRate)
	registry.Register("set_horizon", createSetHorizon)
	registry.Register("set_hourly_rate", createSetHourlyRate)
	registry.Register("set_task_volume", createSetTaskVolume)
	registry.Register("scale_costs", createScaleCosts)
	registry.Register("scale_benefits", createScaleBenefits)
	registry.Register("set_strategy", createSetStrategy)
	registry.Register("remediate_debt", createRemediateDebt)
	registry.Register("snap_sentiment", createSnapSentiment)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "remediate_debt:debt=tech,residual=25"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	name, paramsStr, _ := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	paramsStr = strings.TrimSpace(paramsStr)

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(paramPair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(name, params)
}

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func optionalDecimal(params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createSetCoverage(params map[string]string) (ScenarioTransform, error) {
	pct, err := requireDecimal("set_coverage", params, "pct")
	if err != nil {
		return nil, err
	}
	return &SetCoverage{Pct: pct}, nil
}

func createSetDiscountRate(params map[string]string) (ScenarioTransform, error) {
	pct, err := requireDecimal("set_discount_rate", params, "pct")
	if err != nil {
		return nil, err
	}
	return &SetDiscountRate{Pct: pct}, nil
}

func createSetHorizon(params map[string]string) (ScenarioTransform, error) {
	yearsStr, ok := params["years"]
	if !ok {
		return nil, fmt.Errorf("set_horizon requires 'years' parameter")
	}
	years, err := strconv.Atoi(yearsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid years value: %w", err)
	}
	return &SetHorizon{Years: years}, nil
}

func createSetHourlyRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := requireDecimal("set_hourly_rate", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetHourlyRate{Rate: rate}, nil
}

func createSetTaskVolume(params map[string]string) (ScenarioTransform, error) {
	tasks, err := requireDecimal("set_task_volume", params, "tasks")
	if err != nil {
		return nil, err
	}
	return &SetTaskVolume{TasksPerMonth: tasks}, nil
}

func createScaleCosts(params map[string]string) (ScenarioTransform, error) {
	factor, err := requireDecimal("scale_costs", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleCosts{Factor: factor, Timing: domain.CostTiming(params["timing"])}, nil
}

func createScaleBenefits(params map[string]string) (ScenarioTransform, error) {
	factor, err := requireDecimal("scale_benefits", params, "factor")
	if err != nil {
		return nil, err
	}
	return &ScaleBenefits{Factor: factor}, nil
}

func createSetStrategy(params map[string]string) (ScenarioTransform, error) {
	return &SetStrategy{Strategy: domain.AcquisitionStrategy(params["strategy"])}, nil
}

func createRemediateDebt(params map[string]string) (ScenarioTransform, error) {
	debt, ok := params["debt"]
	if !ok {
		return nil, fmt.Errorf("remediate_debt requires 'debt' parameter")
	}
	residual, err := requireDecimal("remediate_debt", params, "residual")
	if err != nil {
		return nil, err
	}
	cost, err := optionalDecimal(params, "cost")
	if err != nil {
		return nil, err
	}
	multiple, err := optionalDecimal(params, "base_multiple")
	if err != nil {
		return nil, err
	}
	return &RemediateDebt{
		Debt:         DebtKind(strings.ToLower(debt)),
		ResidualPct:  residual,
		OneTimeCost:  cost,
		BaseMultiple: multiple,
	}, nil
}

func createSnapSentiment(params map[string]string) (ScenarioTransform, error) {
	raw, ok := params["preset"]
	if !ok {
		return nil, fmt.Errorf("snap_sentiment requires 'preset' parameter")
	}
	preset, ok := domain.ParseSentimentPreset(raw)
	if !ok {
		return nil, fmt.Errorf("unknown sentiment preset: %s", raw)
	}
	return &SnapSentiment{Preset: preset}, nil
}
