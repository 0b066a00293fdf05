package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FromFloat converts a float input into a decimal, rejecting NaN and infinities.
// Decimals cannot hold non-finite values, so this is where they are caught.
func FromFloat(field string, v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, domain.NewValidationError(field, "must be a finite number, got %v", v)
	}
	return decimal.NewFromFloat(v), nil
}

// normalizer collects warnings while canonicalizing one scenario
type normalizer struct {
	warnings []domain.ConsistencyWarning
}

func (n *normalizer) warn(code domain.WarningCode, field, format string, args ...any) {
	n.warnings = append(n.warnings, domain.ConsistencyWarning{
		Code:    code,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

func (n *normalizer) pct(field string, v decimal.Decimal) decimal.Decimal {
	switch {
	case v.LessThan(decimal.Zero):
		n.warn(domain.WarnClamped, field, "clamped %s to 0", v.String())
		return decimal.Zero
	case v.GreaterThan(hundred):
		n.warn(domain.WarnClamped, field, "clamped %s to 100", v.String())
		return hundred
	}
	return v
}

func (n *normalizer) floor(field string, v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		n.warn(domain.WarnFloored, field, "floored %s to 0", v.String())
		return decimal.Zero
	}
	return v
}

func (n *normalizer) floorInt(field string, v int) int {
	if v < 0 {
		n.warn(domain.WarnFloored, field, "floored %d to 0", v)
		return 0
	}
	return v
}

// Normalize validates raw scenario inputs and returns the canonical form used
// by every downstream calculation. Percent fields are clamped into [0,100],
// negative money and time values are floored to 0, and each adjustment is
// reported as a warning. Structural problems return a *domain.ValidationError.
// The raw inputs are not modified.
func Normalize(raw domain.ScenarioInputs) (domain.ScenarioInputs, []domain.ConsistencyWarning, error) {
	in := raw.Clone()
	n := &normalizer{}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return domain.ScenarioInputs{}, nil, domain.NewValidationError("title", "is required")
	}
	if in.Years < 1 {
		return domain.ScenarioInputs{}, nil, domain.NewValidationError("years", "must be at least 1, got %d", in.Years)
	}
	strategy, ok := domain.ParseAcquisitionStrategy(string(in.AcquisitionStrategy))
	if !ok {
		return domain.ScenarioInputs{}, nil, domain.NewValidationError("acquisition_strategy", "unknown strategy %q", in.AcquisitionStrategy)
	}
	in.AcquisitionStrategy = strategy

	in.AutomationCoveragePct = n.pct("automation_coverage_pct", in.AutomationCoveragePct)
	in.DiscountRatePct = n.pct("discount_rate_pct", in.DiscountRatePct)
	in.HourlyRate = n.floor("hourly_rate", in.HourlyRate)
	in.TasksPerMonth = n.floor("tasks_per_month", in.TasksPerMonth)

	for i := range in.Costs {
		c := &in.Costs[i]
		field := fmt.Sprintf("cost_breakdown[%d]", i)
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return domain.ScenarioInputs{}, nil, domain.NewValidationError(field+".name", "is required")
		}
		timing, ok := domain.ParseCostTiming(string(c.Timing))
		if !ok {
			return domain.ScenarioInputs{}, nil, domain.NewValidationError(field+".timing", "unknown timing %q", c.Timing)
		}
		c.Timing = timing
		c.Amount = n.floor(field+".amount", c.Amount)
		if c.Amount.IsZero() {
			n.warn(domain.WarnZeroCost, field+".amount", "cost %q is zero; confirm this is intentional", c.Name)
		}
	}

	for i := range in.Benefits {
		b := &in.Benefits[i]
		field := fmt.Sprintf("benefits[%d]", i)
		b.Name = strings.TrimSpace(b.Name)
		if b.Name == "" {
			return domain.ScenarioInputs{}, nil, domain.NewValidationError(field+".name", "is required")
		}
		b.AnnualValue = n.floor(field+".annual_value", b.AnnualValue)
		if w := b.WaitingTime; w != nil {
			wf := field + ".waiting_time."
			w.ManualDays = n.floor(wf+"manual_days", w.ManualDays)
			w.AutomatedDays = n.floor(wf+"automated_days", w.AutomatedDays)
			w.SitesPerYear = n.floor(wf+"sites_per_year", w.SitesPerYear)
			w.ValuePerSiteDay = n.floor(wf+"value_per_site_day", w.ValuePerSiteDay)
			if w.AutomatedDays.GreaterThan(w.ManualDays) {
				n.warn(domain.WarnSlowerAutomation, wf+"automated_days",
					"automated deployment takes %s days per site, manual takes %s days", w.AutomatedDays.String(), w.ManualDays.String())
			}
		}
	}

	if in.TechDebt != nil {
		normalizeDebt(n, "tech_debt", in.TechDebt)
	}
	if in.CSATDebt != nil {
		normalizeDebt(n, "csat_debt", in.CSATDebt)
	}

	for _, f := range in.ManualMinutes.Fields() {
		*f.Value = n.floor("manual_minutes."+f.Key, *f.Value)
	}
	for _, f := range in.AutomatedMinutes.Fields() {
		*f.Value = n.floor("automated_minutes."+f.Key, *f.Value)
	}
	if manual, auto := in.ManualMinutes.Total(), in.AutomatedMinutes.Total(); auto.GreaterThan(manual) {
		n.warn(domain.WarnSlowerAutomation, "automated_minutes",
			"automated workflow takes %s min per change, manual takes %s min", auto.String(), manual.String())
	}

	if in.CSAT != nil {
		if err := normalizeCSAT(n, in.CSAT); err != nil {
			return domain.ScenarioInputs{}, nil, err
		}
	}

	in.Footprint.SwitchesPerLocation = n.floorInt("footprint.switches_per_location", in.Footprint.SwitchesPerLocation)
	in.Footprint.Locations = n.floorInt("footprint.locations", in.Footprint.Locations)
	in.QuickROI.ImplementHours = n.floor("quick_roi.implement_hours", in.QuickROI.ImplementHours)
	in.QuickROI.MaintainHoursPerYear = n.floor("quick_roi.maintain_hours_per_year", in.QuickROI.MaintainHoursPerYear)

	return in, n.warnings, nil
}

func normalizeDebt(n *normalizer, prefix string, d *domain.DebtConfig) {
	d.BaseAnnualCost = n.floor(prefix+".base_annual_cost", d.BaseAnnualCost)
	d.RemediationOneTimeCost = n.floor(prefix+".remediation_one_time_cost", d.RemediationOneTimeCost)
	if !d.RemediationEnabled {
		d.ResidualPct = hundred
		return
	}
	d.ResidualPct = n.pct(prefix+".residual_pct", d.ResidualPct)
}

func normalizeCSAT(n *normalizer, c *domain.CSATInputs) error {
	c.ChangesPerMonth = n.floor("csat.changes_per_month", c.ChangesPerMonth)
	c.ResponsesPerChange = n.floor("csat.responses_per_change", c.ResponsesPerChange)
	c.ResponseRatePct = n.pct("csat.response_rate_pct", c.ResponseRatePct)
	c.WeightHappy = n.floor("csat.weight_happy", c.WeightHappy)
	c.WeightNeutral = n.floor("csat.weight_neutral", c.WeightNeutral)
	c.WeightSad = n.floor("csat.weight_sad", c.WeightSad)

	if c.Sentiment == "" {
		c.Sentiment = domain.SentimentMostlyHappy
	} else {
		preset, ok := domain.ParseSentimentPreset(string(c.Sentiment))
		if !ok {
			return domain.NewValidationError("csat.sentiment", "unknown sentiment %q", c.Sentiment)
		}
		c.Sentiment = preset
	}

	if c.ExpectedTotal != nil {
		v := n.floorInt("csat.expected_total", *c.ExpectedTotal)
		c.ExpectedTotal = &v
	}

	if c.Sentiment == domain.SentimentManual {
		if c.Counts == nil {
			return domain.NewValidationError("csat.counts", "required when sentiment is manual")
		}
		c.Counts.Happy = n.floorInt("csat.counts.happy", c.Counts.Happy)
		c.Counts.Neutral = n.floorInt("csat.counts.neutral", c.Counts.Neutral)
		c.Counts.Sad = n.floorInt("csat.counts.sad", c.Counts.Sad)
	} else {
		c.Counts = nil
	}
	return nil
}

// NormalizeCSAT canonicalizes standalone CSAT inputs the same way Normalize
// treats the csat block of a scenario
func NormalizeCSAT(raw domain.CSATInputs) (domain.CSATInputs, []domain.ConsistencyWarning, error) {
	n := &normalizer{}
	c := raw.Clone()
	if err := normalizeCSAT(n, &c); err != nil {
		return domain.CSATInputs{}, nil, err
	}
	return c, n.warnings, nil
}
