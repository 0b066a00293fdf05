package domain

import (
	"github.com/shopspring/decimal"
)

// CashFlowSeries is a signed Year-0..Year-N cash-flow series in USD.
// Index 0 is the (negated) project cost; later entries are not assumed constant.
type CashFlowSeries []decimal.Decimal

// Years returns the horizon covered after Year 0
func (cf CashFlowSeries) Years() int {
	if len(cf) == 0 {
		return 0
	}
	return len(cf) - 1
}

// Sum returns the undiscounted total of the series
func (cf CashFlowSeries) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, v := range cf {
		total = total.Add(v)
	}
	return total
}

// Cumulative returns the running total through year n inclusive.
// Years past the horizon return the full sum; negative years return zero.
func (cf CashFlowSeries) Cumulative(n int) decimal.Decimal {
	if n < 0 {
		return decimal.Zero
	}
	if n >= len(cf) {
		n = len(cf) - 1
	}
	return cf[:n+1].Sum()
}

// Checkpoint is the cumulative cash position at a given year
type Checkpoint struct {
	Year  int             `yaml:"year" json:"year"`
	Value decimal.Decimal `yaml:"value" json:"value"`
}

// Metrics are the investment metrics derived from a cash-flow series.
// IRR and Payback are nil when mathematically undefined.
type Metrics struct {
	NPV        decimal.Decimal  `json:"npv"`
	IRR        *decimal.Decimal `json:"irr"`
	Payback    *decimal.Decimal `json:"payback"`
	Cumulative []Checkpoint     `json:"cumulative"`
}

// CumulativeAt looks up a computed checkpoint
func (m Metrics) CumulativeAt(year int) (decimal.Decimal, bool) {
	for _, c := range m.Cumulative {
		if c.Year == year {
			return c.Value, true
		}
	}
	return decimal.Zero, false
}

// DebtBreakdown shows each stage of the debt impact calculation
type DebtBreakdown struct {
	Included               bool            `json:"included"`
	BaseAnnual             decimal.Decimal `json:"base_annual"`
	ImpactPct              decimal.Decimal `json:"impact_pct"` // fraction in [0,1]
	AnnualAtImpact         decimal.Decimal `json:"annual_at_impact"`
	ResidualPct            decimal.Decimal `json:"residual_pct"` // percent in [0,100]
	AnnualAfterRemediation decimal.Decimal `json:"annual_after_remediation"`
	RemediationOneTime     decimal.Decimal `json:"remediation_one_time"`
}

// CSATMetrics are the outputs of the CSAT/CES scoring model
type CSATMetrics struct {
	ChangesPerYear     decimal.Decimal  `json:"changes_per_year"`
	ResponsesPerYear   decimal.Decimal  `json:"responses_per_year"`
	ExpectedTotal      int              `json:"expected_total"`
	Counts             SentimentCounts  `json:"counts"`
	CES                *decimal.Decimal `json:"ces"`
	TotalCost          decimal.Decimal  `json:"total_cost"`
	AvgCostPerResponse *decimal.Decimal `json:"avg_cost_per_response"`
	AnnualCost         decimal.Decimal  `json:"annual_cost"`
}

// TimeSavings is the engineer time-savings benefit breakdown
type TimeSavings struct {
	TasksPerYear          decimal.Decimal `json:"tasks_per_year"`
	ManualMinutes         decimal.Decimal `json:"manual_minutes"`
	AutomatedMinutes      decimal.Decimal `json:"automated_minutes"`
	MinutesSavedPerChange decimal.Decimal `json:"minutes_saved_per_change"`
	HoursSavedPerChange   decimal.Decimal `json:"hours_saved_per_change"`
	AutomatedTasksPerYear decimal.Decimal `json:"automated_tasks_per_year"`
	AnnualHoursSaved      decimal.Decimal `json:"annual_hours_saved"`
	AnnualCostSavings     decimal.Decimal `json:"annual_cost_savings"`
}

// SanityMetrics are per-unit gut-check figures; nil means the divisor was zero
type SanityMetrics struct {
	TotalDevices            int              `json:"total_devices"`
	HoursPerDevicePerYear   *decimal.Decimal `json:"hours_per_device_per_year"`
	HoursPerSitePerYear     *decimal.Decimal `json:"hours_per_site_per_year"`
	BenefitPerDevicePerYear *decimal.Decimal `json:"benefit_per_device_per_year"`
	BenefitPerSitePerYear   *decimal.Decimal `json:"benefit_per_site_per_year"`
	BenefitPerChange        *decimal.Decimal `json:"benefit_per_change"`
	QuickROICost            decimal.Decimal  `json:"quick_roi_cost"`
	QuickROIPct             *decimal.Decimal `json:"quick_roi_pct"`
}

// ScenarioResult is everything the engine computes for one scenario
type ScenarioResult struct {
	Inputs ScenarioInputs `json:"inputs"`

	TimeSavings TimeSavings   `json:"time_savings"`
	TechDebt    DebtBreakdown `json:"tech_debt"`
	CSATDebt    DebtBreakdown `json:"csat_debt"`
	CSAT        *CSATMetrics  `json:"csat,omitempty"`

	BaseProjectCost    decimal.Decimal `json:"base_project_cost"`
	ProjectCost        decimal.Decimal `json:"project_cost"`
	BaseAnnualRunCost  decimal.Decimal `json:"base_annual_run_cost"`
	AnnualRunCost      decimal.Decimal `json:"annual_run_cost"`
	AdditionalBenefits decimal.Decimal `json:"additional_benefits"`
	AnnualTotalBenefit decimal.Decimal `json:"annual_total_benefit"`
	AnnualNetBenefit   decimal.Decimal `json:"annual_net_benefit"`
	FirstYearTotalCost decimal.Decimal `json:"first_year_total_cost"`

	CashFlows CashFlowSeries `json:"cash_flows"`
	Metrics   Metrics        `json:"metrics"`
	Sanity    SanityMetrics  `json:"sanity"`

	Warnings []ConsistencyWarning `json:"warnings,omitempty"`
}
