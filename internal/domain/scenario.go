package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AcquisitionStrategy records whether the automation is bought or built in-house
type AcquisitionStrategy string

const (
	StrategyBuy   AcquisitionStrategy = "Buy"
	StrategyBuild AcquisitionStrategy = "Build"
)

// ParseAcquisitionStrategy accepts "buy", "Buy tool(s)", "build", "Build in-house" and similar
func ParseAcquisitionStrategy(s string) (AcquisitionStrategy, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(v, "buy"):
		return StrategyBuy, true
	case strings.HasPrefix(v, "build"):
		return StrategyBuild, true
	default:
		return "", false
	}
}

// Slug returns the short label used in exported file names
func (s AcquisitionStrategy) Slug() string {
	if s == StrategyBuy {
		return "Buy"
	}
	return "Build"
}

// CostTiming says whether a cost lands once in Year 0 or every year
type CostTiming string

const (
	TimingOneTime CostTiming = "one_time"
	TimingAnnual  CostTiming = "annual"
)

// ParseCostTiming accepts "one_time", "One-time", "onetime" and "annual"
func ParseCostTiming(s string) (CostTiming, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.NewReplacer("-", "", "_", "", " ", "").Replace(v)
	switch v {
	case "onetime":
		return TimingOneTime, true
	case "annual", "yearly", "recurring":
		return TimingAnnual, true
	default:
		return "", false
	}
}

// CostItem is a single line in the cost breakdown
type CostItem struct {
	Name   string          `yaml:"name" json:"name"`
	Timing CostTiming      `yaml:"timing" json:"timing"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// DebtConfig models technical or CSAT debt as a cost at 100% impact,
// with an optional one-time remediation that leaves a residual share.
type DebtConfig struct {
	BaseAnnualCost         decimal.Decimal `yaml:"base_annual_cost" json:"base_annual_cost"`
	RemediationEnabled     bool            `yaml:"remediation_enabled" json:"remediation_enabled"`
	RemediationOneTimeCost decimal.Decimal `yaml:"remediation_one_time_cost" json:"remediation_one_time_cost"`
	ResidualPct            decimal.Decimal `yaml:"residual_pct" json:"residual_pct"` // percent remaining after remediation
}

// BenefitItem is an additional quantified benefit beyond engineer time savings
type BenefitItem struct {
	Category    string          `yaml:"category" json:"category"`
	Name        string          `yaml:"name" json:"name"`
	AnnualValue decimal.Decimal `yaml:"annual_value" json:"annual_value"`
	Methodology string          `yaml:"methodology,omitempty" json:"methodology,omitempty"`

	// WaitingTime, when set and AnnualValue is zero, derives the annual value
	// from deployment days saved per site.
	WaitingTime *WaitingTime `yaml:"waiting_time,omitempty" json:"waiting_time,omitempty"`
}

func cloneBenefits(benefits []BenefitItem) []BenefitItem {
	if benefits == nil {
		return nil
	}
	out := append([]BenefitItem(nil), benefits...)
	for i, b := range out {
		if b.WaitingTime != nil {
			w := *b.WaitingTime
			out[i].WaitingTime = &w
		}
	}
	return out
}

// WaitingTime estimates the value of shorter per-site deployment waits
type WaitingTime struct {
	ManualDays      decimal.Decimal `yaml:"manual_days" json:"manual_days"`
	AutomatedDays   decimal.Decimal `yaml:"automated_days" json:"automated_days"`
	SitesPerYear    decimal.Decimal `yaml:"sites_per_year" json:"sites_per_year"`
	ValuePerSiteDay decimal.Decimal `yaml:"value_per_site_day" json:"value_per_site_day"`
}

// StepMinutes holds minutes per change for each of the eight change steps
type StepMinutes struct {
	ObtainDetails        decimal.Decimal `yaml:"obtain_details" json:"obtain_details"`
	DevelopPayload       decimal.Decimal `yaml:"develop_payload" json:"develop_payload"`
	QuantifyImpact       decimal.Decimal `yaml:"quantify_impact" json:"quantify_impact"`
	ChangeManagement     decimal.Decimal `yaml:"change_management" json:"change_management"`
	CurrentStateAnalysis decimal.Decimal `yaml:"current_state_analysis" json:"current_state_analysis"`
	Execute              decimal.Decimal `yaml:"execute" json:"execute"`
	TestVerification     decimal.Decimal `yaml:"test_verification" json:"test_verification"`
	Documentation        decimal.Decimal `yaml:"documentation" json:"documentation"`
}

// StepField pairs a step's key with a pointer to its value
type StepField struct {
	Key   string
	Value *decimal.Decimal
}

// Fields returns the steps in workflow order
func (s *StepMinutes) Fields() []StepField {
	return []StepField{
		{"obtain_details", &s.ObtainDetails},
		{"develop_payload", &s.DevelopPayload},
		{"quantify_impact", &s.QuantifyImpact},
		{"change_management", &s.ChangeManagement},
		{"current_state_analysis", &s.CurrentStateAnalysis},
		{"execute", &s.Execute},
		{"test_verification", &s.TestVerification},
		{"documentation", &s.Documentation},
	}
}

// Total returns the sum of all eight steps
func (s StepMinutes) Total() decimal.Decimal {
	total := decimal.Zero
	for _, f := range s.Fields() {
		total = total.Add(*f.Value)
	}
	return total
}

// Footprint describes the estate in scope; only used for sanity metrics
type Footprint struct {
	SwitchesPerLocation int `yaml:"switches_per_location" json:"switches_per_location"`
	Locations           int `yaml:"locations" json:"locations"`
}

// TotalDevices returns switches per location times locations
func (f Footprint) TotalDevices() int {
	return f.SwitchesPerLocation * f.Locations
}

// QuickROIInputs feeds the one-year quick ROI estimate
type QuickROIInputs struct {
	ImplementHours       decimal.Decimal `yaml:"implement_hours" json:"implement_hours"`
	MaintainHoursPerYear decimal.Decimal `yaml:"maintain_hours_per_year" json:"maintain_hours_per_year"`
}

// ScenarioInputs is the complete, immutable input snapshot for one business case
type ScenarioInputs struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	AutomationCoveragePct decimal.Decimal     `yaml:"automation_coverage_pct" json:"automation_coverage_pct"`
	HourlyRate            decimal.Decimal     `yaml:"hourly_rate" json:"hourly_rate"`
	DiscountRatePct       decimal.Decimal     `yaml:"discount_rate_pct" json:"discount_rate_pct"`
	Years                 int                 `yaml:"years" json:"years"`
	AcquisitionStrategy   AcquisitionStrategy `yaml:"acquisition_strategy" json:"acquisition_strategy"`

	Costs    []CostItem    `yaml:"cost_breakdown" json:"cost_breakdown"`
	TechDebt *DebtConfig   `yaml:"tech_debt,omitempty" json:"tech_debt,omitempty"`
	CSATDebt *DebtConfig   `yaml:"csat_debt,omitempty" json:"csat_debt,omitempty"`
	Benefits []BenefitItem `yaml:"benefits" json:"benefits"`

	ManualMinutes    StepMinutes     `yaml:"manual_minutes" json:"manual_minutes"`
	AutomatedMinutes StepMinutes     `yaml:"automated_minutes" json:"automated_minutes"`
	TasksPerMonth    decimal.Decimal `yaml:"tasks_per_month" json:"tasks_per_month"`

	CSAT      *CSATInputs    `yaml:"csat,omitempty" json:"csat,omitempty"`
	Footprint Footprint      `yaml:"footprint" json:"footprint"`
	QuickROI  QuickROIInputs `yaml:"quick_roi" json:"quick_roi"`
}

// Clone returns a deep copy so transforms never share slices or pointers with the receiver
func (s ScenarioInputs) Clone() ScenarioInputs {
	out := s
	if s.Costs != nil {
		out.Costs = append([]CostItem(nil), s.Costs...)
	}
	out.Benefits = cloneBenefits(s.Benefits)
	if s.TechDebt != nil {
		d := *s.TechDebt
		out.TechDebt = &d
	}
	if s.CSATDebt != nil {
		d := *s.CSATDebt
		out.CSATDebt = &d
	}
	if s.CSAT != nil {
		c := s.CSAT.Clone()
		out.CSAT = &c
	}
	return out
}
