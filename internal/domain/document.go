package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocumentVersion is the version tag written into every persisted scenario
const DocumentVersion = "1.0"

// ErrUnsupportedVersion is returned when a document carries an unknown version tag
var ErrUnsupportedVersion = errors.New("unsupported scenario document version")

// ScenarioDocument is the flat persisted form of a computed scenario. It holds
// every input field plus the computed outputs, and can be turned back into
// ScenarioInputs for re-computation or comparison.
type ScenarioDocument struct {
	ID        string `yaml:"id" json:"id"`
	Timestamp string `yaml:"timestamp" json:"timestamp"`
	Version   string `yaml:"version" json:"version"`

	// Inputs
	Title                 string              `yaml:"title" json:"title"`
	Description           string              `yaml:"description" json:"description"`
	Years                 int                 `yaml:"years" json:"years"`
	AutomationCoveragePct decimal.Decimal     `yaml:"automation_coverage_pct" json:"automation_coverage_pct"`
	HourlyRate            decimal.Decimal     `yaml:"hourly_rate" json:"hourly_rate"`
	DiscountRatePct       decimal.Decimal     `yaml:"discount_rate_pct" json:"discount_rate_pct"`
	AcquisitionStrategy   AcquisitionStrategy `yaml:"acquisition_strategy" json:"acquisition_strategy"`
	CostBreakdown         []CostItem          `yaml:"cost_breakdown" json:"cost_breakdown"`
	TasksPerMonth         decimal.Decimal     `yaml:"tasks_per_month" json:"tasks_per_month"`
	ManualMinutes         StepMinutes         `yaml:"manual_minutes" json:"manual_minutes"`
	AutomatedMinutes      StepMinutes         `yaml:"automated_minutes" json:"automated_minutes"`
	SwitchesPerLocation   int                 `yaml:"switches_per_location" json:"switches_per_location"`
	NumLocations          int                 `yaml:"num_locations" json:"num_locations"`
	ImplementHours        decimal.Decimal     `yaml:"implement_hours" json:"implement_hours"`
	MaintainHoursPerYear  decimal.Decimal     `yaml:"maintain_hours_per_year" json:"maintain_hours_per_year"`

	IncludeTechDebt            bool            `yaml:"include_tech_debt" json:"include_tech_debt"`
	TechDebtBaseAnnual         decimal.Decimal `yaml:"tech_debt_base_annual" json:"tech_debt_base_annual"`
	TechDebtRemediationEnabled bool            `yaml:"tech_debt_remediation_enabled" json:"tech_debt_remediation_enabled"`
	TechDebtRemediationOneTime decimal.Decimal `yaml:"tech_debt_remediation_one_time" json:"tech_debt_remediation_one_time"`
	TechDebtResidualPct        decimal.Decimal `yaml:"tech_debt_residual_pct" json:"tech_debt_residual_pct"`

	IncludeCSATDebt            bool            `yaml:"include_csat_debt" json:"include_csat_debt"`
	CSATDebtBaseAnnual         decimal.Decimal `yaml:"csat_debt_base_annual" json:"csat_debt_base_annual"`
	CSATDebtRemediationEnabled bool            `yaml:"csat_debt_remediation_enabled" json:"csat_debt_remediation_enabled"`
	CSATDebtRemediationOneTime decimal.Decimal `yaml:"csat_debt_remediation_one_time" json:"csat_debt_remediation_one_time"`
	CSATDebtResidualPct        decimal.Decimal `yaml:"csat_debt_residual_pct" json:"csat_debt_residual_pct"`

	CSAT     *CSATInputs   `yaml:"csat,omitempty" json:"csat,omitempty"`
	Benefits []BenefitItem `yaml:"benefits" json:"benefits"`

	// Outputs
	TasksPerYear             decimal.Decimal  `yaml:"tasks_per_year" json:"tasks_per_year"`
	ManualTotalMinutes       decimal.Decimal  `yaml:"manual_total_minutes" json:"manual_total_minutes"`
	AutoTotalMinutes         decimal.Decimal  `yaml:"auto_total_minutes" json:"auto_total_minutes"`
	MinutesSavedPerChange    decimal.Decimal  `yaml:"minutes_saved_per_change" json:"minutes_saved_per_change"`
	AnnualHoursSaved         decimal.Decimal  `yaml:"annual_hours_saved" json:"annual_hours_saved"`
	AnnualCostSavings        decimal.Decimal  `yaml:"annual_cost_savings" json:"annual_cost_savings"`
	TechDebtImpactPct        decimal.Decimal  `yaml:"tech_debt_impact_pct" json:"tech_debt_impact_pct"`
	TechDebtAnnualAfter      decimal.Decimal  `yaml:"tech_debt_annual_after" json:"tech_debt_annual_after"`
	CSATDebtImpactPct        decimal.Decimal  `yaml:"csat_debt_impact_pct" json:"csat_debt_impact_pct"`
	CSATDebtAnnualAfter      decimal.Decimal  `yaml:"csat_debt_annual_after" json:"csat_debt_annual_after"`
	CES                      *decimal.Decimal `yaml:"ces" json:"ces"`
	CSATAvgCostPerResponse   *decimal.Decimal `yaml:"csat_avg_cost_per_response" json:"csat_avg_cost_per_response"`
	AnnualCSATCost           *decimal.Decimal `yaml:"annual_csat_cost" json:"annual_csat_cost"`
	AnnualAdditionalBenefits decimal.Decimal  `yaml:"annual_additional_benefits" json:"annual_additional_benefits"`
	AnnualTotalBenefit       decimal.Decimal  `yaml:"annual_total_benefit" json:"annual_total_benefit"`
	AnnualRunCost            decimal.Decimal  `yaml:"annual_run_cost" json:"annual_run_cost"`
	AnnualRunCostEffective   decimal.Decimal  `yaml:"annual_run_cost_effective" json:"annual_run_cost_effective"`
	AnnualNetBenefit         decimal.Decimal  `yaml:"annual_net_benefit" json:"annual_net_benefit"`
	ProjectCost              decimal.Decimal  `yaml:"project_cost" json:"project_cost"`
	FirstYearTotalCost       decimal.Decimal  `yaml:"first_year_total_cost" json:"first_year_total_cost"`
	CashFlows                CashFlowSeries   `yaml:"cash_flows" json:"cash_flows"`
	NPV                      decimal.Decimal  `yaml:"npv" json:"npv"`
	IRR                      *decimal.Decimal `yaml:"irr" json:"irr"`
	Payback                  *decimal.Decimal `yaml:"payback" json:"payback"`
	Cumulative               []Checkpoint     `yaml:"cumulative" json:"cumulative"`

	Warnings []ConsistencyWarning `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// NewScenarioDocument flattens a computed result into its persisted form
func NewScenarioDocument(res *ScenarioResult, now time.Time) *ScenarioDocument {
	in := res.Inputs
	doc := &ScenarioDocument{
		ID:        uuid.NewString(),
		Timestamp: now.Format(time.RFC3339),
		Version:   DocumentVersion,

		Title:                 in.Title,
		Description:           in.Description,
		Years:                 in.Years,
		AutomationCoveragePct: in.AutomationCoveragePct,
		HourlyRate:            in.HourlyRate,
		DiscountRatePct:       in.DiscountRatePct,
		AcquisitionStrategy:   in.AcquisitionStrategy,
		CostBreakdown:         append([]CostItem(nil), in.Costs...),
		TasksPerMonth:         in.TasksPerMonth,
		ManualMinutes:         in.ManualMinutes,
		AutomatedMinutes:      in.AutomatedMinutes,
		SwitchesPerLocation:   in.Footprint.SwitchesPerLocation,
		NumLocations:          in.Footprint.Locations,
		ImplementHours:        in.QuickROI.ImplementHours,
		MaintainHoursPerYear:  in.QuickROI.MaintainHoursPerYear,
		Benefits:              cloneBenefits(in.Benefits),

		TasksPerYear:             res.TimeSavings.TasksPerYear,
		ManualTotalMinutes:       res.TimeSavings.ManualMinutes,
		AutoTotalMinutes:         res.TimeSavings.AutomatedMinutes,
		MinutesSavedPerChange:    res.TimeSavings.MinutesSavedPerChange,
		AnnualHoursSaved:         res.TimeSavings.AnnualHoursSaved,
		AnnualCostSavings:        res.TimeSavings.AnnualCostSavings,
		TechDebtImpactPct:        res.TechDebt.ImpactPct,
		TechDebtAnnualAfter:      res.TechDebt.AnnualAfterRemediation,
		CSATDebtImpactPct:        res.CSATDebt.ImpactPct,
		CSATDebtAnnualAfter:      res.CSATDebt.AnnualAfterRemediation,
		AnnualAdditionalBenefits: res.AdditionalBenefits,
		AnnualTotalBenefit:       res.AnnualTotalBenefit,
		AnnualRunCost:            res.BaseAnnualRunCost,
		AnnualRunCostEffective:   res.AnnualRunCost,
		AnnualNetBenefit:         res.AnnualNetBenefit,
		ProjectCost:              res.ProjectCost,
		FirstYearTotalCost:       res.FirstYearTotalCost,
		CashFlows:                append(CashFlowSeries(nil), res.CashFlows...),
		NPV:                      res.Metrics.NPV,
		IRR:                      res.Metrics.IRR,
		Payback:                  res.Metrics.Payback,
		Cumulative:               append([]Checkpoint(nil), res.Metrics.Cumulative...),
		Warnings:                 append([]ConsistencyWarning(nil), res.Warnings...),
	}

	if in.TechDebt != nil {
		doc.IncludeTechDebt = true
		doc.TechDebtBaseAnnual = in.TechDebt.BaseAnnualCost
		doc.TechDebtRemediationEnabled = in.TechDebt.RemediationEnabled
		doc.TechDebtRemediationOneTime = in.TechDebt.RemediationOneTimeCost
		doc.TechDebtResidualPct = in.TechDebt.ResidualPct
	}
	if in.CSATDebt != nil {
		doc.IncludeCSATDebt = true
		doc.CSATDebtBaseAnnual = in.CSATDebt.BaseAnnualCost
		doc.CSATDebtRemediationEnabled = in.CSATDebt.RemediationEnabled
		doc.CSATDebtRemediationOneTime = in.CSATDebt.RemediationOneTimeCost
		doc.CSATDebtResidualPct = in.CSATDebt.ResidualPct
	}
	if in.CSAT != nil {
		c := in.CSAT.Clone()
		doc.CSAT = &c
	}
	if res.CSAT != nil {
		annual := res.CSAT.AnnualCost
		doc.CES = res.CSAT.CES
		doc.CSATAvgCostPerResponse = res.CSAT.AvgCostPerResponse
		doc.AnnualCSATCost = &annual
	}
	return doc
}

// Inputs rebuilds the scenario inputs stored in the document
func (d *ScenarioDocument) Inputs() (ScenarioInputs, error) {
	if d.Version != "" && d.Version != DocumentVersion {
		return ScenarioInputs{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, d.Version)
	}
	in := ScenarioInputs{
		Title:                 d.Title,
		Description:           d.Description,
		AutomationCoveragePct: d.AutomationCoveragePct,
		HourlyRate:            d.HourlyRate,
		DiscountRatePct:       d.DiscountRatePct,
		Years:                 d.Years,
		AcquisitionStrategy:   d.AcquisitionStrategy,
		Costs:                 append([]CostItem(nil), d.CostBreakdown...),
		Benefits:              cloneBenefits(d.Benefits),
		ManualMinutes:         d.ManualMinutes,
		AutomatedMinutes:      d.AutomatedMinutes,
		TasksPerMonth:         d.TasksPerMonth,
		Footprint: Footprint{
			SwitchesPerLocation: d.SwitchesPerLocation,
			Locations:           d.NumLocations,
		},
		QuickROI: QuickROIInputs{
			ImplementHours:       d.ImplementHours,
			MaintainHoursPerYear: d.MaintainHoursPerYear,
		},
	}
	if d.IncludeTechDebt {
		in.TechDebt = &DebtConfig{
			BaseAnnualCost:         d.TechDebtBaseAnnual,
			RemediationEnabled:     d.TechDebtRemediationEnabled,
			RemediationOneTimeCost: d.TechDebtRemediationOneTime,
			ResidualPct:            d.TechDebtResidualPct,
		}
	}
	if d.IncludeCSATDebt {
		in.CSATDebt = &DebtConfig{
			BaseAnnualCost:         d.CSATDebtBaseAnnual,
			RemediationEnabled:     d.CSATDebtRemediationEnabled,
			RemediationOneTimeCost: d.CSATDebtRemediationOneTime,
			ResidualPct:            d.CSATDebtResidualPct,
		}
	}
	if d.CSAT != nil {
		c := d.CSAT.Clone()
		in.CSAT = &c
	}
	return in, nil
}

// FieldValue is a document field read for comparison: either a number or text
type FieldValue struct {
	Number decimal.Decimal
	Text   string
	IsText bool
}

func number(v decimal.Decimal) (FieldValue, bool) { return FieldValue{Number: v}, true }

func optional(v *decimal.Decimal) (FieldValue, bool) {
	if v == nil {
		return FieldValue{}, false
	}
	return FieldValue{Number: *v}, true
}

// Lookup reads a field by its persisted key. Cumulative checkpoints are
// addressed as "cum_<year>". Undefined values (nil IRR, unknown keys,
// checkpoints that were not computed) report false.
func (d *ScenarioDocument) Lookup(key string) (FieldValue, bool) {
	switch key {
	case "title":
		return FieldValue{Text: d.Title, IsText: true}, true
	case "acquisition_strategy":
		return FieldValue{Text: string(d.AcquisitionStrategy), IsText: true}, true
	case "years":
		return number(decimal.NewFromInt(int64(d.Years)))
	case "automation_coverage_pct":
		return number(d.AutomationCoveragePct)
	case "hourly_rate":
		return number(d.HourlyRate)
	case "discount_rate_pct":
		return number(d.DiscountRatePct)
	case "project_cost":
		return number(d.ProjectCost)
	case "first_year_total_cost":
		return number(d.FirstYearTotalCost)
	case "annual_run_cost":
		return number(d.AnnualRunCost)
	case "annual_run_cost_effective":
		return number(d.AnnualRunCostEffective)
	case "annual_cost_savings":
		return number(d.AnnualCostSavings)
	case "annual_hours_saved":
		return number(d.AnnualHoursSaved)
	case "annual_additional_benefits":
		return number(d.AnnualAdditionalBenefits)
	case "annual_total_benefit":
		return number(d.AnnualTotalBenefit)
	case "annual_net_benefit":
		return number(d.AnnualNetBenefit)
	case "tech_debt_annual_after":
		return number(d.TechDebtAnnualAfter)
	case "csat_debt_annual_after":
		return number(d.CSATDebtAnnualAfter)
	case "npv":
		return number(d.NPV)
	case "irr":
		return optional(d.IRR)
	case "payback":
		return optional(d.Payback)
	case "ces":
		return optional(d.CES)
	case "csat_avg_cost_per_response":
		return optional(d.CSATAvgCostPerResponse)
	case "annual_csat_cost":
		return optional(d.AnnualCSATCost)
	}

	if rest, ok := strings.CutPrefix(key, "cum_"); ok {
		year, err := strconv.Atoi(rest)
		if err != nil {
			return FieldValue{}, false
		}
		for _, c := range d.Cumulative {
			if c.Year == year {
				return number(c.Value)
			}
		}
	}
	return FieldValue{}, false
}
