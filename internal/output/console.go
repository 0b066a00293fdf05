package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders the full business case as a styled text report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(res *domain.ScenarioResult) ([]byte, error) {
	var buf bytes.Buffer
	in := res.Inputs

	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintln(&buf, TitleStyle.Render("BUSINESS CASE: "+in.Title))
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	if in.Description != "" {
		fmt.Fprintln(&buf, in.Description)
	}
	fmt.Fprintln(&buf)

	section(&buf, "ASSUMPTIONS")
	line(&buf, "Acquisition strategy", string(in.AcquisitionStrategy))
	line(&buf, "Automation coverage", FormatPercentage(in.AutomationCoveragePct))
	line(&buf, "Hourly rate", FormatCurrency(in.HourlyRate))
	line(&buf, "Discount rate", FormatPercentage(in.DiscountRatePct))
	line(&buf, "Horizon", fmt.Sprintf("%d years", in.Years))
	fmt.Fprintln(&buf)

	ts := res.TimeSavings
	section(&buf, "TIME SAVINGS")
	line(&buf, "Changes per year", ts.TasksPerYear.StringFixed(0))
	line(&buf, "Minutes per change (manual)", ts.ManualMinutes.StringFixed(1))
	line(&buf, "Minutes per change (automated)", ts.AutomatedMinutes.StringFixed(1))
	line(&buf, "Minutes saved per change", ts.MinutesSavedPerChange.StringFixed(1))
	line(&buf, "Annual hours saved", ts.AnnualHoursSaved.StringFixed(1))
	line(&buf, "Annual cost savings", FormatCurrency(ts.AnnualCostSavings))
	fmt.Fprintln(&buf)

	writeDebt(&buf, "TECHNICAL DEBT", res.TechDebt)
	writeDebt(&buf, "CSAT DEBT", res.CSATDebt)

	if res.CSAT != nil {
		m := res.CSAT
		section(&buf, "CUSTOMER EFFORT")
		line(&buf, "Responses per year", m.ResponsesPerYear.StringFixed(1))
		line(&buf, "Happy / neutral / sad", fmt.Sprintf("%d / %d / %d", m.Counts.Happy, m.Counts.Neutral, m.Counts.Sad))
		line(&buf, "Customer effort score", FormatOptional(m.CES, func(d decimal.Decimal) string { return d.StringFixed(2) }))
		line(&buf, "Average cost per response", FormatOptional(m.AvgCostPerResponse, FormatCurrency))
		line(&buf, "Annual CSAT cost", FormatCurrency(m.AnnualCost))
		fmt.Fprintln(&buf)
	}

	section(&buf, "COSTS & BENEFITS")
	for _, cost := range in.Costs {
		line(&buf, fmt.Sprintf("%s (%s)", cost.Name, cost.Timing), FormatCurrency(cost.Amount))
	}
	for _, b := range in.Benefits {
		line(&buf, fmt.Sprintf("%s [%s]", b.Name, b.Category), FormatCurrency(b.AnnualValue))
		if b.WaitingTime != nil && b.Methodology != "" {
			fmt.Fprintf(&buf, "    %s\n", b.Methodology)
		}
	}
	line(&buf, "Project cost (Y0)", FormatCurrency(res.ProjectCost))
	line(&buf, "Annual run cost (effective)", FormatCurrency(res.AnnualRunCost))
	line(&buf, "First-year total cost", FormatCurrency(res.FirstYearTotalCost))
	line(&buf, "Annual total benefit", FormatCurrency(res.AnnualTotalBenefit))
	line(&buf, "Annual net benefit", signed(res.AnnualNetBenefit.IsNegative(), FormatCurrency(res.AnnualNetBenefit)))
	fmt.Fprintln(&buf)

	section(&buf, "CASH FLOWS")
	fmt.Fprintf(&buf, "  %-6s %18s %18s\n", "Year", "Cash flow", "Cumulative")
	running := decimal.Zero
	for year, cf := range res.CashFlows {
		running = running.Add(cf)
		fmt.Fprintf(&buf, "  %-6d %18s %18s\n", year, FormatCurrency(cf), FormatCurrency(running))
	}
	fmt.Fprintln(&buf)

	m := res.Metrics
	section(&buf, "INVESTMENT METRICS")
	line(&buf, "NPV", signed(m.NPV.IsNegative(), FormatCurrency(m.NPV)))
	line(&buf, "IRR", FormatOptional(m.IRR, FormatRate))
	line(&buf, "Payback", FormatOptional(m.Payback, FormatYears))
	for _, cp := range m.Cumulative {
		line(&buf, fmt.Sprintf("Cumulative cash (Y%d)", cp.Year), FormatCurrency(cp.Value))
	}
	fmt.Fprintln(&buf)

	s := res.Sanity
	section(&buf, "SANITY CHECKS")
	line(&buf, "Devices in scope", fmt.Sprintf("%d", s.TotalDevices))
	line(&buf, "Hours saved per device/yr", FormatOptional(s.HoursPerDevicePerYear, func(d decimal.Decimal) string { return d.StringFixed(2) }))
	line(&buf, "Hours saved per site/yr", FormatOptional(s.HoursPerSitePerYear, func(d decimal.Decimal) string { return d.StringFixed(2) }))
	line(&buf, "Benefit per device/yr", FormatOptional(s.BenefitPerDevicePerYear, FormatCurrency))
	line(&buf, "Benefit per site/yr", FormatOptional(s.BenefitPerSitePerYear, FormatCurrency))
	line(&buf, "Benefit per change", FormatOptional(s.BenefitPerChange, FormatCurrency))
	line(&buf, "Quick ROI (1 year)", FormatOptional(s.QuickROIPct, FormatPercentage))

	fmt.Fprintln(&buf)
	section(&buf, "MODEL NOTES")
	for _, note := range ModelAssumptions(res.Inputs) {
		fmt.Fprintf(&buf, "  • %s\n", note)
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintln(&buf)
		section(&buf, "WARNINGS")
		for _, w := range res.Warnings {
			fmt.Fprintf(&buf, "• %s\n", WarningStyle.Render(w.String()))
		}
	}

	return buf.Bytes(), nil
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprintln(buf, SectionStyle.Render(title))
}

func line(buf *bytes.Buffer, label, value string) {
	fmt.Fprintf(buf, "  %s %s\n", LabelStyle.Render(fmt.Sprintf("%-32s", label+":")), value)
}

func writeDebt(buf *bytes.Buffer, title string, d domain.DebtBreakdown) {
	if !d.Included {
		return
	}
	section(buf, title)
	line(buf, "Base annual cost (100% impact)", FormatCurrency(d.BaseAnnual))
	line(buf, "Impact after automation", FormatRate(d.ImpactPct))
	line(buf, "Annual cost at impact", FormatCurrency(d.AnnualAtImpact))
	line(buf, "Residual after remediation", FormatPercentage(d.ResidualPct))
	line(buf, "Annual cost after remediation", FormatCurrency(d.AnnualAfterRemediation))
	if !d.RemediationOneTime.IsZero() {
		line(buf, "Remediation (one-time)", FormatCurrency(d.RemediationOneTime))
	}
	fmt.Fprintln(buf)
}
