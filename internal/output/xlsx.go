package output

import (
	"fmt"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook
const (
	SheetSummary   = "Summary"
	SheetCashFlows = "Cash Flows"
	SheetCosts     = "Costs"
	SheetBenefits  = "Benefits"
)

// XLSXFormatter exports the business case as an Excel workbook with summary,
// cash-flow, cost and benefit sheets. Numbers are written as numbers.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string { return "xlsx" }

func (x XLSXFormatter) Format(res *domain.ScenarioResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the summary.
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}

	summary := [][]any{
		{"Title", res.Inputs.Title},
		{"Acquisition strategy", string(res.Inputs.AcquisitionStrategy)},
		{"Automation coverage (%)", num(res.Inputs.AutomationCoveragePct)},
		{"Discount rate (%)", num(res.Inputs.DiscountRatePct)},
		{"Years", res.Inputs.Years},
		{"Annual cost savings", num(res.TimeSavings.AnnualCostSavings)},
		{"Project cost (Y0)", num(res.ProjectCost)},
		{"Annual run cost (effective)", num(res.AnnualRunCost)},
		{"First-year total cost", num(res.FirstYearTotalCost)},
		{"Annual total benefit", num(res.AnnualTotalBenefit)},
		{"Annual net benefit", num(res.AnnualNetBenefit)},
		{"NPV", num(res.Metrics.NPV)},
		{"IRR", optionalNum(res.Metrics.IRR)},
		{"Payback (years)", optionalNum(res.Metrics.Payback)},
	}
	for _, cp := range res.Metrics.Cumulative {
		summary = append(summary, []any{fmt.Sprintf("Cumulative cash (Y%d)", cp.Year), num(cp.Value)})
	}
	if err := writeSheet(f, SheetSummary, []string{"Metric", "Value"}, summary); err != nil {
		return nil, err
	}

	flows := make([][]any, 0, len(res.CashFlows))
	running := decimal.Zero
	for year, cf := range res.CashFlows {
		running = running.Add(cf)
		flows = append(flows, []any{year, num(cf), num(running)})
	}
	if err := writeSheet(f, SheetCashFlows, []string{"Year", "Cash flow", "Cumulative"}, flows); err != nil {
		return nil, err
	}

	costs := make([][]any, 0, len(res.Inputs.Costs))
	for _, c := range res.Inputs.Costs {
		costs = append(costs, []any{c.Name, string(c.Timing), num(c.Amount)})
	}
	if err := writeSheet(f, SheetCosts, []string{"Name", "Timing", "Amount"}, costs); err != nil {
		return nil, err
	}

	benefits := make([][]any, 0, len(res.Inputs.Benefits))
	for _, b := range res.Inputs.Benefits {
		benefits = append(benefits, []any{b.Category, b.Name, num(b.AnnualValue), b.Methodology})
	}
	if err := writeSheet(f, SheetBenefits, []string{"Category", "Name", "Annual value", "Methodology"}, benefits); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// num converts for spreadsheet cells; float64 precision is enough for display
func num(d decimal.Decimal) float64 {
	v, _ := d.Float64()
	return v
}

func optionalNum(d *decimal.Decimal) any {
	if d == nil {
		return "n/a"
	}
	return num(*d)
}
