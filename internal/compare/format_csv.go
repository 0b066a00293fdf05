package compare

import (
	"encoding/csv"
	"strings"

	"github.com/shopspring/decimal"
)

// CSVFormatter formats comparison results as CSV, one line per alternative and metric
type CSVFormatter struct{}

// Format generates CSV output for comparison results. Values are written
// unformatted; missing values are written as "not available".
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Base",
		"Scenario",
		"Metric",
		"Key",
		"Value A",
		"Value B",
		"Delta (B-A)",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, alt := range compSet.Alternatives {
		for _, row := range alt.Rows {
			if err := writer.Write(cf.formatRow(compSet.BaseScenarioName, alt.ScenarioName, row)); err != nil {
				return "", err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison row as a CSV record
func (cf *CSVFormatter) formatRow(base, scenario string, row Row) []string {
	record := []string{base, scenario, row.Label, row.Key}
	if row.Kind == KindText {
		return append(record, textValue(row.TextA), textValue(row.TextB), "")
	}
	return append(record, rawValue(row.A), rawValue(row.B), rawValue(row.Delta))
}

// textValue renders a missing text field the same way as a missing number
func textValue(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func rawValue(v *decimal.Decimal) string {
	if v == nil {
		return NotAvailable
	}
	return v.String()
}
