package compare

import (
	"fmt"
	"strings"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a side-by-side table for each alternative
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("BUSINESS CASE COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Input: %s\n", compSet.ConfigPath))
	}

	labelWidth := 30
	numWidth := 16

	for _, alt := range compSet.Alternatives {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s vs %s\n", compSet.BaseScenarioName, alt.ScenarioName))
		if alt.Description != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
		}
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
			labelWidth, "Metric",
			numWidth, tf.truncate(compSet.BaseScenarioName, numWidth),
			numWidth, tf.truncate(alt.ScenarioName, numWidth),
			numWidth, "Delta (B-A)"))
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, row := range alt.Rows {
			sb.WriteString(tf.formatRow(row, labelWidth, numWidth))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single metric row
func (tf *TableFormatter) formatRow(row Row, labelWidth, numWidth int) string {
	a, b := cellText(row)
	return fmt.Sprintf("%-*s %*s %*s %*s\n",
		labelWidth, tf.truncate(row.Label, labelWidth),
		numWidth, a,
		numWidth, b,
		numWidth, FormatDelta(row))
}

// cellText renders both sides of a row
func cellText(row Row) (string, string) {
	if row.Kind != KindText {
		return FormatValue(row.Kind, row.A), FormatValue(row.Kind, row.B)
	}
	return textValue(row.TextA), textValue(row.TextB)
}

// truncate shortens s to at most maxLen runes, marking the cut with "..."
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line NPV summary for each alternative
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.Alternatives {
		if i > 0 {
			sb.WriteString(" | ")
		}
		npvChange := NotAvailable
		if row, ok := alt.Row("npv"); ok && row.Available {
			npvChange = "NPV " + FormatDelta(row)
			if row.Delta.IsZero() {
				npvChange = "NPV ="
			}
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, npvChange))
	}

	return sb.String()
}
