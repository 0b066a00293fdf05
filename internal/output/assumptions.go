package output

import (
	"fmt"

	"github.com/rgehrsitz/bizcase/internal/domain"
)

// ModelAssumptions lists the conventions behind a computed business case,
// rendered at the end of detailed outputs.
func ModelAssumptions(in domain.ScenarioInputs) []string {
	return []string{
		fmt.Sprintf("Cash flows are discounted annually at %s, end of year", FormatPercentage(in.DiscountRatePct)),
		"Year 0 carries all one-time costs; Years 1..N repeat the same net benefit",
		"Debt impact scales linearly with the share of changes left manual",
		"No inflation, taxes or currency conversion",
	}
}
