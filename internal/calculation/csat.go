package calculation

import (
	"fmt"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
)

// Distribution is a happy/neutral/sad split summing to 1
type Distribution struct {
	Happy   decimal.Decimal
	Neutral decimal.Decimal
	Sad     decimal.Decimal
}

var third = one.Div(decimal.NewFromInt(3))

var presets = map[domain.SentimentPreset]Distribution{
	domain.SentimentMostlyHappy: {
		Happy:   decimal.RequireFromString("0.60"),
		Neutral: decimal.RequireFromString("0.30"),
		Sad:     decimal.RequireFromString("0.10"),
	},
	domain.SentimentAmbivalent: {
		Happy:   third,
		Neutral: third,
		Sad:     third,
	},
	domain.SentimentMostlyUnhappy: {
		Happy:   decimal.RequireFromString("0.10"),
		Neutral: decimal.RequireFromString("0.30"),
		Sad:     decimal.RequireFromString("0.60"),
	},
}

// PresetDistribution looks up a preset split; manual has none
func PresetDistribution(p domain.SentimentPreset) (Distribution, bool) {
	dist, ok := presets[p]
	return dist, ok
}

// ApplyDistribution splits expected responses by the distribution. Happy and
// neutral are rounded half-to-even and sad takes the remainder, so the counts
// always sum to expected. If rounding leaves sad negative, sad is 0 and
// neutral absorbs the difference.
func ApplyDistribution(expected int, dist Distribution) domain.SentimentCounts {
	if expected <= 0 {
		return domain.SentimentCounts{}
	}
	n := decimal.NewFromInt(int64(expected))
	happy := int(dist.Happy.Mul(n).RoundBank(0).IntPart())
	neutral := int(dist.Neutral.Mul(n).RoundBank(0).IntPart())
	if happy > expected {
		happy = expected
	}
	sad := expected - happy - neutral
	if sad < 0 {
		sad = 0
		neutral = expected - happy
	}
	return domain.SentimentCounts{Happy: happy, Neutral: neutral, Sad: sad}
}

// ResponsesPerYear is changes/month x 12 x responses/change x response rate
func ResponsesPerYear(c domain.CSATInputs) decimal.Decimal {
	rate := c.ResponseRatePct
	if rate.IsNegative() {
		rate = decimal.Zero
	} else if rate.GreaterThan(hundred) {
		rate = hundred
	}
	return c.ChangesPerMonth.Mul(decimal.NewFromInt(12)).
		Mul(c.ResponsesPerChange).
		Mul(rate).Div(hundred)
}

// ExpectedTotal is the explicit expected total if set, otherwise the yearly
// response volume rounded half-to-even
func ExpectedTotal(c domain.CSATInputs) int {
	if c.ExpectedTotal != nil {
		return *c.ExpectedTotal
	}
	return int(ResponsesPerYear(c).RoundBank(0).IntPart())
}

// CES is (happy - sad) / total, undefined when total is 0
func CES(happy, sad, total int) *decimal.Decimal {
	if total <= 0 {
		return nil
	}
	v := decimal.NewFromInt(int64(happy - sad)).Div(decimal.NewFromInt(int64(total)))
	return &v
}

// TotalCost weights each response count by its cost
func TotalCost(counts domain.SentimentCounts, wHappy, wNeutral, wSad decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(counts.Happy)).Mul(wHappy).
		Add(decimal.NewFromInt(int64(counts.Neutral)).Mul(wNeutral)).
		Add(decimal.NewFromInt(int64(counts.Sad)).Mul(wSad))
}

// AvgCostPerResponse is undefined when there are no responses
func AvgCostPerResponse(totalCost decimal.Decimal, total int) *decimal.Decimal {
	if total <= 0 {
		return nil
	}
	v := totalCost.Div(decimal.NewFromInt(int64(total)))
	return &v
}

// AnnualCSATCost projects the average cost onto a year of responses; 0 when the average is undefined
func AnnualCSATCost(avg *decimal.Decimal, responsesPerYear decimal.Decimal) decimal.Decimal {
	if avg == nil {
		return decimal.Zero
	}
	return avg.Mul(responsesPerYear)
}

// SnapToPreset overwrites the counts with the preset split of the expected
// total and switches to manual mode so the counts can be edited afterwards.
func SnapToPreset(c domain.CSATInputs, preset domain.SentimentPreset) (domain.CSATInputs, error) {
	dist, ok := PresetDistribution(preset)
	if !ok {
		return c, fmt.Errorf("cannot snap to sentiment %q", preset)
	}
	out := c.Clone()
	counts := ApplyDistribution(ExpectedTotal(c), dist)
	out.Counts = &counts
	out.Sentiment = domain.SentimentManual
	return out, nil
}

// ScoreCSAT runs the full CSAT/CES model. Manual counts that do not add up to
// the expected total are used as entered and reported as a warning.
func ScoreCSAT(c domain.CSATInputs) (domain.CSATMetrics, []domain.ConsistencyWarning) {
	var warnings []domain.ConsistencyWarning

	responses := ResponsesPerYear(c)
	expected := ExpectedTotal(c)

	var counts domain.SentimentCounts
	if dist, ok := PresetDistribution(c.Sentiment); ok {
		counts = ApplyDistribution(expected, dist)
	} else if c.Counts != nil {
		counts = *c.Counts
		if counts.Total() != expected {
			warnings = append(warnings, domain.ConsistencyWarning{
				Code:  domain.WarnCountMismatch,
				Field: "csat.counts",
				Message: fmt.Sprintf("happy+neutral+sad = %d but expected total is %d; using counts as entered",
					counts.Total(), expected),
			})
		}
	}

	total := counts.Total()
	cost := TotalCost(counts, c.WeightHappy, c.WeightNeutral, c.WeightSad)
	avg := AvgCostPerResponse(cost, total)

	return domain.CSATMetrics{
		ChangesPerYear:     c.ChangesPerMonth.Mul(decimal.NewFromInt(12)),
		ResponsesPerYear:   responses,
		ExpectedTotal:      expected,
		Counts:             counts,
		CES:                CES(counts.Happy, counts.Sad, total),
		TotalCost:          cost,
		AvgCostPerResponse: avg,
		AnnualCost:         AnnualCSATCost(avg, responses),
	}, warnings
}
