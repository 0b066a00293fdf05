package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SentimentPreset selects how CSAT responses are split into happy/neutral/sad
type SentimentPreset string

const (
	SentimentMostlyHappy   SentimentPreset = "mostly_happy"
	SentimentAmbivalent    SentimentPreset = "ambivalent"
	SentimentMostlyUnhappy SentimentPreset = "mostly_unhappy"
	SentimentManual        SentimentPreset = "manual"
)

// ParseSentimentPreset accepts the short keys and the longer UI labels
// ("Customers mostly happy", "Customer ambivalent", ...).
func ParseSentimentPreset(s string) (SentimentPreset, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "manual":
		return SentimentManual, true
	case strings.Contains(v, "unhappy"):
		return SentimentMostlyUnhappy, true
	case strings.Contains(v, "happy"):
		return SentimentMostlyHappy, true
	case strings.Contains(v, "ambivalent"):
		return SentimentAmbivalent, true
	default:
		return "", false
	}
}

// SentimentCounts is a response distribution in whole responses
type SentimentCounts struct {
	Happy   int `yaml:"happy" json:"happy"`
	Neutral int `yaml:"neutral" json:"neutral"`
	Sad     int `yaml:"sad" json:"sad"`
}

// Total returns happy + neutral + sad
func (c SentimentCounts) Total() int {
	return c.Happy + c.Neutral + c.Sad
}

// CSATInputs drives the customer-effort and CSAT cost model
type CSATInputs struct {
	ChangesPerMonth    decimal.Decimal `yaml:"changes_per_month" json:"changes_per_month"`
	ResponsesPerChange decimal.Decimal `yaml:"responses_per_change" json:"responses_per_change"`
	ResponseRatePct    decimal.Decimal `yaml:"response_rate_pct" json:"response_rate_pct"`

	Sentiment     SentimentPreset  `yaml:"sentiment" json:"sentiment"`
	Counts        *SentimentCounts `yaml:"counts,omitempty" json:"counts,omitempty"`                 // manual mode only
	ExpectedTotal *int             `yaml:"expected_total,omitempty" json:"expected_total,omitempty"` // defaults to responses/year

	WeightHappy   decimal.Decimal `yaml:"weight_happy" json:"weight_happy"`
	WeightNeutral decimal.Decimal `yaml:"weight_neutral" json:"weight_neutral"`
	WeightSad     decimal.Decimal `yaml:"weight_sad" json:"weight_sad"`

	// FeedsDebtBase replaces the CSAT debt base cost with the modeled annual CSAT cost
	FeedsDebtBase bool `yaml:"feeds_debt_base" json:"feeds_debt_base"`
}

// Clone copies the pointer fields
func (c CSATInputs) Clone() CSATInputs {
	out := c
	if c.Counts != nil {
		counts := *c.Counts
		out.Counts = &counts
	}
	if c.ExpectedTotal != nil {
		n := *c.ExpectedTotal
		out.ExpectedTotal = &n
	}
	return out
}
