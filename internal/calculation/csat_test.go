package calculation

import (
	"testing"

	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestApplyDistribution_Presets(t *testing.T) {
	tests := []struct {
		preset   domain.SentimentPreset
		expected int
		want     domain.SentimentCounts
	}{
		{domain.SentimentMostlyHappy, 100, domain.SentimentCounts{Happy: 60, Neutral: 30, Sad: 10}},
		{domain.SentimentAmbivalent, 100, domain.SentimentCounts{Happy: 33, Neutral: 33, Sad: 34}},
		{domain.SentimentMostlyUnhappy, 100, domain.SentimentCounts{Happy: 10, Neutral: 30, Sad: 60}},
		{domain.SentimentMostlyHappy, 0, domain.SentimentCounts{}},
		// 0.3 x 5 = 1.5 rounds half-to-even to 2
		{domain.SentimentMostlyHappy, 5, domain.SentimentCounts{Happy: 3, Neutral: 2, Sad: 0}},
	}
	for _, tt := range tests {
		dist, ok := PresetDistribution(tt.preset)
		require.True(t, ok)
		assert.Equal(t, tt.want, ApplyDistribution(tt.expected, dist), "%s x %d", tt.preset, tt.expected)
	}

	_, ok := PresetDistribution(domain.SentimentManual)
	assert.False(t, ok)
}

func TestApplyDistribution_Conservation(t *testing.T) {
	for _, preset := range []domain.SentimentPreset{
		domain.SentimentMostlyHappy, domain.SentimentAmbivalent, domain.SentimentMostlyUnhappy,
	} {
		dist, _ := PresetDistribution(preset)
		for expected := 0; expected <= 500; expected++ {
			c := ApplyDistribution(expected, dist)
			require.Equal(t, expected, c.Total(), "%s at %d", preset, expected)
			require.GreaterOrEqual(t, c.Sad, 0)
			require.GreaterOrEqual(t, c.Neutral, 0)
		}
	}
}

func TestApplyDistribution_NegativeSadAbsorbedByNeutral(t *testing.T) {
	dist := Distribution{Happy: dec("0.5"), Neutral: dec("0.5"), Sad: decimal.Zero}

	// 1.5 rounds to 2 for both, which would leave sad at -1
	c := ApplyDistribution(3, dist)
	assert.Equal(t, domain.SentimentCounts{Happy: 2, Neutral: 1, Sad: 0}, c)
}

func TestResponsesPerYearAndExpectedTotal(t *testing.T) {
	c := domain.CSATInputs{ChangesPerMonth: dec("10"), ResponsesPerChange: dec("2"), ResponseRatePct: dec("50")}
	assertDecimal(t, "120", ResponsesPerYear(c))
	assert.Equal(t, 120, ExpectedTotal(c))

	c.ResponseRatePct = dec("250")
	assertDecimal(t, "240", ResponsesPerYear(c), "rate is clamped to 100%")

	// 0.5 x 12 x 1 x 75% = 4.5 rounds half-to-even to 4
	c = domain.CSATInputs{ChangesPerMonth: dec("0.5"), ResponsesPerChange: dec("1"), ResponseRatePct: dec("75")}
	assert.Equal(t, 4, ExpectedTotal(c))

	c.ExpectedTotal = intPtr(42)
	assert.Equal(t, 42, ExpectedTotal(c))
}

func TestCESAndCosts(t *testing.T) {
	ces := CES(60, 10, 100)
	require.NotNil(t, ces)
	assertDecimal(t, "0.5", *ces)
	assertDecimal(t, "-1", *CES(0, 7, 7))
	assert.Nil(t, CES(0, 0, 0))

	counts := domain.SentimentCounts{Happy: 60, Neutral: 30, Sad: 10}
	total := TotalCost(counts, dec("0"), dec("10"), dec("50"))
	assertDecimal(t, "800", total)

	avg := AvgCostPerResponse(total, counts.Total())
	require.NotNil(t, avg)
	assertDecimal(t, "8", *avg)
	assertDecimal(t, "960", AnnualCSATCost(avg, dec("120")))

	assert.Nil(t, AvgCostPerResponse(total, 0))
	assert.True(t, AnnualCSATCost(nil, dec("120")).IsZero())
}

func TestScoreCSAT_Preset(t *testing.T) {
	m, warnings := ScoreCSAT(domain.CSATInputs{
		ChangesPerMonth:    dec("10"),
		ResponsesPerChange: dec("1"),
		ResponseRatePct:    dec("50"),
		Sentiment:          domain.SentimentMostlyHappy,
		ExpectedTotal:      intPtr(100),
		WeightNeutral:      dec("10"),
		WeightSad:          dec("50"),
	})
	assert.Empty(t, warnings)
	assert.Equal(t, 100, m.ExpectedTotal)
	assert.Equal(t, domain.SentimentCounts{Happy: 60, Neutral: 30, Sad: 10}, m.Counts)
	assertDecimal(t, "120", m.ChangesPerYear)
	assertDecimal(t, "60", m.ResponsesPerYear)
	assertDecimal(t, "0.5", *m.CES)
	assertDecimal(t, "8", *m.AvgCostPerResponse)
	assertDecimal(t, "480", m.AnnualCost)
}

func TestScoreCSAT_AllZeroCounts(t *testing.T) {
	m, warnings := ScoreCSAT(domain.CSATInputs{
		ChangesPerMonth:    dec("10"),
		ResponsesPerChange: dec("1"),
		ResponseRatePct:    dec("50"),
		Sentiment:          domain.SentimentManual,
		Counts:             &domain.SentimentCounts{},
		ExpectedTotal:      intPtr(0),
		WeightHappy:        dec("5"),
	})
	assert.Empty(t, warnings)
	assert.Nil(t, m.CES)
	assert.Nil(t, m.AvgCostPerResponse)
	assert.True(t, m.AnnualCost.IsZero())
}

func TestScoreCSAT_ManualMismatchWarns(t *testing.T) {
	m, warnings := ScoreCSAT(domain.CSATInputs{
		ChangesPerMonth:    dec("10"),
		ResponsesPerChange: dec("1"),
		ResponseRatePct:    dec("100"),
		Sentiment:          domain.SentimentManual,
		Counts:             &domain.SentimentCounts{Happy: 50, Neutral: 20, Sad: 30},
	})
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnCountMismatch, warnings[0].Code)
	assert.Equal(t, 120, m.ExpectedTotal)
	assert.Equal(t, 100, m.Counts.Total(), "counts are used as entered")
	assertDecimal(t, "0.2", *m.CES)
}

func TestSnapToPreset(t *testing.T) {
	in := domain.CSATInputs{
		Sentiment:     domain.SentimentManual,
		Counts:        &domain.SentimentCounts{Happy: 1, Neutral: 2, Sad: 3},
		ExpectedTotal: intPtr(100),
	}

	out, err := SnapToPreset(in, domain.SentimentMostlyUnhappy)
	require.NoError(t, err)
	assert.Equal(t, domain.SentimentManual, out.Sentiment)
	require.NotNil(t, out.Counts)
	assert.Equal(t, domain.SentimentCounts{Happy: 10, Neutral: 30, Sad: 60}, *out.Counts)
	assert.Equal(t, domain.SentimentCounts{Happy: 1, Neutral: 2, Sad: 3}, *in.Counts, "input is not modified")

	_, warnings := ScoreCSAT(out)
	assert.Empty(t, warnings)

	_, err = SnapToPreset(in, domain.SentimentManual)
	assert.Error(t, err)
}
