package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestComparisonSet() *ComparisonSet {
	compSet := &ComparisonSet{
		BaseScenarioName: "buy",
		ConfigPath:       "buy.json",
		Alternatives: []Comparison{{
			ScenarioName: "build",
			Description:  "Build in-house",
			Rows:         NewComparator().Compare(buyDocument(), buildDocument()),
		}},
	}
	compSet.Recommendations = []string{"Fastest Payback: build pays back in 1.43 years"}
	return compSet
}

func TestTableFormatter_Format(t *testing.T) {
	result := (&TableFormatter{}).Format(createTestComparisonSet())

	for _, want := range []string{
		"BUSINESS CASE COMPARISON",
		"Base Scenario: buy",
		"Input: buy.json",
		"buy vs build",
		"Build in-house",
		"Delta (B-A)",
		"Project cost (Y0)",
		"+$32,000.00",
		"-$9,254.52",
		NotAvailable,
		"RECOMMENDATIONS",
		"Fastest Payback",
	} {
		assert.Contains(t, result, want)
	}

	for _, line := range strings.Split(result, "\n") {
		if strings.HasPrefix(line, "Acquisition strategy") {
			assert.Contains(t, line, "Buy")
			assert.Contains(t, line, "Build")
		}
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	compSet := createTestComparisonSet()
	result := (&TableFormatter{}).FormatCompact(compSet)

	assert.Equal(t, "Base: buy | build: NPV -$9,254.52", result)
}

func TestTableFormatter_Truncate(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))

	// multi-byte names are cut on rune boundaries
	cut := tf.truncate("Überprüfung-Automatisierung", 10)
	assert.Equal(t, "Überprü...", cut)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, "日本語", tf.truncate("日本語", 3))
	assert.Equal(t, "日本", tf.truncate("日本語テスト", 2))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(createTestComparisonSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Base", "Scenario", "Metric", "Key", "Value A", "Value B", "Delta (B-A)"}, records[0])
	// header + 8 headline fields + checkpoints 1, 3, 5
	require.Len(t, records, 12)

	byKey := map[string][]string{}
	for _, r := range records[1:] {
		byKey[r[3]] = r
	}
	assert.Equal(t, []string{"buy", "build", "Project cost (Y0)", "project_cost", "28000", "60000", "32000"}, byKey["project_cost"])
	assert.Equal(t, []string{"buy", "build", "Acquisition strategy", "acquisition_strategy", "Buy", "Build", ""}, byKey["acquisition_strategy"])
	assert.Equal(t, NotAvailable, byKey["irr"][5])
	assert.Equal(t, NotAvailable, byKey["irr"][6])
}

func TestCSVFormatter_MissingTextMarkedNotAvailable(t *testing.T) {
	compSet := &ComparisonSet{
		BaseScenarioName: "buy",
		Alternatives: []Comparison{{
			ScenarioName: "build",
			Rows: NewComparator().Compare(buyDocument(), nil),
		}},
	}
	out, err := (&CSVFormatter{}).Format(compSet)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	for _, r := range records[1:] {
		if r[3] == "acquisition_strategy" {
			assert.Equal(t, []string{"Buy", NotAvailable, ""}, r[4:])
			return
		}
	}
	t.Fatal("acquisition_strategy row missing")
}

func TestJSONFormatter_Format(t *testing.T) {
	compSet := createTestComparisonSet()

	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(compSet)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(out, "\n"))

		var decoded ComparisonSet
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "buy", decoded.BaseScenarioName)
		require.Len(t, decoded.Alternatives, 1)

		irr, ok := decoded.Alternatives[0].Row("irr")
		require.True(t, ok)
		assert.False(t, irr.Available)
		assert.Nil(t, irr.B)
	}

	out, err := (&JSONFormatter{Pretty: true}).Format(compSet)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"base_scenario_name\": \"buy\"")
}
