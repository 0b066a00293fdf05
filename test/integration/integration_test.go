package integration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/bizcase/internal/calculation"
	"github.com/rgehrsitz/bizcase/internal/compare"
	"github.com/rgehrsitz/bizcase/internal/config"
	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/rgehrsitz/bizcase/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	buyScenario   = "../testdata/buy.yaml"
	buildScenario = "../testdata/build.yaml"
)

func fixedNow() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

func loadAndRun(t *testing.T, path string) *domain.ScenarioResult {
	t.Helper()
	inputs, err := config.NewInputParser().LoadFromFile(path)
	require.NoError(t, err)
	res, err := calculation.NewEngine().Run(inputs)
	require.NoError(t, err)
	return res
}

func TestEndToEndCalculation(t *testing.T) {
	res := loadAndRun(t, buyScenario)

	assert.Equal(t, domain.StrategyBuy, res.Inputs.AcquisitionStrategy)
	assert.Equal(t, domain.TimingOneTime, res.Inputs.Costs[0].Timing)

	require.Len(t, res.CashFlows, 6)
	assert.Equal(t, "-28000", res.CashFlows[0].String())
	for _, cf := range res.CashFlows[1:] {
		assert.Equal(t, "36000", cf.String())
	}
	assert.Equal(t, "108468.32", res.Metrics.NPV.StringFixed(2))
	require.NotNil(t, res.Metrics.IRR)
	require.NotNil(t, res.Metrics.Payback)
	assert.True(t, res.Metrics.Payback.LessThan(decimal.NewFromInt(1)))

	cum5, ok := res.Metrics.CumulativeAt(5)
	require.True(t, ok)
	assert.Equal(t, "152000", cum5.String())
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	inputs, err := parser.LoadFromFile(buyScenario)
	require.NoError(t, err)
	warnings, err := parser.Validate(inputs)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	invalid, err := parser.LoadFromFile("../testdata/invalid.yaml")
	require.NoError(t, err, "structure is valid, values are not")
	_, err = parser.Validate(invalid)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = parser.LoadFromFile("../testdata/missing.yaml")
	assert.Error(t, err)
}

// A saved JSON document reloads as inputs and recomputes to the same figures
func TestDocumentRoundTrip(t *testing.T) {
	res := loadAndRun(t, buyScenario)

	data, err := output.JSONFormatter{Pretty: true, Now: fixedNow}.Format(res)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "buy.json")
	require.NoError(t, os.WriteFile(path, data, 0644))

	doc, err := config.NewInputParser().LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentVersion, doc.Version)
	assert.Equal(t, "2025-06-01T12:00:00Z", doc.Timestamp)

	again := loadAndRun(t, path)
	assert.True(t, res.Metrics.NPV.Equal(again.Metrics.NPV))
	require.Len(t, again.CashFlows, len(res.CashFlows))
	for i := range res.CashFlows {
		assert.True(t, res.CashFlows[i].Equal(again.CashFlows[i]), "year %d", i)
	}
}

func TestCompareScenarioFiles(t *testing.T) {
	parser := config.NewInputParser()
	a, err := parser.LoadFromFile(buyScenario)
	require.NoError(t, err)
	b, err := parser.LoadFromFile(buildScenario)
	require.NoError(t, err)

	ce := compare.NewCompareEngine(calculation.NewEngine())
	ce.Now = fixedNow
	compSet, err := ce.CompareInputs(a, b, "buy", "build")
	require.NoError(t, err)

	alt := compSet.Alternatives[0]
	strategy, ok := alt.Row("acquisition_strategy")
	require.True(t, ok)
	assert.Equal(t, "Buy", strategy.TextA)
	assert.Equal(t, "Build", strategy.TextB)

	cum5, ok := alt.Row("cum_5")
	require.True(t, ok)
	assert.Equal(t, "-72000", cum5.Delta.String())

	npv, ok := alt.Row("npv")
	require.True(t, ok)
	assert.True(t, npv.Delta.IsNegative())

	table := (&compare.TableFormatter{}).Format(compSet)
	assert.Contains(t, table, "buy vs build")
}

func TestCompareWithTemplates(t *testing.T) {
	base, err := config.NewInputParser().LoadFromFile(buyScenario)
	require.NoError(t, err)

	ce := compare.NewCompareEngine(calculation.NewEngine())
	compSet, err := ce.Compare(base, compare.CompareOptions{
		BaseScenarioName: "base",
		Templates:        []string{"full_automation", "hurdle_15"},
	})
	require.NoError(t, err)
	require.Len(t, compSet.Alternatives, 2)

	hurdle := compSet.Alternatives[1]
	assert.Equal(t, "base_hurdle_15", hurdle.ScenarioName)
	npv, ok := hurdle.Row("npv")
	require.True(t, ok)
	assert.True(t, npv.Delta.IsNegative(), "a higher discount rate lowers NPV")

	out, err := (&compare.JSONFormatter{}).Format(compSet)
	require.NoError(t, err)
	assert.Contains(t, out, `"base_scenario_name":"base"`)
}

func TestSettingsFileChangesCheckpoints(t *testing.T) {
	settings, err := config.LoadSettings("../testdata/settings.yaml")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, settings.Checkpoints)
	assert.Equal(t, "json", settings.OutputFormat)

	engine, err := calculation.NewEngineWithSettings(settings)
	require.NoError(t, err)

	inputs, err := config.NewInputParser().LoadFromFile(buyScenario)
	require.NoError(t, err)
	res, err := engine.Run(inputs)
	require.NoError(t, err)

	years := make([]int, 0, len(res.Metrics.Cumulative))
	for _, cp := range res.Metrics.Cumulative {
		years = append(years, cp.Year)
	}
	assert.Equal(t, []int{1, 2, 3}, years)
}

func TestOutputFormats(t *testing.T) {
	res := loadAndRun(t, buyScenario)

	for _, name := range []string{"console", "json", "yaml", "csv", "xlsx"} {
		t.Run(name, func(t *testing.T) {
			f := output.GetFormatterByName(name)
			require.NotNil(t, f)
			data, err := f.Format(res)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
		})
	}
}
