package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	buyScenario   = "../../test/testdata/buy.yaml"
	buildScenario = "../../test/testdata/build.yaml"
)

// execute runs the root command with fresh flag values and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "bizcase", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "calculate")
}

func TestCommandSubcommands(t *testing.T) {
	registered := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range []string{"calculate", "validate", "compare", "csat", "templates", "version"} {
		assert.True(t, registered[name], "command %s not registered", name)
	}
}

func TestCalculateCommand(t *testing.T) {
	out, err := execute(t, "calculate", buyScenario)
	require.NoError(t, err)
	assert.Contains(t, out, "BUSINESS CASE: Access port automation")
	assert.Contains(t, out, "$108,468.32")

	out, err = execute(t, "calculate", buyScenario, "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Year,CashFlow,Cumulative")
	assert.Contains(t, out, "0,-28000.00,-28000.00")
}

func TestCalculateCommand_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buy.json")

	out, err := execute(t, "calculate", buyScenario, "--format", "json", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"npv"`)
}

func TestCalculateCommand_SettingsFormat(t *testing.T) {
	out, err := execute(t, "calculate", buyScenario, "--config", "../../test/testdata/settings.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`, "settings file selects json output")
}

func TestCalculateCommand_Errors(t *testing.T) {
	_, err := execute(t, "calculate", buyScenario, "-f", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")

	_, err = execute(t, "calculate", "../../test/testdata/invalid.yaml")
	assert.Error(t, err)

	_, err = execute(t, "calculate")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", buyScenario)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, err = execute(t, "validate", "../../test/testdata/invalid.yaml")
	assert.Error(t, err)
}

func TestCompareCommand_TwoFiles(t *testing.T) {
	out, err := execute(t, "compare", buyScenario, buildScenario)
	require.NoError(t, err)
	assert.Contains(t, out, "buy vs build")
	assert.Contains(t, out, "Cumulative cash (Y5)")

	out, err = execute(t, "compare", buyScenario, buildScenario, "--name-a", "vendor", "--name-b", "inhouse", "-f", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "vendor,inhouse,")
}

func TestCompareCommand_SavedDocuments(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.yaml")
	_, err := execute(t, "calculate", buyScenario, "-f", "json", "-o", a)
	require.NoError(t, err)
	_, err = execute(t, "calculate", buildScenario, "-f", "yaml", "-o", b)
	require.NoError(t, err)

	out, err := execute(t, "compare", a, b, "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"base_scenario_name": "a"`)

	out, err = execute(t, "compare", a, b, "--recompute")
	require.NoError(t, err)
	assert.Contains(t, out, "a vs b")
}

func TestCompareCommand_Templates(t *testing.T) {
	out, err := execute(t, "compare", buyScenario, "--with", "full_automation", "--transform", "set_discount_rate:pct=15")
	require.NoError(t, err)
	assert.Contains(t, out, "_full_automation")
	assert.Contains(t, out, "_custom")

	out, err = execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Templates:")

	_, err = execute(t, "compare", buyScenario)
	assert.Error(t, err)

	_, err = execute(t, "compare", buyScenario, "--with", "no_such_template")
	assert.Error(t, err)

	_, err = execute(t, "compare")
	assert.Error(t, err)
}

func TestCSATCommand(t *testing.T) {
	out, err := execute(t, "csat",
		"--changes-per-month", "10", "--responses-per-change", "1", "--response-rate", "50",
		"--sentiment", "ambivalent", "--weight-sad", "100")
	require.NoError(t, err)
	assert.Contains(t, out, "Changes per year:          120")
	assert.Contains(t, out, "Expected responses:        60")

	out, err = execute(t, "csat", "--changes-per-month", "10", "--happy", "5", "--neutral", "0", "--sad", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Happy / neutral / sad:     5 / 0 / 5")
	assert.Contains(t, out, "warning:", "counts do not add up to the expected total")

	_, err = execute(t, "csat", "--sentiment", "furious")
	assert.Error(t, err)
}

func TestTemplatesCommand(t *testing.T) {
	out, err := execute(t, "templates")
	require.NoError(t, err)
	assert.Contains(t, out, "full_automation")
	assert.Contains(t, out, "remediate_debt")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bizcase dev")
}
