package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/bizcase/internal/calculation"
	"github.com/rgehrsitz/bizcase/internal/compare"
	"github.com/rgehrsitz/bizcase/internal/config"
	"github.com/rgehrsitz/bizcase/internal/domain"
	"github.com/rgehrsitz/bizcase/internal/output"
	"github.com/rgehrsitz/bizcase/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// cliLogger implements calculation.Logger using the standard log package
type cliLogger struct{}

func (cliLogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (cliLogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (cliLogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (cliLogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bizcase %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "bizcase",
	Short: "Automation business-case calculator",
	Long: `Turns a scenario file (costs, benefits, debt and CSAT assumptions) into a
cash-flow series with NPV, IRR, payback and cumulative cash checkpoints, and
compares scenarios side by side.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// newEngine builds a calculation engine from --config settings and --debug
func newEngine(cmd *cobra.Command) (*calculation.Engine, domain.EngineSettings, error) {
	settingsPath, _ := cmd.Flags().GetString("config")
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, settings, err
	}

	engine, err := calculation.NewEngineWithSettings(settings)
	if err != nil {
		return nil, settings, err
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(cliLogger{})
	}
	return engine, settings, nil
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Calculate a business case from a scenario or saved document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputs, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}

		engine, settings, err := newEngine(cmd)
		if err != nil {
			return err
		}
		res, err := engine.Run(inputs)
		if err != nil {
			return err
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		if outputFormat == "" {
			outputFormat = settings.OutputFormat
		}
		f := output.GetFormatterByName(outputFormat)
		if f == nil {
			return fmt.Errorf("unknown output format: %s (valid: %s)",
				outputFormat, strings.Join(output.AvailableFormatAliases(), ", "))
		}

		outPath, _ := cmd.Flags().GetString("output")
		save, _ := cmd.Flags().GetBool("save")
		switch {
		case outPath != "":
			data, err := f.Format(res)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
		case save || f.Name() == "xlsx":
			filename, err := output.WriteFormatted(f, res, output.Extension(f))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", filename)
		default:
			data, err := f.Format(res)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Validate a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser := config.NewInputParser()
		inputs, err := parser.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		warnings, err := parser.Validate(inputs)
		if err != nil {
			return err
		}

		for _, w := range warnings {
			fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w.String())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid\n", args[0])
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [scenario-a] [scenario-b]",
	Short: "Compare two scenarios, or one scenario against templates",
	Long: `Compare scenario B against scenario A field by field (B - A), or compare a
base scenario against built-in templates and ad-hoc transforms.

Examples:
  bizcase compare buy.json build.json
  bizcase compare base.yaml --with full_automation,hurdle_15
  bizcase compare base.yaml --transform remediate_debt:debt=tech,residual=10 --format csv
  bizcase compare --list-templates
`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}
		if len(args) == 0 {
			return fmt.Errorf("input file required for comparison (use --list-templates to see available templates)")
		}

		engine, _, err := newEngine(cmd)
		if err != nil {
			return err
		}
		compareEngine := compare.NewCompareEngine(engine)

		templatesStr, _ := cmd.Flags().GetString("with")
		transforms, _ := cmd.Flags().GetStringArray("transform")
		nameA, _ := cmd.Flags().GetString("name-a")
		nameB, _ := cmd.Flags().GetString("name-b")
		recompute, _ := cmd.Flags().GetBool("recompute")

		var comparisonSet *compare.ComparisonSet
		if len(args) == 2 {
			if nameA == "" {
				nameA = scenarioLabel(args[0])
			}
			if nameB == "" {
				nameB = scenarioLabel(args[1])
			}
			comparisonSet, err = compareFiles(compareEngine, args[0], args[1], nameA, nameB, recompute)
			if err != nil {
				return err
			}
		} else {
			templateNames := transform.ParseTemplateList(templatesStr)
			if len(templateNames) == 0 && len(transforms) == 0 {
				return fmt.Errorf("--with or --transform is required when comparing a single scenario")
			}
			base, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			comparisonSet, err = compareEngine.Compare(base, compare.CompareOptions{
				BaseScenarioName: nameA,
				Templates:        templateNames,
				Transforms:       transforms,
			})
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			comparisonSet.ConfigPath = args[0]
		}

		outputFormat, _ := cmd.Flags().GetString("format")
		switch strings.ToLower(outputFormat) {
		case "csv":
			out, err := (&compare.CSVFormatter{}).Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format CSV: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
		case "json":
			out, err := (&compare.JSONFormatter{Pretty: true}).Format(comparisonSet)
			if err != nil {
				return fmt.Errorf("failed to format JSON: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
		case "compact":
			fmt.Fprintln(cmd.OutOrStdout(), (&compare.TableFormatter{}).FormatCompact(comparisonSet))
		case "table", "console", "":
			fmt.Fprint(cmd.OutOrStdout(), (&compare.TableFormatter{}).Format(comparisonSet))
		default:
			return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
		}
		return nil
	},
}

// compareFiles diffs two files. Saved documents are compared as stored unless
// recompute is set; plain scenario files are always computed first.
func compareFiles(ce *compare.CompareEngine, pathA, pathB, nameA, nameB string, recompute bool) (*compare.ComparisonSet, error) {
	parser := config.NewInputParser()

	docA, errA := loadIfDocument(parser, pathA)
	docB, errB := loadIfDocument(parser, pathB)
	if errA != nil {
		return nil, errA
	}
	if errB != nil {
		return nil, errB
	}
	if docA != nil && docB != nil && !recompute {
		return ce.CompareDocuments(docA, docB, nameA, nameB), nil
	}

	a, err := parser.LoadFromFile(pathA)
	if err != nil {
		return nil, err
	}
	b, err := parser.LoadFromFile(pathB)
	if err != nil {
		return nil, err
	}
	return ce.CompareInputs(a, b, nameA, nameB)
}

func loadIfDocument(parser *config.InputParser, path string) (*domain.ScenarioDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !config.IsDocument(data) {
		return nil, nil
	}
	doc, err := parser.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return doc, nil
}

// scenarioLabel derives a column label from a file name: "scenarios/buy.json" -> "buy"
func scenarioLabel(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

var csatCmd = &cobra.Command{
	Use:   "csat",
	Short: "Score customer effort and CSAT cost from survey assumptions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := csatInputsFromFlags(cmd)
		if err != nil {
			return err
		}
		c, warnings, err := config.NormalizeCSAT(raw)
		if err != nil {
			return err
		}

		if snap, _ := cmd.Flags().GetString("snap"); snap != "" {
			preset, ok := domain.ParseSentimentPreset(snap)
			if !ok {
				return fmt.Errorf("unknown sentiment preset: %s", snap)
			}
			if c, err = calculation.SnapToPreset(c, preset); err != nil {
				return err
			}
		}

		m, scoreWarnings := calculation.ScoreCSAT(c)
		warnings = append(warnings, scoreWarnings...)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Changes per year:          %s\n", m.ChangesPerYear.StringFixed(0))
		fmt.Fprintf(out, "Responses per year:        %s\n", m.ResponsesPerYear.StringFixed(2))
		fmt.Fprintf(out, "Expected responses:        %d\n", m.ExpectedTotal)
		fmt.Fprintf(out, "Happy / neutral / sad:     %d / %d / %d\n", m.Counts.Happy, m.Counts.Neutral, m.Counts.Sad)
		fmt.Fprintf(out, "Customer effort score:     %s\n", output.FormatOptional(m.CES, output.FormatRate))
		fmt.Fprintf(out, "Total weighted cost:       %s\n", output.FormatCurrency(m.TotalCost))
		fmt.Fprintf(out, "Average cost per response: %s\n", output.FormatOptional(m.AvgCostPerResponse, output.FormatCurrency))
		fmt.Fprintf(out, "Annual CSAT cost:          %s\n", output.FormatCurrency(m.AnnualCost))
		for _, w := range warnings {
			fmt.Fprintf(out, "warning: %s\n", w.String())
		}
		return nil
	},
}

func csatInputsFromFlags(cmd *cobra.Command) (domain.CSATInputs, error) {
	var c domain.CSATInputs
	decimals := map[string]*decimal.Decimal{
		"changes-per-month":    &c.ChangesPerMonth,
		"responses-per-change": &c.ResponsesPerChange,
		"response-rate":        &c.ResponseRatePct,
		"weight-happy":         &c.WeightHappy,
		"weight-neutral":       &c.WeightNeutral,
		"weight-sad":           &c.WeightSad,
	}
	for flag, dst := range decimals {
		v, err := cmd.Flags().GetFloat64(flag)
		if err != nil {
			return c, err
		}
		if *dst, err = config.FromFloat(flag, v); err != nil {
			return c, err
		}
	}

	sentiment, _ := cmd.Flags().GetString("sentiment")
	c.Sentiment = domain.SentimentPreset(sentiment)
	if cmd.Flags().Changed("happy") || cmd.Flags().Changed("neutral") || cmd.Flags().Changed("sad") {
		happy, _ := cmd.Flags().GetInt("happy")
		neutral, _ := cmd.Flags().GetInt("neutral")
		sad, _ := cmd.Flags().GetInt("sad")
		c.Counts = &domain.SentimentCounts{Happy: happy, Neutral: neutral, Sad: sad}
		if sentiment == "" {
			c.Sentiment = domain.SentimentManual
		}
	}
	if cmd.Flags().Changed("expected-total") {
		total, _ := cmd.Flags().GetInt("expected-total")
		c.ExpectedTotal = &total
	}
	return c, nil
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List built-in scenario templates and transforms",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Transforms (use with --transform name:key=value,...):")
		for _, name := range transform.NewTransformRegistry().List() {
			fmt.Fprintf(out, "  %s\n", name)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Engine settings file (default: $BIZCASE_CONFIG)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging for calculations")

	calculateCmd.Flags().StringP("format", "f", "", "Output format ("+strings.Join(output.AvailableFormatAliases(), ", ")+"); default from settings")
	calculateCmd.Flags().StringP("output", "o", "", "Write output to this file instead of stdout")
	calculateCmd.Flags().Bool("save", false, "Write output to a timestamped file named after the acquisition strategy")

	compareCmd.Flags().String("with", "", "Comma-separated list of templates to compare against")
	compareCmd.Flags().StringArray("transform", nil, "Transform spec applied to the base scenario (repeatable)")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	compareCmd.Flags().String("name-a", "", "Label for scenario A (default: file name)")
	compareCmd.Flags().String("name-b", "", "Label for scenario B (default: file name)")
	compareCmd.Flags().Bool("recompute", false, "Recompute saved documents instead of comparing stored outputs")
	compareCmd.Flags().Bool("list-templates", false, "List all available scenario templates")

	csatCmd.Flags().Float64("changes-per-month", 0, "Changes per month")
	csatCmd.Flags().Float64("responses-per-change", 1, "Survey responses requested per change")
	csatCmd.Flags().Float64("response-rate", 100, "Response rate (%)")
	csatCmd.Flags().String("sentiment", "", "Sentiment preset (mostly_happy, ambivalent, mostly_unhappy, manual)")
	csatCmd.Flags().Int("happy", 0, "Happy responses (manual sentiment)")
	csatCmd.Flags().Int("neutral", 0, "Neutral responses (manual sentiment)")
	csatCmd.Flags().Int("sad", 0, "Sad responses (manual sentiment)")
	csatCmd.Flags().Int("expected-total", 0, "Expected total responses (default: responses per year, rounded)")
	csatCmd.Flags().Float64("weight-happy", 0, "Cost weight per happy response")
	csatCmd.Flags().Float64("weight-neutral", 0, "Cost weight per neutral response")
	csatCmd.Flags().Float64("weight-sad", 0, "Cost weight per sad response")
	csatCmd.Flags().String("snap", "", "Snap counts to a preset distribution of the expected total")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(csatCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
