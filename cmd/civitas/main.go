package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/coolbeans/civitas/pkg/analysis"
	"github.com/coolbeans/civitas/pkg/config"
	"github.com/coolbeans/civitas/pkg/countries"
	"github.com/coolbeans/civitas/pkg/ngolaw"
	"github.com/coolbeans/civitas/pkg/pipeline"
	"github.com/coolbeans/civitas/pkg/report"
	"github.com/coolbeans/civitas/pkg/validate"
	"github.com/coolbeans/civitas/pkg/vdem"
)

var version = "0.1.0"

// Global state shared by the subcommands, populated in setup.
var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "civitas",
		Short: "Civil society and autocracy report builder",
		Long: `Civitas builds the autocracy and civil society report from the
V-Dem country-year panel and the NGO-law legal-coding workbook.

One run loads and gates both datasets, derives regime and law
indicators, aggregates them into three yearly series, and renders
each series as print-quality PDF and PNG figures with a JSON run
manifest alongside.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ./civitas.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(seriesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	zapConfig := zap.NewProductionConfig()
	if cfg.Logging.Format == "console" {
		zapConfig.Encoding = "console"
	}
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	if verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err = zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Scaffold a report working directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) > 0 {
				target = args[0]
			}

			dirs := []string{
				filepath.Join(target, "data"),
				filepath.Join(target, "figures"),
			}
			for _, dir := range dirs {
				if err := os.MkdirAll(dir, 0755); err != nil {
					return fmt.Errorf("failed to create directory %s: %w", dir, err)
				}
			}

			cfgPath := filepath.Join(target, "civitas.yaml")
			if _, err := os.Stat(cfgPath); err == nil {
				return fmt.Errorf("refusing to overwrite existing %s", cfgPath)
			}
			if err := os.WriteFile(cfgPath, config.DefaultYAML(), 0644); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Printf("Initialized report directory: %s\n", target)
			fmt.Println("Created:")
			for _, dir := range dirs {
				fmt.Printf("  - %s/\n", dir)
			}
			fmt.Printf("  - %s\n", cfgPath)
			fmt.Printf("\nNext steps:\n")
			fmt.Printf("  1. Place the V-Dem panel CSV and the NGO-law workbook under %s\n", filepath.Join(target, "data"))
			fmt.Printf("  2. Adjust paths in %s if the file names differ\n", cfgPath)
			fmt.Printf("  3. Run: civitas validate\n")
			fmt.Printf("  4. Run: civitas report\n")
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Build the full report: gates, series, figures, manifest",
		Long: `Build the full report from the configured inputs.

The run loads both datasets, passes them through the dataset gates,
derives regime and law indicators, aggregates the three yearly series,
and renders each as PDF and PNG under the figure directory together
with a JSON run manifest. A gate failure halts the run before any
figure is written.

Example:
  civitas report
  civitas report --config civitas.yaml --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := pipeline.Run(cfg, logger)
			if err != nil {
				if result != nil && result.GateReport != nil && !result.GateReport.Passed {
					fmt.Fprint(os.Stderr, result.GateReport.String())
				}
				return err
			}

			fmt.Print(report.FormatRunReport(result.Manifest))
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run the dataset gates without building the report",
		Long: `Run the dataset gate pipeline against the configured inputs.

Gates:
  D0  source files exist and are non-empty
  D1  panel shape matches the pinned row/column counts
  D2  required panel columns present exactly once
  D3  value domains and name resolution (informational, never halts)

Exits non-zero when a halting gate fails.

Example:
  civitas validate
  civitas validate --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			gateCtx := &validate.Context{
				PanelPath: cfg.Data.PanelPath,
				LawPath:   cfg.Data.LawPath,
				Expected:  cfg.ExpectedShape(),
			}

			// Load best-effort: a missing or malformed input should
			// surface as a gate failure, not a load error.
			if panel, err := vdem.NewLoader(cfg.Data.PanelPath, logger).Load(); err == nil {
				gateCtx.Panel = panel
			} else {
				logger.Debug("panel unavailable for gating", zap.Error(err))
			}

			resolver, err := newResolver()
			if err != nil {
				return err
			}
			if laws, err := ngolaw.NewLoader(cfg.Data.LawPath, cfg.Data.LawSheet, resolver, logger).Load(); err == nil {
				gateCtx.Laws = laws
			} else {
				logger.Debug("law workbook unavailable for gating", zap.Error(err))
			}

			gateReport := validate.DefaultPipeline().Run(gateCtx)

			if asJSON {
				data, err := gateReport.ToJSON()
				if err != nil {
					return fmt.Errorf("failed to serialize gate report: %w", err)
				}
				fmt.Println(string(data))
			} else {
				fmt.Print(gateReport.String())
			}

			return gateReport.Err()
		},
	}

	cmd.Flags().Bool("json", false, "Print the gate report as JSON")

	return cmd
}

func resolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Audit country-name resolution for the law workbook",
		Long: `Load the NGO-law workbook and report which country names resolved
to ISO3 codes and which did not. Unmatched names are dropped from the
analysis; this command shows exactly what is being lost.

Example:
  civitas resolve
  civitas resolve --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")

			resolver, err := newResolver()
			if err != nil {
				return err
			}
			laws, err := ngolaw.NewLoader(cfg.Data.LawPath, cfg.Data.LawSheet, resolver, logger).Load()
			if err != nil {
				return fmt.Errorf("failed to load law workbook: %w", err)
			}

			if asJSON {
				out := struct {
					Sheet       string            `json:"sheet"`
					Resolved    map[string]string `json:"resolved"`
					Unmatched   map[string]int    `json:"unmatched"`
					DroppedRows int               `json:"dropped_rows"`
					SkippedRows int               `json:"skipped_rows"`
				}{laws.Sheet, laws.Resolution.Resolved, laws.Resolution.Unmatched, laws.Resolution.DroppedRows(), laws.SkippedRows}

				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to serialize resolution: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Print(formatResolution(laws))
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print resolution results as JSON")

	return cmd
}

func seriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Compute one aggregate series without rendering",
		Long: `Compute a single aggregate series and print it.

Series:
  elections       share of autocracies allowing multiparty elections
  civil-society   mean core civil society index by regime side
  ngo-laws        share of countries with a restrictive NGO law in force

Example:
  civitas series --name elections
  civitas series --name ngo-laws --format csv
  civitas series --name civil-society --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			format, _ := cmd.Flags().GetString("format")
			skipGates, _ := cmd.Flags().GetBool("skip-gates")

			if name == "" {
				return fmt.Errorf("--name flag is required (elections, civil-society, ngo-laws)")
			}
			if name != analysis.SeriesElections && name != analysis.SeriesCivilSociety && name != analysis.SeriesNGOLaws {
				return fmt.Errorf("unknown series %q (elections, civil-society, ngo-laws)", name)
			}

			panel, err := vdem.NewLoader(cfg.Data.PanelPath, logger).Load()
			if err != nil {
				return fmt.Errorf("failed to load democracy panel: %w", err)
			}

			// The law workbook is only needed for the ngo-laws series.
			var laws *ngolaw.Dataset
			gateCtx := &validate.Context{
				PanelPath: cfg.Data.PanelPath,
				Panel:     panel,
				Expected:  cfg.ExpectedShape(),
			}
			if name == analysis.SeriesNGOLaws {
				resolver, err := newResolver()
				if err != nil {
					return err
				}
				laws, err = ngolaw.NewLoader(cfg.Data.LawPath, cfg.Data.LawSheet, resolver, logger).Load()
				if err != nil {
					return fmt.Errorf("failed to load law workbook: %w", err)
				}
				gateCtx.LawPath = cfg.Data.LawPath
				gateCtx.Laws = laws
			}

			if !skipGates {
				gateReport := validate.DefaultPipeline().Run(gateCtx)
				if err := gateReport.Err(); err != nil {
					fmt.Fprint(os.Stderr, gateReport.String())
					return err
				}
			}

			var series *analysis.Series
			switch name {
			case analysis.SeriesElections:
				series = analysis.BuildElectionsSeries(panel.Records)
			case analysis.SeriesCivilSociety:
				series = analysis.BuildCivilSocietySeries(panel.Records)
			case analysis.SeriesNGOLaws:
				profiles := vdem.ClassifyWindowRange(panel.Records, cfg.Window.Start, cfg.Window.End)
				lawPanel := ngolaw.BuildPanel(laws.Records, cfg.Window.Start, cfg.Window.End)
				series = analysis.BuildNGOLawSeries(lawPanel, profiles)
			}

			switch format {
			case "table":
				fmt.Print(series.String())
			case "csv":
				fmt.Print(series.ToCSV())
			case "json":
				data, err := series.ToJSON()
				if err != nil {
					return fmt.Errorf("failed to serialize series: %w", err)
				}
				fmt.Println(string(data))
			default:
				return fmt.Errorf("unknown format %q (table, csv, json)", format)
			}

			return nil
		},
	}

	cmd.Flags().String("name", "", "Series to compute: elections, civil-society, ngo-laws")
	cmd.Flags().String("format", "table", "Output format: table, csv, json")
	cmd.Flags().Bool("skip-gates", false, "Skip the dataset gates (exploratory runs)")

	return cmd
}

// newResolver builds the country resolver with any configured overrides.
func newResolver() (*countries.Resolver, error) {
	resolver := countries.NewResolver()
	if cfg.Data.CountryOverrides != "" {
		added, err := resolver.LoadOverrides(cfg.Data.CountryOverrides)
		if err != nil {
			return nil, fmt.Errorf("failed to load country overrides: %w", err)
		}
		logger.Debug("country overrides loaded",
			zap.Int("names", added),
			zap.String("path", cfg.Data.CountryOverrides))
	}
	return resolver, nil
}

// formatResolution renders name-resolution results for terminal output.
func formatResolution(laws *ngolaw.Dataset) string {
	var builder strings.Builder

	builder.WriteString("\nCountry Name Resolution\n")
	builder.WriteString(strings.Repeat("═", 60) + "\n")
	builder.WriteString(fmt.Sprintf("Workbook: %s (sheet %q)\n", laws.Path, laws.Sheet))
	builder.WriteString(fmt.Sprintf("Records:  %d law observations\n", len(laws.Records)))
	if laws.SkippedRows > 0 {
		builder.WriteString(fmt.Sprintf("Skipped:  %d rows without a usable name or year\n", laws.SkippedRows))
	}

	names := make([]string, 0, len(laws.Resolution.Resolved))
	for name := range laws.Resolution.Resolved {
		names = append(names, name)
	}
	sort.Strings(names)

	builder.WriteString(fmt.Sprintf("\nResolved names (%d):\n", len(names)))
	for _, name := range names {
		builder.WriteString(fmt.Sprintf("  %-40s %s\n", name, laws.Resolution.Resolved[name]))
	}

	if len(laws.Resolution.Unmatched) > 0 {
		unmatched := make([]string, 0, len(laws.Resolution.Unmatched))
		for name := range laws.Resolution.Unmatched {
			unmatched = append(unmatched, name)
		}
		sort.Strings(unmatched)

		builder.WriteString(fmt.Sprintf("\nUnmatched names (%d, %d rows dropped):\n",
			len(unmatched), laws.Resolution.DroppedRows()))
		for _, name := range unmatched {
			builder.WriteString(fmt.Sprintf("  %-40s %d rows\n", name, laws.Resolution.Unmatched[name]))
		}
	}

	return builder.String()
}
