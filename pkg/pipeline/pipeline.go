// Package pipeline orchestrates a full report run in the mandated stage
// order: load, gate, classify, aggregate, render, manifest. One run is
// single-threaded and produces either a complete figure set with its
// manifest or a halting gate report.
package pipeline

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/coolbeans/civitas/pkg/analysis"
	"github.com/coolbeans/civitas/pkg/chart"
	"github.com/coolbeans/civitas/pkg/config"
	"github.com/coolbeans/civitas/pkg/countries"
	"github.com/coolbeans/civitas/pkg/ngolaw"
	"github.com/coolbeans/civitas/pkg/report"
	"github.com/coolbeans/civitas/pkg/validate"
	"github.com/coolbeans/civitas/pkg/vdem"
)

// Result carries everything a completed or halted run produced. On a
// gate halt the manifest and gate report are populated; series and
// artifacts stay empty.
type Result struct {
	Manifest   *report.RunManifest
	GateReport *validate.Report
	Series     []*analysis.Series
	Artifacts  []chart.Artifact
}

// Run executes the full report pipeline against the given configuration.
// The returned Result is non-nil even on error so callers can print the
// gate report for a halted run.
func Run(cfg *config.Config, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	manifest := report.NewRunManifest()
	manifest.SetWindow(cfg.Window.Start, cfg.Window.End)
	result := &Result{Manifest: manifest}

	panel, laws, err := loadInputs(cfg, logger, manifest)
	if err != nil {
		return result, err
	}

	gateReport := validate.DefaultPipeline().Run(&validate.Context{
		PanelPath: cfg.Data.PanelPath,
		LawPath:   cfg.Data.LawPath,
		Panel:     panel,
		Laws:      laws,
		Expected:  cfg.ExpectedShape(),
	})
	result.GateReport = gateReport
	manifest.GatesPassed = gateReport.Passed
	if err := gateReport.Err(); err != nil {
		return result, err
	}

	profiles := vdem.ClassifyWindowRange(panel.Records, cfg.Window.Start, cfg.Window.End)
	lawPanel := ngolaw.BuildPanel(laws.Records, cfg.Window.Start, cfg.Window.End)
	logger.Debug("window classified",
		zap.Int("profiled_countries", len(profiles)),
		zap.Int("law_countries", len(lawPanel.Countries())))

	seriesList := BuildSeries(panel, lawPanel, profiles)
	result.Series = seriesList
	for _, series := range seriesList {
		manifest.RecordSeries(series.Name, string(series.Kind), series.Len())
		logger.Debug("series built",
			zap.String("series", series.Name),
			zap.Int("cells", series.Len()))
	}

	artifacts, err := chart.NewRenderer(cfg.Output.FigureDir, logger).RenderAll(seriesList)
	if err != nil {
		return result, fmt.Errorf("failed to render figures: %w", err)
	}
	result.Artifacts = artifacts
	if err := manifest.RecordFigures(artifacts); err != nil {
		return result, err
	}

	manifest.Finish()
	manifestPath := filepath.Join(cfg.Output.FigureDir, report.ManifestName)
	if err := manifest.Save(manifestPath); err != nil {
		return result, err
	}

	logger.Info("report run complete",
		zap.String("run_id", manifest.ID),
		zap.Int("figures", len(artifacts)),
		zap.Duration("duration", manifest.RunDuration()))

	return result, nil
}

// loadInputs loads both source datasets and records them in the manifest.
func loadInputs(cfg *config.Config, logger *zap.Logger, manifest *report.RunManifest) (*vdem.Panel, *ngolaw.Dataset, error) {
	resolver := countries.NewResolver()
	if cfg.Data.CountryOverrides != "" {
		added, err := resolver.LoadOverrides(cfg.Data.CountryOverrides)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load country overrides: %w", err)
		}
		logger.Debug("country overrides loaded",
			zap.Int("names", added),
			zap.String("path", cfg.Data.CountryOverrides))
	}

	panel, err := vdem.NewLoader(cfg.Data.PanelPath, logger).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load democracy panel: %w", err)
	}
	manifest.SetPanel(panel)
	if err := manifest.RecordInput("vdem-panel", panel.Path); err != nil {
		return nil, nil, err
	}

	laws, err := ngolaw.NewLoader(cfg.Data.LawPath, cfg.Data.LawSheet, resolver, logger).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load law workbook: %w", err)
	}
	manifest.SetResolution(&laws.Resolution)
	if err := manifest.RecordInput("ngo-laws", laws.Path); err != nil {
		return nil, nil, err
	}

	return panel, laws, nil
}

// BuildSeries assembles the three report series from loaded inputs.
func BuildSeries(panel *vdem.Panel, lawPanel *ngolaw.Panel, profiles map[string]vdem.RegimeProfile) []*analysis.Series {
	return []*analysis.Series{
		analysis.BuildElectionsSeries(panel.Records),
		analysis.BuildCivilSocietySeries(panel.Records),
		analysis.BuildNGOLawSeries(lawPanel, profiles),
	}
}
