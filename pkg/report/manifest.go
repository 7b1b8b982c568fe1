// Package report assembles the run manifest written next to the rendered
// figures and the terminal summary printed at the end of a report build.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/coolbeans/civitas/pkg/chart"
	"github.com/coolbeans/civitas/pkg/ngolaw"
	"github.com/coolbeans/civitas/pkg/vdem"
)

const manifestVersion = "1.0.0"

// ManifestName is the file name of the run manifest inside the figure directory.
const ManifestName = "manifest.json"

// InputRecord describes one source file consumed by a run.
type InputRecord struct {
	Role      string `json:"role"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
}

// FigureRecord describes one rendered figure artifact.
type FigureRecord struct {
	Figure    string `json:"figure"`
	Format    string `json:"format"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
}

// SeriesRecord summarizes one aggregated series.
type SeriesRecord struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Cells int    `json:"cells"`
}

// ResolutionStats summarizes country name resolution for the law dataset.
type ResolutionStats struct {
	ResolvedCountries int `json:"resolved_countries"`
	UnmatchedNames    int `json:"unmatched_names"`
	DroppedRows       int `json:"dropped_rows"`
}

// RunManifest records what a completed run consumed and produced.
type RunManifest struct {
	ID         string    `json:"id"`
	Version    string    `json:"version"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Inputs           []InputRecord   `json:"inputs"`
	PanelShape       vdem.Shape      `json:"panel_shape"`
	SkippedPanelRows int             `json:"skipped_panel_rows"`
	WindowStart      int             `json:"window_start"`
	WindowEnd        int             `json:"window_end"`
	Resolution       ResolutionStats `json:"law_resolution"`
	GatesPassed      bool            `json:"gates_passed"`
	Series           []SeriesRecord  `json:"series"`
	Figures          []FigureRecord  `json:"figures"`
}

// NewRunManifest creates a manifest for a run starting now.
func NewRunManifest() *RunManifest {
	return &RunManifest{
		ID:        uuid.NewString(),
		Version:   manifestVersion,
		StartedAt: time.Now().UTC(),
		Inputs:    make([]InputRecord, 0),
		Series:    make([]SeriesRecord, 0),
		Figures:   make([]FigureRecord, 0),
	}
}

// RecordInput adds a source file to the manifest.
func (manifest *RunManifest) RecordInput(role, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat input %s: %w", role, err)
	}
	manifest.Inputs = append(manifest.Inputs, InputRecord{
		Role:      role,
		Path:      path,
		SizeBytes: info.Size(),
	})
	return nil
}

// SetPanel records the observed panel shape and the number of skipped rows.
func (manifest *RunManifest) SetPanel(panel *vdem.Panel) {
	if panel == nil {
		return
	}
	manifest.PanelShape = panel.Shape
	manifest.SkippedPanelRows = panel.SkippedRows
}

// SetWindow records the observation window used for regime classification.
func (manifest *RunManifest) SetWindow(start, end int) {
	manifest.WindowStart = start
	manifest.WindowEnd = end
}

// SetResolution records country name resolution statistics for the law dataset.
func (manifest *RunManifest) SetResolution(resolution *ngolaw.Resolution) {
	if resolution == nil {
		return
	}
	manifest.Resolution = ResolutionStats{
		ResolvedCountries: resolution.ResolvedCount(),
		UnmatchedNames:    resolution.UnmatchedCount(),
		DroppedRows:       resolution.DroppedRows(),
	}
}

// RecordSeries adds a series summary to the manifest.
func (manifest *RunManifest) RecordSeries(name, kind string, cells int) {
	manifest.Series = append(manifest.Series, SeriesRecord{
		Name:  name,
		Kind:  kind,
		Cells: cells,
	})
}

// RecordFigures adds rendered figure artifacts to the manifest.
func (manifest *RunManifest) RecordFigures(artifacts []chart.Artifact) error {
	for _, artifact := range artifacts {
		info, err := os.Stat(artifact.Path)
		if err != nil {
			return fmt.Errorf("failed to stat figure %s: %w", artifact.Path, err)
		}
		manifest.Figures = append(manifest.Figures, FigureRecord{
			Figure:    artifact.Figure,
			Format:    artifact.Format,
			Path:      artifact.Path,
			SizeBytes: info.Size(),
		})
	}
	return nil
}

// Finish stamps the manifest with the run completion time.
func (manifest *RunManifest) Finish() {
	manifest.FinishedAt = time.Now().UTC()
}

// RunDuration returns the elapsed time between start and finish.
func (manifest *RunManifest) RunDuration() time.Duration {
	if manifest.FinishedAt.IsZero() {
		return 0
	}
	return manifest.FinishedAt.Sub(manifest.StartedAt)
}

// ToJSON serializes the manifest with indentation.
func (manifest *RunManifest) ToJSON() ([]byte, error) {
	return json.MarshalIndent(manifest, "", "  ")
}

// Save writes the manifest to disk, creating the parent directory if needed.
func (manifest *RunManifest) Save(manifestPath string) error {
	if err := os.MkdirAll(filepath.Dir(manifestPath), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	data, err := manifest.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}

// LoadManifest reads a run manifest from disk.
func LoadManifest(manifestPath string) (*RunManifest, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	manifest := &RunManifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}

	return manifest, nil
}
