package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/coolbeans/civitas/pkg/chart"
	"github.com/coolbeans/civitas/pkg/ngolaw"
	"github.com/coolbeans/civitas/pkg/vdem"
)

func writeArtifact(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// --- Manifest construction ---

func TestNewRunManifest(t *testing.T) {
	manifest := NewRunManifest()

	if _, err := uuid.Parse(manifest.ID); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", manifest.ID, err)
	}
	if manifest.Version != manifestVersion {
		t.Errorf("version: got %q, want %q", manifest.Version, manifestVersion)
	}
	if manifest.StartedAt.IsZero() {
		t.Error("started timestamp not set")
	}
}

func TestRunManifest_RecordInput(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "panel.csv", "country,year\nSweden,1990\n")

	manifest := NewRunManifest()
	if err := manifest.RecordInput("vdem-panel", path); err != nil {
		t.Fatalf("RecordInput: %v", err)
	}

	if len(manifest.Inputs) != 1 {
		t.Fatalf("inputs: got %d, want 1", len(manifest.Inputs))
	}
	input := manifest.Inputs[0]
	if input.Role != "vdem-panel" || input.Path != path {
		t.Errorf("input record: got %+v", input)
	}
	if input.SizeBytes != 25 {
		t.Errorf("input size: got %d, want 25", input.SizeBytes)
	}
}

func TestRunManifest_RecordInputMissingFile(t *testing.T) {
	manifest := NewRunManifest()
	if err := manifest.RecordInput("vdem-panel", filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("missing input: expected error")
	}
}

func TestRunManifest_RecordFigures(t *testing.T) {
	dir := t.TempDir()
	pdfPath := writeArtifact(t, dir, "fig-elections.pdf", "%PDF-fake")
	pngPath := writeArtifact(t, dir, "fig-elections.png", "png-fake")

	manifest := NewRunManifest()
	err := manifest.RecordFigures([]chart.Artifact{
		{Figure: "fig-elections", Format: "pdf", Path: pdfPath},
		{Figure: "fig-elections", Format: "png", Path: pngPath},
	})
	if err != nil {
		t.Fatalf("RecordFigures: %v", err)
	}

	if len(manifest.Figures) != 2 {
		t.Fatalf("figures: got %d, want 2", len(manifest.Figures))
	}
	if manifest.Figures[0].SizeBytes != 9 {
		t.Errorf("pdf size: got %d, want 9", manifest.Figures[0].SizeBytes)
	}
	if manifest.Figures[1].Format != "png" {
		t.Errorf("second figure format: got %q, want png", manifest.Figures[1].Format)
	}
}

func TestRunManifest_RecordFiguresMissingFile(t *testing.T) {
	manifest := NewRunManifest()
	err := manifest.RecordFigures([]chart.Artifact{
		{Figure: "fig-elections", Format: "pdf", Path: filepath.Join(t.TempDir(), "absent.pdf")},
	})
	if err == nil {
		t.Error("missing figure: expected error")
	}
}

func TestRunManifest_SetResolution(t *testing.T) {
	resolution := &ngolaw.Resolution{
		Resolved:  map[string]string{"Albania": "ALB", "Mexico": "MEX"},
		Unmatched: map[string]int{"Atlantis": 3, "Narnia": 2},
	}

	manifest := NewRunManifest()
	manifest.SetResolution(resolution)

	if manifest.Resolution.ResolvedCountries != 2 {
		t.Errorf("resolved countries: got %d, want 2", manifest.Resolution.ResolvedCountries)
	}
	if manifest.Resolution.UnmatchedNames != 2 {
		t.Errorf("unmatched names: got %d, want 2", manifest.Resolution.UnmatchedNames)
	}
	if manifest.Resolution.DroppedRows != 5 {
		t.Errorf("dropped rows: got %d, want 5", manifest.Resolution.DroppedRows)
	}
}

// --- Persistence ---

func TestRunManifest_SaveLoad(t *testing.T) {
	manifest := NewRunManifest()
	manifest.SetPanel(&vdem.Panel{
		Shape:       vdem.Shape{Rows: 120, Columns: 7},
		SkippedRows: 2,
	})
	manifest.SetWindow(1990, 2013)
	manifest.RecordSeries("elections", "proportion", 48)
	manifest.GatesPassed = true
	manifest.Finish()

	manifestPath := filepath.Join(t.TempDir(), "figures", ManifestName)
	if err := manifest.Save(manifestPath); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadManifest(manifestPath)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	if loaded.ID != manifest.ID {
		t.Errorf("ID: got %q, want %q", loaded.ID, manifest.ID)
	}
	if loaded.PanelShape != manifest.PanelShape {
		t.Errorf("panel shape: got %+v, want %+v", loaded.PanelShape, manifest.PanelShape)
	}
	if loaded.SkippedPanelRows != 2 {
		t.Errorf("skipped rows: got %d, want 2", loaded.SkippedPanelRows)
	}
	if loaded.WindowStart != 1990 || loaded.WindowEnd != 2013 {
		t.Errorf("window: got %d-%d, want 1990-2013", loaded.WindowStart, loaded.WindowEnd)
	}
	if len(loaded.Series) != 1 || loaded.Series[0].Cells != 48 {
		t.Errorf("series: got %+v", loaded.Series)
	}
	if !loaded.GatesPassed {
		t.Error("gates passed flag lost in round trip")
	}
	if loaded.RunDuration() < 0 {
		t.Errorf("run duration negative: %v", loaded.RunDuration())
	}
}

func TestLoadManifest_MissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("missing manifest: expected error")
	}
}

// --- Formatting ---

func TestFormatRunReport(t *testing.T) {
	dir := t.TempDir()
	panelPath := writeArtifact(t, dir, "panel.csv", strings.Repeat("x", 2048))

	manifest := NewRunManifest()
	if err := manifest.RecordInput("vdem-panel", panelPath); err != nil {
		t.Fatalf("RecordInput: %v", err)
	}
	manifest.SetPanel(&vdem.Panel{Shape: vdem.Shape{Rows: 120, Columns: 7}})
	manifest.SetWindow(1990, 2013)
	manifest.RecordSeries("elections", "proportion", 48)
	manifest.GatesPassed = true
	manifest.Finish()

	out := FormatRunReport(manifest)

	for _, want := range []string{
		"Report Build Summary",
		manifest.ID,
		"Gates:      PASS",
		"120 rows x 7 columns",
		"1990-2013",
		"vdem-panel",
		"2.0 KB",
		"48 cells",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}

	for _, test := range tests {
		if got := FormatBytes(test.bytes); got != test.want {
			t.Errorf("FormatBytes(%d): got %q, want %q", test.bytes, got, test.want)
		}
	}
}

func TestTruncatePath(t *testing.T) {
	if got := truncatePath("/short/path.csv", 50); got != "/short/path.csv" {
		t.Errorf("short path altered: %q", got)
	}

	long := "/very/deeply/nested/directory/structure/holding/data/panel.csv"
	got := truncatePath(long, 30)
	if len(got) != 30 {
		t.Errorf("truncated length: got %d, want 30", len(got))
	}
	if !strings.HasPrefix(got, "...") {
		t.Errorf("truncated path lacks ellipsis: %q", got)
	}
	if !strings.HasSuffix(got, "panel.csv") {
		t.Errorf("file name lost: %q", got)
	}
}
