package chart

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/coolbeans/civitas/pkg/analysis"
)

func proportionSeries() *analysis.Series {
	return &analysis.Series{
		Name:  analysis.SeriesElections,
		Title: "Share of autocracies holding multiparty elections",
		Kind:  analysis.KindProportion,
		Proportions: []analysis.ProportionPoint{
			{Year: 1990, Group: analysis.GroupAutocracies, Proportion: 0.4, Count: 2, N: 5, CILow: 0.2, CIHigh: 0.6},
			{Year: 1991, Group: analysis.GroupAutocracies, Proportion: 0.6, Count: 3, N: 5, CILow: 0.4, CIHigh: 0.8},
			{Year: 1992, Group: analysis.GroupAutocracies, Proportion: 0.8, Count: 4, N: 5, CILow: 0.6, CIHigh: 1.0},
		},
	}
}

func meanSeries() *analysis.Series {
	return &analysis.Series{
		Name:  analysis.SeriesCivilSociety,
		Title: "Core civil society index by regime type",
		Kind:  analysis.KindMean,
		Means: []analysis.MeanPoint{
			{Year: 1990, Group: analysis.GroupAutocracies, Mean: 0.3, N: 4, CILow: 0.2, CIHigh: 0.4, CIKnown: true},
			{Year: 1991, Group: analysis.GroupAutocracies, Mean: 0.35, N: 4, CILow: 0.25, CIHigh: 0.45, CIKnown: true},
			{Year: 1990, Group: analysis.GroupDemocracies, Mean: 0.8, N: 4, CILow: 0.7, CIHigh: 0.9, CIKnown: true},
			{Year: 1991, Group: analysis.GroupDemocracies, Mean: 0.82, N: 1},
		},
	}
}

func TestFigureBasename(t *testing.T) {
	if got := FigureBasename("elections"); got != "fig-elections" {
		t.Errorf("FigureBasename: got %q, want fig-elections", got)
	}
}

func TestBuildPlot_EmptySeries(t *testing.T) {
	series := &analysis.Series{Name: "empty", Kind: analysis.KindProportion}
	if _, err := BuildPlot(series); err == nil {
		t.Error("empty series: expected error")
	}
}

func TestBuildPlot_Proportion(t *testing.T) {
	if _, err := BuildPlot(proportionSeries()); err != nil {
		t.Fatalf("BuildPlot: %v", err)
	}
}

func TestBuildPlot_MeanWithRibbon(t *testing.T) {
	if _, err := BuildPlot(meanSeries()); err != nil {
		t.Fatalf("BuildPlot: %v", err)
	}
}

func TestRenderSeries_WritesBothFormats(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir, nil)

	artifacts, err := renderer.RenderSeries(proportionSeries())
	if err != nil {
		t.Fatalf("RenderSeries: %v", err)
	}

	if len(artifacts) != 2 {
		t.Fatalf("artifacts: got %d, want 2", len(artifacts))
	}
	if artifacts[0].Format != "pdf" || artifacts[1].Format != "png" {
		t.Errorf("formats: got %s, %s", artifacts[0].Format, artifacts[1].Format)
	}

	pdfData, err := os.ReadFile(filepath.Join(dir, "fig-elections.pdf"))
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(pdfData, []byte("%PDF")) {
		t.Error("pdf artifact lacks PDF header")
	}

	pngFile, err := os.Open(filepath.Join(dir, "fig-elections.png"))
	if err != nil {
		t.Fatalf("open png: %v", err)
	}
	defer pngFile.Close()
	img, err := png.Decode(pngFile)
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 2100 || bounds.Dy() != 1350 {
		t.Errorf("png size: got %dx%d, want 2100x1350", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderAll_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "figures")
	renderer := NewRenderer(dir, nil)

	artifacts, err := renderer.RenderAll([]*analysis.Series{proportionSeries(), meanSeries()})
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}

	if len(artifacts) != 4 {
		t.Fatalf("artifacts: got %d, want 4", len(artifacts))
	}
	for _, artifact := range artifacts {
		info, err := os.Stat(artifact.Path)
		if err != nil {
			t.Errorf("artifact %s missing: %v", artifact.Path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("artifact %s is empty", artifact.Path)
		}
	}
}

func TestRenderAll_FailsOnEmptySeries(t *testing.T) {
	renderer := NewRenderer(t.TempDir(), nil)

	empty := &analysis.Series{Name: "empty", Kind: analysis.KindProportion}
	if _, err := renderer.RenderAll([]*analysis.Series{empty}); err == nil {
		t.Error("empty series: expected error")
	}
}
