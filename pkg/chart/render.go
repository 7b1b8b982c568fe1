package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/coolbeans/civitas/pkg/analysis"
)

// Artifact is one written figure file.
type Artifact struct {
	Figure string `json:"figure"`
	Format string `json:"format"`
	Path   string `json:"path"`
}

// Renderer writes figures into a target directory. Write failures are
// fatal to the run; there is no retry.
type Renderer struct {
	dir    string
	logger *zap.Logger
}

// NewRenderer creates a Renderer writing into dir. A nil logger is
// replaced with a no-op logger.
func NewRenderer(dir string, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{dir: dir, logger: logger}
}

// Dir returns the renderer's target directory.
func (renderer *Renderer) Dir() string {
	return renderer.dir
}

// RenderAll renders every series into the target directory, creating it
// if needed, and returns the written artifacts in input order.
func (renderer *Renderer) RenderAll(seriesList []*analysis.Series) ([]Artifact, error) {
	if err := os.MkdirAll(renderer.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create figure directory: %w", err)
	}

	artifacts := make([]Artifact, 0, 2*len(seriesList))
	for _, series := range seriesList {
		written, err := renderer.RenderSeries(series)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, written...)
	}
	return artifacts, nil
}

// RenderSeries writes one figure in both formats and returns the two
// artifacts (PDF first).
func (renderer *Renderer) RenderSeries(series *analysis.Series) ([]Artifact, error) {
	p, err := BuildPlot(series)
	if err != nil {
		return nil, err
	}

	basename := FigureBasename(series.Name)
	pdfPath := filepath.Join(renderer.dir, basename+".pdf")
	pngPath := filepath.Join(renderer.dir, basename+".png")

	if err := writePDF(p, pdfPath); err != nil {
		return nil, err
	}
	if err := writePNG(p, pngPath); err != nil {
		return nil, err
	}

	renderer.logger.Debug("figure rendered",
		zap.String("figure", basename),
		zap.String("pdf", pdfPath),
		zap.String("png", pngPath),
		zap.Int("cells", series.Len()),
	)

	return []Artifact{
		{Figure: basename, Format: "pdf", Path: pdfPath},
		{Figure: basename, Format: "png", Path: pngPath},
	}, nil
}

// writePDF writes the plot as a vector PDF at the fixed page size.
func writePDF(p *plot.Plot, path string) error {
	canvas := vgpdf.New(FigureWidth, FigureHeight)
	p.Draw(draw.New(canvas))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := canvas.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// writePNG writes the plot as a raster PNG at the fixed page size and
// print resolution.
func writePNG(p *plot.Plot, path string) error {
	canvas := vgimg.NewWith(
		vgimg.UseWH(FigureWidth, FigureHeight),
		vgimg.UseDPI(RasterDPI),
	)
	p.Draw(draw.New(canvas))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
