// Package chart renders aggregate series into the report's figures. A
// figure is a pure function of its series: proportion series become
// year lines with point markers, mean series become lines with shaded
// confidence ribbons. Every figure is written twice, as a vector PDF
// and as a raster PNG at print resolution.
package chart

import (
	"fmt"
	"image/color"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/coolbeans/civitas/pkg/analysis"
)

// Fixed figure geometry. The PNG pixel size follows from the page size
// at RasterDPI (2100 x 1350 for 7 x 4.5 inches at 300 dpi).
const (
	FigureWidth  = 7 * vg.Inch
	FigureHeight = 4.5 * vg.Inch
	RasterDPI    = 300
)

// palette holds the line colors, assigned to groups in sorted order.
var palette = []color.RGBA{
	{R: 0xB2, G: 0x18, B: 0x28, A: 0xFF},
	{R: 0x1F, G: 0x4E, B: 0x79, A: 0xFF},
	{R: 0x55, G: 0x7A, B: 0x2F, A: 0xFF},
	{R: 0x8A, G: 0x4F, B: 0x9E, A: 0xFF},
}

func paletteColor(index int) color.RGBA {
	return palette[index%len(palette)]
}

// ribbonColor fades a line color for the confidence band fill.
func ribbonColor(line color.RGBA) color.NRGBA {
	return color.NRGBA{R: line.R, G: line.G, B: line.B, A: 0x30}
}

// FigureBasename returns the file basename (without extension) for a
// series name, e.g. "elections" becomes "fig-elections".
func FigureBasename(seriesName string) string {
	return "fig-" + seriesName
}

// BuildPlot constructs the figure for one series.
func BuildPlot(series *analysis.Series) (*plot.Plot, error) {
	if series.Len() == 0 {
		return nil, fmt.Errorf("series %s has no cells to plot", series.Name)
	}

	p := plot.New()
	p.Title.Text = series.Title
	p.Title.TextStyle.Font.Size = vg.Points(13)
	p.X.Label.Text = "Year"
	p.Legend.Top = true
	p.Legend.Left = true

	var err error
	switch series.Kind {
	case analysis.KindMean:
		err = addMeanLines(p, series)
	default:
		err = addProportionLines(p, series)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build %s figure: %w", series.Name, err)
	}
	return p, nil
}

func addProportionLines(p *plot.Plot, series *analysis.Series) error {
	p.Y.Label.Text = "Share"
	p.Y.Min, p.Y.Max = 0, 1

	groups := proportionGroups(series)
	for groupIndex, group := range groups {
		xys := make(plotter.XYs, 0, len(series.Proportions))
		for _, point := range series.Proportions {
			if point.Group != group {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(point.Year), Y: point.Proportion})
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return err
		}
		line.Color = paletteColor(groupIndex)
		line.Width = vg.Points(1.5)
		points.Color = paletteColor(groupIndex)
		points.Radius = vg.Points(1.5)
		p.Add(line, points)

		if len(groups) > 1 {
			p.Legend.Add(group, line, points)
		}
	}
	return nil
}

func addMeanLines(p *plot.Plot, series *analysis.Series) error {
	p.Y.Label.Text = "Index"

	groups := meanGroups(series)
	for groupIndex, group := range groups {
		xys := make(plotter.XYs, 0, len(series.Means))
		band := make(plotter.XYs, 0, 2*len(series.Means))
		upper := make(plotter.XYs, 0, len(series.Means))
		for _, point := range series.Means {
			if point.Group != group {
				continue
			}
			xys = append(xys, plotter.XY{X: float64(point.Year), Y: point.Mean})
			if point.CIKnown {
				band = append(band, plotter.XY{X: float64(point.Year), Y: point.CILow})
				upper = append(upper, plotter.XY{X: float64(point.Year), Y: point.CIHigh})
			}
		}

		// close the ribbon by walking the upper bound backwards
		for i := len(upper) - 1; i >= 0; i-- {
			band = append(band, upper[i])
		}
		if len(band) >= 3 {
			ribbon, err := plotter.NewPolygon(band)
			if err != nil {
				return err
			}
			ribbon.Color = ribbonColor(paletteColor(groupIndex))
			ribbon.LineStyle.Color = ribbonColor(paletteColor(groupIndex))
			p.Add(ribbon)
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = paletteColor(groupIndex)
		line.Width = vg.Points(1.5)
		p.Add(line)

		if len(groups) > 1 {
			p.Legend.Add(group, line)
		}
	}
	return nil
}

func proportionGroups(series *analysis.Series) []string {
	seen := make(map[string]bool)
	groups := make([]string, 0, 2)
	for _, point := range series.Proportions {
		if !seen[point.Group] {
			seen[point.Group] = true
			groups = append(groups, point.Group)
		}
	}
	sort.Strings(groups)
	return groups
}

func meanGroups(series *analysis.Series) []string {
	seen := make(map[string]bool)
	groups := make([]string, 0, 2)
	for _, point := range series.Means {
		if !seen[point.Group] {
			seen[point.Group] = true
			groups = append(groups, point.Group)
		}
	}
	sort.Strings(groups)
	return groups
}
