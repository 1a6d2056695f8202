// Package render draws dashboard sections as PNG charts with gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"happiness/internal/models"
)

const (
	width  = 10 * vg.Inch
	height = 6 * vg.Inch
)

var (
	barColor  = color.RGBA{R: 68, G: 1, B: 84, A: 255}
	histColor = color.RGBA{R: 0, G: 128, B: 128, A: 255}
	fitColor  = color.RGBA{R: 220, G: 50, B: 47, A: 255}
)

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	return p
}

func save(p *plot.Plot, w io.Writer) error {
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render: write png: %w", err)
	}
	return nil
}

// Bar draws a horizontal bar per ranked country, first item on top.
func Bar(w io.Writer, title, valueLabel string, items []models.RankedItem) error {
	if len(items) == 0 {
		return fmt.Errorf("render: bar chart %q has no rows", title)
	}
	p := newPlot(title, valueLabel, "")

	values := make(plotter.Values, len(items))
	names := make([]string, len(items))
	for i, it := range items {
		k := len(items) - 1 - i
		values[k] = it.Value
		names[k] = it.Country
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	bars.Horizontal = true
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalY(names...)
	p.Add(plotter.NewGrid())
	return save(p, w)
}

// Line draws one line with markers per series, x = year.
func Line(w io.Writer, title string, series []models.Series) error {
	if len(series) == 0 {
		return fmt.Errorf("render: line chart %q has no series", title)
	}
	p := newPlot(title, "Year", "Happiness Score")
	p.Legend.Top = true

	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j].X = float64(pt.Year)
			xys[j].Y = pt.Score
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(s.Name, line, points)
	}
	p.Add(plotter.NewGrid())
	return save(p, w)
}

// Scatter draws factor against score with country labels and the fitted
// trendline when one exists.
func Scatter(w io.Writer, title, xLabel string, sc models.Scatter) error {
	if len(sc.Points) == 0 {
		return fmt.Errorf("render: scatter %q has no points", title)
	}
	p := newPlot(title, xLabel, "Happiness Score")

	xys := make(plotter.XYs, len(sc.Points))
	labels := make([]string, len(sc.Points))
	for i, pt := range sc.Points {
		xys[i].X, xys[i].Y = pt.X, pt.Y
		labels[i] = pt.Country
	}

	points, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	points.GlyphStyle.Color = barColor
	points.GlyphStyle.Radius = vg.Points(3)
	p.Add(points)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	for i := range names.TextStyle {
		names.TextStyle[i].Font.Size = vg.Points(6)
	}
	p.Add(names)

	if fit := sc.Trendline; fit != nil {
		line := plotter.NewFunction(func(x float64) float64 { return fit.Slope*x + fit.Intercept })
		line.Color = fitColor
		line.Width = vg.Points(1.5)
		line.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("OLS R²=%.2f", fit.RSquared), line)
	}
	p.Add(plotter.NewGrid())
	return save(p, w)
}

// Histogram draws one bar per bin, labelled with the bin's lower bound.
func Histogram(w io.Writer, title string, h models.Histogram) error {
	if len(h.Bins) == 0 {
		return fmt.Errorf("render: histogram %q has no bins", title)
	}
	p := newPlot(title, h.Field, "Countries")

	counts := make(plotter.Values, len(h.Bins))
	names := make([]string, len(h.Bins))
	for i, b := range h.Bins {
		counts[i] = float64(b.Count)
		names[i] = fmt.Sprintf("%.2f", b.Lower)
	}

	bars, err := plotter.NewBarChart(counts, vg.Points(20))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	bars.Color = histColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.8
	p.X.Tick.Label.XAlign = -1
	return save(p, w)
}
