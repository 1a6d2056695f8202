package render

import (
	"fmt"
	"io"

	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"happiness/internal/models"
)

// correlationGrid adapts a correlation matrix to plotter.GridXYZ.
// Undefined cells read as 0.
type correlationGrid struct {
	values [][]*float64
}

func (g correlationGrid) Dims() (c, r int) { return len(g.values), len(g.values) }

func (g correlationGrid) Z(c, r int) float64 {
	if v := g.values[r][c]; v != nil {
		return *v
	}
	return 0
}

func (g correlationGrid) X(c int) float64 { return float64(c) }
func (g correlationGrid) Y(r int) float64 { return float64(r) }

// Heatmap draws the correlation matrix with each cell annotated.
func Heatmap(w io.Writer, title string, corr models.Correlation) error {
	n := len(corr.Fields)
	if n == 0 {
		return fmt.Errorf("render: heatmap %q has no fields", title)
	}
	if len(corr.Errors) > 0 {
		title += " (n/a cells undefined)"
	}
	p := newPlot(title, "", "")

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	hm := plotter.NewHeatMap(correlationGrid{values: corr.Values}, cm.Palette(11))
	hm.Min, hm.Max = -1, 1
	p.Add(hm)

	var xys plotter.XYs
	var labels []string
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			if v := corr.Values[r][c]; v != nil {
				labels = append(labels, fmt.Sprintf("%.2f", *v))
			} else {
				labels = append(labels, "n/a")
			}
		}
	}
	cells, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	for i := range cells.TextStyle {
		cells.TextStyle[i].Font.Size = vg.Points(9)
		cells.TextStyle[i].XAlign = -0.5
		cells.TextStyle[i].YAlign = -0.5
	}
	p.Add(cells)

	p.NominalX(corr.Fields...)
	p.NominalY(corr.Fields...)
	return save(p, w)
}
