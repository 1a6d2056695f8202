package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"happiness/internal/engine"
	"happiness/internal/export"
	"happiness/internal/models"
	"happiness/internal/render"
)

const (
	mimePNG   = "image/png"
	mimeXLSX  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeArrow = "application/vnd.apache.arrow.stream"
)

// Charts lists the names accepted by GetChart and DrawChart.
var Charts = []string{"top", "bottom", "ranking", "scatter", "trend", "compare", "correlation", "histogram"}

// DrawChart renders one dashboard chart as PNG into buf.
func DrawChart(buf *bytes.Buffer, ds *engine.Dataset, sel engine.Selection, chart string) error {
	switch chart {
	case "top", "bottom":
		items, err := engine.Leaders(ds, sel.Year, engine.FieldScore, sel.TopN, chart == "bottom")
		if err != nil {
			return err
		}
		word := "Top"
		if chart == "bottom" {
			word = "Bottom"
		}
		return render.Bar(buf, fmt.Sprintf("%s %d Happiest Countries (%d)", word, sel.TopN, sel.Year), engine.FieldScore.Label(), items)
	case "ranking":
		table, err := engine.FactorRanking(ds, sel.Year, sel.Factor, sel.TopN)
		if err != nil {
			return err
		}
		return render.Bar(buf, fmt.Sprintf("Top %d Countries by %s (%d)", sel.TopN, sel.Factor.Label(), sel.Year), sel.Factor.Label(), table.Rows)
	case "scatter":
		sc, err := engine.FactorScatter(ds, sel.Year, sel.Factor)
		if err != nil {
			return err
		}
		return render.Scatter(buf, fmt.Sprintf("%s vs Happiness Score (%d)", sel.Factor.Label(), sel.Year), sel.Factor.Label(), sc)
	case "trend":
		return render.Line(buf, "Happiness Trend: "+sel.Country, []models.Series{engine.CountryTrend(ds, sel.Country)})
	case "compare":
		if len(sel.Compare) == 0 {
			return &engine.InvalidArgumentError{Param: "compare", Value: "", Reason: "no countries selected"}
		}
		return render.Line(buf, "Happiness Comparison: "+strings.Join(sel.Compare, ", "), engine.CompareTrends(ds, sel.Compare))
	case "correlation":
		m, err := engine.CorrelationMatrix(engine.FilterByYear(ds.All(), sel.Year), engine.HeatmapFields)
		if err != nil {
			return err
		}
		return render.Heatmap(buf, fmt.Sprintf("Factor Correlation (%d)", sel.Year), m.Model())
	case "histogram":
		h, err := engine.FactorHistogram(ds, sel.Year, sel.Factor, engine.DefaultBins)
		if err != nil {
			return err
		}
		return render.Histogram(buf, fmt.Sprintf("Distribution of %s (%d)", sel.Factor.Label(), sel.Year), h)
	}
	return &engine.InvalidArgumentError{Param: "chart", Value: chart, Reason: "one of " + strings.Join(Charts, ", ")}
}

// GetChart serves /api/charts/:chart as a PNG for the query's selection.
func (h *Handler) GetChart(c echo.Context) error {
	ds := dataset(c)
	sel, err := selection(c, ds)
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := DrawChart(&buf, ds, sel, c.Param("chart")); err != nil {
		return respondError(c, err)
	}
	return c.Blob(http.StatusOK, mimePNG, buf.Bytes())
}

// ExportWorkbook downloads the dashboard for the selection as xlsx.
func (h *Handler) ExportWorkbook(c echo.Context) error {
	ds := dataset(c)
	sel, err := selection(c, ds)
	if err != nil {
		return respondError(c, err)
	}
	d, err := engine.BuildDashboard(ds, sel)
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, d); err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="happiness-%d.xlsx"`, sel.Year))
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

// ExportArrow streams observations as Arrow IPC, optionally narrowed by
// year and country.
func (h *Handler) ExportArrow(c echo.Context) error {
	view := dataset(c).All()
	if c.QueryParam("year") != "" {
		year, err := intParam(c, "year", 0)
		if err != nil {
			return respondError(c, err)
		}
		view = engine.FilterByYear(view, year)
	}
	if country := c.QueryParam("country"); country != "" {
		view = engine.FilterByCountry(view, country)
	}
	var buf bytes.Buffer
	if err := export.WriteArrow(&buf, view.Rows()); err != nil {
		return respondError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="happiness.arrow"`)
	return c.Blob(http.StatusOK, mimeArrow, buf.Bytes())
}
