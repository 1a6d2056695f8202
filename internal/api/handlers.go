package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"happiness/internal/engine"
	"happiness/internal/models"
)

type Handler struct {
	data atomic.Pointer[engine.Dataset]
}

// NewHandler creates a handler. ds may be nil while the dataset loads;
// every data route answers 503 until SetData is called.
func NewHandler(ds *engine.Dataset) *Handler {
	h := &Handler{}
	if ds != nil {
		h.data.Store(ds)
	}
	return h
}

// SetData publishes the loaded dataset.
func (h *Handler) SetData(ds *engine.Dataset) { h.data.Store(ds) }

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api", h.requireData, h.etag)
	api.GET("/meta", h.GetMeta)
	api.GET("/observations", h.GetObservations)
	api.GET("/kpis", h.GetKPIs)
	api.GET("/top", h.GetTop)
	api.GET("/bottom", h.GetBottom)
	api.GET("/ranking", h.GetRanking)
	api.GET("/scatter", h.GetScatter)
	api.GET("/trend", h.GetTrend)
	api.GET("/compare", h.GetCompare)
	api.GET("/correlation", h.GetCorrelation)
	api.GET("/histogram", h.GetHistogram)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/charts/:chart", h.GetChart)
	api.GET("/export/xlsx", h.ExportWorkbook)
	api.GET("/export/arrow", h.ExportArrow)
}

// --- HELPERS ---

const datasetKey = "dataset"

func dataset(c echo.Context) *engine.Dataset {
	return c.Get(datasetKey).(*engine.Dataset)
}

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func intParam(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &engine.InvalidArgumentError{Param: name, Value: raw, Reason: "not an integer"}
	}
	return n, nil
}

func boolParam(c echo.Context, name string) (bool, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &engine.InvalidArgumentError{Param: name, Value: raw, Reason: "not a boolean"}
	}
	return b, nil
}

// selection reads year, n, factor, country and compare from the query,
// filling gaps from engine.DefaultSelection, and validates the result.
func selection(c echo.Context, ds *engine.Dataset) (engine.Selection, error) {
	sel := engine.DefaultSelection(ds)
	var err error

	if sel.Year, err = intParam(c, "year", sel.Year); err != nil {
		return sel, err
	}
	if sel.TopN, err = intParam(c, "n", sel.TopN); err != nil {
		return sel, err
	}
	if raw := c.QueryParam("factor"); raw != "" {
		if sel.Factor, err = engine.ParseFactor(raw); err != nil {
			return sel, err
		}
	}
	if raw := c.QueryParam("country"); raw != "" {
		sel.Country = raw
	}
	if values, ok := c.QueryParams()["compare"]; ok {
		sel.Compare = []string{}
		for _, v := range values {
			for _, name := range strings.Split(v, ",") {
				if name = strings.TrimSpace(name); name != "" {
					sel.Compare = append(sel.Compare, name)
				}
			}
		}
	}
	return sel, sel.Validate(ds)
}

// --- HANDLERS ---

func (h *Handler) Health(c echo.Context) error {
	status := "loading"
	if h.data.Load() != nil {
		status = "ready"
	}
	return c.JSON(http.StatusOK, map[string]string{"status": status})
}

func (h *Handler) GetMeta(c echo.Context) error {
	return c.JSON(http.StatusOK, engine.Meta(dataset(c)))
}

// GetObservations pages through raw rows, optionally narrowed by year
// and country.
func (h *Handler) GetObservations(c echo.Context) error {
	ds := dataset(c)
	view := ds.All()
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

	rows := view.Rows()
	total := len(rows)
	limit, offset := getPaginationParams(c, total)

	if offset >= total {
		rows = []engine.Observation{}
	} else {
		end := offset + limit
		if end > total {
			end = total
		}
		rows = rows[offset:end]
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   rows,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetKPIs returns the KPI panel over all rows, or one year with ?year=.
func (h *Handler) GetKPIs(c echo.Context) error {
	view := dataset(c).All()
	if c.QueryParam("year") != "" {
		year, err := intParam(c, "year", 0)
		if err != nil {
			return respondError(c, err)
		}
		view = engine.FilterByYear(view, year)
	}
	kpis, err := engine.Summarize(view)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, kpis)
}

func (h *Handler) GetTop(c echo.Context) error    { return h.leaders(c, false) }
func (h *Handler) GetBottom(c echo.Context) error { return h.leaders(c, true) }

func (h *Handler) leaders(c echo.Context, ascending bool) error {
	ds := dataset(c)
	sel, err := selection(c, ds)
	if err != nil {
		return respondError(c, err)
	}
	items, err := engine.Leaders(ds, sel.Year, engine.FieldScore, sel.TopN, ascending)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetRanking ranks countries of a year by the selected factor.
func (h *Handler) GetRanking(c echo.Context) error {
	ds := dataset(c)
	sel, err := selection(c, ds)
	if err != nil {
		return respondError(c, err)
	}
	ascending, err := boolParam(c, "ascending")
	if err != nil {
		return respondError(c, err)
	}
	items, err := engine.Leaders(ds, sel.Year, sel.Factor, sel.TopN, ascending)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, models.RankingTable{Factor: string(sel.Factor), Year: sel.Year, Rows: items})
}

func (h *Handler) GetScatter(c echo.Context) error {
	ds := dataset(c)
	sel, err := selection(c, ds)
	if err != nil {
		return respondError(c, err)
	}
	sc, err := engine.FactorScatter(ds, sel.Year, sel.Factor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sc)
}

func (h *Handler) GetTrend(c echo.Context) error {
	ds := dataset(c)
	sel, err := selection(c, ds)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, engine.CountryTrend(ds, sel.Country))
}

func (h *Handler) GetCompare(c echo.Context) error {
	ds := dataset(c)
	sel, err := selection(c, ds)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, engine.CompareTrends(ds, sel.Compare))
}

// GetCorrelation returns the heatmap matrix for a year. ?fields= picks the
// columns; ?strict=true turns undefined cells into a 422.
func (h *Handler) GetCorrelation(c echo.Context) error {
	ds := dataset(c)
	sel, err := selection(c, ds)
	if err != nil {
		return respondError(c, err)
	}

	fields := engine.HeatmapFields
	if raw := c.QueryParam("fields"); raw != "" {
		fields = nil
		for _, name := range strings.Split(raw, ",") {
			f, err := engine.ParseField(strings.TrimSpace(name))
			if err != nil {
				return respondError(c, err)
			}
			fields = append(fields, f)
		}
	}
	strict, err := boolParam(c, "strict")
	if err != nil {
		return respondError(c, err)
	}

	m, err := engine.CorrelationMatrix(engine.FilterByYear(ds.All(), sel.Year), fields)
	if err != nil {
		return respondError(c, err)
	}
	if strict {
		if err := m.Err(); err != nil {
			return respondError(c, err)
		}
	}
	return c.JSON(http.StatusOK, m.Model())
}

// GetHistogram bins the selected factor for a year. ?field= accepts any
// numeric column, ?bins= the bin count.
func (h *Handler) GetHistogram(c echo.Context) error {
	ds := dataset(c)
	sel, err := selection(c, ds)
	if err != nil {
		return respondError(c, err)
	}
	field := sel.Factor
	if raw := c.QueryParam("field"); raw != "" {
		if field, err = engine.ParseField(raw); err != nil {
			return respondError(c, err)
		}
	}
	bins, err := intParam(c, "bins", engine.DefaultBins)
	if err != nil {
		return respondError(c, err)
	}
	hist, err := engine.FactorHistogram(ds, sel.Year, field, bins)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, hist)
}

func (h *Handler) GetDashboard(c echo.Context) error {
	ds := dataset(c)
	sel, err := selection(c, ds)
	if err != nil {
		return respondError(c, err)
	}
	d, err := engine.BuildDashboard(ds, sel)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}
