package engine

import (
	"math"
	"sort"

	"happiness/internal/models"
)

// BuildDashboard assembles every section for the selection. It is pure and
// cheap enough to call again in full whenever the selection changes.
func BuildDashboard(ds *Dataset, sel Selection) (*models.Dashboard, error) {
	if err := sel.Validate(ds); err != nil {
		return nil, err
	}

	kpis, err := Summarize(ds.All())
	if err != nil {
		return nil, err
	}
	top, err := Leaders(ds, sel.Year, FieldScore, sel.TopN, false)
	if err != nil {
		return nil, err
	}
	bottom, err := Leaders(ds, sel.Year, FieldScore, sel.TopN, true)
	if err != nil {
		return nil, err
	}
	scatter, err := FactorScatter(ds, sel.Year, sel.Factor)
	if err != nil {
		return nil, err
	}
	corr, err := CorrelationMatrix(FilterByYear(ds.All(), sel.Year), HeatmapFields)
	if err != nil {
		return nil, err
	}
	hist, err := FactorHistogram(ds, sel.Year, sel.Factor, DefaultBins)
	if err != nil {
		return nil, err
	}
	ranking, err := FactorRanking(ds, sel.Year, sel.Factor, sel.TopN)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Selection:   sel.Model(),
		KPIs:        kpis,
		Top:         top,
		Bottom:      bottom,
		Scatter:     scatter,
		Trend:       CountryTrend(ds, sel.Country),
		Compare:     CompareTrends(ds, sel.Compare),
		Correlation: corr.Model(),
		Histogram:   hist,
		Ranking:     ranking,
	}, nil
}

// Leaders ranks the countries of one year by field.
func Leaders(ds *Dataset, year int, field Field, n int, ascending bool) ([]models.RankedItem, error) {
	rows, err := TopN(FilterByYear(ds.All(), year), field, n, ascending)
	if err != nil {
		return nil, err
	}
	return rankedItems(rows, field), nil
}

// FactorRanking is the factor table: top n countries by factor, descending.
func FactorRanking(ds *Dataset, year int, factor Field, n int) (models.RankingTable, error) {
	items, err := Leaders(ds, year, factor, n, false)
	if err != nil {
		return models.RankingTable{}, err
	}
	return models.RankingTable{Factor: string(factor), Year: year, Rows: items}, nil
}

func rankedItems(rows []Observation, field Field) []models.RankedItem {
	items := make([]models.RankedItem, len(rows))
	for i, r := range rows {
		items[i] = models.RankedItem{
			Position: i + 1,
			Country:  r.Country,
			Year:     r.Year,
			Value:    r.Value(field),
			Score:    r.Score,
		}
	}
	return items
}

// FactorScatter plots factor against score for one year with an OLS
// trendline. The trendline is omitted when the factor is constant.
func FactorScatter(ds *Dataset, year int, factor Field) (models.Scatter, error) {
	if err := numericField("scatter", factor); err != nil {
		return models.Scatter{}, err
	}
	view := FilterByYear(ds.All(), year)
	out := models.Scatter{Factor: string(factor), Year: year, Points: make([]models.ScatterPoint, view.Len())}
	xs := make([]float64, view.Len())
	ys := make([]float64, view.Len())
	for i := 0; i < view.Len(); i++ {
		r := view.Row(i)
		xs[i], ys[i] = r.Value(factor), r.Score
		out.Points[i] = models.ScatterPoint{Country: r.Country, X: xs[i], Y: ys[i], Size: r.GDP}
	}
	out.Trendline = LinearFit(xs, ys)
	return out, nil
}

// LinearFit is an ordinary least squares fit of ys on xs. It returns nil
// when fewer than two points exist or xs has no spread.
func LinearFit(xs, ys []float64) *models.Trendline {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return nil
	}
	var mx, my float64
	for i := range xs {
		mx += xs[i]
		my += ys[i]
	}
	mx /= float64(n)
	my /= float64(n)

	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 {
		return nil
	}
	slope := sxy / sxx
	fit := &models.Trendline{Slope: slope, Intercept: my - slope*mx, RSquared: 1}
	if syy > 0 {
		fit.RSquared = math.Min(1, sxy*sxy/(sxx*syy))
	}
	return fit
}

// CountryTrend is one country's score by year, ascending by year.
func CountryTrend(ds *Dataset, country string) models.Series {
	rows := FilterByCountry(ds.All(), country).Rows()
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	s := models.Series{Name: country, Points: make([]models.TrendPoint, len(rows))}
	for i, r := range rows {
		s.Points[i] = models.TrendPoint{Year: r.Year, Score: r.Score}
	}
	return s
}

// CompareTrends returns one series per country, in the order given.
func CompareTrends(ds *Dataset, countries []string) []models.Series {
	out := make([]models.Series, 0, len(countries))
	for _, c := range countries {
		out = append(out, CountryTrend(ds, c))
	}
	return out
}

// FactorHistogram is the distribution of factor for one year.
func FactorHistogram(ds *Dataset, year int, factor Field, bins int) (models.Histogram, error) {
	b, err := Histogram(FilterByYear(ds.All(), year), factor, bins)
	if err != nil {
		return models.Histogram{}, err
	}
	return models.Histogram{Field: string(factor), Year: year, Bins: b}, nil
}

// Meta lists selectable values for the sidebar.
func Meta(ds *Dataset) models.Meta {
	factors := make([]string, len(Factors))
	for i, f := range Factors {
		factors[i] = string(f)
	}
	return models.Meta{
		Rows:        ds.Len(),
		Years:       ds.DistinctYears(),
		Countries:   ds.DistinctCountries(),
		Factors:     factors,
		Fingerprint: ds.FingerprintHex(),
	}
}
