package engine

import "happiness/internal/models"

const (
	MinTopN     = 1
	MaxTopN     = 20
	DefaultTopN = 10
	// DefaultBins matches the factor distribution chart.
	DefaultBins = 20
	MaxBins     = 200
)

// DefaultCompare are the countries compared when the user picks none.
var DefaultCompare = []string{"Finland", "United States"}

// Selection carries the user's current choices. The engine keeps no
// selection state; callers pass one per query.
type Selection struct {
	Year    int
	TopN    int
	Factor  Field
	Country string
	Compare []string
}

// DefaultSelection picks the latest year, top 10, GDP, the first country
// and whichever default comparison countries exist.
func DefaultSelection(ds *Dataset) Selection {
	sel := Selection{TopN: DefaultTopN, Factor: FieldGDP, Compare: []string{}}
	if years := ds.DistinctYears(); len(years) > 0 {
		sel.Year = years[len(years)-1]
	}
	if countries := ds.DistinctCountries(); len(countries) > 0 {
		sel.Country = countries[0]
	}
	for _, c := range DefaultCompare {
		if ds.HasCountry(c) {
			sel.Compare = append(sel.Compare, c)
		}
	}
	return sel
}

// Validate checks every parameter against the dataset.
func (s Selection) Validate(ds *Dataset) error {
	if s.TopN < MinTopN || s.TopN > MaxTopN {
		return &InvalidArgumentError{Param: "topN", Value: s.TopN, Reason: "must be between 1 and 20"}
	}
	if !s.Factor.IsFactor() {
		return &InvalidArgumentError{Param: "factor", Value: string(s.Factor), Reason: "not a contributing factor"}
	}
	if !ds.HasYear(s.Year) {
		return &InvalidArgumentError{Param: "year", Value: s.Year, Reason: "no rows for year"}
	}
	if !ds.HasCountry(s.Country) {
		return &InvalidArgumentError{Param: "country", Value: s.Country, Reason: "unknown country"}
	}
	for _, c := range s.Compare {
		if !ds.HasCountry(c) {
			return &InvalidArgumentError{Param: "compare", Value: c, Reason: "unknown country"}
		}
	}
	return nil
}

// Model converts the selection to its JSON form.
func (s Selection) Model() models.Selection {
	return models.Selection{
		Year:    s.Year,
		TopN:    s.TopN,
		Factor:  string(s.Factor),
		Country: s.Country,
		Compare: append([]string{}, s.Compare...),
	}
}
