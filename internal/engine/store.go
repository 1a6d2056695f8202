package engine

import (
	"fmt"
	"sort"
	"strconv"
)

// Observation is one country-year record.
type Observation struct {
	Country    string  `json:"country"`
	Year       int     `json:"year"`
	Score      float64 `json:"happiness_score"`
	Rank       int     `json:"happiness_rank"`
	GDP        float64 `json:"gdp"`
	Family     float64 `json:"family"`
	Health     float64 `json:"health"`
	Freedom    float64 `json:"freedom"`
	Generosity float64 `json:"generosity"`
	Trust      float64 `json:"trust"`
}

// Value returns a numeric field of the observation.
func (o Observation) Value(f Field) float64 {
	switch f {
	case FieldYear:
		return float64(o.Year)
	case FieldScore:
		return o.Score
	case FieldRank:
		return float64(o.Rank)
	case FieldGDP:
		return o.GDP
	case FieldFamily:
		return o.Family
	case FieldHealth:
		return o.Health
	case FieldFreedom:
		return o.Freedom
	case FieldGenerosity:
		return o.Generosity
	case FieldTrust:
		return o.Trust
	}
	panic(fmt.Sprintf("engine: field %q is not numeric", f))
}

// Dataset holds data in Struct-of-Arrays format. It is never mutated after Load.
type Dataset struct {
	Source      string
	Fingerprint uint64

	Countries  []string
	Years      []int32
	Scores     []float64
	Ranks      []int32
	GDP        []float64
	Family     []float64
	Health     []float64
	Freedom    []float64
	Generosity []float64
	Trust      []float64
}

// NewDataset builds a Dataset from rows, keeping their order.
func NewDataset(rows []Observation) *Dataset {
	n := len(rows)
	ds := &Dataset{
		Countries:  make([]string, n),
		Years:      make([]int32, n),
		Scores:     make([]float64, n),
		Ranks:      make([]int32, n),
		GDP:        make([]float64, n),
		Family:     make([]float64, n),
		Health:     make([]float64, n),
		Freedom:    make([]float64, n),
		Generosity: make([]float64, n),
		Trust:      make([]float64, n),
	}
	for i, r := range rows {
		ds.set(i, r)
	}
	return ds
}

func (ds *Dataset) set(i int, r Observation) {
	ds.Countries[i] = r.Country
	ds.Years[i] = int32(r.Year)
	ds.Scores[i] = r.Score
	ds.Ranks[i] = int32(r.Rank)
	ds.GDP[i] = r.GDP
	ds.Family[i] = r.Family
	ds.Health[i] = r.Health
	ds.Freedom[i] = r.Freedom
	ds.Generosity[i] = r.Generosity
	ds.Trust[i] = r.Trust
}

// Len is the number of rows.
func (ds *Dataset) Len() int { return len(ds.Countries) }

// Row materializes row i.
func (ds *Dataset) Row(i int) Observation {
	return Observation{
		Country:    ds.Countries[i],
		Year:       int(ds.Years[i]),
		Score:      ds.Scores[i],
		Rank:       int(ds.Ranks[i]),
		GDP:        ds.GDP[i],
		Family:     ds.Family[i],
		Health:     ds.Health[i],
		Freedom:    ds.Freedom[i],
		Generosity: ds.Generosity[i],
		Trust:      ds.Trust[i],
	}
}

// value reads a numeric column without materializing the row.
func (ds *Dataset) value(i int, f Field) float64 {
	switch f {
	case FieldYear:
		return float64(ds.Years[i])
	case FieldScore:
		return ds.Scores[i]
	case FieldRank:
		return float64(ds.Ranks[i])
	case FieldGDP:
		return ds.GDP[i]
	case FieldFamily:
		return ds.Family[i]
	case FieldHealth:
		return ds.Health[i]
	case FieldFreedom:
		return ds.Freedom[i]
	case FieldGenerosity:
		return ds.Generosity[i]
	case FieldTrust:
		return ds.Trust[i]
	}
	panic(fmt.Sprintf("engine: field %q is not numeric", f))
}

// FingerprintHex is the xxh3 hash of the source bytes, in hex.
func (ds *Dataset) FingerprintHex() string {
	return strconv.FormatUint(ds.Fingerprint, 16)
}

// All returns a view over every row.
func (ds *Dataset) All() View {
	idx := make([]int, ds.Len())
	for i := range idx {
		idx[i] = i
	}
	return View{ds: ds, idx: idx}
}

// DistinctYears returns the distinct years, ascending.
func (ds *Dataset) DistinctYears() []int {
	seen := make(map[int32]bool)
	var out []int
	for _, y := range ds.Years {
		if !seen[y] {
			seen[y] = true
			out = append(out, int(y))
		}
	}
	sort.Ints(out)
	return out
}

// DistinctCountries returns each country once, in first-appearance order.
func (ds *Dataset) DistinctCountries() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range ds.Countries {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// HasYear reports whether any row has year y.
func (ds *Dataset) HasYear(y int) bool {
	for _, v := range ds.Years {
		if int(v) == y {
			return true
		}
	}
	return false
}

// HasCountry reports whether any row has the country.
func (ds *Dataset) HasCountry(c string) bool {
	for _, v := range ds.Countries {
		if v == c {
			return true
		}
	}
	return false
}

// View is a read-only subset of a Dataset: an index list into its rows.
// It never copies data and is recomputed for every query.
type View struct {
	ds  *Dataset
	idx []int
}

// Len is the number of rows in the view.
func (v View) Len() int { return len(v.idx) }

// Dataset returns the source dataset.
func (v View) Dataset() *Dataset { return v.ds }

// Row returns the i-th row of the view.
func (v View) Row(i int) Observation { return v.ds.Row(v.idx[i]) }

// Rows materializes the view in order.
func (v View) Rows() []Observation {
	out := make([]Observation, len(v.idx))
	for i, j := range v.idx {
		out[i] = v.ds.Row(j)
	}
	return out
}

// Column copies a numeric column of the view.
func (v View) Column(f Field) ([]float64, error) {
	if err := numericField("column", f); err != nil {
		return nil, err
	}
	out := make([]float64, len(v.idx))
	for i, j := range v.idx {
		out[i] = v.ds.value(j, f)
	}
	return out, nil
}

func (v View) where(keep func(row int) bool) View {
	idx := make([]int, 0, len(v.idx))
	for _, j := range v.idx {
		if keep(j) {
			idx = append(idx, j)
		}
	}
	return View{ds: v.ds, idx: idx}
}
