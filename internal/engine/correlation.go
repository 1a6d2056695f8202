package engine

import (
	"errors"
	"math"

	"happiness/internal/models"
)

// Matrix is a symmetric Pearson correlation matrix indexed by Fields.
type Matrix struct {
	Fields []Field
	values [][]float64
	errs   [][]error
}

// At returns cell (i, j) or an *UndefinedCorrelationError.
func (m *Matrix) At(i, j int) (float64, error) {
	if err := m.errs[i][j]; err != nil {
		return math.NaN(), err
	}
	return m.values[i][j], nil
}

// Err joins the errors of every undefined cell, each unordered pair once.
func (m *Matrix) Err() error {
	var errs []error
	for i := range m.Fields {
		for j := i; j < len(m.Fields); j++ {
			if m.errs[i][j] != nil {
				errs = append(errs, m.errs[i][j])
			}
		}
	}
	return errors.Join(errs...)
}

// Model converts the matrix to its JSON form; undefined cells become null.
func (m *Matrix) Model() models.Correlation {
	out := models.Correlation{
		Fields: make([]string, len(m.Fields)),
		Values: make([][]*float64, len(m.Fields)),
	}
	for i, f := range m.Fields {
		out.Fields[i] = string(f)
		out.Values[i] = make([]*float64, len(m.Fields))
		for j := range m.Fields {
			if m.errs[i][j] == nil {
				v := m.values[i][j]
				out.Values[i][j] = &v
			}
		}
	}
	for i := range m.Fields {
		for j := i; j < len(m.Fields); j++ {
			if m.errs[i][j] != nil {
				out.Errors = append(out.Errors, m.errs[i][j].Error())
			}
		}
	}
	return out
}

type columnStats struct {
	values []float64
	mean   float64
	// degenerate is non-empty when no coefficient exists for this column.
	degenerate string
}

// CorrelationMatrix computes pairwise Pearson coefficients of fields over
// the view. Each unordered pair is computed once and mirrored. Cells that
// involve a constant column, or a view with fewer than two rows, are
// undefined rather than NaN.
func CorrelationMatrix(v View, fields []Field) (*Matrix, error) {
	if len(fields) == 0 {
		return nil, &InvalidArgumentError{Param: "fields", Value: fields, Reason: "at least one field is required"}
	}
	seen := make(map[Field]bool, len(fields))
	for _, f := range fields {
		if err := numericField("correlation", f); err != nil {
			return nil, err
		}
		if seen[f] {
			return nil, &InvalidArgumentError{Param: "fields", Value: string(f), Reason: "duplicate field"}
		}
		seen[f] = true
	}

	stats := make([]columnStats, len(fields))
	for i, f := range fields {
		col, _ := v.Column(f)
		stats[i] = describe(col)
	}

	k := len(fields)
	m := &Matrix{
		Fields: append([]Field(nil), fields...),
		values: make([][]float64, k),
		errs:   make([][]error, k),
	}
	for i := range fields {
		m.values[i] = make([]float64, k)
		m.errs[i] = make([]error, k)
	}

	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			var (
				r   float64
				err error
			)
			switch {
			case stats[i].degenerate != "":
				err = &UndefinedCorrelationError{RowField: fields[i], ColField: fields[j], Reason: stats[i].degenerate}
			case stats[j].degenerate != "":
				err = &UndefinedCorrelationError{RowField: fields[i], ColField: fields[j], Reason: stats[j].degenerate}
			case i == j:
				r = 1.0
			default:
				r = pearson(stats[i], stats[j])
			}
			m.values[i][j], m.values[j][i] = r, r
			m.errs[i][j] = err
			if err != nil && i != j {
				m.errs[j][i] = &UndefinedCorrelationError{RowField: fields[j], ColField: fields[i], Reason: err.(*UndefinedCorrelationError).Reason}
			}
		}
	}
	return m, nil
}

func describe(col []float64) columnStats {
	s := columnStats{values: col}
	if len(col) < 2 {
		s.degenerate = "fewer than 2 rows"
		return s
	}
	lo, hi := col[0], col[0]
	var sum float64
	for _, x := range col {
		sum += x
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if lo == hi {
		s.degenerate = "column is constant"
		return s
	}
	s.mean = sum / float64(len(col))
	return s
}

func pearson(a, b columnStats) float64 {
	var sxy, sxx, syy float64
	for n := range a.values {
		dx := a.values[n] - a.mean
		dy := b.values[n] - b.mean
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	r := sxy / math.Sqrt(sxx*syy)
	return math.Max(-1, math.Min(1, r))
}
