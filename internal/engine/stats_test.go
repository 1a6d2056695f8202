package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationMatrixSymmetric(t *testing.T) {
	ds, err := LoadBytes("sample", []byte(sampleCSV))
	require.NoError(t, err)

	m, err := CorrelationMatrix(ds.All(), HeatmapFields)
	require.NoError(t, err)
	require.NoError(t, m.Err())

	for i := range m.Fields {
		d, err := m.At(i, i)
		require.NoError(t, err)
		assert.Equal(t, 1.0, d)
		for j := range m.Fields {
			a, err := m.At(i, j)
			require.NoError(t, err)
			b, _ := m.At(j, i)
			assert.Equal(t, a, b, "cell (%d,%d) must mirror", i, j)
			assert.True(t, a >= -1 && a <= 1)
		}
	}
}

func TestCorrelationKnownValues(t *testing.T) {
	ds := NewDataset([]Observation{
		{Country: "a", GDP: 1, Health: 2, Trust: 5},
		{Country: "b", GDP: 2, Health: 4, Trust: 3},
		{Country: "c", GDP: 3, Health: 6, Trust: 1},
	})
	m, err := CorrelationMatrix(ds.All(), []Field{FieldGDP, FieldHealth, FieldTrust})
	require.NoError(t, err)

	r, err := m.At(0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)

	r, err = m.At(0, 2)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, r, 1e-12)
}

func TestCorrelationConstantField(t *testing.T) {
	ds := NewDataset([]Observation{
		{Country: "a", GDP: 1, Health: 2, Freedom: 0.5},
		{Country: "b", GDP: 2, Health: 3, Freedom: 0.5},
		{Country: "c", GDP: 4, Health: 3, Freedom: 0.5},
	})
	fields := []Field{FieldGDP, FieldFreedom, FieldHealth}
	m, err := CorrelationMatrix(ds.All(), fields)
	require.NoError(t, err)

	for k := range fields {
		_, err := m.At(1, k)
		var ue *UndefinedCorrelationError
		require.ErrorAs(t, err, &ue, "row of constant field")
		assert.Equal(t, FieldFreedom, ue.RowField)

		_, err = m.At(k, 1)
		require.ErrorAs(t, err, &ue, "column of constant field")
		assert.Equal(t, FieldFreedom, ue.ColField)
	}

	r, err := m.At(0, 2)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(r))
	assert.Greater(t, r, 0.0)

	assert.Error(t, m.Err())
	model := m.Model()
	assert.Nil(t, model.Values[1][1])
	assert.NotNil(t, model.Values[0][2])
	assert.Len(t, model.Errors, 3)
}

func TestCorrelationTooFewRows(t *testing.T) {
	ds := scenario()
	m, err := CorrelationMatrix(FilterByYear(ds.All(), 2016), []Field{FieldGDP, FieldScore})
	require.NoError(t, err)

	_, err = m.At(0, 0)
	var ue *UndefinedCorrelationError
	assert.ErrorAs(t, err, &ue)
}

func TestCorrelationBadFields(t *testing.T) {
	view := scenario().All()
	var ie *InvalidArgumentError

	_, err := CorrelationMatrix(view, nil)
	assert.ErrorAs(t, err, &ie)

	_, err = CorrelationMatrix(view, []Field{FieldGDP, FieldGDP})
	assert.ErrorAs(t, err, &ie)

	_, err = CorrelationMatrix(view, []Field{FieldCountry})
	assert.ErrorAs(t, err, &ie)
}

func valuesDataset(values ...float64) *Dataset {
	rows := make([]Observation, len(values))
	for i, v := range values {
		rows[i] = Observation{Country: "c", GDP: v}
	}
	return NewDataset(rows)
}

func TestHistogramBoundaries(t *testing.T) {
	bins, err := Histogram(valuesDataset(1, 2, 3, 4, 5).All(), FieldGDP, 5)
	require.NoError(t, err)
	require.Len(t, bins, 5)

	for i, b := range bins {
		assert.InDelta(t, 0.8, b.Upper-b.Lower, 1e-9, "bin %d width", i)
		assert.Equal(t, 1, b.Count, "bin %d", i)
	}
	assert.Equal(t, 1.0, bins[0].Lower)
	assert.Equal(t, 5.0, bins[4].Upper, "max closes the final bin")
}

func TestHistogramBoundaryGoesToUpperBin(t *testing.T) {
	// bins [0,1) [1,2] : 1 is the lower bound of the second bin
	bins, err := Histogram(valuesDataset(0, 1, 2).All(), FieldGDP, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, bins[0].Count)
	assert.Equal(t, 2, bins[1].Count)
}

func TestHistogramCountsSum(t *testing.T) {
	ds, err := LoadBytes("sample", []byte(sampleCSV))
	require.NoError(t, err)

	for _, f := range Factors {
		for n := 1; n <= 25; n++ {
			bins, err := Histogram(ds.All(), f, n)
			require.NoError(t, err)
			total := 0
			for _, b := range bins {
				total += b.Count
			}
			assert.Equal(t, ds.Len(), total, "%s with %d bins", f, n)
		}
	}
}

func TestHistogramSingleValue(t *testing.T) {
	bins, err := Histogram(valuesDataset(3, 3, 3).All(), FieldGDP, 4)
	require.NoError(t, err)
	require.Len(t, bins, 4)
	assert.Equal(t, 3, bins[0].Count)
	for _, b := range bins[1:] {
		assert.Zero(t, b.Count)
	}
}

func TestHistogramErrors(t *testing.T) {
	view := valuesDataset(1, 2).All()

	for _, n := range []int{0, -1, MaxBins + 1, int(^uint(0) >> 1)} {
		_, err := Histogram(view, FieldGDP, n)
		var ie *InvalidArgumentError
		assert.True(t, errors.As(err, &ie), "binCount %d", n)
	}

	bins, err := Histogram(view, FieldGDP, MaxBins)
	require.NoError(t, err)
	assert.Len(t, bins, MaxBins)

	_, err = Histogram(FilterByYear(view, 1999), FieldGDP, 3)
	var ee *EmptyViewError
	assert.ErrorAs(t, err, &ee)
}
