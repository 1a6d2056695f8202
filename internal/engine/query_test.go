package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countries(rows []Observation) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Country
	}
	return out
}

func TestFilterByYear(t *testing.T) {
	ds := scenario()

	view := FilterByYear(ds.All(), 2015)
	assert.Equal(t, []string{"A", "B"}, countries(view.Rows()))
	for _, r := range view.Rows() {
		assert.Equal(t, 2015, r.Year)
	}
	assert.LessOrEqual(t, view.Len(), ds.Len())

	assert.Equal(t, 0, FilterByYear(ds.All(), 1999).Len())
}

func TestFilterByCountry(t *testing.T) {
	ds, err := LoadBytes("sample", []byte(sampleCSV))
	require.NoError(t, err)

	finland := FilterByCountry(ds.All(), "Finland").Rows()
	require.Len(t, finland, 2)
	assert.Equal(t, 2019, finland[0].Year, "view order kept")
	assert.Equal(t, 2015, finland[1].Year)

	assert.Equal(t, 0, FilterByCountry(ds.All(), "finland").Len(), "match is case-sensitive")
}

func TestFilterByCountries(t *testing.T) {
	ds, err := LoadBytes("sample", []byte(sampleCSV))
	require.NoError(t, err)

	got := countries(FilterByCountries(ds.All(), []string{"United States", "Finland"}).Rows())
	if diff := cmp.Diff([]string{"Finland", "Finland", "United States"}, got); diff != "" {
		t.Errorf("FilterByCountries mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 0, FilterByCountries(ds.All(), nil).Len())
	assert.Equal(t, 0, FilterByCountries(ds.All(), []string{"Atlantis"}).Len())
}

func TestFiltersCompose(t *testing.T) {
	ds, err := LoadBytes("sample", []byte(sampleCSV))
	require.NoError(t, err)

	view := FilterByCountry(FilterByYear(ds.All(), 2015), "Finland")
	require.Equal(t, 1, view.Len())
	assert.Equal(t, 7.406, view.Row(0).Score)
}

func TestTopNScenario(t *testing.T) {
	ds := scenario()

	top, err := TopN(FilterByYear(ds.All(), 2015), FieldScore, 1, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, countries(top))
}

func TestTopNOrderAndTies(t *testing.T) {
	ds := NewDataset([]Observation{
		{Country: "P", Score: 5},
		{Country: "Q", Score: 7},
		{Country: "R", Score: 5},
		{Country: "S", Score: 9},
		{Country: "T", Score: 7},
	})

	desc, err := TopN(ds.All(), FieldScore, 10, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "Q", "T", "P", "R"}, countries(desc))
	for i := 1; i < len(desc); i++ {
		assert.GreaterOrEqual(t, desc[i-1].Score, desc[i].Score)
	}

	asc, err := TopN(ds.All(), FieldScore, 10, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"P", "R", "Q", "T", "S"}, countries(asc))
	for i := 1; i < len(asc); i++ {
		assert.LessOrEqual(t, asc[i-1].Score, asc[i].Score)
	}
}

func TestTopNBounds(t *testing.T) {
	view := scenario().All()

	for _, n := range []int{0, -3} {
		rows, err := TopN(view, FieldScore, n, false)
		require.NoError(t, err)
		assert.Empty(t, rows)
	}

	rows, err := TopN(view, FieldScore, 50, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, countries(rows))

	rows, err = TopN(FilterByYear(view, 1999), FieldScore, 5, true)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = TopN(view, FieldCountry, 5, true)
	var ie *InvalidArgumentError
	assert.ErrorAs(t, err, &ie)
}

func TestQueriesAreIdempotent(t *testing.T) {
	ds, err := LoadBytes("sample", []byte(sampleCSV))
	require.NoError(t, err)

	a, err := BuildDashboard(ds, DefaultSelection(ds))
	require.NoError(t, err)
	b, err := BuildDashboard(ds, DefaultSelection(ds))
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("dashboard changed between calls (-first +second):\n%s", diff)
	}
}
