package export

import (
	"bytes"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"happiness/internal/engine"
	"happiness/internal/models"
)

func TestWriteArrow(t *testing.T) {
	rows := []engine.Observation{
		{Country: "Finland", Year: 2019, Score: 7.769, Rank: 1, GDP: 1.34, Trust: 0.393},
		{Country: "Togo", Year: 2015, Score: 2.839, Rank: 158, GDP: 0.208, Trust: 0.107},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArrow(&buf, rows))

	rdr, err := ipc.NewReader(&buf, ipc.WithAllocator(memory.NewGoAllocator()))
	require.NoError(t, err)
	defer rdr.Release()

	require.True(t, rdr.Next())
	rec := rdr.Record()
	assert.EqualValues(t, 2, rec.NumRows())
	assert.True(t, rec.Schema().Equal(ObservationSchema))

	assert.Equal(t, "Togo", rec.Column(0).(*array.String).Value(1))
	assert.Equal(t, int32(2019), rec.Column(1).(*array.Int32).Value(0))
	assert.Equal(t, int32(158), rec.Column(3).(*array.Int32).Value(1))
	assert.Equal(t, 1.34, rec.Column(4).(*array.Float64).Value(0))
	assert.Equal(t, 0.107, rec.Column(9).(*array.Float64).Value(1))
	assert.False(t, rdr.Next())
}

func TestWriteArrowEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteArrow(&buf, nil))
	assert.NotZero(t, buf.Len(), "schema is still written")
}

func TestWriteWorkbook(t *testing.T) {
	one := 1.0
	d := &models.Dashboard{
		KPIs:    models.KPIs{Rows: 3, Score: 6},
		Top:     []models.RankedItem{{Position: 1, Country: "B", Year: 2015, Value: 7, Score: 7}},
		Bottom:  []models.RankedItem{{Position: 1, Country: "A", Year: 2015, Value: 5, Score: 5}},
		Ranking: models.RankingTable{Factor: "gdp", Rows: []models.RankedItem{{Position: 1, Country: "B", Value: 1.4, Score: 7}}},
		Correlation: models.Correlation{
			Fields: []string{"gdp", "trust"},
			Values: [][]*float64{{&one, nil}, {nil, nil}},
		},
		Histogram: models.Histogram{Field: "gdp", Bins: []models.Bin{{Lower: 1, Upper: 1.4, Count: 2}}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, d))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"KPIs", "Top", "Bottom", "Ranking", "Correlation", "Histogram"}, f.GetSheetList())

	v, err := f.GetCellValue("Top", "B2")
	require.NoError(t, err)
	assert.Equal(t, "B", v)

	v, err = f.GetCellValue("Correlation", "C2")
	require.NoError(t, err)
	assert.Equal(t, "n/a", v)

	v, err = f.GetCellValue("Histogram", "C2")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
}
