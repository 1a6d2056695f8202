package export

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"happiness/internal/engine"
)

// ObservationSchema is the Arrow schema of an exported row.
var ObservationSchema = arrow.NewSchema([]arrow.Field{
	{Name: string(engine.FieldCountry), Type: arrow.BinaryTypes.String},
	{Name: string(engine.FieldYear), Type: arrow.PrimitiveTypes.Int32},
	{Name: string(engine.FieldScore), Type: arrow.PrimitiveTypes.Float64},
	{Name: string(engine.FieldRank), Type: arrow.PrimitiveTypes.Int32},
	{Name: string(engine.FieldGDP), Type: arrow.PrimitiveTypes.Float64},
	{Name: string(engine.FieldFamily), Type: arrow.PrimitiveTypes.Float64},
	{Name: string(engine.FieldHealth), Type: arrow.PrimitiveTypes.Float64},
	{Name: string(engine.FieldFreedom), Type: arrow.PrimitiveTypes.Float64},
	{Name: string(engine.FieldGenerosity), Type: arrow.PrimitiveTypes.Float64},
	{Name: string(engine.FieldTrust), Type: arrow.PrimitiveTypes.Float64},
}, nil)

// WriteArrow writes rows as an Arrow IPC stream holding one record batch.
func WriteArrow(w io.Writer, rows []engine.Observation) error {
	mem := memory.NewGoAllocator()

	b := array.NewRecordBuilder(mem, ObservationSchema)
	defer b.Release()

	country := b.Field(0).(*array.StringBuilder)
	year := b.Field(1).(*array.Int32Builder)
	rank := b.Field(3).(*array.Int32Builder)
	floats := map[int]engine.Field{
		2: engine.FieldScore,
		4: engine.FieldGDP,
		5: engine.FieldFamily,
		6: engine.FieldHealth,
		7: engine.FieldFreedom,
		8: engine.FieldGenerosity,
		9: engine.FieldTrust,
	}

	for _, r := range rows {
		country.Append(r.Country)
		year.Append(int32(r.Year))
		rank.Append(int32(r.Rank))
		for col, f := range floats {
			b.Field(col).(*array.Float64Builder).Append(r.Value(f))
		}
	}

	rec := b.NewRecord()
	defer rec.Release()

	wr := ipc.NewWriter(w, ipc.WithSchema(ObservationSchema), ipc.WithAllocator(mem))
	if err := wr.Write(rec); err != nil {
		wr.Close()
		return fmt.Errorf("export: write arrow record: %w", err)
	}
	if err := wr.Close(); err != nil {
		return fmt.Errorf("export: close arrow stream: %w", err)
	}
	return nil
}
