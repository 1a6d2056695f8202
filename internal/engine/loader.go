package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// --- 1. CELL PARSERS ---

// parseFloat parses "123.45" -> 123.45 and rejects NaN/Inf.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a finite number")
	}
	return f, nil
}

// parseInt parses "2015" -> 2015. Integral floats ("2015.0") are accepted
// since spreadsheet exports often write them that way.
func parseInt(s string) (int, error) {
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return int(n), nil
	}
	f, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, errors.New("not an integer")
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, errors.New("out of range")
	}
	return int(f), nil
}

// --- 2. MAIN LOADER ---

// Load reads the CSV file at path into a Dataset.
func Load(path string) (*Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "cannot read file", Err: err}
	}
	return LoadBytes(path, content)
}

// LoadBytes parses CSV content. source only labels errors and logs.
func LoadBytes(source string, content []byte) (*Dataset, error) {
	start := time.Now()

	fingerprint := xxh3.Hash(content)
	content = bytes.TrimPrefix(content, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Path: source, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &LoadError{Path: source, Reason: "cannot read header", Err: err}
	}

	cols, err := mapHeader(header)
	if err != nil {
		return nil, &LoadError{Path: source, Reason: "bad header", Err: err}
	}

	var rows []Observation
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			perr := &ParseError{Line: row + 2, Row: row, Field: "record", Value: strings.Join(record, ","), Err: err}
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				perr.Line = pe.Line
				perr.Field = fmt.Sprintf("record column %d", pe.Column)
				if errors.Is(err, csv.ErrFieldCount) {
					perr.Field = fmt.Sprintf("record (%d of %d fields)", len(record), reader.FieldsPerRecord)
				}
			}
			return nil, perr
		}
		line, _ := reader.FieldPos(0)

		obs, err := parseRecord(record, cols, line, row)
		if err != nil {
			return nil, err
		}
		rows = append(rows, obs)
	}

	ds := NewDataset(rows)
	ds.Source = source
	ds.Fingerprint = fingerprint

	zap.L().Info("dataset loaded",
		zap.String("source", source),
		zap.Int("rows", ds.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ds, nil
}

// mapHeader resolves the column index of every field. Matching is
// case-sensitive; unknown extra columns are ignored.
func mapHeader(header []string) (map[Field]int, error) {
	cols := make(map[Field]int, len(Fields))
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, f := range Fields {
			if f.Header() != h {
				continue
			}
			if _, dup := cols[f]; dup {
				return nil, fmt.Errorf("duplicate column %q", h)
			}
			cols[f] = i
		}
	}
	var missing []string
	for _, f := range Fields {
		if _, ok := cols[f]; !ok {
			missing = append(missing, f.Header())
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRecord(record []string, cols map[Field]int, line, row int) (Observation, error) {
	cell := func(f Field) string { return strings.TrimSpace(record[cols[f]]) }
	fail := func(f Field, err error) error {
		return &ParseError{Line: line, Row: row, Field: f.Header(), Value: cell(f), Err: err}
	}

	obs := Observation{Country: cell(FieldCountry)}
	if obs.Country == "" {
		return obs, fail(FieldCountry, errors.New("country is empty"))
	}

	var err error
	if obs.Year, err = parseInt(cell(FieldYear)); err != nil {
		return obs, fail(FieldYear, err)
	}
	if obs.Rank, err = parseInt(cell(FieldRank)); err != nil {
		return obs, fail(FieldRank, err)
	}

	floats := []struct {
		f   Field
		dst *float64
	}{
		{FieldScore, &obs.Score},
		{FieldGDP, &obs.GDP},
		{FieldFamily, &obs.Family},
		{FieldHealth, &obs.Health},
		{FieldFreedom, &obs.Freedom},
		{FieldGenerosity, &obs.Generosity},
		{FieldTrust, &obs.Trust},
	}
	for _, c := range floats {
		if *c.dst, err = parseFloat(cell(c.f)); err != nil {
			return obs, fail(c.f, err)
		}
	}
	return obs, nil
}
