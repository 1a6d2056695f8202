package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleCSV = `Country,Region,Happiness_Rank,Happiness_Score,Year,GDP,Family,Health,Freedom,Generosity,Trust
Finland,Western Europe,1,7.769,2019,1.340,1.587,0.986,0.596,0.153,0.393
Denmark,Western Europe,2,7.600,2019,1.383,1.573,0.996,0.592,0.252,0.410
Finland,Western Europe,5,7.406,2015,1.290,1.318,0.889,0.641,0.233,0.413
United States,North America,15,7.119,2015,1.394,1.247,0.861,0.546,0.401,0.158
Togo,Sub-Saharan Africa,158,2.839,2015,0.208,0.139,0.284,0.365,0.167,0.107
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "happiness_*.csv")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := tmpFile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpFile.Name()
}

func TestLoad(t *testing.T) {
	ds, err := Load(writeTemp(t, sampleCSV))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if ds.Len() != 5 {
		t.Fatalf("Expected 5 rows, got %d", ds.Len())
	}

	// Row 0 Check
	row := ds.Row(0)
	if row.Country != "Finland" || row.Year != 2019 || row.Rank != 1 {
		t.Errorf("Row 0: unexpected %+v", row)
	}
	if row.Score != 7.769 || row.Trust != 0.393 {
		t.Errorf("Row 0 numbers: unexpected %+v", row)
	}

	// File order is kept
	if ds.Row(4).Country != "Togo" {
		t.Errorf("Row 4: expected Togo, got %s", ds.Row(4).Country)
	}

	if ds.Fingerprint == 0 {
		t.Error("Expected a fingerprint")
	}
}

func TestLoadBytesStripsBOM(t *testing.T) {
	ds, err := LoadBytes("bom.csv", append([]byte{0xEF, 0xBB, 0xBF}, sampleCSV...))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if ds.Len() != 5 {
		t.Errorf("Expected 5 rows, got %d", ds.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Expected LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected wrapped ErrNotExist, got %v", err)
	}
}

func TestLoadBadHeader(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"missing":    "Country,Year,Happiness_Score\nA,2015,5\n",
		"wrong case": "country,Year,Happiness_Score,Happiness_Rank,GDP,Family,Health,Freedom,Generosity,Trust\n",
		"duplicate":  "Country,Country,Year,Happiness_Score,Happiness_Rank,GDP,Family,Health,Freedom,Generosity,Trust\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadBytes(name, []byte(content))
			var le *LoadError
			if !errors.As(err, &le) {
				t.Fatalf("Expected LoadError, got %v", err)
			}
		})
	}
}

func TestLoadParseError(t *testing.T) {
	content := "Country,Year,Happiness_Score,Happiness_Rank,GDP,Family,Health,Freedom,Generosity,Trust\n" +
		"A,2015,5.0,1,1,1,1,1,1,1\n" +
		"B,2015,7.0,2,abc,1,1,1,1,1\n"

	_, err := LoadBytes("bad.csv", []byte(content))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if pe.Field != "GDP" || pe.Row != 1 || pe.Line != 3 || pe.Value != "abc" {
		t.Errorf("Unexpected ParseError %+v", pe)
	}
}

func TestLoadRejectsEmptyAndNonFiniteCells(t *testing.T) {
	header := "Country,Year,Happiness_Score,Happiness_Rank,GDP,Family,Health,Freedom,Generosity,Trust\n"
	rows := map[string]string{
		"empty score":   "A,2015,,1,1,1,1,1,1,1\n",
		"nan":           "A,2015,NaN,1,1,1,1,1,1,1\n",
		"inf":           "A,2015,5,1,+Inf,1,1,1,1,1\n",
		"float year":    "A,2015.5,5,1,1,1,1,1,1,1\n",
		"no country":    ",2015,5,1,1,1,1,1,1,1\n",
		"short record":  "A,2015,5\n",
		"huge year":     "A,4294969311,5,1,1,1,1,1,1,1\n",
		"huge rank":     "A,2015,5,4294967297,1,1,1,1,1,1\n",
		"negative year": "A,-2147483649,5,1,1,1,1,1,1,1\n",
	}
	for name, row := range rows {
		t.Run(name, func(t *testing.T) {
			_, err := LoadBytes(name, []byte(header+row))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Expected ParseError, got %v", err)
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	f, err := parseFloat("123.45")
	if err != nil || f != 123.45 {
		t.Errorf("parseFloat failed: %v %v", f, err)
	}

	i, err := parseInt("99")
	if err != nil || i != 99 {
		t.Errorf("parseInt failed: %v %v", i, err)
	}

	i, err = parseInt("2015.0")
	if err != nil || i != 2015 {
		t.Errorf("parseInt integral float failed: %v %v", i, err)
	}
}

func TestLoadReportsRaggedRecord(t *testing.T) {
	header := "Country,Year,Happiness_Score,Happiness_Rank,GDP,Family,Health,Freedom,Generosity,Trust\n"
	_, err := LoadBytes("ragged", []byte(header+"A,2015,5\n"))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if pe.Line != 2 || pe.Row != 0 {
		t.Errorf("Expected line 2 row 0, got line %d row %d", pe.Line, pe.Row)
	}
	if pe.Field != "record (3 of 10 fields)" {
		t.Errorf("Unexpected field %q", pe.Field)
	}
	if pe.Value != "A,2015,5" {
		t.Errorf("Unexpected value %q", pe.Value)
	}
}

func TestParseIntRange(t *testing.T) {
	for _, s := range []string{"2147483648", "-2147483649", "4294969311", "4294969311.0"} {
		if n, err := parseInt(s); err == nil {
			t.Errorf("parseInt(%q) = %d, expected an error", s, n)
		}
	}
	if n, err := parseInt("2147483647"); err != nil || n != 2147483647 {
		t.Errorf("parseInt max int32 failed: %v %v", n, err)
	}
}
