// Package export writes dashboard data to spreadsheet and columnar formats.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"happiness/internal/models"
)

// WriteWorkbook writes the dashboard as an xlsx workbook with one sheet per
// section.
func WriteWorkbook(w io.Writer, d *models.Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	k := d.KPIs
	sheets := []struct {
		name string
		rows [][]any
	}{
		{"KPIs", [][]any{
			{"Metric", "Mean"},
			{"Happiness Score", k.Score},
			{"Happiness Rank", k.Rank},
			{"GDP", k.GDP},
			{"Health", k.Health},
			{"Social Support", k.Support},
			{"Freedom", k.Freedom},
			{"Rows", k.Rows},
		}},
		{"Top", rankedRows("Happiness Score", d.Top)},
		{"Bottom", rankedRows("Happiness Score", d.Bottom)},
		{"Ranking", rankedRows(d.Ranking.Factor, d.Ranking.Rows)},
		{"Correlation", correlationRows(d.Correlation)},
		{"Histogram", histogramRows(d.Histogram)},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("export: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return fmt.Errorf("export: sheet %s: %w", s.name, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func rankedRows(valueLabel string, items []models.RankedItem) [][]any {
	rows := [][]any{{"#", "Country", "Year", valueLabel, "Happiness Score"}}
	for _, it := range items {
		rows = append(rows, []any{it.Position, it.Country, it.Year, it.Value, it.Score})
	}
	return rows
}

func correlationRows(c models.Correlation) [][]any {
	header := []any{""}
	for _, f := range c.Fields {
		header = append(header, f)
	}
	rows := [][]any{header}
	for i, f := range c.Fields {
		row := []any{f}
		for _, v := range c.Values[i] {
			if v == nil {
				row = append(row, "n/a")
			} else {
				row = append(row, *v)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func histogramRows(h models.Histogram) [][]any {
	rows := [][]any{{"Lower", "Upper", "Count"}}
	for _, b := range h.Bins {
		rows = append(rows, []any{b.Lower, b.Upper, b.Count})
	}
	return rows
}
