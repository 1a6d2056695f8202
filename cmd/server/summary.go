package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"happiness/internal/engine"
	"happiness/internal/models"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print KPIs and the top and bottom countries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := engine.Load(cfg.DataPath)
		if err != nil {
			return err
		}
		sel, err := selectionFromFlags(cmd, ds)
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), ds, sel)
	},
}

func init() {
	addSelectionFlags(summaryCmd)
}

func printSummary(w io.Writer, ds *engine.Dataset, sel engine.Selection) error {
	d, err := engine.BuildDashboard(ds, sel)
	if err != nil {
		return err
	}
	heading := color.New(color.FgCyan, color.Bold)

	heading.Fprintf(w, "\nWorld Happiness: %d rows, %d years, %d countries\n",
		ds.Len(), len(ds.DistinctYears()), len(ds.DistinctCountries()))
	kpis := tablewriter.NewWriter(w)
	kpis.SetHeader([]string{"Metric", "Mean"})
	for _, row := range [][2]string{
		{"Happiness Score", fmt.Sprintf("%.3f", d.KPIs.Score)},
		{"Happiness Rank", fmt.Sprintf("%.1f", d.KPIs.Rank)},
		{"GDP", fmt.Sprintf("%.3f", d.KPIs.GDP)},
		{"Health", fmt.Sprintf("%.3f", d.KPIs.Health)},
		{"Social Support", fmt.Sprintf("%.3f", d.KPIs.Support)},
		{"Freedom", fmt.Sprintf("%.3f", d.KPIs.Freedom)},
	} {
		kpis.Append(row[:])
	}
	kpis.Render()

	for _, section := range []struct {
		title string
		items []rankedRow
	}{
		{fmt.Sprintf("Top %d (%d)", sel.TopN, sel.Year), toRows(d.Top)},
		{fmt.Sprintf("Bottom %d (%d)", sel.TopN, sel.Year), toRows(d.Bottom)},
	} {
		heading.Fprintf(w, "\n%s\n", section.title)
		t := tablewriter.NewWriter(w)
		t.SetHeader([]string{"#", "Country", "Score"})
		for _, r := range section.items {
			t.Append([]string{r.pos, r.country, r.score})
		}
		t.Render()
	}
	return nil
}

type rankedRow struct{ pos, country, score string }

func toRows(items []models.RankedItem) []rankedRow {
	rows := make([]rankedRow, len(items))
	for i, it := range items {
		rows[i] = rankedRow{strconv.Itoa(it.Position), it.Country, fmt.Sprintf("%.3f", it.Value)}
	}
	return rows
}
