package main

import (
	"github.com/spf13/cobra"

	"happiness/internal/engine"
)

func addSelectionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("year", 0, "Year (default: latest)")
	f.IntP("top", "n", engine.DefaultTopN, "Number of countries in rankings")
	f.String("factor", string(engine.FieldGDP), "Contributing factor")
	f.String("country", "", "Country for the trend (default: first in the data)")
	f.StringSlice("compare", nil, "Countries to compare")
}

// selectionFromFlags overlays the flags that were set on the default
// selection and validates the result.
func selectionFromFlags(cmd *cobra.Command, ds *engine.Dataset) (engine.Selection, error) {
	sel := engine.DefaultSelection(ds)
	f := cmd.Flags()
	var err error

	if f.Changed("year") {
		if sel.Year, err = f.GetInt("year"); err != nil {
			return sel, err
		}
	}
	if sel.TopN, err = f.GetInt("top"); err != nil {
		return sel, err
	}
	if f.Changed("factor") {
		raw, _ := f.GetString("factor")
		if sel.Factor, err = engine.ParseFactor(raw); err != nil {
			return sel, err
		}
	}
	if f.Changed("country") {
		if sel.Country, err = f.GetString("country"); err != nil {
			return sel, err
		}
	}
	if f.Changed("compare") {
		if sel.Compare, err = f.GetStringSlice("compare"); err != nil {
			return sel, err
		}
	}
	return sel, sel.Validate(ds)
}
