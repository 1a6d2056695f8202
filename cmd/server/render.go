package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"happiness/internal/api"
	"happiness/internal/engine"
)

var (
	renderChart string
	renderOut   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one dashboard chart to a PNG file",
	Long:  "Render one dashboard chart to a PNG file. Charts: " + strings.Join(api.Charts, ", ") + ".",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := engine.Load(cfg.DataPath)
		if err != nil {
			return err
		}
		sel, err := selectionFromFlags(cmd, ds)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := api.DrawChart(&buf, ds, sel, renderChart); err != nil {
			return err
		}
		out := renderOut
		if out == "" {
			out = renderChart + ".png"
		}
		if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		logger.Info("chart written", zap.String("chart", renderChart), zap.String("path", out))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderChart, "chart", "top", "Chart name")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (default: <chart>.png)")
	addSelectionFlags(renderCmd)
}
