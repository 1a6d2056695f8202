package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"happiness/internal/engine"
	"happiness/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dashboard as xlsx or the observations as Arrow IPC",
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := engine.Load(cfg.DataPath)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		switch exportFormat {
		case "xlsx":
			sel, err := selectionFromFlags(cmd, ds)
			if err != nil {
				return err
			}
			d, err := engine.BuildDashboard(ds, sel)
			if err != nil {
				return err
			}
			if err := export.WriteWorkbook(&buf, d); err != nil {
				return err
			}
		case "arrow":
			if err := export.WriteArrow(&buf, ds.All().Rows()); err != nil {
				return err
			}
		default:
			return &engine.InvalidArgumentError{Param: "format", Value: exportFormat, Reason: "one of xlsx, arrow"}
		}

		out := exportOut
		if out == "" {
			out = "happiness." + exportFormat
		}
		if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		logger.Info("export written", zap.String("format", exportFormat), zap.String("path", out), zap.Int("bytes", buf.Len()))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "xlsx", "xlsx or arrow")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default: happiness.<format>)")
	addSelectionFlags(exportCmd)
}
