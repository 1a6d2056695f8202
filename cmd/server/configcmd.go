package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configCmd = &cobra.Command{
	Use:   "config <file>",
	Short: "Write the effective configuration as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Save(args[0]); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", args[0]))
		return nil
	},
}
