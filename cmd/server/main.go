// Command happiness serves and exports the World Happiness dashboard.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"happiness/internal/config"
	"happiness/internal/logging"
)

var (
	configPath string
	dataPath   string
	verbose    bool

	cfg           *config.Config
	logger        *zap.Logger
	restoreLogger func()
)

var rootCmd = &cobra.Command{
	Use:   "happiness",
	Short: "World Happiness Report dashboard",
	Long: `happiness loads the combined World Happiness Report CSV and serves the
dashboard API. Subcommands print a summary, render charts and export data.

Run without a subcommand to start the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if dataPath != "" {
			cfg.DataPath = dataPath
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format, verbose)
		if err != nil {
			return err
		}
		restoreLogger = logging.Install(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if restoreLogger != nil {
			restoreLogger()
		}
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file (missing file uses defaults)")
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "Dataset CSV (overrides data_path)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(serveCmd, summaryCmd, renderCmd, exportCmd, configCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
