package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"happiness/internal/api"
	"happiness/internal/engine"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API; the dataset loads in the background",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

// runServe starts listening at once and answers 503 until the background
// load publishes the dataset.
func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	shutdownTimeout, err := cfg.GetShutdownTimeout()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := api.NewHandler(nil)
	e := api.NewServer(h, cfg.Server, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("loading dataset in background", zap.String("path", cfg.DataPath))
		t0 := time.Now()
		ds, err := engine.Load(cfg.DataPath)
		if err != nil {
			return err
		}
		h.SetData(ds)
		logger.Info("dataset ready", zap.Int("rows", ds.Len()), zap.Duration("elapsed", time.Since(t0)))
		return nil
	})
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	})
	return g.Wait()
}
