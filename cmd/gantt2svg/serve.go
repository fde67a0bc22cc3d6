package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gantt2svg/internal/config"
	"gantt2svg/internal/server"
)

var (
	serveAddr   string
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve chart rendering over HTTP",
	Long: `Serve POST /render, which takes {"data": [...], "sort", "width", "height"}
as JSON and answers with the SVG chart, and GET /healthz.

Settings come from GANTT_HTTP_ADDR, GANTT_CONFIG, GANTT_DEBUG and
GANTT_MAX_BODY_BYTES; flags override the environment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := config.LoadServer()
		if err != nil {
			return fmt.Errorf("error loading server settings: %w", err)
		}
		if serveAddr != "" {
			srv.HTTPAddr = serveAddr
		}
		if serveConfig != "" {
			srv.ConfigPath = serveConfig
		}
		if srv.Debug {
			log.SetLevel(log.DebugLevel)
		}

		cfg, err := config.Load(srv.ConfigPath)
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		h, err := server.NewHandler(cfg, srv.MaxBodyBytes, log.StandardLogger())
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}
		e := server.New(h)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- e.Start(srv.HTTPAddr)
		}()
		log.WithField("addr", srv.HTTPAddr).Info("gantt2svg server started")

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("HTTP server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("received signal, shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("HTTP server shutdown error")
		}
		log.Info("shutdown complete")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides GANTT_HTTP_ADDR)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "YAML or TOML chart configuration (overrides GANTT_CONFIG)")
}
