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

	"github.com/fyrsmithlabs/annocheck/internal/config"
	annohttp "github.com/fyrsmithlabs/annocheck/internal/http"
	"github.com/fyrsmithlabs/annocheck/internal/logging"
	"github.com/fyrsmithlabs/annocheck/internal/mcp"
)

var metricsAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP stdio server",
	Long: `Run the annotation validation tools as an MCP server on stdin/stdout.

All logging goes to stderr so the stdio transport stays clean.

Examples:
  annocheck mcp
  annocheck mcp --metrics-addr :9090`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "expose /healthz and /metrics on this address (overrides config)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	d, err := buildDeps(func(cfg *config.Config) {
		if metricsAddr != "" {
			cfg.Server.MetricsAddr = metricsAddr
		}
	})
	if err != nil {
		return err
	}
	defer logging.Sync(d.logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		d.logger.Info("received signal, shutting down", zap.Stringer("signal", sig))
		cancel()
	}()

	server, err := mcp.NewServer(&mcp.Config{
		Version: version,
		Logger:  d.logger,
	}, d.validate, d.fetcher)
	if err != nil {
		return err
	}

	var httpSrv *annohttp.Server
	if addr := d.cfg.Server.MetricsAddr; addr != "" {
		httpSrv, err = annohttp.NewServer(addr, d.validate, d.logger)
		if err != nil {
			return err
		}
		go func() {
			if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				d.logger.Error("http server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			if err := httpSrv.Shutdown(shutdownCtx); err != nil {
				d.logger.Warn("http server shutdown failed", zap.Error(err))
			}
		}()
	}

	return server.Run(ctx)
}
