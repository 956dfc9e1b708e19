package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okdaichi/dvrouter/internal/admin"
	"github.com/okdaichi/dvrouter/internal/router"
)

const adminShutdownTimeout = 5 * time.Second

// Run parses args, starts a router node, and blocks until interrupted. It
// is the single entrypoint the root command delegates to.
func Run(args []string) error {
	cfg, err := ParseConfig(args)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	node, err := router.NewNode(cfg.Port, cfg.Neighbors, prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("start node: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	node.Start(ctx)
	slog.Info("router started", "self", node.Self, "neighbors", len(cfg.Neighbors))

	var adminServer *http.Server
	if cfg.AdminAddr != "" {
		adminServer = &http.Server{
			Addr:    cfg.AdminAddr,
			Handler: admin.NewMux(node, cfg.Neighbors),
		}
		go func() {
			if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Error("admin server error", "error", err)
			}
		}()
		slog.Info("admin surface listening", "addr", cfg.AdminAddr)
	}

	// The console runs on its own goroutine and is never waited on: a
	// "quit" at the prompt or Ctrl-C both cancel ctx, and the process
	// exits without needing the blocked stdin read to unblock first.
	console := newConsole(node, cfg.Neighbors, os.Stdout, fmt.Sprintf("%d> ", cfg.Port))
	go func() {
		console.run(os.Stdin)
		cancel()
	}()

	<-ctx.Done()

	if adminServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), adminShutdownTimeout)
		defer shutdownCancel()
		if err := adminServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("admin server shutdown error", "error", err)
		}
	}

	if err := node.Stop(); err != nil {
		slog.Error("node stop error", "error", err)
	}

	slog.Info("router stopped")
	return nil
}
