package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/troupe/pkg/adapters/http"
	"github.com/aretw0/troupe/pkg/domain"
	"github.com/aretw0/troupe/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the engine as a JSON API: POST /v1/execute, POST /v1/validate,
GET /v1/kinds and an SSE stream of actor events at GET /v1/events.
Prometheus metrics are served at /metrics unless disabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		streams := httpAdapter.NewStreamManager()
		hooks := []domain.LifecycleHooks{streams.Hooks()}

		var metrics *observability.Metrics
		if cfg.Server.Metrics {
			metrics = observability.NewMetrics()
			hooks = append(hooks, metrics.Hooks())
		}

		eng, closeStore, err := newEngine(hooks...)
		if err != nil {
			return err
		}
		defer closeStore()

		router := chi.NewRouter()
		if metrics != nil {
			router.Handle("/metrics", metrics.Handler())
		}
		router.Mount("/", httpAdapter.NewServer(eng, streams, logger).Handler())

		srv := &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting Troupe Server", "addr", srv.Addr, "metrics", metrics != nil)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("Start shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Troupe Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
}
