package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/creativeminds/analytics/internal/adapters/http/api"
	"github.com/creativeminds/analytics/pkg/logger"
	"github.com/creativeminds/analytics/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeoutSlack         = 5 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	defaultMetricsInterval    = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func newServeCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:         "serve",
		Short:       "Serve the analytics HTTP API",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{consoleAnnotation: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
}

// serve runs the HTTP server until ctx is canceled, then shuts it down gracefully.
func (c *cli) serve(ctx context.Context) error {
	store, err := c.openStore(ctx, c.cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrServe, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			c.log.Warn(ctx, "closing store failed", logger.Error(err))
		}
	}()

	svc := c.newService(store)
	server := api.NewServer(svc,
		api.WithPrefix(c.cfg.APIPrefix),
		api.WithRequestTimeout(c.cfg.RequestTimeout()),
		api.WithCORSOrigins(c.cfg.CORSOrigins),
		api.WithLogger(logger.Named("api")),
	)

	m := metrics.Configure(c.metricsOptions()...)
	updaterCtx, stopUpdater := context.WithCancel(ctx)
	updaterDone := make(chan struct{})
	go func() {
		defer close(updaterDone)
		startSystemMetricsUpdater(updaterCtx, m.RefreshInterval())
	}()
	defer func() {
		stopUpdater()
		<-updaterDone
	}()

	srv := &http.Server{
		Addr:              c.cfg.Addr,
		Handler:           server.Handler(ctx),
		ReadTimeout:       readTimeout,
		WriteTimeout:      c.cfg.RequestTimeout() + writeTimeoutSlack,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		c.log.Info(ctx, "starting HTTP server",
			logger.String("addr", c.cfg.Addr),
			logger.String("prefix", c.cfg.APIPrefix),
			logger.String("driver", c.cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%w: %w", ErrServe, err)
		}
		return nil
	case <-ctx.Done():
	}
	c.log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.log.Error(ctx, "server shutdown failed", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrServe, err)
	}
	c.log.Info(ctx, "server stopped")
	return nil
}

// metricsOptions maps the metrics settings of the config onto the manager.
func (c *cli) metricsOptions() []metrics.Option {
	opts := []metrics.Option{
		metrics.WithNamespace(c.cfg.MetricsNamespace),
		metrics.WithMetricsEnabled(c.cfg.MetricsEnabled),
		metrics.WithRefreshInterval(c.cfg.MetricsRefresh()),
	}
	if c.cfg.Environment != "" {
		opts = append(opts, metrics.WithConstLabels(map[string]string{"environment": c.cfg.Environment}))
	}
	return opts
}

// startSystemMetricsUpdater refreshes the system gauges until ctx is done.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultMetricsInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
