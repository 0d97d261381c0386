package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/availcheck/internal/availability"
	"github.com/hamed0406/availcheck/internal/config"
	"github.com/hamed0406/availcheck/internal/httpapi"
	"github.com/hamed0406/availcheck/internal/logging"
	"github.com/hamed0406/availcheck/internal/metrics"
	"github.com/hamed0406/availcheck/internal/probe"
	"github.com/hamed0406/availcheck/internal/report"
	"github.com/hamed0406/availcheck/internal/scheduler"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Stdout, config.FromEnv())
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "availcheck:", err)
		os.Exit(1)
	}
}

// run checks the endpoints in cfg until ctx is cancelled, writing the
// console report to stdout.
func run(ctx context.Context, stdout io.Writer, cfg config.Config) (err error) {
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))
	defer func() { err = multierr.Append(err, logger.Sync()) }()

	eps, err := config.LoadEndpoints(cfg.ConfigPath)
	if err != nil {
		logger.Error("config_invalid", zap.String("path", cfg.ConfigPath), zap.Error(err))
		return err
	}

	prober := probe.NewHTTPProber(cfg.HTTPTimeout)
	if cfg.DNSDiagnose {
		prober.DNS = probe.NewDNSClassifier(nil)
	}
	tracker := availability.New()
	loop, err := scheduler.NewLoop(logger, eps, prober, tracker, report.NewConsole(stdout), scheduler.DefaultInterval)
	if err != nil {
		return &config.ConfigError{Path: cfg.ConfigPath, Err: err}
	}
	collector := metrics.NewCollector(nil)
	loop.Observer = collector

	var srv *http.Server
	if cfg.Addr != "" {
		api := httpapi.NewServer(logger, tracker, eps, loop.State, collector.Handler())
		srv = &http.Server{Addr: cfg.Addr, Handler: api.Router(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			logger.Info("api_listen", zap.String("addr", cfg.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("api_failed", zap.Error(err))
			}
		}()
	}

	logger.Info("starting",
		zap.String("config", cfg.ConfigPath),
		zap.Int("endpoints", len(eps)),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
	)
	loop.Run(ctx)

	if srv != nil {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = multierr.Append(err, srv.Shutdown(sctx))
	}
	return err
}
