package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/esports-sync/internal/app"
	"github.com/riskibarqy/esports-sync/internal/config"
	"github.com/riskibarqy/esports-sync/internal/observability"
	"github.com/riskibarqy/esports-sync/internal/platform/logging"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.NewJSON(logging.LevelError).Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Fields: []any{"service", cfg.ServiceName, "version", cfg.ServiceVersion, "env", cfg.AppEnv},
	})
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	pprofServer := observability.StartPprofServer(cfg, logger)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("http server starting", "addr", cfg.HTTPAddr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if a.Scheduler != nil {
		group.Go(func() error { return a.Scheduler.Run(groupCtx) })
	} else {
		logger.Info("scheduler disabled, jobs run only on manual trigger")
	}
	group.Go(func() error {
		<-groupCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := observability.StopPprofServer(shutdownCtx, pprofServer); err != nil {
			logger.Warn("pprof shutdown failed", "error", err)
		}
		return a.Server.Shutdown(shutdownCtx)
	})

	err = group.Wait()
	logger.Info("service stopped")
	return err
}
