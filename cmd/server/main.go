package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"

	"github.com/sudo-init-do/stringr/internal/alerts"
	"github.com/sudo-init-do/stringr/internal/config"
	"github.com/sudo-init-do/stringr/internal/db"
	"github.com/sudo-init-do/stringr/internal/logging"
)

func main() {
	configFile := flag.String("config", "", "path to a yaml config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		AttachStacktrace: true,
		Environment:      cfg.SentryEnvironment,
	}); err != nil {
		logger.Error("sentry init failed", zap.Error(err))
	}
	defer sentry.Flush(2 * time.Second)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, logger); err != nil {
		return err
	}

	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "stringr",
		Reporter: tally.NullStatsReporter,
	}, 10*time.Second)
	defer closer.Close()

	redis := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	queue := asynq.NewClient(redis)
	defer queue.Close()

	app, err := build(cfg, logger, pool, scope, queue)
	if err != nil {
		return err
	}

	var worker *asynq.Server
	if cfg.AlertsWorker {
		worker = alerts.NewServer(redis, cfg.AlertsConcurrency, logger)
		if err := worker.Start(app.worker.Mux()); err != nil {
			return err
		}
		logger.Info("alerts worker started", zap.Int("concurrency", cfg.AlertsConcurrency))
	}

	e := app.router(pool)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	app.hub.Close()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	return nil
}
