package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/app"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/eventbus"
	"github.com/DHariharanD/Smart-Task-Analyser/internal/shared/infrastructure/outbox"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/config"
	"github.com/DHariharanD/Smart-Task-Analyser/pkg/observability"
)

const statsInterval = time.Minute

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load("")
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		observability.LoggerFor("development", "info", "text", cli.Version).Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := observability.LoggerFor(cfg.AppEnv, cfg.LogLevel, cfg.LogFormat, cli.Version)
	logger.Info("starting taskanalyzer worker")

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("worker failed", "error", err)
		cancel()
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = container.Close() }()

	publisher, err := container.EventPublisher()
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()
	logger.Info("event publisher initialized")

	processor := container.NewOutboxProcessor(publisher)
	processor.Start(ctx)
	defer processor.Stop()

	var wg conc.WaitGroup
	defer wg.Wait()

	if cfg.RabbitMQURL != "" {
		consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
			URL:    cfg.RabbitMQURL,
			Logger: logger.With("component", "rabbitmq_consumer"),
		}, eventbus.NewConsumerRegistry(logger))
		if err != nil {
			logger.Warn("RabbitMQ consumer not available, dependency checks disabled", "error", err)
		} else {
			consumer.RegisterConsumer(container.DependencyGuard)
			defer func() { _ = consumer.Close() }()
			wg.Go(func() {
				if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("rabbitmq consumer stopped", "error", err)
				}
			})
		}
	}

	wg.Go(func() { cleanupLoop(ctx, container.OutboxRepo, cfg, logger) })
	wg.Go(func() { statsLoop(ctx, processor, logger) })

	if cfg.WorkerHealthAddr != "" {
		healthSrv := &http.Server{
			Addr:              cfg.WorkerHealthAddr,
			Handler:           healthMux(container, processor),
			ReadHeaderTimeout: 5 * time.Second,
		}
		wg.Go(func() {
			logger.Info("health server starting", "addr", cfg.WorkerHealthAddr)
			if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("health server error", "error", err)
			}
		})
		wg.Go(func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := healthSrv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("health server shutdown error", "error", err)
			}
		})
	}

	<-ctx.Done()
	logger.Info("shutting down worker")
	return nil
}

func cleanupLoop(ctx context.Context, repo outbox.Repository, cfg *config.Config, logger *slog.Logger) {
	if cfg.OutboxCleanupInterval <= 0 {
		return
	}
	ticker := time.NewTicker(cfg.OutboxCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteOld(ctx, cfg.OutboxRetentionDays)
			if err != nil {
				logger.Error("outbox cleanup failed", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Info("outbox cleanup completed", "deleted", deleted, "retention_days", cfg.OutboxRetentionDays)
			}
		}
	}
}

func statsLoop(ctx context.Context, processor *outbox.Processor, logger *slog.Logger) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := processor.GetStats()
			logger.Info("outbox stats",
				"running", stats.IsRunning,
				"published", stats.PublishedCount,
				"failed", stats.FailedCount,
				"dead", stats.DeadCount,
				"lag_seconds", stats.LagSeconds,
				"oldest_message_at", stats.OldestMessageAt,
				"last_processed_at", stats.LastProcessedAt,
				"last_error_at", stats.LastErrorAt,
				"last_error", stats.LastError,
			)
		}
	}
}

func healthMux(container *app.Container, processor *outbox.Processor) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		stats := processor.GetStats()
		writeJSON(w, http.StatusOK, map[string]any{
			"status":            "ok",
			"running":           stats.IsRunning,
			"published":         stats.PublishedCount,
			"failed":            stats.FailedCount,
			"dead":              stats.DeadCount,
			"last_processed_at": stats.LastProcessedAt,
			"last_error_at":     stats.LastErrorAt,
			"last_error":        stats.LastError,
		})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := container.DBConn.Ping(checkCtx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "not_ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
	})
	mux.Handle("/health", container.Health.Handler())
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
