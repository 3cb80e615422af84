package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evmaint_backend/internal/auth"
	"evmaint_backend/internal/events"
	apphttp "evmaint_backend/internal/http"
	"evmaint_backend/internal/http/router"
	"evmaint_backend/internal/reports"
	"evmaint_backend/internal/stations"
	"evmaint_backend/internal/telemetry"
	"evmaint_backend/platform/config"
	"evmaint_backend/platform/db"
	"evmaint_backend/platform/logger"
	"evmaint_backend/platform/validator"

	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env, cfg.PDFDebug)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var client *mongo.Client
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		c, err := db.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		client = c
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	log.Info("database connection established")

	database := client.Database(cfg.MongoDatabase)

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(database, cfg, eventBus, log, val)
	stationsModule := stations.NewModule(database, log, val)
	telemetryModule := telemetry.NewModule(database, cfg, eventBus, log)
	defer telemetryModule.Close()
	reportsModule := reports.NewModule(database, cfg, eventBus, log)

	modules := []apphttp.Module{
		authModule,
		stationsModule,
		telemetryModule,
		reportsModule,
	}

	for _, m := range modules {
		indexer, ok := m.(interface {
			EnsureIndexes(ctx context.Context) error
		})
		if !ok {
			continue
		}
		if err := withRetry(ctx, log, m.Name()+" indexes", 5, 2*time.Second, func() error {
			return indexer.EnsureIndexes(ctx)
		}); err != nil {
			log.Error("failed to ensure indexes", "module", m.Name(), "error", err)
			panic("failed to ensure indexes: " + err.Error())
		}
	}
	log.Info("database indexes ensured")

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewClientAdapter(client),
		EventBus: eventBus,
		Modules:  modules,
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
