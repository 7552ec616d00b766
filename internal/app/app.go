// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package app wires configuration, storage, services and the HTTP server
// into the running site, and implements the operator commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/skursatToklucu/ozanparquet/internal/api"
	"github.com/skursatToklucu/ozanparquet/internal/observability"
	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
	"github.com/skursatToklucu/ozanparquet/internal/repository/postgres"
	redisrepo "github.com/skursatToklucu/ozanparquet/internal/repository/redis"
	"github.com/skursatToklucu/ozanparquet/internal/scheduler"
)

// Application holds all application dependencies
type Application struct {
	Config *Config
	Logger *logger.Logger
	DB     *postgres.DB
	Redis  *redisrepo.Client
	Server *api.Server

	// Services requiring graceful shutdown
	Scheduler *scheduler.Scheduler
	Tracing   *observability.Provider
}

// Run loads the configuration, starts the site and blocks until SIGINT or
// SIGTERM, then shuts down gracefully.
func Run(cfgFile string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.NewFromConfig(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting ozanparquet",
		"version", Version,
		"commit", Commit,
		"base_path", cfg.Server.BasePath,
	)

	app := &Application{Config: cfg, Logger: log}
	defer app.close()

	if err := app.start(ctx); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	return app.shutdown()
}

// start connects the backends and runs the init phases in dependency order.
func (app *Application) start(ctx context.Context) error {
	ic := &initContext{}
	if app.Config.Observability.MetricsEnabled {
		ic.metrics = observability.NewMetrics()
	}

	if err := app.initObservability(ctx); err != nil {
		return err
	}
	if err := app.connectBackends(ctx, ic); err != nil {
		return err
	}

	app.initRepositories(ic)
	if err := app.initAuth(ctx, ic); err != nil {
		return err
	}
	app.initServices(ic)
	if err := app.initWeb(ic); err != nil {
		return err
	}
	app.initServer(ic)
	app.initAPI(ic)
	return app.initScheduler(ctx, ic)
}

// initObservability starts the trace exporter when tracing is enabled.
func (app *Application) initObservability(ctx context.Context) error {
	obs := app.Config.Observability
	if !obs.TracingEnabled {
		return nil
	}
	tcfg := observability.DefaultConfig()
	tcfg.Enabled = true
	tcfg.ServiceVersion = Version
	tcfg.Endpoint = obs.TracingEndpoint
	tcfg.Insecure = obs.TracingInsecure
	tcfg.SampleRatio = obs.SampleRatio

	provider, err := observability.NewProvider(ctx, tcfg)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.Tracing = provider
	app.Logger.Info("Tracing enabled", "endpoint", obs.TracingEndpoint, "sample_ratio", obs.SampleRatio)
	return nil
}

// connectBackends opens PostgreSQL (migrating when configured) and Redis.
func (app *Application) connectBackends(ctx context.Context, ic *initContext) error {
	app.Logger.Info("Connecting to PostgreSQL...")
	opts := dbOptions(app.Config.Database)
	if ic.metrics != nil {
		opts.Tracer = observability.NewQueryTracer(ic.metrics)
	}
	db, err := postgres.New(ctx, app.Config.Database.URL, opts)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	app.DB = db
	app.Logger.Info("PostgreSQL connected")

	if app.Config.Database.MigrateOnStart {
		applied, err := db.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		app.Logger.Info("Database migrations complete", "applied", applied)
	}

	app.Logger.Info("Connecting to Redis...")
	rc := app.Config.Redis
	client, err := redisrepo.New(ctx, rc.URL, redisrepo.Options{
		PoolSize:     rc.PoolSize,
		MinIdleConns: rc.MinIdleConns,
		DialTimeout:  rc.DialTimeout,
		ReadTimeout:  rc.ReadTimeout,
		WriteTimeout: rc.WriteTimeout,
		KeyPrefix:    rc.KeyPrefix,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.Redis = client
	app.Logger.Info("Redis connected")
	return nil
}

// shutdown stops the scheduler, drains the server and flushes traces.
func (app *Application) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout())
	defer cancel()

	var errs []error
	if app.Scheduler != nil {
		if err := app.Scheduler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}
	if app.Server != nil {
		if err := app.Server.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if app.Tracing != nil {
		if err := app.Tracing.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
	}

	app.Logger.Info("Shutdown complete")
	return errors.Join(errs...)
}

// close releases the backend connections. Safe on a partial start.
func (app *Application) close() {
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Warn("Failed to close Redis", "error", err)
		}
	}
	if app.DB != nil {
		app.DB.Close()
	}
}

func (app *Application) shutdownTimeout() time.Duration {
	if d := app.Config.Server.ShutdownTimeout; d > 0 {
		return d
	}
	return 15 * time.Second
}

// dbOptions maps the database config onto pool options.
func dbOptions(c DatabaseConfig) postgres.Options {
	return postgres.Options{
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		ConnMaxIdleTime: c.ConnMaxIdleTime,
		QueryTimeout:    c.QueryTimeout,
	}
}
