package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"risk-dashboard/internal/api"
	mw "risk-dashboard/internal/api/middleware"
	"risk-dashboard/internal/batch"
	"risk-dashboard/internal/config"
	"risk-dashboard/internal/domain/customer"
	"risk-dashboard/internal/event"
	"risk-dashboard/internal/infrastructure/database/postgres"
	"risk-dashboard/internal/infrastructure/logging"
	"risk-dashboard/internal/infrastructure/memory"
	"risk-dashboard/internal/infrastructure/monitoring"
	"risk-dashboard/internal/infrastructure/seed"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// @title Risk Dashboard API
// @version 1.0
// @description Customer credit-risk review: list customers, inspect risk scores and change review status.

// @contact.name API Support
// @contact.email support@risk-dashboard.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api
func main() {
	cfg, logger := initializeApp()

	customers, err := loadSeed(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to load seed customers", "source", cfg.Seed.Source, "error", err)
		os.Exit(1)
	}

	rabbitMQConn := setupRabbitMQ(cfg, logger)
	redisClient := initializeRedisClient(cfg, logger)

	customerService, err := initializeServices(customers, rabbitMQConn, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	snapshotJob := batch.NewRiskSnapshotJob(customerService, logger)
	cronScheduler := startBatchJobs(cfg, logger, snapshotJob)
	rateLimiter := mw.NewRateLimiter(cfg.Server.RateLimit, redisClient, logger)
	router := api.SetupRouter(customerService, cfg, rateLimiter, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, redisClient, rateLimiter, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func seedSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (customer.SeedSource, func(), error) {
	noop := func() {}
	switch cfg.Seed.Source {
	case "", config.SeedSourceBuiltin:
		return seed.BuiltinSource{}, noop, nil
	case config.SeedSourceFile:
		return seed.FileSource{Path: cfg.Seed.File}, noop, nil
	case config.SeedSourcePostgres:
		logger.Info("Initializing database connection pool...")
		dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, noop, err
		}
		closeDB := func() {
			logger.Info("Closing database connection pool...")
			dbPool.Close()
		}
		return postgres.NewSeedRepository(dbPool, logger), closeDB, nil
	default:
		return nil, noop, fmt.Errorf("unknown seed source %q", cfg.Seed.Source)
	}
}

// loadSeed reads the initial portfolio. The postgres pool, if any, is closed
// once the records are in memory.
func loadSeed(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]*customer.Customer, error) {
	source, closeSource, err := seedSource(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	customers, err := source.LoadCustomers(ctx)
	if err != nil {
		return nil, err
	}

	sourceName := cfg.Seed.Source
	if sourceName == "" {
		sourceName = config.SeedSourceBuiltin
	}
	monitoring.RecordSeedLoaded(sourceName, len(customers))
	logger.Info("Seed customers loaded", "source", sourceName, "count", len(customers))
	return customers, nil
}

func initializeServices(customers []*customer.Customer, rabbitConn *amqp.Connection, cfg *config.Config, logger *slog.Logger) (customer.CustomerService, error) {
	logger.Info("Initializing application components...")
	customerRepo, err := memory.NewCustomerRepository(customers, logger)
	if err != nil {
		return nil, err
	}

	eventPublisher, err := newEventPublisher(rabbitConn, cfg.RabbitMQ, logger)
	if err != nil {
		return nil, err
	}
	return customer.NewCustomerService(customerRepo, eventPublisher, logger), nil
}

func newEventPublisher(rabbitConn *amqp.Connection, cfg config.RabbitMQConfig, logger *slog.Logger) (event.EventPublisher, error) {
	if rabbitConn == nil {
		logger.Info("RabbitMQ not connected, domain events will be logged only.")
		return event.NewLogEventPublisher(logger), nil
	}
	return event.NewRabbitMQEventPublisher(rabbitConn, cfg.ExchangeName, logger)
}

// setupRabbitMQ returns nil when no broker is configured or it cannot be
// reached. The service still runs and logs its events instead.
func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) *amqp.Connection {
	if cfg.RabbitMQ.Host == "" {
		logger.Info("RabbitMQ host not configured, skipping broker connection.")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	conn, err := event.Dial(ctx, cfg.RabbitMQ, 0, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, continuing without broker", "error", err)
		return nil
	}
	return conn
}

func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		logger.Info("Redis address not configured, rate limiting stays in-process.")
		return nil
	}

	logger.Info("Initializing central Redis client...")
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if status := rdb.Ping(ctx); status.Err() != nil {
		logger.Error("Failed to connect to Redis", "error", status.Err(), "addr", cfg.Redis.Addr)
		_ = rdb.Close()
		os.Exit(1)
		return nil
	}

	logger.Info("Central Redis client connected successfully.", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
	return rdb
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(
	srv *http.Server,
	cronScheduler *cron.Cron,
	rabbitConn *amqp.Connection,
	redisClient *redis.Client,
	rateLimiter mw.RateLimiter,
	shutdownChan <-chan os.Signal,
	serverErrors <-chan error,
	logger *slog.Logger,
) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCron(cronScheduler, logger)
	shutdownHTTPServer(srv, serverErrors, logger)
	rateLimiter.Close()
	closeRabbitMQ(rabbitConn, logger)
	closeRedisClient(redisClient, logger)

	logger.Info("Application shutdown process complete.")
}

func stopCron(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		} else {
			logger.Info("HTTP server shutdown initiated.")
		}
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}

func closeRabbitMQ(rabbitConn *amqp.Connection, logger *slog.Logger) {
	if rabbitConn == nil {
		logger.Info("RabbitMQ connection was not established, skipping close.")
		return
	}
	if rabbitConn.IsClosed() {
		logger.Info("RabbitMQ connection already closed, skipping close.")
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := rabbitConn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection", "error", err)
	} else {
		logger.Info("RabbitMQ connection closed.")
	}
}

func closeRedisClient(redisClient *redis.Client, logger *slog.Logger) {
	if redisClient == nil {
		return
	}
	logger.Info("Closing central Redis client connection...")
	if err := redisClient.Close(); err != nil {
		logger.Error("Failed to close Redis client", "error", err)
	}
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, snapshotJob batch.Job) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	_, err := batch.Schedule(c, "RiskSnapshot", cfg.Batch.RiskSnapshotSchedule, cfg.Batch.RiskSnapshotTimeout, snapshotJob, logger)
	if err != nil {
		logger.Error("Failed to schedule risk snapshot job", slog.Any("error", err))
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
