package main

import (
	"bank-backoffice/internal/api"
	"bank-backoffice/internal/api/handler"
	"bank-backoffice/internal/batch"
	"bank-backoffice/internal/config"
	"bank-backoffice/internal/domain/accountrequest"
	"bank-backoffice/internal/domain/auth"
	"bank-backoffice/internal/domain/customer"
	"bank-backoffice/internal/domain/employee"
	"bank-backoffice/internal/domain/loan"
	"bank-backoffice/internal/event"
	"bank-backoffice/internal/infrastructure/database/postgres"
	"bank-backoffice/internal/infrastructure/logging"
	"bank-backoffice/internal/infrastructure/session"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// @title Bank Back-Office API
// @version 1.0
// @description Back-office API for a retail bank branch: customer self-service, account opening and loan approval.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name session
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, logger := initializeApp()

	dbPool := initializeDatabase(ctx, cfg, logger)
	defer closeDatabase(dbPool, logger)
	redisClient := initializeRedisClient(cfg, logger)
	rabbitMQConn, publisher := setupRabbitMQ(cfg, logger)

	app := initializeServices(dbPool, redisClient, publisher, cfg, logger)
	backlogJob := batch.NewPendingBacklogJob(app.requestRepo, app.loanRepo, cfg.Batch.BacklogWarnThreshold, logger)
	cronScheduler := startBatchJobs(cfg, logger, backlogJob)

	app.services.HealthChecks = map[string]handler.Pinger{
		"postgres": dbPool.Ping,
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}
	router := api.SetupRouter(ctx, app.services, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitMQConn, redisClient, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", cfg.Source())

	return cfg, logger
}

func initializeDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	if cfg.Database.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, dbPool, logger); err != nil {
			logger.Error("Failed to apply database schema", "error", err)
			dbPool.Close()
			os.Exit(1)
		}
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializeRedisClient(cfg *config.Config, logger *slog.Logger) *redis.Client {
	logger.Info("Initializing Redis client...", "addr", cfg.Redis.Addr)
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	logger.Info("Successfully connected to Redis.")
	return client
}

func closeRedisClient(client *redis.Client, logger *slog.Logger) {
	if client == nil {
		return
	}
	logger.Info("Closing Redis client...")
	if err := client.Close(); err != nil {
		logger.Error("Failed to close Redis client", "error", err)
		return
	}
	logger.Info("Redis client closed.")
}

// setupRabbitMQ connects the event publisher. Without a broker, events are only logged.
func setupRabbitMQ(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, event.EventPublisher) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, events will only be logged.")
		return nil, event.NewNoopPublisher(logger)
	}

	uri, err := rabbitMQURI(cfg.RabbitMQ)
	if err != nil {
		logger.Error("Invalid RabbitMQ configuration, events will only be logged", "error", err)
		return nil, event.NewNoopPublisher(logger)
	}

	conn, err := connectRabbitMQ(uri, logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, events will only be logged", "error", err)
		return nil, event.NewNoopPublisher(logger)
	}

	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to set up RabbitMQ publisher, events will only be logged", "error", err)
		_ = conn.Close()
		return nil, event.NewNoopPublisher(logger)
	}
	return conn, publisher
}

func rabbitMQURI(cfg config.RabbitMQConfig) (string, error) {
	if cfg.Host == "" {
		return "", fmt.Errorf("RabbitMQ host is not configured")
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return "", fmt.Errorf("RabbitMQ username and password must be provided together")
	}

	u := url.URL{Scheme: "amqp", Host: cfg.Host}
	if cfg.Port != 0 {
		u.Host = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	return u.String(), nil
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	maxRetries := 5

	for i := 1; i <= maxRetries; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")
			go func() {
				blocked := conn.NotifyBlocked(make(chan amqp.Blocking))
				closed := conn.NotifyClose(make(chan *amqp.Error, 1))
				for {
					select {
					case b, ok := <-blocked:
						if !ok {
							return
						}
						logger.Warn("RabbitMQ connection blocked", "active", b.Active, "reason", b.Reason)
					case closeErr := <-closed:
						if closeErr != nil {
							logger.Error("RabbitMQ connection closed", "error", closeErr)
						}
						return
					}
				}
			}()
			return conn, nil
		}

		logger.Warn("Failed to connect to RabbitMQ, retrying...", "attempt", i, "error", err)
		time.Sleep(time.Duration(i*2) * time.Second)
	}

	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", maxRetries, err)
}

type application struct {
	services    api.Services
	requestRepo accountrequest.Repository
	loanRepo    loan.Repository
}

func initializeServices(dbPool *pgxpool.Pool, redisClient *redis.Client, publisher event.EventPublisher,
	cfg *config.Config, logger *slog.Logger) application {
	logger.Info("Initializing application components...")

	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	loanRepo := postgres.NewLoanRepository(dbPool, logger)
	requestRepo := postgres.NewAccountRequestRepository(dbPool, logger)
	employeeRepo := postgres.NewEmployeeRepository(dbPool, logger)

	tokens, err := auth.NewTokenIssuer(cfg.Server.Auth.JWTSecret, cfg.Server.Auth.SessionTTL)
	if err != nil {
		logger.Error("Failed to initialize session tokens", "error", err)
		os.Exit(1)
	}
	store := session.NewRedisStore(redisClient, logger)
	authenticator := auth.NewAuthenticator(customerRepo, employeeRepo, store, tokens, auth.Options{
		CaptchaTTL:      cfg.Server.Auth.CaptchaTTL,
		EmployeeCaptcha: cfg.Server.Auth.EmployeeCaptcha,
	}, logger)

	return application{
		services: api.Services{
			Customers:       customer.NewCustomerService(customerRepo, loanRepo, publisher, logger),
			Loans:           loan.NewLoanService(loanRepo, customerRepo, publisher, logger),
			AccountRequests: accountrequest.NewService(requestRepo, customerRepo, logger),
			Employees:       employee.NewEmployeeService(employeeRepo, requestRepo, customerRepo, loanRepo, publisher, logger),
			Auth:            authenticator,
		},
		requestRepo: requestRepo,
		loanRepo:    loanRepo,
	}
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

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection, redisClient *redis.Client,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)
	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	shutdownHTTPServer(srv, serverErrors, logger)
	closeRabbitMQConnection(rabbitConn, logger)
	closeRedisClient(redisClient, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		logger.Info("Server goroutine finished before signal.", "error", err)
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
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
		logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
		return
	}
	logger.Info("RabbitMQ connection closed.")
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
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

func startBatchJobs(cfg *config.Config, logger *slog.Logger, backlogJob *batch.PendingBacklogJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.BacklogSchedule
	if scheduleSpec == "" {
		scheduleSpec = "*/15 * * * *"
		logger.Warn("Backlog report schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.BacklogTimeout
	if jobTimeout <= 0 {
		jobTimeout = 2 * time.Minute
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "PendingBacklog")
		jobLogger.Info("Cron triggered: Running pending backlog job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		report, runErr := backlogJob.Run(ctx)
		if runErr != nil {
			jobLogger.Error("Pending backlog job finished with error", slog.Any("error", runErr))
			return
		}
		jobLogger.Info("Pending backlog job finished successfully.", "pending_total", report.Total())
	}))

	if err != nil {
		logger.Error("Failed to schedule pending backlog job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled pending backlog job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func setupLogger(cfg config.LoggerConfig) *slog.Logger {
	return logging.NewLogger(cfg)
}
