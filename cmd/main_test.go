package main

import (
	"bank-backoffice/internal/batch"
	"bank-backoffice/internal/config"
	"bank-backoffice/internal/infrastructure/logging"
	"bank-backoffice/internal/mocks"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp(t *testing.T) {
	t.Setenv("SERVER_AUTH_JWTSECRET", "test-secret")

	cfg, log := initializeApp()

	assert.NotNil(t, cfg, "Config should not be nil")
	assert.NotNil(t, log, "Logger should not be nil")
}

func TestStartServer(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:         0,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  5 * time.Second,
		},
	}
	logger := logging.NewLogger(config.LoggerConfig{})
	router := http.NewServeMux()

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	t.Cleanup(func() { _ = srv.Close() })

	assert.NotNil(t, srv, "Server should not be nil")
	assert.NotNil(t, serverErrors, "Server errors channel should not be nil")
	assert.NotNil(t, shutdownChan, "Shutdown channel should not be nil")
}

func TestHandleShutdown(t *testing.T) {
	logger := logging.NewLogger(config.LoggerConfig{})
	cronScheduler := cron.New()
	srv := &http.Server{}
	shutdownChan := make(chan os.Signal, 1)
	serverErrors := make(chan error, 1)

	go func() {
		shutdownChan <- syscall.SIGINT
	}()

	done := make(chan struct{})
	go func() {
		handleShutdown(srv, cronScheduler, nil, nil, shutdownChan, serverErrors, logger)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("graceful shutdown did not complete")
	}
}

func TestRabbitMQURI(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.RabbitMQConfig
		want    string
		wantErr bool
	}{
		{
			name: "Credentials and port",
			cfg:  config.RabbitMQConfig{Host: "mq", Port: 5672, Username: "guest", Password: "secret"},
			want: "amqp://guest:secret@mq:5672",
		},
		{
			name: "No credentials",
			cfg:  config.RabbitMQConfig{Host: "mq", Port: 5673},
			want: "amqp://mq:5673",
		},
		{
			name: "Host only",
			cfg:  config.RabbitMQConfig{Host: "mq"},
			want: "amqp://mq",
		},
		{
			name: "Reserved characters in credentials are escaped",
			cfg:  config.RabbitMQConfig{Host: "mq", Port: 5672, Username: "svc@bank", Password: "p@ss:w/rd?"},
			want: "amqp://svc%40bank:p%40ss%3Aw%2Frd%3F@mq:5672",
		},
		{
			name:    "Missing host",
			cfg:     config.RabbitMQConfig{Port: 5672},
			wantErr: true,
		},
		{
			name:    "Username without password",
			cfg:     config.RabbitMQConfig{Host: "mq", Username: "guest"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rabbitMQURI(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRabbitMQURIRoundTripsCredentials(t *testing.T) {
	cfg := config.RabbitMQConfig{Host: "mq", Port: 5672, Username: "svc@bank", Password: "p@ss:w/rd?"}

	raw, err := rabbitMQURI(cfg)
	require.NoError(t, err)

	parsed, err := amqp.ParseURI(raw)
	require.NoError(t, err)
	assert.Equal(t, "svc@bank", parsed.Username)
	assert.Equal(t, "p@ss:w/rd?", parsed.Password)
	assert.Equal(t, "mq", parsed.Host)
	assert.Equal(t, 5672, parsed.Port)
}

func TestSetupRabbitMQDisabled(t *testing.T) {
	logger := logging.NewLogger(config.LoggerConfig{})

	conn, publisher := setupRabbitMQ(&config.Config{}, logger)

	assert.Nil(t, conn)
	assert.NotNil(t, publisher)
}

func TestStartBatchJobs(t *testing.T) {
	logger := logging.NewLogger(config.LoggerConfig{})
	job := batch.NewPendingBacklogJob(new(mocks.AccountRequestRepository), new(mocks.LoanRepository), 10, logger)

	c := startBatchJobs(&config.Config{Batch: config.BatchConfig{BacklogSchedule: "0 3 * * *"}}, logger, job)
	defer c.Stop()

	require.Len(t, c.Entries(), 1)
	assert.False(t, c.Entries()[0].Next.IsZero())
}
