package event

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"risk-dashboard/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultDialAttempts = 5

// BrokerURI builds the amqp URI for cfg. Username and password must be set
// together or not at all.
func BrokerURI(cfg config.RabbitMQConfig) (string, error) {
	if cfg.Host == "" {
		return "", fmt.Errorf("RabbitMQ host is not configured")
	}
	if (cfg.Username == "") != (cfg.Password == "") {
		return "", fmt.Errorf("RabbitMQ username and password must be provided together")
	}

	host := cfg.Host
	if cfg.Port != 0 {
		host = host + ":" + strconv.Itoa(cfg.Port)
	}
	u := url.URL{Scheme: "amqp", Host: host, Path: "/"}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	return u.String(), nil
}

// Dial connects to the broker, retrying with a linear backoff. attempts <= 0
// uses the default of five.
func Dial(ctx context.Context, cfg config.RabbitMQConfig, attempts int, logger *slog.Logger) (*amqp.Connection, error) {
	uri, err := BrokerURI(cfg)
	if err != nil {
		return nil, err
	}
	if attempts <= 0 {
		attempts = defaultDialAttempts
	}

	logCtx := logger.With("host", cfg.Host, "port", cfg.Port)
	var conn *amqp.Connection
	for i := 1; i <= attempts; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logCtx.Info("Successfully connected to RabbitMQ")
			go watchConnection(conn, logCtx)
			return conn, nil
		}
		logCtx.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", attempts),
			slog.Any("error", err),
		)
		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("RabbitMQ connect cancelled: %w", ctx.Err())
		case <-time.After(time.Duration(i*2) * time.Second):
		}
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, err)
}

func watchConnection(conn *amqp.Connection, logger *slog.Logger) {
	blocks := conn.NotifyBlocked(make(chan amqp.Blocking, 1))
	closes := conn.NotifyClose(make(chan *amqp.Error, 1))
	logConnectionEvents(blocks, closes, logger)
}

// logConnectionEvents drains both notification channels until the library
// closes them. amqp091 delivers notifications synchronously, so an undrained
// channel stalls the connection reader.
func logConnectionEvents(blocks <-chan amqp.Blocking, closes <-chan *amqp.Error, logger *slog.Logger) {
	for blocks != nil || closes != nil {
		select {
		case b, ok := <-blocks:
			if !ok {
				blocks = nil
				continue
			}
			if b.Active {
				logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
			} else {
				logger.Info("RabbitMQ Connection Unblocked")
			}
		case e, ok := <-closes:
			if !ok {
				closes = nil
				continue
			}
			if e != nil {
				logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
			}
		}
	}
	logger.Debug("RabbitMQ connection watcher stopped")
}
