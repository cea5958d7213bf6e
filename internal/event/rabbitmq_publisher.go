package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"risk-dashboard/internal/pkg/apperrors"

	amqp "github.com/rabbitmq/amqp091-go"
)

// publishChannel is the subset of *amqp.Channel the publisher needs.
type publishChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type channelOpener func() (publishChannel, error)

// RabbitMQEventPublisher publishes JSON events to a topic exchange over one
// long-lived channel, reopened when the broker closes it.
type RabbitMQEventPublisher struct {
	open         channelOpener
	exchangeName string
	logger       *slog.Logger

	mu      sync.Mutex
	channel publishChannel
}

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	return newRabbitMQEventPublisher(func() (publishChannel, error) {
		return conn.Channel()
	}, exchangeName, logger)
}

func newRabbitMQEventPublisher(open channelOpener, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if exchangeName == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	ch, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchangeName, err)
	}
	logger.Info("Ensured RabbitMQ exchange exists", "exchange", exchangeName, "type", amqp.ExchangeTopic)

	return &RabbitMQEventPublisher{
		open:         open,
		exchangeName: exchangeName,
		logger:       logger.With("component", "RabbitMQEventPublisher", "exchange", exchangeName),
		channel:      ch,
	}, nil
}

func (p *RabbitMQEventPublisher) PublishCustomerStatusUpdated(ctx context.Context, event CustomerStatusUpdatedEvent) error {
	return p.publish(ctx, RoutingKeyCustomerStatusUpdated, event.EventID, event.Timestamp, event)
}

func (p *RabbitMQEventPublisher) PublishHighRiskAlert(ctx context.Context, event HighRiskAlertEvent) error {
	return p.publish(ctx, RoutingKeyHighRiskAlert, event.EventID, event.Timestamp, event)
}

// Close releases the publishing channel. The connection stays open.
func (p *RabbitMQEventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil || p.channel.IsClosed() {
		return nil
	}
	err := p.channel.Close()
	p.channel = nil
	return err
}

func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey, messageID string, at time.Time, payload interface{}) error {
	logCtx := p.logger.With(slog.String("routingKey", routingKey), slog.String("eventId", messageID))

	body, err := json.Marshal(payload)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to marshal event payload to JSON", slog.Any("error", err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if at.IsZero() {
		at = time.Now()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		logCtx.WarnContext(ctx, "Publishing channel closed, reopening")
		ch, err := p.open()
		if err != nil {
			logCtx.ErrorContext(ctx, "Failed to reopen RabbitMQ channel", slog.Any("error", err))
			return apperrors.WrapBrokerError(err, "failed to open channel")
		}
		p.channel = ch
	}

	err = p.channel.PublishWithContext(ctx, p.exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Type:         routingKey,
		Timestamp:    at,
		AppId:        publisherAppID,
		Body:         body,
	})
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish message to RabbitMQ", slog.Any("error", err))
		return apperrors.WrapBrokerError(err, "failed to publish message")
	}

	logCtx.DebugContext(ctx, "Published message", "bodySize", len(body))
	return nil
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)
