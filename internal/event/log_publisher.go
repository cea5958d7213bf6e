package event

import (
	"context"
	"log/slog"
)

// LogEventPublisher writes events to the structured log. It is used when no
// broker is configured so the side channel still leaves a trace.
type LogEventPublisher struct {
	logger *slog.Logger
}

func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &LogEventPublisher{logger: logger.With("component", "LogEventPublisher")}
}

func (p *LogEventPublisher) PublishCustomerStatusUpdated(ctx context.Context, event CustomerStatusUpdatedEvent) error {
	p.logger.InfoContext(ctx, "Event",
		slog.String("routingKey", RoutingKeyCustomerStatusUpdated),
		slog.String("eventId", event.EventID),
		slog.String("customerId", event.Payload.CustomerID),
		slog.String("previousStatus", event.PreviousStatus),
		slog.String("status", event.Payload.Status),
		slog.Int("riskScore", event.RiskScore),
	)
	return nil
}

func (p *LogEventPublisher) PublishHighRiskAlert(ctx context.Context, event HighRiskAlertEvent) error {
	p.logger.WarnContext(ctx, "Event",
		slog.String("routingKey", RoutingKeyHighRiskAlert),
		slog.String("eventId", event.EventID),
		slog.String("customerId", event.CustomerID),
		slog.String("name", event.Name),
		slog.Int("riskScore", event.RiskScore),
	)
	return nil
}

var _ EventPublisher = (*LogEventPublisher)(nil)
