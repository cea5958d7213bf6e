package event

import "log/slog"

type PublishChannel = publishChannel

func NewRabbitMQEventPublisherWithOpener(open func() (PublishChannel, error), exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	return newRabbitMQEventPublisher(open, exchangeName, logger)
}

var LogConnectionEvents = logConnectionEvents
