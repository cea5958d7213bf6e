package event_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"risk-dashboard/internal/event"
	"risk-dashboard/internal/pkg/apperrors"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	published  []published
	closed     bool
	publishErr error
}

func (c *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	c.declared = append(c.declared, name+":"+kind)
	return nil
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if c.publishErr != nil {
		return c.publishErr
	}
	c.published = append(c.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (c *fakeChannel) IsClosed() bool { return c.closed }

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func newFakePublisher(t *testing.T, channels ...*fakeChannel) (*event.RabbitMQEventPublisher, *int) {
	t.Helper()
	opened := 0
	open := func() (event.PublishChannel, error) {
		if opened >= len(channels) {
			return nil, errors.New("no more channels")
		}
		ch := channels[opened]
		opened++
		return ch, nil
	}
	pub, err := event.NewRabbitMQEventPublisherWithOpener(open, "risk-dashboard", discardLogger())
	require.NoError(t, err)
	return pub, &opened
}

func TestRabbitMQEventPublisher_PublishHighRiskAlert(t *testing.T) {
	ch := &fakeChannel{}
	pub, _ := newFakePublisher(t, ch)
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	err := pub.PublishHighRiskAlert(context.Background(), event.HighRiskAlertEvent{
		EventID: "e-1", Timestamp: at, CustomerID: "CUST2001", Name: "Carol King", Status: "Review", RiskScore: 92,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"risk-dashboard:topic"}, ch.declared)
	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, "risk-dashboard", got.exchange)
	assert.Equal(t, event.RoutingKeyHighRiskAlert, got.key)
	assert.Equal(t, "e-1", got.msg.MessageId)
	assert.Equal(t, event.RoutingKeyHighRiskAlert, got.msg.Type)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.True(t, got.msg.Timestamp.Equal(at))

	alert, err := event.DecodeHighRiskAlert(got.msg.Body)
	require.NoError(t, err)
	assert.Equal(t, 92, alert.RiskScore)
}

func TestRabbitMQEventPublisher_PublishStatusUpdated(t *testing.T) {
	ch := &fakeChannel{}
	pub, _ := newFakePublisher(t, ch)

	err := pub.PublishCustomerStatusUpdated(context.Background(), event.CustomerStatusUpdatedEvent{
		EventID:        "e-2",
		PreviousStatus: "Review",
		RiskScore:      56,
		Payload:        event.CustomerEventPayload{CustomerID: "CUST1001", Status: "Approved"},
	})

	require.NoError(t, err)
	require.Len(t, ch.published, 1)
	assert.Equal(t, event.RoutingKeyCustomerStatusUpdated, ch.published[0].key)
	assert.False(t, ch.published[0].msg.Timestamp.IsZero())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(ch.published[0].msg.Body, &body))
	assert.Equal(t, "Review", body["previousStatus"])
	assert.Equal(t, "Approved", body["payload"].(map[string]interface{})["status"])
}

func TestRabbitMQEventPublisher_ReopensClosedChannel(t *testing.T) {
	first, second := &fakeChannel{}, &fakeChannel{}
	pub, opened := newFakePublisher(t, first, second)
	first.closed = true

	require.NoError(t, pub.PublishHighRiskAlert(context.Background(), event.HighRiskAlertEvent{EventID: "e-3", CustomerID: "C"}))

	assert.Equal(t, 2, *opened)
	assert.Empty(t, first.published)
	assert.Len(t, second.published, 1)
}

func TestRabbitMQEventPublisher_Errors(t *testing.T) {
	t.Run("Publish failure is a broker error", func(t *testing.T) {
		cause := errors.New("channel/connection is not open")
		pub, _ := newFakePublisher(t, &fakeChannel{publishErr: cause})

		err := pub.PublishHighRiskAlert(context.Background(), event.HighRiskAlertEvent{EventID: "e-4"})

		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Reopen failure is a broker error", func(t *testing.T) {
		ch := &fakeChannel{}
		pub, _ := newFakePublisher(t, ch)
		ch.closed = true

		err := pub.PublishHighRiskAlert(context.Background(), event.HighRiskAlertEvent{EventID: "e-5"})

		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})
}

func TestRabbitMQEventPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	pub, _ := newFakePublisher(t, ch)

	require.NoError(t, pub.Close())
	assert.True(t, ch.closed)
	assert.NoError(t, pub.Close())
}
