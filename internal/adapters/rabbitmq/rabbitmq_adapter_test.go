package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/constants"
	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	routingKey string
	msg        amqp.Publishing
	err        error
}

func (c *capturePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	c.routingKey = routingKey
	c.msg = msg
	return c.err
}

type recordingNotifier struct {
	events []domain.PropertySubmittedEvent
	err    error
}

func (r *recordingNotifier) Execute(ctx context.Context, event domain.PropertySubmittedEvent) error {
	r.events = append(r.events, event)
	return r.err
}

func sampleEvent() domain.PropertySubmittedEvent {
	return domain.PropertySubmittedEvent{
		EventID:      uuid.New(),
		RequestID:    "AMG-20260105-1A2B3C",
		Channel:      domain.ChannelWizard,
		SubmittedAt:  time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		PropertyType: "apartment",
		Purpose:      domain.PurposeSale,
		Governorate:  "cairo",
		City:         "مدينة نصر",
		Area:         "150",
		Price:        "2500000",
		ContactName:  "أحمد علي",
		ContactPhone: "01012345678",
		ImageURLs:    []string{"https://res.cloudinary.com/amg/image/upload/a.jpg"},
	}
}

func TestPublishPropertySubmitted(t *testing.T) {
	pub := &capturePublisher{}
	adapter, err := NewSubmissionEventsAdapter(pub, constants.RoutingKeyListingSubmitted)
	require.NoError(t, err)

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	event := sampleEvent()
	require.NoError(t, adapter.PublishPropertySubmitted(ctx, event))

	assert.Equal(t, constants.RoutingKeyListingSubmitted, pub.routingKey)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.Equal(t, constants.EventTypePropertySubmitted, pub.msg.Headers[constants.HeaderEventType])
	assert.Equal(t, "trace-1", pub.msg.Headers["x-trace-id"])

	var dto PropertySubmittedEventDTO
	require.NoError(t, json.Unmarshal(pub.msg.Body, &dto))
	assert.Equal(t, event.RequestID, dto.RequestID)
}

func TestPublishRejectsContractViolation(t *testing.T) {
	pub := &capturePublisher{}
	adapter, err := NewSubmissionEventsAdapter(pub, constants.RoutingKeyListingSubmitted)
	require.NoError(t, err)

	event := sampleEvent()
	event.ImageURLs = nil
	assert.Error(t, adapter.PublishPropertySubmitted(context.Background(), event))
	assert.Empty(t, pub.routingKey)
}

func TestNewSubmissionEventsAdapterValidatesArgs(t *testing.T) {
	_, err := NewSubmissionEventsAdapter(nil, "x")
	assert.Error(t, err)
	_, err = NewSubmissionEventsAdapter(&capturePublisher{}, "")
	assert.Error(t, err)
}

func deliveryFor(t *testing.T, event domain.PropertySubmittedEvent) amqp.Delivery {
	t.Helper()
	msg, err := buildSubmittedMessage(context.Background(), event)
	require.NoError(t, err)
	return amqp.Delivery{Headers: msg.Headers, Body: msg.Body, MessageId: msg.MessageId}
}

func TestHandleMessage(t *testing.T) {
	notifier := &recordingNotifier{}
	adapter := &SubmissionConsumerAdapter{useCase: notifier, logger: contextkeys.NoopLogger()}

	require.NoError(t, adapter.handleMessage(deliveryFor(t, sampleEvent())))
	require.Len(t, notifier.events, 1)
	assert.Equal(t, "AMG-20260105-1A2B3C", notifier.events[0].RequestID)
}

func TestHandleMessageDropsInvalidBody(t *testing.T) {
	notifier := &recordingNotifier{}
	adapter := &SubmissionConsumerAdapter{useCase: notifier, logger: contextkeys.NoopLogger()}

	d := amqp.Delivery{
		Headers: amqp.Table{
			constants.HeaderEventType:    constants.EventTypePropertySubmitted,
			constants.HeaderEventVersion: constants.EventVersionPropertySubmitted,
		},
		Body: []byte(`{"requestId":"nope"}`),
	}
	assert.NoError(t, adapter.handleMessage(d))
	assert.Empty(t, notifier.events)
}

func TestHandleMessagePropagatesUseCaseError(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("ses down")}
	adapter := &SubmissionConsumerAdapter{useCase: notifier, logger: contextkeys.NoopLogger()}

	assert.Error(t, adapter.handleMessage(deliveryFor(t, sampleEvent())))
}

func TestPkgLoggerBridgeToFields(t *testing.T) {
	b := &PkgLoggerBridge{internalLogger: contextkeys.NoopLogger()}
	fields := b.toFields("queue", "q1", 42, "skipped", "dangling")
	assert.Equal(t, "q1", fields["queue"])
	assert.Len(t, fields, 1)
}
