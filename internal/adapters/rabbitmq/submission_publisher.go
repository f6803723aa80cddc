package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/constants"
	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/contracts"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessagePublisher is satisfied by rabbitmq_producer.Publisher.
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// SubmissionEventsAdapter publishes listing submission events.
type SubmissionEventsAdapter struct {
	producer   MessagePublisher
	routingKey string
	timeout    time.Duration
}

func NewSubmissionEventsAdapter(producer MessagePublisher, routingKey string) (*SubmissionEventsAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("routingKey cannot be empty")
	}
	return &SubmissionEventsAdapter{producer: producer, routingKey: routingKey, timeout: 10 * time.Second}, nil
}

// buildSubmittedMessage encodes the event and refuses bodies that break the contract.
func buildSubmittedMessage(ctx context.Context, event domain.PropertySubmittedEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(toEventDTO(event))
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal submission event: %w", err)
	}
	if err := contracts.ValidateEvent(constants.EventTypePropertySubmitted, constants.EventVersionPropertySubmitted, body); err != nil {
		return amqp.Publishing{}, fmt.Errorf("submission event violates its contract: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID.String(),
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			constants.HeaderEventType:    constants.EventTypePropertySubmitted,
			constants.HeaderEventVersion: constants.EventVersionPropertySubmitted,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}
	return msg, nil
}

func (a *SubmissionEventsAdapter) PublishPropertySubmitted(ctx context.Context, event domain.PropertySubmittedEvent) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "SubmissionEventsAdapter",
		"routing_key": a.routingKey,
		"request_id":  event.RequestID,
	})

	msg, err := buildSubmittedMessage(ctx, event)
	if err != nil {
		adapterLogger.Error("Refusing to publish submission event", err, nil)
		return err
	}

	publishCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish submission event", err, nil)
		return err
	}

	adapterLogger.Info("Submission event published", port.Fields{"event_id": event.EventID})
	return nil
}
