package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/amggit2025/amg-realestate-sub000/internal/constants"
	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/contracts"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"
	"github.com/amggit2025/amg-realestate-sub000/pkg/rabbitmq/rabbitmq_common"
	"github.com/amggit2025/amg-realestate-sub000/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// SubmissionConsumerAdapter listens for submitted listings and sends notifications.
type SubmissionConsumerAdapter struct {
	consumer rabbitmq_consumer.Consumer
	useCase  usecases_port.NotifySubmissionUseCase
	logger   port.LoggerPort
}

func NewSubmissionConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.NotifySubmissionUseCase,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*SubmissionConsumerAdapter, error) {
	adapter := &SubmissionConsumerAdapter{
		useCase: useCase,
		logger:  logger,
	}

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_consumer", "consumer_tag": consumerCfg.ConsumerTag})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewDistributingConsumer(consumerCfg, adapter.handleMessage, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for submissions: %w", err)
	}
	adapter.consumer = consumer
	return adapter, nil
}

// handleMessage returns nil for contract violations: redelivering them cannot help.
func (a *SubmissionConsumerAdapter) handleMessage(d amqp.Delivery) error {
	traceID, _ := d.Headers["x-trace-id"].(string)
	if traceID == "" {
		traceID = uuid.New().String()
	}
	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"message_id":   d.MessageId,
		"adapter_name": "SubmissionConsumerAdapter",
	})

	ctx := contextkeys.ContextWithLogger(context.Background(), msgLogger)
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	eventType, _ := d.Headers[constants.HeaderEventType].(string)
	eventVersion, _ := d.Headers[constants.HeaderEventVersion].(string)
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Error("Message failed schema validation. Dropping.", err, port.Fields{
			"event_type":    eventType,
			"event_version": eventVersion,
		})
		return nil
	}

	var dto PropertySubmittedEventDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		msgLogger.Error("Failed to unmarshal submission event. Dropping.", err, nil)
		return nil
	}

	msgLogger = msgLogger.WithFields(port.Fields{"request_id": dto.RequestID})
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)

	if err := a.useCase.Execute(ctx, toDomainEvent(dto)); err != nil {
		msgLogger.Error("Notification failed, message will be retried.", err, nil)
		return err
	}
	return nil
}

func (a *SubmissionConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

func (a *SubmissionConsumerAdapter) Close() error {
	return a.consumer.Close()
}
