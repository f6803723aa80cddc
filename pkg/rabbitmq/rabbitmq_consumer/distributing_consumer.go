package rabbitmq_consumer

import (
	"context"
	"fmt"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler processes one delivery. A nil error acks it; an error sends it
// through the retry topology (or drops it when retries are disabled).
type MessageHandler func(delivery amqp.Delivery) error

type failureAction int

const (
	actionDrop failureAction = iota
	actionRetry
	actionDeadLetter
)

// failureActionFor decides what to do with a delivery whose handler failed.
func failureActionFor(retryEnabled bool, deaths int64, maxRetries int) failureAction {
	if !retryEnabled {
		return actionDrop
	}
	if deaths < int64(maxRetries) {
		return actionRetry
	}
	return actionDeadLetter
}

// DistributingConsumer runs every delivery in its own goroutine.
type DistributingConsumer struct {
	baseConsumer *baseConsumer
	handler      MessageHandler
}

// NewDistributingConsumer declares the topology and returns a consumer ready to start.
func NewDistributingConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*DistributingConsumer, error) {
	if handler == nil {
		return nil, fmt.Errorf("distributing Consumer: message handler is required")
	}

	bc, err := newBaseConsumer(cfg, connManager)
	if err != nil {
		return nil, fmt.Errorf("distributing Consumer: %w", err)
	}

	return &DistributingConsumer{
		baseConsumer: bc,
		handler:      handler,
	}, nil
}

// StartConsuming blocks until ctx is cancelled or the connection is closed.
func (c *DistributingConsumer) StartConsuming(ctx context.Context) error {
	bc := c.baseConsumer
	if bc.channel == nil || bc.connection == nil || bc.connection.IsClosed() {
		return fmt.Errorf("distributing Consumer: not connected")
	}

	msgs, err := bc.channel.Consume(
		bc.actualQueueName,
		bc.config.ConsumerTag,
		false, // auto-ack
		bc.config.ExclusiveConsumer,
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("distributing Consumer %s: failed to register a consumer on queue '%s': %w", bc.config.ConsumerTag, bc.actualQueueName, err)
	}

	bc.Logger.Info("[*] Waiting for messages on queue", "queue_name", bc.actualQueueName)

	go func() {
		for {
			// checked first so no new handler starts after cancellation
			select {
			case <-ctx.Done():
				bc.Logger.Info("Context cancelled for consumer. Exiting consumption loop.", "consumer_tag", bc.config.ConsumerTag)
				return
			default:
			}

			select {
			case <-ctx.Done():
				bc.Logger.Info("Context cancelled for consumer. Exiting consumption loop.", "consumer_tag", bc.config.ConsumerTag)
				return
			case d, ok := <-msgs:
				if !ok {
					bc.Logger.Info("Deliveries channel closed by RabbitMQ. Exiting loop.", "consumer_tag", bc.config.ConsumerTag)
					return
				}
				bc.wg.Add(1)
				go func(delivery amqp.Delivery) {
					defer bc.wg.Done()
					c.process(delivery)
				}(d)
			}
		}
	}()

	notifyClose := make(chan *amqp.Error, 1)
	bc.connection.NotifyClose(notifyClose)

	select {
	case <-ctx.Done():
		bc.Logger.Info("Context cancelled. Shutting down consumer.", "consumer_tag", bc.config.ConsumerTag)
		return nil
	case amqpErr := <-notifyClose:
		bc.Logger.Error(amqpErr, "Connection closed for consumer.", "consumer_tag", bc.config.ConsumerTag)
		if amqpErr == nil {
			return fmt.Errorf("distributing Consumer %s: connection closed", bc.config.ConsumerTag)
		}
		return amqpErr
	}
}

func (c *DistributingConsumer) process(delivery amqp.Delivery) {
	bc := c.baseConsumer
	bc.Logger.Debug("[->] Started processing message",
		"consumer_tag", bc.config.ConsumerTag,
		"delivery_tag", delivery.DeliveryTag)

	processErr := c.handler(delivery)
	if processErr == nil {
		_ = delivery.Ack(false)
		bc.Logger.Debug("[+] Message Ack'd",
			"consumer_tag", bc.config.ConsumerTag,
			"delivery_tag", delivery.DeliveryTag)
		return
	}

	bc.Logger.Error(processErr, "Handler error for message",
		"consumer_tag", bc.config.ConsumerTag,
		"delivery_tag", delivery.DeliveryTag)

	deaths := deathCount(delivery.Headers, bc.actualQueueName)
	switch failureActionFor(bc.config.EnableRetryMechanism, deaths, bc.config.MaxRetries) {
	case actionDrop:
		bc.Logger.Info("Retry disabled. Nacking message without requeue.", "consumer_tag", bc.config.ConsumerTag)
		_ = delivery.Nack(false, false)

	case actionRetry:
		bc.Logger.Info("Retrying message",
			"consumer_tag", bc.config.ConsumerTag,
			"delivery_tag", delivery.DeliveryTag,
			"death_count", deaths)
		_ = delivery.Nack(false, false)

	case actionDeadLetter:
		bc.Logger.Warn("Max retries reached for message. Publishing to final DLX.",
			"consumer_tag", bc.config.ConsumerTag,
			"delivery_tag", delivery.DeliveryTag)

		publishCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := bc.finalDlxPublisher.Publish(publishCtx, bc.config.FinalDLQRoutingKey, amqp.Publishing{
			ContentType:  delivery.ContentType,
			Body:         delivery.Body,
			Headers:      delivery.Headers,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		})
		if err != nil {
			bc.Logger.Error(err, "Failed to publish to final DLX. Nacking to trigger retry loop again.",
				"consumer_tag", bc.config.ConsumerTag,
				"delivery_tag", delivery.DeliveryTag)
			_ = delivery.Nack(false, false)
			return
		}
		_ = delivery.Ack(false)
	}
}

// Close waits for in-flight handlers and releases the channel.
func (c *DistributingConsumer) Close() error {
	c.baseConsumer.Logger.Info("Closing consumer")
	return c.baseConsumer.Close()
}
