package rabbitmq_consumer

import (
	"fmt"
	"sync"

	"github.com/amggit2025/amg-realestate-sub000/pkg/rabbitmq/rabbitmq_common"
	"github.com/amggit2025/amg-realestate-sub000/pkg/rabbitmq/rabbitmq_producer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// baseConsumer holds the channel, QoS and topology shared by consumer flavours.
type baseConsumer struct {
	config            ConsumerConfig
	connection        *amqp.Connection
	channel           *amqp.Channel
	actualQueueName   string // server-generated when QueueName is empty
	finalDlxPublisher *rabbitmq_producer.Publisher
	wg                sync.WaitGroup

	Logger rabbitmq_common.Logger
}

// ConsumerConfig configures a consumer and the topology it declares.
type ConsumerConfig struct {
	rabbitmq_common.Config

	QueueName       string
	DeclareQueue    bool
	DurableQueue    bool
	ExclusiveQueue  bool
	AutoDeleteQueue bool
	QueueArgs       amqp.Table

	ExchangeNameForBind    string // no binding when empty
	DeclareExchangeForBind bool
	ExchangeTypeForBind    string
	DurableExchangeForBind bool
	ExchangeArgsForBind    amqp.Table

	RoutingKeyForBind string
	BindingArgs       amqp.Table

	PrefetchCount int
	PrefetchSize  int
	QosGlobal     bool

	ConsumerTag       string
	ExclusiveConsumer bool

	// Retry topology: main queue dead-letters into RetryExchange, the wait
	// queue holds the message for RetryTTL ms and dead-letters it back into
	// ExchangeNameForBind. After MaxRetries the message goes to FinalDLQ.
	EnableRetryMechanism bool
	RetryExchange        string
	RetryQueue           string
	RetryTTL             int
	FinalDLXExchange     string
	FinalDLQ             string
	FinalDLQRoutingKey   string
	MaxRetries           int

	Logger rabbitmq_common.Logger
}

func (cfg ConsumerConfig) validate() error {
	if err := cfg.Config.Validate(); err != nil {
		return fmt.Errorf("invalid base config: %w", err)
	}
	if !cfg.DeclareQueue && cfg.QueueName == "" {
		return fmt.Errorf("queue name is required if DeclareQueue is false")
	}
	if cfg.ExchangeNameForBind != "" && cfg.ExchangeTypeForBind == "" && cfg.DeclareExchangeForBind {
		return fmt.Errorf("exchange type is required if declaring an exchange for binding")
	}
	if cfg.EnableRetryMechanism {
		if cfg.RetryExchange == "" || cfg.RetryQueue == "" || cfg.FinalDLXExchange == "" || cfg.FinalDLQ == "" {
			return fmt.Errorf("retry mechanism requires RetryExchange, RetryQueue, FinalDLXExchange and FinalDLQ")
		}
		if cfg.RetryTTL <= 0 {
			return fmt.Errorf("retry mechanism requires a positive RetryTTL")
		}
	}
	return nil
}

func newBaseConsumer(cfg ConsumerConfig, connManager *rabbitmq_common.ConnectionManager) (*baseConsumer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("base Consumer: %w", err)
	}

	c := &baseConsumer{
		config: cfg,
		Logger: logger,
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("base Consumer: failed to get channel from manager: %w", err)
	}
	c.connection = conn
	c.channel = ch
	c.Logger.Debug("Channel obtained from ConnectionManager")

	if err := c.setupTopology(); err != nil {
		_ = c.channel.Close()
		return nil, fmt.Errorf("base Consumer: initial setup failed: %w", err)
	}

	if cfg.EnableRetryMechanism {
		dlxPublisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			Config:       cfg.Config,
			ExchangeName: cfg.FinalDLXExchange,
			Logger:       logger,
		}, connManager)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("base Consumer: failed to create final DLX publisher: %w", err)
		}
		c.finalDlxPublisher = dlxPublisher
	}

	return c, nil
}

// setupTopology applies QoS and declares queues, exchanges and bindings.
func (c *baseConsumer) setupTopology() error {
	if c.config.PrefetchCount > 0 || c.config.PrefetchSize > 0 {
		c.Logger.Debug("Setting QoS",
			"prefetch_count", c.config.PrefetchCount,
			"prefetch_size", c.config.PrefetchSize,
			"global", c.config.QosGlobal,
		)
		if err := c.channel.Qos(c.config.PrefetchCount, c.config.PrefetchSize, c.config.QosGlobal); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	if c.config.EnableRetryMechanism {
		if c.config.QueueArgs == nil {
			c.config.QueueArgs = amqp.Table{}
		}
		c.config.QueueArgs["x-dead-letter-exchange"] = c.config.RetryExchange
	}

	c.actualQueueName = c.config.QueueName
	if c.config.DeclareQueue {
		c.Logger.Debug("Declaring queue",
			"name", c.config.QueueName,
			"durable", c.config.DurableQueue,
			"exclusive", c.config.ExclusiveQueue,
			"autoDelete", c.config.AutoDeleteQueue,
		)
		q, err := c.channel.QueueDeclare(
			c.config.QueueName,
			c.config.DurableQueue,
			c.config.AutoDeleteQueue,
			c.config.ExclusiveQueue,
			false, // no-wait
			c.config.QueueArgs,
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue '%s': %w", c.config.QueueName, err)
		}
		c.actualQueueName = q.Name
	}

	if c.config.DeclareExchangeForBind {
		c.Logger.Debug("Declaring exchange",
			"name", c.config.ExchangeNameForBind,
			"type", c.config.ExchangeTypeForBind,
			"durable", c.config.DurableExchangeForBind,
		)
		err := c.channel.ExchangeDeclare(
			c.config.ExchangeNameForBind,
			c.config.ExchangeTypeForBind,
			c.config.DurableExchangeForBind,
			false, // auto-deleted
			false, // internal
			false, // no-wait
			c.config.ExchangeArgsForBind,
		)
		if err != nil {
			return fmt.Errorf("failed to declare exchange '%s' for binding: %w", c.config.ExchangeNameForBind, err)
		}
	}

	if c.config.ExchangeNameForBind != "" {
		c.Logger.Debug("Binding queue to exchange",
			"queue_name", c.actualQueueName,
			"exchange_name", c.config.ExchangeNameForBind,
			"routing_key", c.config.RoutingKeyForBind,
		)
		err := c.channel.QueueBind(
			c.actualQueueName,
			c.config.RoutingKeyForBind,
			c.config.ExchangeNameForBind,
			false, // noWait
			c.config.BindingArgs,
		)
		if err != nil {
			return fmt.Errorf("failed to bind queue '%s' to exchange '%s': %w", c.actualQueueName, c.config.ExchangeNameForBind, err)
		}
	}

	if c.config.EnableRetryMechanism {
		if err := c.setupRetryTopology(); err != nil {
			return err
		}
	}

	c.Logger.Debug("Setup complete", "queue", c.actualQueueName)
	return nil
}

func (c *baseConsumer) setupRetryTopology() error {
	c.Logger.Debug("Declaring final DLX", "name", c.config.FinalDLXExchange)
	if err := c.channel.ExchangeDeclare(c.config.FinalDLXExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare final DLX: %w", err)
	}

	c.Logger.Debug("Declaring final DLQ", "name", c.config.FinalDLQ)
	if _, err := c.channel.QueueDeclare(c.config.FinalDLQ, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare final DLQ: %w", err)
	}

	if err := c.channel.QueueBind(c.config.FinalDLQ, c.config.FinalDLQRoutingKey, c.config.FinalDLXExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind final DLQ: %w", err)
	}

	c.Logger.Debug("Declaring retry exchange", "name", c.config.RetryExchange)
	if err := c.channel.ExchangeDeclare(c.config.RetryExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare retry exchange: %w", err)
	}

	c.Logger.Debug("Declaring retry-wait queue with TTL",
		"name", c.config.RetryQueue,
		"ttl", c.config.RetryTTL,
	)
	waitArgs := amqp.Table{
		"x-message-ttl":             int32(c.config.RetryTTL),
		"x-dead-letter-exchange":    c.config.ExchangeNameForBind,
		"x-dead-letter-routing-key": c.config.RoutingKeyForBind,
	}
	if _, err := c.channel.QueueDeclare(c.config.RetryQueue, true, false, false, false, waitArgs); err != nil {
		return fmt.Errorf("failed to declare retry-wait queue: %w", err)
	}

	if err := c.channel.QueueBind(c.config.RetryQueue, "", c.config.RetryExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind retry-wait queue: %w", err)
	}
	return nil
}

// deathCount reads x-death and returns how many times the delivery died in queueName.
func deathCount(headers amqp.Table, queueName string) int64 {
	if headers == nil {
		return 0
	}
	deaths, ok := headers["x-death"].([]interface{})
	if !ok {
		return 0
	}
	for _, death := range deaths {
		tbl, ok := death.(amqp.Table)
		if !ok {
			continue
		}
		if queue, ok := tbl["queue"].(string); ok && queue == queueName {
			if count, ok := tbl["count"].(int64); ok {
				return count
			}
		}
	}
	return 0
}

// Close waits for in-flight handlers and closes the channel.
func (c *baseConsumer) Close() error {
	c.Logger.Debug("Waiting for message handlers to finish...")
	c.wg.Wait()
	c.Logger.Debug("All message handlers finished")

	var firstErr error
	if c.finalDlxPublisher != nil {
		if err := c.finalDlxPublisher.Close(); err != nil {
			c.Logger.Error(err, "Error closing final DLX publisher")
			firstErr = err
		}
	}

	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.Logger.Error(err, "Error closing channel")
			if firstErr == nil {
				firstErr = err
			}
		}
		c.channel = nil
	}

	c.Logger.Info("Consumer closed")
	return firstErr
}
