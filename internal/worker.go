package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	aws_adapter "github.com/amggit2025/amg-realestate-sub000/internal/adapters/aws"
	rabbitmq_adapter "github.com/amggit2025/amg-realestate-sub000/internal/adapters/rabbitmq"
	"github.com/amggit2025/amg-realestate-sub000/internal/configs"
	"github.com/amggit2025/amg-realestate-sub000/internal/constants"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/usecase"
	"github.com/amggit2025/amg-realestate-sub000/internal/metrics"
	"github.com/amggit2025/amg-realestate-sub000/pkg/rabbitmq/rabbitmq_common"
	"github.com/amggit2025/amg-realestate-sub000/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/fluent/fluent-logger-golang/fluent"
)

const smsSenderID = "AMG"

// Worker consumes listing.submitted events and notifies the back office.
type Worker struct {
	config      *configs.AppConfig
	connManager *rabbitmq_common.ConnectionManager
	consumer    port.EventListenerPort

	logger       port.LoggerPort
	fluentClient *fluent.Fluent
}

func NewWorker() (*Worker, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}
	if err := appConfig.ValidateWorker(); err != nil {
		return nil, err
	}

	baseLogger, fluentClient, err := newBaseLogger(appConfig, "worker")
	if err != nil {
		return nil, err
	}

	w := &Worker{
		config:       appConfig,
		logger:       baseLogger.WithFields(port.Fields{"component": "worker"}),
		fluentClient: fluentClient,
	}
	if err := w.wire(baseLogger); err != nil {
		w.logger.Error("Failed to initialize worker", err, nil)
		w.close()
		return nil, err
	}
	return w, nil
}

func submissionConsumerConfig(url string) rabbitmq_consumer.ConsumerConfig {
	queue := constants.QueueListingSubmitted
	return rabbitmq_consumer.ConsumerConfig{
		Config:                 rabbitmq_common.Config{URL: url},
		QueueName:              queue,
		DeclareQueue:           true,
		DurableQueue:           true,
		ExchangeNameForBind:    constants.PortalExchange,
		DeclareExchangeForBind: true,
		ExchangeTypeForBind:    constants.PortalExchangeType,
		DurableExchangeForBind: true,
		RoutingKeyForBind:      constants.RoutingKeyListingSubmitted,
		PrefetchCount:          1,
		ConsumerTag:            "notification_worker_submissions",
		EnableRetryMechanism:   true,
		RetryExchange:          queue + "_retry_ex",
		RetryQueue:             queue + "_retry_wait_10s",
		RetryTTL:               10000,
		FinalDLXExchange:       constants.FinalDLXExchange,
		FinalDLQ:               constants.FinalDLQ,
		FinalDLQRoutingKey:     constants.FinalDLQRoutingKey,
		MaxRetries:             3,
	}
}

func (w *Worker) wire(baseLogger port.LoggerPort) error {
	cfg := w.config

	connManager, err := rabbitmq_common.NewConnectionManager(cfg.RabbitMQ.URL,
		rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"})))
	if err != nil {
		return fmt.Errorf("failed to create connection manager: %w", err)
	}
	w.connManager = connManager

	sesClient, snsClient, err := aws_adapter.NewClients(context.Background(), cfg.Notify.AWSRegion)
	if err != nil {
		return err
	}
	emailSender, err := aws_adapter.NewSESEmailSender(sesClient, cfg.Notify.FromEmail)
	if err != nil {
		return err
	}
	smsSender, err := aws_adapter.NewSNSSMSSender(snsClient, smsSenderID)
	if err != nil {
		return err
	}

	notifyUC := usecase.NewNotifySubmissionUseCase(emailSender, smsSender, metrics.NewRecorder(), usecase.NotifyConfig{
		AdminEmail: cfg.Notify.AdminEmail,
		AdminPhone: cfg.Notify.AdminPhone,
	})

	consumer, err := rabbitmq_adapter.NewSubmissionConsumerAdapter(
		submissionConsumerConfig(cfg.RabbitMQ.URL),
		notifyUC,
		baseLogger.WithFields(port.Fields{"component": "submission_consumer"}),
		connManager,
	)
	if err != nil {
		return err
	}
	w.consumer = consumer
	w.logger.Info("Submission consumer configured.", port.Fields{"queue": constants.QueueListingSubmitted})
	return nil
}

func (w *Worker) Run() error {
	defer w.close()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.consumer.Start(appCtx); err != nil {
		return fmt.Errorf("failed to start submission consumer: %w", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	w.logger.Info("Worker running. Waiting for signals...", nil)
	receivedSignal := <-quit
	w.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	cancel()
	return nil
}

// close waits for in-flight deliveries through consumer.Close.
func (w *Worker) close() {
	if w.consumer != nil {
		if err := w.consumer.Close(); err != nil {
			w.logger.Error("Error closing submission consumer", err, nil)
		}
	}
	if w.connManager != nil {
		if err := w.connManager.Close(); err != nil {
			w.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	w.logger.Info("Worker shut down gracefully.", nil)
	if w.fluentClient != nil {
		if err := w.fluentClient.Close(); err != nil {
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
		w.fluentClient = nil
	}
}
