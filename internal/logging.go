package internal

import (
	"fmt"

	logger_adapter "github.com/amggit2025/amg-realestate-sub000/internal/adapters/logger"
	"github.com/amggit2025/amg-realestate-sub000/internal/configs"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	fluentlogger "github.com/amggit2025/amg-realestate-sub000/pkg/fluent_logger"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// newBaseLogger builds the stdout logger and, when enabled, the Fluent Bit
// logger behind one multi-logger. The fluent client is returned so the
// caller can close it last.
func newBaseLogger(cfg *configs.AppConfig, process string) (port.LoggerPort, *fluent.Fluent, error) {
	activeLoggers := []port.LoggerPort{
		logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
			Level:    logger_adapter.ParseLevel(cfg.StdoutLogger.Level),
			UseColor: true,
		}),
	}

	var fluentClient *fluent.Fluent
	if cfg.FluentBit.Enabled {
		var err error
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
			Async:     true,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, cfg.AppName+"."+process, logger_adapter.ParseLevel(cfg.FluentBit.Level))
		if err != nil {
			fluentClient.Close()
			return nil, nil, fmt.Errorf("failed to create fluentbit adapter: %w", err)
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		if fluentClient != nil {
			fluentClient.Close()
		}
		return nil, nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": cfg.AppName,
		"process":      process,
	})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers),
		"fluent_enabled": cfg.FluentBit.Enabled,
	})
	return baseLogger, fluentClient, nil
}
