package logger_adapter

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// FluentPoster is the part of *fluent.Fluent the adapter needs.
type FluentPoster interface {
	Post(tag string, message interface{}) error
	Close() error
}

var _ FluentPoster = (*fluent.Fluent)(nil)

// FluentLoggerAdapter ships entries to Fluent Bit tagged <prefix>.<level>.
type FluentLoggerAdapter struct {
	client    FluentPoster
	tagPrefix string
	fields    port.Fields
	minLevel  slog.Level
}

func NewFluentLoggerAdapter(client FluentPoster, tagPrefix string, minLevel slog.Leveler) (*FluentLoggerAdapter, error) {
	if client == nil {
		return nil, fmt.Errorf("fluent client cannot be nil")
	}

	level := slog.LevelInfo
	if minLevel != nil {
		level = minLevel.Level()
	}

	return &FluentLoggerAdapter{
		client:    client,
		tagPrefix: tagPrefix,
		fields:    make(port.Fields),
		minLevel:  level,
	}, nil
}

func (a *FluentLoggerAdapter) mergeFields(fields port.Fields) port.Fields {
	merged := make(port.Fields, len(a.fields)+len(fields))
	for k, v := range a.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

func (a *FluentLoggerAdapter) post(level slog.Level, name string, msg string, fields port.Fields) {
	if a.minLevel > level {
		return
	}
	data := a.mergeFields(fields)
	data["level"] = name
	data["message"] = msg
	data["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)

	tag := name
	if a.tagPrefix != "" {
		tag = a.tagPrefix + "." + name
	}

	// a logging failure must never fail the caller
	_ = a.client.Post(tag, map[string]interface{}(data))
}

func (a *FluentLoggerAdapter) Info(msg string, fields port.Fields) {
	a.post(slog.LevelInfo, "info", msg, fields)
}

func (a *FluentLoggerAdapter) Warn(msg string, fields port.Fields) {
	a.post(slog.LevelWarn, "warn", msg, fields)
}

func (a *FluentLoggerAdapter) Error(msg string, err error, fields port.Fields) {
	if err != nil {
		fields = a.withError(fields, err)
	}
	a.post(slog.LevelError, "error", msg, fields)
}

func (a *FluentLoggerAdapter) Debug(msg string, fields port.Fields) {
	a.post(slog.LevelDebug, "debug", msg, fields)
}

func (a *FluentLoggerAdapter) withError(fields port.Fields, err error) port.Fields {
	out := make(port.Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["error"] = err.Error()
	return out
}

func (a *FluentLoggerAdapter) WithFields(fields port.Fields) port.LoggerPort {
	return &FluentLoggerAdapter{
		client:    a.client,
		tagPrefix: a.tagPrefix,
		fields:    a.mergeFields(fields),
		minLevel:  a.minLevel,
	}
}

func (a *FluentLoggerAdapter) Close() error {
	return a.client.Close()
}
