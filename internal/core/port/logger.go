package port

// Fields carries structured log data.
type Fields map[string]interface{}

// LoggerPort abstracts the core from the logging backend.
type LoggerPort interface {
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	// Error logs msg together with err.
	Error(msg string, err error, fields Fields)
	Debug(msg string, fields Fields)

	// WithFields returns a child logger carrying fields on every entry.
	WithFields(fields Fields) LoggerPort
}
