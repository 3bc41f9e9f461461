package logger

// NoOpLogger is a logger that does nothing.
type NoOpLogger struct{}

// NewNoOp creates a new no-op logger instance.
func NewNoOp() Interface {
	return &NoOpLogger{}
}

// Debug does nothing.
func (l *NoOpLogger) Debug(string, ...any) {}

// Info does nothing.
func (l *NoOpLogger) Info(string, ...any) {}

// Warn does nothing.
func (l *NoOpLogger) Warn(string, ...any) {}

// Error does nothing.
func (l *NoOpLogger) Error(string, ...any) {}

// Fatal does nothing.
func (l *NoOpLogger) Fatal(string, ...any) {}

// With returns the same no-op logger.
func (l *NoOpLogger) With(...any) Interface { return l }

// WithError returns the same no-op logger.
func (l *NoOpLogger) WithError(error) Interface { return l }

// WithComponent returns the same no-op logger.
func (l *NoOpLogger) WithComponent(string) Interface { return l }

// WithRunID returns the same no-op logger.
func (l *NoOpLogger) WithRunID(string) Interface { return l }

// Sync does nothing.
func (l *NoOpLogger) Sync() error { return nil }
