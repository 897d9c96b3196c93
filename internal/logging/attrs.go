package logging

import "log/slog"

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldCorrelationID is the standardized structured logging key for conversion correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldFileID is the standardized structured logging key for server-assigned file identifiers.
	FieldFileID = "file_id"
	// FieldPhase is the standardized structured logging key for session phase names.
	FieldPhase = "phase"
)

// WithComponent returns a logger tagged with a component name.
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(slog.String(FieldComponent, component))
}

// Error wraps an error into a standard slog attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}
