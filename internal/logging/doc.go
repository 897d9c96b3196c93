// Package logging builds slog loggers from application configuration and
// defines the standardized attribute keys used across the client.
package logging
