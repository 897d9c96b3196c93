package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrTransport     = errors.New("transport error")
	ErrServer        = errors.New("server error")
	ErrEmptyPayload  = errors.New("empty payload")
	ErrConfiguration = errors.New("configuration error")
)

// serviceError carries the full diagnostic detail for logs while keeping the
// user-facing message retrievable on its own.
type serviceError struct {
	marker  error
	detail  string
	message string
	cause   error
}

func (e *serviceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.marker, e.detail, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.marker, e.detail)
}

func (e *serviceError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.marker, e.cause}
	}
	return []error{e.marker}
}

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above. The message, when present, is what
// UserMessage surfaces to the user.
func Wrap(marker error, component, operation, message string, err error) error {
	if marker == nil {
		marker = ErrServer
	}
	return &serviceError{
		marker:  marker,
		detail:  buildDetail(component, operation, message),
		message: strings.TrimSpace(message),
		cause:   err,
	}
}

// UserMessage extracts the user-facing message from a wrapped error. Errors
// without one collapse to a generic message rather than leaking diagnostics.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var svcErr *serviceError
	if errors.As(err, &svcErr) && svcErr.message != "" {
		return svcErr.message
	}
	return "Conversion service request failed"
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
