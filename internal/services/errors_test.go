package services_test

import (
	"errors"
	"testing"

	"pdf2word/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "convert", "validate", "Please select a PDF file", nil)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if errors.Is(err, services.ErrTransport) {
		t.Fatalf("unexpected transport marker on %v", err)
	}
}

func TestWrapIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := services.Wrap(services.ErrTransport, "convert", "upload", "", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

func TestWrapNilMarkerDefaultsToServer(t *testing.T) {
	err := services.Wrap(nil, "convert", "upload", "boom", nil)
	if !errors.Is(err, services.ErrServer) {
		t.Fatalf("expected server marker fallback, got %v", err)
	}
}

func TestUserMessageStripsMarker(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "", "", "File is empty", nil)
	if got := services.UserMessage(err); got != "File is empty" {
		t.Fatalf("UserMessage = %q", got)
	}
}

func TestUserMessageFallback(t *testing.T) {
	if got := services.UserMessage(errors.New("")); got != "Conversion service request failed" {
		t.Fatalf("UserMessage fallback = %q", got)
	}
	if got := services.UserMessage(nil); got != "" {
		t.Fatalf("UserMessage(nil) = %q", got)
	}
}
