package conversion_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdf2word/internal/conversion"
	"pdf2word/internal/services"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateAcceptsPDF(t *testing.T) {
	path := writeFile(t, "report.pdf", []byte("%PDF-1.7 content"))
	if err := conversion.ValidateFile(path); err != nil {
		t.Fatalf("ValidateFile returned error: %v", err)
	}
}

func TestValidateRejectsWrongExtension(t *testing.T) {
	path := writeFile(t, "report.txt", []byte("%PDF-1.7 content"))
	err := conversion.ValidateFile(path)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), conversion.MsgNotPDF) {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestValidateRejectsWrongMagic(t *testing.T) {
	path := writeFile(t, "report.pdf", []byte("not a pdf at all"))
	err := conversion.ValidateFile(path)
	if !errors.Is(err, services.ErrValidation) || !strings.Contains(err.Error(), conversion.MsgNotPDF) {
		t.Fatalf("expected not-a-PDF validation error, got %v", err)
	}
}

func TestValidateRejectsEmptyFile(t *testing.T) {
	path := writeFile(t, "report.pdf", nil)
	err := conversion.ValidateFile(path)
	if !errors.Is(err, services.ErrValidation) || !strings.Contains(err.Error(), conversion.MsgEmptyFile) {
		t.Fatalf("expected empty-file validation error, got %v", err)
	}
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	content := append([]byte("%PDF-"), bytes.Repeat([]byte{'a'}, conversion.MaxFileSize)...)
	path := writeFile(t, "report.pdf", content)
	err := conversion.ValidateFile(path)
	if !errors.Is(err, services.ErrValidation) || !strings.Contains(err.Error(), conversion.MsgTooLarge) {
		t.Fatalf("expected size validation error, got %v", err)
	}
}

func TestValidateRejectsMissingFile(t *testing.T) {
	err := conversion.ValidateFile(filepath.Join(t.TempDir(), "missing.pdf"))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateExtensionCaseInsensitive(t *testing.T) {
	path := writeFile(t, "REPORT.PDF", []byte("%PDF-1.4 body"))
	if err := conversion.ValidateFile(path); err != nil {
		t.Fatalf("uppercase extension rejected: %v", err)
	}
}
