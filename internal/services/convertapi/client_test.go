package convertapi_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pdf2word/internal/services"
	"pdf2word/internal/services/convertapi"
)

func writeTempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 fake body"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := convertapi.New("  "); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestConvertSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/convert" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing multipart file field: %v", err)
		}
		defer file.Close()
		if header.Filename != "report.pdf" {
			t.Fatalf("unexpected upload filename %q", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "File converted successfully",
			"file_id": "abc-123",
			"filename": "abc-123_report.docx",
			"original_filename": "report.pdf",
			"file_size": 2048
		}`))
	}))
	t.Cleanup(server.Close)

	client, err := convertapi.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := client.Convert(context.Background(), writeTempPDF(t))
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if result.FileID != "abc-123" || result.Filename != "abc-123_report.docx" || result.OriginalFilename != "report.pdf" {
		t.Fatalf("unexpected result: %#v", result)
	}
	if result.FileSize != 2048 {
		t.Fatalf("unexpected file size %d", result.FileSize)
	}
}

func TestConvertServerErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Failed to convert PDF file. The file might be corrupted or protected."}`))
	}))
	t.Cleanup(server.Close)

	client, err := convertapi.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Convert(context.Background(), writeTempPDF(t))
	if !errors.Is(err, services.ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if !strings.Contains(err.Error(), "corrupted or protected") {
		t.Fatalf("server message not preserved: %v", err)
	}
}

func TestConvertExplicitFailureBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": false, "error": "Only PDF files are allowed"}`))
	}))
	t.Cleanup(server.Close)

	client, err := convertapi.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Convert(context.Background(), writeTempPDF(t))
	if !errors.Is(err, services.ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if !strings.Contains(err.Error(), "Only PDF files are allowed") {
		t.Fatalf("server message not preserved: %v", err)
	}
}

func TestConvertTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // unreachable on purpose

	client, err := convertapi.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	_, err = client.Convert(context.Background(), writeTempPDF(t))
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestDownloadSuccess(t *testing.T) {
	payload := []byte("PK\x03\x04 docx bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download/abc-123/abc-123_report.docx" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)

	client, err := convertapi.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var buf bytes.Buffer
	n, err := client.Download(context.Background(), "abc-123", "abc-123_report.docx", &buf)
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if n != int64(len(payload)) || !bytes.Equal(buf.Bytes(), payload) {
		t.Fatalf("downloaded %d bytes, content mismatch", n)
	}
}

func TestDownloadEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client, err := convertapi.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var buf bytes.Buffer
	if _, err := client.Download(context.Background(), "abc-123", "report.docx", &buf); !errors.Is(err, services.ErrEmptyPayload) {
		t.Fatalf("expected empty payload error, got %v", err)
	}
}

func TestDownloadNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "File not found"}`))
	}))
	t.Cleanup(server.Close)

	client, err := convertapi.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var buf bytes.Buffer
	_, err = client.Download(context.Background(), "abc-123", "report.docx", &buf)
	if !errors.Is(err, services.ErrServer) {
		t.Fatalf("expected server error, got %v", err)
	}
	if !strings.Contains(err.Error(), "File not found") {
		t.Fatalf("server message not preserved: %v", err)
	}
}

func TestDownloadRequiresIdentifiers(t *testing.T) {
	client, err := convertapi.New("http://example.com")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	var buf bytes.Buffer
	if _, err := client.Download(context.Background(), "", "name.docx", &buf); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty file id, got %v", err)
	}
	if _, err := client.Download(context.Background(), "abc", "", &buf); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty filename, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "healthy", "timestamp": "2026-01-02T03:04:05", "files_tracked": 3}`))
	}))
	t.Cleanup(server.Close)

	client, err := convertapi.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	status, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health returned error: %v", err)
	}
	if status.Status != "healthy" || status.FilesTracked != 3 {
		t.Fatalf("unexpected health payload: %#v", status)
	}
}

func TestCleanup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/cleanup" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "Cleaned up 4 files", "files_remaining": 1}`))
	}))
	t.Cleanup(server.Close)

	client, err := convertapi.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	result, err := client.Cleanup(context.Background())
	if err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}
	if result.FilesRemaining != 1 || !strings.Contains(result.Message, "4 files") {
		t.Fatalf("unexpected cleanup payload: %#v", result)
	}
}
