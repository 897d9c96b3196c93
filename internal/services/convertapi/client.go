package convertapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pdf2word/internal/services"
)

const (
	convertPath  = "/convert"
	downloadPath = "/download"
	healthPath   = "/health"
	cleanupPath  = "/cleanup"

	defaultTimeout = 2 * time.Minute

	// errorBodyLimit caps how much of an error response is read when looking
	// for a server-supplied message.
	errorBodyLimit = 64 << 10
)

// Result captures the fields of a successful conversion response that the
// client needs to download the document later.
type Result struct {
	FileID           string
	Filename         string
	OriginalFilename string
	FileSize         int64
}

// HealthStatus mirrors the service health probe response.
type HealthStatus struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	FilesTracked int    `json:"files_tracked"`
}

// CleanupResult mirrors the manual cleanup response.
type CleanupResult struct {
	Message        string `json:"message"`
	FilesRemaining int    `json:"files_remaining"`
}

// convertResponse models the full /convert reply.
type convertResponse struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	FileID           string `json:"file_id"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	FileSize         int64  `json:"file_size"`
	Error            string `json:"error"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Service defines the conversion backend operations used by the session.
type Service interface {
	Convert(ctx context.Context, filePath string) (*Result, error)
	Download(ctx context.Context, fileID, filename string, w io.Writer) (int64, error)
	Health(ctx context.Context) (*HealthStatus, error)
	Cleanup(ctx context.Context) (*CleanupResult, error)
}

// Client talks to the PDF-to-Word conversion service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a conversion service client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend base url required")
	}
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Convert uploads the file at filePath as the multipart "file" field and
// returns the parsed conversion result. Failures are tagged with the error
// taxonomy: transport failures, non-2xx replies, and explicit error bodies all
// come back as distinct wrapped errors carrying the server message when one
// was supplied.
func (c *Client) Convert(ctx context.Context, filePath string) (*Result, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "convertapi", "convert", "open source file", err)
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	field, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "convertapi", "convert", "create form field", err)
	}
	if _, err := io.Copy(field, file); err != nil {
		return nil, services.Wrap(services.ErrValidation, "convertapi", "convert", "read source file", err)
	}
	if err := writer.Close(); err != nil {
		return nil, services.Wrap(services.ErrValidation, "convertapi", "convert", "close multipart writer", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+convertPath, body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "convertapi", "convert", "build request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "convertapi", "convert", "", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "convertapi", "convert", "read response", err)
	}

	var parsed convertResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, services.Wrap(services.ErrServer, "convertapi", "convert", fmt.Sprintf("service returned %d", resp.StatusCode), nil)
		}
		return nil, services.Wrap(services.ErrServer, "convertapi", "convert", "decode response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !parsed.Success {
		message := strings.TrimSpace(parsed.Error)
		if message == "" {
			message = fmt.Sprintf("service returned %d", resp.StatusCode)
		}
		return nil, services.Wrap(services.ErrServer, "convertapi", "convert", message, nil)
	}

	if parsed.FileID == "" {
		return nil, services.Wrap(services.ErrServer, "convertapi", "convert", "response missing file_id", nil)
	}

	return &Result{
		FileID:           parsed.FileID,
		Filename:         parsed.Filename,
		OriginalFilename: parsed.OriginalFilename,
		FileSize:         parsed.FileSize,
	}, nil
}

// Download streams the converted document for fileID into w and returns the
// number of bytes written. A zero-byte body is reported as an empty payload
// error so callers never hand the user an empty document.
func (c *Client) Download(ctx context.Context, fileID, filename string, w io.Writer) (int64, error) {
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return 0, services.Wrap(services.ErrValidation, "convertapi", "download", "file id required", nil)
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return 0, services.Wrap(services.ErrValidation, "convertapi", "download", "filename required", nil)
	}

	endpoint := fmt.Sprintf("%s%s/%s/%s", c.baseURL, downloadPath, fileID, filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, services.Wrap(services.ErrTransport, "convertapi", "download", "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, services.Wrap(services.ErrTransport, "convertapi", "download", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, c.decodeError("download", resp)
	}

	written, err := io.Copy(w, resp.Body)
	if err != nil {
		return written, services.Wrap(services.ErrTransport, "convertapi", "download", "stream document", err)
	}
	if written == 0 {
		return 0, services.Wrap(services.ErrEmptyPayload, "convertapi", "download", "service returned an empty document", nil)
	}
	return written, nil
}

// Health probes the service health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "convertapi", "health", "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "convertapi", "health", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError("health", resp)
	}

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, services.Wrap(services.ErrServer, "convertapi", "health", "decode response", err)
	}
	return &status, nil
}

// Cleanup asks the service to purge converted files that are expired or
// already downloaded.
func (c *Client) Cleanup(ctx context.Context) (*CleanupResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+cleanupPath, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "convertapi", "cleanup", "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, "convertapi", "cleanup", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.decodeError("cleanup", resp)
	}

	var result CleanupResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, services.Wrap(services.ErrServer, "convertapi", "cleanup", "decode response", err)
	}
	return &result, nil
}

func (c *Client) decodeError(operation string, resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	var parsed errorResponse
	if err := json.Unmarshal(payload, &parsed); err == nil && strings.TrimSpace(parsed.Error) != "" {
		return services.Wrap(services.ErrServer, "convertapi", operation, strings.TrimSpace(parsed.Error), nil)
	}
	return services.Wrap(services.ErrServer, "convertapi", operation, fmt.Sprintf("service returned %d", resp.StatusCode), nil)
}
