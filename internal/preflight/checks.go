package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"pdf2word/internal/config"
	"pdf2word/internal/services/convertapi"
)

// CheckBackend verifies that the conversion service answers its health probe.
func CheckBackend(ctx context.Context, cfg *config.Config, backend convertapi.Service) Result {
	const name = "Conversion service"

	checkCtx, cancel := context.WithTimeout(ctx, cfg.HealthTimeout())
	defer cancel()

	status, err := backend.Health(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeBackendError(err)}
	}
	detail := fmt.Sprintf("%s (%d files tracked)", status.Status, status.FilesTracked)
	if !strings.EqualFold(status.Status, "healthy") {
		return Result{Name: name, Detail: detail}
	}
	return Result{Name: name, Passed: true, Detail: detail}
}

// CheckDirectoryAccess verifies that the directory exists (or can be created)
// and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(path, 0o755); mkErr != nil {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create: %v)", path, mkErr)}
			}
			return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (created)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// summarizeBackendError produces a human-readable summary for backend probe failures.
func summarizeBackendError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (service unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (service unreachable)"
	}
	return err.Error()
}
