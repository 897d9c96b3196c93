package preflight

import (
	"context"

	"pdf2word/internal/config"
	"pdf2word/internal/services/convertapi"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config: download and
// data directory access plus backend reachability.
func RunAll(ctx context.Context, cfg *config.Config, backend convertapi.Service) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Download directory", cfg.Paths.DownloadDir),
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
	}

	if backend != nil {
		results = append(results, CheckBackend(ctx, cfg, backend))
	}

	return results
}

// AllPassed reports whether every check succeeded.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
