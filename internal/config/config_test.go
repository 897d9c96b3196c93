package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pdf2word/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, path, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if path == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Backend.URL != "http://127.0.0.1:5000" {
		t.Fatalf("unexpected default backend url: %q", cfg.Backend.URL)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[backend]
url = "https://convert.example.com/"
convert_timeout = 30

[paths]
download_dir = "` + dir + `/out"
data_dir = "` + dir + `/data"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists=true")
	}
	if cfg.Backend.URL != "https://convert.example.com" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.Backend.URL)
	}
	if cfg.ConvertTimeout() != 30*time.Second {
		t.Fatalf("convert timeout = %v", cfg.ConvertTimeout())
	}
	if cfg.DownloadTimeout() != 60*time.Second {
		t.Fatalf("download timeout default = %v", cfg.DownloadTimeout())
	}
	if !filepath.IsAbs(cfg.Paths.DownloadDir) {
		t.Fatalf("download dir not absolute: %q", cfg.Paths.DownloadDir)
	}
}

func TestLoadRejectsBadBackendURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[backend]\nurl = \"ftp://example.com\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for non-http scheme")
	} else if !strings.Contains(err.Error(), "http") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateRejectsEmptyDownloadDir(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DownloadDir = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty download dir")
	}
}

func TestValidateRejectsUnknownLogFormat(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log format")
	}
}

func TestEnsureDirectoriesAndDerivedPaths(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Paths.DownloadDir = filepath.Join(dir, "out")
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, p := range []string{cfg.Paths.DownloadDir, cfg.Paths.DataDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			t.Fatalf("directory %q not created (err=%v)", p, err)
		}
	}
	if got := cfg.HistoryDBPath(); got != filepath.Join(cfg.Paths.DataDir, "history.db") {
		t.Fatalf("HistoryDBPath = %q", got)
	}
	if got := cfg.LockFilePath(); got != filepath.Join(cfg.Paths.DataDir, "convert.lock") {
		t.Fatalf("LockFilePath = %q", got)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Backend.URL == "" {
		t.Fatal("sample config missing backend url")
	}
}
