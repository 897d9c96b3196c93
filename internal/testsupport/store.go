package testsupport

import (
	"context"
	"testing"

	"pdf2word/internal/config"
	"pdf2word/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewConversion inserts a conversion row for tests using the provided store.
func NewConversion(t testing.TB, store *history.Store, sourcePath, originalFilename string) *history.Item {
	t.Helper()

	item, err := store.NewConversion(context.Background(), sourcePath, originalFilename)
	if err != nil {
		t.Fatalf("store.NewConversion: %v", err)
	}
	return item
}
