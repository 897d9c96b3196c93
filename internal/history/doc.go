// Package history persists conversion attempts in SQLite so results can be
// listed and re-downloaded after the process exits. Each row tracks one
// upload through uploading, converted, downloaded, or failed.
package history
