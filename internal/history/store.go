package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"pdf2word/internal/config"
	"pdf2word/internal/services/convertapi"
	"pdf2word/internal/textutil"
)

const itemColumns = `id, correlation_id, source_path, display_title, original_filename,
	file_id, converted_filename, file_size, output_path, status, error_message,
	created_at, updated_at`

// Store manages conversion history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and verifies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// NewConversion inserts a row for an upload that is about to start.
func (s *Store) NewConversion(ctx context.Context, sourcePath, originalFilename string) (*Item, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO conversions (
            correlation_id, source_path, display_title, original_filename,
            status, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		sourcePath,
		textutil.DisplayTitle(sourcePath),
		originalFilename,
		StatusUploading,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert conversion: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

// MarkConverted records a successful conversion response.
func (s *Store) MarkConverted(ctx context.Context, id int64, result *convertapi.Result) (*Item, error) {
	if result == nil {
		return nil, errors.New("conversion result required")
	}
	if err := s.transition(ctx, id, StatusConverted, func(item *Item) {
		item.FileID = result.FileID
		item.ConvertedFilename = result.Filename
		item.OriginalFilename = result.OriginalFilename
		item.FileSize = result.FileSize
		item.ErrorMessage = ""
	}); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// MarkFailed records a conversion or download failure.
func (s *Store) MarkFailed(ctx context.Context, id int64, message string) (*Item, error) {
	if err := s.transition(ctx, id, StatusFailed, func(item *Item) {
		item.ErrorMessage = message
	}); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// MarkDownloaded records where the converted document was saved.
func (s *Store) MarkDownloaded(ctx context.Context, id int64, outputPath string) (*Item, error) {
	if err := s.transition(ctx, id, StatusDownloaded, func(item *Item) {
		item.OutputPath = outputPath
		item.ErrorMessage = ""
	}); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *Store) transition(ctx context.Context, id int64, to Status, apply func(*Item)) error {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return fmt.Errorf("conversion %d not found", id)
	}
	if !CanTransition(item.Status, to) {
		return fmt.Errorf("invalid status transition %s -> %s for conversion %d", item.Status, to, id)
	}
	apply(item)

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(
		ctx,
		`UPDATE conversions SET
            file_id = ?, converted_filename = ?, original_filename = ?, file_size = ?,
            output_path = ?, status = ?, error_message = ?, updated_at = ?
        WHERE id = ?`,
		item.FileID,
		item.ConvertedFilename,
		item.OriginalFilename,
		item.FileSize,
		item.OutputPath,
		to,
		item.ErrorMessage,
		now,
		id,
	)
	if err != nil {
		return fmt.Errorf("update conversion %d: %w", id, err)
	}
	return nil
}

// GetByID fetches a conversion by row identifier.
func (s *Store) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM conversions WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get conversion: %w", err)
	}
	return item, nil
}

// GetByFileID fetches the most recent conversion carrying the given
// server-assigned file identifier.
func (s *Store) GetByFileID(ctx context.Context, fileID string) (*Item, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM conversions WHERE file_id = ? ORDER BY id DESC LIMIT 1`, fileID)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get conversion by file id: %w", err)
	}
	return item, nil
}

// List returns conversions, newest first.
func (s *Store) List(ctx context.Context) ([]*Item, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM conversions ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list conversions: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversions: %w", err)
	}
	return items, nil
}

// Clear removes finished conversions. With all set, in-flight rows go too.
func (s *Store) Clear(ctx context.Context, all bool) (int64, error) {
	query := `DELETE FROM conversions WHERE status IN (?, ?)`
	args := []any{StatusFailed, StatusDownloaded}
	if all {
		query = `DELETE FROM conversions`
		args = nil
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("clear conversions: %w", err)
	}
	return res.RowsAffected()
}

// DatabaseHealth captures diagnostic information about the history database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TableExists      bool
	IntegrityCheck   bool
	TotalItems       int
	Error            string
}

// Health inspects the history database and reports its condition.
func (s *Store) Health(ctx context.Context) DatabaseHealth {
	health := DatabaseHealth{DBPath: s.path}

	if _, err := os.Stat(s.path); err != nil {
		health.Error = fmt.Sprintf("stat database: %v", err)
		return health
	}
	health.DatabaseExists = true

	if err := s.db.PingContext(ctx); err != nil {
		health.Error = fmt.Sprintf("ping database: %v", err)
		return health
	}
	health.DatabaseReadable = true

	var tableCount int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='conversions'",
	).Scan(&tableCount); err != nil {
		health.Error = fmt.Sprintf("check conversions table: %v", err)
		return health
	}
	health.TableExists = tableCount > 0
	if !health.TableExists {
		health.Error = "conversions table missing"
		return health
	}

	var integrity string
	if err := s.db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&integrity); err != nil {
		health.Error = fmt.Sprintf("integrity check: %v", err)
		return health
	}
	health.IntegrityCheck = integrity == "ok"

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM conversions").Scan(&health.TotalItems); err != nil {
		health.Error = fmt.Sprintf("count conversions: %v", err)
	}
	return health
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var item Item
	var createdAt, updatedAt string
	var status string

	err := row.Scan(
		&item.ID,
		&item.CorrelationID,
		&item.SourcePath,
		&item.DisplayTitle,
		&item.OriginalFilename,
		&item.FileID,
		&item.ConvertedFilename,
		&item.FileSize,
		&item.OutputPath,
		&status,
		&item.ErrorMessage,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Status = Status(status)
	if item.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if item.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &item, nil
}
