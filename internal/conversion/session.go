package conversion

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"pdf2word/internal/config"
	"pdf2word/internal/fileutil"
	"pdf2word/internal/history"
	"pdf2word/internal/logging"
	"pdf2word/internal/services"
	"pdf2word/internal/services/convertapi"
	"pdf2word/internal/textutil"
)

// Session drives one conversion flow against the backend: validate, upload,
// download, reset. State changes all go through the reducer; the flock lock
// keeps conversions single-flight across processes as well as within one.
type Session struct {
	cfg    *config.Config
	client convertapi.Service
	store  *history.Store
	logger *slog.Logger
	lock   *flock.Flock

	mu        sync.Mutex
	state     State
	historyID int64
}

// NewSession constructs a session. The history store may be nil, in which
// case attempts are simply not recorded.
func NewSession(cfg *config.Config, client convertapi.Service, store *history.Store, logger *slog.Logger) *Session {
	return &Session{
		cfg:    cfg,
		client: client,
		store:  store,
		logger: logging.WithComponent(logger, "session"),
		lock:   flock.New(cfg.LockFilePath()),
		state:  Initial(),
	}
}

// State returns a copy of the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) apply(event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := Reduce(s.state, event)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// Convert validates path and submits it to the conversion service. Validation
// failures move the session to the error phase without touching the network.
// Exactly one conversion runs at a time; a second call while one is in flight
// is refused.
func (s *Session) Convert(ctx context.Context, path string) (State, error) {
	if s.State().Phase != PhaseIdle {
		s.Reset()
	}

	if err := ValidateFile(path); err != nil {
		message := services.UserMessage(err)
		_ = s.apply(ConversionFailed{Message: message})
		s.logger.Warn("validation rejected file", slog.String("path", path), slog.String("reason", message))
		return s.State(), err
	}

	locked, err := s.lock.TryLock()
	if err != nil {
		return s.State(), services.Wrap(services.ErrConfiguration, "session", "convert", "acquire conversion lock", err)
	}
	if !locked {
		return s.State(), services.Wrap(services.ErrValidation, "session", "convert", "another conversion is already in progress", nil)
	}
	defer func() { _ = s.lock.Unlock() }()

	if err := s.apply(UploadStarted{SourcePath: path}); err != nil {
		return s.State(), services.Wrap(services.ErrValidation, "session", "convert", "conversion already in progress", err)
	}

	if s.store != nil {
		item, err := s.store.NewConversion(ctx, path, filepath.Base(path))
		if err != nil {
			s.logger.Warn("history insert failed", logging.Error(err))
		} else {
			s.historyID = item.ID
			s.logger = s.logger.With(slog.String(logging.FieldCorrelationID, item.CorrelationID))
		}
	}

	convertCtx, cancel := context.WithTimeout(ctx, s.cfg.ConvertTimeout())
	defer cancel()

	s.logger.Info("uploading file", slog.String("path", path))
	result, err := s.client.Convert(convertCtx, path)
	if err != nil {
		message := services.UserMessage(err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(convertCtx.Err(), context.DeadlineExceeded) {
			message = "Conversion timed out. Please try again."
		}
		_ = s.apply(ConversionFailed{Message: message})
		s.recordFailure(ctx, message)
		s.logger.Error("conversion failed", logging.Error(err))
		return s.State(), err
	}

	if applyErr := s.apply(ConversionSucceeded{Result: Result{
		FileID:            result.FileID,
		ConvertedFilename: result.Filename,
		OriginalFilename:  result.OriginalFilename,
		FileSize:          result.FileSize,
	}}); applyErr != nil {
		return s.State(), applyErr
	}

	if s.store != nil && s.historyID != 0 {
		if _, err := s.store.MarkConverted(ctx, s.historyID, result); err != nil {
			s.logger.Warn("history update failed", logging.Error(err))
		}
	}

	s.logger.Info("conversion complete",
		slog.String(logging.FieldFileID, result.FileID),
		slog.Int64("file_size", result.FileSize))
	return s.State(), nil
}

// Download fetches the converted document for the current result and saves it
// under the configured download directory with the original filename as the
// suggested name. Without a result it fails and issues no request. The
// in-flight download marker is cleared on every path out of this method.
func (s *Session) Download(ctx context.Context) (string, error) {
	if err := s.apply(DownloadStarted{}); err != nil {
		return "", services.Wrap(services.ErrValidation, "session", "download", "no converted document available", err)
	}

	outputPath, err := s.downloadLocked(ctx)
	if err != nil {
		_ = s.apply(DownloadFinished{Failed: true, Message: services.UserMessage(err)})
		s.logger.Error("download failed", logging.Error(err))
		return "", err
	}

	_ = s.apply(DownloadFinished{})
	if s.store != nil && s.historyID != 0 {
		if _, err := s.store.MarkDownloaded(ctx, s.historyID, outputPath); err != nil {
			s.logger.Warn("history update failed", logging.Error(err))
		}
	}
	s.logger.Info("document saved", slog.String("path", outputPath))
	return outputPath, nil
}

func (s *Session) downloadLocked(ctx context.Context) (string, error) {
	state := s.State()
	result := state.Result

	dir := s.cfg.Paths.DownloadDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "session", "download", "create download directory", err)
	}

	tempPath := filepath.Join(dir, ".pdf2word-"+uuid.NewString()+".part")
	temp, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "session", "download", "create temp file", err)
	}
	defer func() {
		_ = temp.Close()
		_ = os.Remove(tempPath)
	}()

	downloadCtx, cancel := context.WithTimeout(ctx, s.cfg.DownloadTimeout())
	defer cancel()

	if _, err := s.client.Download(downloadCtx, result.FileID, result.ConvertedFilename, temp); err != nil {
		return "", err
	}
	if err := temp.Close(); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "session", "download", "flush temp file", err)
	}

	target, err := fileutil.UniquePath(dir, textutil.DocxName(result.OriginalFilename))
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "session", "download", "choose output name", err)
	}
	if err := fileutil.MoveFile(tempPath, target); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "session", "download", "move document into place", err)
	}
	return target, nil
}

// Restore seeds the session with a previously recorded conversion so its
// document can be downloaded again.
func (s *Session) Restore(item *history.Item) error {
	if item == nil || !item.Downloadable() {
		return services.Wrap(services.ErrValidation, "session", "restore", "no converted document available", nil)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{
		Phase:      PhaseResult,
		SourcePath: item.SourcePath,
		Result: &Result{
			FileID:            item.FileID,
			ConvertedFilename: item.ConvertedFilename,
			OriginalFilename:  item.OriginalFilename,
			FileSize:          item.FileSize,
		},
	}
	s.historyID = item.ID
	return nil
}

// Reset returns the session to idle, discarding any result or error.
func (s *Session) Reset() State {
	_ = s.apply(ResetRequested{})
	s.mu.Lock()
	s.historyID = 0
	s.mu.Unlock()
	return s.State()
}

func (s *Session) recordFailure(ctx context.Context, message string) {
	if s.store == nil || s.historyID == 0 {
		return
	}
	if _, err := s.store.MarkFailed(ctx, s.historyID, message); err != nil {
		s.logger.Warn("history update failed", logging.Error(err))
	}
}
