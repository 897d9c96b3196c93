package history

import (
	"strings"
	"time"
)

// Status represents the lifecycle of a recorded conversion.
type Status string

const (
	StatusUploading  Status = "uploading"
	StatusConverted  Status = "converted"
	StatusFailed     Status = "failed"
	StatusDownloaded Status = "downloaded"
)

var allStatuses = []Status{
	StatusUploading,
	StatusConverted,
	StatusFailed,
	StatusDownloaded,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// validTransitions lists the allowed status moves. A failed download keeps the
// row in converted so the fetch can be retried later.
var validTransitions = map[Status][]Status{
	StatusUploading: {StatusConverted, StatusFailed},
	StatusConverted: {StatusDownloaded, StatusFailed},
}

// Item represents a conversion attempt persisted in SQLite.
type Item struct {
	ID                int64
	CorrelationID     string
	SourcePath        string
	DisplayTitle      string
	OriginalFilename  string
	FileID            string
	ConvertedFilename string
	FileSize          int64
	OutputPath        string
	Status            Status
	ErrorMessage      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// CanTransition reports whether moving from one status to another is allowed.
func CanTransition(from, to Status) bool {
	for _, candidate := range validTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Downloadable reports whether the item holds a result that can be fetched.
func (i Item) Downloadable() bool {
	return (i.Status == StatusConverted || i.Status == StatusDownloaded) && i.FileID != ""
}
