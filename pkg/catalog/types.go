package catalog

import (
	"context"
	"time"
)

// Record describes one catalogued file.
type Record struct {
	ID          string
	Path        string
	Kind        string
	FileVersion int
	Size        int64
	ModTime     time.Time
	Hash        string

	Entities   int
	Resolved   int
	Unresolved int
	Foreign    int
	Warnings   int
	Migrations int

	// Error and ErrorType are set when the file could not be read.
	Error     string
	ErrorType string

	ScannedAt time.Time
}

// Failed reports whether reading the file failed.
func (r *Record) Failed() bool { return r.Error != "" }

// Query filters records. Zero fields do not filter.
type Query struct {
	Kind       string
	Path       string
	PathPrefix string

	// MaxVersion selects files declaring a version below it, i.e. files
	// that convert would upgrade.
	MaxVersion *int

	OnlyFailed     bool
	OnlyUnresolved bool

	ScannedBefore *time.Time
	ScannedAfter  *time.Time

	// SortBy is one of "path", "scanned_at", "file_version". Default: path.
	SortBy    string
	SortOrder string // "ASC" or "DESC"
	Limit     int
	Offset    int
}

// Store persists catalog records.
type Store interface {
	Upsert(ctx context.Context, r *Record) error
	Get(ctx context.Context, path string) (*Record, error)
	Query(ctx context.Context, q *Query) ([]*Record, error)
	Count(ctx context.Context, q *Query) (int64, error)
	Delete(ctx context.Context, q *Query) (int64, error)
	DeleteOldest(ctx context.Context, n int64) (int64, error)
	Close() error
}
