package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverModernc = "sqlite"
	DriverCgo     = "sqlite3"
)

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Driver is DriverModernc or DriverCgo. Default: DriverModernc
	Driver string

	// Path is the database file path. ":memory:" keeps the catalog in memory.
	Path string

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Driver:      DriverModernc,
		Path:        "data/catalog.db",
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens the database and creates the schema.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Driver == "" {
		config.Driver = DriverModernc
	}
	if config.Driver != DriverModernc && config.Driver != DriverCgo {
		return nil, NewStorageError(config.Driver, "open", fmt.Errorf("unsupported driver %q", config.Driver))
	}
	if config.BusyTimeout == 0 {
		config.BusyTimeout = 5 * time.Second
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "catalog.sqlite", "driver", config.Driver)

	db, err := sql.Open(config.Driver, config.Path)
	if err != nil {
		return nil, NewStorageError(config.Driver, "open", err)
	}
	// A single connection keeps pragmas and in-memory databases consistent.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("catalog opened",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	if s.config.WALMode && s.config.Path != ":memory:" {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return s.err("enable_wal", err)
		}
	}
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return s.err("set_busy_timeout", err)
	}
	if _, err := s.db.Exec(Schema); err != nil {
		return s.err("create_schema", err)
	}
	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return s.err("insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return s.err("get_schema_version", err)
	}
	if version != SchemaVersion {
		return s.err("schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}
	return nil
}

func (s *SQLiteStore) err(op string, cause error) error {
	return NewStorageError(s.config.Driver, op, cause)
}

// Upsert inserts r or replaces the record with the same path. The ID of
// an existing record is kept and copied into r.
func (s *SQLiteStore) Upsert(ctx context.Context, r *Record) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.ScannedAt.IsZero() {
		r.ScannedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, upsertRecord,
		r.ID, r.Path, r.Kind, r.FileVersion, r.Size, r.ModTime.UnixNano(), r.Hash,
		r.Entities, r.Resolved, r.Unresolved, r.Foreign, r.Warnings, r.Migrations,
		nullString(r.Error), nullString(r.ErrorType), r.ScannedAt.UnixNano(),
	)
	if err != nil {
		return s.err("upsert", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT id FROM files WHERE path = ?", r.Path).Scan(&r.ID); err != nil {
		return s.err("upsert", err)
	}
	return nil
}

// Get returns the record for path, or nil when the path is not catalogued.
func (s *SQLiteStore) Get(ctx context.Context, path string) (*Record, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+selectColumns+" FROM files WHERE path = ?", path)
	if err != nil {
		return nil, s.err("get", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	r, err := scanRow(rows)
	if err != nil {
		return nil, s.err("scan", err)
	}
	return r, nil
}

// Query retrieves records matching q.
func (s *SQLiteStore) Query(ctx context.Context, q *Query) ([]*Record, error) {
	if q == nil {
		q = &Query{}
	}
	where, args := buildWhereClause(q)

	sqlQuery := "SELECT " + selectColumns + " FROM files"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	sortBy := "path"
	switch q.SortBy {
	case "scanned_at", "file_version", "path":
		sortBy = q.SortBy
	}
	sortOrder := "ASC"
	if strings.EqualFold(q.SortOrder, "DESC") {
		sortOrder = "DESC"
	}
	sqlQuery += fmt.Sprintf(" ORDER BY %s %s", sortBy, sortOrder)

	if q.Limit > 0 {
		sqlQuery += fmt.Sprintf(" LIMIT %d", q.Limit)
		if q.Offset > 0 {
			sqlQuery += fmt.Sprintf(" OFFSET %d", q.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, s.err("query", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, s.err("scan", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, s.err("query", err)
	}
	return records, nil
}

// Count returns the number of records matching q.
func (s *SQLiteStore) Count(ctx context.Context, q *Query) (int64, error) {
	if q == nil {
		q = &Query{}
	}
	where, args := buildWhereClause(q)
	sqlQuery := "SELECT COUNT(*) FROM files"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, s.err("count", err)
	}
	return count, nil
}

// Delete removes records matching q and returns how many were removed.
func (s *SQLiteStore) Delete(ctx context.Context, q *Query) (int64, error) {
	if q == nil {
		q = &Query{}
	}
	where, args := buildWhereClause(q)
	sqlQuery := "DELETE FROM files"
	if where != "" {
		sqlQuery += " WHERE " + where
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, s.err("delete", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, s.err("delete", err)
	}
	return n, nil
}

// DeleteOldest removes the n records scanned longest ago.
func (s *SQLiteStore) DeleteOldest(ctx context.Context, n int64) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM files WHERE id IN (SELECT id FROM files ORDER BY scanned_at ASC LIMIT ?)", n)
	if err != nil {
		return 0, s.err("delete_oldest", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, s.err("delete_oldest", err)
	}
	return deleted, nil
}

// Ping verifies the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return s.err("ping", err)
	}
	return nil
}

// Close releases the database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return s.err("close", err)
	}
	s.logger.Debug("catalog closed")
	return nil
}

// buildWhereClause builds a WHERE clause (without the keyword) from q.
func buildWhereClause(q *Query) (string, []any) {
	var conditions []string
	var args []any

	if q.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, q.Kind)
	}
	if q.Path != "" {
		conditions = append(conditions, "path = ?")
		args = append(args, q.Path)
	}
	if q.PathPrefix != "" {
		conditions = append(conditions, "substr(path, 1, ?) = ?")
		args = append(args, len(q.PathPrefix), q.PathPrefix)
	}
	if q.MaxVersion != nil {
		conditions = append(conditions, "file_version < ?")
		args = append(args, *q.MaxVersion)
	}
	if q.OnlyFailed {
		conditions = append(conditions, "error IS NOT NULL")
	}
	if q.OnlyUnresolved {
		conditions = append(conditions, "unresolved > 0")
	}
	if q.ScannedBefore != nil {
		conditions = append(conditions, "scanned_at < ?")
		args = append(args, q.ScannedBefore.UnixNano())
	}
	if q.ScannedAfter != nil {
		conditions = append(conditions, "scanned_at >= ?")
		args = append(args, q.ScannedAfter.UnixNano())
	}

	return strings.Join(conditions, " AND "), args
}

func scanRow(rows *sql.Rows) (*Record, error) {
	var r Record
	var modTime, scannedAt int64
	var errVal, errType sql.NullString

	err := rows.Scan(
		&r.ID, &r.Path, &r.Kind, &r.FileVersion, &r.Size, &modTime, &r.Hash,
		&r.Entities, &r.Resolved, &r.Unresolved, &r.Foreign, &r.Warnings, &r.Migrations,
		&errVal, &errType, &scannedAt,
	)
	if err != nil {
		return nil, err
	}
	r.ModTime = time.Unix(0, modTime)
	r.ScannedAt = time.Unix(0, scannedAt)
	r.Error = errVal.String
	r.ErrorType = errType.String
	return &r, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
