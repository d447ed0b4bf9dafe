package catalog

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema creates the catalog tables. Times are stored as Unix nanoseconds
// so both drivers read them back identically.
const Schema = `
CREATE TABLE IF NOT EXISTS files (
    id TEXT PRIMARY KEY,
    path TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL,
    file_version INTEGER NOT NULL,
    size INTEGER NOT NULL,
    mod_time INTEGER NOT NULL,
    hash TEXT NOT NULL,

    entities INTEGER NOT NULL DEFAULT 0,
    resolved INTEGER NOT NULL DEFAULT 0,
    unresolved INTEGER NOT NULL DEFAULT 0,
    foreign_refs INTEGER NOT NULL DEFAULT 0,
    warnings INTEGER NOT NULL DEFAULT 0,
    migrations INTEGER NOT NULL DEFAULT 0,

    error TEXT,
    error_type TEXT,

    scanned_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_files_kind ON files(kind);
CREATE INDEX IF NOT EXISTS idx_files_file_version ON files(file_version);
CREATE INDEX IF NOT EXISTS idx_files_scanned_at ON files(scanned_at);
`

// InsertSchemaVersion records the schema version.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const upsertRecord = `
INSERT INTO files (
    id, path, kind, file_version, size, mod_time, hash,
    entities, resolved, unresolved, foreign_refs, warnings, migrations,
    error, error_type, scanned_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
    kind = excluded.kind,
    file_version = excluded.file_version,
    size = excluded.size,
    mod_time = excluded.mod_time,
    hash = excluded.hash,
    entities = excluded.entities,
    resolved = excluded.resolved,
    unresolved = excluded.unresolved,
    foreign_refs = excluded.foreign_refs,
    warnings = excluded.warnings,
    migrations = excluded.migrations,
    error = excluded.error,
    error_type = excluded.error_type,
    scanned_at = excluded.scanned_at;
`

const selectColumns = `id, path, kind, file_version, size, mod_time, hash,
    entities, resolved, unresolved, foreign_refs, warnings, migrations,
    error, error_type, scanned_at`
