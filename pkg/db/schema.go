package db

const (
	// SchemaV1 defines version 1 of the local storage schema.
	// local_storage mirrors a browser's localStorage: string keys, string values.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS aoa_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS local_storage (
    key VARCHAR(256) PRIMARY KEY,
    value TEXT NOT NULL,
    created_at REAL DEFAULT (unixepoch()),
    updated_at REAL DEFAULT (unixepoch())
);
`
)
