package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// validSyncModes lists the allowed values for the synchronous pragma.
var validSyncModes = map[string]bool{
	"OFF":    true,
	"NORMAL": true,
	"FULL":   true,
	"EXTRA":  true,
}

// OpenDBConnection opens the SQLite file at baseDSN with foreign keys enforced.
// enableWAL sets journal_mode=WAL; syncPragma sets the synchronous pragma
// (OFF, NORMAL, FULL, EXTRA) and may be empty to keep SQLite's default.
func OpenDBConnection(baseDSN string, enableWAL bool, syncPragma string) (*sql.DB, error) {
	params := url.Values{}
	// Set per connection through the DSN so every pooled connection has it.
	params.Add("_foreign_keys", "on")

	if enableWAL {
		params.Add("_journal_mode", "WAL")
	}

	if syncPragma != "" {
		ucSyncPragma := strings.ToUpper(syncPragma)
		if !validSyncModes[ucSyncPragma] {
			return nil, fmt.Errorf("invalid sync pragma value: %s. Must be one of OFF, NORMAL, FULL, EXTRA", syncPragma)
		}
		params.Add("_synchronous", ucSyncPragma)
	}

	constructedDSN := baseDSN
	if len(params) > 0 {
		if strings.Contains(baseDSN, "?") {
			constructedDSN += "&" + params.Encode()
		} else {
			constructedDSN += "?" + params.Encode()
		}
	}

	db, err := sql.Open("sqlite3", constructedDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database with DSN '%s': %w", constructedDSN, err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database with DSN '%s': %w", constructedDSN, err)
	}

	// An in-memory database lives per connection; pin the pool to one.
	if strings.HasPrefix(baseDSN, ":memory:") {
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

// Open opens path and brings its schema up to TargetSchemaVersion.
func Open(path string, enableWAL bool, syncPragma string) (*sql.DB, error) {
	conn, err := OpenDBConnection(path, enableWAL, syncPragma)
	if err != nil {
		return nil, err
	}
	if err := UpgradeDB(conn, path, TargetSchemaVersion); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", path, err)
	}
	return conn, nil
}
