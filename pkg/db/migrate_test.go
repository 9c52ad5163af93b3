package db

import (
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func init() {
	Progress = io.Discard
}

// checkTableExists is a test helper to verify if a table exists in the database.
func checkTableExists(t *testing.T, db *sql.DB, tableName string) {
	t.Helper()
	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?;", tableName).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			t.Errorf("Table '%s' does not exist, but it should.", tableName)
			return
		}
		t.Fatalf("Error checking if table '%s' exists: %v", tableName, err)
	}
}

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDBConnection(":memory:", true, "NORMAL")
	if err != nil {
		t.Fatalf("OpenDBConnection failed for in-memory DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenDBConnection_InvalidSyncPragma(t *testing.T) {
	_, err := OpenDBConnection(":memory:", false, "sometimes")
	if err == nil {
		t.Fatal("expected an error for an invalid sync pragma")
	}
	if !strings.Contains(err.Error(), "invalid sync pragma value") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestUpgradeDB_NewDatabase(t *testing.T) {
	db := openMemory(t)

	if err := UpgradeDB(db, ":memory:", TargetSchemaVersion); err != nil {
		t.Fatalf("UpgradeDB failed on a new in-memory database: %v", err)
	}

	for _, tableName := range []string{"aoa_versions", "local_storage"} {
		checkTableExists(t, db, tableName)
	}

	version, err := GetComponentSchemaVersion(db, LocalStorageComponent)
	if err != nil {
		t.Fatalf("GetComponentSchemaVersion failed after UpgradeDB: %v", err)
	}
	if version != TargetSchemaVersion {
		t.Errorf("Expected component '%s' to be at version %d, but got %d", LocalStorageComponent, TargetSchemaVersion, version)
	}
}

func TestGetComponentSchemaVersion_NoTable(t *testing.T) {
	db := openMemory(t)

	version, err := GetComponentSchemaVersion(db, LocalStorageComponent)
	if err != nil {
		t.Fatalf("expected no error before the schema exists, got %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}
}

func TestUpgradeDB_AlreadyUpToDate(t *testing.T) {
	db := openMemory(t)

	if err := InitializeSchema(db, TargetSchemaVersion); err != nil {
		t.Fatalf("InitializeSchema failed: %v", err)
	}
	if err := UpgradeDB(db, ":memory:", TargetSchemaVersion); err != nil {
		t.Fatalf("UpgradeDB failed on an up-to-date database: %v", err)
	}

	version, err := GetComponentSchemaVersion(db, LocalStorageComponent)
	if err != nil {
		t.Fatalf("GetComponentSchemaVersion failed: %v", err)
	}
	if version != TargetSchemaVersion {
		t.Errorf("Expected version %d, got %d", TargetSchemaVersion, version)
	}
}

func TestUpgradeDB_OlderVersionNeedsMigration(t *testing.T) {
	db := openMemory(t)

	const dbInitialSchemaVersion int64 = 1
	const appTargetsSchemaVersion int64 = 2

	if err := InitializeSchema(db, dbInitialSchemaVersion); err != nil {
		t.Fatalf("InitializeSchema to version %d failed: %v", dbInitialSchemaVersion, err)
	}

	err := UpgradeDB(db, ":memory:", appTargetsSchemaVersion)
	if err == nil {
		t.Fatalf("UpgradeDB should have failed for an older DB version requiring migration, but it did not")
	}

	expectedErrorMsg := fmt.Sprintf("component %s in database ':memory:' has schema version %d, which is older than application's target schema version %d", LocalStorageComponent, dbInitialSchemaVersion, appTargetsSchemaVersion)
	if !strings.Contains(err.Error(), expectedErrorMsg) {
		t.Errorf("UpgradeDB error message mismatch.\nExpected to contain: %s\nGot: %s", expectedErrorMsg, err.Error())
	}

	currentVersion, getErr := GetComponentSchemaVersion(db, LocalStorageComponent)
	if getErr != nil {
		t.Fatalf("GetComponentSchemaVersion failed after attempted upgrade: %v", getErr)
	}
	if currentVersion != dbInitialSchemaVersion {
		t.Errorf("Database schema version changed from %d to %d after a failed upgrade attempt.", dbInitialSchemaVersion, currentVersion)
	}
}

func TestUpgradeDB_NewerVersionUnsupported(t *testing.T) {
	db := openMemory(t)

	const dbInitialSchemaVersion int64 = 2
	const appTargetsSchemaVersion int64 = 1

	if err := InitializeSchema(db, dbInitialSchemaVersion); err != nil {
		t.Fatalf("InitializeSchema to version %d failed: %v", dbInitialSchemaVersion, err)
	}

	err := UpgradeDB(db, ":memory:", appTargetsSchemaVersion)
	if err == nil {
		t.Fatalf("UpgradeDB should have failed for a newer DB version, but it did not")
	}

	expectedErrorMsg := fmt.Sprintf("component %s in database ':memory:' has schema version %d, which is newer than application's target schema version %d", LocalStorageComponent, dbInitialSchemaVersion, appTargetsSchemaVersion)
	if !strings.Contains(err.Error(), expectedErrorMsg) {
		t.Errorf("UpgradeDB error message mismatch.\nExpected to contain: %s\nGot: %s", expectedErrorMsg, err.Error())
	}
}

func TestOpen_FileDatabaseIsReusable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aoa.db")

	first, err := Open(path, true, "FULL")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, err := first.Exec(`INSERT INTO local_storage (key, value) VALUES ('user', '{}')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	first.Close()

	second, err := Open(path, true, "FULL")
	if err != nil {
		t.Fatalf("reopening failed: %v", err)
	}
	defer second.Close()

	var value string
	if err := second.QueryRow(`SELECT value FROM local_storage WHERE key = 'user'`).Scan(&value); err != nil {
		t.Fatalf("value did not survive reopening: %v", err)
	}
	if value != "{}" {
		t.Errorf("expected '{}', got %q", value)
	}
}

func TestOpenDBConnection_ForeignKeysOnEveryConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fk.db")
	conn, err := OpenDBConnection(path, true, "NORMAL")
	if err != nil {
		t.Fatalf("OpenDBConnection failed: %v", err)
	}
	defer conn.Close()
	conn.SetMaxIdleConns(0)

	// With no idle connections kept, each query dials a fresh one.
	for i := 0; i < 3; i++ {
		var enabled int
		if err := conn.QueryRow("PRAGMA foreign_keys;").Scan(&enabled); err != nil {
			t.Fatalf("PRAGMA foreign_keys failed: %v", err)
		}
		if enabled != 1 {
			t.Fatalf("expected foreign keys on for connection %d, got %d", i, enabled)
		}
	}

	var memEnabled int
	if err := openMemory(t).QueryRow("PRAGMA foreign_keys;").Scan(&memEnabled); err != nil {
		t.Fatalf("PRAGMA foreign_keys failed on in-memory DB: %v", err)
	}
	if memEnabled != 1 {
		t.Errorf("expected foreign keys on for in-memory DB, got %d", memEnabled)
	}
}
