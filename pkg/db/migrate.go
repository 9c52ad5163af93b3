package db

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// TargetSchemaVersion is the highest schema version this build understands.
	TargetSchemaVersion int64 = 1
	// LocalStorageComponent names the local storage component in aoa_versions.
	LocalStorageComponent = "localstorage"
)

// Progress receives the one-line status messages of UpgradeDB. It defaults to
// stderr; tests and the CLI commands silence it.
var Progress io.Writer = os.Stderr

// GetComponentSchemaVersion retrieves the schema version for a component.
// Returns 0 if the component is not found or the versions table doesn't exist yet.
func GetComponentSchemaVersion(db *sql.DB, componentName string) (int64, error) {
	query := `SELECT version FROM aoa_versions WHERE component = ?;`

	var version int64
	err := db.QueryRow(query, componentName).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		if strings.Contains(err.Error(), "no such table") && strings.Contains(err.Error(), "aoa_versions") {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan version for component '%s': %w", componentName, err)
	}
	return version, nil
}

// InitializeSchema creates every table and records schemaVersionToSet for the
// local storage component.
func InitializeSchema(db *sql.DB, schemaVersionToSet int64) error {
	if _, err := db.Exec(SchemaV1); err != nil {
		return fmt.Errorf("failed to execute schema v1 SQL: %w", err)
	}

	insertVersionSQL := `
INSERT INTO aoa_versions (component, version) VALUES (?, ?)
ON CONFLICT(component) DO UPDATE SET version = excluded.version, created_at = unixepoch();`

	if _, err := db.Exec(insertVersionSQL, LocalStorageComponent, schemaVersionToSet); err != nil {
		return fmt.Errorf("failed to insert/update version for component %s to %d: %w", LocalStorageComponent, schemaVersionToSet, err)
	}

	fmt.Fprintf(Progress, "Component %s initialized/updated to schema version %d\n", LocalStorageComponent, schemaVersionToSet)
	return nil
}

// UpgradeDB brings the local storage component of db to appTargetSchemaVersion.
// dbIdentifierForLog is only used in messages.
func UpgradeDB(db *sql.DB, dbIdentifierForLog string, appTargetSchemaVersion int64) error {
	currentDBVersion, err := GetComponentSchemaVersion(db, LocalStorageComponent)
	if err != nil {
		return err
	}

	switch {
	case currentDBVersion == 0:
		if err := InitializeSchema(db, appTargetSchemaVersion); err != nil {
			return fmt.Errorf("failed to initialize component %s in database '%s': %w", LocalStorageComponent, dbIdentifierForLog, err)
		}
		return nil
	case currentDBVersion == appTargetSchemaVersion:
		return nil
	case currentDBVersion < appTargetSchemaVersion:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is older than application's target schema version %d. Automatic migration from this older version is not yet supported", LocalStorageComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	default:
		return fmt.Errorf("component %s in database '%s' has schema version %d, which is newer than application's target schema version %d. Please upgrade the application", LocalStorageComponent, dbIdentifierForLog, currentDBVersion, appTargetSchemaVersion)
	}
}
