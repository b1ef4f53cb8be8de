package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &SnapshotStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetDBFilePath() string {
	return contract.GetSnapshotDBFilePath()
}

// InitStores opens the global snapshot store exactly once.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error
	initOnce.Do(func() {
		if _, err := Manager.Open(backend, connStr); err != nil {
			initErr = fmt.Errorf("failed to initialize snapshot store: %w", err)
		}
	})
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		_ = Manager.Close()
	})
}

// ClearSnapshots removes all stored snapshots for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearSnapshots(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, quoteTableName(snapshotsTable, backend))

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, quoteTableName(snapshotsTable, backend))

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported snapshot backend for clearing: %s", backend)
	}
}

// clearSQLTable connects to the SQL database and drops the table if it exists.
func clearSQLTable(driverName, connStr, quotedTable string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", quotedTable)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", quotedTable, err)
	}
	return nil
}
