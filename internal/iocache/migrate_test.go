package iocache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/folioscope/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSnapshots_NoneBackend(t *testing.T) {
	err := MigrateSnapshots(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateSnapshots_UnsupportedBackend(t *testing.T) {
	err := MigrateSnapshots(schema.DatabaseBackend("oracle"), "", -1)
	assert.ErrorContains(t, err, "unsupported backend")
}

func TestMigrateSnapshots_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Run migration to latest version (should go to version 1)
	require.NoError(t, MigrateSnapshots(schema.SQLiteBackend, dbPath, -1))

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	// Run migration again (should be a no-op)
	assert.NoError(t, MigrateSnapshots(schema.SQLiteBackend, dbPath, -1))
	assert.NoError(t, MigrateSnapshots(schema.SQLiteBackend, dbPath, 1))

	// Rollback to version 0, then back up again
	assert.NoError(t, MigrateSnapshots(schema.SQLiteBackend, dbPath, 0))
	assert.NoError(t, MigrateSnapshots(schema.SQLiteBackend, dbPath, 1))

	// A migrated database is usable by the store
	store, err := NewSnapshotStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	_, err = store.Store(sampleSnapshot("alpha", baseTime))
	assert.NoError(t, err)
}

func TestMigrateSnapshots_SQLiteInMemory(t *testing.T) {
	require.NoError(t, MigrateSnapshots(schema.SQLiteBackend, ":memory:", -1))
}

func TestMigrationFilesEmbedded(t *testing.T) {
	for backend, dir := range migrationDirs {
		entries, err := migrationsFS.ReadDir("migrations/" + dir)
		require.NoError(t, err, backend)
		assert.Len(t, entries, 2, backend)
	}
}
