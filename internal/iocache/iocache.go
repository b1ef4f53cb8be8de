// Package iocache persists analysis snapshots in SQL stores.
package iocache

import (
	"fmt"
	"sync"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// SnapshotStoreManager owns the single live snapshot store handle.
type SnapshotStoreManager struct {
	sync.RWMutex // Protects the store pointer during handle switches
	store        contract.SnapshotStore
	backend      schema.DatabaseBackend
	location     string
}

var _ contract.StoreManager = &SnapshotStoreManager{} // Compile-time check

// GetSnapshotStore returns the open snapshot store, or nil when none is open.
func (mgr *SnapshotStoreManager) GetSnapshotStore() contract.SnapshotStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.store
}

// Open returns a store for backend and connStr. Reopening the same location
// reuses the live handle; a different location closes the previous handle first.
func (mgr *SnapshotStoreManager) Open(backend schema.DatabaseBackend, connStr string) (contract.SnapshotStore, error) {
	mgr.Lock()
	defer mgr.Unlock()

	location := resolveLocation(backend, connStr)
	if mgr.store != nil && mgr.backend == backend && mgr.location == location {
		return mgr.store, nil
	}

	if mgr.store != nil {
		if err := mgr.store.Close(); err != nil {
			contract.LogWarn("Failed to close previous snapshot store", err)
		}
		mgr.store = nil
	}

	store, err := NewSnapshotStore(backend, connStr)
	if err != nil {
		return nil, err
	}
	mgr.store = store
	mgr.backend = backend
	mgr.location = location
	return store, nil
}

// Close releases the live handle, if any.
func (mgr *SnapshotStoreManager) Close() error {
	mgr.Lock()
	defer mgr.Unlock()
	if mgr.store == nil {
		return nil
	}
	err := mgr.store.Close()
	mgr.store = nil
	mgr.location = ""
	if err != nil {
		return fmt.Errorf("failed to close snapshot store: %w", err)
	}
	return nil
}

// resolveLocation returns the identity of a storage location.
func resolveLocation(backend schema.DatabaseBackend, connStr string) string {
	if backend == schema.SQLiteBackend && connStr == "" {
		return GetDBFilePath()
	}
	return connStr
}
