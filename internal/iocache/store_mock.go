package iocache

import (
	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetSnapshotStore implements the StoreManager interface.
func (m *MockStoreManager) GetSnapshotStore() contract.SnapshotStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SnapshotStore)
	return store
}

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// Store implements the SnapshotStore interface.
func (m *MockSnapshotStore) Store(snapshot schema.Snapshot) (schema.SnapshotRecord, error) {
	args := m.Called(snapshot)
	return args.Get(0).(schema.SnapshotRecord), args.Error(1)
}

// FetchLatest implements the SnapshotStore interface.
func (m *MockSnapshotStore) FetchLatest(projectID string) (*schema.SnapshotRecord, error) {
	args := m.Called(projectID)
	rec, _ := args.Get(0).(*schema.SnapshotRecord)
	return rec, args.Error(1)
}

// FetchLatestAll implements the SnapshotStore interface.
func (m *MockSnapshotStore) FetchLatestAll() ([]schema.SnapshotRecord, error) {
	args := m.Called()
	recs, _ := args.Get(0).([]schema.SnapshotRecord)
	return recs, args.Error(1)
}

// History implements the SnapshotStore interface.
func (m *MockSnapshotStore) History(projectID string, limit, offset int) ([]schema.SnapshotRecord, error) {
	args := m.Called(projectID, limit, offset)
	recs, _ := args.Get(0).([]schema.SnapshotRecord)
	return recs, args.Error(1)
}

// ListAll implements the SnapshotStore interface.
func (m *MockSnapshotStore) ListAll() ([]schema.SnapshotRecord, error) {
	args := m.Called()
	recs, _ := args.Get(0).([]schema.SnapshotRecord)
	return recs, args.Error(1)
}

// Backup implements the SnapshotStore interface.
func (m *MockSnapshotStore) Backup(dest string) error {
	args := m.Called(dest)
	return args.Error(0)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
