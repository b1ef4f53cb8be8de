// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"github.com/folioscope/folio/schema"
)

// SnapshotStore defines the interface for persisting analysis snapshots.
// Writes are append-only; prior rows are never mutated.
type SnapshotStore interface {
	// Store inserts a snapshot and verifies the written row before commit
	Store(snapshot schema.Snapshot) (schema.SnapshotRecord, error)

	// FetchLatest returns the most recent snapshot for a project, or nil when absent
	FetchLatest(projectID string) (*schema.SnapshotRecord, error)

	// FetchLatestAll returns the most recent snapshot per project, ordered by project id
	FetchLatestAll() ([]schema.SnapshotRecord, error)

	// History returns a page of snapshots for a project, newest first
	History(projectID string, limit, offset int) ([]schema.SnapshotRecord, error)

	// ListAll returns every stored snapshot ordered by id
	ListAll() ([]schema.SnapshotRecord, error)

	// Backup writes a point-in-time copy of the store to dest
	Backup(dest string) error

	// GetStatus returns status information about the store
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection
	Close() error
}

// StoreManager hands out the single live snapshot store handle.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetSnapshotStore() SnapshotStore
}

// PreferenceStore persists the small last-used preference record.
type PreferenceStore interface {
	Load() (schema.Preferences, error)
	RecordLastUsed(lastOpenedPath string, mode schema.AnalysisMode) error
}

// ConsentGate is the consent and permission collaborator consumed by the analyzer.
type ConsentGate interface {
	// EnsureConsent returns the recorded consent or an error wrapping ErrConsentRequired
	EnsureConsent() (schema.ConsentState, error)

	// EnsureExternalPermission returns an error wrapping ErrPermissionDenied when not granted
	EnsureExternalPermission(service string, dataTypes []string, purpose string) error
}
