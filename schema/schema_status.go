package schema

import "time"

// StoreStatus represents the status of the snapshot store.
type StoreStatus struct {
	Backend            string    `json:"backend"`
	Connected          bool      `json:"connected"`
	Location           string    `json:"location,omitempty"`
	TotalSnapshots     int64     `json:"total_snapshots"`
	TotalProjects      int64     `json:"total_projects"`
	LatestSnapshotTime time.Time `json:"latest_snapshot_time"`
	OldestSnapshotTime time.Time `json:"oldest_snapshot_time"`
	LatestSnapshotID   int64     `json:"latest_snapshot_id"`
	SchemaVersion      int       `json:"schema_version"`
}
