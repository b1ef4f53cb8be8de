package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// SnapshotSchemaVersion is the payload version written by EncodeSnapshot.
const SnapshotSchemaVersion = 1

// Snapshot is the persisted result of one archive analysis run.
// ProjectID and Classification are duplicated in the stored row for integrity checks.
type Snapshot struct {
	SchemaVersion      int                  `json:"schema_version"`
	ProjectID          string               `json:"project_id"`
	Classification     Classification       `json:"classification"`
	PrimaryContributor string               `json:"primary_contributor,omitempty"`
	FileSummary        MetricSummary        `json:"file_summary"`
	Languages          map[string]int       `json:"languages"`
	Frameworks         []string             `json:"frameworks"`
	Tools              []string             `json:"tools"`
	Collaboration      CollaborationSummary `json:"collaboration"`
	Skills             []SkillScore         `json:"skills"`
	SkillTimeline      []SkillTimelineEntry `json:"skill_timeline"`
	CreatedAt          time.Time            `json:"created_at"`
}

// SnapshotRecord is a snapshot row as read back from the store.
type SnapshotRecord struct {
	ID                 int64          `json:"id"`
	ProjectID          string         `json:"project_id"`
	Classification     Classification `json:"classification"`
	PrimaryContributor string         `json:"primary_contributor,omitempty"`
	SchemaVersion      int            `json:"schema_version"`
	Checksum           string         `json:"checksum"`
	CreatedAt          time.Time      `json:"created_at"`
	Snapshot           Snapshot       `json:"snapshot"`
}

// SummaryDocument is the summary output of one pipeline run.
type SummaryDocument struct {
	Snapshot
	Archive             string       `json:"archive"`
	RequestedMode       AnalysisMode `json:"requested_mode"`
	ResolvedMode        AnalysisMode `json:"resolved_mode"`
	ModeReason          string       `json:"mode_reason"`
	MetadataOutput      string       `json:"metadata_output"`
	SummaryOutput       string       `json:"summary_output"`
	ScanDurationSeconds float64      `json:"scan_duration_seconds"`
}

// EncodeSnapshot serializes a snapshot, stamping the current schema version.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	s.SchemaVersion = SnapshotSchemaVersion
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot deserializes a snapshot payload.
// Payloads without a version are treated as version 1.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.SchemaVersion == 0 {
		s.SchemaVersion = SnapshotSchemaVersion
	}
	if s.SchemaVersion > SnapshotSchemaVersion {
		return Snapshot{}, fmt.Errorf("unsupported snapshot schema version %d", s.SchemaVersion)
	}
	return s, nil
}
