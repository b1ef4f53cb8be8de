package schema

import "time"

// ProjectFeatureSet is the raw ranking input derived from one snapshot.
type ProjectFeatureSet struct {
	ProjectID          string     `json:"project_id"`
	ArtifactCount      int        `json:"artifact_count"`
	TotalBytes         int64      `json:"total_bytes"`
	LatestModification *time.Time `json:"latest_modification"`
	ActiveDays         int        `json:"active_days"`
	ActivityKinds      int        `json:"activity_kinds"`
	LanguageDiversity  int        `json:"language_diversity"` // languages + frameworks
	ContributionRatio  float64    `json:"contribution_ratio"`
}

// ProjectRanking is the scored view of one project.
type ProjectRanking struct {
	ProjectID string                   `json:"project_id"`
	Score     float64                  `json:"score"`
	Breakdown map[BreakdownKey]float64 `json:"breakdown"` // Normalized, unweighted factors
	Details   map[DetailKey]float64    `json:"details"`   // Raw metrics for transparency
}

// EvidenceItem is a single fact backing a project summary.
type EvidenceItem struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Detail    string  `json:"detail"`
	Weight    float64 `json:"weight"`
	Reference string  `json:"reference"` // Where the fact came from, e.g. "analysis:file_count"
}

// ProjectSummary is an evidence-backed description of a top-ranked project.
type ProjectSummary struct {
	Rank           int            `json:"rank"`
	ProjectID      string         `json:"project_id"`
	Score          float64        `json:"score"`
	Classification Classification `json:"classification"`
	Highlights     []string       `json:"highlights"`
	Evidence       []EvidenceItem `json:"evidence"`
}
