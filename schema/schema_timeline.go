package schema

import "time"

// ProjectTimelineRow is one row of the cross-project timeline.
type ProjectTimelineRow struct {
	ProjectID          string         `json:"project_id"`
	FirstSeen          *time.Time     `json:"first_seen"`
	LastSeen           *time.Time     `json:"last_seen"`
	Classification     Classification `json:"classification"`
	PrimaryContributor string         `json:"primary_contributor"`
	Languages          []string       `json:"languages"`
	Frameworks         []string       `json:"frameworks"`
	TotalFiles         int            `json:"total_files"`
	TotalBytes         int64          `json:"total_bytes"`
}

// SkillTimelineRow is one row of the cross-project skill timeline.
type SkillTimelineRow struct {
	Skill       string    `json:"skill"`
	Category    string    `json:"category"`
	FirstSeen   time.Time `json:"first_seen"`
	LastSeen    time.Time `json:"last_seen"`
	TotalWeight float64   `json:"total_weight"`
	Count       int       `json:"count"` // Number of projects contributing
}

// SkillReport is the skill view of one project's latest snapshot.
type SkillReport struct {
	ProjectID string                 `json:"project_id"`
	CreatedAt time.Time              `json:"created_at"`
	Scores    []SkillScore           `json:"skills"`
	Timeline  []SkillTimelineEntry   `json:"timeline"`
	TopByYear map[string][]YearSkill `json:"top_by_year"`
}
