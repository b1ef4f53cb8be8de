// Package schema has configs, models and codecs for all parts of folio.
package schema

import "time"

// FileRecord represents one non-directory archive entry.
// It is derived once per entry and feeds the metric summary and skill signals.
type FileRecord struct {
	ID             string       `json:"id"`                 // Stable identifier derived from path, size and mtime
	Path           string       `json:"path"`               // Path inside the archive
	Size           int64        `json:"size"`               // Uncompressed size in bytes
	CompressedSize int64        `json:"compressed_size"`    // Compressed size in bytes
	Modified       time.Time    `json:"modified"`           // Last-modified timestamp from the archive header
	Language       string       `json:"language,omitempty"` // Detected language, empty when unknown
	Activity       ActivityKind `json:"activity"`           // code, doc, asset or other
	AnalysisMode   AnalysisMode `json:"analysis_mode"`      // Resolved mode of the run that produced this record
}

// MetricSummary is the reduction of a list of file records.
type MetricSummary struct {
	FileCount         int                  `json:"file_count"`
	TotalBytes        int64                `json:"total_bytes"`
	EarliestModified  *time.Time           `json:"earliest_modification"`
	LatestModified    *time.Time           `json:"latest_modification"`
	DurationDays      *int                 `json:"duration_days"`
	ActiveDays        int                  `json:"active_days"`
	ActivityBreakdown map[ActivityKind]int `json:"activity_breakdown"`
	Timeline          map[string]int       `json:"timeline"` // "YYYY-MM" -> count
}

// ContributionEvent is one parsed author/commit record from log text.
type ContributionEvent struct {
	SHA       string    `json:"sha,omitempty"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Commits   int       `json:"commits"`
	Reviews   int       `json:"reviews"`
	Lines     int       `json:"lines"`
	Coauthors []string  `json:"coauthors,omitempty"`
	Bot       *bool     `json:"bot,omitempty"` // Explicit override; nil means use the heuristic
	Shared    bool      `json:"shared"`
	Timestamp time.Time `json:"timestamp"`
}

// CollaborationSummary describes who contributed to a project and how.
type CollaborationSummary struct {
	Classification     Classification      `json:"classification"`
	HumanContributors  map[string]float64  `json:"human_contributors"` // Normalized scores summing to 1
	BotContributors    map[string]float64  `json:"bot_contributors"`
	Contributors       map[string]int      `json:"contributors"` // Raw human commit counts
	PrimaryContributor string              `json:"primary_contributor,omitempty"`
	Coauthors          map[string][]string `json:"coauthors"`
	ReviewTotals       map[string]int      `json:"review_totals"`
	SharedAccounts     []string            `json:"shared_accounts"`
	CSVExport          string              `json:"csv_export"`
}

// SkillObservation is a weighted skill hit tagged by kind.
type SkillObservation struct {
	Kind   SkillKind `json:"kind"`
	Name   string    `json:"name"`
	Weight float64   `json:"weight"`
}

// LanguageSkill builds a language observation.
func LanguageSkill(name string, weight float64) SkillObservation {
	return SkillObservation{Kind: LanguageSkillKind, Name: name, Weight: weight}
}

// FrameworkSkill builds a framework observation.
func FrameworkSkill(name string, weight float64) SkillObservation {
	return SkillObservation{Kind: FrameworkSkillKind, Name: name, Weight: weight}
}

// ToolSkill builds a tool observation.
func ToolSkill(name string, weight float64) SkillObservation {
	return SkillObservation{Kind: ToolSkillKind, Name: name, Weight: weight}
}

// Category returns the category label recorded on scores and timelines.
func (o SkillObservation) Category() string {
	if o.Kind == "" {
		return UnspecifiedCategory
	}
	return string(o.Kind)
}

// UnspecifiedCategory is used when a skill carries no category.
const UnspecifiedCategory = "unspecified"

// SkillScore is a normalized confidence for one skill.
type SkillScore struct {
	Skill      string  `json:"skill"`
	Confidence float64 `json:"confidence"`
	Category   string  `json:"category"`
}

// SkillEvent is a dated skill hit used to build timelines.
// At takes precedence; Raw is parsed when At is zero.
type SkillEvent struct {
	Skill    string
	Category string
	At       time.Time
	Raw      string
	Weight   float64
}

// SkillTimelineEntry summarizes when and how much a skill was seen.
type SkillTimelineEntry struct {
	Skill         string             `json:"skill"`
	Category      string             `json:"category"`
	FirstSeen     time.Time          `json:"first_seen"`
	LastSeen      time.Time          `json:"last_seen"`
	TotalWeight   float64            `json:"total_weight"`
	YearCounts    map[string]float64 `json:"year_counts"`
	QuarterCounts map[string]float64 `json:"quarter_counts"`
	Intensity     float64            `json:"intensity"`
}

// YearSkill is one entry of a top-skills-by-year reduction.
type YearSkill struct {
	Skill  string  `json:"skill"`
	Weight float64 `json:"weight"`
}

// ConsentState records whether the user allowed external services.
type ConsentState struct {
	Granted   bool      `json:"granted" yaml:"granted"`
	Decision  string    `json:"decision" yaml:"decision"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Source    string    `json:"source" yaml:"source"`
}

// Permission records an external service grant.
type Permission struct {
	Granted   bool      `json:"granted" yaml:"granted"`
	DataTypes []string  `json:"data_types" yaml:"data_types"`
	Purpose   string    `json:"purpose" yaml:"purpose"`
	GrantedAt time.Time `json:"granted_at" yaml:"granted_at"`
}

// Preferences is the persisted user preference record.
type Preferences struct {
	LastOpenedPath      string                `json:"last_opened_path" yaml:"last_opened_path"`
	AnalysisMode        AnalysisMode          `json:"analysis_mode" yaml:"analysis_mode"`
	Theme               string                `json:"theme" yaml:"theme"`
	UserID              string                `json:"user_id" yaml:"user_id"`
	Consent             ConsentState          `json:"consent" yaml:"consent"`
	ExternalPermissions map[string]Permission `json:"external_permissions" yaml:"external_permissions"`
}

// ModeResolution is the outcome of resolving a requested analysis mode.
type ModeResolution struct {
	Requested AnalysisMode `json:"requested_mode"`
	Resolved  AnalysisMode `json:"resolved_mode"`
	Reason    string       `json:"mode_reason"`
}
