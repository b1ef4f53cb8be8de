package schema

// Custom string types for type safety.
type (
	// BreakdownKey represents keys used in ranking breakdowns.
	BreakdownKey string

	// DetailKey represents keys used in the raw ranking details.
	DetailKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for snapshot storage.
	DatabaseBackend string

	// ActivityKind classifies a file by what it contributes to a project.
	ActivityKind string

	// Classification describes how many humans shaped a project.
	Classification string

	// AnalysisMode is the requested or resolved analysis mode.
	AnalysisMode string

	// SkillKind tags a skill observation.
	SkillKind string
)

// Breakdown keys used in the ranking logic.
const (
	BreakdownArtifact  BreakdownKey = "artifact"  // nArtifactCount
	BreakdownBytes     BreakdownKey = "bytes"     // nTotalBytes
	BreakdownRecency   BreakdownKey = "recency"   // hyperbolic decay
	BreakdownActivity  BreakdownKey = "activity"  // nActiveDays
	BreakdownDiversity BreakdownKey = "diversity" // nLanguages + nKinds
)

// Detail keys carrying raw ranking inputs.
const (
	DetailArtifactCount     DetailKey = "artifact_count"
	DetailTotalBytes        DetailKey = "total_bytes"
	DetailRecencyDays       DetailKey = "recency_days"
	DetailActiveDays        DetailKey = "active_days"
	DetailDiversityElements DetailKey = "diversity_elements"
	DetailContribution      DetailKey = "contribution_ratio"
)

// AllBreakdownKeys lists the ranking factors in display order.
var AllBreakdownKeys = []BreakdownKey{
	BreakdownArtifact,
	BreakdownBytes,
	BreakdownRecency,
	BreakdownActivity,
	BreakdownDiversity,
}

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All snapshot backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Activity kinds for archive entries.
const (
	CodeActivity  ActivityKind = "code"
	DocActivity   ActivityKind = "doc"
	AssetActivity ActivityKind = "asset"
	OtherActivity ActivityKind = "other"
)

// Collaboration classifications.
const (
	IndividualProject    Classification = "individual"
	CollaborativeProject Classification = "collaborative"
	BotOnlyProject       Classification = "bot-only"
	UnknownProject       Classification = "unknown"
)

// Analysis modes.
const (
	LocalMode    AnalysisMode = "local" // default
	ExternalMode AnalysisMode = "external"
	AutoMode     AnalysisMode = "auto"
)

// Skill kinds.
const (
	LanguageSkillKind  SkillKind = "language"
	FrameworkSkillKind SkillKind = "framework"
	ToolSkillKind      SkillKind = "tool"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid snapshot backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidAnalysisModes lists all valid requested analysis modes.
var ValidAnalysisModes = map[AnalysisMode]struct{}{
	LocalMode:    {},
	ExternalMode: {},
	AutoMode:     {},
}

// GetDefaultWeights returns the default ranking weight map.
func GetDefaultWeights() map[BreakdownKey]float64 {
	return map[BreakdownKey]float64{
		BreakdownArtifact:  0.2,
		BreakdownBytes:     0.2,
		BreakdownRecency:   0.2,
		BreakdownActivity:  0.2,
		BreakdownDiversity: 0.2,
	}
}
