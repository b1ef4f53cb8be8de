package contract

import (
	"fmt"
	"maps"
	"math"
	"strings"
	"time"

	"github.com/folioscope/folio/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit         = 25
	MaxResultLimit             = 1000
	DefaultPrecision           = 2
	DefaultTopN                = 5
	DefaultContributionFloor   = 0.1
	DefaultRecencyHalfLifeDays = 30.0
)

// Default collaboration weights.
const (
	DefaultCommitWeight = 1.0
	DefaultReviewWeight = 0.5
	DefaultLinesWeight  = 0.001
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// CollabWeights scales each kind of contribution when scoring contributors.
type CollabWeights struct {
	Commit float64
	Review float64
	Lines  float64
}

// DefaultCollabWeights returns the default contribution weights.
func DefaultCollabWeights() CollabWeights {
	return CollabWeights{Commit: DefaultCommitWeight, Review: DefaultReviewWeight, Lines: DefaultLinesWeight}
}

// RankingWeightsRaw holds custom ranking weights from the YAML config file.
// Use float64 pointers for optional fields.
type RankingWeightsRaw struct {
	Artifact  *float64 `mapstructure:"artifact"`
	Bytes     *float64 `mapstructure:"bytes"`
	Recency   *float64 `mapstructure:"recency"`
	Activity  *float64 `mapstructure:"activity"`
	Diversity *float64 `mapstructure:"diversity"`
}

// RankingRawInput holds the ranking section of the YAML config file.
type RankingRawInput struct {
	Weights             RankingWeightsRaw `mapstructure:"weights"`
	ContributionFloor   *float64          `mapstructure:"contribution-floor"`
	RecencyHalfLifeDays *float64          `mapstructure:"recency-half-life-days"`
}

// CollabRawInput holds the collaboration section of the YAML config file.
type CollabRawInput struct {
	Weights struct {
		Commit *float64 `mapstructure:"commit"`
		Review *float64 `mapstructure:"review"`
		Lines  *float64 `mapstructure:"lines"`
	} `mapstructure:"weights"`
}

// Config holds the runtime configuration for every command.
// This struct is the "final, validated" config.
type Config struct {
	// Storage
	SnapshotBackend   schema.DatabaseBackend
	SnapshotDBConnect string // Please use env var as this is plaintext

	// Output
	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	Limit      int
	Detail     bool
	Explain    bool
	Verbose    bool

	// Analysis
	ArchivePath    string
	ProjectID      string
	AnalysisMode   schema.AnalysisMode
	MetadataOutput string
	SummaryOutput  string
	MainUser       string
	IncludeBots    bool
	MinConfidence  float64
	CollabWeights  CollabWeights
	PrefsPath      string

	// Ranking
	User                string
	AsOf                time.Time
	RankingWeights      map[schema.BreakdownKey]float64
	ContributionFloor   float64
	RecencyHalfLifeDays float64
	TopN                int

	// Matching
	JobFile     string
	JobText     string // Posting text given inline (MCP), takes precedence over JobFile
	CompanyName string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ArchivePathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile        string `mapstructure:"output-file"`
	Limit             int    `mapstructure:"limit"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	Detail            bool   `mapstructure:"detail"`
	Width             int    `mapstructure:"width"`
	SnapshotBackend   string `mapstructure:"snapshot-backend"`
	SnapshotDBConnect string `mapstructure:"snapshot-db-connect"`
	Color             string `mapstructure:"color"`
	Verbose           bool   `mapstructure:"verbose"`
	PrefsPath         string `mapstructure:"prefs-path"`
	User              string `mapstructure:"user"`
	AsOf              string `mapstructure:"as-of"`

	// --- Fields from analyzeCmd.Flags() ---
	ProjectID      string  `mapstructure:"project-id"`
	AnalysisMode   string  `mapstructure:"analysis-mode"`
	MetadataOutput string  `mapstructure:"metadata-output"`
	SummaryOutput  string  `mapstructure:"summary-output"`
	MainUser       string  `mapstructure:"main-user"`
	IncludeBots    bool    `mapstructure:"include-bots"`
	MinConfidence  float64 `mapstructure:"min-confidence"`

	// --- Fields from rankCmd.Flags() ---
	Explain bool `mapstructure:"explain"`

	// --- Fields from skillsCmd.Flags() ---
	Top int `mapstructure:"top"`

	// --- Fields from matchCmd.Flags() ---
	JobFile string `mapstructure:"job-file"`
	Company string `mapstructure:"company"`

	// --- Sections from the config file ---
	Ranking       RankingRawInput `mapstructure:"ranking"`
	Collaboration CollabRawInput  `mapstructure:"collaboration"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.RankingWeights != nil {
		clone.RankingWeights = make(map[schema.BreakdownKey]float64, len(c.RankingWeights))
		maps.Copy(clone.RankingWeights, c.RankingWeights)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAnalysisInputs(cfg, input); err != nil {
		return err
	}
	if err := processRankingInputs(cfg, input, time.Now()); err != nil {
		return err
	}
	processMatchInputs(cfg, input)
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("snapshot-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("snapshot-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates output and storage fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose
	cfg.PrefsPath = input.PrefsPath
	if cfg.PrefsPath == "" {
		cfg.PrefsPath = GetPreferencesFilePath()
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.Limit = input.Limit

	if input.Precision < 1 || input.Precision > 6 {
		return fmt.Errorf("precision must be between 1 and 6 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	cfg.SnapshotBackend = schema.DatabaseBackend(strings.ToLower(input.SnapshotBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.SnapshotBackend]; !ok {
		return fmt.Errorf("invalid snapshot backend '%s'. must be sqlite, mysql, postgresql, none", input.SnapshotBackend)
	}
	cfg.SnapshotDBConnect = input.SnapshotDBConnect
	return ValidateDatabaseConnectionString(cfg.SnapshotBackend, cfg.SnapshotDBConnect)
}

// processAnalysisInputs handles the analyze command fields and collaboration weights.
func processAnalysisInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.ArchivePath = strings.TrimSpace(input.ArchivePathStr)
	cfg.ProjectID = strings.TrimSpace(input.ProjectID)
	cfg.MetadataOutput = input.MetadataOutput
	cfg.SummaryOutput = input.SummaryOutput
	cfg.MainUser = strings.TrimSpace(input.MainUser)
	cfg.IncludeBots = input.IncludeBots

	// Unknown modes are resolved to local later with a warning, so only normalize here.
	cfg.AnalysisMode = schema.AnalysisMode(strings.ToLower(strings.TrimSpace(input.AnalysisMode)))
	if cfg.AnalysisMode == "" {
		cfg.AnalysisMode = schema.LocalMode
	}

	if input.MinConfidence < 0 || input.MinConfidence > 1 {
		return fmt.Errorf("min-confidence must be between 0.0 and 1.0 (received %.3f)", input.MinConfidence)
	}
	cfg.MinConfidence = input.MinConfidence

	weights, err := ProcessCollabWeights(input.Collaboration)
	if err != nil {
		return err
	}
	cfg.CollabWeights = weights
	return nil
}

// ProcessCollabWeights merges configured collaboration weights over the defaults.
func ProcessCollabWeights(raw CollabRawInput) (CollabWeights, error) {
	weights := DefaultCollabWeights()
	if raw.Weights.Commit != nil {
		weights.Commit = *raw.Weights.Commit
	}
	if raw.Weights.Review != nil {
		weights.Review = *raw.Weights.Review
	}
	if raw.Weights.Lines != nil {
		weights.Lines = *raw.Weights.Lines
	}
	if weights.Commit < 0 || weights.Review < 0 || weights.Lines < 0 {
		return CollabWeights{}, fmt.Errorf("collaboration weights must be non-negative")
	}
	return weights, nil
}

// processRankingInputs handles the reference time, ranking weights and ranking knobs.
func processRankingInputs(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.User = strings.TrimSpace(input.User)

	asOf, err := ParseAsOf(input.AsOf, now)
	if err != nil {
		return err
	}
	cfg.AsOf = asOf

	cfg.TopN = input.Top
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}

	weights, err := ProcessRankingWeights(input.Ranking.Weights, true)
	if err != nil {
		return err
	}
	cfg.RankingWeights = weights

	cfg.ContributionFloor = DefaultContributionFloor
	if input.Ranking.ContributionFloor != nil {
		floor := *input.Ranking.ContributionFloor
		if floor <= 0 || floor > 1 {
			return fmt.Errorf("ranking contribution-floor must be greater than 0.0 and at most 1.0 (received %.3f)", floor)
		}
		cfg.ContributionFloor = floor
	}

	cfg.RecencyHalfLifeDays = DefaultRecencyHalfLifeDays
	if input.Ranking.RecencyHalfLifeDays != nil {
		halfLife := *input.Ranking.RecencyHalfLifeDays
		if halfLife <= 0 {
			return fmt.Errorf("ranking recency-half-life-days must be greater than 0 (received %.3f)", halfLife)
		}
		cfg.RecencyHalfLifeDays = halfLife
	}
	return nil
}

// processMatchInputs handles the match command fields.
func processMatchInputs(cfg *Config, input *ConfigRawInput) {
	cfg.JobFile = strings.TrimSpace(input.JobFile)
	cfg.CompanyName = strings.TrimSpace(input.Company)
}

// ProcessRankingWeights merges custom ranking weights over the defaults.
// If validateSum is true and any weight was provided, the merged weights must sum to 1.0.
func ProcessRankingWeights(raw RankingWeightsRaw, validateSum bool) (map[schema.BreakdownKey]float64, error) {
	weights := schema.GetDefaultWeights()
	custom := map[schema.BreakdownKey]*float64{
		schema.BreakdownArtifact:  raw.Artifact,
		schema.BreakdownBytes:     raw.Bytes,
		schema.BreakdownRecency:   raw.Recency,
		schema.BreakdownActivity:  raw.Activity,
		schema.BreakdownDiversity: raw.Diversity,
	}

	provided := false
	for key, value := range custom {
		if value == nil {
			continue
		}
		if *value < 0 {
			return nil, fmt.Errorf("ranking weight %s must be non-negative, got %.3f", key, *value)
		}
		weights[key] = *value
		provided = true
	}

	if validateSum && provided {
		sum := 0.0
		for _, w := range weights {
			sum += w
		}
		if math.Abs(sum-1.0) > 0.001 {
			return nil, fmt.Errorf("ranking weights must sum to 1.0, got %.3f", sum)
		}
	}
	return weights, nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
