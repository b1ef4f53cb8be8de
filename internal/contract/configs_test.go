package contract

import (
	"testing"
	"time"

	"github.com/folioscope/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:           10,
		Precision:       2,
		Output:          "text",
		Color:           "yes",
		SnapshotBackend: string(schema.SQLiteBackend),
		ArchivePathStr:  "project.zip",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError string
	}{
		{name: "valid minimal config"},
		{
			name:   "analysis mode normalized",
			mutate: func(in *ConfigRawInput) { in.AnalysisMode = " AUTO " },
		},
		{
			name: "mysql backend with connection string",
			mutate: func(in *ConfigRawInput) {
				in.SnapshotBackend, in.SnapshotDBConnect = "mysql", "user:pass@tcp(localhost:3306)/folio"
			},
		},
		{
			name:   "none backend",
			mutate: func(in *ConfigRawInput) { in.SnapshotBackend = "none" },
		},
		{
			name:        "invalid limit (zero)",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: "limit must be greater than 0",
		},
		{
			name:        "invalid limit (too large)",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: "cannot exceed",
		},
		{
			name:        "invalid precision",
			mutate:      func(in *ConfigRawInput) { in.Precision = 0 },
			expectError: "precision must be between",
		},
		{
			name:        "invalid output format",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: "invalid output format",
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: "invalid --color value",
		},
		{
			name:        "invalid snapshot backend",
			mutate:      func(in *ConfigRawInput) { in.SnapshotBackend = "redis" },
			expectError: "invalid snapshot backend",
		},
		{
			name:        "postgresql backend without connection string",
			mutate:      func(in *ConfigRawInput) { in.SnapshotBackend = "postgresql" },
			expectError: "snapshot-db-connect is required",
		},
		{
			name:        "min confidence out of range",
			mutate:      func(in *ConfigRawInput) { in.MinConfidence = 1.5 },
			expectError: "min-confidence must be between",
		},
		{
			name:        "invalid as-of",
			mutate:      func(in *ConfigRawInput) { in.AsOf = "last tuesday" },
			expectError: "invalid --as-of value",
		},
		{
			name: "ranking weights not summing to one",
			mutate: func(in *ConfigRawInput) {
				in.Ranking.Weights.Artifact = floatPtr(0.9)
			},
			expectError: "ranking weights must sum to 1.0",
		},
		{
			name:        "negative contribution floor",
			mutate:      func(in *ConfigRawInput) { in.Ranking.ContributionFloor = floatPtr(-0.1) },
			expectError: "contribution-floor",
		},
		{
			name:        "zero contribution floor",
			mutate:      func(in *ConfigRawInput) { in.Ranking.ContributionFloor = floatPtr(0) },
			expectError: "contribution-floor must be greater than 0.0",
		},
		{
			name:        "zero half life",
			mutate:      func(in *ConfigRawInput) { in.Ranking.RecencyHalfLifeDays = floatPtr(0) },
			expectError: "recency-half-life-days",
		},
		{
			name:        "negative collaboration weight",
			mutate:      func(in *ConfigRawInput) { in.Collaboration.Weights.Review = floatPtr(-1) },
			expectError: "collaboration weights must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			if tt.mutate != nil {
				tt.mutate(input)
			}

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)

			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, input.Limit, cfg.Limit)
			assert.Equal(t, "project.zip", cfg.ArchivePath)
			assert.NotEmpty(t, cfg.PrefsPath)
			assert.Equal(t, DefaultTopN, cfg.TopN)
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, schema.LocalMode, cfg.AnalysisMode)
	assert.Equal(t, schema.GetDefaultWeights(), cfg.RankingWeights)
	assert.Equal(t, DefaultContributionFloor, cfg.ContributionFloor)
	assert.Equal(t, DefaultRecencyHalfLifeDays, cfg.RecencyHalfLifeDays)
	assert.Equal(t, DefaultCollabWeights(), cfg.CollabWeights)
	assert.True(t, cfg.UseColors)
	assert.WithinDuration(t, time.Now(), cfg.AsOf, time.Minute)
}

func TestProcessMatchInputs(t *testing.T) {
	input := validInput()
	input.JobFile = " posting.txt "
	input.Company = "  Acme Robotics\n"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, "posting.txt", cfg.JobFile)
	assert.Equal(t, "Acme Robotics", cfg.CompanyName)
	assert.Empty(t, cfg.JobText)
}

func TestProcessRankingInputs(t *testing.T) {
	input := validInput()
	input.AsOf = "2024-06-01T00:00:00Z"
	input.Top = 3
	input.Ranking = RankingRawInput{
		Weights: RankingWeightsRaw{
			Artifact:  floatPtr(0.4),
			Bytes:     floatPtr(0.1),
			Recency:   floatPtr(0.1),
			Activity:  floatPtr(0.2),
			Diversity: floatPtr(0.2),
		},
		ContributionFloor:   floatPtr(0.25),
		RecencyHalfLifeDays: floatPtr(90),
	}

	cfg := &Config{}
	require.NoError(t, processRankingInputs(cfg, input, fixedNow))

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), cfg.AsOf)
	assert.Equal(t, 3, cfg.TopN)
	assert.InDelta(t, 0.4, cfg.RankingWeights[schema.BreakdownArtifact], 1e-9)
	assert.InDelta(t, 0.25, cfg.ContributionFloor, 1e-9)
	assert.InDelta(t, 90.0, cfg.RecencyHalfLifeDays, 1e-9)
}

func TestProcessRankingWeights(t *testing.T) {
	t.Run("no overrides keeps defaults", func(t *testing.T) {
		weights, err := ProcessRankingWeights(RankingWeightsRaw{}, true)
		require.NoError(t, err)
		assert.Equal(t, schema.GetDefaultWeights(), weights)
	})

	t.Run("partial override without sum validation", func(t *testing.T) {
		weights, err := ProcessRankingWeights(RankingWeightsRaw{Recency: floatPtr(0.5)}, false)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, weights[schema.BreakdownRecency], 1e-9)
		assert.InDelta(t, 0.2, weights[schema.BreakdownBytes], 1e-9)
	})

	t.Run("negative weight rejected", func(t *testing.T) {
		_, err := ProcessRankingWeights(RankingWeightsRaw{Bytes: floatPtr(-0.2)}, false)
		assert.ErrorContains(t, err, "must be non-negative")
	})
}

func TestProcessCollabWeights(t *testing.T) {
	var raw CollabRawInput
	raw.Weights.Lines = floatPtr(0.01)

	weights, err := ProcessCollabWeights(raw)
	require.NoError(t, err)
	assert.Equal(t, CollabWeights{Commit: 1.0, Review: 0.5, Lines: 0.01}, weights)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Limit: 5, RankingWeights: schema.GetDefaultWeights()}
	clone := cfg.Clone()
	clone.RankingWeights[schema.BreakdownBytes] = 0.9
	clone.Limit = 7

	assert.InDelta(t, 0.2, cfg.RankingWeights[schema.BreakdownBytes], 1e-9)
	assert.Equal(t, 5, cfg.Limit)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "u:p@tcp(db:3306)/folio", false},
		{"mysql missing tcp", schema.MySQLBackend, "u:p@db/folio", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=db dbname=folio", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=db", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
