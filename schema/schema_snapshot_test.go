package schema_test

import (
	"testing"
	"time"

	"github.com/folioscope/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotCodec(t *testing.T) {
	latest := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	snap := schema.Snapshot{
		ProjectID:          "demo",
		Classification:     schema.CollaborativeProject,
		PrimaryContributor: "Alice",
		FileSummary: schema.MetricSummary{
			FileCount:         2,
			TotalBytes:        120,
			LatestModified:    &latest,
			ActivityBreakdown: map[schema.ActivityKind]int{schema.CodeActivity: 1, schema.DocActivity: 1},
		},
		Languages:  map[string]int{"Python": 1, "Markdown": 1},
		Frameworks: []string{"Flask"},
		CreatedAt:  latest,
	}

	data, err := schema.EncodeSnapshot(snap)
	require.NoError(t, err)

	decoded, err := schema.DecodeSnapshot(data)
	require.NoError(t, err)

	assert.Equal(t, schema.SnapshotSchemaVersion, decoded.SchemaVersion)
	assert.Equal(t, "demo", decoded.ProjectID)
	assert.Equal(t, schema.CollaborativeProject, decoded.Classification)
	assert.Equal(t, "Alice", decoded.PrimaryContributor)
	assert.Equal(t, 1, decoded.FileSummary.ActivityBreakdown[schema.CodeActivity])
	require.NotNil(t, decoded.FileSummary.LatestModified)
	assert.True(t, latest.Equal(*decoded.FileSummary.LatestModified))
	assert.Nil(t, decoded.FileSummary.EarliestModified)
	assert.Equal(t, []string{"Flask"}, decoded.Frameworks)
}

func TestDecodeSnapshot(t *testing.T) {
	t.Run("missing version defaults to current", func(t *testing.T) {
		s, err := schema.DecodeSnapshot([]byte(`{"project_id":"legacy","classification":"unknown"}`))
		require.NoError(t, err)
		assert.Equal(t, schema.SnapshotSchemaVersion, s.SchemaVersion)
		assert.Equal(t, "legacy", s.ProjectID)
	})

	t.Run("future version rejected", func(t *testing.T) {
		_, err := schema.DecodeSnapshot([]byte(`{"schema_version":99,"project_id":"x"}`))
		assert.ErrorContains(t, err, "unsupported snapshot schema version")
	})

	t.Run("malformed payload", func(t *testing.T) {
		_, err := schema.DecodeSnapshot([]byte(`{not json`))
		assert.Error(t, err)
	})
}

func TestSkillObservationCategory(t *testing.T) {
	assert.Equal(t, "language", schema.LanguageSkill("Go", 1).Category())
	assert.Equal(t, "framework", schema.FrameworkSkill("Flask", 1).Category())
	assert.Equal(t, "tool", schema.ToolSkill("Docker", 1).Category())
	assert.Equal(t, schema.UnspecifiedCategory, schema.SkillObservation{Name: "x", Weight: 1}.Category())
}
