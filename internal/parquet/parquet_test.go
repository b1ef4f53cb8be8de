package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/folioscope/folio/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []schema.SnapshotRecord {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	latest := time.Date(2025, 2, 20, 8, 30, 0, 0, time.UTC)
	duration := 40
	return []schema.SnapshotRecord{
		{
			ID:                 1,
			ProjectID:          "alpha",
			Classification:     schema.CollaborativeProject,
			PrimaryContributor: "Alice",
			SchemaVersion:      schema.SnapshotSchemaVersion,
			Checksum:           "00000000deadbeef",
			CreatedAt:          created,
			Snapshot: schema.Snapshot{
				ProjectID: "alpha",
				FileSummary: schema.MetricSummary{
					FileCount:      12,
					TotalBytes:     4096,
					ActiveDays:     5,
					DurationDays:   &duration,
					LatestModified: &latest,
				},
				Languages:  map[string]int{"Python": 7, "Go": 3},
				Frameworks: []string{"Django", "Flask"},
				Tools:      []string{"Docker"},
				Collaboration: schema.CollaborationSummary{
					HumanContributors: map[string]float64{"Alice": 0.7, "Bob": 0.3},
					BotContributors:   map[string]float64{"dependabot[bot]": 1},
				},
				Skills: []schema.SkillScore{
					{Skill: "Python", Confidence: 0.6, Category: "language"},
					{Skill: "Go", Confidence: 0.4, Category: "language"},
				},
			},
		},
		{
			ID:             2,
			ProjectID:      "empty",
			Classification: schema.UnknownProject,
			SchemaVersion:  schema.SnapshotSchemaVersion,
			CreatedAt:      created.Add(time.Hour),
		},
	}
}

func TestSnapshotRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(SnapshotRow))
	require.NotNil(t, s)

	expectedColumns := []string{
		"id", "project_id", "classification", "primary_contributor", "schema_version",
		"checksum", "created_at", "file_count", "total_bytes", "active_days",
		"duration_days", "latest_modification", "languages", "frameworks", "tools",
		"human_contributors", "bot_contributors", "top_skill",
	}
	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col)
	}
}

func TestConvertSnapshotRecords(t *testing.T) {
	rows := ConvertSnapshotRecords(sampleRecords())
	require.Len(t, rows, 2)

	full := rows[0]
	assert.Equal(t, "alpha", full.ProjectID)
	require.NotNil(t, full.PrimaryContributor)
	assert.Equal(t, "Alice", *full.PrimaryContributor)
	assert.Equal(t, "Go,Python", full.Languages)
	assert.Equal(t, "Django,Flask", full.Frameworks)
	assert.Equal(t, "Docker", full.Tools)
	assert.Equal(t, int32(2), full.HumanContributors)
	assert.Equal(t, int32(1), full.BotContributors)
	require.NotNil(t, full.DurationDays)
	assert.Equal(t, int32(40), *full.DurationDays)
	require.NotNil(t, full.TopSkill)
	assert.Equal(t, "Python", *full.TopSkill)

	empty := rows[1]
	assert.Nil(t, empty.PrimaryContributor)
	assert.Nil(t, empty.DurationDays)
	assert.Nil(t, empty.LatestModification)
	assert.Nil(t, empty.TopSkill)
	assert.Empty(t, empty.Languages)
}

func TestConvertSkillRows(t *testing.T) {
	rows := ConvertSkillRows(sampleRecords())
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].SnapshotID)
	assert.Equal(t, "Python", rows[0].Skill)
	assert.InDelta(t, 0.4, rows[1].Confidence, 1e-9)
}

func TestWriteSnapshotsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "snapshots.parquet")
	data := ConvertSnapshotRecords(sampleRecords())

	require.NoError(t, WriteSnapshotsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[SnapshotRow](file)
	defer reader.Close()

	readData := make([]SnapshotRow, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	for i := range data {
		assert.Equal(t, data[i].ID, readData[i].ID)
		assert.Equal(t, data[i].ProjectID, readData[i].ProjectID)
		assert.Equal(t, data[i].Languages, readData[i].Languages)
		assert.WithinDuration(t, data[i].CreatedAt, readData[i].CreatedAt, time.Nanosecond)
		if data[i].PrimaryContributor == nil {
			assert.Nil(t, readData[i].PrimaryContributor)
		} else {
			require.NotNil(t, readData[i].PrimaryContributor)
			assert.Equal(t, *data[i].PrimaryContributor, *readData[i].PrimaryContributor)
		}
	}
}

func TestWriteSkillsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "skills.parquet")
	data := ConvertSkillRows(sampleRecords())
	require.NoError(t, WriteSkillsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[SkillRow](file)
	defer reader.Close()
	assert.Equal(t, int64(len(data)), reader.NumRows())
}

func TestWriteSnapshotsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteSnapshotsParquet([]SnapshotRow{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteSnapshotsParquet_InvalidPath(t *testing.T) {
	err := WriteSnapshotsParquet(ConvertSnapshotRecords(sampleRecords()), "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}
