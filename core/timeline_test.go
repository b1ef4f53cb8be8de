package core

import (
	"testing"
	"time"

	"github.com/folioscope/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func timelineRecord(id string, first, last *time.Time, skills ...schema.SkillScore) schema.SnapshotRecord {
	return schema.SnapshotRecord{
		ProjectID:      id,
		Classification: schema.IndividualProject,
		Snapshot: schema.Snapshot{
			ProjectID: id,
			FileSummary: schema.MetricSummary{
				FileCount:        4,
				TotalBytes:       400,
				EarliestModified: first,
				LatestModified:   last,
			},
			Languages:  map[string]int{"Python": 2, "Go": 1},
			Frameworks: []string{"Flask"},
			Skills:     skills,
		},
	}
}

func TestBuildProjectTimeline(t *testing.T) {
	records := []schema.SnapshotRecord{
		timelineRecord("zeta", day(2023, 1, 1), day(2023, 6, 1)),
		timelineRecord("alpha", day(2024, 2, 1), day(2024, 3, 1)),
		timelineRecord("beta", day(2023, 1, 1), day(2023, 2, 1)),
		timelineRecord("empty", nil, nil),
	}
	records[3].Classification = ""
	records[3].Snapshot.Frameworks = nil

	rows := BuildProjectTimeline(records)
	require.Len(t, rows, 4)

	ids := []string{rows[0].ProjectID, rows[1].ProjectID, rows[2].ProjectID, rows[3].ProjectID}
	assert.Equal(t, []string{"empty", "beta", "zeta", "alpha"}, ids)
	assert.Equal(t, []string{"Go", "Python"}, rows[1].Languages)
	assert.Equal(t, schema.UnknownProject, rows[0].Classification)
	assert.Equal(t, []string{}, rows[0].Frameworks)
	assert.Equal(t, 4, rows[1].TotalFiles)
	assert.Equal(t, int64(400), rows[1].TotalBytes)
}

func TestBuildSkillTimelineRows(t *testing.T) {
	records := []schema.SnapshotRecord{
		timelineRecord("a", day(2023, 5, 1), day(2023, 9, 1),
			schema.SkillScore{Skill: "Python", Confidence: 0.7, Category: "language"},
			schema.SkillScore{Skill: "Flask", Confidence: 0.3, Category: "framework"}),
		timelineRecord("b", day(2022, 1, 1), day(2022, 12, 1),
			schema.SkillScore{Skill: "Python", Confidence: 0.5, Category: "language"},
			schema.SkillScore{Skill: "Bash", Confidence: 0.5}),
		timelineRecord("c", nil, nil, schema.SkillScore{Skill: ""}),
	}

	rows := BuildSkillTimelineRows(records)
	require.Len(t, rows, 3)

	assert.Equal(t, "Bash", rows[0].Skill)
	assert.Equal(t, schema.UnspecifiedCategory, rows[0].Category)
	assert.Equal(t, "Python", rows[1].Skill)
	assert.Equal(t, "Flask", rows[2].Skill)

	python := rows[1]
	assert.Equal(t, *day(2022, 1, 1), python.FirstSeen)
	assert.Equal(t, *day(2023, 9, 1), python.LastSeen)
	assert.InDelta(t, 1.2, python.TotalWeight, 1e-9)
	assert.Equal(t, 2, python.Count)
}

func TestBuildTimelinesEmpty(t *testing.T) {
	assert.Empty(t, BuildProjectTimeline(nil))
	assert.Empty(t, BuildSkillTimelineRows(nil))
}
