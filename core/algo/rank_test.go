package algo

import (
	"testing"
	"time"

	"github.com/folioscope/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func snapshotAt(latest time.Time) schema.Snapshot {
	return schema.Snapshot{
		FileSummary: schema.MetricSummary{
			FileCount:         10,
			TotalBytes:        2048,
			LatestModified:    &latest,
			ActiveDays:        4,
			ActivityBreakdown: map[schema.ActivityKind]int{schema.CodeActivity: 8, schema.DocActivity: 2},
		},
		Languages:  map[string]int{"Go": 8},
		Frameworks: []string{"Cobra"},
	}
}

func TestRankSnapshotMapRecencyOrder(t *testing.T) {
	snapshots := map[string]schema.Snapshot{
		"ancient": snapshotAt(now.Add(-800 * 24 * time.Hour)),
		"fresh":   snapshotAt(now.Add(-2 * 24 * time.Hour)),
		"monthly": snapshotAt(now.Add(-30 * 24 * time.Hour)),
	}

	rankings := RankSnapshotMap(snapshots, RankOptions{Now: now})
	require.Len(t, rankings, 3)
	assert.Equal(t, "fresh", rankings[0].ProjectID)
	assert.Equal(t, "monthly", rankings[1].ProjectID)
	assert.Equal(t, "ancient", rankings[2].ProjectID)

	assert.InDelta(t, 1.0/(1.0+2.0/30.0), rankings[0].Breakdown[schema.BreakdownRecency], 1e-9)
	assert.InDelta(t, 0.5, rankings[1].Breakdown[schema.BreakdownRecency], 1e-9)
	assert.InDelta(t, 2.0, rankings[0].Details[schema.DetailRecencyDays], 1e-9)
}

func TestRankSnapshotMapIdempotent(t *testing.T) {
	snapshots := map[string]schema.Snapshot{
		"a": snapshotAt(now.Add(-10 * 24 * time.Hour)),
		"b": snapshotAt(now.Add(-10 * 24 * time.Hour)),
		"c": snapshotAt(now.Add(-1 * 24 * time.Hour)),
		"d": {},
	}
	opts := RankOptions{Now: now, User: "Alice"}

	first := RankSnapshotMap(snapshots, opts)
	second := RankSnapshotMap(snapshots, opts)
	assert.Equal(t, first, second)

	// Ties keep key order
	assert.Equal(t, "c", first[0].ProjectID)
	assert.Equal(t, "a", first[1].ProjectID)
	assert.Equal(t, "b", first[2].ProjectID)
	assert.Equal(t, "d", first[3].ProjectID)
}

func TestRankProjectsEmpty(t *testing.T) {
	rankings := RankProjects(nil, RankOptions{})
	assert.NotNil(t, rankings)
	assert.Empty(t, rankings)
}

func TestRankProjectsComposite(t *testing.T) {
	latest := now.Add(-30 * 24 * time.Hour)
	features := []schema.ProjectFeatureSet{
		{ProjectID: "big", ArtifactCount: 100, TotalBytes: 1000, LatestModification: &latest, ActiveDays: 10, ActivityKinds: 2, LanguageDiversity: 3, ContributionRatio: 1},
		{ProjectID: "small", ArtifactCount: 50, TotalBytes: 250, ActiveDays: 5, ActivityKinds: 1, LanguageDiversity: 0, ContributionRatio: 0.5},
	}

	rankings := RankProjects(features, RankOptions{Now: now})
	require.Len(t, rankings, 2)

	big := rankings[0]
	assert.Equal(t, "big", big.ProjectID)
	// 0.2 * (1 + 1 + 0.5 + 1 + 1) * 1.0
	assert.InDelta(t, 0.9, big.Score, 1e-9)

	small := rankings[1]
	// 0.2 * (0.5 + 0.25 + 0 + 0.5 + 0.2) * 0.5
	assert.InDelta(t, 0.145, small.Score, 1e-9)
	assert.InDelta(t, 0.0, small.Breakdown[schema.BreakdownRecency], 1e-9)
	assert.InDelta(t, 1.0, small.Details[schema.DetailDiversityElements], 1e-9)
	assert.InDelta(t, 0.5, small.Details[schema.DetailContribution], 1e-9)
}

func TestRankProjectsZeroMaxima(t *testing.T) {
	features := []schema.ProjectFeatureSet{{ProjectID: "empty"}, {ProjectID: "also-empty"}}
	rankings := RankProjects(features, RankOptions{Now: now})
	require.Len(t, rankings, 2)
	for _, r := range rankings {
		assert.Zero(t, r.Score)
		for _, key := range schema.AllBreakdownKeys {
			assert.Zero(t, r.Breakdown[key])
		}
		assert.InDelta(t, DefaultContributionFloor, r.Details[schema.DetailContribution], 1e-9)
	}
	assert.Equal(t, "empty", rankings[0].ProjectID)
}

func TestRankProjectsCustomOptions(t *testing.T) {
	latest := now.Add(-90 * 24 * time.Hour)
	features := []schema.ProjectFeatureSet{
		{ProjectID: "p", ArtifactCount: 1, LatestModification: &latest, ContributionRatio: 0.05},
	}
	weights := map[schema.BreakdownKey]float64{schema.BreakdownRecency: 1.0}

	rankings := RankProjects(features, RankOptions{
		Weights:             weights,
		ContributionFloor:   0.25,
		RecencyHalfLifeDays: 90,
		Now:                 now,
	})
	require.Len(t, rankings, 1)
	assert.InDelta(t, 0.5*0.25, rankings[0].Score, 1e-9)
}

func TestExtractFeaturesContributionRatio(t *testing.T) {
	snap := snapshotAt(now)
	snap.Collaboration = schema.CollaborationSummary{
		Contributors:       map[string]int{"Alice": 6, "Bob": 3, "Carol": 1},
		PrimaryContributor: "Bob",
	}

	tests := []struct {
		name string
		user string
		want float64
	}{
		{"explicit user", "Alice", 0.6},
		{"primary contributor fallback", "", 0.3},
		{"user without commits has no share", "Zed", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := ExtractFeatures("p", snap, tt.user)
			assert.InDelta(t, tt.want, features.ContributionRatio, 1e-9)
		})
	}

	t.Run("largest contributor when no primary", func(t *testing.T) {
		snap.Collaboration.PrimaryContributor = ""
		assert.InDelta(t, 0.6, ExtractFeatures("p", snap, "").ContributionRatio, 1e-9)
	})

	t.Run("no contributors counts as full ownership", func(t *testing.T) {
		assert.InDelta(t, 1.0, ExtractFeatures("p", schema.Snapshot{}, "Alice").ContributionRatio, 1e-9)
	})
}

func TestRankSnapshotMapUserOwnership(t *testing.T) {
	solo := snapshotAt(now)
	solo.Collaboration = schema.CollaborationSummary{
		Contributors:       map[string]int{"Bob": 9, "Carol": 1},
		PrimaryContributor: "Bob",
	}
	minor := snapshotAt(now)
	minor.Collaboration = schema.CollaborationSummary{
		Contributors:       map[string]int{"Alice": 2, "Bob": 8},
		PrimaryContributor: "Bob",
	}

	rankings := RankSnapshotMap(map[string]schema.Snapshot{
		"bob-solo":    solo,
		"alice-minor": minor,
	}, RankOptions{User: "Alice", Now: now})
	require.Len(t, rankings, 2)

	assert.Equal(t, "alice-minor", rankings[0].ProjectID)
	assert.InDelta(t, 0.2, rankings[0].Details[schema.DetailContribution], 1e-9)
	assert.Equal(t, "bob-solo", rankings[1].ProjectID)
	assert.InDelta(t, DefaultContributionFloor, rankings[1].Details[schema.DetailContribution], 1e-9)
	assert.InDelta(t, rankings[0].Score/2, rankings[1].Score, 1e-6)
}

func TestExtractFeatures(t *testing.T) {
	features := ExtractFeatures("proj", snapshotAt(now), "")
	assert.Equal(t, "proj", features.ProjectID)
	assert.Equal(t, 10, features.ArtifactCount)
	assert.Equal(t, int64(2048), features.TotalBytes)
	assert.Equal(t, 4, features.ActiveDays)
	assert.Equal(t, 2, features.ActivityKinds)
	assert.Equal(t, 2, features.LanguageDiversity)
}

func TestRankSnapshots(t *testing.T) {
	records := []schema.SnapshotRecord{
		{ProjectID: "old", Snapshot: snapshotAt(now.Add(-400 * 24 * time.Hour))},
		{Snapshot: schema.Snapshot{ProjectID: "embedded"}},
		{ProjectID: "new", Snapshot: snapshotAt(now)},
	}
	rankings := RankSnapshots(records, RankOptions{Now: now})
	require.Len(t, rankings, 3)
	assert.Equal(t, "new", rankings[0].ProjectID)
	assert.Equal(t, "old", rankings[1].ProjectID)
	assert.Equal(t, "embedded", rankings[2].ProjectID)
}

func TestLimitRankings(t *testing.T) {
	rankings := []schema.ProjectRanking{{ProjectID: "a"}, {ProjectID: "b"}, {ProjectID: "c"}}
	assert.Len(t, LimitRankings(rankings, 2), 2)
	assert.Len(t, LimitRankings(rankings, 0), 3)
	assert.Len(t, LimitRankings(rankings, 10), 3)
}

// FuzzRankProjects checks scores stay within [0, 1] under default weights.
func FuzzRankProjects(f *testing.F) {
	f.Add(10, int64(100), 3, 2, 1, 0.5, int64(86400))
	f.Add(0, int64(0), 0, 0, 0, 0.0, int64(0))

	f.Fuzz(func(t *testing.T, files int, size int64, active, kinds, langs int, ratio float64, ageSecs int64) {
		if files < 0 || size < 0 || active < 0 || kinds < 0 || langs < 0 || ratio < 0 || ratio > 1 || ageSecs < 0 {
			return
		}
		latest := now.Add(-time.Duration(ageSecs%1e9) * time.Second)
		features := []schema.ProjectFeatureSet{
			{ProjectID: "x", ArtifactCount: files, TotalBytes: size, LatestModification: &latest, ActiveDays: active, ActivityKinds: kinds, LanguageDiversity: langs, ContributionRatio: ratio},
			{ProjectID: "y", ArtifactCount: 1, TotalBytes: 1, ActiveDays: 1},
		}
		for _, r := range RankProjects(features, RankOptions{Now: now}) {
			if r.Score < 0 || r.Score > 1 {
				t.Errorf("score %f out of range", r.Score)
			}
		}
	})
}

func BenchmarkRankProjects(b *testing.B) {
	latest := now.Add(-48 * time.Hour)
	features := make([]schema.ProjectFeatureSet, 0, 1000)
	for i := range 1000 {
		features = append(features, schema.ProjectFeatureSet{
			ProjectID:          "p",
			ArtifactCount:      i,
			TotalBytes:         int64(i * 100),
			LatestModification: &latest,
			ActiveDays:         i % 30,
			ContributionRatio:  0.5,
		})
	}
	for b.Loop() {
		_ = RankProjects(features, RankOptions{Now: now})
	}
}
