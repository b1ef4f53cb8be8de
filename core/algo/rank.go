// Package algo has the project ranking engine.
package algo

import (
	"math"
	"sort"
	"time"

	"github.com/folioscope/folio/schema"
)

// Default ranking parameters.
const (
	DefaultContributionFloor   = 0.1
	DefaultRecencyHalfLifeDays = 30.0
)

// RankOptions tunes RankProjects.
type RankOptions struct {
	Weights             map[schema.BreakdownKey]float64 // nil means schema.GetDefaultWeights
	ContributionFloor   float64                         // <= 0 means DefaultContributionFloor
	RecencyHalfLifeDays float64                         // <= 0 means DefaultRecencyHalfLifeDays
	User                string                          // contributor whose share scales the score
	Now                 time.Time                       // zero means time.Now
}

func (o RankOptions) withDefaults() RankOptions {
	if o.Weights == nil {
		o.Weights = schema.GetDefaultWeights()
	}
	if o.ContributionFloor <= 0 {
		o.ContributionFloor = DefaultContributionFloor
	}
	if o.RecencyHalfLifeDays <= 0 {
		o.RecencyHalfLifeDays = DefaultRecencyHalfLifeDays
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// ExtractFeatures derives the ranking inputs of one snapshot.
// Missing fields count as zero.
func ExtractFeatures(projectID string, snapshot schema.Snapshot, user string) schema.ProjectFeatureSet {
	summary := snapshot.FileSummary
	return schema.ProjectFeatureSet{
		ProjectID:          projectID,
		ArtifactCount:      summary.FileCount,
		TotalBytes:         summary.TotalBytes,
		LatestModification: summary.LatestModified,
		ActiveDays:         summary.ActiveDays,
		ActivityKinds:      len(summary.ActivityBreakdown),
		LanguageDiversity:  len(snapshot.Languages) + len(snapshot.Frameworks),
		ContributionRatio:  contributionRatio(snapshot, user),
	}
}

// contributionRatio is the target contributor's share of recorded commits.
// With a user, the target is that user, and a user who never committed gets 0
// so the ranking floor applies. Without one, the target is the primary
// contributor, else the largest contributor. It is 1 when nothing was recorded.
func contributionRatio(snapshot schema.Snapshot, user string) float64 {
	counts := snapshot.Collaboration.Contributors
	total := 0
	for _, c := range counts {
		total += c
	}
	if total <= 0 {
		return 1.0
	}
	if user != "" {
		return float64(counts[user]) / float64(total)
	}

	target := snapshot.Collaboration.PrimaryContributor
	if target == "" {
		target = snapshot.PrimaryContributor
	}
	if _, ok := counts[target]; !ok {
		target = largestContributor(counts)
	}
	return float64(counts[target]) / float64(total)
}

// largestContributor picks the highest count, ties going to the lowest name.
func largestContributor(counts map[string]int) string {
	best, bestCount := "", -1
	for name, c := range counts {
		if c > bestCount || (c == bestCount && name < best) {
			best, bestCount = name, c
		}
	}
	return best
}

// recencyScore is a hyperbolic decay: 1 / (1 + days/halfLife).
// A missing timestamp scores 0.
func recencyScore(latest *time.Time, now time.Time, halfLife float64) (score float64, days float64) {
	if latest == nil || latest.IsZero() {
		return 0, 0
	}
	days = math.Max(now.Sub(*latest).Seconds()/86400.0, 0)
	return 1.0 / (1.0 + days/halfLife), days
}

// normalizer divides by the maximum of the candidate set, or returns 0 when it is not positive.
func normalizer(maxValue float64) func(float64) float64 {
	return func(v float64) float64 {
		if maxValue <= 0 {
			return 0
		}
		return v / maxValue
	}
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// RankProjects scores feature sets and returns them best first.
// Ties keep input order. An empty input yields an empty list.
func RankProjects(features []schema.ProjectFeatureSet, opts RankOptions) []schema.ProjectRanking {
	opts = opts.withDefaults()
	if len(features) == 0 {
		return []schema.ProjectRanking{}
	}

	var maxArtifacts, maxBytes, maxActive, maxDiversity float64
	for _, f := range features {
		maxArtifacts = math.Max(maxArtifacts, float64(f.ArtifactCount))
		maxBytes = math.Max(maxBytes, float64(f.TotalBytes))
		maxActive = math.Max(maxActive, float64(f.ActiveDays))
		maxDiversity = math.Max(maxDiversity, float64(f.LanguageDiversity+f.ActivityKinds))
	}
	normArtifacts := normalizer(maxArtifacts)
	normBytes := normalizer(maxBytes)
	normActive := normalizer(maxActive)
	normDiversity := normalizer(maxDiversity)

	rankings := make([]schema.ProjectRanking, 0, len(features))
	for _, f := range features {
		recency, days := recencyScore(f.LatestModification, opts.Now, opts.RecencyHalfLifeDays)
		ratio := math.Max(f.ContributionRatio, opts.ContributionFloor)
		diversity := f.LanguageDiversity + f.ActivityKinds

		breakdown := map[schema.BreakdownKey]float64{
			schema.BreakdownArtifact:  normArtifacts(float64(f.ArtifactCount)),
			schema.BreakdownBytes:     normBytes(float64(f.TotalBytes)),
			schema.BreakdownRecency:   recency,
			schema.BreakdownActivity:  normActive(float64(f.ActiveDays)),
			schema.BreakdownDiversity: normDiversity(float64(diversity)),
		}

		var composite float64
		for _, key := range schema.AllBreakdownKeys {
			composite += opts.Weights[key] * breakdown[key]
		}

		rankings = append(rankings, schema.ProjectRanking{
			ProjectID: f.ProjectID,
			Score:     round(composite*ratio, 6),
			Breakdown: breakdown,
			Details: map[schema.DetailKey]float64{
				schema.DetailArtifactCount:     float64(f.ArtifactCount),
				schema.DetailTotalBytes:        float64(f.TotalBytes),
				schema.DetailRecencyDays:       round(days, 2),
				schema.DetailActiveDays:        float64(f.ActiveDays),
				schema.DetailDiversityElements: float64(diversity),
				schema.DetailContribution:      round(ratio, 4),
			},
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})
	return rankings
}

// RankSnapshots ranks stored records in the order given.
func RankSnapshots(records []schema.SnapshotRecord, opts RankOptions) []schema.ProjectRanking {
	features := make([]schema.ProjectFeatureSet, 0, len(records))
	for _, r := range records {
		projectID := r.ProjectID
		if projectID == "" {
			projectID = r.Snapshot.ProjectID
		}
		features = append(features, ExtractFeatures(projectID, r.Snapshot, opts.User))
	}
	return RankProjects(features, opts)
}

// RankSnapshotMap ranks a project id to snapshot map. Keys are visited in
// ascending order so ties are deterministic.
func RankSnapshotMap(snapshots map[string]schema.Snapshot, opts RankOptions) []schema.ProjectRanking {
	ids := make([]string, 0, len(snapshots))
	for id := range snapshots {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	features := make([]schema.ProjectFeatureSet, 0, len(ids))
	for _, id := range ids {
		features = append(features, ExtractFeatures(id, snapshots[id], opts.User))
	}
	return RankProjects(features, opts)
}

// LimitRankings returns at most limit rankings. A non-positive limit keeps all.
func LimitRankings(rankings []schema.ProjectRanking, limit int) []schema.ProjectRanking {
	if limit > 0 && len(rankings) > limit {
		return rankings[:limit]
	}
	return rankings
}
