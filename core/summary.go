package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/folioscope/folio/core/agg"
	"github.com/folioscope/folio/core/algo"
	"github.com/folioscope/folio/core/collab"
	"github.com/folioscope/folio/schema"
)

// DefaultSummaryLimit is how many top projects get a summary by default.
const DefaultSummaryLimit = 3

// maxHighlights caps the highlight lines of one summary.
const maxHighlights = 3

// Evidence kinds.
const (
	benchmarkEvidence = "benchmark"
	commitEvidence    = "commit"
)

// BuildProjectSummaries ranks the records and describes the top ones with evidence.
func BuildProjectSummaries(records []schema.SnapshotRecord, opts algo.RankOptions, limit int) []schema.ProjectSummary {
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}
	byProject := make(map[string]schema.SnapshotRecord, len(records))
	for _, rec := range records {
		byProject[rec.ProjectID] = rec
	}

	rankings := algo.LimitRankings(algo.RankSnapshots(records, opts), limit)
	summaries := make([]schema.ProjectSummary, 0, len(rankings))
	for i, ranking := range rankings {
		rec := byProject[ranking.ProjectID]
		evidence := GatherEvidence(rec.Snapshot)
		classification := rec.Classification
		if classification == "" {
			classification = rec.Snapshot.Classification
		}
		summaries = append(summaries, schema.ProjectSummary{
			Rank:           i + 1,
			ProjectID:      ranking.ProjectID,
			Score:          ranking.Score,
			Classification: classification,
			Highlights:     pickHighlights(evidence),
			Evidence:       evidence,
		})
	}
	return summaries
}

// GatherEvidence collects the facts a snapshot supports, numbered E1..En in order.
func GatherEvidence(snap schema.Snapshot) []schema.EvidenceItem {
	var evidence []schema.EvidenceItem
	add := func(kind, reference, detail string, weight float64) {
		evidence = append(evidence, schema.EvidenceItem{
			ID:        fmt.Sprintf("E%d", len(evidence)+1),
			Kind:      kind,
			Detail:    detail,
			Weight:    weight,
			Reference: reference,
		})
	}

	fs := snap.FileSummary
	if fs.FileCount > 0 {
		add(benchmarkEvidence, "analysis:file_count",
			fmt.Sprintf("Processed %d files totalling %d bytes", fs.FileCount, fs.TotalBytes), 1.0)
	}
	if fs.ActiveDays > 0 {
		add(benchmarkEvidence, "analysis:active_days",
			fmt.Sprintf("Active development across %d days", fs.ActiveDays), 0.8)
	}
	if month, count := agg.PeakMonth(fs.Timeline); month != "" {
		add(benchmarkEvidence, "analysis:timeline:"+month,
			fmt.Sprintf("Peak activity of %d updates during %s", count, month), 0.6)
	}

	if lang, count := leader(snap.Languages); lang != "" {
		add(commitEvidence, "languages:"+lang,
			fmt.Sprintf("%d languages spotted with %s leading (%d files)", len(snap.Languages), lang, count), 0.9)
	}

	if len(snap.Frameworks) > 0 {
		frameworks := append([]string(nil), snap.Frameworks...)
		sort.Strings(frameworks)
		add(commitEvidence, "frameworks",
			"Frameworks detected: "+strings.Join(frameworks, ", "), 0.7)
	}

	contributors := snap.Collaboration.Contributors
	if name, count := leader(contributors); name != "" {
		total := 0
		for _, c := range contributors {
			total += c
		}
		add(commitEvidence, "collaboration:contributors",
			fmt.Sprintf("%d commits recorded; %s leads with %d", total, name, count), 1.0)
		if len(contributors) > 1 {
			add(commitEvidence, "collaboration:concentration",
				fmt.Sprintf("Commit concentration (Gini) of %.2f across %d contributors",
					collab.Concentration(contributors), len(contributors)), 0.3)
		}
	} else if c := snap.Collaboration.Classification; c != "" {
		add(commitEvidence, "collaboration:classification",
			fmt.Sprintf("Collaboration classified as %s", c), 0.4)
	}

	return evidence
}

// pickHighlights renders the heaviest evidence items with their ids.
func pickHighlights(evidence []schema.EvidenceItem) []string {
	sorted := append([]schema.EvidenceItem(nil), evidence...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})
	highlights := make([]string, 0, maxHighlights)
	for _, item := range sorted {
		if len(highlights) == maxHighlights {
			break
		}
		highlights = append(highlights, fmt.Sprintf("%s [%s]", item.Detail, item.ID))
	}
	return highlights
}

// leader returns the key with the highest count; ties go to the smaller key.
func leader(counts map[string]int) (string, int) {
	best, bestCount := "", 0
	for k, c := range counts {
		if c > bestCount || (c == bestCount && c > 0 && k < best) {
			best, bestCount = k, c
		}
	}
	return best, bestCount
}
