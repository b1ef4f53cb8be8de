package core

import (
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/folioscope/folio/schema"
)

// BuildProjectTimeline lays the latest snapshot of each project out on a timeline.
// Rows are ordered by first activity, projects without timestamps first, then by project id.
func BuildProjectTimeline(records []schema.SnapshotRecord) []schema.ProjectTimelineRow {
	rows := make([]schema.ProjectTimelineRow, 0, len(records))
	for _, rec := range records {
		snap := rec.Snapshot
		classification := rec.Classification
		if classification == "" {
			classification = snap.Collaboration.Classification
		}
		if classification == "" {
			classification = schema.UnknownProject
		}
		primary := rec.PrimaryContributor
		if primary == "" {
			primary = snap.Collaboration.PrimaryContributor
		}
		frameworks := snap.Frameworks
		if frameworks == nil {
			frameworks = []string{}
		}
		rows = append(rows, schema.ProjectTimelineRow{
			ProjectID:          rec.ProjectID,
			FirstSeen:          snap.FileSummary.EarliestModified,
			LastSeen:           snap.FileSummary.LatestModified,
			Classification:     classification,
			PrimaryContributor: primary,
			Languages:          slices.Sorted(maps.Keys(snap.Languages)),
			Frameworks:         frameworks,
			TotalFiles:         snap.FileSummary.FileCount,
			TotalBytes:         snap.FileSummary.TotalBytes,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := compareTimePtr(rows[i].FirstSeen, rows[j].FirstSeen); c != 0 {
			return c < 0
		}
		return rows[i].ProjectID < rows[j].ProjectID
	})
	return rows
}

// BuildSkillTimelineRows aggregates skills across the latest snapshot of each project.
// Each (skill, category) pair spans the activity window of the projects that show it.
func BuildSkillTimelineRows(records []schema.SnapshotRecord) []schema.SkillTimelineRow {
	type key struct{ skill, category string }
	agg := make(map[key]*schema.SkillTimelineRow)

	for _, rec := range records {
		summary := rec.Snapshot.FileSummary
		for _, score := range rec.Snapshot.Skills {
			if score.Skill == "" {
				continue
			}
			category := score.Category
			if category == "" {
				category = schema.UnspecifiedCategory
			}
			k := key{score.Skill, category}
			row, ok := agg[k]
			if !ok {
				row = &schema.SkillTimelineRow{Skill: score.Skill, Category: category}
				agg[k] = row
			}
			if first := summary.EarliestModified; first != nil {
				if row.FirstSeen.IsZero() || first.Before(row.FirstSeen) {
					row.FirstSeen = *first
				}
			}
			if last := summary.LatestModified; last != nil {
				if row.LastSeen.IsZero() || last.After(row.LastSeen) {
					row.LastSeen = *last
				}
			}
			row.TotalWeight += score.Confidence
			row.Count++
		}
	}

	rows := make([]schema.SkillTimelineRow, 0, len(agg))
	for _, row := range agg {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].FirstSeen.Equal(rows[j].FirstSeen) {
			return rows[i].FirstSeen.Before(rows[j].FirstSeen)
		}
		if rows[i].Skill != rows[j].Skill {
			return rows[i].Skill < rows[j].Skill
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// compareTimePtr orders nil before any time.
func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}
