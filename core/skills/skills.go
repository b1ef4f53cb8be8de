// Package skills turns weighted skill observations into confidence scores and timelines.
package skills

import (
	"fmt"
	"sort"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// DefaultTopN is the number of skills kept per year by TopSkillsByYear.
const DefaultTopN = 5

// ComputeSkillScores groups observations by skill name and normalizes their
// summed weights into confidences. Observations with weight <= 0 are discarded,
// scores under minConfidence are dropped, and the result is ordered by
// descending confidence then ascending name.
func ComputeSkillScores(observations []schema.SkillObservation, minConfidence float64) []schema.SkillScore {
	type bucket struct {
		weight   float64
		category string
	}

	totals := make(map[string]*bucket)
	order := make([]string, 0)
	total := 0.0

	for _, obs := range observations {
		if obs.Weight <= 0 || obs.Name == "" {
			continue
		}
		total += obs.Weight
		b, ok := totals[obs.Name]
		if !ok {
			// The first category seen for a skill wins
			b = &bucket{category: obs.Category()}
			totals[obs.Name] = b
			order = append(order, obs.Name)
		}
		b.weight += obs.Weight
	}

	if total == 0 {
		return []schema.SkillScore{}
	}

	scores := make([]schema.SkillScore, 0, len(order))
	for _, name := range order {
		b := totals[name]
		scores = append(scores, schema.SkillScore{Skill: name, Confidence: b.weight / total, Category: b.category})
	}

	scores = DropUnderThreshold(scores, minConfidence)
	sortScores(scores)
	return scores
}

// DropUnderThreshold filters out scores whose confidence is below threshold.
func DropUnderThreshold(scores []schema.SkillScore, threshold float64) []schema.SkillScore {
	kept := make([]schema.SkillScore, 0, len(scores))
	for _, s := range scores {
		if s.Confidence >= threshold {
			kept = append(kept, s)
		}
	}
	return kept
}

// sortScores orders by descending confidence, then ascending name.
func sortScores(scores []schema.SkillScore) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Confidence != scores[j].Confidence {
			return scores[i].Confidence > scores[j].Confidence
		}
		return scores[i].Skill < scores[j].Skill
	})
}

// quarterKey returns the "YYYY-Qn" bucket of a timestamp.
func quarterKey(year int, month int) string {
	return fmt.Sprintf("%d-Q%d", year, (month-1)/3+1)
}

// BuildSkillTimeline folds dated skill events into one entry per skill.
// Events without a skill or a usable timestamp are skipped. Intensity is
// normalized against the heaviest skill in this call only.
func BuildSkillTimeline(events []schema.SkillEvent) []schema.SkillTimelineEntry {
	buckets := make(map[string]*schema.SkillTimelineEntry)

	for _, ev := range events {
		if ev.Skill == "" {
			continue
		}
		at := ev.At
		if at.IsZero() {
			parsed, ok := contract.ParseTimestamp(ev.Raw)
			if !ok {
				continue
			}
			at = parsed
		}

		entry, ok := buckets[ev.Skill]
		if !ok {
			category := ev.Category
			if category == "" {
				category = schema.UnspecifiedCategory
			}
			entry = &schema.SkillTimelineEntry{
				Skill:         ev.Skill,
				Category:      category,
				FirstSeen:     at,
				LastSeen:      at,
				YearCounts:    make(map[string]float64),
				QuarterCounts: make(map[string]float64),
			}
			buckets[ev.Skill] = entry
		}

		entry.TotalWeight += ev.Weight
		if at.Before(entry.FirstSeen) {
			entry.FirstSeen = at
		}
		if at.After(entry.LastSeen) {
			entry.LastSeen = at
		}
		entry.YearCounts[fmt.Sprintf("%d", at.Year())] += ev.Weight
		entry.QuarterCounts[quarterKey(at.Year(), int(at.Month()))] += ev.Weight
	}

	if len(buckets) == 0 {
		return []schema.SkillTimelineEntry{}
	}

	maxWeight := 0.0
	for _, entry := range buckets {
		maxWeight = max(maxWeight, entry.TotalWeight)
	}
	if maxWeight == 0 {
		maxWeight = 1.0
	}

	entries := make([]schema.SkillTimelineEntry, 0, len(buckets))
	for _, entry := range buckets {
		entry.Intensity = entry.TotalWeight / maxWeight
		entries = append(entries, *entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Skill < entries[j].Skill
	})
	return entries
}

// TopSkillsByYear ranks skills per year by summed weight, descending, with
// ties broken by ascending name, and keeps the top n. A non-positive n uses DefaultTopN.
func TopSkillsByYear(entries []schema.SkillTimelineEntry, n int) map[string][]schema.YearSkill {
	if n <= 0 {
		n = DefaultTopN
	}

	perYear := make(map[string]map[string]float64)
	for _, entry := range entries {
		for year, weight := range entry.YearCounts {
			if perYear[year] == nil {
				perYear[year] = make(map[string]float64)
			}
			perYear[year][entry.Skill] += weight
		}
	}

	result := make(map[string][]schema.YearSkill, len(perYear))
	for year, skills := range perYear {
		ranked := make([]schema.YearSkill, 0, len(skills))
		for skill, weight := range skills {
			ranked = append(ranked, schema.YearSkill{Skill: skill, Weight: weight})
		}
		sort.Slice(ranked, func(i, j int) bool {
			if ranked[i].Weight != ranked[j].Weight {
				return ranked[i].Weight > ranked[j].Weight
			}
			return ranked[i].Skill < ranked[j].Skill
		})
		if len(ranked) > n {
			ranked = ranked[:n]
		}
		result[year] = ranked
	}
	return result
}
