// Package agg has aggregation logic for archive file records.
package agg

import (
	"sort"
	"time"

	"github.com/folioscope/folio/schema"
)

// MonthLayout is the key format of the monthly timeline.
const MonthLayout = "2006-01"

// dayLayout is the key format used to count distinct active days.
const dayLayout = "2006-01-02"

// ComputeMetrics reduces file records into a MetricSummary.
// An empty input is valid and yields a zeroed summary with nil timestamps.
func ComputeMetrics(records []schema.FileRecord) schema.MetricSummary {
	summary := schema.MetricSummary{
		ActivityBreakdown: make(map[schema.ActivityKind]int),
		Timeline:          make(map[string]int),
	}
	if len(records) == 0 {
		return summary
	}

	// 1. Sort modification timestamps to find earliest and latest
	stamps := make([]time.Time, 0, len(records))
	for _, r := range records {
		stamps = append(stamps, r.Modified)
	}
	sort.Slice(stamps, func(i, j int) bool {
		return stamps[i].Before(stamps[j])
	})
	earliest, latest := stamps[0], stamps[len(stamps)-1]
	duration := int(latest.Sub(earliest) / (24 * time.Hour))

	summary.EarliestModified = &earliest
	summary.LatestModified = &latest
	summary.DurationDays = &duration

	// 2. Single pass for totals, activity kinds, days and months
	activeDays := make(map[string]struct{}, len(records))
	for _, r := range records {
		summary.FileCount++
		summary.TotalBytes += r.Size
		summary.ActivityBreakdown[r.Activity]++
		activeDays[r.Modified.Format(dayLayout)] = struct{}{}
		summary.Timeline[r.Modified.Format(MonthLayout)]++
	}
	summary.ActiveDays = len(activeDays)

	return summary
}

// PeakMonth returns the busiest month of a timeline and its count.
// Ties go to the earlier month. It returns "" when the timeline is empty.
func PeakMonth(timeline map[string]int) (string, int) {
	months := make([]string, 0, len(timeline))
	for m := range timeline {
		months = append(months, m)
	}
	sort.Strings(months)

	var peak string
	var count int
	for _, m := range months {
		if timeline[m] > count {
			peak, count = m, timeline[m]
		}
	}
	return peak, count
}
