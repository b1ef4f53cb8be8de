package agg

import (
	"testing"
	"time"

	"github.com/folioscope/folio/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(path string, size int64, at time.Time, kind schema.ActivityKind) schema.FileRecord {
	return schema.FileRecord{Path: path, Size: size, Modified: at, Activity: kind}
}

func TestComputeMetricsEmpty(t *testing.T) {
	summary := ComputeMetrics(nil)

	assert.Equal(t, 0, summary.FileCount)
	assert.Equal(t, int64(0), summary.TotalBytes)
	assert.Nil(t, summary.EarliestModified)
	assert.Nil(t, summary.LatestModified)
	assert.Nil(t, summary.DurationDays)
	assert.Equal(t, 0, summary.ActiveDays)
	assert.NotNil(t, summary.ActivityBreakdown)
	assert.Empty(t, summary.ActivityBreakdown)
	assert.NotNil(t, summary.Timeline)
	assert.Empty(t, summary.Timeline)
}

func TestComputeMetrics(t *testing.T) {
	base := time.Date(2024, time.January, 30, 9, 0, 0, 0, time.UTC)
	records := []schema.FileRecord{
		record("main.go", 100, base.Add(48*time.Hour), schema.CodeActivity),
		record("README.md", 20, base, schema.DocActivity),
		record("util.go", 50, base.Add(3*time.Hour), schema.CodeActivity),
		record("logo.png", 400, base.Add(40*24*time.Hour+time.Hour), schema.AssetActivity),
	}

	summary := ComputeMetrics(records)

	assert.Equal(t, 4, summary.FileCount)
	assert.Equal(t, int64(570), summary.TotalBytes)
	require.NotNil(t, summary.EarliestModified)
	require.NotNil(t, summary.LatestModified)
	require.NotNil(t, summary.DurationDays)
	assert.True(t, base.Equal(*summary.EarliestModified))
	assert.True(t, base.Add(40*24*time.Hour+time.Hour).Equal(*summary.LatestModified))
	assert.Equal(t, 40, *summary.DurationDays)
	assert.Equal(t, 3, summary.ActiveDays)
	assert.Equal(t, map[schema.ActivityKind]int{
		schema.CodeActivity:  2,
		schema.DocActivity:   1,
		schema.AssetActivity: 1,
	}, summary.ActivityBreakdown)
	assert.Equal(t, map[string]int{"2024-01": 2, "2024-02": 1, "2024-03": 1}, summary.Timeline)
}

func TestComputeMetricsDurationFloorsPartialDays(t *testing.T) {
	base := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	summary := ComputeMetrics([]schema.FileRecord{
		record("a", 1, base, schema.OtherActivity),
		record("b", 1, base.Add(47*time.Hour), schema.OtherActivity),
	})
	require.NotNil(t, summary.DurationDays)
	assert.Equal(t, 1, *summary.DurationDays)
}

func TestComputeMetricsActiveDaysBound(t *testing.T) {
	base := time.Date(2023, time.December, 31, 12, 0, 0, 0, time.UTC)
	var records []schema.FileRecord
	for i := range 50 {
		records = append(records, record("f", int64(i), base.Add(time.Duration(i*7)*time.Hour), schema.CodeActivity))
	}
	summary := ComputeMetrics(records)
	assert.LessOrEqual(t, summary.ActiveDays, summary.FileCount)
	assert.Equal(t, len(records), summary.FileCount)
}

func TestPeakMonth(t *testing.T) {
	month, count := PeakMonth(map[string]int{"2024-03": 4, "2024-01": 4, "2024-02": 1})
	assert.Equal(t, "2024-01", month)
	assert.Equal(t, 4, count)

	month, count = PeakMonth(nil)
	assert.Empty(t, month)
	assert.Zero(t, count)
}

// FuzzComputeMetrics checks the active-day bound for arbitrary timestamps.
func FuzzComputeMetrics(f *testing.F) {
	f.Add(int64(0), int64(86400), int64(3600))
	f.Add(int64(1700000000), int64(1600000000), int64(1))

	f.Fuzz(func(t *testing.T, a, b, c int64) {
		records := []schema.FileRecord{
			record("a", 1, time.Unix(a%1e9, 0).UTC(), schema.CodeActivity),
			record("b", 2, time.Unix(b%1e9, 0).UTC(), schema.DocActivity),
			record("c", 3, time.Unix(c%1e9, 0).UTC(), schema.OtherActivity),
		}
		summary := ComputeMetrics(records)
		if summary.ActiveDays > summary.FileCount {
			t.Errorf("active days %d exceed file count %d", summary.ActiveDays, summary.FileCount)
		}
		if summary.DurationDays == nil || *summary.DurationDays < 0 {
			t.Errorf("duration must be non-negative")
		}
	})
}

func BenchmarkComputeMetrics(b *testing.B) {
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	records := make([]schema.FileRecord, 0, 5000)
	for i := range 5000 {
		records = append(records, record("f", int64(i), base.Add(time.Duration(i)*time.Hour), schema.CodeActivity))
	}
	for b.Loop() {
		_ = ComputeMetrics(records)
	}
}
