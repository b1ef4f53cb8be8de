// Package parquet provides row models and writers for exporting folio
// snapshots to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/folioscope/folio/schema"
	"github.com/parquet-go/parquet-go"
)

// SnapshotRow is one stored snapshot flattened into columns.
// This struct maps to the folio_snapshots table plus the headline metrics of its body.
type SnapshotRow struct {
	// ID is the store row identifier
	ID int64 `parquet:"id,snappy"`

	// ProjectID identifies the analyzed project
	ProjectID string `parquet:"project_id,snappy"`

	// Classification is the collaboration classification at analysis time
	Classification string `parquet:"classification,snappy"`

	// PrimaryContributor is the lead human contributor (nullable)
	PrimaryContributor *string `parquet:"primary_contributor,optional,snappy"`

	SchemaVersion int32  `parquet:"schema_version,snappy"`
	Checksum      string `parquet:"checksum,snappy"`

	// CreatedAt is when the snapshot was stored (TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`

	FileCount  int64 `parquet:"file_count,snappy"`
	TotalBytes int64 `parquet:"total_bytes,snappy"`
	ActiveDays int32 `parquet:"active_days,snappy"`

	// DurationDays is the whole-day span of modifications (nullable for empty archives)
	DurationDays *int32 `parquet:"duration_days,optional,snappy"`

	// LatestModification is the newest file timestamp (nullable for empty archives)
	LatestModification *time.Time `parquet:"latest_modification,optional,snappy"`

	// Languages is a comma-joined sorted list of detected languages
	Languages  string `parquet:"languages,snappy"`
	Frameworks string `parquet:"frameworks,snappy"`
	Tools      string `parquet:"tools,snappy"`

	HumanContributors int32 `parquet:"human_contributors,snappy"`
	BotContributors   int32 `parquet:"bot_contributors,snappy"`

	// TopSkill is the highest-confidence skill (nullable when no skills survived)
	TopSkill *string `parquet:"top_skill,optional,snappy"`
}

// SkillRow is one skill score of one stored snapshot.
type SkillRow struct {
	SnapshotID int64     `parquet:"snapshot_id,snappy"`
	ProjectID  string    `parquet:"project_id,snappy"`
	Skill      string    `parquet:"skill,snappy"`
	Category   string    `parquet:"category,snappy"`
	Confidence float64   `parquet:"confidence,snappy"`
	CreatedAt  time.Time `parquet:"created_at,snappy"`
}

// writeRows writes rows of any parquet-tagged struct to outputPath.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteSnapshotsParquet writes snapshot rows to a Parquet file.
func WriteSnapshotsParquet(data []SnapshotRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteSkillsParquet writes skill rows to a Parquet file.
func WriteSkillsParquet(data []SkillRow, outputPath string) error {
	return writeRows(data, outputPath)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ConvertSnapshotRecords flattens stored records into snapshot rows.
func ConvertSnapshotRecords(records []schema.SnapshotRecord) []SnapshotRow {
	result := make([]SnapshotRow, len(records))
	for i, record := range records {
		snap := record.Snapshot
		summary := snap.FileSummary
		row := SnapshotRow{
			ID:                 record.ID,
			ProjectID:          record.ProjectID,
			Classification:     string(record.Classification),
			PrimaryContributor: optionalString(record.PrimaryContributor),
			SchemaVersion:      int32(record.SchemaVersion),
			Checksum:           record.Checksum,
			CreatedAt:          record.CreatedAt,
			FileCount:          int64(summary.FileCount),
			TotalBytes:         summary.TotalBytes,
			ActiveDays:         int32(summary.ActiveDays),
			LatestModification: summary.LatestModified,
			Languages:          strings.Join(sortedKeys(snap.Languages), ","),
			Frameworks:         strings.Join(snap.Frameworks, ","),
			Tools:              strings.Join(snap.Tools, ","),
			HumanContributors:  int32(len(snap.Collaboration.HumanContributors)),
			BotContributors:    int32(len(snap.Collaboration.BotContributors)),
		}
		if summary.DurationDays != nil {
			days := int32(*summary.DurationDays)
			row.DurationDays = &days
		}
		if len(snap.Skills) > 0 {
			row.TopSkill = optionalString(snap.Skills[0].Skill)
		}
		result[i] = row
	}
	return result
}

// ConvertSkillRows emits one row per skill score across all records.
func ConvertSkillRows(records []schema.SnapshotRecord) []SkillRow {
	var result []SkillRow
	for _, record := range records {
		for _, s := range record.Snapshot.Skills {
			result = append(result, SkillRow{
				SnapshotID: record.ID,
				ProjectID:  record.ProjectID,
				Skill:      s.Skill,
				Category:   s.Category,
				Confidence: s.Confidence,
				CreatedAt:  record.CreatedAt,
			})
		}
	}
	return result
}
