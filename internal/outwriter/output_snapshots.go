package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// PrintSnapshot outputs one stored snapshot; JSON carries the full payload.
func PrintSnapshot(rec *schema.SnapshotRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rec)
		}, "Wrote JSON")
	case schema.CSVOut:
		var records []schema.SnapshotRecord
		if rec != nil {
			records = append(records, *rec)
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVHistory(w, records)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return unsupportedOutput(cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSnapshotText(w, rec)
		}, "Wrote text")
	}
}

// writeSnapshotText prints a key/value view of one snapshot.
func writeSnapshotText(w io.Writer, rec *schema.SnapshotRecord) error {
	if rec == nil {
		_, err := fmt.Fprintln(w, "No snapshot found.")
		return err
	}
	s := rec.Snapshot
	lines := []string{
		fmt.Sprintf("Snapshot:       #%d (schema v%d, checksum %s)", rec.ID, rec.SchemaVersion, rec.Checksum),
		fmt.Sprintf("Project:        %s", rec.ProjectID),
		fmt.Sprintf("Created:        %s (%s)", formatTime(rec.CreatedAt), humanize.Time(rec.CreatedAt)),
		fmt.Sprintf("Classification: %s", contract.GetColorClassification(rec.Classification)),
		fmt.Sprintf("Primary:        %s", orDash(rec.PrimaryContributor)),
		fmt.Sprintf("Files:          %s (%s)", humanize.Comma(int64(s.FileSummary.FileCount)), humanize.Bytes(uint64(max(s.FileSummary.TotalBytes, 0)))),
		fmt.Sprintf("Active days:    %d", s.FileSummary.ActiveDays),
		fmt.Sprintf("Languages:      %s", orDash(strings.Join(schema.TopCounts(s.Languages, 0), ", "))),
		fmt.Sprintf("Frameworks:     %s", orDash(strings.Join(s.Frameworks, ", "))),
		fmt.Sprintf("Tools:          %s", orDash(strings.Join(s.Tools, ", "))),
		fmt.Sprintf("Contributors:   %s", orDash(schema.FormatContributors(schema.TopContributors(s.Collaboration.HumanContributors, 5)))),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// PrintHistory outputs a page of stored snapshots, newest first.
func PrintHistory(records []schema.SnapshotRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVHistory(w, records)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return unsupportedOutput(cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			data := make([][]string, 0, len(records))
			for _, r := range records {
				data = append(data, []string{
					strconv.FormatInt(r.ID, 10),
					contract.TruncatePath(r.ProjectID, getMaxTableIDWidth(cfg)),
					formatTime(r.CreatedAt),
					contract.GetColorClassification(r.Classification),
					orDash(schema.AbbreviateName(r.PrimaryContributor)),
					humanize.Comma(int64(r.Snapshot.FileSummary.FileCount)),
					humanize.Bytes(uint64(max(r.Snapshot.FileSummary.TotalBytes, 0))),
				})
			}
			return writeTable(w, []string{"ID", "Project", "Created", "Class", "Primary", "Files", "Size"}, data)
		}, "Wrote table")
	}
}

// writeCSVHistory writes the stored columns plus headline metrics.
func writeCSVHistory(w io.Writer, records []schema.SnapshotRecord) error {
	header := []string{"id", "project_id", "created_at", "classification", "primary_contributor", "schema_version", "checksum", "file_count", "total_bytes", "active_days"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range records {
			rec := []string{
				strconv.FormatInt(r.ID, 10),
				r.ProjectID,
				formatTime(r.CreatedAt),
				string(r.Classification),
				r.PrimaryContributor,
				strconv.Itoa(r.SchemaVersion),
				r.Checksum,
				strconv.Itoa(r.Snapshot.FileSummary.FileCount),
				strconv.FormatInt(r.Snapshot.FileSummary.TotalBytes, 10),
				strconv.Itoa(r.Snapshot.FileSummary.ActiveDays),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// PrintStoreStatus outputs snapshot store status information.
func PrintStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeStoreStatusText(w, status)
	}, "Wrote text")
}

func writeStoreStatusText(w io.Writer, status schema.StoreStatus) error {
	lines := []string{
		fmt.Sprintf("Snapshot Backend: %s", status.Backend),
		fmt.Sprintf("Connected: %t", status.Connected),
	}
	if status.Location != "" {
		lines = append(lines, fmt.Sprintf("Location: %s", status.Location))
	}
	if status.Connected {
		lines = append(lines,
			fmt.Sprintf("Total Snapshots: %s", humanize.Comma(status.TotalSnapshots)),
			fmt.Sprintf("Total Projects: %s", humanize.Comma(status.TotalProjects)),
		)
		if status.TotalSnapshots > 0 {
			lines = append(lines,
				fmt.Sprintf("Latest Snapshot ID: %d", status.LatestSnapshotID),
				fmt.Sprintf("Latest Snapshot: %s (%s)", status.LatestSnapshotTime.Format("2006-01-02 15:04:05"), humanize.Time(status.LatestSnapshotTime)),
				fmt.Sprintf("Oldest Snapshot: %s (%s)", status.OldestSnapshotTime.Format("2006-01-02 15:04:05"), humanize.Time(status.OldestSnapshotTime)),
				fmt.Sprintf("Schema Version: %d", status.SchemaVersion),
			)
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
