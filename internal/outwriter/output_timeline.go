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

// Column layouts for the timeline CSV exports.
var (
	ProjectTimelineHeader = []string{"project_id", "first_seen", "last_seen", "classification", "primary_contributor", "languages", "frameworks", "total_files", "total_bytes"}
	SkillTimelineHeader   = []string{"skill", "category", "first_seen", "last_seen", "total_weight", "count"}
)

// PrintProjectTimeline outputs the cross-project timeline.
func PrintProjectTimeline(rows []schema.ProjectTimelineRow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteProjectTimelineCSV(w, rows)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return unsupportedOutput(cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProjectTimelineTable(w, rows, cfg)
		}, "Wrote table")
	}
}

// WriteProjectTimelineCSV writes project timeline rows under ProjectTimelineHeader.
func WriteProjectTimelineCSV(w io.Writer, rows []schema.ProjectTimelineRow) error {
	return writeCSVWithHeader(w, ProjectTimelineHeader, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				r.ProjectID,
				formatTimePtr(r.FirstSeen),
				formatTimePtr(r.LastSeen),
				string(r.Classification),
				r.PrimaryContributor,
				strings.Join(r.Languages, ","),
				strings.Join(r.Frameworks, ","),
				strconv.Itoa(r.TotalFiles),
				strconv.FormatInt(r.TotalBytes, 10),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeProjectTimelineTable(w io.Writer, rows []schema.ProjectTimelineRow, cfg *contract.Config) error {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		first, last := "-", "-"
		if r.FirstSeen != nil {
			first = formatDate(*r.FirstSeen)
		}
		if r.LastSeen != nil {
			last = formatDate(*r.LastSeen)
		}
		data = append(data, []string{
			contract.TruncatePath(r.ProjectID, getMaxTableIDWidth(cfg)),
			first,
			last,
			contract.GetColorClassification(r.Classification),
			orDash(schema.AbbreviateName(r.PrimaryContributor)),
			orDash(strings.Join(r.Languages, ", ")),
			orDash(strings.Join(r.Frameworks, ", ")),
			strconv.Itoa(r.TotalFiles),
			humanize.Bytes(uint64(max(r.TotalBytes, 0))),
		})
	}
	if err := writeTable(w, []string{"Project", "First Seen", "Last Seen", "Class", "Primary", "Languages", "Frameworks", "Files", "Size"}, data); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d projects on the timeline\n", len(rows))
	return err
}

// PrintSkillTimeline outputs the cross-project skill timeline.
func PrintSkillTimeline(rows []schema.SkillTimelineRow, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteSkillTimelineCSV(w, rows, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return unsupportedOutput(cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			data := make([][]string, 0, len(rows))
			for _, r := range rows {
				data = append(data, []string{
					r.Skill, r.Category, formatDate(r.FirstSeen), formatDate(r.LastSeen),
					fmtFloat(r.TotalWeight), strconv.Itoa(r.Count),
				})
			}
			return writeTable(w, []string{"Skill", "Category", "First Seen", "Last Seen", "Weight", "Projects"}, data)
		}, "Wrote table")
	}
}

// WriteSkillTimelineCSV writes skill timeline rows under SkillTimelineHeader.
func WriteSkillTimelineCSV(w io.Writer, rows []schema.SkillTimelineRow, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, SkillTimelineHeader, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				r.Skill,
				r.Category,
				formatTime(r.FirstSeen),
				formatTime(r.LastSeen),
				fmtFloat(r.TotalWeight),
				strconv.Itoa(r.Count),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
