package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// PrintSkills outputs the skill report of one project.
func PrintSkills(report schema.SkillReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVSkills(w, report, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return unsupportedOutput(cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSkillsText(w, report, fmtFloat)
		}, "Wrote table")
	}
}

// timelineBySkill indexes timeline entries by skill name.
func timelineBySkill(entries []schema.SkillTimelineEntry) map[string]schema.SkillTimelineEntry {
	out := make(map[string]schema.SkillTimelineEntry, len(entries))
	for _, e := range entries {
		out[e.Skill] = e
	}
	return out
}

// writeSkillsText prints scored skills joined with their timeline, then top skills per year.
func writeSkillsText(w io.Writer, report schema.SkillReport, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintf(w, "Skills for %s (snapshot %s)\n", report.ProjectID, formatDate(report.CreatedAt)); err != nil {
		return err
	}

	timeline := timelineBySkill(report.Timeline)
	data := make([][]string, 0, len(report.Scores))
	for _, s := range report.Scores {
		entry, ok := timeline[s.Skill]
		row := []string{s.Skill, s.Category, fmtFloat(s.Confidence), "-", "-", "-"}
		if ok {
			row[3] = formatDate(entry.FirstSeen)
			row[4] = formatDate(entry.LastSeen)
			row[5] = fmtFloat(entry.Intensity)
		}
		data = append(data, row)
	}
	if err := writeTable(w, []string{"Skill", "Category", "Confidence", "First Seen", "Last Seen", "Intensity"}, data); err != nil {
		return err
	}

	years := make([]string, 0, len(report.TopByYear))
	for year := range report.TopByYear {
		years = append(years, year)
	}
	slices.Sort(years)
	for _, year := range years {
		names := make([]string, 0, len(report.TopByYear[year]))
		for _, ys := range report.TopByYear[year] {
			names = append(names, fmt.Sprintf("%s (%s)", ys.Skill, fmtFloat(ys.Weight)))
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", year, strings.Join(names, ", ")); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVSkills writes one row per scored skill.
func writeCSVSkills(w io.Writer, report schema.SkillReport, fmtFloat func(float64) string) error {
	header := []string{"project_id", "skill", "category", "confidence", "first_seen", "last_seen", "total_weight", "intensity"}
	timeline := timelineBySkill(report.Timeline)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range report.Scores {
			entry := timeline[s.Skill]
			rec := []string{
				report.ProjectID,
				s.Skill,
				s.Category,
				fmtFloat(s.Confidence),
				formatTime(entry.FirstSeen),
				formatTime(entry.LastSeen),
				fmtFloat(entry.TotalWeight),
				fmtFloat(entry.Intensity),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
