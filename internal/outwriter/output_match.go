package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// PrintMatch outputs how well one project covers a job posting.
func PrintMatch(m schema.JobMatch, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, m)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVMatch(w, m, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return unsupportedOutput(cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMatchText(w, m, fmtFloat)
		}, "Wrote table")
	}
}

func joinOrDash(values []string) string {
	return orDash(strings.Join(values, ", "))
}

func writeMatchText(w io.Writer, m schema.JobMatch, fmtFloat func(float64) string) error {
	target := m.ProjectID
	if m.Company.CompanyName != "" {
		target += " at " + m.Company.CompanyName
	}
	if _, err := fmt.Fprintf(w, "Match for %s: %d of %d posting skills (coverage %s)\n",
		target, len(m.Matched), len(m.JobSkills), fmtFloat(m.Coverage)); err != nil {
		return err
	}

	if len(m.Matched) > 0 {
		data := make([][]string, 0, len(m.Matched))
		for _, s := range m.Matched {
			data = append(data, []string{s.Skill, orDash(s.Category), fmtFloat(s.Confidence)})
		}
		if err := writeTable(w, []string{"Skill", "Category", "Confidence"}, data); err != nil {
			return err
		}
	}

	lines := []string{
		"Missing: " + joinOrDash(m.Missing),
		"Values: " + joinOrDash(m.Company.Values),
		"Work style: " + joinOrDash(m.Company.WorkStyle),
		"Soft skills: " + joinOrDash(m.Company.SoftSkills),
		"",
		m.Snippet,
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// writeCSVMatch writes one row per posting skill, matched or missing.
func writeCSVMatch(w io.Writer, m schema.JobMatch, fmtFloat func(float64) string) error {
	header := []string{"project_id", "skill", "status", "category", "confidence"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range m.Matched {
			if err := cw.Write([]string{m.ProjectID, s.Skill, "matched", s.Category, fmtFloat(s.Confidence)}); err != nil {
				return err
			}
		}
		for _, name := range m.Missing {
			if err := cw.Write([]string{m.ProjectID, name, "missing", "", ""}); err != nil {
				return err
			}
		}
		return nil
	})
}
