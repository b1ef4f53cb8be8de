package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// PrintSummaries outputs evidence-backed summaries of the top projects.
func PrintSummaries(summaries []schema.ProjectSummary, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summaries)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVSummaries(w, summaries, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return unsupportedOutput(cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummariesText(w, summaries, cfg, fmtFloat)
		}, "Wrote text")
	}
}

// writeSummariesText prints one block per project; --detail adds the evidence table.
func writeSummariesText(w io.Writer, summaries []schema.ProjectSummary, cfg *contract.Config, fmtFloat func(float64) string) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(w, "No stored snapshots to summarize. Run 'folio analyze <archive.zip>' first.")
		return err
	}

	for i, s := range summaries {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "#%d %s  score %s  %s  %s\n", s.Rank, s.ProjectID, fmtFloat(s.Score),
			contract.GetColorLabel(s.Score), contract.GetColorClassification(s.Classification)); err != nil {
			return err
		}
		for _, h := range s.Highlights {
			if _, err := fmt.Fprintf(w, "  - %s\n", h); err != nil {
				return err
			}
		}
		if !cfg.Detail || len(s.Evidence) == 0 {
			continue
		}

		data := make([][]string, 0, len(s.Evidence))
		for _, e := range s.Evidence {
			data = append(data, []string{e.ID, e.Kind, e.Detail, fmtFloat(e.Weight), e.Reference})
		}
		if err := writeTable(w, []string{"ID", "Kind", "Detail", "Weight", "Reference"}, data); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVSummaries writes one row per evidence item.
func writeCSVSummaries(w io.Writer, summaries []schema.ProjectSummary, fmtFloat func(float64) string) error {
	header := []string{"rank", "project_id", "score", "classification", "evidence_id", "kind", "detail", "weight", "reference"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range summaries {
			for _, e := range s.Evidence {
				rec := []string{
					strconv.Itoa(s.Rank),
					s.ProjectID,
					fmtFloat(s.Score),
					string(s.Classification),
					e.ID,
					e.Kind,
					e.Detail,
					fmtFloat(e.Weight),
					e.Reference,
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
