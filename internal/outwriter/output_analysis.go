package outwriter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// PrintAnalysis outputs the outcome of one archive analysis.
// JSON output is the summary document itself.
func PrintAnalysis(doc *schema.SummaryDocument, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, doc)
		}, "Wrote JSON")
	case schema.CSVOut, schema.ParquetOut:
		return unsupportedOutput(cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAnalysisText(w, doc, cfg, duration)
		}, "Wrote text")
	}
}

func writeAnalysisText(w io.Writer, doc *schema.SummaryDocument, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	fs := doc.FileSummary

	lines := []string{
		fmt.Sprintf("📦 %s -> %s", doc.Archive, doc.ProjectID),
		fmt.Sprintf("Mode:           %s (requested %s; %s)", doc.ResolvedMode, doc.RequestedMode, doc.ModeReason),
		fmt.Sprintf("Files:          %s (%s) across %d active days", humanize.Comma(int64(fs.FileCount)), humanize.Bytes(uint64(max(fs.TotalBytes, 0))), fs.ActiveDays),
		fmt.Sprintf("Classification: %s", contract.GetColorClassification(doc.Classification)),
	}
	if doc.PrimaryContributor != "" {
		lines = append(lines, fmt.Sprintf("Primary:        %s", doc.PrimaryContributor))
	}
	if len(doc.Languages) > 0 {
		top := schema.TopCounts(doc.Languages, 5)
		parts := make([]string, len(top))
		for i, lang := range top {
			parts[i] = fmt.Sprintf("%s (%d)", lang, doc.Languages[lang])
		}
		lines = append(lines, fmt.Sprintf("Languages:      %s", strings.Join(parts, ", ")))
	}
	if len(doc.Frameworks) > 0 {
		lines = append(lines, fmt.Sprintf("Frameworks:     %s", strings.Join(doc.Frameworks, ", ")))
	}
	if len(doc.Tools) > 0 {
		lines = append(lines, fmt.Sprintf("Tools:          %s", strings.Join(doc.Tools, ", ")))
	}
	if len(doc.Collaboration.HumanContributors) > 0 {
		lines = append(lines, fmt.Sprintf("Contributors:   %s", schema.FormatContributors(schema.TopContributors(doc.Collaboration.HumanContributors, 5))))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(doc.Skills) > 0 {
		limit := min(len(doc.Skills), cfg.Limit)
		if limit <= 0 {
			limit = len(doc.Skills)
		}
		data := make([][]string, 0, limit)
		for _, s := range doc.Skills[:limit] {
			data = append(data, []string{s.Skill, s.Category, fmtFloat(s.Confidence)})
		}
		if err := writeTable(w, []string{"Skill", "Category", "Confidence"}, data); err != nil {
			return err
		}
	}

	outputs := []string{
		fmt.Sprintf("Metadata: %s", doc.MetadataOutput),
		fmt.Sprintf("Summary:  %s", doc.SummaryOutput),
		fmt.Sprintf("Analysis completed in %v (scan %.4fs). Snapshot backend: %s", duration, doc.ScanDurationSeconds, cfg.SnapshotBackend),
	}
	for _, line := range outputs {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
