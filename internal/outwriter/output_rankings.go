package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// PrintRankings outputs ranked projects, dispatching based on the output format configured.
func PrintRankings(rankings []schema.ProjectRanking, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONRankings(w, rankings)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVRankings(w, rankings, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return unsupportedOutput(cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRankingsTable(w, rankings, cfg, fmtFloat, intFmt, duration)
		}, "Wrote table")
	}
}

// writeRankingsTable generates and writes the human-readable table.
func writeRankingsTable(w io.Writer, rankings []schema.ProjectRanking, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	headers := []string{"Rank", "Project", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Files", "Size", "Active", "Recency", "Diversity", "Contrib")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}

	var data [][]string
	for i, r := range rankings {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(r.ProjectID, getMaxTableIDWidth(cfg)),
			fmtFloat(r.Score),
			contract.GetColorLabel(r.Score),
		}
		if cfg.Detail {
			row = append(row,
				fmt.Sprintf(intFmt, int64(r.Details[schema.DetailArtifactCount])),
				humanize.Bytes(uint64(r.Details[schema.DetailTotalBytes])),
				fmt.Sprintf(intFmt, int64(r.Details[schema.DetailActiveDays])),
				formatRecencyDays(r),
				fmt.Sprintf(intFmt, int64(r.Details[schema.DetailDiversityElements])),
				fmtFloat(r.Details[schema.DetailContribution]),
			)
		}
		if cfg.Explain {
			row = append(row, formatTopBreakdown(r, cfg.RankingWeights))
		}
		data = append(data, row)
	}

	if err := writeTable(w, headers, data); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing top %d projects as of %s\n", len(rankings), formatDate(cfg.AsOf)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Ranking completed in %v. Snapshot backend: %s\n", duration, cfg.SnapshotBackend); err != nil {
		return err
	}
	return nil
}

// formatRecencyDays renders the raw recency detail; projects without timestamps show "-".
func formatRecencyDays(r schema.ProjectRanking) string {
	if r.Breakdown[schema.BreakdownRecency] == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fd", r.Details[schema.DetailRecencyDays])
}

// formatTopBreakdown lists the three largest weighted factor contributions.
func formatTopBreakdown(r schema.ProjectRanking, weights map[schema.BreakdownKey]float64) string {
	if weights == nil {
		weights = schema.GetDefaultWeights()
	}

	type part struct {
		key   schema.BreakdownKey
		value float64
	}
	var parts []part
	for _, key := range schema.AllBreakdownKeys {
		contribution := r.Breakdown[key] * weights[key]
		if contribution > 0 {
			parts = append(parts, part{key, contribution})
		}
	}
	sort.SliceStable(parts, func(i, j int) bool { return parts[i].value > parts[j].value })
	if len(parts) > 3 {
		parts = parts[:3]
	}

	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = fmt.Sprintf("%s %.2f", p.key, p.value)
	}
	return strings.Join(out, ", ")
}

// writeCSVRankings writes ranked projects in CSV format.
func writeCSVRankings(w io.Writer, rankings []schema.ProjectRanking, fmtFloat func(float64) string) error {
	header := []string{
		"rank", "project_id", "score", "label",
		string(schema.DetailArtifactCount),
		string(schema.DetailTotalBytes),
		string(schema.DetailRecencyDays),
		string(schema.DetailActiveDays),
		string(schema.DetailDiversityElements),
		string(schema.DetailContribution),
	}
	for _, key := range schema.AllBreakdownKeys {
		header = append(header, string(key))
	}

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range rankings {
			rec := []string{
				strconv.Itoa(i + 1),
				r.ProjectID,
				fmtFloat(r.Score),
				schema.GetPlainLabel(r.Score),
				strconv.FormatInt(int64(r.Details[schema.DetailArtifactCount]), 10),
				strconv.FormatInt(int64(r.Details[schema.DetailTotalBytes]), 10),
				fmtFloat(r.Details[schema.DetailRecencyDays]),
				strconv.FormatInt(int64(r.Details[schema.DetailActiveDays]), 10),
				strconv.FormatInt(int64(r.Details[schema.DetailDiversityElements]), 10),
				fmtFloat(r.Details[schema.DetailContribution]),
			}
			for _, key := range schema.AllBreakdownKeys {
				rec = append(rec, fmtFloat(r.Breakdown[key]))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONRankings writes ranked projects with rank and label added.
func writeJSONRankings(w io.Writer, rankings []schema.ProjectRanking) error {
	return writeJSON(w, schema.EnrichRankings(rankings))
}
