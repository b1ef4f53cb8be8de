package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// factorDescriptions documents each ranking factor for display.
var factorDescriptions = map[schema.BreakdownKey][2]string{
	schema.BreakdownArtifact:  {"Artifacts", "File count normalized by the largest project"},
	schema.BreakdownBytes:     {"Bytes", "Total size normalized by the largest project"},
	schema.BreakdownRecency:   {"Recency", "1 / (1 + days since last change / half-life)"},
	schema.BreakdownActivity:  {"Activity", "Distinct active days normalized by the most active project"},
	schema.BreakdownDiversity: {"Diversity", "Languages + frameworks + activity kinds, normalized"},
}

// PrintWeights displays the ranking formula with the active weights.
// This is a static display that does not require stored snapshots.
func PrintWeights(cfg *contract.Config) error {
	model := buildWeightsRenderModel(cfg.RankingWeights, cfg.ContributionFloor, cfg.RecencyHalfLifeDays)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWeights(w, model)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return unsupportedOutput(cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeightsText(w, model)
		}, "Wrote text")
	}
}

// formatWeights formats weights for display in formulas.
func formatWeights(weights map[schema.BreakdownKey]float64) string {
	var parts []string
	for _, key := range schema.AllBreakdownKeys {
		if weight, ok := weights[key]; ok && weight > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*%s", weight, key))
		}
	}
	return strings.Join(parts, "+")
}

// buildWeightsRenderModel constructs the complete render model with all processed data.
func buildWeightsRenderModel(active map[schema.BreakdownKey]float64, floor, halfLife float64) *schema.WeightsRenderModel {
	weights := schema.GetDefaultWeights()
	for k, v := range active {
		weights[k] = v
	}

	factors := make([]schema.RankingFactor, 0, len(schema.AllBreakdownKeys))
	for _, key := range schema.AllBreakdownKeys {
		desc := factorDescriptions[key]
		factors = append(factors, schema.RankingFactor{
			Key:         key,
			Name:        desc[0],
			Description: desc[1],
			Weight:      weights[key],
		})
	}

	return &schema.WeightsRenderModel{
		Title:             "Folio Project Ranking",
		Description:       "Score = (weighted sum of normalized factors) * max(contribution ratio, floor)",
		Factors:           factors,
		Formula:           formatWeights(weights),
		ContributionFloor: floor,
		RecencyHalfLife:   halfLife,
	}
}

func writeWeightsText(w io.Writer, model *schema.WeightsRenderModel) error {
	lines := []string{
		"📊 " + model.Title,
		strings.Repeat("=", len(model.Title)+3),
		"",
		model.Description,
		"",
	}
	for _, f := range model.Factors {
		lines = append(lines, fmt.Sprintf("%-10s %.2f  %s", f.Name, f.Weight, f.Description))
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Formula: Score = (%s) * max(contribution, %.2f)", model.Formula, model.ContributionFloor),
		fmt.Sprintf("Recency half-life: %.1f days", model.RecencyHalfLife),
	)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVWeights writes one row per ranking factor.
func writeCSVWeights(w io.Writer, model *schema.WeightsRenderModel) error {
	return writeCSVWithHeader(w, []string{"key", "name", "weight", "description"}, func(cw *csv.Writer) error {
		for _, f := range model.Factors {
			if err := cw.Write([]string{string(f.Key), f.Name, fmt.Sprintf("%.4f", f.Weight), f.Description}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
