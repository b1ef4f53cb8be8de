// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"time"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis prints the outcome of one archive analysis.
func (ow *OutWriter) WriteAnalysis(doc *schema.SummaryDocument, cfg *contract.Config, duration time.Duration) error {
	return PrintAnalysis(doc, cfg, duration)
}

// WriteRankings prints ranked projects using the configured output format.
func (ow *OutWriter) WriteRankings(rankings []schema.ProjectRanking, cfg *contract.Config, duration time.Duration) error {
	return PrintRankings(rankings, cfg, duration)
}

// WriteSummaries prints evidence-backed project summaries.
func (ow *OutWriter) WriteSummaries(summaries []schema.ProjectSummary, cfg *contract.Config) error {
	return PrintSummaries(summaries, cfg)
}

// WriteSkills prints the skill report of one project.
func (ow *OutWriter) WriteSkills(report schema.SkillReport, cfg *contract.Config) error {
	return PrintSkills(report, cfg)
}

// WriteMatch prints how well one project covers a job posting.
func (ow *OutWriter) WriteMatch(m schema.JobMatch, cfg *contract.Config) error {
	return PrintMatch(m, cfg)
}

// WriteProjectTimeline prints the cross-project timeline.
func (ow *OutWriter) WriteProjectTimeline(rows []schema.ProjectTimelineRow, cfg *contract.Config) error {
	return PrintProjectTimeline(rows, cfg)
}

// WriteSkillTimeline prints the cross-project skill timeline.
func (ow *OutWriter) WriteSkillTimeline(rows []schema.SkillTimelineRow, cfg *contract.Config) error {
	return PrintSkillTimeline(rows, cfg)
}

// WriteSnapshot prints one stored snapshot.
func (ow *OutWriter) WriteSnapshot(rec *schema.SnapshotRecord, cfg *contract.Config) error {
	return PrintSnapshot(rec, cfg)
}

// WriteHistory prints a page of stored snapshots.
func (ow *OutWriter) WriteHistory(records []schema.SnapshotRecord, cfg *contract.Config) error {
	return PrintHistory(records, cfg)
}

// WriteStoreStatus prints snapshot store status.
func (ow *OutWriter) WriteStoreStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return PrintStoreStatus(status, cfg)
}

// WriteWeights prints the ranking formula with the active weights.
func (ow *OutWriter) WriteWeights(cfg *contract.Config) error {
	return PrintWeights(cfg)
}

// WritePreferences prints the stored consent and external permissions.
func (ow *OutWriter) WritePreferences(prefs schema.Preferences, cfg *contract.Config) error {
	return PrintPreferences(prefs, cfg)
}

// unsupportedOutput reports an output mode a command cannot produce.
func unsupportedOutput(mode schema.OutputMode) error {
	return fmt.Errorf("output format %q is not supported here; parquet is only available from 'folio snapshots export'", mode)
}

// getMaxTableIDWidth calculates the maximum width for project ids in table output
// based on terminal width and table configuration.
func getMaxTableIDWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 25 // Rank + Score + Label with borders/padding

	if cfg.Detail {
		baseWidth += 60 // Files + Size + Active + Recency + Diversity + Contribution
	}
	if cfg.Explain {
		baseWidth += 35
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 20

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 50 {
		return 50
	}
	return available
}
