package cmd

import (
	"os"

	"github.com/folioscope/folio/core"
	"github.com/folioscope/folio/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rankCmd ranks the latest snapshot of every stored project.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank stored projects by importance.",
	Long: `Score the latest snapshot of every project and order them from most to least important.

Each score is a weighted sum of normalized factors:
- artifact  - file count relative to the largest project
- bytes     - total size relative to the largest project
- recency   - how recently the project changed, decayed by a half-life
- activity  - distinct active days relative to the most active project
- diversity - languages, frameworks, and activity kinds

With --user, scores are scaled by that contributor's share of commits (never below
the configured contribution floor). Ties keep a stable order by project id.

Examples:
  # Rank everything as of now
  folio rank

  # Rank as a specific contributor, as of a past date
  folio rank --user "Alice" --as-of 2025-01-01

  # Show the per-factor breakdown
  folio rank --explain --limit 5

  # Export rankings to CSV
  folio rank --output csv --output-file rankings.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRank(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot rank projects", err)
		}
	},
}

// summariesCmd describes the top ranked projects with evidence.
var summariesCmd = &cobra.Command{
	Use:   "summaries",
	Short: "Summarize the top ranked projects with numbered evidence.",
	Long: `Build short, evidence-backed summaries of the highest ranked projects.

Every highlight cites the evidence it came from ([E1], [E2], ...). Evidence is drawn
from the stored snapshot: file counts, active days, the busiest month, languages,
frameworks, and commit activity.

Examples:
  # Summarize the top three projects
  folio summaries

  # Summarize the top five as a specific contributor
  folio summaries --limit 5 --user "Alice"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if !limitIsExplicit() {
			cfg.Limit = core.DefaultSummaryLimit
		}
		if err := core.ExecuteSummaries(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot summarize projects", err)
		}
	},
}

// weightsCmd displays the ranking formula.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Display the ranking formula and the active factor weights.",
	Long: `Show the ranking factors, what each one measures, and the weights in effect.

Custom weights come from the ranking section of .folio.yaml and must sum to 1.0:

  ranking:
    weights:
      artifact: 0.3
      recency: 0.3
      activity: 0.2
      diversity: 0.2
      bytes: 0.0
    contribution-floor: 0.1
    recency-half-life-days: 30

No snapshots are read - this is purely informational.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWeights(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot display weights", err)
		}
	},
}

// limitIsExplicit reports whether --limit came from a flag, the environment or the config file.
func limitIsExplicit() bool {
	return rootCmd.PersistentFlags().Changed("limit") || os.Getenv("FOLIO_LIMIT") != "" || viper.InConfig("limit")
}
