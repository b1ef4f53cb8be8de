package cmd

import (
	"fmt"
	"os"

	"github.com/folioscope/folio/core"
	"github.com/folioscope/folio/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd analyzes one project archive and stores its snapshot.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <archive.zip>",
	Short: "Analyze a zipped project folder and store a snapshot.",
	Long: `Read every file inside a .zip archive and build a snapshot of the project.

For each archive, folio:
- Counts files, bytes, and active days from entry timestamps
- Detects languages, frameworks (from manifests), and tools
- Parses embedded git logs to classify the project as individual or collaborative
- Scores skills with confidence values and builds a skill timeline
- Writes <archive>.metadata.jsonl and <archive>.summary.json beside the archive
- Stores a versioned, checksummed snapshot

Analysis requires recorded consent. Run 'folio consent grant' once before the first analysis.
Invalid archives print a JSON error payload and exit with status 1.

Examples:
  # Analyze an archive with the default local mode
  folio analyze ~/exports/webshop.zip

  # Use an explicit project id and attribute commits to yourself
  folio analyze webshop.zip --project-id shop --main-user "Alice"

  # Let folio pick external analysis when consent allows it
  folio analyze webshop.zip --analysis-mode auto

  # Print the summary document as JSON
  folio analyze webshop.zip --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupWith(archiveArg),
	Run: func(_ *cobra.Command, _ []string) {
		err := core.ExecuteAnalyze(rootCtx, cfg, storeManager)
		if err == nil {
			return
		}
		if invalid, ok := contract.AsInvalidArchive(err); ok {
			fmt.Fprintln(os.Stdout, invalid.PayloadJSON())
			os.Exit(1)
		}
		contract.LogFatal("Cannot analyze archive", err)
	},
}
