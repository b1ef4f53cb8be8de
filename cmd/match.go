package cmd

import (
	"github.com/folioscope/folio/core"
	"github.com/folioscope/folio/internal/contract"
	"github.com/spf13/cobra"
)

// matchCmd compares a job posting with one project's skills.
var matchCmd = &cobra.Command{
	Use:   "match [project-id]",
	Short: "Compare a job posting with the skills of a project.",
	Long: `Extract the skills, company values and work style a job posting asks for,
then report which of those skills the project shows and which it lacks.

Skills below the configured min-confidence do not count as matched.
Without a project id, the most recently analyzed project is used.

Examples:
  # Match the last analyzed project
  folio match --job-file posting.txt

  # Match one project and keep the result as JSON
  folio match webshop --job-file posting.txt --company "Acme" --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupWith(projectArg),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMatch(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot match job posting", err)
		}
	},
}
