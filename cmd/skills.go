package cmd

import (
	"github.com/folioscope/folio/core"
	"github.com/folioscope/folio/internal/contract"
	"github.com/spf13/cobra"
)

// skillsCmd shows the skill report of one project.
var skillsCmd = &cobra.Command{
	Use:   "skills [project-id]",
	Short: "Show the scored skills and skill timeline of a project.",
	Long: `Display the skills detected in a project, their confidence, and how they evolved by year.

Without a project id, the most recently analyzed project is shown.

Examples:
  # Skills of the last analyzed project
  folio skills

  # Top three skills per year for one project
  folio skills webshop --top 3`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupWith(projectArg),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSkills(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot show skills", err)
		}
	},
}

// timelineCmd groups the cross-project timelines.
var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show chronological views across all stored projects.",
	Long: `Build timelines from the latest snapshot of every project.

Subcommands:
  projects - One row per project, ordered by first activity
  skills   - One row per skill, with first/last sighting and total weight`,
}

// timelineProjectsCmd prints the project timeline.
var timelineProjectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects in the order their work started.",
	Long: `List every project with its active date range, classification, languages and frameworks.

Projects without timestamps come first; ties are ordered by project id.

Examples:
  folio timeline projects
  folio timeline projects --output csv --output-file projects.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteProjectTimeline(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot build project timeline", err)
		}
	},
}

// timelineSkillsCmd prints the skill timeline.
var timelineSkillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "List skills in the order they first appeared.",
	Long: `Aggregate skills across projects: when each was first and last seen,
how many projects use it, and the summed confidence.

Examples:
  folio timeline skills
  folio timeline skills --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSkillTimeline(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot build skill timeline", err)
		}
	},
}
