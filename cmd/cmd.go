// Package cmd defines the command-line interface for folio.
package cmd

import (
	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(summariesCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(consentCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the timeline subcommands to the parent timeline command
	timelineCmd.AddCommand(timelineProjectsCmd)
	timelineCmd.AddCommand(timelineSkillsCmd)

	// Add the snapshot subcommands to the parent snapshots command
	snapshotsCmd.AddCommand(snapshotsLatestCmd)
	snapshotsCmd.AddCommand(snapshotsHistoryCmd)
	snapshotsCmd.AddCommand(snapshotsStatusCmd)
	snapshotsCmd.AddCommand(snapshotsExportCmd)
	snapshotsCmd.AddCommand(snapshotsBackupCmd)
	snapshotsCmd.AddCommand(snapshotsClearCmd)
	snapshotsCmd.AddCommand(snapshotsMigrateCmd)

	// Add the consent subcommands to the parent consent command
	consentCmd.AddCommand(consentGrantCmd)
	consentCmd.AddCommand(consentRevokeCmd)
	consentCmd.AddCommand(consentStatusCmd)
	consentCmd.AddCommand(consentPermitCmd)
	consentCmd.AddCommand(consentForbidCmd)
	consentCmd.AddCommand(consentResetCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("as-of", "", "Reference time for recency in ISO8601 or time ago (default: now)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-project metadata (bytes, active days, classification)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("prefs-path", "", "Path to the preferences file (default: ~/.folio_prefs.yaml)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("snapshot-backend", string(schema.SQLiteBackend), "Snapshot backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("snapshot-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().StringP("user", "u", "", "Contributor whose share of commits scales ranking scores")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().String("project-id", "", "Project identifier (default: archive name without extension)")
	analyzeCmd.Flags().String("analysis-mode", string(schema.LocalMode), "Requested analysis mode: local or external or auto")
	analyzeCmd.Flags().String("metadata-output", "", "Path for the per-file metadata JSONL (default: beside the archive)")
	analyzeCmd.Flags().String("summary-output", "", "Path for the summary JSON (default: beside the archive)")
	analyzeCmd.Flags().String("main-user", "", "Contributor to treat as the archive owner")
	analyzeCmd.Flags().Bool("include-bots", false, "Count bot accounts as contributors")
	analyzeCmd.Flags().Float64("min-confidence", 0.05, "Drop skills scored below this confidence")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of rankCmd to Viper
	rankCmd.Flags().Bool("explain", false, "Print per-project factor breakdown")
	if err := viper.BindPFlags(rankCmd.Flags()); err != nil {
		contract.LogFatal("Error binding rank flags", err)
	}

	// Bind all flags of skillsCmd to Viper
	skillsCmd.Flags().Int("top", contract.DefaultTopN, "Number of skills to show per year")
	if err := viper.BindPFlags(skillsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding skills flags", err)
	}

	// Bind all flags of matchCmd to Viper
	matchCmd.Flags().String("job-file", "", "Path to a text file holding the job posting")
	matchCmd.Flags().String("company", "", "Company name shown with the match")
	if err := viper.BindPFlags(matchCmd.Flags()); err != nil {
		contract.LogFatal("Error binding match flags", err)
	}

	// Bind all flags of snapshotsMigrateCmd to Viper
	snapshotsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(snapshotsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshots migrate flags", err)
	}

	// Bind the flags shared by consent grant and revoke to Viper
	consentCmd.PersistentFlags().String("source", "cli", "Where the decision was made, recorded with the consent")
	if err := viper.BindPFlags(consentCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding consent flags", err)
	}

	// Bind all flags of consentPermitCmd to Viper
	consentPermitCmd.Flags().StringSlice("data-types", nil, "Comma-separated data types the service may receive (default: all)")
	consentPermitCmd.Flags().String("purpose", "", "Why the service needs the data")
	if err := viper.BindPFlags(consentPermitCmd.Flags()); err != nil {
		contract.LogFatal("Error binding consent permit flags", err)
	}
}
