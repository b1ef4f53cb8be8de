package cmd

import (
	"fmt"
	"strings"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/internal/outwriter"
	"github.com/folioscope/folio/internal/prefs"
	"github.com/folioscope/folio/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// prefsSetup loads the minimal configuration needed to read and write preferences.
func prefsSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	cfg.PrefsPath = viper.GetString("prefs-path")
	if cfg.PrefsPath == "" {
		cfg.PrefsPath = contract.GetPreferencesFilePath()
	}
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	colors, err := contract.ParseBoolString(viper.GetString("color"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors
	return nil
}

func preferenceStore() *prefs.FileStore {
	return prefs.NewFileStore(cfg.PrefsPath)
}

// decisionArg returns the optional decision argument.
func decisionArg(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return ""
}

// consentCmd groups consent and external permission management.
var consentCmd = &cobra.Command{
	Use:   "consent",
	Short: "Record consent and external service permissions",
	Long: `Manage the consent record that gates archive analysis.

Analysis refuses to run until consent has been granted. External analysis
additionally needs a permission for the analysis service.

Subcommands:
  grant  - Record an allow decision
  revoke - Record a deny decision
  status - Show the stored consent and permissions
  permit - Grant an external service access to specific data types
  forbid - Remove an external service permission
  reset  - Restore default preferences`,
}

// consentGrantCmd records an allow decision.
var consentGrantCmd = &cobra.Command{
	Use:     "grant [decision]",
	Short:   "Record an allow decision (allow, allow_once, allow_always)",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: prefsSetup,
	Run: func(_ *cobra.Command, args []string) {
		state, err := preferenceStore().GrantConsent(decisionArg(args), viper.GetString("source"))
		if err != nil {
			contract.LogFatal("Failed to record consent", err)
		}
		fmt.Printf("Consent recorded: %s\n", state.Decision)
	},
}

// consentRevokeCmd records a deny decision.
var consentRevokeCmd = &cobra.Command{
	Use:     "revoke [decision]",
	Short:   "Record a deny decision (deny, deny_once, deny_always)",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: prefsSetup,
	Run: func(_ *cobra.Command, args []string) {
		state, err := preferenceStore().RevokeConsent(decisionArg(args), viper.GetString("source"))
		if err != nil {
			contract.LogFatal("Failed to record consent", err)
		}
		fmt.Printf("Consent revoked: %s\n", state.Decision)
	},
}

// consentStatusCmd prints the stored preferences.
var consentStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show the stored consent decision and external permissions",
	Args:    cobra.NoArgs,
	PreRunE: prefsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		saved, err := preferenceStore().Load()
		if err != nil {
			contract.LogFatal("Failed to load preferences", err)
		}
		if err := outwriter.NewOutWriter().WritePreferences(saved, cfg); err != nil {
			contract.LogFatal("Failed to display preferences", err)
		}
	},
}

// consentPermitCmd grants an external service permission.
var consentPermitCmd = &cobra.Command{
	Use:   "permit <service>",
	Short: "Allow an external service to receive specific data types",
	Long: `Record a permission for an external service.

Without --data-types, the permission covers every data type.

Examples:
  folio consent permit archive-analysis --data-types file-metadata,commit-log \
    --purpose "Analyze archive file metadata and commit logs"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: prefsSetup,
	Run: func(_ *cobra.Command, args []string) {
		perm, err := preferenceStore().GrantPermission(args[0], viper.GetStringSlice("data-types"), viper.GetString("purpose"))
		if err != nil {
			contract.LogFatal("Failed to record permission", err)
		}
		types := "all data types"
		if len(perm.DataTypes) > 0 {
			types = strings.Join(perm.DataTypes, ", ")
		}
		fmt.Printf("Permission granted to %s for %s\n", args[0], types)
	},
}

// consentForbidCmd removes an external service permission.
var consentForbidCmd = &cobra.Command{
	Use:     "forbid <service>",
	Short:   "Remove an external service permission",
	Args:    cobra.ExactArgs(1),
	PreRunE: prefsSetup,
	Run: func(_ *cobra.Command, args []string) {
		if err := preferenceStore().RevokePermission(args[0]); err != nil {
			contract.LogFatal("Failed to remove permission", err)
		}
		fmt.Printf("Permission removed for %s\n", args[0])
	},
}

// consentResetCmd restores default preferences.
var consentResetCmd = &cobra.Command{
	Use:     "reset",
	Short:   "Restore default preferences, clearing consent and permissions",
	Args:    cobra.NoArgs,
	PreRunE: prefsSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if _, err := preferenceStore().Reset(); err != nil {
			contract.LogFatal("Failed to reset preferences", err)
		}
		fmt.Printf("Preferences reset at %s\n", cfg.PrefsPath)
	},
}
