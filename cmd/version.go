package cmd

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildVersion prefers linker flags and falls back to module build info for 'go install' builds.
func buildVersion() (ver, rev, built string) {
	ver, rev, built = version, commit, date
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ver, rev, built
	}
	if ver == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		ver = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if rev == "none" {
				rev = s.Value
			}
		case "vcs.time":
			if built == "unknown" {
				built = s.Value
			}
		}
	}
	return ver, rev, built
}

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of folio.",
	Long: `Display version information including build details.

Shows the release version, commit, build time, Go runtime and platform.
Include this output when reporting bugs.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		ver, rev, built := buildVersion()
		cmd.Printf("folio CLI\n")
		cmd.Printf("  Version:  %s\n", ver)
		cmd.Printf("  Commit:   %s\n", rev)
		cmd.Printf("  Built:    %s\n", built)
		cmd.Printf("  Runtime:  %s\n", runtime.Version())
		cmd.Printf("  Platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}
