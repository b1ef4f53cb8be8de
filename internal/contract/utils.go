package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/folioscope/folio/schema"
)

// Color variables for console output.
var (
	StandoutColor = color.New(color.FgGreen, color.Bold) // StandoutColor marks the strongest projects.
	StrongColor   = color.New(color.FgCyan, color.Bold)  // StrongColor marks solid projects.
	ModerateColor = color.New(color.FgYellow)            // ModerateColor marks middling projects, not bold.
	LightColor    = color.New(color.FgHiBlack)           // LightColor marks thin or stale projects.
	BotColor      = color.New(color.FgMagenta)           // BotColor marks bot-only classifications.
)

// GetColorLabel returns a colored score label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := schema.GetPlainLabel(score)

	switch text {
	case schema.StandoutValue:
		return StandoutColor.Sprint(text)
	case schema.StrongValue:
		return StrongColor.Sprint(text)
	case schema.ModerateValue:
		return ModerateColor.Sprint(text)
	default:
		return LightColor.Sprint(text)
	}
}

// GetColorClassification returns a colored classification for console output.
func GetColorClassification(c schema.Classification) string {
	switch c {
	case schema.CollaborativeProject:
		return StrongColor.Sprint(string(c))
	case schema.IndividualProject:
		return StandoutColor.Sprint(string(c))
	case schema.BotOnlyProject:
		return BotColor.Sprint(string(c))
	default:
		return LightColor.Sprint(string(c))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetSnapshotDBFilePath returns the path to the SQLite DB file for snapshot storage.
func GetSnapshotDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".folio_snapshots.db"
	}
	return filepath.Join(homeDir, ".folio_snapshots.db")
}

// GetPreferencesFilePath returns the path to the YAML preferences file.
func GetPreferencesFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".folio_prefs.yaml"
	}
	return filepath.Join(homeDir, ".folio_prefs.yaml")
}

// GetBackupDir returns the directory for timestamped store backups.
func GetBackupDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "backups"
	}
	return filepath.Join(homeDir, ".folio_backups")
}

// TruncatePath truncates a path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the "..." prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
