package outwriter

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/schema"
)

// PrintPreferences outputs the stored consent decision and external permissions.
func PrintPreferences(prefs schema.Preferences, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, prefs)
		}, "Wrote JSON")
	case schema.CSVOut, schema.ParquetOut:
		return unsupportedOutput(cfg.Output)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePreferencesText(w, prefs, cfg.UseColors)
		}, "Wrote text")
	}
}

func writePreferencesText(w io.Writer, prefs schema.Preferences, useColors bool) error {
	state := "not granted"
	paint := color.New(color.FgRed).SprintFunc()
	if prefs.Consent.Granted {
		state = "granted"
		paint = color.New(color.FgGreen).SprintFunc()
	}
	if useColors {
		state = paint(state)
	}

	lines := []string{
		fmt.Sprintf("Consent: %s (%s)", state, orDash(prefs.Consent.Decision)),
		fmt.Sprintf("Recorded: %s via %s", formatTime(prefs.Consent.Timestamp), orDash(prefs.Consent.Source)),
		fmt.Sprintf("Analysis Mode: %s", orDash(string(prefs.AnalysisMode))),
		fmt.Sprintf("Last Opened: %s", orDash(prefs.LastOpenedPath)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if len(prefs.ExternalPermissions) == 0 {
		_, err := fmt.Fprintln(w, "External Permissions: none")
		return err
	}

	data := make([][]string, 0, len(prefs.ExternalPermissions))
	for _, service := range slices.Sorted(maps.Keys(prefs.ExternalPermissions)) {
		p := prefs.ExternalPermissions[service]
		types := "all"
		if len(p.DataTypes) > 0 {
			types = strings.Join(p.DataTypes, ", ")
		}
		data = append(data, []string{service, fmt.Sprintf("%t", p.Granted), types, orDash(p.Purpose), formatTime(p.GrantedAt)})
	}
	return writeTable(w, []string{"Service", "Granted", "Data Types", "Purpose", "Granted At"}, data)
}
