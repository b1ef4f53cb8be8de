package iocache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/internal/parquet"
)

// ExportResult describes the files written by an export.
type ExportResult struct {
	Snapshots int
	Files     []string
}

// ExportJSON writes every stored snapshot to dest as a JSON array.
func ExportJSON(store contract.SnapshotStore, dest string) (ExportResult, error) {
	if dest == "" {
		return ExportResult{}, errors.New("--output-file is required for export command")
	}
	records, err := store.ListAll()
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to retrieve snapshots: %w", err)
	}
	if len(records) == 0 {
		return ExportResult{}, errors.New("no snapshot data found to export")
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to encode snapshots: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return ExportResult{Snapshots: len(records), Files: []string{dest}}, nil
}

// ExportParquet writes <base>.snapshots.parquet and <base>.skills.parquet.
func ExportParquet(store contract.SnapshotStore, base string) (ExportResult, error) {
	if base == "" {
		return ExportResult{}, errors.New("--output-file is required for export command")
	}
	records, err := store.ListAll()
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to retrieve snapshots: %w", err)
	}
	if len(records) == 0 {
		return ExportResult{}, errors.New("no snapshot data found to export")
	}

	snapshotsFile := base + ".snapshots.parquet"
	if err := parquet.WriteSnapshotsParquet(parquet.ConvertSnapshotRecords(records), snapshotsFile); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write snapshots: %w", err)
	}

	skillsFile := base + ".skills.parquet"
	if err := parquet.WriteSkillsParquet(parquet.ConvertSkillRows(records), skillsFile); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write skills: %w", err)
	}

	return ExportResult{Snapshots: len(records), Files: []string{snapshotsFile, skillsFile}}, nil
}
