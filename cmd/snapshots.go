package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/folioscope/folio/core"
	"github.com/folioscope/folio/internal/contract"
	"github.com/folioscope/folio/internal/iocache"
	"github.com/folioscope/folio/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// snapshotMaintenanceSetup loads only the storage settings and opens the store.
// Maintenance commands skip ranking and analysis validation.
func snapshotMaintenanceSetup() error {
	backend, connStr, err := storageSettings()
	if err != nil {
		return err
	}
	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}
	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	return nil
}

// snapshotMaintenanceSetupWrapper wraps snapshotMaintenanceSetup to provide PreRunE.
func snapshotMaintenanceSetupWrapper(_ *cobra.Command, _ []string) error {
	return snapshotMaintenanceSetup()
}

// snapshotOfflineSetup resolves storage settings without opening the store,
// so clear and migrate can run against a fresh or broken database.
func snapshotOfflineSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := storageSettings()
	if err != nil {
		return err
	}
	cfg.SnapshotBackend = backend
	cfg.SnapshotDBConnect = connStr
	return nil
}

// snapshotsCmd focuses on snapshot store management.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Inspect and manage stored project snapshots",
	Long: `Inspect and manage the versioned snapshot store.

Every analysis stores a snapshot with a checksum over its canonical JSON body,
so re-reading a snapshot always verifies that it was not altered.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  latest  - Show the newest snapshot of a project
  history - List the snapshots of a project, newest first
  status  - Show store statistics and connection info
  export  - Export every snapshot to JSON or Parquet
  backup  - Copy the SQLite store to a timestamped file
  clear   - Remove all stored snapshots
  migrate - Run database schema migrations`,
}

// snapshotsLatestCmd prints the newest snapshot of a project.
var snapshotsLatestCmd = &cobra.Command{
	Use:     "latest <project-id>",
	Short:   "Show the newest snapshot of a project",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupWith(projectArg),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSnapshotLatest(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot load snapshot", err)
		}
	},
}

// snapshotsHistoryCmd lists the snapshots of a project.
var snapshotsHistoryCmd = &cobra.Command{
	Use:   "history <project-id>",
	Short: "List the snapshots of a project, newest first",
	Long: `List the stored snapshots of a project, newest first, up to --limit entries.

Examples:
  folio snapshots history webshop --limit 5`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupWith(projectArg),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSnapshotHistory(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot load snapshot history", err)
		}
	},
}

// snapshotsStatusCmd shows store status.
var snapshotsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display snapshot store statistics and connection details",
	Long: `Show detailed information about the snapshot store.

Displays:
- Backend type and connection status
- Total number of snapshots and projects
- Latest and oldest snapshot timestamps
- Schema migration version`,
	Args:    cobra.NoArgs,
	PreRunE: snapshotMaintenanceSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSnapshotStatus(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Failed to get snapshot status", err)
		}
	},
}

// snapshotsExportCmd exports the store to JSON or Parquet.
var snapshotsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every snapshot to JSON or Parquet for BI tools",
	Long: `Export all stored snapshots for use with analytics tools.

With --output json (default), writes one JSON array of snapshot records.
With --output parquet, writes two datasets:
- <output-file>.snapshots.parquet - one row per snapshot
- <output-file>.skills.parquet    - one row per scored skill

Requires: --output-file parameter

Examples:
  # Export everything as JSON
  folio snapshots export --output-file portfolio.json

  # Export to Parquet and query with DuckDB
  folio snapshots export --output parquet --output-file portfolio
  duckdb -c "SELECT * FROM read_parquet('portfolio.skills.parquet') LIMIT 10"`,
	Args:    cobra.NoArgs,
	PreRunE: snapshotMaintenanceSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := storeManager.GetSnapshotStore()
		var (
			result iocache.ExportResult
			err    error
		)
		if cfg.Output == schema.ParquetOut {
			result, err = iocache.ExportParquet(store, cfg.OutputFile)
		} else {
			result, err = iocache.ExportJSON(store, cfg.OutputFile)
		}
		if err != nil {
			contract.LogFatal("Failed to export snapshots", err)
		}
		for _, file := range result.Files {
			fmt.Printf("💾 Exported %s snapshots to %s\n", humanize.Comma(int64(result.Snapshots)), file)
		}
	},
}

// snapshotsBackupCmd copies the SQLite store.
var snapshotsBackupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the SQLite snapshot store to a timestamped backup file",
	Long: `Write a consistent point-in-time copy of the SQLite snapshot store.

The backup goes to --output-file when given, otherwise to a timestamped file
under ~/.folio_backups. Existing files are never overwritten.
MySQL and PostgreSQL stores should use 'folio snapshots export' or native dumps.`,
	Args:    cobra.NoArgs,
	PreRunE: snapshotMaintenanceSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dest := cfg.OutputFile
		if dest == "" {
			dest = iocache.DefaultBackupPath(time.Now())
		}
		if err := storeManager.GetSnapshotStore().Backup(dest); err != nil {
			contract.LogFatal("Failed to back up snapshots", err)
		}
		fmt.Printf("💾 Backed up snapshots to %s\n", dest)
	},
}

// snapshotsClearCmd clears the store.
var snapshotsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored snapshots",
	Long: `Delete all stored snapshots from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the snapshot table

Examples:
  # Clear the SQLite store (default)
  folio snapshots clear

  # Clear a PostgreSQL store (set connection string via env variable)
  FOLIO_SNAPSHOT_BACKEND=postgresql FOLIO_SNAPSHOT_DB_CONNECT="..." folio snapshots clear`,
	Args:    cobra.NoArgs,
	PreRunE: snapshotOfflineSetup,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := cfg.SnapshotDBConnect
		if dbFilePath == "" {
			dbFilePath = iocache.GetDBFilePath()
		}
		if err := iocache.ClearSnapshots(cfg.SnapshotBackend, dbFilePath, cfg.SnapshotDBConnect); err != nil {
			contract.LogFatal("Failed to clear snapshots", err)
		}
		fmt.Println("Snapshots cleared successfully.")
	},
}

// snapshotsMigrateCmd runs database migrations for the snapshot store.
var snapshotsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Apply or roll back schema migrations for the snapshot store.

By default, migrates to the latest version. Use --target-version to move to a
specific version, or 0 to roll back every migration.

Examples:
  # Migrate to latest
  folio snapshots migrate

  # Roll back to the initial state
  folio snapshots migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: snapshotOfflineSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateSnapshots(cfg.SnapshotBackend, cfg.SnapshotDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println("Migrations completed successfully.")
	},
}
