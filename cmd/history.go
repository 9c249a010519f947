package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/satscout/internal/contract"
	"github.com/huangsam/satscout/internal/history"
	"github.com/huangsam/satscout/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyBackendFromViper returns the configured history backend and connection string.
// An empty backend is treated as NoneBackend.
func historyBackendFromViper() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.NoneBackend
	if s := viper.GetString("history-backend"); s != "" {
		backend = schema.DatabaseBackend(s)
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}

	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}

	if err := history.InitHistory(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")
	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads the configuration needed for migrations. It does NOT
// initialize the store or create tables, so migrations can run on a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := historyBackendFromViper()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = history.GetDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// historyCmd focused on lookup history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup. They never reach the remote API.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the lookup history and exports",
	Long: `Manage the history of score lookups.

When --history-backend is set, SATScout records every score lookup, storing:
- The school DBN and name
- When the lookup ran and how long it took
- Whether it returned data, no data or failed (with the reason)
- The scores and tiers that were shown

Subcommands:
  status  - Show what the history store holds
  export  - Write all lookups to a Parquet file
  clear   - Remove all lookups
  migrate - Run database schema migrations

Examples:
  # Check history status
  satscout history status --history-backend sqlite

  # Export for analysis in pandas/DuckDB
  satscout history export --history-backend sqlite --output-file lookups.parquet`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display lookup history statistics and connection details",
	Long: `Show detailed information about the lookup history.

Displays:
- Backend type and connection status
- Total lookups, distinct schools and failed lookups
- Last and oldest lookup timestamps
- Table sizes

Examples:
  satscout history status --history-backend sqlite`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := history.Manager.GetLookupStore()
		if store == nil {
			contract.LogFatal("Failed to get history status", fmt.Errorf("history store is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyClearCmd clears the lookup history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded lookups",
	Long: `Delete all stored lookups.

For SQLite the database file is removed. For MySQL and PostgreSQL the
lookups table is dropped and is recreated on next use.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  satscout history export --history-backend sqlite --output-file backup.parquet
  satscout history clear --history-backend sqlite`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		dbFile := history.GetDBFilePath()
		if cfg.HistoryBackend == schema.SQLiteBackend {
			dbFile = cfg.HistoryDBConnect
		}
		if err := history.ClearHistory(cfg.HistoryBackend, dbFile, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("Lookup history cleared successfully.")
	},
}

// historyExportCmd exports the lookup history to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the lookup history to Parquet",
	Long: `Export all recorded lookups to Parquet format for use with analytics tools.

Requires: --output-file parameter

Examples:
  satscout history export --history-backend sqlite --output-file lookups.parquet
  duckdb -c "SELECT outcome, count(*) FROM read_parquet('lookups.parquet') GROUP BY outcome"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(os.Stdout, history.Manager.GetLookupStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the lookup store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the lookup history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  satscout history migrate --history-backend sqlite

  # Rollback to initial state
  satscout history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
