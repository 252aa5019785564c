package cmd

import (
	"fmt"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/internal/iocache"
	"github.com/huangsam/botspot/internal/outwriter"
	"github.com/huangsam/botspot/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for verdict store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	// Handle empty backend as the SQLite default
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values (used by export and list commands)
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Width = viper.GetInt("width")
	cfg.UseColors = viper.GetString("color") != "no"

	// Initialize the store with the loaded config
	if err := iocache.InitStore(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize verdict store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for verdicts commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize the store or create tables,
// allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("store-backend")
	connStr := viper.GetString("store-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetStoreDBFilePath()
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// verdictsCmd focused on verdict history management.
//
// Note: Verdicts subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by the check command. This avoids repository URL
// validation and credential checks for simple store operations.
var verdictsCmd = &cobra.Command{
	Use:   "verdicts",
	Short: "Manage stored classification verdicts",
	Long: `Manage the verdict history recorded by previous classification runs.

Every successful 'check' run stores its verdict, enabling:
- Reviewing past classifications without re-running the pipeline
- Exporting verdicts to Parquet for analytics
- Tracking likelihood trends across re-checks of the same repository

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show verdict store statistics
  list    - Show recent stored verdicts
  export  - Export verdicts to Parquet for analytics
  clear   - Remove all stored verdicts
  migrate - Run database schema migrations

Examples:
  # Check store status
  botspot verdicts status

  # Export for analysis in pandas/DuckDB
  botspot verdicts export --output-file verdicts.parquet`,
}

// verdictsStatusCmd shows verdict store status.
var verdictsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display verdict store statistics and connection details",
	Long: `Show detailed information about the verdict store.

Displays:
- Backend type and connection status
- Total number of stored verdicts
- Newest and oldest verdict timestamps

Examples:
  # Check verdict store status
  botspot verdicts status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetVerdictStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		if err := outwriter.NewOutWriter().WriteStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to write store status", err)
		}
	},
}

// verdictsListCmd shows recent stored verdicts.
var verdictsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent stored verdicts",
	Long: `List the most recent classification verdicts on record.

Examples:
  # Show the last 20 verdicts
  botspot verdicts list

  # Show more history as CSV
  botspot verdicts list --limit 100 --output csv --output-file history.csv`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		limit := viper.GetInt("limit")
		if limit <= 0 {
			limit = 20
		}
		rows, err := iocache.Manager.GetVerdictStore().ListVerdicts(limit)
		if err != nil {
			contract.LogFatal("Failed to list verdicts", err)
		}
		if err := outwriter.NewOutWriter().WriteHistory(rows, cfg); err != nil {
			contract.LogFatal("Failed to write verdict history", err)
		}
	},
}

// verdictsClearCmd clears the verdict history.
var verdictsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored verdicts",
	Long: `Delete all stored classification verdicts.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  botspot verdicts export --output-file backup.parquet
  botspot verdicts clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := cfg.StoreDBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetStoreDBFilePath()
		}
		if err := iocache.ClearStore(cfg.StoreBackend, dbFilePath, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear verdict history", err)
		}
		fmt.Println("Verdict history cleared successfully.")
	},
}

// verdictsExportCmd exports verdict data to a Parquet file.
var verdictsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored verdicts to Parquet for BI tools and analytics",
	Long: `Export all stored verdicts to Parquet format for use with analytics tools.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all verdicts
  botspot verdicts export --output-file verdicts.parquet

  # Use with DuckDB for analysis
  botspot verdicts export --output-file verdicts.parquet
  duckdb -c "SELECT * FROM read_parquet('verdicts.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteVerdictExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export verdicts", err)
		}
	},
}

// verdictsMigrateCmd runs database migrations for the verdict store.
var verdictsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the verdict store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  botspot verdicts migrate

  # Migrate to specific version
  botspot verdicts migrate --target-version 1

  # Rollback to initial state
  botspot verdicts migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateStore(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
