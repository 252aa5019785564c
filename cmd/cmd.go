// Package cmd defines the command-line interface for botspot.
package cmd

import (
	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(verdictsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the verdicts subcommands to the parent verdicts command
	verdictsCmd.AddCommand(verdictsStatusCmd)
	verdictsCmd.AddCommand(verdictsListCmd)
	verdictsCmd.AddCommand(verdictsClearCmd)
	verdictsCmd.AddCommand(verdictsExportCmd)
	verdictsCmd.AddCommand(verdictsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("source", string(schema.GitHubSource), "Commit source: github or local")
	rootCmd.PersistentFlags().String("local-path", "", "Path to a local clone (only used with --source local)")
	rootCmd.PersistentFlags().String("github-token", "", "GitHub API token (optional, raises rate limits)")
	rootCmd.PersistentFlags().String("github-api", contract.DefaultGitHubAPIBase, "GitHub API base URL")
	rootCmd.PersistentFlags().String("gemini-api-key", "", "Gemini API key for the AI opinion")
	rootCmd.PersistentFlags().String("gemini-api", contract.DefaultCompletionAPIBase, "Gemini API base URL")
	rootCmd.PersistentFlags().String("model", contract.DefaultModel, "Gemini model name")
	rootCmd.PersistentFlags().Bool("no-ai", false, "Skip the AI opinion call and use the deterministic fallback")
	rootCmd.PersistentFlags().String("marker", contract.DefaultMarker, "Generation marker phrase to scan project files for")
	rootCmd.PersistentFlags().Int("max-commits", contract.DefaultMaxCommits, "Maximum number of commits to analyze")
	rootCmd.PersistentFlags().Int("timeout", contract.DefaultTimeoutSecs, "Request timeout in seconds")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Verdict store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cutoff", "", "Eligibility cutoff override in RFC3339 (defaults to the competition start date)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of verdictsListCmd to Viper
	verdictsListCmd.Flags().Int("limit", 20, "Number of stored verdicts to display")
	if err := viper.BindPFlags(verdictsListCmd.Flags()); err != nil {
		contract.LogFatal("Error binding verdicts list flags", err)
	}

	// Bind all flags of verdictsMigrateCmd to Viper
	verdictsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(verdictsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding verdicts migrate flags", err)
	}
}
