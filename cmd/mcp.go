package cmd

import (
	"fmt"

	"github.com/huangsam/botspot/internal/contract"
	"github.com/huangsam/botspot/internal/iocache"
	"github.com/huangsam/botspot/internal/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Botspot MCP server",
	Long:  `Launch an MCP server that allows AI agents to classify repositories via standard tools.`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		// MCP mode carries no positional repo argument; tools pass repo_url
		// per call, so skip repository parsing and build the base config only.
		if err := loadConfigFile(); err != nil {
			return err
		}
		if err := viper.Unmarshal(input); err != nil {
			return fmt.Errorf("unable to unmarshal config: %w", err)
		}
		if err := contract.ProcessBaseConfig(cfg, input); err != nil {
			return err
		}
		if err := iocache.InitStore(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
			return fmt.Errorf("failed to initialize persistence: %w", err)
		}
		verdictManager = iocache.Manager
		return nil
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, verdictManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
