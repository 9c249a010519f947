package cmd

import (
	"github.com/huangsam/satscout/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the SATScout MCP server",
	Long:  `Launch an MCP server that allows AI agents to list schools and look up SAT scores via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Headers and logs go to stderr, which keeps stdio clean for the protocol
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, client, historyManager)
	},
}
