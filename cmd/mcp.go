package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sweeplab/sweepfit/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Sweepfit MCP server",
	Long:  `Launch an MCP server that allows AI agents to fit sweep logs via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The fit config comes from flags/env/config file only; the CSV path
		// arrives per tool call over the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, runStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
