package cmd

import (
	"github.com/folioscope/folio/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Folio MCP server",
	Long: `Launch an MCP server on stdio so AI agents can analyze archives, rank projects,
and read snapshots, skill timelines and summaries through standard tools.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Progress messages go to stderr; stdout carries the protocol.
		return sharedSetupWrapper(cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
