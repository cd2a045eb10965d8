package main

import (
	"log/slog"
	"os"

	"github.com/aretw0/tmsim/internal/cli"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts tmsim as an MCP Server so AI agents can simulate, validate, trace and
graph machine descriptions as tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP when --addr is given.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")

		app := newApp(cmd)
		defer app.Close()

		ctx, stop := signalContext(cmd)
		defer stop()

		if err := cli.ServeMCP(ctx, app, addr); err != nil {
			app.Logger.Error("MCP Server execution failed", slog.Any("error", err))
			app.Close()
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("addr", "", "Serve over SSE on this address instead of stdio")
}
