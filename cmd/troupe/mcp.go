package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	mcpAdapter "github.com/aretw0/troupe/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Exposes the engine to MCP clients with the tools execute (dry by default),
validate, list_kinds and describe_kind. Uses stdio unless --sse is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeStore, err := newEngine()
		if err != nil {
			return err
		}
		defer closeStore()

		server := mcpAdapter.NewServer(eng)

		sse, _ := cmd.Flags().GetBool("sse")
		if !sse {
			// Logs go to stderr; stdout carries JSON-RPC.
			return server.ServeStdio()
		}

		port, _ := cmd.Flags().GetInt("port")
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.ServeSSE(ctx, port)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().Bool("sse", false, "Serve over SSE instead of stdio")
	mcpCmd.Flags().Int("port", 8081, "Port for the SSE transport")
}
