package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/randomizer/internal/cli"
	"github.com/aretw0/randomizer/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes blueprint runs as MCP tools so agents can generate reproducible data.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")

		lib, err := cli.OpenLibrary(templatesDir(cmd))
		if err != nil {
			return err
		}
		storeRef, _ := cmd.Flags().GetString("store")
		store, closer, err := cli.OpenStore(cmd.Context(), storeRef, cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		r, err := newRunner(store, "", nil)
		if err != nil {
			return err
		}
		srv := mcp.NewServer(r, lib)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("starting randomizer MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			sc := cli.NewSignalContext(context.Background())
			defer sc.Cancel()

			logger.Info("starting randomizer MCP server (SSE)", "address", addr)
			if err := srv.ServeSSE(sc, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		}
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("store", "", "Fixture store for saving runs: memory, file[:dir] or redis[:addr]")
}
