package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/qoder-labs/devmemory/internal/mcptools"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve memory tools over MCP (stdio)",
		Long: "Expose record, query, suggest, patterns, and stats as MCP tools on stdio,\n" +
			"for editors and agents that speak the Model Context Protocol.",
		Run: runServe,
	}

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	s, err := openStore(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	srv := mcptools.NewServer(s, Version)
	if err := server.ServeStdio(srv); err != nil {
		exitErr("serve", err)
	}
}
