package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/bjaus/docfmt"
)

func serveCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion tools over MCP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conv := docfmt.New(docfmt.Config{Logger: newLogger(*verbose)})
			srv := mcp.NewServer(&mcp.Implementation{Name: "docfmt", Version: version}, nil)
			conv.RegisterMCP(srv)
			return srv.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
