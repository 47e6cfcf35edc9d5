package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mklimuk/vocal-notes/pkg/tools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the notebook as MCP tools over stdio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.Default()
		a, err := newApp(context.Background(), logger)
		if err != nil {
			return err
		}
		defer a.Close()

		return tools.NewNotesServer(a.notebook, version, logger).Serve()
	},
}
