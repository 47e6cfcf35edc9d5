// Package tools exposes the notebook as MCP tools over stdio.
package tools

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mklimuk/vocal-notes/pkg/notebook"
)

// NotesServer serves the note store and AI operations as MCP tools.
type NotesServer struct {
	McpServer *server.MCPServer
	nb        *notebook.Notebook
	logger    *slog.Logger
}

// NewNotesServer registers every tool on a new MCP server.
func NewNotesServer(nb *notebook.Notebook, version string, logger *slog.Logger) *NotesServer {
	if logger == nil {
		logger = slog.Default()
	}
	ns := &NotesServer{nb: nb, logger: logger}
	ns.McpServer = server.NewMCPServer("vocal-notes", version, server.WithToolCapabilities(true))
	ns.addTools()
	return ns
}

// Serve runs the server on stdin/stdout until the client disconnects.
func (ns *NotesServer) Serve() error {
	if err := server.ServeStdio(ns.McpServer); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

func (ns *NotesServer) addTools() {
	ns.NewListNotesTool()
	ns.NewCreateNoteTool()
	ns.NewUpdateNoteTool()
	ns.NewDeleteNoteTool()
	ns.NewSummarizeNoteTool()
	ns.NewEditNoteTool()
	ns.NewContinueNoteTool()
	ns.NewGenerateAudioTool()
	ns.NewTranscribeAudioTool()
	ns.NewImportSlidesTool()
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(data)),
		},
	}, nil
}

// errorResult reports a failed operation to the client without failing the
// protocol call.
func (ns *NotesServer) errorResult(tool string, err error) (*mcp.CallToolResult, error) {
	ns.logger.Warn("tool call failed", "tool", tool, "error", err)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			mcp.NewTextContent(fmt.Sprintf("Error: %v", err)),
		},
	}, nil
}
