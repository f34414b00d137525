package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewServer registers the context tool on a stdio-ready MCP server.
func NewServer(tool *ContextTool) *server.MCPServer {
	s := server.NewMCPServer(
		serviceName,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(
			"Call get_relevant_docs with a task description and a documentation "+
				"root path before starting work on the task. The response is a "+
				"single markdown document with one section per relevant file.",
		),
	)
	s.AddTool(tool.Definition(), tool.Handle)
	return s
}
