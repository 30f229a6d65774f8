// Package mcp exposes the assist answer engine to AI agents over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/talentpath/assist/internal/answer"
	"github.com/talentpath/assist/internal/retrieval"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the support assistant as tools.
type Server struct {
	engine    *answer.Engine
	retriever *retrieval.Engine
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server over the given engine and retriever.
func NewServer(engine *answer.Engine, retriever *retrieval.Engine) *Server {
	s := &Server{
		engine:    engine,
		retriever: retriever,
	}

	s.mcp = server.NewMCPServer(
		"assist",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(askAssistTool, s.handleAskAssist)
	s.mcp.AddTool(searchKnowledgeTool, s.handleSearchKnowledge)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
