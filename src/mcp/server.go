// Package mcp exposes the insights service as MCP tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"actions-insight/src/insights"
	"actions-insight/src/logger"
)

const (
	serverName    = "github-actions-mcp"
	serverVersion = "1.0.0"
)

// Server is the MCP server for actions-insight.
type Server struct {
	mcpServer *server.MCPServer
	service   *insights.Service
	log       logger.Logger
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(service *insights.Service, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewSilentLogger()
	}

	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	srv := &Server{
		mcpServer: s,
		service:   service,
		log:       log,
	}
	srv.registerTools()

	return srv
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	s.log.Info("%s %s serving on stdio", serverName, serverVersion)
	return server.ServeStdio(s.mcpServer)
}
