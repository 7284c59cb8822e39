// ABOUTME: MCP server setup for the nutrition planner.
// ABOUTME: Wraps MCP server with the planner and a storage Repository.
package mcp

import (
	"context"

	"github.com/harperreed/nutriplan/internal/models"
	"github.com/harperreed/nutriplan/internal/planner"
	"github.com/harperreed/nutriplan/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with planning and storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	planner   *planner.Planner
	defaults  models.ProfileRequest
}

// NewServer creates a new MCP server. Profile inputs missing wake time, bed
// time or meals per day take them from defaults.
func NewServer(repo storage.Repository, pl *planner.Planner, defaults models.ProfileRequest) (*Server, error) {
	if pl == nil {
		pl = planner.New(nil)
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nutriplan",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		planner:   pl,
		defaults:  defaults,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
