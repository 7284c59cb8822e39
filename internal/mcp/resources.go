// ABOUTME: MCP resource implementations for the nutrition planner.
// ABOUTME: Provides nutriplan://catalog, nutriplan://plans/recent and nutriplan://plans/latest.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/nutriplan/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	catalogURI     = "nutriplan://catalog"
	recentPlansURI = "nutriplan://plans/recent"
	latestPlanURI  = "nutriplan://plans/latest"

	recentPlansLimit = 10
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         catalogURI,
		Name:        "Activity and Goal Catalog",
		Description: "Activity levels with TDEE multipliers and fitness goals with macro ratios",
		MIMEType:    "application/json",
	}, s.handleCatalogResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentPlansURI,
		Name:        "Recent Plans",
		Description: "Summaries of the last 10 saved plans",
		MIMEType:    "application/json",
	}, s.handleRecentPlansResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         latestPlanURI,
		Name:        "Latest Plan",
		Description: "The most recently saved plan with targets and schedule",
		MIMEType:    "application/json",
	}, s.handleLatestPlanResource)
}

// jsonResource marshals v as the single content of a resource result.
func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleCatalogResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	return jsonResource(catalogURI, catalogView())
}

func (s *Server) handleRecentPlansResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	plans, err := s.repo.ListPlans(nil, recentPlansLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"plans":        models.Summaries(plans),
		"count":        len(plans),
	}
	return jsonResource(recentPlansURI, result)
}

func (s *Server) handleLatestPlanResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	plans, err := s.repo.ListPlans(nil, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	if len(plans) == 0 {
		return jsonResource(latestPlanURI, map[string]interface{}{"message": "No plans saved."})
	}
	return jsonResource(latestPlanURI, plans[0])
}
