// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"github.com/harperreed/nutriplan/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "nutriplan": {
        "command": "nutriplan",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  calculate_profile     Metrics and nutrition targets for a profile
  generate_meal_timing  Meal timing schedule for a profile
  save_plan             Build and save a full plan
  list_plans            List saved plans
  get_plan              Get a plan by ID or prefix
  delete_plan           Delete a plan
  list_catalog          Activity levels and fitness goals

AVAILABLE RESOURCES:

  nutriplan://catalog        Activity levels and fitness goals
  nutriplan://plans/recent   Recent plan summaries
  nutriplan://plans/latest   Most recent plan`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, newPlanner(), cfg.ProfileDefaults())
		if err != nil {
			return err
		}

		ctx, stop := signalContext()
		defer stop()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
