// ABOUTME: CLI command for the HTTP API server.
// ABOUTME: Serves calculation, scheduling and saved plans as JSON until interrupted.
package main

import (
	"github.com/harperreed/nutriplan/internal/httpapi"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start a JSON HTTP API over the calculator, scheduler and saved plans.

ENDPOINTS:

  GET    /healthz                   Liveness check
  GET    /v1/catalog                Activity levels and fitness goals
  POST   /v1/profile                Metrics and nutrition targets
  POST   /v1/meal-timing            Meal timing schedule
  POST   /v1/plans                  Build and save a plan
  GET    /v1/plans                  List plans (?goal=, ?limit=)
  GET    /v1/plans/{id}             Get a plan by ID or prefix
  DELETE /v1/plans/{id}             Delete a plan
  GET    /v1/plans/{id}/report.pdf  PDF report

Rate limiting and CORS origins come from config (rate_limit_rps,
rate_limit_burst, allowed_origins) or NUTRIPLAN_* environment variables.
Set trust_proxy only when running behind a reverse proxy that sets
X-Forwarded-For; otherwise clients are keyed by their socket address.

EXAMPLES:

  nutriplan serve                   # Listen on the configured address
  nutriplan serve --addr :9090`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" {
			addr = cfg.GetAddr()
		}

		rps, burst := cfg.GetRateLimit()
		srv := httpapi.New(httpapi.Options{
			Repo:           repo,
			Planner:        newPlanner(),
			Defaults:       cfg.ProfileDefaults(),
			Logger:         logger.WithPrefix("http"),
			RateLimitRPS:   rps,
			RateLimitBurst: burst,
			AllowedOrigins: cfg.GetAllowedOrigins(),
			TrustProxy:     cfg.Server.TrustProxy,
		})

		ctx, stop := signalContext()
		defer stop()

		return srv.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}
