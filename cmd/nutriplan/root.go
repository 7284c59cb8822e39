// ABOUTME: Root Cobra command for nutriplan CLI.
// ABOUTME: Loads .env and config, then handles storage lifecycle via PersistentPre/PostRunE.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutriplan/internal/calculator"
	"github.com/harperreed/nutriplan/internal/config"
	"github.com/harperreed/nutriplan/internal/planner"
	"github.com/harperreed/nutriplan/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	repo   storage.Repository
	logger *log.Logger
)

// Commands that never touch saved plans, or open backends themselves.
var skipStorage = map[string]bool{
	"help":          true,
	"version":       true,
	"catalog":       true,
	"timing":        true,
	"install-skill": true,
	"migrate":       true,
	"completion":    true,
}

var rootCmd = &cobra.Command{
	Use:   "nutriplan",
	Short: "Nutrition targets and meal timing planner",
	Long: `Nutriplan turns a body profile into daily nutrition targets and a meal schedule.

WHAT IT CALCULATES:

  Metrics        BMI and category, BMR (Mifflin-St Jeor), TDEE, water, ideal weight
  Targets        Daily calories, protein/carbs/fat split, fiber
  Schedule       Meal and snack times, food category timing, hydration, fasting window
  Shopping       Focus areas and priority items for your goal

QUICK START:

  $ nutriplan catalog                                   # Activity levels and goals
  $ nutriplan plan --height 175 --weight 70 --age 30 \
      --sex male --activity moderately_active --goal maintain_weight
  $ nutriplan plan ... --save "baseline"                # Save the plan
  $ nutriplan list                                      # Saved plans
  $ nutriplan show abc12345                             # Plan details

SCHEDULING:

  $ nutriplan timing ... --wake 06:30 --bed 22:30 --meals 4
  $ nutriplan remind abc12345                           # Meal and water reminders

SERVING:

  $ nutriplan serve --addr :8080                        # HTTP API
  $ nutriplan mcp                                       # MCP server on stdio

CONFIGURATION:

  Settings live in ~/.config/nutriplan/config.json. Any value can be
  overridden with NUTRIPLAN_* environment variables or a .env file in the
  working directory (NUTRIPLAN_BACKEND, NUTRIPLAN_DATA_DIR,
  NUTRIPLAN_POSTGRES_DSN, NUTRIPLAN_CHARM_HOST, NUTRIPLAN_LOG_LEVEL, ...).

DATA STORAGE:

  Plans are stored in SQLite at ~/.local/share/nutriplan/nutriplan.db by
  default. Set "backend" to "markdown" for plain files, "postgres" with a
  postgres_dsn for a shared database, or "charm" to sync plans through a
  Charm server (charm_host, default charm.2389.dev).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		logger = cfg.NewLogger(os.Stderr, "nutriplan")
		log.SetDefault(logger)

		if skipStorage[cmd.Name()] {
			return nil
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeRepo()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeRepo(); err == nil {
		err = cerr
	}
	return err
}

func closeRepo() error {
	if repo == nil {
		return nil
	}
	err := repo.Close()
	repo = nil
	return err
}

// newPlanner returns a planner whose calculator logs through the CLI logger.
func newPlanner() *planner.Planner {
	return planner.New(calculator.New(logger.WithPrefix("calculator")))
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
