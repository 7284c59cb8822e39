// ABOUTME: CLI command for meal, snack and hydration reminders.
// ABOUTME: Runs a cron scheduler for a saved plan until interrupted.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/nutriplan/internal/reminder"
	"github.com/spf13/cobra"
)

var remindList bool

var remindCmd = &cobra.Command{
	Use:   "remind [id|latest]",
	Short: "Run daily reminders for a saved plan",
	Long: `Print a reminder at every planned meal, snack and hydration time.

Defaults to the most recent plan. Runs in the foreground until Ctrl-C.

EXAMPLES:

  nutriplan remind                 # Latest plan
  nutriplan remind abc12345        # Specific plan
  nutriplan remind --list          # Show the reminder schedule and exit`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idOrPrefix := "latest"
		if len(args) == 1 {
			idOrPrefix = args[0]
		}

		plan, err := lookupPlan(idOrPrefix)
		if err != nil {
			return err
		}

		if remindList {
			jobs := reminder.Jobs(plan)
			if len(jobs) == 0 {
				fmt.Println("No reminders for this plan.")
				return nil
			}
			for _, j := range jobs {
				fmt.Printf("%s  %s  %s\n", j.Time, padRight(string(j.Kind), 9), j.Message)
			}
			return nil
		}

		ctx, stop := signalContext()
		defer stop()

		color.Cyan("Reminders for %s (%s). Ctrl-C to stop.", plan.DisplayName(), plan.ShortID())
		return reminder.Run(ctx, plan, notifyTerminal, logger.WithPrefix("reminder"))
	},
}

func notifyTerminal(j reminder.Job) {
	stamp := time.Now().Format("15:04")
	switch j.Kind {
	case reminder.KindHydration:
		color.Blue("[%s] %s", stamp, j.Message)
	case reminder.KindSnack:
		color.Yellow("[%s] %s", stamp, j.Message)
	default:
		color.Green("[%s] %s", stamp, j.Message)
	}
}

func init() {
	remindCmd.Flags().BoolVar(&remindList, "list", false, "print the reminder schedule and exit")
	rootCmd.AddCommand(remindCmd)
}
