// ABOUTME: Daily reminders for meals, snacks and hydration built from a saved plan.
// ABOUTME: Jobs become robfig/cron entries that call a notifier at the planned times.
package reminder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/nutriplan/internal/clock"
	"github.com/harperreed/nutriplan/internal/models"
	"github.com/robfig/cron"
)

// Kind classifies a reminder.
type Kind string

const (
	KindMeal      Kind = "meal"
	KindSnack     Kind = "snack"
	KindHydration Kind = "hydration"
)

// Job is one daily reminder.
type Job struct {
	Kind    Kind       `json:"kind"`
	Time    clock.Time `json:"time"`
	Spec    string     `json:"spec"`
	Message string     `json:"message"`
}

// Notifier receives a job when it fires.
type Notifier func(Job)

// Spec returns the seconds-first cron expression firing daily at t.
func Spec(t clock.Time) string {
	return fmt.Sprintf("0 %d %d * * *", t.Minute(), t.Hour())
}

// Jobs lists the reminders for plan ordered from wake time onward.
// Scheduler snack times already covered by a planned meal are skipped.
func Jobs(plan *models.Plan) []Job {
	if plan == nil {
		return nil
	}

	var jobs []Job
	taken := make(map[clock.Time]bool)

	for _, m := range plan.MealTimings {
		kind := KindMeal
		if m.MealType.IsSnack() {
			kind = KindSnack
		}
		taken[m.RecommendedTime] = true
		jobs = append(jobs, newJob(kind, m.RecommendedTime,
			fmt.Sprintf("%s: about %d kcal (%s)", label(m.MealType), m.Calories, strings.Join(m.MacroFocus, ", "))))
	}

	for _, t := range plan.Schedule.SnackTimes {
		if taken[t] {
			continue
		}
		taken[t] = true
		jobs = append(jobs, newJob(KindSnack, t, "Snack time"))
	}

	for _, h := range plan.Schedule.HydrationSchedule {
		jobs = append(jobs, newJob(KindHydration, h.Time, fmt.Sprintf("Drink %s: %s", h.Amount, h.Note)))
	}

	wake := plan.Profile.WakeTime
	sort.SliceStable(jobs, func(i, j int) bool {
		return sinceWake(jobs[i].Time, wake) < sinceWake(jobs[j].Time, wake)
	})
	return jobs
}

func newJob(kind Kind, t clock.Time, msg string) Job {
	return Job{Kind: kind, Time: t, Spec: Spec(t), Message: msg}
}

func sinceWake(t, wake clock.Time) int {
	return ((t.Minutes()-wake.Minutes())%clock.MinutesPerDay + clock.MinutesPerDay) % clock.MinutesPerDay
}

func label(t models.MealType) string {
	s := strings.ReplaceAll(string(t), "_", " ")
	if s == "" {
		return "Meal"
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Schedule registers every job on c. Nothing is registered if a spec fails to parse.
func Schedule(c *cron.Cron, jobs []Job, notify Notifier) error {
	for _, j := range jobs {
		if _, err := cron.Parse(j.Spec); err != nil {
			return fmt.Errorf("parse spec %q: %w", j.Spec, err)
		}
	}
	for _, j := range jobs {
		job := j
		if err := c.AddFunc(job.Spec, func() { notify(job) }); err != nil {
			return fmt.Errorf("schedule %s reminder at %s: %w", job.Kind, job.Time, err)
		}
	}
	return nil
}

// Run schedules the plan's reminders and blocks until ctx is done.
func Run(ctx context.Context, plan *models.Plan, notify Notifier, logger *log.Logger) error {
	if plan == nil {
		return fmt.Errorf("run reminders: nil plan")
	}
	if logger == nil {
		logger = log.Default().WithPrefix("reminder")
	}

	jobs := Jobs(plan)
	if len(jobs) == 0 {
		return fmt.Errorf("plan %s has no reminders", plan.ShortID())
	}

	c := cron.New()
	if err := Schedule(c, jobs, notify); err != nil {
		return err
	}

	logger.Info("reminders scheduled", "plan", plan.ShortID(), "jobs", len(jobs))
	c.Start()
	defer c.Stop()

	<-ctx.Done()
	logger.Info("reminders stopped", "plan", plan.ShortID())
	return nil
}
