// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Tests truncate, padRight, command flags, and end-to-end runs against temp storage.
package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/nutriplan/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short string unchanged", "cut", 10, "cut"},
		{"exact length unchanged", "0123456789", 10, "0123456789"},
		{"long string truncated", "winter bulk with extra snacks", 10, "winter ..."},
		{"empty string", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncate(tt.input, tt.maxLen))
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		length int
		want   string
	}{
		{"pads short string", "snack", 8, "snack   "},
		{"exact length unchanged", "lunch", 5, "lunch"},
		{"longer string unchanged", "breakfast", 4, "breakfast"},
		{"empty string", "", 3, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, padRight(tt.input, tt.length))
		})
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"plan", "timing", "catalog", "list", "show", "delete",
		"export", "import", "report", "remind", "migrate",
		"serve", "mcp", "install-skill",
	}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestCommandAliases(t *testing.T) {
	tests := map[string][]string{
		"plan":   {"p"},
		"list":   {"ls", "l"},
		"delete": {"del", "rm"},
	}
	for name, aliases := range tests {
		for _, alias := range aliases {
			cmd, _, err := rootCmd.Find([]string{alias})
			require.NoError(t, err, alias)
			assert.Equal(t, name, cmd.Name(), "alias %s", alias)
		}
	}
}

func TestProfileFlags(t *testing.T) {
	for _, cmd := range []string{"plan", "timing"} {
		c, _, err := rootCmd.Find([]string{cmd})
		require.NoError(t, err)
		for _, flag := range []string{"height", "weight", "age", "sex", "activity", "goal", "meals", "wake", "bed", "restriction", "condition"} {
			assert.NotNil(t, c.Flags().Lookup(flag), "%s --%s", cmd, flag)
		}
		assert.Equal(t, "a", c.Flags().Lookup("activity").Shorthand)
		assert.Equal(t, "g", c.Flags().Lookup("goal").Shorthand)
		assert.Equal(t, "m", c.Flags().Lookup("meals").Shorthand)
	}
}

func TestListCmdFlags(t *testing.T) {
	limit := listCmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "n", limit.Shorthand)
	assert.Equal(t, "20", limit.DefValue)
	assert.NotNil(t, listCmd.Flags().Lookup("goal"))
}

func TestExportCmdValidArgs(t *testing.T) {
	assert.ElementsMatch(t, []string{"json", "yaml", "markdown"}, exportCmd.ValidArgs)
	for _, flag := range []string{"output", "goal", "since"} {
		assert.NotNil(t, exportCmd.Flags().Lookup(flag), flag)
	}
}

func TestMigrateCmdFlags(t *testing.T) {
	for _, flag := range []string{"from", "to", "force", "dry-run"} {
		assert.NotNil(t, migrateCmd.Flags().Lookup(flag), flag)
	}
	assert.True(t, skipStorage["migrate"])
}

// setupCLI points config and storage at temp directories and resets flag state.
func setupCLI(t *testing.T) string {
	t.Helper()

	dataDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("NUTRIPLAN_DATA_DIR", dataDir)
	t.Setenv("NUTRIPLAN_BACKEND", "sqlite")
	t.Setenv("NUTRIPLAN_LOG_LEVEL", "error")

	reset := func() {
		planFlags.reset()
		timingFlags.reset()
		planSave, planJSON, planNotes = false, false, ""
		timingJSON, showJSON, catalogJSON = false, false, false
		listGoal, listLimit = "", 20
		exportOutput, exportGoal, exportSince = "", "", ""
		reportOutput = ""
		migrateFrom, migrateTo, migrateForce, migrateDryRun = "", "", false, false
		remindList = false
	}
	reset()
	t.Cleanup(func() {
		reset()
		_ = closeRepo()
	})
	return dataDir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	_ = closeRepo()
	return err
}

var profileArgs = []string{
	"--height", "175", "--weight", "70", "--age", "30", "--sex", "male",
	"--activity", "moderately_active", "--goal", "maintain_weight",
}

func TestPlanSaveAndManage(t *testing.T) {
	dataDir := setupCLI(t)

	args := append([]string{"plan", "baseline", "--save", "--notes", "week one"}, profileArgs...)
	require.NoError(t, run(t, args...))
	planSave, planNotes = false, ""

	db, err := storage.Open(filepath.Join(dataDir, storage.DBFileName))
	require.NoError(t, err)
	plans, err := db.ListPlans(nil, 0)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.Len(t, plans, 1)

	plan := plans[0]
	assert.Equal(t, "baseline", plan.Name)
	require.NotNil(t, plan.Notes)
	assert.Equal(t, "week one", *plan.Notes)
	assert.Equal(t, 3, plan.Profile.MealsPerDay)
	assert.Equal(t, "07:00", plan.Request.WakeTime)
	assert.Positive(t, plan.Targets.TotalCalories)

	require.NoError(t, run(t, "show", plan.ShortID()))
	require.NoError(t, run(t, "list", "--goal", "maintain_weight"))
	require.NoError(t, run(t, "remind", "--list"))
	remindList = false

	out := filepath.Join(t.TempDir(), "plans.json")
	require.NoError(t, run(t, "export", "json", "-o", out))
	exportOutput = ""
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var exported storage.ExportData
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Len(t, exported.Plans, 1)

	pdf := filepath.Join(t.TempDir(), "plan.pdf")
	require.NoError(t, run(t, "report", "latest", "-o", pdf))
	reportOutput = ""
	head, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(head[:4]))

	require.NoError(t, run(t, "delete", plan.ShortID()))
	assert.Error(t, run(t, "show", plan.ShortID()))

	require.NoError(t, run(t, "import", out))
	require.NoError(t, run(t, "show", "latest"))
	assert.Error(t, run(t, "import", out), "re-importing the same plan must fail")
	assert.Error(t, run(t, "delete", "%"))
	require.NoError(t, run(t, "show", plan.ShortID()))
}

func TestPlanRejectsInvalidProfile(t *testing.T) {
	setupCLI(t)

	err := run(t, "plan", "--height", "175", "--weight", "70", "--age", "30", "--activity", "couch", "--goal", "maintain_weight")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "couch")
}

func TestListRejectsUnknownGoal(t *testing.T) {
	setupCLI(t)

	err := run(t, "list", "--goal", "get_huge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fitness goal")
}

func TestTimingDoesNotNeedStorage(t *testing.T) {
	dataDir := setupCLI(t)

	args := append([]string{"timing", "--json", "--wake", "06:00", "--bed", "22:00"}, profileArgs...)
	require.NoError(t, run(t, args...))

	_, err := os.Stat(filepath.Join(dataDir, storage.DBFileName))
	assert.True(t, os.IsNotExist(err), "timing should not create a database")
}

func TestMigrateSQLiteToMarkdown(t *testing.T) {
	dataDir := setupCLI(t)

	for _, name := range []string{"first", "second"} {
		args := append([]string{"plan", name, "--save"}, profileArgs...)
		require.NoError(t, run(t, args...))
		planSave = false
	}

	require.NoError(t, run(t, "migrate", "--to", "markdown", "--dry-run"))
	migrateDryRun = false
	nonEmpty, err := storage.IsDirNonEmpty(filepath.Join(dataDir, "plans"))
	require.NoError(t, err)
	assert.False(t, nonEmpty, "dry run must not write")

	require.NoError(t, run(t, "migrate", "--to", "markdown"))

	md, err := storage.NewMarkdownStore(dataDir)
	require.NoError(t, err)
	plans, err := md.ListPlans(nil, 0)
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	err = run(t, "migrate", "--to", "markdown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has data")

	require.NoError(t, run(t, "migrate", "--to", "markdown", "--force"))
	migrateForce = false
	plans, err = md.ListPlans(nil, 0)
	require.NoError(t, err)
	assert.Len(t, plans, 2, "forced merge must not duplicate plans")

	err = run(t, "migrate", "--to", "sqlite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both")
}

func TestMarkdownFiltersValidation(t *testing.T) {
	setupCLI(t)

	exportGoal = "get_huge"
	_, _, err := markdownFilters()
	assert.ErrorContains(t, err, "unknown fitness goal")

	exportGoal, exportSince = "lose_weight", "01/02/2025"
	_, _, err = markdownFilters()
	assert.ErrorContains(t, err, "invalid --since")

	exportSince = "2025-01-02"
	goal, since, err := markdownFilters()
	require.NoError(t, err)
	assert.Equal(t, "lose_weight", *goal)
	assert.Equal(t, 2025, since.Year())
}
