// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers against SQLite.
package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/nutriplan/internal/models"
	"github.com/harperreed/nutriplan/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()

	db, err := storage.Open(filepath.Join(t.TempDir(), "nutriplan.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func testDefaults() models.ProfileRequest {
	return models.ProfileRequest{WakeTime: "07:00", BedTime: "23:00", MealsPerDay: 3}
}

func setupTestServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()

	db := setupTestDB(t)
	server, err := NewServer(db, nil, testDefaults())
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, db
}

func validProfileInput() profileInput {
	return profileInput{
		Height:          175,
		Weight:          70,
		Age:             30,
		Sex:             "male",
		ActivityLevelID: "moderately_active",
		FitnessGoalID:   "maintain_weight",
	}
}

func savePlan(t *testing.T, server *Server, goal string) planOutput {
	t.Helper()

	in := validProfileInput()
	in.FitnessGoalID = goal
	_, out, err := server.handleSavePlan(context.Background(), &mcp.CallToolRequest{}, savePlanInput{Profile: in})
	if err != nil {
		t.Fatalf("handleSavePlan failed: %v", err)
	}
	return out
}

func resourceJSON(t *testing.T, res *mcp.ReadResourceResult) map[string]interface{} {
	t.Helper()

	if len(res.Contents) != 1 {
		t.Fatalf("Contents len = %d, want 1", len(res.Contents))
	}
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(res.Contents[0].Text), &out); err != nil {
		t.Fatalf("resource is not a JSON object: %v", err)
	}
	return out
}

func TestNewServer(t *testing.T) {
	server, _ := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}
	if server.planner == nil {
		t.Error("Expected default planner")
	}
}

func TestHandleCalculateProfile(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		mutate    func(in *profileInput)
		wantErr   bool
		errSubstr string
	}{
		{name: "defaults fill schedule", mutate: func(in *profileInput) {}},
		{name: "explicit schedule", mutate: func(in *profileInput) {
			in.WakeTime, in.BedTime, in.MealsPerDay = "06:00", "22:00", 5
		}},
		{name: "unknown goal", mutate: func(in *profileInput) { in.FitnessGoalID = "get_huge" }, wantErr: true, errSubstr: "unknown fitness goal"},
		{name: "bad wake time", mutate: func(in *profileInput) { in.WakeTime = "7am" }, wantErr: true, errSubstr: "wake time"},
		{name: "height out of range", mutate: func(in *profileInput) { in.Height = 20 }, wantErr: true, errSubstr: "height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProfileInput()
			tt.mutate(&in)

			_, output, err := server.handleCalculateProfile(ctx, &mcp.CallToolRequest{}, in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("Error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			res, ok := output.(*models.ProfileResult)
			if !ok {
				t.Fatalf("output type = %T, want *models.ProfileResult", output)
			}
			if !res.Success {
				t.Errorf("Success = false: %s", res.Message)
			}
			if len(res.MealTimings) != res.Profile.MealsPerDay {
				t.Errorf("MealTimings len = %d, want %d", len(res.MealTimings), res.Profile.MealsPerDay)
			}
		})
	}
}

func TestHandleCalculateProfileReferenceValues(t *testing.T) {
	server, _ := setupTestServer(t)

	_, output, err := server.handleCalculateProfile(context.Background(), &mcp.CallToolRequest{}, validProfileInput())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	res := output.(*models.ProfileResult)

	if res.NutritionTargets.TotalCalories != 2556 {
		t.Errorf("TotalCalories = %d, want 2556", res.NutritionTargets.TotalCalories)
	}
	if got := res.MealTimings[1].RecommendedTime.String(); got != "15:00" {
		t.Errorf("lunch time = %s, want 15:00", got)
	}
}

func TestHandleGenerateMealTiming(t *testing.T) {
	server, _ := setupTestServer(t)

	in := validProfileInput()
	in.FitnessGoalID = "lose_weight"
	_, output, err := server.handleGenerateMealTiming(context.Background(), &mcp.CallToolRequest{}, in)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	rec, ok := output.(*models.MealTimingRecommendation)
	if !ok {
		t.Fatalf("output type = %T, want *models.MealTimingRecommendation", output)
	}
	if len(rec.MealTimes) != 3 {
		t.Errorf("MealTimes len = %d, want 3", len(rec.MealTimes))
	}
	if rec.FastingWindow == nil {
		t.Error("Expected fasting window for lose_weight")
	}
}

func TestHandleGenerateMealTimingInvalid(t *testing.T) {
	server, _ := setupTestServer(t)

	in := validProfileInput()
	in.WakeTime, in.BedTime = "08:00", "08:00"
	_, _, err := server.handleGenerateMealTiming(context.Background(), &mcp.CallToolRequest{}, in)
	if err == nil {
		t.Fatal("Expected error for equal wake and bed time")
	}
}

func TestHandleSavePlan(t *testing.T) {
	server, db := setupTestServer(t)

	in := savePlanInput{Profile: validProfileInput(), Name: "baseline", Notes: "week one"}
	_, output, err := server.handleSavePlan(context.Background(), &mcp.CallToolRequest{}, in)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(output.ID) != 8 {
		t.Errorf("ID = %q, want 8-char prefix", output.ID)
	}
	if output.TotalCalories != 2556 {
		t.Errorf("TotalCalories = %d, want 2556", output.TotalCalories)
	}
	if !strings.Contains(output.Message, "baseline") {
		t.Errorf("Message %q should name the plan", output.Message)
	}

	saved, err := db.GetPlan(output.ID)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if saved.Notes == nil || *saved.Notes != "week one" {
		t.Errorf("Notes = %v, want 'week one'", saved.Notes)
	}
}

func TestHandleSavePlanInvalid(t *testing.T) {
	server, db := setupTestServer(t)

	in := savePlanInput{Profile: validProfileInput()}
	in.Profile.Age = 0
	if _, _, err := server.handleSavePlan(context.Background(), &mcp.CallToolRequest{}, in); err == nil {
		t.Fatal("Expected error for invalid profile")
	}

	plans, _ := db.ListPlans(nil, 0)
	if len(plans) != 0 {
		t.Errorf("Expected nothing saved, got %d plans", len(plans))
	}
}

func TestHandleListPlans(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	savePlan(t, server, "lose_weight")
	savePlan(t, server, "lose_weight")
	savePlan(t, server, "build_muscle")

	_, output, err := server.handleListPlans(ctx, &mcp.CallToolRequest{}, listPlansInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := output.([]models.PlanSummary); len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}

	_, output, err = server.handleListPlans(ctx, &mcp.CallToolRequest{}, listPlansInput{FitnessGoal: "lose_weight", Limit: 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	summaries := output.([]models.PlanSummary)
	if len(summaries) != 1 || summaries[0].FitnessGoal != "lose_weight" {
		t.Errorf("filtered = %+v, want one lose_weight plan", summaries)
	}
}

func TestHandleListPlansEmpty(t *testing.T) {
	server, _ := setupTestServer(t)

	_, output, err := server.handleListPlans(context.Background(), &mcp.CallToolRequest{}, listPlansInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	msg, ok := output.(map[string]interface{})
	if !ok || msg["message"] != "No plans found." {
		t.Errorf("output = %v, want empty message", output)
	}
}

func TestHandleListPlansUnknownGoal(t *testing.T) {
	server, _ := setupTestServer(t)

	_, _, err := server.handleListPlans(context.Background(), &mcp.CallToolRequest{}, listPlansInput{FitnessGoal: "nope"})
	if err == nil || !strings.Contains(err.Error(), "unknown fitness goal") {
		t.Errorf("err = %v, want unknown fitness goal", err)
	}
}

func TestHandleGetPlan(t *testing.T) {
	server, _ := setupTestServer(t)
	saved := savePlan(t, server, "gain_weight")

	_, output, err := server.handleGetPlan(context.Background(), &mcp.CallToolRequest{}, planIDInput{ID: saved.ID})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	plan := output.(*models.Plan)
	if plan.ShortID() != saved.ID {
		t.Errorf("ShortID = %s, want %s", plan.ShortID(), saved.ID)
	}
	if plan.Profile.FitnessGoal != "gain_weight" {
		t.Errorf("FitnessGoal = %s, want gain_weight", plan.Profile.FitnessGoal)
	}
}

func TestHandleGetPlanNotFound(t *testing.T) {
	server, _ := setupTestServer(t)

	_, _, err := server.handleGetPlan(context.Background(), &mcp.CallToolRequest{}, planIDInput{ID: "deadbeef"})
	if err == nil || !strings.Contains(err.Error(), "plan not found") {
		t.Errorf("err = %v, want plan not found", err)
	}
}

func TestHandleDeletePlan(t *testing.T) {
	server, db := setupTestServer(t)
	saved := savePlan(t, server, "improve_health")

	_, output, err := server.handleDeletePlan(context.Background(), &mcp.CallToolRequest{}, planIDInput{ID: saved.ID})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(output.Message, saved.ID) {
		t.Errorf("Message %q should contain %s", output.Message, saved.ID)
	}
	if _, err := db.GetPlan(saved.ID); err == nil {
		t.Error("Expected plan to be deleted")
	}
}

func TestHandleDeletePlanNotFound(t *testing.T) {
	server, _ := setupTestServer(t)

	if _, _, err := server.handleDeletePlan(context.Background(), &mcp.CallToolRequest{}, planIDInput{ID: "deadbeef"}); err == nil {
		t.Error("Expected error deleting missing plan")
	}
}

func TestHandleListCatalog(t *testing.T) {
	server, _ := setupTestServer(t)

	_, output, err := server.handleListCatalog(context.Background(), &mcp.CallToolRequest{}, listCatalogInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	view := output.(map[string]interface{})
	if _, ok := view["activity_levels"]; !ok {
		t.Error("Expected activity_levels")
	}
	if _, ok := view["fitness_goals"]; !ok {
		t.Error("Expected fitness_goals")
	}
}

func TestHandleCatalogResource(t *testing.T) {
	server, _ := setupTestServer(t)

	res, err := server.handleCatalogResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Contents[0].URI != "nutriplan://catalog" {
		t.Errorf("URI = %s", res.Contents[0].URI)
	}

	body := resourceJSON(t, res)
	levels := body["activity_levels"].([]interface{})
	goals := body["fitness_goals"].([]interface{})
	if len(levels) != 5 || len(goals) != 5 {
		t.Errorf("catalog sizes = %d/%d, want 5/5", len(levels), len(goals))
	}
}

func TestHandleRecentPlansResource(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	res, err := server.handleRecentPlansResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if body := resourceJSON(t, res); body["count"] != float64(0) {
		t.Errorf("count = %v, want 0", body["count"])
	}

	savePlan(t, server, "maintain_weight")
	savePlan(t, server, "lose_weight")

	res, err = server.handleRecentPlansResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	body := resourceJSON(t, res)
	if body["count"] != float64(2) {
		t.Errorf("count = %v, want 2", body["count"])
	}
	if plans := body["plans"].([]interface{}); len(plans) != 2 {
		t.Errorf("plans len = %d, want 2", len(plans))
	}
}

func TestHandleLatestPlanResource(t *testing.T) {
	server, _ := setupTestServer(t)
	ctx := context.Background()

	res, err := server.handleLatestPlanResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if body := resourceJSON(t, res); body["message"] != "No plans saved." {
		t.Errorf("empty body = %v", body)
	}

	saved := savePlan(t, server, "build_muscle")

	res, err = server.handleLatestPlanResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	body := resourceJSON(t, res)
	if id, _ := body["id"].(string); !strings.HasPrefix(id, saved.ID) {
		t.Errorf("id = %v, want prefix %s", body["id"], saved.ID)
	}
	if _, ok := body["schedule"]; !ok {
		t.Error("Expected schedule in latest plan")
	}
}
