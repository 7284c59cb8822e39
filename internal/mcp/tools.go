// ABOUTME: MCP tool implementations for nutrition planning.
// ABOUTME: Profile calculation, meal timing, and CRUD for saved plans.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/nutriplan/internal/catalog"
	"github.com/harperreed/nutriplan/internal/models"
	"github.com/harperreed/nutriplan/internal/scheduler"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultListLimit = 20

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "calculate_profile",
		Description: "Calculate BMI, BMR, TDEE, calorie and macro targets, meal timings and shopping focus for a profile",
	}, s.handleCalculateProfile)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_meal_timing",
		Description: "Build a day schedule: meal and snack times, food category timing, hydration, metabolism tips and fasting window",
	}, s.handleGenerateMealTiming)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_plan",
		Description: "Calculate a full plan for a profile and save it",
	}, s.handleSavePlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_plans",
		Description: "List saved plans, newest first, optionally filtered by fitness goal",
	}, s.handleListPlans)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_plan",
		Description: "Get a saved plan by ID or ID prefix",
	}, s.handleGetPlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_plan",
		Description: "Delete a saved plan by ID or ID prefix",
	}, s.handleDeletePlan)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_catalog",
		Description: "List the activity levels and fitness goals accepted by the other tools",
	}, s.handleListCatalog)
}

// Tool input/output types

type profileInput struct {
	Height              float64  `json:"height" jsonschema:"Height in centimeters"`
	Weight              float64  `json:"weight" jsonschema:"Weight in kilograms"`
	Age                 int      `json:"age" jsonschema:"Age in years"`
	Sex                 string   `json:"sex,omitempty" jsonschema:"male, female or other"`
	ActivityLevelID     string   `json:"activity_level_id" jsonschema:"Activity level id (sedentary, lightly_active, moderately_active, very_active, extra_active)"`
	FitnessGoalID       string   `json:"fitness_goal_id" jsonschema:"Fitness goal id (lose_weight, maintain_weight, gain_weight, build_muscle, improve_health)"`
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty" jsonschema:"Dietary restrictions such as vegan or vegetarian"`
	HealthConditions    []string `json:"health_conditions,omitempty" jsonschema:"Health conditions to take into account"`
	MealsPerDay         int      `json:"meals_per_day,omitempty" jsonschema:"Number of meals per day (1-10)"`
	WakeTime            string   `json:"wake_time,omitempty" jsonschema:"Wake time as HH:MM"`
	BedTime             string   `json:"bed_time,omitempty" jsonschema:"Bed time as HH:MM"`
}

func (in profileInput) request(defaults models.ProfileRequest) models.ProfileRequest {
	return models.ProfileRequest{
		Height:              in.Height,
		Weight:              in.Weight,
		Age:                 in.Age,
		Sex:                 in.Sex,
		ActivityLevelID:     in.ActivityLevelID,
		FitnessGoalID:       in.FitnessGoalID,
		DietaryRestrictions: in.DietaryRestrictions,
		HealthConditions:    in.HealthConditions,
		MealsPerDay:         in.MealsPerDay,
		WakeTime:            in.WakeTime,
		BedTime:             in.BedTime,
	}.WithDefaults(defaults)
}

type savePlanInput struct {
	Profile profileInput `json:"profile" jsonschema:"The profile to plan for"`
	Name    string       `json:"name,omitempty" jsonschema:"Optional plan name"`
	Notes   string       `json:"notes,omitempty" jsonschema:"Optional notes"`
}

type planOutput struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TotalCalories int    `json:"total_calories"`
	Message       string `json:"message"`
}

type listPlansInput struct {
	FitnessGoal string `json:"fitness_goal,omitempty" jsonschema:"Filter by fitness goal id"`
	Limit       int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type planIDInput struct {
	ID string `json:"id" jsonschema:"Plan ID or prefix"`
}

type listCatalogInput struct{}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleCalculateProfile(ctx context.Context, req *mcp.CallToolRequest, input profileInput) (*mcp.CallToolResult, any, error) {
	res := s.planner.Calculator().CreateHealthProfile(input.request(s.defaults))
	if !res.Success {
		return nil, nil, errors.New(res.Message)
	}
	return nil, res, nil
}

func (s *Server) handleGenerateMealTiming(ctx context.Context, req *mcp.CallToolRequest, input profileInput) (*mcp.CallToolResult, any, error) {
	profile, err := input.request(s.defaults).Profile()
	if err != nil {
		return nil, nil, err
	}
	return nil, scheduler.GenerateMealTiming(profile), nil
}

func (s *Server) handleSavePlan(ctx context.Context, req *mcp.CallToolRequest, input savePlanInput) (*mcp.CallToolResult, planOutput, error) {
	plan, err := s.planner.Build(input.Profile.request(s.defaults), input.Name)
	if err != nil {
		return nil, planOutput{}, err
	}
	if input.Notes != "" {
		plan.WithNotes(input.Notes)
	}

	if err := s.repo.CreatePlan(plan); err != nil {
		return nil, planOutput{}, fmt.Errorf("failed to save plan: %w", err)
	}

	return nil, planOutput{
		ID:            plan.ShortID(),
		Name:          plan.DisplayName(),
		TotalCalories: plan.Targets.TotalCalories,
		Message:       fmt.Sprintf("Saved %s plan: %d kcal (ID: %s)", plan.DisplayName(), plan.Targets.TotalCalories, plan.ShortID()),
	}, nil
}

func (s *Server) handleListPlans(ctx context.Context, req *mcp.CallToolRequest, input listPlansInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = defaultListLimit
	}

	var goal *string
	if input.FitnessGoal != "" {
		if !catalog.IsValidFitnessGoal(input.FitnessGoal) {
			return nil, nil, fmt.Errorf("unknown fitness goal: %s", input.FitnessGoal)
		}
		goal = &input.FitnessGoal
	}

	plans, err := s.repo.ListPlans(goal, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list plans: %w", err)
	}

	if len(plans) == 0 {
		return nil, map[string]interface{}{"message": "No plans found."}, nil
	}

	return nil, models.Summaries(plans), nil
}

func (s *Server) handleGetPlan(ctx context.Context, req *mcp.CallToolRequest, input planIDInput) (*mcp.CallToolResult, any, error) {
	plan, err := s.repo.GetPlan(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("plan not found: %s", input.ID)
	}
	return nil, plan, nil
}

func (s *Server) handleDeletePlan(ctx context.Context, req *mcp.CallToolRequest, input planIDInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeletePlan(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete plan: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted plan: %s", input.ID),
	}, nil
}

func (s *Server) handleListCatalog(ctx context.Context, req *mcp.CallToolRequest, input listCatalogInput) (*mcp.CallToolResult, any, error) {
	return nil, catalogView(), nil
}

// catalogView is the catalog payload shared by the tool and resource.
func catalogView() map[string]interface{} {
	return map[string]interface{}{
		"activity_levels": catalog.ActivityLevels(),
		"fitness_goals":   catalog.FitnessGoals(),
	}
}
