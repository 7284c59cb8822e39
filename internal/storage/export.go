// ABOUTME: Export and import functionality for saved plans.
// ABOUTME: Supports JSON, YAML, and Markdown export formats across backends.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/nutriplan/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the version written to JSON exports.
const ExportVersion = "1.0"

// ExportData represents the full export format for plans.
type ExportData struct {
	Version    string         `json:"version" yaml:"version"`
	ExportedAt time.Time      `json:"exported_at" yaml:"exported_at"`
	Tool       string         `json:"tool" yaml:"tool"`
	Plans      []*models.Plan `json:"plans" yaml:"plans"`
}

func newExportData(plans []*models.Plan) *ExportData {
	if plans == nil {
		plans = []*models.Plan{}
	}
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "nutriplan",
		Plans:      plans,
	}
}

// GetAllData retrieves all plans for export.
func (d *DB) GetAllData() (*ExportData, error) {
	plans, err := d.ListPlans(nil, 0)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return newExportData(plans), nil
}

// ImportData imports plans from an export in a single transaction.
func (d *DB) ImportData(data *ExportData) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, p := range data.Plans {
		args, err := planArgs(p)
		if err != nil {
			return err
		}
		res, err := tx.Exec(insertPlanSQL, args...)
		if err != nil {
			return fmt.Errorf("import plan %s: %w", p.ID, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("import plan: %w", errDuplicate(p.ID))
		}
	}
	return tx.Commit()
}

// ExportJSON exports all plans from repo as indented JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports plans into repo from JSON bytes produced by ExportJSON.
func ImportJSON(repo Repository, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	if exportData.Version != "" && exportData.Version != ExportVersion {
		return fmt.Errorf("unsupported export version %q", exportData.Version)
	}
	return repo.ImportData(&exportData)
}

type yamlPlan struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name,omitempty"`
	CreatedAt     string   `yaml:"created_at"`
	FitnessGoal   string   `yaml:"fitness_goal"`
	ActivityLevel string   `yaml:"activity_level"`
	Calories      int      `yaml:"calories"`
	ProteinGrams  int      `yaml:"protein_g"`
	CarbsGrams    int      `yaml:"carbs_g"`
	FatGrams      int      `yaml:"fat_g"`
	WaterLiters   float64  `yaml:"water_l"`
	MealTimes     []string `yaml:"meal_times"`
	Notes         string   `yaml:"notes,omitempty"`
}

// ExportYAML exports plan summaries grouped by fitness goal.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := repo.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                `yaml:"version"`
		ExportedAt string                `yaml:"exported_at"`
		Tool       string                `yaml:"tool"`
		Plans      map[string][]yamlPlan `yaml:"plans"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Plans:      make(map[string][]yamlPlan),
	}

	for _, p := range data.Plans {
		yp := yamlPlan{
			ID:            p.ShortID(),
			Name:          p.Name,
			CreatedAt:     p.CreatedAt.Format(time.RFC3339),
			FitnessGoal:   p.Profile.FitnessGoal,
			ActivityLevel: p.Profile.ActivityLevel,
			Calories:      p.Targets.TotalCalories,
			ProteinGrams:  p.Targets.Protein.Grams,
			CarbsGrams:    p.Targets.Carbs.Grams,
			FatGrams:      p.Targets.Fat.Grams,
			WaterLiters:   p.Targets.Water,
		}
		for _, t := range p.Schedule.MealTimes {
			yp.MealTimes = append(yp.MealTimes, t.String())
		}
		if p.Notes != nil {
			yp.Notes = *p.Notes
		}
		goal := p.Profile.FitnessGoal
		yamlData.Plans[goal] = append(yamlData.Plans[goal], yp)
	}

	return yaml.Marshal(yamlData)
}

// ExportMarkdown renders plans as Markdown, optionally filtered by fitness
// goal and creation time.
func ExportMarkdown(repo Repository, fitnessGoal *string, since *time.Time) (string, error) {
	plans, err := repo.ListPlans(fitnessGoal, 0)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Nutrition Plans Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, p := range plans {
		if since != nil && p.CreatedAt.Before(*since) {
			continue
		}
		writePlanMarkdown(&sb, p)
	}

	return sb.String(), nil
}

func writePlanMarkdown(sb *strings.Builder, p *models.Plan) {
	sb.WriteString(fmt.Sprintf("## %s (%s)\n\n", p.DisplayName(), p.ShortID()))
	sb.WriteString(fmt.Sprintf("Created %s. Goal: %s. Activity: %s. BMI %.1f (%s).\n\n",
		p.CreatedAt.Format("2006-01-02 15:04"), p.Profile.FitnessGoal, p.Profile.ActivityLevel,
		p.Metrics.BMI, p.Metrics.BMICategory))

	sb.WriteString("| Target | Grams | Calories | % |\n")
	sb.WriteString("|--------|-------|----------|---|\n")
	for _, row := range []struct {
		name string
		m    models.MacroTarget
	}{
		{"Protein", p.Targets.Protein},
		{"Carbs", p.Targets.Carbs},
		{"Fat", p.Targets.Fat},
	} {
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d |\n", row.name, row.m.Grams, row.m.Calories, row.m.Percentage))
	}
	sb.WriteString(fmt.Sprintf("| Total | | %d | 100 |\n\n", p.Targets.TotalCalories))

	if len(p.MealTimings) > 0 {
		sb.WriteString("| Meal | Time | Window | Calories |\n")
		sb.WriteString("|------|------|--------|----------|\n")
		for _, m := range p.MealTimings {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %d |\n",
				m.MealType, m.RecommendedTime, m.TimeWindow, m.Calories))
		}
		sb.WriteString("\n")
	}

	if p.Notes != nil && *p.Notes != "" {
		sb.WriteString(*p.Notes + "\n\n")
	}
}
