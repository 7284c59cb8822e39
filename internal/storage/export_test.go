// ABOUTME: Tests for plan export and import.
// ABOUTME: Covers JSON round trips, YAML summaries and Markdown rendering.
package storage

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/nutriplan/internal/models"
	"gopkg.in/yaml.v3"
)

func TestExportImportJSON(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		p1 := newTestPlan(t, "lose_weight", time.Now().Add(-time.Hour))
		p1.WithNotes("cut")
		p2 := newTestPlan(t, "build_muscle", time.Now())
		for _, p := range []*models.Plan{p1, p2} {
			if err := repo.CreatePlan(p); err != nil {
				t.Fatalf("CreatePlan failed: %v", err)
			}
		}

		data, err := ExportJSON(repo)
		if err != nil {
			t.Fatalf("ExportJSON failed: %v", err)
		}

		var parsed ExportData
		if err := json.Unmarshal(data, &parsed); err != nil {
			t.Fatalf("export is not valid JSON: %v", err)
		}
		if parsed.Version != ExportVersion || parsed.Tool != "nutriplan" {
			t.Errorf("unexpected header: %s %s", parsed.Version, parsed.Tool)
		}
		if len(parsed.Plans) != 2 {
			t.Fatalf("Expected 2 exported plans, got %d", len(parsed.Plans))
		}

		dst := setupTestDB(t)
		if err := ImportJSON(dst, data); err != nil {
			t.Fatalf("ImportJSON failed: %v", err)
		}

		got, err := dst.GetPlan(p1.ID.String())
		if err != nil {
			t.Fatalf("GetPlan after import failed: %v", err)
		}
		assertSamePlan(t, got, p1)
		if got.Notes == nil || *got.Notes != "cut" {
			t.Errorf("notes lost in import: %v", got.Notes)
		}
	})
}

func TestImportJSONRejectsBadInput(t *testing.T) {
	db := setupTestDB(t)

	if err := ImportJSON(db, []byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if err := ImportJSON(db, []byte(`{"version":"9.9","plans":[]}`)); err == nil {
		t.Error("expected error for unsupported version")
	}
}

func TestImportDataRollsBackOnDuplicate(t *testing.T) {
	db := setupTestDB(t)
	p := newTestPlan(t, "maintain_weight", time.Now())
	if err := db.CreatePlan(p); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	fresh := newTestPlan(t, "gain_weight", time.Now())
	err := db.ImportData(&ExportData{Plans: []*models.Plan{fresh, p}})
	if !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	if _, err := db.GetPlan(fresh.ID.String()); err == nil {
		t.Error("partial import should have been rolled back")
	}
}

func TestExportYAML(t *testing.T) {
	db := setupTestDB(t)
	p := newTestPlan(t, "lose_weight", time.Now())
	if err := db.CreatePlan(p); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	data, err := ExportYAML(db)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var parsed struct {
		Tool  string                              `yaml:"tool"`
		Plans map[string][]map[string]interface{} `yaml:"plans"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	plans := parsed.Plans["lose_weight"]
	if len(plans) != 1 {
		t.Fatalf("Expected 1 lose_weight plan, got %d", len(plans))
	}
	if plans[0]["id"] != p.ShortID() {
		t.Errorf("id = %v, want %s", plans[0]["id"], p.ShortID())
	}
	if plans[0]["calories"] != p.Targets.TotalCalories {
		t.Errorf("calories = %v, want %d", plans[0]["calories"], p.Targets.TotalCalories)
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	old := newTestPlan(t, "lose_weight", time.Now().Add(-48*time.Hour))
	recent := newTestPlan(t, "build_muscle", time.Now())
	recent.WithNotes("recent notes")
	for _, p := range []*models.Plan{old, recent} {
		if err := db.CreatePlan(p); err != nil {
			t.Fatalf("CreatePlan failed: %v", err)
		}
	}

	md, err := ExportMarkdown(db, nil, nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	for _, want := range []string{
		"# Nutrition Plans Export",
		"## test lose_weight (" + old.ShortID() + ")",
		"| Protein |",
		"| breakfast |",
		"recent notes",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}

	since := time.Now().Add(-time.Hour)
	md, err = ExportMarkdown(db, nil, &since)
	if err != nil {
		t.Fatalf("ExportMarkdown with since failed: %v", err)
	}
	if strings.Contains(md, old.ShortID()) {
		t.Error("since filter should drop the old plan")
	}

	goal := "lose_weight"
	md, err = ExportMarkdown(db, &goal, nil)
	if err != nil {
		t.Fatalf("ExportMarkdown with goal failed: %v", err)
	}
	if strings.Contains(md, recent.ShortID()) {
		t.Error("goal filter should drop the build_muscle plan")
	}
}
