// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-markdown, markdown-to-sqlite, and empty directory checks.
package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/nutriplan/internal/models"
)

func TestMigrateDataSQLiteToMarkdown(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestMarkdownStore(t)

	now := time.Now()
	p1 := newTestPlan(t, "lose_weight", now.Add(-time.Hour))
	p1.WithNotes("first")
	p2 := newTestPlan(t, "gain_weight", now)
	for _, p := range []*models.Plan{p1, p2} {
		if err := src.CreatePlan(p); err != nil {
			t.Fatalf("CreatePlan failed: %v", err)
		}
	}

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Plans != 2 {
		t.Errorf("Expected 2 migrated plans, got %d", summary.Plans)
	}

	plans, err := dst.ListPlans(nil, 0)
	if err != nil {
		t.Fatalf("ListPlans from dst failed: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("Expected 2 plans in dst, got %d", len(plans))
	}
	assertSamePlan(t, plans[0], p2)
	assertSamePlan(t, plans[1], p1)
	if plans[1].Notes == nil || *plans[1].Notes != "first" {
		t.Errorf("notes not migrated: %v", plans[1].Notes)
	}
}

func TestMigrateDataMarkdownToSQLite(t *testing.T) {
	src := setupTestMarkdownStore(t)
	dst := setupTestDB(t)

	p := newTestPlan(t, "improve_health", time.Now())
	if err := src.CreatePlan(p); err != nil {
		t.Fatalf("CreatePlan failed: %v", err)
	}

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Plans != 1 {
		t.Errorf("Expected 1 migrated plan, got %d", summary.Plans)
	}

	got, err := dst.GetPlan(p.ShortID())
	if err != nil {
		t.Fatalf("GetPlan from dst failed: %v", err)
	}
	assertSamePlan(t, got, p)
}

func TestMigrateDataEmptySource(t *testing.T) {
	summary, err := MigrateData(setupTestDB(t), setupTestMarkdownStore(t))
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Plans != 0 {
		t.Errorf("Expected 0 plans, got %d", summary.Plans)
	}
}

func TestMigrateDataSkipsExistingPlans(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestDB(t)

	p := newTestPlan(t, "maintain_weight", time.Now())
	if err := src.CreatePlan(p); err != nil {
		t.Fatal(err)
	}
	if err := dst.CreatePlan(p); err != nil {
		t.Fatal(err)
	}

	fresh := newTestPlan(t, "lose_weight", time.Now().Add(time.Minute))
	if err := src.CreatePlan(fresh); err != nil {
		t.Fatal(err)
	}

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Plans != 1 || summary.Skipped != 1 {
		t.Errorf("summary = %+v, want 1 migrated and 1 skipped", *summary)
	}

	plans, err := dst.ListPlans(nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 2 {
		t.Errorf("destination has %d plans, want 2", len(plans))
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	nonEmpty, err := IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || nonEmpty {
		t.Errorf("missing dir: got %v, %v", nonEmpty, err)
	}

	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || nonEmpty {
		t.Errorf("empty dir: got %v, %v", nonEmpty, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "x"), nil, 0600); err != nil {
		t.Fatal(err)
	}
	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || !nonEmpty {
		t.Errorf("non-empty dir: got %v, %v", nonEmpty, err)
	}
}
