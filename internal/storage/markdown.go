// ABOUTME: MarkdownStore keeps each plan in its own markdown file.
// ABOUTME: The plan lives in YAML frontmatter and notes form the body.

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutriplan/internal/models"
	"gopkg.in/yaml.v3"
)

// MarkdownStore provides file-based storage for plans using markdown files.
type MarkdownStore struct {
	dataDir string
}

// Compile-time check that MarkdownStore implements Repository.
var _ Repository = (*MarkdownStore)(nil)

// NewMarkdownStore creates a new markdown-backed store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &MarkdownStore{dataDir: dataDir}, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

// plansDir returns the path to the plans directory.
func (s *MarkdownStore) plansDir() string {
	return filepath.Join(s.dataDir, "plans")
}

// planFilePath returns the path for a plan file based on date and goal.
// Format: plans/YYYY/MM/YYYY-MM-DD-<goal>-<id_prefix>.md.
func (s *MarkdownStore) planFilePath(createdAt time.Time, goal string, id uuid.UUID) string {
	year := createdAt.Format("2006")
	month := createdAt.Format("01")
	date := createdAt.Format("2006-01-02")
	return filepath.Join(s.plansDir(), year, month,
		fmt.Sprintf("%s-%s-%s.md", date, slugify(goal), id.String()[:8]))
}

// readPlanFile reads a plan from a markdown file.
func readPlanFile(path string) (*models.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	yamlStr, body := parseFrontmatter(string(data))
	if yamlStr == "" {
		return nil, fmt.Errorf("no frontmatter in %s", path)
	}

	var p models.Plan
	if err := yaml.Unmarshal([]byte(yamlStr), &p); err != nil {
		return nil, fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}

	p.Notes = nil
	if notes := strings.TrimSpace(body); notes != "" {
		p.Notes = &notes
	}
	return &p, nil
}

// writePlanFile writes a plan to a markdown file.
func (s *MarkdownStore) writePlanFile(p *models.Plan) error {
	fm := *p
	fm.Notes = nil
	fm.CreatedAt = p.CreatedAt.UTC()

	body := ""
	if p.Notes != nil && *p.Notes != "" {
		body = "\n" + *p.Notes + "\n"
	}

	content, err := renderFrontmatter(&fm, body)
	if err != nil {
		return fmt.Errorf("render plan file: %w", err)
	}

	return atomicWrite(s.planFilePath(p.CreatedAt, p.Profile.FitnessGoal, p.ID), []byte(content))
}

// walkPlanFiles walks all plan markdown files and calls fn for each.
func (s *MarkdownStore) walkPlanFiles(fn func(path string, p *models.Plan) error) error {
	plansDir := s.plansDir()
	if _, err := os.Stat(plansDir); os.IsNotExist(err) {
		return nil
	}

	return filepath.Walk(plansDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		p, err := readPlanFile(path)
		if err != nil {
			return fmt.Errorf("read plan file %s: %w", path, err)
		}

		return fn(path, p)
	})
}

// findPlanFile finds the file path for a plan by ID or prefix.
func (s *MarkdownStore) findPlanFile(idOrPrefix string) (string, *models.Plan, error) {
	prefix, err := normalizePrefix(idOrPrefix)
	if err != nil {
		return "", nil, err
	}
	full := isFullUUID(prefix)

	found := map[string]*models.Plan{}
	var matches []string

	err = s.walkPlanFiles(func(path string, p *models.Plan) error {
		idStr := p.ID.String()
		if full {
			if idStr == prefix {
				found[path] = p
				matches = append(matches, path)
				return filepath.SkipAll
			}
			return nil
		}
		if strings.HasPrefix(idStr, prefix) {
			found[path] = p
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	path, err := pickMatch(matches, idOrPrefix)
	if err != nil {
		return "", nil, err
	}
	return path, found[path], nil
}

// --- Repository interface methods ---

// CreatePlan stores a new plan as a markdown file. IDs already on disk are
// rejected wherever their file lives.
func (s *MarkdownStore) CreatePlan(p *models.Plan) error {
	_, _, err := s.findPlanFile(p.ID.String())
	switch {
	case err == nil:
		return errDuplicate(p.ID)
	case !errors.Is(err, ErrNotFound):
		return fmt.Errorf("create plan: %w", err)
	}

	if err := s.writePlanFile(p); err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a plan by ID or ID prefix.
func (s *MarkdownStore) GetPlan(idOrPrefix string) (*models.Plan, error) {
	_, p, err := s.findPlanFile(idOrPrefix)
	return p, err
}

// ListPlans retrieves plans with optional filtering by fitness goal.
// Results are sorted by CreatedAt descending (most recent first).
func (s *MarkdownStore) ListPlans(fitnessGoal *string, limit int) ([]*models.Plan, error) {
	var plans []*models.Plan

	err := s.walkPlanFiles(func(path string, p *models.Plan) error {
		if fitnessGoal != nil && p.Profile.FitnessGoal != *fitnessGoal {
			return nil
		}
		plans = append(plans, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}

	sort.Slice(plans, func(i, j int) bool {
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})

	if limit > 0 && len(plans) > limit {
		plans = plans[:limit]
	}
	return plans, nil
}

// DeletePlan removes a plan file by ID or prefix.
func (s *MarkdownStore) DeletePlan(idOrPrefix string) error {
	path, _, err := s.findPlanFile(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete plan file: %w", err)
	}
	return nil
}

// GetLatestPlan returns the most recently created plan.
func (s *MarkdownStore) GetLatestPlan() (*models.Plan, error) {
	plans, err := s.ListPlans(nil, 1)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, errNoPlans()
	}
	return plans[0], nil
}

// GetAllData retrieves all plans for export.
func (s *MarkdownStore) GetAllData() (*ExportData, error) {
	plans, err := s.ListPlans(nil, 0)
	if err != nil {
		return nil, err
	}
	return newExportData(plans), nil
}

// ImportData writes every plan in data as a markdown file. Stored IDs are
// checked up front so a duplicate leaves the directory untouched.
func (s *MarkdownStore) ImportData(data *ExportData) error {
	for _, p := range data.Plans {
		if _, _, err := s.findPlanFile(p.ID.String()); err == nil {
			return fmt.Errorf("import plan: %w", errDuplicate(p.ID))
		} else if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("import plan %s: %w", p.ID, err)
		}
	}
	for _, p := range data.Plans {
		if err := s.CreatePlan(p); err != nil {
			return fmt.Errorf("import plan %s: %w", p.ID, err)
		}
	}
	return nil
}
