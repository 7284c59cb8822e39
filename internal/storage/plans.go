// ABOUTME: Plan CRUD operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for plans.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutriplan/internal/models"
)

// timeLayout is a fixed-width RFC3339 layout so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const planColumns = `id, payload, notes, created_at`

const insertPlanSQL = `
	INSERT INTO plans (id, name, fitness_goal, activity_level, total_calories, meals_per_day, payload, notes, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO NOTHING
`

// planArgs returns the insert arguments for p in column order.
func planArgs(p *models.Plan) ([]interface{}, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return []interface{}{
		p.ID.String(),
		p.Name,
		p.Profile.FitnessGoal,
		p.Profile.ActivityLevel,
		p.Targets.TotalCalories,
		p.Profile.MealsPerDay,
		string(payload),
		p.Notes,
		p.CreatedAt.UTC().Format(timeLayout),
	}, nil
}

// CreatePlan stores a new plan in the database.
func (d *DB) CreatePlan(p *models.Plan) error {
	args, err := planArgs(p)
	if err != nil {
		return err
	}
	res, err := d.db.Exec(insertPlanSQL, args...)
	if err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errDuplicate(p.ID)
	}
	return nil
}

// GetPlan retrieves a plan by ID or ID prefix.
func (d *DB) GetPlan(idOrPrefix string) (*models.Plan, error) {
	id, err := d.resolvePlanID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + planColumns + ` FROM plans WHERE id = ?`
	p, err := scanPlan(d.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return p, err
}

// ListPlans retrieves plans with optional filtering by fitness goal.
// Results are sorted by CreatedAt descending (most recent first).
func (d *DB) ListPlans(fitnessGoal *string, limit int) ([]*models.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	var args []interface{}

	if fitnessGoal != nil {
		query += ` WHERE fitness_goal = ?`
		args = append(args, *fitnessGoal)
	}
	query += ` ORDER BY created_at DESC`

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan by ID or prefix.
func (d *DB) DeletePlan(idOrPrefix string) error {
	id, err := d.resolvePlanID(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM plans WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return nil
}

// GetLatestPlan returns the most recently created plan.
func (d *DB) GetLatestPlan() (*models.Plan, error) {
	plans, err := d.ListPlans(nil, 1)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, errNoPlans()
	}
	return plans[0], nil
}

// resolvePlanID finds the full ID from a prefix.
func (d *DB) resolvePlanID(idOrPrefix string) (string, error) {
	prefix, err := normalizePrefix(idOrPrefix)
	if err != nil {
		return "", err
	}
	if isFullUUID(prefix) {
		return prefix, nil
	}

	rows, err := d.db.Query(`SELECT id FROM plans WHERE substr(id, 1, ?) = ?`, len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("resolve plan ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan plan ID: %w", err)
		}
		matches = append(matches, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve plan ID: %w", err)
	}

	return pickMatch(matches, idOrPrefix)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPlan decodes one plans row. Columns take precedence over the payload.
func scanPlan(row rowScanner) (*models.Plan, error) {
	var idStr, payload, createdAt string
	var notes sql.NullString

	if err := row.Scan(&idStr, &payload, &notes, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan plan: %w", err)
	}

	var p models.Plan
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", idStr, err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("decode plan %q: id: %w", idStr, err)
	}
	created, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("decode plan %s: created_at: %w", idStr, err)
	}

	p.ID = id
	p.CreatedAt = created
	p.Notes = nil
	if notes.Valid {
		p.Notes = &notes.String
	}
	return &p, nil
}
