// ABOUTME: PostgreSQL plan storage built on a pgx connection pool.
// ABOUTME: Plans are stored as JSONB with summary columns for filtering.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/nutriplan/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// defaultQueryTimeout bounds each Postgres round trip.
const defaultQueryTimeout = 10 * time.Second

// PostgresStore stores plans in PostgreSQL.
type PostgresStore struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// Compile-time check that PostgresStore implements Repository.
var _ Repository = (*PostgresStore)(nil)

// OpenPostgres connects to databaseURL, verifies the connection and creates
// the schema.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresStore{pool: pool, timeout: defaultQueryTimeout}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) initSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			fitness_goal TEXT NOT NULL,
			activity_level TEXT NOT NULL,
			total_calories INTEGER NOT NULL,
			meals_per_day INTEGER NOT NULL,
			payload JSONB NOT NULL,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_plans_goal_created ON plans(fitness_goal, created_at DESC);
	`
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *PostgresStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const insertPlanPostgres = `
	INSERT INTO plans (id, name, fitness_goal, activity_level, total_calories, meals_per_day, payload, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO NOTHING
`

func postgresPlanArgs(p *models.Plan) ([]interface{}, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return []interface{}{
		p.ID.String(), p.Name, p.Profile.FitnessGoal, p.Profile.ActivityLevel,
		p.Targets.TotalCalories, p.Profile.MealsPerDay, payload, p.Notes, p.CreatedAt,
	}, nil
}

// CreatePlan stores a new plan.
func (s *PostgresStore) CreatePlan(p *models.Plan) error {
	args, err := postgresPlanArgs(p)
	if err != nil {
		return err
	}

	ctx, cancel := s.ctx()
	defer cancel()

	tag, err := s.pool.Exec(ctx, insertPlanPostgres, args...)
	if err != nil {
		return fmt.Errorf("create plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errDuplicate(p.ID)
	}
	return nil
}

// GetPlan retrieves a plan by ID or ID prefix.
func (s *PostgresStore) GetPlan(idOrPrefix string) (*models.Plan, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	id, err := s.resolvePlanID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}

	const query = `SELECT id, payload, notes, created_at FROM plans WHERE id = $1`
	p, err := scanPostgresPlan(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return p, err
}

// ListPlans retrieves plans with optional filtering by fitness goal.
// Results are sorted by CreatedAt descending (most recent first).
func (s *PostgresStore) ListPlans(fitnessGoal *string, limit int) ([]*models.Plan, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	query := `SELECT id, payload, notes, created_at FROM plans`
	var args []interface{}
	if fitnessGoal != nil {
		args = append(args, *fitnessGoal)
		query += fmt.Sprintf(" WHERE fitness_goal = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		p, err := scanPostgresPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan by ID or prefix.
func (s *PostgresStore) DeletePlan(idOrPrefix string) error {
	ctx, cancel := s.ctx()
	defer cancel()

	id, err := s.resolvePlanID(ctx, idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return nil
}

// GetLatestPlan returns the most recently created plan.
func (s *PostgresStore) GetLatestPlan() (*models.Plan, error) {
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
func (s *PostgresStore) GetAllData() (*ExportData, error) {
	plans, err := s.ListPlans(nil, 0)
	if err != nil {
		return nil, err
	}
	return newExportData(plans), nil
}

// ImportData inserts every plan in a single transaction.
func (s *PostgresStore) ImportData(data *ExportData) error {
	ctx, cancel := s.ctx()
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range data.Plans {
		args, err := postgresPlanArgs(p)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, insertPlanPostgres, args...)
		if err != nil {
			return fmt.Errorf("import plan %s: %w", p.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("import plan: %w", errDuplicate(p.ID))
		}
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) resolvePlanID(ctx context.Context, idOrPrefix string) (string, error) {
	prefix, err := normalizePrefix(idOrPrefix)
	if err != nil {
		return "", err
	}
	if isFullUUID(prefix) {
		return prefix, nil
	}

	rows, err := s.pool.Query(ctx, `SELECT id FROM plans WHERE starts_with(id, $1)`, prefix)
	if err != nil {
		return "", fmt.Errorf("resolve plan ID: %w", err)
	}
	matches, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", fmt.Errorf("resolve plan ID: %w", err)
	}
	return pickMatch(matches, idOrPrefix)
}

func scanPostgresPlan(row pgx.Row) (*models.Plan, error) {
	var idStr string
	var payload []byte
	var notes *string
	var createdAt time.Time

	if err := row.Scan(&idStr, &payload, &notes, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan plan: %w", err)
	}

	var p models.Plan
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", idStr, err)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("decode plan %q: id: %w", idStr, err)
	}
	p.ID = id
	p.CreatedAt = createdAt
	p.Notes = notes
	return &p, nil
}
