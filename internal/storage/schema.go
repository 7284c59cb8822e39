// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: One plans table with summary columns and the full plan as JSON.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		fitness_goal TEXT NOT NULL,
		activity_level TEXT NOT NULL,
		total_calories INTEGER NOT NULL,
		meals_per_day INTEGER NOT NULL,
		payload TEXT NOT NULL,
		notes TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_plans_goal_created ON plans(fitness_goal, created_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
