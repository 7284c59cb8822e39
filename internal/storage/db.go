// ABOUTME: SQLite backend for saved plans built on modernc.org/sqlite.
// ABOUTME: Pragmas travel in the DSN so every pooled connection gets them.
package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DBFileName is the SQLite file created inside the data directory.
const DBFileName = "nutriplan.db"

// sqlitePragmas are applied to each new connection by the driver.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
	"foreign_keys(ON)",
}

// DB is the SQLite plan store.
type DB struct {
	db   *sql.DB
	path string
}

var _ Repository = (*DB)(nil)

// Open opens the plan database at path, creating the file, its directory and
// the schema as needed. The file is restricted to the current user.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &DB{db: conn, path: path}
	if err := d.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	if err := os.Chmod(path, 0600); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}
	return d, nil
}

func sqliteDSN(path string) string {
	q := url.Values{}
	for _, p := range sqlitePragmas {
		q.Add("_pragma", p)
	}
	return "file:" + path + "?" + q.Encode()
}

// DataDir is $XDG_DATA_HOME/nutriplan, or ~/.local/share/nutriplan when unset.
func DataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "nutriplan")
}

// Path returns the database file location.
func (d *DB) Path() string {
	return d.path
}

// Close closes the underlying connection pool.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}
