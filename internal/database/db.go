// Package database opens SQLite files that hold wide forecast tables.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Profile selects the PRAGMA set a connection is opened with.
type Profile string

const (
	// ProfileReadOnly opens an existing file for queries only
	ProfileReadOnly Profile = "readonly"
	// ProfileStandard opens (or creates) a writable file
	ProfileStandard Profile = "standard"
)

// DB wraps a SQLite connection.
type DB struct {
	conn    *sql.DB
	path    string
	profile Profile
	name    string // for logging
}

// Config holds database configuration
type Config struct {
	Path    string
	Profile Profile
	Name    string
}

// New opens the database at cfg.Path and verifies the connection.
func New(ctx context.Context, cfg Config) (*DB, error) {
	if cfg.Profile == "" {
		cfg.Profile = ProfileStandard
	}

	if !strings.HasPrefix(cfg.Path, "file:") {
		absPath, err := filepath.Abs(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path to absolute: %w", err)
		}
		if cfg.Profile == ProfileReadOnly {
			if _, err := os.Stat(absPath); err != nil {
				return nil, fmt.Errorf("database %s: %w", cfg.Name, err)
			}
		} else if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		cfg.Path = absPath
	}

	conn, err := sql.Open("sqlite", buildConnectionString(cfg.Path, cfg.Profile))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Name, err)
	}

	conn.SetMaxOpenConns(4)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", cfg.Name, err)
	}

	return &DB{
		conn:    conn,
		path:    cfg.Path,
		profile: cfg.Profile,
		name:    cfg.Name,
	}, nil
}

// buildConnectionString appends profile PRAGMAs to path, which may already
// carry query parameters.
func buildConnectionString(path string, profile Profile) string {
	params := []string{}
	switch profile {
	case ProfileReadOnly:
		params = append(params, "mode=ro", "_pragma=query_only(1)")
	default:
		params = append(params, "_pragma=journal_mode(WAL)", "_pragma=synchronous(NORMAL)")
	}
	params = append(params, "_pragma=busy_timeout(5000)")

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Name returns the database name for logging
func (db *DB) Name() string {
	return db.name
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Profile returns the database profile
func (db *DB) Profile() Profile {
	return db.profile
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// QuoteIdentifier validates a table or column name and returns it quoted for
// use in SQL text.
func QuoteIdentifier(name string) (string, error) {
	if !identifierPattern.MatchString(name) {
		return "", fmt.Errorf("invalid SQL identifier %q", name)
	}
	return `"` + name + `"`, nil
}

// TableColumns returns the column names of table in declaration order.
func (db *DB) TableColumns(ctx context.Context, table string) ([]string, error) {
	if _, err := QuoteIdentifier(table); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx, "SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan column name: %w", err)
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found in %s", table, db.name)
	}
	return columns, nil
}
