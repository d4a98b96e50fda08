// Package testing provides test helpers and fixtures shared across packages.
package testing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fuzzysystem/finance/internal/database"
)

// NewTestDBWithSchema creates a file-backed SQLite database in a temporary
// directory and executes schema on it. The database is closed when the test
// ends; the returned path can be reopened by the code under test.
func NewTestDBWithSchema(t *testing.T, name string, schema string) (*database.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), name+".db")
	db, err := database.New(context.Background(), database.Config{
		Path:    path,
		Profile: database.ProfileStandard,
		Name:    name,
	})
	if err != nil {
		t.Fatalf("Failed to create test database %s: %v", name, err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: Failed to close test database %s: %v", name, err)
		}
	})

	if schema != "" {
		if _, err := db.Conn().Exec(schema); err != nil {
			t.Fatalf("Failed to execute schema for test database %s: %v", name, err)
		}
	}

	return db, path
}
