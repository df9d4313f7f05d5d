// Package testutils provides helpers shared by integration tests, primarily
// around acquiring and resetting the test database. Tests that need a real
// database call GetTestDB and are skipped when none is configured.
package testutils

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/remnant-app/remnant-api/internal/platform/postgres"
)

// testDBEnvVars are checked in order for the test database URL.
var testDBEnvVars = []string{"REMNANT_TEST_DB_URL", "DATABASE_URL"}

// GetTestDB opens a connection to the test database and applies migrations.
// The test is skipped when no database URL is configured.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := testDatabaseURL()
	if dbURL == "" {
		t.Skip("no test database configured; set REMNANT_TEST_DB_URL")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	if err := postgres.MigrateUp(context.Background(), db, nil); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := ResetTestData(db); err != nil {
			t.Errorf("failed to reset test data: %v", err)
		}
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	return db
}

// ResetTestData truncates all application tables between tests.
func ResetTestData(db *sql.DB) error {
	_, err := db.Exec(
		"TRUNCATE shared_audio, audio_recordings, family_members, families, users CASCADE")
	return err
}

// WithTx runs fn inside a transaction that is always rolled back, keeping the
// database clean for the next test.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

func testDatabaseURL() string {
	for _, key := range testDBEnvVars {
		if url := os.Getenv(key); url != "" {
			return url
		}
	}
	return ""
}
