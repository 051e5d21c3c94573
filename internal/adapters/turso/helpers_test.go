package turso

import (
	"context"
	"testing"

	"github.com/emiliopalmerini/labstats/internal/infrastructure/database"
	"github.com/emiliopalmerini/labstats/internal/migrate"
)

func testDB(t *testing.T) *database.Client {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, database.Config{URL: "file::memory:", Driver: database.DriverSQLite})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := migrate.RunAll(ctx, db.DB); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}
