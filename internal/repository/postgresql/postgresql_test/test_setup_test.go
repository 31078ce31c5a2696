package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cmlabs-hris/worktime-backend-go/internal/pkg/database"
)

// TestDatabaseSetup holds a connection to the integration database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// It returns (nil, nil) when the variable is unset.
func NewTestDatabase(ctx context.Context) (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	schema, err := os.ReadFile(schemaPath())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := db.Exec(ctx, string(schema)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &TestDatabaseSetup{DB: db}, nil
}

func schemaPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "001_init.sql")
}

// TruncateAllTables empties every table touched by the tests.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"attendances",
		"employees",
		"facilities",
		"companies",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// Close closes the pool.
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
