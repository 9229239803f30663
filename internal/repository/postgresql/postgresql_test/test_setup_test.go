package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/digihr/attendance-backend-go/internal/pkg/database"
)

var testDB *database.DB

// setupTestDB connects to the database named by TEST_DATABASE_URL and wipes
// all tables. Tests are skipped when the variable is unset, so the suite can
// run without a database.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}

	if testDB == nil {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn)
		require.NoError(t, err)
	}

	truncateTables(t)
	return testDB
}

func truncateTables(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	tables := []string{
		"attendances",
		"leave_requests",
		"holidays",
		"employee_leave_balances",
		"leave_types",
		"employees",
	}
	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(ctx, `
		INSERT INTO employees (id, name, email, shift_type)
		VALUES ($1, 'Test Employee', $2, 'day')
	`, id, id+"@example.com")
	require.NoError(t, err)
	return id
}
