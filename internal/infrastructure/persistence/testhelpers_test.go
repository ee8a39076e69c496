package persistence

import (
	"testing"

	"github.com/storelaunch/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// newTestDatabase opens a migrated in-memory SQLite database. A single
// connection keeps the in-memory schema visible to every query.
func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := Open(sqlite.Open(":memory:"), &config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate())
	t.Cleanup(func() { _ = db.Close() })
	return db
}
