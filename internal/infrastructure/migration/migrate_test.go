package migration

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "launch.db")+"?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	return db
}

func TestMigrator_SQLiteUpDown(t *testing.T) {
	db := openSQLite(t)
	m, err := New(db, "sqlite", filepath.Join("..", "..", "..", "migrations"), zap.NewNop())
	require.NoError(t, err)
	defer m.Close()

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, m.Up())
	require.NoError(t, m.Up())

	version, dirty, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(5), version)
	assert.False(t, dirty)

	for _, table := range []string{"users", "countries", "menu_manuals", "stores", "tasks", "inventory_periods"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
	}

	require.NoError(t, m.Steps(-1))
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(4), version)

	require.NoError(t, m.Down())
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(openSQLite(t), "mysql", "migrations", zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported migration driver")
}
