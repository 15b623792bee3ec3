// Package dbtest provides migrated sqlite3 databases for tests
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/navbryce/next-blog-be/db"
	"github.com/navbryce/next-blog-be/db/migrations"
	"github.com/navbryce/next-blog-be/db/sqlstore"
	"github.com/stretchr/testify/require"
)

// DSN returns the path of a fresh, unmigrated sqlite3 database file
func DSN(t testing.TB) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "blog.db")
}

// New returns a migrated database that is closed when the test ends
func New(t testing.TB) db.Database {
	t.Helper()
	dsn := DSN(t)
	require.NoError(t, migrations.Up(sqlstore.DriverSQLite, dsn))

	database, err := sqlstore.GetDatabase(&sqlstore.Options{
		Driver: sqlstore.DriverSQLite,
		DSN:    dsn,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}
