package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMigrationsIsIdempotent(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	require.NoError(t, RunMigrations(dbPath))
	require.NoError(t, RunMigrations(dbPath))

	v, dirty, err := SchemaVersion(dbPath)
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 2, v)

	db, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var cols []string
	rows, err := db.Query(`SELECT name FROM pragma_table_info('prospects')`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())
	require.ElementsMatch(t, []string{"seq", "id", "name", "email_address", "is_contacted", "created_at", "is_pinned"}, cols)
}
