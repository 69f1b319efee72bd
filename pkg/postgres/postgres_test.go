package postgres

import (
	"context"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spcn/suite-draft/pkg/db/dbtest"
)

func TestMigrationFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/002_add_index.sql":            {Data: []byte("SELECT 1")},
		"migrations/001_create_draft_snapshot.sql": {Data: []byte("SELECT 1")},
		"migrations/README.md":                     {Data: []byte("notes")},
		"migrations/archive/000_old.sql":           {Data: []byte("SELECT 1")},
	}

	files, err := migrationFiles(fsys, "migrations")

	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_draft_snapshot.sql", "002_add_index.sql"}, files)
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := migrationFiles(migrationsFS, "migrations")

	require.NoError(t, err)
	assert.Contains(t, files, "001_create_draft_snapshot.sql")
}

func TestPendingMigrations(t *testing.T) {
	files := []string{"001_a.sql", "002_b.sql", "003_c.sql"}

	assert.Equal(t, files, pendingMigrations(files, nil))
	assert.Equal(t, []string{"002_b.sql"}, pendingMigrations(files, []string{"003_c.sql", "001_a.sql"}))
	assert.Empty(t, pendingMigrations(files, files))
}

// Runs against a real server only when SUITE_DRAFT_TEST_POSTGRES_DSN is set
func TestDB_SnapshotStore(t *testing.T) {
	dsn := os.Getenv("SUITE_DRAFT_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SUITE_DRAFT_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()

	d, err := NewDB(ctx, dsn)
	require.NoError(t, err)
	defer d.Close()
	_, err = d.pool.Exec(ctx, `DELETE FROM draft_snapshot WHERE key IN ('draft', 'other', 'missing')`)
	require.NoError(t, err)

	dbtest.RunSnapshotStoreTests(t, d)

	// Migrations are idempotent
	require.NoError(t, d.RunMigrations(ctx))
}
