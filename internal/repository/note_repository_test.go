package repository

import (
	"context"
	"notes-api/internal/entity"
	"notes-api/internal/pkg/serverutils"
	"notes-api/pkg/database"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool connects to NOTES_TEST_DATABASE_URL, applies migrations and empties
// the note table. Tests are skipped when the variable is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("NOTES_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("NOTES_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	require.NoError(t, database.Migrate(dsn))

	pool, err := database.ConnectDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE note RESTART IDENTITY`)
	require.NoError(t, err)

	return pool
}

func TestNoteRepository_Contract(t *testing.T) {
	pool := testPool(t)

	runNoteRepositoryContract(t, func(t *testing.T, now func() time.Time) INoteRepository {
		_, err := pool.Exec(context.Background(), `TRUNCATE note`)
		require.NoError(t, err)
		return NewNoteRepository(pool, now)
	})
}

func TestNoteRepository_CheckConstraint(t *testing.T) {
	pool := testPool(t)
	repo := NewNoteRepository(pool, nil)

	_, err := repo.Create(context.Background(), "  ", "content")
	assert.ErrorIs(t, err, serverutils.ErrBadRequest)
}

func TestNoteRepository_UpdatedAtNeverBeforeCreatedAt(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	now := start
	repo := NewNoteRepository(pool, func() time.Time { return now })

	created, err := repo.Create(ctx, "a", "b")
	require.NoError(t, err)

	now = start.Add(-time.Hour)
	updated, err := repo.Update(ctx, created.Id, entity.NotePatch{})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.Equal(created.CreatedAt))
}

func TestNoteRepository_StorageErrorOnClosedPool(t *testing.T) {
	pool := testPool(t)
	repo := NewNoteRepository(pool, nil)
	pool.Close()

	_, err := repo.GetAll(context.Background())
	var se *serverutils.StorageError
	assert.ErrorAs(t, err, &se)
	assert.ErrorIs(t, repo.Ping(context.Background()), serverutils.ErrUnavailable)
}
