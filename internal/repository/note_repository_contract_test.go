package repository

import (
	"context"
	"notes-api/internal/entity"
	"notes-api/internal/pkg/clock"
	"notes-api/internal/pkg/serverutils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoFactory func(t *testing.T, now func() time.Time) INoteRepository

var contractEpoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// runNoteRepositoryContract exercises the behaviour every INoteRepository
// implementation must share.
func runNoteRepositoryContract(t *testing.T, newRepo repoFactory) {
	ctx := context.Background()

	t.Run("create then get", func(t *testing.T) {
		repo := newRepo(t, clock.NewTickingClock(contractEpoch, time.Second).Now)

		created, err := repo.Create(ctx, "Shopping", "Milk")
		require.NoError(t, err)
		assert.Positive(t, created.Id)
		assert.Equal(t, "Shopping", created.Title)
		assert.Equal(t, "Milk", created.Content)
		assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

		got, err := repo.GetById(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, created.Id, got.Id)
		assert.Equal(t, "Shopping", got.Title)
		assert.Equal(t, "Milk", got.Content)
		assert.True(t, got.CreatedAt.Equal(created.CreatedAt))
		assert.True(t, got.UpdatedAt.Equal(got.CreatedAt))
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		repo := newRepo(t, nil)

		a, err := repo.Create(ctx, "a", "a")
		require.NoError(t, err)
		require.NoError(t, repo.DeleteById(ctx, a.Id))

		b, err := repo.Create(ctx, "b", "b")
		require.NoError(t, err)
		assert.NotEqual(t, a.Id, b.Id)
	})

	t.Run("empty update advances updatedAt only", func(t *testing.T) {
		repo := newRepo(t, clock.NewTickingClock(contractEpoch, time.Second).Now)

		created, err := repo.Create(ctx, "Shopping", "Milk")
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.Id, entity.NotePatch{})
		require.NoError(t, err)
		assert.Equal(t, "Shopping", updated.Title)
		assert.Equal(t, "Milk", updated.Content)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	})

	t.Run("blank fields are ignored", func(t *testing.T) {
		repo := newRepo(t, clock.NewTickingClock(contractEpoch, time.Second).Now)

		created, err := repo.Create(ctx, "Shopping", "Milk")
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.Id, entity.NotePatch{
			Title:   strPtr("   "),
			Content: strPtr("Milk, Eggs"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Shopping", updated.Title)
		assert.Equal(t, "Milk, Eggs", updated.Content)

		got, err := repo.GetById(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, "Shopping", got.Title)
		assert.Equal(t, "Milk, Eggs", got.Content)
		assert.True(t, got.UpdatedAt.Equal(updated.UpdatedAt))
	})

	t.Run("list orders by most recently updated", func(t *testing.T) {
		repo := newRepo(t, clock.NewTickingClock(contractEpoch, time.Second).Now)

		empty, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.NotNil(t, empty)
		assert.Empty(t, empty)

		a, err := repo.Create(ctx, "A", "first")
		require.NoError(t, err)
		b, err := repo.Create(ctx, "B", "second")
		require.NoError(t, err)

		notes, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, []int64{b.Id, a.Id}, []int64{notes[0].Id, notes[1].Id})

		_, err = repo.Update(ctx, a.Id, entity.NotePatch{Content: strPtr("first, edited")})
		require.NoError(t, err)

		notes, err = repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, []int64{a.Id, b.Id}, []int64{notes[0].Id, notes[1].Id})
	})

	t.Run("list breaks timestamp ties by id", func(t *testing.T) {
		repo := newRepo(t, clock.NewFakeClock(contractEpoch).Now)

		a, err := repo.Create(ctx, "A", "a")
		require.NoError(t, err)
		b, err := repo.Create(ctx, "B", "b")
		require.NoError(t, err)

		notes, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, []int64{b.Id, a.Id}, []int64{notes[0].Id, notes[1].Id})
	})

	t.Run("delete is permanent", func(t *testing.T) {
		repo := newRepo(t, nil)

		created, err := repo.Create(ctx, "Shopping", "Milk")
		require.NoError(t, err)

		exists, err := repo.Exists(ctx, created.Id)
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repo.DeleteById(ctx, created.Id))

		_, err = repo.GetById(ctx, created.Id)
		assert.ErrorIs(t, err, serverutils.ErrNotFound)

		err = repo.DeleteById(ctx, created.Id)
		assert.ErrorIs(t, err, serverutils.ErrNotFound)

		exists, err = repo.Exists(ctx, created.Id)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("missing ids", func(t *testing.T) {
		repo := newRepo(t, nil)

		_, err := repo.GetById(ctx, 4242)
		assert.ErrorIs(t, err, serverutils.ErrNotFound)

		_, err = repo.Update(ctx, 4242, entity.NotePatch{Title: strPtr("x")})
		assert.ErrorIs(t, err, serverutils.ErrNotFound)

		err = repo.DeleteById(ctx, 4242)
		assert.ErrorIs(t, err, serverutils.ErrNotFound)
	})

	t.Run("ping", func(t *testing.T) {
		repo := newRepo(t, nil)
		assert.NoError(t, repo.Ping(ctx))
	})
}
