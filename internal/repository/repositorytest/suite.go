// Package repositorytest содержит общий набор проверок для всех
// реализаций repository.Store.
package repositorytest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authored-notes/internal/model"
	"authored-notes/internal/repository"
)

// NewStore создает пустое хранилище для одного теста
type NewStore func(t *testing.T) repository.Store

// Run прогоняет проверки контракта хранилища
func Run(t *testing.T, newStore NewStore) {
	t.Helper()

	t.Run("ListEmpty", func(t *testing.T) { testListEmpty(t, newStore(t)) })
	t.Run("CreateThenGet", func(t *testing.T) { testCreateThenGet(t, newStore(t)) })
	t.Run("CreateInvalid", func(t *testing.T) { testCreateInvalid(t, newStore(t)) })
	t.Run("FindAbsent", func(t *testing.T) { testFindAbsent(t, newStore(t)) })
	t.Run("UpdateMerges", func(t *testing.T) { testUpdateMerges(t, newStore(t)) })
	t.Run("UpdateMissing", func(t *testing.T) { testUpdateMissing(t, newStore(t)) })
	t.Run("DeleteOnce", func(t *testing.T) { testDeleteOnce(t, newStore(t)) })
	t.Run("IDsNotReused", func(t *testing.T) { testIDsNotReused(t, newStore(t)) })
	t.Run("ListOrdered", func(t *testing.T) { testListOrdered(t, newStore(t)) })
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
}

func mustUser(t *testing.T, store repository.Store, username string) model.User {
	t.Helper()
	user, err := store.CreateUser(context.Background(), model.User{
		Username:     username,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return user
}

func testListEmpty(t *testing.T, store repository.Store) {
	notes, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, notes, "empty store must return an empty slice, not nil")
	assert.Empty(t, notes)
}

func testCreateThenGet(t *testing.T, store repository.Store) {
	ctx := context.Background()
	author := mustUser(t, store, "author")

	created, err := store.Create(ctx, model.NoteCreate{Title: "Title", Content: "Body"}, author.ID)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, author.ID, created.AuthorID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.False(t, created.ModifiedAt.IsZero())

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	found, ok, err := store.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, created.ID, found.ID)
}

func testCreateInvalid(t *testing.T, store repository.Store) {
	author := mustUser(t, store, "author")

	_, err := store.Create(context.Background(), model.NoteCreate{Content: "no title"}, author.ID)
	require.ErrorIs(t, err, repository.ErrInvalidNote)
}

func testFindAbsent(t *testing.T, store repository.Store) {
	ctx := context.Background()

	_, found, err := store.Find(ctx, 4242)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = store.GetByID(ctx, 4242)
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}

func testUpdateMerges(t *testing.T, store repository.Store) {
	ctx := context.Background()
	author := mustUser(t, store, "author")

	created, err := store.Create(ctx, model.NoteCreate{Title: "Old", Content: "Body"}, author.ID)
	require.NoError(t, err)

	title := "New"
	updated, err := store.Update(ctx, created.ID, model.NoteUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, "Body", updated.Content)
	assert.Equal(t, created.AuthorID, updated.AuthorID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.ModifiedAt.Before(created.ModifiedAt))

	got, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func testUpdateMissing(t *testing.T, store repository.Store) {
	title := "x"
	_, err := store.Update(context.Background(), 4242, model.NoteUpdate{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}

func testDeleteOnce(t *testing.T, store repository.Store) {
	ctx := context.Background()
	author := mustUser(t, store, "author")

	created, err := store.Create(ctx, model.NoteCreate{Title: "Doomed"}, author.ID)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))
	assert.ErrorIs(t, store.Delete(ctx, created.ID), repository.ErrNoteNotFound)

	_, found, err := store.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func testIDsNotReused(t *testing.T, store repository.Store) {
	ctx := context.Background()
	author := mustUser(t, store, "author")

	first, err := store.Create(ctx, model.NoteCreate{Title: "first"}, author.ID)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, first.ID))

	second, err := store.Create(ctx, model.NoteCreate{Title: "second"}, author.ID)
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func testListOrdered(t *testing.T, store repository.Store) {
	ctx := context.Background()
	author := mustUser(t, store, "author")

	for _, title := range []string{"a", "b", "c"} {
		_, err := store.Create(ctx, model.NoteCreate{Title: title}, author.ID)
		require.NoError(t, err)
	}

	notes, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "a", notes[0].Title)
	assert.Equal(t, "c", notes[2].Title)
	assert.Less(t, notes[0].ID, notes[1].ID)
	assert.Less(t, notes[1].ID, notes[2].ID)
}

func testUsers(t *testing.T, store repository.Store) {
	ctx := context.Background()

	alice := mustUser(t, store, "alice")
	assert.NotZero(t, alice.ID)

	_, err := store.CreateUser(ctx, model.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, repository.ErrUserExists)

	found, ok, err := store.FindUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, alice.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	_, ok, err = store.FindUserByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := store.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = store.GetUserByID(ctx, 4242)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
