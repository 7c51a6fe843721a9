package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"authored-notes/internal/model"
	"authored-notes/internal/repository"
	"authored-notes/internal/repository/repositorytest"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newMockStore(mt *mtest.T) *Store {
	store := New(mt.DB)
	store.now = func() time.Time { return fixedNow }
	return store
}

func noteDoc(id int64, title, content string, author int64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "content", Value: content},
		{Key: "author_id", Value: author},
		{Key: "created_at", Value: fixedNow},
		{Key: "modified_at", Value: fixedNow},
	}
}

func counterResponse(name string, seq int64) bson.D {
	return bson.D{
		{Key: "ok", Value: 1},
		{Key: "value", Value: bson.D{{Key: "_id", Value: name}, {Key: "seq", Value: seq}}},
	}
}

func TestStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "notes." + notesCollection

	mt.Run("Create assigns counter id", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(
			counterResponse(notesCollection, 5),
			mtest.CreateSuccessResponse(),
		)

		note, err := store.Create(context.Background(), model.NoteCreate{Title: "Title", Content: "Body"}, 3)
		require.NoError(mt, err)
		assert.Equal(mt, model.Note{
			ID:         5,
			Title:      "Title",
			Content:    "Body",
			AuthorID:   3,
			CreatedAt:  fixedNow,
			ModifiedAt: fixedNow,
		}, note)
	})

	mt.Run("Create rejects missing title", func(mt *mtest.T) {
		store := newMockStore(mt)

		_, err := store.Create(context.Background(), model.NoteCreate{}, 3)
		assert.ErrorIs(mt, err, repository.ErrInvalidNote)
	})

	mt.Run("Find found", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, noteDoc(5, "Title", "Body", 3)))

		note, found, err := store.Find(context.Background(), 5)
		require.NoError(mt, err)
		assert.True(mt, found)
		assert.Equal(mt, int64(3), note.AuthorID)
		assert.Equal(mt, fixedNow, note.CreatedAt)
	})

	mt.Run("Find absent", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, found, err := store.Find(context.Background(), 6)
		require.NoError(mt, err)
		assert.False(mt, found)
	})

	mt.Run("GetByID absent", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := store.GetByID(context.Background(), 6)
		assert.ErrorIs(mt, err, repository.ErrNoteNotFound)
	})

	mt.Run("List", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			noteDoc(1, "a", "", 3),
			noteDoc(2, "b", "", 4),
		))

		notes, err := store.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, notes, 2)
		assert.Equal(mt, "a", notes[0].Title)
		assert.Equal(mt, int64(4), notes[1].AuthorID)
	})

	mt.Run("List empty", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		notes, err := store.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, notes)
		assert.Empty(mt, notes)
	})

	mt.Run("Update", func(mt *mtest.T) {
		store := newMockStore(mt)
		title := "New"
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: noteDoc(5, "New", "Body", 3)},
		})

		note, err := store.Update(context.Background(), 5, model.NoteUpdate{Title: &title})
		require.NoError(mt, err)
		assert.Equal(mt, "New", note.Title)
		assert.Equal(mt, "Body", note.Content)
	})

	mt.Run("Update absent", func(mt *mtest.T) {
		store := newMockStore(mt)
		title := "New"
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "value", Value: nil}})

		_, err := store.Update(context.Background(), 6, model.NoteUpdate{Title: &title})
		assert.ErrorIs(mt, err, repository.ErrNoteNotFound)
	})

	mt.Run("Delete", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		require.NoError(mt, store.Delete(context.Background(), 5))
		assert.ErrorIs(mt, store.Delete(context.Background(), 5), repository.ErrNoteNotFound)
	})

	mt.Run("CreateUser duplicate", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(
			counterResponse(usersCollection, 2),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error",
			}),
		)

		_, err := store.CreateUser(context.Background(), model.User{Username: "alice", PasswordHash: "hash"})
		assert.ErrorIs(mt, err, repository.ErrUserExists)
	})

	mt.Run("GetUserByID absent", func(mt *mtest.T) {
		store := newMockStore(mt)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "notes."+usersCollection, mtest.FirstBatch))

		_, err := store.GetUserByID(context.Background(), 9)
		assert.ErrorIs(mt, err, repository.ErrUserNotFound)
	})
}

// Контрактные тесты против настоящего MongoDB запускаются, только если задан URI
func TestStore_ContractAgainstDatabase(t *testing.T) {
	uri := os.Getenv("NOTES_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("NOTES_TEST_MONGO_URI not set")
	}

	repositorytest.Run(t, func(t *testing.T) repository.Store {
		ctx := context.Background()
		store, err := Connect(ctx, uri, "notes_test")
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })

		require.NoError(t, store.client.Database("notes_test").Drop(ctx))
		require.NoError(t, store.Migrate(ctx))
		return store
	})
}
