package notes

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"authored-notes/internal/model"
	"authored-notes/internal/repository"
	"authored-notes/internal/repository/memory"
	svc "authored-notes/internal/service"
)

var (
	author   = model.Caller{UserID: 1, Username: "author"}
	stranger = model.Caller{UserID: 2, Username: "stranger"}
)

func strPtr(s string) *string { return &s }

// mockRepository - mock репозитория с подменой ошибок и подсчетом вызовов
type mockRepository struct {
	notes       map[int64]model.Note
	nextID      int64
	findError   error
	updateError error
	deleteError error
	updateCalls int
	deleteCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		notes: make(map[int64]model.Note),
	}
}

func (m *mockRepository) put(note model.Note) {
	m.notes[note.ID] = note
}

func (m *mockRepository) List(ctx context.Context) ([]model.Note, error) {
	notes := make([]model.Note, 0, len(m.notes))
	for _, note := range m.notes {
		notes = append(notes, note)
	}
	return notes, nil
}

func (m *mockRepository) Find(ctx context.Context, id int64) (model.Note, bool, error) {
	if m.findError != nil {
		return model.Note{}, false, m.findError
	}
	note, exists := m.notes[id]
	return note, exists, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (model.Note, error) {
	note, exists := m.notes[id]
	if !exists {
		return model.Note{}, repository.ErrNoteNotFound
	}
	return note, nil
}

func (m *mockRepository) Create(ctx context.Context, in model.NoteCreate, authorID int64) (model.Note, error) {
	m.nextID++
	note := model.Note{
		ID:         m.nextID,
		Title:      in.Title,
		Content:    in.Content,
		AuthorID:   authorID,
		CreatedAt:  time.Now(),
		ModifiedAt: time.Now(),
	}
	m.notes[note.ID] = note
	return note, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, patch model.NoteUpdate) (model.Note, error) {
	m.updateCalls++
	if m.updateError != nil {
		return model.Note{}, m.updateError
	}
	note, exists := m.notes[id]
	if !exists {
		return model.Note{}, repository.ErrNoteNotFound
	}
	patch.Apply(&note)
	note.ModifiedAt = time.Now()
	m.notes[id] = note
	return note, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteError != nil {
		return m.deleteError
	}
	if _, exists := m.notes[id]; !exists {
		return repository.ErrNoteNotFound
	}
	delete(m.notes, id)
	return nil
}

// Проверяем, что mockRepository реализует интерфейс
var _ repository.NoteRepository = (*mockRepository)(nil)

func newTestService(repo repository.NoteRepository) svc.NoteService {
	return NewNoteService(repo, slog.New(slog.DiscardHandler))
}

func TestNoteService_Create_StampsCallerAsAuthor(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)

	note, err := service.Create(ctx, author, model.NoteCreate{Title: "Test Note", Content: "Test Content"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if note.AuthorID != author.UserID {
		t.Errorf("Expected author %d, got %d", author.UserID, note.AuthorID)
	}

	if note.ID == 0 {
		t.Error("Expected note to have ID")
	}
}

func TestNoteService_Create_EmptyTitle(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)

	note, err := service.Create(ctx, author, model.NoteCreate{Content: "content"})

	if !errors.Is(err, svc.ErrValidation) {
		t.Fatalf("Expected ErrValidation, got: %v", err)
	}

	if note != (model.Note{}) {
		t.Error("Expected empty note on error")
	}

	if len(mockRepo.notes) != 0 {
		t.Error("Expected nothing to be stored")
	}
}

func TestNoteService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	service := newTestService(newMockRepository())

	note, err := service.Get(ctx, author, 404)

	if !errors.Is(err, svc.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}

	if errors.Is(err, repository.ErrNoteNotFound) {
		t.Error("Store error must not leak past the service")
	}

	if err.Error() != "Note 404 not found" {
		t.Errorf("Unexpected error detail: %q", err.Error())
	}

	if note != (model.Note{}) {
		t.Error("Expected empty note on error")
	}
}

func TestNoteService_Get_AnyCallerMayRead(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)
	mockRepo.put(model.Note{ID: 7, Title: "Mine", AuthorID: author.UserID})

	note, err := service.Get(ctx, stranger, 7)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if note.ID != 7 {
		t.Errorf("Expected ID 7, got %d", note.ID)
	}
}

func TestNoteService_Update_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)
	mockRepo.put(model.Note{ID: 7, Title: "Original Title", Content: "Original Content", AuthorID: author.UserID})

	updated, err := service.Update(ctx, author, 7, model.NoteUpdate{Title: strPtr("Updated Title")})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if updated.Title != "Updated Title" {
		t.Errorf("Expected title %q, got %q", "Updated Title", updated.Title)
	}

	if updated.Content != "Original Content" {
		t.Errorf("Expected content to stay unchanged, got %q", updated.Content)
	}
}

func TestNoteService_Update_NotFoundBeforeForbidden(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)

	// Несуществующая заметка: NotFound для любого вызывающего
	for _, caller := range []model.Caller{author, stranger} {
		_, err := service.Update(ctx, caller, 404, model.NoteUpdate{Title: strPtr("x")})
		if !errors.Is(err, svc.ErrNotFound) {
			t.Errorf("caller %d: expected ErrNotFound, got: %v", caller.UserID, err)
		}
		if errors.Is(err, svc.ErrForbidden) {
			t.Errorf("caller %d: authorization must not be evaluated for a missing note", caller.UserID)
		}
	}

	if mockRepo.updateCalls != 0 {
		t.Errorf("Expected no store writes, got %d", mockRepo.updateCalls)
	}
}

func TestNoteService_Update_Forbidden(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)
	original := model.Note{ID: 7, Title: "Original", Content: "Body", AuthorID: author.UserID}
	mockRepo.put(original)

	_, err := service.Update(ctx, stranger, 7, model.NoteUpdate{Title: strPtr("Hijacked")})
	if !errors.Is(err, svc.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got: %v", err)
	}

	if err.Error() != "Not authorized to update" {
		t.Errorf("Unexpected error detail: %q", err.Error())
	}

	if mockRepo.updateCalls != 0 {
		t.Errorf("Expected no store writes, got %d", mockRepo.updateCalls)
	}

	if mockRepo.notes[7] != original {
		t.Error("Expected stored note to stay unchanged")
	}
}

func TestNoteService_Update_ForbiddenBeforeValidation(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)
	mockRepo.put(model.Note{ID: 7, Title: "Original", AuthorID: author.UserID})

	_, err := service.Update(ctx, stranger, 7, model.NoteUpdate{Title: strPtr("   ")})
	if !errors.Is(err, svc.ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got: %v", err)
	}

	_, err = service.Update(ctx, author, 7, model.NoteUpdate{Title: strPtr("   ")})
	if !errors.Is(err, svc.ErrValidation) {
		t.Errorf("Expected ErrValidation for the author, got: %v", err)
	}
}

func TestNoteService_Update_VanishedDuringWrite(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)
	mockRepo.put(model.Note{ID: 7, Title: "Original", AuthorID: author.UserID})
	mockRepo.updateError = repository.ErrNoteNotFound

	_, err := service.Update(ctx, author, 7, model.NoteUpdate{Title: strPtr("New")})
	if !errors.Is(err, svc.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestNoteService_Update_StoreFailure(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)
	mockRepo.findError = errors.New("connection reset")

	_, err := service.Update(ctx, author, 7, model.NoteUpdate{Title: strPtr("New")})
	if err == nil {
		t.Fatal("Expected error")
	}

	if errors.Is(err, svc.ErrNotFound) || errors.Is(err, svc.ErrForbidden) {
		t.Errorf("Infrastructure error must not be categorized, got: %v", err)
	}
}

func TestNoteService_Delete_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)
	mockRepo.put(model.Note{ID: 7, Title: "Test Note", AuthorID: author.UserID})

	status, err := service.Delete(ctx, author, 7)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if status.Message != "Deleted note 7" {
		t.Errorf("Expected confirmation message, got %q", status.Message)
	}

	if _, exists := mockRepo.notes[7]; exists {
		t.Error("Expected note to be deleted")
	}
}

func TestNoteService_Delete_Forbidden(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)
	mockRepo.put(model.Note{ID: 7, Title: "Test Note", AuthorID: author.UserID})

	_, err := service.Delete(ctx, stranger, 7)
	if !errors.Is(err, svc.ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got: %v", err)
	}

	if err.Error() != "Not authorized to delete" {
		t.Errorf("Unexpected error detail: %q", err.Error())
	}

	if mockRepo.deleteCalls != 0 {
		t.Errorf("Expected no store deletes, got %d", mockRepo.deleteCalls)
	}

	if _, err := service.Get(ctx, author, 7); err != nil {
		t.Errorf("Expected note to remain retrievable, got: %v", err)
	}
}

func TestNoteService_Delete_ZeroRowsIsNotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := newTestService(mockRepo)
	mockRepo.put(model.Note{ID: 7, Title: "Test Note", AuthorID: author.UserID})
	// Проверка существования прошла, но удалять уже нечего
	mockRepo.deleteError = repository.ErrNoteNotFound

	_, err := service.Delete(ctx, author, 7)
	if !errors.Is(err, svc.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

// Свойства сервиса на настоящем in-memory хранилище

func TestNoteService_Properties(t *testing.T) {
	ctx := context.Background()

	t.Run("list on empty store", func(t *testing.T) {
		service := newTestService(memory.NewRepository())

		notes, err := service.List(ctx, author)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if notes == nil || len(notes) != 0 {
			t.Errorf("Expected empty non-nil slice, got %#v", notes)
		}
	})

	t.Run("create then get round trip", func(t *testing.T) {
		service := newTestService(memory.NewRepository())

		created, err := service.Create(ctx, author, model.NoteCreate{Title: "T", Content: "C"})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		got, err := service.Get(ctx, stranger, created.ID)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if got != created {
			t.Errorf("Expected %+v, got %+v", created, got)
		}
	})

	t.Run("create then update title keeps content", func(t *testing.T) {
		service := newTestService(memory.NewRepository())

		created, err := service.Create(ctx, author, model.NoteCreate{Title: "Old", Content: "Body"})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		updated, err := service.Update(ctx, author, created.ID, model.NoteUpdate{Title: strPtr("T")})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if updated.Title != "T" || updated.Content != "Body" {
			t.Errorf("Expected title T and content Body, got %q / %q", updated.Title, updated.Content)
		}
		if updated.AuthorID != author.UserID {
			t.Error("Expected author to stay unchanged")
		}
	})

	t.Run("delete succeeds exactly once", func(t *testing.T) {
		service := newTestService(memory.NewRepository())

		created, err := service.Create(ctx, author, model.NoteCreate{Title: "Doomed"})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if _, err := service.Delete(ctx, author, created.ID); err != nil {
			t.Fatalf("Expected first delete to succeed, got: %v", err)
		}
		if _, err := service.Delete(ctx, author, created.ID); !errors.Is(err, svc.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got: %v", err)
		}
		if _, err := service.Get(ctx, author, created.ID); !errors.Is(err, svc.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on get after delete, got: %v", err)
		}
	})

	t.Run("non-author update leaves note unchanged", func(t *testing.T) {
		service := newTestService(memory.NewRepository())

		created, err := service.Create(ctx, author, model.NoteCreate{Title: "Mine", Content: "Body"})
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if _, err := service.Update(ctx, stranger, created.ID, model.NoteUpdate{Content: strPtr("pwned")}); !errors.Is(err, svc.ErrForbidden) {
			t.Fatalf("Expected ErrForbidden, got: %v", err)
		}
		got, err := service.Get(ctx, author, created.ID)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if got != created {
			t.Errorf("Expected note unchanged, got %+v", got)
		}
	})
}
