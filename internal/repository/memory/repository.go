package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"authored-notes/internal/model"
	"authored-notes/internal/repository"
)

var _ repository.Store = (*Repository)(nil)

// Repository in-memory хранилище на основе map.
// Используется в тестах и при storage.driver = memory.
type Repository struct {
	mu     sync.RWMutex
	notes  map[int64]model.Note
	users  map[int64]model.User
	lastID struct{ note, user int64 }
	now    func() time.Time
}

// NewRepository создает новый экземпляр in-memory репозитория
func NewRepository() *Repository {
	return &Repository{
		notes: make(map[int64]model.Note),
		users: make(map[int64]model.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List возвращает все заметки по возрастанию ID
func (r *Repository) List(ctx context.Context) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, 0, len(r.notes))
	for _, note := range r.notes {
		notes = append(notes, note)
	}
	slices.SortFunc(notes, func(a, b model.Note) int {
		return cmp.Compare(a.ID, b.ID)
	})

	return notes, nil
}

// Find ищет заметку по ID
func (r *Repository) Find(ctx context.Context, id int64) (model.Note, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, exists := r.notes[id]
	return note, exists, nil
}

// GetByID возвращает заметку по её ID
func (r *Repository) GetByID(ctx context.Context, id int64) (model.Note, error) {
	note, found, _ := r.Find(ctx, id)
	if !found {
		return model.Note{}, repository.ErrNoteNotFound
	}
	return note, nil
}

// Create создает новую заметку и возвращает её с назначенным ID
func (r *Repository) Create(ctx context.Context, in model.NoteCreate, authorID int64) (model.Note, error) {
	if err := in.Validate(); err != nil {
		return model.Note{}, fmt.Errorf("%w: %w", repository.ErrInvalidNote, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// ID только растет, удаленные не переиспользуются
	r.lastID.note++
	now := r.now()
	note := model.Note{
		ID:         r.lastID.note,
		Title:      in.Title,
		Content:    in.Content,
		AuthorID:   authorID,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	r.notes[note.ID] = note

	return note, nil
}

// Update применяет переданные поля к существующей заметке
func (r *Repository) Update(ctx context.Context, id int64, patch model.NoteUpdate) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, exists := r.notes[id]
	if !exists {
		return model.Note{}, repository.ErrNoteNotFound
	}

	patch.Apply(&note)
	note.ModifiedAt = r.now()
	r.notes[id] = note

	return note, nil
}

// Delete удаляет заметку по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.notes[id]; !exists {
		return repository.ErrNoteNotFound
	}
	delete(r.notes, id)

	return nil
}

// CreateUser сохраняет пользователя с уникальным именем
func (r *Repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return model.User{}, repository.ErrUserExists
		}
	}

	r.lastID.user++
	now := r.now()
	user.ID = r.lastID.user
	user.CreatedAt = now
	user.ModifiedAt = now
	r.users[user.ID] = user

	return user, nil
}

// FindUserByUsername ищет пользователя по имени
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (model.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return u, true, nil
		}
	}
	return model.User{}, false, nil
}

// GetUserByID возвращает пользователя по ID
func (r *Repository) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return model.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

// Migrate ничего не делает: схема не нужна
func (r *Repository) Migrate(ctx context.Context) error { return nil }

// Close ничего не делает
func (r *Repository) Close() error { return nil }
