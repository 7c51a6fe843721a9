package repository

import (
	"context"
	"errors"

	"authored-notes/internal/model"
)

var (
	// ErrNoteNotFound возвращается, когда заметка не найдена
	ErrNoteNotFound = errors.New("note not found")
	// ErrInvalidNote возвращается, когда не хватает обязательных полей
	ErrInvalidNote = errors.New("invalid note")
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists возвращается при повторной регистрации имени
	ErrUserExists = errors.New("user already exists")
)

// NoteRepository интерфейс для работы с заметками в хранилище
type NoteRepository interface {
	// List возвращает все заметки по возрастанию ID (пустой срез, если их нет)
	List(ctx context.Context) ([]model.Note, error)

	// Find ищет заметку; отсутствие не является ошибкой (found == false)
	Find(ctx context.Context, id int64) (note model.Note, found bool, err error)

	// GetByID возвращает заметку или ErrNoteNotFound
	GetByID(ctx context.Context, id int64) (model.Note, error)

	// Create сохраняет новую заметку с новым ID и указанным автором
	Create(ctx context.Context, in model.NoteCreate, authorID int64) (model.Note, error)

	// Update одной записью применяет переданные поля, ErrNoteNotFound если ID нет
	Update(ctx context.Context, id int64, patch model.NoteUpdate) (model.Note, error)

	// Delete удаляет заметку; ноль удаленных записей означает ErrNoteNotFound
	Delete(ctx context.Context, id int64) error
}

// UserRepository интерфейс для работы с пользователями
type UserRepository interface {
	// CreateUser сохраняет пользователя с уже вычисленным хэшем пароля
	CreateUser(ctx context.Context, user model.User) (model.User, error)

	// FindUserByUsername ищет пользователя по имени
	FindUserByUsername(ctx context.Context, username string) (user model.User, found bool, err error)

	// GetUserByID возвращает пользователя или ErrUserNotFound
	GetUserByID(ctx context.Context, id int64) (model.User, error)
}

// Store объединяет репозитории одного бэкенда хранения
type Store interface {
	NoteRepository
	UserRepository

	// Migrate создает схему (таблицы, индексы), если ее еще нет
	Migrate(ctx context.Context) error

	// Close освобождает соединения
	Close() error
}
