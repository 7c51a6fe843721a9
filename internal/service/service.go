package service

import (
	"context"
	"errors"

	"authored-notes/internal/model"
)

// Стабильная таксономия ошибок, видимая вызывающему
var (
	// ErrNotFound ресурс отсутствует (при поиске или в момент удаления)
	ErrNotFound = errors.New("not found")
	// ErrForbidden вызывающий аутентифицирован, но не является автором
	ErrForbidden = errors.New("forbidden")
	// ErrValidation входные данные неполны или некорректны
	ErrValidation = errors.New("validation failed")
	// ErrConflict ресурс с таким ключом уже существует
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials неверное имя пользователя или пароль
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Error ошибка с текстом для клиента; категория доступна через errors.Is
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

// NoteService интерфейс для бизнес-логики работы с заметками.
// Идентичность вызывающего передается явно в каждую операцию.
type NoteService interface {
	// List возвращает все заметки, без фильтрации по автору
	List(ctx context.Context, caller model.Caller) ([]model.Note, error)

	// Get возвращает заметку по её ID
	Get(ctx context.Context, caller model.Caller, id int64) (model.Note, error)

	// Create создает заметку, автором становится вызывающий
	Create(ctx context.Context, caller model.Caller, in model.NoteCreate) (model.Note, error)

	// Update обновляет заметку; разрешено только автору
	Update(ctx context.Context, caller model.Caller, id int64, patch model.NoteUpdate) (model.Note, error)

	// Delete удаляет заметку; разрешено только автору
	Delete(ctx context.Context, caller model.Caller, id int64) (model.Status, error)
}

// UserService интерфейс регистрации и проверки учетных данных
type UserService interface {
	// Register создает пользователя с хэшированным паролем
	Register(ctx context.Context, in model.UserCreate) (model.User, error)

	// Authenticate проверяет имя и пароль
	Authenticate(ctx context.Context, username, password string) (model.User, error)

	// Get возвращает пользователя по ID
	Get(ctx context.Context, id int64) (model.User, error)
}
