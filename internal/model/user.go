package model

import "time"

// User пользователь, на которого ссылаются заметки
type User struct {
	ID           int64
	Username     string
	FullName     string
	PasswordHash string // bcrypt, наружу не отдается
	CreatedAt    time.Time
	ModifiedAt   time.Time
}

// UserCreate входные данные регистрации
type UserCreate struct {
	Username string `json:"username" validate:"required,min=3,max=20,alphanum"`
	FullName string `json:"full_name" validate:"max=50"`
	Password string `json:"password" validate:"required,min=8,bcryptmax"`
}

// Validate проверяет входные данные регистрации
func (in UserCreate) Validate() error {
	return validateStruct(in)
}

// Caller аутентифицированный пользователь текущего запроса
type Caller struct {
	UserID   int64
	Username string
}

// IsAnonymous сообщает, что идентичность не установлена
func (c Caller) IsAnonymous() bool {
	return c.UserID == 0
}

// Owns проверяет, является ли вызывающий автором заметки
func (c Caller) Owns(note Note) bool {
	return !c.IsAnonymous() && note.AuthorID == c.UserID
}
