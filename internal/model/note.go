package model

import (
	"time"
)

// Note представляет заметку (доменная модель)
type Note struct {
	ID         int64     // Идентификатор, назначается хранилищем
	Title      string    // Заголовок заметки
	Content    string    // Содержание заметки
	AuthorID   int64     // Автор, неизменяем после создания
	CreatedAt  time.Time // Дата создания
	ModifiedAt time.Time // Дата последнего изменения
}

// NoteCreate входные данные для создания заметки
type NoteCreate struct {
	Title   string `json:"title" validate:"required,notblank,max=225"`
	Content string `json:"content"`
}

// Validate проверяет входные данные для создания
func (in NoteCreate) Validate() error {
	return validateStruct(in)
}

// NoteUpdate частичное обновление: nil-поля не изменяются
type NoteUpdate struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,notblank,max=225"`
	Content *string `json:"content,omitempty"`
}

// Validate проверяет переданные поля обновления
func (in NoteUpdate) Validate() error {
	return validateStruct(in)
}

// Apply переносит переданные поля в заметку
func (in NoteUpdate) Apply(note *Note) {
	if in.Title != nil {
		note.Title = *in.Title
	}
	if in.Content != nil {
		note.Content = *in.Content
	}
}

// Status подтверждение операции без тела заметки (например, удаления)
type Status struct {
	Message string `json:"message"`
}
