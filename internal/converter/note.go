package converter

import (
	"time"

	"authored-notes/internal/model"
)

// NoteResponse представление заметки в API и при экспорте
type NoteResponse struct {
	ID         int64     `json:"id" yaml:"id"`
	Title      string    `json:"title" yaml:"title"`
	Content    string    `json:"content" yaml:"content"`
	AuthorID   int64     `json:"author_id" yaml:"author_id"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	ModifiedAt time.Time `json:"modified_at" yaml:"modified_at"`
}

// UserResponse представление пользователя без хэша пароля
type UserResponse struct {
	ID         int64     `json:"id" yaml:"id"`
	Username   string    `json:"username" yaml:"username"`
	FullName   string    `json:"full_name" yaml:"full_name"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	ModifiedAt time.Time `json:"modified_at" yaml:"modified_at"`
}

// ModelToResponse конвертирует domain модель Note в ответ
func ModelToResponse(note model.Note) NoteResponse {
	return NoteResponse{
		ID:         note.ID,
		Title:      note.Title,
		Content:    note.Content,
		AuthorID:   note.AuthorID,
		CreatedAt:  note.CreatedAt.UTC(),
		ModifiedAt: note.ModifiedAt.UTC(),
	}
}

// ModelsToResponses конвертирует слайс заметок; пустой список остается [], а не null
func ModelsToResponses(notes []model.Note) []NoteResponse {
	out := make([]NoteResponse, len(notes))
	for i, note := range notes {
		out[i] = ModelToResponse(note)
	}

	return out
}

// UserToResponse конвертирует пользователя в ответ
func UserToResponse(user model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		FullName:   user.FullName,
		CreatedAt:  user.CreatedAt.UTC(),
		ModifiedAt: user.ModifiedAt.UTC(),
	}
}
