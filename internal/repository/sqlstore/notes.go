package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"authored-notes/internal/model"
	"authored-notes/internal/repository"
)

const noteColumns = "id, title, content, author_id, created_at, modified_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (model.Note, error) {
	var n model.Note
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.AuthorID, &n.CreatedAt, &n.ModifiedAt)
	// TIMESTAMPTZ приходит в зоне сессии
	n.CreatedAt, n.ModifiedAt = n.CreatedAt.UTC(), n.ModifiedAt.UTC()
	return n, err
}

// List возвращает все заметки по возрастанию ID
func (s *Store) List(ctx context.Context) ([]model.Note, error) {
	const op = "sqlstore.List"

	rows, err := s.db.QueryContext(ctx, "SELECT "+noteColumns+" FROM notes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return notes, nil
}

// Find ищет заметку по ID
func (s *Store) Find(ctx context.Context, id int64) (model.Note, bool, error) {
	const op = "sqlstore.Find"

	row := s.db.QueryRowContext(ctx, s.rebind("SELECT "+noteColumns+" FROM notes WHERE id = ?"), id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, false, nil
	}
	if err != nil {
		return model.Note{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return note, true, nil
}

// GetByID возвращает заметку по её ID
func (s *Store) GetByID(ctx context.Context, id int64) (model.Note, error) {
	note, found, err := s.Find(ctx, id)
	if err != nil {
		return model.Note{}, err
	}
	if !found {
		return model.Note{}, repository.ErrNoteNotFound
	}
	return note, nil
}

// Create создает заметку одной вставкой
func (s *Store) Create(ctx context.Context, in model.NoteCreate, authorID int64) (model.Note, error) {
	const op = "sqlstore.Create"

	if err := in.Validate(); err != nil {
		return model.Note{}, fmt.Errorf("%w: %w", repository.ErrInvalidNote, err)
	}

	now := s.now()
	query := "INSERT INTO notes (title, content, author_id, created_at, modified_at) VALUES (?, ?, ?, ?, ?)"
	args := []any{in.Title, in.Content, authorID, now, now}

	if s.dialect.returning {
		note, err := scanNote(s.db.QueryRowContext(ctx, s.rebind(query+" RETURNING "+noteColumns), args...))
		if err != nil {
			return model.Note{}, fmt.Errorf("%s: %w", op, err)
		}
		return note, nil
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return model.Note{}, fmt.Errorf("%s: %w", op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Note{}, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return model.Note{
		ID:         id,
		Title:      in.Title,
		Content:    in.Content,
		AuthorID:   authorID,
		CreatedAt:  now,
		ModifiedAt: now,
	}, nil
}

// Update одним UPDATE применяет только переданные поля
func (s *Store) Update(ctx context.Context, id int64, patch model.NoteUpdate) (model.Note, error) {
	const op = "sqlstore.Update"

	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	sets = append(sets, "modified_at = ?")
	args = append(args, s.now(), id)

	query := "UPDATE notes SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	if s.dialect.returning {
		note, err := scanNote(s.db.QueryRowContext(ctx, s.rebind(query+" RETURNING "+noteColumns), args...))
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, repository.ErrNoteNotFound
		}
		if err != nil {
			return model.Note{}, fmt.Errorf("%s: %w", op, err)
		}
		return note, nil
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return model.Note{}, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Note{}, fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return model.Note{}, repository.ErrNoteNotFound
	}

	return s.GetByID(ctx, id)
}

// Delete удаляет заметку; ноль затронутых строк означает ErrNoteNotFound
func (s *Store) Delete(ctx context.Context, id int64) error {
	const op = "sqlstore.Delete"

	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM notes WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return repository.ErrNoteNotFound
	}

	return nil
}
