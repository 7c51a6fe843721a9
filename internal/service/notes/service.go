package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"authored-notes/internal/model"
	"authored-notes/internal/repository"
	svc "authored-notes/internal/service"
)

var _ svc.NoteService = (*service)(nil)

type service struct {
	noteRepository repository.NoteRepository
	log            *slog.Logger
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками
func NewNoteService(noteRepository repository.NoteRepository, log *slog.Logger) svc.NoteService {
	return &service{
		noteRepository: noteRepository,
		log:            log,
	}
}

// List возвращает список всех заметок
func (s *service) List(ctx context.Context, caller model.Caller) ([]model.Note, error) {
	notes, err := s.noteRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

// Get возвращает заметку по её ID
func (s *service) Get(ctx context.Context, caller model.Caller, id int64) (model.Note, error) {
	note, err := s.lookup(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	return note, nil
}

// Create создает новую заметку, автор - вызывающий
func (s *service) Create(ctx context.Context, caller model.Caller, in model.NoteCreate) (model.Note, error) {
	if err := in.Validate(); err != nil {
		return model.Note{}, fmt.Errorf("%w: %w", svc.ErrValidation, err)
	}

	note, err := s.noteRepository.Create(ctx, in, caller.UserID)
	if errors.Is(err, repository.ErrInvalidNote) {
		return model.Note{}, fmt.Errorf("%w: %w", svc.ErrValidation, err)
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}

	s.log.Info("note created",
		slog.Int64("note_id", note.ID),
		slog.Int64("user_id", caller.UserID),
	)
	return note, nil
}

// Update обновляет заметку: поиск, затем проверка автора, затем запись
func (s *service) Update(ctx context.Context, caller model.Caller, id int64, patch model.NoteUpdate) (model.Note, error) {
	note, err := s.lookup(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	if err := s.authorize(caller, note, "update"); err != nil {
		return model.Note{}, err
	}

	if err := patch.Validate(); err != nil {
		return model.Note{}, fmt.Errorf("%w: %w", svc.ErrValidation, err)
	}

	updated, err := s.noteRepository.Update(ctx, id, patch)
	if errors.Is(err, repository.ErrNoteNotFound) {
		return model.Note{}, notFound(id)
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("update note %d: %w", id, err)
	}

	s.log.Info("note updated",
		slog.Int64("note_id", id),
		slog.Int64("user_id", caller.UserID),
	)
	return updated, nil
}

// Delete удаляет заметку: поиск, затем проверка автора, затем удаление
func (s *service) Delete(ctx context.Context, caller model.Caller, id int64) (model.Status, error) {
	note, err := s.lookup(ctx, id)
	if err != nil {
		return model.Status{}, err
	}

	if err := s.authorize(caller, note, "delete"); err != nil {
		return model.Status{}, err
	}

	// Заметка могла исчезнуть между проверкой и удалением
	err = s.noteRepository.Delete(ctx, id)
	if errors.Is(err, repository.ErrNoteNotFound) {
		return model.Status{}, notFound(id)
	}
	if err != nil {
		return model.Status{}, fmt.Errorf("delete note %d: %w", id, err)
	}

	s.log.Info("note deleted",
		slog.Int64("note_id", id),
		slog.Int64("user_id", caller.UserID),
	)
	return model.Status{Message: fmt.Sprintf("Deleted note %d", id)}, nil
}

// lookup возвращает заметку или ErrNotFound
func (s *service) lookup(ctx context.Context, id int64) (model.Note, error) {
	note, found, err := s.noteRepository.Find(ctx, id)
	if err != nil {
		return model.Note{}, fmt.Errorf("find note %d: %w", id, err)
	}
	if !found {
		return model.Note{}, notFound(id)
	}
	return note, nil
}

func (s *service) authorize(caller model.Caller, note model.Note, action string) error {
	if caller.Owns(note) {
		return nil
	}

	s.log.Warn("forbidden "+action+" attempt",
		slog.Int64("note_id", note.ID),
		slog.Int64("user_id", caller.UserID),
	)
	return &svc.Error{Kind: svc.ErrForbidden, Detail: "Not authorized to " + action}
}

// notFound не заворачивает ошибку хранилища: наружу уходит только ErrNotFound
func notFound(id int64) error {
	return &svc.Error{Kind: svc.ErrNotFound, Detail: fmt.Sprintf("Note %d not found", id)}
}
