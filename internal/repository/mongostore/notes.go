package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"authored-notes/internal/model"
	"authored-notes/internal/repository"
)

type noteDocument struct {
	ID         int64     `bson:"_id"`
	Title      string    `bson:"title"`
	Content    string    `bson:"content"`
	AuthorID   int64     `bson:"author_id"`
	CreatedAt  time.Time `bson:"created_at"`
	ModifiedAt time.Time `bson:"modified_at"`
}

func (d noteDocument) toModel() model.Note {
	return model.Note{
		ID:         d.ID,
		Title:      d.Title,
		Content:    d.Content,
		AuthorID:   d.AuthorID,
		CreatedAt:  d.CreatedAt,
		ModifiedAt: d.ModifiedAt,
	}
}

// List возвращает все заметки по возрастанию ID
func (s *Store) List(ctx context.Context) ([]model.Note, error) {
	const op = "mongostore.List"

	cursor, err := s.notes.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var docs []noteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}

	notes := make([]model.Note, 0, len(docs))
	for _, d := range docs {
		notes = append(notes, d.toModel())
	}
	return notes, nil
}

// Find ищет заметку по ID
func (s *Store) Find(ctx context.Context, id int64) (model.Note, bool, error) {
	const op = "mongostore.Find"

	var doc noteDocument
	err := s.notes.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if isNoDocuments(err) {
		return model.Note{}, false, nil
	}
	if err != nil {
		return model.Note{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toModel(), true, nil
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

// Create выдает новый ID и вставляет документ
func (s *Store) Create(ctx context.Context, in model.NoteCreate, authorID int64) (model.Note, error) {
	const op = "mongostore.Create"

	if err := in.Validate(); err != nil {
		return model.Note{}, fmt.Errorf("%w: %w", repository.ErrInvalidNote, err)
	}

	id, err := s.nextID(ctx, notesCollection)
	if err != nil {
		return model.Note{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	doc := noteDocument{
		ID:         id,
		Title:      in.Title,
		Content:    in.Content,
		AuthorID:   authorID,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if _, err := s.notes.InsertOne(ctx, doc); err != nil {
		return model.Note{}, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toModel(), nil
}

// Update одним findAndModify применяет переданные поля
func (s *Store) Update(ctx context.Context, id int64, patch model.NoteUpdate) (model.Note, error) {
	const op = "mongostore.Update"

	set := bson.M{"modified_at": s.now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}

	var doc noteDocument
	err := s.notes.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if isNoDocuments(err) {
		return model.Note{}, repository.ErrNoteNotFound
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toModel(), nil
}

// Delete удаляет заметку; DeletedCount == 0 означает ErrNoteNotFound
func (s *Store) Delete(ctx context.Context, id int64) error {
	const op = "mongostore.Delete"

	res, err := s.notes.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNoteNotFound
	}
	return nil
}
