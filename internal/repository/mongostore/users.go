package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"authored-notes/internal/model"
	"authored-notes/internal/repository"
)

type userDocument struct {
	ID         int64     `bson:"_id"`
	Username   string    `bson:"username"`
	FullName   string    `bson:"full_name"`
	Password   string    `bson:"password"`
	CreatedAt  time.Time `bson:"created_at"`
	ModifiedAt time.Time `bson:"modified_at"`
}

func (d userDocument) toModel() model.User {
	return model.User{
		ID:           d.ID,
		Username:     d.Username,
		FullName:     d.FullName,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
		ModifiedAt:   d.ModifiedAt,
	}
}

// CreateUser сохраняет пользователя; уникальность имени обеспечивает индекс
func (s *Store) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	const op = "mongostore.CreateUser"

	id, err := s.nextID(ctx, usersCollection)
	if err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	doc := userDocument{
		ID:         id,
		Username:   user.Username,
		FullName:   user.FullName,
		Password:   user.PasswordHash,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, repository.ErrUserExists
		}
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return doc.toModel(), nil
}

// FindUserByUsername ищет пользователя по имени
func (s *Store) FindUserByUsername(ctx context.Context, username string) (model.User, bool, error) {
	const op = "mongostore.FindUserByUsername"

	var doc userDocument
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&doc)
	if isNoDocuments(err) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toModel(), true, nil
}

// GetUserByID возвращает пользователя или ErrUserNotFound
func (s *Store) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	const op = "mongostore.GetUserByID"

	var doc userDocument
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if isNoDocuments(err) {
		return model.User{}, repository.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toModel(), nil
}
