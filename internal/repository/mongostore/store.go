// Package mongostore реализует repository.Store поверх MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"authored-notes/internal/repository"
)

const (
	notesCollection    = "notes"
	usersCollection    = "users"
	countersCollection = "counters"
)

var _ repository.Store = (*Store)(nil)

// Store хранилище заметок и пользователей в MongoDB.
// Числовые ID выдаются счетчиками в коллекции counters.
type Store struct {
	client   *mongo.Client
	notes    *mongo.Collection
	users    *mongo.Collection
	counters *mongo.Collection
	now      func() time.Time
}

// Connect подключается к MongoDB и проверяет соединение
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	const op = "mongostore.Connect"

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	store := New(client.Database(database))
	store.client = client
	return store, nil
}

// New оборачивает базу данных; соединением владеет вызывающий
func New(db *mongo.Database) *Store {
	return &Store{
		notes:    db.Collection(notesCollection),
		users:    db.Collection(usersCollection),
		counters: db.Collection(countersCollection),
		// BSON хранит время с точностью до миллисекунды
		now: func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// Migrate создает уникальный индекс по имени пользователя
func (s *Store) Migrate(ctx context.Context) error {
	const op = "mongostore.Migrate"

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close отключает клиента, если Store сам его создал
func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(context.Background())
}

type counter struct {
	Seq int64 `bson:"seq"`
}

// nextID атомарно увеличивает счетчик; значения не переиспользуются
func (s *Store) nextID(ctx context.Context, name string) (int64, error) {
	var c counter
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return c.Seq, nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
