package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"authored-notes/internal/model"
	"authored-notes/internal/repository"
)

const userColumns = "id, username, full_name, password, created_at, modified_at"

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.FullName, &u.PasswordHash, &u.CreatedAt, &u.ModifiedAt)
	u.CreatedAt, u.ModifiedAt = u.CreatedAt.UTC(), u.ModifiedAt.UTC()
	return u, err
}

// CreateUser сохраняет пользователя, дубликат имени дает ErrUserExists
func (s *Store) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	const op = "sqlstore.CreateUser"

	now := s.now()
	query := "INSERT INTO users (username, full_name, password, created_at, modified_at) VALUES (?, ?, ?, ?, ?)"
	args := []any{user.Username, user.FullName, user.PasswordHash, now, now}

	if s.dialect.returning {
		created, err := scanUser(s.db.QueryRowContext(ctx, s.rebind(query+" RETURNING "+userColumns), args...))
		if err != nil {
			if s.dialect.isUniqueViolation(err) {
				return model.User{}, repository.ErrUserExists
			}
			return model.User{}, fmt.Errorf("%s: %w", op, err)
		}
		return created, nil
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if s.dialect.isUniqueViolation(err) {
			return model.User{}, repository.ErrUserExists
		}
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	user.ID = id
	user.CreatedAt = now
	user.ModifiedAt = now
	return user, nil
}

// FindUserByUsername ищет пользователя по имени
func (s *Store) FindUserByUsername(ctx context.Context, username string) (model.User, bool, error) {
	const op = "sqlstore.FindUserByUsername"

	row := s.db.QueryRowContext(ctx, s.rebind("SELECT "+userColumns+" FROM users WHERE username = ?"), username)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, false, nil
	}
	if err != nil {
		return model.User{}, false, fmt.Errorf("%s: %w", op, err)
	}

	return user, true, nil
}

// GetUserByID возвращает пользователя или ErrUserNotFound
func (s *Store) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	const op = "sqlstore.GetUserByID"

	row := s.db.QueryRowContext(ctx, s.rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, repository.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
