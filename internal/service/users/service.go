package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"authored-notes/internal/model"
	"authored-notes/internal/repository"
	svc "authored-notes/internal/service"
)

var _ svc.UserService = (*service)(nil)

type service struct {
	userRepository repository.UserRepository
	log            *slog.Logger
	cost           int
	// dummyHash сравнивается при неизвестном имени, чтобы время ответа не выдавало его
	dummyHash []byte
}

// Option настраивает сервис пользователей
type Option func(*service)

// WithBcryptCost задает стоимость bcrypt (в тестах - bcrypt.MinCost)
func WithBcryptCost(cost int) Option {
	return func(s *service) {
		s.cost = cost
	}
}

// NewUserService создает сервис регистрации и входа
func NewUserService(userRepository repository.UserRepository, log *slog.Logger, opts ...Option) (svc.UserService, error) {
	s := &service{
		userRepository: userRepository,
		log:            log,
		cost:           bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	if err != nil {
		return nil, fmt.Errorf("users.NewUserService: %w", err)
	}
	s.dummyHash = dummy

	return s, nil
}

// normalizeUsername имена сравниваются без учета регистра во всех хранилищах
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Register создает пользователя с хэшированным паролем
func (s *service) Register(ctx context.Context, in model.UserCreate) (model.User, error) {
	in.Username = normalizeUsername(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := in.Validate(); err != nil {
		return model.User{}, fmt.Errorf("%w: %w", svc.ErrValidation, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return model.User{}, fmt.Errorf("%w: %w", svc.ErrValidation, err)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.userRepository.CreateUser(ctx, model.User{
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: string(hash),
	})
	if errors.Is(err, repository.ErrUserExists) {
		return model.User{}, fmt.Errorf("%w: username %q is taken", svc.ErrConflict, in.Username)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", slog.Int64("user_id", user.ID))
	return user, nil
}

// Authenticate проверяет имя и пароль
func (s *service) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	user, found, err := s.userRepository.FindUserByUsername(ctx, normalizeUsername(username))
	if err != nil {
		return model.User{}, fmt.Errorf("find user: %w", err)
	}

	if !found {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return model.User{}, svc.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt", slog.Int64("user_id", user.ID))
		return model.User{}, svc.ErrInvalidCredentials
	}

	return user, nil
}

// Get возвращает пользователя по ID
func (s *service) Get(ctx context.Context, id int64) (model.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return model.User{}, fmt.Errorf("user %d %w", id, svc.ErrNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user %d: %w", id, err)
	}

	return user, nil
}
