package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"authored-notes/internal/model"
)

// ErrInvalidToken токен поврежден, просрочен или подписан чужим ключом
var ErrInvalidToken = errors.New("invalid token")

// Claims полезная нагрузка access-токена
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager выпускает и проверяет HS256 токены
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager создает менеджер токенов
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL время жизни выпускаемых токенов
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue выпускает токен для пользователя
func (m *TokenManager) Issue(user model.User) (string, error) {
	now := m.now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth.Issue: %w", err)
	}
	return signed, nil
}

// Parse проверяет подпись и срок действия, возвращает вызывающего
func (m *TokenManager) Parse(token string) (model.Caller, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return model.Caller{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.UserID <= 0 {
		return model.Caller{}, fmt.Errorf("%w: missing user_id", ErrInvalidToken)
	}

	return model.Caller{UserID: claims.UserID, Username: claims.Username}, nil
}
