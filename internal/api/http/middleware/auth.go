package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"authored-notes/internal/api/http/response"
	"authored-notes/internal/logger"
	"authored-notes/internal/model"
)

type ctxKey string

const callerKey ctxKey = "caller"

// AuthCookie cookie со значением "Bearer <token>" для браузерных клиентов
const AuthCookie = "Authorization"

// TokenParser проверяет токен и возвращает вызывающего
type TokenParser interface {
	Parse(token string) (model.Caller, error)
}

// RequireAuth пропускает только запросы с валидным Bearer токеном.
// Без заголовка Authorization токен берется из cookie AuthCookie.
func RequireAuth(log *slog.Logger, parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			entry := log.With(slog.String("request_id", chimw.GetReqID(r.Context())))

			token, ok := bearerToken(credentials(r))
			if !ok {
				unauthorized(w, r, "Not authenticated")
				return
			}

			caller, err := parser.Parse(token)
			if err != nil {
				entry.Debug("token rejected", logger.Err(err))
				unauthorized(w, r, "Invalid token or expired token.")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// WithCaller кладет вызывающего в контекст
func WithCaller(ctx context.Context, caller model.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// CallerFrom достает вызывающего из контекста
func CallerFrom(ctx context.Context) (model.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(model.Caller)
	return caller, ok && !caller.IsAnonymous()
}

func credentials(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return header
	}
	if c, err := r.Cookie(AuthCookie); err == nil {
		return c.Value
	}
	return ""
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	response.WriteError(w, r, http.StatusUnauthorized, detail)
}
