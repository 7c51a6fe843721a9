package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"authored-notes/internal/api/http/response"
	"authored-notes/internal/logger"
	"authored-notes/internal/model"
	svc "authored-notes/internal/service"
)

// Tokens выпускает и проверяет access-токены
type Tokens interface {
	Issue(user model.User) (string, error)
	Parse(token string) (model.Caller, error)
	TTL() time.Duration
}

// Handler HTTP API заметок и пользователей
type Handler struct {
	noteService svc.NoteService
	userService svc.UserService
	tokens      Tokens
	log         *slog.Logger
}

// NewHandler создает новый экземпляр HTTP хэндлера
func NewHandler(noteService svc.NoteService, userService svc.UserService, tokens Tokens, log *slog.Logger) *Handler {
	return &Handler{
		noteService: noteService,
		userService: userService,
		tokens:      tokens,
		log:         log,
	}
}

func (h *Handler) logger(r *http.Request, op string) *slog.Logger {
	return h.log.With(
		slog.String("op", op),
		slog.String("request_id", chimw.GetReqID(r.Context())),
	)
}

// noteID разбирает {id}; нечисловой или неположительный ID - такой заметки нет
func noteID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleError конвертирует ошибки сервиса в HTTP статусы
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, svc.ErrNotFound):
		response.WriteError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, svc.ErrForbidden):
		response.WriteError(w, r, http.StatusForbidden, err.Error())
	case errors.Is(err, svc.ErrValidation):
		response.WriteError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, svc.ErrConflict):
		response.WriteError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, svc.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		response.WriteError(w, r, http.StatusUnauthorized, "Incorrect username or password")
	default:
		// Все остальные ошибки - Internal, детали только в логе
		log.Error("request failed", logger.Err(err))
		response.WriteError(w, r, http.StatusInternalServerError, "internal error")
	}
}
