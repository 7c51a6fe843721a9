package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"authored-notes/internal/api/http/middleware"
	"authored-notes/internal/api/http/response"
	"authored-notes/internal/converter"
	"authored-notes/internal/logger"
	"authored-notes/internal/model"
	svc "authored-notes/internal/service"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse ответ на успешный вход
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register регистрирует пользователя
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handler.Register")

	var in model.UserCreate
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		log.Debug("failed to decode request body", logger.Err(err))
		response.WriteError(w, r, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	user, err := h.userService.Register(r.Context(), in)
	if err != nil {
		handleError(w, r, log, err)
		return
	}

	render.JSON(w, r, converter.UserToResponse(user))
}

// Login проверяет учетные данные и выдает токен.
// Принимает JSON или форму (username, password).
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handler.Login")

	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			response.WriteError(w, r, http.StatusUnprocessableEntity, "invalid request body")
			return
		}
		req.Username = r.PostForm.Get("username")
		req.Password = r.PostForm.Get("password")
	} else if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Debug("failed to decode request body", logger.Err(err))
		response.WriteError(w, r, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		handleError(w, r, log, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		handleError(w, r, log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    "Bearer " + token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	render.JSON(w, r, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Logout удаляет cookie с токеном. Сам токен действует до истечения срока.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	render.JSON(w, r, model.Status{Message: "Logged out"})
}

// WhoAmI возвращает текущего пользователя
func (h *Handler) WhoAmI(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handler.WhoAmI")
	caller, _ := middleware.CallerFrom(r.Context())

	user, err := h.userService.Get(r.Context(), caller.UserID)
	if err != nil {
		// Пользователь удален после выдачи токена
		if errors.Is(err, svc.ErrNotFound) {
			response.WriteError(w, r, http.StatusUnauthorized, "Invalid token or expired token.")
			return
		}
		handleError(w, r, log, err)
		return
	}

	render.JSON(w, r, converter.UserToResponse(user))
}
