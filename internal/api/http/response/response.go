package response

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrorBody тело ответа об ошибке
type ErrorBody struct {
	Detail string `json:"detail"`
}

// Error формирует тело ошибки
func Error(detail string) ErrorBody {
	return ErrorBody{Detail: detail}
}

// WriteError отправляет ошибку со статусом
func WriteError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	render.Status(r, status)
	render.JSON(w, r, Error(detail))
}
