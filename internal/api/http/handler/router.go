package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"authored-notes/internal/api/http/middleware"
	"authored-notes/internal/api/http/response"
)

// Routes собирает маршруты API. CORS и rate limiting навешивает сервер.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(h.log))
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, r, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, "Hello, World!")
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.log, h.tokens))

		r.Get("/users/whoami", h.WhoAmI)

		r.Get("/notes", h.ListNotes)
		r.Post("/notes", h.CreateNote)
		r.Get("/note/{id}", h.GetNote)
		r.Patch("/note/{id}", h.UpdateNote)
		r.Delete("/note/{id}", h.DeleteNote)
	})

	return r
}
