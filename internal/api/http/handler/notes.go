package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"authored-notes/internal/api/http/middleware"
	"authored-notes/internal/api/http/response"
	"authored-notes/internal/converter"
	"authored-notes/internal/logger"
	"authored-notes/internal/model"
)

// ListNotes возвращает список всех заметок
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handler.ListNotes")
	caller, _ := middleware.CallerFrom(r.Context())

	notes, err := h.noteService.List(r.Context(), caller)
	if err != nil {
		handleError(w, r, log, err)
		return
	}

	render.JSON(w, r, converter.ModelsToResponses(notes))
}

// GetNote возвращает заметку по её ID
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handler.GetNote")
	caller, _ := middleware.CallerFrom(r.Context())

	id, ok := noteID(r)
	if !ok {
		noteNotFound(w, r)
		return
	}

	note, err := h.noteService.Get(r.Context(), caller, id)
	if err != nil {
		handleError(w, r, log, err)
		return
	}

	render.JSON(w, r, converter.ModelToResponse(note))
}

// CreateNote создает новую заметку от имени вызывающего
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handler.CreateNote")
	caller, _ := middleware.CallerFrom(r.Context())

	var in model.NoteCreate
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		log.Debug("failed to decode request body", logger.Err(err))
		response.WriteError(w, r, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	note, err := h.noteService.Create(r.Context(), caller, in)
	if err != nil {
		handleError(w, r, log, err)
		return
	}

	render.JSON(w, r, converter.ModelToResponse(note))
}

// UpdateNote частично обновляет заметку; только автор
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handler.UpdateNote")
	caller, _ := middleware.CallerFrom(r.Context())

	id, ok := noteID(r)
	if !ok {
		noteNotFound(w, r)
		return
	}

	var patch model.NoteUpdate
	if err := render.DecodeJSON(r.Body, &patch); err != nil {
		log.Debug("failed to decode request body", logger.Err(err), slog.Int64("note_id", id))
		response.WriteError(w, r, http.StatusUnprocessableEntity, "invalid request body")
		return
	}

	note, err := h.noteService.Update(r.Context(), caller, id, patch)
	if err != nil {
		handleError(w, r, log, err)
		return
	}

	render.JSON(w, r, converter.ModelToResponse(note))
}

// DeleteNote удаляет заметку; только автор
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	log := h.logger(r, "handler.DeleteNote")
	caller, _ := middleware.CallerFrom(r.Context())

	id, ok := noteID(r)
	if !ok {
		noteNotFound(w, r)
		return
	}

	status, err := h.noteService.Delete(r.Context(), caller, id)
	if err != nil {
		handleError(w, r, log, err)
		return
	}

	render.JSON(w, r, status)
}

func noteNotFound(w http.ResponseWriter, r *http.Request) {
	response.WriteError(w, r, http.StatusNotFound, "Note does not exist")
}
