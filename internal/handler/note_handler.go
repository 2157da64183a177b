package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"diario-server/internal/domain"
	"diario-server/internal/service"
	"diario-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type NoteHandler struct {
	notes    *service.NoteService
	orders   *service.OrderService
	validate *validator.Validate
}

func NewNoteHandler(notes *service.NoteService, orders *service.OrderService) *NoteHandler {
	return &NoteHandler{
		notes:    notes,
		orders:   orders,
		validate: validator.New(),
	}
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	note, err := h.notes.Create(&req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyNote) {
			response.BadRequest(w, "Cannot save an empty note")
			return
		}
		response.InternalError(w, "Failed to create note")
		return
	}

	response.JSON(w, http.StatusCreated, note)
}

// List returns active dashboard notes, pinned first; ?q= narrows by
// title/body/label match.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.ListDashboard(r.URL.Query().Get("q"))
	if err != nil {
		response.InternalError(w, "Failed to list notes")
		return
	}

	response.JSON(w, http.StatusOK, notes)
}

// Get returns one note; ?mode=display applies the read-mode transforms,
// ?mode=edit flattens formulas before the editor reloads the body.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	note, err := h.notes.Get(noteID, r.URL.Query().Get("mode"))
	if err != nil {
		response.NotFound(w, "Note not found")
		return
	}

	response.JSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	var req domain.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	note, err := h.notes.Update(noteID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(w, "Note not found")
			return
		}
		response.InternalError(w, "Failed to update note")
		return
	}

	response.JSON(w, http.StatusOK, note)
}

// Delete moves the note to the trash; Purge removes it for good.
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	if err := h.notes.SoftDelete(noteID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(w, "Note not found")
			return
		}
		response.InternalError(w, "Failed to delete note")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Note moved to trash"})
}

func (h *NoteHandler) Restore(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	if err := h.notes.Restore(noteID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(w, "Note not found")
			return
		}
		response.InternalError(w, "Failed to restore note")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Note restored"})
}

func (h *NoteHandler) Purge(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	if err := h.notes.PermanentDelete(noteID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(w, "Note not found")
			return
		}
		response.InternalError(w, "Failed to delete note")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Note deleted permanently"})
}

// Swap exchanges position (and pin status) with another note. A vanished
// counterpart is reported, not treated as a failure of the caller's view.
func (h *NoteHandler) Swap(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.orders.Swap(vars["id"], vars["otherId"]); err != nil {
		if errors.Is(err, service.ErrTargetNotFound) {
			response.NotFound(w, "Target note not found")
			return
		}
		response.InternalError(w, "Failed to swap notes")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Notes swapped"})
}

func (h *NoteHandler) MoveBefore(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.orders.InsertBefore(vars["id"], vars["targetId"]); err != nil {
		if errors.Is(err, service.ErrTargetNotFound) {
			response.NotFound(w, "Target note not found")
			return
		}
		response.InternalError(w, "Failed to move note")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Note moved"})
}

func (h *NoteHandler) CopyToDate(w http.ResponseWriter, r *http.Request) {
	noteID := mux.Vars(r)["id"]

	var req domain.CopyToDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	note, err := h.notes.CopyToDate(noteID, req.Date)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(w, "Note not found")
			return
		}
		response.InternalError(w, "Failed to copy note")
		return
	}

	response.JSON(w, http.StatusCreated, note)
}
