package handler

import (
	"net/http"

	"diario-server/internal/service"
	"diario-server/pkg/response"
)

type TrashHandler struct {
	notes    *service.NoteService
	settings *service.SettingsService
}

func NewTrashHandler(notes *service.NoteService, settings *service.SettingsService) *TrashHandler {
	return &TrashHandler{
		notes:    notes,
		settings: settings,
	}
}

func calendarScope(r *http.Request) bool {
	return r.URL.Query().Get("scope") == "calendar"
}

// List returns trashed notes for one scope (?scope=dashboard|calendar),
// most recently touched first.
func (h *TrashHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.ListTrash(calendarScope(r))
	if err != nil {
		response.InternalError(w, "Failed to list trash")
		return
	}

	response.JSON(w, http.StatusOK, notes)
}

func (h *TrashHandler) Empty(w http.ResponseWriter, r *http.Request) {
	removed, err := h.notes.EmptyTrash(calendarScope(r))
	if err != nil {
		response.InternalError(w, "Failed to empty trash")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"removed": removed})
}

// Clean removes trashed notes older than the configured retention window.
func (h *TrashHandler) Clean(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		response.InternalError(w, "Failed to load settings")
		return
	}

	removed, err := h.notes.AutoClean(settings.RetentionDays)
	if err != nil {
		response.InternalError(w, "Failed to clean trash")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"removed": removed})
}
