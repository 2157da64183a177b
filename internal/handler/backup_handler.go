package handler

import (
	"encoding/json"
	"net/http"

	"diario-server/internal/domain"
	"diario-server/internal/service"
	"diario-server/pkg/response"
)

type BackupHandler struct {
	backup *service.BackupService
}

func NewBackupHandler(backup *service.BackupService) *BackupHandler {
	return &BackupHandler{backup: backup}
}

func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	records, err := h.backup.Export()
	if err != nil {
		response.InternalError(w, "Failed to export notes")
		return
	}

	response.JSON(w, http.StatusOK, records)
}

// Import bulk-inserts a previously exported dump. A payload that does not
// decode aborts the whole import; bad timestamps inside records do not.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	var records []domain.BackupRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		response.BadRequest(w, "Invalid backup payload: "+err.Error())
		return
	}

	inserted, err := h.backup.Import(records)
	if err != nil {
		response.InternalError(w, "Failed to import notes")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"imported": inserted})
}
