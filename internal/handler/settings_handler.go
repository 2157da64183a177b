package handler

import (
	"encoding/json"
	"net/http"

	"diario-server/internal/domain"
	"diario-server/internal/service"
	"diario-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

type SettingsHandler struct {
	settings *service.SettingsService
	validate *validator.Validate
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		validate: validator.New(),
	}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		response.InternalError(w, "Failed to load settings")
		return
	}

	response.JSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	settings, err := h.settings.Update(&req)
	if err != nil {
		response.InternalError(w, "Failed to save settings")
		return
	}

	response.JSON(w, http.StatusOK, settings)
}
