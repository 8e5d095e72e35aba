package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"nexus-backend/internal/application/services"
	"nexus-backend/internal/domain/document"
)

// SettingsHandler handles the runtime settings document.
type SettingsHandler struct {
	settings *services.SettingsService
	logger   *zap.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(settings *services.SettingsService, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// Update handles PUT /api/settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var settings document.Settings
	if !decodeBody(w, r, &settings) {
		return
	}

	if err := h.settings.Update(&settings); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
