package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"nexus-backend/internal/application/services"
	"nexus-backend/internal/domain/document"
)

// StateHandler handles whole-document reads and writes. Export and import
// are the same operations under different paths; the wire shape is the
// persisted document itself.
type StateHandler struct {
	vault  *services.VaultService
	logger *zap.Logger
}

// NewStateHandler creates a new state handler.
func NewStateHandler(vault *services.VaultService, logger *zap.Logger) *StateHandler {
	return &StateHandler{vault: vault, logger: logger}
}

// Get handles GET /api/state and GET /api/export.
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.vault.State()
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, doc)
}

// Replace handles POST /api/state and POST /api/import.
func (h *StateHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var doc document.Document
	if !decodeBody(w, r, &doc) {
		return
	}

	if err := h.vault.ReplaceState(&doc); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondSuccess(w)
}
