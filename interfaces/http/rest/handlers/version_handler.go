package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"nexus-backend/internal/application/services"
	"nexus-backend/internal/domain/document"
	"nexus-backend/pkg/utils"
)

// VersionHandler handles the snapshot history.
type VersionHandler struct {
	versions *services.VersionService
	logger   *zap.Logger
}

// NewVersionHandler creates a new version handler.
func NewVersionHandler(versions *services.VersionService, logger *zap.Logger) *VersionHandler {
	return &VersionHandler{versions: versions, logger: logger}
}

// List handles GET /api/versions.
func (h *VersionHandler) List(w http.ResponseWriter, r *http.Request) {
	versions, err := h.versions.List()
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, versions)
}

// CreateVersionRequest represents the request body for a snapshot.
type CreateVersionRequest struct {
	Label string             `json:"label,omitempty"`
	State *document.Document `json:"state" validate:"required"`
}

// Create handles POST /api/versions.
func (h *VersionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVersionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	version, err := h.versions.Create(req.State, req.Label)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, version)
}

// Delete handles DELETE /api/versions/{versionID}.
func (h *VersionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	versionID := chi.URLParam(r, "versionID")

	if err := h.versions.Delete(versionID); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondSuccess(w)
}
