package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"nexus-backend/internal/application/services"
	"nexus-backend/internal/domain/category"
	"nexus-backend/pkg/utils"
)

// CategoryHandler handles category CRUD.
type CategoryHandler struct {
	vault  *services.VaultService
	logger *zap.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(vault *services.VaultService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{vault: vault, logger: logger}
}

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	ID       string  `json:"id,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
	Name     string  `json:"name" validate:"required"`
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	created, err := h.vault.CreateCategory(category.Category{
		ID:       req.ID,
		ParentID: req.ParentID,
		Name:     req.Name,
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/categories/{categoryID} with merge semantics.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !json.Valid(body) {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updated, uErr := h.vault.UpdateCategory(categoryID, body)
	if uErr != nil {
		respondAppError(w, h.logger, uErr)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/categories/{categoryID}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")

	if err := h.vault.DeleteCategory(categoryID); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondSuccess(w)
}
