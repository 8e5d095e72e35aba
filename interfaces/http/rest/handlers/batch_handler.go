package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"nexus-backend/internal/application/services"
	"nexus-backend/pkg/utils"
)

// BatchHandler handles the multi-item operations under /api/batch.
type BatchHandler struct {
	vault  *services.VaultService
	logger *zap.Logger
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(vault *services.VaultService, logger *zap.Logger) *BatchHandler {
	return &BatchHandler{vault: vault, logger: logger}
}

// AddTagsRequest represents the body of the add-tags call.
type AddTagsRequest struct {
	ItemIDs    []string `json:"itemIds" validate:"required,min=1"`
	CategoryID string   `json:"categoryId" validate:"required"`
}

// AddTags handles POST /api/batch/add-tags.
func (h *BatchHandler) AddTags(w http.ResponseWriter, r *http.Request) {
	var req AddTagsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.vault.AddTags(req.ItemIDs, req.CategoryID); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondSuccess(w)
}

// BatchEditRequest represents the body of the batch edit call.
type BatchEditRequest struct {
	ItemIDs     []string `json:"itemIds" validate:"required,min=1"`
	Description string   `json:"description,omitempty"`
	CategoryID  string   `json:"categoryId,omitempty"`
}

// Edit handles POST /api/batch/edit.
func (h *BatchHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req BatchEditRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.vault.BatchEdit(req.ItemIDs, req.Description, req.CategoryID); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondSuccess(w)
}

// BatchDeleteRequest represents the body of the batch delete call.
type BatchDeleteRequest struct {
	ItemIDs []string `json:"itemIds" validate:"required,min=1"`
}

// Delete handles POST /api/batch/delete.
func (h *BatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req BatchDeleteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.vault.BatchDelete(req.ItemIDs); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondSuccess(w)
}

// RemoveCategoriesRequest represents the body of the remove-categories call.
type RemoveCategoriesRequest struct {
	ItemIDs     []string `json:"itemIds"`
	CategoryIDs []string `json:"categoryIds"`
}

// RemoveCategories handles POST /api/batch/remove-categories. Empty ID
// lists are not rejected here: the engine reports MissingInput itself and
// the error carries the right status.
func (h *BatchHandler) RemoveCategories(w http.ResponseWriter, r *http.Request) {
	var req RemoveCategoriesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.vault.BatchRemoveCategories(req.ItemIDs, req.CategoryIDs); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondSuccess(w)
}
