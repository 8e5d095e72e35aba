package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"nexus-backend/internal/application/services"
	"nexus-backend/internal/domain/item"
	"nexus-backend/pkg/utils"
)

// ItemHandler handles item CRUD and item listing.
type ItemHandler struct {
	vault  *services.VaultService
	logger *zap.Logger
}

// NewItemHandler creates a new item handler.
func NewItemHandler(vault *services.VaultService, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{vault: vault, logger: logger}
}

// CreateItemRequest represents the request body for creating an item.
type CreateItemRequest struct {
	ID          string   `json:"id,omitempty"`
	Type        string   `json:"type" validate:"required,oneof=text url file"`
	Content     string   `json:"content,omitempty"`
	FileName    string   `json:"fileName,omitempty"`
	FileData    string   `json:"fileData,omitempty"`
	FileSize    int64    `json:"fileSize,omitempty"`
	Description string   `json:"description,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
}

func (r *CreateItemRequest) toItem() item.Item {
	return item.Item{
		ID:          r.ID,
		Type:        item.Type(r.Type),
		Content:     r.Content,
		FileName:    r.FileName,
		FileData:    r.FileData,
		FileSize:    r.FileSize,
		Description: r.Description,
		CategoryIDs: r.CategoryIDs,
	}
}

// List handles GET /api/items with optional categories and search params.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	var selected []string
	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(id); trimmed != "" {
				selected = append(selected, trimmed)
			}
		}
	}
	search := r.URL.Query().Get("search")

	items, err := h.vault.ListItems(selected, search)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	created, err := h.vault.CreateItem(req.toItem())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Upload handles POST /api/upload. The client has already encoded the
// file content as base64; this path skips name validation, matching the
// create-from-upload flow.
func (h *ItemHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Type == "" {
		req.Type = string(item.TypeFile)
	}

	created, err := h.vault.UploadItem(req.toItem())
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/items/{itemID}. The body is forwarded raw so a
// partial body only changes the fields it names.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !json.Valid(body) {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	updated, uErr := h.vault.UpdateItem(itemID, body)
	if uErr != nil {
		respondAppError(w, h.logger, uErr)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/items/{itemID}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	if err := h.vault.DeleteItem(itemID); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondSuccess(w)
}

// RemoveCategoryRequest represents the body of the remove-category call.
type RemoveCategoryRequest struct {
	CategoryID string `json:"categoryId" validate:"required"`
}

// RemoveCategory handles PUT /api/items/{itemID}/remove-category.
func (h *ItemHandler) RemoveCategory(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")

	var req RemoveCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	updated, err := h.vault.RemoveCategoryFromItem(itemID, req.CategoryID)
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// ToggleCategoryRequest represents the body of the toggle call.
type ToggleCategoryRequest struct {
	ItemIDs    []string `json:"itemIds" validate:"required,min=1"`
	CategoryID string   `json:"categoryId" validate:"required"`
}

// ToggleCategory handles POST /api/items/toggle-category.
func (h *ItemHandler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	var req ToggleCategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.vault.ToggleCategory(req.ItemIDs, req.CategoryID); err != nil {
		respondAppError(w, h.logger, err)
		return
	}
	respondSuccess(w)
}
