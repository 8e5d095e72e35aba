package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"nexus-backend/internal/domain/category"
	"nexus-backend/internal/domain/document"
	"nexus-backend/internal/domain/item"
	"nexus-backend/internal/domain/tagging"
	apperrors "nexus-backend/pkg/errors"
	"nexus-backend/pkg/observability"
)

// VaultService owns every mutation of the vault document. A single mutex
// serializes the read-compute-write sequence: the model is single-writer,
// last-write-wins, and multi-writer safety lives here at the storage
// boundary rather than inside the engine functions.
type VaultService struct {
	store   DocumentStore
	logger  *zap.Logger
	metrics *observability.Collector
	mu      sync.Mutex
}

// NewVaultService creates the vault service.
func NewVaultService(store DocumentStore, logger *zap.Logger, metrics *observability.Collector) *VaultService {
	return &VaultService{
		store:   store,
		logger:  logger,
		metrics: metrics,
	}
}

// State returns the full vault document.
func (s *VaultService) State() (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.LoadDocument()
}

// ReplaceState overwrites the full vault document. Used by state save and
// bulk import.
func (s *VaultService) ReplaceState(doc *document.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc.Normalize()
	return s.store.SaveDocument(doc)
}

// ListItems returns the items matching the category filters and search
// query, in stored order.
func (s *VaultService) ListItems(selectedCategoryIDs []string, searchQuery string) ([]item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.LoadDocument()
	if err != nil {
		return nil, err
	}
	return item.Filter(doc.Items, doc.Categories, selectedCategoryIDs, searchQuery), nil
}

// CreateItem validates the new item's name, expands its categories through
// their ancestor chains, and prepends it to the vault.
func (s *VaultService) CreateItem(it item.Item) (*item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.LoadDocument()
	if err != nil {
		return nil, err
	}

	if vErr := item.ValidateName(doc.Items, it.Name(), it.Type, ""); vErr != nil {
		return nil, vErr
	}

	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	if it.CreatedAt == 0 {
		it.CreatedAt = time.Now().UnixMilli()
	}
	if len(it.CategoryIDs) > 0 {
		tree := category.NewTree(doc.Categories)
		it.CategoryIDs = tree.ExpandWithAncestors(it.CategoryIDs)
	} else {
		it.CategoryIDs = []string{}
	}

	doc.PrependItem(it)
	if err := s.store.SaveDocument(doc); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ItemsCreated.Inc()
	}
	s.logger.Info("item created",
		zap.String("itemID", it.ID),
		zap.String("type", string(it.Type)),
		zap.Int("categories", len(it.CategoryIDs)),
	)
	return &it, nil
}

// UploadItem prepends a client-uploaded file item. Unlike CreateItem the
// name is not checked for duplicates: the upload flow accepts whatever
// the client picked, and conflicts are surfaced on later edits.
func (s *VaultService) UploadItem(it item.Item) (*item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.LoadDocument()
	if err != nil {
		return nil, err
	}

	if it.ID == "" {
		it.ID = uuid.New().String()
	}
	if it.CreatedAt == 0 {
		it.CreatedAt = time.Now().UnixMilli()
	}
	if len(it.CategoryIDs) > 0 {
		tree := category.NewTree(doc.Categories)
		it.CategoryIDs = tree.ExpandWithAncestors(it.CategoryIDs)
	} else {
		it.CategoryIDs = []string{}
	}

	doc.PrependItem(it)
	if err := s.store.SaveDocument(doc); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ItemsCreated.Inc()
	}
	s.logger.Info("file uploaded",
		zap.String("itemID", it.ID),
		zap.String("fileName", it.FileName),
		zap.Int64("fileSize", it.FileSize),
	)
	return &it, nil
}

// UpdateItem merges the raw JSON body over the stored item, mirroring a
// shallow field merge: only fields present in the body change. The merged
// name is validated against every other item, and merged category IDs are
// expanded through their ancestors when the body supplied any.
func (s *VaultService) UpdateItem(itemID string, body json.RawMessage) (*item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.LoadDocument()
	if err != nil {
		return nil, err
	}

	existing := item.FindByID(doc.Items, itemID)
	if existing == nil {
		return nil, apperrors.NewNotFoundError("item", itemID)
	}

	merged := *existing
	if err := json.Unmarshal(body, &merged); err != nil {
		return nil, apperrors.NewValidationError("invalid request body").WithCause(err)
	}
	merged.ID = itemID

	if vErr := item.ValidateName(doc.Items, merged.Name(), merged.Type, itemID); vErr != nil {
		return nil, vErr
	}

	var probe struct {
		CategoryIDs []string `json:"categoryIds"`
	}
	if err := json.Unmarshal(body, &probe); err == nil && len(probe.CategoryIDs) > 0 {
		tree := category.NewTree(doc.Categories)
		merged.CategoryIDs = tree.ExpandWithAncestors(merged.CategoryIDs)
	}

	*existing = merged
	if err := s.store.SaveDocument(doc); err != nil {
		return nil, err
	}
	return &merged, nil
}

// DeleteItem removes one item by ID.
func (s *VaultService) DeleteItem(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.LoadDocument()
	if err != nil {
		return err
	}

	remaining := tagging.BatchDelete(doc.Items, []string{itemID})
	if len(remaining) == len(doc.Items) {
		return apperrors.NewNotFoundError("item", itemID)
	}
	doc.Items = remaining

	if err := s.store.SaveDocument(doc); err != nil {
		return err
	}
	if s.metrics != nil {
		s.metrics.ItemsDeleted.Inc()
	}
	return nil
}

// AddTags attaches a category and its ancestors to a selection of items.
func (s *VaultService) AddTags(itemIDs []string, categoryID string) error {
	return s.mutateItems(func(doc *document.Document) *apperrors.AppError {
		doc.Items = tagging.AddTags(doc.Items, itemIDs, categoryID, doc.Categories)
		return nil
	})
}

// ToggleCategory flips a category across a selection of items.
func (s *VaultService) ToggleCategory(itemIDs []string, categoryID string) error {
	return s.mutateItems(func(doc *document.Document) *apperrors.AppError {
		doc.Items = tagging.ToggleCategory(doc.Items, itemIDs, categoryID, doc.Categories)
		return nil
	})
}

// BatchEdit updates descriptions and appends a category across a selection.
func (s *VaultService) BatchEdit(itemIDs []string, description, categoryID string) error {
	return s.mutateItems(func(doc *document.Document) *apperrors.AppError {
		doc.Items = tagging.BatchEdit(doc.Items, itemIDs, description, categoryID)
		return nil
	})
}

// BatchDelete removes a selection of items.
func (s *VaultService) BatchDelete(itemIDs []string) error {
	err := s.mutateItems(func(doc *document.Document) *apperrors.AppError {
		doc.Items = tagging.BatchDelete(doc.Items, itemIDs)
		return nil
	})
	if err == nil && s.metrics != nil {
		s.metrics.ItemsDeleted.Add(float64(len(itemIDs)))
	}
	return err
}

// BatchRemoveCategories strips categories from a selection of items.
func (s *VaultService) BatchRemoveCategories(itemIDs, categoryIDs []string) error {
	return s.mutateItems(func(doc *document.Document) *apperrors.AppError {
		items, tErr := tagging.BatchRemoveCategories(doc.Items, itemIDs, categoryIDs)
		if tErr != nil {
			return tErr
		}
		doc.Items = items
		return nil
	})
}

// RemoveCategoryFromItem detaches one category from one item and returns
// the updated item.
func (s *VaultService) RemoveCategoryFromItem(itemID, categoryID string) (*item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.LoadDocument()
	if err != nil {
		return nil, err
	}

	items, tErr := tagging.RemoveCategoryFromItem(doc.Items, itemID, categoryID)
	if tErr != nil {
		return nil, tErr
	}
	doc.Items = items

	if err := s.store.SaveDocument(doc); err != nil {
		return nil, err
	}
	return item.FindByID(doc.Items, itemID), nil
}

// CreateCategory appends a category to the vault.
func (s *VaultService) CreateCategory(c category.Category) (*category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.LoadDocument()
	if err != nil {
		return nil, err
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().UnixMilli()
	}

	doc.Categories = append(doc.Categories, c)
	if err := s.store.SaveDocument(doc); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCategory merges the raw JSON body over the stored category.
func (s *VaultService) UpdateCategory(categoryID string, body json.RawMessage) (*category.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.LoadDocument()
	if err != nil {
		return nil, err
	}

	existing := category.FindByID(doc.Categories, categoryID)
	if existing == nil {
		return nil, apperrors.NewNotFoundError("category", categoryID)
	}

	merged := *existing
	if err := json.Unmarshal(body, &merged); err != nil {
		return nil, apperrors.NewValidationError("invalid request body").WithCause(err)
	}
	merged.ID = categoryID

	*existing = merged
	if err := s.store.SaveDocument(doc); err != nil {
		return nil, err
	}
	return &merged, nil
}

// DeleteCategory removes one category. Items referencing it keep their
// dangling IDs: cascading cleanup is deliberately the caller's problem.
func (s *VaultService) DeleteCategory(categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.LoadDocument()
	if err != nil {
		return err
	}

	kept := make([]category.Category, 0, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.ID != categoryID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(doc.Categories) {
		return apperrors.NewNotFoundError("category", categoryID)
	}
	doc.Categories = kept

	return s.store.SaveDocument(doc)
}

// mutateItems runs one engine transformation under the write lock.
func (s *VaultService) mutateItems(mutate func(*document.Document) *apperrors.AppError) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.LoadDocument()
	if err != nil {
		return err
	}
	if tErr := mutate(doc); tErr != nil {
		return tErr
	}
	return s.store.SaveDocument(doc)
}
