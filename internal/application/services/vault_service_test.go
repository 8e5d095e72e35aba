package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexus-backend/internal/domain/category"
	"nexus-backend/internal/domain/document"
	"nexus-backend/internal/domain/item"
	"nexus-backend/internal/infrastructure/persistence/jsonfile"
	apperrors "nexus-backend/pkg/errors"
)

func strptr(s string) *string { return &s }

func newTestVault(t *testing.T) (*VaultService, *jsonfile.Store) {
	t.Helper()
	store, err := jsonfile.New(t.TempDir(), zap.NewNop(), nil)
	require.NoError(t, err)
	return NewVaultService(store, zap.NewNop(), nil), store
}

// seedTree writes a document with the A -> B -> C chain and no items.
func seedTree(t *testing.T, store *jsonfile.Store) {
	t.Helper()
	doc := &document.Document{
		Categories: []category.Category{
			{ID: "A", Name: "Archive"},
			{ID: "B", ParentID: strptr("A"), Name: "Books"},
			{ID: "C", ParentID: strptr("B"), Name: "Comics"},
		},
	}
	doc.Normalize()
	require.NoError(t, store.SaveDocument(doc))
}

func TestVaultService_CreateItem(t *testing.T) {
	svc, store := newTestVault(t)
	seedTree(t, store)

	created, err := svc.CreateItem(item.Item{
		Type:        item.TypeText,
		Content:     "reading notes",
		CategoryIDs: []string{"C"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.NotZero(t, created.CreatedAt)
	// Leaf tag implies its full lineage.
	assert.ElementsMatch(t, []string{"C", "B", "A"}, created.CategoryIDs)

	t.Run("duplicate name rejected", func(t *testing.T) {
		_, err := svc.CreateItem(item.Item{Type: item.TypeURL, Content: "reading notes"})
		require.Error(t, err)
		assert.True(t, apperrors.IsCode(err, apperrors.CodeDuplicateName))
	})

	t.Run("new items are prepended", func(t *testing.T) {
		second, err := svc.CreateItem(item.Item{Type: item.TypeText, Content: "newer"})
		require.NoError(t, err)

		doc, err := store.LoadDocument()
		require.NoError(t, err)
		require.Len(t, doc.Items, 2)
		assert.Equal(t, second.ID, doc.Items[0].ID)
		assert.Equal(t, created.ID, doc.Items[1].ID)
	})
}

func TestVaultService_UpdateItem(t *testing.T) {
	svc, store := newTestVault(t)
	seedTree(t, store)

	created, err := svc.CreateItem(item.Item{Type: item.TypeText, Content: "original", CategoryIDs: []string{"A"}})
	require.NoError(t, err)

	t.Run("merges only supplied fields", func(t *testing.T) {
		updated, err := svc.UpdateItem(created.ID, json.RawMessage(`{"description":"annotated"}`))
		require.NoError(t, err)
		assert.Equal(t, "annotated", updated.Description)
		assert.Equal(t, "original", updated.Content)
		assert.Equal(t, []string{"A"}, updated.CategoryIDs)
	})

	t.Run("supplied category ids are ancestor-expanded", func(t *testing.T) {
		updated, err := svc.UpdateItem(created.ID, json.RawMessage(`{"categoryIds":["C"]}`))
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"C", "B", "A"}, updated.CategoryIDs)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.UpdateItem("ghost", json.RawMessage(`{}`))
		assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	})

	t.Run("renaming into a collision is rejected", func(t *testing.T) {
		other, err := svc.CreateItem(item.Item{Type: item.TypeText, Content: "taken"})
		require.NoError(t, err)
		_, err = svc.UpdateItem(other.ID, json.RawMessage(`{"content":"original"}`))
		assert.True(t, apperrors.IsCode(err, apperrors.CodeDuplicateName))
	})
}

func TestVaultService_DeleteItem(t *testing.T) {
	svc, _ := newTestVault(t)

	created, err := svc.CreateItem(item.Item{Type: item.TypeText, Content: "gone soon"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(created.ID))
	err = svc.DeleteItem(created.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
}

func TestVaultService_ToggleCategory(t *testing.T) {
	svc, store := newTestVault(t)
	seedTree(t, store)

	created, err := svc.CreateItem(item.Item{Type: item.TypeText, Content: "toggled", CategoryIDs: []string{"A"}})
	require.NoError(t, err)

	require.NoError(t, svc.ToggleCategory([]string{created.ID}, "C"))

	items, err := svc.ListItems(nil, "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, items[0].CategoryIDs)
}

func TestVaultService_ListItems_Filtered(t *testing.T) {
	svc, store := newTestVault(t)
	seedTree(t, store)

	_, err := svc.CreateItem(item.Item{Type: item.TypeText, Content: "comic review", CategoryIDs: []string{"C"}})
	require.NoError(t, err)
	_, err = svc.CreateItem(item.Item{Type: item.TypeText, Content: "archive index", CategoryIDs: []string{"A"}})
	require.NoError(t, err)

	got, err := svc.ListItems([]string{"B"}, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "comic review", got[0].Content)

	got, err = svc.ListItems(nil, "index")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "archive index", got[0].Content)
}

func TestVaultService_BatchRemoveCategories_SurfacesEngineErrors(t *testing.T) {
	svc, store := newTestVault(t)
	seedTree(t, store)

	err := svc.BatchRemoveCategories(nil, []string{"A"})
	assert.True(t, apperrors.IsCode(err, apperrors.CodeMissingInput))
}

func TestVaultService_Categories(t *testing.T) {
	svc, store := newTestVault(t)
	seedTree(t, store)

	created, err := svc.CreateCategory(category.Category{Name: "Drafts", ParentID: strptr("A")})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	t.Run("update merges fields", func(t *testing.T) {
		updated, err := svc.UpdateCategory(created.ID, json.RawMessage(`{"name":"Final Drafts"}`))
		require.NoError(t, err)
		assert.Equal(t, "Final Drafts", updated.Name)
		require.NotNil(t, updated.ParentID)
		assert.Equal(t, "A", *updated.ParentID)
	})

	t.Run("delete leaves items untouched", func(t *testing.T) {
		it, err := svc.CreateItem(item.Item{Type: item.TypeText, Content: "dangling", CategoryIDs: []string{created.ID}})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteCategory(created.ID))

		doc, err := store.LoadDocument()
		require.NoError(t, err)
		stored := item.FindByID(doc.Items, it.ID)
		require.NotNil(t, stored)
		// The dangling reference stays: no cascading cleanup.
		assert.Contains(t, stored.CategoryIDs, created.ID)
	})

	t.Run("delete unknown", func(t *testing.T) {
		err := svc.DeleteCategory("ghost")
		assert.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))
	})
}
