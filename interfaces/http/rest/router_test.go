package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nexus-backend/internal/application/services"
	"nexus-backend/internal/domain/category"
	"nexus-backend/internal/domain/document"
	"nexus-backend/internal/domain/item"
	"nexus-backend/internal/infrastructure/persistence/jsonfile"
)

func strptr(s string) *string { return &s }

type testServer struct {
	handler http.Handler
	store   *jsonfile.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := zap.NewNop()
	store, err := jsonfile.New(t.TempDir(), logger, nil)
	require.NoError(t, err)

	settings := document.DefaultSettings()
	vault := services.NewVaultService(store, logger, nil)
	versions := services.NewVersionService(store, func() *document.Settings { return settings }, logger, nil)
	settingsSvc := services.NewSettingsService(store, nil, logger)

	router := NewRouter(vault, versions, settingsSvc, logger, nil, []string{"*"}, false)
	return &testServer{handler: router.Setup(), store: store}
}

func (ts *testServer) seedTree(t *testing.T) {
	t.Helper()
	doc := &document.Document{
		Categories: []category.Category{
			{ID: "A", Name: "Archive"},
			{ID: "B", ParentID: strptr("A"), Name: "Books"},
			{ID: "C", ParentID: strptr("B"), Name: "Comics"},
		},
	}
	doc.Normalize()
	require.NoError(t, ts.store.SaveDocument(doc))
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeItem(t *testing.T, rec *httptest.ResponseRecorder) item.Item {
	t.Helper()
	var it item.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &it))
	return it
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/", "/health"} {
		rec := ts.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	}
}

func TestCreateItem(t *testing.T) {
	ts := newTestServer(t)
	ts.seedTree(t)

	rec := ts.do(t, http.MethodPost, "/api/items", map[string]interface{}{
		"type":        "text",
		"content":     "reading notes",
		"categoryIds": []string{"C"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeItem(t, rec)
	assert.NotEmpty(t, created.ID)
	assert.ElementsMatch(t, []string{"C", "B", "A"}, created.CategoryIDs)

	t.Run("duplicate rejected", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/items", map[string]interface{}{
			"type":    "url",
			"content": "reading notes",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already exists")
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/items", map[string]interface{}{
			"type":    "video",
			"content": "x",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListItems_FilterAndSearch(t *testing.T) {
	ts := newTestServer(t)
	ts.seedTree(t)

	for _, body := range []map[string]interface{}{
		{"type": "text", "content": "comic review", "categoryIds": []string{"C"}},
		{"type": "text", "content": "archive index", "categoryIds": []string{"A"}},
	} {
		rec := ts.do(t, http.MethodPost, "/api/items", body)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := ts.do(t, http.MethodGet, "/api/items?categories=B", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []item.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "comic review", items[0].Content)

	rec = ts.do(t, http.MethodGet, "/api/items?search=INDEX", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "archive index", items[0].Content)
}

func TestToggleCategory(t *testing.T) {
	ts := newTestServer(t)
	ts.seedTree(t)

	rec := ts.do(t, http.MethodPost, "/api/items", map[string]interface{}{
		"type": "text", "content": "toggled", "categoryIds": []string{"A"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeItem(t, rec)

	rec = ts.do(t, http.MethodPost, "/api/items/toggle-category", map[string]interface{}{
		"itemIds": []string{created.ID}, "categoryId": "C",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := ts.store.LoadDocument()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, doc.Items[0].CategoryIDs)

	t.Run("missing selection rejected", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/items/toggle-category", map[string]interface{}{
			"categoryId": "C",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateItem_MergesFields(t *testing.T) {
	ts := newTestServer(t)
	ts.seedTree(t)

	rec := ts.do(t, http.MethodPost, "/api/items", map[string]interface{}{
		"type": "text", "content": "original", "categoryIds": []string{"A"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeItem(t, rec)

	rec = ts.do(t, http.MethodPut, "/api/items/"+created.ID, map[string]interface{}{
		"description": "annotated",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeItem(t, rec)
	assert.Equal(t, "annotated", updated.Description)
	assert.Equal(t, "original", updated.Content)

	t.Run("unknown item is 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, "/api/items/ghost", map[string]interface{}{})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestRemoveCategoryFromItem(t *testing.T) {
	ts := newTestServer(t)
	ts.seedTree(t)

	rec := ts.do(t, http.MethodPost, "/api/items", map[string]interface{}{
		"type": "text", "content": "tagged", "categoryIds": []string{"C"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeItem(t, rec)

	rec = ts.do(t, http.MethodPut, fmt.Sprintf("/api/items/%s/remove-category", created.ID), map[string]interface{}{
		"categoryId": "C",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeItem(t, rec)
	assert.ElementsMatch(t, []string{"B", "A"}, updated.CategoryIDs)

	t.Run("last category is refused", func(t *testing.T) {
		for _, cid := range []string{"B"} {
			rec := ts.do(t, http.MethodPut, fmt.Sprintf("/api/items/%s/remove-category", created.ID), map[string]interface{}{
				"categoryId": cid,
			})
			require.Equal(t, http.StatusOK, rec.Code)
		}
		rec := ts.do(t, http.MethodPut, fmt.Sprintf("/api/items/%s/remove-category", created.ID), map[string]interface{}{
			"categoryId": "A",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "at least one category")
	})
}

func TestBatchEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.seedTree(t)

	ids := make([]string, 0, 2)
	for _, content := range []string{"one", "two"} {
		rec := ts.do(t, http.MethodPost, "/api/items", map[string]interface{}{
			"type": "text", "content": content, "categoryIds": []string{"A"},
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decodeItem(t, rec).ID)
	}

	t.Run("add-tags", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/batch/add-tags", map[string]interface{}{
			"itemIds": ids, "categoryId": "C",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		doc, err := ts.store.LoadDocument()
		require.NoError(t, err)
		for _, it := range doc.Items {
			assert.ElementsMatch(t, []string{"A", "B", "C"}, it.CategoryIDs)
		}
	})

	t.Run("edit", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/batch/edit", map[string]interface{}{
			"itemIds": ids, "description": "bulk note",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		doc, err := ts.store.LoadDocument()
		require.NoError(t, err)
		for _, it := range doc.Items {
			assert.Equal(t, "bulk note", it.Description)
		}
	})

	t.Run("remove-categories with empty input is 400", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/batch/remove-categories", map[string]interface{}{
			"itemIds": []string{}, "categoryIds": []string{"A"},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "missing itemIds")
	})

	t.Run("remove-categories", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/batch/remove-categories", map[string]interface{}{
			"itemIds": ids, "categoryIds": []string{"C"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/batch/delete", map[string]interface{}{
			"itemIds": ids,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		doc, err := ts.store.LoadDocument()
		require.NoError(t, err)
		assert.Empty(t, doc.Items)
	})
}

func TestCategoryEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.seedTree(t)

	rec := ts.do(t, http.MethodPost, "/api/categories", map[string]interface{}{
		"name": "Drafts", "parentId": "A",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created category.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = ts.do(t, http.MethodPut, "/api/categories/"+created.ID, map[string]interface{}{
		"name": "Final Drafts",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/categories/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/categories/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	t.Run("missing name rejected", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/categories", map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestVersionEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/versions", map[string]interface{}{
		"label": "before cleanup",
		"state": document.Default(),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created document.Version
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "before cleanup", created.Label)

	rec = ts.do(t, http.MethodGet, "/api/versions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var versions []document.Version
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &versions))
	require.Len(t, versions, 1)

	rec = ts.do(t, http.MethodDelete, "/api/versions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/versions/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	t.Run("missing state rejected", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/versions", map[string]interface{}{
			"label": "no state",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSettingsEndpoints(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var settings document.Settings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, 20, settings.MaxVersions)

	rec = ts.do(t, http.MethodPut, "/api/settings", map[string]interface{}{
		"autoSaveInterval": 10, "maxVersions": 5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, 5, settings.MaxVersions)
	assert.Equal(t, 10, settings.AutoSaveInterval)
}

func TestStateRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	ts.seedTree(t)

	rec := ts.do(t, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc document.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Categories, 3)

	doc.SelectedCategoryIDs = []string{"B"}
	rec = ts.do(t, http.MethodPost, "/api/state", &doc)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, []string{"B"}, doc.SelectedCategoryIDs)
}

func TestUpload(t *testing.T) {
	ts := newTestServer(t)
	ts.seedTree(t)

	rec := ts.do(t, http.MethodPost, "/api/upload", map[string]interface{}{
		"type":        "file",
		"fileName":    "report.pdf",
		"fileData":    "JVBERi0xLjQ=",
		"fileSize":    12,
		"categoryIds": []string{"C"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeItem(t, rec)
	assert.ElementsMatch(t, []string{"C", "B", "A"}, created.CategoryIDs)

	// Upload does not run duplicate validation.
	rec = ts.do(t, http.MethodPost, "/api/upload", map[string]interface{}{
		"type": "file", "fileName": "report.pdf", "categoryIds": []string{"A"},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}
