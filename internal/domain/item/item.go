// Package item holds the vault item entity, item filtering, and item name
// validation.
package item

// Type discriminates the kinds of vault items.
type Type string

const (
	TypeText Type = "text"
	TypeURL  Type = "url"
	TypeFile Type = "file"
)

// IsTextual reports whether the type stores its name in Content.
// Text and URL items share one uniqueness scope; file-like items are
// scoped per type on FileName.
func (t Type) IsTextual() bool {
	return t == TypeText || t == TypeURL
}

// Item is a single vault entry. For text and url items the name used for
// duplicate detection is Content; for file items it is FileName.
type Item struct {
	ID          string   `json:"id"`
	Type        Type     `json:"type"`
	Content     string   `json:"content,omitempty"`
	FileName    string   `json:"fileName,omitempty"`
	FileData    string   `json:"fileData,omitempty"` // base64, populated by upload
	FileSize    int64    `json:"fileSize,omitempty"`
	Description string   `json:"description,omitempty"`
	CategoryIDs []string `json:"categoryIds"`
	CreatedAt   int64    `json:"createdAt,omitempty"`
}

// Name returns the string used for duplicate detection.
func (it *Item) Name() string {
	if it.Type.IsTextual() {
		return it.Content
	}
	return it.FileName
}

// HasCategory reports whether the item is associated with categoryID.
func (it *Item) HasCategory(categoryID string) bool {
	for _, id := range it.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// FindByID returns the item with the given ID, or nil.
func FindByID(items []Item, id string) *Item {
	for i := range items {
		if items[i].ID == id {
			return &items[i]
		}
	}
	return nil
}
