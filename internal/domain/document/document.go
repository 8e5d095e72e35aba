// Package document defines the persisted vault aggregate.
package document

import (
	"nexus-backend/internal/domain/category"
	"nexus-backend/internal/domain/item"
)

// Document is the persisted root of the vault. Categories and items keep
// their insertion order across round-trips; newly created items are
// prepended. SelectedCategoryIDs is UI session state that travels with
// the document.
type Document struct {
	Categories          []category.Category `json:"categories"`
	Items               []item.Item         `json:"items"`
	SelectedCategoryIDs []string            `json:"selectedCategoryIds"`
}

// Default returns the initial document for a fresh vault.
func Default() *Document {
	return &Document{
		Categories: []category.Category{
			{ID: "root_1", Name: "My Collection", CreatedAt: 0},
			{ID: "root_2", Name: "Work Material", CreatedAt: 0},
		},
		Items:               []item.Item{},
		SelectedCategoryIDs: []string{},
	}
}

// Normalize repairs field presence after loading. Engine functions assume
// non-nil slices; that assumption is established here, at the storage
// boundary, and nowhere else.
func (d *Document) Normalize() {
	if d.Categories == nil {
		d.Categories = Default().Categories
	}
	if d.Items == nil {
		d.Items = []item.Item{}
	}
	if d.SelectedCategoryIDs == nil {
		d.SelectedCategoryIDs = []string{}
	}
	for i := range d.Items {
		if d.Items[i].CategoryIDs == nil {
			d.Items[i].CategoryIDs = []string{}
		}
	}
}

// PrependItem inserts a new item at the head of the item list.
func (d *Document) PrependItem(it item.Item) {
	d.Items = append([]item.Item{it}, d.Items...)
}
