// Package tagging applies add, remove, toggle, and batch operations to
// items' category sets.
//
// Every function is a pure transformation: it takes the full item list,
// returns a new list, and leaves untargeted items untouched. Callers own
// persistence.
//
// One asymmetry is deliberate and carried over from the vault's observed
// behavior: ToggleCategory, AddTags, and BatchEdit can drive an item to
// zero categories or never check for it, while RemoveCategoryFromItem and
// BatchRemoveCategories refuse to empty an item's category set. Do not
// "fix" one side to match the other.
package tagging

import (
	"strings"

	"nexus-backend/internal/domain/category"
	"nexus-backend/internal/domain/item"
	apperrors "nexus-backend/pkg/errors"
)

// AddTags unions each selected item's categories with categoryID and all
// of its ancestors. Items outside itemIDs pass through unchanged. The
// operation is idempotent.
func AddTags(items []item.Item, itemIDs []string, categoryID string, categories []category.Category) []item.Item {
	tree := category.NewTree(categories)
	toAdd := tree.ExpandWithAncestors([]string{categoryID})

	selected := toSet(itemIDs)
	updated := make([]item.Item, len(items))
	for i, it := range items {
		if selected[it.ID] {
			it.CategoryIDs = unionIDs(it.CategoryIDs, toAdd)
		}
		updated[i] = it
	}
	return updated
}

// ToggleCategory flips the association between a selection of items and a
// category, with drag-and-drop semantics. One decision is made for the
// whole selection: the category is "on" only when every selected item
// already has it; a partially tagged selection is pushed toward the
// tagged state.
//
// Removing an interior category strips it and its whole subtree (ancestors
// stay, so sibling paths sharing an ancestor keep their tags); removing a
// leaf strips only the leaf. Adding an interior category adds just that
// category; adding a leaf adds the leaf plus its full ancestor chain.
func ToggleCategory(items []item.Item, itemIDs []string, categoryID string, categories []category.Category) []item.Item {
	tree := category.NewTree(categories)
	selected := toSet(itemIDs)

	allHave := true
	for i := range items {
		if selected[items[i].ID] && !items[i].HasCategory(categoryID) {
			allHave = false
			break
		}
	}

	descendants := tree.Descendants(categoryID)

	var toRemove map[string]bool
	var toAdd []string
	if allHave {
		// Interior node: remove it and its whole subtree. Leaf: just it.
		toRemove = map[string]bool{categoryID: true}
		for _, id := range descendants {
			toRemove[id] = true
		}
	} else {
		if len(descendants) > 0 {
			toAdd = []string{categoryID}
		} else {
			toAdd = tree.AncestorChain(categoryID)
		}
	}

	updated := make([]item.Item, len(items))
	for i, it := range items {
		if selected[it.ID] {
			if allHave {
				it.CategoryIDs = removeIDs(it.CategoryIDs, toRemove)
			} else {
				it.CategoryIDs = unionIDs(it.CategoryIDs, toAdd)
			}
		}
		updated[i] = it
	}
	return updated
}

// RemoveCategoryFromItem detaches one category from one item. It fails
// when the item does not exist, when the item does not hold the category,
// or when removal would leave the item with zero categories; in every
// failure case the input list is returned unmodified.
func RemoveCategoryFromItem(items []item.Item, itemID, categoryID string) ([]item.Item, *apperrors.AppError) {
	target := item.FindByID(items, itemID)
	if target == nil {
		return items, apperrors.NewNotFoundError("item", itemID)
	}
	if !target.HasCategory(categoryID) {
		return items, apperrors.NewInvalidCategoryError(categoryID)
	}
	if len(target.CategoryIDs) <= 1 {
		return items, apperrors.NewLastCategoryError()
	}

	updated := make([]item.Item, len(items))
	for i, it := range items {
		if it.ID == itemID {
			it.CategoryIDs = removeIDs(it.CategoryIDs, map[string]bool{categoryID: true})
		}
		updated[i] = it
	}
	return updated, nil
}

// BatchRemoveCategories strips the given categories from each selected
// item. An item whose category set would be emptied is skipped rather
// than failing the batch. The call fails with MissingInput when either ID
// list is empty, and with NoEffect when no item across the whole batch
// was actually modified.
func BatchRemoveCategories(items []item.Item, itemIDs, categoryIDs []string) ([]item.Item, *apperrors.AppError) {
	if len(itemIDs) == 0 {
		return items, apperrors.NewMissingInputError("itemIds")
	}
	if len(categoryIDs) == 0 {
		return items, apperrors.NewMissingInputError("categoryIds")
	}

	selected := toSet(itemIDs)
	toRemove := toSet(categoryIDs)

	modified := 0
	updated := make([]item.Item, len(items))
	for i, it := range items {
		if selected[it.ID] {
			remaining := removeIDs(it.CategoryIDs, toRemove)
			switch {
			case len(remaining) == 0:
				// Would empty the item: leave it as it was.
			case len(remaining) != len(it.CategoryIDs):
				it.CategoryIDs = remaining
				modified++
			}
		}
		updated[i] = it
	}

	if modified == 0 {
		return items, apperrors.NewNoEffectError(
			"no items were modified: the categories may not be attached, or every selected item holds only one category")
	}
	return updated, nil
}

// BatchEdit overwrites the description of each selected item when a
// non-blank description is supplied, and appends categoryID when supplied
// and not already present. This path intentionally skips ancestor
// expansion; it is looser than AddTags.
func BatchEdit(items []item.Item, itemIDs []string, description, categoryID string) []item.Item {
	selected := toSet(itemIDs)

	updated := make([]item.Item, len(items))
	for i, it := range items {
		if selected[it.ID] {
			if strings.TrimSpace(description) != "" {
				it.Description = description
			}
			if categoryID != "" && !it.HasCategory(categoryID) {
				it.CategoryIDs = append(append([]string{}, it.CategoryIDs...), categoryID)
			}
		}
		updated[i] = it
	}
	return updated
}

// BatchDelete removes the selected items. Categories are never touched as
// a side effect.
func BatchDelete(items []item.Item, itemIDs []string) []item.Item {
	selected := toSet(itemIDs)

	kept := make([]item.Item, 0, len(items))
	for _, it := range items {
		if !selected[it.ID] {
			kept = append(kept, it)
		}
	}
	return kept
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// unionIDs appends the IDs from add that existing does not already hold,
// preserving the existing order.
func unionIDs(existing, add []string) []string {
	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(add))
	for _, id := range existing {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	for _, id := range add {
		if !seen[id] {
			seen[id] = true
			merged = append(merged, id)
		}
	}
	return merged
}

// removeIDs filters out the IDs in drop, preserving order.
func removeIDs(existing []string, drop map[string]bool) []string {
	kept := make([]string, 0, len(existing))
	for _, id := range existing {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	return kept
}
