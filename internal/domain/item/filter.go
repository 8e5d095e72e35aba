package item

import (
	"strings"

	"nexus-backend/internal/domain/category"
)

// Filter selects the items matching the given category filters and search
// query, preserving input order.
//
// Category filtering applies first: an item matches when, for every
// selected filter ID, at least one of the item's own category IDs lies in
// that filter's subtree (the filter itself or any descendant). Filters AND
// together; within one filter the subtree ORs. An item with no categories
// never matches a non-empty filter set.
//
// The search query applies second as a case-insensitive substring match
// against the description, the file name, and, for text and url items
// only, the content. With neither filter present the input is returned
// unchanged.
func Filter(items []Item, categories []category.Category, selectedCategoryIDs []string, searchQuery string) []Item {
	result := items

	if len(selectedCategoryIDs) > 0 {
		tree := category.NewTree(categories)
		subtrees := make([]map[string]bool, len(selectedCategoryIDs))
		for i, filterID := range selectedCategoryIDs {
			subtrees[i] = tree.SubtreeSet(filterID)
		}

		filtered := make([]Item, 0, len(result))
		for _, it := range result {
			if len(it.CategoryIDs) == 0 {
				continue
			}
			if matchesAllSubtrees(it.CategoryIDs, subtrees) {
				filtered = append(filtered, it)
			}
		}
		result = filtered
	}

	if query := strings.TrimSpace(searchQuery); query != "" {
		query = strings.ToLower(query)
		filtered := make([]Item, 0, len(result))
		for _, it := range result {
			if matchesQuery(&it, query) {
				filtered = append(filtered, it)
			}
		}
		result = filtered
	}

	return result
}

func matchesAllSubtrees(categoryIDs []string, subtrees []map[string]bool) bool {
	for _, subtree := range subtrees {
		matched := false
		for _, cid := range categoryIDs {
			if subtree[cid] {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func matchesQuery(it *Item, query string) bool {
	if strings.Contains(strings.ToLower(it.Description), query) {
		return true
	}
	if strings.Contains(strings.ToLower(it.FileName), query) {
		return true
	}
	if it.Type.IsTextual() && strings.Contains(strings.ToLower(it.Content), query) {
		return true
	}
	return false
}
