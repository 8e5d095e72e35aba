// Package category holds the category entity and the hierarchy closure
// operations over a category list.
//
// Categories form a tree through ParentID. Membership is upward-inclusive:
// tagging an item with a leaf category implies tagging it with every
// ancestor, so filtering by a parent surfaces items tagged only with its
// descendants. The closure functions here are pure: each call operates on
// the category list it is given and retains no state.
package category

// Category is a node in the vault's classification tree.
type Category struct {
	ID        string  `json:"id"`
	ParentID  *string `json:"parentId,omitempty"`
	Name      string  `json:"name"`
	CreatedAt int64   `json:"createdAt"`
}

// IsRoot reports whether the category has no parent.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

// Parent returns the parent ID, or "" for a root category.
func (c *Category) Parent() string {
	if c.ParentID == nil {
		return ""
	}
	return *c.ParentID
}

// FindByID returns the category with the given ID, or nil.
func FindByID(categories []Category, id string) *Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}
