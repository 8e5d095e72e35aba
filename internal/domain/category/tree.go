package category

// Tree is a read-only view of a category list for a single operation.
// It indexes parent links and children once so repeated closure queries
// stay linear in the tree size.
type Tree struct {
	byID     map[string]*Category
	children map[string][]string
	ordered  []Category
}

// NewTree builds a tree view over the supplied categories. The slice is
// not copied; callers must not mutate it while the tree is in use.
func NewTree(categories []Category) *Tree {
	t := &Tree{
		byID:     make(map[string]*Category, len(categories)),
		children: make(map[string][]string),
		ordered:  categories,
	}
	for i := range categories {
		c := &categories[i]
		t.byID[c.ID] = c
		if !c.IsRoot() {
			t.children[c.Parent()] = append(t.children[c.Parent()], c.ID)
		}
	}
	return t
}

// AncestorChain returns the chain starting at categoryID itself, then each
// parent in turn, ending at a root or at the first parent that does not
// exist. An unknown categoryID yields a single-element chain containing
// just that ID: callers may pass IDs that are not persisted yet.
//
// The walk keeps a visited set so a corrupted parent graph (a cycle)
// terminates after touching each category at most once.
func (t *Tree) AncestorChain(categoryID string) []string {
	chain := []string{categoryID}
	visited := map[string]bool{categoryID: true}

	current := categoryID
	for {
		c, ok := t.byID[current]
		if !ok || c.IsRoot() {
			break
		}
		parent := c.Parent()
		if visited[parent] {
			break
		}
		visited[parent] = true
		chain = append(chain, parent)
		current = parent
	}
	return chain
}

// Descendants returns the IDs of every category below categoryID, in
// depth-first order. The result never includes categoryID itself and is
// empty when no category references it as a parent.
func (t *Tree) Descendants(categoryID string) []string {
	var ids []string
	visited := map[string]bool{categoryID: true}

	var walk func(id string)
	walk = func(id string) {
		for _, childID := range t.children[id] {
			if visited[childID] {
				continue
			}
			visited[childID] = true
			ids = append(ids, childID)
			walk(childID)
		}
	}
	walk(categoryID)
	return ids
}

// ExpandWithAncestors unions the ancestor chain of every input ID. It is
// used to auto-tag all parent categories whenever a leaf category is
// applied to an item. The operation is idempotent; input order is not
// preserved in the result.
func (t *Tree) ExpandWithAncestors(ids []string) []string {
	seen := make(map[string]bool)
	var expanded []string
	for _, id := range ids {
		for _, ancestor := range t.AncestorChain(id) {
			if !seen[ancestor] {
				seen[ancestor] = true
				expanded = append(expanded, ancestor)
			}
		}
	}
	return expanded
}

// SubtreeSet returns categoryID plus all of its descendants as a set.
// This is the membership test used by category filtering.
func (t *Tree) SubtreeSet(categoryID string) map[string]bool {
	set := map[string]bool{categoryID: true}
	for _, id := range t.Descendants(categoryID) {
		set[id] = true
	}
	return set
}
