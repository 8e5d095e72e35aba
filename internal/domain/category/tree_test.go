package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

// testTree builds the tree used throughout the spec scenarios:
// A (root) -> B -> C, plus an unrelated root R.
func testTree() *Tree {
	return NewTree([]Category{
		{ID: "A", Name: "Archive"},
		{ID: "B", ParentID: strptr("A"), Name: "Books"},
		{ID: "C", ParentID: strptr("B"), Name: "Comics"},
		{ID: "R", Name: "Recipes"},
	})
}

func TestTree_AncestorChain(t *testing.T) {
	tree := testTree()

	tests := []struct {
		name string
		id   string
		want []string
	}{
		{
			name: "leaf walks to root",
			id:   "C",
			want: []string{"C", "B", "A"},
		},
		{
			name: "mid node",
			id:   "B",
			want: []string{"B", "A"},
		},
		{
			name: "root is its own chain",
			id:   "A",
			want: []string{"A"},
		},
		{
			name: "unknown id is a self-contained leaf",
			id:   "ghost",
			want: []string{"ghost"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.AncestorChain(tt.id))
		})
	}
}

func TestTree_AncestorChain_DanglingParent(t *testing.T) {
	tree := NewTree([]Category{
		{ID: "orphan", ParentID: strptr("missing")},
	})

	// The chain includes the missing parent ID and stops there.
	assert.Equal(t, []string{"orphan", "missing"}, tree.AncestorChain("orphan"))
}

func TestTree_AncestorChain_CycleTerminates(t *testing.T) {
	// Violates the acyclicity invariant on purpose; the walk must still
	// terminate after visiting each category at most once.
	tree := NewTree([]Category{
		{ID: "x", ParentID: strptr("y")},
		{ID: "y", ParentID: strptr("x")},
	})

	chain := tree.AncestorChain("x")
	require.LessOrEqual(t, len(chain), 2)
	assert.Equal(t, "x", chain[0])
}

func TestTree_Descendants(t *testing.T) {
	tree := testTree()

	t.Run("interior node collects whole subtree", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"B", "C"}, tree.Descendants("A"))
	})

	t.Run("never contains the node itself", func(t *testing.T) {
		for _, id := range []string{"A", "B", "C", "R", "ghost"} {
			assert.NotContains(t, tree.Descendants(id), id)
		}
	})

	t.Run("leaf has none", func(t *testing.T) {
		assert.Empty(t, tree.Descendants("C"))
	})

	t.Run("unknown id has none", func(t *testing.T) {
		assert.Empty(t, tree.Descendants("ghost"))
	})
}

func TestTree_Descendants_CycleTerminates(t *testing.T) {
	tree := NewTree([]Category{
		{ID: "x", ParentID: strptr("y")},
		{ID: "y", ParentID: strptr("x")},
	})

	assert.Equal(t, []string{"y"}, tree.Descendants("x"))
}

func TestTree_ExpandWithAncestors(t *testing.T) {
	tree := testTree()

	t.Run("expands every input through its lineage", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"C", "B", "A", "R"}, tree.ExpandWithAncestors([]string{"C", "R"}))
	})

	t.Run("idempotent", func(t *testing.T) {
		once := tree.ExpandWithAncestors([]string{"C"})
		twice := tree.ExpandWithAncestors(once)
		assert.ElementsMatch(t, once, twice)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, tree.ExpandWithAncestors(nil))
	})
}

func TestTree_SubtreeSet(t *testing.T) {
	tree := testTree()

	set := tree.SubtreeSet("B")
	assert.True(t, set["B"])
	assert.True(t, set["C"])
	assert.False(t, set["A"])
	assert.False(t, set["R"])
}
