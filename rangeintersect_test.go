package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

func TestIntersectRangesExcludesChildren(t *testing.T) {
	tree := parseGoSource(t, "package main\n\nfunc greet() {\n\tprintln(1)\n}\n")
	root := tree.RootNode()

	fnNodes, err := Evaluate(root, []TreeStep{StepChildren{Kinds: mustKindIDs(t, "function_declaration")}})
	require.NoError(t, err)
	require.Len(t, fnNodes, 1)

	blockNodes, err := Evaluate(fnNodes[0], []TreeStep{StepChild{Index: 3}})
	require.NoError(t, err)
	require.Len(t, blockNodes, 1)
	block := blockNodes[0]

	ranges := IntersectRanges([]tree_sitter.Range{wholeBufferRange()}, []tree_sitter.Node{block})
	require.NotEmpty(t, ranges)

	cursor := block.Walk()
	defer cursor.Close()
	for _, child := range block.Children(cursor) {
		for _, r := range ranges {
			overlaps := r.StartByte < child.EndByte() && child.StartByte() < r.EndByte
			require.False(t, overlaps, "range %+v must not overlap child %s", r, child.Kind())
		}
	}
}

func TestIntersectRangesPanicsOnEmptyParentRanges(t *testing.T) {
	tree := parseGoSource(t, "package main\n")
	root := tree.RootNode()
	require.Panics(t, func() {
		IntersectRanges(nil, []tree_sitter.Node{root})
	})
}

func TestIntersectRangesEmptyNodesReturnsNil(t *testing.T) {
	ranges := IntersectRanges([]tree_sitter.Range{wholeBufferRange()}, nil)
	require.Nil(t, ranges)
}

func mustKindIDs(t *testing.T, name string) []uint16 {
	t.Helper()
	ids, err := resolveKindIDs([]string{name}, goLanguage())
	require.NoError(t, err)
	return ids
}
