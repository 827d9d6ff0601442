package highlight

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// TreeStep is one step of a flattened tree-path: a navigation instruction
// evaluated against a set of nodes produced by the previous step. See §4.2.
type TreeStep interface {
	treeStep()
}

// StepChild selects, from each node in the current set, the child at Index
// (negative indices count from the end, per §4.2). If Kinds is non-nil the
// child is kept only when its kind ID is in the set. A missing child is
// silently skipped.
type StepChild struct {
	Index int
	Kinds []uint16 // nil means unfiltered
}

func (StepChild) treeStep() {}

// StepChildren enumerates every direct child of each node in the current
// set, optionally filtered by Kinds.
type StepChildren struct {
	Kinds []uint16 // nil means unfiltered
}

func (StepChildren) treeStep() {}

// StepNext is reserved for future use (§4.2, §9: "Tree-path 'Next'"). The
// compiler accepts it; evaluating it is an unimplemented contract violation,
// preserving the source's known gap rather than guessing behavior.
type StepNext struct {
	Kinds []uint16 // nil means unfiltered
}

func (StepNext) treeStep() {}

// ErrNextUnimplemented is returned by Evaluate if a step sequence exercises
// StepNext. No property sheet in this repository's test fixtures produces
// one; §9 documents it as an open extension point.
var ErrNextUnimplemented = treePathError("tree-path: \"next\" step is not implemented")

type treePathError string

func (e treePathError) Error() string { return string(e) }

// Evaluate resolves a flattened tree-path against a starting node, yielding
// the set of nodes the path describes. It performs no recursion: a single
// growable buffer holds the running node set, with each step appending its
// results to the tail before the pre-step prefix is dropped, exactly as
// described in §4.2.
func Evaluate(start tree_sitter.Node, steps []TreeStep) ([]tree_sitter.Node, error) {
	nodes := []tree_sitter.Node{start}
	for _, step := range steps {
		var err error
		nodes, err = applyStep(step, nodes)
		if err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

func applyStep(step TreeStep, nodes []tree_sitter.Node) ([]tree_sitter.Node, error) {
	prefixLen := len(nodes)
	switch s := step.(type) {
	case StepChild:
		for i := 0; i < prefixLen; i++ {
			node := nodes[i]
			index := s.Index
			if index < 0 {
				index = int(node.ChildCount()) + index
			}
			if index < 0 {
				continue
			}
			child := node.Child(uint(index))
			if child.IsNull() {
				continue
			}
			if s.Kinds != nil && !containsKind(s.Kinds, child.KindId()) {
				continue
			}
			nodes = append(nodes, child)
		}
	case StepChildren:
		for i := 0; i < prefixLen; i++ {
			node := nodes[i]
			cursor := node.Walk()
			for _, child := range node.Children(cursor) {
				if s.Kinds != nil && !containsKind(s.Kinds, child.KindId()) {
					continue
				}
				nodes = append(nodes, child)
			}
			cursor.Close()
		}
	case StepNext:
		return nil, ErrNextUnimplemented
	}
	return nodes[prefixLen:], nil
}

func containsKind(kinds []uint16, kind uint16) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
