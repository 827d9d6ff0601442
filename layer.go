package highlight

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// layer is one independent parse tree participating in a Highlighter: the
// root document, or one injected region nested inside it. See §3.
type layer struct {
	tree      *tree_sitter.Tree
	cursor    *tree_sitter.TreeCursor
	sheet     *Sheet
	ranges    []tree_sitter.Range
	atNodeEnd bool
}

func newLayer(tree *tree_sitter.Tree, sheet *Sheet, ranges []tree_sitter.Range) *layer {
	return &layer{
		tree:   tree,
		cursor: tree.RootNode().Walk(),
		sheet:  sheet,
		ranges: ranges,
	}
}

func (l *layer) close() {
	l.cursor.Close()
}

// node returns the node the cursor currently sits on.
func (l *layer) node() tree_sitter.Node {
	return l.cursor.Node()
}

// properties returns the Properties attached to the current node.
func (l *layer) properties() Properties {
	return l.sheet.PropertiesForNode(l.node())
}

// offset reports where this layer's cursor currently sits in byte terms:
// the node's start byte on the way in, its end byte on the way out. Layers
// are kept sorted by this value (§4.4).
func (l *layer) offset() uint {
	if l.atNodeEnd {
		return l.node().EndByte()
	}
	return l.node().StartByte()
}

// advance performs one step of the depth-first traversal that visits every
// node twice — once descending, once ascending — firing ScopeStart on the
// way down and ScopeEnd on the way up. It returns false once the traversal
// has exhausted the tree, signaling the layer should be retired.
func (l *layer) advance() bool {
	if l.atNodeEnd {
		if l.cursor.GotoNextSibling() {
			l.atNodeEnd = false
		} else if !l.cursor.GotoParent() {
			return false
		}
	} else if !l.cursor.GotoFirstChild() {
		l.atNodeEnd = true
	}
	return true
}
