package highlight

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// IntersectRanges computes the byte ranges an injected layer should parse:
// the ranges of nodes, restricted to parentRanges, with each node's
// children's ranges carved out so that only a content node's own text is
// reparsed (§4.3). Unlike a general-purpose injection engine, property
// sheets never ask for a content node's children to be included verbatim,
// so this always excludes them — there is no includesChildren flag.
//
// parentRanges must be non-empty, sorted by StartByte, and pairwise
// disjoint; that invariant is established once per layer at construction
// (§3) and never violated afterward.
func IntersectRanges(parentRanges []tree_sitter.Range, nodes []tree_sitter.Node) []tree_sitter.Range {
	if len(parentRanges) == 0 {
		panic("layers must be constructed with non-empty ranges")
	}
	if len(nodes) == 0 {
		return nil
	}

	cursor := nodes[0].Walk()
	defer cursor.Close()

	result := []tree_sitter.Range{}

	parentRange := parentRanges[0]
	parentRanges = parentRanges[1:]

	for _, node := range nodes {
		precedingRange := tree_sitter.Range{
			EndByte:  node.StartByte(),
			EndPoint: node.StartPosition(),
		}
		followingRange := tree_sitter.Range{
			StartByte:  node.EndByte(),
			StartPoint: node.EndPosition(),
			EndByte:    ^uint(0),
			EndPoint:   tree_sitter.NewPoint(^uint(0), ^uint(0)),
		}

		excludedRanges := []tree_sitter.Range{}
		for _, child := range node.Children(cursor) {
			excludedRanges = append(excludedRanges, child.Range())
		}
		excludedRanges = append(excludedRanges, followingRange)

		for _, excludedRange := range excludedRanges {
			r := tree_sitter.Range{
				StartByte:  precedingRange.EndByte,
				StartPoint: precedingRange.EndPoint,
				EndByte:    excludedRange.StartByte,
				EndPoint:   excludedRange.StartPoint,
			}
			precedingRange = excludedRange

			if r.EndByte < parentRange.StartByte {
				continue
			}

			for parentRange.StartByte <= r.EndByte {
				if parentRange.EndByte > r.StartByte {
					if r.StartByte < parentRange.StartByte {
						r.StartByte = parentRange.StartByte
						r.StartPoint = parentRange.StartPoint
					}

					if parentRange.EndByte < r.EndByte {
						if r.StartByte < parentRange.EndByte {
							result = append(result, tree_sitter.Range{
								StartByte:  r.StartByte,
								StartPoint: r.StartPoint,
								EndByte:    parentRange.EndByte,
								EndPoint:   parentRange.EndPoint,
							})
						}
						r.StartByte = parentRange.EndByte
						r.StartPoint = parentRange.EndPoint
					} else {
						if r.StartByte < r.EndByte {
							result = append(result, r)
						}
						break
					}
				}

				if len(parentRanges) > 0 {
					parentRange = parentRanges[0]
					parentRanges = parentRanges[1:]
				} else {
					return result
				}
			}
		}
	}

	return result
}
