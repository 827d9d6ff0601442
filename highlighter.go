package highlight

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Highlighter owns an ordered set of layers over one immutable source
// buffer and produces a flat, ordered stream of highlight events (§4.4).
// It is single-threaded cooperative: nothing runs until Highlight's
// returned sequence is pulled, and nothing runs concurrently with that
// pull. Not safe for concurrent use.
type Highlighter struct {
	registry     LanguageRegistry
	source       []byte
	parser       *tree_sitter.Parser
	layers       []*layer
	sourceOffset uint
	utf8ErrorLen *uint
}

// New parses source with language, annotates the resulting tree with
// sheet, and returns a Highlighter with one layer spanning the entire
// buffer. registry resolves any language-injection names discovered while
// highlighting; it may be nil if sheet declares no injections.
func New(registry LanguageRegistry, language *tree_sitter.Language, sheet *Sheet, source []byte) (*Highlighter, error) {
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("highlight: setting language: %w", err)
	}
	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("highlight: failed to parse source")
	}

	return &Highlighter{
		registry: registry,
		source:   source,
		parser:   parser,
		layers:   []*layer{newLayer(tree, sheet, []tree_sitter.Range{wholeBufferRange()})},
	}, nil
}

func wholeBufferRange() tree_sitter.Range {
	return tree_sitter.Range{
		StartByte:  0,
		StartPoint: tree_sitter.NewPoint(0, 0),
		EndByte:    ^uint(0),
		EndPoint:   tree_sitter.NewPoint(^uint(0), ^uint(0)),
	}
}

// Highlight returns the event stream for this Highlighter. Iteration ends
// either when the source is exhausted or when ctx is canceled, in which
// case the final yielded pair carries ctx.Err(). Callers that stop pulling
// before the sequence ends should call Close to release the remaining
// layers' cursors.
func (h *Highlighter) Highlight(ctx context.Context) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for {
			event, err, ok := h.next(ctx)
			if !ok {
				return
			}
			if !yield(event, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the cursors of every layer still owned by the
// Highlighter. Safe to call after normal exhaustion (a no-op by then).
func (h *Highlighter) Close() {
	for _, l := range h.layers {
		l.close()
	}
	h.layers = nil
}

func (h *Highlighter) next(ctx context.Context) (Event, error, bool) {
	if h.utf8ErrorLen != nil {
		n := *h.utf8ErrorLen
		h.utf8ErrorLen = nil
		h.sourceOffset += n
		return EventSource{Text: "�"}, nil, true
	}

	for len(h.layers) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err(), true
		default:
		}

		front := h.layers[0]
		props := front.properties()

		if !front.atNodeEnd {
			h.discoverInjections(front, props)
		}

		var scopeEvent Event
		if props.HasScope() {
			nextOffset := front.offset()
			if uint(len(h.source)) < nextOffset {
				nextOffset = uint(len(h.source))
			}

			if h.sourceOffset < nextOffset {
				event, ok := h.emitSource(nextOffset)
				if !ok {
					return nil, nil, false
				}
				return event, nil, true
			}

			if front.atNodeEnd {
				scopeEvent = EventScopeEnd{Scope: *props.Scope}
			} else {
				scopeEvent = EventScopeStart{Scope: *props.Scope}
			}
		}

		if front.advance() {
			h.sortLayers()
		} else {
			front.close()
			h.layers = h.layers[1:]
		}

		if scopeEvent != nil {
			return scopeEvent, nil, true
		}
	}

	if h.sourceOffset < uint(len(h.source)) {
		event, ok := h.emitSource(uint(len(h.source)))
		if ok {
			return event, nil, true
		}
	}
	return nil, nil, false
}

// discoverInjections evaluates every injection attached to front's current
// node and, for each that resolves to a non-empty intersected range set,
// spawns a new layer (§4.4 step 3).
func (h *Highlighter) discoverInjections(front *layer, props Properties) {
	node := front.node()
	for _, injection := range props.Injections {
		languageName, ok := h.injectionLanguageString(node, injection.Language)
		if !ok {
			continue
		}
		nodes, err := Evaluate(node, injection.Content)
		if err != nil || len(nodes) == 0 {
			continue
		}
		ranges := IntersectRanges(front.ranges, nodes)
		if len(ranges) == 0 {
			continue
		}
		h.addLayer(languageName, ranges)
	}
}

func (h *Highlighter) injectionLanguageString(node tree_sitter.Node, language InjectionLanguage) (string, bool) {
	switch l := language.(type) {
	case InjectionLanguageLiteral:
		return string(l), true
	case InjectionLanguageTreePath:
		nodes, err := Evaluate(node, []TreeStep(l))
		if err != nil || len(nodes) == 0 {
			return "", false
		}
		first := nodes[0]
		text := h.source[first.StartByte():first.EndByte()]
		if !utf8.Valid(text) {
			return "", false
		}
		return string(text), true
	default:
		return "", false
	}
}

// addLayer resolves languageName through the registry and, if found,
// parses the source restricted to ranges and inserts the resulting layer
// at the position that keeps the layer list sorted by offset. A tie with
// an existing layer's offset is broken in favor of the existing layer, so
// that an outer layer's scope-end sorts before an injected layer's
// scope-start at the same byte (§4.4, "Layer insertion").
func (h *Highlighter) addLayer(languageName string, ranges []tree_sitter.Range) {
	if h.registry == nil {
		return
	}
	language, sheet, ok := h.registry.LanguageForInjectionString(languageName)
	if !ok {
		return
	}

	if err := h.parser.SetLanguage(language); err != nil {
		return
	}
	if err := h.parser.SetIncludedRanges(ranges); err != nil {
		return
	}
	tree := h.parser.Parse(h.source, nil)
	if tree == nil {
		return
	}

	inserted := newLayer(tree, sheet, ranges)
	offset := inserted.offset()
	i := sort.Search(len(h.layers), func(i int) bool {
		return h.layers[i].offset() > offset
	})
	h.layers = append(h.layers, nil)
	copy(h.layers[i+1:], h.layers[i:])
	h.layers[i] = inserted
}

func (h *Highlighter) sortLayers() {
	sort.Slice(h.layers, func(i, j int) bool {
		return h.layers[i].offset() < h.layers[j].offset()
	})
}

// emitSource returns the Source event for source[sourceOffset:nextOffset],
// advancing sourceOffset (or recording a pending UTF-8 error length for
// the next call) per §4.4's UTF-8 handling. The bool result is false only
// when the slice ends in an incomplete encoding cut off at nextOffset
// (which may lie before the end of the buffer), in which case the stream
// ends with no further event.
func (h *Highlighter) emitSource(nextOffset uint) (Event, bool) {
	input := h.source[h.sourceOffset:nextOffset]
	if utf8.Valid(input) {
		h.sourceOffset = nextOffset
		return EventSource{Text: string(input)}, true
	}

	validLen, errLen, incomplete := scanUTF8Error(input)
	if incomplete {
		return nil, false
	}
	if validLen > 0 {
		prefix := string(input[:validLen])
		h.sourceOffset += uint(validLen)
		n := uint(errLen)
		h.utf8ErrorLen = &n
		return EventSource{Text: prefix}, true
	}
	h.sourceOffset += uint(errLen)
	return EventSource{Text: "�"}, true
}

// scanUTF8Error walks b looking for the first malformed byte. It reports
// how many leading bytes are valid UTF-8, the length of the malformed
// sequence starting there, and whether that sequence is merely truncated
// by the end of b rather than genuinely invalid.
func scanUTF8Error(b []byte) (validLen int, invalidLen int, incomplete bool) {
	for i := 0; i < len(b); {
		c := b[i]
		if c < utf8.RuneSelf {
			i++
			continue
		}

		rest := b[i:]
		if !utf8.FullRune(rest) && utf8.RuneStart(c) {
			return i, 0, true
		}

		r, size := utf8.DecodeRune(rest)
		if r == utf8.RuneError && size <= 1 {
			// The malformed sequence is the longest prefix of rest that is
			// still a valid start of some encoding (at least one byte).
			n := 1
			for n < len(rest) && n < utf8.UTFMax && !utf8.FullRune(rest[:n+1]) {
				n++
			}
			return i, n, false
		}
		i += size
	}
	return len(b), 0, false
}
