package cliutil

import (
	"fmt"
	"io"
	"iter"

	highlight "github.com/tree-sitter-contrib/tshighlight"
)

// RenderANSI writes an already-highlighted event stream to w, painting
// each Source event with whatever color the innermost open scope maps to
// in theme. The core never colors anything itself; the scope stack here is
// the renderer's own bookkeeping, mirroring the reference CLI's `ansi`
// function.
func RenderANSI(w io.Writer, theme *Theme, events iter.Seq2[highlight.Event, error]) error {
	var scopeStack []highlight.Scope

	for event, err := range events {
		if err != nil {
			return fmt.Errorf("cliutil: rendering: %w", err)
		}

		switch e := event.(type) {
		case highlight.EventSource:
			text := e.Text
			if len(scopeStack) > 0 {
				text = theme.Color(scopeStack[len(scopeStack)-1]).Paint(text)
			}
			if _, err := io.WriteString(w, text); err != nil {
				return err
			}
		case highlight.EventScopeStart:
			scopeStack = append(scopeStack, e.Scope)
		case highlight.EventScopeEnd:
			if len(scopeStack) > 0 {
				scopeStack = scopeStack[:len(scopeStack)-1]
			}
		}
	}

	return nil
}
