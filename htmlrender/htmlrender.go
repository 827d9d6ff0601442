// Package htmlrender renders a highlight event stream to HTML, wrapping
// each open scope's text in a <span class="..."> using the fixed
// scope→class table from the GLOSSARY. Adapted from the teacher package's
// capture-based renderer (html_render.go), simplified for a single
// scope-stack model with no per-language attribute callback.
package htmlrender

import (
	"fmt"
	"html"
	"iter"
	"strings"

	highlight "github.com/tree-sitter-contrib/tshighlight"
)

// Render renders an event stream as HTML.
func Render(events iter.Seq2[highlight.Event, error]) (string, error) {
	var output strings.Builder
	var scopes []highlight.Scope

	for event, err := range events {
		if err != nil {
			return "", fmt.Errorf("htmlrender: %w", err)
		}

		switch e := event.(type) {
		case highlight.EventScopeStart:
			scopes = append(scopes, e.Scope)
			output.WriteString(startSpan(e.Scope))
		case highlight.EventScopeEnd:
			if len(scopes) > 0 {
				scopes = scopes[:len(scopes)-1]
			}
			output.WriteString("</span>")
		case highlight.EventSource:
			output.WriteString(addText(e.Text, scopes))
		}
	}

	return output.String(), nil
}

// addText escapes source text for HTML, closing and reopening every open
// span around each newline so the markup stays well-formed when the
// output is later split onto separate lines.
func addText(text string, scopes []highlight.Scope) string {
	var out strings.Builder

	for _, c := range text {
		switch c {
		case '\r':
			continue
		case '\n':
			for range scopes {
				out.WriteString("</span>")
			}
			out.WriteByte('\n')
			for _, scope := range scopes {
				out.WriteString(startSpan(scope))
			}
		default:
			out.WriteString(html.EscapeString(string(c)))
		}
	}

	return out.String()
}

func startSpan(scope highlight.Scope) string {
	class := scope.ClassName()
	if class == "" {
		return "<span>"
	}
	return fmt.Sprintf(`<span class=%q>`, class)
}
