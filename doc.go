/*
Package highlight is a syntax-highlighting engine built on
[tree-sitter](https://github.com/tree-sitter/tree-sitter). Given a source
buffer, a grammar, and a property sheet that assigns scopes and injection
rules to syntax-tree node kinds, it produces a flat, ordered stream of
highlight events suitable for rendering to a terminal, HTML, or any other
sink.

Unlike a query-based highlighter, this package resolves highlighting
entirely from a declarative JSON property sheet compiled once per language
with [Compile]. The sheet may also declare language injections — regions
reparsed by a different grammar, nested arbitrarily deep — which the
[Highlighter] discovers and schedules as it walks the tree.

# Usage

	sheetJSON := []byte(`{
		"comment": {"scope": "comment"},
		"interpreted_string_literal": {"scope": "string"}
	}`)

	language := tree_sitter.NewLanguage(tree_sitter_go.Language())

	sheet, err := highlight.Compile(language, sheetJSON)
	if err != nil {
		log.Fatal(err)
	}

	registry := highlight.NewStaticRegistry()
	registry.Register("go", language, sheet)

	source := []byte("package main\n\n// Entry point.\nfunc main() {}\n")
	highlighter, err := highlight.New(registry, language, sheet, source)
	if err != nil {
		log.Fatal(err)
	}
	defer highlighter.Close()

	for event, err := range highlighter.Highlight(context.Background()) {
		if err != nil {
			log.Fatal(err)
		}

		switch e := event.(type) {
		case highlight.EventScopeStart:
			log.Printf("scope start: %s", e.Scope)
		case highlight.EventScopeEnd:
			log.Printf("scope end: %s", e.Scope)
		case highlight.EventSource:
			log.Printf("source: %q", e.Text)
		}
	}
*/
package highlight
