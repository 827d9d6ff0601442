package highlight

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHighlighterEmitsScopesAndSource(t *testing.T) {
	language := goLanguage()
	sheetJSON, err := os.ReadFile("testdata/sheet.json")
	require.NoError(t, err)
	sheet, err := Compile(language, sheetJSON)
	require.NoError(t, err)

	source, err := os.ReadFile("testdata/test.go")
	require.NoError(t, err)

	registry := NewStaticRegistry()
	registry.Register("go", language, sheet)

	highlighter, err := New(registry, language, sheet, source)
	require.NoError(t, err)
	defer highlighter.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var rendered strings.Builder
	var scopeStarts, scopeEnds int
	for event, err := range highlighter.Highlight(ctx) {
		require.NoError(t, err)
		switch e := event.(type) {
		case EventSource:
			rendered.WriteString(e.Text)
		case EventScopeStart:
			scopeStarts++
		case EventScopeEnd:
			scopeEnds++
		}
	}

	require.Equal(t, string(source), rendered.String())
	require.Greater(t, scopeStarts, 0)
	require.Equal(t, scopeStarts, scopeEnds)
}

func TestHighlighterWithoutRegistrySkipsInjections(t *testing.T) {
	language := goLanguage()
	sheet, err := Compile(language, []byte(`{
		"function_declaration": {
			"injection-language": "go",
			"injection-content": {"name": "child", "args": [{"name": "this"}, 3]}
		}
	}`))
	require.NoError(t, err)

	source := []byte("package main\n\nfunc greet() {}\n")
	highlighter, err := New(nil, language, sheet, source)
	require.NoError(t, err)
	defer highlighter.Close()

	var rendered strings.Builder
	for event, err := range highlighter.Highlight(context.Background()) {
		require.NoError(t, err)
		if e, ok := event.(EventSource); ok {
			rendered.WriteString(e.Text)
		}
	}
	require.Equal(t, string(source), rendered.String())
}

func TestHighlighterContextCancellation(t *testing.T) {
	language := goLanguage()
	sheet, err := Compile(language, []byte(`{"comment": {"scope": "comment"}}`))
	require.NoError(t, err)

	source := []byte("package main\n\n// a comment\n")
	highlighter, err := New(nil, language, sheet, source)
	require.NoError(t, err)
	defer highlighter.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sawErr bool
	for _, err := range highlighter.Highlight(ctx) {
		if err != nil {
			sawErr = true
			require.ErrorIs(t, err, context.Canceled)
			break
		}
	}
	require.True(t, sawErr)
}

func TestHighlighterEmitsOneReplacementPerInvalidSequence(t *testing.T) {
	language := goLanguage()
	sheet, err := Compile(language, []byte(`{}`))
	require.NoError(t, err)

	source := []byte("a\xffb")
	highlighter, err := New(nil, language, sheet, source)
	require.NoError(t, err)
	defer highlighter.Close()

	var texts []string
	for event, err := range highlighter.Highlight(context.Background()) {
		require.NoError(t, err)
		if e, ok := event.(EventSource); ok {
			texts = append(texts, e.Text)
		}
	}

	require.Equal(t, []string{"a", "�", "b"}, texts)
}

func TestHighlighterEmptySourceProducesNoEvents(t *testing.T) {
	language := goLanguage()
	sheet, err := Compile(language, []byte(`{}`))
	require.NoError(t, err)

	highlighter, err := New(nil, language, sheet, []byte(""))
	require.NoError(t, err)
	defer highlighter.Close()

	var count int
	for range highlighter.Highlight(context.Background()) {
		count++
	}
	require.Equal(t, 0, count)
}
