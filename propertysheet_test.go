package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
)

func goLanguage() *tree_sitter.Language {
	return tree_sitter.NewLanguage(tree_sitter_go.Language())
}

func TestCompileScopeOnly(t *testing.T) {
	sheet, err := Compile(goLanguage(), []byte(`{"comment": {"scope": "comment"}}`))
	require.NoError(t, err)

	tree := parseGoSource(t, "package main\n\n// hi\n")
	root := tree.RootNode()
	nodes, err := Evaluate(root, []TreeStep{StepChildren{}})
	require.NoError(t, err)

	var found bool
	for _, n := range nodes {
		if n.Kind() == "comment" {
			found = true
			props := sheet.PropertiesForNode(n)
			require.True(t, props.HasScope())
			require.Equal(t, ScopeComment, *props.Scope)
		}
	}
	require.True(t, found)
}

func TestCompileUnknownNodeKind(t *testing.T) {
	_, err := Compile(goLanguage(), []byte(`{"not_a_real_kind": {"scope": "comment"}}`))
	require.Error(t, err)
	var psErr *PropertySheetError
	require.ErrorAs(t, err, &psErr)
}

func TestCompileInvalidJSON(t *testing.T) {
	_, err := Compile(goLanguage(), []byte(`{not json}`))
	require.Error(t, err)
	var psErr *PropertySheetError
	require.ErrorAs(t, err, &psErr)
	require.Equal(t, InvalidJSON, psErr.Kind)
}

func TestCompileInjectionLanguageWithoutContent(t *testing.T) {
	_, err := Compile(goLanguage(), []byte(`{
		"function_declaration": {"injection-language": "go"}
	}`))
	require.Error(t, err)
	var psErr *PropertySheetError
	require.ErrorAs(t, err, &psErr)
	require.Equal(t, InvalidFormat, psErr.Kind)
}

func TestCompileInjectionContentWithoutLanguage(t *testing.T) {
	_, err := Compile(goLanguage(), []byte(`{
		"function_declaration": {"injection-content": {"name": "this"}}
	}`))
	require.Error(t, err)
	var psErr *PropertySheetError
	require.ErrorAs(t, err, &psErr)
	require.Equal(t, InvalidFormat, psErr.Kind)
}

func TestCompileInjectionLanguageContentLengthMismatch(t *testing.T) {
	_, err := Compile(goLanguage(), []byte(`{
		"function_declaration": {
			"injection-language": ["go", "go"],
			"injection-content": {"name": "this"}
		}
	}`))
	require.Error(t, err)
	var psErr *PropertySheetError
	require.ErrorAs(t, err, &psErr)
	require.Equal(t, InvalidFormat, psErr.Kind)
}

func TestCompileInjectionTreePathMissingChildIndex(t *testing.T) {
	_, err := Compile(goLanguage(), []byte(`{
		"function_declaration": {
			"injection-language": "go",
			"injection-content": {"name": "child", "args": [{"name": "this"}]}
		}
	}`))
	require.Error(t, err)
	var psErr *PropertySheetError
	require.ErrorAs(t, err, &psErr)
}

func TestCompileInjectionWithValidTreePath(t *testing.T) {
	sheet, err := Compile(goLanguage(), []byte(`{
		"function_declaration": {
			"injection-language": "go",
			"injection-content": {"name": "child", "args": [{"name": "this"}, 3]}
		}
	}`))
	require.NoError(t, err)

	tree := parseGoSource(t, "package main\n\nfunc greet() {}\n")
	root := tree.RootNode()
	nodes, err := Evaluate(root, []TreeStep{StepChildren{}})
	require.NoError(t, err)

	var found bool
	for _, n := range nodes {
		if n.Kind() == "function_declaration" {
			found = true
			props := sheet.PropertiesForNode(n)
			require.Len(t, props.Injections, 1)
			require.Equal(t, InjectionLanguageLiteral("go"), props.Injections[0].Language)
		}
	}
	require.True(t, found)
}

func TestPropertiesForNodeWithNilSheet(t *testing.T) {
	var sheet *Sheet
	tree := parseGoSource(t, "package main\n")
	props := sheet.PropertiesForNode(tree.RootNode())
	require.False(t, props.HasScope())
	require.Empty(t, props.Injections)
}
