package cliutil

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	highlight "github.com/tree-sitter-contrib/tshighlight"
)

func TestNewThemeNamedAndHexColors(t *testing.T) {
	color.NoColor = false
	defer func() { color.NoColor = true }()

	theme, err := NewTheme([]byte(`{
		"function": "blue",
		"type": "#00ff00",
		"constant": 9
	}`))
	require.NoError(t, err)

	require.Equal(t, "hi", theme.Color(highlight.ScopeUnknown).Paint("hi"))

	painted := theme.Color(highlight.ScopeFunction).Paint("x")
	require.NotEqual(t, "x", painted)
	require.Contains(t, painted, "x")

	hexPainted := theme.Color(highlight.ScopeType).Paint("x")
	require.NotEqual(t, "x", hexPainted)
	require.Contains(t, hexPainted, "x")
}

func TestNewThemeSkipsUnrecognizedColors(t *testing.T) {
	theme, err := NewTheme([]byte(`{
		"function": "not-a-color",
		"type": "green"
	}`))
	require.NoError(t, err)

	require.Equal(t, "plain", theme.Color(highlight.ScopeFunction).Paint("plain"))
}

func TestNewThemeInvalidJSON(t *testing.T) {
	_, err := NewTheme([]byte(`not json`))
	require.Error(t, err)
}

func TestDefaultThemeDoesNotPanic(t *testing.T) {
	require.NotPanics(t, func() {
		theme := DefaultTheme()
		require.NotNil(t, theme)
	})
}
