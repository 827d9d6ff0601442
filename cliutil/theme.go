// Package cliutil holds the rendering helpers the tshighlight CLI layers on
// top of the highlight core: theme loading and ANSI painting. None of this
// is part of the core's responsibility (§1, Non-goals: "theme loading ...
// terminal output ... consume the event stream").
package cliutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	highlight "github.com/tree-sitter-contrib/tshighlight"
)

// Theme maps scopes to terminal colors. Scopes absent from the theme
// render uncolored, matching the reference CLI's "unset entries paint
// nothing" behavior.
type Theme struct {
	colors map[highlight.Scope]themeColor
}

// NewTheme parses a JSON object mapping scope names to colors. A color
// value is either a number (a fixed 256-color palette index) or a string:
// one of the named colors below, or a "#RRGGBB" hex triplet. Entries with
// an unrecognized value are skipped rather than rejected, so one bad entry
// doesn't invalidate the whole theme.
func NewTheme(data []byte) (*Theme, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("cliutil: decoding theme: %w", err)
	}

	colors := make(map[highlight.Scope]themeColor, len(raw))
	for name, value := range raw {
		c, ok := decodeThemeColor(value)
		if !ok {
			continue
		}
		colors[highlight.ScopeFromName(name)] = c
	}
	return &Theme{colors: colors}, nil
}

// DefaultTheme mirrors the reference CLI's built-in default: function in
// blue, constructor in yellow, type in green, constant in red, keyword in
// purple.
func DefaultTheme() *Theme {
	theme, err := NewTheme([]byte(`{
		"function": "blue",
		"constructor": "yellow",
		"type": "green",
		"constant": "red",
		"keyword": "purple"
	}`))
	if err != nil {
		panic("cliutil: default theme failed to parse: " + err.Error())
	}
	return theme
}

// Color returns the color assigned to scope, or a no-op color if the theme
// has no entry for it.
func (t *Theme) Color(scope highlight.Scope) themeColor {
	if c, ok := t.colors[scope]; ok {
		return c
	}
	return noColor{}
}

type themeColor interface {
	Paint(s string) string
}

type noColor struct{}

func (noColor) Paint(s string) string { return s }

type namedColor struct{ c *color.Color }

func (n namedColor) Paint(s string) string { return n.c.Sprint(s) }

// fixedColor renders a 256-color palette index. fatih/color has no direct
// accessor for an arbitrary palette index (only named attributes and
// true-color RGB), so this writes the SGR sequence by hand; it still
// honors color.NoColor so NO_COLOR and non-tty output behave like every
// other color in this package.
type fixedColor struct{ code uint8 }

func (f fixedColor) Paint(s string) string {
	if color.NoColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", f.code, s)
}

func decodeThemeColor(raw json.RawMessage) (themeColor, bool) {
	var n uint8
	if err := json.Unmarshal(raw, &n); err == nil {
		return fixedColor{code: n}, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}

	switch strings.ToLower(s) {
	case "black":
		return namedColor{color.New(color.FgBlack)}, true
	case "red":
		return namedColor{color.New(color.FgRed)}, true
	case "green":
		return namedColor{color.New(color.FgGreen)}, true
	case "yellow":
		return namedColor{color.New(color.FgYellow)}, true
	case "blue":
		return namedColor{color.New(color.FgBlue)}, true
	case "purple", "magenta":
		return namedColor{color.New(color.FgMagenta)}, true
	case "cyan":
		return namedColor{color.New(color.FgCyan)}, true
	case "white":
		return namedColor{color.New(color.FgWhite)}, true
	}

	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r, err1 := strconv.ParseUint(s[1:3], 16, 8)
		g, err2 := strconv.ParseUint(s[3:5], 16, 8)
		b, err3 := strconv.ParseUint(s[5:7], 16, 8)
		if err1 == nil && err2 == nil && err3 == nil {
			return namedColor{color.RGB(int(r), int(g), int(b))}, true
		}
	}

	return nil, false
}
