package highlight

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// LanguageRegistry resolves the language name an injection names (either
// literally or via a tree-path lookup) to a parser language and its
// compiled property sheet. It is consulted once per injection discovered
// during traversal; returning false silently skips that injection (§6).
type LanguageRegistry interface {
	LanguageForInjectionString(name string) (*tree_sitter.Language, *Sheet, bool)
}

type registryEntry struct {
	language *tree_sitter.Language
	sheet    *Sheet
}

// StaticRegistry is a LanguageRegistry backed by a fixed, in-memory table
// of languages registered ahead of time — the only kind this module
// builds, since discovering grammars or property sheets from the
// filesystem is out of scope (§1, Non-goals).
type StaticRegistry struct {
	entries map[string]registryEntry
}

// NewStaticRegistry returns an empty registry ready for Register calls.
func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{entries: make(map[string]registryEntry)}
}

// Register associates an injection-string name with a language and the
// property sheet compiled for it. A later call with the same name replaces
// the earlier one.
func (r *StaticRegistry) Register(name string, language *tree_sitter.Language, sheet *Sheet) {
	r.entries[name] = registryEntry{language: language, sheet: sheet}
}

func (r *StaticRegistry) LanguageForInjectionString(name string) (*tree_sitter.Language, *Sheet, bool) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, nil, false
	}
	return entry.language, entry.sheet, true
}
