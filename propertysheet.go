package highlight

import (
	"bytes"
	"encoding/json"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Injection pairs a language specifier with a content tree-path. See §3.
type Injection struct {
	Language InjectionLanguage
	Content  []TreeStep
}

// InjectionLanguage is either a literal language name or a tree-path whose
// first resolved node's UTF-8 text names the language.
type InjectionLanguage interface {
	injectionLanguage()
}

// InjectionLanguageLiteral names the injected language directly.
type InjectionLanguageLiteral string

func (InjectionLanguageLiteral) injectionLanguage() {}

// InjectionLanguageTreePath resolves the language name from the text of the
// tree-path's first resolved node.
type InjectionLanguageTreePath []TreeStep

func (InjectionLanguageTreePath) injectionLanguage() {}

// Properties is the record attached to each parser state of the compiled
// property sheet: an optional scope and a list of injections. See §3.
type Properties struct {
	Scope      *Scope
	Injections []Injection
}

// HasScope reports whether this state's Properties has a scope set.
func (p Properties) HasScope() bool { return p.Scope != nil }

// Sheet is a compiled property sheet: a table from parser state to
// Properties, queryable in O(1). This implementation resolves "parser
// state" to a node's kind ID (§4.1: "resolves node-kind names to numeric
// IDs") rather than to the finer-grained LR automaton state the original
// tree-sitter C library used internally — that table is private to the
// underlying parser and isn't exposed by any binding in this module's
// dependency graph. See DESIGN.md for the rationale.
type Sheet struct {
	states map[uint16]Properties
}

// PropertiesForNode returns the Properties attached to node's parser state,
// or the zero value (no scope, no injections) if the sheet has no rule for
// that node kind.
func (s *Sheet) PropertiesForNode(node tree_sitter.Node) Properties {
	if s == nil {
		return Properties{}
	}
	if props, ok := s.states[node.KindId()]; ok {
		return props
	}
	return Properties{}
}

// Compile translates a declarative JSON property sheet into a Sheet. The
// top-level document is a JSON object mapping node-kind names to per-state
// property objects (§4.1). A sheet that fails to compile is unusable; every
// error returned is a *PropertySheetError.
func Compile(language *tree_sitter.Language, sheetJSON []byte) (*Sheet, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(sheetJSON, &raw); err != nil {
		return nil, &PropertySheetError{Kind: InvalidJSON, Message: "decoding property sheet", Cause: err}
	}

	states := make(map[uint16]Properties, len(raw))
	for kindName, propsRaw := range raw {
		kindID, err := resolveSingleKind(kindName, language)
		if err != nil {
			return nil, err
		}
		props, err := compileProperties(propsRaw, language)
		if err != nil {
			return nil, err
		}
		states[kindID] = props
	}
	return &Sheet{states: states}, nil
}

type propertiesJSON struct {
	Scope             *string         `json:"scope"`
	InjectionLanguage json.RawMessage `json:"injection-language"`
	InjectionContent  json.RawMessage `json:"injection-content"`
}

func compileProperties(raw json.RawMessage, language *tree_sitter.Language) (Properties, error) {
	var pj propertiesJSON
	if err := json.Unmarshal(raw, &pj); err != nil {
		return Properties{}, &PropertySheetError{Kind: InvalidJSON, Message: "decoding state properties", Cause: err}
	}

	var props Properties
	if pj.Scope != nil {
		scope := ScopeFromName(*pj.Scope)
		props.Scope = &scope
	}

	hasLanguage := rawIsSet(pj.InjectionLanguage)
	hasContent := rawIsSet(pj.InjectionContent)

	switch {
	case !hasLanguage && !hasContent:
		return props, nil
	case hasLanguage && !hasContent:
		return Properties{}, newFormatError("must specify an injection-content along with an injection-language")
	case !hasLanguage && hasContent:
		return Properties{}, newFormatError("must specify an injection-language along with an injection-content")
	}

	languages, err := decodeInjectionLanguages(pj.InjectionLanguage, language)
	if err != nil {
		return Properties{}, err
	}
	contents, err := decodeInjectionContents(pj.InjectionContent, language)
	if err != nil {
		return Properties{}, err
	}
	if len(languages) != len(contents) {
		return Properties{}, newFormatError(
			"mismatch: got %d injection-language values but %d injection-content values",
			len(languages), len(contents),
		)
	}

	for i := range languages {
		props.Injections = append(props.Injections, Injection{Language: languages[i], Content: contents[i]})
	}
	return props, nil
}

func rawIsSet(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && string(trimmed) != "null"
}

func decodeInjectionLanguages(raw json.RawMessage, language *tree_sitter.Language) ([]InjectionLanguage, error) {
	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &PropertySheetError{Kind: InvalidJSON, Message: "decoding injection-language list", Cause: err}
		}
		result := make([]InjectionLanguage, 0, len(items))
		for _, item := range items {
			l, err := decodeInjectionLanguage(item, language)
			if err != nil {
				return nil, err
			}
			result = append(result, l)
		}
		return result, nil
	}

	l, err := decodeInjectionLanguage(trimmed, language)
	if err != nil {
		return nil, err
	}
	return []InjectionLanguage{l}, nil
}

func decodeInjectionLanguage(raw json.RawMessage, language *tree_sitter.Language) (InjectionLanguage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil, &PropertySheetError{Kind: InvalidJSON, Message: "decoding injection-language literal", Cause: err}
		}
		return InjectionLanguageLiteral(s), nil
	}

	var p treePathJSON
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, &PropertySheetError{Kind: InvalidJSON, Message: "decoding injection-language tree-path", Cause: err}
	}
	steps, err := flattenTreePath(p, language)
	if err != nil {
		return nil, err
	}
	return InjectionLanguageTreePath(steps), nil
}

func decodeInjectionContents(raw json.RawMessage, language *tree_sitter.Language) ([][]TreeStep, error) {
	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, &PropertySheetError{Kind: InvalidJSON, Message: "decoding injection-content list", Cause: err}
		}
		result := make([][]TreeStep, 0, len(items))
		for _, item := range items {
			var p treePathJSON
			if err := json.Unmarshal(item, &p); err != nil {
				return nil, &PropertySheetError{Kind: InvalidJSON, Message: "decoding injection-content tree-path", Cause: err}
			}
			steps, err := flattenTreePath(p, language)
			if err != nil {
				return nil, err
			}
			result = append(result, steps)
		}
		return result, nil
	}

	var p treePathJSON
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, &PropertySheetError{Kind: InvalidJSON, Message: "decoding injection-content tree-path", Cause: err}
	}
	steps, err := flattenTreePath(p, language)
	if err != nil {
		return nil, err
	}
	return [][]TreeStep{steps}, nil
}

// treePathJSON is the JSON shape of a tree-path expression: `this`,
// `child(p, i, k1, k2…)`, `children(p, k…)`, or `next(p, k…)` (§4.1).
type treePathJSON struct {
	Name string            `json:"name"`
	Args []json.RawMessage `json:"args"`
}

type treePathArg struct {
	path   *treePathJSON
	number *int
	str    *string
}

func decodeTreePathArg(raw json.RawMessage) (treePathArg, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if _, ok := obj["name"]; ok {
			var p treePathJSON
			if err := json.Unmarshal(raw, &p); err != nil {
				return treePathArg{}, &PropertySheetError{Kind: InvalidJSON, Message: "decoding tree-path argument", Cause: err}
			}
			return treePathArg{path: &p}, nil
		}
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return treePathArg{number: &n}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return treePathArg{str: &s}, nil
	}

	return treePathArg{}, newFormatError("invalid tree-path argument: %s", raw)
}

// flattenTreePath transforms a tree path from the format expressed directly
// in the property sheet (nested function calls) into a flat sequence of
// steps, via post-order traversal: the inner-most `this` becomes the
// initial node, and each subsequent call appends one step. This lets the
// evaluator run with no recursion and a single buffer (§4.2).
func flattenTreePath(p treePathJSON, language *tree_sitter.Language) ([]TreeStep, error) {
	var steps []TreeStep
	if err := flattenTreePathInto(p, &steps, language); err != nil {
		return nil, err
	}
	return steps, nil
}

func flattenTreePathInto(p treePathJSON, steps *[]TreeStep, language *tree_sitter.Language) error {
	switch p.Name {
	case "this", "":
		return nil
	case "child":
		inner, index, kinds, err := parseTreePathArgs("child", p.Args, language)
		if err != nil {
			return err
		}
		if err := flattenTreePathInto(*inner, steps, language); err != nil {
			return err
		}
		if index == nil {
			return newFormatError("the `child` function requires an index")
		}
		*steps = append(*steps, StepChild{Index: *index, Kinds: kinds})
	case "children":
		inner, _, kinds, err := parseTreePathArgs("children", p.Args, language)
		if err != nil {
			return err
		}
		if err := flattenTreePathInto(*inner, steps, language); err != nil {
			return err
		}
		*steps = append(*steps, StepChildren{Kinds: kinds})
	case "next":
		inner, _, kinds, err := parseTreePathArgs("next", p.Args, language)
		if err != nil {
			return err
		}
		if err := flattenTreePathInto(*inner, steps, language); err != nil {
			return err
		}
		*steps = append(*steps, StepNext{Kinds: kinds})
	default:
		return newFormatError("unknown tree-path function %q", p.Name)
	}
	return nil
}

// parseTreePathArgs splits a call's argument list into its leading
// tree-path argument, an optional integer index, and an optional set of
// kind-name filters resolved to kind IDs (§4.1's "Argument parsing").
func parseTreePathArgs(name string, args []json.RawMessage, language *tree_sitter.Language) (*treePathJSON, *int, []uint16, error) {
	if len(args) == 0 {
		return nil, nil, nil, newFormatError("%q requires a tree-path argument", name)
	}

	first, err := decodeTreePathArg(args[0])
	if err != nil {
		return nil, nil, nil, err
	}
	if first.path == nil {
		return nil, nil, nil, newFormatError("first argument to %q must be a tree path", name)
	}

	var index *int
	var kindNames []string
	for _, raw := range args[1:] {
		arg, err := decodeTreePathArg(raw)
		if err != nil {
			return nil, nil, nil, err
		}
		switch {
		case arg.path != nil:
			return nil, nil, nil, newFormatError("other arguments to %q must be strings or numbers", name)
		case arg.number != nil:
			index = arg.number
		case arg.str != nil:
			kindNames = append(kindNames, *arg.str)
		}
	}

	var kinds []uint16
	if len(kindNames) > 0 {
		kinds, err = resolveKindIDs(kindNames, language)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return first.path, index, kinds, nil
}

// resolveKindIDs resolves a list of node-kind names to their numeric IDs,
// including only named kinds (§9: anonymous kinds are literal tokens, not
// addressed by name). An empty result is an error.
func resolveKindIDs(kinds []string, language *tree_sitter.Language) ([]uint16, error) {
	var ids []uint16
	count := uint16(language.NodeKindCount())
	for i := uint16(0); i < count; i++ {
		if !language.NodeKindIsNamed(i) {
			continue
		}
		name := language.NodeKindForId(i)
		for _, k := range kinds {
			if k == name {
				ids = append(ids, i)
				break
			}
		}
	}
	if len(ids) == 0 {
		return nil, newFormatError("non-existent node kinds: %v", kinds)
	}
	return ids, nil
}

func resolveSingleKind(name string, language *tree_sitter.Language) (uint16, error) {
	ids, err := resolveKindIDs([]string{name}, language)
	if err != nil {
		return 0, newFormatError("unknown node kind %q", name)
	}
	return ids[0], nil
}
