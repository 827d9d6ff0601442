package highlight

import (
	"encoding/json"
	"fmt"
)

// Scope is a highlight category drawn from a fixed, closed enumeration.
// Scopes are small integers so that external themes can index into a table
// by ID rather than by string comparison.
type Scope uint8

const (
	ScopeAttribute Scope = iota
	ScopeComment
	ScopeConstant
	ScopeConstantBuiltin
	ScopeConstructor
	ScopeConstructorBuiltin
	ScopeEmbedded
	ScopeEscape
	ScopeFunction
	ScopeFunctionBuiltin
	ScopeKeyword
	ScopeNumber
	ScopeOperator
	ScopeProperty
	ScopePropertyBuiltin
	ScopePunctuation
	ScopePunctuationBracket
	ScopePunctuationDelimiter
	ScopePunctuationSpecial
	ScopeString
	ScopeStringSpecial
	ScopeTag
	ScopeType
	ScopeTypeBuiltin
	ScopeVariable
	ScopeVariableBuiltin
	ScopeUnknown
)

var scopeNames = map[Scope]string{
	ScopeAttribute:            "attribute",
	ScopeComment:              "comment",
	ScopeConstant:             "constant",
	ScopeConstantBuiltin:      "constant.builtin",
	ScopeConstructor:          "constructor",
	ScopeConstructorBuiltin:   "constructor.builtin",
	ScopeEmbedded:             "embedded",
	ScopeEscape:               "escape",
	ScopeFunction:             "function",
	ScopeFunctionBuiltin:      "function.builtin",
	ScopeKeyword:              "keyword",
	ScopeNumber:               "number",
	ScopeOperator:             "operator",
	ScopeProperty:             "property",
	ScopePropertyBuiltin:      "property.builtin",
	ScopePunctuation:          "punctuation",
	ScopePunctuationBracket:   "punctuation.bracket",
	ScopePunctuationDelimiter: "punctuation.delimiter",
	ScopePunctuationSpecial:   "punctuation.special",
	ScopeString:               "string",
	ScopeStringSpecial:        "string.special",
	ScopeTag:                  "tag",
	ScopeType:                 "type",
	ScopeTypeBuiltin:          "type.builtin",
	ScopeVariable:             "variable",
	ScopeVariableBuiltin:      "variable.builtin",
	ScopeUnknown:              "unknown",
}

var scopesByName map[string]Scope

func init() {
	scopesByName = make(map[string]Scope, len(scopeNames))
	for scope, name := range scopeNames {
		scopesByName[name] = scope
	}
}

// String returns the lower-cased, dot-separated name of the scope.
func (s Scope) String() string {
	if name, ok := scopeNames[s]; ok {
		return name
	}
	return "unknown"
}

// ScopeFromName resolves a property-sheet scope string to a Scope. Names
// that don't match the fixed enumeration resolve to ScopeUnknown, per §6 of
// the spec ("unrecognized names map to unknown").
func ScopeFromName(name string) Scope {
	if scope, ok := scopesByName[name]; ok {
		return scope
	}
	return ScopeUnknown
}

func (s Scope) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Scope) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("scope: %w", err)
	}
	*s = ScopeFromName(name)
	return nil
}

// ClassName returns the CSS class the HTML renderer wraps this scope's
// source spans in. The table is fixed by the GLOSSARY.
func (s Scope) ClassName() string {
	switch s {
	case ScopeAttribute, ScopeConstant, ScopeConstantBuiltin, ScopeNumber, ScopeOperator, ScopeProperty, ScopePropertyBuiltin:
		return "pl-c1"
	case ScopeComment:
		return "pl-c"
	case ScopeConstructor, ScopeConstructorBuiltin:
		return "pl-v"
	case ScopeEmbedded, ScopeVariable:
		return "pl-s1"
	case ScopeEscape:
		return "pl-cce"
	case ScopeFunction, ScopeFunctionBuiltin:
		return "pl-en"
	case ScopeKeyword:
		return "pl-k"
	case ScopePunctuation, ScopePunctuationBracket, ScopePunctuationDelimiter, ScopePunctuationSpecial:
		return "pl-kos"
	case ScopeString:
		return "pl-s"
	case ScopeStringSpecial:
		return "pl-pds"
	case ScopeTag:
		return "pl-ent"
	case ScopeType, ScopeTypeBuiltin, ScopeVariableBuiltin:
		return "pl-smi"
	default:
		return ""
	}
}
