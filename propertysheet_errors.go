package highlight

import "fmt"

// PropertySheetErrorKind classifies why a property sheet failed to compile.
// See §4.1/§7.
type PropertySheetErrorKind int

const (
	// InvalidJSON means the sheet, or one of the values nested in it (a
	// state's properties, an injection list, a tree-path), did not decode
	// as JSON of the expected shape.
	InvalidJSON PropertySheetErrorKind = iota
	// InvalidRegex is reserved for the underlying sheet machinery's regex
	// predicates (§4.1: "opaque here"). This implementation's state
	// resolution is kind-based and never produces this kind itself; it is
	// kept so callers that bridge to a regex-predicate-capable sheet format
	// can report failures through the same taxonomy.
	InvalidRegex
	// InvalidFormat covers every structural problem: a missing child index,
	// mismatched injection-language/injection-content list lengths, or an
	// unknown node-kind name.
	InvalidFormat
)

func (k PropertySheetErrorKind) String() string {
	switch k {
	case InvalidJSON:
		return "InvalidJSON"
	case InvalidRegex:
		return "InvalidRegex"
	case InvalidFormat:
		return "InvalidFormat"
	default:
		return "Unknown"
	}
}

// PropertySheetError is returned by Compile. A sheet that fails to compile
// is unusable; compilation failures are always fatal to sheet construction.
type PropertySheetError struct {
	Kind    PropertySheetErrorKind
	Message string
	Cause   error
}

func (e *PropertySheetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("property sheet: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("property sheet: %s: %s", e.Kind, e.Message)
}

func (e *PropertySheetError) Unwrap() error { return e.Cause }

func newFormatError(format string, args ...any) *PropertySheetError {
	return &PropertySheetError{Kind: InvalidFormat, Message: fmt.Sprintf(format, args...)}
}
