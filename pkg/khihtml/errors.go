package khihtml

import (
	"fmt"

	"github.com/khilang/khi/pkg/khi"
)

// ErrorKind classifies a failure to render a value as HTML.
type ErrorKind int

const (
	// ErrIllegalTable is returned when a List value appears where HTML
	// markup is expected: HTML has no table/list construct to render a
	// khi List into, unlike a Dictionary or Compound.
	ErrIllegalTable ErrorKind = iota
	// ErrIllegalTuple is returned when a tag's inner value is a tuple
	// whose shape can't be rendered as an HTML element: only the unit
	// tuple (self-closing) and a single nested unit tuple (empty
	// element) are legal.
	ErrIllegalTuple
	// ErrTooManyArguments is returned when a tag has two or more inline
	// arguments: HTML elements have exactly one body, not an argument
	// list.
	ErrTooManyArguments
	// ErrIllegalAttributeValue is returned when an attribute's value is
	// not flat text (a dictionary, list, tuple, or tag), which HTML
	// attribute syntax cannot represent.
	ErrIllegalAttributeValue
	// ErrMacroError is returned for a malformed or unrecognized `name!`
	// macro tag.
	ErrMacroError
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIllegalTable:
		return "illegal table"
	case ErrIllegalTuple:
		return "illegal tuple"
	case ErrTooManyArguments:
		return "too many arguments"
	case ErrIllegalAttributeValue:
		return "illegal attribute value"
	case ErrMacroError:
		return "macro error"
	default:
		return "unknown error"
	}
}

// Error reports a failure encountered while rendering a value as HTML.
type Error struct {
	Kind         ErrorKind
	At           khi.Position
	AttributeKey string // set only for ErrIllegalAttributeValue
	Message      string // set only for ErrMacroError
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrIllegalTable:
		return fmt.Sprintf("%s: a table cannot be rendered as HTML", e.At)
	case ErrIllegalTuple:
		return fmt.Sprintf("%s: illegal tuple in element position", e.At)
	case ErrTooManyArguments:
		return fmt.Sprintf("%s: tag has more than one argument", e.At)
	case ErrIllegalAttributeValue:
		return fmt.Sprintf("%s: attribute %s has an illegal value", e.At, e.AttributeKey)
	case ErrMacroError:
		return fmt.Sprintf("%s: %s", e.At, e.Message)
	default:
		return fmt.Sprintf("%s: rendering error", e.At)
	}
}
