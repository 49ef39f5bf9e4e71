package khitex

import (
	"fmt"

	"github.com/khilang/khi/pkg/khi"
)

// ErrorKind classifies a failure to render a value as TeX.
type ErrorKind int

const (
	// ErrIllegalSequence is returned when a List value appears where TeX
	// source is expected: TeX has no native table/list construct to
	// target here.
	ErrIllegalSequence ErrorKind = iota
	// ErrIllegalDictionary is returned when a Dictionary value appears
	// where TeX source is expected.
	ErrIllegalDictionary
	// ErrMissingArgument is returned when a `$` (inline math) tag has no
	// argument to wrap.
	ErrMissingArgument
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIllegalSequence:
		return "illegal sequence"
	case ErrIllegalDictionary:
		return "illegal dictionary"
	case ErrMissingArgument:
		return "missing argument"
	default:
		return "unknown error"
	}
}

// Error reports a failure encountered while rendering a value as TeX.
type Error struct {
	Kind ErrorKind
	At   khi.Position
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrIllegalSequence:
		return fmt.Sprintf("%s: a sequence cannot be rendered as TeX", e.At)
	case ErrIllegalDictionary:
		return fmt.Sprintf("%s: a dictionary cannot be rendered as TeX", e.At)
	case ErrMissingArgument:
		return fmt.Sprintf("%s: $ requires one argument", e.At)
	default:
		return fmt.Sprintf("%s: rendering error", e.At)
	}
}
