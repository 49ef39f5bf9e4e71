// Package khitex renders khi document values as TeX source.
//
// A tagged value becomes a TeX command (`\name{arg}{arg}...`); an `@`-prefixed
// tag name is a silent no-op (useful for source-only annotations that should
// not reach the typeset document); the single-character names `$` and `\\`
// are recognized as inline-math wrapping and an explicit line break,
// matching a hand-written TeX author's own shorthand.
package khitex

import (
	"strings"

	"github.com/khilang/khi/pkg/khi"
)

// Write renders value as TeX source.
func Write(value khi.Value) (string, error) {
	var out strings.Builder
	w := &writer{out: &out}
	if err := w.writeInner(value, 0); err != nil {
		return "", err
	}
	return out.String(), nil
}

type writer struct {
	out *strings.Builder
}

func pushIndent(out *strings.Builder, level int) {
	for i := 0; i < level; i++ {
		out.WriteByte(' ')
	}
}

// tupleArguments returns the uniform argument list of a Form-A tag's inner
// tuple, regardless of which collapsed shape NewTuple produced.
func tupleArguments(inner khi.Value) []khi.Value {
	tuple, ok := inner.AsTuple()
	if !ok {
		return []khi.Value{inner}
	}
	switch tuple.Kind {
	case khi.TupleUnit:
		return nil
	case khi.TupleSingle:
		return []khi.Value{tuple.Single}
	default:
		return tuple.Values
	}
}

func (w *writer) writeInner(value khi.Value, level int) error {
	switch {
	case value == nil || value.IsNil():
		return nil
	case value.IsText():
		text, _ := value.AsText()
		w.out.WriteByte('\n')
		pushIndent(w.out, level)
		w.out.WriteString(text.Str)
		return nil
	case value.IsList():
		return &Error{Kind: ErrIllegalSequence, At: value.From()}
	case value.IsDictionary():
		return &Error{Kind: ErrIllegalDictionary, At: value.From()}
	case value.IsTagged():
		tag, _ := value.AsTagged()
		return w.writeMacro(tag, level)
	case value.IsCompound():
		compound, _ := value.AsCompound()
		for _, el := range compound.Iter() {
			if el.Kind != khi.ElementTerm {
				continue
			}
			if err := w.writeInner(el.Term, level); err != nil {
				return err
			}
		}
		return nil
	case value.IsTuple():
		for _, arg := range tupleArguments(value) {
			if err := w.writeInner(arg, level); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func (w *writer) writeMacro(tag *khi.Tagged, level int) error {
	name := tag.Name
	if strings.HasPrefix(name, "@") {
		return nil
	}
	args := tupleArguments(tag.Inner)
	switch name {
	case "$":
		if len(args) == 0 {
			return &Error{Kind: ErrMissingArgument, At: tag.From()}
		}
		w.out.WriteByte('$')
		if err := w.writeInner(args[0], level); err != nil {
			return err
		}
		w.out.WriteByte('$')
		return nil
	case "\\":
		w.out.WriteString("\n\\\\")
		return nil
	}

	w.out.WriteByte('\n')
	pushIndent(w.out, level)
	w.out.WriteByte('\\')
	w.out.WriteString(name)

	nextOpt := false
	for _, arg := range args {
		switch {
		case arg == nil || arg.IsNil():
			if nextOpt {
				w.out.WriteString("[]")
				nextOpt = false
			} else {
				w.out.WriteString("{}")
			}
		case arg.IsText():
			text, _ := arg.AsText()
			if text.Str == "*" {
				nextOpt = true
				continue
			}
			if nextOpt {
				w.out.WriteByte('[')
				w.out.WriteString(text.Str)
				w.out.WriteByte(']')
				nextOpt = false
			} else {
				w.out.WriteByte('{')
				w.out.WriteString(text.Str)
				w.out.WriteByte('}')
			}
		case arg.IsList():
			return &Error{Kind: ErrIllegalSequence, At: arg.From()}
		case arg.IsDictionary():
			return &Error{Kind: ErrIllegalDictionary, At: arg.From()}
		case arg.IsTagged():
			nested, _ := arg.AsTagged()
			w.out.WriteByte('{')
			if err := w.writeMacro(nested, level+1); err != nil {
				return err
			}
			w.out.WriteByte('}')
		default:
			w.out.WriteString("{\n")
			if err := w.writeInner(arg, level+1); err != nil {
				return err
			}
			w.out.WriteByte('\n')
			pushIndent(w.out, level)
			w.out.WriteByte('}')
		}
	}
	return nil
}
