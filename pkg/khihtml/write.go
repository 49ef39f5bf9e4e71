// Package khihtml renders khi document values as HTML/XML markup.
//
// The writer performs column-aware soft-wrapping the way a hand-formatted
// document would: whitespace in the source is collapsed to either a single
// space or a newline depending on how far the current line has run, while
// markup glyphs that must not be broken (tag delimiters, attribute quoting)
// are pushed without triggering a wrap decision.
package khihtml

import (
	"fmt"
	"strings"

	"github.com/khilang/khi/pkg/khi"
)

// Write renders value as HTML/XML and returns the resulting markup.
func Write(value khi.Value) (string, error) {
	var out strings.Builder
	w := &writer{out: &out, column: 1, newline: 60, last: lastWhitespace}
	if err := w.writeCompound(value); err != nil {
		return "", err
	}
	return out.String(), nil
}

// WriteWithWrapColumn renders value as HTML/XML, soft-wrapping at newline
// columns. A newline of 0 disables wrapping (whitespace always becomes a
// single space).
func WriteWithWrapColumn(value khi.Value, newline int) (string, error) {
	var out strings.Builder
	w := &writer{out: &out, column: 1, newline: newline, last: lastWhitespace}
	if err := w.writeCompound(value); err != nil {
		return "", err
	}
	return out.String(), nil
}

type lastKind int

const (
	lastGlyph lastKind = iota
	lastWhitespace
)

type writer struct {
	out     *strings.Builder
	column  int
	newline int // 0 disables wrapping.
	last    lastKind
}

func (w *writer) pushWhitespace() {
	if w.last == lastWhitespace {
		return
	}
	if w.newline != 0 && w.column > w.newline {
		w.out.WriteByte('\n')
		w.column = 1
	} else {
		w.out.WriteByte(' ')
		w.column++
	}
	w.last = lastWhitespace
}

// pushStr writes str, treating any whitespace rune in it as a soft-wrap
// opportunity rather than literal content.
func (w *writer) pushStr(str string) {
	for _, c := range str {
		if isSpace(c) {
			w.pushWhitespace()
		} else {
			w.column++
			w.out.WriteRune(c)
			w.last = lastGlyph
		}
	}
}

// pushNonBreaking writes a single rune verbatim: never a wrap point.
func (w *writer) pushNonBreaking(c rune) {
	w.column++
	w.out.WriteRune(c)
	if isSpace(c) {
		w.last = lastWhitespace
	} else {
		w.last = lastGlyph
	}
}

// pushStrNonBreaking writes str verbatim, rune by rune, never wrapping.
func (w *writer) pushStrNonBreaking(str string) {
	for _, c := range str {
		w.pushNonBreaking(c)
	}
}

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func (w *writer) writeCompound(value khi.Value) error {
	switch {
	case value == nil || value.IsNil():
		return nil
	case value.IsText():
		text, _ := value.AsText()
		w.pushStr(text.Str)
		return nil
	case value.IsDictionary():
		dict, _ := value.AsDictionary()
		return w.writeDictionary(dict)
	case value.IsList():
		return &Error{Kind: ErrIllegalTable, At: value.From()}
	case value.IsCompound():
		compound, _ := value.AsCompound()
		for _, el := range compound.Iter() {
			if el.Kind == khi.ElementWhitespace {
				w.pushWhitespace()
				continue
			}
			if err := w.writeCompound(el.Term); err != nil {
				return err
			}
		}
		return nil
	case value.IsTuple():
		tuple, _ := value.AsTuple()
		if tuple.Kind == khi.TupleUnit {
			return nil
		}
		return &Error{Kind: ErrIllegalTuple, At: value.From()}
	case value.IsTagged():
		tag, _ := value.AsTagged()
		return w.writeTag(tag)
	default:
		return fmt.Errorf("khihtml: unrecognized value type %T", value)
	}
}

func (w *writer) writeTag(tag *khi.Tagged) error {
	name := tag.Name
	inner := tag.Inner
	if strings.HasSuffix(name, "!") {
		return w.writeMacro(tag)
	}

	w.pushNonBreaking('<')
	w.pushStrNonBreaking(name)
	for _, attr := range tag.Attributes {
		w.pushNonBreaking(' ')
		w.pushStrNonBreaking(attr.Key)
		if attr.Value == nil {
			continue
		}
		value, err := attributeValueString(attr.Key, attr.Value)
		if err != nil {
			return err
		}
		w.pushStrNonBreaking("=\"")
		w.pushStrNonBreaking(value)
		w.pushNonBreaking('"')
	}
	w.pushNonBreaking('>')

	if inner != nil && inner.IsTuple() {
		tuple, _ := inner.AsTuple()
		switch tuple.Kind {
		case khi.TupleUnit:
			return nil // self-closing tag
		case khi.TupleSingle:
			if !tuple.Single.IsTuple() {
				return &Error{Kind: ErrIllegalTuple, At: tuple.Single.From()}
			}
			inner2, _ := tuple.Single.AsTuple()
			if inner2.Kind != khi.TupleUnit {
				return &Error{Kind: ErrIllegalTuple, At: tuple.Single.From()}
			}
			// Empty element: fall through to close the tag below.
		case khi.TupleMultiple:
			return &Error{Kind: ErrTooManyArguments, At: tag.From()}
		}
	} else if err := w.writeCompound(inner); err != nil {
		return err
	}

	w.pushStrNonBreaking("</")
	w.pushStrNonBreaking(name)
	w.pushNonBreaking('>')
	return nil
}

// attributeValueString flattens an attribute's value to the flat string
// HTML attribute syntax requires. Attribute values in the document model are
// full Values (see the parser's grounding notes), but HTML only has room for
// text: a dictionary, list, tuple, or tag attribute value is illegal here.
func attributeValueString(key string, value khi.Value) (string, error) {
	if text, ok := value.AsText(); ok {
		return text.Str, nil
	}
	return "", &Error{Kind: ErrIllegalAttributeValue, AttributeKey: key, At: value.From()}
}

func (w *writer) writeMacro(tag *khi.Tagged) error {
	switch tag.Name {
	case "doctype!":
		if len(tag.Attributes) != 0 {
			return &Error{Kind: ErrMacroError, Message: "doctype! macro cannot have attributes", At: tag.From()}
		}
		text, ok := tag.Inner.AsText()
		if !ok {
			return &Error{Kind: ErrMacroError, Message: "doctype! must have 1 text argument", At: tag.From()}
		}
		w.pushStrNonBreaking("<!DOCTYPE ")
		w.pushStrNonBreaking(text.Str)
		w.pushStrNonBreaking(">")
		return nil
	case "raw!":
		text, ok := tag.Inner.AsText()
		if !ok {
			return &Error{Kind: ErrMacroError, Message: "raw! can only take a text argument", At: tag.From()}
		}
		w.out.WriteString(text.Str)
		return nil
	default:
		return &Error{Kind: ErrMacroError, Message: fmt.Sprintf("unknown macro %s", tag.Name), At: tag.From()}
	}
}

func (w *writer) writeDictionary(dict *khi.Dictionary) error {
	for _, entry := range dict.Entries() {
		w.pushNonBreaking('<')
		w.pushStrNonBreaking(entry.Key)
		w.pushNonBreaking('>')
		if err := w.writeCompound(entry.Value); err != nil {
			return err
		}
		w.pushStrNonBreaking("</")
		w.pushStrNonBreaking(entry.Key)
		w.pushNonBreaking('>')
	}
	return nil
}
