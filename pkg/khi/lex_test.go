package khi

import (
	"runtime"
	"testing"
)

// line returns the line number from which it was called, used to mark
// where a test table entry is defined in the source.
func line() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

// Equal reports whether t and tt carry the same kind and text, ignoring
// position.
func (t *token) Equal(tt *token) bool {
	return t.kind == tt.kind && t.text == tt.text
}

// T builds a token for use in test tables.
func T(k tokenKind, text string) *token { return &token{kind: k, text: text} }

func TestLex(t *testing.T) {
Tests:
	for _, tt := range []struct {
		line   int
		in     string
		tokens []*token
	}{
		{line(), "", []*token{T(tokEnd, "")}},
		{line(), "hello", []*token{T(tokWord, "hello"), T(tokEnd, "")}},
		{line(), "hello world", []*token{
			T(tokWord, "hello"), T(tokWhitespace, ""), T(tokWord, "world"), T(tokEnd, ""),
		}},
		{line(), "{}", []*token{T(tokBracketOpen, ""), T(tokBracketClose, ""), T(tokEnd, "")}},
		{line(), "[a;b]", []*token{
			T(tokListOpen, ""), T(tokWord, "a"), T(tokSemicolon, ""), T(tokWord, "b"), T(tokListClose, ""), T(tokEnd, ""),
		}},
		{line(), "<b>", []*token{T(tokTagOpen, ""), T(tokWord, "b"), T(tokTagClose, ""), T(tokEnd, "")}},
		{line(), "</b>", []*token{T(tokClosingTagOpen, ""), T(tokWord, "b"), T(tokTagClose, ""), T(tokEnd, "")}},
		{line(), "a:b", []*token{T(tokWord, "a"), T(tokColon, ""), T(tokWord, "b"), T(tokEnd, "")}},
		{line(), "a::b", []*token{T(tokWord, "a::b"), T(tokEnd, "")}},
		{line(), "a:::b", []*token{T(tokWord, "a:::b"), T(tokEnd, "")}},
		{line(), `"quoted text"`, []*token{T(tokQuote, "quoted text"), T(tokEnd, "")}},
		{line(), `"esc\"aped"`, []*token{T(tokQuote, `esc"aped`), T(tokEnd, "")}},
		{line(), `a\:b`, []*token{T(tokWord, "a:b"), T(tokEnd, "")}},
		{line(), `a\nb`, []*token{T(tokWord, "a\nb"), T(tokEnd, "")}},
		{line(), "# a comment\nafter", []*token{T(tokComment, ""), T(tokWord, "after"), T(tokEnd, "")}},
		{line(), "a#b", []*token{T(tokWord, "a#b"), T(tokEnd, "")}},
		{line(), "a #b", []*token{T(tokWord, "a"), T(tokWhitespace, ""), T(tokWord, "#b"), T(tokEnd, "")}},
	} {
		tokens, lerr := tokenize(tt.in)
		if lerr != nil {
			t.Errorf("%d: tokenize(%q): unexpected lex error: %+v", tt.line, tt.in, lerr)
			continue Tests
		}
		if len(tokens) != len(tt.tokens) {
			t.Errorf("%d: tokenize(%q): got %d tokens, want %d", tt.line, tt.in, len(tokens), len(tt.tokens))
			continue Tests
		}
		for i, tok := range tokens {
			if !tok.Equal(tt.tokens[i]) {
				t.Errorf("%d: tokenize(%q)[%d]: got %v %q, want %v %q", tt.line, tt.in, i, tok.kind, tok.text, tt.tokens[i].kind, tt.tokens[i].text)
			}
		}
	}
}

func TestLexErrors(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		kind lexErrorKind
	}{
		{line(), `"unclosed`, lexUnclosedQuote},
		{line(), `a\`, lexEscapeEOS},
		{line(), `#{`, lexCommentedBracket},
		{line(), `#[`, lexCommentedBracket},
		{line(), `#<`, lexCommentedBracket},
	} {
		_, lerr := tokenize(tt.in)
		if lerr == nil {
			t.Errorf("%d: tokenize(%q): got no error, want kind %v", tt.line, tt.in, tt.kind)
			continue
		}
		if lerr.kind != tt.kind {
			t.Errorf("%d: tokenize(%q): got error kind %v, want %v", tt.line, tt.in, lerr.kind, tt.kind)
		}
	}
}
