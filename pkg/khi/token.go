package khi

// tokenKind enumerates the lexical token categories produced by the lexer.
type tokenKind int

const (
	tokBracketOpen    tokenKind = iota // '{'
	tokBracketClose                    // '}'
	tokListOpen                        // '['
	tokListClose                       // ']'
	tokTagOpen                         // '<'
	tokTagClose                        // '>'
	tokClosingTagOpen                  // "</"
	tokSemicolon                       // ';'
	tokColon                           // ':'
	tokComment                         // '#' ... end of line
	tokWord                            // an unquoted run of text
	tokQuote                           // a "..." quoted run of text
	tokWhitespace                      // a run of whitespace
	tokEnd                             // end of stream
)

func (k tokenKind) String() string {
	switch k {
	case tokBracketOpen:
		return "BracketOpen"
	case tokBracketClose:
		return "BracketClose"
	case tokListOpen:
		return "ListOpen"
	case tokListClose:
		return "ListClose"
	case tokTagOpen:
		return "TagOpen"
	case tokTagClose:
		return "TagClose"
	case tokClosingTagOpen:
		return "ClosingTagOpen"
	case tokSemicolon:
		return "Semicolon"
	case tokColon:
		return "Colon"
	case tokComment:
		return "Comment"
	case tokWord:
		return "Word"
	case tokQuote:
		return "Quote"
	case tokWhitespace:
		return "Whitespace"
	case tokEnd:
		return "End"
	}
	return "Unknown"
}

// token is a single lexical token. Word and Quote tokens carry their text;
// every other kind is fully described by its kind and position.
type token struct {
	kind tokenKind
	text string
	pos  Position
}
