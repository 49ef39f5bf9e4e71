package khi

// parser is a two-token-lookahead recursive-descent reader over a token
// slice. t is the current token, t2 the one after it; advance shifts both
// forward. The token slice always ends with a tokEnd token, so reading
// past the end keeps returning it rather than panicking.
type parser struct {
	tokens []*token
	idx    int
	t, t2  *token
}

func newParser(tokens []*token) *parser {
	p := &parser{tokens: tokens}
	p.refresh()
	return p
}

func (p *parser) at(i int) *token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) refresh() {
	p.t = p.at(p.idx)
	p.t2 = p.at(p.idx + 1)
}

func (p *parser) advance() {
	p.idx++
	p.refresh()
}

// skipTo repositions the parser so that t is the token at index i.
func (p *parser) skipTo(i int) {
	p.idx = i
	p.refresh()
}

func (p *parser) isWhitespace() bool {
	return p.t.kind == tokWhitespace || p.t.kind == tokComment
}

func (p *parser) skipWhitespace() {
	for p.isWhitespace() {
		p.advance()
	}
}

// significantAfter scans forward from index i, skipping Whitespace and
// Comment tokens, and returns the first significant token found together
// with its index. It does not mutate the parser's position.
func (p *parser) significantAfter(i int) (*token, int) {
	for {
		t := p.at(i)
		if t.kind != tokWhitespace && t.kind != tokComment {
			return t, i
		}
		i++
	}
}

// ParseValueString parses s as a value document: a single juxtaposition of
// terms, collapsed per the Compound construction rule.
func ParseValueString(s string) (Value, *ParseError) {
	tokens, lerr := tokenize(s)
	if lerr != nil {
		return nil, lexErrorToParseError(lerr)
	}
	p := newParser(tokens)
	value, perr := p.parseValue()
	if perr != nil {
		return nil, perr
	}
	if p.t.kind != tokEnd {
		return nil, &ParseError{Kind: ErrExpectedEnd, At: p.t.pos}
	}
	return value, nil
}

// ParseDictionaryString parses s as a dictionary document: a sequence of
// "key" / "key: value" entries with no surrounding "{ }".
func ParseDictionaryString(s string) (*Dictionary, *ParseError) {
	tokens, lerr := tokenize(s)
	if lerr != nil {
		return nil, lexErrorToParseError(lerr)
	}
	p := newParser(tokens)
	dict, perr := p.parseDictionary()
	if perr != nil {
		return nil, perr
	}
	if p.t.kind != tokEnd {
		return nil, &ParseError{Kind: ErrExpectedEnd, At: p.t.pos}
	}
	return dict, nil
}

// ParseListString parses s as a list document: a sequence of ";"-separated
// elements with no surrounding "[ ]".
func ParseListString(s string) (*List, *ParseError) {
	tokens, lerr := tokenize(s)
	if lerr != nil {
		return nil, lexErrorToParseError(lerr)
	}
	p := newParser(tokens)
	list, perr := p.parseList()
	if perr != nil {
		return nil, perr
	}
	if p.t.kind != tokEnd {
		return nil, &ParseError{Kind: ErrExpectedEnd, At: p.t.pos}
	}
	return list, nil
}

// parseValue parses a juxtaposition of terms up to (but not consuming) a
// terminating token, applying the Compound construction rule.
func (p *parser) parseValue() (Value, *ParseError) {
	var terms []Value
	var whitespace []bool
	from := p.t.pos
	for {
		p.skipWhitespace()
		switch p.t.kind {
		case tokWord:
			termFrom := p.t.pos
			text := p.t.text
			to := p.t2.pos
			ws := false
		wordRun:
			for {
				p.advance()
				switch p.t.kind {
				case tokComment, tokWhitespace:
					ws = true
				case tokWord:
					text += " " + p.t.text
					to = p.t2.pos
					ws = false
				default:
					break wordRun
				}
			}
			terms = append(terms, NewText(text, termFrom, to))
			whitespace = append(whitespace, ws)
		case tokQuote:
			termFrom := p.t.pos
			text := p.t.text
			p.advance()
			to := p.t.pos
			ws := p.isWhitespace()
			terms = append(terms, NewText(text, termFrom, to))
			whitespace = append(whitespace, ws)
		case tokBracketOpen:
			term, perr := p.parseBracketGroup()
			if perr != nil {
				return nil, perr
			}
			ws := p.isWhitespace()
			terms = append(terms, term)
			whitespace = append(whitespace, ws)
		case tokListOpen:
			p.advance()
			list, perr := p.parseList()
			if perr != nil {
				return nil, perr
			}
			if p.t.kind != tokListClose {
				return nil, &ParseError{Kind: ErrExpectedListClosing, At: p.t.pos}
			}
			p.advance()
			ws := p.isWhitespace()
			terms = append(terms, list)
			whitespace = append(whitespace, ws)
		case tokTagOpen:
			tag, perr := p.parseTaggedValue()
			if perr != nil {
				return nil, perr
			}
			ws := p.isWhitespace()
			terms = append(terms, tag)
			whitespace = append(whitespace, ws)
		default:
			to := p.t.pos
			if len(whitespace) > 0 {
				whitespace = whitespace[:len(whitespace)-1]
			}
			return NewCompoundOrCollapse(terms, whitespace, from, to), nil
		}
	}
}

// parseBracketGroup parses a "{ ... }" group, positioned at the opening
// '{', disambiguating between a dictionary and a plain value by looking
// past the first key for ":" or ";".
func (p *parser) parseBracketGroup() (Value, *ParseError) {
	p.advance() // consume '{'
	p.skipWhitespace()
	var result Value
	var perr *ParseError
	switch p.t.kind {
	case tokListOpen, tokBracketOpen, tokTagOpen:
		result, perr = p.parseValue()
	case tokColon:
		result, perr = p.parseDictionary()
	case tokWord, tokQuote:
		sig, _ := p.significantAfter(p.idx + 1)
		if sig.kind == tokSemicolon || sig.kind == tokColon {
			result, perr = p.parseDictionary()
		} else {
			result, perr = p.parseValue()
		}
	default:
		at := p.t.pos
		result = NewNilValue(at, at)
	}
	if perr != nil {
		return nil, perr
	}
	if p.t.kind != tokBracketClose {
		return nil, &ParseError{Kind: ErrExpectedClosingBracket, At: p.t.pos}
	}
	p.advance()
	return result, nil
}

// parseList parses the ";"-separated contents of a list, positioned at the
// first element (the opening '[' already consumed by the caller).
func (p *parser) parseList() (*List, *ParseError) {
	var elements []Value
	from := p.t.pos
	for {
		elementFrom := p.t.pos
		p.skipWhitespace()
		switch p.t.kind {
		case tokBracketOpen, tokListOpen, tokTagOpen, tokWord, tokQuote:
			value, perr := p.parseValue()
			if perr != nil {
				return nil, perr
			}
			elements = append(elements, value)
			p.skipWhitespace()
			if p.t.kind == tokSemicolon {
				p.advance()
				continue
			}
			to := p.t.pos
			return NewList(elements, from, to), nil
		case tokSemicolon:
			to := p.t.pos
			elements = append(elements, NewNilValue(elementFrom, to))
			p.advance()
		case tokColon:
			p.advance()
		default:
			to := p.t.pos
			return NewList(elements, from, to), nil
		}
	}
}

// parseDictionary parses a sequence of "key" / "key: value" entries,
// positioned at the first entry.
func (p *parser) parseDictionary() (*Dictionary, *ParseError) {
	from := p.t.pos
	d := NewDictionary(from, from)
	for {
		p.skipWhitespace()
		var key string
		switch p.t.kind {
		case tokWord, tokQuote:
			key = p.t.text
		case tokColon:
			p.advance()
			continue
		default:
			d.to = p.t.pos
			return d, nil
		}
		p.advance()
		p.skipWhitespace()
		switch p.t.kind {
		case tokColon:
			p.advance()
		case tokSemicolon:
			d.Set(key, NewNilValue(p.t.pos, p.t.pos))
			p.advance()
			continue
		default:
			return nil, &ParseError{Kind: ErrExpectedEntrySeparator, At: p.t.pos}
		}
		p.skipWhitespace()
		value, perr := p.parseValue()
		if perr != nil {
			return nil, perr
		}
		d.Set(key, value)
		if p.t.kind == tokSemicolon {
			p.advance()
			continue
		}
		d.to = p.t.pos
		return d, nil
	}
}

// parseTaggedValue parses a tagged value starting at the current TagOpen
// token, dispatching to Form A (inline arguments) or Form B (body with an
// optionally-matching close) on whether a ':' follows the tag name.
func (p *parser) parseTaggedValue() (*Tagged, *ParseError) {
	from := p.t.pos
	if p.t.kind != tokTagOpen {
		return nil, &ParseError{Kind: ErrExpectedOpeningAngularBracket, At: from}
	}
	p.advance()
	p.skipWhitespace()
	var name string
	switch p.t.kind {
	case tokWord, tokQuote:
		name = p.t.text
	default:
		return nil, &ParseError{Kind: ErrExpectedTagKey, At: p.t.pos}
	}
	p.advance()
	p.skipWhitespace()
	if p.t.kind == tokColon {
		p.advance()
		return p.parseTagFormB(name, from)
	}
	attrs, perr := p.parseAttributes()
	if perr != nil {
		return nil, perr
	}
	if p.t.kind != tokTagClose {
		return nil, &ParseError{Kind: ErrExpectedTagClosing, At: p.t.pos}
	}
	p.advance()
	return p.parseTagFormAArgs(name, attrs, from)
}

// parseTagHeader parses "name attrs >" having already consumed the
// opening '<', for a tag nested as a bare inline argument (no body, no
// further ": arg" chain of its own).
func (p *parser) parseTagHeader() (name string, attrs []Attribute, closeAt Position, perr *ParseError) {
	p.skipWhitespace()
	switch p.t.kind {
	case tokWord, tokQuote:
		name = p.t.text
	default:
		return "", nil, Position{}, &ParseError{Kind: ErrExpectedTagKey, At: p.t.pos}
	}
	p.advance()
	p.skipWhitespace()
	attrs, perr = p.parseAttributes()
	if perr != nil {
		return "", nil, Position{}, perr
	}
	if p.t.kind != tokTagClose {
		return "", nil, Position{}, &ParseError{Kind: ErrExpectedTagClosing, At: p.t.pos}
	}
	closeAt = p.t.pos
	p.advance()
	return name, attrs, closeAt, nil
}

// parseTagFormB parses the "attrs > body </ name? >" suffix of a Form-B tag,
// the opening "< name :" having already been consumed.
func (p *parser) parseTagFormB(name string, from Position) (*Tagged, *ParseError) {
	attrs, perr := p.parseAttributes()
	if perr != nil {
		return nil, perr
	}
	if p.t.kind != tokTagClose {
		return nil, &ParseError{Kind: ErrExpectedTagClosing, At: p.t.pos}
	}
	p.advance()
	content, perr := p.parseValue()
	if perr != nil {
		return nil, perr
	}
	if p.t.kind != tokClosingTagOpen {
		return nil, &ParseError{Kind: ErrExpectedClosingTag, At: p.t.pos, OpenAt: from, OpenName: name}
	}
	closingAt := p.t.pos
	p.advance()
	p.skipWhitespace()
	switch p.t.kind {
	case tokTagClose:
		to := p.t.pos
		p.advance()
		return &Tagged{valueBase: valueBase{from, to}, Name: name, Attributes: attrs, Inner: content}, nil
	case tokWord, tokQuote:
		closeName := p.t.text
		if closeName != name {
			return nil, &ParseError{Kind: ErrMismatchedClosingTag, OpenAt: from, OpenName: name, CloseAt: closingAt, CloseName: closeName}
		}
		p.advance()
		p.skipWhitespace()
		if p.t.kind != tokTagClose {
			return nil, &ParseError{Kind: ErrExpectedTagClosing, At: p.t.pos}
		}
		to := p.t.pos
		p.advance()
		return &Tagged{valueBase: valueBase{from, to}, Name: name, Attributes: attrs, Inner: content}, nil
	default:
		return nil, &ParseError{Kind: ErrExpectedTagClosing, At: p.t.pos}
	}
}

// parseTagFormAArgs parses the "(: arg)*" suffix of a Form-A tag, the
// opening "< name attrs >" having already been consumed.
func (p *parser) parseTagFormAArgs(name string, attrs []Attribute, from Position) (*Tagged, *ParseError) {
	var args []Value
	for {
		if p.t.kind != tokColon {
			to := p.t.pos
			return &Tagged{valueBase: valueBase{from, to}, Name: name, Attributes: attrs, Inner: NewTuple(args, from, to)}, nil
		}
		p.advance()
		switch p.t.kind {
		case tokWord, tokQuote:
			argFrom := p.t.pos
			text := p.t.text
			argTo := p.t2.pos
			args = append(args, NewText(text, argFrom, argTo))
			p.advance()
		case tokBracketOpen:
			arg, perr := p.parseBracketGroup()
			if perr != nil {
				return nil, perr
			}
			args = append(args, arg)
		case tokListOpen:
			p.advance()
			list, perr := p.parseList()
			if perr != nil {
				return nil, perr
			}
			if p.t.kind != tokListClose {
				return nil, &ParseError{Kind: ErrExpectedListClosing, At: p.t.pos}
			}
			p.advance()
			args = append(args, list)
		case tokTagOpen:
			tagOpenPos := p.t.pos
			sig, sigIdx := p.significantAfter(p.idx + 1)
			if sig.kind == tokTagClose {
				// Precedence escape "<>:<tag...>": the chained tag
				// consumes all remaining input of this argument position
				// and terminates the outer tag's argument list.
				p.skipTo(sigIdx)
				p.advance() // consume the inner '>'
				if p.t.kind != tokColon {
					return nil, &ParseError{Kind: ErrExpectedColonAfterPrecedenceOperator, At: p.t.pos}
				}
				p.advance()
				if p.t.kind != tokTagOpen {
					return nil, &ParseError{Kind: ErrExpectedTagAfterPrecedenceOperator, At: p.t.pos}
				}
				chained, perr := p.parseTaggedValue()
				if perr != nil {
					return nil, perr
				}
				args = append(args, chained)
				to := chained.to
				return &Tagged{valueBase: valueBase{from, to}, Name: name, Attributes: attrs, Inner: NewTuple(args, from, to)}, nil
			}
			p.advance() // consume the nested tag's opening '<'
			nestedName, nestedAttrs, nestedTo, perr := p.parseTagHeader()
			if perr != nil {
				return nil, perr
			}
			args = append(args, &Tagged{
				valueBase:  valueBase{tagOpenPos, nestedTo},
				Name:       nestedName,
				Attributes: nestedAttrs,
				Inner:      NewTuple(nil, nestedTo, nestedTo),
			})
		default:
			return nil, &ParseError{Kind: ErrExpectedTagArgument, At: p.t.pos}
		}
	}
}

// parseAttributes parses zero or more "key" / "key: value" attribute
// pairs, stopping at the first token that cannot start one.
func (p *parser) parseAttributes() ([]Attribute, *ParseError) {
	var attrs []Attribute
	p.skipWhitespace()
	for {
		var key string
		switch p.t.kind {
		case tokWord, tokQuote:
			key = p.t.text
		default:
			return attrs, nil
		}
		p.advance()
		p.skipWhitespace()
		if p.t.kind != tokColon {
			attrs = append(attrs, Attribute{Key: key, Value: nil})
			continue
		}
		p.advance()
		p.skipWhitespace()
		var value Value
		switch p.t.kind {
		case tokWord, tokQuote:
			textFrom := p.t.pos
			text := p.t.text
			textTo := p.t2.pos
			value = NewText(text, textFrom, textTo)
			p.advance()
		case tokBracketOpen:
			v, perr := p.parseBracketGroup()
			if perr != nil {
				return nil, perr
			}
			value = v
		case tokListOpen:
			p.advance()
			list, perr := p.parseList()
			if perr != nil {
				return nil, perr
			}
			if p.t.kind != tokListClose {
				return nil, &ParseError{Kind: ErrExpectedClosingSquare, At: p.t.pos}
			}
			p.advance()
			value = list
		case tokTagOpen:
			tag, perr := p.parseTaggedValue()
			if perr != nil {
				return nil, perr
			}
			value = tag
		default:
			return nil, &ParseError{Kind: ErrExpectedAttributeArgument, At: p.t.pos}
		}
		attrs = append(attrs, Attribute{Key: key, Value: value})
		p.skipWhitespace()
	}
}
