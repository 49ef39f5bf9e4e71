// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package khi implements the lexer, parser, and document model for the khi
// structured data language: a syntax sitting between markup (tagged
// elements with attributes) and data notation (dictionaries, lists, tuples,
// text).
package khi

import "fmt"

// Position identifies a location in a document.
//
// Index counts code points from the start of the document (0's based).
// Line and Column are 1's based; Column resets to 1 after every line
// advance ('\n').
type Position struct {
	Index  int
	Line   int
	Column int
}

// String renders p as "line:column", suitable for embedding in a
// diagnostic message.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// charCursor walks a rune sequence exposing the current and next rune with
// O(1) one-rune lookahead, and the Position of the current rune.
type charCursor struct {
	runes  []rune
	n      int
	index  int
	line   int
	column int
}

func newCharCursor(input string) *charCursor {
	return &charCursor{runes: []rune(input), n: 0, index: 0, line: 1, column: 1}
}

// c returns the current rune, or (0, false) at end of stream.
func (cc *charCursor) c() (rune, bool) {
	if cc.n >= len(cc.runes) {
		return 0, false
	}
	return cc.runes[cc.n], true
}

// cn returns the rune following the current one, or (0, false) if there is
// none.
func (cc *charCursor) cn() (rune, bool) {
	if cc.n+1 >= len(cc.runes) {
		return 0, false
	}
	return cc.runes[cc.n+1], true
}

func (cc *charCursor) position() Position {
	return Position{Index: cc.index, Line: cc.line, Column: cc.column}
}

// advance consumes the current rune, shifting cn into c, and updates the
// position, resetting the column after a newline.
func (cc *charCursor) advance() {
	if ch, ok := cc.c(); ok {
		if ch == '\n' {
			cc.line++
			cc.column = 1
		} else {
			cc.column++
		}
		cc.index++
	}
	cc.n++
}
