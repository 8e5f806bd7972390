// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// An fstring is a string that keeps track of its position within the
// source line from which it was read. The assembler's parse cursor is an
// fstring; saving a copy and assigning it back restores the cursor.
type fstring struct {
	row  int    // 1-based line number of the source line
	str  string // the unparsed remainder of the line
	full string // the full line as originally read
}

func newFstring(row int, str string) fstring {
	return fstring{row, str, str}
}

func (l *fstring) String() string {
	return l.str
}

// offset returns the 0-based byte offset of the cursor within the full
// line.
func (l *fstring) offset() int {
	return len(l.full) - len(l.str)
}

func (l fstring) consume(n int) fstring {
	return fstring{l.row, l.str[n:], l.full}
}

func (l fstring) trunc(n int) fstring {
	return fstring{l.row, l.str[:n], l.full}
}

func (l *fstring) isEmpty() bool {
	return len(l.str) == 0
}

// peek returns the character under the cursor, or 0 at end of line.
func (l *fstring) peek() byte {
	if len(l.str) == 0 {
		return 0
	}
	return l.str[0]
}

func (l *fstring) startsWith(fn func(c byte) bool) bool {
	return len(l.str) > 0 && fn(l.str[0])
}

func (l *fstring) startsWithChar(c byte) bool {
	return len(l.str) > 0 && l.str[0] == c
}

func (l *fstring) startsWithAny(set string) bool {
	if len(l.str) == 0 {
		return false
	}
	for i := 0; i < len(set); i++ {
		if l.str[0] == set[i] {
			return true
		}
	}
	return false
}

func (l fstring) consumeWhitespace() fstring {
	return l.consume(l.scanWhile(whitespace))
}

func (l *fstring) scanWhile(fn func(c byte) bool) int {
	i := 0
	for ; i < len(l.str) && fn(l.str[i]); i++ {
	}
	return i
}

func (l *fstring) scanUntil(fn func(c byte) bool) int {
	i := 0
	for ; i < len(l.str) && !fn(l.str[i]); i++ {
	}
	return i
}

func (l *fstring) consumeWhile(fn func(c byte) bool) (consumed, remain fstring) {
	i := l.scanWhile(fn)
	consumed, remain = l.trunc(i), l.consume(i)
	return
}

func (l *fstring) consumeUntil(fn func(c byte) bool) (consumed, remain fstring) {
	i := l.scanUntil(fn)
	consumed, remain = l.trunc(i), l.consume(i)
	return
}

//
// character helper functions
//

func whitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func alpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func decimal(c byte) bool {
	return (c >= '0' && c <= '9')
}

func alnum(c byte) bool {
	return alpha(c) || decimal(c)
}

func hexadecimal(c byte) bool {
	return decimal(c) || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}

func nameStartChar(c byte) bool {
	return alpha(c) || c == '.'
}

func nameChar(c byte) bool {
	return alnum(c) || c == '.' || c == '$'
}

func stringQuote(c byte) bool {
	return c == '"' || c == '\''
}

// endOfStatement reports whether c terminates a statement: a comment
// (';') or a statement separator ('!').
func endOfStatement(c byte) bool {
	return c == ';' || c == '!'
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
