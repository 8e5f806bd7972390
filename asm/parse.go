// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "strings"

// The parse functions below work on the assembler's cursor, a.next. Each
// one leaves the cursor where it was when it fails.

// parseSpace skips whitespace and reports whether anything remains on
// the line.
func (a *assembler) parseSpace() bool {
	l := a.next.consumeWhitespace()
	if l.isEmpty() {
		return false
	}
	a.next = l
	return true
}

// parseChar consumes c if it is the character under the cursor.
func (a *assembler) parseChar(c byte) bool {
	if !a.next.startsWithChar(c) {
		return false
	}
	a.next = a.next.consume(1)
	return true
}

// parseName reads a name: a letter or '.', followed by letters, digits,
// '.' and '$'. The '$' characters are dropped, the name is upper-cased
// and only its first 16 characters are significant.
func (a *assembler) parseName() (string, bool) {
	save := a.next
	if !a.parseSpace() || !a.next.startsWith(nameStartChar) {
		a.next = save
		return "", false
	}

	var word fstring
	word, a.next = a.next.consumeWhile(nameChar)
	return normalizeName(word.str), true
}

// normalizeName uppercases a name, drops its '$' separators and keeps
// its first maxNameLen characters.
func normalizeName(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '$' {
			continue
		}
		if b.Len() < maxNameLen {
			b.WriteByte(toUpper(c))
		}
	}
	return b.String()
}

// parseNumber reads a numeral. See parseNumeral for the accepted forms.
func (a *assembler) parseNumber() (int32, bool) {
	save := a.next
	if !a.parseSpace() {
		return 0, false
	}
	v, n := scanNumeral(a.next.str, a.env.HexMode)
	if n == 0 {
		a.next = save
		return 0, false
	}
	a.next = a.next.consume(n)
	return v, true
}

// parseString reads a string delimited by single or double quotes.
func (a *assembler) parseString() (string, bool) {
	save := a.next
	if !a.parseSpace() || !a.next.startsWith(stringQuote) {
		a.next = save
		return "", false
	}

	q := a.next.str[0]
	l := a.next.consume(1)
	end := strings.IndexByte(l.str, q)
	if end < 0 {
		a.next = save
		return "", false
	}
	a.next = l.consume(end + 1)
	return l.str[:end], true
}

// parseByte reads exactly two hexadecimal digits.
func (a *assembler) parseByte() (byte, bool) {
	if len(a.next.str) < 2 || !hexadecimal(a.next.str[0]) || !hexadecimal(a.next.str[1]) {
		return 0, false
	}
	b := hexToByte(a.next.str)
	a.next = a.next.consume(2)
	return b, true
}

// skipStatement advances the cursor to the next statement separator,
// comment or end of line.
func (a *assembler) skipStatement() {
	a.next = a.next.consume(a.next.scanUntil(endOfStatement))
}
