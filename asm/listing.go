// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"fmt"
	"io"
)

// A listMode selects the columns shown for a listed source line.
type listMode byte

const (
	listNone listMode = iota
	listSource
	listSourceAddress
	listSourceValue
	listSourceAddressCode
)

const (
	linesPerPage = 55
	maxListCode  = 256 // code bytes kept per listed line
)

// A listing holds the per-line listing state and, when a list file was
// requested, the writer the listing goes to.
type listing struct {
	w     *bufio.Writer
	c     io.Closer
	title string

	mode       listMode
	address    int32
	lineNumber int
	code       []byte

	page      int
	topOfPage int
}

// reset prepares the listing state for a new source line.
func (l *listing) reset(address int32, lineNumber int) {
	l.mode = listSource
	l.address = address
	l.lineNumber = lineNumber
	l.code = l.code[:0]
}

// record notes an emitted byte for the listing of the current line.
func (l *listing) record(b byte) {
	if len(l.code) < maxListCode {
		l.code = append(l.code, b)
	}
}

func (l *listing) enabled() bool {
	return l.w != nil
}

// topOfPageHeader writes a page header. The first header of a pass has
// no form feed and restarts the page count.
func (l *listing) topOfPageHeader(formFeed bool) {
	ff := ""
	if formFeed {
		ff = "\f"
	} else {
		l.page = 1
	}
	l.topOfPage = linesPerPage
	fmt.Fprintf(l.w, "%s\n %-40s USIM ASSEMBLER      PAGE %3d\n\n\n", ff, l.title, l.page)
	l.page++
}

// listLine writes the listing of one source line.
func (l *listing) listLine(errs, source string) {
	if l.mode == listNone {
		return
	}

	if l.topOfPage == 0 {
		l.topOfPageHeader(false)
	} else {
		l.topOfPage--
		if l.topOfPage == 0 {
			l.topOfPageHeader(true)
		}
	}

	switch l.mode {
	case listSource:
		fmt.Fprintf(l.w, "%-6s       ", errs)
	case listSourceValue:
		fmt.Fprintf(l.w, "%-6s %04X= ", errs, l.address&0xffff)
	default:
		fmt.Fprintf(l.w, "%-6s %04X  ", errs, l.address&0xffff)
	}

	if l.mode != listSourceAddressCode {
		fmt.Fprintf(l.w, "%9s%4d  %s\n", "", l.lineNumber, source)
		return
	}

	n := min(len(l.code), 4)
	fmt.Fprintf(l.w, "%-9s%4d  %s\n", hexBytes(l.code[:n]), l.lineNumber, source)

	for base := 4; base < len(l.code); base += 4 {
		l.topOfPage--
		if l.topOfPage == 0 {
			l.topOfPageHeader(true)
		}
		end := min(base+4, len(l.code))
		fmt.Fprintf(l.w, "%6s %04X  %s\n", "", (l.address+int32(base))&0xffff, hexBytes(l.code[base:end]))
	}
}

// listSymbols writes the symbol table, four symbols to a line.
func (l *listing) listSymbols(t *symbolTable) {
	page, line, count := 1, linesPerPage, 1
	for s := range t.all() {
		if line >= linesPerPage {
			fmt.Fprintf(l.w, "\f\n %-40s SYMBOL TABLE        PAGE %3d\n\n\n", l.title, page)
			page++
			line = 0
		}
		fmt.Fprintf(l.w, "%16s = %04X  ", s.Name, uint16(s.Value))
		if count >= 4 {
			line++
			count = 0
			fmt.Fprintln(l.w)
		}
		count++
	}
}

func (l *listing) close() error {
	if l.w == nil {
		return nil
	}
	err := l.w.Flush()
	if cerr := l.c.Close(); err == nil {
		err = cerr
	}
	l.w, l.c = nil, nil
	return err
}

// hexBytes renders bytes as adjacent hex pairs.
func hexBytes(b []byte) string {
	s := make([]byte, 0, len(b)*2)
	for _, v := range b {
		s = append(s, hex[v>>4], hex[v&0x0f])
	}
	return string(s)
}
