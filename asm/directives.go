// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// A directiveCode identifies an assembler directive.
type directiveCode byte

const (
	dir8080 directiveCode = iota
	dirDB
	dirDS
	dirDW
	dirELSE
	dirELSEIF
	dirEND
	dirENDIF
	dirEQU
	dirIF
	dirOPCODES
	dirORG
	dirSET
	dirSOURCE
	dirTITLE
	dirZ80
)

type directive struct {
	name string
	code directiveCode
}

var directives = map[string]directive{}

func init() {
	for name, code := range map[string]directiveCode{
		".8080":    dir8080,
		".DB":      dirDB,
		".DEFB":    dirDB,
		".DEFS":    dirDS,
		".DEFW":    dirDW,
		".DS":      dirDS,
		".DW":      dirDW,
		".ELSE":    dirELSE,
		".ELSEIF":  dirELSEIF,
		".END":     dirEND,
		".ENDIF":   dirENDIF,
		".EQU":     dirEQU,
		".IF":      dirIF,
		".OPCODES": dirOPCODES,
		".ORG":     dirORG,
		".SET":     dirSET,
		".SOURCE":  dirSOURCE,
		".TITLE":   dirTITLE,
		".Z80":     dirZ80,
		"DB":       dirDB,
		"DEFB":     dirDB,
		"DEFS":     dirDS,
		"DEFW":     dirDW,
		"DS":       dirDS,
		"DW":       dirDW,
		"ELSE":     dirELSE,
		"ELSEIF":   dirELSEIF,
		"END":      dirEND,
		"ENDIF":    dirENDIF,
		"EQU":      dirEQU,
		"IF":       dirIF,
		"MACLIB":   dirSOURCE,
		"ORG":      dirORG,
		"SET":      dirSET,
		"TITLE":    dirTITLE,
	} {
		directives[name] = directive{name, code}
	}
}

func lookupDirective(name string) *directive {
	if d, ok := directives[name]; ok {
		return &d
	}
	return nil
}

// parseDS reserves uninitialized storage.
func (a *assembler) parseDS() bool {
	v, ok := a.parseExpression()
	if !ok {
		return false
	}
	if !isShort(v) || v < 0 {
		a.addError(Overflow)
		return false
	}
	a.current = (a.current + v) & 0xffff
	return true
}

// parseORG sets the current address.
func (a *assembler) parseORG() bool {
	v, ok := a.parseExpression()
	if !ok {
		return false
	}
	if !isShort(v) {
		a.addError(Overflow)
		return false
	}
	a.current = v & 0xffff
	return true
}

// The conditional directives track the nesting depth and, in ifFalse,
// the depth at which assembly was disabled (zero when enabled).

func (a *assembler) parseIF() bool {
	v, ok := a.parseExpression()
	if !ok {
		return false
	}
	a.ifDepth++
	if a.ifFalse == 0 && v == 0 {
		a.ifFalse = a.ifDepth
	}
	return true
}

func (a *assembler) parseELSE() bool {
	if a.ifDepth == 0 {
		a.addError(SyntaxError)
		return false
	}
	switch a.ifFalse {
	case 0:
		a.ifFalse = a.ifDepth
	case a.ifDepth:
		a.ifFalse = 0
	}
	return true
}

func (a *assembler) parseELSEIF() bool {
	v, ok := a.parseExpression()
	if !ok {
		return false
	}
	switch a.ifFalse {
	case 0:
		a.ifFalse = a.ifDepth
	case a.ifDepth:
		if v != 0 {
			a.ifFalse = 0
		}
	}
	return true
}

func (a *assembler) parseENDIF() bool {
	if a.ifDepth == 0 {
		a.addError(SyntaxError)
		return false
	}
	if a.ifFalse == a.ifDepth {
		a.ifFalse = 0
	}
	a.ifDepth--
	return true
}

// parseSET assigns a value to a SET symbol.
func (a *assembler) parseSET(sym *Symbol) bool {
	if sym == nil {
		a.addError(SyntaxError)
		return false
	}
	v, ok := a.parseExpression()
	if !ok {
		return false
	}
	if !isShort(v) {
		a.addError(Overflow)
		return false
	}
	if sym.State == Undefined {
		sym.State = Set
	}
	if sym.State != Set {
		a.addError(UnknownError)
		return false
	}
	sym.Value = v
	return true
}

// parseEQU defines an EQU symbol. Redefining it with a different value
// is a phase error.
func (a *assembler) parseEQU(sym *Symbol) bool {
	if sym == nil {
		a.addError(SyntaxError)
		return false
	}
	v, ok := a.parseExpression()
	if !ok {
		return false
	}
	if !isShort(v) {
		a.addError(Overflow)
		return false
	}
	if sym.State == Undefined {
		sym.State = Equ
		sym.Value = v
	}
	if sym.State != Equ {
		a.addError(UnknownError)
		return false
	}
	if sym.Value != v {
		a.addError(PhaseError)
		return false
	}
	return true
}

// parseStringOrName reads a directive argument given either as a quoted
// string or as a bare name.
func (a *assembler) parseStringOrName() (string, bool) {
	if s, ok := a.parseString(); ok {
		return s, true
	}
	return a.parseName()
}

// parseOPCODES writes the current instruction set to a file as assembler
// source, one line per code.
func (a *assembler) parseOPCODES() bool {
	file, ok := a.parseStringOrName()
	if !ok {
		a.addError(SyntaxError)
		return false
	}
	if !a.final {
		return true
	}

	fmt.Fprintf(a.out, "GENERATING %s\n", file)
	if err := writeOpcodes(file, a.set); err != nil {
		a.addError(UnknownError)
		return false
	}
	return true
}

func writeOpcodes(path string, set *InstructionSet) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%8s.%s\n", "", set.Variant)
	for _, c := range set.Operations() {
		operand := strings.ReplaceAll(c.Operand, ":", "1")
		fmt.Fprintf(w, "%8s%-8s%-8s; %s\n", "", c.Opcode, operand, templateText(c.Format))
	}
	fmt.Fprintf(w, "%8sEND\n", "")
	return w.Flush()
}

// templateText renders a code template with NN in place of each byte
// value and NNNN in place of each word value.
func templateText(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 == len(format) {
			b.WriteByte(format[i])
			continue
		}
		i++
		switch format[i] {
		case '2', '4':
			b.WriteString("NNNN")
		default:
			b.WriteString("NN")
		}
	}
	return b.String()
}

// parseTITLE sets the listing title.
func (a *assembler) parseTITLE() bool {
	title, ok := a.parseStringOrName()
	if !ok {
		a.addError(SyntaxError)
		return false
	}
	a.list.title = title
	return true
}

// parseSOURCE continues assembly with the lines of another file.
func (a *assembler) parseSOURCE() bool {
	file, ok := a.parseStringOrName()
	if !ok {
		a.addError(SyntaxError)
		return false
	}
	if err := a.sources.push(file); err != nil {
		a.addError(UnknownError)
		return false
	}
	return true
}

// parseEND ends the source and records the optional entry address.
func (a *assembler) parseEND() bool {
	save := a.next
	a.sourceEnd = true
	a.entry = 0
	if a.parseSpace() && !a.next.startsWith(endOfStatement) {
		v, ok := a.parseExpression()
		if !ok {
			a.next = save
			return false
		}
		if !isShort(v) {
			a.addError(Overflow)
			a.next = save
			return false
		}
		a.entry = uint16(v)
	}
	return true
}

// parseDB emits bytes given as strings or byte expressions.
func (a *assembler) parseDB() bool {
	for {
		if s, ok := a.parseString(); ok {
			for i := 0; i < len(s); i++ {
				a.emitByte(s[i])
			}
		} else {
			v, ok := a.parseExpression()
			if !ok {
				return false
			}
			if !isChar(v) {
				a.addError(Overflow)
				return false
			}
			a.emitByte(byte(v))
		}
		if !a.parseSpace() || !a.parseChar(',') {
			return true
		}
	}
}

// parseDW emits little-endian words.
func (a *assembler) parseDW() bool {
	for {
		v, ok := a.parseExpression()
		if !ok {
			return false
		}
		if !isShort(v) {
			a.addError(Overflow)
			return false
		}
		a.emitWord(v)
		if !a.parseSpace() || !a.parseChar(',') {
			return true
		}
	}
}
