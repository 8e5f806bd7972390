// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"
)

// parseRegister reads a register name of the current instruction set.
// A trailing apostrophe is part of the name when the set has such a
// register (AF').
func (a *assembler) parseRegister() (string, bool) {
	save := a.next
	name, ok := a.parseName()
	if !ok {
		return "", false
	}
	if a.next.startsWithChar('\'') && a.set.LookupRegister(name+"'") {
		a.next = a.next.consume(1)
		return name + "'", true
	}
	if !a.set.LookupRegister(name) {
		a.next = save
		return "", false
	}
	return name, true
}

// octal renders a value in the operand pattern's numeral form.
func octal(v int32) string {
	return fmt.Sprintf("%oQ", uint32(v))
}

// parseOperand reads an instruction's operands and reduces them to a
// pattern comparable with the instruction set's operand patterns:
// registers keep their names, and every expression becomes an octal
// numeral.
func (a *assembler) parseOperand() (string, bool) {
	var b strings.Builder
	for a.parseSpace() {
		restart := a.next
		if a.next.startsWith(endOfStatement) {
			break
		}

		switch {
		case a.parseRegisterInto(&b):
			// REG

		case !a.parseChar('('):
			v, ok := a.parseExpression()
			if !ok {
				return "", false
			}
			b.WriteString(octal(v))

		default:
			if reg, ok := a.parseRegister(); ok {
				if !a.parseSpace() {
					return "", false
				}
				if a.next.startsWithAny("+-") {
					v, ok := a.parseExpression()
					if !ok {
						return "", false
					}
					if !a.parseChar(')') {
						a.addError(SyntaxError)
						return "", false
					}
					fmt.Fprintf(&b, "(%s+%s)", reg, octal(v))
				} else {
					if !a.parseChar(')') {
						a.addError(SyntaxError)
						return "", false
					}
					fmt.Fprintf(&b, "(%s)", reg)
				}
				break
			}

			v, ok := a.parseExpression()
			if !ok {
				return "", false
			}
			if !a.parseChar(')') {
				a.addError(SyntaxError)
				return "", false
			}

			// A parenthesized expression followed by more expression
			// text, as in (1+2)*3, is a plain expression.
			if a.parseSpace() && !a.next.startsWithAny(",;!") {
				a.next = restart
				if v, ok = a.parseExpression(); !ok {
					return "", false
				}
				b.WriteString(octal(v))
			} else {
				fmt.Fprintf(&b, "(%s)", octal(v))
			}
		}

		if a.parseSpace() && a.parseChar(',') {
			b.WriteByte(',')
			continue
		}
		break
	}
	return b.String(), true
}

func (a *assembler) parseRegisterInto(b *strings.Builder) bool {
	reg, ok := a.parseRegister()
	if ok {
		b.WriteString(reg)
	}
	return ok
}

// operandValues extracts the numeric values of a parsed operand at the
// positions where the matching code's pattern holds a ':'.
func operandValues(operand, pattern string) []int32 {
	var values []int32
	i, j := 0, 0
	for i < len(operand) && j < len(pattern) {
		if decimal(operand[i]) {
			v, n := parseNumeral(operand[i:])
			n = max(n, 1)
			switch {
			case pattern[j] == ':':
				values = append(values, v)
				j++
			case decimal(pattern[j]):
				j += numeralLen(pattern[j:])
			default:
				j++
			}
			i += n
			continue
		}
		i++
		j++
	}
	return values
}

// generateCode emits the bytes of a code template, substituting operand
// values. Values are emitted before they are range checked, so an
// overflowing instruction keeps its length.
func (a *assembler) generateCode(code *Code, operand string) bool {
	values := operandValues(operand, code.Operand)
	value := func(n int) (int32, bool) {
		if n < len(values) {
			return values[n], true
		}
		return 0, false
	}

	f := code.Format
	for len(f) > 0 {
		if f[0] != '%' {
			if len(f) < 2 || !hexadecimal(f[0]) || !hexadecimal(f[1]) {
				a.addError(UnknownError)
				return false
			}
			a.emitByte(hexToByte(f))
			f = f[2:]
			continue
		}

		if len(f) < 2 {
			a.addError(UnknownError)
			return false
		}
		p := f[1]
		f = f[2:]

		switch p {
		case '1', '5', '6':
			v, ok := value(0)
			if !ok {
				a.addError(UnknownError)
				return false
			}
			a.emitByte(byte(v))
			if !isChar(v) {
				a.addError(Overflow)
				return false
			}

		case '2', '4':
			v, ok := value(0)
			if !ok {
				a.addError(UnknownError)
				return false
			}
			a.emitWord(v)
			if !isShort(v) {
				a.addError(Overflow)
				return false
			}

		case '3':
			v, ok := value(0)
			if !ok {
				a.addError(UnknownError)
				return false
			}
			d := v - (a.current + 1)
			a.emitByte(byte(d))
			if d < -128 || d > 127 {
				a.addError(Overflow)
				return false
			}

		case '7':
			v, ok := value(1)
			if !ok {
				a.addError(UnknownError)
				return false
			}
			a.emitByte(byte(v))
			if !isChar(v) {
				a.addError(Overflow)
				return false
			}

		default:
			a.addError(UnknownError)
			return false
		}
	}
	return true
}
