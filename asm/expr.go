// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// An operator is an expression operator. Its value doubles as its
// priority level: a term at level p is built from terms at level p+1.
type operator int

// Operators, lowest priority first.
const (
	binaryEQ operator = iota
	binaryNE
	binaryGT
	binaryGE
	binaryLE
	binaryLT
	binaryLogicalOR
	binaryLogicalAND
	binaryOR
	binaryXOR
	binaryAND
	binarySHR
	binarySHL
	binaryPlus
	binaryMinus
	binaryModulo
	binaryDivide
	binaryMultiply
	unaryHigh
	unaryLow
	unaryPlus
	unaryMinus
	unaryNot

	firstBinary    = binaryEQ
	binaryPriority = binaryMultiply
	firstUnary     = unaryHigh
	unaryPriority  = unaryNot
)

var wordOperators = map[string]operator{
	"SHL":  binarySHL,
	"SHR":  binarySHR,
	"AND":  binaryAND,
	"OR":   binaryOR,
	"XOR":  binaryXOR,
	"MOD":  binaryModulo,
	"GT":   binaryGT,
	"GE":   binaryGE,
	"LE":   binaryLE,
	"LT":   binaryLT,
	"EQ":   binaryEQ,
	"NE":   binaryNE,
	"NOT":  unaryNot,
	"HIGH": unaryHigh,
	"LOW":  unaryLow,
}

// parseOperator reads an operator and succeeds only if it belongs to
// the requested priority level.
func (a *assembler) parseOperator(priority operator) (op operator, ok bool) {
	save := a.next
	defer func() {
		if !ok {
			a.next = save
		}
	}()

	if !a.parseSpace() || a.next.startsWith(endOfStatement) {
		return 0, false
	}

	c := a.next.peek()
	a.next = a.next.consume(1)
	next := a.next.peek()
	follow := func(f byte) bool {
		if next == f {
			a.next = a.next.consume(1)
			return true
		}
		return false
	}

	switch c {
	case '+':
		op = unaryPlus
		if priority <= binaryPriority {
			op = binaryPlus
		}
	case '-':
		op = unaryMinus
		if priority <= binaryPriority {
			op = binaryMinus
		}
	case '~':
		op = unaryNot
	case '*':
		op = binaryMultiply
	case '/':
		op = binaryDivide
	case '%':
		op = binaryModulo
	case '^':
		op = binaryXOR
	case '&':
		op = binaryAND
		if follow('&') {
			op = binaryLogicalAND
		}
	case '|':
		op = binaryOR
		if follow('|') {
			op = binaryLogicalOR
		}
	case '=':
		follow('=')
		op = binaryEQ
	case '!':
		if !follow('=') {
			return 0, false
		}
		op = binaryNE
	case '>':
		switch {
		case follow('='):
			op = binaryGE
		case follow('>'):
			op = binarySHR
		default:
			op = binaryGT
		}
	case '<':
		switch {
		case follow('='):
			op = binaryLE
		case follow('<'):
			op = binarySHL
		default:
			op = binaryLT
		}
	default:
		a.next = save
		name, found := a.parseName()
		if !found {
			return 0, false
		}
		if op, found = wordOperators[name]; !found {
			return 0, false
		}
	}

	return op, op == priority
}

// parseTerm parses and evaluates the part of an expression at the given
// priority level.
func (a *assembler) parseTerm(priority operator) (result int32, ok bool) {
	save := a.next
	defer func() {
		if !ok {
			a.next = save
		}
	}()

	switch {
	case priority <= binaryPriority:
		if result, ok = a.parseTerm(priority + 1); !ok {
			return 0, false
		}
		for {
			op, found := a.parseOperator(priority)
			if !found {
				break
			}
			v, ok := a.parseTerm(priority + 1)
			if !ok {
				return 0, false
			}
			if result, ok = a.apply(op, result, v); !ok {
				a.addError(Overflow)
				return 0, false
			}
		}
		return result, true

	case priority <= unaryPriority:
		op, found := a.parseOperator(priority)
		if !found {
			return a.parseTerm(priority + 1)
		}
		if result, ok = a.parseTerm(firstUnary); !ok {
			return 0, false
		}
		switch op {
		case unaryHigh:
			result = (result >> 8) & 0xff
		case unaryLow:
			result &= 0xff
		case unaryMinus:
			result = -result
		case unaryNot:
			result = ^result
		}
		return result, true

	default:
		return a.parsePrimary()
	}
}

// parsePrimary parses a parenthesized expression, the current address
// '$', a symbol, a one or two character string, or a numeral.
func (a *assembler) parsePrimary() (int32, bool) {
	if !a.parseSpace() {
		return a.expressionError()
	}

	if a.parseChar('(') {
		v, ok := a.parseTerm(firstBinary)
		if !ok {
			return 0, false
		}
		if !a.parseSpace() || !a.parseChar(')') {
			return a.expressionError()
		}
		return v, true
	}

	if a.parseChar('$') {
		if a.calculate {
			return a.resolve("$")
		}
		return a.current, true
	}

	if name, ok := a.parseName(); ok {
		if a.calculate {
			return a.resolve(name)
		}
		sym := a.symbols.lookup(name)
		if sym.State == Undefined && a.final {
			return a.expressionError()
		}
		return sym.Value, true
	}

	if s, ok := a.parseString(); ok {
		switch len(s) {
		case 1:
			return int32(s[0]), true
		case 2:
			return int32(s[0])<<8 | int32(s[1]), true
		default:
			return a.expressionError()
		}
	}

	if v, ok := a.parseNumber(); ok {
		return v, true
	}
	return a.expressionError()
}

// resolve looks up a name while evaluating outside of an assembly. In hex
// mode a name made only of hex digits, with an optional H suffix, is a
// numeral.
func (a *assembler) resolve(name string) (int32, bool) {
	if a.env.Resolve != nil {
		if v, ok := a.env.Resolve(name); ok {
			return v, true
		}
	}
	if a.env.HexMode {
		if v, n := scanNumeral("0"+name, true); n == len(name)+1 {
			return v, true
		}
	}
	return a.expressionError()
}

func (a *assembler) expressionError() (int32, bool) {
	a.addError(ExpressionError)
	return 0, false
}

// apply evaluates a binary operator. It fails on division or modulo by
// zero.
func (a *assembler) apply(op operator, x, y int32) (int32, bool) {
	switch op {
	case binaryPlus:
		return x + y, true
	case binaryMinus:
		return x - y, true
	case binaryMultiply:
		return x * y, true
	case binaryDivide:
		if y == 0 {
			return 0, false
		}
		return x / y, true
	case binaryModulo:
		if y == 0 {
			return 0, false
		}
		return x % y, true
	case binarySHL:
		return x << uint32(y), true
	case binarySHR:
		return x >> uint32(y), true
	case binaryOR:
		return x | y, true
	case binaryAND:
		return x & y, true
	case binaryXOR:
		return x ^ y, true
	case binaryLogicalOR:
		return truth(x != 0 || y != 0), true
	case binaryLogicalAND:
		return truth(x != 0 && y != 0), true
	case binaryEQ:
		return truth(x == y), true
	case binaryNE:
		return truth(x != y), true
	case binaryGT:
		return truth(x > y), true
	case binaryGE:
		return truth(x >= y), true
	case binaryLE:
		return truth(x <= y), true
	case binaryLT:
		return truth(x < y), true
	}
	return x, true
}

func truth(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// parseExpression parses and evaluates a complete expression.
func (a *assembler) parseExpression() (int32, bool) {
	return a.parseTerm(firstBinary)
}
