// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Variant selects the instruction set used by the assembler.
type Variant byte

// Supported instruction set variants.
const (
	I8080 Variant = iota // Intel 8080 mnemonics
	Z80                  // Zilog Z80 mnemonics
)

func (v Variant) String() string {
	switch v {
	case I8080:
		return "8080"
	case Z80:
		return "Z80"
	default:
		return "unknown"
	}
}

// An Opcode is a mnemonic together with the range of codes that share it.
type Opcode struct {
	Name  string // all-caps mnemonic
	first int    // index of the first code using the mnemonic
	last  int    // one past the index of the last code
}

// A Code describes a single machine instruction form.
type Code struct {
	Opcode  string // all-caps mnemonic
	Operand string // operand pattern, ':' marks a numeric value
	Format  string // hex code template, %n marks an emitted value
	Name    string // the table entry the code was built from
}

// An Operation is a row of the master instruction table: a hex code
// template with NN standing for operand bytes, and the instruction's
// 8080 and Z80 names. An empty name means the instruction does not
// exist in that variant.
type Operation struct {
	Code     string
	Name8080 string
	NameZ80  string
}

// An InstructionSet is an immutable, sorted set of mnemonics, codes and
// register names for one variant.
type InstructionSet struct {
	Variant   Variant
	opcodes   []Opcode
	codes     []Code
	registers []string
}

// Opcodes returns the instruction set's mnemonics in sorted order.
func (s *InstructionSet) Opcodes() []Opcode {
	return s.opcodes
}

// Codes returns the codes for an opcode, sorted by operand pattern.
func (s *InstructionSet) Codes(op *Opcode) []Code {
	return s.codes[op.first:op.last]
}

// Operations returns every code in the instruction set, ordered by
// mnemonic and then by operand pattern.
func (s *InstructionSet) Operations() []Code {
	return s.codes
}

// Registers returns the sorted register names used by the instruction
// set's operands.
func (s *InstructionSet) Registers() []string {
	return s.registers
}

// LookupOpcode finds an opcode by its all-caps mnemonic.
func (s *InstructionSet) LookupOpcode(name string) *Opcode {
	i, ok := slices.BinarySearchFunc(s.opcodes, name, func(o Opcode, n string) int {
		return strings.Compare(o.Name, n)
	})
	if !ok {
		return nil
	}
	return &s.opcodes[i]
}

// LookupRegister reports whether name is a register of the instruction
// set.
func (s *InstructionSet) LookupRegister(name string) bool {
	_, ok := slices.BinarySearch(s.registers, name)
	return ok
}

// LookupCode finds the code of an opcode whose operand pattern matches
// a parsed operand.
func (s *InstructionSet) LookupCode(op *Opcode, operand string) *Code {
	codes := s.codes[op.first:op.last]
	i, ok := slices.BinarySearchFunc(codes, operand, func(c Code, o string) int {
		return -searchCompareCode(o, c.Operand)
	})
	if !ok {
		return nil
	}
	return &codes[i]
}

// searchCompareCode compares a parsed operand a against a table operand
// pattern b. A ':' in the pattern matches any numeral, two numerals
// compare by value, and everything else compares character by character.
func searchCompareCode(a, b string) int {
	i, j := 0, 0
	for {
		var result int
		ca := charAt(a, i)
		if decimal(ca) {
			cb := charAt(b, j)
			switch {
			case cb == ':':
				i += numeralLen(a[i:])
				j++
			case decimal(cb):
				va, na := parseNumeral(a[i:])
				vb, nb := parseNumeral(b[j:])
				i += max(na, 1)
				j += max(nb, 1)
				result = int(int64(va) - int64(vb))
				if int64(va) != int64(vb) && result == 0 {
					result = 1
				}
			default:
				result = int(ca) - int(cb)
				i++
				j++
			}
		} else {
			result = int(ca) - int(charAt(b, j))
			j++
			if ca == 0 {
				return result
			}
			i++
		}
		if result != 0 {
			return result
		}
	}
}

func charAt(s string, i int) byte {
	if i >= len(s) {
		return 0
	}
	return s[i]
}

func numeralLen(s string) int {
	if _, n := parseNumeral(s); n > 0 {
		return n
	}
	return 1
}

//
// instruction set construction
//

// A builder accumulates table entries for one variant and freezes them
// into an InstructionSet.
type builder struct {
	variant Variant
	entries []entry
}

type entry struct {
	code string // raw code from the operation table, e.g. "DD36NNNN"
	name string // raw name, e.g. "LD (IX+%5),%7"
}

func newBuilder(variant Variant) *builder {
	return &builder{variant: variant}
}

// add appends an operation. Operations with an empty name do not exist in
// the builder's variant and are ignored.
func (b *builder) add(code, name string) {
	if name != "" {
		b.entries = append(b.entries, entry{code, name})
	}
}

// build sorts the accumulated entries and produces the frozen
// instruction set.
func (b *builder) build() (*InstructionSet, error) {
	entries := slices.Clone(b.entries)
	slices.SortStableFunc(entries, func(x, y entry) int {
		return strings.Compare(operandFormat(x.name), operandFormat(y.name))
	})

	set := &InstructionSet{
		Variant: b.variant,
		codes:   make([]Code, 0, len(entries)),
	}

	regs := make(map[string]bool)
	for i, e := range entries {
		opcode := opcodeOf(e.name)
		operand := operandOf(e.name)

		n := len(set.opcodes)
		if n == 0 || set.opcodes[n-1].Name != opcode {
			set.opcodes = append(set.opcodes, Opcode{Name: opcode, first: i, last: i})
			n++
		}
		set.opcodes[n-1].last++

		for _, r := range registersOf(operand) {
			regs[r] = true
		}

		format, err := codeFormat(e.code, operand)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplate, e.name, err)
		}
		set.codes = append(set.codes, Code{
			Opcode:  opcode,
			Operand: operandFormat(operand),
			Format:  format,
			Name:    e.name,
		})
	}

	for r := range regs {
		set.registers = append(set.registers, r)
	}
	slices.Sort(set.registers)
	return set, nil
}

// opcodeOf returns the leading alphabetic run of an operation name.
func opcodeOf(name string) string {
	i := 0
	for i < len(name) && alpha(name[i]) {
		i++
	}
	return name[:i]
}

// operandOf returns the operand text following the mnemonic.
func operandOf(name string) string {
	i := 0
	for i < len(name) && alpha(name[i]) {
		i++
	}
	for i < len(name) && whitespace(name[i]) {
		i++
	}
	return name[i:]
}

// registersOf returns the register names appearing in an operand: each
// alphabetic run, including a trailing apostrophe.
func registersOf(operand string) []string {
	var regs []string
	for i := 0; i < len(operand); {
		if !alpha(operand[i]) {
			i++
			continue
		}
		j := i
		for j < len(operand) && alpha(operand[j]) {
			j++
		}
		if j < len(operand) && operand[j] == '\'' {
			j++
		}
		regs = append(regs, operand[i:j])
		i = j
	}
	return regs
}

// operandFormat replaces each %n placeholder with ':'.
func operandFormat(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' {
			b.WriteByte(':')
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// codeFormat rewrites a raw code so that each placeholder of the operand
// marks where its value is emitted.
func codeFormat(code, operand string) (string, error) {
	c := []byte(code)
	put := func(at int, p byte, truncate bool) error {
		if at+2 > len(c) {
			return fmt.Errorf("code %q too short for %%%c", code, p)
		}
		c[at], c[at+1] = '%', p
		if truncate {
			c = c[:at+2]
		}
		return nil
	}

	for i := 0; i < len(operand); i++ {
		if operand[i] != '%' {
			continue
		}
		i++
		if i == len(operand) {
			return "", errors.New("dangling placeholder")
		}
		var err error
		switch p := operand[i]; p {
		case '1', '2', '3':
			err = put(2, p, true)
		case '4', '6':
			err = put(4, p, true)
		case '5':
			err = put(4, p, false)
		case '7':
			err = put(6, p, true)
		default:
			err = fmt.Errorf("unknown placeholder %%%c", p)
		}
		if err != nil {
			return "", err
		}
	}
	return string(c), nil
}

// BuildInstructionSet compiles the rows of an operation table that exist
// in the requested variant into an instruction set.
func BuildInstructionSet(table []Operation, variant Variant) (*InstructionSet, error) {
	b := newBuilder(variant)
	for _, op := range table {
		switch variant {
		case I8080:
			b.add(op.Code, op.Name8080)
		case Z80:
			b.add(op.Code, op.NameZ80)
		}
	}
	return b.build()
}

var (
	set8080 = sync.OnceValue(func() *InstructionSet { return mustBuild(I8080) })
	setZ80  = sync.OnceValue(func() *InstructionSet { return mustBuild(Z80) })
)

func mustBuild(variant Variant) *InstructionSet {
	set, err := BuildInstructionSet(operations, variant)
	if err != nil {
		panic(err)
	}
	return set
}

// Set8080 returns the built-in 8080 instruction set.
func Set8080() *InstructionSet {
	return set8080()
}

// SetZ80 returns the built-in Z80 instruction set.
func SetZ80() *InstructionSet {
	return setZ80()
}

// GetInstructionSet returns the built-in instruction set for a variant.
func GetInstructionSet(variant Variant) *InstructionSet {
	if variant == I8080 {
		return Set8080()
	}
	return SetZ80()
}
