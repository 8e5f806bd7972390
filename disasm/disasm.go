// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements an 8080 and Z80 instruction set
// disassembler.
package disasm

import (
	"fmt"
	"strings"
	"sync"

	"github.com/beevik/usim/asm"
	"github.com/beevik/usim/memory"
)

// maxLength is the length of the longest instruction in bytes.
const maxLength = 4

// An element of a decoding template is either a fixed byte or one of the
// operation table's numeric placeholders.
type element struct {
	placeholder byte // '1' through '7', or 0 for a fixed byte
	value       byte
}

type template struct {
	code     *asm.Code
	elements []element
	fixed    int // number of fixed bytes
	length   int
}

// A decoder holds the templates of an instruction set indexed by their
// first byte.
type decoder struct {
	first [256][]*template
}

func newDecoder(set *asm.InstructionSet) *decoder {
	d := &decoder{}
	codes := set.Operations()
	for i := range codes {
		t := parseTemplate(&codes[i])
		if t == nil || t.elements[0].placeholder != 0 {
			continue
		}
		b := t.elements[0].value
		d.first[b] = append(d.first[b], t)
	}
	return d
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

func parseTemplate(code *asm.Code) *template {
	t := &template{code: code}
	f := code.Format
	for len(f) >= 2 {
		if f[0] == '%' {
			p := f[1]
			t.elements = append(t.elements, element{placeholder: p})
			if p == '2' || p == '4' {
				t.length += 2
			} else {
				t.length++
			}
			f = f[2:]
			continue
		}
		hi, ok1 := hexValue(f[0])
		lo, ok2 := hexValue(f[1])
		if !ok1 || !ok2 {
			return nil
		}
		t.elements = append(t.elements, element{value: hi<<4 | lo})
		t.fixed++
		t.length++
		f = f[2:]
	}
	if len(f) != 0 || len(t.elements) == 0 {
		return nil
	}
	return t
}

// match reports whether the template's fixed bytes match the code in b.
func (t *template) match(b []byte) bool {
	i := 0
	for _, e := range t.elements {
		if e.placeholder == 0 && b[i] != e.value {
			return false
		}
		if e.placeholder == '2' || e.placeholder == '4' {
			i += 2
		} else {
			i++
		}
	}
	return true
}

func (d *decoder) lookup(b []byte) *template {
	var best *template
	for _, t := range d.first[b[0]] {
		if t.match(b) && (best == nil || t.fixed > best.fixed) {
			best = t
		}
	}
	return best
}

var (
	decoder8080 = sync.OnceValue(func() *decoder { return newDecoder(asm.Set8080()) })
	decoderZ80  = sync.OnceValue(func() *decoder { return newDecoder(asm.SetZ80()) })
)

func decoderFor(variant asm.Variant) *decoder {
	if variant == asm.I8080 {
		return decoder8080()
	}
	return decoderZ80()
}

// numeral formats a value the way the assembler reads it: hexadecimal
// with an H suffix and a leading zero when the first digit is a letter.
func numeral(v uint16, digits int) string {
	s := fmt.Sprintf("%0*XH", digits, v)
	if s[0] >= 'A' {
		s = "0" + s
	}
	return s
}

// Disassemble the machine code in memory 'm' at address 'addr' using the
// instruction set 'variant'. Return a 'line' string representing the
// disassembled instruction and a 'next' address that starts the following
// line of machine code. Bytes that begin no instruction are disassembled
// as a DB directive.
func Disassemble(m memory.Memory, addr uint16, variant asm.Variant) (line string, next uint16) {
	var b [maxLength]byte
	m.LoadBytes(addr, b[:])

	t := decoderFor(variant).lookup(b[:])
	if t == nil {
		return "DB " + numeral(uint16(b[0]), 2), addr + 1
	}

	// Collect the values in template order. Displacements become
	// absolute addresses.
	var values [2]string
	n, i := 0, 0
	for _, e := range t.elements {
		switch e.placeholder {
		case 0:
			i++
			continue
		case '2', '4':
			values[n] = numeral(uint16(b[i])|uint16(b[i+1])<<8, 4)
			i += 2
		case '3':
			target := addr + uint16(i) + 1 + uint16(int8(b[i]))
			values[n] = numeral(target, 4)
			i++
		default:
			values[n] = numeral(uint16(b[i]), 2)
			i++
		}
		if n < len(values)-1 {
			n++
		}
	}

	var s strings.Builder
	name := t.code.Name
	for k, v := 0, 0; k < len(name); k++ {
		if name[k] == '%' && k+1 < len(name) {
			s.WriteString(values[v])
			if v < len(values)-1 {
				v++
			}
			k++
			continue
		}
		s.WriteByte(name[k])
	}
	return s.String(), addr + uint16(t.length)
}

// Length returns the length in bytes of the instruction at address
// 'addr'.
func Length(m memory.Memory, addr uint16, variant asm.Variant) int {
	_, next := Disassemble(m, addr, variant)
	return int(next - addr)
}
