// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strings"

	"github.com/koron-go/z80"
)

// A register describes a CPU register that monitor commands and
// expressions can read and change.
type register struct {
	name string
	wide bool
	get  func(c *z80.CPU) uint16
	set  func(c *z80.CPU, v uint16)
}

func pair(r *z80.Register) uint16 {
	return uint16(r.Hi)<<8 | uint16(r.Lo)
}

func setPair(r *z80.Register, v uint16) {
	r.Hi, r.Lo = byte(v>>8), byte(v)
}

var registers = []register{
	{"A", false, func(c *z80.CPU) uint16 { return uint16(c.AF.Hi) }, func(c *z80.CPU, v uint16) { c.AF.Hi = byte(v) }},
	{"F", false, func(c *z80.CPU) uint16 { return uint16(c.AF.Lo) }, func(c *z80.CPU, v uint16) { c.AF.Lo = byte(v) }},
	{"B", false, func(c *z80.CPU) uint16 { return uint16(c.BC.Hi) }, func(c *z80.CPU, v uint16) { c.BC.Hi = byte(v) }},
	{"C", false, func(c *z80.CPU) uint16 { return uint16(c.BC.Lo) }, func(c *z80.CPU, v uint16) { c.BC.Lo = byte(v) }},
	{"D", false, func(c *z80.CPU) uint16 { return uint16(c.DE.Hi) }, func(c *z80.CPU, v uint16) { c.DE.Hi = byte(v) }},
	{"E", false, func(c *z80.CPU) uint16 { return uint16(c.DE.Lo) }, func(c *z80.CPU, v uint16) { c.DE.Lo = byte(v) }},
	{"H", false, func(c *z80.CPU) uint16 { return uint16(c.HL.Hi) }, func(c *z80.CPU, v uint16) { c.HL.Hi = byte(v) }},
	{"L", false, func(c *z80.CPU) uint16 { return uint16(c.HL.Lo) }, func(c *z80.CPU, v uint16) { c.HL.Lo = byte(v) }},
	{"AF", true, func(c *z80.CPU) uint16 { return pair(&c.AF) }, func(c *z80.CPU, v uint16) { setPair(&c.AF, v) }},
	{"BC", true, func(c *z80.CPU) uint16 { return pair(&c.BC) }, func(c *z80.CPU, v uint16) { setPair(&c.BC, v) }},
	{"DE", true, func(c *z80.CPU) uint16 { return pair(&c.DE) }, func(c *z80.CPU, v uint16) { setPair(&c.DE, v) }},
	{"HL", true, func(c *z80.CPU) uint16 { return pair(&c.HL) }, func(c *z80.CPU, v uint16) { setPair(&c.HL, v) }},
	{"SP", true, func(c *z80.CPU) uint16 { return c.SP }, func(c *z80.CPU, v uint16) { c.SP = v }},
	{"PC", true, func(c *z80.CPU) uint16 { return c.PC }, func(c *z80.CPU, v uint16) { c.PC = v }},
	{"IX", true, func(c *z80.CPU) uint16 { return c.IX }, func(c *z80.CPU, v uint16) { c.IX = v }},
	{"IY", true, func(c *z80.CPU) uint16 { return c.IY }, func(c *z80.CPU, v uint16) { c.IY = v }},
}

// lookupRegister finds a register by name. The name "." is the program
// counter.
func lookupRegister(name string) *register {
	name = strings.ToUpper(name)
	if name == "." {
		name = "PC"
	}
	for i := range registers {
		if registers[i].name == name {
			return &registers[i]
		}
	}
	return nil
}

// Flag bits of the F register.
const (
	flagC = 1 << 0
	flagN = 1 << 1
	flagP = 1 << 2
	flagH = 1 << 4
	flagZ = 1 << 6
	flagS = 1 << 7
)

func flagString(f byte) string {
	b := []byte("--------")
	for i, c := range []struct {
		mask byte
		name byte
	}{{flagS, 'S'}, {flagZ, 'Z'}, {0, 0}, {flagH, 'H'}, {0, 0}, {flagP, 'P'}, {flagN, 'N'}, {flagC, 'C'}} {
		if f&c.mask != 0 {
			b[i] = c.name
		}
	}
	return string(b)
}

// registerString returns a one-line display of the CPU state.
func registerString(c *z80.CPU) string {
	return fmt.Sprintf("A=%02X F=%s BC=%04X DE=%04X HL=%04X IX=%04X IY=%04X SP=%04X PC=%04X",
		c.AF.Hi, flagString(c.AF.Lo), pair(&c.BC), pair(&c.DE), pair(&c.HL),
		c.IX, c.IY, c.SP, c.PC)
}
