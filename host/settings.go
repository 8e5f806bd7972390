// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/prefixtree/v2"
	"github.com/beevik/usim/asm"
	"github.com/beevik/usim/memory"
)

var (
	errSettingRange   = errors.New("value out of range")
	errSettingVariant = errors.New("variant must be 8080 or Z80")
	errPortOverlap    = errors.New("port ranges overlap")
)

// settings holds the monitor variables changed by the set command.
type settings struct {
	HexMode        bool
	Variant        asm.Variant
	DumpBytes      uint16
	DisasmLines    uint16
	StepLines      uint16
	StripZeros     bool
	DirectoryDisks bool
	Trace          bool
	LoadBias       uint16
	ConsolePort    byte
	DiskPort       byte
	BankPort       byte

	list []*setting
	tree *prefixtree.Tree[*setting]
}

// A setting names one variable. Its value points into the settings
// struct and is a *bool, *byte, *uint16 or *asm.Variant.
type setting struct {
	name  string
	doc   string
	value any
}

func newSettings() *settings {
	s := &settings{
		HexMode:     true,
		Variant:     asm.Z80,
		DumpBytes:   256,
		DisasmLines: 16,
		StepLines:   20,
		ConsolePort: 0x00,
		DiskPort:    0x10,
		BankPort:    0x20,
	}

	s.list = []*setting{
		{"HexMode", "unsuffixed numbers are hexadecimal", &s.HexMode},
		{"Variant", "disassembly instruction set, 8080 or Z80", &s.Variant},
		{"DumpBytes", "default number of memory bytes to dump", &s.DumpBytes},
		{"DisasmLines", "default number of lines to disassemble", &s.DisasmLines},
		{"StepLines", "max lines to disassemble when stepping", &s.StepLines},
		{"StripZeros", "skip all-zero records when loading or unloading", &s.StripZeros},
		{"DirectoryDisks", "allow host directories to be mounted as disks", &s.DirectoryDisks},
		{"Trace", "disassemble every instruction run", &s.Trace},
		{"LoadBias", "address bias added to loaded code", &s.LoadBias},
		{"ConsolePort", "console status port, data follows", &s.ConsolePort},
		{"DiskPort", "first of the eight disk controller ports", &s.DiskPort},
		{"BankPort", "first of the four memory bank ports", &s.BankPort},
	}

	s.tree = prefixtree.New[*setting]()
	for _, e := range s.list {
		s.tree.Add(strings.ToLower(e.name), e)
	}
	return s
}

// Display writes every setting and its description.
func (s *settings) Display(w io.Writer) {
	for _, e := range s.list {
		var v string
		switch p := e.value.(type) {
		case *bool:
			v = fmt.Sprintf("%v", *p)
		case *byte:
			v = fmt.Sprintf("%02XH", *p)
		case *uint16:
			v = fmt.Sprintf("%04XH", *p)
		case *asm.Variant:
			v = p.String()
		}
		fmt.Fprintf(w, "    %-16s %-6s (%s)\n", e.name, v, e.doc)
	}
}

// Set assigns a setting from its text form. Numeric values are evaluated
// by number.
func (s *settings) Set(key, value string, number func(string) (uint16, error)) error {
	e, err := s.tree.FindValue(strings.ToLower(key))
	if err != nil {
		return fmt.Errorf("setting '%s' not found", key)
	}

	switch p := e.value.(type) {
	case *bool:
		v, err := stringToBool(value)
		if err != nil {
			return err
		}
		*p = v

	case *asm.Variant:
		switch strings.ToUpper(strings.TrimSpace(value)) {
		case "8080":
			*p = asm.I8080
		case "Z80":
			*p = asm.Z80
		default:
			return errSettingVariant
		}

	case *uint16:
		v, err := number(value)
		if err != nil {
			return err
		}
		*p = v

	case *byte:
		v, err := number(value)
		if err != nil {
			return err
		}
		if v > 0xff {
			return errSettingRange
		}
		old := *p
		*p = byte(v)
		if s.portsOverlap() {
			*p = old
			return errPortOverlap
		}
	}
	return nil
}

// portsOverlap reports whether the console, disk and bank port ranges
// share a port.
func (s *settings) portsOverlap() bool {
	type span struct{ base, n int }
	spans := []span{
		{int(s.ConsolePort), consolePorts},
		{int(s.DiskPort), diskPorts},
		{int(s.BankPort), memory.Banks},
	}
	for i := range spans {
		if spans[i].base+spans[i].n > 0x100 {
			return true
		}
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if a.base < b.base+b.n && b.base < a.base+a.n {
				return true
			}
		}
	}
	return false
}
