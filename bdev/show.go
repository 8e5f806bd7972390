// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import (
	"fmt"
)

// mounted returns the named unit, which must have a disk mounted.
func (m *Manager) mounted(unit string) (*BDev, error) {
	b, err := m.Unit(unit)
	if err != nil {
		return nil, err
	}
	if !b.IsOpen() {
		return nil, b.diskError("NOMOUNT", ErrNotOpen)
	}
	return b, nil
}

// ShowMount writes the mount state of a unit, or of every unit when unit
// is empty. Verbose output adds the unit's parameter addresses and
// parameter block.
func (m *Manager) ShowMount(unit string, verbose bool) error {
	if unit == "" {
		for i := range m.units {
			m.showMount(&m.units[i], false)
		}
		return nil
	}

	b, err := m.Unit(unit)
	if err != nil {
		return err
	}
	m.showMount(b, verbose)
	return nil
}

func (m *Manager) showMount(b *BDev, verbose bool) {
	if !b.IsOpen() {
		fmt.Fprintf(m.out, "%s =>\n", b.unit)
		return
	}

	fmt.Fprintf(m.out, "%s => %s (%s) %d\n", b.unit, b.name, b.Status(), b.pb.SIZ)
	if verbose {
		fmt.Fprintf(m.out, "DP  =    0%04XH\t; ADDRESS OF CP/M DISK PARAMETER HEADER\n", b.dpAddress)
		fmt.Fprintf(m.out, "PB  =    0%04XH\t; ADDRESS OF CP/M DISK PARAMETER BLOCK\n", b.pbAddress)
		fmt.Fprintf(m.out, "XLT =    0%04XH\t; ADDRESS OF CP/M TRANSLATION VECTOR\n", b.xltAddress)
		ShowParameterBlock(m.out, &b.pb, true)
	}
}

func printable(c byte, high bool) byte {
	if c < ' ' || (high && c >= 0x7f) {
		return '.'
	}
	return c
}

// ShowFCB writes directory entry n of a unit. When n is negative every
// entry in use is written.
func (m *Manager) ShowFCB(unit string, n int) error {
	b, err := m.mounted(unit)
	if err != nil {
		return err
	}

	for i := 0; i <= int(b.pb.DRM); i++ {
		if n >= 0 && n != i {
			continue
		}
		fcb, err := m.ReadFCB(b, i)
		if err != nil {
			return err
		}
		if n < 0 && fcb[0] == EmptyByte {
			continue
		}

		var name [12]byte
		for j := 1; j < 12; j++ {
			name[j] = printable(fcb[j], true)
		}
		fmt.Fprintf(m.out, "%02d %02X %s %s %02X %02X%02X%02X",
			i, fcb[0], name[1:9], name[9:12], fcb[12], fcb[13], fcb[14], fcb[15])
		for _, p := range fcb[16:] {
			if p == 0 {
				break
			}
			fmt.Fprintf(m.out, " %02X", p)
		}
		fmt.Fprintln(m.out)
	}
	return nil
}

// ShowDirectory writes the user number and name of every directory entry
// in use, four to a line.
func (m *Manager) ShowDirectory(unit string) error {
	b, err := m.mounted(unit)
	if err != nil {
		return err
	}

	j := 0
	for i := 0; i <= int(b.pb.DRM); i++ {
		fcb, err := m.ReadFCB(b, i)
		if err != nil {
			return err
		}
		if fcb[0] == EmptyByte {
			continue
		}

		if j%4 != 0 {
			fmt.Fprint(m.out, " : ")
		}
		var name [12]byte
		for k := 1; k < 12; k++ {
			name[k] = printable(fcb[k], false)
		}
		fmt.Fprintf(m.out, "%3d %s %s", fcb[0], name[1:9], name[9:12])
		if (j+1)%4 == 0 {
			fmt.Fprintln(m.out)
		}
		j++
	}
	if j%4 != 0 {
		fmt.Fprintln(m.out)
	}
	return nil
}

// ShowALV writes the reference count of every data block, 16 to a line.
func (m *Manager) ShowALV(unit string) error {
	b, err := m.mounted(unit)
	if err != nil {
		return err
	}

	counts, err := m.ReadALV(b)
	if err != nil {
		return err
	}
	for i, c := range counts {
		if i%16 != 0 {
			fmt.Fprint(m.out, " ")
		}
		fmt.Fprintf(m.out, "%2d", c&0xff)
		if (i+1)%16 == 0 {
			fmt.Fprintln(m.out)
		}
	}
	return nil
}
