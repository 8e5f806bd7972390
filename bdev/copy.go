// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import (
	"bufio"
	"fmt"
	"os"
)

// An ImageKind selects the format of a copied disk image.
type ImageKind int

// Disk image formats.
const (
	BinaryImage ImageKind = iota // read/write image with a geometry header
	ASCIIImage                   // read-only hex text image
)

// Copy writes the contents of a mounted disk to a new disk image.
func (m *Manager) Copy(unit, path string, kind ImageKind, confirm ConfirmFunc) error {
	b, err := m.mounted(unit)
	if err != nil {
		return err
	}

	mode := "R/W"
	if kind == ASCIIImage {
		mode = "R/O"
	}
	fmt.Fprintf(m.out, "COPYING %s [%s] (%s) %dK...\n", b.unit, path, mode, b.pb.SIZ/1024)
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(m.out, "?EXISTS: [%s]\n", path)
	}
	if !m.confirm(confirm) {
		return ErrCanceled
	}

	var readErr error
	each := func(fn func(track, sector int, buf []byte) error) error {
		buf := make([]byte, SectorSize)
		for t := 0; t < int(b.pb.TPD); t++ {
			for s := 0; s < int(b.pb.SPT); s++ {
				if err := m.Read(b, uint16(t), uint16(s), buf); err != nil {
					readErr = b.diskError("READ", err)
					return readErr
				}
				if err := fn(t, s, buf); err != nil {
					return err
				}
			}
		}
		return nil
	}

	g := b.pb.Geometry()
	err = writeImage(path, func(w *bufio.Writer) error {
		switch kind {
		case ASCIIImage:
			empty := make([]byte, SectorSize)
			emptySector(empty)
			fmt.Fprintln(w, asciiMagic)
			fmt.Fprintf(w, "TPD=%d SPT=%d BLS=%d DRM=%d OFF=%d SKF=%d\n",
				g.TPD, g.SPT, g.BLS, g.DRM, g.OFF, g.SKF)
			fmt.Fprintln(w, "EMPTY SECTOR")
			writeASCIIRecord(w, empty)
			return each(func(track, sector int, buf []byte) error {
				if !isEmptySector(buf) {
					fmt.Fprintf(w, "TRACK %d, SECTOR %d\n", track, sector)
					writeASCIIRecord(w, buf)
				}
				return nil
			})

		default:
			if _, err := w.Write(makeHeader(g)); err != nil {
				return err
			}
			return each(func(track, sector int, buf []byte) error {
				_, err := w.Write(buf)
				return err
			})
		}
	})
	if readErr != nil {
		return readErr
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(m.out, "COPY COMPLETE.")
	return nil
}
