// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// fileMagic begins the header of a binary disk image. The header is
// optional; an image without one has the standard floppy geometry.
const fileMagic = "This is a uSim CP/M read/write BINARY disk image.\r\n\n"

// Layout of the 128-byte binary image header: the NUL-terminated magic,
// a free-form info field, then six little-endian geometry words.
const (
	headerInfo  = len(fileMagic) + 1
	headerWords = SectorSize - 6*2
)

// A fileDisk is a binary disk image on the host file system.
type fileDisk struct {
	f      *os.File
	offset int64
	ro     bool
}

// openFileDisk opens a binary disk image. The image is opened for
// writing unless readOnly is set or the file cannot be written, in which
// case it is opened read-only.
func openFileDisk(path string, readOnly bool) (*fileDisk, ParameterBlock, error) {
	d := &fileDisk{ro: readOnly}

	var err error
	if !d.ro {
		d.f, err = os.OpenFile(path, os.O_RDWR, 0)
		if err != nil {
			d.ro = true
		}
	}
	if d.ro {
		d.f, err = os.Open(path)
		if err != nil {
			return nil, ParameterBlock{}, err
		}
	}

	pb := FloppyGeometry.Parameters()

	header := make([]byte, SectorSize)
	if err := d.read(0, header); err == nil {
		if g, ok := parseHeader(header); ok {
			pb = g.Parameters()
			d.offset = SectorSize
		}
	}
	return d, pb, nil
}

// parseHeader returns the geometry stored in a binary image header.
func parseHeader(header []byte) (Geometry, bool) {
	if len(header) < SectorSize {
		return Geometry{}, false
	}
	if !bytes.Equal(header[:len(fileMagic)], []byte(fileMagic)) || header[len(fileMagic)] != 0 {
		return Geometry{}, false
	}

	w := func(i int) int {
		return int(binary.LittleEndian.Uint16(header[headerWords+i*2:]))
	}
	return Geometry{TPD: w(0), SPT: w(1), BLS: w(2), DRM: w(3), OFF: w(4), SKF: w(5)}, true
}

// makeHeader builds a binary image header describing a geometry.
func makeHeader(g Geometry) []byte {
	header := make([]byte, SectorSize)
	copy(header, fileMagic)

	info := fmt.Sprintf("TPD=%d SPT=%d BLS=%d DRM=%d OFF=%d SKF=%d\r\n\n",
		g.TPD, g.SPT, g.BLS, g.DRM, g.OFF, g.SKF)
	copy(header[headerInfo:headerWords-1], info)

	for i, v := range []int{g.TPD, g.SPT, g.BLS, g.DRM, g.OFF, g.SKF} {
		binary.LittleEndian.PutUint16(header[headerWords+i*2:], uint16(v))
	}
	return header
}

func (d *fileDisk) read(index int, sector []byte) error {
	_, err := d.f.ReadAt(sector[:SectorSize], d.offset+int64(index)*SectorSize)
	return err
}

func (d *fileDisk) write(index int, sector []byte) error {
	if d.ro {
		return ErrReadOnly
	}
	_, err := d.f.WriteAt(sector[:SectorSize], d.offset+int64(index)*SectorSize)
	return err
}

func (d *fileDisk) readOnly() bool {
	return d.ro
}

func (d *fileDisk) close() error {
	return d.f.Close()
}
