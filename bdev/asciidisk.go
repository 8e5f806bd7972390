// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// asciiMagic is the first line of an ASCII disk image.
const asciiMagic = "This is a uSim CP/M read-only ASCII disk image."

// errNotASCII reports a file that is not an ASCII disk image.
var errNotASCII = errors.New("not an ASCII disk image")

// Each sector record of an ASCII image holds four lines of 32 hex bytes
// followed by a checksum line.
const (
	asciiBytesPerLine = 32
	asciiRecordLines  = SectorSize/asciiBytesPerLine + 1
)

// An asciiDisk is a read-only disk image stored as hex text. Only the
// sectors that differ from the image's empty sector are recorded. The
// image is read into memory when it is opened.
type asciiDisk struct {
	lines   []string
	records []int // index of each sector's first line
}

// openASCIIDisk opens an ASCII disk image. It returns errNotASCII when
// the file does not begin with the ASCII image magic.
func openASCIIDisk(path string) (*asciiDisk, ParameterBlock, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ParameterBlock{}, err
	}
	defer f.Close()
	return readASCIIDisk(f)
}

func readASCIIDisk(r io.Reader) (*asciiDisk, ParameterBlock, error) {
	var pb ParameterBlock

	s := bufio.NewScanner(r)
	if !s.Scan() || !strings.HasPrefix(s.Text(), asciiMagic) {
		return nil, pb, errNotASCII
	}

	d := &asciiDisk{lines: []string{s.Text()}}
	for s.Scan() {
		d.lines = append(d.lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, pb, err
	}

	var g Geometry
	if len(d.lines) < 2 {
		return nil, pb, ErrParameters
	}
	n, _ := fmt.Sscanf(d.lines[1], "TPD=%d SPT=%d BLS=%d DRM=%d OFF=%d SKF=%d",
		&g.TPD, &g.SPT, &g.BLS, &g.DRM, &g.OFF, &g.SKF)
	if n != 6 {
		return nil, pb, ErrParameters
	}
	pb = g.Parameters()

	if len(d.lines) < 3+asciiRecordLines || !strings.HasPrefix(d.lines[2], "EMPTY SECTOR") {
		return nil, pb, ErrFormat
	}

	d.records = make([]int, pb.SPD)
	for i := range d.records {
		d.records[i] = 3
	}

	for i := 3 + asciiRecordLines; i < len(d.lines); i += 1 + asciiRecordLines {
		var track, sector int
		if n, _ := fmt.Sscanf(d.lines[i], "TRACK %d, SECTOR %d", &track, &sector); n != 2 {
			return nil, pb, ErrFormat
		}
		index := track*int(pb.SPT) + sector
		if index < 0 || index >= pb.SPD || i+asciiRecordLines >= len(d.lines) {
			return nil, pb, ErrFormat
		}
		d.records[index] = i + 1
	}

	return d, pb, nil
}

func (d *asciiDisk) read(index int, sector []byte) error {
	first := d.records[index]
	lines := d.lines[first : first+asciiRecordLines]

	var sum byte
	for i := 0; i < SectorSize/asciiBytesPerLine; i++ {
		line := lines[i]
		for j := 0; j < asciiBytesPerLine; j++ {
			b, ok := hexPair(line, j*2)
			if !ok {
				return ErrFormat
			}
			sector[i*asciiBytesPerLine+j] = b
			sum += b
		}
	}

	cksum, ok := hexPair(lines[asciiRecordLines-1], 0)
	if !ok {
		return ErrFormat
	}
	if sum+cksum != 0 {
		return ErrChecksum
	}
	return nil
}

func (d *asciiDisk) write(index int, sector []byte) error {
	return ErrReadOnly
}

func (d *asciiDisk) readOnly() bool {
	return true
}

func (d *asciiDisk) close() error {
	d.lines, d.records = nil, nil
	return nil
}

// hexPair decodes the two uppercase hex digits at s[i:].
func hexPair(s string, i int) (byte, bool) {
	if i+2 > len(s) {
		return 0, false
	}
	hi, ok1 := hexDigit(s[i])
	lo, ok2 := hexDigit(s[i+1])
	return hi<<4 | lo, ok1 && ok2
}

func hexDigit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// writeASCIIRecord writes one sector as four lines of hex and a checksum
// line that makes the bytes sum to zero.
func writeASCIIRecord(w io.Writer, sector []byte) {
	var sum byte
	for i, b := range sector[:SectorSize] {
		fmt.Fprintf(w, "%02X", b)
		sum += b
		if (i+1)%asciiBytesPerLine == 0 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "%02X\n", -sum)
}
