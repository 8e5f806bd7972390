// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import "bytes"

// A backend stores the sectors of a mounted block device. Sector indexes
// passed to a backend have already been range checked.
type backend interface {
	read(index int, sector []byte) error
	write(index int, sector []byte) error
	readOnly() bool
	close() error
}

// emptySector fills a sector with the erased-sector pattern.
func emptySector(sector []byte) {
	for i := range sector {
		sector[i] = EmptyByte
	}
}

func isEmptySector(sector []byte) bool {
	return bytes.Count(sector, []byte{EmptyByte}) == len(sector)
}

// A ramDisk is a standard floppy held entirely in memory.
type ramDisk struct {
	data []byte
}

func newRAMDisk() *ramDisk {
	d := &ramDisk{data: make([]byte, FloppySize)}
	emptySector(d.data)
	return d
}

func (d *ramDisk) read(index int, sector []byte) error {
	copy(sector, d.data[index*SectorSize:(index+1)*SectorSize])
	return nil
}

func (d *ramDisk) write(index int, sector []byte) error {
	copy(d.data[index*SectorSize:(index+1)*SectorSize], sector)
	return nil
}

func (d *ramDisk) readOnly() bool {
	return false
}

func (d *ramDisk) close() error {
	d.data = nil
	return nil
}
