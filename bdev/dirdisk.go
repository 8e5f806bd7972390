// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxDirectoryCache is the number of host files a directory disk keeps
// open at once.
const maxDirectoryCache = 3

var errDirectoryFull = errors.New("directory does not fit on a disk")

// A dirFile is a host file presented on a directory disk. Its blocks are
// allocated contiguously, so its sectors form the range [first, last].
type dirFile struct {
	path  string
	first int
	last  int
}

// A dirCacheEntry holds an open host file. Ranks order the entries from
// least (0) to most recently used.
type dirCacheEntry struct {
	file *dirFile
	f    *os.File
	rank int
}

// A dirDisk presents the regular files of a host directory as a
// read-only CP/M disk with hard disk geometry. The CP/M directory is
// synthesized when the disk is opened.
type dirDisk struct {
	pb     *ParameterBlock
	fcbs   []byte
	files  []*dirFile
	blocks []*dirFile // owner of each data block
	cache  [maxDirectoryCache]dirCacheEntry
}

// cpmName converts a host file name to the 11-character blank padded
// name and extension of an FCB.
func cpmName(name string) ([]byte, bool) {
	base, ext := name, ""
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		base, ext = name[:i], name[i+1:]
	}
	if len(base) == 0 || len(base) > 8 || len(ext) > 3 {
		return nil, false
	}
	if strings.ContainsFunc(base+ext, func(r rune) bool { return r <= ' ' || r >= 0x7f }) {
		return nil, false
	}

	fcbName := []byte("           ")
	copy(fcbName, strings.ToUpper(base))
	copy(fcbName[8:], strings.ToUpper(ext))
	return fcbName, true
}

func openDirDisk(dir string) (*dirDisk, ParameterBlock, error) {
	pb := HardDiskGeometry.Parameters()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, pb, err
	}

	d := &dirDisk{
		fcbs:   make([]byte, int(pb.DSZ)),
		blocks: make([]*dirFile, int(pb.DSM)+1),
	}
	emptySector(d.fcbs)
	for i := range d.cache {
		d.cache[i].rank = i
	}

	bls := int(pb.BLS)
	spb := bls / SectorSize
	wide := pb.DSM >= 256
	pointers := 16
	if wide {
		pointers = 8
	}
	recordsPerFCB := pointers * spb
	extents := int(pb.EXM) + 1

	fcb := 0
	block := int(pb.DBL)
	for _, e := range entries {
		info, err := e.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		name, ok := cpmName(e.Name())
		if !ok {
			continue
		}

		size := int(info.Size())
		records := (size + SectorSize - 1) / SectorSize
		nblocks := (size + bls - 1) / bls
		if block+nblocks > int(pb.DSM)+1 {
			return nil, pb, errDirectoryFull
		}

		file := &dirFile{
			path:  filepath.Join(dir, e.Name()),
			first: int(pb.OFF)*int(pb.SPT) + block*spb,
			last:  int(pb.OFF)*int(pb.SPT) + (block+nblocks)*spb - 1,
		}
		d.files = append(d.files, file)

		for k := 0; k == 0 || k*recordsPerFCB < records; k++ {
			if fcb > int(pb.DRM) {
				return nil, pb, errDirectoryFull
			}
			entry := d.fcbs[fcb*32 : fcb*32+32]
			fcb++

			r := min(records-k*recordsPerFCB, recordsPerFCB)
			used := max((r+127)/128, 1)
			extent := k*extents + used - 1

			entry[0] = 0
			copy(entry[1:12], name)
			entry[12] = byte(extent & 0x1f)
			entry[13] = 0
			entry[14] = byte(extent >> 5)
			entry[15] = byte(r - (used-1)*128)
			for i := 16; i < 32; i++ {
				entry[i] = 0
			}

			for p := 0; p < pointers && nblocks > 0; p++ {
				d.blocks[block] = file
				if wide {
					entry[16+p*2] = byte(block)
					entry[17+p*2] = byte(block >> 8)
				} else {
					entry[16+p] = byte(block)
				}
				block++
				nblocks--
			}
		}
	}

	d.pb = &pb
	return d, pb, nil
}

func (d *dirDisk) read(index int, sector []byte) error {
	system := int(d.pb.OFF) * int(d.pb.SPT)
	if index < system {
		emptySector(sector)
		return nil
	}

	pos := (index - system) * SectorSize
	if pos+SectorSize <= len(d.fcbs) {
		copy(sector, d.fcbs[pos:pos+SectorSize])
		return nil
	}

	block := (index - system) / (int(d.pb.BLS) / SectorSize)
	if block >= len(d.blocks) || d.blocks[block] == nil {
		emptySector(sector)
		return nil
	}

	e, err := d.reference(d.blocks[block])
	if err != nil {
		return err
	}

	// Sectors past the end of the file but inside its last block read as
	// all ^Z.
	n, err := e.f.ReadAt(sector[:SectorSize], int64(index-e.file.first)*SectorSize)
	for i := n; i < SectorSize; i++ {
		sector[i] = 'Z' - '@'
	}
	if n == 0 && err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// reference returns the cache entry holding an open handle to a file,
// opening it in place of the least recently used entry when necessary.
func (d *dirDisk) reference(file *dirFile) (*dirCacheEntry, error) {
	var e *dirCacheEntry
	for i := range d.cache {
		if d.cache[i].file == file && d.cache[i].f != nil {
			e = &d.cache[i]
			break
		}
	}

	if e == nil {
		for i := range d.cache {
			if d.cache[i].rank == 0 {
				e = &d.cache[i]
				break
			}
		}
		if e.f != nil {
			e.f.Close()
			e.f, e.file = nil, nil
		}
		f, err := os.Open(file.path)
		if err != nil {
			return nil, err
		}
		e.f, e.file = f, file
	}

	for i := range d.cache {
		if d.cache[i].rank > e.rank {
			d.cache[i].rank--
		}
	}
	e.rank = maxDirectoryCache - 1
	return e, nil
}

func (d *dirDisk) write(index int, sector []byte) error {
	return ErrReadOnly
}

func (d *dirDisk) readOnly() bool {
	return true
}

func (d *dirDisk) close() error {
	var errs []error
	for i := range d.cache {
		if d.cache[i].f != nil {
			errs = append(errs, d.cache[i].f.Close())
			d.cache[i].f, d.cache[i].file = nil, nil
		}
	}
	return errors.Join(errs...)
}
