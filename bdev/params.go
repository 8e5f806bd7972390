// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bdev emulates the 16 block devices of a CP/M system. Each
// device is backed by a RAM disk, a host directory, an ASCII disk image
// or a binary disk image, and is described to the guest through a CP/M
// disk parameter block.
package bdev

import (
	"fmt"
	"io"
)

// SectorSize is the size of a CP/M sector in bytes.
const SectorSize = 128

// EmptyByte fills every byte of an erased sector.
const EmptyByte = 0xe5

// A Geometry holds the six values from which all other disk parameters
// are derived.
type Geometry struct {
	TPD int // tracks per disk
	SPT int // sectors per track
	BLS int // data allocation block size
	DRM int // directory entries, minus one
	OFF int // reserved system tracks
	SKF int // sector skew factor
}

// Standard disk geometries.
var (
	// FloppyGeometry is a standard 8" single-density 256K floppy.
	FloppyGeometry = Geometry{TPD: 77, SPT: 26, BLS: 1024, DRM: 63, OFF: 2, SKF: 6}

	// HardDiskGeometry is a standard 5MB hard disk.
	HardDiskGeometry = Geometry{TPD: 640, SPT: 64, BLS: 2048, DRM: 1023, OFF: 0, SKF: 1}
)

// Standard disk sizes in bytes.
const (
	FloppySize   = 256256
	HardDiskSize = 5242880
)

// A ParameterBlock holds the CP/M disk parameters derived from a
// geometry. The 16-bit fields wrap exactly as they do in a CP/M disk
// parameter block.
type ParameterBlock struct {
	SIZ int // total bytes
	SPD int // total sectors

	TPD uint16 // tracks per disk
	SPT uint16 // sectors per track
	BLS uint16 // data allocation block size
	DRM uint16 // directory entries, minus one
	OFF uint16 // reserved system tracks
	SKF uint16 // sector skew factor

	DSM uint16 // data blocks, minus one
	BSH uint16 // data allocation block shift
	BLM uint16 // data allocation block mask
	EXM uint16 // extent mask
	DSZ uint16 // bytes used by the directory
	DBL uint16 // blocks used by the directory
	ALB uint16 // directory allocation block mask
	CKS uint16 // size of the directory check vector
	ALV uint16 // size of the data allocation vector

	XLT []byte // sector translation table, one-based
}

// Geometry returns the geometry the parameter block was computed from.
func (pb *ParameterBlock) Geometry() Geometry {
	return Geometry{
		TPD: int(pb.TPD),
		SPT: int(pb.SPT),
		BLS: int(pb.BLS),
		DRM: int(pb.DRM),
		OFF: int(pb.OFF),
		SKF: int(pb.SKF),
	}
}

// Parameters computes the parameter block for a geometry.
func (g Geometry) Parameters() ParameterBlock {
	return ComputeParameters(g.TPD, g.SPT, g.BLS, g.DRM, g.OFF, g.SKF)
}

func gcd(m, n int) int {
	if n <= 0 {
		return 1
	}
	for {
		r := m % n
		if r == 0 {
			return n
		}
		m, n = n, r
	}
}

// ComputeParameters derives a CP/M parameter block and sector translation
// table from a disk geometry. A malformed geometry yields meaningless
// parameters; it is validated when a disk is formatted.
func ComputeParameters(tpd, spt, bls, drm, off, skf int) ParameterBlock {
	pb := ParameterBlock{
		TPD: uint16(tpd),
		SPT: uint16(spt),
		BLS: uint16(bls),
		DRM: uint16(drm),
		OFF: uint16(off),
		SKF: uint16(skf),
	}

	spd := tpd * spt
	siz := spd * SectorSize

	dsm := -1
	if bls > 0 {
		dsm = (siz-off*spt*SectorSize)/bls - 1
	}

	// Count the one bits of bls-1. For a power of two this is log2(bls).
	bsh := bls - 1
	bsh = ((bsh >> 1) & 0x5555) + (bsh & 0x5555)
	bsh = ((bsh >> 2) & 0x3333) + (bsh & 0x3333)
	bsh = ((bsh >> 4) & 0x0f0f) + (bsh & 0x0f0f)
	bsh = (bsh & 0xff) + (bsh >> 8)
	bsh = bsh - 7

	blm := bls/SectorSize - 1

	var exm int
	if dsm < 256 {
		exm = bls/1024 - 1
	} else {
		exm = bls/2048 - 1
	}

	dsz := (drm + 1) * 32

	dbl := 0
	if bls > 0 {
		dbl = (dsz + bls - 1) / bls
	}

	alb := 0xffff
	if dbl >= 0 && dbl < 16 {
		alb = ^((1 << (16 - dbl)) - 1)
	}

	cks := (drm + 1) / 4
	alv := dsm/8 + 1

	pb.SIZ = siz
	pb.SPD = spd
	pb.DSM = uint16(dsm)
	pb.BSH = uint16(bsh)
	pb.BLM = uint16(blm)
	pb.EXM = uint16(exm)
	pb.DSZ = uint16(dsz)
	pb.DBL = uint16(dbl)
	pb.ALB = uint16(alb)
	pb.CKS = uint16(cks)
	pb.ALV = uint16(alv)
	pb.XLT = skewTable(spt, skf)
	return pb
}

// skewTable builds the sector translation table. Sectors are placed skf
// apart; after spt/gcd(spt,skf) placements the walk returns to its
// starting sector, so it restarts one sector further on.
func skewTable(spt, skf int) []byte {
	if spt <= 0 {
		return nil
	}

	xlt := make([]byte, spt)
	next, base := 0, 0
	cycle := spt / gcd(spt, skf)
	n := cycle
	for i := range xlt {
		xlt[i] = byte(next + 1)
		next += skf
		if next >= spt {
			next -= spt
		}
		if n--; n == 0 {
			n = cycle
			base++
			next = base
		}
	}
	return xlt
}

// ShowParameterBlock writes a description of a parameter block, with or
// without its translation table.
func ShowParameterBlock(w io.Writer, pb *ParameterBlock, showXLT bool) {
	fmt.Fprintf(w, "SIZ = %8d\t; TOTAL NUMBER OF BYTES IN DISK\n", pb.SIZ)
	fmt.Fprintf(w, "TPD = %8d\t; NUMBER OF TRACKS IN DISK\n", pb.TPD)
	fmt.Fprintf(w, "SPT = %8d\t; NUMBER OF SECTORS PER TRACK\n", pb.SPT)
	fmt.Fprintf(w, "DSM = %8d\t; TOTAL NUMBER OF BLOCKS IN DISK\n", pb.DSM)
	fmt.Fprintf(w, "DRM = %8d\t; TOTAL NUMBER OF DIRECTORY ENTRIES\n", pb.DRM)
	fmt.Fprintf(w, "BLS = %8d\t; DATA ALLOCATION BLOCK SIZE\n", pb.BLS)
	fmt.Fprintf(w, "BSH = %8d\t; DATA ALLOCATION BLOCK SHIFT\n", pb.BSH)
	fmt.Fprintf(w, "BLM =    0%04XH\t; DATA ALLOCATION BLOCK MASK\n", pb.BLM)
	fmt.Fprintf(w, "EXM = %8d\t; EXTENT MASK\n", pb.EXM)
	fmt.Fprintf(w, "ALB =    0%04XH\t; DIRECTORY ALLOCATION BLOCK MASK\n", pb.ALB)
	fmt.Fprintf(w, "CKS = %8d\t; SIZE OF DIRECTORY CHECK VECTOR\n", pb.CKS)
	fmt.Fprintf(w, "OFF = %8d\t; NUMBER OF RESERVED TRACKS\n", pb.OFF)
	fmt.Fprintf(w, "ALV = %8d\t; SIZE OF DATA ALLOCATION VECTOR\n", pb.ALV)
	fmt.Fprintf(w, "SKF = %8d\t; SECTOR SKEW FACTOR", pb.SKF)
	if showXLT {
		for i, x := range pb.XLT {
			if i%16 == 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, " %2d", x)
		}
	}
	fmt.Fprintln(w)
}
