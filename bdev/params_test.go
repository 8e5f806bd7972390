// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloppyParameters(t *testing.T) {
	assert := assert.New(t)

	pb := FloppyGeometry.Parameters()
	assert.Equal(FloppySize, pb.SIZ)
	assert.Equal(2002, pb.SPD)
	assert.Equal(uint16(242), pb.DSM)
	assert.Equal(uint16(3), pb.BSH)
	assert.Equal(uint16(7), pb.BLM)
	assert.Equal(uint16(0), pb.EXM)
	assert.Equal(uint16(2048), pb.DSZ)
	assert.Equal(uint16(2), pb.DBL)
	assert.Equal(uint16(0xc000), pb.ALB)
	assert.Equal(uint16(16), pb.CKS)
	assert.Equal(uint16(31), pb.ALV)
	assert.Equal([]byte{
		1, 7, 13, 19, 25, 5, 11, 17, 23, 3, 9, 15, 21,
		2, 8, 14, 20, 26, 6, 12, 18, 24, 4, 10, 16, 22,
	}, pb.XLT)
	assert.Equal(FloppyGeometry, pb.Geometry())
}

func TestHardDiskParameters(t *testing.T) {
	assert := assert.New(t)

	pb := HardDiskGeometry.Parameters()
	assert.Equal(HardDiskSize, pb.SIZ)
	assert.Equal(40960, pb.SPD)
	assert.Equal(uint16(2559), pb.DSM)
	assert.Equal(uint16(4), pb.BSH)
	assert.Equal(uint16(15), pb.BLM)
	assert.Equal(uint16(0), pb.EXM)
	assert.Equal(uint16(16), pb.DBL)
	assert.Equal(uint16(0xffff), pb.ALB)
	assert.Equal(uint16(256), pb.CKS)
	assert.Equal(uint16(320), pb.ALV)
	for i, x := range pb.XLT {
		assert.Equal(byte(i+1), x)
	}
}

func TestParametersDeterministic(t *testing.T) {
	a := ComputeParameters(31, 64, 2048, 1023, 0, 1)
	b := ComputeParameters(31, 64, 2048, 1023, 0, 1)
	assert.Equal(t, a, b)
}

func TestSkewTablePermutation(t *testing.T) {
	for _, c := range []struct{ spt, skf int }{
		{26, 6}, {26, 1}, {64, 1}, {64, 4}, {32, 8}, {9, 3}, {255, 17},
	} {
		xlt := skewTable(c.spt, c.skf)
		if !assert.Len(t, xlt, c.spt) {
			continue
		}
		sorted := append([]byte(nil), xlt...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		for i, x := range sorted {
			assert.Equal(t, byte(i+1), x, "spt=%d skf=%d", c.spt, c.skf)
		}
	}
}

func TestGCD(t *testing.T) {
	assert.Equal(t, 2, gcd(26, 6))
	assert.Equal(t, 1, gcd(26, 1))
	assert.Equal(t, 8, gcd(64, 8))
	assert.Equal(t, 1, gcd(26, 0))
	assert.Equal(t, 1, gcd(26, -3))
}

func TestMalformedGeometry(t *testing.T) {
	assert.NotPanics(t, func() {
		ComputeParameters(0, 0, 0, 0, 0, 0)
		ComputeParameters(10, 26, 1024, 63, 0, 0)
		ComputeParameters(1, 1, 128, 2048, 0, 1)
	})
}

func TestShowParameterBlock(t *testing.T) {
	assert := assert.New(t)

	var b bytes.Buffer
	pb := FloppyGeometry.Parameters()
	ShowParameterBlock(&b, &pb, true)

	out := b.String()
	assert.Contains(out, "SIZ =   256256\t; TOTAL NUMBER OF BYTES IN DISK\n")
	assert.Contains(out, "DSM =      242\t; TOTAL NUMBER OF BLOCKS IN DISK\n")
	assert.Contains(out, "BLM =    00007H\t; DATA ALLOCATION BLOCK MASK\n")
	assert.Contains(out, "ALB =    0C000H\t; DIRECTORY ALLOCATION BLOCK MASK\n")
	assert.Contains(out, "SKF =        6\t; SECTOR SKEW FACTOR\n"+
		"  1  7 13 19 25  5 11 17 23  3  9 15 21  2  8 14\n"+
		" 20 26  6 12 18 24  4 10 16 22\n")

	b.Reset()
	ShowParameterBlock(&b, &pb, false)
	assert.True(bytes.HasSuffix(b.Bytes(), []byte("SKF =        6\t; SECTOR SKEW FACTOR\n")))
}
