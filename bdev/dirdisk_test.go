// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPMName(t *testing.T) {
	tests := []struct {
		name string
		fcb  string
		ok   bool
	}{
		{"hello.txt", "HELLO   TXT", true},
		{"README", "README     ", true},
		{"a.b", "A       B  ", true},
		{"ABCDEFGH.COM", "ABCDEFGHCOM", true},
		{"ABCDEFGHI.COM", "", false},
		{"A.TEXT", "", false},
		{".profile", "", false},
		{"two words", "", false},
	}
	for _, test := range tests {
		fcb, ok := cpmName(test.name)
		assert.Equal(t, test.ok, ok, test.name)
		if ok {
			assert.Equal(t, test.fcb, string(fcb), test.name)
		}
	}
}

func directory(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "HELLO.TXT"), bytes.Repeat([]byte{'A'}, 300), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme"), []byte("0123456789"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "toolongname.txt"), []byte("x"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0700))
	return dir
}

func TestDirectoryDiskDisabled(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.Mount("A:", t.TempDir(), false)
	var de *DiskError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "FILE", de.Op)
	assert.ErrorIs(t, err, ErrDirectoryDisk)
}

func TestDirectoryDisk(t *testing.T) {
	assert := assert.New(t)
	m, out := newTestManager()
	m.DirectoryDisks = true

	b, err := m.Mount("A:", directory(t), false)
	require.NoError(t, err)
	assert.Equal(ReadOnly, b.Status())
	assert.Equal(HardDiskGeometry, b.Parameters().Geometry())

	fcb, err := m.ReadFCB(b, 0)
	require.NoError(t, err)
	want := make([]byte, 32)
	copy(want[1:], "HELLO   TXT")
	want[15] = 3
	want[16] = 16
	assert.Equal(want, fcb)

	fcb, err = m.ReadFCB(b, 1)
	require.NoError(t, err)
	copy(want[1:], "README     ")
	want[15] = 1
	want[16] = 17
	assert.Equal(want, fcb)

	fcb, err = m.ReadFCB(b, 2)
	require.NoError(t, err)
	assert.Equal(bytes.Repeat([]byte{EmptyByte}, 32), fcb)

	// Block 16 begins at sector 256, track 4.
	buf := make([]byte, SectorSize)
	require.NoError(t, m.Read(b, 4, 0, buf))
	assert.Equal(bytes.Repeat([]byte{'A'}, SectorSize), buf)

	require.NoError(t, m.Read(b, 4, 2, buf))
	assert.Equal(bytes.Repeat([]byte{'A'}, 44), buf[:44])
	assert.Equal(bytes.Repeat([]byte{0x1a}, SectorSize-44), buf[44:])

	// Past the end of HELLO.TXT but still inside its block.
	require.NoError(t, m.Read(b, 4, 3, buf))
	assert.Equal(bytes.Repeat([]byte{0x1a}, SectorSize), buf)
	require.NoError(t, m.Read(b, 4, 15, buf))
	assert.Equal(bytes.Repeat([]byte{0x1a}, SectorSize), buf)

	require.NoError(t, m.Read(b, 4, 16, buf))
	assert.Equal([]byte("0123456789\x1a"), buf[:11])

	require.NoError(t, m.Read(b, 100, 0, buf))
	assert.Equal(sectorOf(EmptyByte), buf)

	assert.ErrorIs(m.Write(b, 4, 0, buf), ErrReadOnly)

	counts, err := m.ReadALV(b)
	require.NoError(t, err)
	assert.Equal(1, counts[15])
	assert.Equal(1, counts[16])
	assert.Equal(1, counts[17])
	assert.Equal(0, counts[18])

	require.NoError(t, m.ShowDirectory("A:"))
	assert.Equal("  0 HELLO    TXT :   0 README      \n", out.String())
	assert.NoError(m.UnmountAll())
}

func TestDirectoryDiskExtents(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	// 40000 bytes need 313 records and 20 blocks, so three directory
	// entries of 8 blocks each.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BIG.DAT"), make([]byte, 40000), 0600))

	d, pb, err := openDirDisk(dir)
	require.NoError(t, err)
	defer d.close()

	spb := int(pb.BLS) / SectorSize
	records := []byte{128, 128, 57}
	blocks := []int{8, 8, 4}
	next := int(pb.DBL)
	for i := range 3 {
		fcb := d.fcbs[i*32 : i*32+32]
		assert.Equal("BIG     DAT", string(fcb[1:12]))
		assert.Equal(byte(i), fcb[12], "extent %d", i)
		assert.Equal(records[i], fcb[15], "extent %d", i)
		for p := range blocks[i] {
			assert.Equal(byte(next), fcb[16+p*2])
			assert.Equal(byte(next>>8), fcb[17+p*2])
			next++
		}
	}
	assert.Equal(byte(EmptyByte), d.fcbs[3*32])
	assert.Equal(int(pb.DBL)*spb, d.files[0].first)
	assert.Equal((int(pb.DBL)+20)*spb-1, d.files[0].last)
}

func TestDirectoryCache(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	for i := 1; i <= 4; i++ {
		name := fmt.Sprintf("F%d", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0600))
	}

	d, pb, err := openDirDisk(dir)
	require.NoError(t, err)
	defer d.close()

	spb := int(pb.BLS) / SectorSize
	buf := make([]byte, SectorSize)
	read := func(file int) {
		t.Helper()
		require.NoError(t, d.read(d.files[file].first, buf))
		assert.Equal(fmt.Sprintf("F%d", file+1), string(buf[:2]))
	}
	cached := func() map[string]int {
		ranks := map[string]int{}
		for _, e := range d.cache {
			if e.file != nil {
				ranks[filepath.Base(e.file.path)] = e.rank
			}
		}
		return ranks
	}

	assert.Equal(int(pb.DBL)*spb, d.files[0].first)
	read(0)
	read(1)
	read(2)
	assert.Equal(map[string]int{"F1": 0, "F2": 1, "F3": 2}, cached())

	read(0)
	assert.Equal(map[string]int{"F1": 2, "F2": 0, "F3": 1}, cached())

	read(3)
	assert.Equal(map[string]int{"F1": 1, "F3": 0, "F4": 2}, cached())
}
