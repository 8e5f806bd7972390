// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatStandardFloppy(t *testing.T) {
	assert := assert.New(t)
	m, out := newTestManager()
	path := filepath.Join(t.TempDir(), "A.DSK")

	require.NoError(t, m.Format(path, DefaultFormat, nil))
	assert.True(strings.HasPrefix(out.String(), "FORMATTING ["+path+"] 250K...\n"))
	assert.True(strings.HasSuffix(out.String(), "CONTINUE (Y/N)? Y\nFORMAT COMPLETE.\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(data, FloppySize)
	assert.True(bytes.Equal(bytes.Repeat([]byte{EmptyByte}, FloppySize), data))

	b, err := m.Mount("A:", path, false)
	require.NoError(t, err)
	assert.Equal(FloppyGeometry, b.Parameters().Geometry())
}

func TestFormatHeader(t *testing.T) {
	assert := assert.New(t)
	m, _ := newTestManager()
	path := filepath.Join(t.TempDir(), "B.DSK")

	req := DefaultFormat
	req.BLS = 2048
	req.DRM = 1023
	req.SPT = 64
	require.NoError(t, m.Format(path, req, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(data, SectorSize+31*64*SectorSize)
	assert.True(bytes.HasPrefix(data, []byte(fileMagic+"\x00TPD=31 SPT=64 BLS=2048 DRM=1023 OFF=0 SKF=1\r\n\n")))

	b, err := m.Mount("A:", path, false)
	require.NoError(t, err)
	assert.Equal(Geometry{TPD: 31, SPT: 64, BLS: 2048, DRM: 1023, OFF: 0, SKF: 1}, b.Parameters().Geometry())

	// Sector 0 follows the header.
	require.NoError(t, m.Write(b, 0, 0, sectorOf(0x77)))
	require.NoError(t, m.Unmount("A:"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(sectorOf(0x77), data[SectorSize:2*SectorSize])
}

func TestFormatHardDisk(t *testing.T) {
	m, _ := newTestManager()
	path := filepath.Join(t.TempDir(), "HD.DSK")

	req := DefaultFormat
	req.Size = HardDiskSize
	require.NoError(t, m.Format(path, req, nil))

	b, err := m.Mount("A:", path, false)
	require.NoError(t, err)
	assert.Equal(t, HardDiskGeometry, b.Parameters().Geometry())
}

func TestFormatValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "BAD.DSK")

	tests := []struct {
		req FormatRequest
		msg string
	}{
		{FormatRequest{Size: 16 * 1024 * 1024, SPT: -1, BLS: -1, DRM: -1, OFF: -1, SKF: -1}, "16777216 > 8388608"},
		{FormatRequest{Size: -1, SPT: 300, BLS: -1, DRM: -1, OFF: -1, SKF: -1}, "-S 300 > 255"},
		{FormatRequest{Size: -1, SPT: -1, BLS: -1, DRM: 4095, OFF: -1, SKF: -1}, "-F 4095 > 2048"},
		{FormatRequest{Size: HardDiskSize, SPT: -1, BLS: 32768, DRM: -1, OFF: -1, SKF: -1}, "-B 32768 > 16384"},
		{FormatRequest{Size: -1, SPT: -1, BLS: 1000, DRM: -1, OFF: -1, SKF: -1}, "-B 1000"},
		{FormatRequest{Size: -1, SPT: -1, BLS: 512, DRM: -1, OFF: -1, SKF: -1}, "-B 512 < 2048"},
		{FormatRequest{Size: HardDiskSize, SPT: -1, BLS: 1024, DRM: -1, OFF: -1, SKF: -1}, "-B 1024 < 2048"},
		{FormatRequest{Size: -1, SPT: -1, BLS: 1024, DRM: 1023, OFF: -1, SKF: -1}, "-F 1023 -B 1024"},
		{FormatRequest{Size: 2048, SPT: -1, BLS: -1, DRM: -1, OFF: -1, SKF: -1}, "2048 < 3328"},
		{FormatRequest{Size: -1, SPT: 0, BLS: -1, DRM: -1, OFF: -1, SKF: -1}, "-S 0"},
	}

	for _, test := range tests {
		m, _ := newTestManager()
		err := m.Format(path, test.req, nil)
		if assert.ErrorIs(t, err, ErrGeometry, test.msg) {
			assert.Contains(t, err.Error(), test.msg)
		}
	}

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFormatCanceled(t *testing.T) {
	m, out := newTestManager()
	path := filepath.Join(t.TempDir(), "NO.DSK")
	require.NoError(t, os.WriteFile(path, []byte("keep"), 0600))

	var prompt string
	err := m.Format(path, DefaultFormat, func(p string) bool {
		prompt = p
		return false
	})
	assert.ErrorIs(t, err, ErrCanceled)
	assert.Equal(t, "CONTINUE (Y/N)?", prompt)
	assert.Contains(t, out.String(), "?EXISTS: ["+path+"]\n")
	assert.Contains(t, out.String(), "CONTINUE (Y/N)? N\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestCopyImages(t *testing.T) {
	assert := assert.New(t)
	m, out := newTestManager()
	dir := t.TempDir()

	a, err := m.Mount("A:", RAMDisk, false)
	require.NoError(t, err)
	require.NoError(t, m.Write(a, 2, 0, sectorOf(0x01)))
	require.NoError(t, m.Write(a, 40, 13, []byte(strings.Repeat("0123456789ABCDEF", 8))))

	ascii := filepath.Join(dir, "A.TXT")
	require.NoError(t, m.Copy("A:", ascii, ASCIIImage, nil))
	assert.Contains(out.String(), "COPYING A: ["+ascii+"] (R/O) 250K...\n")
	assert.Contains(out.String(), "COPY COMPLETE.\n")

	text, err := os.ReadFile(ascii)
	require.NoError(t, err)
	lines := strings.Split(string(text), "\n")
	assert.Equal(asciiMagic, lines[0])
	assert.Equal("TPD=77 SPT=26 BLS=1024 DRM=63 OFF=2 SKF=6", lines[1])
	assert.Equal("EMPTY SECTOR", lines[2])
	assert.Equal(strings.Repeat("E5", 32), lines[3])
	assert.Equal("80", lines[7])
	assert.Equal("TRACK 2, SECTOR 0", lines[8])
	assert.Equal("TRACK 40, SECTOR 13", lines[14])

	binary := filepath.Join(dir, "A.DSK")
	require.NoError(t, m.Copy("A:", binary, BinaryImage, nil))

	b, err := m.Mount("B:", ascii, false)
	require.NoError(t, err)
	assert.Equal(ReadOnly, b.Status())

	c, err := m.Mount("C:", binary, false)
	require.NoError(t, err)
	assert.Equal(ReadWrite, c.Status())
	assert.Equal(FloppyGeometry, c.Parameters().Geometry())

	want := make([]byte, SectorSize)
	got := make([]byte, SectorSize)
	for _, d := range []*BDev{b, c} {
		for _, ts := range [][2]uint16{{0, 0}, {2, 0}, {40, 13}, {76, 25}} {
			require.NoError(t, m.Read(a, ts[0], ts[1], want))
			require.NoError(t, m.Read(d, ts[0], ts[1], got))
			assert.Equal(want, got, "%s track %d sector %d", d.Unit(), ts[0], ts[1])
		}
	}

	assert.ErrorIs(m.Copy("D:", filepath.Join(dir, "D.DSK"), BinaryImage, nil), ErrNotOpen)
}

func asciiImage(records ...string) string {
	var b strings.Builder
	b.WriteString(asciiMagic + "\n")
	b.WriteString("TPD=2 SPT=4 BLS=1024 DRM=15 OFF=0 SKF=1\n")
	b.WriteString("EMPTY SECTOR\n")
	writeASCIIRecord(&b, sectorOf(EmptyByte))
	for _, r := range records {
		b.WriteString(r)
	}
	return b.String()
}

func asciiRecord(header string, sector []byte) string {
	var b strings.Builder
	b.WriteString(header + "\n")
	writeASCIIRecord(&b, sector)
	return b.String()
}

func TestASCIIDisk(t *testing.T) {
	assert := assert.New(t)

	d, pb, err := readASCIIDisk(strings.NewReader(asciiImage(
		asciiRecord("TRACK 1, SECTOR 2", sectorOf(0x3c)),
	)))
	require.NoError(t, err)
	assert.Equal(8, pb.SPD)

	buf := make([]byte, SectorSize)
	require.NoError(t, d.read(6, buf))
	assert.Equal(sectorOf(0x3c), buf)
	require.NoError(t, d.read(0, buf))
	assert.Equal(sectorOf(EmptyByte), buf)
	assert.ErrorIs(d.write(0, buf), ErrReadOnly)
	assert.True(d.readOnly())
}

func TestASCIIDiskErrors(t *testing.T) {
	assert := assert.New(t)

	_, _, err := readASCIIDisk(strings.NewReader("hello\n"))
	assert.ErrorIs(err, errNotASCII)

	_, _, err = readASCIIDisk(strings.NewReader(asciiMagic + "\nTPD=2 SPT=x\n"))
	assert.ErrorIs(err, ErrParameters)

	_, _, err = readASCIIDisk(strings.NewReader(asciiImage("TRACK 9, SECTOR 0\n")))
	assert.ErrorIs(err, ErrFormat)

	_, _, err = readASCIIDisk(strings.NewReader(asciiImage(asciiRecord("TRACK 2, SECTOR 0", sectorOf(0)))))
	assert.ErrorIs(err, ErrFormat)

	_, _, err = readASCIIDisk(strings.NewReader(asciiImage(asciiRecord("SECTOR 0", sectorOf(0)))))
	assert.ErrorIs(err, ErrFormat)

	bad := asciiRecord("TRACK 0, SECTOR 1", sectorOf(0x10))
	checksum := strings.Replace(bad, "10", "11", 1)
	format := strings.Replace(bad, "10", "1g", 1)
	d, _, err := readASCIIDisk(strings.NewReader(asciiImage(checksum, strings.Replace(format, "SECTOR 1", "SECTOR 2", 1))))
	require.NoError(t, err)

	buf := make([]byte, SectorSize)
	assert.ErrorIs(d.read(1, buf), ErrChecksum)
	assert.ErrorIs(d.read(2, buf), ErrFormat)
}

func TestASCIIFallsBackToFileDisk(t *testing.T) {
	assert := assert.New(t)
	m, _ := newTestManager()

	path := filepath.Join(t.TempDir(), "ODD.DSK")
	image := []byte(asciiMagic + "\nno parameters here\n")
	image = append(image, bytes.Repeat([]byte{EmptyByte}, FloppySize-len(image))...)
	require.NoError(t, os.WriteFile(path, image, 0600))

	b, err := m.Mount("A:", path, false)
	require.NoError(t, err)
	assert.Equal(ReadWrite, b.Status())
	assert.Equal(FloppyGeometry, b.Parameters().Geometry())
}

func TestASCIIDiskChecksumRead(t *testing.T) {
	assert := assert.New(t)
	m, _ := newTestManager()

	bad := asciiRecord("TRACK 0, SECTOR 1", sectorOf(0x10))
	bad = strings.Replace(bad, "10", "11", 1)
	path := filepath.Join(t.TempDir(), "BAD.TXT")
	require.NoError(t, os.WriteFile(path, []byte(asciiImage(bad)), 0600))

	b, err := m.Mount("A:", path, false)
	require.NoError(t, err)
	assert.Equal(ReadOnly, b.Status())

	buf := sectorOf(0)
	assert.ErrorIs(m.Read(b, 0, 1, buf), ErrChecksum)
	assert.Equal(sectorOf(EmptyByte), buf)
}
