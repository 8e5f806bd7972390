// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/usim/bdev"
	"github.com/beevik/usim/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPorts(t *testing.T) (*ports, *memory.BankedMemory, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	mem := memory.New()
	disks := bdev.NewManager(&out, nil)
	_, err := disks.Mount("A", bdev.RAMDisk, false)
	require.NoError(t, err)
	out.Reset()
	return newPorts(mem, disks, &out, nil), mem, &out
}

func emptyTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "DISK.DSK")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{bdev.EmptyByte}, bdev.FloppySize), 0600))
	return path
}

func (p *ports) setup(unit byte, track, sector, dma uint16) {
	p.Out(p.disk+diskSelect, unit)
	p.Out(p.disk+diskTrackLo, byte(track))
	p.Out(p.disk+diskTrackHi, byte(track>>8))
	p.Out(p.disk+diskSectorLo, byte(sector))
	p.Out(p.disk+diskSectorHi, byte(sector>>8))
	p.Out(p.disk+diskDMALo, byte(dma))
	p.Out(p.disk+diskDMAHi, byte(dma>>8))
}

func TestConsolePorts(t *testing.T) {
	assert := assert.New(t)
	p, _, out := newTestPorts(t)

	assert.Equal(uint8(0x00), p.In(0x00))
	p.queue([]byte("hi"))
	assert.Equal(uint8(0xff), p.In(0x00))
	assert.Equal(uint8('h'), p.In(0x01))
	assert.Equal(uint8('i'), p.In(0x01))
	assert.Equal(uint8(0x00), p.In(0x00))

	p.Out(0x01, 'O')
	p.Out(0x01, 'K'|0x80)
	assert.Equal("OK", out.String())
}

func TestDiskPorts(t *testing.T) {
	assert := assert.New(t)
	p, mem, _ := newTestPorts(t)

	sector := bytes.Repeat([]byte{0x5a}, bdev.SectorSize)
	mem.StoreBytes(0x8000, sector)

	p.setup(0, 3, 5, 0x8000)
	assert.Equal(uint16(3), p.track)
	assert.Equal(uint16(5), p.sector)
	assert.Equal(uint16(0x8000), p.dma)

	p.Out(0x17, diskWrite)
	assert.Equal(uint8(diskOK), p.In(0x17))

	p.setup(0, 3, 5, 0x9000)
	p.Out(0x17, diskRead)
	assert.Equal(uint8(diskOK), p.In(0x17))

	buf := make([]byte, bdev.SectorSize)
	mem.LoadBytes(0x9000, buf)
	assert.Equal(sector, buf)

	// Unit B is not mounted.
	p.setup(1, 0, 0, 0x9000)
	p.Out(0x17, diskRead)
	assert.Equal(uint8(diskError), p.In(0x17))

	p.setup(0, 0, 0, 0x9000)
	p.Out(0x17, 0x7f)
	assert.Equal(uint8(diskError), p.In(0x17))
}

func TestDiskPortsReadOnly(t *testing.T) {
	p, _, _ := newTestPorts(t)
	require.NoError(t, p.disks.Unmount("A"))

	path := emptyTestImage(t)
	_, err := p.disks.Mount("A", path, true)
	require.NoError(t, err)

	p.setup(0, 2, 0, 0x8000)
	p.Out(0x17, diskWrite)
	assert.Equal(t, uint8(diskReadOnly), p.In(0x17))
}

func TestUnassignedPorts(t *testing.T) {
	p, _, out := newTestPorts(t)
	assert.Equal(t, uint8(0xff), p.In(0x80))
	p.Out(0x80, 0x12)
	assert.Empty(t, out.String())
}

func TestBankPorts(t *testing.T) {
	assert := assert.New(t)
	p, mem, _ := newTestPorts(t)

	assert.Equal(uint8(1), p.In(0x21))
	mem.StoreByte(0x0010, 0x99)

	// Map RAM bank 0 into logical bank 3 as well.
	p.Out(0x23, 0)
	assert.Equal(uint8(0), p.In(0x23))
	assert.Equal(byte(0x99), mem.LoadByte(0xc010))

	// An invalid physical bank leaves the map alone.
	p.Out(0x22, 9)
	assert.Equal(uint8(2), p.In(0x22))
}

func TestRelocatedPorts(t *testing.T) {
	assert := assert.New(t)
	p, mem, out := newTestPorts(t)
	p.console, p.disk, p.bank = 0x80, 0x40, 0xf0

	p.queue([]byte("x"))
	assert.Equal(uint8(0xff), p.In(0x80))
	assert.Equal(uint8('x'), p.In(0x81))
	p.Out(0x81, 'Y')
	assert.Equal("Y", out.String())

	// The old console data port is now unassigned.
	p.Out(0x01, 'N')
	assert.Equal("Y", out.String())

	mem.StoreBytes(0x8000, bytes.Repeat([]byte{0x11}, bdev.SectorSize))
	p.setup(0, 2, 1, 0x8000)
	p.Out(0x47, diskWrite)
	assert.Equal(uint8(diskOK), p.In(0x47))
	assert.Equal(uint8(0xff), p.In(0x17))

	assert.Equal(uint8(3), p.In(0xf3))
}
