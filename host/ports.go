// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"io"
	"log/slog"

	"github.com/beevik/usim/bdev"
	"github.com/beevik/usim/memory"
)

// Console ports, relative to the ConsolePort setting.
const (
	consoleStatus = iota // in: 0FFH when console input is ready
	consoleData          // in: next input byte; out: output byte
	consolePorts
)

// Disk controller ports, relative to the DiskPort setting. The controller
// transfers one sector between the selected unit and memory at the DMA
// address each time a command is written to diskCommand.
const (
	diskSelect = iota // unit number, 0 through 15
	diskTrackLo
	diskTrackHi
	diskSectorLo
	diskSectorHi
	diskDMALo
	diskDMAHi
	diskCommand // out: command; in: status of the last one
	diskPorts
)

// Memory bank ports follow the BankPort setting, one per logical bank.
// Writing a physical bank number maps it into the logical bank.

// Disk controller commands.
const (
	diskRead       = 0 // read a sector into memory
	diskWrite      = 1 // write a sector from memory
	diskParameters = 2 // install parameters for the disk header at DMA
)

// Disk controller status codes.
const (
	diskOK       = 0
	diskError    = 1
	diskReadOnly = 2
)

// bankedMemory is memory whose logical banks can be remapped.
type bankedMemory interface {
	memory.Memory
	Map(logical, physical int) error
	Bank(logical int) int
}

// ports implements the Z80 core's I/O interface.
type ports struct {
	mem    bankedMemory
	disks  *bdev.Manager
	out    io.Writer
	logger *slog.Logger

	console byte // base port numbers
	disk    byte
	bank    byte

	input  []byte // pending console input
	unit   byte
	track  uint16
	sector uint16
	dma    uint16
	status byte
}

func newPorts(mem bankedMemory, disks *bdev.Manager, out io.Writer, logger *slog.Logger) *ports {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ports{
		mem:     mem,
		disks:   disks,
		out:     out,
		logger:  logger,
		console: 0x00,
		disk:    0x10,
		bank:    0x20,
	}
}

// queue appends bytes to the pending console input.
func (p *ports) queue(b []byte) {
	p.input = append(p.input, b...)
}

func (p *ports) In(port uint8) uint8 {
	switch {
	case port-p.console < consolePorts:
		return p.consoleIn(port - p.console)
	case port-p.disk < diskPorts:
		return p.diskIn(port - p.disk)
	case port-p.bank < memory.Banks:
		return byte(p.mem.Bank(int(port - p.bank)))
	default:
		p.logger.Debug("read from unassigned port", slog.Int("port", int(port)))
		return 0xff
	}
}

func (p *ports) Out(port uint8, value uint8) {
	switch {
	case port-p.console == consoleData:
		p.out.Write([]byte{value & 0x7f})
	case port-p.disk < diskPorts:
		p.diskOut(port-p.disk, value)
	case port-p.bank < memory.Banks:
		if err := p.mem.Map(int(port-p.bank), int(value)); err != nil {
			p.logger.Warn("bank select failed", slog.Int("port", int(port)), slog.Any("error", err))
		}
	default:
		p.logger.Debug("write to unassigned port",
			slog.Int("port", int(port)),
			slog.Int("value", int(value)))
	}
}

func (p *ports) consoleIn(offset byte) byte {
	switch offset {
	case consoleStatus:
		if len(p.input) > 0 {
			return 0xff
		}
		return 0x00
	default:
		if len(p.input) == 0 {
			return 0x00
		}
		c := p.input[0]
		p.input = p.input[1:]
		return c
	}
}

func (p *ports) diskIn(offset byte) byte {
	switch offset {
	case diskSelect:
		return p.unit
	case diskTrackLo:
		return byte(p.track)
	case diskTrackHi:
		return byte(p.track >> 8)
	case diskSectorLo:
		return byte(p.sector)
	case diskSectorHi:
		return byte(p.sector >> 8)
	case diskDMALo:
		return byte(p.dma)
	case diskDMAHi:
		return byte(p.dma >> 8)
	default:
		return p.status
	}
}

func (p *ports) diskOut(offset, value byte) {
	switch offset {
	case diskSelect:
		p.unit = value
	case diskTrackLo:
		p.track = p.track&0xff00 | uint16(value)
	case diskTrackHi:
		p.track = p.track&0x00ff | uint16(value)<<8
	case diskSectorLo:
		p.sector = p.sector&0xff00 | uint16(value)
	case diskSectorHi:
		p.sector = p.sector&0x00ff | uint16(value)<<8
	case diskDMALo:
		p.dma = p.dma&0xff00 | uint16(value)
	case diskDMAHi:
		p.dma = p.dma&0x00ff | uint16(value)<<8
	default:
		p.status = p.command(value)
	}
}

// command runs a disk controller command and returns its status.
func (p *ports) command(cmd byte) byte {
	b, err := p.disks.Index(int(p.unit))
	if err != nil {
		return diskError
	}

	var buf [bdev.SectorSize]byte
	switch cmd {
	case diskRead:
		err = p.disks.Read(b, p.track, p.sector, buf[:])
		p.mem.StoreBytes(p.dma, buf[:])
	case diskWrite:
		p.mem.LoadBytes(p.dma, buf[:])
		err = p.disks.Write(b, p.track, p.sector, buf[:])
	case diskParameters:
		err = p.disks.InstallParameters(p.mem, b, p.dma)
	default:
		p.logger.Warn("unknown disk command", slog.Int("command", int(cmd)))
		return diskError
	}

	switch {
	case err == nil:
		return diskOK
	case errors.Is(err, bdev.ErrReadOnly):
		return diskReadOnly
	default:
		return diskError
	}
}
