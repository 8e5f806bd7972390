// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bdev

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/beevik/usim/memory"
)

// Units is the number of block devices.
const Units = 16

// RAMDisk is the name that mounts a RAM disk.
const RAMDisk = "RAMDISK"

// A Status describes whether a block device is mounted and writable.
type Status int

// Block device states.
const (
	Closed Status = iota
	ReadOnly
	ReadWrite
)

func (s Status) String() string {
	switch s {
	case ReadOnly:
		return "R/O"
	case ReadWrite:
		return "R/W"
	default:
		return "CLOSED"
	}
}

// A BDev is one of the 16 emulated CP/M disk drives.
type BDev struct {
	unit  string // "A:" through "P:"
	index int
	name  string
	be    backend
	pb    ParameterBlock

	// Addresses read from the disk parameter header by the most recent
	// parameter install.
	dpAddress  uint16
	xltAddress uint16
	pbAddress  uint16
	csvAddress uint16
	alvAddress uint16

	// Shadow copies of the allocation and check vectors, saved when
	// another drive's parameters are installed.
	alv []byte
	csv []byte
}

// Unit returns the drive name of the block device, such as "A:".
func (b *BDev) Unit() string { return b.unit }

// Index returns the drive number, 0 for A: through 15 for P:.
func (b *BDev) Index() int { return b.index }

// Name returns the name of the mounted disk, or an empty string.
func (b *BDev) Name() string { return b.name }

// IsOpen returns true if a disk is mounted.
func (b *BDev) IsOpen() bool { return b.be != nil }

// Parameters returns the disk's parameter block.
func (b *BDev) Parameters() *ParameterBlock { return &b.pb }

// Status returns the mount state of the block device.
func (b *BDev) Status() Status {
	switch {
	case b.be == nil:
		return Closed
	case b.be.readOnly():
		return ReadOnly
	default:
		return ReadWrite
	}
}

func (b *BDev) diskError(op string, err error) error {
	return &DiskError{Op: op, Unit: b.unit, Name: b.name, Err: err}
}

// sectorIndex converts a track and sector to a linear sector index. Small
// disks only see the low 8 bits of each, as a CP/M BIOS with 8-bit track
// and sector registers would.
func (b *BDev) sectorIndex(track, sector uint16) (int, error) {
	if b.pb.SPT < 256 {
		sector &= 0xff
	}
	if b.pb.TPD < 256 {
		track &= 0xff
	}
	index := int(track)*int(b.pb.SPT) + int(sector)
	if index >= b.pb.SPD {
		return 0, ErrRange
	}
	return index, nil
}

// A Manager owns the 16 block devices of an emulated CP/M system.
type Manager struct {
	// DirectoryDisks allows host directories to be mounted as read-only
	// disks.
	DirectoryDisks bool

	units    [Units]BDev
	previous *BDev
	out      io.Writer
	logger   *slog.Logger
}

// NewManager creates a block device manager with every unit closed.
// Reports are written to out.
func NewManager(out io.Writer, logger *slog.Logger) *Manager {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Manager{out: out, logger: logger}
	for i := range m.units {
		m.units[i].index = i
		m.units[i].unit = string(rune('A'+i)) + ":"
	}
	return m
}

// Unit returns the block device with the given drive name. The name may
// be given as "A:", "a:" or "A".
func (m *Manager) Unit(unit string) (*BDev, error) {
	u := strings.TrimSuffix(strings.ToUpper(unit), ":")
	if len(u) != 1 || u[0] < 'A' || u[0] >= 'A'+Units {
		return nil, fmt.Errorf("%w: %s", ErrUnknownUnit, unit)
	}
	return &m.units[u[0]-'A'], nil
}

// Index returns the block device with the given drive number.
func (m *Manager) Index(n int) (*BDev, error) {
	if n < 0 || n >= Units {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUnit, n)
	}
	return &m.units[n], nil
}

// Status returns the mount state of a block device.
func (m *Manager) Status(unit string) (Status, string, error) {
	b, err := m.Unit(unit)
	if err != nil {
		return Closed, "", err
	}
	return b.Status(), b.name, nil
}

// DefaultName returns the disk name used when a unit is mounted without
// one, such as DISKA.DSK.
func DefaultName(b *BDev) string {
	return "DISK" + b.unit[:1] + ".DSK"
}

// Mount opens a disk on a block device. An empty name mounts the unit's
// default disk and "." cancels the mount. A RAM disk is created for the
// name RAMDISK; otherwise the name is a host directory, an ASCII disk
// image or a binary disk image.
func (m *Manager) Mount(unit, name string, readOnly bool) (*BDev, error) {
	b, err := m.Unit(unit)
	if err != nil {
		return nil, err
	}
	if b.IsOpen() {
		return nil, b.diskError("MOUNT", ErrMounted)
	}

	if name == "" {
		name = DefaultName(b)
	}
	if name == "." {
		return nil, ErrCanceled
	}

	for i := range m.units {
		o := &m.units[i]
		if o != b && o.IsOpen() && o.name == name {
			return nil, &DiskError{Op: "MOUNT", Unit: b.unit, Name: name, Err: ErrInUse}
		}
	}

	b.name = name
	b.dpAddress, b.xltAddress, b.pbAddress, b.csvAddress, b.alvAddress = 0, 0, 0, 0, 0
	b.alv, b.csv = nil, nil

	be, pb, err := m.open(b, name, readOnly)
	if err != nil {
		b.name = ""
		return nil, err
	}

	b.be, b.pb = be, pb
	b.alv = make([]byte, pb.ALV)
	b.csv = make([]byte, pb.CKS)

	m.logger.Info("mounted disk",
		slog.String("unit", b.unit),
		slog.String("name", name),
		slog.String("status", b.Status().String()),
		slog.Int("size", pb.SIZ))
	return b, nil
}

// open selects and opens the backend for a disk name.
func (m *Manager) open(b *BDev, name string, readOnly bool) (backend, ParameterBlock, error) {
	if strings.EqualFold(name, RAMDisk) {
		if readOnly {
			return nil, ParameterBlock{}, b.diskError("RDONLY", ErrReadOnly)
		}
		return newRAMDisk(), FloppyGeometry.Parameters(), nil
	}

	if fi, err := os.Stat(name); err == nil && fi.IsDir() {
		if !m.DirectoryDisks {
			return nil, ParameterBlock{}, b.diskError("FILE", ErrDirectoryDisk)
		}
		d, pb, err := openDirDisk(name)
		if err != nil {
			return nil, pb, b.diskError("OPEN", err)
		}
		return d, pb, nil
	}

	a, pb, err := openASCIIDisk(name)
	if err == nil {
		return a, pb, nil
	}
	if !errors.Is(err, errNotASCII) && !errors.Is(err, os.ErrNotExist) {
		m.logger.Warn("not an ASCII disk image",
			slog.String("unit", b.unit),
			slog.String("name", name),
			slog.Any("error", err))
	}

	f, pb, err := openFileDisk(name, readOnly)
	if err != nil {
		return nil, pb, b.diskError("OPEN", err)
	}
	return f, pb, nil
}

// Unmount closes the disk mounted on a block device. Unmounting a closed
// unit does nothing.
func (m *Manager) Unmount(unit string) error {
	b, err := m.Unit(unit)
	if err != nil {
		return err
	}
	return m.close(b)
}

// UnmountAll closes every mounted disk.
func (m *Manager) UnmountAll() error {
	var errs []error
	for i := range m.units {
		errs = append(errs, m.close(&m.units[i]))
	}
	return errors.Join(errs...)
}

func (m *Manager) close(b *BDev) error {
	if b.be == nil {
		return nil
	}
	err := b.be.close()
	m.logger.Info("unmounted disk",
		slog.String("unit", b.unit),
		slog.String("name", b.name))
	if m.previous == b {
		m.previous = nil
	}
	b.be = nil
	b.name = ""
	if err != nil {
		return b.diskError("CLOSE", err)
	}
	return nil
}

// Read reads a sector from a block device. When the read fails the
// sector is filled with the erased-sector pattern and an error is
// returned.
func (m *Manager) Read(b *BDev, track, sector uint16, buf []byte) error {
	err := m.read(b, track, sector, buf)
	if err != nil {
		emptySector(buf[:SectorSize])
		m.logger.Error("disk read failed",
			slog.String("unit", b.unit),
			slog.Int("track", int(track)),
			slog.Int("sector", int(sector)),
			slog.Any("error", err))
	}
	return err
}

func (m *Manager) read(b *BDev, track, sector uint16, buf []byte) error {
	if b.be == nil {
		return ErrNotOpen
	}
	index, err := b.sectorIndex(track, sector)
	if err != nil {
		return err
	}
	return b.be.read(index, buf[:SectorSize])
}

// Write writes a sector to a block device.
func (m *Manager) Write(b *BDev, track, sector uint16, buf []byte) error {
	err := m.write(b, track, sector, buf)
	if err != nil {
		m.logger.Error("disk write failed",
			slog.String("unit", b.unit),
			slog.Int("track", int(track)),
			slog.Int("sector", int(sector)),
			slog.Any("error", err))
	}
	return err
}

func (m *Manager) write(b *BDev, track, sector uint16, buf []byte) error {
	if b.be == nil {
		return ErrNotOpen
	}
	if b.be.readOnly() {
		return ErrReadOnly
	}
	index, err := b.sectorIndex(track, sector)
	if err != nil {
		return err
	}
	return b.be.write(index, buf[:SectorSize])
}

// InstallParameters copies a block device's disk parameter block and
// sector translation table into memory. The disk parameter header at
// dpAddress supplies the addresses of the translation table, the
// parameter block and the check and allocation vectors.
//
// CP/M shares one set of vectors among all drives, so the vectors of the
// drive installed previously are saved before this drive's are restored.
// A closed unit receives standard floppy parameters and ErrNotOpen is
// returned.
func (m *Manager) InstallParameters(mem memory.Memory, b *BDev, dpAddress uint16) error {
	if b.be == nil {
		b.pb = FloppyGeometry.Parameters()
		b.alv = make([]byte, b.pb.ALV)
		b.csv = make([]byte, b.pb.CKS)
	}

	b.dpAddress = dpAddress
	b.xltAddress = mem.LoadAddress(dpAddress + 0)
	b.pbAddress = mem.LoadAddress(dpAddress + 10)
	b.csvAddress = mem.LoadAddress(dpAddress + 12)
	b.alvAddress = mem.LoadAddress(dpAddress + 14)

	pb := &b.pb
	dpb := []byte{
		byte(pb.SPT), byte(pb.SPT >> 8),
		byte(pb.BSH),
		byte(pb.BLM),
		byte(pb.EXM),
		byte(pb.DSM), byte(pb.DSM >> 8),
		byte(pb.DRM), byte(pb.DRM >> 8),
		byte(pb.ALB >> 8), byte(pb.ALB),
		byte(pb.CKS), byte(pb.CKS >> 8),
		byte(pb.OFF), byte(pb.OFF >> 8),
	}
	mem.StoreBytes(b.pbAddress, dpb)

	if b.xltAddress != 0 {
		mem.StoreBytes(b.xltAddress, pb.XLT)
	}

	if p := m.previous; p != nil {
		mem.LoadBytes(p.alvAddress, p.alv)
		mem.LoadBytes(p.csvAddress, p.csv)
	}
	m.previous = b

	mem.StoreBytes(b.alvAddress, b.alv)
	mem.StoreBytes(b.csvAddress, b.csv)

	if b.be == nil {
		return b.diskError("NOMOUNT", ErrNotOpen)
	}
	return nil
}

// ReadFCB reads directory entry n of a mounted disk.
func (m *Manager) ReadFCB(b *BDev, n int) ([]byte, error) {
	pb := &b.pb
	if b.be == nil || pb.SPT == 0 {
		return nil, b.diskError("NOMOUNT", ErrNotOpen)
	}

	sector := n / 4
	track := int(pb.OFF) + sector/int(pb.SPT)
	physical := int(pb.XLT[sector%int(pb.SPT)]) - 1

	buf := make([]byte, SectorSize)
	err := m.Read(b, uint16(track), uint16(physical), buf)

	fcb := make([]byte, 32)
	copy(fcb, buf[(n%4)*32:])
	return fcb, err
}

// ReadALV computes a disk's data block reference counts from its
// directory. The directory's own blocks have a count of one.
func (m *Manager) ReadALV(b *BDev) ([]int, error) {
	pb := &b.pb
	counts := make([]int, int(pb.ALV)*8)
	for i := 0; i < int(pb.DBL) && i < len(counts); i++ {
		counts[i] = 1
	}

	wide := pb.DSM >= 256
	for i := 0; i <= int(pb.DRM); i++ {
		fcb, err := m.ReadFCB(b, i)
		if err != nil {
			return nil, err
		}
		if fcb[0] == EmptyByte {
			continue
		}
		for j := 16; j < 32; j++ {
			block := int(fcb[j])
			if wide {
				block = int(fcb[j]) | int(fcb[j+1])<<8
				j++
			}
			if block == 0 {
				break
			}
			if block < len(counts) {
				counts[block]++
			}
		}
	}
	return counts, nil
}

// A ConfirmFunc asks the user to confirm a destructive operation after
// the prompt has been written. A nil ConfirmFunc confirms everything.
type ConfirmFunc func(prompt string) bool

func (m *Manager) confirm(fn ConfirmFunc) bool {
	fmt.Fprint(m.out, "CONTINUE (Y/N)?")
	ok := fn == nil || fn("CONTINUE (Y/N)?")
	if ok {
		fmt.Fprintln(m.out, " Y")
	} else {
		fmt.Fprintln(m.out, " N")
	}
	return ok
}

// EraseSystemTracks fills the reserved system tracks of a disk with the
// erased-sector pattern.
func (m *Manager) EraseSystemTracks(b *BDev, confirm ConfirmFunc) error {
	if b.be == nil {
		return b.diskError("NOMOUNT", ErrNotOpen)
	}

	fmt.Fprintf(m.out, "ABOUT TO ERASE %d SYSTEM TRACKS ON %s => %s\n", b.pb.OFF, b.unit, b.name)
	if !m.confirm(confirm) {
		return ErrCanceled
	}

	buf := make([]byte, SectorSize)
	emptySector(buf)
	for t := 0; t < int(b.pb.OFF); t++ {
		for s := 0; s < int(b.pb.SPT); s++ {
			if err := m.Write(b, uint16(t), uint16(s), buf); err != nil {
				return b.diskError("WRITE", err)
			}
		}
	}

	fmt.Fprintln(m.out, "SYSTEM TRACKS ERASED.")
	return nil
}
