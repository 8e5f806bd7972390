// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memory implements the bank-switched 64K address space shared by
// the assembler, the block devices and the CPU.
package memory

import (
	"errors"
	"fmt"
	"io"
)

// The Memory interface presents an interface through which all accesses to
// emulated memory occur.
type Memory interface {
	// LoadByte loads a single byte from the address and returns it.
	LoadByte(addr uint16) byte

	// LoadBytes loads multiple bytes from the address and stores them into
	// the buffer 'b'.
	LoadBytes(addr uint16, b []byte)

	// LoadAddress loads a little-endian 16-bit value from the requested
	// address and returns it.
	LoadAddress(addr uint16) uint16

	// StoreByte stores a byte to the requested address.
	StoreByte(addr uint16, v byte)

	// StoreBytes stores multiple bytes to the requested address.
	StoreBytes(addr uint16, b []byte)

	// StoreAddress stores a little-endian 16-bit value 'v' to the requested
	// address.
	StoreAddress(addr uint16, v uint16)
}

const (
	// BankSize is the size of one logical or physical bank.
	BankSize = 16 * 1024

	// Banks is the number of logical banks in the 64K address space.
	Banks = 4

	maxPhysical = 256
)

var (
	ErrBank   = errors.New("invalid memory bank")
	ErrLayout = errors.New("invalid memory layout")
)

// BankedMemory maps the four 16K logical banks of the CPU address space
// onto physical banks of ROM and RAM. Physical banks are numbered with the
// ROM banks first. Writes to a logical bank mapped onto ROM are discarded.
type BankedMemory struct {
	rom    []byte
	ram    []byte
	bucket []byte
	index  [Banks]int
	rd     [Banks][]byte
	wr     [Banks][]byte
}

// New creates a memory with 64K of RAM and no ROM. After a reset the
// logical banks map onto the RAM banks in order, giving a flat address
// space.
func New() *BankedMemory {
	m, _ := NewBanked(0, Banks*BankSize)
	return m
}

// NewBanked creates a memory with the requested amounts of ROM and RAM.
// Both sizes must be multiples of BankSize, and together they must hold
// at least one and at most 256 banks.
func NewBanked(romSize, ramSize int) (*BankedMemory, error) {
	if romSize < 0 || ramSize < 0 || romSize%BankSize != 0 || ramSize%BankSize != 0 {
		return nil, fmt.Errorf("%w: sizes must be multiples of %d", ErrLayout, BankSize)
	}
	n := (romSize + ramSize) / BankSize
	if n == 0 || n > maxPhysical {
		return nil, fmt.Errorf("%w: %d physical banks", ErrLayout, n)
	}
	m := &BankedMemory{
		rom:    make([]byte, romSize),
		ram:    make([]byte, ramSize),
		bucket: make([]byte, BankSize),
	}
	m.Reset()
	return m, nil
}

// RomBanks returns the number of physical ROM banks.
func (m *BankedMemory) RomBanks() int {
	return len(m.rom) / BankSize
}

// PhysicalBanks returns the total number of physical ROM and RAM banks.
func (m *BankedMemory) PhysicalBanks() int {
	return (len(m.rom) + len(m.ram)) / BankSize
}

// Reset zeroes RAM and maps logical bank n onto physical bank n, wrapping
// when there are fewer than four physical banks. ROM contents survive.
func (m *BankedMemory) Reset() {
	clear(m.ram)
	clear(m.bucket)
	for i := range Banks {
		m.mapBank(i, i%m.PhysicalBanks())
	}
}

// Map selects the physical bank seen through a logical bank.
func (m *BankedMemory) Map(logical, physical int) error {
	if logical < 0 || logical >= Banks {
		return fmt.Errorf("%w: logical bank %d", ErrBank, logical)
	}
	if physical < 0 || physical >= m.PhysicalBanks() {
		return fmt.Errorf("%w: physical bank %d", ErrBank, physical)
	}
	m.mapBank(logical, physical)
	return nil
}

func (m *BankedMemory) mapBank(logical, physical int) {
	m.index[logical] = physical
	if rb := m.RomBanks(); physical < rb {
		m.rd[logical] = m.rom[physical*BankSize : (physical+1)*BankSize]
		m.wr[logical] = m.bucket
	} else {
		off := (physical - rb) * BankSize
		m.rd[logical] = m.ram[off : off+BankSize]
		m.wr[logical] = m.rd[logical]
	}
}

// Bank returns the physical bank mapped into a logical bank.
func (m *BankedMemory) Bank(logical int) int {
	return m.index[logical&(Banks-1)]
}

// IsROM reports whether a physical bank holds ROM.
func (m *BankedMemory) IsROM(physical int) bool {
	return physical < m.RomBanks()
}

// WriteROM copies b into ROM starting at a physical ROM offset. Bytes
// past the end of ROM are dropped.
func (m *BankedMemory) WriteROM(offset int, b []byte) int {
	if offset < 0 || offset >= len(m.rom) {
		return 0
	}
	return copy(m.rom[offset:], b)
}

// ReadROM returns the ROM byte at a physical offset, or zero past the end.
func (m *BankedMemory) ReadROM(offset int) byte {
	if offset < 0 || offset >= len(m.rom) {
		return 0
	}
	return m.rom[offset]
}

// ReadRAM returns the RAM byte at a physical offset, or zero past the end.
func (m *BankedMemory) ReadRAM(offset int) byte {
	if offset < 0 || offset >= len(m.ram) {
		return 0
	}
	return m.ram[offset]
}

// WriteRAM stores a RAM byte at a physical offset.
func (m *BankedMemory) WriteRAM(offset int, v byte) {
	if offset >= 0 && offset < len(m.ram) {
		m.ram[offset] = v
	}
}

// LoadByte loads a single byte from the address and returns it.
func (m *BankedMemory) LoadByte(addr uint16) byte {
	return m.rd[addr>>14][addr&(BankSize-1)]
}

// LoadBytes loads multiple bytes from the address and returns them.
// Accesses past the top of memory wrap to address zero.
func (m *BankedMemory) LoadBytes(addr uint16, b []byte) {
	for i := range b {
		b[i] = m.LoadByte(addr)
		addr++
	}
}

// LoadAddress loads a little-endian 16-bit value from the requested
// address.
func (m *BankedMemory) LoadAddress(addr uint16) uint16 {
	return uint16(m.LoadByte(addr)) | uint16(m.LoadByte(addr+1))<<8
}

// StoreByte stores a byte at the requested address.
func (m *BankedMemory) StoreByte(addr uint16, v byte) {
	m.wr[addr>>14][addr&(BankSize-1)] = v
}

// StoreBytes stores multiple bytes to the requested address. Stores past
// the top of memory wrap to address zero.
func (m *BankedMemory) StoreBytes(addr uint16, b []byte) {
	for _, v := range b {
		m.StoreByte(addr, v)
		addr++
	}
}

// StoreAddress stores a little-endian 16-bit value to the requested
// address.
func (m *BankedMemory) StoreAddress(addr uint16, v uint16) {
	m.StoreByte(addr, byte(v))
	m.StoreByte(addr+1, byte(v>>8))
}

// Get returns the byte at an address. Together with Set it lets the Z80
// execution core use the banked memory directly.
func (m *BankedMemory) Get(addr uint16) uint8 {
	return m.LoadByte(addr)
}

// Set stores a byte at an address.
func (m *BankedMemory) Set(addr uint16, v uint8) {
	m.StoreByte(addr, v)
}

// WriteLogicalMap writes one line describing where a logical bank points.
func (m *BankedMemory) WriteLogicalMap(w io.Writer, logical int) {
	first := logical * BankSize
	p := m.Bank(logical)
	kind, off := m.physical(p)
	fmt.Fprintf(w, "16K BANK %d: %04X - %04X => 16K %s %d: %08X - %08X\n",
		logical, first, first+BankSize-1, kind, p, off, off+BankSize-1)
}

// WritePhysicalMap writes one line describing a physical bank and every
// logical bank it is mapped into.
func (m *BankedMemory) WritePhysicalMap(w io.Writer, physical int) {
	kind, off := m.physical(physical)
	fmt.Fprintf(w, "16K %s %d: %08X - %08X", kind, physical, off, off+BankSize-1)
	sep := " => BANK"
	for i := range Banks {
		if m.index[i] == physical {
			fmt.Fprintf(w, "%s %d", sep, i)
			sep = ""
		}
	}
	fmt.Fprintln(w)
}

func (m *BankedMemory) physical(p int) (kind string, offset int) {
	if m.IsROM(p) {
		return "ROM", p * BankSize
	}
	return "RAM", (p - m.RomBanks()) * BankSize
}
