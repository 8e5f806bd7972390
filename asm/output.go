// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

const emitBufferSize = 16

// An emitBuffer stages up to 16 contiguous code bytes. Its flush is the
// only path by which code reaches memory, the code file and the object
// file.
type emitBuffer struct {
	addr uint16
	buf  [emitBufferSize]byte
	n    int
	next int32 // address the next contiguous byte would occupy
}

// emitByte emits one code byte at the current address. Code is only
// staged during the final pass; the current address always advances.
func (a *assembler) emitByte(b byte) {
	if a.final {
		a.list.record(b)

		e := &a.emit
		if e.n >= emitBufferSize || a.current != e.next {
			a.flush()
		}
		if e.n == 0 {
			e.addr = uint16(a.current)
		}
		e.buf[e.n] = b
		e.n++

		if a.current > a.maxAddress {
			a.maxAddress = a.current
		}
	}

	a.current = (a.current + 1) & 0xffff
	a.emit.next = a.current
}

// emitWord emits a little-endian 16-bit word.
func (a *assembler) emitWord(v int32) {
	a.emitByte(byte(v))
	a.emitByte(byte(v >> 8))
}

// flush writes the staged bytes to every output and empties the buffer.
// With the strip-zeros option a buffer holding only zeros is dropped.
func (a *assembler) flush() {
	e := &a.emit
	if e.n > 0 && !(a.stripZeros && allZero(e.buf[:e.n])) {
		addr := e.addr + a.bias
		code := e.buf[:e.n]
		if a.target != nil {
			a.target.StoreBytes(addr, code)
		}
		if a.code != nil {
			a.code.write(addr, code)
		}
		if a.object != nil {
			a.object.write(addr, code)
		}
		a.logBytes(addr, code)
	}
	e.n = 0
	e.next = a.current
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// A codeFile writes emitted code as the body of a C byte array. Each
// flush contributes a record of count, address high, address low and
// the data bytes; a zero count terminates the array.
type codeFile struct {
	w     *bufio.Writer
	c     io.Closer
	index int
}

func createCodeFile(path string) (*codeFile, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, err
	}
	c := &codeFile{w: bufio.NewWriter(f), c: f}
	fmt.Fprintf(c.w, "/* %s GENERATED BY USIM ASSEMBLER */\n\n", path)
	return c, nil
}

func (c *codeFile) separator() {
	if c.index%16 != 0 {
		c.w.WriteByte(' ')
	}
	c.index++
}

func (c *codeFile) item(b byte) {
	c.separator()
	fmt.Fprintf(c.w, "0x%02X,", b)
	if c.index%16 == 0 {
		c.w.WriteByte('\n')
	}
}

func (c *codeFile) write(addr uint16, code []byte) {
	c.item(byte(len(code)))
	c.item(byte(addr >> 8))
	c.item(byte(addr))
	for _, b := range code {
		c.item(b)
	}
}

func (c *codeFile) close() error {
	c.separator()
	fmt.Fprintf(c.w, "0x%02X\n", 0)
	err := c.w.Flush()
	if cerr := c.c.Close(); err == nil {
		err = cerr
	}
	return err
}

// An objectFile writes emitted code as Intel HEX data records.
type objectFile struct {
	w *bufio.Writer
	c io.Closer
}

func createObjectFile(path string) (*objectFile, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, err
	}
	return &objectFile{w: bufio.NewWriter(f), c: f}, nil
}

func (o *objectFile) write(addr uint16, code []byte) {
	writeHexRecord(o.w, addr, code)
}

func (o *objectFile) close() error {
	fmt.Fprint(o.w, ":00000000\n")
	err := o.w.Flush()
	if cerr := o.c.Close(); err == nil {
		err = cerr
	}
	return err
}

// writeHexRecord writes one HEX data record. The checksum byte makes the
// sum of the record's bytes zero.
func writeHexRecord(w io.Writer, addr uint16, code []byte) {
	sum := byte(len(code)) + byte(addr>>8) + byte(addr)
	fmt.Fprintf(w, ":%02X%04X00", len(code), addr)
	for _, b := range code {
		fmt.Fprintf(w, "%02X", b)
		sum += b
	}
	fmt.Fprintf(w, "%02X\n", -sum)
}
