// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

// assembleHexRecord assembles a source line holding an Intel HEX record:
// ':' followed by a count byte, a big-endian address, a record type byte,
// count data bytes and a checksum byte. The record type is ignored, and a
// record with no data emits nothing.
func (a *assembler) assembleHexRecord() bool {
	if !a.parseChar(':') {
		a.addError(SyntaxError)
		return false
	}

	var header [4]byte
	var sum byte
	for i := range header {
		b, ok := a.parseByte()
		if !ok {
			a.addError(SyntaxError)
			return false
		}
		header[i] = b
		sum += b
	}

	count := header[0]
	if count == 0 {
		return true
	}

	a.current = int32(header[1])<<8 | int32(header[2])
	a.list.address = a.current
	for i := 0; i < int(count); i++ {
		b, ok := a.parseByte()
		if !ok {
			a.addError(SyntaxError)
			return false
		}
		sum += b
		a.emitByte(b)
	}

	cksum, ok := a.parseByte()
	if !ok {
		a.addError(SyntaxError)
		return false
	}
	if sum+cksum != 0 {
		a.addError(ValueError)
		return false
	}

	a.list.mode = listSourceAddressCode
	return true
}
