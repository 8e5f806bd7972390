// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

var hex = "0123456789ABCDEF"

func hexchar(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

func hexToByte(s string) byte {
	return hexchar(s[0])<<4 | hexchar(s[1])
}

// Return a hexadecimal string representation of a byte slice.
func byteString(b []byte) string {
	if len(b) < 1 {
		return ""
	}

	s := make([]byte, len(b)*3-1)
	i, j := 0, 0
	for n := len(b) - 1; i < n; i, j = i+1, j+3 {
		s[j+0] = hex[(b[i] >> 4)]
		s[j+1] = hex[(b[i] & 0x0f)]
		s[j+2] = ' '
	}
	s[j+0] = hex[(b[i] >> 4)]
	s[j+1] = hex[(b[i] & 0x0f)]
	return string(s)
}

// parseNumeral reads a numeral from the start of s. A numeral starts with
// a decimal digit and runs through the following letters and digits; its
// final letter selects the radix: H hexadecimal, O or Q octal, B binary,
// D decimal. Without a suffix the numeral is decimal. It returns the
// value and the number of characters consumed, or n == 0 if s does not
// start with a valid numeral.
func parseNumeral(s string) (value int32, n int) {
	return scanNumeral(s, false)
}

// scanNumeral is parseNumeral with a selectable default radix. In hex
// mode unsuffixed numerals are hexadecimal and B and D are digits.
func scanNumeral(s string, hexMode bool) (value int32, n int) {
	if len(s) == 0 || !decimal(s[0]) {
		return 0, 0
	}
	for n < len(s) && alnum(s[n]) {
		n++
	}

	digits, radix := s[:n], uint32(10)
	if hexMode {
		radix = 16
	}
	switch toUpper(digits[len(digits)-1]) {
	case 'H':
		digits, radix = digits[:len(digits)-1], 16
	case 'O', 'Q':
		digits, radix = digits[:len(digits)-1], 8
	case 'B':
		if !hexMode {
			digits, radix = digits[:len(digits)-1], 2
		}
	case 'D':
		if !hexMode {
			digits, radix = digits[:len(digits)-1], 10
		}
	}

	var v uint32
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if !hexadecimal(c) {
			return 0, 0
		}
		d := uint32(hexchar(c))
		if d >= radix {
			return 0, 0
		}
		v = v*radix + d
	}
	return int32(v), n
}

// isChar reports whether v fits in a signed or unsigned byte.
func isChar(v int32) bool {
	return v >= -128 && v <= 255
}

// isShort reports whether v fits in a signed or unsigned 16-bit word.
func isShort(v int32) bool {
	return v >= -32768 && v <= 65535
}
