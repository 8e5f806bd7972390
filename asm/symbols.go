// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "iter"

// SymbolState describes how a symbol received its value.
type SymbolState byte

// Symbol states.
const (
	Undefined SymbolState = iota // referenced but not yet defined
	Label                        // defined by a label
	Equ                          // defined by EQU, immutable
	Set                          // defined by SET, may be reassigned
)

func (s SymbolState) String() string {
	switch s {
	case Label:
		return "LABEL"
	case Equ:
		return "EQU"
	case Set:
		return "SET"
	default:
		return "UNDEFINED"
	}
}

// maxNameLen is the number of significant characters in a name.
const maxNameLen = 16

// A Symbol is a named value in the assembler's symbol table.
type Symbol struct {
	Name  string
	State SymbolState
	Value int32

	left, right *Symbol
}

// symbolBuckets holds one bucket per initial letter plus one for names
// starting with anything else.
const symbolBuckets = 27

// A symbolTable keeps each bucket as a doubly-linked list sorted by name.
type symbolTable struct {
	buckets [symbolBuckets]*Symbol
}

func bucketOf(name string) int {
	if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
		return int(name[0] - 'A')
	}
	return symbolBuckets - 1
}

// lookup returns the symbol with the given name, creating an undefined
// symbol with value zero if none exists.
func (t *symbolTable) lookup(name string) *Symbol {
	b := bucketOf(name)

	var prev *Symbol
	for s := t.buckets[b]; s != nil; s = s.right {
		if s.Name == name {
			return s
		}
		if s.Name > name {
			break
		}
		prev = s
	}

	sym := &Symbol{Name: name, State: Undefined}
	if prev == nil {
		sym.right = t.buckets[b]
		t.buckets[b] = sym
	} else {
		sym.right = prev.right
		sym.left = prev
		prev.right = sym
	}
	if sym.right != nil {
		sym.right.left = sym
	}
	return sym
}

// find returns the named symbol without creating it.
func (t *symbolTable) find(name string) *Symbol {
	for s := t.buckets[bucketOf(name)]; s != nil; s = s.right {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// all yields every symbol, bucket by bucket, in sorted order within each
// bucket.
func (t *symbolTable) all() iter.Seq[*Symbol] {
	return func(yield func(*Symbol) bool) {
		for _, head := range t.buckets {
			for s := head; s != nil; s = s.right {
				if !yield(s) {
					return
				}
			}
		}
	}
}
