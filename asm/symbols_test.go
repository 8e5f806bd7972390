// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSymbolTable(t *testing.T) {
	var st symbolTable

	for _, name := range []string{"BETA", "ALPHA", "AB", "BA", "?X", "ZED"} {
		s := st.lookup(name)
		assert.Equal(t, name, s.Name)
		assert.Equal(t, Undefined, s.State)
	}

	s := st.lookup("ALPHA")
	s.State, s.Value = Label, 0x100
	assert.Same(t, s, st.lookup("ALPHA"))
	assert.Same(t, s, st.find("ALPHA"))
	assert.Nil(t, st.find("GAMMA"))

	var names []string
	for s := range st.all() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"AB", "ALPHA", "BA", "BETA", "ZED", "?X"}, names)
}

func TestSymbolLinks(t *testing.T) {
	var st symbolTable
	c := st.lookup("C")
	a := st.lookup("A")
	b := st.lookup("AB")

	assert.Same(t, a, st.buckets[0])
	assert.Same(t, b, a.right)
	assert.Same(t, a, b.left)
	assert.Nil(t, b.right)
	assert.Same(t, c, st.buckets[2])
}

func TestSymbolState(t *testing.T) {
	assert.Equal(t, "LABEL", Label.String())
	assert.Equal(t, "EQU", Equ.String())
	assert.Equal(t, "SET", Set.String())
	assert.Equal(t, "UNDEFINED", Undefined.String())
}
