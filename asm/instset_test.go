// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstructionSetLookup(t *testing.T) {
	s8080, sz80 := Set8080(), SetZ80()
	assert.Equal(t, I8080, s8080.Variant)
	assert.Equal(t, Z80, sz80.Variant)

	assert.NotNil(t, s8080.LookupOpcode("MVI"))
	assert.Nil(t, s8080.LookupOpcode("LD"))
	assert.NotNil(t, sz80.LookupOpcode("LD"))
	assert.Nil(t, sz80.LookupOpcode("MVI"))

	assert.True(t, s8080.LookupRegister("PSW"))
	assert.True(t, s8080.LookupRegister("M"))
	assert.False(t, s8080.LookupRegister("IX"))
	assert.True(t, sz80.LookupRegister("IX"))
	assert.True(t, sz80.LookupRegister("AF'"))
	assert.True(t, sz80.LookupRegister("NZ"))
	assert.False(t, sz80.LookupRegister("PSW"))

	assert.Same(t, s8080, GetInstructionSet(I8080))
	assert.Same(t, sz80, GetInstructionSet(Z80))
}

func TestInstructionSetOrder(t *testing.T) {
	for _, set := range []*InstructionSet{Set8080(), SetZ80()} {
		ops := set.Opcodes()
		assert.True(t, slices.IsSortedFunc(ops, func(a, b Opcode) int {
			return strings.Compare(a.Name, b.Name)
		}), set.Variant.String())

		total := 0
		for i := range ops {
			codes := set.Codes(&ops[i])
			require.NotEmpty(t, codes)
			for _, c := range codes {
				assert.Equal(t, ops[i].Name, c.Opcode)
			}
			total += len(codes)
		}
		assert.Len(t, set.Operations(), total)
	}

	assert.Greater(t, len(SetZ80().Operations()), 600)
	assert.Greater(t, len(Set8080().Operations()), 200)
}

func TestLookupCode(t *testing.T) {
	set := SetZ80()
	ld := set.LookupOpcode("LD")
	require.NotNil(t, ld)

	tests := []struct {
		operand string
		format  string
	}{
		{"A,5Q", "3E%1"},
		{"A,(BC)", "0A"},
		{"A,(IX+5Q)", "DD7E%5"},
		{"(IX+5Q),7Q", "DD36%5%7"},
		{"HL,(100Q)", "2A%2"},
		{"(100Q),HL", "22%2"},
		{"SP,HL", "F9"},
	}
	for _, tt := range tests {
		c := set.LookupCode(ld, tt.operand)
		if assert.NotNil(t, c, tt.operand) {
			assert.Equal(t, tt.format, c.Format, tt.operand)
		}
	}

	assert.Nil(t, set.LookupCode(ld, "(HL),(HL)"))
	assert.Nil(t, set.LookupCode(ld, "Q"))

	rst := set.LookupOpcode("RST")
	require.NotNil(t, rst)
	c := set.LookupCode(rst, "70Q")
	require.NotNil(t, c)
	assert.Equal(t, "FF", c.Format)
	assert.Nil(t, set.LookupCode(rst, "1Q"))
}

func TestSearchCompareCode(t *testing.T) {
	assert.Zero(t, searchCompareCode("5Q", ":"))
	assert.Zero(t, searchCompareCode("70Q", "38H"))
	assert.Zero(t, searchCompareCode("A,(IX+5Q)", "A,(IX+:)"))
	assert.Negative(t, searchCompareCode("1Q", "2"))
	assert.Positive(t, searchCompareCode("3Q", "2"))
	assert.Negative(t, searchCompareCode("A", "B"))
	assert.Negative(t, searchCompareCode("A", "A,B"))
	assert.Positive(t, searchCompareCode("A,B", "A"))
}

func TestCodeFormat(t *testing.T) {
	tests := []struct {
		code, operand, format string
	}{
		{"3ENN", "A,%1", "3E%1"},
		{"C3NNNN", "%2", "C3%2"},
		{"18NN", "%3", "18%3"},
		{"ED43NNNN", "(%4),BC", "ED43%4"},
		{"DD7ENN", "A,(IX+%5)", "DD7E%5"},
		{"DD36NNNN", "(IX+%5),%7", "DD36%5%7"},
		{"DDCBNN46", "0,(IX+%5)", "DDCB%546"},
		{"76", "", "76"},
	}
	for _, tt := range tests {
		f, err := codeFormat(tt.code, tt.operand)
		require.NoError(t, err)
		assert.Equal(t, tt.format, f)
	}

	_, err := codeFormat("C3", "%2")
	assert.Error(t, err)
	_, err = codeFormat("C3NN", "%9")
	assert.Error(t, err)
}

func TestBuildInstructionSet(t *testing.T) {
	table := []Operation{
		{"C3NNNN", "JMP %2", "JP %2"},
		{"E9", "PCHL", "JP (HL)"},
		{"08", "", "EX AF,AF'"},
	}

	set, err := BuildInstructionSet(table, I8080)
	require.NoError(t, err)
	assert.Len(t, set.Operations(), 2)
	assert.Nil(t, set.LookupOpcode("EX"))

	set, err = BuildInstructionSet(table, Z80)
	require.NoError(t, err)
	jp := set.LookupOpcode("JP")
	require.NotNil(t, jp)
	assert.Len(t, set.Codes(jp), 2)
	assert.Equal(t, []string{"AF", "AF'", "HL"}, set.Registers())

	_, err = BuildInstructionSet([]Operation{{"C3", "JMP %2", ""}}, I8080)
	assert.ErrorIs(t, err, ErrTemplate)
}

func TestOperandValues(t *testing.T) {
	assert.Equal(t, []int32{5, 7}, operandValues("(IX+5Q),7Q", "(IX+:),:"))
	assert.Equal(t, []int32{3}, operandValues("0Q,(IX+3Q)", "0,(IX+:)"))
	assert.Equal(t, []int32{-2}, operandValues("A,(IX+37777777776Q)", "A,(IX+:)"))
	assert.Empty(t, operandValues("A,B", "A,B"))
}

func TestTemplateText(t *testing.T) {
	assert.Equal(t, "DD36NNNN", templateText("DD36%5%7"))
	assert.Equal(t, "C3NNNN", templateText("C3%2"))
	assert.Equal(t, "00", templateText("00"))
}
