// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/beevik/usim/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const origin = 0x1000

func assemble(name, code string) (*Result, *memory.BankedMemory, error) {
	mem := memory.New()
	fsys := fstest.MapFS{name: {Data: []byte(code)}}
	r, err := Assemble(Options{
		SourceFile: name,
		FS:         fsys,
		Target:     mem,
		Address:    origin,
		Out:        io.Discard,
	})
	return r, mem, err
}

func codeString(mem memory.Memory, start, end uint16) string {
	b := make([]byte, end-start)
	mem.LoadBytes(start, b)
	return hexBytes(b)
}

func checkASMFile(t *testing.T, name, asm, expected string) {
	t.Helper()
	r, mem, err := assemble(name, asm)
	if err != nil {
		t.Error(err)
		for _, e := range r.Errors {
			t.Log(e)
		}
		return
	}

	s := codeString(mem, origin, r.Address)
	if s != expected {
		t.Error("code doesn't match expected")
		t.Errorf("got: %s\n", s)
		t.Errorf("exp: %s\n", expected)
	}
}

func checkASM(t *testing.T, asm, expected string) {
	t.Helper()
	checkASMFile(t, "test.z80", asm, expected)
}

func check8080(t *testing.T, asm, expected string) {
	t.Helper()
	checkASMFile(t, "test.asm", asm, expected)
}

func checkASMError(t *testing.T, asm string, kind ErrorKind) {
	t.Helper()
	r, _, err := assemble("test.z80", asm)
	if err == nil {
		t.Errorf("Expected error on %s, didn't get one\n", asm)
		return
	}
	require.ErrorIs(t, err, ErrAssembly)
	require.NotEmpty(t, r.Errors)
	assert.Contains(t, r.Errors[0], kind.String())
}

func TestLoads(t *testing.T) {
	asm := `
	LD A,5
	LD BC,1234H
	LD (HL),A
	LD A,(BC)
	LD HL,(8000H)
	LD (8000H),A
	LD SP,HL`

	checkASM(t, asm, "3E05013412770A2A0080320080F9")
}

func TestRelative(t *testing.T) {
	checkASM(t, "\tJR $", "18FE")
	checkASM(t, "LOOP:\tNOP\n\tDJNZ LOOP", "0010FD")
	checkASM(t, "\tJR NZ,NEXT\nNEXT:\tNOP", "200000")
}

func TestRelativeOutOfRange(t *testing.T) {
	checkASMError(t, "\tJR $+200", Overflow)
}

func TestIndexed(t *testing.T) {
	asm := `
	LD (IX+5),7
	LD A,(IX-2)
	INC (IY+0)
	BIT 0,(IX+3)
	LD IX,1234H
	LD (5678H),IY`

	checkASM(t, asm, "DD360507DD7EFEFD3400DDCB0346DD213412FD227856")
}

func TestPrefixed(t *testing.T) {
	asm := `
	EX AF,AF'
	RST 38H
	IM 1
	OUT (10H),A
	IN A,(C)
	LDIR`

	checkASM(t, asm, "08FFED56D310ED78EDB0")
}

func Test8080(t *testing.T) {
	asm := `
	MVI A,5
	LXI H,1234H
	MOV M,A
	RST 7
	OUT 10H`

	check8080(t, asm, "3E0521341277FFD310")
}

func TestVariantDirectives(t *testing.T) {
	asm := `
	.8080
	MVI A,1
	.Z80
	LD A,2`

	checkASM(t, asm, "3E013E02")
}

func TestOrgAndEntry(t *testing.T) {
	asm := `
	.ORG 100H
START:	MVI A,5
	JMP START
	.END START
	MVI A,6`

	mem := memory.New()
	r, err := Assemble(Options{
		SourceFile: "test.asm",
		FS:         fstest.MapFS{"test.asm": {Data: []byte(asm)}},
		Target:     mem,
		Out:        io.Discard,
	})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0100), r.Entry)
	assert.Equal(t, uint16(0x0105), r.Address)
	assert.Equal(t, 1, r.Pages)
	assert.Equal(t, "3E05C30001", codeString(mem, 0x100, 0x105))
}

func TestForwardReference(t *testing.T) {
	asm := `
	JP LBL
	NOP
LBL:	HALT`

	checkASM(t, asm, "C304100076")
}

func TestDataBytes(t *testing.T) {
	asm := `
	DB 1,2,'AB',-1
	DEFB "x"
	DW 1234H,LBL
LBL:	DEFW -2`

	checkASM(t, asm, "01024142FF7834120A10FEFF")
}

func TestDataStorage(t *testing.T) {
	asm := `
	DB 1
	DS 2
	DB 2`

	checkASM(t, asm, "01000002")
}

func TestEquAndSet(t *testing.T) {
	asm := `
X	EQU 10H
V	SET 1
V	SET V+1
	DB X,V`

	checkASM(t, asm, "1002")
}

func TestConditionals(t *testing.T) {
	asm := `
X	EQU 1
	IF X
	DB 1
	ELSE
	DB 2
	ENDIF
	IF 0
	DB 3
	IF 1
	DB 4
	ENDIF
	ELSEIF 1
	DB 5
	ENDIF`

	checkASM(t, asm, "0105")
}

func TestStatements(t *testing.T) {
	asm := `
* comment line
	LD A,1 ! LD B,2	; comment
10	NOP`

	checkASM(t, asm, "3E01060200")
}

func TestHereExpression(t *testing.T) {
	checkASM(t, "\tDW $,$+2\n\tDB LOW $", "0010041004")
}

func TestErrors(t *testing.T) {
	checkASMError(t, "\tLD A,256", Overflow)
	checkASMError(t, "\tLD A,(", ExpressionError)
	checkASMError(t, "\tLD (HL),(HL)", SyntaxError)
	checkASMError(t, "\tFOO BAR", SyntaxError)
	checkASMError(t, "A:\tNOP", SyntaxError)
	checkASMError(t, "\tDB UNDEFINED", ExpressionError)
	checkASMError(t, "\tLD A,1/0", Overflow)
	checkASMError(t, "X\tEQU 5\nX\tEQU 6", PhaseError)
	checkASMError(t, "LBL:\tNOP\nLBL:\tNOP", PhaseError)
	checkASMError(t, "X\tEQU 5\nX\tSET 6", UnknownError)
	checkASMError(t, "\tENDIF", SyntaxError)
	checkASMError(t, "X\tORG 0", SyntaxError)
}

func TestErrorDisplay(t *testing.T) {
	var out bytes.Buffer
	_, err := Assemble(Options{
		SourceFile: "bad.z80",
		FS:         fstest.MapFS{"bad.z80": {Data: []byte("\tLD A,256\n")}},
		Out:        &out,
	})
	require.ErrorIs(t, err, ErrAssembly)

	s := out.String()
	assert.Contains(t, s, "\tLD A,256\n")
	assert.Contains(t, s, `?FILE "bad.z80" LINE 1: OVERFLOW`)
	assert.Contains(t, s, "1 ERRORS")
}

func TestErrorLimit(t *testing.T) {
	src := strings.Repeat("\tLD A,300\n", 8)
	r, _, err := assemble("test.z80", src)
	require.ErrorIs(t, err, ErrAssembly)
	assert.Len(t, r.Errors, maxDisplayedErrors)
	assert.ErrorContains(t, err, "8 errors")
}

func TestSourceInclude(t *testing.T) {
	fsys := fstest.MapFS{
		"main.z80": {Data: []byte("\t.SOURCE 'inc.z80'\n\tNOP\n")},
		"inc.z80":  {Data: []byte("\tLD A,1\n")},
	}
	mem := memory.New()
	r, err := Assemble(Options{SourceFile: "main.z80", FS: fsys, Target: mem, Address: origin, Out: io.Discard})
	require.NoError(t, err)
	assert.Equal(t, "3E0100", codeString(mem, origin, r.Address))
}

func TestSourceIncludeMissing(t *testing.T) {
	checkASMError(t, "\t.SOURCE 'missing.z80'", UnknownError)
}

func TestHexRecord(t *testing.T) {
	mem := memory.New()
	r, err := Assemble(Options{Line: ":03100000AABBCCBC", Target: mem, Out: io.Discard})
	require.NoError(t, err)
	assert.Equal(t, "AABBCC", codeString(mem, 0x1000, 0x1003))
	assert.Equal(t, uint16(0x1003), r.Address)

	r, err = Assemble(Options{Line: ":03100000AABBCCBD", Target: mem, Out: io.Discard})
	require.ErrorIs(t, err, ErrAssembly)
	assert.Contains(t, r.Errors[0], ValueError.String())
}

func TestLine(t *testing.T) {
	mem := memory.New()
	r, err := Assemble(Options{Line: "LD HL,$", Address: 0x2000, Target: mem, Out: io.Discard})
	require.NoError(t, err)
	assert.Equal(t, "210020", codeString(mem, 0x2000, r.Address))
}

func TestCodeArray(t *testing.T) {
	mem := memory.New()
	code := []byte{3, 0x20, 0x00, 1, 2, 3, 2, 0x30, 0x00, 4, 5, 0}
	_, err := Assemble(Options{Code: code, Target: mem, Out: io.Discard})
	require.NoError(t, err)
	assert.Equal(t, "010203", codeString(mem, 0x2000, 0x2003))
	assert.Equal(t, "0405", codeString(mem, 0x3000, 0x3002))
}

func TestMemoryScan(t *testing.T) {
	src := memory.New()
	src.StoreBytes(0x4000, []byte{0xC3, 0x00, 0x01})

	dir := t.TempDir()
	objPath := filepath.Join(dir, "scan.hex")
	dst := memory.New()
	_, err := Assemble(Options{Scan: src, Target: dst, ObjectFile: objPath, Flags: StripZeros, Out: io.Discard})
	require.NoError(t, err)
	assert.Equal(t, "C30001", codeString(dst, 0x4000, 0x4003))

	b, err := os.ReadFile(objPath)
	require.NoError(t, err)
	assert.Equal(t, ":10400000C30001"+strings.Repeat("00", 13)+"EC\n:00000000\n", string(b))
}

func TestBias(t *testing.T) {
	mem := memory.New()
	_, err := Assemble(Options{Line: "HALT", Address: 0x100, Bias: 0x1000, Target: mem, Out: io.Discard})
	require.NoError(t, err)
	assert.Equal(t, byte(0x76), mem.LoadByte(0x1100))
}

func TestComFile(t *testing.T) {
	fsys := fstest.MapFS{"prog.com": {Data: []byte{0xC3, 0x00, 0x01}}}
	mem := memory.New()
	r, err := Assemble(Options{SourceFile: "prog.com", FS: fsys, Target: mem, Out: io.Discard})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x103), r.Address)
	assert.Equal(t, "C30001", codeString(mem, 0x100, 0x103))
}

func TestCodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.h")
	var out bytes.Buffer
	_, err := Assemble(Options{Line: "LD A,1", Address: 0x100, CodeFile: path, Out: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "GENERATING "+path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)
	assert.True(t, strings.HasPrefix(s, "/* "+path+" GENERATED BY USIM ASSEMBLER */\n\n"))
	assert.Contains(t, s, "0x02, 0x01, 0x00, 0x3E, 0x01, 0x00\n")
}

func TestAssembleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.asm")
	src := "\tTITLE 'DEMO'\n\tORG 100H\nSTART:\tMVI A,5\n\tEND START\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0600))

	var out bytes.Buffer
	require.NoError(t, AssembleFile(path, 0, &out))
	assert.Equal(t, "Assembled 'prog.asm' to produce 'prog.HEX' and 'prog.PRN'.\n", out.String())

	obj, err := os.ReadFile(filepath.Join(dir, "prog.HEX"))
	require.NoError(t, err)
	assert.Equal(t, ":020100003E05BA\n:00000000\n", string(obj))

	list, err := os.ReadFile(filepath.Join(dir, "prog.PRN"))
	require.NoError(t, err)
	s := string(list)
	assert.Contains(t, s, "DEMO")
	assert.Contains(t, s, "USIM ASSEMBLER      PAGE   1")
	assert.Contains(t, s, "0100  3E05")
	assert.Contains(t, s, "SYMBOL TABLE")
	assert.Contains(t, s, "START = 0100")
}

func TestAssembleFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.z80")
	require.NoError(t, os.WriteFile(path, []byte("\tLD A,(\n"), 0600))

	err := AssembleFile(path, 0, io.Discard)
	require.ErrorIs(t, err, ErrAssembly)

	list, err := os.ReadFile(filepath.Join(dir, "bad.PRN"))
	require.NoError(t, err)
	assert.Contains(t, string(list), "E      ")
}

func TestVerbose(t *testing.T) {
	var out bytes.Buffer
	_, err := Assemble(Options{Line: "LBL: LD A,1", Flags: Verbose, Target: memory.New(), Out: &out})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "-- Final pass --")
	assert.Contains(t, s, "OPCODE LD")
	assert.Contains(t, s, "CODE 3E%1")
	assert.Contains(t, s, "LABEL LBL")
}

func TestOpcodesDirective(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.z80")
	_, _, err := assemble("test.z80", "\tOPCODES '"+path+"'")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	s := string(b)
	assert.True(t, strings.HasPrefix(s, "        .Z80\n"))
	assert.Contains(t, s, "        LD      (IX+1),1; DD36NNNN\n")
	assert.True(t, strings.HasSuffix(s, "        END\n"))
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		expr string
		want int32
	}{
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10 - 4 - 3", 3},
		{"10H SHL 4", 0x100},
		{"100H >> 4", 0x10},
		{"HIGH 1234H", 0x12},
		{"LOW 1234H", 0x34},
		{"17 MOD 5", 2},
		{"17 / 5", 3},
		{"'A'", 65},
		{"'AB'", 0x4142},
		{"1 = 1", 1},
		{"1 != 1", 0},
		{"2 < 3", 1},
		{"-1", -1},
		{"NOT 0", -1},
		{"~0FFH AND 0FFFFH", 0xff00},
		{"0FFH", 255},
		{"101B", 5},
		{"17Q", 15},
		{"17O", 15},
		{"99D", 99},
		{"1 || 0", 1},
		{"1 && 0", 0},
		{"6 & 3 | 8 ^ 1", 11},
	}
	for _, tt := range tests {
		v, err := Calculate(tt.expr)
		if assert.NoError(t, err, tt.expr) {
			assert.Equal(t, tt.want, v, tt.expr)
		}
	}

	for _, expr := range []string{"", "1 +", "7 MOD 0", "1/0", "$", "X", "(1", "'ABC'", "1 2", "19Q"} {
		_, err := Calculate(expr)
		assert.ErrorIs(t, err, ErrExpression, expr)
	}
}

func TestRelativeBounds(t *testing.T) {
	checkASM(t, "\tJR $+129", "187F")
	checkASM(t, "\tJR $-126", "1880")
	checkASM(t, "\tDJNZ $+129", "107F")
	checkASM(t, "\tDJNZ $-126", "1080")
	checkASM(t, "\tJR C,$+129", "387F")

	checkASMError(t, "\tJR $+130", Overflow)
	checkASMError(t, "\tJR $-127", Overflow)
	checkASMError(t, "\tDJNZ $+130", Overflow)
	checkASMError(t, "\tDJNZ $-127", Overflow)
}

func TestImmediateByteSweep(t *testing.T) {
	for v := 0; v <= 255; v++ {
		check8080(t, fmt.Sprintf("\tMVI A,%d", v), fmt.Sprintf("3E%02X", v))
	}

	r, _, err := assemble("test.asm", "\tMVI A,256")
	require.ErrorIs(t, err, ErrAssembly)
	require.NotEmpty(t, r.Errors)
	assert.Contains(t, r.Errors[0], Overflow.String())
}

const program = `
	.ORG 100H
START:	LD SP,STACK
	LD HL,MSG
LOOP:	LD A,(HL)
	OR A
	JR Z,DONE
	OUT (1),A
	INC HL
	JR LOOP
DONE:	HALT
MSG:	DB 'HELLO',0
	DS 10H
STACK	EQU $
	DW START,DONE
	END START
`

func TestAssemblyIsDeterministic(t *testing.T) {
	image := func() ([]byte, *Result) {
		mem := memory.New()
		r, err := Assemble(Options{
			SourceFile: "prog.z80",
			FS:         fstest.MapFS{"prog.z80": {Data: []byte(program)}},
			Target:     mem,
			Out:        io.Discard,
		})
		require.NoError(t, err)
		b := make([]byte, 0x10000)
		mem.LoadBytes(0, b)
		return b, r
	}

	b1, r1 := image()
	b2, r2 := image()
	assert.Equal(t, b1, b2)
	assert.Equal(t, r1.Address, r2.Address)
	assert.Equal(t, r1.Entry, r2.Entry)
	assert.Equal(t, uint16(0x100), r1.Entry)
}

func TestObjectFileRoundTrip(t *testing.T) {
	hexPath := filepath.Join(t.TempDir(), "prog.hex")

	src := memory.New()
	_, err := Assemble(Options{
		SourceFile: "prog.z80",
		FS:         fstest.MapFS{"prog.z80": {Data: []byte(program)}},
		Target:     src,
		ObjectFile: hexPath,
		Out:        io.Discard,
	})
	require.NoError(t, err)

	dst := memory.New()
	_, err = Assemble(Options{SourceFile: hexPath, Target: dst, Out: io.Discard})
	require.NoError(t, err)

	b1 := make([]byte, 0x10000)
	b2 := make([]byte, 0x10000)
	src.LoadBytes(0, b1)
	dst.LoadBytes(0, b2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, "31", codeString(dst, 0x100, 0x101))
}

func TestConditionalNesting(t *testing.T) {
	tests := []struct {
		name string
		src  string
		exp  string
	}{
		{"if true", "\tIF 1\n\tDB 1\n\tENDIF\n\tDB 9", "0109"},
		{"if false", "\tIF 0\n\tDB 1\n\tENDIF\n\tDB 9", "09"},
		{"else taken", "\tIF 0\n\tDB 1\n\tELSE\n\tDB 2\n\tENDIF", "02"},
		{"else skipped", "\tIF 1\n\tDB 1\n\tELSE\n\tDB 2\n\tENDIF", "01"},
		{"elseif taken", "\tIF 0\n\tDB 1\n\tELSEIF 1\n\tDB 2\n\tELSE\n\tDB 3\n\tENDIF", "02"},
		{"elseif false", "\tIF 0\n\tDB 1\n\tELSEIF 0\n\tDB 2\n\tELSE\n\tDB 3\n\tENDIF", "03"},
		{"elseif after true if", "\tIF 1\n\tDB 1\n\tELSEIF 1\n\tDB 2\n\tENDIF", "01"},
		// A true ELSEIF following a disabled ELSEIF re-enables assembly even
		// though the IF was true.
		{"second elseif after true if", "\tIF 1\n\tDB 1\n\tELSEIF 0\n\tDB 2\n\tELSEIF 1\n\tDB 3\n\tENDIF", "0103"},
		{"two true elseifs", "\tIF 0\n\tDB 1\n\tELSEIF 1\n\tDB 2\n\tELSEIF 1\n\tDB 3\n\tENDIF", "0203"},
		{"nested in false", "\tIF 0\n\tIF 1\n\tDB 1\n\tELSE\n\tDB 2\n\tENDIF\n\tDB 3\n\tENDIF\n\tDB 9", "09"},
		{"nested in true", "\tIF 1\n\tIF 0\n\tDB 1\n\tELSE\n\tDB 2\n\tENDIF\n\tDB 3\n\tENDIF", "0203"},
		{"nested else of outer", "\tIF 0\n\tIF 1\n\tDB 1\n\tENDIF\n\tELSE\n\tIF 1\n\tDB 2\n\tENDIF\n\tENDIF", "02"},
		{"inner elseif in false outer", "\tIF 0\n\tIF 0\n\tDB 1\n\tELSEIF 1\n\tDB 2\n\tENDIF\n\tELSE\n\tDB 3\n\tENDIF", "03"},
		{"three deep", "\tIF 1\n\tIF 1\n\tIF 0\n\tDB 1\n\tELSE\n\tDB 2\n\tENDIF\n\tENDIF\n\tENDIF", "02"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkASM(t, tt.src, tt.exp)
		})
	}

	checkASMError(t, "\tELSE", SyntaxError)
}

func TestResultSymbol(t *testing.T) {
	r, _, err := assemble("test.z80", "START:\tNOP\nX\tEQU 1234H\nlong$name:\tNOP\nV\tSET 5\n")
	require.NoError(t, err)

	v, ok := r.Symbol("start")
	assert.True(t, ok)
	assert.Equal(t, int32(origin), v)

	v, ok = r.Symbol("X")
	assert.True(t, ok)
	assert.Equal(t, int32(0x1234), v)

	v, ok = r.Symbol("LONGNAME")
	assert.True(t, ok)
	assert.Equal(t, int32(origin+1), v)

	v, ok = r.Symbol("v")
	assert.True(t, ok)
	assert.Equal(t, int32(5), v)

	_, ok = r.Symbol("MISSING")
	assert.False(t, ok)

	// Referenced but never defined.
	r, _, err = assemble("test.z80", "\tDW NOWHERE")
	require.ErrorIs(t, err, ErrAssembly)
	_, ok = r.Symbol("NOWHERE")
	assert.False(t, ok)

	var nilResult *Result
	_, ok = nilResult.Symbol("START")
	assert.False(t, ok)
}

func TestEvaluate(t *testing.T) {
	names := map[string]int32{"$": 0x100, "HL": 0x1234, "A": 0x12, "BC": 0x0102}
	env := Environment{Resolve: func(name string) (int32, bool) {
		v, ok := names[name]
		return v, ok
	}}
	hex := env
	hex.HexMode = true

	tests := []struct {
		expr string
		env  Environment
		want int32
	}{
		{"$+2", env, 0x102},
		{"hl", env, 0x1234},
		{"HIGH HL", env, 0x12},
		{"A SHL 4", env, 0x120},
		{"10", env, 10},
		{"10", hex, 0x10},
		{"1B", hex, 0x1b},
		{"101B", env, 5},
		{"10D", hex, 0x10d},
		{"17Q", hex, 15},
		{"0FFH", hex, 0xff},
		{"FF", hex, 0xff},
		{"FFH", hex, 0xff},
		{"BC", hex, 0x0102},
		{"A+1", hex, 0x13},
		{"CAFE - 1", hex, 0xcafd},
		{"'A'", hex, 65},
	}
	for _, tt := range tests {
		v, err := Evaluate(tt.expr, tt.env)
		if assert.NoError(t, err, tt.expr) {
			assert.Equal(t, tt.want, v, tt.expr)
		}
	}

	for _, expr := range []string{"FF", "XYZ", "(1", "1+"} {
		_, err := Evaluate(expr, env)
		assert.ErrorIs(t, err, ErrExpression, expr)
	}
	for _, expr := range []string{"XYZ", "FG", "$"} {
		_, err := Evaluate(expr, Environment{HexMode: true})
		assert.ErrorIs(t, err, ErrExpression, expr)
	}
}
