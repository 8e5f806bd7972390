// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTestScript(h *Host, src string) (string, error) {
	var out bytes.Buffer
	h.output.Reset(&out)
	err := h.runScript("test.star", src)
	return out.String(), err
}

func TestScriptMemory(t *testing.T) {
	assert := assert.New(t)
	h := New(nil)

	out, err := runTestScript(h, `
poke(0x100, 1, 2, 3)
print(peek(0x101))
print(calculate("1234H + 1"))
`)
	require.NoError(t, err)
	assert.Equal("2\n4661\n", out)
	assert.Equal(byte(3), h.mem.LoadByte(0x102))
}

func TestScriptAssembleAndRun(t *testing.T) {
	assert := assert.New(t)
	h := New(nil)

	out, err := runTestScript(h, `
addr = 0x100
for line in ["LD A,'K'", "OUT (1),A", "HALT"]:
    addr = assemble(addr, line)
print(addr)
text, next = disassemble(0x100)
print(text)
register("sp", 0x2000)
command("run 100")
print(register("a"))
`)
	require.NoError(t, err)
	assert.Contains(out, "261\n")
	assert.Contains(out, "0100  3E 4B        LD A,4BH\n")
	assert.Contains(out, ".\nK\nHalted at")
	assert.True(strings.HasSuffix(out, "75\n"))
	assert.Equal(uint16(0x2000), h.cpu.SP)
}

func TestScriptConsole(t *testing.T) {
	h := New(nil)
	_, err := runTestScript(h, `console("dir")`)
	require.NoError(t, err)
	assert.Equal(t, []byte("dir\r"), h.ports.input)
}

func TestScriptErrors(t *testing.T) {
	h := New(nil)

	_, err := runTestScript(h, `assemble(0x100, "LD Q,1")`)
	assert.Error(t, err)

	_, err = runTestScript(h, `register("xyz")`)
	assert.ErrorContains(t, err, "unknown register")

	_, err = runTestScript(h, `command("quit")`)
	assert.ErrorIs(t, err, ErrQuit)
}

func TestScriptCommand(t *testing.T) {
	h := New(nil)

	path := filepath.Join(t.TempDir(), "setup.star")
	require.NoError(t, os.WriteFile(path, []byte("poke(0x200, 0x55)\nprint('done')\n"), 0600))

	out := runCommands(h, "script "+path)
	assert.Equal(t, "done\n", out)
	assert.Equal(t, byte(0x55), h.mem.LoadByte(0x200))
}
