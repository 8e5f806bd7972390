// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/usim/asm"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

func (h *Host) cmdScript(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	err := h.RunScript(c.Args[0])
	if errors.Is(err, ErrQuit) {
		return err
	}
	if err != nil {
		h.printf("%v\n", err)
	}
	return nil
}

// RunScript executes a Starlark script file. The script drives the host
// through the builtins command, peek, poke, register, console, calculate,
// assemble and disassemble.
func (h *Host) RunScript(filename string) error {
	return h.runScript(filename, nil)
}

// runScript executes Starlark source. A nil src reads the named file.
func (h *Host) runScript(name string, src any) error {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			h.println(msg)
		},
	}

	_, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, name, src, h.builtins())
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			h.logger.Debug("script failed", slog.String("script", name), slog.String("backtrace", evalErr.Backtrace()))
		}
		if errors.Is(err, ErrQuit) {
			return ErrQuit
		}
	}
	h.flush()
	return err
}

type builtinFunc func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func (h *Host) builtins() starlark.StringDict {
	fns := map[string]builtinFunc{
		"command":     h.starCommand,
		"peek":        h.starPeek,
		"poke":        h.starPoke,
		"register":    h.starRegister,
		"console":     h.starConsole,
		"calculate":   h.starCalculate,
		"assemble":    h.starAssemble,
		"disassemble": h.starDisassemble,
	}

	d := starlark.StringDict{}
	for name, fn := range fns {
		d[name] = starlark.NewBuiltin(name, fn)
	}
	return d
}

// command(line) runs a monitor command.
func (h *Host) starCommand(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var line string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "line", &line); err != nil {
		return nil, err
	}
	if err := h.Execute(line); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// peek(address) returns the byte at an address.
func (h *Host) starPeek(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "address", &addr); err != nil {
		return nil, err
	}
	return starlark.MakeInt(int(h.mem.LoadByte(uint16(addr)))), nil
}

// poke(address, value, ...) stores bytes starting at an address.
func (h *Host) starPoke(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 || len(args) < 2 {
		return nil, fmt.Errorf("%s: expected an address and at least one value", b.Name())
	}

	addr, err := starlark.AsInt32(args[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	for i, v := range args[1:] {
		n, err := starlark.AsInt32(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", b.Name(), err)
		}
		h.mem.StoreByte(uint16(addr+i), byte(n))
	}
	return starlark.None, nil
}

// register(name[, value]) returns a register's value after optionally
// setting it.
func (h *Host) starRegister(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var value starlark.Value
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "value?", &value); err != nil {
		return nil, err
	}

	r := lookupRegister(name)
	if r == nil {
		return nil, fmt.Errorf("%s: unknown register '%s'", b.Name(), name)
	}
	if value != nil {
		v, err := starlark.AsInt32(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", b.Name(), err)
		}
		r.set(h.cpu, uint16(v))
	}
	return starlark.MakeInt(int(r.get(h.cpu))), nil
}

// console(text) queues console input followed by a carriage return.
func (h *Host) starConsole(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var text string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "text", &text); err != nil {
		return nil, err
	}
	h.ports.queue([]byte(text + "\r"))
	return starlark.None, nil
}

// calculate(expression) evaluates an assembler expression.
func (h *Host) starCalculate(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var expr string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "expression", &expr); err != nil {
		return nil, err
	}
	v, err := asm.Evaluate(expr, asm.Environment{Resolve: h.resolve})
	if err != nil {
		return nil, fmt.Errorf("%s: %v", b.Name(), err)
	}
	return starlark.MakeInt(int(v)), nil
}

// assemble(address, line) assembles one line into memory and returns the
// address following it.
func (h *Host) starAssemble(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int
	var line string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "address", &addr, "line", &line); err != nil {
		return nil, err
	}

	var out strings.Builder
	result, err := asm.Assemble(asm.Options{
		Line:    line,
		Target:  h.mem,
		Address: uint16(addr),
		Out:     &out,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %s", b.Name(), strings.TrimSpace(out.String()))
	}
	return starlark.MakeInt(int(result.Address)), nil
}

// disassemble(address) returns the disassembled instruction at an address
// and the address following it.
func (h *Host) starDisassemble(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var addr int
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "address", &addr); err != nil {
		return nil, err
	}
	line, next := h.disassemble(uint16(addr))
	return starlark.Tuple{starlark.String(line), starlark.MakeInt(int(next))}, nil
}
