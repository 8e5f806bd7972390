// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host allows you to create a "host" that emulates a CP/M system
// with a Z80 CPU, 64K of memory, 16 block devices, a built-in assembler
// and disassembler, and other useful tools.
//
// Within the host it is possible to assemble and load machine code into
// memory, run and step through machine code, set breakpoints, dump the
// contents of memory, disassemble the contents of memory, manipulate CPU
// registers and memory, mount and format CP/M disks, evaluate arbitrary
// expressions and run Starlark scripts that drive all of these.
package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/beevik/cmd"
	"github.com/beevik/usim/asm"
	"github.com/beevik/usim/bdev"
	"github.com/beevik/usim/disasm"
	"github.com/beevik/usim/memory"
	"github.com/koron-go/z80"
)

// ErrQuit is returned by a script that ran the quit command.
var ErrQuit = errors.New("exiting program")

var errHalted = errors.New("cpu halted")

// A Host represents a fully emulated Z80 CP/M system.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	logger      *slog.Logger
	mem         *memory.BankedMemory
	cpu         *z80.CPU
	ports       *ports
	disks       *bdev.Manager
	lastCmd     *cmd.Selection
	settings    *settings
	symbols     *asm.Result // symbols of the last loaded source
	nextDisasm  uint16
	nextDump    uint16

	mu     sync.Mutex
	cancel context.CancelFunc // interrupts the running CPU
}

// New creates a new Z80 host environment. Diagnostics are logged to
// logger, which may be nil.
func New(logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	h := &Host{
		input:      bufio.NewScanner(strings.NewReader("")),
		output:     bufio.NewWriter(os.Stdout),
		logger:   logger,
		settings: newSettings(),
	}

	// Create the emulated memory, disks and CPU.
	h.mem = memory.New()
	h.disks = bdev.NewManager(h.output, logger)
	h.ports = newPorts(h.mem, h.disks, h.output, logger)
	h.cpu = &z80.CPU{
		States:      z80.States{SPR: z80.SPR{PC: 0x100}},
		Memory:      h.mem,
		IO:          h.ports,
		BreakPoints: map[uint16]struct{}{},
	}

	h.onSettingsUpdate()
	return h
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the the next command to be entered. RunCommands
// returns false when a quit command was processed.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) bool {
	h.flush()
	h.input = bufio.NewScanner(r)
	h.output.Reset(w)
	h.interactive = interactive

	if interactive {
		h.println()
		h.displayPC()
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			var ok bool
			if c, ok = h.lookup(line); !ok {
				continue
			}
		} else if h.lastCmd != nil && interactive {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}

		if err := h.dispatch(c); err != nil {
			return false
		}
	}
	h.flush()
	return true
}

// Execute runs a single monitor command line.
func (h *Host) Execute(line string) error {
	c, ok := h.lookup(line)
	if !ok || c.Command == nil {
		return nil
	}
	return h.dispatch(c)
}

func (h *Host) lookup(line string) (cmd.Selection, bool) {
	c, err := cmds.Lookup(line)
	switch {
	case err == cmd.ErrNotFound:
		h.println("Command not found.")
		return c, false
	case err == cmd.ErrAmbiguous:
		h.println("Command is ambiguous.")
		return c, false
	case err != nil:
		h.printf("ERROR: %v.\n", err)
		return c, false
	}
	return c, true
}

func (h *Host) dispatch(c cmd.Selection) error {
	h.lastCmd = &c
	command := c.Command.Data.(*command)
	err := command.run(h, c)
	h.flush()
	return err
}

// Break interrupts a running CPU.
func (h *Host) Break() {
	h.mu.Lock()
	cancel := h.cancel
	h.mu.Unlock()

	if cancel != nil {
		cancel()
		return
	}

	h.println()
	h.prompt()
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return strings.TrimSpace(h.input.Text()), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

// confirm reads the answer to a prompt the disk manager has displayed.
func (h *Host) confirm(prompt string) bool {
	h.flush()
	line, err := h.getLine()
	if err != nil {
		return false
	}
	return strings.HasPrefix(strings.ToUpper(line), "Y")
}

func (h *Host) displayPC() {
	if h.interactive {
		h.println(registerString(h.cpu))
		d, _ := h.disassemble(h.cpu.PC)
		h.println(d)
	}
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	e := cmdsHelp
	for _, a := range c.Args {
		if e = e.find(a); e == nil {
			h.println("Command not found.")
			return nil
		}
	}

	switch {
	case e.sub != nil:
		h.displayCommands(e)
	default:
		if e.usage != "" {
			h.printf("Syntax: %s\n\n", e.usage)
		}
		switch {
		case e.description != "":
			h.printf("Description:\n%s\n\n", indentWrap(3, e.description))
		case e.brief != "":
			h.printf("Description:\n%s.\n\n", indentWrap(3, e.brief))
		}
	}
	return nil
}

func (h *Host) cmdAssembleFile(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	var options asm.Option
	if len(c.Args) > 1 {
		verbose, err := stringToBool(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if verbose {
			options |= asm.Verbose
		}
	}

	filename := withExt(c.Args[0], ".Z80")
	if err := asm.AssembleFile(filename, options, h.output); err != nil {
		h.printf("Failed to assemble '%s'.\n", filepath.Base(filename))
		h.logger.Warn("assembly failed", slog.String("file", filename), slog.Any("error", err))
	}
	return nil
}

func (h *Host) cmdAssembleLine(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	result, err := asm.Assemble(asm.Options{
		Line:    strings.Join(c.Args[1:], " "),
		Target:  h.mem,
		Address: addr,
		Out:     h.output,
	})
	if err != nil {
		return nil
	}

	for a := addr; a != result.Address && result.Address-addr <= 4; {
		var d string
		d, a = h.disassemble(a)
		h.println(d)
	}
	h.nextDisasm = result.Address
	return nil
}

func (h *Host) cmdBreakpointList(c cmd.Selection) error {
	if len(h.cpu.BreakPoints) == 0 {
		h.println("No breakpoints.")
		return nil
	}

	addrs := make([]int, 0, len(h.cpu.BreakPoints))
	for a := range h.cpu.BreakPoints {
		addrs = append(addrs, int(a))
	}
	slices.Sort(addrs)

	h.println("Addr")
	h.println("-----")
	for _, a := range addrs {
		h.printf("%04XH\n", a)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.cpu.BreakPoints[addr] = struct{}{}
	h.printf("Breakpoint added at %04XH.\n", addr)
	return nil
}

func (h *Host) cmdBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	if _, ok := h.cpu.BreakPoints[addr]; !ok {
		h.printf("No breakpoint was set on %04XH.\n", addr)
		return nil
	}

	delete(h.cpu.BreakPoints, addr)
	h.printf("Breakpoint at %04XH removed.\n", addr)
	return nil
}

func (h *Host) cmdConsole(c cmd.Selection) error {
	h.ports.queue([]byte(strings.Join(c.Args, " ") + "\r"))
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = h.nextDisasm
		if addr == 0 {
			addr = h.cpu.PC
		}

	default:
		a, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	lines := int(h.settings.DisasmLines)
	if len(c.Args) > 1 {
		l, err := h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		d, next := h.disassemble(addr)
		h.println(d)
		addr = next
	}

	h.nextDisasm = addr
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdEvaluate(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	v, err := asm.Evaluate(strings.Join(c.Args, " "), asm.Environment{Resolve: h.resolve})
	if err != nil {
		h.println("?ERROR")
		return nil
	}

	bits := 32
	switch {
	case v >= -128 && v <= 255:
		bits = 8
	case v >= -32768 && v <= 65535:
		bits = 16
	}

	u := uint32(v)
	if bits < 32 {
		u &= 1<<bits - 1
	}

	h.printf("%s\n", hexNumeral(u, bits/4))
	if v < 0 {
		h.printf("%dD\n", v)
	}
	h.printf("%dD\n", uint32(v))
	h.printf("%oQ\n", uint32(v))

	var b strings.Builder
	for i := bits - 1; i >= 0; i-- {
		if u&(1<<i) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
		if i%8 == 0 && i != 0 {
			b.WriteByte('$')
		}
	}
	h.printf("%sB\n", b.String())
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayHelpText(c)
		return nil
	}

	var options asm.Option
	if h.settings.StripZeros {
		options |= asm.StripZeros
	}

	pages := 0
	for _, filename := range c.Args {
		filename = withExt(filename, ".HEX")
		result, err := asm.Assemble(asm.Options{
			SourceFile: filename,
			Target:     h.mem,
			Bias:       h.settings.LoadBias,
			Flags:      options,
			Out:        h.output,
		})
		if err != nil {
			h.printf("Failed to load '%s'.\n", filepath.Base(filename))
			h.logger.Warn("load failed", slog.String("file", filename), slog.Any("error", err))
			return nil
		}
		pages = max(pages, result.Pages)
		h.symbols = result
	}

	h.printf("%d PAGES\n", pages)
	return nil
}

func (h *Host) cmdUnload(c cmd.Selection) error {
	if len(c.Args) != 1 {
		h.displayHelpText(c)
		return nil
	}

	opts := asm.Options{Scan: h.mem, Out: h.output}
	if h.settings.StripZeros {
		opts.Flags |= asm.StripZeros
	}

	filename := withExt(c.Args[0], ".HEX")
	switch strings.ToUpper(filepath.Ext(filename)) {
	case ".C", ".H":
		opts.CodeFile = filename
	default:
		opts.ObjectFile = filename
	}

	result, err := asm.Assemble(opts)
	if err != nil {
		h.printf("Failed to unload '%s'.\n", filepath.Base(filename))
		return nil
	}

	h.printf("%d PAGES\n", result.Pages)
	return nil
}

func (h *Host) cmdMemoryDump(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = h.nextDump

	default:
		a, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := h.settings.DumpBytes
	if len(c.Args) >= 2 {
		var err error
		bytes, err = h.parseExpr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.dumpMemory(addr, bytes)

	h.nextDump = addr + bytes
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (h *Host) cmdMemorySet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	addr, err := h.parseExpr(c.Args[0])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	values := make([]byte, 0, len(c.Args)-1)
	for _, a := range c.Args[1:] {
		v, err := h.parseExpr(a)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		values = append(values, byte(v))
	}

	h.mem.StoreBytes(addr, values)
	h.dumpMemory(addr, uint16(len(values)))
	return nil
}

func (h *Host) cmdMemoryCopy(c cmd.Selection) error {
	if len(c.Args) < 3 {
		h.displayHelpText(c)
		return nil
	}

	var addr [3]uint16
	for i := range addr {
		a, err := h.parseExpr(c.Args[i])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		addr[i] = a
	}

	dst, begin, end := addr[0], addr[1], addr[2]
	if end < begin {
		h.println("Source range is empty.")
		return nil
	}

	b := make([]byte, int(end-begin)+1)
	h.mem.LoadBytes(begin, b)
	h.mem.StoreBytes(dst, b)
	h.printf("Copied %04XH..%04XH to %04XH.\n", begin, end, dst)
	return nil
}

func (h *Host) cmdMemoryFill(c cmd.Selection) error {
	if len(c.Args) < 3 {
		h.displayHelpText(c)
		return nil
	}

	var v [3]uint16
	for i := range v {
		a, err := h.parseExpr(c.Args[i])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		v[i] = a
	}

	begin, end, value := v[0], v[1], byte(v[2])
	for a := int(begin); a <= int(end); a++ {
		h.mem.StoreByte(uint16(a), value)
	}
	return nil
}

func (h *Host) cmdMemoryMap(c cmd.Selection) error {
	args := c.Args
	physical := len(args) > 0 && strings.EqualFold(args[0], "-p")
	if physical {
		args = args[1:]
	}
	if len(args) > 2 {
		h.displayHelpText(c)
		return nil
	}

	n, show := memory.Banks, h.mem.WriteLogicalMap
	if physical {
		n, show = h.mem.PhysicalBanks(), h.mem.WritePhysicalMap
	}

	if len(args) == 0 {
		for i := range n {
			show(h.output, i)
		}
		h.flush()
		return nil
	}

	bank, err := decimal(args[0])
	if err != nil || bank >= n {
		h.displayHelpText(c)
		return nil
	}
	if len(args) == 2 {
		value, err := decimal(args[1])
		if err != nil {
			h.displayHelpText(c)
			return nil
		}
		if physical {
			err = h.mem.Map(value, bank)
		} else {
			err = h.mem.Map(bank, value)
		}
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}
	show(h.output, bank)
	h.flush()
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return ErrQuit
}

func (h *Host) cmdRegister(c cmd.Selection) error {
	if len(c.Args) == 0 {
		h.println(registerString(h.cpu))
		d, _ := h.disassemble(h.cpu.PC)
		h.println(d)
		return nil
	}
	if len(c.Args) < 2 {
		h.displayHelpText(c)
		return nil
	}

	r := lookupRegister(c.Args[0])
	if r == nil {
		h.printf("Register '%s' not found.\n", c.Args[0])
		return nil
	}

	v, err := h.parseExpr(strings.Join(c.Args[1:], " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	r.set(h.cpu, v)
	if r.wide {
		h.printf("Register %s set to %04XH.\n", r.name, r.get(h.cpu))
	} else {
		h.printf("Register %s set to %02XH.\n", r.name, r.get(h.cpu))
	}
	return nil
}

func (h *Host) cmdReset(c cmd.Selection) error {
	h.cpu.States = z80.States{}
	h.mem.Reset()
	h.ports.input = nil
	if err := h.disks.UnmountAll(); err != nil {
		h.printf("%v\n", err)
	}
	h.symbols = nil
	h.nextDisasm = 0
	h.nextDump = 0
	h.println("System reset.")
	return nil
}

func (h *Host) cmdRun(c cmd.Selection) error {
	if len(c.Args) > 0 {
		pc, err := h.parseExpr(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.PC = pc
	}
	h.cpu.HALT = false

	h.printf("Running from %04XH. Press ctrl-C to break.\n", h.cpu.PC)
	h.report(h.run())

	h.nextDisasm = h.cpu.PC
	return nil
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)

	case 1:
		h.displayHelpText(c)

	default:
		key, value := c.Args[0], strings.Join(c.Args[1:], " ")

		err := h.settings.Set(key, value, h.parseExpr)
		if err == nil {
			h.println("Setting updated.")
		} else {
			h.printf("%v\n", err)
		}

		h.onSettingsUpdate()
	}

	return nil
}

func (h *Host) cmdStepIn(c cmd.Selection) error {
	return h.stepCommand(c, func() error {
		h.cpu.Step()
		if h.cpu.HALT {
			return errHalted
		}
		return nil
	})
}

func (h *Host) cmdStepOver(c cmd.Selection) error {
	return h.stepCommand(c, h.stepOver)
}

func (h *Host) stepCommand(c cmd.Selection, step func() error) error {
	// Parse the number of steps.
	count := 1
	if len(c.Args) > 0 {
		n, err := h.parseExpr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}

	// Step the CPU count times.
	for i := count - 1; i >= 0; i-- {
		if err := step(); err != nil {
			h.report(err)
			break
		}
		switch {
		case i == int(h.settings.StepLines):
			h.println("...")
		case i < int(h.settings.StepLines):
			d, _ := h.disassemble(h.cpu.PC)
			h.println(d)
		}
	}

	h.nextDisasm = h.cpu.PC
	return nil
}

// isCall reports whether an opcode calls a subroutine.
func isCall(op byte) bool {
	return op == 0xcd || op&0xc7 == 0xc4 || op&0xc7 == 0xc7
}

func (h *Host) stepOver() error {
	pc := h.cpu.PC
	if !isCall(h.mem.LoadByte(pc)) {
		h.cpu.Step()
		if h.cpu.HALT {
			return errHalted
		}
		return nil
	}

	// Place a temporary breakpoint on the instruction following the
	// call and run until it is reached.
	next := pc + uint16(disasm.Length(h.mem, pc, asm.Z80))
	if _, ok := h.cpu.BreakPoints[next]; !ok {
		h.cpu.BreakPoints[next] = struct{}{}
		defer delete(h.cpu.BreakPoints, next)
	}

	err := h.run()
	if errors.Is(err, z80.ErrBreakPoint) && h.cpu.PC == next {
		return nil
	}
	return err
}

// run runs the CPU until it halts, hits a breakpoint or is interrupted.
func (h *Host) run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.cancel = nil
		h.mu.Unlock()
	}()

	// Step off a breakpoint at the current address.
	if _, ok := h.cpu.BreakPoints[h.cpu.PC]; ok {
		h.cpu.Step()
		if h.cpu.HALT {
			return errHalted
		}
		if _, ok := h.cpu.BreakPoints[h.cpu.PC]; ok {
			return z80.ErrBreakPoint
		}
	}

	if h.settings.Trace {
		return h.trace(ctx)
	}

	err := h.cpu.Run(ctx)
	if err == nil {
		return errHalted
	}
	return err
}

// report displays the reason the CPU stopped.
func (h *Host) report(err error) {
	h.println()
	switch {
	case errors.Is(err, errHalted):
		h.printf("Halted at %04XH.\n", h.cpu.PC)
	case errors.Is(err, z80.ErrBreakPoint):
		h.printf("Breakpoint hit at %04XH.\n", h.cpu.PC)
	case errors.Is(err, context.Canceled):
		h.printf("Break at %04XH.\n", h.cpu.PC)
	default:
		h.printf("ERROR: %v\n", err)
		h.logger.Error("cpu stopped", slog.Int("pc", int(h.cpu.PC)), slog.Any("error", err))
	}
	h.displayPC()
}

// trace runs the CPU one instruction at a time, disassembling each
// instruction before it executes.
func (h *Host) trace(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		d, _ := h.disassemble(h.cpu.PC)
		h.println(d)

		h.cpu.Step()
		if h.cpu.HALT {
			return errHalted
		}
		if _, ok := h.cpu.BreakPoints[h.cpu.PC]; ok {
			return z80.ErrBreakPoint
		}
	}
}

func (h *Host) onSettingsUpdate() {
	h.disks.DirectoryDisks = h.settings.DirectoryDisks
	h.ports.console = h.settings.ConsolePort
	h.ports.disk = h.settings.DiskPort
	h.ports.bank = h.settings.BankPort
}

// parseExpr evaluates a monitor expression. Unsuffixed numerals follow
// the HexMode setting.
func (h *Host) parseExpr(expr string) (uint16, error) {
	v, err := asm.Evaluate(expr, asm.Environment{
		Resolve: h.resolve,
		HexMode: h.settings.HexMode,
	})
	if err != nil {
		return 0, err
	}

	if v < 0 {
		v = 0x10000 + v
	}
	return uint16(v), nil
}

func (h *Host) disassemble(addr uint16) (str string, next uint16) {
	var line string
	line, next = disasm.Disassemble(h.mem, addr, h.settings.Variant)

	b := make([]byte, next-addr)
	h.mem.LoadBytes(addr, b)

	return fmt.Sprintf("%04X  %-11s  %s", addr, codeString(b), line), next
}

func (h *Host) dumpMemory(addr0, bytes uint16) {
	if bytes == 0 {
		return
	}

	addr1 := addr0 + bytes - 1
	if addr1 < addr0 {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:4])
		for a, c1, c2 := uint32(addr0), 6, 32; a <= uint32(addr1); a, c1, c2 = a+1, c1+3, c2+1 {
			m := h.mem.LoadByte(uint16(a))
			byteToBuf(m, buf[c1:c1+2])
			buf[c2] = toPrintableChar(m)
		}
		h.println(string(buf))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0xffff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	a := start
	for r := start; r < stop; r += 8 {
		addrToBuf(uint16(a), buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= uint32(addr0) && a <= uint32(addr1) {
				m := h.mem.LoadByte(uint16(a))
				byteToBuf(m, buf[c1:c1+2])
				buf[c2] = toPrintableChar(m)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		h.println(string(buf))
	}
}

func (h *Host) displayHelpText(c cmd.Selection) {
	e := c.Command.Data.(*command).help
	if e.usage != "" {
		h.printf("Syntax: %s\n", e.usage)
	} else {
		h.println("<no help text>")
	}
}

func (h *Host) displayCommands(e *helpEntry) {
	h.printf("%s commands:\n", e.name)
	for _, s := range e.sub {
		if s.brief != "" {
			h.printf("    %-15s  %s\n", s.name, s.brief)
		}
	}
}

// resolve supplies register values, the program counter as '$' and the
// symbols of the last loaded source file to expressions.
func (h *Host) resolve(name string) (int32, bool) {
	if name == "$" {
		return int32(h.cpu.PC), true
	}
	if r := lookupRegister(name); r != nil {
		return int32(r.get(h.cpu)), true
	}
	return h.symbols.Symbol(name)
}
