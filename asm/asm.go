// Copyright 2014-2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a two-pass 8080/Z80 assembler. Its grammar and
// code generator are both derived from a single operation table that
// pairs each machine code template with its 8080 and Z80 mnemonics.
package asm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/usim/memory"
)

// Option type used by the Assemble function.
type Option uint

// Options for the Assemble function.
const (
	Verbose    Option = 1 << iota // trace parsing and code generation
	StripZeros                    // drop emitted blocks holding only zeros
)

// Options describes the inputs and outputs of an assembly. Inputs are
// processed in the order memory scan, code array, source line, source
// file.
type Options struct {
	Scan       memory.Memory // re-emit all 64K of this memory
	Code       []byte        // code array records
	Line       string        // a single line of source
	SourceFile string        // source file, or a binary COM file
	FS         fs.FS         // opens source files; nil uses the OS

	Target     memory.Memory // receives emitted code
	ListFile   string        // listing output path
	ObjectFile string        // HEX object output path
	CodeFile   string        // C array output path

	Address uint16    // initial current address
	Bias    uint16    // added to the address of all emitted code
	Flags   Option    // Verbose, StripZeros
	Out     io.Writer // messages and diagnostics; nil for os.Stdout
}

// Result describes a completed assembly.
type Result struct {
	Pages   int      // 256-byte pages spanned, from the highest address emitted
	Address uint16   // current address at the end of assembly
	Entry   uint16   // entry address given by the END directive
	Errors  []string // the first errors encountered, as displayed

	symbols *symbolTable
}

// Symbol returns the value of a symbol defined by the assembly. Names are
// matched the way the assembler reads them: case-insensitive, '$'
// separators ignored and only the first 16 characters significant.
func (r *Result) Symbol(name string) (int32, bool) {
	if r == nil || r.symbols == nil {
		return 0, false
	}
	s := r.symbols.find(normalizeName(name))
	if s == nil || s.State == Undefined {
		return 0, false
	}
	return s.Value, true
}

// The assembler holds the state of one assembly.
type assembler struct {
	out        io.Writer           // diagnostics and verbose trace
	verbose    bool                // verbose output
	stripZeros bool                // skip all-zero emit buffers
	set        *InstructionSet     // current instruction set
	symbols    symbolTable         // symbols shared by both passes
	sources    sourceStack         // open source files
	next       fstring             // parse cursor
	final      bool                // final pass: errors and code are output
	calculate  bool                // evaluating outside of assembly
	env        Environment         // names and radix while calculating
	current    int32               // current address
	maxAddress int32               // highest address emitted
	ifDepth    int                 // conditional nesting depth
	ifFalse    int                 // depth that disabled assembly, or 0
	sourceEnd  bool                // END seen
	entry      uint16              // END entry address
	errorCount int                 // errors counted during the final pass
	errors     []asmerror          // errors displayed
	lineErrors []byte              // error codes of the current line
	emit       emitBuffer          // staged code
	list       listing             // listing state and output
	code       *codeFile           // C array output
	object     *objectFile         // HEX object output
	target     memory.Memory       // memory receiving code
	bias       uint16              // added to emitted addresses
}

func newAssembler(out io.Writer, options Option) *assembler {
	if out == nil {
		out = os.Stdout
	}
	return &assembler{
		out:        out,
		verbose:    options&Verbose != 0,
		stripZeros: options&StripZeros != 0,
		set:        SetZ80(),
		lineErrors: make([]byte, 0, maxLineErrors),
		list:       listing{code: make([]byte, 0, maxListCode)},
	}
}

// Assemble runs an assembly described by opts. It returns ErrAssembly if
// any errors were counted; their diagnostics have already been written
// to opts.Out.
func Assemble(opts Options) (result *Result, err error) {
	a := newAssembler(opts.Out, opts.Flags)
	a.sources.fsys = opts.FS
	a.target = opts.Target
	a.bias = opts.Bias
	a.current = int32(opts.Address)
	a.maxAddress = a.current

	result = &Result{symbols: &a.symbols}
	defer func() {
		if cerr := a.cleanup(); err == nil && cerr != nil {
			err = cerr
		}
		for _, e := range a.errors {
			result.Errors = append(result.Errors, e.Error())
		}
	}()

	if opts.ObjectFile != "" {
		if a.object, err = createObjectFile(opts.ObjectFile); err != nil {
			fmt.Fprintf(a.out, "?OBJECT FILE \"%s\"\n", opts.ObjectFile)
			return result, err
		}
	}
	if opts.CodeFile != "" {
		fmt.Fprintf(a.out, "GENERATING %s\n", opts.CodeFile)
		if a.code, err = createCodeFile(opts.CodeFile); err != nil {
			fmt.Fprintf(a.out, "?CODE FILE \"%s\"\n", opts.CodeFile)
			return result, err
		}
	}

	if opts.Scan != nil {
		a.assembleFromMemory(opts.Scan)
	}
	if opts.Code != nil {
		a.assembleFromCode(opts.Code)
	}
	if opts.Line != "" {
		a.assembleFromLine(opts.Line)
	}
	if opts.SourceFile != "" {
		if a.isComFile(opts.SourceFile) {
			err = a.assembleFromComFile(opts.SourceFile)
		} else {
			err = a.assembleFromFile(opts.SourceFile, opts.ListFile)
		}
		if err != nil {
			return result, err
		}
	}

	result.Entry = a.entry
	if a.errorCount > 0 {
		fmt.Fprintf(a.out, "%d ERRORS\n", a.errorCount)
		return result, fmt.Errorf("%w: %d errors", ErrAssembly, a.errorCount)
	}

	result.Address = uint16(a.current)
	result.Pages = max(int(a.maxAddress>>8)&0xff, 1)
	return result, nil
}

// AssembleFile assembles a source file, writing a HEX object file and a
// listing next to it.
func AssembleFile(path string, options Option, out io.Writer) error {
	if out == nil {
		out = os.Stdout
	}

	ext := filepath.Ext(path)
	prefix := path[:len(path)-len(ext)]
	hexPath := prefix + ".HEX"
	prnPath := prefix + ".PRN"

	_, err := Assemble(Options{
		SourceFile: path,
		ObjectFile: hexPath,
		ListFile:   prnPath,
		Flags:      options,
		Out:        out,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Assembled '%s' to produce '%s' and '%s'.\n",
		filepath.Base(path),
		filepath.Base(hexPath),
		filepath.Base(prnPath))
	return nil
}

// Calculate evaluates an expression outside of an assembly. Symbols and
// the current address '$' are not available.
func Calculate(expr string) (int32, error) {
	return Evaluate(expr, Environment{})
}

// Environment supplies names and the default radix to Evaluate.
type Environment struct {
	// Resolve returns the value of a name, already uppercased with its
	// '$' separators dropped. The current address arrives as "$".
	Resolve func(name string) (int32, bool)

	// HexMode makes unsuffixed numerals hexadecimal. Names made only of
	// hex digits that Resolve does not know are read as numerals.
	HexMode bool
}

// Evaluate evaluates an expression outside of an assembly with the
// assembler's operators and priorities.
func Evaluate(expr string, env Environment) (int32, error) {
	a := newAssembler(io.Discard, 0)
	a.calculate = true
	a.env = env
	a.next = newFstring(1, expr)

	v, ok := a.parseExpression()
	if !ok || a.parseSpace() {
		return 0, fmt.Errorf("%w: %q", ErrExpression, expr)
	}
	return v, nil
}

func (a *assembler) cleanup() error {
	var errs []error
	if a.object != nil {
		errs = append(errs, a.object.close())
		a.object = nil
	}
	if a.code != nil {
		errs = append(errs, a.code.close())
		a.code = nil
	}
	errs = append(errs, a.list.close())
	a.sources.closeAll()
	return errors.Join(errs...)
}

//
// assembly drivers
//

// beginPass resets the per-pass state.
func (a *assembler) beginPass(final bool, start int32) {
	a.final = final
	a.list.topOfPage = 0
	a.ifDepth = 0
	a.ifFalse = 0
	a.sourceEnd = false
	a.current = start
	if final {
		a.logSection("Final pass")
	} else {
		a.logSection("First pass")
	}
}

// beginLine prepares to assemble and list one source line.
func (a *assembler) beginLine(line string, row int) {
	a.next = newFstring(row, line)
	a.lineErrors = a.lineErrors[:0]
	a.list.reset(a.current, row)
}

// assembleLine assembles the prepared line as a HEX record or as source.
func (a *assembler) assembleLine() {
	if a.next.startsWithChar(':') {
		a.assembleHexRecord()
	} else {
		a.assembleSourceLine()
	}
}

// assembleFromLine assembles a single source line in two passes using
// the Z80 instruction set.
func (a *assembler) assembleFromLine(line string) {
	start := a.current
	a.sources.line++
	for pass := 0; pass < 2; pass++ {
		a.set = SetZ80()
		a.beginPass(pass == 1, start)
		a.beginLine(line, a.sources.line)
		a.assembleLine()
	}
	a.flush()
}

// assembleFromFile assembles a source file in two passes, writing the
// listing during the final pass. Files with an ASM extension start with
// the 8080 instruction set, all others with the Z80 set.
func (a *assembler) assembleFromFile(path, listPath string) error {
	if listPath != "" {
		f, err := os.OpenFile(listPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			fmt.Fprintf(a.out, "?LIST FILE \"%s\"\n", listPath)
			return err
		}
		a.list.w, a.list.c = bufio.NewWriter(f), f
	}

	start := a.current
	for pass := 0; pass < 2; pass++ {
		if err := a.sources.push(path); err != nil {
			fmt.Fprintf(a.out, "?SOURCE FILE \"%s\"\n", path)
			return err
		}

		if strings.EqualFold(filepath.Ext(path), ".ASM") {
			a.set = Set8080()
		} else {
			a.set = SetZ80()
		}

		a.beginPass(pass == 1, start)
		for !a.sourceEnd {
			line, ok := a.sources.readLine()
			if !ok {
				break
			}
			a.beginLine(line, a.sources.row())
			a.assembleLine()
			if a.final && a.list.enabled() {
				a.list.listLine(string(a.lineErrors), line)
			}
		}
		a.sources.closeAll()
	}

	a.flush()
	if a.list.enabled() {
		a.list.listSymbols(&a.symbols)
	}
	return a.list.close()
}

// assembleFromCode emits the records of a code array: a count byte, a
// big-endian address and count data bytes, ending with a zero count.
func (a *assembler) assembleFromCode(code []byte) {
	a.final = true
	a.flush()
	for len(code) >= 3 && code[0] > 0 {
		n := int(code[0])
		a.current = int32(code[1])<<8 | int32(code[2])
		code = code[3:]
		for i := 0; i < n && i < len(code); i++ {
			a.emitByte(code[i])
		}
		code = code[min(n, len(code)):]
	}
	a.flush()
}

// isComFile reports whether a file holds binary data, that is any byte
// with its high bit set.
func (a *assembler) isComFile(path string) bool {
	r, err := a.sources.open(path)
	if err != nil {
		return false
	}
	defer r.Close()

	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return false
		}
		if b&0x80 != 0 {
			return true
		}
	}
}

// assembleFromComFile emits the contents of a binary file at 0100H.
func (a *assembler) assembleFromComFile(path string) error {
	r, err := a.sources.open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	a.current = 0x0100
	a.final = true
	a.flush()

	br := bufio.NewReader(r)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		a.emitByte(b)
	}
	a.flush()
	return nil
}

// assembleFromMemory re-emits every byte of a 64K memory.
func (a *assembler) assembleFromMemory(m memory.Memory) {
	a.final = true
	a.flush()
	a.current = 0
	for {
		a.emitByte(m.LoadByte(uint16(a.current)))
		if a.current == 0 {
			break
		}
	}
	a.flush()
}

//
// source lines
//

// assembleSourceLine assembles one line of source: an optional line
// number, then '!'-separated statements up to a ';' comment. A line
// starting with '*' is a comment.
func (a *assembler) assembleSourceLine() bool {
	if n, ok := a.parseNumber(); ok {
		a.list.lineNumber = int(n)
	}

	if a.parseSpace() && a.parseChar('*') {
		return true
	}

	for a.parseSpace() {
		if a.parseChar('!') {
			continue
		}
		if a.parseChar(';') {
			break
		}

		sym, dir, op, ok := a.parseSourceLine()
		if !ok {
			return false
		}
		if sym != nil {
			a.logLine("SYMBOL %s", sym.Name)
		}
		if dir != nil {
			a.logLine("DIRECTIVE %s", dir.name)
		}
		if op != nil {
			a.logLine("OPCODE %s", op.Name)
		}

		if dir != nil {
			var fn func(a *assembler) bool
			switch dir.code {
			case dirIF:
				fn = (*assembler).parseIF
			case dirELSE:
				fn = (*assembler).parseELSE
			case dirELSEIF:
				fn = (*assembler).parseELSEIF
			case dirENDIF:
				fn = (*assembler).parseENDIF
			}
			if fn != nil {
				if sym != nil {
					a.addError(SyntaxError)
					return false
				}
				if !fn(a) {
					return false
				}
				continue
			}
		}

		if a.ifFalse != 0 {
			a.list.mode = listSource
			a.skipStatement()
			continue
		}

		if dir != nil {
			switch dir.code {
			case dirSET, dirEQU:
				fn := (*assembler).parseSET
				if dir.code == dirEQU {
					fn = (*assembler).parseEQU
				}
				if !fn(a, sym) {
					return false
				}
				a.list.mode = listSourceValue
				a.list.address = sym.Value
				continue

			case dirORG:
				if sym != nil {
					a.addError(SyntaxError)
					return false
				}
				if !a.parseORG() {
					return false
				}
				a.list.mode = listSourceAddress
				a.list.address = a.current
				continue

			case dir8080, dirZ80, dirOPCODES, dirTITLE, dirSOURCE:
				if sym != nil {
					a.addError(SyntaxError)
					return false
				}
				if !a.settingDirective(dir.code) {
					return false
				}
				continue
			}
		}

		if sym != nil {
			if !a.setLabel(sym) {
				return false
			}
			a.logLine("LABEL %s", sym.Name)
		}

		a.list.mode = listSourceAddress

		if dir != nil {
			switch dir.code {
			case dirEND:
				if !a.parseEND() {
					return false
				}
			case dirDS:
				if !a.parseDS() {
					return false
				}
			case dirDB:
				if !a.parseDB() {
					return false
				}
				a.list.mode = listSourceAddressCode
			case dirDW:
				if !a.parseDW() {
					return false
				}
				a.list.mode = listSourceAddressCode
			}
			continue
		}

		if op != nil {
			operand, ok := a.parseOperand()
			if !ok {
				return false
			}
			a.logLine("OPERAND %s", operand)

			code := a.set.LookupCode(op, operand)
			if code == nil {
				a.addError(SyntaxError)
				return false
			}
			a.logLine("CODE %s", code.Format)

			if !a.generateCode(code, operand) {
				return false
			}
			a.list.mode = listSourceAddressCode
		}
	}
	return true
}

// settingDirective handles the directives that neither take a label nor
// emit code.
func (a *assembler) settingDirective(code directiveCode) bool {
	switch code {
	case dir8080:
		a.set = Set8080()
		return true
	case dirZ80:
		a.set = SetZ80()
		return true
	case dirOPCODES:
		return a.parseOPCODES()
	case dirTITLE:
		return a.parseTITLE()
	default:
		return a.parseSOURCE()
	}
}

// parseSourceLine parses the leading tokens of a statement: an opcode, a
// directive, or a symbol optionally followed by ':' and then by an
// opcode or directive.
func (a *assembler) parseSourceLine() (sym *Symbol, dir *directive, op *Opcode, ok bool) {
	name, found := a.parseName()
	if !found {
		a.addError(SyntaxError)
		return nil, nil, nil, false
	}

	if op = a.set.LookupOpcode(name); op != nil {
		return nil, nil, op, true
	}
	if dir = lookupDirective(name); dir != nil {
		return nil, dir, nil, true
	}
	if a.set.LookupRegister(name) || name[0] == '.' {
		a.addError(SyntaxError)
		return nil, nil, nil, false
	}

	sym = a.symbols.lookup(name)
	if a.parseChar(':') && !a.setLabel(sym) {
		return nil, nil, nil, false
	}

	if a.parseSpace() {
		if name, found = a.parseName(); found {
			if op = a.set.LookupOpcode(name); op == nil {
				if dir = lookupDirective(name); dir == nil {
					a.addError(SyntaxError)
					return nil, nil, nil, false
				}
			}
		}
	}
	return sym, dir, op, true
}

// setLabel defines a label at the current address. A label whose
// address differs between the passes is a phase error.
func (a *assembler) setLabel(sym *Symbol) bool {
	if sym.State == Undefined {
		sym.State = Label
		sym.Value = a.current
	}
	if sym.State != Label {
		a.addError(SyntaxError)
		return false
	}
	if sym.Value != a.current {
		a.addError(PhaseError)
		return false
	}
	return true
}

//
// verbose trace
//

// In verbose mode, log a formatted string.
func (a *assembler) log(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.out, format, args...)
		fmt.Fprintf(a.out, "\n")
	}
}

// In verbose mode, log a string and the remainder of the line being
// parsed during the final pass.
func (a *assembler) logLine(format string, args ...any) {
	if a.verbose && a.final {
		detail := fmt.Sprintf(format, args...)
		fmt.Fprintf(a.out, "%-3d %-3d | %-20s | %s\n", a.next.row, a.next.offset()+1, detail, a.next.str)
	}
}

// In verbose mode, log a series of bytes with starting address.
func (a *assembler) logBytes(addr uint16, b []byte) {
	if a.verbose {
		for i, n := 0, len(b); i < n; i += 4 {
			j := min(i+4, n)
			a.log("%04X-*  %s", addr+uint16(i), byteString(b[i:j]))
		}
	}
}

// In verbose mode, log a section header to the output.
func (a *assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}
