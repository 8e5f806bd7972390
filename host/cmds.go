// Copyright 2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"strings"

	"github.com/beevik/cmd"
)

// A helpEntry documents a command or a group of subcommands.
type helpEntry struct {
	name        string
	brief       string
	description string
	usage       string
	sub         []*helpEntry
}

// find returns the entry whose name matches a unique prefix, or nil.
func (e *helpEntry) find(name string) *helpEntry {
	name = strings.ToLower(name)
	var match *helpEntry
	for _, s := range e.sub {
		if s.name == name {
			return s
		}
		if strings.HasPrefix(s.name, name) {
			if match != nil {
				return nil
			}
			match = s
		}
	}
	return match
}

// A command is the data stored with each command in the command tree.
type command struct {
	help *helpEntry
	run  func(*Host, cmd.Selection) error
}

type commandTree struct {
	tree *cmd.Tree
	help *helpEntry
}

func (t commandTree) add(d cmd.CommandDescriptor, run func(*Host, cmd.Selection) error) {
	e := &helpEntry{name: d.Name, brief: d.Brief, description: d.Description, usage: d.Usage}
	d.Data = &command{help: e, run: run}
	t.tree.AddCommand(d)
	t.help.sub = append(t.help.sub, e)
}

func (t commandTree) subtree(d cmd.TreeDescriptor) commandTree {
	e := &helpEntry{name: d.Name, brief: d.Brief}
	t.help.sub = append(t.help.sub, e)
	return commandTree{tree: t.tree.AddSubtree(d), help: e}
}

var (
	cmds     *cmd.Tree
	cmdsHelp *helpEntry
)

func init() {
	root := commandTree{
		tree: cmd.NewTree(cmd.TreeDescriptor{Name: "usim"}),
		help: &helpEntry{name: "usim"},
	}

	root.add(cmd.CommandDescriptor{
		Name:        "help",
		Brief:       "Display help for a command",
		Description: "Display help for a command or a group of commands.",
		Usage:       "help [<command>]",
	}, (*Host).cmdHelp)

	// Assemble commands
	as := root.subtree(cmd.TreeDescriptor{Name: "assemble", Brief: "Assemble commands"})
	as.add(cmd.CommandDescriptor{
		Name:  "file",
		Brief: "Assemble a source file",
		Description: "Run the assembler on the specified source file," +
			" producing a HEX object file and a PRN listing file next to it" +
			" if successful. Files with an ASM extension start in 8080" +
			" mode, all others in Z80 mode. If you want a verbose trace," +
			" specify true as a second parameter.",
		Usage: "assemble file <filename> [<verbose>]",
	}, (*Host).cmdAssembleFile)
	as.add(cmd.CommandDescriptor{
		Name:  "line",
		Brief: "Assemble one instruction into memory",
		Description: "Assemble a single Z80 instruction or directive and" +
			" store its code in memory at the specified address. The" +
			" address following the code is remembered for the next" +
			" disassembly.",
		Usage: "assemble line <address> <instruction>",
	}, (*Host).cmdAssembleLine)

	root.add(cmd.CommandDescriptor{
		Name:  "console",
		Brief: "Queue console input",
		Description: "Append text to the console input read by the running" +
			" program. A carriage return follows the text.",
		Usage: "console <text>",
	}, (*Host).cmdConsole)
	root.add(cmd.CommandDescriptor{
		Name:  "disassemble",
		Brief: "Disassemble code",
		Description: "Disassemble machine code starting at the requested" +
			" address. The number of instruction lines to disassemble may be" +
			" specified as an option. If no address is specified, the" +
			" disassembly continues from where the last disassembly left off.",
		Usage: "disassemble [<address>] [<lines>]",
	}, (*Host).cmdDisassemble)

	// Breakpoint commands
	bp := root.subtree(cmd.TreeDescriptor{Name: "breakpoint", Brief: "Breakpoint commands"})
	bp.add(cmd.CommandDescriptor{
		Name:        "list",
		Brief:       "List breakpoints",
		Description: "List all current breakpoints.",
		Usage:       "breakpoint list",
	}, (*Host).cmdBreakpointList)
	bp.add(cmd.CommandDescriptor{
		Name:        "add",
		Brief:       "Add a breakpoint",
		Description: "Add a breakpoint at the specified address.",
		Usage:       "breakpoint add <address>",
	}, (*Host).cmdBreakpointAdd)
	bp.add(cmd.CommandDescriptor{
		Name:        "remove",
		Brief:       "Remove a breakpoint",
		Description: "Remove a breakpoint at the specified address.",
		Usage:       "breakpoint remove <address>",
	}, (*Host).cmdBreakpointRemove)

	// Disk commands
	dk := root.subtree(cmd.TreeDescriptor{Name: "disk", Brief: "CP/M disk commands"})
	dk.add(cmd.CommandDescriptor{
		Name:  "mount",
		Brief: "Mount a disk",
		Description: "Mount a disk image, a host directory or the RAM disk" +
			" RAMDISK on a unit A: through P:. Without a name the unit's" +
			" default image, such as DISKA.DSK, is mounted. Specify ro to" +
			" mount the disk read-only.",
		Usage: "disk mount <unit> [<name>] [ro]",
	}, (*Host).cmdDiskMount)
	dk.add(cmd.CommandDescriptor{
		Name:        "unmount",
		Brief:       "Unmount a disk",
		Description: "Unmount the disk on a unit.",
		Usage:       "disk unmount <unit>",
	}, (*Host).cmdDiskUnmount)
	dk.add(cmd.CommandDescriptor{
		Name:  "status",
		Brief: "Show the mount table",
		Description: "Show the mount table, or the entry for one unit. Specify" +
			" verbose to show the unit's disk parameters.",
		Usage: "disk status [<unit>] [verbose]",
	}, (*Host).cmdDiskStatus)
	dk.add(cmd.CommandDescriptor{
		Name:  "format",
		Brief: "Create a disk image",
		Description: "Create an empty CP/M disk image file. The default" +
			" size is 256256 bytes, a standard 8\" floppy. The geometry may" +
			" be changed with -S <sectors per track>, -B <block size>," +
			" -D <directory entries - 1>, -O <system tracks> and -X <skew" +
			" factor>.",
		Usage: "disk format <filename> [<size>] [<flags>]",
	}, (*Host).cmdDiskFormat)
	dk.add(cmd.CommandDescriptor{
		Name:  "copy",
		Brief: "Copy a disk to an image file",
		Description: "Copy the disk on a unit to a binary image file. Specify" +
			" ascii to create a read-only ASCII image instead.",
		Usage: "disk copy <unit> <filename> [ascii]",
	}, (*Host).cmdDiskCopy)
	dk.add(cmd.CommandDescriptor{
		Name:        "directory",
		Brief:       "Show a disk directory",
		Description: "Show the files in the directory of a mounted disk.",
		Usage:       "disk directory <unit>",
	}, (*Host).cmdDiskDirectory)
	dk.add(cmd.CommandDescriptor{
		Name:  "fcb",
		Brief: "Show directory entries",
		Description: "Show the raw directory entries of a mounted disk, or" +
			" only the entry with the given number.",
		Usage: "disk fcb <unit> [<number>]",
	}, (*Host).cmdDiskFCB)
	dk.add(cmd.CommandDescriptor{
		Name:  "alv",
		Brief: "Show the allocation vector",
		Description: "Show how many directory entries refer to each data" +
			" block of a mounted disk.",
		Usage: "disk alv <unit>",
	}, (*Host).cmdDiskALV)
	dk.add(cmd.CommandDescriptor{
		Name:  "parameters",
		Brief: "Compute disk parameters",
		Description: "Compute and show the CP/M disk parameter block for a" +
			" disk geometry.",
		Usage: "disk parameters <tracks> <sectors> <block size> <dir entries - 1> <system tracks> <skew>",
	}, (*Host).cmdDiskParameters)
	dk.add(cmd.CommandDescriptor{
		Name:        "erase",
		Brief:       "Erase the system tracks",
		Description: "Fill the reserved system tracks of a mounted disk with E5H.",
		Usage:       "disk erase <unit>",
	}, (*Host).cmdDiskErase)

	root.add(cmd.CommandDescriptor{
		Name:  "evaluate",
		Brief: "Evaluate an expression",
		Description: "Evaluate an expression using the assembler's" +
			" expression syntax and show the result in several radixes." +
			" Registers, '$' for the program counter and the symbols of" +
			" the last loaded source file may be used. Numerals are" +
			" decimal unless suffixed, whatever the HexMode setting.",
		Usage: "evaluate <expression>",
	}, (*Host).cmdEvaluate)
	root.add(cmd.CommandDescriptor{
		Name:  "load",
		Brief: "Load code into memory",
		Description: "Load a source, HEX or COM file into memory. The" +
			" default extension is HEX. The LoadBias setting is added to" +
			" every address, and the number of 256-byte pages loaded is" +
			" shown for use with the CP/M SAVE command.",
		Usage: "load <filename> ...",
	}, (*Host).cmdLoad)
	root.add(cmd.CommandDescriptor{
		Name:  "unload",
		Brief: "Save memory to a file",
		Description: "Save all 64K of memory as an Intel HEX object file." +
			" Files with a C or H extension are written as a C byte array" +
			" of code records instead.",
		Usage: "unload <filename>",
	}, (*Host).cmdUnload)

	// Memory commands
	me := root.subtree(cmd.TreeDescriptor{Name: "memory", Brief: "Memory commands"})
	me.add(cmd.CommandDescriptor{
		Name:  "dump",
		Brief: "Dump memory at address",
		Description: "Dump the contents of memory starting from the" +
			" specified address. The number of bytes to dump may be" +
			" specified as an option. If no address is specified, the" +
			" memory dump continues from where the last dump left off.",
		Usage: "memory dump [<address>] [<bytes>]",
	}, (*Host).cmdMemoryDump)
	me.add(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set memory at address",
		Description: "Set the contents of memory starting from the specified" +
			" address. The values to assign should be a series of" +
			" space-separated byte values. You may use an expression for each" +
			" byte value.",
		Usage: "memory set <address> <byte> [<byte> ...]",
	}, (*Host).cmdMemorySet)
	me.add(cmd.CommandDescriptor{
		Name:  "copy",
		Brief: "Copy memory",
		Description: "Copy memory from one range of addresses to another. You" +
			" must specify the destination address, the first byte of the source" +
			" address, and the last byte of the source address.",
		Usage: "memory copy <dst addr> <src addr begin> <src addr end>",
	}, (*Host).cmdMemoryCopy)
	me.add(cmd.CommandDescriptor{
		Name:        "fill",
		Brief:       "Fill memory",
		Description: "Fill a range of memory with a byte value.",
		Usage:       "memory fill <addr begin> <addr end> <byte>",
	}, (*Host).cmdMemoryFill)
	me.add(cmd.CommandDescriptor{
		Name:  "map",
		Brief: "Show or change the memory map",
		Description: "Show which physical bank of memory each 16K logical" +
			" bank selects. Given a bank and a value, map physical bank" +
			" <value> into logical bank <bank> first. With -p the bank is" +
			" physical, the value is logical, and the display shows each" +
			" physical bank with the logical banks it appears in.",
		Usage: "memory map [-p] [<bank> [<value>]]",
	}, (*Host).cmdMemoryMap)

	root.add(cmd.CommandDescriptor{
		Name:        "quit",
		Brief:       "Quit the program",
		Description: "Quit the program.",
		Usage:       "quit",
	}, (*Host).cmdQuit)
	root.add(cmd.CommandDescriptor{
		Name:  "register",
		Brief: "View or change register values",
		Description: "When used without arguments, this command displays the current" +
			" contents of the CPU registers. When used with arguments, this" +
			" command changes the value of a register. Allowed register names" +
			" are A, F, B, C, D, E, H, L, AF, BC, DE, HL, SP, PC, IX and IY.",
		Usage: "register [<name> <value>]",
	}, (*Host).cmdRegister)
	root.add(cmd.CommandDescriptor{
		Name:  "reset",
		Brief: "Reset the system",
		Description: "Clear the CPU registers and memory and unmount all" +
			" disks.",
		Usage: "reset",
	}, (*Host).cmdReset)
	root.add(cmd.CommandDescriptor{
		Name:  "run",
		Brief: "Run the CPU",
		Description: "Run the CPU until it halts, a breakpoint is hit or the" +
			" user types Ctrl-C. Execution starts at the program counter" +
			" unless an address is given.",
		Usage: "run [<address>]",
	}, (*Host).cmdRun)
	root.add(cmd.CommandDescriptor{
		Name:  "script",
		Brief: "Run a Starlark script",
		Description: "Run a Starlark script that drives the monitor. Scripts" +
			" may call command(line), peek(address), poke(address, byte...)," +
			" register(name, [value]), console(text), calculate(expression)," +
			" assemble(address, line) and disassemble(address).",
		Usage: "script <filename>",
	}, (*Host).cmdScript)
	root.add(cmd.CommandDescriptor{
		Name:  "set",
		Brief: "Set a configuration variable",
		Description: "Set the value of a configuration variable. To see the" +
			" current values of all configuration variables, type set" +
			" without any arguments.",
		Usage: "set [<var> <value>]",
	}, (*Host).cmdSet)

	// Step commands
	st := root.subtree(cmd.TreeDescriptor{Name: "step", Brief: "Step the CPU"})
	st.add(cmd.CommandDescriptor{
		Name:  "in",
		Brief: "Step into next instruction",
		Description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call, step into the subroutine." +
			" The number of steps may be specified as an option.",
		Usage: "step in [<count>]",
	}, (*Host).cmdStepIn)
	st.add(cmd.CommandDescriptor{
		Name:  "over",
		Brief: "Step over next instruction",
		Description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call, step over the subroutine." +
			" The number of steps may be specified as an option.",
		Usage: "step over [<count>]",
	}, (*Host).cmdStepOver)

	// Add command shortcuts.
	t := root.tree
	t.AddShortcut("a", "assemble file")
	t.AddShortcut("al", "assemble line")
	t.AddShortcut("b", "breakpoint")
	t.AddShortcut("ba", "breakpoint add")
	t.AddShortcut("br", "breakpoint remove")
	t.AddShortcut("bl", "breakpoint list")
	t.AddShortcut("d", "disassemble")
	t.AddShortcut("e", "evaluate")
	t.AddShortcut("l", "load")
	t.AddShortcut("m", "memory dump")
	t.AddShortcut("mc", "memory copy")
	t.AddShortcut("mf", "memory fill")
	t.AddShortcut("ms", "memory set")
	t.AddShortcut("map", "memory map")
	t.AddShortcut("mount", "disk mount")
	t.AddShortcut("unmount", "disk unmount")
	t.AddShortcut("r", "register")
	t.AddShortcut("g", "run")
	t.AddShortcut("s", "step over")
	t.AddShortcut("si", "step in")
	t.AddShortcut("?", "help")
	t.AddShortcut(".", "register")

	cmds, cmdsHelp = root.tree, root.help
}
