// shell.go - Termlink command interpreter

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
shell.go - Termlink Command Shell

One command per line. The verb is matched case-insensitively and everything
from a "//" or "#" token onward is a comment. A line whose verb is not a known
command is read as an instruction word and executed immediately against the
current pc, without a fetch.

Output goes to two writers. Command results and usage text go to out; the
register and memory listings from show, dump and trace go to errOut.
*/

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/intuitionamiga/termlink/mips"
)

const (
	colorStart = "\033[1;32;40m"
	colorEnd   = "\033[0m"

	maxScriptDepth = 8
)

// ShellCommand is a parsed command with name and arguments.
type ShellCommand struct {
	Name string
	Args []string
}

// ParseCommand splits a raw input line into a command name and arguments.
// The name is lower-cased; arguments keep their case so filenames survive.
func ParseCommand(input string) ShellCommand {
	parts := strings.Fields(input)
	for i, p := range parts {
		if p == "//" || p == "#" {
			parts = parts[:i]
			break
		}
	}
	if len(parts) == 0 {
		return ShellCommand{}
	}
	return ShellCommand{
		Name: strings.ToLower(parts[0]),
		Args: parts[1:],
	}
}

// Shell drives one machine from text commands.
type Shell struct {
	machine *mips.Machine
	out     io.Writer
	errOut  io.Writer

	maxSteps    uint64
	trace       bool
	color       bool
	scriptDepth int
}

func NewShell(m *mips.Machine, out, errOut io.Writer) *Shell {
	return &Shell{
		machine: m,
		out:     out,
		errOut:  errOut,
	}
}

// Machine returns the machine the shell operates on.
func (s *Shell) Machine() *mips.Machine {
	return s.machine
}

// SetTrace turns per-instruction trace lines on or off.
func (s *Shell) SetTrace(on bool) {
	s.trace = on
	if !on {
		s.machine.Trace = nil
		return
	}
	s.machine.Trace = func(addr uint32, inst mips.Instruction) {
		fmt.Fprintf(s.errOut, "0x%08x:  %08x    %s\n", addr, inst.Word, mips.Disassemble(inst.Word))
	}
}

// LineSource yields one command line per call and io.EOF at the end.
type LineSource interface {
	ReadLine() (string, error)
}

// Serve executes lines from src until it is exhausted or a quit command is
// read.
func (s *Shell) Serve(src LineSource) error {
	for {
		line, err := src.ReadLine()
		if line != "" && s.ExecuteCommand(line) {
			return nil
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// ExecuteCommand runs one line and reports whether the shell should exit.
func (s *Shell) ExecuteCommand(input string) bool {
	cmd := ParseCommand(input)
	if cmd.Name == "" {
		return false
	}

	switch cmd.Name {
	case "load":
		return s.cmdLoad(cmd)
	case "run":
		return s.cmdRun(cmd)
	case "show":
		return s.cmdShow(cmd)
	case "dump":
		return s.cmdDump(cmd)
	case "step":
		return s.cmdStep(cmd)
	case "disasm":
		return s.cmdDisasm(cmd)
	case "trace":
		return s.cmdTrace(cmd)
	case "inspect":
		return s.cmdInspect(cmd)
	case "hash":
		return s.cmdHash(cmd)
	case "ss":
		return s.cmdSaveState(cmd)
	case "sl":
		return s.cmdLoadState(cmd)
	case "lua":
		return s.cmdLua(cmd)
	case "script":
		return s.cmdScript(cmd)
	case "?", "help":
		return s.cmdHelp(cmd)
	case "quit", "exit":
		return true
	default:
		return s.cmdRawInstruction(cmd)
	}
}

func (s *Shell) printError(err error) {
	fmt.Fprintf(s.out, "Error: %v\n", err)
}

func (s *Shell) cmdLoad(cmd ShellCommand) bool {
	if len(cmd.Args) != 1 {
		fmt.Fprintln(s.out, "Usage: load [program filename]")
		return false
	}
	if err := s.machine.LoadFile(cmd.Args[0]); err != nil {
		s.printError(err)
	}
	return false
}

func (s *Shell) cmdRun(cmd ShellCommand) bool {
	if len(cmd.Args) != 0 {
		fmt.Fprintln(s.out, "Usage: run")
		return false
	}
	if _, err := s.machine.RunFor(s.maxSteps); err != nil {
		s.printError(err)
	}
	return false
}

func (s *Shell) cmdShow(cmd ShellCommand) bool {
	switch len(cmd.Args) {
	case 0:
		s.showRegisters("all")
	case 1:
		s.showRegisters(strings.ToLower(cmd.Args[0]))
	default:
		fmt.Fprintln(s.out, "Usage: show { [register name] }")
	}
	return false
}

func (s *Shell) cmdDump(cmd ShellCommand) bool {
	if len(cmd.Args) != 2 {
		fmt.Fprintln(s.out, "Usage: dump [start address] [length]")
		return false
	}
	s.dumpMemory(mips.ParseWord(cmd.Args[0]), mips.ParseWord(cmd.Args[1]))
	return false
}

func (s *Shell) cmdStep(cmd ShellCommand) bool {
	count := uint32(1)
	if len(cmd.Args) >= 1 {
		if v := mips.ParseWord(cmd.Args[0]); v > 0 {
			count = v
		}
	}

	for i := uint32(0); i < count; i++ {
		addr := s.machine.PC
		word, _ := s.machine.Memory.Read32(addr)
		cont, err := s.machine.Step()
		if err != nil {
			s.printError(err)
			return false
		}
		if !s.trace {
			fmt.Fprintf(s.out, "0x%08x:  %08x    %s\n", addr, word, mips.Disassemble(word))
		}
		if !cont {
			fmt.Fprintln(s.out, "Halted")
			break
		}
	}
	return false
}

func (s *Shell) cmdDisasm(cmd ShellCommand) bool {
	addr := s.machine.PC
	count := 8
	if len(cmd.Args) >= 1 {
		addr = mips.ParseWord(cmd.Args[0])
	}
	if len(cmd.Args) >= 2 {
		if v := mips.ParseWord(cmd.Args[1]); v > 0 {
			count = int(v)
		}
	}

	lines := s.machine.DisassembleRange(addr, count)
	if len(lines) == 0 {
		s.printError(&mips.AddressError{Addr: addr, Size: mips.WORD_SIZE})
		return false
	}
	for _, line := range lines {
		marker := "  "
		if line.IsPC {
			marker = "> "
		}
		fmt.Fprintf(s.out, "%s0x%08x:  %08x    %s\n", marker, line.Address, line.Word, line.Mnemonic)
	}
	return false
}

func (s *Shell) cmdTrace(cmd ShellCommand) bool {
	if len(cmd.Args) != 1 {
		fmt.Fprintln(s.out, "Usage: trace on|off")
		return false
	}
	switch strings.ToLower(cmd.Args[0]) {
	case "on":
		s.SetTrace(true)
		fmt.Fprintln(s.out, "Trace on")
	case "off":
		s.SetTrace(false)
		fmt.Fprintln(s.out, "Trace off")
	default:
		fmt.Fprintln(s.out, "Usage: trace on|off")
	}
	return false
}

func (s *Shell) cmdHash(_ ShellCommand) bool {
	fmt.Fprintf(s.out, "%016x\n", s.machine.Fingerprint())
	return false
}

func (s *Shell) cmdSaveState(cmd ShellCommand) bool {
	filename := "termlink.snap"
	if len(cmd.Args) >= 1 {
		filename = cmd.Args[0]
	}
	if err := mips.SaveSnapshot(filename, s.machine.TakeSnapshot()); err != nil {
		s.printError(err)
		return false
	}
	fmt.Fprintf(s.out, "State saved to %s\n", filename)
	return false
}

func (s *Shell) cmdLoadState(cmd ShellCommand) bool {
	filename := "termlink.snap"
	if len(cmd.Args) >= 1 {
		filename = cmd.Args[0]
	}
	snap, err := mips.LoadSnapshot(filename)
	if err != nil {
		s.printError(err)
		return false
	}
	if err := s.machine.Restore(snap); err != nil {
		s.printError(err)
		return false
	}
	fmt.Fprintf(s.out, "State loaded from %s\n", filename)
	return false
}

func (s *Shell) cmdLua(cmd ShellCommand) bool {
	if len(cmd.Args) != 1 {
		fmt.Fprintln(s.out, "Usage: lua <filename>")
		return false
	}

	s.scriptDepth++
	defer func() { s.scriptDepth-- }()
	if s.scriptDepth > maxScriptDepth {
		fmt.Fprintln(s.out, "Script recursion limit reached")
		return false
	}
	if err := s.RunLuaFile(cmd.Args[0]); err != nil {
		s.printError(err)
	}
	return false
}

func (s *Shell) cmdScript(cmd ShellCommand) bool {
	if len(cmd.Args) != 1 {
		fmt.Fprintln(s.out, "Usage: script <filename>")
		return false
	}

	data, err := os.ReadFile(cmd.Args[0])
	if err != nil {
		s.printError(err)
		return false
	}

	s.scriptDepth++
	defer func() { s.scriptDepth-- }()
	if s.scriptDepth > maxScriptDepth {
		fmt.Fprintln(s.out, "Script recursion limit reached")
		return false
	}

	for line := range strings.SplitSeq(string(data), "\n") {
		if s.ExecuteCommand(line) {
			return true
		}
	}
	return false
}

func (s *Shell) cmdHelp(_ ShellCommand) bool {
	helpLines := []string{
		"Termlink Commands:",
		"  load <file>          Load a program at pc",
		"  run                  Run from 0x00001000 until halt",
		"  show [reg|pc|all]    Show registers",
		"  dump <addr> <len>    Dump memory",
		"  step [count]         Execute instructions from pc",
		"  disasm [addr] [n]    Disassemble memory",
		"  trace on|off         Print every executed instruction",
		"  inspect <word>       Show the decoded fields of a word",
		"  hash                 Fingerprint of the machine state",
		"  ss [file]            Save machine state",
		"  sl [file]            Load machine state",
		"  lua <file>           Run a Lua script",
		"  script <file>        Run a file of commands",
		"  quit                 Leave Termlink",
		"  <word>               Execute one instruction word",
	}
	for _, line := range helpLines {
		fmt.Fprintln(s.out, line)
	}
	return false
}

func (s *Shell) cmdRawInstruction(cmd ShellCommand) bool {
	if _, err := s.machine.ExecuteWord(mips.ParseWord(cmd.Name)); err != nil {
		s.printError(err)
	}
	return false
}
