// shell_format.go - Register, memory and instruction listings for Termlink

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

package main

import (
	"fmt"

	"github.com/k0kubun/pp/v3"

	"github.com/intuitionamiga/termlink/mips"
)

// showRegisters prints one register, "pc", or "all" (every register followed
// by pc). An unknown name prints nothing.
func (s *Shell) showRegisters(name string) {
	from, to := 0, 0
	includePC := false

	switch name {
	case "all":
		from, to = 0, mips.NUM_REGISTERS
		includePC = true
	case "pc":
		includePC = true
	default:
		if idx, err := mips.NameToIndex(name); err == nil {
			from, to = idx, idx+1
		}
	}

	regs := s.machine.Registers.Values()
	for i := from; i < to; i++ {
		fmt.Fprintf(s.errOut, "[%02d:%2s] 0x%08x    %d\n", i, mips.RegisterNames[i], regs[i], regs[i])
	}
	if includePC {
		fmt.Fprintf(s.errOut, "[  pc ] 0x%08x\n", s.machine.PC)
	}
}

// dumpMemory prints length bytes from addr, four per row. A row that runs
// past the end of memory stops the listing with an error.
func (s *Shell) dumpMemory(addr, length uint32) {
	for i := uint64(0); i < uint64(length); i += mips.WORD_SIZE {
		rowAddr := addr + uint32(i)
		row, err := s.machine.MemoryRange(rowAddr, mips.WORD_SIZE)
		if err != nil {
			s.printError(err)
			return
		}
		fmt.Fprintf(s.errOut, "0x%08x:  %02x %02x %02x %02x    %c %c %c %c\n",
			rowAddr,
			row[0], row[1], row[2], row[3],
			printable(row[0]), printable(row[1]), printable(row[2]), printable(row[3]))
	}
}

func printable(b byte) byte {
	if b >= 0x20 && b < 0x7F {
		return b
	}
	return '.'
}

func (s *Shell) cmdInspect(cmd ShellCommand) bool {
	if len(cmd.Args) != 1 {
		fmt.Fprintln(s.out, "Usage: inspect <word>")
		return false
	}
	word := mips.ParseWord(cmd.Args[0])

	printer := pp.New()
	printer.SetOutput(s.out)
	printer.SetColoringEnabled(s.color)
	printer.Println(mips.Decode(word))
	fmt.Fprintf(s.out, "%s\n", mips.Disassemble(word))
	return false
}
