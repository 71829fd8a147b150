// disasm.go - Disassembler for the MIPS core

package mips

import "fmt"

// Disassemble renders a word as assembly text using canonical register names.
func Disassemble(word uint32) string {
	inst := Decode(word)
	name := inst.Mnemonic()
	rs, rt, rd := RegisterNames[inst.Rs], RegisterNames[inst.Rt], RegisterNames[inst.Rd]

	switch inst.Format {
	case FormatHalt:
		return name
	case FormatR:
		switch inst.Funct {
		case FUNCT_SLL, FUNCT_SRL, FUNCT_SRA:
			return fmt.Sprintf("%s %s, %s, %d", name, rd, rt, inst.Shamt)
		case FUNCT_JR:
			return fmt.Sprintf("%s %s", name, rs)
		}
		return fmt.Sprintf("%s %s, %s, %s", name, rd, rs, rt)
	case FormatJ:
		return fmt.Sprintf("%s 0x%08x", name, inst.Address<<2)
	case FormatI:
		switch inst.Opcode {
		case OP_LW, OP_SW:
			return fmt.Sprintf("%s %s, %d(%s)", name, rt, inst.SignExtImm(), rs)
		case OP_ANDI, OP_ORI:
			return fmt.Sprintf("%s %s, %s, 0x%x", name, rt, rs, inst.ZeroExtImm())
		case OP_BEQ, OP_BNE:
			return fmt.Sprintf("%s %s, %s, %d", name, rs, rt, inst.SignExtImm())
		}
		return fmt.Sprintf("%s %s, %s, %d", name, rt, rs, inst.SignExtImm())
	}
	return fmt.Sprintf(".word 0x%08x", word)
}

// DisassembledLine is one row of a listing.
type DisassembledLine struct {
	Address  uint32
	Word     uint32
	Mnemonic string
	IsPC     bool
}

// DisassembleRange lists count words starting at addr, stopping early at the
// end of memory.
func (m *Machine) DisassembleRange(addr uint32, count int) []DisassembledLine {
	var lines []DisassembledLine
	for i := 0; i < count; i++ {
		word, err := m.Memory.Read32(addr)
		if err != nil {
			break
		}
		lines = append(lines, DisassembledLine{
			Address:  addr,
			Word:     word,
			Mnemonic: Disassemble(word),
			IsPC:     addr == m.PC,
		})
		addr += WORD_SIZE
	}
	return lines
}
