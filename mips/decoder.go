// decoder.go - Instruction decoder for the MIPS core

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

package mips

import "fmt"

// Format tags the encoding a word decoded to.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatR
	FormatI
	FormatJ
	FormatHalt
)

func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatJ:
		return "J"
	case FormatHalt:
		return "Halt"
	}
	return "Unknown"
}

// Instruction is one decoded word. Immediate keeps the raw 16 bits; each
// opcode picks sign or zero extension when it executes.
type Instruction struct {
	Word      uint32
	Format    Format
	Opcode    uint8
	Funct     uint8
	Rs        uint8
	Rt        uint8
	Rd        uint8
	Shamt     uint8
	Immediate uint16
	Address   uint32
}

var rFunctNames = map[uint8]string{
	FUNCT_SLL: "sll", FUNCT_SRL: "srl", FUNCT_SRA: "sra", FUNCT_JR: "jr",
	FUNCT_ADD: "add", FUNCT_SUB: "sub", FUNCT_AND: "and", FUNCT_OR: "or",
	FUNCT_NOR: "nor", FUNCT_SLT: "slt",
}

var opcodeNames = map[uint8]string{
	OP_J: "j", OP_JAL: "jal", OP_BEQ: "beq", OP_BNE: "bne",
	OP_ADDI: "addi", OP_SLTI: "slti", OP_ANDI: "andi", OP_ORI: "ori",
	OP_LW: "lw", OP_SW: "sw",
}

// Decode splits a word into its fields. Words whose opcode/funct pair is
// not part of the instruction set decode with FormatUnknown, but their
// fields are still filled in for display.
func Decode(word uint32) Instruction {
	inst := Instruction{
		Word:   word,
		Opcode: uint8(word>>OPCODE_SHIFT) & OPCODE_MASK,
	}
	if word == HALT_WORD {
		inst.Format = FormatHalt
		return inst
	}

	switch inst.Opcode {
	case OP_RTYPE:
		inst.Funct = uint8(word) & FUNCT_MASK
		inst.Rs = uint8(word>>RS_SHIFT) & REG_MASK
		inst.Rt = uint8(word>>RT_SHIFT) & REG_MASK
		inst.Rd = uint8(word>>RD_SHIFT) & REG_MASK
		inst.Shamt = uint8(word>>SHAMT_SHIFT) & REG_MASK
		if _, ok := rFunctNames[inst.Funct]; ok {
			inst.Format = FormatR
		}
	case OP_J, OP_JAL:
		inst.Address = word & ADDRESS_MASK
		inst.Format = FormatJ
	default:
		inst.Rs = uint8(word>>RS_SHIFT) & REG_MASK
		inst.Rt = uint8(word>>RT_SHIFT) & REG_MASK
		inst.Immediate = uint16(word & IMMEDIATE_MASK)
		if _, ok := opcodeNames[inst.Opcode]; ok {
			inst.Format = FormatI
		}
	}
	return inst
}

// Mnemonic returns the lower-case instruction name, "halt", or "" for an
// unknown word.
func (inst Instruction) Mnemonic() string {
	switch inst.Format {
	case FormatHalt:
		return "halt"
	case FormatR:
		return rFunctNames[inst.Funct]
	case FormatI, FormatJ:
		return opcodeNames[inst.Opcode]
	}
	return ""
}

// SignExtImm returns the immediate as a two's-complement 16-bit value.
func (inst Instruction) SignExtImm() int32 {
	return signExtend16(inst.Immediate)
}

// ZeroExtImm returns the immediate with the upper half cleared.
func (inst Instruction) ZeroExtImm() uint32 {
	return uint32(inst.Immediate)
}

func (inst Instruction) String() string {
	return fmt.Sprintf("%s %08x", inst.Format, inst.Word)
}

func signExtend16(v uint16) int32 {
	return int32(int16(v))
}
