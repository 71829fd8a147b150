// constants.go - Machine parameters and instruction encodings for the MIPS core

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

const (
	// Machine parameters
	MEMORY_SIZE   = 1 << 20
	NUM_REGISTERS = 32
	WORD_SIZE     = 4

	INITIAL_PC = 0x1000
	INITIAL_SP = 0x8000

	// Reserved word that stops the fetch-execute loop
	HALT_WORD = 0xFFFFFFFF
)

const (
	// Field layout
	OPCODE_SHIFT = 26
	RS_SHIFT     = 21
	RT_SHIFT     = 16
	RD_SHIFT     = 11
	SHAMT_SHIFT  = 6

	OPCODE_MASK    = 0x3F
	REG_MASK       = 0x1F
	FUNCT_MASK     = 0x3F
	IMMEDIATE_MASK = 0xFFFF
	ADDRESS_MASK   = 0x03FFFFFF

	// Region bit kept from the incremented pc by j/jal
	JUMP_REGION_MASK = 0x10000000
)

const (
	// Primary opcodes
	OP_RTYPE = 0x00
	OP_J     = 0x02
	OP_JAL   = 0x03
	OP_BEQ   = 0x04
	OP_BNE   = 0x05
	OP_ADDI  = 0x08
	OP_SLTI  = 0x0A
	OP_ANDI  = 0x0C
	OP_ORI   = 0x0D
	OP_LW    = 0x23
	OP_SW    = 0x2B
)

const (
	// R-format function codes
	FUNCT_SLL = 0x00
	FUNCT_SRL = 0x02
	FUNCT_SRA = 0x03
	FUNCT_JR  = 0x08
	FUNCT_ADD = 0x20
	FUNCT_SUB = 0x22
	FUNCT_AND = 0x24
	FUNCT_OR  = 0x25
	FUNCT_NOR = 0x27
	FUNCT_SLT = 0x2A
)

const (
	// Register indices used by the executor
	REG_ZR = 0
	REG_SP = 29
	REG_RA = 31
)
