// executor.go - Instruction semantics for the MIPS core

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

// Execute applies inst to the registers and memory. pc must already point
// past the instruction being executed; the returned pc is the address of the
// next fetch. The boolean is false only for the halt word.
//
// Words that decoded to FormatUnknown execute as no-ops and keep the
// machine running. A failed memory or register access stops the
// instruction and returns the error with pc unchanged.
func Execute(inst Instruction, regs *RegisterFile, mem *Memory, pc uint32) (uint32, bool, error) {
	switch inst.Format {
	case FormatHalt:
		return pc, false, nil
	case FormatR:
		next, err := executeR(inst, regs, pc)
		return next, true, err
	case FormatJ:
		next, err := executeJ(inst, regs, pc)
		return next, true, err
	case FormatI:
		next, err := executeI(inst, regs, mem, pc)
		return next, true, err
	}
	return pc, true, nil
}

func executeR(inst Instruction, regs *RegisterFile, pc uint32) (uint32, error) {
	rs, rt, err := regs.pair(inst.Rs, inst.Rt)
	if err != nil {
		return pc, err
	}
	rd := int(inst.Rd)

	switch inst.Funct {
	case FUNCT_ADD:
		return pc, regs.Set(rd, rs+rt)
	case FUNCT_SUB:
		return pc, regs.Set(rd, rs-rt)
	case FUNCT_AND:
		return pc, regs.Set(rd, rs&rt)
	case FUNCT_OR:
		return pc, regs.Set(rd, rs|rt)
	case FUNCT_NOR:
		return pc, regs.Set(rd, ^(rs | rt))
	case FUNCT_SLL:
		return pc, regs.Set(rd, rt<<inst.Shamt)
	case FUNCT_SRL:
		return pc, regs.Set(rd, rt>>inst.Shamt)
	case FUNCT_SRA:
		return pc, regs.Set(rd, shiftRightArith(rt, inst.Shamt))
	case FUNCT_SLT:
		return pc, regs.Set(rd, btou32(int32(rs) < int32(rt)))
	case FUNCT_JR:
		return rs, nil
	}
	return pc, nil
}

func executeJ(inst Instruction, regs *RegisterFile, pc uint32) (uint32, error) {
	target := (pc & JUMP_REGION_MASK) | inst.Address<<2
	if inst.Opcode == OP_JAL {
		if err := regs.Set(REG_RA, pc); err != nil {
			return pc, err
		}
	}
	return target, nil
}

func executeI(inst Instruction, regs *RegisterFile, mem *Memory, pc uint32) (uint32, error) {
	rs, rt, err := regs.pair(inst.Rs, inst.Rt)
	if err != nil {
		return pc, err
	}
	dst := int(inst.Rt)
	simm := uint32(inst.SignExtImm())

	switch inst.Opcode {
	case OP_ADDI:
		return pc, regs.Set(dst, rs+simm)
	case OP_ANDI:
		return pc, regs.Set(dst, rs&inst.ZeroExtImm())
	case OP_ORI:
		return pc, regs.Set(dst, rs|inst.ZeroExtImm())
	case OP_LW:
		value, err := mem.Read32(rs + simm)
		if err != nil {
			return pc, err
		}
		return pc, regs.Set(dst, value)
	case OP_SW:
		return pc, mem.Write32(rs+simm, rt)
	case OP_SLTI:
		return pc, regs.Set(dst, btou32(int32(rs) < inst.SignExtImm()))
	case OP_BEQ:
		if rs == rt {
			return pc + simm*WORD_SIZE, nil
		}
	case OP_BNE:
		if rs != rt {
			return pc + simm*WORD_SIZE, nil
		}
	}
	return pc, nil
}

// shiftRightArith shifts v right by n, filling vacated high bits with the
// sign bit.
func shiftRightArith(v uint32, n uint8) uint32 {
	return uint32(int32(v) >> n)
}

func btou32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
