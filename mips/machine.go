// machine.go - Fetch-execute loop for the MIPS core

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

import (
	"fmt"
	"strings"
)

// Machine bundles one memory, one register file and a program counter.
// Machines share nothing; run as many side by side as needed, but drive
// each from a single goroutine.
type Machine struct {
	Memory    *Memory
	Registers *RegisterFile
	PC        uint32

	// Trace, when set, is called before each fetched instruction executes
	// with the address it was fetched from.
	Trace func(addr uint32, inst Instruction)
}

// NewMachine returns a machine with preloaded memory, the startup register
// pattern and pc at INITIAL_PC.
func NewMachine() *Machine {
	return &Machine{
		Memory:    NewMemory(),
		Registers: NewRegisterFile(),
		PC:        INITIAL_PC,
	}
}

// Step runs one fetch-decode-execute cycle from the current pc and reports
// whether the machine should keep going.
func (m *Machine) Step() (bool, error) {
	addr := m.PC
	word, err := m.Memory.Read32(addr)
	if err != nil {
		return false, fmt.Errorf("fetch at 0x%08x: %w", addr, err)
	}
	m.PC += WORD_SIZE
	inst := Decode(word)
	if m.Trace != nil {
		m.Trace(addr, inst)
	}
	next, cont, err := Execute(inst, m.Registers, m.Memory, m.PC)
	if err != nil {
		return false, fmt.Errorf("%s at 0x%08x: %w", Disassemble(word), addr, err)
	}
	m.PC = next
	return cont, nil
}

// Run resets pc to INITIAL_PC and steps until the halt word. A program that
// never reaches a halt word keeps running.
func (m *Machine) Run() error {
	_, err := m.RunFor(0)
	return err
}

// RunFor is Run with a step budget. It returns the number of instructions
// executed, not counting the halt word. When budget is non-zero and runs out
// first it stops with ErrStepBudget, leaving pc at the next fetch. A halt word
// fetched right at the budget still halts cleanly.
func (m *Machine) RunFor(budget uint64) (uint64, error) {
	m.PC = INITIAL_PC
	return m.Continue(budget)
}

// Continue steps from the current pc, with the same budget rules as RunFor.
func (m *Machine) Continue(budget uint64) (uint64, error) {
	var steps uint64
	for {
		if budget != 0 && steps >= budget && !m.AtHalt() {
			return steps, fmt.Errorf("%w after %d instructions (pc=0x%08x)", ErrStepBudget, steps, m.PC)
		}
		cont, err := m.Step()
		if err != nil {
			return steps, err
		}
		if !cont {
			return steps, nil
		}
		steps++
	}
}

// AtHalt reports whether the next fetch is the halt word.
func (m *Machine) AtHalt() bool {
	word, err := m.Memory.Read32(m.PC)
	return err == nil && word == HALT_WORD
}

// ExecuteWord executes a single word against the current pc without fetching
// it from memory and without advancing pc first.
func (m *Machine) ExecuteWord(word uint32) (bool, error) {
	next, cont, err := Execute(Decode(word), m.Registers, m.Memory, m.PC)
	if err != nil {
		return false, err
	}
	m.PC = next
	return cont, nil
}

// RegisterValue looks up "pc", a register name, or a decimal index.
func (m *Machine) RegisterValue(nameOrIndex string) (uint32, error) {
	if strings.EqualFold(strings.TrimSpace(nameOrIndex), "pc") {
		return m.PC, nil
	}
	idx, err := ResolveRegister(nameOrIndex)
	if err != nil {
		return 0, err
	}
	return m.Registers.Get(idx)
}

// SetRegisterValue is the write side of RegisterValue.
func (m *Machine) SetRegisterValue(nameOrIndex string, value uint32) error {
	if strings.EqualFold(strings.TrimSpace(nameOrIndex), "pc") {
		m.PC = value
		return nil
	}
	idx, err := ResolveRegister(nameOrIndex)
	if err != nil {
		return err
	}
	return m.Registers.Set(idx, value)
}

func (m *Machine) MemoryRange(addr uint32, length int) ([]byte, error) {
	return m.Memory.Range(addr, length)
}
