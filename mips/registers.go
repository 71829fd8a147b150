// registers.go - General purpose register file for the MIPS core

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
	"strconv"
	"strings"
)

// RegisterNames lists the canonical name of each register by index.
// Register 0 is shortened to "zr".
var RegisterNames = [NUM_REGISTERS]string{
	"zr", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// startupRegisters is the seed pattern every new register file starts from.
var startupRegisters = [NUM_REGISTERS]uint32{
	16: 0x10,
	17: INITIAL_PC,
	18: 0x20,
	19: 3,
	20: 0xbadacafe,
	21: 0xcdcdcdcd,
	22: 0xffffffff,
	23: 7,
	29: INITIAL_SP,
}

var registerIndex = func() map[string]int {
	m := make(map[string]int, NUM_REGISTERS)
	for i, name := range RegisterNames {
		m[name] = i
	}
	return m
}()

// RegisterFile holds the 32 general purpose registers. Register 0 is an
// ordinary register here: writes to it stick.
type RegisterFile struct {
	values [NUM_REGISTERS]uint32
}

// NewRegisterFile returns a register file holding the startup pattern.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{values: startupRegisters}
}

func (r *RegisterFile) Get(index int) (uint32, error) {
	if index < 0 || index >= NUM_REGISTERS {
		return 0, &RegisterError{Index: index}
	}
	return r.values[index], nil
}

func (r *RegisterFile) Set(index int, value uint32) error {
	if index < 0 || index >= NUM_REGISTERS {
		return &RegisterError{Index: index}
	}
	r.values[index] = value
	return nil
}

// Values returns a copy of all registers in index order.
func (r *RegisterFile) Values() [NUM_REGISTERS]uint32 {
	return r.values
}

// pair reads two operand registers at once.
func (r *RegisterFile) pair(a, b uint8) (uint32, uint32, error) {
	va, err := r.Get(int(a))
	if err != nil {
		return 0, 0, err
	}
	vb, err := r.Get(int(b))
	if err != nil {
		return 0, 0, err
	}
	return va, vb, nil
}

// NameToIndex resolves a register name such as "t0" or "$t0". Names are
// matched case-insensitively.
func NameToIndex(name string) (int, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "$"))
	if idx, ok := registerIndex[key]; ok {
		return idx, nil
	}
	return 0, &registerNameError{name: name}
}

func IndexToName(index int) (string, error) {
	if index < 0 || index >= NUM_REGISTERS {
		return "", &RegisterError{Index: index}
	}
	return RegisterNames[index], nil
}

// ResolveRegister accepts either a register name or a decimal index.
func ResolveRegister(nameOrIndex string) (int, error) {
	if idx, err := NameToIndex(nameOrIndex); err == nil {
		return idx, nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(nameOrIndex), "$"))
	if err != nil {
		return 0, &registerNameError{name: nameOrIndex}
	}
	if n < 0 || n >= NUM_REGISTERS {
		return 0, &RegisterError{Index: n}
	}
	return n, nil
}

type registerNameError struct {
	name string
}

func (e *registerNameError) Error() string {
	return ErrRegisterNotFound.Error() + ": " + strconv.Quote(e.name)
}

func (e *registerNameError) Unwrap() error { return ErrRegisterNotFound }
