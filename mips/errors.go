// errors.go - Error values returned by the MIPS core

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
	"errors"
	"fmt"
)

var (
	ErrAddressOutOfBounds  = errors.New("address out of bounds")
	ErrRegisterOutOfBounds = errors.New("register out of bounds")
	ErrRegisterNotFound    = errors.New("register not found")
	ErrFileNotFound        = errors.New("program file not found")
	ErrIO                  = errors.New("program read failed")
	ErrStepBudget          = errors.New("step budget exhausted")
	ErrBadSnapshot         = errors.New("invalid snapshot")
)

// AddressError reports a memory access of Size bytes at Addr that does not
// fit inside the memory.
type AddressError struct {
	Addr uint32
	Size int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%v: 0x%08x (%d bytes)", ErrAddressOutOfBounds, e.Addr, e.Size)
}

func (e *AddressError) Unwrap() error { return ErrAddressOutOfBounds }

// RegisterError reports an index outside the register file.
type RegisterError struct {
	Index int
}

func (e *RegisterError) Error() string {
	return fmt.Sprintf("%v: %d", ErrRegisterOutOfBounds, e.Index)
}

func (e *RegisterError) Unwrap() error { return ErrRegisterOutOfBounds }

// LoadError wraps a failure to open or read a program file. Kind is
// ErrFileNotFound or ErrIO; Err is the underlying cause.
type LoadError struct {
	Path string
	Kind error
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{e.Kind, e.Err} }
