// memory.go - Byte-addressable memory for the MIPS core

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
memory.go - Flat Memory

The machine sees a single 1MB block of bytes starting at address 0. Words are
stored big-endian (most significant byte at the lowest address) and may start
at any byte address; no alignment is enforced. Every access is bounds checked
against the block and fails with an AddressError instead of touching memory,
so a word access that straddles the end leaves the block unchanged.

The lowest 64 bytes come preloaded with a small data segment: two literal
words, a padding word, and two zero-terminated strings.
*/

package mips

import "encoding/binary"

// dataSegment is copied to address 0 of every new Memory.
var dataSegment = []byte{
	0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77,
	0xde, 0xad, 0xbe, 0xef, 0x00, 0x00, 0x00, 0x00,
	'h', 'e', 'l', 'l', 'o', ' ', 'w', 'o',
	'r', 'l', 'd', '!', '!', 0x00, 0x00, 0x00,
	'a', 'w', 'e', 's', 'o', 'm', 'e', ' ',
	'c', 'o', 'm', 'p', 'u', 't', 'e', 'r',
	' ', 'a', 'r', 'c', 'h', 'i', 't', 'e',
	'c', 't', 'u', 'r', 'e', '.', 0x00, 0x00,
}

// Memory is the machine's main store. It is not safe for concurrent use;
// each Machine owns its own.
type Memory struct {
	data []byte
}

// NewMemory allocates MEMORY_SIZE bytes with the data segment preloaded.
func NewMemory() *Memory {
	return NewMemorySize(MEMORY_SIZE)
}

// NewMemorySize allocates a memory of the given capacity. The data segment is
// copied in as far as it fits.
func NewMemorySize(size int) *Memory {
	mem := &Memory{data: make([]byte, size)}
	copy(mem.data, dataSegment)
	return mem
}

// Capacity returns the number of addressable bytes.
func (mem *Memory) Capacity() int {
	return len(mem.data)
}

func (mem *Memory) check(addr uint32, size int) error {
	if uint64(addr)+uint64(size) > uint64(len(mem.data)) {
		return &AddressError{Addr: addr, Size: size}
	}
	return nil
}

func (mem *Memory) Read8(addr uint32) (byte, error) {
	if err := mem.check(addr, 1); err != nil {
		return 0, err
	}
	return mem.data[addr], nil
}

func (mem *Memory) Write8(addr uint32, value byte) error {
	if err := mem.check(addr, 1); err != nil {
		return err
	}
	mem.data[addr] = value
	return nil
}

// Read32 assembles the big-endian word stored at addr..addr+3.
func (mem *Memory) Read32(addr uint32) (uint32, error) {
	if err := mem.check(addr, WORD_SIZE); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(mem.data[addr : addr+WORD_SIZE]), nil
}

// Write32 stores value big-endian at addr..addr+3.
func (mem *Memory) Write32(addr uint32, value uint32) error {
	if err := mem.check(addr, WORD_SIZE); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(mem.data[addr:addr+WORD_SIZE], value)
	return nil
}

// Range returns a copy of length bytes starting at addr.
func (mem *Memory) Range(addr uint32, length int) ([]byte, error) {
	if length < 0 {
		return nil, &AddressError{Addr: addr, Size: length}
	}
	if err := mem.check(addr, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, mem.data[addr:])
	return out, nil
}

// WriteRange copies data into memory starting at addr. Nothing is written
// unless the whole range fits.
func (mem *Memory) WriteRange(addr uint32, data []byte) error {
	if err := mem.check(addr, len(data)); err != nil {
		return err
	}
	copy(mem.data[addr:], data)
	return nil
}
