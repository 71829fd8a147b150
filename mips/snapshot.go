// snapshot.go - Machine state capture, restore and fingerprinting

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
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/spaolacci/murmur3"
)

const (
	snapshotMagic   = "MTLS"
	snapshotVersion = 1
)

// Snapshot is a full copy of a machine's architectural state.
type Snapshot struct {
	PC        uint32
	Registers [NUM_REGISTERS]uint32
	Memory    []byte
}

// TakeSnapshot copies pc, registers and memory out of m.
func (m *Machine) TakeSnapshot() *Snapshot {
	mem := make([]byte, m.Memory.Capacity())
	copy(mem, m.Memory.data)
	return &Snapshot{
		PC:        m.PC,
		Registers: m.Registers.Values(),
		Memory:    mem,
	}
}

// Restore overwrites m with the snapshot. The snapshot's memory must match
// the machine's capacity.
func (m *Machine) Restore(snap *Snapshot) error {
	if len(snap.Memory) != m.Memory.Capacity() {
		return fmt.Errorf("%w: memory is %d bytes, machine has %d", ErrBadSnapshot, len(snap.Memory), m.Memory.Capacity())
	}
	copy(m.Memory.data, snap.Memory)
	m.Registers.values = snap.Registers
	m.PC = snap.PC
	return nil
}

// Fingerprint hashes pc, registers and memory into a 64-bit value. Two
// machines in the same state have the same fingerprint.
func (m *Machine) Fingerprint() uint64 {
	h := murmur3.New64()
	var buf [WORD_SIZE]byte
	binary.BigEndian.PutUint32(buf[:], m.PC)
	h.Write(buf[:])
	for _, v := range m.Registers.values {
		binary.BigEndian.PutUint32(buf[:], v)
		h.Write(buf[:])
	}
	h.Write(m.Memory.data)
	return h.Sum64()
}

// WriteSnapshot encodes snap: magic, version, pc, registers, memory length,
// then the gzip-compressed memory.
func WriteSnapshot(w io.Writer, snap *Snapshot) error {
	var buf bytes.Buffer
	buf.WriteString(snapshotMagic)
	binary.Write(&buf, binary.BigEndian, uint32(snapshotVersion))
	binary.Write(&buf, binary.BigEndian, snap.PC)
	binary.Write(&buf, binary.BigEndian, snap.Registers)
	binary.Write(&buf, binary.BigEndian, uint32(len(snap.Memory)))

	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(snap.Memory); err != nil {
		return fmt.Errorf("compressing memory: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("closing gzip: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ReadSnapshot decodes a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	magic := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("%w: reading magic: %v", ErrBadSnapshot, err)
	}
	if string(magic) != snapshotMagic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadSnapshot, string(magic))
	}

	var version uint32
	if err := binary.Read(r, binary.BigEndian, &version); err != nil {
		return nil, fmt.Errorf("%w: reading version: %v", ErrBadSnapshot, err)
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrBadSnapshot, version)
	}

	snap := &Snapshot{}
	if err := binary.Read(r, binary.BigEndian, &snap.PC); err != nil {
		return nil, fmt.Errorf("%w: reading pc: %v", ErrBadSnapshot, err)
	}
	if err := binary.Read(r, binary.BigEndian, &snap.Registers); err != nil {
		return nil, fmt.Errorf("%w: reading registers: %v", ErrBadSnapshot, err)
	}
	var memLen uint32
	if err := binary.Read(r, binary.BigEndian, &memLen); err != nil {
		return nil, fmt.Errorf("%w: reading memory length: %v", ErrBadSnapshot, err)
	}

	if memLen != MEMORY_SIZE {
		return nil, fmt.Errorf("%w: memory length %d, expected %d", ErrBadSnapshot, memLen, MEMORY_SIZE)
	}

	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: opening gzip: %v", ErrBadSnapshot, err)
	}
	defer gz.Close()
	snap.Memory = make([]byte, memLen)
	if _, err := io.ReadFull(gz, snap.Memory); err != nil {
		return nil, fmt.Errorf("%w: decompressing memory: %v", ErrBadSnapshot, err)
	}
	return snap, nil
}

func SaveSnapshot(path string, snap *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSnapshot(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func LoadSnapshot(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSnapshot(f)
}
