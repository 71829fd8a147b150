// loader.go - Text program loader for the MIPS core

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
loader.go - Program Loader

A program file is plain text with one instruction word per line:

	0x8c090008
	0xac090020	// sw t1, zero + 32
	0x8c080000

Only the leading integer literal of each line is read; whatever follows it is
ignored, so trailing comments need no special syntax. Literals use the usual
C prefixes (0x for hex, a leading 0 for octal, otherwise decimal). A line that
does not start with a number loads as the word 0 rather than being rejected.

Words are stored big-endian from the machine's current pc, advancing pc by 4
per line. A halt word is written after the last line without moving pc past
it, so loading a second file continues the first one in place of its halt.
*/

package mips

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
)

// Load reads a program from r into memory at the current pc and appends the
// halt word.
func (m *Machine) Load(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if werr := m.Memory.Write32(m.PC, ParseWord(line)); werr != nil {
				return werr
			}
			m.PC += WORD_SIZE
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return &LoadError{Kind: ErrIO, Err: err}
		}
	}
	return m.Memory.Write32(m.PC, HALT_WORD)
}

// LoadFile opens path and loads it with Load.
func (m *Machine) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &LoadError{Path: path, Kind: ErrFileNotFound, Err: err}
		}
		return &LoadError{Path: path, Kind: ErrIO, Err: err}
	}
	defer f.Close()

	if err := m.Load(f); err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return err
	}
	return nil
}

// ParseWord reads the integer literal at the start of s the way C's
// strtoimax(s, NULL, 0) does and truncates it to 32 bits. Leading
// whitespace and a sign are accepted, parsing stops at the first character
// that is not a digit of the detected base, and text with no digits yields
// 0. Values beyond the 64-bit signed range saturate before truncation.
func ParseWord(s string) uint32 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	base := uint64(10)
	switch {
	case i+1 < len(s) && s[i] == '0' && (s[i+1] == 'x' || s[i+1] == 'X') &&
		i+2 < len(s) && digitValue(s[i+2]) < 16:
		base = 16
		i += 2
	case i < len(s) && s[i] == '0':
		base = 8
	}

	var acc uint64
	overflow := false
	limit := uint64(math.MaxInt64)
	if neg {
		limit = uint64(math.MaxInt64) + 1
	}
	for ; i < len(s); i++ {
		d := digitValue(s[i])
		if d >= base {
			break
		}
		if overflow || acc > (limit-d)/base {
			overflow = true
			continue
		}
		acc = acc*base + d
	}

	if overflow {
		acc = limit
	}
	if neg {
		return uint32(-int64(acc - 1) - 1)
	}
	return uint32(acc)
}

func digitValue(c byte) uint64 {
	switch {
	case c >= '0' && c <= '9':
		return uint64(c - '0')
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return uint64(c-'A') + 10
	}
	return 36
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
