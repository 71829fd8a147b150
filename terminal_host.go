// terminal_host.go - Interactive line input for Termlink

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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalHost puts the controlling terminal in raw mode and reads edited
// lines through term.Terminal, which provides history and cursor keys.
// Only instantiated in main.go for interactive use, never in tests.
type TerminalHost struct {
	fd           int
	oldTermState *term.State
	terminal     *term.Terminal
}

// NewTerminalHost switches in to raw mode. Call Stop to restore it.
func NewTerminalHost(in *os.File, out io.Writer, color bool) (*TerminalHost, error) {
	fd := int(in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("terminal_host: failed to set raw mode: %w", err)
	}

	rw := struct {
		io.Reader
		io.Writer
	}{in, out}
	t := term.NewTerminal(rw, "")
	if w, h, err := term.GetSize(fd); err == nil {
		_ = t.SetSize(w, h)
	}

	prompt := ">> "
	if color {
		prompt = string(t.Escape.Green) + ">> " + string(t.Escape.Reset)
	}
	t.SetPrompt(prompt)

	return &TerminalHost{
		fd:           fd,
		oldTermState: oldState,
		terminal:     t,
	}, nil
}

func (h *TerminalHost) ReadLine() (string, error) {
	return h.terminal.ReadLine()
}

// Write sends output through the terminal so newlines are translated while
// the tty is raw.
func (h *TerminalHost) Write(p []byte) (int, error) {
	return h.terminal.Write(p)
}

// Stop restores the terminal state saved by NewTerminalHost.
func (h *TerminalHost) Stop() {
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}

// lineReader reads newline-terminated commands from a plain stream,
// optionally writing a prompt before each one.
type lineReader struct {
	r      *bufio.Reader
	w      io.Writer
	prompt string
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (lr *lineReader) ReadLine() (string, error) {
	if lr.prompt != "" && lr.w != nil {
		fmt.Fprint(lr.w, lr.prompt)
	}
	line, err := lr.r.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}
