// main.go - Termlink entry point

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
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/intuitionamiga/termlink/mips"
)

// Config holds the command line settings.
type Config struct {
	Trace       bool
	MaxSteps    uint64
	Script      string
	NoColor     bool
	CommandFile string
}

func boilerPlate(w io.Writer, color bool) {
	if color {
		fmt.Fprint(w, colorStart)
	}
	fmt.Fprintln(w, "*****************************************************")
	fmt.Fprintln(w, " Welcome to SCE212 MIPS Termlink v0.3")
	fmt.Fprintln(w)
	fmt.Fprintln(w, " SCE212 Model 2023-F is the most reliable client")
	fmt.Fprintln(w, " terminal ever developed to run MIPS programs in")
	fmt.Fprintln(w, " Vault 212.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "- HELP  :   type 'help' for the command list")
	fmt.Fprintln(w)
	fmt.Fprintln(w)
	if color {
		fmt.Fprint(w, colorEnd)
	}
}

func parseConfig(args []string) (Config, error) {
	var cfg Config

	flagSet := flag.NewFlagSet("termlink", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.BoolVar(&cfg.Trace, "trace", false, "Print every executed instruction")
	flagSet.Uint64Var(&cfg.MaxSteps, "max-steps", 0, "Stop a run after this many instructions (0 = unlimited)")
	flagSet.StringVar(&cfg.Script, "script", "", "Lua script to run after startup")
	flagSet.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored banner and prompt")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./termlink [-trace] [-max-steps N] [-script file.lua] [-no-color] [command file]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			flagSet.Usage()
		}
		return cfg, err
	}
	if flagSet.NArg() > 1 {
		return cfg, fmt.Errorf("expected at most one command file, got %d", flagSet.NArg())
	}
	cfg.CommandFile = flagSet.Arg(0)
	return cfg, nil
}

// colorEnabled reports whether escape codes should be written. Piped or
// file-driven sessions stay plain.
func colorEnabled(cfg Config, interactive bool) bool {
	return interactive && !cfg.NoColor
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	input := os.Stdin
	if cfg.CommandFile != "" {
		f, err := os.Open(cfg.CommandFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "No input file %s\n", cfg.CommandFile)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}

	shell := NewShell(mips.NewMachine(), os.Stdout, os.Stderr)
	shell.maxSteps = cfg.MaxSteps
	interactive := cfg.CommandFile == "" && term.IsTerminal(int(os.Stdin.Fd()))
	shell.color = colorEnabled(cfg, interactive)
	shell.SetTrace(cfg.Trace)

	if cfg.Script != "" {
		if err := shell.RunLuaFile(cfg.Script); err != nil {
			fmt.Fprintf(os.Stderr, "Error running %s: %v\n", cfg.Script, err)
			os.Exit(1)
		}
	}

	var src LineSource = newLineReader(input)
	if interactive {
		boilerPlate(os.Stdout, shell.color)
		host, err := NewTerminalHost(os.Stdin, os.Stdout, shell.color)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			lr := newLineReader(os.Stdin)
			lr.w = os.Stdout
			lr.prompt = ">> "
			if shell.color {
				lr.prompt = colorStart + ">> " + colorEnd
			}
			src = lr
		} else {
			defer host.Stop()
			shell.out = host
			shell.errOut = host
			src = host
		}
	}

	if err := shell.Serve(src); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
