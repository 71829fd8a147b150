// batch.go - Concurrent program runner for termbatch

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
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/intuitionamiga/termlink/mips"
)

// Steps executed between context checks.
const checkInterval = 4096

type Options struct {
	MaxSteps uint64 // 0 = unlimited
	Jobs     int    // concurrent machines; 0 = no limit
}

// Result is the final state of one program run.
type Result struct {
	File        string
	Steps       uint64
	PC          uint32
	V0          uint32
	Fingerprint uint64
	Err         error
}

func (r Result) Status() string {
	if r.Err == nil {
		return "halted"
	}
	return "failed (" + r.Err.Error() + ")"
}

func (r Result) String() string {
	return fmt.Sprintf("%s: %s steps=%d pc=0x%08x v0=0x%08x fp=%016x",
		r.File, r.Status(), r.Steps, r.PC, r.V0, r.Fingerprint)
}

// RunBatch runs every file on its own machine. Results are in input order
// and carry per-program failures; the returned error is only set when ctx
// ends before the batch does.
func RunBatch(ctx context.Context, files []string, opts Options) ([]Result, error) {
	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, file := range files {
		g.Go(func() error {
			results[i] = runProgram(gctx, file, opts.MaxSteps)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}

func runProgram(ctx context.Context, file string, maxSteps uint64) Result {
	m := mips.NewMachine()
	res := Result{File: file}

	if err := m.LoadFile(file); err != nil {
		res.Err = err
		return finish(m, res)
	}
	m.PC = mips.INITIAL_PC

	for {
		if err := ctx.Err(); err != nil {
			res.Err = err
			break
		}
		chunk := uint64(checkInterval)
		if maxSteps != 0 {
			remaining := maxSteps - res.Steps
			if remaining == 0 {
				if m.AtHalt() {
					break
				}
				res.Err = fmt.Errorf("%w after %d instructions (pc=0x%08x)", mips.ErrStepBudget, res.Steps, m.PC)
				break
			}
			chunk = min(chunk, remaining)
		}

		n, err := m.Continue(chunk)
		res.Steps += n
		if err == nil {
			break
		}
		if !errors.Is(err, mips.ErrStepBudget) {
			res.Err = err
			break
		}
	}
	return finish(m, res)
}

// finish records the machine's final state in res.
func finish(m *mips.Machine, res Result) Result {
	res.PC = m.PC
	res.V0, _ = m.RegisterValue("v0")
	res.Fingerprint = m.Fingerprint()
	return res
}
