package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/intuitionamiga/termlink/mips"
)

func writeProgram(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// addi v0, zr, 42
const answerProgram = "0x2002002a\n"

// beq zr, zr, -1
const loopProgram = "0x1000ffff\n"

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	answer := writeProgram(t, dir, "answer.txt", answerProgram)
	loop := writeProgram(t, dir, "loop.txt", loopProgram)
	fault := writeProgram(t, dir, "fault.txt", "0x8c08fffc\n") // lw t0, -4(zr)
	missing := filepath.Join(dir, "missing.txt")

	files := []string{answer, loop, fault, missing, answer}
	results, err := RunBatch(context.Background(), files, Options{MaxSteps: 10000, Jobs: 2})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if len(results) != len(files) {
		t.Fatalf("got %d results, expected %d", len(results), len(files))
	}
	for i, r := range results {
		if r.File != files[i] {
			t.Fatalf("result %d is for %s, expected %s", i, r.File, files[i])
		}
	}

	if r := results[0]; r.Err != nil || r.Steps != 1 || r.V0 != 42 || r.PC != mips.INITIAL_PC+8 {
		t.Fatalf("answer result = %+v", r)
	}
	if r := results[1]; !errors.Is(r.Err, mips.ErrStepBudget) || r.Steps != 10000 {
		t.Fatalf("loop result = %+v", r)
	}
	if r := results[2]; !errors.Is(r.Err, mips.ErrAddressOutOfBounds) || r.Steps != 0 {
		t.Fatalf("fault result = %+v", r)
	}
	if r := results[3]; !errors.Is(r.Err, mips.ErrFileNotFound) {
		t.Fatalf("missing result = %+v", r)
	}
	if results[0].Fingerprint != results[4].Fingerprint {
		t.Fatalf("same program gave fingerprints %016x and %016x", results[0].Fingerprint, results[4].Fingerprint)
	}
	if results[0].Fingerprint == results[1].Fingerprint {
		t.Fatalf("different programs share fingerprint %016x", results[0].Fingerprint)
	}
}

func TestRunBatch_BudgetNotMultipleOfInterval(t *testing.T) {
	loop := writeProgram(t, t.TempDir(), "loop.txt", loopProgram)
	results, err := RunBatch(context.Background(), []string{loop}, Options{MaxSteps: checkInterval + 7})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if results[0].Steps != checkInterval+7 {
		t.Fatalf("steps = %d, expected %d", results[0].Steps, checkInterval+7)
	}
}

func TestRunBatch_BudgetEqualsLength(t *testing.T) {
	answer := writeProgram(t, t.TempDir(), "answer.txt", answerProgram)
	results, err := RunBatch(context.Background(), []string{answer}, Options{MaxSteps: 1, Jobs: 1})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if r := results[0]; r.Err != nil || r.Steps != 1 || r.PC != mips.INITIAL_PC+8 {
		t.Fatalf("result = %+v, expected a clean halt after 1 step", r)
	}
}

func TestRunBatch_Cancelled(t *testing.T) {
	loop := writeProgram(t, t.TempDir(), "loop.txt", loopProgram)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := RunBatch(ctx, []string{loop, loop}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Fatalf("result error = %v, expected context.Canceled", r.Err)
		}
	}
}

func TestResultString(t *testing.T) {
	r := Result{File: "a.txt", Steps: 3, PC: 0x1010, V0: 0x2a, Fingerprint: 0xabc}
	want := "a.txt: halted steps=3 pc=0x00001010 v0=0x0000002a fp=0000000000000abc"
	if r.String() != want {
		t.Fatalf("String() = %q, expected %q", r.String(), want)
	}

	r.Err = errors.New("boom")
	if !strings.HasPrefix(r.String(), "a.txt: failed (boom) steps=3") {
		t.Fatalf("String() = %q", r.String())
	}
}
