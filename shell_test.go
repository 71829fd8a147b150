package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/intuitionamiga/termlink/mips"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestShell() (*Shell, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewShell(mips.NewMachine(), &out, &errOut), &out, &errOut
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func regValue(t *testing.T, s *Shell, name string) uint32 {
	t.Helper()
	v, err := s.Machine().RegisterValue(name)
	if err != nil {
		t.Fatalf("RegisterValue(%q): %v", name, err)
	}
	return v
}

// addi t0, zr, 5 / addi t1, zr, 7 / add t2, t0, t1
const sumProgram = "0x20080005 // addi t0, zr, 5\n0x20090007\n0x01095020\n"

// ---------------------------------------------------------------------------
// ParseCommand
// ---------------------------------------------------------------------------

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		name  string
		args  []string
	}{
		{"", "", nil},
		{"   ", "", nil},
		{"SHOW T0", "show", []string{"T0"}},
		{"load Prog.TXT", "load", []string{"Prog.TXT"}},
		{"dump 0x1000 16 // first row", "dump", []string{"0x1000", "16"}},
		{"run # go", "run", []string{}},
		{"// whole line comment", "", nil},
		{"0x20080005\t#addi", "0x20080005", []string{"#addi"}},
	}
	for _, tt := range tests {
		cmd := ParseCommand(tt.input)
		if cmd.Name != tt.name {
			t.Fatalf("ParseCommand(%q).Name = %q, expected %q", tt.input, cmd.Name, tt.name)
		}
		if len(cmd.Args) != len(tt.args) {
			t.Fatalf("ParseCommand(%q).Args = %v, expected %v", tt.input, cmd.Args, tt.args)
		}
		for i := range tt.args {
			if cmd.Args[i] != tt.args[i] {
				t.Fatalf("ParseCommand(%q).Args[%d] = %q, expected %q", tt.input, i, cmd.Args[i], tt.args[i])
			}
		}
	}
}

// ---------------------------------------------------------------------------
// load / run / show / dump
// ---------------------------------------------------------------------------

func TestShell_LoadRunShow(t *testing.T) {
	s, out, errOut := newTestShell()
	path := writeTestFile(t, "sum.txt", sumProgram)

	s.ExecuteCommand("load " + path)
	s.ExecuteCommand("run")
	if out.Len() != 0 {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if got := regValue(t, s, "t2"); got != 12 {
		t.Fatalf("t2 = 0x%08X, expected 0x%08X", got, 12)
	}

	s.ExecuteCommand("show t2")
	if got, want := errOut.String(), "[10:t2] 0x0000000c    12\n"; got != want {
		t.Fatalf("show t2 = %q, expected %q", got, want)
	}

	errOut.Reset()
	s.ExecuteCommand("SHOW PC")
	if got, want := errOut.String(), "[  pc ] 0x00001010\n"; got != want {
		t.Fatalf("show pc = %q, expected %q", got, want)
	}
}

func TestShell_ShowAll(t *testing.T) {
	s, _, errOut := newTestShell()
	s.ExecuteCommand("show")

	lines := strings.Split(strings.TrimSuffix(errOut.String(), "\n"), "\n")
	if len(lines) != mips.NUM_REGISTERS+1 {
		t.Fatalf("show printed %d lines, expected %d", len(lines), mips.NUM_REGISTERS+1)
	}
	if lines[0] != "[00:zr] 0x00000000    0" {
		t.Fatalf("first line = %q", lines[0])
	}
	if lines[20] != "[20:s4] 0xbadacafe    3134900990" {
		t.Fatalf("s4 line = %q", lines[20])
	}
	if lines[29] != "[29:sp] 0x00008000    32768" {
		t.Fatalf("sp line = %q", lines[29])
	}
	if lines[32] != "[  pc ] 0x00001000" {
		t.Fatalf("pc line = %q", lines[32])
	}

	errOut.Reset()
	s.ExecuteCommand("show all")
	if n := strings.Count(errOut.String(), "\n"); n != mips.NUM_REGISTERS+1 {
		t.Fatalf("show all printed %d lines", n)
	}
}

func TestShell_ShowUnknownRegisterPrintsNothing(t *testing.T) {
	s, out, errOut := newTestShell()
	s.ExecuteCommand("show bogus")
	if out.Len() != 0 || errOut.Len() != 0 {
		t.Fatalf("expected no output, got %q / %q", out.String(), errOut.String())
	}
}

func TestShell_Dump(t *testing.T) {
	s, _, errOut := newTestShell()
	s.ExecuteCommand("dump 0 8")
	want := "0x00000000:  00 11 22 33    . . \" 3\n" +
		"0x00000004:  44 55 66 77    D U f w\n"
	if errOut.String() != want {
		t.Fatalf("dump = %q, expected %q", errOut.String(), want)
	}

	errOut.Reset()
	s.ExecuteCommand("dump 0x10 5")
	want = "0x00000010:  68 65 6c 6c    h e l l\n" +
		"0x00000014:  6f 20 77 6f    o   w o\n"
	if errOut.String() != want {
		t.Fatalf("dump = %q, expected %q", errOut.String(), want)
	}
}

func TestShell_DumpPastEnd(t *testing.T) {
	s, out, errOut := newTestShell()
	s.ExecuteCommand("dump 0xffffc 8")
	if strings.Count(errOut.String(), "\n") != 1 {
		t.Fatalf("expected one row before the error, got %q", errOut.String())
	}
	if !strings.Contains(out.String(), "address out of bounds") {
		t.Fatalf("expected bounds error, got %q", out.String())
	}
}

func TestShell_Usage(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"load", "Usage: load [program filename]\n"},
		{"load a b", "Usage: load [program filename]\n"},
		{"run now", "Usage: run\n"},
		{"show a b", "Usage: show { [register name] }\n"},
		{"dump 0", "Usage: dump [start address] [length]\n"},
		{"trace", "Usage: trace on|off\n"},
		{"inspect", "Usage: inspect <word>\n"},
		{"script", "Usage: script <filename>\n"},
		{"lua", "Usage: lua <filename>\n"},
	}
	for _, tt := range tests {
		s, out, _ := newTestShell()
		s.ExecuteCommand(tt.input)
		if out.String() != tt.want {
			t.Fatalf("%q printed %q, expected %q", tt.input, out.String(), tt.want)
		}
	}
}

func TestShell_LoadMissingFile(t *testing.T) {
	s, out, _ := newTestShell()
	if s.ExecuteCommand("load " + filepath.Join(t.TempDir(), "nope.txt")) {
		t.Fatalf("load should not exit the shell")
	}
	if !strings.Contains(out.String(), "program file not found") {
		t.Fatalf("expected not-found error, got %q", out.String())
	}
}

func TestShell_LoadKeepsFilenameCase(t *testing.T) {
	s, out, _ := newTestShell()
	path := writeTestFile(t, "Sum.TXT", sumProgram)
	s.ExecuteCommand("LOAD " + path)
	if out.Len() != 0 {
		t.Fatalf("unexpected output: %q", out.String())
	}
	w, _ := s.Machine().Memory.Read32(mips.INITIAL_PC)
	if w != 0x20080005 {
		t.Fatalf("first word = 0x%08X, expected 0x%08X", w, 0x20080005)
	}
}

// ---------------------------------------------------------------------------
// Raw instructions
// ---------------------------------------------------------------------------

func TestShell_RawInstruction(t *testing.T) {
	s, out, _ := newTestShell()
	s.ExecuteCommand("0x20080005")
	if got := regValue(t, s, "t0"); got != 5 {
		t.Fatalf("t0 = 0x%08X, expected 0x%08X", got, 5)
	}
	if s.Machine().PC != mips.INITIAL_PC {
		t.Fatalf("pc = 0x%08X, expected 0x%08X", s.Machine().PC, mips.INITIAL_PC)
	}

	// add t1, t0, t0 with an upper-case hex prefix and a trailing comment
	s.ExecuteCommand("0X01084820 // add t1, t0, t0")
	if got := regValue(t, s, "t1"); got != 10 {
		t.Fatalf("t1 = 0x%08X, expected 0x%08X", got, 10)
	}

	// beq zr, zr, 2 moves pc relative to its current value
	s.ExecuteCommand("0x10000002")
	if s.Machine().PC != mips.INITIAL_PC+8 {
		t.Fatalf("pc = 0x%08X, expected 0x%08X", s.Machine().PC, mips.INITIAL_PC+8)
	}

	// unknown words are no-ops
	s.ExecuteCommand("hello")
	if out.Len() != 0 {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestShell_RawInstructionFault(t *testing.T) {
	s, out, _ := newTestShell()
	// lw t0, -4(zr)
	s.ExecuteCommand("0x8c08fffc")
	if !strings.Contains(out.String(), "Error: address out of bounds") {
		t.Fatalf("expected bounds error, got %q", out.String())
	}
}

// ---------------------------------------------------------------------------
// step / disasm / trace / inspect
// ---------------------------------------------------------------------------

func TestShell_Step(t *testing.T) {
	s, out, _ := newTestShell()
	s.Machine().LoadFile(writeTestFile(t, "sum.txt", sumProgram))
	s.Machine().PC = mips.INITIAL_PC

	s.ExecuteCommand("step")
	if got, want := out.String(), "0x00001000:  20080005    addi t0, zr, 5\n"; got != want {
		t.Fatalf("step = %q, expected %q", got, want)
	}

	out.Reset()
	s.ExecuteCommand("step 10")
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	if len(lines) != 4 || lines[3] != "Halted" {
		t.Fatalf("step 10 = %q", out.String())
	}
	if lines[2] != "0x0000100c:  ffffffff    halt" {
		t.Fatalf("halt line = %q", lines[2])
	}
}

func TestShell_StepWithTrace(t *testing.T) {
	s, out, errOut := newTestShell()
	s.Machine().LoadFile(writeTestFile(t, "sum.txt", sumProgram))
	s.Machine().PC = mips.INITIAL_PC
	s.SetTrace(true)

	s.ExecuteCommand("step")
	if got, want := errOut.String(), "0x00001000:  20080005    addi t0, zr, 5\n"; got != want {
		t.Fatalf("trace = %q, expected %q", got, want)
	}
	if out.Len() != 0 {
		t.Fatalf("step printed the instruction twice: %q", out.String())
	}
}

func TestShell_Disasm(t *testing.T) {
	s, out, _ := newTestShell()
	s.Machine().LoadFile(writeTestFile(t, "sum.txt", sumProgram))
	s.Machine().PC = mips.INITIAL_PC + 4

	s.ExecuteCommand("disasm 0x1000 4")
	want := "  0x00001000:  20080005    addi t0, zr, 5\n" +
		"> 0x00001004:  20090007    addi t1, zr, 7\n" +
		"  0x00001008:  01095020    add t2, t0, t1\n" +
		"  0x0000100c:  ffffffff    halt\n"
	if out.String() != want {
		t.Fatalf("disasm = %q, expected %q", out.String(), want)
	}

	out.Reset()
	s.ExecuteCommand("disasm 0x200000")
	if !strings.HasPrefix(out.String(), "Error:") {
		t.Fatalf("expected error, got %q", out.String())
	}
}

func TestShell_Trace(t *testing.T) {
	s, out, errOut := newTestShell()
	s.Machine().LoadFile(writeTestFile(t, "sum.txt", sumProgram))

	s.ExecuteCommand("trace on")
	s.ExecuteCommand("run")
	if out.String() != "Trace on\n" {
		t.Fatalf("trace on printed %q", out.String())
	}
	lines := strings.Split(strings.TrimSuffix(errOut.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("trace printed %d lines: %q", len(lines), errOut.String())
	}
	if lines[2] != "0x00001008:  01095020    add t2, t0, t1" {
		t.Fatalf("trace line = %q", lines[2])
	}

	errOut.Reset()
	s.ExecuteCommand("trace off")
	s.ExecuteCommand("run")
	if errOut.Len() != 0 {
		t.Fatalf("trace off still traced: %q", errOut.String())
	}
}

func TestShell_Inspect(t *testing.T) {
	s, out, _ := newTestShell()
	s.ExecuteCommand("inspect 0x20080005")
	got := out.String()
	for _, want := range []string{"Instruction", "Opcode", "Immediate", "addi t0, zr, 5"} {
		if !strings.Contains(got, want) {
			t.Fatalf("inspect output missing %q:\n%s", want, got)
		}
	}
}

// ---------------------------------------------------------------------------
// hash / ss / sl
// ---------------------------------------------------------------------------

func TestShell_Hash(t *testing.T) {
	s, out, _ := newTestShell()
	s.ExecuteCommand("hash")
	first := strings.TrimSpace(out.String())
	if len(first) != 16 {
		t.Fatalf("hash = %q, expected 16 hex digits", first)
	}

	out.Reset()
	s.ExecuteCommand("0x20080005")
	s.ExecuteCommand("hash")
	if strings.TrimSpace(out.String()) == first {
		t.Fatalf("hash did not change after a register write")
	}
}

func TestShell_SaveLoadState(t *testing.T) {
	s, out, _ := newTestShell()
	path := filepath.Join(t.TempDir(), "state.snap")

	s.ExecuteCommand("0x20080005")
	s.ExecuteCommand("ss " + path)
	if !strings.Contains(out.String(), "State saved to "+path) {
		t.Fatalf("ss printed %q", out.String())
	}

	s.ExecuteCommand("0x20080009")
	s.ExecuteCommand("sl " + path)
	if got := regValue(t, s, "t0"); got != 5 {
		t.Fatalf("t0 = 0x%08X after restore, expected 0x%08X", got, 5)
	}

	out.Reset()
	s.ExecuteCommand("sl " + writeTestFile(t, "junk.snap", "not a snapshot"))
	if !strings.Contains(out.String(), "invalid snapshot") {
		t.Fatalf("expected snapshot error, got %q", out.String())
	}
}

// ---------------------------------------------------------------------------
// Budget, script, quit, Serve
// ---------------------------------------------------------------------------

func TestShell_RunStepBudget(t *testing.T) {
	s, out, _ := newTestShell()
	s.maxSteps = 100
	// beq zr, zr, -1
	s.Machine().LoadFile(writeTestFile(t, "loop.txt", "0x1000ffff\n"))

	s.ExecuteCommand("run")
	if !strings.Contains(out.String(), "step budget exhausted after 100 instructions") {
		t.Fatalf("expected budget error, got %q", out.String())
	}
}

func TestShell_Script(t *testing.T) {
	s, _, errOut := newTestShell()
	prog := writeTestFile(t, "sum.txt", sumProgram)
	script := writeTestFile(t, "cmds.txt", "# setup\nload "+prog+"\nrun\n\nshow t2 // result\n")

	s.ExecuteCommand("script " + script)
	if got, want := errOut.String(), "[10:t2] 0x0000000c    12\n"; got != want {
		t.Fatalf("script output = %q, expected %q", got, want)
	}
}

func TestShell_ScriptRecursionLimit(t *testing.T) {
	s, out, _ := newTestShell()
	dir := t.TempDir()
	path := filepath.Join(dir, "self.txt")
	if err := os.WriteFile(path, []byte("0x21080001\nscript "+path+"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s.ExecuteCommand("script " + path)
	if !strings.Contains(out.String(), "Script recursion limit reached") {
		t.Fatalf("expected recursion limit, got %q", out.String())
	}
	// addi t0, t0, 1 ran once per accepted level
	if got := regValue(t, s, "t0"); got != maxScriptDepth {
		t.Fatalf("t0 = %d, expected %d", got, maxScriptDepth)
	}
	if s.scriptDepth != 0 {
		t.Fatalf("scriptDepth = %d after script, expected 0", s.scriptDepth)
	}
}

func TestShell_LuaRecursionLimit(t *testing.T) {
	s, out, _ := newTestShell()
	path := filepath.Join(t.TempDir(), "self.lua")
	src := `machine.setreg("t0", machine.reg("t0") + 1) machine.shell("lua ` + path + `")`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s.ExecuteCommand("lua " + path)
	if !strings.Contains(out.String(), "Script recursion limit reached") {
		t.Fatalf("expected recursion limit, got %q", out.String())
	}
	if got := regValue(t, s, "t0"); got != maxScriptDepth {
		t.Fatalf("t0 = %d, expected %d", got, maxScriptDepth)
	}
	if s.scriptDepth != 0 {
		t.Fatalf("scriptDepth = %d after lua, expected 0", s.scriptDepth)
	}
}

func TestShell_LuaScriptCycleLimit(t *testing.T) {
	s, out, _ := newTestShell()
	dir := t.TempDir()
	luaPath := filepath.Join(dir, "a.lua")
	scriptPath := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(luaPath, []byte(`machine.shell("script `+scriptPath+`")`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(scriptPath, []byte("lua "+luaPath+"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s.ExecuteCommand("lua " + luaPath)
	if !strings.Contains(out.String(), "Script recursion limit reached") {
		t.Fatalf("expected recursion limit, got %q", out.String())
	}
	if s.scriptDepth != 0 {
		t.Fatalf("scriptDepth = %d after cycle, expected 0", s.scriptDepth)
	}
}

func TestShell_ScriptQuitStops(t *testing.T) {
	s, _, _ := newTestShell()
	script := writeTestFile(t, "quit.txt", "0x20080001\nquit\n0x20080002\n")
	if !s.ExecuteCommand("script " + script) {
		t.Fatalf("quit inside a script should exit")
	}
	if got := regValue(t, s, "t0"); got != 1 {
		t.Fatalf("t0 = %d, expected 1", got)
	}
}

func TestShell_Quit(t *testing.T) {
	for _, input := range []string{"quit", "EXIT", "exit // bye"} {
		s, _, _ := newTestShell()
		if !s.ExecuteCommand(input) {
			t.Fatalf("%q should exit", input)
		}
	}
	s, _, _ := newTestShell()
	if s.ExecuteCommand("") {
		t.Fatalf("empty line should not exit")
	}
}

func TestShell_Serve(t *testing.T) {
	s, _, errOut := newTestShell()
	prog := writeTestFile(t, "sum.txt", sumProgram)
	input := "load " + prog + "\r\nrun\nshow t2\nquit\nshow t0\n"

	if err := s.Serve(newLineReader(strings.NewReader(input))); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if got, want := errOut.String(), "[10:t2] 0x0000000c    12\n"; got != want {
		t.Fatalf("serve output = %q, expected %q", got, want)
	}
}

func TestShell_ServeLastLineWithoutNewline(t *testing.T) {
	s, _, _ := newTestShell()
	if err := s.Serve(newLineReader(strings.NewReader("0x20080005\n0x20090007"))); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if got := regValue(t, s, "t1"); got != 7 {
		t.Fatalf("t1 = 0x%08X, expected 0x%08X", got, 7)
	}
}

func TestShell_Help(t *testing.T) {
	s, out, _ := newTestShell()
	s.ExecuteCommand("?")
	if !strings.HasPrefix(out.String(), "Termlink Commands:") {
		t.Fatalf("help printed %q", out.String())
	}
}
