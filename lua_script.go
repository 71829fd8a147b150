// lua_script.go - Lua scripting bindings for Termlink

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
lua_script.go - Lua Machine API

Scripts see the shell's machine through a global table named "machine":

	machine.reg(name)            register value ("pc" allowed)
	machine.setreg(name, value)
	machine.pc() / machine.setpc(addr)
	machine.step([count])        returns false once the halt word executes
	machine.run([max])           run from 0x00001000, returns the step count
	machine.load(path)
	machine.peek(addr) / machine.poke(addr, byte)
	machine.word(addr) / machine.setword(addr, value)
	machine.disasm(word)         assembly text for a word
	machine.exec(word)           execute one word against pc
	machine.shell(line)          run a Termlink command line

print() writes to the shell's output. Machine errors raise Lua errors.
*/

package main

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/intuitionamiga/termlink/mips"
)

// RunLuaFile executes a Lua script against the shell's machine.
func (s *Shell) RunLuaFile(path string) error {
	L := s.newLuaState()
	defer L.Close()
	return L.DoFile(path)
}

// RunLuaString executes Lua source against the shell's machine.
func (s *Shell) RunLuaString(src string) error {
	L := s.newLuaState()
	defer L.Close()
	return L.DoString(src)
}

func (s *Shell) newLuaState() *lua.LState {
	L := lua.NewState()
	tbl := L.NewTable()
	L.SetFuncs(tbl, map[string]lua.LGFunction{
		"reg":     s.luaReg,
		"setreg":  s.luaSetReg,
		"pc":      s.luaPC,
		"setpc":   s.luaSetPC,
		"step":    s.luaStep,
		"run":     s.luaRun,
		"load":    s.luaLoad,
		"peek":    s.luaPeek,
		"poke":    s.luaPoke,
		"word":    s.luaWord,
		"setword": s.luaSetWord,
		"disasm":  s.luaDisasm,
		"exec":    s.luaExec,
		"shell":   s.luaShell,
	})
	L.SetGlobal("machine", tbl)
	L.SetGlobal("print", L.NewFunction(s.luaPrint))
	return L
}

// checkWord reads argument n as a 32-bit value. Negative numbers wrap.
func checkWord(L *lua.LState, n int) uint32 {
	return uint32(int64(L.CheckNumber(n)))
}

func (s *Shell) luaReg(L *lua.LState) int {
	v, err := s.machine.RegisterValue(L.CheckString(1))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (s *Shell) luaSetReg(L *lua.LState) int {
	if err := s.machine.SetRegisterValue(L.CheckString(1), checkWord(L, 2)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (s *Shell) luaPC(L *lua.LState) int {
	L.Push(lua.LNumber(s.machine.PC))
	return 1
}

func (s *Shell) luaSetPC(L *lua.LState) int {
	s.machine.PC = checkWord(L, 1)
	return 0
}

func (s *Shell) luaStep(L *lua.LState) int {
	count := int(L.OptNumber(1, 1))
	cont := true
	for i := 0; i < count && cont; i++ {
		var err error
		cont, err = s.machine.Step()
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
	}
	L.Push(lua.LBool(cont))
	return 1
}

func (s *Shell) luaRun(L *lua.LState) int {
	budget := uint64(L.OptNumber(1, lua.LNumber(s.maxSteps)))
	steps, err := s.machine.RunFor(budget)
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(steps))
	return 1
}

func (s *Shell) luaLoad(L *lua.LState) int {
	if err := s.machine.LoadFile(L.CheckString(1)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (s *Shell) luaPeek(L *lua.LState) int {
	b, err := s.machine.Memory.Read8(checkWord(L, 1))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(b))
	return 1
}

func (s *Shell) luaPoke(L *lua.LState) int {
	if err := s.machine.Memory.Write8(checkWord(L, 1), byte(checkWord(L, 2))); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (s *Shell) luaWord(L *lua.LState) int {
	w, err := s.machine.Memory.Read32(checkWord(L, 1))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LNumber(w))
	return 1
}

func (s *Shell) luaSetWord(L *lua.LState) int {
	if err := s.machine.Memory.Write32(checkWord(L, 1), checkWord(L, 2)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (s *Shell) luaDisasm(L *lua.LState) int {
	L.Push(lua.LString(mips.Disassemble(checkWord(L, 1))))
	return 1
}

func (s *Shell) luaExec(L *lua.LState) int {
	cont, err := s.machine.ExecuteWord(checkWord(L, 1))
	if err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	L.Push(lua.LBool(cont))
	return 1
}

func (s *Shell) luaShell(L *lua.LState) int {
	L.Push(lua.LBool(s.ExecuteCommand(L.CheckString(1))))
	return 1
}

func (s *Shell) luaPrint(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(s.out, strings.Join(parts, "\t"))
	return 0
}
