// This file is part of Cyclecore.
//
// Cyclecore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Cyclecore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Cyclecore.  If not, see <https://www.gnu.org/licenses/>.

package scripting

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/cyclecore/hardware"
	"github.com/jetsetilly/cyclecore/logger"
	lua "github.com/yuin/gopher-lua"
)

// Script is a Lua environment attached to a machine.
type Script struct {
	L   *lua.LState
	m   *hardware.Machine
	out io.Writer

	snapshots []*hardware.State
}

// NewScript creates a new Lua environment for the machine. Output of the
// print() function is sent to out.
func NewScript(m *hardware.Machine, out io.Writer) (*Script, error) {
	if m == nil {
		return nil, fmt.Errorf("scripting: no machine")
	}
	if out == nil {
		out = io.Discard
	}

	scr := &Script{
		L:   lua.NewState(),
		m:   m,
		out: out,
	}

	for name, fn := range map[string]lua.LGFunction{
		"peek":     scr.peek,
		"peekw":    scr.peekw,
		"poke":     scr.poke,
		"step":     scr.step,
		"run":      scr.run,
		"reg":      scr.reg,
		"setreg":   scr.setreg,
		"sr":       scr.sr,
		"irq":      scr.irq,
		"cycles":   scr.cycles,
		"snapshot": scr.snapshot,
		"restore":  scr.restore,
		"bank":     scr.bank,
		"print":    scr.print,
		"log":      scr.log,
	} {
		scr.L.SetGlobal(name, scr.L.NewFunction(fn))
	}

	return scr, nil
}

// Close the Lua environment.
func (scr *Script) Close() {
	scr.L.Close()
}

// Run the Lua source.
func (scr *Script) Run(source string) error {
	if err := scr.L.DoString(source); err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	return nil
}

// RunFile runs the Lua file.
func (scr *Script) RunFile(filename string) error {
	if err := scr.L.DoFile(filename); err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	return nil
}

func checkAddress(L *lua.LState, n int) uint32 {
	v := L.CheckInt64(n)
	if v < 0 || v > 0xffffff {
		L.ArgError(n, fmt.Sprintf("address out of range (%#x)", v))
	}
	return uint32(v)
}

func (scr *Script) peek(L *lua.LState) int {
	v, err := scr.m.Mem.Peek8(checkAddress(L, 1))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (scr *Script) peekw(L *lua.LState) int {
	address := checkAddress(L, 1)
	if address&1 != 0 {
		L.ArgError(1, fmt.Sprintf("word address must be even (%#x)", address))
	}
	v, err := scr.m.Mem.Peek16(address)
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (scr *Script) poke(L *lua.LState) int {
	address := checkAddress(L, 1)
	v := L.CheckInt(2)
	if err := scr.m.Mem.Poke8(address, uint8(v)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) step(L *lua.LState) int {
	n := L.OptInt(1, 1)
	cycles := 0
	for i := 0; i < n; i++ {
		c, err := scr.m.Step()
		if err != nil {
			L.RaiseError("%v", err)
		}
		cycles += c
	}
	L.Push(lua.LNumber(cycles))
	return 1
}

func (scr *Script) run(L *lua.LState) int {
	n, err := scr.m.Run(uint64(L.CheckInt64(1)), nil)
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(n))
	return 1
}

// register parses register names of the form D0-D7 and A0-A7. returns the
// register class ('D' or 'A') and number
func register(name string) (byte, int, bool) {
	name = strings.ToUpper(name)
	if len(name) != 2 || (name[0] != 'D' && name[0] != 'A') {
		return 0, 0, false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 0 || n > 7 {
		return 0, 0, false
	}
	return name[0], n, true
}

func (scr *Script) reg(L *lua.LState) int {
	name := L.CheckString(1)
	r := &scr.m.CPU.Reg

	var v uint32
	switch strings.ToUpper(name) {
	case "PC":
		v = r.PC.Address()
	case "SR":
		v = uint32(r.SR.Value())
	case "USP":
		v = r.USP()
	case "SSP":
		v = r.SSP()
	case "SP":
		v = r.SP()
	default:
		class, n, ok := register(name)
		if !ok {
			L.ArgError(1, fmt.Sprintf("unknown register (%s)", name))
		}
		if class == 'D' {
			v = r.D(n)
		} else {
			v = r.A(n)
		}
	}

	L.Push(lua.LNumber(v))
	return 1
}

func (scr *Script) setreg(L *lua.LState) int {
	name := L.CheckString(1)
	v := uint32(L.CheckInt64(2))
	r := &scr.m.CPU.Reg

	switch strings.ToUpper(name) {
	case "SR":
		r.LoadSR(uint16(v))
	case "PC":
		scr.m.CPU.LoadPC(v)
	default:
		class, n, ok := register(name)
		if !ok {
			L.ArgError(1, fmt.Sprintf("unknown register (%s)", name))
		}
		if class == 'D' {
			r.SetD(n, v)
		} else {
			r.SetA(n, v)
		}
	}
	return 0
}

func (scr *Script) sr(L *lua.LState) int {
	L.Push(lua.LNumber(scr.m.CPU.Reg.SR.Value()))
	return 1
}

func (scr *Script) irq(L *lua.LState) int {
	level := L.CheckInt(1)
	if level < 1 || level > 7 {
		L.ArgError(1, fmt.Sprintf("interrupt level out of range (%d)", level))
	}
	scr.m.CPU.RaiseInterrupt(uint8(level))
	return 0
}

func (scr *Script) cycles(L *lua.LState) int {
	L.Push(lua.LNumber(scr.m.CPU.Cycles()))
	return 1
}

func (scr *Script) snapshot(L *lua.LState) int {
	scr.snapshots = append(scr.snapshots, scr.m.Snapshot())
	L.Push(lua.LNumber(len(scr.snapshots)))
	return 1
}

func (scr *Script) restore(L *lua.LState) int {
	h := L.CheckInt(1)
	if h < 1 || h > len(scr.snapshots) {
		L.ArgError(1, fmt.Sprintf("no snapshot with handle %d", h))
	}
	if err := scr.m.Plumb(scr.snapshots[h-1].Snapshot()); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (scr *Script) bank(L *lua.LState) int {
	if L.GetTop() > 0 {
		if err := scr.m.Mem.SetBank(L.CheckInt(1)); err != nil {
			L.RaiseError("%v", err)
		}
	}
	L.Push(lua.LNumber(scr.m.Mem.Bank()))
	return 1
}

func (scr *Script) print(L *lua.LState) int {
	s := make([]string, L.GetTop())
	for i := range s {
		s[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	fmt.Fprintln(scr.out, strings.Join(s, "\t"))
	return 0
}

func (scr *Script) log(L *lua.LState) int {
	logger.Log(logger.Allow, L.CheckString(1), L.CheckString(2))
	return 0
}
