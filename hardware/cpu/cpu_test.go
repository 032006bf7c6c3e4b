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

package cpu_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/cyclecore/hardware/cpu"
	"github.com/jetsetilly/cyclecore/hardware/cpu/instructions"
	"github.com/jetsetilly/cyclecore/hardware/memory/cpubus"
	"github.com/jetsetilly/cyclecore/test"
)

func TestReset(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin, 0x7005, 0x7203)

	mc, err := cpu.NewCPU(mem, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mc.RunState(), cpu.Reset)

	// the first step of a CPU that has not been reset is the reset sequence
	n, err := mc.Step()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 40)
	test.ExpectEquality(t, mc.RunState(), cpu.Running)

	check := func() {
		t.Helper()
		for i := 0; i < 8; i++ {
			test.ExpectEquality(t, mc.Reg.D(i), 0, i)
		}
		for i := 0; i < 7; i++ {
			test.ExpectEquality(t, mc.Reg.A(i), 0, i)
		}
		test.ExpectEquality(t, mc.Reg.SP(), stackTop)
		test.ExpectEquality(t, mc.Reg.USP(), 0)
		test.ExpectEquality(t, mc.Reg.PC.Address(), origin)
		test.ExpectEquality(t, mc.Reg.SR.Value(), 0x2700)
		test.ExpectEquality(t, mc.Reg.SR.String(), "tS7xnzvc")
		test.ExpectEquality(t, mc.LastResult.Cycles, 40)
		test.ExpectSuccess(t, mc.LastResult.IsValid())

		p := mc.Prefetch()
		test.DemandEquality(t, len(p), 2)
		test.ExpectEquality(t, p[0], 0x7005)
		test.ExpectEquality(t, p[1], 0x7203)
	}
	check()

	// disturb the state and reset again. the result must be the same
	step(t, mc)
	step(t, mc)
	mc.Reg.SetA(3, 0x1234)
	mc.Reg.SetUSP(0x6000)
	mc.Reg.LoadSR(0x0015)
	mc.RaiseInterrupt(5)
	test.DemandSuccess(t, mc.Reset())
	check()
	test.ExpectEquality(t, mc.PendingInterrupts(), 0)

	// the clock is not reset
	test.ExpectEquality(t, mc.Cycles(), uint64(40+4+4+40))
}

// opcodeFor returns an opcode for the definition that can be executed from
// the state created by TestCycleCosts
func opcodeFor(t *testing.T, tbl *instructions.Table, defn *instructions.Definition) uint16 {
	t.Helper()

	// short branches with an even displacement
	if (defn.Operator == instructions.Bcc || defn.Operator == instructions.BSR) && defn.Words == 1 {
		return defn.Pattern | 0x02
	}

	op, ok := tbl.Find(defn)
	test.DemandSuccess(t, ok, defn.Mnemonic)
	return op
}

func TestCycleCosts(t *testing.T) {
	tbl, err := instructions.GetTable()
	test.DemandSuccess(t, err)

	for _, defn := range tbl.Definitions() {
		mem := newMockMem()
		op := opcodeFor(t, tbl, defn)

		// the extension words are suitable for every instruction: a zero
		// immediate value or displacement for two word instructions and an
		// absolute address of 0x1100 for three word instructions
		mem.putInstructions(origin, op, 0x0000, 0x1100)

		mc := newCPU(t, mem)
		for i := 0; i < 8; i++ {
			mc.Reg.SetD(i, 1)
		}
		for i := 0; i < 7; i++ {
			mc.Reg.SetA(i, dataArea)
		}

		r := step(t, mc)
		test.ExpectEquality(t, r.Defn, defn, defn.Mnemonic)
		test.ExpectFailure(t, r.Aborted, defn.Mnemonic)

		expected := defn.Cycles
		if r.BranchTaken {
			expected = defn.TakenCycles
		}
		if r.Exception != nil {
			expected += r.Exception.Cycles
		}
		test.ExpectEquality(t, r.Cycles, expected, defn.Mnemonic)
	}
}

func TestDocumentedCycles(t *testing.T) {
	type documented struct {
		words  []uint16
		cycles int
	}

	for _, d := range []documented{
		{[]uint16{0x4e71}, 4},                 // NOP
		{[]uint16{0x7005}, 4},                 // MOVEQ #5,D0
		{[]uint16{0x2001}, 4},                 // MOVE.L D1,D0
		{[]uint16{0x203c, 0x1234, 0x5678}, 12}, // MOVE.L #imm,D0
		{[]uint16{0x2081}, 12},                // MOVE.L D1,(A0)
		{[]uint16{0x3081}, 8},                 // MOVE.W D1,(A0)
		{[]uint16{0x2010}, 12},                // MOVE.L (A0),D0
		{[]uint16{0xd081}, 8},                 // ADD.L D1,D0
		{[]uint16{0xb081}, 6},                 // CMP.L D1,D0
		{[]uint16{0x4280}, 6},                 // CLR.L D0
		{[]uint16{0x6704}, 8},                 // BEQ.B not taken
		{[]uint16{0x6604}, 10},                // BNE.B taken
		{[]uint16{0x6700, 0x0004}, 12},        // BEQ.W not taken
		{[]uint16{0x6600, 0x0004}, 10},        // BNE.W taken
		{[]uint16{0x6004}, 10},                // BRA.B
		{[]uint16{0x6104}, 18},                // BSR.B
		{[]uint16{0x4ed0}, 8},                 // JMP (A0)
		{[]uint16{0x4ef9, 0x0000, 0x1100}, 12}, // JMP abs.L
		{[]uint16{0x4eb9, 0x0000, 0x1100}, 20}, // JSR abs.L
		{[]uint16{0x4e90}, 16},                // JSR (A0)
		{[]uint16{0x4afc}, 34},                // ILLEGAL
		{[]uint16{0x4e43}, 34},                // TRAP #3
		{[]uint16{0xa000}, 34},                // Line A
		{[]uint16{0xf000}, 34},                // Line F
		{[]uint16{0x80c2}, 38},                // DIVU.W D2,D0 with D2 zero
		{[]uint16{0x80c1}, 140},               // DIVU.W D1,D0
		{[]uint16{0x4e72, 0x2700}, 4},         // STOP
		{[]uint16{0x4e70}, 132},               // RESET
		{[]uint16{0x46c1}, 12},                // MOVE D1,SR
		{[]uint16{0x40c0}, 6},                 // MOVE SR,D0
		{[]uint16{0x007c, 0x0000}, 20},        // ORI #0,SR
	} {
		mem := newMockMem()
		mem.putInstructions(origin, d.words...)
		mc := newCPU(t, mem)
		mc.Reg.SetD(0, 100)
		mc.Reg.SetD(1, 0x2701)
		mc.Reg.SetA(0, dataArea)

		r := step(t, mc)
		test.ExpectEquality(t, r.Cycles, d.cycles, r.String())
	}
}

func TestArithmeticFlags(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x70ff,                 // MOVEQ #-1,D0
		0x7201,                 // MOVEQ #1,D1
		0xd081,                 // ADD.L D1,D0
		0x243c, 0x7fff, 0xffff, // MOVE.L #$7fffffff,D2
		0x5282,                 // ADDQ.L #1,D2
		0x9081,                 // SUB.L D1,D0
		0xb080,                 // CMP.L D0,D0
		0x4481,                 // NEG.L D1
		0x4a82,                 // TST.L D2
		0xc081,                 // AND.L D1,D0
		0x44c0,                 // MOVE D0,CCR
		0x4840,                 // SWAP D0
	)
	mc := newCPU(t, mem)

	trace := []string{
		"tS7xNzvc",
		"tS7xnzvc",
		"tS7XnZvC",
		"tS7Xnzvc",
		"tS7xNzVc",
		"tS7XNzvC",
		"tS7XnZvc",
		"tS7XNzvC",
		"tS7XNzvc",
		"tS7XNzvc",
		"tS7XNZVC",
		"tS7XNzvc",
	}

	for i, s := range trace {
		r := step(t, mc)
		test.ExpectEquality(t, mc.Reg.SR.String(), s, i, r.String())
	}

	test.ExpectEquality(t, mc.Reg.D(0), 0xffffffff)
	test.ExpectEquality(t, mc.Reg.D(1), 0xffffffff)
	test.ExpectEquality(t, mc.Reg.D(2), 0x80000000)
}

func TestBranching(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x7000,         // 1000 MOVEQ #0,D0
		0x6604,         // 1002 BNE.B 1008
		0x6702,         // 1004 BEQ.B 1008
		0x4e71,         // 1006 NOP
		0x6100, 0x0010, // 1008 BSR.W 101a
		0x60fe,         // 100c BRA.B 100c
	)
	mem.putInstructions(0x101a,
		0x7201, // 101a MOVEQ #1,D1
		0x4e75, // 101c RTS
	)
	mc := newCPU(t, mem)

	step(t, mc)
	r := step(t, mc)
	test.ExpectFailure(t, r.BranchTaken)
	test.ExpectEquality(t, r.Cycles, 8)
	test.ExpectEquality(t, mc.Reg.PC.Address(), 0x1004)

	r = step(t, mc)
	test.ExpectSuccess(t, r.BranchTaken)
	test.ExpectEquality(t, r.Cycles, 10)
	test.ExpectEquality(t, mc.Reg.PC.Address(), 0x1008)

	r = step(t, mc)
	test.ExpectEquality(t, r.Cycles, 18)
	test.ExpectEquality(t, mc.Reg.PC.Address(), 0x101a)
	test.ExpectEquality(t, mc.Reg.SP(), stackTop-4)
	test.ExpectEquality(t, mem.long(stackTop-4), 0x100c)

	step(t, mc)
	r = step(t, mc)
	test.ExpectEquality(t, r.Cycles, 16)
	test.ExpectEquality(t, mc.Reg.PC.Address(), 0x100c)
	test.ExpectEquality(t, mc.Reg.SP(), stackTop)
	test.ExpectEquality(t, mc.Reg.D(1), 1)

	// branch to self
	for i := 0; i < 3; i++ {
		r = step(t, mc)
		test.ExpectEquality(t, mc.Reg.PC.Address(), 0x100c)
		test.ExpectEquality(t, r.Cycles, 10)
	}
}

func TestMemoryMoves(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x41f9, 0x0000, dataArea, // LEA dataArea,A0
		0x2081, // MOVE.L D1,(A0)
		0x1082, // MOVE.B D2,(A0)
		0x2610, // MOVE.L (A0),D3
		0x3810, // MOVE.W (A0),D4
		0x1a10, // MOVE.B (A0),D5
	)
	mc := newCPU(t, mem)
	mc.Reg.SetD(1, 0x12345678)
	mc.Reg.SetD(2, 0xaa)
	mc.Reg.SetD(4, 0xffffffff)
	mc.Reg.SetD(5, 0xffffffff)

	for i := 0; i < 6; i++ {
		step(t, mc)
	}

	test.ExpectEquality(t, mc.Reg.A(0), dataArea)
	test.ExpectEquality(t, mem.long(dataArea), 0xaa345678)
	test.ExpectEquality(t, mc.Reg.D(3), 0xaa345678)
	test.ExpectEquality(t, mc.Reg.D(4), 0xffffaa34)
	test.ExpectEquality(t, mc.Reg.D(5), 0xffffffaa)
	test.ExpectEquality(t, mc.Reg.SR.String(), "tS7xNzvc")
}

func TestHostFailure(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin, 0x2010) // MOVE.L (A0),D0
	mc := newCPU(t, mem)
	mc.Reg.SetA(0, hostFailure)

	_, err := mc.Step()
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, errors.Is(err, errMockFailure))
	test.ExpectFailure(t, errors.Is(err, cpubus.ErrBusError))
	test.ExpectEquality(t, mc.LastResult.Exception == nil, true)
}

func TestHalt(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin, 0x7001, 0x7202)
	mc := newCPU(t, mem)

	mc.SetHalt(true)
	before := mc.Reg.String()
	for i := 0; i < 3; i++ {
		n, err := mc.Step()
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, n, cpu.HaltCycles)
		test.ExpectEquality(t, mc.RunState(), cpu.Halted)
	}
	test.ExpectEquality(t, mc.Reg.String(), before)
	test.ExpectEquality(t, mc.Cycles(), uint64(40+3*cpu.HaltCycles))

	mc.SetHalt(false)
	test.ExpectEquality(t, mc.RunState(), cpu.Running)
	step(t, mc)
	test.ExpectEquality(t, mc.Reg.D(0), 1)
}

func TestStop(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin, 0x4e72, 0x2000, 0x7001)
	mc := newCPU(t, mem)

	r := step(t, mc)
	test.ExpectEquality(t, r.Cycles, 4)
	test.ExpectEquality(t, mc.RunState(), cpu.Stopped)
	test.ExpectEquality(t, mc.Reg.SR.Value(), 0x2000)

	for i := 0; i < 3; i++ {
		n, err := mc.Step()
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, n, cpu.StopCycles)
	}

	mc.RaiseInterrupt(2)
	r = step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, 26)
	test.ExpectEquality(t, mc.RunState(), cpu.Running)

	// the return address is the instruction after STOP
	test.ExpectEquality(t, mem.long(stackTop-4), origin+4)
}

func TestResetInstruction(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin, 0x4e70)
	mc := newCPU(t, mem)
	step(t, mc)
	test.ExpectEquality(t, mem.resets, 1)

	// the CPU itself is not reset
	test.ExpectEquality(t, mc.Reg.PC.Address(), origin+2)
}
