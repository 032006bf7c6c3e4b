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
	"testing"

	"github.com/jetsetilly/cyclecore/hardware/cpu"
	"github.com/jetsetilly/cyclecore/hardware/cpu/exceptions"
	"github.com/jetsetilly/cyclecore/test"
)

func TestIllegalInstruction(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin, 0x7001, 0x4afc)
	mc := newCPU(t, mem)

	step(t, mc)
	r := step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.IllegalInstruction)
	test.ExpectEquality(t, r.Cycles, 34)

	// group 1 frame. the pushed PC is the address of the illegal instruction
	test.ExpectEquality(t, mc.Reg.SP(), stackTop-6)
	test.ExpectEquality(t, mem.word(stackTop-6), 0x2700)
	test.ExpectEquality(t, mem.long(stackTop-4), origin+2)
	test.ExpectEquality(t, mc.Reg.PC.Address(), handler(exceptions.IllegalInstruction))
	test.ExpectEquality(t, mc.Prefetch()[0], 0x4e71)
}

func TestPrivilegeViolation(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x027c, 0xdfff, // ANDI #$dfff,SR
		0x4e70, // RESET
	)
	mc := newCPU(t, mem)
	mc.Reg.SetUSP(0x7000)

	step(t, mc)
	test.ExpectFailure(t, mc.Reg.SR.Supervisor())
	test.ExpectEquality(t, mc.Reg.SP(), 0x7000)

	r := step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.PrivilegeViolation)
	test.ExpectSuccess(t, r.Aborted)
	test.ExpectEquality(t, r.Cycles, 34)
	test.ExpectEquality(t, mem.resets, 0)

	// frame is on the supervisor stack and the user stack is untouched
	test.ExpectSuccess(t, mc.Reg.SR.Supervisor())
	test.ExpectEquality(t, mc.Reg.SP(), stackTop-6)
	test.ExpectEquality(t, mc.Reg.USP(), 0x7000)
	test.ExpectEquality(t, mem.word(stackTop-6), 0x0700)
	test.ExpectEquality(t, mem.long(stackTop-4), origin+4)
}

func TestTrapAndDivide(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x4e45, // TRAP #5
	)
	mc := newCPU(t, mem)
	r := step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.TrapBase+5)
	test.ExpectEquality(t, mem.long(stackTop-4), origin+2)
	test.ExpectEquality(t, mc.Reg.PC.Address(), handler(exceptions.TrapBase+5))

	mem = newMockMem()
	mem.putInstructions(origin,
		0x80c1, // DIVU.W D1,D0
	)
	mc = newCPU(t, mem)
	mc.Reg.SetD(0, 1234)
	r = step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.DivideByZero)
	test.ExpectEquality(t, r.Cycles, 38)
	test.ExpectEquality(t, mc.Reg.D(0), 1234)

	// group 2 exceptions push the address of the next instruction
	test.ExpectEquality(t, mem.long(stackTop-4), origin+2)
}

func TestDivide(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x80c1, // DIVU.W D1,D0
		0x84c3, // DIVU.W D3,D2
	)
	mc := newCPU(t, mem)
	mc.Reg.SetD(0, 100003)
	mc.Reg.SetD(1, 10)
	mc.Reg.SetD(2, 0x00100000)
	mc.Reg.SetD(3, 1)

	step(t, mc)
	test.ExpectEquality(t, mc.Reg.D(0), 3<<16|10000)
	test.ExpectFailure(t, mc.Reg.SR.Overflow)

	// overflow leaves the register untouched
	step(t, mc)
	test.ExpectEquality(t, mc.Reg.D(2), 0x00100000)
	test.ExpectSuccess(t, mc.Reg.SR.Overflow)
}

func TestAddressError(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x3081, // MOVE.W D1,(A0)
	)
	mc := newCPU(t, mem)
	mc.Reg.SetA(0, dataArea+1)

	r := step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.AddressError)
	test.ExpectSuccess(t, r.Aborted)
	test.ExpectEquality(t, r.EntryCycles, 50)

	// seven word frame
	sp := mc.Reg.SP()
	test.ExpectEquality(t, sp, stackTop-14)
	test.ExpectEquality(t, mem.word(sp), 0x000d)
	test.ExpectEquality(t, mem.long(sp+2), dataArea+1)
	test.ExpectEquality(t, mem.word(sp+6), 0x3081)
	test.ExpectEquality(t, mem.word(sp+8), 0x2700)
	test.ExpectEquality(t, mem.long(sp+10), origin+2)
	test.ExpectEquality(t, mc.Reg.PC.Address(), handler(exceptions.AddressError))
}

func TestBusError(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x2010, // MOVE.L (A0),D0
	)
	mc := newCPU(t, mem)
	mc.Reg.SetA(0, 0x20000)

	r := step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.BusError)
	test.ExpectEquality(t, r.EntryCycles, 50)

	sp := mc.Reg.SP()
	test.ExpectEquality(t, mem.word(sp), 0x001d)
	test.ExpectEquality(t, mem.long(sp+2), 0x20000)

	// a jump to an odd address faults on the instruction fetch
	mem = newMockMem()
	mem.putInstructions(origin,
		0x4ed0, // JMP (A0)
	)
	mc = newCPU(t, mem)
	mc.Reg.SetA(0, dataArea+1)
	r = step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.AddressError)
	test.ExpectEquality(t, mem.word(mc.Reg.SP()), 0x0016)
}

func TestUninitialisedVector(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin, 0xf000, 0xa000)
	mem.putLong(exceptions.Address(exceptions.LineF), 0)
	mc := newCPU(t, mem)

	r := step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.LineF)
	test.ExpectEquality(t, mc.Reg.PC.Address(), handler(exceptions.Uninitialised))

	// with no handler for uninitialised vectors either the CPU double faults
	mem = newMockMem()
	mem.putInstructions(origin, 0xf000, 0xa000)
	mem.putLong(exceptions.Address(exceptions.LineF), 0)
	mem.putLong(exceptions.Address(exceptions.Uninitialised), 0)
	mc = newCPU(t, mem)

	r = step(t, mc)
	test.ExpectSuccess(t, r.DoubleFault)
	test.ExpectEquality(t, mc.RunState(), cpu.DoubleFault)

	// the double fault is terminal until reset
	before := mc.Reg.String()
	for i := 0; i < 3; i++ {
		r = step(t, mc)
		test.ExpectEquality(t, r.Cycles, cpu.HaltCycles)
	}
	test.ExpectEquality(t, mc.Reg.String(), before)

	// releasing the halt line does not clear the double fault
	mc.SetHalt(true)
	mc.SetHalt(false)
	test.ExpectEquality(t, mc.RunState(), cpu.DoubleFault)

	test.DemandSuccess(t, mc.Reset())
	test.ExpectEquality(t, mc.RunState(), cpu.Running)
	test.ExpectEquality(t, mc.Reg.PC.Address(), origin)
}

func TestGroupZeroDuringEntry(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin, 0x4afc)
	mc := newCPU(t, mem)

	// the supervisor stack pointer is odd so the frame cannot be pushed
	mc.Reg.SetSSP(stackTop + 1)
	r := step(t, mc)
	test.ExpectSuccess(t, r.DoubleFault)
	test.ExpectEquality(t, mc.RunState(), cpu.DoubleFault)
}

func TestTrace(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x007c, 0x8000, // ORI #$8000,SR
		0x7001, // MOVEQ #1,D0
	)
	mc := newCPU(t, mem)

	// the instruction that sets the trace bit is not traced
	r := step(t, mc)
	test.ExpectEquality(t, r.Exception == nil, true)
	test.ExpectSuccess(t, mc.Reg.SR.Trace)

	r = step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.Trace)
	test.ExpectEquality(t, r.Cycles, 4+34)
	test.ExpectEquality(t, mc.Reg.D(0), 1)
	test.ExpectEquality(t, mem.long(stackTop-4), origin+6)
	test.ExpectEquality(t, mem.word(stackTop-6), 0xa700)
	test.ExpectFailure(t, mc.Reg.SR.Trace)
	test.ExpectEquality(t, mc.Reg.PC.Address(), handler(exceptions.Trace))
}
