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

// program that unmasks interrupts before running a series of MOVEQ
// instructions. the returned CPU has executed the MOVE to SR
func interruptable(t *testing.T) (*mockMem, *cpu.CPU) {
	t.Helper()
	mem := newMockMem()
	mem.putInstructions(origin,
		0x46c0, // MOVE D0,SR
		0x7001, // MOVEQ #1,D0
		0x7202, // MOVEQ #2,D1
		0x7403, // MOVEQ #3,D2
		0x7604, // MOVEQ #4,D3
		0x7805, // MOVEQ #5,D4
		0x7a06, // MOVEQ #6,D5
	)
	mc := newCPU(t, mem)
	mc.Reg.SetD(0, 0x2000)
	step(t, mc)
	return mem, mc
}

func TestInterrupt(t *testing.T) {
	mem, mc := interruptable(t)

	mc.RaiseInterrupt(3)
	test.ExpectEquality(t, mc.ExceptionState(), exceptions.Signaled)

	r := step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.Autovector(3))
	test.ExpectEquality(t, r.Exception.Level, 3)
	test.ExpectEquality(t, r.Cycles, 44)
	test.ExpectEquality(t, len(mem.acked), 1)
	test.ExpectEquality(t, mc.Reg.SR.Mask, 3)
	test.ExpectEquality(t, mc.Reg.PC.Address(), handler(exceptions.Autovector(3)))
	test.ExpectEquality(t, mem.word(stackTop-6), 0x2000)
	test.ExpectEquality(t, mem.long(stackTop-4), origin+2)
	test.ExpectEquality(t, mc.ExceptionState(), exceptions.Idle)

	// a single edge is serviced exactly once
	for i := 0; i < 5; i++ {
		r = step(t, mc)
		test.ExpectEquality(t, r.Exception == nil, true, i)
	}
	test.ExpectEquality(t, len(mem.acked), 1)
}

func TestInterruptMask(t *testing.T) {
	_, mc := interruptable(t)
	mc.Reg.SR.Mask = 4

	// masked
	mc.RaiseInterrupt(4)
	r := step(t, mc)
	test.ExpectEquality(t, r.Exception == nil, true)
	test.ExpectEquality(t, mc.PendingInterrupts(), 1<<4)

	// withdrawn before the mask is lowered
	mc.LowerInterrupt(4)
	mc.Reg.SR.Mask = 0
	r = step(t, mc)
	test.ExpectEquality(t, r.Exception == nil, true)

	// level 7 is never masked
	mc.Reg.SR.Mask = 7
	mc.RaiseInterrupt(7)
	r = step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Level, 7)
}

func TestAcknowledgeVector(t *testing.T) {
	mem, mc := interruptable(t)

	mem.vector = 70
	mc.RaiseInterrupt(5)
	r := step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, 70)
	test.ExpectEquality(t, r.Exception.Kind, exceptions.KindInterrupt)
	test.ExpectEquality(t, mc.Reg.PC.Address(), handler(70))

	// no vector is a spurious interrupt
	mem.vector = 0
	mc.RaiseInterrupt(6)
	r = step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.Spurious)
	test.ExpectEquality(t, mc.Reg.SR.Mask, 6)
}

func TestInterruptPreemption(t *testing.T) {
	mem, mc := interruptable(t)

	// a higher priority interrupt arrives while the level 3 frame is being
	// pushed
	raised := false
	mem.onWrite = func(address uint32) {
		if !raised && address < stackTop && address >= stackTop-6 {
			raised = true
			mc.RaiseInterrupt(5)
		}
	}

	mc.RaiseInterrupt(3)
	r := step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Level, 3)
	test.ExpectSuccess(t, raised)

	// the level 5 interrupt is taken before the first instruction of the
	// level 3 handler
	r = step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Level, 5)
	test.ExpectEquality(t, mc.Reg.PC.Address(), handler(exceptions.Autovector(5)))

	// the second frame is on top of the first, which is intact
	test.ExpectEquality(t, mc.Reg.SP(), stackTop-12)
	test.ExpectEquality(t, mem.long(stackTop-10), handler(exceptions.Autovector(3)))
	test.ExpectEquality(t, mem.word(stackTop-12), 0x2300)
	test.ExpectEquality(t, mem.long(stackTop-4), origin+2)
	test.ExpectEquality(t, mem.word(stackTop-6), 0x2000)
}

func TestInterruptFromWrite(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x46c0, // MOVE D0,SR
		0x2081, // MOVE.L D1,(A0)
		0x7001, // MOVEQ #1,D0
	)
	mc := newCPU(t, mem)
	mc.Reg.SetD(0, 0x2000)
	mc.Reg.SetA(0, deviceAddr)
	step(t, mc)

	mem.onWrite = func(address uint32) {
		if address == deviceAddr {
			mc.RaiseInterrupt(4)
		}
	}

	// the write completes and the interrupt is not taken inside it
	r := step(t, mc)
	test.ExpectEquality(t, r.Exception == nil, true)
	test.ExpectEquality(t, r.Cycles, 12)
	test.ExpectEquality(t, mc.PendingInterrupts(), 1<<4)

	r = step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Level, 4)
	test.ExpectEquality(t, mem.long(stackTop-4), origin+4)
}

func TestTrapDeferral(t *testing.T) {
	program := func(supervisor bool) (*mockMem, *cpu.CPU) {
		mem := newMockMem()
		sr := uint32(0x2700)
		if !supervisor {
			sr = 0x0700
		}
		mem.putInstructions(origin,
			0x46c0, // MOVE D0,SR
			0x2081, // MOVE.L D1,(A0)
			0x7001, // MOVEQ #1,D0
			0x7202, // MOVEQ #2,D1
		)
		mc := newCPU(t, mem)
		mc.Reg.SetD(0, sr)
		mc.Reg.SetA(0, deviceAddr)
		step(t, mc)

		mem.onWrite = func(address uint32) {
			if address == deviceAddr {
				mc.RaiseTrap(exceptions.TrapBase + 8)
			}
		}
		return mem, mc
	}

	// from user mode the trap is taken at the end of the writing instruction
	mem, u := program(false)
	r := step(t, u)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.TrapBase+8)
	test.ExpectEquality(t, r.InstructionCycles(), 12)
	test.ExpectEquality(t, mem.long(stackTop-4), origin+4)

	// from supervisor mode the trap is taken one instruction later. this
	// must be the same every time
	for i := 0; i < 3; i++ {
		mem, s := program(true)
		r = step(t, s)
		test.ExpectEquality(t, r.Exception == nil, true, i)
		test.ExpectEquality(t, s.ExceptionState(), exceptions.Signaled, i)

		r = step(t, s)
		test.DemandSuccess(t, r.Exception != nil)
		test.ExpectEquality(t, r.Exception.Vector, exceptions.TrapBase+8, i)
		test.ExpectEquality(t, s.Reg.D(0), 1, i)
		test.ExpectEquality(t, mem.long(stackTop-4), origin+6, i)
		test.ExpectEquality(t, r.Cycles, 4+34, i)
	}

	// a trap requested between steps is taken at the end of the next
	// instruction
	mem, s := program(true)
	s.RaiseTrap(exceptions.TrapBase + 9)
	mem.onWrite = nil
	r = step(t, s)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.TrapBase+9)
}

func TestTrapAfterDeferredTrap(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x46c0, // MOVE D0,SR
		0x2081, // MOVE.L D1,(A0)
		0x7001, // MOVEQ #1,D0
		0x7202, // MOVEQ #2,D1
	)
	mc := newCPU(t, mem)
	mc.Reg.SetD(0, 0x2700)
	mc.Reg.SetA(0, deviceAddr)
	step(t, mc)

	mem.onWrite = func(address uint32) {
		if address == deviceAddr {
			mc.RaiseTrap(exceptions.TrapBase + 8)
		}
	}
	r := step(t, mc)
	test.ExpectEquality(t, r.Exception == nil, true)
	mem.onWrite = nil

	// requested while the deferred trap is waiting. both must be serviced
	// and the deferred trap comes first
	mc.RaiseTrap(exceptions.TrapBase + 9)

	var taken []uint8
	for i := 0; i < 20; i++ {
		r = step(t, mc)
		if r.Exception != nil {
			taken = append(taken, r.Exception.Vector)
		}
	}
	test.DemandEquality(t, len(taken), 2)
	test.ExpectEquality(t, taken[0], exceptions.TrapBase+8)
	test.ExpectEquality(t, taken[1], exceptions.TrapBase+9)
	test.ExpectEquality(t, mc.ExceptionState(), exceptions.Idle)
}

func TestDeferredTrapDuringException(t *testing.T) {
	mem := newMockMem()
	mem.putInstructions(origin,
		0x46c0, // MOVE D0,SR
		0x4e40, // TRAP #0
	)
	mc := newCPU(t, mem)
	mc.Reg.SetD(0, 0x2700)
	step(t, mc)

	// the stack writes made by the TRAP instruction request a second trap
	var raised bool
	mem.onWrite = func(address uint32) {
		if !raised && address < stackTop && address >= stackTop-6 {
			raised = true
			mc.RaiseTrap(exceptions.TrapBase + 9)
		}
	}

	r := step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.TrapBase)
	test.ExpectSuccess(t, raised)

	// the deferred trap follows the first instruction of the handler
	r = step(t, mc)
	test.DemandSuccess(t, r.Exception != nil)
	test.ExpectEquality(t, r.Exception.Vector, exceptions.TrapBase+9)
	test.ExpectEquality(t, r.Defn.Mnemonic, "NOP")
	test.ExpectEquality(t, mem.long(stackTop-10), handler(exceptions.TrapBase)+2)
}
