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

// Package cpu emulates a 68000 class microprocessor. The CPU executes
// instructions according to the 16bit opcode read from the address pointed to
// by the program counter. The opcode is looked up in the instruction table
// (see the instructions package) and the Operator of the entry selects the
// code that executes it.
//
// The CPU type requires an implementation of the cpubus.Memory interface as
// the sole argument to NewCPU(). The interface defines the memory operations
// required by the CPU. See the cpubus package for details.
//
// The bread-and-butter of the CPU type is the Step() function. Each call
// executes exactly one instruction or one exception entry sequence and
// returns the number of cycles consumed.
//
//	mc, _ := cpu.NewCPU(mem, logger.Allow)
//
//	var numCycles uint64
//	for numCycles < 1000000 {
//		n, err := mc.Step()
//		if err != nil {
//			return err
//		}
//		numCycles += uint64(n)
//	}
//
// Errors returned by Step() indicate a failure of the emulation, such as the
// memory system failing in an unexpected way. Conditions in the emulated
// machine, such as an illegal instruction or an access to an address where
// there is no memory, are exceptions in the emulated CPU and are handled by the
// program running on it.
//
// Cycles are counted as follows. The opcode and any extension words of an
// instruction are normally already in the prefetch queue. Every bus transfer,
// which includes refilling the queue, costs cpubus.BusCycles cycles. Internal
// processing costs the Internal cycles given in the instruction
// definition. Exception entry sequences cost the documented figure for the
// exception (see the exceptions package) in total.
//
// The LastResult field can be probed for information about the last step
// executed. See the execution package for more information. Very useful for
// debuggers.
//
// Interrupts are requested with RaiseInterrupt(). The request is recorded and
// acted on at the start of the next step. It is safe to call RaiseInterrupt()
// from inside the memory system, during a write for example. The same is true
// of RaiseTrap(), except that a trap requested during a write made by an
// instruction executing in supervisor mode is serviced one instruction later
// than it otherwise would be. Firmware that re-arms timer interrupts from
// inside the interrupt handler relies on this.
package cpu
