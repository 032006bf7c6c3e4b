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

// Package cpubus defines the interface between the CPU and the memory system
// of the emulated machine. The CPU uses the interface, it does not own it.
package cpubus

import "errors"

// Memory defines the operations for the memory system when accessed from the
// CPU. Addresses are already masked to the width of the external address bus
// and word/long accesses are guaranteed to be to even addresses (the CPU
// raises an address error before calling the memory system otherwise).
//
// Values are big-endian. A long access is two word accesses as far as timing
// is concerned but the memory system is free to service it as a single access.
//
// The Peek functions must never change the state of the memory system or any
// device mapped into it, even if the equivalent Read would (for example, by
// clearing a "data ready" latch). They are used by debuggers and by the CPU
// when restoring a snapshot.
type Memory interface {
	Read8(address uint32) (uint8, error)
	Read16(address uint32) (uint16, error)
	Read32(address uint32) (uint32, error)

	Write8(address uint32, data uint8) error
	Write16(address uint32, data uint16) error
	Write32(address uint32, data uint32) error

	Peek8(address uint32) (uint8, error)
	Peek16(address uint32) (uint16, error)
	Peek32(address uint32) (uint32, error)
}

// AutoVector can be returned by an Acknowledger to indicate that the CPU
// should use the autovector for the interrupt level.
const AutoVector = 0xff

// Acknowledger is implemented by memory systems that want to supply the
// vector number during an interrupt acknowledge cycle. If the memory system
// does not implement this interface the CPU will always autovector.
type Acknowledger interface {
	Acknowledge(level uint8) uint8
}

// Resetter is implemented by memory systems that respond to the RESET
// instruction, which pulses the reset line of every device on the bus but not
// the CPU itself.
type Resetter interface {
	ResetDevices()
}

// BusCycles is the number of CPU cycles consumed by a single bus transfer of a
// word or a byte.
const BusCycles = 4

// ErrBusError should be returned (wrapped or otherwise) by the Memory
// implementation when the address has no device to acknowledge the transfer
// (the equivalent of BERR being asserted). The CPU converts it into a bus
// error exception in the guest. Any other error is considered a failure of
// the emulation and is returned to the caller of the CPU.
var ErrBusError = errors.New("bus error")
