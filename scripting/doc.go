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

// Package scripting allows the emulated machine to be driven by a Lua script.
// The following functions are available to a script:
//
//	peek(address)             read a byte without side effects
//	peekw(address)            read a word without side effects
//	poke(address, value)      write a byte. bytes in ROM are patched
//	step([n])                 step n instructions (default 1). returns cycles
//	run(cycles)               run for at least the number of cycles
//	reg(name)                 value of register D0-D7, A0-A7, PC, SR, USP or SSP
//	setreg(name, value)       set a data or address register, or the SR
//	sr()                      value of the status register
//	irq(level)                raise an interrupt at the level
//	cycles()                  number of cycles consumed by the CPU
//	snapshot()                snapshot the machine. returns a handle
//	restore(handle)           restore a snapshot
//	bank([n])                 select a ROM bank. returns the current bank
//	print(...)                write to the script output
//	log(tag, detail)          add an entry to the central log
//
// Errors in the emulation are raised as Lua errors and returned by Run().
package scripting
