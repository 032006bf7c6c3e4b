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

// Package registers implements the register file of the CPU. The register
// file is made up of eight data registers, seven address registers, two
// banked stack pointers (only one of which is visible as A7 at any one time),
// the program counter and the status register.
//
// Registers are accessed through typed accessor functions rather than by
// index arithmetic over a single array. A7 always refers to the live stack
// pointer, which is selected solely by the supervisor bit of the status
// register:
//
//	f.LoadSR(0x0000)  // user mode. A7 is now the USP
//	f.SetA(7, 0x1000) // sets USP
//	f.LoadSR(0x2000)  // supervisor mode. A7 is now the SSP
//
// The zero and negative flags of the status register are derived lazily from
// the most recent result given to SetNZ(). This is invisible to users of the
// StatusRegister type. Arithmetic helpers return carry and overflow so that
// the CPU can decide which flags an instruction affects:
//
//	r, c, v := registers.Add(a, b, registers.Long, false)
//	sr.SetNZ(r, registers.Long)
//	sr.Carry = c
//	sr.Overflow = v
package registers
