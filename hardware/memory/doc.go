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

// Package memory implements the memory system of the machine. The Memory
// type satisfies the cpubus.Memory interface and so is what the CPU sees when
// it reads and writes.
//
// There are three areas, as described by the memorymap package. RAM begins
// at address zero. The ROM window shows one bank of the ROM at a time and is
// switched with SetBank(). The device area contains byte-wide devices added
// with Map().
//
// Word and long accesses are composed from byte accesses, high byte first.
// An access to an address that nothing acknowledges returns an error that
// wraps cpubus.ErrBusError.
package memory
