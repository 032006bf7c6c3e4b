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

// Package exceptions describes the exceptions the CPU can take and records
// the requests for them.
//
// Every exception is identified by its vector number. Describe() returns the
// properties of the exception for a vector: its kind, its group and the
// number of cycles the CPU spends entering it.
//
// The Controller type records pending interrupt levels and synchronous trap
// requests. It does not act on them. The CPU consults the controller at the
// start of every instruction for interrupts and at the end of every
// instruction for traps.
//
// Interrupts are edge triggered. Raising a level that is already pending has
// no further effect and the level is cleared when the CPU acknowledges it.
// Level 7 cannot be masked.
//
// Trap requests are queued in the order they are made. A request is serviced
// at the end of the current instruction. A deferred request waits for one
// more instruction boundary. One trap is serviced per boundary so a request
// that finds an older one ready waits for the next boundary.
package exceptions
