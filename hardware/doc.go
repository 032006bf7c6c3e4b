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

// Package hardware is the base package for the emulated machine. The Machine
// type connects the CPU to the memory system and to the interval timer.
//
// The timer is clocked from the CPU. After every CPU step the timer is
// stepped by the number of cycles that have passed, as reported by the CPU's
// clock tap. An interrupt raised by the timer during its step is therefore
// seen by the CPU at the start of the following step.
//
// The state of the machine can be copied with Snapshot() and restored with
// Plumb().
package hardware
