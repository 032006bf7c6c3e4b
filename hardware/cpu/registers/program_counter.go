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

package registers

import "fmt"

// ProgramCounter represents the PC register in the CPU.
type ProgramCounter struct {
	value uint32
}

// Label returns an identifying string for the PC
func (pc ProgramCounter) Label() string {
	return "PC"
}

func (pc ProgramCounter) String() string {
	return fmt.Sprintf("%#08x", pc.value)
}

// Address returns the current value of the PC
func (pc ProgramCounter) Address() uint32 {
	return pc.value
}

// Load a value into the PC
func (pc *ProgramCounter) Load(val uint32) {
	pc.value = val
}

// Add a value to the PC. Negative displacements should be sign extended to
// 32bits before calling.
func (pc *ProgramCounter) Add(val uint32) {
	pc.value += val
}
