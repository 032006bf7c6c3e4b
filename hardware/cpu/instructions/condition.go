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

package instructions

import "github.com/jetsetilly/cyclecore/hardware/cpu/registers"

// Condition is one of the sixteen condition codes used by the conditional
// branch instructions. The value is the same as the four bit field in the
// opcode.
type Condition uint8

// List of condition codes.
const (
	CondT Condition = iota
	CondF
	CondHI
	CondLS
	CondCC
	CondCS
	CondNE
	CondEQ
	CondVC
	CondVS
	CondPL
	CondMI
	CondGE
	CondLT
	CondGT
	CondLE
)

var conditionNames = [16]string{
	"T", "F", "HI", "LS", "CC", "CS", "NE", "EQ",
	"VC", "VS", "PL", "MI", "GE", "LT", "GT", "LE",
}

func (c Condition) String() string {
	return conditionNames[c&0x0f]
}

// Test the condition against the flags in the status register.
func (c Condition) Test(sr registers.StatusRegister) bool {
	n := sr.Negative()
	z := sr.Zero()
	v := sr.Overflow
	carry := sr.Carry

	switch c & 0x0f {
	case CondT:
		return true
	case CondF:
		return false
	case CondHI:
		return !carry && !z
	case CondLS:
		return carry || z
	case CondCC:
		return !carry
	case CondCS:
		return carry
	case CondNE:
		return !z
	case CondEQ:
		return z
	case CondVC:
		return !v
	case CondVS:
		return v
	case CondPL:
		return !n
	case CondMI:
		return n
	case CondGE:
		return n == v
	case CondLT:
		return n != v
	case CondGT:
		return !z && n == v
	}

	// CondLE
	return z || n != v
}
