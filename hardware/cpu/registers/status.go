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

import (
	"fmt"
	"strings"
)

// Bit positions of the fields in the status register word.
const (
	srTrace      = 0x8000
	srSupervisor = 0x2000
	srMask       = 0x0700
	srMaskShift  = 8
	srExtend     = 0x0010
	srNegative   = 0x0008
	srZero       = 0x0004
	srOverflow   = 0x0002
	srCarry      = 0x0001

	// the bits of the status register that can be set. the remaining bits
	// always read as zero
	srImplemented = srTrace | srSupervisor | srMask | srExtend | srNegative | srZero | srOverflow | srCarry
)

// StatusRegister is the special purpose register that stores the flags of the
// CPU along with the interrupt priority mask and the mode bits.
//
// The supervisor bit is not directly accessible because changing it must be
// accompanied by a change of the live stack pointer. Use the functions in the
// File type to change mode.
type StatusRegister struct {
	Trace    bool
	Extend   bool
	Overflow bool
	Carry    bool

	// interrupt priority mask. values 0 to 7
	Mask uint8

	supervisor bool

	// the negative and zero flags are derived from the most recent result
	// when lazy is true. otherwise the negative and zero fields are used
	lazy     bool
	result   uint32
	size     Size
	negative bool
	zero     bool
}

// Label returns the canonical name for the status register.
func (sr StatusRegister) Label() string {
	return "SR"
}

func (sr StatusRegister) String() string {
	s := strings.Builder{}

	flag := func(set bool, r rune) {
		if set {
			s.WriteRune(r)
		} else {
			s.WriteRune(r + ('a' - 'A'))
		}
	}

	flag(sr.Trace, 'T')
	flag(sr.supervisor, 'S')
	s.WriteString(fmt.Sprintf("%d", sr.Mask&0x07))
	flag(sr.Extend, 'X')
	flag(sr.Negative(), 'N')
	flag(sr.Zero(), 'Z')
	flag(sr.Overflow, 'V')
	flag(sr.Carry, 'C')

	return s.String()
}

// Supervisor returns true if the CPU is in supervisor mode.
func (sr StatusRegister) Supervisor() bool {
	return sr.supervisor
}

// Negative returns the state of the negative flag.
func (sr StatusRegister) Negative() bool {
	if sr.lazy {
		return sr.result&sr.size.MSB() != 0
	}
	return sr.negative
}

// Zero returns the state of the zero flag.
func (sr StatusRegister) Zero() bool {
	if sr.lazy {
		return sr.result&sr.size.Mask() == 0
	}
	return sr.zero
}

// SetNZ sets the negative and zero flags according to the result of an
// operation of the specified size.
func (sr *StatusRegister) SetNZ(result uint32, sz Size) {
	sr.lazy = true
	sr.result = result
	sr.size = sz
}

// SetNegative sets the negative flag without affecting the zero flag.
func (sr *StatusRegister) SetNegative(v bool) {
	sr.resolve()
	sr.negative = v
}

// SetZero sets the zero flag without affecting the negative flag.
func (sr *StatusRegister) SetZero(v bool) {
	sr.resolve()
	sr.zero = v
}

// resolve the lazy flags into the negative and zero fields
func (sr *StatusRegister) resolve() {
	if sr.lazy {
		sr.negative = sr.Negative()
		sr.zero = sr.Zero()
		sr.lazy = false
	}
}

// CCR returns the condition code part of the status register.
func (sr StatusRegister) CCR() uint8 {
	return uint8(sr.Value() & 0x1f)
}

// LoadCCR sets the condition codes from the lower five bits of v. The upper
// byte of the status register is not affected.
func (sr *StatusRegister) LoadCCR(v uint8) {
	sr.lazy = false
	sr.Extend = v&srExtend == srExtend
	sr.negative = v&srNegative == srNegative
	sr.zero = v&srZero == srZero
	sr.Overflow = v&srOverflow == srOverflow
	sr.Carry = v&srCarry == srCarry
}

// Value converts the StatusRegister into the architectural status register
// word. This is the value that is pushed onto the stack during exception
// processing.
func (sr StatusRegister) Value() uint16 {
	var v uint16

	if sr.Trace {
		v |= srTrace
	}
	if sr.supervisor {
		v |= srSupervisor
	}
	v |= uint16(sr.Mask&0x07) << srMaskShift
	if sr.Extend {
		v |= srExtend
	}
	if sr.Negative() {
		v |= srNegative
	}
	if sr.Zero() {
		v |= srZero
	}
	if sr.Overflow {
		v |= srOverflow
	}
	if sr.Carry {
		v |= srCarry
	}

	return v
}

// load the status register from the architectural word. unexported because
// the supervisor bit is changed without swapping the stack pointer.
func (sr *StatusRegister) load(v uint16) {
	v &= srImplemented
	sr.Trace = v&srTrace == srTrace
	sr.supervisor = v&srSupervisor == srSupervisor
	sr.Mask = uint8((v & srMask) >> srMaskShift)
	sr.LoadCCR(uint8(v))
}
