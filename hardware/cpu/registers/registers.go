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

// File is the complete register file of the CPU. The zero value is a valid
// register file in user mode with all registers cleared. Use Reset() for the
// documented power-on state.
type File struct {
	PC ProgramCounter
	SR StatusRegister

	d [8]uint32
	a [7]uint32

	// banked stack pointers. which one is visible as A7 is decided by the
	// supervisor bit of the status register
	usp uint32
	ssp uint32
}

// Reset the register file to the fixed initial state: all registers zero,
// supervisor mode, interrupts masked at level 7 and tracing disabled.
func (f *File) Reset() {
	*f = File{}
	f.SR.load(0x2700)
}

func (f File) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s=%s %s=%#04x [%s]\n", f.PC.Label(), f.PC, f.SR.Label(), f.SR.Value(), f.SR))
	for i := 0; i < 8; i++ {
		s.WriteString(fmt.Sprintf("D%d=%08x ", i, f.d[i]))
	}
	s.WriteString("\n")
	for i := 0; i < 8; i++ {
		s.WriteString(fmt.Sprintf("A%d=%08x ", i, f.A(i)))
	}
	s.WriteString(fmt.Sprintf("\nUSP=%08x SSP=%08x", f.usp, f.ssp))
	return s.String()
}

// D returns the value of data register n. Only the lower three bits of n are
// used.
func (f *File) D(n int) uint32 {
	return f.d[n&0x07]
}

// SetD sets the value of data register n. Only the lower three bits of n are
// used.
func (f *File) SetD(n int, v uint32) {
	f.d[n&0x07] = v
}

// SetDSized replaces the part of data register n affected by an operation of
// the specified size. The remaining bits of the register are preserved.
func (f *File) SetDSized(n int, v uint32, sz Size) {
	m := sz.Mask()
	f.d[n&0x07] = f.d[n&0x07]&^m | v&m
}

// A returns the value of address register n. A7 is the live stack pointer.
func (f *File) A(n int) uint32 {
	n &= 0x07
	if n == 7 {
		return f.SP()
	}
	return f.a[n]
}

// SetA sets the value of address register n. Setting A7 sets the live stack
// pointer.
func (f *File) SetA(n int, v uint32) {
	n &= 0x07
	if n == 7 {
		f.SetSP(v)
		return
	}
	f.a[n] = v
}

// SP returns the live stack pointer.
func (f *File) SP() uint32 {
	if f.SR.supervisor {
		return f.ssp
	}
	return f.usp
}

// SetSP sets the live stack pointer.
func (f *File) SetSP(v uint32) {
	if f.SR.supervisor {
		f.ssp = v
	} else {
		f.usp = v
	}
}

// USP returns the user stack pointer regardless of the current mode.
func (f *File) USP() uint32 {
	return f.usp
}

// SetUSP sets the user stack pointer regardless of the current mode.
func (f *File) SetUSP(v uint32) {
	f.usp = v
}

// SSP returns the supervisor stack pointer regardless of the current mode.
func (f *File) SSP() uint32 {
	return f.ssp
}

// SetSSP sets the supervisor stack pointer regardless of the current mode.
func (f *File) SetSSP(v uint32) {
	f.ssp = v
}

// LoadSR loads the status register from the architectural word. If the
// supervisor bit changes then the live stack pointer changes with it.
func (f *File) LoadSR(v uint16) {
	f.SR.load(v)
}

// SwitchMode selects supervisor or user mode and with it the live stack
// pointer. The stack pointer of the outgoing mode is kept in its bank.
//
// Returns the status register word as it was before the switch. Exception
// processing pushes this value onto the new stack.
func (f *File) SwitchMode(supervisor bool) uint16 {
	old := f.SR.Value()
	f.SR.supervisor = supervisor
	return old
}
