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

package exceptions

import "fmt"

// List of vector numbers.
const (
	ResetSSP           uint8 = 0
	ResetPC            uint8 = 1
	BusError           uint8 = 2
	AddressError       uint8 = 3
	IllegalInstruction uint8 = 4
	DivideByZero       uint8 = 5
	CHK                uint8 = 6
	TRAPV              uint8 = 7
	PrivilegeViolation uint8 = 8
	Trace              uint8 = 9
	LineA              uint8 = 10
	LineF              uint8 = 11
	Uninitialised      uint8 = 15
	Spurious           uint8 = 24
	AutovectorBase     uint8 = 24
	TrapBase           uint8 = 32
	UserBase           uint8 = 64
)

// Autovector returns the vector for an interrupt level when the interrupting
// device does not supply one.
func Autovector(level uint8) uint8 {
	return AutovectorBase + level&0x07
}

// Address returns the address of the vector in the vector table.
func Address(vector uint8) uint32 {
	return uint32(vector) * 4
}

// Kind of exception.
type Kind int

// List of exception kinds.
const (
	KindReset Kind = iota
	KindBusError
	KindAddressError
	KindIllegal
	KindDivideByZero
	KindCHK
	KindTRAPV
	KindPrivilege
	KindTrace
	KindLineA
	KindLineF
	KindUninitialised
	KindSpurious
	KindInterrupt
	KindTrap
	KindReserved
)

func (k Kind) String() string {
	switch k {
	case KindReset:
		return "reset"
	case KindBusError:
		return "bus error"
	case KindAddressError:
		return "address error"
	case KindIllegal:
		return "illegal instruction"
	case KindDivideByZero:
		return "divide by zero"
	case KindCHK:
		return "CHK"
	case KindTRAPV:
		return "TRAPV"
	case KindPrivilege:
		return "privilege violation"
	case KindTrace:
		return "trace"
	case KindLineA:
		return "line A"
	case KindLineF:
		return "line F"
	case KindUninitialised:
		return "uninitialised interrupt"
	case KindSpurious:
		return "spurious interrupt"
	case KindInterrupt:
		return "interrupt"
	case KindTrap:
		return "trap"
	case KindReserved:
		return "reserved"
	}
	return "unknown exception"
}

// Documented entry costs in cycles. The cost includes the stack writes, the
// vector fetch and the two words fetched to refill the prefetch queue. For
// interrupts it also includes the acknowledge cycle.
const (
	ResetCycles     = 40
	GroupZeroCycles = 50
	GroupOneCycles  = 34
	DivideCycles    = 38
	InterruptCycles = 44
)

// Descriptor describes an exception.
type Descriptor struct {
	Kind   Kind
	Vector uint8

	// interrupt level for interrupts. zero otherwise
	Level uint8

	// exception group. group 0 exceptions have the highest priority and
	// build the long stack frame
	Group int

	Cycles int
}

func (d Descriptor) String() string {
	if d.Kind == KindInterrupt || d.Kind == KindSpurious || d.Kind == KindUninitialised {
		if d.Level > 0 {
			return fmt.Sprintf("%s level %d (vector %d)", d.Kind, d.Level, d.Vector)
		}
	}
	if d.Kind == KindTrap {
		return fmt.Sprintf("trap #%d (vector %d)", d.Vector-TrapBase, d.Vector)
	}
	return fmt.Sprintf("%s (vector %d)", d.Kind, d.Vector)
}

// Describe returns the descriptor for the vector.
func Describe(vector uint8) Descriptor {
	d := Descriptor{Vector: vector, Group: 1, Cycles: GroupOneCycles}

	switch {
	case vector == ResetSSP || vector == ResetPC:
		d.Kind = KindReset
		d.Group = 0
		d.Cycles = ResetCycles
	case vector == BusError:
		d.Kind = KindBusError
		d.Group = 0
		d.Cycles = GroupZeroCycles
	case vector == AddressError:
		d.Kind = KindAddressError
		d.Group = 0
		d.Cycles = GroupZeroCycles
	case vector == IllegalInstruction:
		d.Kind = KindIllegal
	case vector == DivideByZero:
		d.Kind = KindDivideByZero
		d.Group = 2
		d.Cycles = DivideCycles
	case vector == CHK:
		d.Kind = KindCHK
		d.Group = 2
	case vector == TRAPV:
		d.Kind = KindTRAPV
		d.Group = 2
	case vector == PrivilegeViolation:
		d.Kind = KindPrivilege
	case vector == Trace:
		d.Kind = KindTrace
	case vector == LineA:
		d.Kind = KindLineA
	case vector == LineF:
		d.Kind = KindLineF
	case vector == Uninitialised:
		d.Kind = KindUninitialised
		d.Cycles = InterruptCycles
	case vector == Spurious:
		d.Kind = KindSpurious
		d.Cycles = InterruptCycles
	case vector > AutovectorBase && vector < TrapBase:
		d.Kind = KindInterrupt
		d.Level = vector - AutovectorBase
		d.Cycles = InterruptCycles
	case vector >= TrapBase && vector < TrapBase+16:
		d.Kind = KindTrap
		d.Group = 2
	case vector >= UserBase:
		d.Kind = KindInterrupt
		d.Cycles = InterruptCycles
	default:
		d.Kind = KindReserved
	}

	return d
}

// Interrupt returns the descriptor for an interrupt at the level using the
// vector supplied by the acknowledge cycle.
func Interrupt(level uint8, vector uint8) Descriptor {
	d := Describe(vector)
	d.Level = level
	if d.Kind != KindSpurious && d.Kind != KindUninitialised {
		d.Kind = KindInterrupt
	}
	d.Group = 1
	d.Cycles = InterruptCycles
	return d
}
