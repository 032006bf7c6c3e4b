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

// Package timer implements an interval timer in the style of the timers found
// in the CIA chips of the period. A 16 bit counter counts down once per CPU
// cycle and is reloaded from a latch when it underflows. An underflow sets a
// flag in the interrupt control register and, if enabled, raises an
// interrupt on the CPU.
package timer

import (
	"fmt"

	"github.com/jetsetilly/cyclecore/hardware/memory/addresses"
)

// Interrupter is the connection from the timer to the CPU.
type Interrupter interface {
	RaiseInterrupt(level uint8)
	LowerInterrupt(level uint8)
}

// Bits in the control register.
const (
	CtrlStart   = uint8(0x01)
	CtrlOneShot = uint8(0x08)

	// strobe. causes the latch to be copied into the counter. it is never
	// stored in the control register
	CtrlLoad = uint8(0x10)
)

// Bits in the interrupt control register.
const (
	ICRUnderflow = uint8(0x01)

	// when reading, set if any enabled flag is set. when writing, indicates
	// whether the other bits should be set or cleared in the mask
	ICRSetClear = uint8(0x80)
)

// value of the counter and latch after reset
const resetValue = uint16(0xffff)

// Timer is an interval timer that can be mapped into the device area of
// memory.
type Timer struct {
	irq Interrupter

	// the interrupt level raised on underflow
	Level uint8

	// Counter is the current value of the timer
	Counter uint16

	// Latch is the value loaded into Counter on underflow and on a force load
	Latch uint16

	Ctrl uint8

	// underflow flags and the mask of enabled flags
	Flags uint8
	Mask  uint8

	// whether the interrupt line is currently being held by the timer
	Asserted bool

	// number of underflows since reset
	Underflows int
}

// NewTimer is the preferred method of initialisation of the Timer type
func NewTimer(irq Interrupter, level uint8) *Timer {
	tmr := &Timer{
		irq:   irq,
		Level: level,
	}
	tmr.Reset()
	return tmr
}

func (tmr *Timer) String() string {
	return fmt.Sprintf("TA=%#04x latch=%#04x cra=%#02x icr=%#02x mask=%#02x",
		tmr.Counter,
		tmr.Latch,
		tmr.Ctrl,
		tmr.Flags,
		tmr.Mask,
	)
}

// Snapshot creates a copy of the Timer in its current state.
func (tmr *Timer) Snapshot() *Timer {
	n := *tmr
	return &n
}

// Plumb a new Interrupter into the Timer.
func (tmr *Timer) Plumb(irq Interrupter) {
	tmr.irq = irq
}

// Label implements the memory.Device interface.
func (tmr *Timer) Label() string {
	return "timer"
}

// Reset implements the memory.DeviceResetter interface.
func (tmr *Timer) Reset() {
	tmr.Counter = resetValue
	tmr.Latch = resetValue
	tmr.Ctrl = 0
	tmr.Flags = 0
	tmr.Mask = 0
	tmr.Underflows = 0
	tmr.lower()
}

// Running returns true if the counter is counting.
func (tmr *Timer) Running() bool {
	return tmr.Ctrl&CtrlStart == CtrlStart
}

func (tmr *Timer) raise() {
	tmr.Asserted = true
	if tmr.irq != nil {
		tmr.irq.RaiseInterrupt(tmr.Level)
	}
}

func (tmr *Timer) lower() {
	if !tmr.Asserted {
		return
	}
	tmr.Asserted = false
	if tmr.irq != nil {
		tmr.irq.LowerInterrupt(tmr.Level)
	}
}

// Read implements the memory.Device interface. Reading the interrupt control
// register clears the flags and releases the interrupt line.
func (tmr *Timer) Read(offset uint32) uint8 {
	v := tmr.Peek(offset)
	if offset == addresses.TimerICR {
		tmr.Flags = 0
		tmr.lower()
	}
	return v
}

// Peek implements the memory.Device interface.
func (tmr *Timer) Peek(offset uint32) uint8 {
	switch offset {
	case addresses.TimerHi:
		return uint8(tmr.Counter >> 8)
	case addresses.TimerLo:
		return uint8(tmr.Counter)
	case addresses.TimerCtrl:
		return tmr.Ctrl
	case addresses.TimerICR:
		v := tmr.Flags
		if tmr.Flags&tmr.Mask != 0 {
			v |= ICRSetClear
		}
		return v
	}
	return 0
}

// Write implements the memory.Device interface.
func (tmr *Timer) Write(offset uint32, data uint8) {
	switch offset {
	case addresses.TimerHi:
		tmr.Latch = uint16(data)<<8 | tmr.Latch&0x00ff

		// a stopped timer loads the counter when the high byte is written
		if !tmr.Running() {
			tmr.Counter = tmr.Latch
		}
	case addresses.TimerLo:
		tmr.Latch = tmr.Latch&0xff00 | uint16(data)
	case addresses.TimerCtrl:
		if data&CtrlLoad == CtrlLoad {
			tmr.Counter = tmr.Latch
		}
		tmr.Ctrl = data &^ CtrlLoad

		// starting the timer with an enabled flag still set asserts the line
		// again. this happens during the write
		if tmr.Running() && tmr.Flags&tmr.Mask != 0 {
			tmr.raise()
		}
	case addresses.TimerICR:
		if data&ICRSetClear == ICRSetClear {
			tmr.Mask |= data &^ ICRSetClear
		} else {
			tmr.Mask &^= data
		}
		if tmr.Flags&tmr.Mask == 0 {
			tmr.lower()
		}
	}
}

// Step the timer forward by the number of CPU cycles.
func (tmr *Timer) Step(cycles int) {
	for ; cycles > 0 && tmr.Running(); cycles-- {
		if tmr.Counter > 0 {
			tmr.Counter--
			continue
		}

		tmr.Underflows++
		tmr.Counter = tmr.Latch
		tmr.Flags |= ICRUnderflow
		if tmr.Ctrl&CtrlOneShot == CtrlOneShot {
			tmr.Ctrl &^= CtrlStart
		}
		if tmr.Mask&ICRUnderflow == ICRUnderflow {
			tmr.raise()
		}
	}
}
