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

import (
	"fmt"
	"strings"
)

// State of the controller.
type State int

// List of controller states.
const (
	Idle State = iota
	Signaled
	Servicing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Signaled:
		return "Signaled"
	case Servicing:
		return "Servicing"
	}
	return "unknown state"
}

// NMI is the interrupt level that cannot be masked.
const NMI = 7

// MaxTraps is the number of trap requests that can be waiting at once.
const MaxTraps = 8

// TrapRequest is a trap waiting to be serviced.
type TrapRequest struct {
	Vector uint8

	// a deferred request must pass one more instruction boundary before it
	// can be serviced
	Deferred bool
}

// Controller records requests for interrupts and traps.
type Controller struct {
	// bit n set when interrupt level n is pending. bit 0 is never set
	pending uint8

	// trap requests in the order they were made
	traps    [MaxTraps]TrapRequest
	numTraps int

	servicing bool
}

func (c Controller) String() string {
	s := strings.Builder{}
	s.WriteString(c.State().String())
	if c.pending != 0 {
		s.WriteString(fmt.Sprintf(" irq=%07b", c.pending>>1))
	}
	for _, t := range c.traps[:c.numTraps] {
		if t.Deferred {
			s.WriteString(fmt.Sprintf(" deferred=%d", t.Vector))
		} else {
			s.WriteString(fmt.Sprintf(" trap=%d", t.Vector))
		}
	}
	return s.String()
}

// Clear all pending requests.
func (c *Controller) Clear() {
	*c = Controller{}
}

// State returns the current state of the controller.
func (c *Controller) State() State {
	if c.servicing {
		return Servicing
	}
	if c.pending != 0 || c.numTraps > 0 {
		return Signaled
	}
	return Idle
}

// Raise the interrupt level. Levels outside of the range 1 to 7 are ignored.
func (c *Controller) Raise(level uint8) {
	if level == 0 || level > 7 {
		return
	}
	c.pending |= 1 << level
}

// Lower the interrupt level, withdrawing a request that has not yet been
// serviced.
func (c *Controller) Lower(level uint8) {
	if level == 0 || level > 7 {
		return
	}
	c.pending &^= 1 << level
}

// Pending returns the bitmask of pending interrupt levels. Bit n is set if
// level n is pending.
func (c *Controller) Pending() uint8 {
	return c.pending
}

// SetPending replaces the bitmask of pending interrupt levels.
func (c *Controller) SetPending(mask uint8) {
	c.pending = mask &^ 0x01
}

// Highest returns the highest pending interrupt level that is not masked by
// the interrupt priority mask. Level 7 is never masked.
func (c *Controller) Highest(mask uint8) (uint8, bool) {
	for level := uint8(7); level > 0; level-- {
		if c.pending&(1<<level) == 0 {
			continue
		}
		if level > mask&0x07 || level == NMI {
			return level, true
		}
		return 0, false
	}
	return 0, false
}

// Acknowledge clears the pending level. Called when the CPU begins servicing
// the interrupt.
func (c *Controller) Acknowledge(level uint8) {
	c.Lower(level)
}

// RequestTrap records a synchronous trap. If deferred is true the trap will
// be serviced one instruction later than a trap requested normally. Returns
// false if MaxTraps requests are already waiting and the request was dropped.
func (c *Controller) RequestTrap(vector uint8, deferred bool) bool {
	if c.numTraps >= MaxTraps {
		return false
	}
	c.traps[c.numTraps] = TrapRequest{Vector: vector, Deferred: deferred}
	c.numTraps++
	return true
}

// Boundary should be called at the end of every instruction that completes
// normally. Returns the vector of the trap that should be serviced now, if
// any. Only one trap is serviced per boundary. The oldest request that is not
// deferred is chosen and the others wait for the next boundary. Deferred
// requests then age by one boundary.
func (c *Controller) Boundary() (uint8, bool) {
	var vector uint8
	var ok bool

	for i, t := range c.traps[:c.numTraps] {
		if !t.Deferred {
			vector, ok = t.Vector, true
			copy(c.traps[i:], c.traps[i+1:c.numTraps])
			c.numTraps--
			break
		}
	}

	c.Tick()

	return vector, ok
}

// Tick ages deferred trap requests by one boundary without servicing any
// request. Called at the end of an instruction that entered an exception of
// its own.
func (c *Controller) Tick() {
	for i := range c.traps[:c.numTraps] {
		c.traps[i].Deferred = false
	}
}

// Traps returns a copy of the waiting trap requests, oldest first.
func (c *Controller) Traps() []TrapRequest {
	if c.numTraps == 0 {
		return nil
	}
	t := make([]TrapRequest, c.numTraps)
	copy(t, c.traps[:c.numTraps])
	return t
}

// SetTraps replaces the waiting trap requests. Returns false, and changes
// nothing, if there are more than MaxTraps requests.
func (c *Controller) SetTraps(traps []TrapRequest) bool {
	if len(traps) > MaxTraps {
		return false
	}
	c.numTraps = copy(c.traps[:], traps)
	return true
}

// BeginService marks the start of an exception entry sequence.
func (c *Controller) BeginService() {
	c.servicing = true
}

// EndService marks the end of an exception entry sequence.
func (c *Controller) EndService() {
	c.servicing = false
}
