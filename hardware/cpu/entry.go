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

package cpu

import (
	"github.com/jetsetilly/cyclecore/hardware/cpu/exceptions"
	"github.com/jetsetilly/cyclecore/hardware/memory/cpubus"
	"github.com/jetsetilly/cyclecore/logger"
)

// exception enters the exception with the vector. the pc argument is the
// address pushed onto the stack as the return address
func (c *CPU) exception(vector uint8, pc uint32) error {
	return c.enter(exceptions.Describe(vector), pc, nil)
}

// interrupt enters the interrupt at the level
func (c *CPU) interrupt(level uint8) error {
	c.ctrl.Acknowledge(level)

	// the acknowledge cycle is included in the documented cost of the
	// exception
	vector := uint8(cpubus.AutoVector)
	if c.ack != nil {
		vector = c.ack.Acknowledge(level)
	}

	switch vector {
	case cpubus.AutoVector:
		vector = exceptions.Autovector(level)
	case 0:
		// nothing responded with a vector
		vector = exceptions.Spurious
	}

	return c.enter(exceptions.Interrupt(level, vector), c.Reg.PC.Address(), nil)
}

// groupZero enters the bus error or address error exception for the fault
func (c *CPU) groupZero(f *fault) error {
	return c.enter(exceptions.Describe(f.vector), c.Reg.PC.Address(), f)
}

// enter is the exception entry sequence common to every exception other than
// reset. the step is charged the documented cost of the exception, whatever
// bus activity actually took place
func (c *CPU) enter(d exceptions.Descriptor, pc uint32, f *fault) error {
	// a fault during an entry sequence is a double fault
	if c.ctrl.State() == exceptions.Servicing {
		if f != nil {
			c.doubleFault(f)
		}
		return nil
	}

	c.ctrl.BeginService()
	defer c.ctrl.EndService()

	start := c.stepCycles
	c.LastResult.Exception = &d

	if c.perm.AllowLogging() {
		logger.Logf(c.perm, "CPU", "%s at %#06x", d, pc)
	}

	err := c.frame(d, pc, f)
	if err != nil {
		if f, ok := asFault(err); ok {
			c.doubleFault(f)
			return nil
		}
		return err
	}

	c.state = Running
	c.stepCycles = start + d.Cycles
	c.LastResult.EntryCycles += d.Cycles

	return nil
}

// frame builds the stack frame and jumps to the handler
func (c *CPU) frame(d exceptions.Descriptor, pc uint32, f *fault) error {
	supervisor := c.Reg.SR.Supervisor()
	sr := c.Reg.SwitchMode(true)
	c.Reg.SR.Trace = false
	if d.Kind == exceptions.KindInterrupt || d.Kind == exceptions.KindSpurious || d.Kind == exceptions.KindUninitialised {
		c.Reg.SR.Mask = d.Level
	}

	if err := c.push32(pc); err != nil {
		return err
	}
	if err := c.push16(sr); err != nil {
		return err
	}

	if f != nil {
		if err := c.push16(c.ir); err != nil {
			return err
		}
		if err := c.push32(f.address); err != nil {
			return err
		}
		if err := c.push16(f.status(supervisor)); err != nil {
			return err
		}
	}

	handler, err := c.read32(exceptions.Address(d.Vector))
	if err != nil {
		return err
	}

	if handler == 0 {
		handler, err = c.read32(exceptions.Address(exceptions.Uninitialised))
		if err != nil {
			return err
		}
		if handler == 0 {
			return &fault{vector: exceptions.Uninitialised, address: exceptions.Address(exceptions.Uninitialised), read: true}
		}
	}

	return c.jump(handler)
}

func (c *CPU) doubleFault(f *fault) {
	c.state = DoubleFault
	c.LastResult.DoubleFault = true
	logger.Logf(logger.Allow, "CPU", "double fault: %v", f)
}
