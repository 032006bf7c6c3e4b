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
	"errors"
	"fmt"

	"github.com/jetsetilly/cyclecore/hardware/cpu/exceptions"
	"github.com/jetsetilly/cyclecore/hardware/cpu/execution"
	"github.com/jetsetilly/cyclecore/hardware/cpu/instructions"
	"github.com/jetsetilly/cyclecore/hardware/cpu/prefetch"
	"github.com/jetsetilly/cyclecore/hardware/cpu/registers"
	"github.com/jetsetilly/cyclecore/hardware/memory/cpubus"
	"github.com/jetsetilly/cyclecore/logger"
)

// RunState of the CPU.
type RunState int

// List of run states.
const (
	// the CPU has not yet been reset. the first call to Step() will perform
	// the reset sequence
	Reset RunState = iota

	Running

	// the STOP instruction has been executed and the CPU is waiting for an
	// interrupt
	Stopped

	// the HALT line is asserted
	Halted

	// a bus or address error occurred during an exception entry sequence.
	// only Reset() will restart the CPU
	DoubleFault

	numRunStates
)

func (s RunState) String() string {
	switch s {
	case Reset:
		return "Reset"
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	case Halted:
		return "Halted"
	case DoubleFault:
		return "DoubleFault"
	}
	return "unknown run state"
}

// Number of cycles consumed by Step() while the CPU is halted or stopped.
const (
	HaltCycles = 4
	StopCycles = 4
)

// ClockTap is implemented by the CPU so that other parts of the emulated
// machine can derive their timing from the CPU clock.
type ClockTap interface {
	Cycles() uint64
}

// CPU implements a 68000 class microprocessor.
type CPU struct {
	Reg registers.File

	// LastResult is the result of the most recent call to Step() or Reset()
	LastResult execution.Result

	mem      cpubus.Memory
	ack      cpubus.Acknowledger
	resetter cpubus.Resetter

	table *instructions.Table
	queue prefetch.Queue
	ctrl  exceptions.Controller

	clock uint64
	state RunState

	// state of the external HALT line. the run state is Halted while the line
	// is asserted
	haltLine bool

	// most recent opcode. used for the group 0 stack frame
	ir uint16

	// cycles consumed by the step currently being executed
	stepCycles int

	// a trace exception could not be taken at the end of the previous
	// instruction and will be taken at the start of the next step
	tracePending bool

	// the memory system is completing a write on behalf of the CPU
	inWrite bool

	// an instruction is being executed and whether it began in supervisor
	// mode
	executing  bool
	supervisor bool

	perm logger.Permission
}

// Sentinel errors returned by the CPU.
var (
	ErrSnapshotVersion   = errors.New("cpu: unrecognised snapshot version")
	ErrSnapshotTruncated = errors.New("cpu: snapshot truncated")
	ErrSnapshotFormat    = errors.New("cpu: not a cpu snapshot")
)

type noLogging struct{}

func (noLogging) AllowLogging() bool {
	return false
}

// NewCPU is the preferred method of initialisation for the CPU structure. The
// permission argument controls whether exceptions are logged. It can be nil,
// in which case exceptions are not logged. Double faults and changes to the
// HALT line are always logged.
//
// An error is returned if the instruction table is malformed. The CPU cannot
// be used in that case.
func NewCPU(mem cpubus.Memory, perm logger.Permission) (*CPU, error) {
	tbl, err := instructions.GetTable()
	if err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}

	if perm == nil {
		perm = noLogging{}
	}

	c := &CPU{
		mem:   mem,
		table: tbl,
		perm:  perm,
	}

	c.ack, _ = mem.(cpubus.Acknowledger)
	c.resetter, _ = mem.(cpubus.Resetter)
	c.Reg.Reset()

	return c, nil
}

func (c *CPU) String() string {
	return fmt.Sprintf("%s\n%s %s", c.Reg, c.RunState(), c.ctrl)
}

// Cycles returns the number of cycles consumed since the CPU was created. The
// value is not affected by Reset().
func (c *CPU) Cycles() uint64 {
	return c.clock
}

// RunState returns the current run state of the CPU.
func (c *CPU) RunState() RunState {
	if c.haltLine && c.state != DoubleFault {
		return Halted
	}
	return c.state
}

// ExceptionState returns the state of the exception controller.
func (c *CPU) ExceptionState() exceptions.State {
	return c.ctrl.State()
}

// PendingInterrupts returns the bitmask of interrupt levels waiting to be
// serviced. Bit n is set if level n is pending.
func (c *CPU) PendingInterrupts() uint8 {
	return c.ctrl.Pending()
}

// Prefetch returns the words currently in the prefetch queue.
func (c *CPU) Prefetch() []uint16 {
	return c.queue.Contents()
}

// StaleHits returns the number of writes that have landed on a word in the
// prefetch queue. The stale word is always executed.
func (c *CPU) StaleHits() int {
	return c.queue.StaleHits()
}

// LoadPC sets the program counter and refills the prefetch queue from the
// new address. No cycles are consumed and the memory system is accessed with
// the Peek functions. Intended for debuggers and test harnesses.
func (c *CPU) LoadPC(address uint32) {
	c.Reg.PC.Load(address & AddressMask)
	c.prime()
	if c.state == Reset {
		c.state = Running
	}
}

// RaiseInterrupt requests an interrupt at the level. The request is serviced
// at the start of a future step, when the level is above the interrupt
// priority mask. The request stays pending until it is serviced or lowered.
func (c *CPU) RaiseInterrupt(level uint8) {
	c.ctrl.Raise(level)
}

// LowerInterrupt withdraws a pending interrupt request.
func (c *CPU) LowerInterrupt(level uint8) {
	c.ctrl.Lower(level)
}

// RaiseTrap requests a synchronous exception with the vector. It is serviced
// at the end of the current instruction. If called while the CPU is writing to
// memory on behalf of an instruction executing in supervisor mode, the trap is
// serviced at the end of the following instruction.
func (c *CPU) RaiseTrap(vector uint8) {
	deferred := c.inWrite && c.executing && c.supervisor
	if !c.ctrl.RequestTrap(vector, deferred) {
		logger.Logf(c.perm, "CPU", "trap request for vector %d dropped", vector)
	}
}

// SetHalt sets the state of the HALT line. The CPU does nothing while the
// line is asserted except to consume cycles. No state is lost when the line is
// released.
func (c *CPU) SetHalt(halt bool) {
	if c.haltLine == halt {
		return
	}
	c.haltLine = halt
	if halt {
		logger.Log(logger.Allow, "CPU", "halt asserted")
	} else {
		logger.Log(logger.Allow, "CPU", "halt released")
	}
}

// Reset the CPU. Registers are put into their initial state, the supervisor
// stack pointer and program counter are read from the first two longwords of
// memory and the prefetch queue is filled from the new program counter.
//
// The only error returned is a failure of the memory system. A bus error or
// address error during the reset sequence leaves the CPU in the DoubleFault
// state.
func (c *CPU) Reset() error {
	c.begin()
	err := c.reset()
	c.finish()
	return err
}

func (c *CPU) reset() error {
	c.ctrl.Clear()
	c.tracePending = false
	c.ir = 0
	c.Reg.Reset()
	c.queue.Invalidate(0)
	c.state = Running

	d := exceptions.Describe(exceptions.ResetSSP)
	c.LastResult.Exception = &d
	c.ctrl.BeginService()
	defer c.ctrl.EndService()

	err := func() error {
		ssp, err := c.read32(exceptions.Address(exceptions.ResetSSP))
		if err != nil {
			return err
		}
		c.Reg.SetSSP(ssp)

		pc, err := c.read32(exceptions.Address(exceptions.ResetPC))
		if err != nil {
			return err
		}
		return c.jump(pc)
	}()

	if err != nil {
		if f, ok := asFault(err); ok {
			c.doubleFault(f)
			return nil
		}
		return err
	}

	c.stepCycles = d.Cycles
	c.LastResult.EntryCycles = d.Cycles

	return nil
}

// begin a new step
func (c *CPU) begin() {
	c.LastResult.Reset()
	c.LastResult.Address = c.Reg.PC.Address()
	c.stepCycles = 0
}

// finish the step
func (c *CPU) finish() int {
	c.LastResult.Cycles = c.stepCycles
	c.LastResult.Final = true
	c.clock += uint64(c.stepCycles)
	return c.stepCycles
}

// Step executes exactly one instruction or one exception entry sequence.
// Returns the number of cycles consumed.
//
// The returned error indicates a failure of the emulation and never a
// condition in the emulated machine.
func (c *CPU) Step() (int, error) {
	c.begin()
	err := c.step()
	return c.finish(), err
}

func (c *CPU) step() error {
	switch c.RunState() {
	case Reset:
		return c.reset()
	case Halted, DoubleFault:
		c.cycle(HaltCycles)
		return nil
	}

	// trace exceptions that could not be taken immediately after the
	// instruction that caused them
	if c.tracePending {
		c.tracePending = false
		return c.exception(exceptions.Trace, c.Reg.PC.Address())
	}

	// interrupt check point
	if level, ok := c.ctrl.Highest(c.Reg.SR.Mask); ok {
		return c.interrupt(level)
	}

	if c.state == Stopped {
		c.cycle(StopCycles)
		return nil
	}

	return c.execute()
}
