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
	"github.com/jetsetilly/cyclecore/hardware/memory/cpubus"
)

// AddressMask is applied to every address before it is placed on the bus.
const AddressMask = 0x00ffffff

// fault is a bus error or an address error in the emulated machine. it is
// never returned from Step()
type fault struct {
	vector  uint8
	address uint32
	read    bool

	// access was an instruction fetch
	program bool
}

func (f *fault) Error() string {
	rw := "write"
	if f.read {
		rw = "read"
	}
	return fmt.Sprintf("%s %s at %#06x", exceptions.Describe(f.vector).Kind, rw, f.address)
}

// status word for the group 0 stack frame
func (f *fault) status(supervisor bool) uint16 {
	var w uint16
	if f.read {
		w |= 0x10
	}
	if !f.program {
		w |= 0x08
	}

	// function code
	fc := uint16(1)
	if f.program {
		fc = 2
	}
	if supervisor {
		fc += 4
	}
	return w | fc
}

func asFault(err error) (*fault, bool) {
	var f *fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// translate an error from the memory system into a fault or a host error
func (c *CPU) busError(err error, address uint32, read bool, program bool) error {
	if errors.Is(err, cpubus.ErrBusError) {
		return &fault{vector: exceptions.BusError, address: address, read: read, program: program}
	}
	rw := "write"
	if read {
		rw = "read"
	}
	return fmt.Errorf("cpu: %s at %#06x: %w", rw, address, err)
}

func (c *CPU) alignment(address uint32, read bool, program bool) error {
	if address&0x01 == 0x01 {
		return &fault{vector: exceptions.AddressError, address: address, read: read, program: program}
	}
	return nil
}

// cycle adds to the cycles consumed by the current step
func (c *CPU) cycle(n int) {
	c.stepCycles += n
}

// bus cycles are counted for the attempt, whether or not it succeeds
func (c *CPU) busTransfer(n int) {
	c.stepCycles += n * cpubus.BusCycles
}

// fetch is the prefetch.Fetcher used during normal execution
func (c *CPU) fetch(address uint32) (uint16, error) {
	address &= AddressMask
	if err := c.alignment(address, true, true); err != nil {
		return 0, err
	}
	c.busTransfer(1)
	v, err := c.mem.Read16(address)
	if err != nil {
		return 0, c.busError(err, address, true, true)
	}
	return v, nil
}

// peekFetch is the prefetch.Fetcher used when the queue must be filled
// without side effects or cost
func (c *CPU) peekFetch(address uint32) (uint16, error) {
	address &= AddressMask
	if address&0x01 == 0x01 {
		return 0, fmt.Errorf("cpu: peek at odd address %#06x", address)
	}
	return c.mem.Peek16(address)
}

func (c *CPU) read8(address uint32) (uint8, error) {
	address &= AddressMask
	c.busTransfer(1)
	v, err := c.mem.Read8(address)
	if err != nil {
		return 0, c.busError(err, address, true, false)
	}
	return v, nil
}

func (c *CPU) read16(address uint32) (uint16, error) {
	address &= AddressMask
	if err := c.alignment(address, true, false); err != nil {
		return 0, err
	}
	c.busTransfer(1)
	v, err := c.mem.Read16(address)
	if err != nil {
		return 0, c.busError(err, address, true, false)
	}
	return v, nil
}

func (c *CPU) read32(address uint32) (uint32, error) {
	address &= AddressMask
	if err := c.alignment(address, true, false); err != nil {
		return 0, err
	}
	c.busTransfer(2)
	v, err := c.mem.Read32(address)
	if err != nil {
		return 0, c.busError(err, address, true, false)
	}
	return v, nil
}

// every write goes through here so that writes to the words held in the
// prefetch queue are noted and so that the trap deferral rule can be applied to
// any trap requested by the memory system during the write
func (c *CPU) write(address uint32, bytes int, f func(address uint32) error) error {
	address &= AddressMask
	if bytes > 1 {
		if err := c.alignment(address, false, false); err != nil {
			return err
		}
	}

	c.busTransfer((bytes + 1) / 2)

	c.inWrite = true
	err := f(address)
	c.inWrite = false
	if err != nil {
		return c.busError(err, address, false, false)
	}

	if c.queue.Written(address, bytes) {
		c.LastResult.StaleFetches++
	}

	return nil
}

func (c *CPU) write8(address uint32, v uint8) error {
	return c.write(address, 1, func(a uint32) error { return c.mem.Write8(a, v) })
}

func (c *CPU) write16(address uint32, v uint16) error {
	return c.write(address, 2, func(a uint32) error { return c.mem.Write16(a, v) })
}

func (c *CPU) write32(address uint32, v uint32) error {
	return c.write(address, 4, func(a uint32) error { return c.mem.Write32(a, v) })
}

func (c *CPU) push16(v uint16) error {
	sp := c.Reg.SP() - 2
	if err := c.write16(sp, v); err != nil {
		return err
	}
	c.Reg.SetSP(sp)
	return nil
}

func (c *CPU) push32(v uint32) error {
	sp := c.Reg.SP() - 4
	if err := c.write32(sp, v); err != nil {
		return err
	}
	c.Reg.SetSP(sp)
	return nil
}

func (c *CPU) pop16() (uint16, error) {
	sp := c.Reg.SP()
	v, err := c.read16(sp)
	if err != nil {
		return 0, err
	}
	c.Reg.SetSP(sp + 2)
	return v, nil
}

func (c *CPU) pop32() (uint32, error) {
	sp := c.Reg.SP()
	v, err := c.read32(sp)
	if err != nil {
		return 0, err
	}
	c.Reg.SetSP(sp + 4)
	return v, nil
}

// nextWord takes the next instruction word from the prefetch queue
func (c *CPU) nextWord() (uint16, error) {
	w, err := c.queue.Next(c.fetch)
	if err != nil {
		return 0, err
	}
	c.Reg.PC.Load(c.queue.Address())
	c.LastResult.Words++
	return w, nil
}

func (c *CPU) nextLong() (uint32, error) {
	hi, err := c.nextWord()
	if err != nil {
		return 0, err
	}
	lo, err := c.nextWord()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// jump to a new address. the prefetch queue is invalidated and refilled
func (c *CPU) jump(address uint32) error {
	address &= AddressMask
	c.Reg.PC.Load(address)
	c.queue.Invalidate(address)
	return c.queue.Fill(c.fetch)
}

// prime the prefetch queue at the current PC without side effects. if the
// queue cannot be filled in this way it is left empty and the words will be
// fetched normally when they are needed
func (c *CPU) prime() {
	c.queue.Invalidate(c.Reg.PC.Address())
	if err := c.queue.Fill(c.peekFetch); err != nil {
		c.queue.Invalidate(c.Reg.PC.Address())
	}
}
