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

package cpu_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jetsetilly/cyclecore/hardware/cpu"
	"github.com/jetsetilly/cyclecore/hardware/cpu/execution"
	"github.com/jetsetilly/cyclecore/hardware/memory/cpubus"
	"github.com/jetsetilly/cyclecore/test"
)

// memory layout used by the tests
const (
	stackTop    = 0x8000
	origin      = 0x1000
	handlerBase = 0x3000
	dataArea    = 0x4000
	deviceAddr  = 0x5000

	// addresses at or above hostFailure cause the mock memory to fail in a
	// way that is not a bus error
	hostFailure = 0xf00000
)

var errMockFailure = errors.New("mock memory failure")

type mockMem struct {
	internal []uint8

	// called after every write
	onWrite func(address uint32)

	// returned by Acknowledge()
	vector uint8
	acked  []uint8

	resets int
}

func newMockMem() *mockMem {
	mem := &mockMem{
		internal: make([]uint8, 0x10000),
		vector:   cpubus.AutoVector,
	}

	// reset vectors
	mem.putLong(0, stackTop)
	mem.putLong(4, origin)

	// every other vector has its own handler. handler code is all NOPs
	for v := uint32(2); v < 256; v++ {
		mem.putLong(v*4, handler(uint8(v)))
	}
	for a := uint32(handlerBase); a < dataArea; a += 2 {
		mem.putWord(a, 0x4e71)
	}

	return mem
}

// handler returns the address of the handler for the vector
func handler(vector uint8) uint32 {
	return handlerBase + uint32(vector)*4
}

func (mem *mockMem) check(address uint32) error {
	if address >= hostFailure {
		return errMockFailure
	}
	if int(address) >= len(mem.internal) {
		return fmt.Errorf("%w: %#06x", cpubus.ErrBusError, address)
	}
	return nil
}

func (mem *mockMem) Read8(address uint32) (uint8, error) {
	if err := mem.check(address); err != nil {
		return 0, err
	}
	return mem.internal[address], nil
}

func (mem *mockMem) Read16(address uint32) (uint16, error) {
	if err := mem.check(address + 1); err != nil {
		return 0, err
	}
	return uint16(mem.internal[address])<<8 | uint16(mem.internal[address+1]), nil
}

func (mem *mockMem) Read32(address uint32) (uint32, error) {
	hi, err := mem.Read16(address)
	if err != nil {
		return 0, err
	}
	lo, err := mem.Read16(address + 2)
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

func (mem *mockMem) Write8(address uint32, data uint8) error {
	if err := mem.check(address); err != nil {
		return err
	}
	mem.internal[address] = data
	if mem.onWrite != nil {
		mem.onWrite(address)
	}
	return nil
}

func (mem *mockMem) Write16(address uint32, data uint16) error {
	if err := mem.check(address + 1); err != nil {
		return err
	}
	mem.putWord(address, data)
	if mem.onWrite != nil {
		mem.onWrite(address)
	}
	return nil
}

func (mem *mockMem) Write32(address uint32, data uint32) error {
	if err := mem.check(address + 3); err != nil {
		return err
	}
	mem.putLong(address, data)
	if mem.onWrite != nil {
		mem.onWrite(address)
	}
	return nil
}

func (mem *mockMem) Peek8(address uint32) (uint8, error) {
	return mem.Read8(address)
}

func (mem *mockMem) Peek16(address uint32) (uint16, error) {
	return mem.Read16(address)
}

func (mem *mockMem) Peek32(address uint32) (uint32, error) {
	return mem.Read32(address)
}

func (mem *mockMem) Acknowledge(level uint8) uint8 {
	mem.acked = append(mem.acked, level)
	return mem.vector
}

func (mem *mockMem) ResetDevices() {
	mem.resets++
}

func (mem *mockMem) putWord(address uint32, v uint16) {
	mem.internal[address] = uint8(v >> 8)
	mem.internal[address+1] = uint8(v)
}

func (mem *mockMem) putLong(address uint32, v uint32) {
	mem.putWord(address, uint16(v>>16))
	mem.putWord(address+2, uint16(v))
}

func (mem *mockMem) word(address uint32) uint16 {
	v, _ := mem.Read16(address)
	return v
}

func (mem *mockMem) long(address uint32) uint32 {
	v, _ := mem.Read32(address)
	return v
}

// putInstructions places instruction words at the origin and returns the
// address following the last word
func (mem *mockMem) putInstructions(origin uint32, words ...uint16) uint32 {
	for i, w := range words {
		mem.putWord(origin+uint32(i)*2, w)
	}
	return origin + uint32(len(words))*2
}

// newCPU creates a CPU for the memory and resets it
func newCPU(t *testing.T, mem *mockMem) *cpu.CPU {
	t.Helper()
	mc, err := cpu.NewCPU(mem, nil)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, mc.Reset())
	return mc
}

// step the CPU once and check the validity of the result
func step(t *testing.T, mc *cpu.CPU) execution.Result {
	t.Helper()
	_, err := mc.Step()
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, mc.LastResult.IsValid())
	return mc.LastResult
}
