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

package memory

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/jetsetilly/cyclecore/hardware/memory/cpubus"
	"github.com/jetsetilly/cyclecore/hardware/memory/memorymap"
)

// Sentinel errors returned by the memory package.
var (
	ErrMapping = errors.New("memory: device mapping")
	ErrBank    = errors.New("memory: no such bank")
	ErrRAMSize = errors.New("memory: unsupported ram size")
)

// Memory is the memory system of the machine.
type Memory struct {
	RAM *RAM
	ROM *ROM

	devices []mapping

	// called during interrupt acknowledge. if nil every interrupt is
	// autovectored
	ack func(level uint8) uint8

	resets int
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The RAM size is in bytes.
func NewMemory(ramSize int, numBanks int) (*Memory, error) {
	if ramSize < 8 || ramSize > memorymap.MaxRAM || ramSize&1 == 1 {
		return nil, fmt.Errorf("%w: %d", ErrRAMSize, ramSize)
	}
	if numBanks < 1 {
		return nil, fmt.Errorf("%w: rom must have at least one bank", ErrBank)
	}

	return &Memory{
		RAM: newRAM(ramSize),
		ROM: newROM(numBanks),
	}, nil
}

func (mem *Memory) String() string {
	s := strings.Builder{}
	s.WriteString(memorymap.Summary())
	for _, d := range mem.Devices() {
		s.WriteString(d)
		s.WriteString("\n")
	}
	return s.String()
}

// SetAcknowledge sets the function that supplies the vector number during an
// interrupt acknowledge. The function can return cpubus.AutoVector.
func (mem *Memory) SetAcknowledge(ack func(level uint8) uint8) {
	mem.ack = ack
}

// Acknowledge implements the cpubus.Acknowledger interface.
func (mem *Memory) Acknowledge(level uint8) uint8 {
	if mem.ack == nil {
		return cpubus.AutoVector
	}
	return mem.ack(level)
}

// ResetDevices implements the cpubus.Resetter interface.
func (mem *Memory) ResetDevices() {
	mem.resets++
	for _, m := range mem.devices {
		if r, ok := m.dev.(DeviceResetter); ok {
			r.Reset()
		}
	}
}

// Resets returns the number of times the reset line has been pulsed.
func (mem *Memory) Resets() int {
	return mem.resets
}

// SetBank selects the ROM bank visible in the ROM window.
func (mem *Memory) SetBank(bank int) error {
	if bank < 0 || bank >= mem.ROM.NumBanks() {
		return fmt.Errorf("%w: %d", ErrBank, bank)
	}
	mem.ROM.bank = bank
	return nil
}

// Bank returns the ROM bank visible in the ROM window.
func (mem *Memory) Bank() int {
	return mem.ROM.bank
}

// Randomise the contents of RAM.
func (mem *Memory) Randomise(src *rand.Rand) {
	mem.RAM.randomise(src)
}

// Load data into RAM at the origin.
func (mem *Memory) Load(origin uint32, data []uint8) error {
	offset, area := memorymap.MapAddress(origin)
	if area != memorymap.RAM || !mem.RAM.inRange(offset, len(data)) {
		return fmt.Errorf("memory: load: %d bytes at %#06x does not fit in %s", len(data), origin, mem.RAM)
	}
	copy(mem.RAM.memory[offset:], data)
	return nil
}

// Poke8 changes the byte at the address. Unlike Write8() a poke can change
// the contents of the visible ROM bank.
func (mem *Memory) Poke8(address uint32, data uint8) error {
	offset, area := memorymap.MapAddress(address)
	if area == memorymap.ROM {
		return mem.ROM.Load(mem.ROM.bank, offset, []uint8{data})
	}
	return mem.Write8(address, data)
}

func busError(address uint32) error {
	return fmt.Errorf("%w: %#06x", cpubus.ErrBusError, address&memorymap.Memtop)
}

func (mem *Memory) read(address uint32, peek bool) (uint8, error) {
	offset, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.RAM:
		if mem.RAM.inRange(offset, 1) {
			return mem.RAM.memory[offset], nil
		}
	case memorymap.ROM:
		return mem.ROM.read(offset), nil
	case memorymap.Devices:
		address &= memorymap.Memtop
		if m, ok := mem.device(address); ok {
			if peek {
				return m.dev.Peek(address - m.origin), nil
			}
			return m.dev.Read(address - m.origin), nil
		}
	}

	return 0, busError(address)
}

func (mem *Memory) write(address uint32, data uint8) error {
	offset, area := memorymap.MapAddress(address)

	switch area {
	case memorymap.RAM:
		if mem.RAM.inRange(offset, 1) {
			mem.RAM.memory[offset] = data
			return nil
		}
	case memorymap.ROM:
		return nil
	case memorymap.Devices:
		address &= memorymap.Memtop
		if m, ok := mem.device(address); ok {
			m.dev.Write(address-m.origin, data)
			return nil
		}
	}

	return busError(address)
}

func (mem *Memory) read16(address uint32, peek bool) (uint16, error) {
	hi, err := mem.read(address, peek)
	if err != nil {
		return 0, err
	}
	lo, err := mem.read(address+1, peek)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (mem *Memory) read32(address uint32, peek bool) (uint32, error) {
	hi, err := mem.read16(address, peek)
	if err != nil {
		return 0, err
	}
	lo, err := mem.read16(address+2, peek)
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// Read8 implements the cpubus.Memory interface.
func (mem *Memory) Read8(address uint32) (uint8, error) {
	return mem.read(address, false)
}

// Read16 implements the cpubus.Memory interface.
func (mem *Memory) Read16(address uint32) (uint16, error) {
	return mem.read16(address, false)
}

// Read32 implements the cpubus.Memory interface.
func (mem *Memory) Read32(address uint32) (uint32, error) {
	return mem.read32(address, false)
}

// Peek8 implements the cpubus.Memory interface.
func (mem *Memory) Peek8(address uint32) (uint8, error) {
	return mem.read(address, true)
}

// Peek16 implements the cpubus.Memory interface.
func (mem *Memory) Peek16(address uint32) (uint16, error) {
	return mem.read16(address, true)
}

// Peek32 implements the cpubus.Memory interface.
func (mem *Memory) Peek32(address uint32) (uint32, error) {
	return mem.read32(address, true)
}

// Write8 implements the cpubus.Memory interface.
func (mem *Memory) Write8(address uint32, data uint8) error {
	return mem.write(address, data)
}

// Write16 implements the cpubus.Memory interface.
func (mem *Memory) Write16(address uint32, data uint16) error {
	if err := mem.write(address, uint8(data>>8)); err != nil {
		return err
	}
	return mem.write(address+1, uint8(data))
}

// Write32 implements the cpubus.Memory interface.
func (mem *Memory) Write32(address uint32, data uint32) error {
	if err := mem.Write16(address, uint16(data>>16)); err != nil {
		return err
	}
	return mem.Write16(address+2, uint16(data))
}

// Plumb RAM into the memory system, replacing the current RAM. The RAM must
// be the same size as the current RAM.
func (mem *Memory) Plumb(ram *RAM) error {
	if ram.Size() != mem.RAM.Size() {
		return fmt.Errorf("%w: cannot plumb %s into %s", ErrRAMSize, ram, mem.RAM)
	}
	mem.RAM = ram.Snapshot()
	return nil
}
