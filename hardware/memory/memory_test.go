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

package memory_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/jetsetilly/cyclecore/hardware/memory"
	"github.com/jetsetilly/cyclecore/hardware/memory/cpubus"
	"github.com/jetsetilly/cyclecore/hardware/memory/memorymap"
	"github.com/jetsetilly/cyclecore/test"
)

// latch is a device with a single register that is cleared by reading
type latch struct {
	value  uint8
	reads  int
	writes []uint8
	resets int
}

func (l *latch) Label() string {
	return "latch"
}

func (l *latch) Read(offset uint32) uint8 {
	l.reads++
	v := l.value + uint8(offset)
	l.value = 0
	return v
}

func (l *latch) Peek(offset uint32) uint8 {
	return l.value + uint8(offset)
}

func (l *latch) Write(offset uint32, data uint8) {
	l.writes = append(l.writes, data)
	l.value = data
}

func (l *latch) Reset() {
	l.resets++
	l.value = 0
}

func newMemory(t *testing.T) *memory.Memory {
	t.Helper()
	mem, err := memory.NewMemory(0x10000, 4)
	test.DemandSuccess(t, err)
	return mem
}

func TestNewMemory(t *testing.T) {
	_, err := memory.NewMemory(0, 1)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrRAMSize))
	_, err = memory.NewMemory(memorymap.MaxRAM+2, 1)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrRAMSize))
	_, err = memory.NewMemory(0x1000, 0)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrBank))

	var _ cpubus.Memory = newMemory(t)
	var _ cpubus.Acknowledger = newMemory(t)
	var _ cpubus.Resetter = newMemory(t)
}

func TestRAM(t *testing.T) {
	mem := newMemory(t)

	test.ExpectSuccess(t, mem.Write32(0x100, 0x01020304))
	v, err := mem.Read16(0x102)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x0304)

	b, err := mem.Read8(0x100)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, 0x01)

	// big-endian
	test.ExpectSuccess(t, mem.Write16(0x200, 0xabcd))
	b, _ = mem.Peek8(0x201)
	test.ExpectEquality(t, b, 0xcd)

	// top byte of the address is ignored
	l, err := mem.Read32(0xff000100)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, l, 0x01020304)

	// beyond installed RAM
	_, err = mem.Read8(0x10000)
	test.ExpectSuccess(t, errors.Is(err, cpubus.ErrBusError))
	err = mem.Write16(0x20000, 0)
	test.ExpectSuccess(t, errors.Is(err, cpubus.ErrBusError))

	// unmapped area
	_, err = mem.Peek16(0x400000)
	test.ExpectSuccess(t, errors.Is(err, cpubus.ErrBusError))
}

func TestLoad(t *testing.T) {
	mem := newMemory(t)
	test.ExpectSuccess(t, mem.Load(0x1000, []uint8{0x4e, 0x71}))
	v, _ := mem.Peek16(0x1000)
	test.ExpectEquality(t, v, 0x4e71)

	test.ExpectFailure(t, mem.Load(0xffff, []uint8{0x00, 0x00}))
	test.ExpectFailure(t, mem.Load(memorymap.OriginROM, []uint8{0x00}))
}

func TestROMBanks(t *testing.T) {
	mem := newMemory(t)

	test.DemandSuccess(t, mem.ROM.Load(0, 0, []uint8{0x00, 0x10}))
	test.DemandSuccess(t, mem.ROM.Load(2, 0, []uint8{0x00, 0x12}))
	test.ExpectFailure(t, mem.ROM.Load(4, 0, []uint8{0x00}))
	test.ExpectFailure(t, mem.ROM.Load(0, uint32(memorymap.BankSize-1), []uint8{0x00, 0x00}))

	v, _ := mem.Read16(memorymap.OriginROM)
	test.ExpectEquality(t, v, 0x0010)

	test.ExpectSuccess(t, mem.SetBank(2))
	test.ExpectEquality(t, mem.Bank(), 2)
	v, _ = mem.Read16(memorymap.OriginROM)
	test.ExpectEquality(t, v, 0x0012)

	err := mem.SetBank(4)
	test.ExpectSuccess(t, errors.Is(err, memory.ErrBank))
	test.ExpectEquality(t, mem.Bank(), 2)

	// writes are ignored but acknowledged
	test.ExpectSuccess(t, mem.Write16(memorymap.OriginROM, 0xffff))
	v, _ = mem.Read16(memorymap.OriginROM)
	test.ExpectEquality(t, v, 0x0012)

	// pokes change the visible bank only and not earlier snapshots
	rom := mem.ROM.Snapshot()
	test.ExpectSuccess(t, mem.Poke8(memorymap.OriginROM+1, 0x99))
	v, _ = mem.Read16(memorymap.OriginROM)
	test.ExpectEquality(t, v, 0x0099)
	mem.ROM = rom
	v, _ = mem.Read16(memorymap.OriginROM)
	test.ExpectEquality(t, v, 0x0012)
}

func TestDevices(t *testing.T) {
	mem := newMemory(t)
	l := &latch{}

	test.ExpectFailure(t, mem.Map(0x1000, 4, l))
	test.ExpectFailure(t, mem.Map(memorymap.MemtopDevices-1, 4, l))
	test.DemandSuccess(t, mem.Map(memorymap.OriginDevices+0x10, 4, l))

	err := mem.Map(memorymap.OriginDevices+0x12, 4, &latch{})
	test.ExpectSuccess(t, errors.Is(err, memory.ErrMapping))
	test.DemandEquality(t, len(mem.Devices()), 1)
	test.ExpectEquality(t, mem.Devices()[0], "200010 -> 200013\tlatch")

	test.ExpectSuccess(t, mem.Write8(memorymap.OriginDevices+0x10, 0x40))
	test.ExpectEquality(t, len(l.writes), 1)

	// peeking has no effect on the device
	b, err := mem.Peek8(memorymap.OriginDevices + 0x11)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, 0x41)
	test.ExpectEquality(t, l.reads, 0)

	// reading clears the latch
	b, _ = mem.Read8(memorymap.OriginDevices + 0x10)
	test.ExpectEquality(t, b, 0x40)
	b, _ = mem.Read8(memorymap.OriginDevices + 0x10)
	test.ExpectEquality(t, b, 0x00)
	test.ExpectEquality(t, l.reads, 2)

	// word writes are two byte writes, high byte first
	test.ExpectSuccess(t, mem.Write16(memorymap.OriginDevices+0x12, 0x1234))
	test.DemandEquality(t, len(l.writes), 3)
	test.ExpectEquality(t, l.writes[1], 0x12)
	test.ExpectEquality(t, l.writes[2], 0x34)

	// nothing mapped here
	_, err = mem.Read8(memorymap.OriginDevices + 0x20)
	test.ExpectSuccess(t, errors.Is(err, cpubus.ErrBusError))

	mem.ResetDevices()
	test.ExpectEquality(t, l.resets, 1)
	test.ExpectEquality(t, mem.Resets(), 1)
}

func TestBankSelect(t *testing.T) {
	mem := newMemory(t)
	test.DemandSuccess(t, mem.ROM.Load(3, 0x10, []uint8{0x33}))
	test.DemandSuccess(t, mem.Map(memorymap.OriginDevices+0x100, 1, memory.NewBankSelect(mem)))

	test.ExpectSuccess(t, mem.Write8(memorymap.OriginDevices+0x100, 3))
	test.ExpectEquality(t, mem.Bank(), 3)
	b, _ := mem.Read8(memorymap.OriginROM + 0x10)
	test.ExpectEquality(t, b, 0x33)
	b, _ = mem.Read8(memorymap.OriginDevices + 0x100)
	test.ExpectEquality(t, b, 3)

	// no such bank
	test.ExpectSuccess(t, mem.Write8(memorymap.OriginDevices+0x100, 9))
	test.ExpectEquality(t, mem.Bank(), 3)

	mem.ResetDevices()
	test.ExpectEquality(t, mem.Bank(), 0)
}

func TestAcknowledge(t *testing.T) {
	mem := newMemory(t)
	test.ExpectEquality(t, mem.Acknowledge(3), cpubus.AutoVector)

	mem.SetAcknowledge(func(level uint8) uint8 {
		return 64 + level
	})
	test.ExpectEquality(t, mem.Acknowledge(3), 67)
}

func TestPlumb(t *testing.T) {
	mem := newMemory(t)
	test.ExpectSuccess(t, mem.Write8(0x10, 0xaa))
	ram := mem.RAM.Snapshot()

	test.ExpectSuccess(t, mem.Write8(0x10, 0xbb))
	test.ExpectSuccess(t, mem.Plumb(ram))
	b, _ := mem.Peek8(0x10)
	test.ExpectEquality(t, b, 0xaa)

	// plumbed RAM is a copy
	test.ExpectSuccess(t, mem.Write8(0x10, 0xcc))
	b, _ = ram.Peek(0x10)
	test.ExpectEquality(t, b, 0xaa)

	small, err := memory.NewMemory(0x1000, 1)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, mem.Plumb(small.RAM))
}

func TestRandomise(t *testing.T) {
	a := newMemory(t)
	b := newMemory(t)
	a.Randomise(rand.New(rand.NewSource(10)))
	b.Randomise(rand.New(rand.NewSource(10)))
	test.ExpectEquality(t, a.RAM.Hexdump(0, 64), b.RAM.Hexdump(0, 64))
}
