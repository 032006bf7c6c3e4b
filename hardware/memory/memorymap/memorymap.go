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

package memorymap

// Area represents the different areas of memory
type Area int

func (a Area) String() string {
	switch a {
	case RAM:
		return "RAM"
	case ROM:
		return "ROM"
	case Devices:
		return "Devices"
	}

	return "undefined"
}

// The different memory areas in the machine
const (
	Undefined Area = iota
	RAM
	ROM
	Devices
)

// The origin and memory top for each area of memory. The RAM area is the
// largest amount of RAM that can be installed. Addresses inside the area but
// beyond the installed RAM are not acknowledged.
const (
	OriginRAM     = uint32(0x000000)
	MemtopRAM     = uint32(0x0fffff)
	OriginROM     = uint32(0x100000)
	MemtopROM     = uint32(0x10ffff)
	OriginDevices = uint32(0x200000)
	MemtopDevices = uint32(0x20ffff)
)

// BankSize is the size of the ROM window and therefore of every ROM bank.
const BankSize = int(MemtopROM - OriginROM + 1)

// MaxRAM is the largest amount of RAM that can be installed.
const MaxRAM = int(MemtopRAM - OriginRAM + 1)

// Memtop is the top most address on the address bus.
const Memtop = uint32(0xffffff)

// MapAddress returns the area the address falls within and the offset of the
// address from the origin of that area. Addresses outside of every area are
// returned unchanged with the Undefined area.
func MapAddress(address uint32) (uint32, Area) {
	address &= Memtop

	switch {
	case address <= MemtopRAM:
		return address - OriginRAM, RAM
	case address >= OriginROM && address <= MemtopROM:
		return address - OriginROM, ROM
	case address >= OriginDevices && address <= MemtopDevices:
		return address - OriginDevices, Devices
	}

	return address, Undefined
}

// IsArea returns true if the address is in the specificied area
func IsArea(address uint32, area Area) bool {
	_, a := MapAddress(address)
	return area == a
}
