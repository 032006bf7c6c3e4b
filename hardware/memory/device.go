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
	"fmt"
	"sort"

	"github.com/jetsetilly/cyclecore/hardware/memory/memorymap"
)

// Device is implemented by byte-wide peripherals mapped into the device area.
// The offset is relative to the origin the device is mapped at.
//
// Peek must not change the state of the device. Read may, for example by
// clearing a latched flag.
type Device interface {
	Label() string
	Read(offset uint32) uint8
	Peek(offset uint32) uint8
	Write(offset uint32, data uint8)
}

// DeviceResetter is implemented by devices that respond to the reset line.
type DeviceResetter interface {
	Reset()
}

type mapping struct {
	origin uint32
	size   uint32
	dev    Device
}

func (m mapping) String() string {
	return fmt.Sprintf("%06x -> %06x\t%s", m.origin, m.origin+m.size-1, m.dev.Label())
}

func (m mapping) contains(address uint32) bool {
	return address >= m.origin && address < m.origin+m.size
}

// Map the device into the device area at the origin. The range must not
// overlap a device that is already mapped.
func (mem *Memory) Map(origin uint32, size uint32, dev Device) error {
	if dev == nil || size == 0 {
		return fmt.Errorf("%w: nothing to map at %#06x", ErrMapping, origin)
	}
	if !memorymap.IsArea(origin, memorymap.Devices) || !memorymap.IsArea(origin+size-1, memorymap.Devices) {
		return fmt.Errorf("%w: %s is outside of the device area", ErrMapping, dev.Label())
	}

	m := mapping{origin: origin, size: size, dev: dev}
	for _, o := range mem.devices {
		if m.origin < o.origin+o.size && o.origin < m.origin+m.size {
			return fmt.Errorf("%w: %s overlaps %s", ErrMapping, dev.Label(), o.dev.Label())
		}
	}

	mem.devices = append(mem.devices, m)
	sort.Slice(mem.devices, func(i, j int) bool {
		return mem.devices[i].origin < mem.devices[j].origin
	})

	return nil
}

// Devices returns a description of every mapped device, one per line.
func (mem *Memory) Devices() []string {
	s := make([]string, len(mem.devices))
	for i, m := range mem.devices {
		s[i] = m.String()
	}
	return s
}

func (mem *Memory) device(address uint32) (mapping, bool) {
	for _, m := range mem.devices {
		if m.contains(address) {
			return m, true
		}
	}
	return mapping{}, false
}
