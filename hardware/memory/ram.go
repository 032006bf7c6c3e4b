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
	"math/rand"
	"strings"
)

// RAM is the installed read/write memory. It begins at address zero, where
// the reset vectors are found.
type RAM struct {
	memory []uint8
}

func newRAM(size int) *RAM {
	return &RAM{
		memory: make([]uint8, size),
	}
}

// Snapshot creates a copy of RAM.
func (ram *RAM) Snapshot() *RAM {
	n := *ram
	n.memory = make([]uint8, len(ram.memory))
	copy(n.memory, ram.memory)
	return &n
}

// Size returns the number of bytes installed.
func (ram *RAM) Size() int {
	return len(ram.memory)
}

func (ram *RAM) String() string {
	return fmt.Sprintf("RAM: %dK", len(ram.memory)/1024)
}

// Hexdump returns a formatted dump of n bytes of RAM from the origin. Rows
// are always 16 bytes wide.
func (ram *RAM) Hexdump(origin uint32, n int) string {
	s := strings.Builder{}
	s.WriteString("        -0 -1 -2 -3 -4 -5 -6 -7 -8 -9 -A -B -C -D -E -F\n")
	s.WriteString("      ---- -- -- -- -- -- -- -- -- -- -- -- -- -- -- --\n")

	origin &^= 0x0f
	for row := origin; row < origin+uint32(n) && int(row) < len(ram.memory); row += 16 {
		s.WriteString(fmt.Sprintf("%06x |", row))
		for x := uint32(0); x < 16; x++ {
			s.WriteString(fmt.Sprintf(" %02x", ram.memory[row+x]))
		}
		s.WriteString("\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

// Peek returns the byte at the offset from the start of RAM.
func (ram *RAM) Peek(offset uint32) (uint8, error) {
	if !ram.inRange(offset, 1) {
		return 0, busError(offset)
	}
	return ram.memory[offset], nil
}

// Poke sets the byte at the offset from the start of RAM.
func (ram *RAM) Poke(offset uint32, data uint8) error {
	if !ram.inRange(offset, 1) {
		return busError(offset)
	}
	ram.memory[offset] = data
	return nil
}

func (ram *RAM) randomise(src *rand.Rand) {
	for i := range ram.memory {
		ram.memory[i] = uint8(src.Intn(0x100))
	}
}

func (ram *RAM) inRange(offset uint32, bytes int) bool {
	return int(offset)+bytes <= len(ram.memory)
}
