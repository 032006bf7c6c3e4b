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

import (
	"fmt"
	"strings"
)

// granularity of the summary. every area begins on a boundary of this size
const summaryStep = uint32(0x10000)

// Summary returns a single multiline string detailing all the areas in memory.
// Useful for reference.
func Summary() string {
	var area, current Area
	var a, sa uint32

	s := strings.Builder{}

	_, current = MapAddress(0)

	for a = summaryStep; a <= Memtop; a += summaryStep {
		_, area = MapAddress(a)

		if area != current {
			s.WriteString(fmt.Sprintf("%06x -> %06x\t%s\n", sa, a-1, current.String()))
			current = area
			sa = a
		}
	}

	s.WriteString(fmt.Sprintf("%06x -> %06x\t%s\n", sa, Memtop, current.String()))

	return s.String()
}
