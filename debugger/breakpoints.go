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

package debugger

import (
	"fmt"
	"sort"
	"strings"
)

// breakpoints halt execution when the program counter reaches an address. The
// address is checked after every instruction so a breakpoint at the address
// of the current instruction does not prevent execution from continuing.
type breakpoints struct {
	addresses []uint32
}

func (bp breakpoints) String() string {
	if len(bp.addresses) == 0 {
		return "no breakpoints"
	}
	s := strings.Builder{}
	for i, a := range bp.addresses {
		s.WriteString(fmt.Sprintf("% 2d: PC->%#06x\n", i, a))
	}
	return strings.TrimRight(s.String(), "\n")
}

// toggle adds the breakpoint if it does not exist and drops it if it does.
// returns true if the breakpoint now exists
func (bp *breakpoints) toggle(address uint32) bool {
	for i, a := range bp.addresses {
		if a == address {
			bp.addresses = append(bp.addresses[:i], bp.addresses[i+1:]...)
			return false
		}
	}
	bp.addresses = append(bp.addresses, address)
	sort.Slice(bp.addresses, func(i, j int) bool { return bp.addresses[i] < bp.addresses[j] })
	return true
}

func (bp breakpoints) check(address uint32) bool {
	i := sort.Search(len(bp.addresses), func(i int) bool { return bp.addresses[i] >= address })
	return i < len(bp.addresses) && bp.addresses[i] == address
}
