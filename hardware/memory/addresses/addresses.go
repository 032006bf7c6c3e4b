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

package addresses

import "github.com/jetsetilly/cyclecore/hardware/memory/memorymap"

// ResetSSP and ResetPC are the addresses of the initial supervisor stack
// pointer and program counter, read by the CPU during the reset sequence.
const (
	ResetSSP = uint32(0x000000)
	ResetPC  = uint32(0x000004)
)

// Timer is the origin of the interval timer in the device area.
const Timer = memorymap.OriginDevices

// Offsets of the timer registers from the timer origin.
const (
	TimerHi   = uint32(0x00)
	TimerLo   = uint32(0x01)
	TimerCtrl = uint32(0x02)
	TimerICR  = uint32(0x03)

	// the number of bytes the timer occupies
	TimerSize = uint32(0x04)
)

// BankSelect is the address of the bank select register. Writing a byte to
// it changes the ROM bank visible in the ROM window.
const BankSelect = memorymap.OriginDevices + 0x100

// CanonicalReadSymbols list the readable device addresses along with the
// canonical names for those addresses.
var CanonicalReadSymbols = map[uint32]string{
	Timer + TimerHi:   "TAHI",
	Timer + TimerLo:   "TALO",
	Timer + TimerCtrl: "CRA",
	Timer + TimerICR:  "ICR",
	BankSelect:        "BANK",
}

// CanonicalWriteSymbols list the writable device addresses along with the
// canonical names for those addresses. Writing to the counter registers sets
// the latch and not the counter itself.
var CanonicalWriteSymbols = map[uint32]string{
	Timer + TimerHi:   "LATHI",
	Timer + TimerLo:   "LATLO",
	Timer + TimerCtrl: "CRA",
	Timer + TimerICR:  "ICR",
	BankSelect:        "BANK",
}

// Symbol returns the canonical name of a device address. The second value
// is false if the address has no name.
func Symbol(address uint32, read bool) (string, bool) {
	address &= memorymap.Memtop
	var s string
	var ok bool
	if read {
		s, ok = CanonicalReadSymbols[address]
	} else {
		s, ok = CanonicalWriteSymbols[address]
	}
	return s, ok
}
