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

	"github.com/jetsetilly/cyclecore/hardware/memory/memorymap"
)

// ROM is a bank switched read-only area. Only one bank is visible in the ROM
// window at any one time. Writes to the window are ignored.
type ROM struct {
	banks [][]uint8
	bank  int
}

func newROM(numBanks int) *ROM {
	rom := &ROM{
		banks: make([][]uint8, numBanks),
	}
	for i := range rom.banks {
		rom.banks[i] = make([]uint8, memorymap.BankSize)
	}
	return rom
}

// Snapshot creates a copy of the ROM. Bank contents never change after they
// have been loaded so they are shared with the copy.
func (rom *ROM) Snapshot() *ROM {
	n := *rom
	return &n
}

func (rom *ROM) String() string {
	return fmt.Sprintf("ROM: bank %d of %d", rom.bank, len(rom.banks))
}

// NumBanks returns the number of banks in the ROM.
func (rom *ROM) NumBanks() int {
	return len(rom.banks)
}

// Load data into a bank at the offset. Loading a bank replaces the bank
// rather than changing it. Snapshots of the ROM taken before the load still
// see the old contents.
func (rom *ROM) Load(bank int, offset uint32, data []uint8) error {
	if bank < 0 || bank >= len(rom.banks) {
		return fmt.Errorf("%w: %d", ErrBank, bank)
	}
	if int(offset)+len(data) > memorymap.BankSize {
		return fmt.Errorf("memory: rom: data too large for bank (%d bytes at %#04x)", len(data), offset)
	}

	b := make([]uint8, memorymap.BankSize)
	copy(b, rom.banks[bank])
	copy(b[offset:], data)
	rom.banks[bank] = b

	return nil
}

func (rom *ROM) read(offset uint32) uint8 {
	return rom.banks[rom.bank][offset]
}
