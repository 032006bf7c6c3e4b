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

// BankSelect is a single byte device that selects the visible ROM bank.
// Writes of a bank number that does not exist are ignored.
type BankSelect struct {
	mem *Memory
}

// NewBankSelect is the preferred method of initialisation for the BankSelect
// type.
func NewBankSelect(mem *Memory) *BankSelect {
	return &BankSelect{mem: mem}
}

// Label implements the Device interface.
func (bs *BankSelect) Label() string {
	return "bank select"
}

// Read implements the Device interface.
func (bs *BankSelect) Read(_ uint32) uint8 {
	return uint8(bs.mem.Bank())
}

// Peek implements the Device interface.
func (bs *BankSelect) Peek(_ uint32) uint8 {
	return uint8(bs.mem.Bank())
}

// Write implements the Device interface.
func (bs *BankSelect) Write(_ uint32, data uint8) {
	_ = bs.mem.SetBank(int(data))
}

// Reset implements the DeviceResetter interface. Bank zero is selected.
func (bs *BankSelect) Reset() {
	_ = bs.mem.SetBank(0)
}
