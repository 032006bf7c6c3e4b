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

package registers

// Add src to dst at the specified size, including the extend bit if x is true.
// Returns the result, the carry (also used for the extend flag) and the
// overflow state. Bits outside of the size are zero in the result.
func Add(dst, src uint32, sz Size, x bool) (result uint32, carry bool, overflow bool) {
	mask := uint64(sz.Mask())
	r := uint64(dst&sz.Mask()) + uint64(src&sz.Mask())
	if x {
		r++
	}

	carry = r > mask
	result = uint32(r & mask)

	msb := sz.MSB()
	overflow = ((dst ^ result) & (src ^ result) & msb) != 0

	return result, carry, overflow
}

// Sub subtracts src from dst at the specified size, including the extend bit
// if x is true. Returns the result, the borrow (the 68000 carry flag) and the
// overflow state.
func Sub(dst, src uint32, sz Size, x bool) (result uint32, borrow bool, overflow bool) {
	d := uint64(dst & sz.Mask())
	s := uint64(src & sz.Mask())
	if x {
		s++
	}

	borrow = s > d
	result = uint32((d - s) & uint64(sz.Mask()))

	msb := sz.MSB()
	overflow = ((dst ^ src) & (dst ^ result) & msb) != 0

	return result, borrow, overflow
}
