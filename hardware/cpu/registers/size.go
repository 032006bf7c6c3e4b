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

// Size of an operation. The underlying value is the number of bytes.
type Size int

// List of valid Size values.
const (
	Byte Size = 1
	Word Size = 2
	Long Size = 4
)

func (sz Size) String() string {
	switch sz {
	case Byte:
		return ".B"
	case Word:
		return ".W"
	case Long:
		return ".L"
	}
	return ""
}

// Mask returns the bits of a 32bit value that are significant for the size.
func (sz Size) Mask() uint32 {
	switch sz {
	case Byte:
		return 0xff
	case Word:
		return 0xffff
	}
	return 0xffffffff
}

// MSB returns the sign bit for the size.
func (sz Size) MSB() uint32 {
	switch sz {
	case Byte:
		return 0x80
	case Word:
		return 0x8000
	}
	return 0x80000000
}

// Words returns the number of bus transfers required for an operation of this
// size. A byte operation still requires a full bus transfer.
func (sz Size) Words() int {
	if sz == Long {
		return 2
	}
	return 1
}

// SignExtend the value from the size to 32bits.
func (sz Size) SignExtend(v uint32) uint32 {
	switch sz {
	case Byte:
		return uint32(int32(int8(v)))
	case Word:
		return uint32(int32(int16(v)))
	}
	return v
}
