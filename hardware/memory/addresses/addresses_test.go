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

package addresses_test

import (
	"testing"

	"github.com/jetsetilly/cyclecore/hardware/memory/addresses"
	"github.com/jetsetilly/cyclecore/test"
)

func TestSymbols(t *testing.T) {
	s, ok := addresses.Symbol(addresses.Timer+addresses.TimerHi, true)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s, "TAHI")

	s, ok = addresses.Symbol(addresses.Timer+addresses.TimerHi, false)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, s, "LATHI")

	// high byte of the address is not on the bus
	s, _ = addresses.Symbol(0xff000000|addresses.BankSelect, false)
	test.ExpectEquality(t, s, "BANK")

	_, ok = addresses.Symbol(0x1000, true)
	test.ExpectFailure(t, ok)
}
