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

package clocks_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/cyclecore/hardware/clocks"
	"github.com/jetsetilly/cyclecore/test"
)

func TestDuration(t *testing.T) {
	test.ExpectEquality(t, clocks.Duration(0, clocks.PAL), 0)
	test.ExpectEquality(t, clocks.Duration(7000000, 7.0), time.Second)
	test.ExpectSuccess(t, clocks.Duration(1000, clocks.PAL) > clocks.Duration(1000, clocks.NTSC))
}
