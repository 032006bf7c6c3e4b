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

package performance_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/cyclecore/hardware"
	"github.com/jetsetilly/cyclecore/performance"
	"github.com/jetsetilly/cyclecore/test"
)

func TestCalcMHz(t *testing.T) {
	mhz, accuracy := performance.CalcMHz(14000000, 2.0, 7.0)
	test.ExpectEquality(t, mhz, 7.0)
	test.ExpectEquality(t, accuracy, 100.0)

	mhz, accuracy = performance.CalcMHz(1000, 0, 7.0)
	test.ExpectEquality(t, mhz, 0.0)
	test.ExpectEquality(t, accuracy, 0.0)
}

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("cpu, trace")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)
	test.ExpectEquality(t, p.String(), "CPU,TRACE")

	p, err = performance.ParseProfile("all")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.String(), "CPU,MEM,TRACE")

	p, err = performance.ParseProfile("")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)

	_, err = performance.ParseProfile("cpu,heap")
	test.ExpectFailure(t, err)
}

func TestCheck(t *testing.T) {
	m, err := hardware.NewMachine(nil)
	test.DemandSuccess(t, err)

	img := make([]uint8, 0x402)
	copy(img, []uint8{0x00, 0x00, 0x80, 0x00, 0x00, 0x00, 0x04, 0x00})
	copy(img[0x400:], []uint8{0x60, 0xfe}) // BRA.B *
	test.DemandSuccess(t, m.Attach(img))

	performance.Leadtime = 10 * time.Millisecond
	tw := &test.Writer{}
	test.DemandSuccess(t, performance.Check(tw, m, performance.ProfileNone, 50*time.Millisecond))
	test.ExpectSuccess(t, strings.Contains(tw.String(), " MHz ("))
	test.ExpectSuccess(t, m.CPU.Reg.PC.Address() == 0x400)

	test.ExpectFailure(t, performance.Check(tw, m, performance.ProfileNone, 0))
}
