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

package preferences_test

import (
	"testing"

	"github.com/jetsetilly/cyclecore/hardware/preferences"
	"github.com/jetsetilly/cyclecore/logger"
	"github.com/jetsetilly/cyclecore/prefs"
	"github.com/jetsetilly/cyclecore/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.TimerLevel.Get().(int), preferences.DefaultTimerLevel)
	test.ExpectEquality(t, p.RAM.Get().(int), preferences.DefaultRAM)
	test.ExpectEquality(t, p.Banks.Get().(int), preferences.DefaultBanks)
	test.ExpectFailure(t, p.AllowLogging())

	var _ logger.Permission = p
}

func TestCommandLine(t *testing.T) {
	prefs.PushCommandLineStack("cpu.logexceptions::true; timer.level::3; memory.ram::0x10000")
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	test.ExpectSuccess(t, p.AllowLogging())
	test.ExpectEquality(t, p.TimerLevel.Get().(int), 3)
	test.ExpectEquality(t, p.RAM.Get().(int), 0x10000)
	test.ExpectEquality(t, p.String(), "cpu.logexceptions::true; memory.banks::4; memory.ram::65536; memory.randomise::false; timer.level::3")

	test.ExpectSuccess(t, p.SetDefaults())
	test.ExpectFailure(t, p.AllowLogging())

	// out of range
	prefs.PushCommandLineStack("timer.level::8")
	_, err = preferences.NewPreferences()
	test.ExpectFailure(t, err)
	prefs.PopCommandLineStack()
}

func TestReseed(t *testing.T) {
	p, err := preferences.NewPreferences()
	test.DemandSuccess(t, err)

	p.Reseed(100)
	a := p.RandSrc.Int63()
	p.Reseed(100)
	test.ExpectEquality(t, p.RandSrc.Int63(), a)
	test.ExpectEquality(t, p.RandSeed, 100)
}
