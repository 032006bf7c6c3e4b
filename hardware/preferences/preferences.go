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

// Package preferences collates the preference values used by the hardware
// package. Values can be changed from the command line with the prefs
// package command line stack.
package preferences

import (
	"math/rand"
	"time"

	"github.com/jetsetilly/cyclecore/prefs"
)

// Default preference values.
const (
	DefaultTimerLevel = 6
	DefaultRAM        = 0x80000
	DefaultBanks      = 4
)

// Preferences defines and collates all the preference values used by the
// hardware.
type Preferences struct {
	group *prefs.Group

	// exception entry is logged with the CPU tag
	LogExceptions prefs.Bool

	// interrupt level raised by the interval timer
	TimerLevel prefs.Int

	// bytes of RAM installed
	RAM prefs.Int

	// number of ROM banks
	Banks prefs.Int

	// initialise RAM to a random state on creation of the machine
	RandomState prefs.Bool

	// random values generated in the hardware package should use the following
	// number source
	RandSrc *rand.Rand

	// the number used to seed RandSrc
	RandSeed int64
}

func (p *Preferences) String() string {
	return p.group.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. Values found in the top group of the prefs command line stack are
// applied.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{
		group: prefs.NewGroup(),
	}

	p.Reseed(0)

	p.TimerLevel.SetRange(1, 7)
	p.RAM.SetRange(0x1000, 0x100000)
	p.Banks.SetRange(1, 256)

	if err := p.group.Add("cpu.logexceptions", &p.LogExceptions); err != nil {
		return nil, err
	}
	if err := p.group.Add("timer.level", &p.TimerLevel); err != nil {
		return nil, err
	}
	if err := p.group.Add("memory.ram", &p.RAM); err != nil {
		return nil, err
	}
	if err := p.group.Add("memory.banks", &p.Banks); err != nil {
		return nil, err
	}
	if err := p.group.Add("memory.randomise", &p.RandomState); err != nil {
		return nil, err
	}

	if err := p.SetDefaults(); err != nil {
		return nil, err
	}

	if err := p.group.ApplyCommandLine(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() error {
	if err := p.LogExceptions.Set(false); err != nil {
		return err
	}
	if err := p.TimerLevel.Set(DefaultTimerLevel); err != nil {
		return err
	}
	if err := p.RAM.Set(DefaultRAM); err != nil {
		return err
	}
	if err := p.Banks.Set(DefaultBanks); err != nil {
		return err
	}
	return p.RandomState.Set(false)
}

// Reseed initialises the random number generator. Use a seed value of 0 to
// initialise with the current time.
func (p *Preferences) Reseed(seed int64) {
	if seed == 0 {
		p.RandSeed = int64(time.Now().Nanosecond())
	} else {
		p.RandSeed = seed
	}
	p.RandSrc = rand.New(rand.NewSource(p.RandSeed))
}

// AllowLogging implements the logger.Permission interface. Logging is
// allowed when the cpu.logexceptions preference is set.
func (p *Preferences) AllowLogging() bool {
	return p.LogExceptions.Get().(bool)
}
