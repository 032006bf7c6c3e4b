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

package hardware

import (
	"fmt"
	"time"

	"github.com/jetsetilly/cyclecore/hardware/clocks"
	"github.com/jetsetilly/cyclecore/hardware/cpu"
	"github.com/jetsetilly/cyclecore/hardware/memory"
	"github.com/jetsetilly/cyclecore/hardware/memory/addresses"
	"github.com/jetsetilly/cyclecore/hardware/preferences"
	"github.com/jetsetilly/cyclecore/hardware/timer"
)

// Machine is the main container for the emulated components of the machine.
type Machine struct {
	Prefs *preferences.Preferences

	CPU   *cpu.CPU
	Mem   *memory.Memory
	Timer *timer.Timer

	// speed of the CPU clock in MHz
	ClockSpeed float64

	// the CPU clock when the timer was last stepped
	tap     cpu.ClockTap
	stepped uint64
}

// NewMachine creates a new machine and everything associated with the
// hardware. If prefs is nil, a new set of preferences is created.
func NewMachine(prefs *preferences.Preferences) (*Machine, error) {
	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	m := &Machine{
		Prefs:      prefs,
		ClockSpeed: clocks.PAL,
	}

	m.Mem, err = memory.NewMemory(prefs.RAM.Get().(int), prefs.Banks.Get().(int))
	if err != nil {
		return nil, fmt.Errorf("hardware: %w", err)
	}
	if prefs.RandomState.Get().(bool) {
		m.Mem.Randomise(prefs.RandSrc)
	}

	m.CPU, err = cpu.NewCPU(m.Mem, prefs)
	if err != nil {
		return nil, fmt.Errorf("hardware: %w", err)
	}
	m.tap = m.CPU

	m.Timer = timer.NewTimer(m.CPU, uint8(prefs.TimerLevel.Get().(int)))

	err = m.Mem.Map(addresses.Timer, addresses.TimerSize, m.Timer)
	if err != nil {
		return nil, fmt.Errorf("hardware: %w", err)
	}
	err = m.Mem.Map(addresses.BankSelect, 1, memory.NewBankSelect(m.Mem))
	if err != nil {
		return nil, fmt.Errorf("hardware: %w", err)
	}

	return m, nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("%s\n%s", m.CPU, m.Timer)
}

// Attach loads an image into RAM at address zero and resets the machine. The
// image should begin with the reset vectors.
func (m *Machine) Attach(image []uint8) error {
	if err := m.Mem.Load(0, image); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}
	return m.Reset()
}

// Reset the machine. Every device is reset and the CPU performs its reset
// sequence.
func (m *Machine) Reset() error {
	m.Mem.ResetDevices()
	if err := m.CPU.Reset(); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}
	m.stepped = m.tap.Cycles()
	return nil
}

// Step the machine by one CPU step. Returns the number of cycles consumed.
func (m *Machine) Step() (int, error) {
	_, err := m.CPU.Step()
	if err != nil {
		return 0, err
	}
	return m.clockDevices(), nil
}

// step the timer by the number of cycles that have passed since it was last
// stepped
func (m *Machine) clockDevices() int {
	now := m.tap.Cycles()
	n := int(now - m.stepped)
	m.stepped = now
	m.Timer.Step(n)
	return n
}

// Elapsed returns the emulated time since the machine was created.
func (m *Machine) Elapsed() time.Duration {
	return clocks.Duration(m.tap.Cycles(), m.ClockSpeed)
}
