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

	"github.com/jetsetilly/cyclecore/hardware/cpu"
	"github.com/jetsetilly/cyclecore/hardware/memory"
	"github.com/jetsetilly/cyclecore/hardware/timer"
)

// State stores the machine sub-systems. It is produced by the Snapshot()
// function and can be restored with the Plumb() function
type State struct {
	CPU   cpu.Snapshot
	RAM   *memory.RAM
	ROM   *memory.ROM
	Bank  int
	Timer *timer.Timer
}

// Snapshot creates a copy of a previously snapshotted State
func (s *State) Snapshot() *State {
	n := &State{
		CPU:   s.CPU,
		RAM:   s.RAM.Snapshot(),
		ROM:   s.ROM.Snapshot(),
		Bank:  s.Bank,
		Timer: s.Timer.Snapshot(),
	}
	n.CPU.Prefetch = append([]uint16(nil), s.CPU.Prefetch...)
	return n
}

// Snapshot the state of the machine sub-systems
func (m *Machine) Snapshot() *State {
	return &State{
		CPU:   m.CPU.Serialize(),
		RAM:   m.Mem.RAM.Snapshot(),
		ROM:   m.Mem.ROM.Snapshot(),
		Bank:  m.Mem.Bank(),
		Timer: m.Timer.Snapshot(),
	}
}

// Plumb a previously snapshotted state into the machine. The state is copied
// so the machine never changes what is stored in the state.
//
// Memory is plumbed before the CPU so that the CPU refills its prefetch queue
// from the restored memory.
func (m *Machine) Plumb(state *State) error {
	if state == nil {
		return fmt.Errorf("hardware: cannot plumb in a nil state")
	}

	// the CPU snapshot is checked before anything is changed
	if err := state.CPU.Validate(); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}
	if state.Bank < 0 || state.Bank >= state.ROM.NumBanks() {
		return fmt.Errorf("hardware: %w: %d", memory.ErrBank, state.Bank)
	}
	if state.RAM.Size() != m.Mem.RAM.Size() {
		return fmt.Errorf("hardware: %w: cannot plumb %s", memory.ErrRAMSize, state.RAM)
	}

	if err := m.Mem.Plumb(state.RAM); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}
	m.Mem.ROM = state.ROM.Snapshot()
	if err := m.Mem.SetBank(state.Bank); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}

	// the timer is mapped into memory so it is the contents of the timer
	// that change and not the pointer
	*m.Timer = *state.Timer.Snapshot()
	m.Timer.Plumb(m.CPU)

	if err := m.CPU.Restore(state.CPU); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}
	m.stepped = m.tap.Cycles()

	return nil
}
