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

// Package rewind keeps a history of machine states so that execution can be
// stepped backwards. A state is recorded with Record(), usually after every
// instruction. Back() and Forward() move through the history, plumbing the
// recorded state into the machine.
//
// Recording a new state while positioned in the middle of the history
// forgets every state after the current position.
package rewind

import (
	"errors"
	"fmt"

	"github.com/jetsetilly/cyclecore/hardware"
)

// Sentinel errors returned by Back() and Forward().
var (
	ErrStart = errors.New("rewind: at start of history")
	ErrEnd   = errors.New("rewind: at end of history")
)

// there is an overhead of one entry so that the circular array is never
// completely full
const overhead = 1

// Rewind contains a history of machine states for the emulation.
type Rewind struct {
	m     *hardware.Machine
	Prefs *Preferences

	// circular array of snapshotted entries
	entries []*hardware.State
	start   int
	end     int

	// the position of the current entry
	curr int
}

// NewRewind is the preferred method of initialisation for the Rewind type.
func NewRewind(m *hardware.Machine) (*Rewind, error) {
	r := &Rewind{
		m: m,
	}

	var err error
	r.Prefs, err = newPreferences(r)
	if err != nil {
		return nil, err
	}

	r.allocate()

	return r, nil
}

func (r *Rewind) String() string {
	return fmt.Sprintf("rewind: %d of %d", r.Position()+1, r.Len())
}

// allocate the array of entries and reset
func (r *Rewind) allocate() {
	r.entries = make([]*hardware.State, r.Prefs.MaxEntries.Get().(int)+overhead)
	r.Reset()
}

// Reset removes all entries and takes a snapshot of the current state. This
// should be called whenever the machine has changed outside of normal
// execution. For example, after a reset or after a snapshot is plumbed.
func (r *Rewind) Reset() {
	for i := range r.entries {
		r.entries[i] = nil
	}
	r.start = 0
	r.end = 0
	r.curr = len(r.entries) - 1
	r.append(r.m.Snapshot())
}

// Record takes a snapshot of the machine and adds it to the history after
// the current position.
func (r *Rewind) Record() {
	r.append(r.m.Snapshot())
}

func (r *Rewind) wrap(i int) int {
	return (i + len(r.entries)) % len(r.entries)
}

func (r *Rewind) append(s *hardware.State) {
	// append at current position
	e := r.wrap(r.curr + 1)
	r.entries[e] = s
	r.curr = e

	// next update point is recent update point plus one
	r.end = r.wrap(r.curr + 1)

	// push start index along
	if r.end == r.start {
		r.entries[r.start] = nil
		r.start = r.wrap(r.start + 1)
	}
}

// Len returns the number of entries in the history.
func (r *Rewind) Len() int {
	return r.wrap(r.end - r.start)
}

// Position returns the position of the current entry, counting from the
// oldest entry at position zero.
func (r *Rewind) Position() int {
	return r.wrap(r.curr - r.start)
}

func (r *Rewind) plumb(idx int) error {
	if err := r.m.Plumb(r.entries[idx].Snapshot()); err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	r.curr = idx
	return nil
}

// Back plumbs in the entry before the current position.
func (r *Rewind) Back() error {
	if r.curr == r.start {
		return ErrStart
	}
	return r.plumb(r.wrap(r.curr - 1))
}

// Forward plumbs in the entry after the current position.
func (r *Rewind) Forward() error {
	next := r.wrap(r.curr + 1)
	if next == r.end {
		return ErrEnd
	}
	return r.plumb(next)
}
