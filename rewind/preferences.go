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

package rewind

import (
	"github.com/jetsetilly/cyclecore/prefs"
)

// DefaultMaxEntries is the number of entries stored before the earliest
// entries are forgotten.
const DefaultMaxEntries = 100

// Preferences for the rewind system.
type Preferences struct {
	r     *Rewind
	group *prefs.Group

	MaxEntries prefs.Int
}

func (p *Preferences) String() string {
	return p.group.String()
}

// newPreferences is the preferred method of initialisation for the Preferences type.
func newPreferences(r *Rewind) (*Preferences, error) {
	p := &Preferences{
		r:     r,
		group: prefs.NewGroup(),
	}

	p.MaxEntries.SetRange(1, 10000)

	if err := p.group.Add("rewind.maxentries", &p.MaxEntries); err != nil {
		return nil, err
	}
	if err := p.SetDefaults(); err != nil {
		return nil, err
	}
	if err := p.group.ApplyCommandLine(); err != nil {
		return nil, err
	}

	// changing the number of entries discards the history
	p.MaxEntries.SetHookPost(func(_ prefs.Value) error {
		r.allocate()
		return nil
	})

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() error {
	return p.MaxEntries.Set(DefaultMaxEntries)
}
