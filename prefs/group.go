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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// Group collates a set of preference values under unique keys.
type Group struct {
	entries map[string]Pref
}

// NewGroup is the preferred method of initialisation for the Group type.
func NewGroup() *Group {
	return &Group{
		entries: make(map[string]Pref),
	}
}

// Add a preference value to the group. Keys must be unique.
func (g *Group) Add(key string, p Pref) error {
	if _, ok := g.entries[key]; ok {
		return fmt.Errorf("prefs: key already in group (%s)", key)
	}
	g.entries[key] = p
	return nil
}

// ApplyCommandLine sets every value in the group that has an entry in the top
// group of the command line stack.
func (g *Group) ApplyCommandLine() error {
	for key, p := range g.entries {
		if ok, v := GetCommandLinePref(key); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", key, err)
			}
		}
	}
	return nil
}

// Reset all preferences in the group.
func (g *Group) Reset() error {
	for _, p := range g.entries {
		if err := p.Reset(); err != nil {
			return err
		}
	}
	return nil
}

// String returns the group in the same format accepted by
// PushCommandLineStack(), sorted by key.
func (g *Group) String() string {
	keys := make([]string, 0, len(g.entries))
	for key := range g.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := make([]string, 0, len(keys))
	for _, key := range keys {
		s = append(s, fmt.Sprintf("%s::%s", key, g.entries[key]))
	}
	return strings.Join(s, "; ")
}
