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

// Package dump writes a machine state in a form suitable for inspection by a
// human. Text() pretty-prints the state as Go values. Graph() writes a graphviz
// description of the CPU snapshot and timer structures.
package dump

import (
	"fmt"
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/cyclecore/hardware"
	"github.com/k0kubun/pp/v3"
)

// ramSummary and romSummary stand in for the memory arrays, which are too
// large to print in full
type ramSummary struct {
	Description string
}

type romSummary struct {
	Description string
	Bank        int
}

type textState struct {
	CPU   interface{}
	RAM   ramSummary
	ROM   romSummary
	Timer interface{}
}

// Text writes a pretty-printed version of the state. Colouring is always
// disabled.
func Text(w io.Writer, state *hardware.State) error {
	if state == nil {
		return fmt.Errorf("dump: no state to dump")
	}

	printer := pp.New()
	printer.SetColoringEnabled(false)
	printer.SetExportedOnly(true)

	s := textState{
		CPU:   state.CPU,
		RAM:   ramSummary{Description: state.RAM.String()},
		ROM:   romSummary{Description: state.ROM.String(), Bank: state.Bank},
		Timer: *state.Timer,
	}

	if _, err := printer.Fprintln(w, s); err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	return nil
}

// Graph writes a graphviz (dot) description of the CPU snapshot and the
// timer.
func Graph(w io.Writer, state *hardware.State) error {
	if state == nil {
		return fmt.Errorf("dump: no state to dump")
	}
	cpu := state.CPU

	// the interrupt line of the timer refers to the entire CPU
	tmr := *state.Timer
	tmr.Plumb(nil)

	memviz.Map(w, &cpu, &tmr)
	return nil
}
