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

	"github.com/jetsetilly/cyclecore/debugger/govern"
)

// It can be expensive to do a full continue check after every instruction.
// PerformanceBrake is a standard value that can be used to filter out
// expensive code paths within a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return govern.Ending, nil
//		}
//	}
//	return govern.Running, nil
const PerformanceBrake = 100

// Run the machine until at least the number of cycles have passed or until
// continueCheck returns govern.Ending. The continueCheck function is called
// after every step and can be nil.
//
// Returns the number of cycles that actually passed. This can be more than
// requested because instructions are never interrupted.
func (m *Machine) Run(cycles uint64, continueCheck func() (govern.State, error)) (uint64, error) {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	start := m.tap.Cycles()
	state := govern.Running

	for m.tap.Cycles()-start < cycles {
		switch state {
		case govern.Running:
			if _, err := m.Step(); err != nil {
				return m.tap.Cycles() - start, err
			}
		case govern.Ending:
			return m.tap.Cycles() - start, nil
		default:
			return m.tap.Cycles() - start, fmt.Errorf("hardware: unsupported emulation state (%s) in Run() function", state)
		}

		var err error
		state, err = continueCheck()
		if err != nil {
			return m.tap.Cycles() - start, err
		}
	}

	return m.tap.Cycles() - start, nil
}
