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

package performance

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/jetsetilly/cyclecore/debugger/govern"
	"github.com/jetsetilly/cyclecore/hardware"
)

// Leadtime is the period the emulation runs for before measurement begins.
var Leadtime = 2 * time.Second

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// Check the performance of the emulator with the machine, which should have
// a program attached.
//
// Emulation will run for the specified duration and will create a cpu,
// memory profile, a trace (or a combination of those) as defined by the
// Profile argument.
func Check(output io.Writer, m *hardware.Machine, profile Profile, duration time.Duration) error {
	if duration <= 0 {
		return fmt.Errorf("performance: duration must be positive (%s)", duration)
	}

	startCycles := m.CPU.Cycles()
	var endCycles uint64

	runner := func() error {
		// signals false when the leadtime has elapsed and true when the
		// measurement period has elapsed
		timerChan := make(chan bool, 2)

		time.AfterFunc(Leadtime, func() {
			timerChan <- false
			time.AfterFunc(duration, func() {
				timerChan <- true
			})
		})

		// only check for end of measurement period every PerformanceBrake CPU
		// instructions
		performanceBrake := 0

		_, err := m.Run(math.MaxUint64, func() (govern.State, error) {
			performanceBrake++
			if performanceBrake < hardware.PerformanceBrake {
				return govern.Running, nil
			}
			performanceBrake = 0

			select {
			case v := <-timerChan:
				if v {
					endCycles = m.CPU.Cycles()
					return govern.Ending, timedOut
				}
				startCycles = m.CPU.Cycles()
			default:
			}
			return govern.Running, nil
		})
		return err
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	cycles := endCycles - startCycles
	mhz, accuracy := CalcMHz(cycles, duration.Seconds(), m.ClockSpeed)
	fmt.Fprintf(output, "%.2f MHz (%d cycles in %.2f seconds) %.1f%%\n", mhz, cycles, duration.Seconds(), accuracy)

	return nil
}
