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

// Package clocks defines the speed of the main clock of the machine, in MHz.
// The CPU clock in machines of the period was derived from the video crystal
// and so differs between NTSC and PAL.
package clocks

import "time"

const (
	NTSC = 7.15909
	PAL  = 7.09379
)

// Duration returns the time taken by the number of cycles at the clock speed.
func Duration(cycles uint64, mhz float64) time.Duration {
	return time.Duration(float64(cycles) / mhz * float64(time.Microsecond))
}
