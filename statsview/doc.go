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

// Package statsview provides a local HTTP server with runtime statistics of
// the emulator process. It is included only when the statsview build tag is
// present. Without the tag Available() returns false and Launch() does
// nothing.
//
// Once launched, graphs of the Go runtime are served at:
//
//	localhost:12680/debug/statsview
//
// The standard pprof pages are served at:
//
//	localhost:12680/debug/pprof/
package statsview

// Address of the stats server.
const Address = "localhost:12680"
