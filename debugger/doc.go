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

// Package debugger implements a simple interactive stepper for the emulated
// machine. Features include:
//
//	- instruction stepping
//	- stepping backwards through a rewind history
//	- continuing until an exception or a breakpoint
//	- breakpoints on the program counter
//	- a single snapshot slot
//	- memory hexdump
//
// Initialisation of the debugger is done with the NewDebugger() function
//
//	dbg, _ := debugger.NewDebugger(machine, os.Stdin, os.Stdout)
//
// Every command is a single key press. The Loop() function reads keys until
// the input is exhausted or the quit key is pressed. When the input is a
// terminal it should first be put into cbreak mode with the easyterm package
// so that keys are received without waiting for the return key.
//
// Commands can also be issued directly with the Command() function. This is
// how the debugger is tested.
package debugger
