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

// Package modalflag wraps the flag package of the standard library so that a
// command line can be made of a series of modes, each with its own flags. For
// example:
//
//	cyclecore -prefs "timer.level::5" RUN -cycles 100000 program.bin
//
// The top level is parsed first. The mode following the top level flags
// decides which flags are added before the next call to Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "STEP")
//	r, err := md.Parse()
//	switch r {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		cycles := md.AddUint64("cycles", 1000, "number of cycles to run")
//		...
//	}
//
// The first sub-mode is the default and is selected if the argument after
// the flags is not a sub-mode. Sub-mode names are not case sensitive.
//
// Help for the current mode is printed to the Output writer when the -help
// flag is found.
package modalflag
