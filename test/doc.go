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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The "Expect" functions report a failure with t.Errorf() and allow the test
// to continue. The "Demand" functions report a failure with t.Fatalf() and
// should be used when later parts of the test depend on the value being
// correct. For example, testing that a CPU step did not return an error
// before inspecting the register file.
//
// Success and failure are interpreted according to the type of the value:
//
//	bool  -> true is success
//	error -> nil is success
//	nil   -> success
//
// The nil type is considered a success and will consequently cause
// ExpectFailure() to fail. This is because of how errors are usually
// returned.
//
// The Writer type implements the io.Writer interface and should be used to
// capture output. The Writer.Compare() function can then be used to test for
// equality.
package test
