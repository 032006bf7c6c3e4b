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

// Package easyterm is a wrapper for the termios package. It is used by the
// interactive stepper to read single key presses without waiting for the
// return key.
package easyterm

import (
	"fmt"
	"os"
	"syscall"

	"github.com/pkg/term/termios"
	"golang.org/x/term"
)

// Terminal is the main container for posix terminals.
type Terminal struct {
	input  *os.File
	output *os.File

	// whether the input is a real terminal. cbreak mode is not possible if
	// it is not
	interactive bool

	canAttr    syscall.Termios
	cbreakAttr syscall.Termios
}

// Initialise the fields in the Terminal struct
func (pt *Terminal) Initialise(inputFile, outputFile *os.File) error {
	if inputFile == nil {
		return fmt.Errorf("easyterm: Terminal requires an input file")
	}
	if outputFile == nil {
		return fmt.Errorf("easyterm: Terminal requires an output file")
	}

	pt.input = inputFile
	pt.output = outputFile
	pt.interactive = term.IsTerminal(int(pt.input.Fd()))

	if !pt.interactive {
		return nil
	}

	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return fmt.Errorf("easyterm: %w", err)
	}
	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)

	return nil
}

// Interactive returns true if the input file is a terminal.
func (pt *Terminal) Interactive() bool {
	return pt.interactive
}

// CleanUp returns the terminal to canonical mode.
func (pt *Terminal) CleanUp() {
	pt.CanonicalMode()
}

// Print writes the formatted string to the output file
func (pt *Terminal) Print(s string, a ...interface{}) {
	pt.output.WriteString(fmt.Sprintf(s, a...))
	pt.output.Sync()
}

// CanonicalMode puts terminal into normal, everyday canonical mode
func (pt *Terminal) CanonicalMode() {
	if pt.interactive {
		_ = termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
	}
}

// CBreakMode puts terminal into cbreak mode
func (pt *Terminal) CBreakMode() {
	if pt.interactive {
		_ = termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.cbreakAttr)
	}
}

// Flush makes sure the terminal's input/output buffers are empty
func (pt *Terminal) Flush() error {
	if !pt.interactive {
		return nil
	}
	if err := termios.Tcflush(pt.input.Fd(), termios.TCIFLUSH); err != nil {
		return err
	}
	return termios.Tcflush(pt.output.Fd(), termios.TCOFLUSH)
}

// Read implements the io.Reader interface. In cbreak mode every key press is
// returned as soon as it is made.
func (pt *Terminal) Read(p []byte) (int, error) {
	return pt.input.Read(p)
}
