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

package debugger

import (
	"fmt"
	"strings"
)

// keys recognised by the debugger
const (
	keyStep     = 's'
	keyContinue = 'c'
	keyFlow     = 'n'
	keyBack     = 'z'
	keyForward  = 'f'
	keyBreak    = 'b'
	keyList     = 'i'
	keySnapshot = 'x'
	keyPlumb    = 'u'
	keyReset    = 'r'
	keyLog      = 'l'
	keyMemory   = 'm'
	keyPrint    = 'p'
	keyHelp     = 'h'
	keyQuit     = 'q'
)

var help = []struct {
	key  rune
	text string
}{
	{keyStep, "Step one instruction (also SPACE and RETURN)"},
	{keyContinue, "Continue until an exception, a breakpoint or the run limit"},
	{keyFlow, "Continue until an instruction that changes program flow"},
	{keyBack, "Step back to the previous state in the rewind history"},
	{keyForward, "Step forward to the next state in the rewind history"},
	{keyBreak, "Toggle breakpoint at the current program counter"},
	{keyList, "List breakpoints"},
	{keySnapshot, "Snapshot the machine"},
	{keyPlumb, "Restore the most recent snapshot"},
	{keyReset, "Reset the machine"},
	{keyLog, "Display the most recent log entries"},
	{keyMemory, "Hexdump memory at the program counter"},
	{keyPrint, "Display the state of the machine"},
	{keyHelp, "This list"},
	{keyQuit, "Quit the debugger (also CTRL-C and CTRL-D)"},
}

func helpText() string {
	s := strings.Builder{}
	for _, h := range help {
		s.WriteString(fmt.Sprintf("%c  %s\n", h.key, h.text))
	}
	return strings.TrimRight(s.String(), "\n")
}
