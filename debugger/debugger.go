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
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/jetsetilly/cyclecore/debugger/easyterm"
	"github.com/jetsetilly/cyclecore/debugger/govern"
	"github.com/jetsetilly/cyclecore/hardware"
	"github.com/jetsetilly/cyclecore/hardware/cpu"
	"github.com/jetsetilly/cyclecore/hardware/memory/memorymap"
	"github.com/jetsetilly/cyclecore/logger"
	"github.com/jetsetilly/cyclecore/rewind"
)

// DefaultContinueLimit is the number of cycles the continue command will run
// for before returning control to the user.
const DefaultContinueLimit = 10000000

// number of log entries shown by the log command
const logTail = 10

// number of bytes shown by the memory command
const hexdumpLength = 64

// Debugger is the basic debugging frontend for the emulation.
type Debugger struct {
	m   *hardware.Machine
	in  io.Reader
	out io.Writer

	state  govern.State
	breaks breakpoints

	// the most recent snapshot taken with the snapshot command
	snapshot *hardware.State

	// history of states recorded after every step
	Rewind *rewind.Rewind

	// the reason the most recent continue command stopped
	halt string

	ContinueLimit uint64
}

// NewDebugger creates and initialises everything required for a new debugging
// session.
func NewDebugger(m *hardware.Machine, in io.Reader, out io.Writer) (*Debugger, error) {
	if m == nil {
		return nil, fmt.Errorf("debugger: no machine to debug")
	}
	if in == nil || out == nil {
		return nil, fmt.Errorf("debugger: debugger requires both input and output")
	}

	dbg := &Debugger{
		m:             m,
		in:            in,
		out:           out,
		state:         govern.Paused,
		ContinueLimit: DefaultContinueLimit,
	}

	var err error
	dbg.Rewind, err = rewind.NewRewind(m)
	if err != nil {
		return nil, fmt.Errorf("debugger: %w", err)
	}

	return dbg, nil
}

// State returns the current state of the debugger.
func (dbg *Debugger) State() govern.State {
	return dbg.state
}

func (dbg *Debugger) printLine(s string, a ...interface{}) {
	fmt.Fprintf(dbg.out, s, a...)
	fmt.Fprintln(dbg.out)
}

func (dbg *Debugger) prompt() {
	fmt.Fprintf(dbg.out, "[%06x] > ", dbg.m.CPU.Reg.PC.Address())
}

// Loop reads single key presses from the input and performs the associated
// command. Returns when the input is exhausted or the quit command is
// received.
func (dbg *Debugger) Loop() error {
	rd := bufio.NewReader(dbg.in)

	var prev rune

	dbg.prompt()
	for {
		key, _, err := rd.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				dbg.state = govern.Ending
				return nil
			}
			return fmt.Errorf("debugger: %w", err)
		}

		// a linefeed following a carriage return is part of the same key
		// press on some terminals
		if key == easyterm.KeyLineFeed && prev == easyterm.KeyCarriageReturn {
			prev = key
			continue
		}
		prev = key

		state, err := dbg.Command(key)
		if err != nil {
			return err
		}
		if state == govern.Ending {
			return nil
		}
		dbg.prompt()
	}
}

// Command performs the command associated with the key. Returns the state of
// the debugger after the command.
//
// The returned error indicates a failure of the emulation. Problems with the
// command itself are reported on the output.
func (dbg *Debugger) Command(key rune) (govern.State, error) {
	switch key {
	case keyStep, easyterm.KeySpace, easyterm.KeyLineFeed, easyterm.KeyCarriageReturn:
		dbg.state = govern.Stepping
		if _, err := dbg.m.Step(); err != nil {
			return dbg.state, fmt.Errorf("debugger: %w", err)
		}
		dbg.Rewind.Record()
		dbg.printLine("%s", dbg.m.CPU.LastResult)
		dbg.state = govern.Paused

	case keyBack, keyForward:
		var err error
		if key == keyBack {
			err = dbg.Rewind.Back()
		} else {
			err = dbg.Rewind.Forward()
		}
		if err != nil {
			dbg.printLine("%v", err)
			break
		}
		dbg.printLine("%s: %s", dbg.Rewind, dbg.m.CPU.LastResult)

	case keyContinue, keyFlow:
		if err := dbg.cont(key == keyFlow); err != nil {
			return dbg.state, err
		}

	case keyBreak:
		pc := dbg.m.CPU.Reg.PC.Address()
		if dbg.breaks.toggle(pc) {
			dbg.printLine("breakpoint added at %#06x", pc)
		} else {
			dbg.printLine("breakpoint dropped at %#06x", pc)
		}

	case keyList:
		dbg.printLine("%s", dbg.breaks)

	case keySnapshot:
		dbg.snapshot = dbg.m.Snapshot()
		dbg.printLine("snapshot taken at cycle %d", dbg.m.CPU.Cycles())

	case keyPlumb:
		if dbg.snapshot == nil {
			dbg.printLine("no snapshot to restore")
			break
		}
		if err := dbg.m.Plumb(dbg.snapshot.Snapshot()); err != nil {
			dbg.printLine("%v", err)
			break
		}
		dbg.Rewind.Reset()
		dbg.printLine("snapshot restored")

	case keyReset:
		if err := dbg.m.Reset(); err != nil {
			return dbg.state, fmt.Errorf("debugger: %w", err)
		}
		dbg.Rewind.Reset()
		dbg.printLine("machine reset: %s", dbg.m.CPU.LastResult)

	case keyLog:
		logger.Tail(dbg.out, logTail)

	case keyMemory:
		pc := dbg.m.CPU.Reg.PC.Address()
		offset, area := memorymap.MapAddress(pc)
		if area != memorymap.RAM {
			dbg.printLine("program counter (%#06x) is in %s", pc, area)
			break
		}
		dbg.printLine("%s", dbg.m.Mem.RAM.Hexdump(offset, hexdumpLength))

	case keyPrint:
		dbg.printLine("%s", dbg.m)

	case keyHelp, '?':
		dbg.printLine("%s", helpText())

	case keyQuit, easyterm.KeyCtrlC, easyterm.KeyCtrlD:
		dbg.state = govern.Ending

	default:
		dbg.printLine("unrecognised key (%q). press %c for help", key, keyHelp)
	}

	return dbg.state, nil
}

// Halt returns the reason the most recent continue command stopped.
func (dbg *Debugger) Halt() string {
	return dbg.halt
}

// continue until an exception is entered, a breakpoint is reached, the CPU
// stops running or the run limit is reached. if flow is true, also stop after
// any branch, jump, subroutine or return instruction
func (dbg *Debugger) cont(flow bool) error {
	dbg.state = govern.Running
	dbg.halt = "run limit reached"

	check := func() (govern.State, error) {
		res := dbg.m.CPU.LastResult
		switch {
		case res.Exception != nil:
			dbg.halt = fmt.Sprintf("exception: %s", res.Exception)
			return govern.Ending, nil
		case dbg.breaks.check(dbg.m.CPU.Reg.PC.Address()):
			dbg.halt = fmt.Sprintf("breakpoint: PC->%#06x", dbg.m.CPU.Reg.PC.Address())
			return govern.Ending, nil
		case flow && res.Defn != nil && !res.Aborted && res.Defn.Effect.ChangesFlow():
			dbg.halt = fmt.Sprintf("%s: %s", res.Defn.Effect, res)
			return govern.Ending, nil
		}
		switch dbg.m.CPU.RunState() {
		case cpu.Halted, cpu.DoubleFault:
			dbg.halt = fmt.Sprintf("cpu: %s", dbg.m.CPU.RunState())
			return govern.Ending, nil
		}
		return govern.Running, nil
	}

	n, err := dbg.m.Run(dbg.ContinueLimit, check)
	dbg.state = govern.Paused
	if err != nil {
		return fmt.Errorf("debugger: %w", err)
	}
	dbg.Rewind.Record()

	dbg.printLine("%s after %d cycles", dbg.halt, n)
	return nil
}
