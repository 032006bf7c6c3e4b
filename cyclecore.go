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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/jetsetilly/cyclecore/debugger"
	"github.com/jetsetilly/cyclecore/debugger/dump"
	"github.com/jetsetilly/cyclecore/debugger/easyterm"
	"github.com/jetsetilly/cyclecore/debugger/govern"
	"github.com/jetsetilly/cyclecore/digest"
	"github.com/jetsetilly/cyclecore/hardware"
	"github.com/jetsetilly/cyclecore/hardware/memory/memorymap"
	"github.com/jetsetilly/cyclecore/logger"
	"github.com/jetsetilly/cyclecore/modalflag"
	"github.com/jetsetilly/cyclecore/performance"
	"github.com/jetsetilly/cyclecore/prefs"
	"github.com/jetsetilly/cyclecore/scripting"
	"github.com/jetsetilly/cyclecore/statsview"
	"github.com/jetsetilly/cyclecore/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// a function to run before the main thread ends, including when the
	// program is interrupted. used by the STEP mode to restore the terminal.
	//
	// takes a func() argument.
	reqOnExit stateReq = "ONEXIT"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// mainSync is used to communicate between the main thread and the launch
// goroutine.
type mainSync struct {
	state chan stateRequest
}

// exit values
const (
	exitParseError = 10
	exitModeError  = 20
)

// #mainthread
func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// functions to run before exit
	var onExit []func()

	// #ctrlc default handler
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqOnExit:
				if f, ok := state.args.(func()); ok {
					onExit = append(onExit, f)
				} else {
					panic(fmt.Sprintf("%s requires a func() argument", reqOnExit))
				}
			}
		}
	}

	for i := len(onExit) - 1; i >= 0; i-- {
		onExit[i]()
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate that the program should quit.
func launch(sync *mainSync, args []string) {
	exitVal := cyclecore(sync, os.Stdout, args)
	sync.state <- stateRequest{req: reqQuit, args: exitVal}
}

// cyclecore parses the arguments and runs the selected mode. returns the
// exit value of the program. the sync argument can be nil
func cyclecore(sync *mainSync, output io.Writer, args []string) int {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.NewMode()

	userPrefs := md.AddString("prefs", "", "preferences for the emulation (key::value; key::value)")
	echoLog := md.AddBool("log", false, "echo log entries to output as they are created")
	var stats *bool
	if statsview.Available() {
		stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	md.AddSubModes("RUN", "STEP", "SCRIPT", "DUMP", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		return 0
	case modalflag.ParseError:
		fmt.Fprintf(output, "* error: %v\n", err)
		return exitParseError
	}

	if stats != nil && *stats {
		statsview.Launch(output)
	}

	if *echoLog {
		logger.SetEcho(output)
		defer logger.SetEcho(nil)
	}

	if *userPrefs != "" {
		prefs.PushCommandLineStack(*userPrefs)
		defer func() {
			if unused := prefs.PopCommandLineStack(); unused != "" {
				fmt.Fprintf(output, "* unused preferences: %s\n", unused)
			}
		}()
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "STEP":
		err = step(md, sync)
	case "SCRIPT":
		err = script(md)
	case "DUMP":
		err = dumpState(md)
	case "PERFORMANCE":
		err = perform(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Fprintf(output, "* error in %s mode: %s\n", md.String(), err)
		return exitModeError
	}

	return 0
}

// the single remaining argument of the mode, naming the binary image
func imageArg(md *modalflag.Modes) (string, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return "", fmt.Errorf("binary image required for %s mode", md)
	case 1:
		return md.GetArg(0), nil
	}
	return "", fmt.Errorf("too many arguments for %s mode", md)
}

// create a new machine and attach the image file. an image loaded into the
// ROM window begins execution at the origin with the stack at the top of RAM
func newMachine(filename string, mf machineFlags) (*hardware.Machine, error) {
	image, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	m, err := hardware.NewMachine(nil)
	if err != nil {
		return nil, err
	}

	origin := *mf.origin

	if memorymap.IsArea(origin, memorymap.ROM) {
		err = m.Mem.ROM.Load(*mf.bank, origin-memorymap.OriginROM, image)
		if err != nil {
			return nil, err
		}
		err = m.Mem.SetBank(*mf.bank)
		if err != nil {
			return nil, err
		}
		err = m.Reset()
		if err != nil {
			return nil, err
		}
		m.CPU.Reg.SetSSP(uint32(m.Mem.RAM.Size()))
		m.CPU.LoadPC(origin)
		return m, nil
	}

	if origin == memorymap.OriginRAM {
		return m, m.Attach(image)
	}

	err = m.Mem.Load(origin, image)
	if err != nil {
		return nil, err
	}
	return m, m.Reset()
}

// create a new machine from the remaining argument of the mode
func newMachineFromArgs(md *modalflag.Modes, mf machineFlags) (*hardware.Machine, error) {
	filename, err := imageArg(md)
	if err != nil {
		return nil, err
	}
	return newMachine(filename, mf)
}

// flags common to every mode that creates a machine
type machineFlags struct {
	origin *uint32
	bank   *int
}

func addMachineFlags(md *modalflag.Modes) machineFlags {
	return machineFlags{
		origin: md.AddAddress("origin", 0, "load address of the image. images loaded into the ROM window are loaded into a bank"),
		bank:   md.AddInt("bank", 0, "ROM bank to load the image into"),
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	cycles := md.AddUint64("cycles", 1000000, "number of cycles to run for")
	useDigest := md.AddBool("digest", false, "print a fingerprint of the execution and the final contents of RAM")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := newMachineFromArgs(md, mf)
	if err != nil {
		return err
	}

	var dig *digest.Machine
	var continueCheck func() (govern.State, error)
	if *useDigest {
		dig = digest.NewMachine(m)
		continueCheck = func() (govern.State, error) {
			return govern.Running, dig.Step()
		}
	}

	n, err := m.Run(*cycles, continueCheck)
	if err != nil {
		return err
	}

	fmt.Fprintln(md.Output, m)
	fmt.Fprintf(md.Output, "%d cycles (%s emulated)\n", n, m.Elapsed().Round(time.Microsecond))

	if dig != nil {
		if err := dig.Memory(); err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "digest: %s\n", dig.Hash())
	}

	return nil
}

func step(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()

	mf := addMachineFlags(md)
	limit := md.AddUint64("limit", debugger.DefaultContinueLimit, "maximum number of cycles for the continue command")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := newMachineFromArgs(md, mf)
	if err != nil {
		return err
	}

	term := &easyterm.Terminal{}
	err = term.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer term.CleanUp()

	if sync != nil {
		sync.state <- stateRequest{req: reqOnExit, args: term.CleanUp}
	}

	dbg, err := debugger.NewDebugger(m, term, md.Output)
	if err != nil {
		return err
	}
	dbg.ContinueLimit = *limit

	fmt.Fprintln(md.Output, version.Banner())
	fmt.Fprintln(md.Output, "press h for help")

	term.CBreakMode()
	return dbg.Loop()
}

func script(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	image := md.AddString("image", "", "binary image to attach before the script is run")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("a single Lua script is required for %s mode", md)
	}
	filename := md.GetArg(0)

	var m *hardware.Machine
	if *image != "" {
		m, err = newMachine(*image, mf)
	} else {
		m, err = hardware.NewMachine(nil)
	}
	if err != nil {
		return err
	}

	scr, err := scripting.NewScript(m, md.Output)
	if err != nil {
		return err
	}
	defer scr.Close()

	return scr.RunFile(filename)
}

func dumpState(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	cycles := md.AddUint64("cycles", 0, "number of cycles to run for before the dump")
	graph := md.AddBool("graph", false, "dump the state in graphviz format")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	m, err := newMachineFromArgs(md, mf)
	if err != nil {
		return err
	}

	if *cycles > 0 {
		if _, err := m.Run(*cycles, nil); err != nil {
			return err
		}
	}

	if *graph {
		return dump.Graph(md.Output, m.Snapshot())
	}
	return dump.Text(md.Output, m.Snapshot())
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	mf := addMachineFlags(md)
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "produce profiling reports: cpu, mem, trace, all (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	dur, err := time.ParseDuration(*duration)
	if err != nil {
		return err
	}

	prf, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	m, err := newMachineFromArgs(md, mf)
	if err != nil {
		return err
	}

	return performance.Check(md.Output, m, prf, dur)
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display revision information")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	if *revision {
		fmt.Fprintf(md.Output, "%s %s\n%s\n", version.ApplicationName, v, r)
	} else {
		fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, v)
	}

	return nil
}
